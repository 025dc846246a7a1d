package prodcrawl

import (
	"context"
	"io"
)

// Fetcher retrieves resources over the network.
//
// Non-success responses, connection failures and timeouts are reported
// as ETRANSPORT errors.
type Fetcher interface {
	// Fetch returns the body of the page at url.
	Fetch(ctx context.Context, url string) (string, error)

	// Open returns a stream over the body of the resource at url.
	// The caller must close it.
	Open(ctx context.Context, url string) (io.ReadCloser, error)
}
