package mock

import (
	"context"
	"io"

	"github.com/fwojciec/prodcrawl"
)

var _ prodcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of prodcrawl.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	OpenFn  func(ctx context.Context, url string) (io.ReadCloser, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	return f.OpenFn(ctx, url)
}
