package prodcrawl

import "context"

// ProductLog is an append-only log of product URLs grouped by namespace.
type ProductLog interface {
	// AppendProducts appends urls to the namespace's log, creating the
	// namespace if needed. Existing entries are never rewritten.
	AppendProducts(ctx context.Context, namespace string, urls []string) error
}

// ProductReader reads back previously logged product URLs.
type ProductReader interface {
	// FindProducts returns the namespace's product URLs in append order.
	// Returns ENOTFOUND if nothing was ever logged for the namespace.
	FindProducts(ctx context.Context, namespace string) ([]string, error)
}
