package mock

import (
	"context"

	"github.com/fwojciec/prodcrawl"
)

var _ prodcrawl.ProductLog = (*ProductLog)(nil)

// ProductLog is a mock implementation of prodcrawl.ProductLog.
type ProductLog struct {
	AppendProductsFn func(ctx context.Context, namespace string, urls []string) error
}

func (l *ProductLog) AppendProducts(ctx context.Context, namespace string, urls []string) error {
	return l.AppendProductsFn(ctx, namespace, urls)
}

var _ prodcrawl.ProductReader = (*ProductReader)(nil)

// ProductReader is a mock implementation of prodcrawl.ProductReader.
type ProductReader struct {
	FindProductsFn func(ctx context.Context, namespace string) ([]string, error)
}

func (r *ProductReader) FindProducts(ctx context.Context, namespace string) ([]string, error) {
	return r.FindProductsFn(ctx, namespace)
}
