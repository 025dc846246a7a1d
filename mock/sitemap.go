package mock

import (
	"context"

	"github.com/fwojciec/prodcrawl"
)

var _ prodcrawl.SitemapExpander = (*SitemapExpander)(nil)

// SitemapExpander is a mock implementation of prodcrawl.SitemapExpander.
type SitemapExpander struct {
	ExpandFn func(ctx context.Context, d *prodcrawl.Domain, url string, yield func(prodcrawl.SitemapEntry) error) error
}

func (e *SitemapExpander) Expand(ctx context.Context, d *prodcrawl.Domain, url string, yield func(prodcrawl.SitemapEntry) error) error {
	return e.ExpandFn(ctx, d, url, yield)
}

var _ prodcrawl.SeedSource = (*SeedSource)(nil)

// SeedSource is a mock implementation of prodcrawl.SeedSource.
type SeedSource struct {
	SeedsFn func(ctx context.Context, d *prodcrawl.Domain) ([]string, error)
}

func (s *SeedSource) Seeds(ctx context.Context, d *prodcrawl.Domain) ([]string, error) {
	return s.SeedsFn(ctx, d)
}
