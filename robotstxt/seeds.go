// Package robotstxt discovers sitemap seeds from a domain's robots.txt
// using temoto/robotstxt.
package robotstxt

import (
	"context"
	"strings"

	"github.com/fwojciec/prodcrawl"
	"github.com/temoto/robotstxt"
)

// Ensure SeedSource implements prodcrawl.SeedSource at compile time.
var _ prodcrawl.SeedSource = (*SeedSource)(nil)

// SeedSource reads the Sitemap directives of a domain's robots.txt.
type SeedSource struct {
	fetcher  prodcrawl.Fetcher
	fallback bool
}

// Option configures a SeedSource.
type Option func(*SeedSource)

// WithFallback makes Seeds return /sitemap.xml when robots.txt was read
// but declares no sitemaps.
func WithFallback(enabled bool) Option {
	return func(s *SeedSource) {
		s.fallback = enabled
	}
}

// NewSeedSource creates a SeedSource that downloads robots.txt with fetcher.
func NewSeedSource(fetcher prodcrawl.Fetcher, opts ...Option) *SeedSource {
	s := &SeedSource{fetcher: fetcher}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seeds returns the sitemap URLs declared in robots.txt, in file order.
// Relative values are resolved against the domain.
func (s *SeedSource) Seeds(ctx context.Context, d *prodcrawl.Domain) ([]string, error) {
	robotsURL, err := d.Resolve("/robots.txt")
	if err != nil {
		return nil, err
	}

	body, err := s.fetcher.Fetch(ctx, robotsURL)
	if err != nil {
		return nil, err
	}

	data, err := robotstxt.FromString(body)
	if err != nil {
		return nil, prodcrawl.Errorf(prodcrawl.EDECODE, "parse %s: %v", robotsURL, err)
	}

	seeds := make([]string, 0, len(data.Sitemaps))
	for _, raw := range data.Sitemaps {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		u, err := d.Resolve(raw)
		if err != nil {
			continue
		}
		seeds = append(seeds, u)
	}

	if len(seeds) == 0 && s.fallback {
		u, err := d.Resolve("/sitemap.xml")
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, u)
	}

	return seeds, nil
}
