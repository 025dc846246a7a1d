package prodcrawl

import (
	"context"
	"strings"
)

// SitemapEntry is a single <loc> value found in a sitemap document.
type SitemapEntry struct {
	// URL is the loc value resolved against the domain.
	URL string

	// Nested is true when URL points at another sitemap document.
	Nested bool
}

// IsSitemapURL reports whether url looks like a sitemap document rather
// than a page.
func IsSitemapURL(url string) bool {
	return strings.HasSuffix(url, ".xml") || strings.HasSuffix(url, ".gz")
}

// SitemapExpander streams the entries of a single sitemap document.
type SitemapExpander interface {
	// Expand fetches the sitemap at url and calls yield for every <loc>
	// in document order. Entries yielded before a failure stay yielded.
	// If yield returns an error, expansion stops and that error is
	// returned unchanged.
	Expand(ctx context.Context, d *Domain, url string, yield func(SitemapEntry) error) error
}

// SeedSource discovers the initial sitemap URLs for a domain.
type SeedSource interface {
	// Seeds returns the sitemap URLs the domain declares, in order.
	Seeds(ctx context.Context, d *Domain) ([]string, error)
}
