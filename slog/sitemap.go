package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/prodcrawl"
)

// Ensure LoggingSitemapExpander implements prodcrawl.SitemapExpander.
var _ prodcrawl.SitemapExpander = (*LoggingSitemapExpander)(nil)

// LoggingSitemapExpander wraps a SitemapExpander with logging.
type LoggingSitemapExpander struct {
	next   prodcrawl.SitemapExpander
	logger *slog.Logger
}

// NewLoggingSitemapExpander creates a new LoggingSitemapExpander.
func NewLoggingSitemapExpander(next prodcrawl.SitemapExpander, logger *slog.Logger) *LoggingSitemapExpander {
	return &LoggingSitemapExpander{next: next, logger: logger}
}

// Expand delegates to the wrapped expander and logs how many entries of
// each kind it yielded.
func (e *LoggingSitemapExpander) Expand(ctx context.Context, d *prodcrawl.Domain, url string, yield func(prodcrawl.SitemapEntry) error) (err error) {
	var nested, pages int
	defer func(begin time.Time) {
		e.logger.Info("sitemap expansion",
			"url", url,
			"nested", nested,
			"pages", pages,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Expand(ctx, d, url, func(entry prodcrawl.SitemapEntry) error {
		if entry.Nested {
			nested++
		} else {
			pages++
		}
		return yield(entry)
	})
}

// Ensure LoggingSeedSource implements prodcrawl.SeedSource.
var _ prodcrawl.SeedSource = (*LoggingSeedSource)(nil)

// LoggingSeedSource wraps a SeedSource with logging.
type LoggingSeedSource struct {
	next   prodcrawl.SeedSource
	logger *slog.Logger
}

// NewLoggingSeedSource creates a new LoggingSeedSource.
func NewLoggingSeedSource(next prodcrawl.SeedSource, logger *slog.Logger) *LoggingSeedSource {
	return &LoggingSeedSource{next: next, logger: logger}
}

// Seeds delegates to the wrapped source and logs the operation.
func (s *LoggingSeedSource) Seeds(ctx context.Context, d *prodcrawl.Domain) (seeds []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("seed discovery",
			"domain", d.String(),
			"count", len(seeds),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Seeds(ctx, d)
}
