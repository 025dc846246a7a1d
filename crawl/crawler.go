// Package crawl implements per-domain product discovery: it walks a
// domain's sitemap tree breadth-first, classifies the pages it finds and
// flushes product URLs to storage until the domain's quota is reached.
package crawl

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fwojciec/prodcrawl"
)

// State is the position of a domain crawl in its lifecycle.
type State string

const (
	StateSeeding   State = "seeding"
	StateDraining  State = "draining"
	StateExhausted State = "exhausted"
	StateCompleted State = "completed"
)

// Terminal reports whether no further work happens in this state.
func (s State) Terminal() bool {
	return s == StateExhausted || s == StateCompleted
}

// Result summarizes one domain crawl.
type Result struct {
	Domain          string
	State           State
	Products        int
	SitemapsVisited int
	Errors          int
}

// Crawler discovers product pages for a single domain. A Crawler and the
// state it builds during Crawl belong to one domain; construct one per
// domain so that nothing is shared between concurrent crawls.
type Crawler struct {
	Seeds      prodcrawl.SeedSource
	Sitemaps   prodcrawl.SitemapExpander
	Fetcher    prodcrawl.Fetcher
	Links      prodcrawl.LinkExtractor
	Products   prodcrawl.ProductLog
	Classifier *prodcrawl.Classifier
	Quota      int
	Logger     *slog.Logger
}

// Crawl runs the domain through Seeding, Draining and finally Exhausted or
// Completed.
//
// Per-URL transport and decode failures are logged and counted in the
// result. Storage failures abort the crawl and are returned. If ctx is
// cancelled the pending products are flushed and ctx's error is returned.
func (c *Crawler) Crawl(ctx context.Context, d *prodcrawl.Domain) (*Result, error) {
	logger := c.logger().With("domain", d.String())
	classifier := c.Classifier
	if classifier == nil {
		classifier = prodcrawl.NewClassifier()
	}

	res := &Result{Domain: d.String(), State: StateSeeding}

	seeds, err := c.Seeds.Seeds(ctx, d)
	if err != nil {
		logger.Warn("seed discovery failed", "err", err)
		res.Errors++
		seeds = nil
	}
	frontier := NewSitemapFrontier(seeds...)
	batch := NewProductBatch(c.Products, d.Namespace(), c.Quota)
	extractor := &Extractor{
		Domain:     d,
		Fetcher:    c.Fetcher,
		Links:      c.Links,
		Classifier: classifier,
		Batch:      batch,
	}

	finish := func(state State) *Result {
		res.State = state
		res.Products = batch.Count()
		res.SitemapsVisited = frontier.VisitedCount()
		return res
	}

	res.State = StateDraining
	for {
		if err := ctx.Err(); err != nil {
			return finish(StateDraining), c.interrupted(ctx, batch, err)
		}

		sitemapURL, ok := frontier.Pop()
		if !ok {
			break
		}
		if frontier.Visited(sitemapURL) {
			continue
		}

		err := c.Sitemaps.Expand(ctx, d, sitemapURL, func(entry prodcrawl.SitemapEntry) error {
			if entry.Nested {
				frontier.Push(entry.URL)
				return nil
			}
			err := extractor.Process(ctx, entry.URL)
			switch {
			case err == nil:
				return nil
			case prodcrawl.ErrorCode(err) == prodcrawl.EQUOTA:
				return err
			case ctx.Err() != nil:
				return ctx.Err()
			}
			logger.Warn("page failed", "url", entry.URL, "err", err)
			res.Errors++
			return nil
		})
		frontier.MarkVisited(sitemapURL)

		quotaHit := false
		switch {
		case err == nil:
		case prodcrawl.ErrorCode(err) == prodcrawl.EQUOTA:
			quotaHit = true
		case ctx.Err() != nil:
			return finish(StateDraining), c.interrupted(ctx, batch, ctx.Err())
		default:
			logger.Warn("sitemap failed", "url", sitemapURL, "err", err)
			res.Errors++
		}

		if err := batch.Flush(ctx); err != nil {
			if prodcrawl.ErrorCode(err) == prodcrawl.EQUOTA {
				quotaHit = true
			} else {
				return finish(StateDraining), err
			}
		}

		if quotaHit {
			logger.Info("quota reached", "products", batch.Count(), "quota", c.Quota, "queued", frontier.Len())
			return finish(StateExhausted), nil
		}
	}

	return finish(StateCompleted), nil
}

// interrupted flushes what was found before cancellation and returns cause,
// joined with any storage error.
func (c *Crawler) interrupted(ctx context.Context, batch *ProductBatch, cause error) error {
	err := batch.Flush(context.WithoutCancel(ctx))
	if err != nil && prodcrawl.ErrorCode(err) != prodcrawl.EQUOTA {
		return errors.Join(cause, err)
	}
	return cause
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
