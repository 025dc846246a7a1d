package main

import (
	"fmt"

	"github.com/fwojciec/prodcrawl"
	"github.com/fwojciec/prodcrawl/robotstxt"
	prodslog "github.com/fwojciec/prodcrawl/slog"
)

// Run executes the seeds command.
func (c *SeedsCmd) Run(deps *Dependencies) error {
	d, err := prodcrawl.ParseDomain(c.Domain)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prodcrawl.ErrorMessage(err))
		return err
	}

	fetchCfg := deps.Config.Fetch
	if c.Timeout > 0 {
		fetchCfg.Timeout = c.Timeout
	}
	fetcher := newHTTPFetcher(fetchCfg)
	defer func() { _ = fetcher.Close() }()

	source := prodslog.NewLoggingSeedSource(
		robotstxt.NewSeedSource(fetcher, robotstxt.WithFallback(c.FallbackSitemap)),
		deps.Logger,
	)
	seeds, err := source.Seeds(deps.Ctx, d)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prodcrawl.ErrorMessage(err))
		return err
	}

	if len(seeds) == 0 {
		fmt.Fprintf(deps.Stderr, "No sitemaps declared for %s\n", d)
		return nil
	}
	for _, s := range seeds {
		fmt.Fprintln(deps.Stdout, s)
	}
	return nil
}
