package crawl

import (
	"context"
	"log/slog"

	"github.com/fwojciec/prodcrawl"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the pool size used when Runner.Workers is not set.
const DefaultWorkers = 4

// CrawlFunc crawls a single domain.
type CrawlFunc func(ctx context.Context, d *prodcrawl.Domain) (*Result, error)

// Outcome is the result of one domain's crawl as seen by the Runner.
type Outcome struct {
	Domain *prodcrawl.Domain
	Result *Result
	Err    error
}

// OutcomeFunc is a callback for reporting finished domains.
type OutcomeFunc func(Outcome)

// Runner crawls many domains concurrently on a bounded worker pool.
// Domains are independent: a failing domain never cancels the others.
type Runner struct {
	Workers int
	Crawl   CrawlFunc

	// OnOutcome, if set, is called as each domain finishes. Calls may
	// come from several goroutines at once.
	OnOutcome OutcomeFunc

	Logger *slog.Logger
}

// Run crawls every domain and returns their outcomes in input order.
// Domains are started in input order. Cancelling ctx stops domains that
// have not started and interrupts running ones between URLs.
func (r *Runner) Run(ctx context.Context, domains []*prodcrawl.Domain) []Outcome {
	workers := r.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	outcomes := make([]Outcome, len(domains))

	var g errgroup.Group
	g.SetLimit(workers)

	for i, d := range domains {
		g.Go(func() error {
			out := Outcome{Domain: d}
			if err := ctx.Err(); err != nil {
				out.Err = err
			} else {
				out.Result, out.Err = r.Crawl(ctx, d)
			}
			if out.Result == nil {
				out.Result = &Result{Domain: d.String()}
			}

			if out.Err != nil {
				logger.Error("domain failed", "domain", d.String(), "err", out.Err)
			} else {
				logger.Info("domain finished",
					"domain", d.String(),
					"state", string(out.Result.State),
					"products", out.Result.Products,
					"sitemaps", out.Result.SitemapsVisited,
					"errors", out.Result.Errors,
				)
			}

			outcomes[i] = out
			if r.OnOutcome != nil {
				r.OnOutcome(out)
			}
			return nil
		})
	}

	_ = g.Wait()
	return outcomes
}
