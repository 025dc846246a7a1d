package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/prodcrawl"
	"github.com/fwojciec/prodcrawl/crawl"
	"github.com/fwojciec/prodcrawl/goquery"
	prodhttp "github.com/fwojciec/prodcrawl/http"
	prodprom "github.com/fwojciec/prodcrawl/prometheus"
	"github.com/fwojciec/prodcrawl/robotstxt"
	prodslog "github.com/fwojciec/prodcrawl/slog"
	"github.com/fwojciec/prodcrawl/xmlquery"
	"github.com/prometheus/client_golang/prometheus"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	cfg := *deps.Config
	c.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prodcrawl.ErrorMessage(err))
		return err
	}

	domains, err := parseDomains(cfg.Domains)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prodcrawl.ErrorMessage(err))
		return err
	}

	store, closeStore, err := openStore(cfg.Storage)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prodcrawl.ErrorMessage(err))
		return err
	}
	defer func() { _ = closeStore() }()

	reg := prometheus.NewRegistry()
	metrics := prodprom.NewMetrics(reg)
	if cfg.Metrics.Addr != "" {
		stop, err := serveMetrics(cfg.Metrics.Addr, reg, deps.Logger)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", prodcrawl.ErrorMessage(err))
			return err
		}
		defer stop()
	}

	runner := &crawl.Runner{
		Workers:   cfg.Workers,
		Crawl:     domainCrawler(cfg, c.FallbackSitemap, store, metrics, deps.Logger),
		OnOutcome: metrics.ObserveOutcome,
		Logger:    deps.Logger,
	}
	outcomes := runner.Run(deps.Ctx, domains)

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			fmt.Fprintf(deps.Stdout, "%s\tfailed\t%d products\t%s\n", o.Domain, o.Result.Products, prodcrawl.ErrorMessage(o.Err))
			continue
		}
		r := o.Result
		fmt.Fprintf(deps.Stdout, "%s\t%s\t%d products\t%d sitemaps\t%d errors\n",
			r.Domain, r.State, r.Products, r.SitemapsVisited, r.Errors)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d domains failed", failed, len(outcomes))
	}
	return nil
}

// apply overrides cfg with any crawl flags that were set.
func (c *CrawlCmd) apply(cfg *prodcrawl.Config) {
	if len(c.Domains) > 0 {
		cfg.Domains = c.Domains
	}
	if c.Quota > 0 {
		cfg.Quota = c.Quota
	}
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}
	if c.Timeout > 0 {
		cfg.Fetch.Timeout = c.Timeout
	}
	switch {
	case len(c.RetryDelays) > 0:
		cfg.Fetch.RetryDelays = c.RetryDelays
	case c.Retry:
		cfg.Fetch.RetryDelays = crawl.DefaultRetryDelays()
	}
	if c.MetricsAddr != "" {
		cfg.Metrics.Addr = c.MetricsAddr
	}
	c.StorageFlags.apply(&cfg.Storage)
}

// domainCrawler returns a CrawlFunc that builds a fresh Crawler and
// fetcher for every domain. Only the product store and metrics are shared.
func domainCrawler(cfg prodcrawl.Config, fallback bool, store prodcrawl.ProductLog, metrics *prodprom.Metrics, logger *slog.Logger) crawl.CrawlFunc {
	return func(ctx context.Context, d *prodcrawl.Domain) (*crawl.Result, error) {
		domainLogger := logger.With("domain", d.String())

		httpFetcher := newHTTPFetcher(cfg.Fetch)
		defer func() { _ = httpFetcher.Close() }()

		var fetcher prodcrawl.Fetcher = crawl.NewRetryingFetcher(httpFetcher, cfg.Fetch.RetryDelays, domainLogger)
		fetcher = metrics.Fetcher(fetcher)
		fetcher = prodslog.NewLoggingFetcher(fetcher, domainLogger)

		seeds := robotstxt.NewSeedSource(fetcher, robotstxt.WithFallback(fallback))
		sitemaps := metrics.SitemapExpander(xmlquery.NewSitemapExpander(fetcher))
		products := metrics.ProductLog(store)

		crawler := &crawl.Crawler{
			Seeds:      prodslog.NewLoggingSeedSource(seeds, domainLogger),
			Sitemaps:   prodslog.NewLoggingSitemapExpander(sitemaps, domainLogger),
			Fetcher:    fetcher,
			Links:      goquery.NewLinkExtractor(),
			Products:   prodslog.NewLoggingProductLog(products, domainLogger),
			Classifier: prodcrawl.NewClassifier(),
			Quota:      cfg.Quota,
			Logger:     logger,
		}
		return crawler.Crawl(ctx, d)
	}
}

func newHTTPFetcher(cfg prodcrawl.FetchConfig) *prodhttp.Fetcher {
	opts := []prodhttp.Option{prodhttp.WithMaxBodyBytes(cfg.MaxBodyBytes)}
	if cfg.Timeout > 0 {
		opts = append(opts, prodhttp.WithTimeout(cfg.Timeout))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, prodhttp.WithUserAgent(cfg.UserAgent))
	}
	return prodhttp.NewFetcher(opts...)
}

func parseDomains(values []string) ([]*prodcrawl.Domain, error) {
	if len(values) == 0 {
		return nil, prodcrawl.Errorf(prodcrawl.EINVALID, "no domains to crawl")
	}
	domains := make([]*prodcrawl.Domain, 0, len(values))
	for _, v := range values {
		d, err := prodcrawl.ParseDomain(v)
		if err != nil {
			return nil, err
		}
		domains = append(domains, d)
	}
	return domains, nil
}

// serveMetrics starts the metrics endpoint on addr and returns a function
// that shuts it down.
func serveMetrics(addr string, g prometheus.Gatherer, logger *slog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, prodcrawl.Errorf(prodcrawl.EINVALID, "listen on %s: %v", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", prodprom.Handler(g))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "err", err)
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
