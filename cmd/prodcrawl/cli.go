package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/prodcrawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Config *prodcrawl.Config
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config    string `short:"C" type:"path" help:"Config file (yaml, json or toml); PRODCRAWL_* env vars override it"`
	Verbose   bool   `short:"v" help:"Enable debug logging"`
	LogFormat string `name:"log-format" help:"Log format: text or json"`

	Crawl  CrawlCmd  `cmd:"" help:"Crawl domains and capture product page URLs"`
	Seeds  SeedsCmd  `cmd:"" help:"Show the sitemap URLs a domain's robots.txt declares"`
	Export ExportCmd `cmd:"" help:"Write a domain's captured products as a sitemap urlset"`
}

// StorageFlags select the product storage backend. Unset flags keep the
// configured values.
type StorageFlags struct {
	Store string `help:"Storage backend: fs or sqlite"`
	Dir   string `short:"d" type:"path" help:"Output directory for the fs backend"`
	DB    string `name:"db" type:"path" help:"Database path for the sqlite backend"`
}

// apply overrides the storage section of cfg with any flags that were set.
func (f StorageFlags) apply(cfg *prodcrawl.StorageConfig) {
	if f.Store != "" {
		cfg.Backend = f.Store
	}
	if f.Dir != "" {
		cfg.Dir = f.Dir
	}
	if f.DB != "" {
		cfg.DBPath = f.DB
	}
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Domains         []string        `arg:"" optional:"" help:"Domains to crawl, as hosts or base URLs (default: configured domains)"`
	Quota           int             `short:"q" help:"Products to capture per domain"`
	Workers         int             `short:"w" help:"Domains crawled concurrently"`
	Timeout         time.Duration   `short:"t" help:"Per-request timeout"`
	Retry           bool            `help:"Retry failed fetches after 1s, 2s and 4s"`
	RetryDelays     []time.Duration `name:"retry-delay" help:"Delay before each fetch retry (repeatable, overrides --retry)"`
	FallbackSitemap bool            `help:"Try /sitemap.xml when robots.txt declares no sitemaps"`
	MetricsAddr     string          `name:"metrics-addr" help:"Serve Prometheus metrics on this address while crawling"`

	StorageFlags `embed:""`
}

// SeedsCmd is the "seeds" subcommand.
type SeedsCmd struct {
	Domain          string        `arg:"" help:"Domain to inspect"`
	Timeout         time.Duration `short:"t" help:"Per-request timeout"`
	FallbackSitemap bool          `help:"Show /sitemap.xml when robots.txt declares no sitemaps"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Domain string `arg:"" help:"Domain whose products to export"`
	Output string `short:"o" type:"path" help:"Write to this file instead of stdout"`

	StorageFlags `embed:""`
}
