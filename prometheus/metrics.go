// Package prometheus exposes crawl metrics using prometheus/client_golang.
package prometheus

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/prodcrawl"
	"github.com/fwojciec/prodcrawl/crawl"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors for one crawl process.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	sitemapEntries  *prometheus.CounterVec
	products        *prometheus.CounterVec
	domains         *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prodcrawl_requests_total",
				Help: "Total number of HTTP requests, labeled by operation and outcome code.",
			},
			[]string{"op", "code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "prodcrawl_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by operation.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"op"},
		),
		sitemapEntries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prodcrawl_sitemap_entries_total",
				Help: "Total number of sitemap <loc> entries, labeled by kind.",
			},
			[]string{"kind"},
		),
		products: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prodcrawl_products_appended_total",
				Help: "Total number of product URLs appended to storage, labeled by namespace.",
			},
			[]string{"namespace"},
		),
		domains: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prodcrawl_domains_total",
				Help: "Total number of finished domain crawls, labeled by final state.",
			},
			[]string{"state"},
		),
	}
}

// Handler returns an http.Handler exposing the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// ObserveOutcome records a finished domain. Failed domains are counted
// under the "failed" state.
func (m *Metrics) ObserveOutcome(o crawl.Outcome) {
	state := "failed"
	if o.Err == nil && o.Result != nil {
		state = string(o.Result.State)
	}
	m.domains.WithLabelValues(state).Inc()
}

func (m *Metrics) observeRequest(op string, begin time.Time, err error) {
	code := "ok"
	if err != nil {
		code = prodcrawl.ErrorCode(err)
	}
	m.requests.WithLabelValues(op, code).Inc()
	m.requestDuration.WithLabelValues(op).Observe(time.Since(begin).Seconds())
}

// Ensure Fetcher implements prodcrawl.Fetcher at compile time.
var _ prodcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher counts and times the requests of the wrapped Fetcher.
type Fetcher struct {
	next    prodcrawl.Fetcher
	metrics *Metrics
}

// Fetcher wraps next with request metrics.
func (m *Metrics) Fetcher(next prodcrawl.Fetcher) *Fetcher {
	return &Fetcher{next: next, metrics: m}
}

// Fetch delegates to the wrapped Fetcher.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	body, err := f.next.Fetch(ctx, url)
	f.metrics.observeRequest("fetch", begin, err)
	return body, err
}

// Open delegates to the wrapped Fetcher.
func (f *Fetcher) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	begin := time.Now()
	rc, err := f.next.Open(ctx, url)
	f.metrics.observeRequest("open", begin, err)
	return rc, err
}

// Ensure SitemapExpander implements prodcrawl.SitemapExpander at compile time.
var _ prodcrawl.SitemapExpander = (*SitemapExpander)(nil)

// SitemapExpander counts the entries yielded by the wrapped expander.
type SitemapExpander struct {
	next    prodcrawl.SitemapExpander
	metrics *Metrics
}

// SitemapExpander wraps next with entry metrics.
func (m *Metrics) SitemapExpander(next prodcrawl.SitemapExpander) *SitemapExpander {
	return &SitemapExpander{next: next, metrics: m}
}

// Expand delegates to the wrapped expander.
func (e *SitemapExpander) Expand(ctx context.Context, d *prodcrawl.Domain, url string, yield func(prodcrawl.SitemapEntry) error) error {
	return e.next.Expand(ctx, d, url, func(entry prodcrawl.SitemapEntry) error {
		kind := "page"
		if entry.Nested {
			kind = "sitemap"
		}
		e.metrics.sitemapEntries.WithLabelValues(kind).Inc()
		return yield(entry)
	})
}

// Ensure ProductLog implements prodcrawl.ProductLog at compile time.
var _ prodcrawl.ProductLog = (*ProductLog)(nil)

// ProductLog counts the products successfully appended by the wrapped log.
type ProductLog struct {
	next    prodcrawl.ProductLog
	metrics *Metrics
}

// ProductLog wraps next with product metrics.
func (m *Metrics) ProductLog(next prodcrawl.ProductLog) *ProductLog {
	return &ProductLog{next: next, metrics: m}
}

// AppendProducts delegates to the wrapped log.
func (l *ProductLog) AppendProducts(ctx context.Context, namespace string, urls []string) error {
	if err := l.next.AppendProducts(ctx, namespace, urls); err != nil {
		return err
	}
	l.metrics.products.WithLabelValues(namespace).Add(float64(len(urls)))
	return nil
}
