package crawl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/prodcrawl"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryFunc is called before each retry with the attempt number about to
// be made and the error that caused it.
type RetryFunc func(url string, attempt int, err error)

// WithRetryDelays calls op until it succeeds, making one attempt plus one
// retry per delay. It waits delays[i] before retry i and stops early if ctx
// is cancelled. The last error is returned when all attempts fail.
func WithRetryDelays[T any](ctx context.Context, url string, op func(context.Context, string) (T, error), onRetry RetryFunc, delays []time.Duration) (T, error) {
	var zero T
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		v, err := op(ctx, url)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || prodcrawl.ErrorCode(err) == prodcrawl.EINVALID {
			break
		}

		if onRetry != nil {
			onRetry(url, attempt+2, err)
		}

		t := time.NewTimer(delays[attempt])
		select {
		case <-ctx.Done():
			t.Stop()
			return zero, ctx.Err()
		case <-t.C:
		}
	}

	return zero, lastErr
}

// Ensure RetryingFetcher implements prodcrawl.Fetcher at compile time.
var _ prodcrawl.Fetcher = (*RetryingFetcher)(nil)

// RetryingFetcher retries failed fetches of the wrapped Fetcher with fixed
// delays. With no delays it makes a single attempt.
type RetryingFetcher struct {
	next   prodcrawl.Fetcher
	delays []time.Duration
	logger *slog.Logger
}

// NewRetryingFetcher wraps next. Retries are logged at debug level to logger,
// which may be nil.
func NewRetryingFetcher(next prodcrawl.Fetcher, delays []time.Duration, logger *slog.Logger) *RetryingFetcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RetryingFetcher{next: next, delays: delays, logger: logger}
}

// Fetch delegates to the wrapped Fetcher, retrying on failure.
func (f *RetryingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return WithRetryDelays(ctx, url, f.next.Fetch, f.logRetry, f.delays)
}

// Open delegates to the wrapped Fetcher, retrying on failure. Only opening
// the stream is retried; read errors surface to the caller.
func (f *RetryingFetcher) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	return WithRetryDelays(ctx, url, f.next.Open, f.logRetry, f.delays)
}

func (f *RetryingFetcher) logRetry(url string, attempt int, err error) {
	f.logger.Debug("retry", "url", url, "attempt", attempt, "err", err)
}
