package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/prodcrawl"
)

// Ensure LoggingProductLog implements prodcrawl.ProductLog.
var _ prodcrawl.ProductLog = (*LoggingProductLog)(nil)

// LoggingProductLog wraps a ProductLog with logging.
type LoggingProductLog struct {
	next   prodcrawl.ProductLog
	logger *slog.Logger
}

// NewLoggingProductLog creates a new LoggingProductLog.
func NewLoggingProductLog(next prodcrawl.ProductLog, logger *slog.Logger) *LoggingProductLog {
	return &LoggingProductLog{next: next, logger: logger}
}

// AppendProducts delegates to the wrapped log and logs the operation.
// Individual URLs are logged at debug level.
func (l *LoggingProductLog) AppendProducts(ctx context.Context, namespace string, urls []string) (err error) {
	defer func(begin time.Time) {
		l.logger.Info("append products",
			"namespace", namespace,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	for _, u := range urls {
		l.logger.Debug("product", "namespace", namespace, "url", u)
	}
	return l.next.AppendProducts(ctx, namespace, urls)
}
