package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/prodcrawl"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ prodcrawl.ProductLog    = (*ProductLog)(nil)
	_ prodcrawl.ProductReader = (*ProductLog)(nil)
)

// ProductLog implements prodcrawl.ProductLog using SQLite. Every product
// row is tagged with the ID of the run that wrote it.
type ProductLog struct {
	db    *DB
	runID string
	now   func() time.Time
}

// NewProductLog creates a ProductLog that records products under a new run ID.
func NewProductLog(db *DB) *ProductLog {
	return &ProductLog{
		db:    db,
		runID: uuid.New().String(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// RunID returns the ID under which this log records products.
func (l *ProductLog) RunID() string {
	return l.runID
}

// AppendProducts inserts urls for namespace in one transaction.
func (l *ProductLog) AppendProducts(ctx context.Context, namespace string, urls []string) error {
	if namespace == "" {
		return prodcrawl.Errorf(prodcrawl.EINVALID, "namespace required")
	}
	if len(urls) == 0 {
		return nil
	}

	now := l.now().Format(time.RFC3339)

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return prodcrawl.Errorf(prodcrawl.ESTORAGE, "begin: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO runs (id, started_at) VALUES (?, ?)
	`, l.runID, now); err != nil {
		return prodcrawl.Errorf(prodcrawl.ESTORAGE, "record run: %v", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (id, run_id, namespace, url, url_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return prodcrawl.Errorf(prodcrawl.ESTORAGE, "prepare insert: %v", err)
	}
	defer stmt.Close()

	for _, u := range urls {
		if _, err := stmt.ExecContext(ctx, uuid.New().String(), l.runID, namespace, u, HashURL(u), now); err != nil {
			return prodcrawl.Errorf(prodcrawl.ESTORAGE, "insert product: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return prodcrawl.Errorf(prodcrawl.ESTORAGE, "commit: %v", err)
	}
	return nil
}

// FindProducts returns the URLs stored for namespace in insertion order.
func (l *ProductLog) FindProducts(ctx context.Context, namespace string) ([]string, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT url FROM products WHERE namespace = ? ORDER BY rowid
	`, namespace)
	if err != nil {
		return nil, prodcrawl.Errorf(prodcrawl.ESTORAGE, "query products: %v", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, prodcrawl.Errorf(prodcrawl.ESTORAGE, "scan product: %v", err)
		}
		urls = append(urls, u)
	}
	if err := rows.Err(); err != nil {
		return nil, prodcrawl.Errorf(prodcrawl.ESTORAGE, "iterate products: %v", err)
	}

	if len(urls) == 0 {
		return nil, prodcrawl.Errorf(prodcrawl.ENOTFOUND, "no products for %s", namespace)
	}
	return urls, nil
}

// HashURL returns the hex-encoded xxhash of u, used to index URLs.
func HashURL(u string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(u))
}
