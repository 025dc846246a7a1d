// Package fs provides file-based storage for discovered product URLs.
package fs

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fwojciec/prodcrawl"
)

// ProductsFile is the name of the per-namespace product log.
const ProductsFile = "product_links.txt"

// Ensure ProductLog implements prodcrawl.ProductLog and
// prodcrawl.ProductReader at compile time.
var (
	_ prodcrawl.ProductLog    = (*ProductLog)(nil)
	_ prodcrawl.ProductReader = (*ProductLog)(nil)
)

// ProductLog appends product URLs to <baseDir>/<namespace>/product_links.txt,
// one URL per line. It is safe for concurrent use.
type ProductLog struct {
	baseDir string
	mu      sync.Mutex
}

// NewProductLog creates a ProductLog rooted at baseDir.
func NewProductLog(baseDir string) *ProductLog {
	return &ProductLog{baseDir: baseDir}
}

// Path returns the log file for namespace.
func (l *ProductLog) Path(namespace string) (string, error) {
	if err := validateNamespace(namespace); err != nil {
		return "", err
	}
	return filepath.Join(l.baseDir, namespace, ProductsFile), nil
}

// AppendProducts appends urls to the namespace's file in a single write,
// creating the directory and file if needed.
func (l *ProductLog) AppendProducts(ctx context.Context, namespace string, urls []string) error {
	path, err := l.Path(namespace)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return nil
	}

	var b strings.Builder
	for _, u := range urls {
		b.WriteString(u)
		b.WriteByte('\n')
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return prodcrawl.Errorf(prodcrawl.ESTORAGE, "create %s: %v", filepath.Dir(path), err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return prodcrawl.Errorf(prodcrawl.ESTORAGE, "open %s: %v", path, err)
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return prodcrawl.Errorf(prodcrawl.ESTORAGE, "write %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		return prodcrawl.Errorf(prodcrawl.ESTORAGE, "close %s: %v", path, err)
	}
	return nil
}

// FindProducts returns the URLs logged for namespace in append order.
func (l *ProductLog) FindProducts(ctx context.Context, namespace string) ([]string, error) {
	path, err := l.Path(namespace)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, prodcrawl.Errorf(prodcrawl.ENOTFOUND, "no products for %s", namespace)
	}
	if err != nil {
		return nil, prodcrawl.Errorf(prodcrawl.ESTORAGE, "open %s: %v", path, err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, prodcrawl.Errorf(prodcrawl.ESTORAGE, "read %s: %v", path, err)
	}
	return urls, nil
}

func validateNamespace(namespace string) error {
	if namespace == "" || namespace == "." || namespace == ".." ||
		strings.ContainsAny(namespace, `/\`) {
		return prodcrawl.Errorf(prodcrawl.EINVALID, "invalid namespace %q", namespace)
	}
	return nil
}
