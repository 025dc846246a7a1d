package crawl

import (
	"context"

	"github.com/fwojciec/prodcrawl"
	"github.com/fwojciec/prodcrawl/bloom"
)

// seenFalsePositiveRate bounds how often a genuinely new product is
// mistaken for one already counted in this crawl.
const seenFalsePositiveRate = 1e-7

// ProductBatch accumulates product URLs for one domain between flushes
// and enforces the domain's quota. It is owned by a single Crawler and is
// not safe for concurrent use.
//
// The counter tracks distinct products seen during the crawl. It is never
// reset by Flush, and a product flushed earlier in the crawl is not
// counted or appended again. Sightings from earlier flushes are checked
// against a Bloom filter, so with probability seenFalsePositiveRate a URL
// never seen before is taken for a repeat and dropped.
type ProductBatch struct {
	log       prodcrawl.ProductLog
	namespace string
	quota     int

	pending   []string
	inPending map[string]struct{}
	seen      *bloom.Filter
	count     int
}

// NewProductBatch creates a batch that appends to log under namespace and
// reports exhaustion once quota products were found.
func NewProductBatch(log prodcrawl.ProductLog, namespace string, quota int) *ProductBatch {
	expected := uint(max(quota*2, 1024))
	return &ProductBatch{
		log:       log,
		namespace: namespace,
		quota:     quota,
		inPending: make(map[string]struct{}),
		seen:      bloom.NewFilter(expected, seenFalsePositiveRate),
	}
}

// Add records urls as products and returns how many of them were new.
// Only new URLs increase the counter.
func (b *ProductBatch) Add(urls ...string) int {
	added := 0
	for _, u := range urls {
		if _, ok := b.inPending[u]; ok {
			continue
		}
		if b.seen.TestAndAdd(u) {
			continue
		}
		b.inPending[u] = struct{}{}
		b.pending = append(b.pending, u)
		added++
	}
	b.count += added
	return added
}

// Count returns the number of distinct products found so far.
func (b *ProductBatch) Count() int {
	return b.count
}

// Pending returns a copy of the products waiting to be flushed, in
// insertion order.
func (b *ProductBatch) Pending() []string {
	return append([]string(nil), b.pending...)
}

// Exhausted reports whether the quota has been reached.
func (b *ProductBatch) Exhausted() bool {
	return b.count >= b.quota
}

// Flush appends pending products to the log and clears them. It is a no-op
// when nothing is pending. After a successful append it returns EQUOTA if
// the quota has been reached. Append failures are returned as ESTORAGE and
// leave the pending products in place.
func (b *ProductBatch) Flush(ctx context.Context) error {
	if len(b.pending) == 0 {
		return nil
	}

	if err := b.log.AppendProducts(ctx, b.namespace, b.pending); err != nil {
		if prodcrawl.ErrorCode(err) == prodcrawl.ESTORAGE {
			return err
		}
		return prodcrawl.Errorf(prodcrawl.ESTORAGE, "append products for %s: %v", b.namespace, err)
	}

	b.pending = nil
	clear(b.inPending)

	if b.Exhausted() {
		return prodcrawl.Errorf(prodcrawl.EQUOTA, "quota of %d products reached for %s", b.quota, b.namespace)
	}
	return nil
}
