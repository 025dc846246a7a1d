package crawl

import (
	"context"

	"github.com/fwojciec/prodcrawl"
)

// Extractor decides whether candidate page URLs are products and records
// them in a ProductBatch.
type Extractor struct {
	Domain     *prodcrawl.Domain
	Fetcher    prodcrawl.Fetcher
	Links      prodcrawl.LinkExtractor
	Classifier *prodcrawl.Classifier
	Batch      *ProductBatch
}

// Process classifies url and records any products it leads to.
//
// It returns EQUOTA without touching the network once the quota has been
// reached. Static assets are dropped. Product-pattern URLs are recorded
// without a fetch. Anything else is fetched: a page carrying a product
// marker is itself a product, otherwise its same-host product-pattern
// links are recorded. Fetch and parse failures are returned to the caller.
func (e *Extractor) Process(ctx context.Context, url string) error {
	if e.Batch.Exhausted() {
		return prodcrawl.Errorf(prodcrawl.EQUOTA, "quota reached before %s", url)
	}

	switch e.Classifier.Classify(url) {
	case prodcrawl.ClassStaticAsset:
		return nil
	case prodcrawl.ClassProduct:
		e.Batch.Add(url)
		return nil
	}

	html, err := e.Fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}

	if e.Classifier.HasProductMarker(html) {
		e.Batch.Add(url)
		return nil
	}

	links, err := e.Links.ExtractLinks(html, url)
	if err != nil {
		return err
	}

	var products []string
	for _, link := range links {
		if e.Domain.Owns(link) && e.Classifier.IsProduct(link) {
			products = append(products, link)
		}
	}
	e.Batch.Add(products...)
	return nil
}
