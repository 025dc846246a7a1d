package prodcrawl

import "strings"

// URLClass is the outcome of classifying a URL.
type URLClass int

const (
	// ClassUnknown means the URL needs a network probe to decide.
	ClassUnknown URLClass = iota
	ClassProduct
	ClassStaticAsset
)

func (c URLClass) String() string {
	switch c {
	case ClassProduct:
		return "product"
	case ClassStaticAsset:
		return "static"
	default:
		return "unknown"
	}
}

// DefaultProductPatterns are the path fragments that mark a product page.
func DefaultProductPatterns() []string {
	return []string{"/p/", "/product/", "/dp/", "/item/", "/pd/", "/t/", "/products/"}
}

// DefaultStaticSuffixes are the fragments that mark a static asset.
func DefaultStaticSuffixes() []string {
	return []string{
		".jpg", ".jpeg", ".png", ".gif", ".css", ".js", ".pdf",
		".doc", ".docx", ".xls", ".xlsx", ".webp",
	}
}

// DefaultProductMarkers are lower-cased structured-data markers that
// identify a product page by its body.
func DefaultProductMarkers() []string {
	return []string{`"@type": "product"`, `"@type":"product"`, `schema.org/product"`}
}

// Classifier sorts URLs into product, static asset or unknown using loose
// substring matching. It holds no mutable state and is safe for concurrent use.
//
// Matching is loose: "/t/" matches any path containing that
// fragment, and ".js" also matches ".json". Product wins over static when
// both match.
type Classifier struct {
	ProductPatterns []string
	StaticSuffixes  []string
	ProductMarkers  []string
}

// NewClassifier returns a Classifier with the default pattern sets.
func NewClassifier() *Classifier {
	return &Classifier{
		ProductPatterns: DefaultProductPatterns(),
		StaticSuffixes:  DefaultStaticSuffixes(),
		ProductMarkers:  DefaultProductMarkers(),
	}
}

// IsProduct reports whether url contains any product pattern.
func (c *Classifier) IsProduct(url string) bool {
	return containsAny(url, c.ProductPatterns)
}

// IsStaticAsset reports whether url contains any static-asset fragment.
func (c *Classifier) IsStaticAsset(url string) bool {
	return containsAny(url, c.StaticSuffixes)
}

// Classify returns the class of url.
func (c *Classifier) Classify(url string) URLClass {
	switch {
	case c.IsProduct(url):
		return ClassProduct
	case c.IsStaticAsset(url):
		return ClassStaticAsset
	default:
		return ClassUnknown
	}
}

// HasProductMarker reports whether an HTML body declares itself a product
// page. The comparison is case-insensitive.
func (c *Classifier) HasProductMarker(body string) bool {
	return containsAny(strings.ToLower(body), c.ProductMarkers)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
