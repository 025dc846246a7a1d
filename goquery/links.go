// Package goquery provides HTML link extraction using PuerkitoBio/goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/prodcrawl"
)

// Ensure LinkExtractor implements prodcrawl.LinkExtractor at compile time.
var _ prodcrawl.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor returns the targets of every anchor on a page.
type LinkExtractor struct {
	selector string
}

// NewLinkExtractor creates a LinkExtractor matching all anchors with an href.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{selector: "a[href]"}
}

// ExtractLinks parses html and returns resolved http(s) links in document
// order, first occurrence wins. A <base href> in the document overrides
// baseURL for resolution.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, prodcrawl.Errorf(prodcrawl.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, prodcrawl.Errorf(prodcrawl.EDECODE, "failed to parse HTML: %v", err)
	}

	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if b := resolveURL(base, href); b != "" {
			if parsed, err := url.Parse(b); err == nil {
				base = parsed
			}
		}
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find(e.selector).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})

	return links, nil
}

// resolveURL resolves href against base and drops the fragment.
// Returns "" for unparseable or non-http(s) results.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	u := base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	u.Fragment = ""
	return u.String()
}

// isNonHTTPLink reports whether href uses a scheme that never leads to a page.
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(href)
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:", "#"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
