// Package etree renders product URLs as sitemap XML using beevik/etree.
package etree

import (
	"io"

	"github.com/beevik/etree"
)

// SitemapNamespace is the XML namespace of the sitemap protocol.
const SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// MaxSitemapURLs is the largest number of URLs a single urlset may hold.
const MaxSitemapURLs = 50000

// WriteURLSet writes urls as an indented <urlset> document to w. Duplicate
// URLs are written once, in first-seen order. At most MaxSitemapURLs URLs
// are written; the number written is returned.
func WriteURLSet(w io.Writer, urls []string) (int, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", SitemapNamespace)

	seen := make(map[string]bool, len(urls))
	n := 0
	for _, u := range urls {
		if n == MaxSitemapURLs {
			break
		}
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		urlset.CreateElement("url").CreateElement("loc").SetText(u)
		n++
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return 0, err
	}
	return n, nil
}
