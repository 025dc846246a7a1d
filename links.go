package prodcrawl

// LinkExtractor extracts hyperlinks from an HTML page.
type LinkExtractor interface {
	// ExtractLinks returns the absolute http(s) targets of the page's
	// anchors in document order, without duplicates. Relative hrefs are
	// resolved against baseURL.
	ExtractLinks(html string, baseURL string) ([]string, error)
}
