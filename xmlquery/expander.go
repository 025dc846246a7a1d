// Package xmlquery implements prodcrawl.SitemapExpander with a streaming
// antchfx/xmlquery parser.
package xmlquery

import (
	"bufio"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/fwojciec/prodcrawl"
)

// entryXPath streams each child of the document element, a <url> or
// <sitemap>, so every entry is dropped from the tree once it is read.
const entryXPath = "/*/*"

// locXPath selects <loc> elements within an entry by local name, whatever
// prefix the document binds the sitemap namespace to.
const locXPath = "descendant-or-self::*[local-name()='loc']"

var gzipMagic = []byte{0x1f, 0x8b}

// Ensure SitemapExpander implements prodcrawl.SitemapExpander at compile time.
var _ prodcrawl.SitemapExpander = (*SitemapExpander)(nil)

// SitemapExpander streams <loc> entries out of sitemap and sitemap index
// documents without building the whole tree in memory.
type SitemapExpander struct {
	fetcher prodcrawl.Fetcher
}

// NewSitemapExpander creates a SitemapExpander that downloads documents
// with fetcher.
func NewSitemapExpander(fetcher prodcrawl.Fetcher) *SitemapExpander {
	return &SitemapExpander{fetcher: fetcher}
}

// Expand fetches the sitemap at url and yields its entries in document order.
func (e *SitemapExpander) Expand(ctx context.Context, d *prodcrawl.Domain, url string, yield func(prodcrawl.SitemapEntry) error) error {
	body, err := e.fetcher.Open(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()

	r, err := decodeBody(body, url)
	if err != nil {
		return err
	}

	p, err := xmlquery.CreateStreamParser(r, entryXPath)
	if err != nil {
		return prodcrawl.Errorf(prodcrawl.EINTERNAL, "create stream parser: %v", err)
	}

	for {
		n, err := p.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return prodcrawl.Errorf(prodcrawl.EDECODE, "parse sitemap %s: %v", url, err)
		}

		for _, locNode := range xmlquery.Find(n, locXPath) {
			loc := strings.TrimSpace(locNode.InnerText())
			if loc == "" {
				continue
			}
			resolved, err := d.Resolve(loc)
			if err != nil {
				continue
			}

			if err := yield(prodcrawl.SitemapEntry{
				URL:    resolved,
				Nested: prodcrawl.IsSitemapURL(resolved),
			}); err != nil {
				return err
			}
		}
	}
}

// decodeBody gunzips bodies fetched from .gz URLs. A .gz body that does not
// start with the gzip magic but already looks like XML was decoded in
// transit and is parsed as-is.
func decodeBody(body io.Reader, url string) (io.Reader, error) {
	br := bufio.NewReader(body)
	if !strings.HasSuffix(url, ".gz") {
		return br, nil
	}

	head, err := br.Peek(len(gzipMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, prodcrawl.Errorf(prodcrawl.ETRANSPORT, "read %s: %v", url, err)
	}

	if len(head) == len(gzipMagic) && head[0] == gzipMagic[0] && head[1] == gzipMagic[1] {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, prodcrawl.Errorf(prodcrawl.EDECODE, "gunzip %s: %v", url, err)
		}
		return zr, nil
	}

	if looksLikeXML(br) {
		return br, nil
	}
	return nil, prodcrawl.Errorf(prodcrawl.EDECODE, "gunzip %s: not gzip data", url)
}

func looksLikeXML(br *bufio.Reader) bool {
	for i := 1; i <= 64; i++ {
		b, err := br.Peek(i)
		if err != nil {
			return false
		}
		switch c := b[i-1]; c {
		case ' ', '\t', '\r', '\n', 0xef, 0xbb, 0xbf:
			continue
		default:
			return c == '<'
		}
	}
	return false
}
