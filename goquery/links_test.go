package goquery_test

import (
	"testing"

	"github.com/fwojciec/prodcrawl"
	"github.com/fwojciec/prodcrawl/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative links in document order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/p/1">One</a>
			<a href="p/2">Two</a>
			<a href="https://other.example/p/3">Three</a>
		</body></html>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://shop.example/category/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://shop.example/p/1",
			"https://shop.example/category/p/2",
			"https://other.example/p/3",
		}, links)
	})

	t.Run("deduplicates and strips fragments", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/p/1">a</a><a href="/p/1#reviews">b</a><a href="https://shop.example/p/1">c</a>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://shop.example/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://shop.example/p/1"}, links)
	})

	t.Run("skips non-http links", func(t *testing.T) {
		t.Parallel()

		html := `<a href="javascript:void(0)">x</a>
			<a href="mailto:sales@shop.example">m</a>
			<a href="tel:123">t</a>
			<a href="#top">top</a>
			<a href="">empty</a>
			<a href="ftp://shop.example/file">ftp</a>
			<a>no href</a>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://shop.example/")

		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("honors base element", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><base href="https://shop.example/store/"></head>
			<body><a href="p/9">nine</a></body></html>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://shop.example/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://shop.example/store/p/9"}, links)
	})

	t.Run("rejects invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewLinkExtractor().ExtractLinks("<a href='/p/1'>x</a>", "://bad")

		assert.Equal(t, prodcrawl.EINVALID, prodcrawl.ErrorCode(err))
	})
}
