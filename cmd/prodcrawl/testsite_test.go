package main_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// newShop starts a small shop with a robots.txt, one sitemap and a
// category page linking to two more products.
func newShop(t *testing.T) *httptest.Server {
	t.Helper()
	return newFlakyShop(t, 0)
}

// newFlakyShop is newShop with robots.txt answering 503 to the first
// failures requests.
func newFlakyShop(t *testing.T, failures int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var base string
	var robotsRequests atomic.Int32
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		if robotsRequests.Add(1) <= failures {
			http.Error(w, "try again", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintf(w, "User-agent: *\nDisallow:\nSitemap: %s/sitemap.xml\n", base)
	})
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%[1]s/products/blue-shirt</loc></url>
  <url><loc>%[1]s/logo.png</loc></url>
  <url><loc>%[1]s/category/hats</loc></url>
</urlset>`, base)
	})
	mux.HandleFunc("/category/hats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body>
<a href="/product/green-hat">Green hat</a>
<a href="/p/red-cap#reviews">Red cap</a>
<a href="https://elsewhere.example/product/x">External</a>
<a href="/about">About</a>
</body></html>`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body>ok</body></html>")
	})

	srv := httptest.NewServer(mux)
	base = srv.URL
	t.Cleanup(srv.Close)
	return srv
}

func readLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(s), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
