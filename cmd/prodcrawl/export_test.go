package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/prodcrawl/cmd/prodcrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCmdExport(t *testing.T) {
	t.Parallel()

	t.Run("writes captured products as a urlset", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "shop.example"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "shop.example", "product_links.txt"),
			[]byte("https://shop.example/p/1\nhttps://shop.example/p/2\nhttps://shop.example/p/1\n"), 0o644))

		var stdout, stderr bytes.Buffer
		err := main.NewMain().Run(context.Background(),
			[]string{"export", "shop.example", "--dir", dir}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
		assert.Contains(t, stdout.String(), "<loc>https://shop.example/p/1</loc>")
		assert.Contains(t, stdout.String(), "<loc>https://shop.example/p/2</loc>")
		assert.Contains(t, stderr.String(), "Wrote 2 of 3 URLs")
	})

	t.Run("exports a crawl stored in sqlite to a file", func(t *testing.T) {
		t.Parallel()

		srv := newShop(t)
		tmp := t.TempDir()
		dbPath := filepath.Join(tmp, "products.db")
		out := filepath.Join(tmp, "products.xml")

		var stdout, stderr bytes.Buffer
		err := main.NewMain().Run(context.Background(),
			[]string{"crawl", srv.URL, "--store", "sqlite", "--db", dbPath}, &stdout, &stderr)
		require.NoError(t, err)

		stdout.Reset()
		stderr.Reset()
		err = main.NewMain().Run(context.Background(),
			[]string{"export", srv.URL, "--store", "sqlite", "--db", dbPath, "--output", out}, &stdout, &stderr)
		require.NoError(t, err)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "Wrote 3 URLs")

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<loc>"+srv.URL+"/products/blue-shirt</loc>")
		assert.Contains(t, string(data), "<loc>"+srv.URL+"/p/red-cap</loc>")
	})

	t.Run("fails when the domain has no products", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := main.NewMain().Run(context.Background(),
			[]string{"export", "shop.example", "--dir", t.TempDir()}, &stdout, &stderr)

		assert.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
