package prodcrawl_test

import (
	"testing"

	"github.com/fwojciec/prodcrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDomain(t *testing.T) {
	t.Parallel()

	t.Run("bare host defaults to https", func(t *testing.T) {
		t.Parallel()

		d, err := prodcrawl.ParseDomain("shop.example")

		require.NoError(t, err)
		assert.Equal(t, "https://shop.example", d.String())
	})

	t.Run("drops path and query", func(t *testing.T) {
		t.Parallel()

		d, err := prodcrawl.ParseDomain("http://Shop.Example:8080/some/path?q=1")

		require.NoError(t, err)
		assert.Equal(t, "http://Shop.Example:8080", d.String())
		assert.Equal(t, "shop.example", d.Namespace())
		assert.Equal(t, "Shop.Example:8080", d.Host())
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := prodcrawl.ParseDomain("  ")

		assert.Equal(t, prodcrawl.EINVALID, prodcrawl.ErrorCode(err))
	})

	t.Run("rejects unsupported scheme", func(t *testing.T) {
		t.Parallel()

		_, err := prodcrawl.ParseDomain("ftp://shop.example")

		assert.Equal(t, prodcrawl.EINVALID, prodcrawl.ErrorCode(err))
	})
}

func TestDomain_Resolve(t *testing.T) {
	t.Parallel()

	d, err := prodcrawl.ParseDomain("https://shop.example")
	require.NoError(t, err)

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"absolute path", "/p/1", "https://shop.example/p/1"},
		{"relative path", "p/1", "https://shop.example/p/1"},
		{"absolute URL", "https://cdn.example/sitemap.xml", "https://cdn.example/sitemap.xml"},
		{"surrounding whitespace", "  /sitemap.xml\n", "https://shop.example/sitemap.xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := d.Resolve(tt.ref)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDomain_Owns(t *testing.T) {
	t.Parallel()

	d, err := prodcrawl.ParseDomain("https://shop.example")
	require.NoError(t, err)

	assert.True(t, d.Owns("https://shop.example/p/1"))
	assert.True(t, d.Owns("http://SHOP.example/p/1"))
	assert.False(t, d.Owns("https://other.example/p/1"))
	assert.False(t, d.Owns("://bad"))
}
