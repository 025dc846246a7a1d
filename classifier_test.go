package prodcrawl_test

import (
	"testing"

	"github.com/fwojciec/prodcrawl"
	"github.com/stretchr/testify/assert"
)

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want prodcrawl.URLClass
	}{
		{"product path", "https://shop.example/p/123", prodcrawl.ClassProduct},
		{"products listing path", "https://shop.example/products/red-shoe", prodcrawl.ClassProduct},
		{"amazon style", "https://shop.example/gp/dp/B000123", prodcrawl.ClassProduct},
		{"item path", "https://shop.example/item/55", prodcrawl.ClassProduct},
		{"pd path", "https://shop.example/pd/blue-hat/9", prodcrawl.ClassProduct},
		{"loose t fragment", "https://shop.example/blog/t/anything", prodcrawl.ClassProduct},
		{"image", "https://shop.example/img/a.png", prodcrawl.ClassStaticAsset},
		{"pdf", "https://shop.example/manual.pdf", prodcrawl.ClassStaticAsset},
		{"js matches json loosely", "https://shop.example/data.json", prodcrawl.ClassStaticAsset},
		{"product wins over static", "https://shop.example/product/image.jpg", prodcrawl.ClassProduct},
		{"category page", "https://shop.example/category/shoes", prodcrawl.ClassUnknown},
		{"root", "https://shop.example/", prodcrawl.ClassUnknown},
	}

	c := prodcrawl.NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, c.Classify(tt.url))
		})
	}
}

func TestClassifier_IsProduct(t *testing.T) {
	t.Parallel()

	c := prodcrawl.NewClassifier()

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		url := "https://shop.example/p/1"
		assert.Equal(t, c.IsProduct(url), c.IsProduct(url))
	})

	t.Run("every pattern matches on its own", func(t *testing.T) {
		t.Parallel()

		for _, p := range prodcrawl.DefaultProductPatterns() {
			assert.True(t, c.IsProduct("https://shop.example"+p+"x"), p)
		}
	})

	t.Run("empty pattern never matches", func(t *testing.T) {
		t.Parallel()

		custom := &prodcrawl.Classifier{ProductPatterns: []string{""}}
		assert.False(t, custom.IsProduct("https://shop.example/anything"))
	})
}

func TestClassifier_IsStaticAsset(t *testing.T) {
	t.Parallel()

	c := prodcrawl.NewClassifier()

	for _, s := range prodcrawl.DefaultStaticSuffixes() {
		assert.True(t, c.IsStaticAsset("https://shop.example/file"+s), s)
	}
	assert.False(t, c.IsStaticAsset("https://shop.example/about"))
}

func TestClassifier_HasProductMarker(t *testing.T) {
	t.Parallel()

	c := prodcrawl.NewClassifier()

	tests := []struct {
		name string
		body string
		want bool
	}{
		{"json-ld with space", `<script type="application/ld+json">{"@type": "Product"}</script>`, true},
		{"json-ld compact", `{"@context":"https://schema.org","@type":"Product"}`, true},
		{"microdata", `<div itemscope itemtype="https://schema.org/Product">`, true},
		{"upper case", `{"@TYPE": "PRODUCT"}`, true},
		{"other type", `{"@type": "Organization"}`, false},
		{"empty", ``, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, c.HasProductMarker(tt.body))
		})
	}
}

func TestURLClass_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "product", prodcrawl.ClassProduct.String())
	assert.Equal(t, "static", prodcrawl.ClassStaticAsset.String())
	assert.Equal(t, "unknown", prodcrawl.ClassUnknown.String())
}
