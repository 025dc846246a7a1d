package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/prodcrawl"
	"github.com/fwojciec/prodcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductLog_AppendProducts(t *testing.T) {
	t.Parallel()

	t.Run("delegates to AppendProductsFn", func(t *testing.T) {
		t.Parallel()

		var gotNamespace string
		var gotURLs []string
		l := &mock.ProductLog{
			AppendProductsFn: func(_ context.Context, namespace string, urls []string) error {
				gotNamespace = namespace
				gotURLs = urls
				return nil
			},
		}

		err := l.AppendProducts(context.Background(), "shop.example", []string{"https://shop.example/p/1"})

		require.NoError(t, err)
		assert.Equal(t, "shop.example", gotNamespace)
		assert.Equal(t, []string{"https://shop.example/p/1"}, gotURLs)
	})

	t.Run("returns error from AppendProductsFn", func(t *testing.T) {
		t.Parallel()

		l := &mock.ProductLog{
			AppendProductsFn: func(context.Context, string, []string) error {
				return prodcrawl.Errorf(prodcrawl.ESTORAGE, "disk full")
			},
		}

		err := l.AppendProducts(context.Background(), "shop.example", nil)

		assert.Equal(t, prodcrawl.ESTORAGE, prodcrawl.ErrorCode(err))
	})
}
