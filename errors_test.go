package prodcrawl_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/prodcrawl"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := prodcrawl.Errorf(prodcrawl.ETRANSPORT, "HTTP %d for %s", 503, "https://shop.example/")

	assert.Equal(t, prodcrawl.ETRANSPORT, prodcrawl.ErrorCode(err))
	assert.Equal(t, "HTTP 503 for https://shop.example/", prodcrawl.ErrorMessage(err))
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, prodcrawl.ErrorCode(nil))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("flush: %w", prodcrawl.Errorf(prodcrawl.ESTORAGE, "disk full"))

		assert.Equal(t, prodcrawl.ESTORAGE, prodcrawl.ErrorCode(err))
		assert.Equal(t, "disk full", prodcrawl.ErrorMessage(err))
	})

	t.Run("non-application error", func(t *testing.T) {
		t.Parallel()

		err := errors.New("boom")

		assert.Equal(t, prodcrawl.EINTERNAL, prodcrawl.ErrorCode(err))
		assert.Equal(t, "Internal error.", prodcrawl.ErrorMessage(err))
	})
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, prodcrawl.ErrorMessage(nil))
}
