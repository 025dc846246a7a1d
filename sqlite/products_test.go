package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/prodcrawl"
	"github.com/fwojciec/prodcrawl/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductLog_AppendProducts(t *testing.T) {
	t.Parallel()

	t.Run("appends in order across calls", func(t *testing.T) {
		t.Parallel()

		l := sqlite.NewProductLog(openDB(t))
		ctx := context.Background()

		require.NoError(t, l.AppendProducts(ctx, "shop.example", []string{"https://shop.example/p/2", "https://shop.example/p/1"}))
		require.NoError(t, l.AppendProducts(ctx, "shop.example", []string{"https://shop.example/p/2"}))
		require.NoError(t, l.AppendProducts(ctx, "other.example", []string{"https://other.example/p/9"}))

		urls, err := l.FindProducts(ctx, "shop.example")
		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://shop.example/p/2",
			"https://shop.example/p/1",
			"https://shop.example/p/2",
		}, urls)
	})

	t.Run("tags rows with the run and url hash", func(t *testing.T) {
		t.Parallel()

		db := openDB(t)
		l := sqlite.NewProductLog(db)
		ctx := context.Background()

		require.NoError(t, l.AppendProducts(ctx, "shop.example", []string{"https://shop.example/p/1"}))

		var runID, hash string
		err := db.QueryRowContext(ctx, "SELECT run_id, url_hash FROM products").Scan(&runID, &hash)
		require.NoError(t, err)
		assert.Equal(t, l.RunID(), runID)
		assert.Equal(t, sqlite.HashURL("https://shop.example/p/1"), hash)
		assert.Len(t, hash, 16)
	})

	t.Run("separate logs record separate runs", func(t *testing.T) {
		t.Parallel()

		db := openDB(t)
		ctx := context.Background()

		require.NoError(t, sqlite.NewProductLog(db).AppendProducts(ctx, "shop.example", []string{"https://shop.example/p/1"}))
		require.NoError(t, sqlite.NewProductLog(db).AppendProducts(ctx, "shop.example", []string{"https://shop.example/p/1"}))

		var runs int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&runs))
		assert.Equal(t, 2, runs)
	})

	t.Run("ignores empty batches", func(t *testing.T) {
		t.Parallel()

		l := sqlite.NewProductLog(openDB(t))

		require.NoError(t, l.AppendProducts(context.Background(), "shop.example", nil))

		_, err := l.FindProducts(context.Background(), "shop.example")
		assert.Equal(t, prodcrawl.ENOTFOUND, prodcrawl.ErrorCode(err))
	})

	t.Run("rejects empty namespace", func(t *testing.T) {
		t.Parallel()

		l := sqlite.NewProductLog(openDB(t))

		err := l.AppendProducts(context.Background(), "", []string{"https://shop.example/p/1"})

		assert.Equal(t, prodcrawl.EINVALID, prodcrawl.ErrorCode(err))
	})

	t.Run("reports storage errors after close", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		require.NoError(t, db.Close())

		err := sqlite.NewProductLog(db).AppendProducts(context.Background(), "shop.example", []string{"https://shop.example/p/1"})

		assert.Equal(t, prodcrawl.ESTORAGE, prodcrawl.ErrorCode(err))
	})
}
