package main

import (
	"github.com/fwojciec/prodcrawl"
	"github.com/fwojciec/prodcrawl/fs"
	"github.com/fwojciec/prodcrawl/sqlite"
)

// productStore is a storage backend that can both record and list products.
type productStore interface {
	prodcrawl.ProductLog
	prodcrawl.ProductReader
}

// openStore opens the configured backend. The returned close function
// must be called when the store is no longer needed.
func openStore(cfg prodcrawl.StorageConfig) (productStore, func() error, error) {
	switch cfg.Backend {
	case prodcrawl.StorageSQLite:
		db := sqlite.NewDB(cfg.DBPath)
		if err := db.Open(); err != nil {
			return nil, nil, prodcrawl.Errorf(prodcrawl.ESTORAGE, "open database %q: %v", cfg.DBPath, err)
		}
		return sqlite.NewProductLog(db), db.Close, nil
	case prodcrawl.StorageFS:
		return fs.NewProductLog(cfg.Dir), func() error { return nil }, nil
	default:
		return nil, nil, prodcrawl.Errorf(prodcrawl.EINVALID, "unknown storage backend %q", cfg.Backend)
	}
}
