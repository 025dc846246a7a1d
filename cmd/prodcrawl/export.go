package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/prodcrawl"
	"github.com/fwojciec/prodcrawl/etree"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	d, err := prodcrawl.ParseDomain(c.Domain)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prodcrawl.ErrorMessage(err))
		return err
	}

	storage := deps.Config.Storage
	c.StorageFlags.apply(&storage)

	store, closeStore, err := openStore(storage)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prodcrawl.ErrorMessage(err))
		return err
	}
	defer func() { _ = closeStore() }()

	urls, err := store.FindProducts(deps.Ctx, d.Namespace())
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prodcrawl.ErrorMessage(err))
		return err
	}

	var w io.Writer = deps.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		defer f.Close()
		w = f
	}

	n, err := etree.WriteURLSet(w, urls)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prodcrawl.ErrorMessage(err))
		return err
	}
	if n < len(urls) {
		fmt.Fprintf(deps.Stderr, "Wrote %d of %d URLs (duplicates dropped or urlset limit reached)\n", n, len(urls))
	} else {
		fmt.Fprintf(deps.Stderr, "Wrote %d URLs\n", n)
	}
	return nil
}
