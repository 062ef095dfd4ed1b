package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-component/pkg/catalog"
)

// loadCatalog imports every file into an in-memory catalog, later files
// overriding specs of the same name.
func loadCatalog(ctx context.Context, files []string) (catalog.Catalog, error) {
	c := catalog.Catalog{Store: catalog.NewMemoryStore()}
	if len(files) == 0 {
		return c, fmt.Errorf("at least one --file is required")
	}
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return c, err
		}
		specs, err := catalog.LoadYAMLSource(path, f)
		f.Close()
		if err != nil {
			return c, err
		}
		if err := c.Import(ctx, specs); err != nil {
			return c, fmt.Errorf("%s: %w", path, err)
		}
	}
	return c, nil
}

func loadBuilder(ctx context.Context, files []string) (*catalog.Builder, error) {
	c, err := loadCatalog(ctx, files)
	if err != nil {
		return nil, err
	}
	specs, err := c.Specs(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.NewBuilder(nil, specs...)
}
