// Package catalog loads the seed products that populate the in-memory
// store at startup. The store itself never touches disk; the catalog is the
// only inventory input that lives in a file, and it is read exactly once.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/stockroom/internal/inventory"
)

// Entry is one candidate product from the catalog file. Validation happens
// in the store, not here.
type Entry struct {
	Name     string  `yaml:"name"`
	Price    float64 `yaml:"price"`
	Category string  `yaml:"category"`
	Stock    int     `yaml:"stock"`
}

type catalogFile struct {
	Products []Entry `yaml:"products"`
}

// Load reads the catalog at path. A missing file is not an error; the
// session just starts with an empty store.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var parsed catalogFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	return parsed.Products, nil
}

// Seed feeds the entries through the store's validation. Invalid entries are
// skipped, not fatal; the returned slice describes each skip so the caller
// can surface them.
func Seed(store *inventory.Store, entries []Entry) (added int, skipped []error) {
	for i, e := range entries {
		if _, err := store.Add(e.Name, e.Price, e.Category, e.Stock); err != nil {
			skipped = append(skipped, fmt.Errorf("catalog: entry %d (%q): %w", i, e.Name, err))
			continue
		}
		added++
	}
	return added, skipped
}
