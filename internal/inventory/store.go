// internal/inventory/store.go
//
// The Store owns the in-memory product collection. There is deliberately no
// package-level state here: callers construct a Store, hold it for the life
// of the session, and every operation goes through it. Nothing is persisted;
// the collection dies with the process.

package inventory

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ErrNotFound is returned when an operation names a product ID that is not
// in the collection.
var ErrNotFound = errors.New("inventory: product not found")

// DefaultLowStockThreshold is used when no threshold is configured. A
// product is low on stock when its count is at or below the threshold.
const DefaultLowStockThreshold = 5

// Store maintains the product collection and the monotonic ID counter.
type Store struct {
	products  []Product
	nextID    int
	threshold int
}

// Option customizes a Store during construction.
type Option func(*Store)

// WithLowStockThreshold overrides the default low-stock threshold.
func WithLowStockThreshold(threshold int) Option {
	return func(s *Store) {
		if threshold >= 0 {
			s.threshold = threshold
		}
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		nextID:    1,
		threshold: DefaultLowStockThreshold,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Add validates the candidate product, assigns the next sequential ID and
// appends it. The collection is untouched when validation fails.
func (s *Store) Add(name string, price float64, category string, stock int) (Product, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" {
		return Product{}, fmt.Errorf("inventory: product name is required")
	}
	if price <= 0 {
		return Product{}, fmt.Errorf("inventory: price must be greater than zero, got %.2f", price)
	}
	if stock < 0 {
		return Product{}, fmt.Errorf("inventory: stock cannot be negative, got %d", stock)
	}
	p := Product{
		ID:       s.nextID,
		Name:     name,
		Price:    price,
		Category: category,
		Stock:    stock,
	}
	s.nextID++
	s.products = append(s.products, p)
	return p, nil
}

// Remove deletes the product with the given ID.
func (s *Store) Remove(id int) error {
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// UpdateStock overwrites the stock count of an existing product. Zero is a
// legitimate value (sold out); only negative counts are rejected.
func (s *Store) UpdateStock(id, newStock int) error {
	if newStock < 0 {
		return fmt.Errorf("inventory: stock cannot be negative, got %d", newStock)
	}
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i].Stock = newStock
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// Get returns the product with the given ID.
func (s *Store) Get(id int) (Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// Search returns every product whose name or category contains the query,
// compared case-insensitively. The result is empty (never nil panics, just
// an empty slice) when nothing matches.
func (s *Store) Search(query string) []Product {
	query = strings.ToLower(strings.TrimSpace(query))
	matches := []Product{}
	if query == "" {
		return matches
	}
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Category), query) {
			matches = append(matches, p)
		}
	}
	sortByID(matches)
	return matches
}

// Suggest ranks product names and categories against the query with fuzzy
// matching and returns up to n distinct candidates. The console layers use
// this for a "did you mean" line when Search comes back empty.
func (s *Store) Suggest(query string, n int) []string {
	query = strings.TrimSpace(query)
	if query == "" || n <= 0 {
		return nil
	}
	seen := map[string]struct{}{}
	var candidates []string
	for _, p := range s.products {
		for _, term := range []string{p.Name, p.Category} {
			term = strings.TrimSpace(term)
			if term == "" {
				continue
			}
			key := strings.ToLower(term)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			candidates = append(candidates, term)
		}
	}
	ranked := fuzzy.Find(query, candidates)
	var out []string
	for _, match := range ranked {
		out = append(out, match.Str)
		if len(out) == n {
			break
		}
	}
	return out
}

// TotalValue sums price*stock across the collection.
func (s *Store) TotalValue() float64 {
	total := 0.0
	for _, p := range s.products {
		total += p.Value()
	}
	return total
}

// LowStock returns the products whose stock is at or below the threshold,
// ordered by ascending ID.
func (s *Store) LowStock(threshold int) []Product {
	low := []Product{}
	for _, p := range s.products {
		if p.Stock <= threshold {
			low = append(low, p)
		}
	}
	sortByID(low)
	return low
}

// LowStockDefault applies the store's configured threshold.
func (s *Store) LowStockDefault() []Product {
	return s.LowStock(s.threshold)
}

// Threshold reports the configured low-stock threshold.
func (s *Store) Threshold() int {
	return s.threshold
}

// Products returns a snapshot of the collection ordered by ascending ID.
// Mutating the returned slice does not affect the store.
func (s *Store) Products() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	sortByID(out)
	return out
}

// Len reports how many products the store holds.
func (s *Store) Len() int {
	return len(s.products)
}

func sortByID(products []Product) {
	sort.Slice(products, func(i, j int) bool {
		return products[i].ID < products[j].ID
	})
}
