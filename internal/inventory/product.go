package inventory

import "fmt"

// Product is a single inventory record. IDs are assigned by the Store and
// are unique for the lifetime of the process; names and categories carry no
// uniqueness requirement.
type Product struct {
	ID       int     `yaml:"id" json:"id"`
	Name     string  `yaml:"name" json:"name"`
	Price    float64 `yaml:"price" json:"price"`
	Category string  `yaml:"category" json:"category"`
	Stock    int     `yaml:"stock" json:"stock"`
}

// Value returns the stock-weighted value of this record.
func (p Product) Value() float64 {
	return p.Price * float64(p.Stock)
}

// Label renders a short one-line description for menus and diagnostics.
func (p Product) Label() string {
	return fmt.Sprintf("#%d %s (%s) · $%.2f · %d in stock", p.ID, p.Name, p.Category, p.Price, p.Stock)
}
