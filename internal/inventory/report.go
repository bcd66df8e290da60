package inventory

import (
	"fmt"
	"strings"
)

// FormatReport renders the product table the non-interactive commands print.
// The TUI draws its own styled variant; this one is plain text so it stays
// readable when piped.
func FormatReport(products []Product, totalValue float64) string {
	var b strings.Builder
	if len(products) == 0 {
		b.WriteString("Inventory is empty.\n")
	} else {
		fmt.Fprintf(&b, "%-5s %-24s %-14s %10s %8s\n", "ID", "NAME", "CATEGORY", "PRICE", "STOCK")
		for _, p := range products {
			fmt.Fprintf(&b, "%-5d %-24s %-14s %10.2f %8d\n", p.ID, p.Name, p.Category, p.Price, p.Stock)
		}
	}
	fmt.Fprintf(&b, "Total inventory value: $%.2f\n", totalValue)
	return b.String()
}
