package cart

import "math"

// Line is a cart item priced for persistence.
type Line struct {
	Item
	UnitPrice     int  `json:"unitPrice"`
	Authoritative bool `json:"authoritative"`
}

func (l Line) Total() int {
	return l.UnitPrice * l.Qty
}

// Catalog is the authoritative view of the referenced products.
type Catalog map[string]CatalogEntry

type CatalogEntry struct {
	Name  string
	Price int
}

// Reconcile prices every item, preferring the catalog price over the client
// snapshot whenever the product is known. Unknown or removed products keep the
// client snapshot, rounded to whole currency units.
func Reconcile(items []Item, catalog Catalog) ([]Line, int) {
	lines := make([]Line, 0, len(items))
	subtotal := 0
	for _, it := range items {
		line := Line{Item: it, UnitPrice: roundHalfUp(it.PriceSnap)}
		if p, ok := catalog[it.ProductID]; ok && it.ProductID != "" {
			line.UnitPrice = p.Price
			line.Authoritative = true
			if line.Name == "" {
				line.Name = p.Name
			}
		}
		subtotal += line.Total()
		lines = append(lines, line)
	}
	return lines, subtotal
}

func roundHalfUp(f float64) int {
	return int(math.Floor(f + 0.5))
}
