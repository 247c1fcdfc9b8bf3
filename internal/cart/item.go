package cart

import (
	"math"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"

	"campus_market/internal/utils"
)

// Bounds applied during normalization. With MaxItems lines at these limits a
// subtotal stays well inside int64 and exactly representable as float64.
const (
	MaxQty       = 10000
	MaxUnitPrice = 1000000000
	MaxItems     = 200
)

// Item is the canonical cart line. Qty is in [1, MaxQty] and PriceSnap is the
// client-supplied unit price in [0, MaxUnitPrice].
type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	PriceSnap float64 `json:"priceSnap"`
}

type rawItem struct {
	ProductID interface{} `mapstructure:"productId"`
	ID        interface{} `mapstructure:"id"`
	Name      interface{} `mapstructure:"name"`
	Qty       interface{} `mapstructure:"qty"`
	Quantity  interface{} `mapstructure:"quantity"`
	PriceSnap interface{} `mapstructure:"priceSnap"`
	Price     interface{} `mapstructure:"price"`
}

// Normalize maps raw entries to Items. Entries that are not JSON objects are dropped.
func Normalize(entries []interface{}) []Item {
	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		m, ok := e.(map[string]interface{})
		if !ok {
			continue
		}
		var r rawItem
		if err := mapstructure.Decode(m, &r); err != nil {
			continue
		}

		id := r.ProductID
		if id == nil {
			id = r.ID
		}
		qty := r.Qty
		if qty == nil {
			qty = r.Quantity
		}
		price := r.PriceSnap
		if price == nil {
			price = r.Price
		}

		items = append(items, Item{
			ProductID: utils.Sanitize(id, 64),
			Name:      utils.Sanitize(r.Name, 120),
			Qty:       normalizeQty(qty),
			PriceSnap: normalizePrice(price),
		})
	}
	return items
}

func normalizeQty(v interface{}) int {
	f, ok := finite(v)
	if !ok {
		return 1
	}
	if f >= MaxQty {
		return MaxQty
	}
	q := int(math.Round(f))
	if q < 1 {
		return 1
	}
	return q
}

func normalizePrice(v interface{}) float64 {
	f, ok := finite(v)
	if !ok || f < 0 {
		return 0
	}
	if f > MaxUnitPrice {
		return MaxUnitPrice
	}
	return f
}

func finite(v interface{}) (float64, bool) {
	if v == nil {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ProductIDs returns the distinct non-empty product ids in order of first appearance.
func ProductIDs(items []Item) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.ProductID == "" {
			continue
		}
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}
