// Package coupon applies the fixed table of campus discount codes to a cart subtotal.
package coupon

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	Percent Kind = "percent"
	Flat    Kind = "flat"
)

type Definition struct {
	Kind     Kind    `json:"type"`
	Value    float64 `json:"value"`
	MinTotal float64 `json:"minTotal"`
}

// Definitions is keyed by normalized (trimmed, upper-case) code.
var Definitions = map[string]Definition{
	"UNISTUDENT10": {Kind: Percent, Value: 10, MinTotal: 0},
	"FREESHIP20":   {Kind: Flat, Value: 20, MinTotal: 150},
}

type Result struct {
	Total    int     `json:"total"`
	Discount int     `json:"discount"`
	Code     *string `json:"couponCode"`
}

// Reason explains why a code was not applied; empty when it was.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonNoCode       Reason = "no_code"
	ReasonUnknown      Reason = "unknown_code"
	ReasonEmptyCart    Reason = "empty_subtotal"
	ReasonBelowMinimum Reason = "below_minimum"
)

// Normalize trims and upper-cases a raw code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Apply returns the final total and discount for subtotal with the given code.
// Unknown codes, non-positive subtotals and subtotals under the coupon minimum
// leave the subtotal unchanged (rounded) with a nil code.
func Apply(subtotal float64, code string) Result {
	res, _ := Evaluate(subtotal, code)
	return res
}

// Evaluate is Apply plus the reason a code was rejected.
func Evaluate(subtotal float64, code string) (Result, Reason) {
	if math.IsNaN(subtotal) || math.IsInf(subtotal, 0) {
		subtotal = 0
	}
	sub := decimal.NewFromFloat(subtotal)
	unchanged := Result{Total: roundInt(sub)}

	normalized := Normalize(code)
	if normalized == "" {
		return unchanged, ReasonNoCode
	}
	def, ok := Definitions[normalized]
	if !ok {
		return unchanged, ReasonUnknown
	}
	if subtotal <= 0 {
		return unchanged, ReasonEmptyCart
	}
	if subtotal < def.MinTotal {
		return unchanged, ReasonBelowMinimum
	}

	var discount decimal.Decimal
	switch def.Kind {
	case Percent:
		discount = sub.Mul(decimal.NewFromFloat(def.Value)).Div(decimal.NewFromInt(100))
	case Flat:
		discount = decimal.NewFromFloat(def.Value)
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	discount = roundHalfUp(discount)

	total := roundHalfUp(sub.Sub(discount))
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Result{
		Total:    int(total.IntPart()),
		Discount: int(discount.IntPart()),
		Code:     &normalized,
	}, ReasonNone
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(decimal.NewFromFloat(0.5)).Floor()
}

func roundInt(d decimal.Decimal) int {
	return int(roundHalfUp(d).IntPart())
}
