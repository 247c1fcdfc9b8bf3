// Package cart turns the checkout request body into one canonical list of items.
//
// Three body shapes are accepted on the wire:
//
//	[ {item}, ... ]                                  bare array
//	{"items": [ {item}, ... ], "phone": ..., ...}    items envelope
//	{"cart":  [ {item}, ... ], "phone": ..., ...}    cart envelope
//
// An item is {"productId"|"id", "name", "qty"|"quantity", "priceSnap"|"price"}.
package cart

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"campus_market/internal/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Shape string

const (
	ShapeArray Shape = "array"
	ShapeItems Shape = "items"
	ShapeCart  Shape = "cart"
)

// Payload is the decoded checkout body. Entries are still raw; use Items for the
// normalized list. String fields are sanitized and empty when absent.
type Payload struct {
	Shape      Shape
	Entries    []interface{}
	Campus     string
	Pickup     string
	CouponCode string
	Phone      string
}

type envelope struct {
	Items      interface{} `mapstructure:"items"`
	Cart       interface{} `mapstructure:"cart"`
	Campus     interface{} `mapstructure:"campus"`
	Pickup     interface{} `mapstructure:"pickup"`
	CouponCode interface{} `mapstructure:"couponCode"`
	Coupon     interface{} `mapstructure:"coupon"`
	Phone      interface{} `mapstructure:"phone"`
}

var ErrMalformedBody = errors.New("request body is not valid JSON")

// Parse decodes a checkout body. An empty body or a JSON scalar yields an
// items-shaped payload with no entries.
func Parse(body []byte) (Payload, error) {
	if len(body) == 0 {
		return Payload{Shape: ShapeItems}, nil
	}

	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return Payload{}, errors.Wrap(ErrMalformedBody, err.Error())
	}

	switch v := raw.(type) {
	case []interface{}:
		return Payload{Shape: ShapeArray, Entries: v}, nil
	case map[string]interface{}:
		var env envelope
		if err := mapstructure.Decode(v, &env); err != nil {
			return Payload{}, errors.Wrap(err, "decode checkout envelope")
		}
		p := Payload{
			Shape:      ShapeItems,
			Campus:     utils.Sanitize(env.Campus, 80),
			Pickup:     utils.Sanitize(env.Pickup, 160),
			CouponCode: utils.Sanitize(env.CouponCode, 40),
			Phone:      utils.Sanitize(env.Phone, 40),
		}
		if p.CouponCode == "" {
			p.CouponCode = utils.Sanitize(env.Coupon, 40)
		}
		if list, ok := env.Items.([]interface{}); ok {
			p.Entries = list
		} else if list, ok := env.Cart.([]interface{}); ok {
			p.Shape = ShapeCart
			p.Entries = list
		}
		return p, nil
	default:
		return Payload{Shape: ShapeItems}, nil
	}
}

// Items returns the normalized cart entries.
func (p Payload) Items() []Item {
	return Normalize(p.Entries)
}
