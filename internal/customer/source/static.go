package source

import (
	"context"

	"github.com/shopspring/decimal"
)

var defaultOffers = []string{"23", "45", "155", "374", "22", "99.99", "100", "101", "115", "209"}

// Static serves a fixed offer list.
type Static struct {
	prices []decimal.Decimal
}

// NewStatic returns the built-in demo offers.
func NewStatic() *Static {
	prices := make([]decimal.Decimal, 0, len(defaultOffers))
	for _, v := range defaultOffers {
		prices = append(prices, decimal.RequireFromString(v))
	}
	return &Static{prices: prices}
}

func NewStaticFrom(prices []decimal.Decimal) *Static {
	return &Static{prices: append([]decimal.Decimal(nil), prices...)}
}

func (s *Static) Name() string { return "static" }

func (s *Static) Load(context.Context) ([]decimal.Decimal, error) {
	return append([]decimal.Decimal(nil), s.prices...), nil
}
