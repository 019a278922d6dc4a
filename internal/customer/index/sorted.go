package index

import (
	"fmt"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/roommanager/internal/customer/domain"
)

// Sorted is an immutable customer sequence ordered by price offer, highest first.
type Sorted struct {
	customers []domain.Customer
}

// Build sorts the given offers descending. Equal offers keep their input order.
func Build(prices []decimal.Decimal) (*Sorted, error) {
	customers := make([]domain.Customer, 0, len(prices))
	for i, price := range prices {
		if price.IsNegative() {
			return nil, fmt.Errorf("%w: offer %d is %s", domain.ErrInvalidPrice, i, price.String())
		}
		customers = append(customers, domain.Customer{PriceOffer: price})
	}
	slices.SortStableFunc(customers, byPriceDesc)
	return &Sorted{customers: customers}, nil
}

func byPriceDesc(a, b domain.Customer) int {
	return b.PriceOffer.Cmp(a.PriceOffer)
}

func (s *Sorted) Len() int {
	if s == nil {
		return 0
	}
	return len(s.customers)
}

// Customers returns a copy of the full ordered sequence.
func (s *Sorted) Customers() []domain.Customer {
	if s == nil {
		return nil
	}
	return slices.Clone(s.customers)
}

// TopAtOrAbove returns up to limit customers, highest first, whose offer is at least threshold.
func (s *Sorted) TopAtOrAbove(threshold decimal.Decimal, limit int) []domain.Customer {
	if s == nil || limit <= 0 {
		return []domain.Customer{}
	}
	out := make([]domain.Customer, 0, min(limit, len(s.customers)))
	for _, c := range s.customers {
		if len(out) == limit || c.PriceOffer.LessThan(threshold) {
			break
		}
		out = append(out, c)
	}
	return out
}

// BelowThreshold returns up to limit customers, highest first, whose offer is strictly below threshold.
func (s *Sorted) BelowThreshold(threshold decimal.Decimal, limit int) []domain.Customer {
	if s == nil || limit <= 0 {
		return []domain.Customer{}
	}
	start := s.boundary(threshold)
	n := min(limit, len(s.customers)-start)
	return slices.Clone(s.customers[start : start+n])
}

// boundary locates the first position holding an offer below threshold.
func (s *Sorted) boundary(threshold decimal.Decimal) int {
	probe := domain.Customer{PriceOffer: threshold}
	pos, found := slices.BinarySearchFunc(s.customers, probe, byPriceDesc)
	if !found {
		return pos
	}
	// pos is the leftmost equal offer; skip the whole run of them.
	rest := s.customers[pos:]
	return pos + sort.Search(len(rest), func(i int) bool {
		return rest[i].PriceOffer.LessThan(threshold)
	})
}
