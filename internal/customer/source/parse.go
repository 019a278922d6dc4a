package source

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/roommanager/internal/customer/domain"
)

// ParseOffers decodes a JSON array of price offers, e.g. [23, 45, 99.99].
func ParseOffers(data []byte) ([]decimal.Decimal, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a JSON array", domain.ErrParse)
	}

	prices := make([]decimal.Decimal, 0, len(raw))
	for i, elem := range raw {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] == '"' || bytes.Equal(elem, []byte("null")) {
			return nil, fmt.Errorf("%w: element %d is not a number", domain.ErrParse, i)
		}
		price, err := decimal.NewFromString(string(elem))
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", domain.ErrParse, i, err)
		}
		prices = append(prices, price)
	}
	return prices, nil
}
