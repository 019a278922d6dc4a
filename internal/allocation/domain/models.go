package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type Tier string

const (
	TierPremium Tier = "PREMIUM"
	TierEconomy Tier = "ECONOMY"
)

const DefaultCurrency = "EUR"

// Request carries the free room counts per tier.
type Request struct {
	Premium int
	Economy int
}

// TierOutcome is the aggregate of the customers admitted to one tier.
type TierOutcome struct {
	RoomType       Tier            `json:"roomType"`
	CustomersCount int             `json:"customersCount"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	Currency       string          `json:"currency"`
}

type Service interface {
	Allocate(ctx context.Context, req Request) ([]TierOutcome, error)
}

var (
	ErrInvalidThreshold = errors.New("invalid_threshold")
	ErrInvalidCurrency  = errors.New("invalid_currency")
)
