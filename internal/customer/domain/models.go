package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Customer is a waiting guest identified only by the price they offer.
type Customer struct {
	PriceOffer decimal.Decimal `json:"price_offer"`
}

// Offer is the persisted form of a customer price offer.
type Offer struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PriceOffer decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price_offer"`
	CreatedAt  time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Offer) TableName() string {
	return "customer_offers"
}

const (
	StateUninitialized = "uninitialized"
	StateReady         = "ready"
)

// Status describes the currently served customer index.
type Status struct {
	State      string        `json:"state"`
	Size       int           `json:"size"`
	Generation snowflake.ID  `json:"generation,omitempty"`
	Source     string        `json:"source"`
	LoadedAt   *time.Time    `json:"loaded_at,omitempty"`
	Duration   time.Duration `json:"-"`
}
