package source

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/roommanager/internal/customer/domain"
	"github.com/smallbiznis/roommanager/pkg/db"
	"gorm.io/gorm"
)

// Database reads offers from the customer_offers table in insertion order.
type Database struct {
	db *gorm.DB
}

func NewDatabase(conn *gorm.DB) *Database {
	return &Database{db: conn}
}

func (d *Database) Name() string { return "database" }

func (d *Database) Load(ctx context.Context) ([]decimal.Decimal, error) {
	var offers []domain.Offer
	err := d.db.WithContext(ctx).
		Model(&domain.Offer{}).
		Select("id", "price_offer").
		Order("id ASC").
		Find(&offers).Error
	if err != nil {
		if db.IsUndefinedTable(err) {
			return nil, fmt.Errorf("customer_offers table missing, run migrations: %w", err)
		}
		return nil, fmt.Errorf("query customer_offers: %w", err)
	}

	prices := make([]decimal.Decimal, 0, len(offers))
	for _, o := range offers {
		prices = append(prices, o.PriceOffer)
	}
	return prices, nil
}
