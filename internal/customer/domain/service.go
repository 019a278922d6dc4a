package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Index answers the two threshold range queries over the sorted customer set.
type Index interface {
	TopAtOrAbove(threshold decimal.Decimal, limit int) ([]Customer, error)
	BelowThreshold(threshold decimal.Decimal, limit int) ([]Customer, error)
}

// Source produces the raw, unordered price offers the index is built from.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]decimal.Decimal, error)
}

// Loader builds and swaps the served customer index.
type Loader interface {
	Load(ctx context.Context) (Status, error)
	Reload(ctx context.Context) (Status, error)
	Status() Status
}

var (
	ErrIndexUninitialized = errors.New("index_uninitialized")
	ErrInvalidPrice       = errors.New("invalid_price")
	ErrParse              = errors.New("parse_failed")
	ErrLoadFailed         = errors.New("load_failed")
	ErrReloadInProgress   = errors.New("reload_in_progress")
	ErrReloadThrottled    = errors.New("reload_throttled")
)
