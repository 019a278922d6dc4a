package service

import (
	"context"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/roommanager/internal/allocation/domain"
	"github.com/smallbiznis/roommanager/internal/config"
	customerdomain "github.com/smallbiznis/roommanager/internal/customer/domain"
	obsmetrics "github.com/smallbiznis/roommanager/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Index   customerdomain.Index
	Rooms   config.RoomsConfig
	Metrics *obsmetrics.Metrics `optional:"true"`
}

// Engine admits customers to premium and economy rooms by price threshold.
type Engine struct {
	log       *zap.Logger
	index     customerdomain.Index
	threshold decimal.Decimal
	currency  string
	metrics   *obsmetrics.Metrics
}

func New(p Params) (domain.Service, error) {
	return NewEngine(p.Index, p.Rooms.MinThreshold, p.Rooms.Currency, p.Log, p.Metrics)
}

// NewEngine fixes threshold and currency for the lifetime of the engine.
func NewEngine(index customerdomain.Index, threshold decimal.Decimal, currency string, log *zap.Logger, metrics *obsmetrics.Metrics) (*Engine, error) {
	if threshold.IsNegative() {
		return nil, domain.ErrInvalidThreshold
	}
	currency = strings.TrimSpace(currency)
	if currency == "" {
		return nil, domain.ErrInvalidCurrency
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		log:       log.Named("allocation.engine"),
		index:     index,
		threshold: threshold,
		currency:  currency,
		metrics:   metrics,
	}, nil
}

func (e *Engine) Allocate(ctx context.Context, req domain.Request) ([]domain.TierOutcome, error) {
	premiumCap := max(req.Premium, 0)
	economyCap := max(req.Economy, 0)

	e.log.Info("allocation requested",
		zap.Int("premium_rooms", req.Premium),
		zap.Int("economy_rooms", req.Economy),
	)

	if premiumCap == 0 && economyCap == 0 {
		e.metrics.RecordAllocation(ctx, "empty")
		return []domain.TierOutcome{}, nil
	}

	var premium []customerdomain.Customer
	if premiumCap > 0 {
		admitted, err := e.index.TopAtOrAbove(e.threshold, premiumCap)
		if err != nil {
			e.metrics.RecordAllocation(ctx, "error")
			return nil, err
		}
		premium = admitted
	}
	shortfall := max(0, premiumCap-len(premium))

	var economy []customerdomain.Customer
	if economyCap > 0 || shortfall > 0 {
		candidates, err := e.index.BelowThreshold(e.threshold, saturatingAdd(economyCap, shortfall))
		if err != nil {
			e.metrics.RecordAllocation(ctx, "error")
			return nil, err
		}
		upgrade := max(0, len(candidates)-economyCap)
		premium = append(premium[:len(premium):len(premium)], candidates[:upgrade]...)
		economy = candidates[upgrade:]

		if upgrade > 0 {
			e.log.Debug("economy customers upgraded", zap.Int("count", upgrade))
		}
	}

	outcomes := make([]domain.TierOutcome, 0, 2)
	if len(premium) > 0 {
		outcomes = append(outcomes, e.outcome(domain.TierPremium, premium))
	}
	if len(economy) > 0 {
		outcomes = append(outcomes, e.outcome(domain.TierEconomy, economy))
	}

	for _, o := range outcomes {
		e.metrics.RecordAdmitted(ctx, string(o.RoomType), o.CustomersCount)
	}
	e.metrics.RecordAllocation(ctx, "ok")
	e.log.Info("allocation computed", zap.Any("outcomes", outcomes))

	return outcomes, nil
}

func (e *Engine) outcome(tier domain.Tier, customers []customerdomain.Customer) domain.TierOutcome {
	total := decimal.Zero
	for _, c := range customers {
		total = total.Add(c.PriceOffer)
	}
	return domain.TierOutcome{
		RoomType:       tier,
		CustomersCount: len(customers),
		TotalPrice:     total,
		Currency:       e.currency,
	}
}

var _ domain.Service = (*Engine)(nil)

// saturatingAdd adds two non-negative capacities, clamping at math.MaxInt.
func saturatingAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
