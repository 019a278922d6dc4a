package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/roommanager/internal/customer/domain"
	"golang.org/x/sync/errgroup"
)

// Multi loads several sources concurrently and concatenates them in declared
// order, so equal offers keep a deterministic relative order in the index.
type Multi struct {
	sources []domain.Source
}

func NewMulti(sources ...domain.Source) *Multi {
	return &Multi{sources: sources}
}

func (m *Multi) Name() string {
	names := make([]string, 0, len(m.sources))
	for _, s := range m.sources {
		names = append(names, s.Name())
	}
	return strings.Join(names, "+")
}

func (m *Multi) Load(ctx context.Context) ([]decimal.Decimal, error) {
	results := make([][]decimal.Decimal, len(m.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range m.sources {
		g.Go(func() error {
			prices, err := s.Load(gctx)
			if err != nil {
				return fmt.Errorf("%s: %w", s.Name(), err)
			}
			results[i] = prices
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make([]decimal.Decimal, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}
