package index

import (
	"sync/atomic"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/roommanager/internal/customer/domain"
)

// State is either Uninitialized or Ready.
type State interface {
	state()
}

type Uninitialized struct{}

type Ready struct {
	Index *Sorted
}

func (Uninitialized) state() {}
func (Ready) state()         {}

// Holder publishes the current index to concurrent readers. Store swaps the
// whole reference so a reader sees either the previous or the next snapshot.
type Holder struct {
	current atomic.Pointer[Sorted]
}

func NewHolder() *Holder {
	return &Holder{}
}

func (h *Holder) Snapshot() State {
	idx := h.current.Load()
	if idx == nil {
		return Uninitialized{}
	}
	return Ready{Index: idx}
}

// Store publishes idx. A nil idx is ignored so a holder never reports ready
// without a loaded index.
func (h *Holder) Store(idx *Sorted) {
	if idx == nil {
		return
	}
	h.current.Store(idx)
}

func (h *Holder) TopAtOrAbove(threshold decimal.Decimal, limit int) ([]domain.Customer, error) {
	ready, ok := h.Snapshot().(Ready)
	if !ok {
		return nil, domain.ErrIndexUninitialized
	}
	return ready.Index.TopAtOrAbove(threshold, limit), nil
}

func (h *Holder) BelowThreshold(threshold decimal.Decimal, limit int) ([]domain.Customer, error) {
	ready, ok := h.Snapshot().(Ready)
	if !ok {
		return nil, domain.ErrIndexUninitialized
	}
	return ready.Index.BelowThreshold(threshold, limit), nil
}

var _ domain.Index = (*Holder)(nil)
