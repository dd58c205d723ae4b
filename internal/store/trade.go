package store

import (
	"sync"

	"github.com/google/btree"

	"github.com/efreitasn/marketsim/internal/domain"
)

// entryLess orders journal entries by execution time ascending, then by
// trade ID so iteration over same-timestamp trades is deterministic.
func entryLess(a, b *domain.TradeConfirmation) bool {
	if !a.ExecutedAt.Equal(b.ExecutedAt) {
		return a.ExecutedAt.Before(b.ExecutedAt)
	}
	return a.TradeID < b.TradeID
}

// TradeJournal is a thread-safe, append-only record of executed trades
// kept in execution-time order.
type TradeJournal struct {
	mu     sync.RWMutex
	trades *btree.BTreeG[*domain.TradeConfirmation]
}

// NewTradeJournal creates an empty TradeJournal.
func NewTradeJournal() *TradeJournal {
	return &TradeJournal{
		trades: btree.NewG(2, entryLess),
	}
}

// Append records a trade confirmation.
func (j *TradeJournal) Append(t *domain.TradeConfirmation) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.trades.ReplaceOrInsert(t)
}

// List returns every recorded trade in execution order.
func (j *TradeJournal) List() []*domain.TradeConfirmation {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]*domain.TradeConfirmation, 0, j.trades.Len())
	j.trades.Ascend(func(t *domain.TradeConfirmation) bool {
		out = append(out, t)
		return true
	})
	return out
}

// ListBySymbol returns the symbol's trades in execution order. Returns an
// empty slice when the symbol has never traded.
func (j *TradeJournal) ListBySymbol(symbol string) []*domain.TradeConfirmation {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := []*domain.TradeConfirmation{}
	j.trades.Ascend(func(t *domain.TradeConfirmation) bool {
		if t.Symbol == symbol {
			out = append(out, t)
		}
		return true
	})
	return out
}

// Len returns the number of recorded trades.
func (j *TradeJournal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return j.trades.Len()
}
