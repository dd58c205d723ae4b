package domain

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
)

// mulOverflows reports whether a×b overflows int64 for non-negative inputs.
func mulOverflows(a, b int64) bool {
	return a > 0 && b > math.MaxInt64/a
}

// Portfolio is the cash-and-holdings ledger for a run. It tracks the cash
// balance, per-symbol share counts, and the first-lot purchase price used
// as cost basis for realized profit/loss. All mutations go through Buy and
// Sell, which are all-or-nothing: a failed call leaves every field untouched.
type Portfolio struct {
	mu       sync.Mutex
	balance  int64            // cents
	holdings map[string]int64 // symbol → share count, absent = 0
	basis    map[string]int64 // symbol → first-lot price in cents, key present iff position open
}

// NewPortfolio creates a Portfolio with the given starting balance in cents.
func NewPortfolio(initialBalanceCents int64) *Portfolio {
	return &Portfolio{
		balance:  initialBalanceCents,
		holdings: make(map[string]int64),
		basis:    make(map[string]int64),
	}
}

// Balance returns the current cash balance in cents.
func (p *Portfolio) Balance() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.balance
}

// Holdings returns a copy of the symbol → share count map. Only open
// positions appear; unseen symbols are implicitly zero.
func (p *Portfolio) Holdings() map[string]int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]int64, len(p.holdings))
	for sym, qty := range p.holdings {
		out[sym] = qty
	}
	return out
}

// CostBasis returns the recorded first-lot purchase price for the symbol
// and whether a position is open.
func (p *Portfolio) CostBasis(symbol string) (int64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, ok := p.basis[symbol]
	return b, ok
}

// Buy purchases quantity shares at priceCents each. It returns
// ErrInsufficientFunds when the total cost exceeds the balance; there are
// no partial buys. The cost basis is recorded on the first lot only —
// buying more of an open position at a different price does not move it.
func (p *Portfolio) Buy(symbol string, priceCents, quantity int64) (*TradeConfirmation, error) {
	if quantity <= 0 {
		return nil, &ValidationError{Message: "quantity must be a positive integer"}
	}
	if priceCents <= 0 {
		return nil, &ValidationError{Message: "price must be positive"}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// An overflowing cost would wrap negative and slip past the balance
	// check; it necessarily exceeds any balance, so reject it the same way.
	if mulOverflows(priceCents, quantity) {
		return nil, ErrInsufficientFunds
	}
	cost := priceCents * quantity
	if cost > p.balance {
		return nil, ErrInsufficientFunds
	}
	if quantity > math.MaxInt64-p.holdings[symbol] {
		return nil, &ValidationError{Message: "position size exceeds representable amount"}
	}

	p.balance -= cost
	p.holdings[symbol] += quantity
	if _, ok := p.basis[symbol]; !ok {
		p.basis[symbol] = priceCents
	}

	return &TradeConfirmation{
		TradeID:    uuid.NewString(),
		Side:       TradeSideBuy,
		Symbol:     symbol,
		Quantity:   quantity,
		PriceCents: priceCents,
		TotalCents: cost,
		ExecutedAt: time.Now(),
	}, nil
}

// Sell liquidates quantity shares at priceCents each. It returns
// ErrInsufficientShares when the position is smaller than quantity (an
// unseen symbol behaves as zero holdings). Realized profit/loss is
// (price − basis) × quantity against the first-lot basis. When the
// position reaches exactly zero the basis entry is cleared, so a future
// buy starts a fresh basis.
func (p *Portfolio) Sell(symbol string, priceCents, quantity int64) (*TradeConfirmation, error) {
	if quantity <= 0 {
		return nil, &ValidationError{Message: "quantity must be a positive integer"}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.holdings[symbol] < quantity {
		return nil, ErrInsufficientShares
	}

	basis := p.basis[symbol]

	// Proceeds, the basis side of the P/L, and the balance credit must all
	// stay representable, or the ledger would wrap negative.
	if mulOverflows(priceCents, quantity) || mulOverflows(basis, quantity) {
		return nil, &ValidationError{Message: "trade value exceeds representable amount"}
	}
	proceeds := priceCents * quantity
	if proceeds > math.MaxInt64-p.balance {
		return nil, &ValidationError{Message: "trade value exceeds representable amount"}
	}

	p.holdings[symbol] -= quantity
	p.balance += proceeds

	pl := (priceCents - basis) * quantity
	plPct := float64(pl) / float64(basis*quantity) * 100

	if p.holdings[symbol] == 0 {
		delete(p.holdings, symbol)
		delete(p.basis, symbol)
	}

	return &TradeConfirmation{
		TradeID:         uuid.NewString(),
		Side:            TradeSideSell,
		Symbol:          symbol,
		Quantity:        quantity,
		PriceCents:      priceCents,
		TotalCents:      proceeds,
		ProfitLossCents: pl,
		ProfitLossPct:   plPct,
		ExecutedAt:      time.Now(),
	}, nil
}
