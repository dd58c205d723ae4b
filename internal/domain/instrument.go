package domain

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// MinPriceCents is the hard floor every price step clamps to ($1.00).
const MinPriceCents int64 = 100

// maxStepBps bounds a single price step to ±5.00%, drawn in basis points
// (0.01 percentage point granularity → 1001 possible outcomes).
const maxStepBps = 500

// PriceAlert is the notification produced when an armed alert threshold
// is reached by a price step.
type PriceAlert struct {
	Symbol         string
	ThresholdCents int64
	PriceCents     int64
	At             time.Time
}

// Instrument is a tradable symbol with a live price that knows how to
// advance itself by one random step. Advance returns a non-nil PriceAlert
// only for alert-bearing instruments whose armed threshold the step reached.
type Instrument interface {
	Symbol() string
	Price() int64
	Advance(rng *rand.Rand) *PriceAlert
}

// Stock is the plain instrument kind: an immutable symbol and a live price
// in cents. The price mutex keeps a concurrent reader from observing a
// partially applied step.
type Stock struct {
	symbol string
	mu     sync.Mutex
	price  int64 // cents
}

// NewStock creates a Stock with the given symbol and initial price in cents.
func NewStock(symbol string, priceCents int64) *Stock {
	return &Stock{symbol: symbol, price: priceCents}
}

// Symbol returns the instrument's symbol.
func (s *Stock) Symbol() string {
	return s.symbol
}

// Price returns the current price in cents.
func (s *Stock) Price() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.price
}

// Advance applies one random price step. The plain kind never alerts.
func (s *Stock) Advance(rng *rand.Rand) *PriceAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step(rng)
	return nil
}

// step draws a uniform percentage move in [-5.00%, +5.00%] with basis-point
// granularity, applies it, and clamps to the price floor.
// Callers must hold mu.
func (s *Stock) step(rng *rand.Rand) {
	bps := int64(rng.Intn(2*maxStepBps+1) - maxStepBps)
	delta := int64(math.Round(float64(s.price) * float64(bps) / 10000))
	s.price += delta
	if s.price < MinPriceCents {
		s.price = MinPriceCents
	}
}

// AlertStock is a Stock that additionally carries an optional one-shot
// alert threshold. A threshold of 0 means no alert is armed.
type AlertStock struct {
	Stock
	alert int64 // cents, 0 = disarmed
}

// NewAlertStock creates an AlertStock with no alert armed.
func NewAlertStock(symbol string, priceCents int64) *AlertStock {
	return &AlertStock{Stock: Stock{symbol: symbol, price: priceCents}}
}

// SetAlert arms the alert at the given positive threshold in cents,
// overwriting any previously armed threshold (last write wins).
func (s *AlertStock) SetAlert(thresholdCents int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alert = thresholdCents
}

// ResetAlert disarms the alert.
func (s *AlertStock) ResetAlert() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alert = 0
}

// AlertThreshold returns the armed threshold in cents, or 0 when disarmed.
func (s *AlertStock) AlertThreshold() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alert
}

// CheckAlert reports whether an armed threshold has been reached at the
// current price.
func (s *AlertStock) CheckAlert() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alert > 0 && s.price >= s.alert
}

// Advance applies one random price step, then fires and disarms the alert
// if the armed threshold was reached. An alert fires at most once per
// arming; it is never re-armed automatically.
func (s *AlertStock) Advance(rng *rand.Rand) *PriceAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step(rng)
	if s.alert > 0 && s.price >= s.alert {
		a := &PriceAlert{
			Symbol:         s.symbol,
			ThresholdCents: s.alert,
			PriceCents:     s.price,
			At:             time.Now(),
		}
		s.alert = 0
		return a
	}
	return nil
}
