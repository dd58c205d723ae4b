package engine

import (
	"github.com/efreitasn/marketsim/internal/domain"
)

// Market owns the run's instrument collection. Membership is fixed at
// startup and never changes, so reads need no lock of their own; each
// instrument guards its own price. The slice order is the advancement and
// listing order.
type Market struct {
	instruments []domain.Instrument
}

// NewMarket creates a Market over the given ordered instrument set.
func NewMarket(instruments []domain.Instrument) *Market {
	return &Market{instruments: instruments}
}

// Instruments returns the ordered instrument collection. Callers must not
// modify the returned slice.
func (m *Market) Instruments() []domain.Instrument {
	return m.instruments
}

// Lookup resolves a symbol by linear scan over the collection. It returns
// domain.ErrSymbolNotFound when no instrument carries the symbol.
func (m *Market) Lookup(symbol string) (domain.Instrument, error) {
	for _, inst := range m.instruments {
		if inst.Symbol() == symbol {
			return inst, nil
		}
	}
	return nil, domain.ErrSymbolNotFound
}

// PriceOf returns the current price in cents for symbol, or 0 when the
// symbol is absent from the collection. The zero fallback is the reporting
// boundary case for positions whose instrument disappeared, not an error.
func (m *Market) PriceOf(symbol string) int64 {
	for _, inst := range m.instruments {
		if inst.Symbol() == symbol {
			return inst.Price()
		}
	}
	return 0
}

// Quote is a point-in-time symbol/price pair.
type Quote struct {
	Symbol     string
	PriceCents int64
}

// Quotes returns a snapshot of every instrument's current price in
// collection order.
func (m *Market) Quotes() []Quote {
	quotes := make([]Quote, 0, len(m.instruments))
	for _, inst := range m.instruments {
		quotes = append(quotes, Quote{Symbol: inst.Symbol(), PriceCents: inst.Price()})
	}
	return quotes
}
