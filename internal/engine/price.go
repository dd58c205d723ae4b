package engine

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/efreitasn/marketsim/internal/domain"
)

// AlertNotifier receives price alerts raised during advancement, letting
// the engine hand them off without depending on the presentation layer.
type AlertNotifier interface {
	NotifyPriceAlert(alert domain.PriceAlert)
}

// PriceEngine drives price advancement across the market, either one step
// at a time (menu-triggered) or repeatedly on a timer (background
// simulation). The random generator is an explicit handle seeded once at
// startup, so tests can supply a fixed seed.
type PriceEngine struct {
	market   *Market
	rng      *rand.Rand
	notifier AlertNotifier
}

// NewPriceEngine creates a PriceEngine. notifier may be nil, in which case
// alerts are dropped.
func NewPriceEngine(market *Market, rng *rand.Rand, notifier AlertNotifier) *PriceEngine {
	return &PriceEngine{
		market:   market,
		rng:      rng,
		notifier: notifier,
	}
}

// AdvanceAll advances every instrument once, in collection order. Each
// instrument's price change is visible as soon as its step returns, and any
// alert it raised is forwarded before the next instrument advances. There
// is no batching or rollback.
func (e *PriceEngine) AdvanceAll() {
	for _, inst := range e.market.Instruments() {
		if alert := inst.Advance(e.rng); alert != nil && e.notifier != nil {
			e.notifier.NotifyPriceAlert(*alert)
		}
	}
}

// RunSimulation calls AdvanceAll once per tick, waiting interval between
// ticks, for the given number of ticks. It blocks until the tick count is
// reached; cancelling ctx is the only early exit. Run it on its own
// goroutine and join before entering the interactive phase.
func (e *PriceEngine) RunSimulation(ctx context.Context, ticks int, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for done := 0; done < ticks; {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.AdvanceAll()
			done++
			slog.Debug("simulation tick", slog.Int("tick", done), slog.Int("total", ticks))
		}
	}
}
