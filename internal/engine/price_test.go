package engine

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/efreitasn/marketsim/internal/domain"
)

// fakeInstrument counts advances and returns queued alerts, recording the
// advancement order in a shared log.
type fakeInstrument struct {
	symbol   string
	advances int
	alerts   []*domain.PriceAlert
	order    *[]string
}

func (f *fakeInstrument) Symbol() string { return f.symbol }
func (f *fakeInstrument) Price() int64   { return 100_00 }

func (f *fakeInstrument) Advance(_ *rand.Rand) *domain.PriceAlert {
	f.advances++
	if f.order != nil {
		*f.order = append(*f.order, f.symbol)
	}
	if len(f.alerts) > 0 {
		a := f.alerts[0]
		f.alerts = f.alerts[1:]
		return a
	}
	return nil
}

// recordingNotifier captures forwarded alerts.
type recordingNotifier struct {
	alerts []domain.PriceAlert
}

func (n *recordingNotifier) NotifyPriceAlert(a domain.PriceAlert) {
	n.alerts = append(n.alerts, a)
}

func testEngineRNG() *rand.Rand {
	return rand.New(rand.NewSource(7))
}

func TestPriceEngine_AdvanceAll_EveryInstrumentOnceInOrder(t *testing.T) {
	var order []string
	a := &fakeInstrument{symbol: "AAPL", order: &order}
	b := &fakeInstrument{symbol: "GOOGL", order: &order}
	c := &fakeInstrument{symbol: "MSFT", order: &order}
	market := NewMarket([]domain.Instrument{a, b, c})
	eng := NewPriceEngine(market, testEngineRNG(), nil)

	eng.AdvanceAll()

	for _, f := range []*fakeInstrument{a, b, c} {
		if f.advances != 1 {
			t.Errorf("%s advanced %d times, want 1", f.symbol, f.advances)
		}
	}
	want := []string{"AAPL", "GOOGL", "MSFT"}
	if len(order) != len(want) {
		t.Fatalf("advancement order = %v, want %v", order, want)
	}
	for i, sym := range want {
		if order[i] != sym {
			t.Fatalf("advancement order = %v, want %v", order, want)
		}
	}
}

func TestPriceEngine_AdvanceAll_ForwardsAlerts(t *testing.T) {
	alert := &domain.PriceAlert{Symbol: "GOOGL", ThresholdCents: 2900_00, PriceCents: 2950_00}
	a := &fakeInstrument{symbol: "AAPL"}
	b := &fakeInstrument{symbol: "GOOGL", alerts: []*domain.PriceAlert{alert}}
	market := NewMarket([]domain.Instrument{a, b})
	notifier := &recordingNotifier{}
	eng := NewPriceEngine(market, testEngineRNG(), notifier)

	eng.AdvanceAll()

	if len(notifier.alerts) != 1 {
		t.Fatalf("got %d alerts, want 1", len(notifier.alerts))
	}
	if notifier.alerts[0].Symbol != "GOOGL" {
		t.Errorf("alert symbol = %q, want GOOGL", notifier.alerts[0].Symbol)
	}

	// Alert was one-shot: a second pass stays quiet.
	eng.AdvanceAll()
	if len(notifier.alerts) != 1 {
		t.Fatalf("one-shot alert forwarded %d times", len(notifier.alerts))
	}
}

func TestPriceEngine_AdvanceAll_NilNotifierDropsAlerts(t *testing.T) {
	b := &fakeInstrument{symbol: "GOOGL", alerts: []*domain.PriceAlert{{Symbol: "GOOGL"}}}
	market := NewMarket([]domain.Instrument{b})
	eng := NewPriceEngine(market, testEngineRNG(), nil)

	// Must not panic.
	eng.AdvanceAll()
}

func TestPriceEngine_AdvanceAll_RealInstrumentsRespectFloor(t *testing.T) {
	market := NewMarket([]domain.Instrument{
		domain.NewStock("PENNY", domain.MinPriceCents),
		domain.NewAlertStock("AAPL", 150_00),
	})
	eng := NewPriceEngine(market, testEngineRNG(), nil)

	for i := 0; i < 1000; i++ {
		eng.AdvanceAll()
	}
	for _, q := range market.Quotes() {
		if q.PriceCents < domain.MinPriceCents {
			t.Errorf("%s price %d below floor", q.Symbol, q.PriceCents)
		}
	}
}

func TestPriceEngine_RunSimulation_TickCount(t *testing.T) {
	a := &fakeInstrument{symbol: "AAPL"}
	b := &fakeInstrument{symbol: "GOOGL"}
	market := NewMarket([]domain.Instrument{a, b})
	eng := NewPriceEngine(market, testEngineRNG(), nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		eng.RunSimulation(context.Background(), 5, time.Millisecond)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("simulation did not finish")
	}

	if a.advances != 5 || b.advances != 5 {
		t.Errorf("advances = %d/%d, want 5/5", a.advances, b.advances)
	}
}

func TestPriceEngine_RunSimulation_CancelStopsEarly(t *testing.T) {
	a := &fakeInstrument{symbol: "AAPL"}
	market := NewMarket([]domain.Instrument{a})
	eng := NewPriceEngine(market, testEngineRNG(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		eng.RunSimulation(ctx, 1_000_000, time.Millisecond)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled simulation did not return")
	}
}
