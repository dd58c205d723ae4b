package service

import (
	"errors"
	"testing"

	"github.com/efreitasn/marketsim/internal/domain"
	"github.com/efreitasn/marketsim/internal/engine"
	"github.com/efreitasn/marketsim/internal/store"
)

func newTestTradingService(balanceCents int64) (*TradingService, *engine.Market, *store.TradeJournal) {
	market := engine.NewMarket([]domain.Instrument{
		domain.NewStock("AAPL", 150_00),
		domain.NewAlertStock("GOOGL", 2800_00),
	})
	journal := store.NewTradeJournal()
	portfolio := domain.NewPortfolio(balanceCents)
	return NewTradingService(market, portfolio, journal), market, journal
}

func TestTradingService_Buy_UsesCurrentMarketPrice(t *testing.T) {
	svc, _, journal := newTestTradingService(1000_00)

	conf, err := svc.Buy("AAPL", 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if conf.PriceCents != 150_00 {
		t.Errorf("execution price = %d, want the quoted 15000", conf.PriceCents)
	}
	if conf.TotalCents != 750_00 {
		t.Errorf("total = %d, want 75000", conf.TotalCents)
	}
	if journal.Len() != 1 {
		t.Errorf("journal has %d trades, want 1", journal.Len())
	}
}

func TestTradingService_Buy_UnknownSymbol(t *testing.T) {
	svc, _, journal := newTestTradingService(1000_00)

	_, err := svc.Buy("TSLA", 1)
	if !errors.Is(err, domain.ErrSymbolNotFound) {
		t.Fatalf("expected ErrSymbolNotFound, got %v", err)
	}
	if journal.Len() != 0 {
		t.Error("failed buy must not be journaled")
	}
}

func TestTradingService_Buy_MalformedSymbol(t *testing.T) {
	svc, _, _ := newTestTradingService(1000_00)

	var ve *domain.ValidationError
	if _, err := svc.Buy("aapl!", 1); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestTradingService_Buy_InsufficientFundsNotJournaled(t *testing.T) {
	svc, _, journal := newTestTradingService(1000_00)

	_, err := svc.Buy("GOOGL", 3)
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if journal.Len() != 0 {
		t.Error("failed buy must not be journaled")
	}
}

func TestTradingService_SellRoundTrip(t *testing.T) {
	svc, _, journal := newTestTradingService(1000_00)

	if _, err := svc.Buy("AAPL", 5); err != nil {
		t.Fatalf("buy failed: %v", err)
	}

	conf, err := svc.Sell("AAPL", 5)
	if err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	// Price has not moved between the trades, so realized P/L is zero.
	if conf.ProfitLossCents != 0 {
		t.Errorf("profit = %d, want 0 at unchanged price", conf.ProfitLossCents)
	}
	if journal.Len() != 2 {
		t.Errorf("journal has %d trades, want 2", journal.Len())
	}

	history := svc.History()
	if len(history) != 2 {
		t.Fatalf("history has %d trades, want 2", len(history))
	}
	if history[0].Side != domain.TradeSideBuy || history[1].Side != domain.TradeSideSell {
		t.Errorf("history order = %s,%s, want buy,sell", history[0].Side, history[1].Side)
	}
}

func TestTradingService_HistoryBySymbol(t *testing.T) {
	svc, _, _ := newTestTradingService(10_000_00)

	if _, err := svc.Buy("AAPL", 1); err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	if _, err := svc.Buy("GOOGL", 3); err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	if _, err := svc.Sell("AAPL", 1); err != nil {
		t.Fatalf("sell failed: %v", err)
	}

	aapl := svc.HistoryBySymbol("AAPL")
	if len(aapl) != 2 {
		t.Fatalf("AAPL history has %d trades, want 2", len(aapl))
	}
	if aapl[0].Side != domain.TradeSideBuy || aapl[1].Side != domain.TradeSideSell {
		t.Errorf("AAPL history order = %s,%s, want buy,sell", aapl[0].Side, aapl[1].Side)
	}

	googl := svc.HistoryBySymbol("GOOGL")
	if len(googl) != 1 {
		t.Fatalf("GOOGL history has %d trades, want 1", len(googl))
	}

	if got := svc.HistoryBySymbol("TSLA"); len(got) != 0 {
		t.Errorf("untracked symbol should have empty history, got %d", len(got))
	}
}

func TestTradingService_Sell_Oversell(t *testing.T) {
	svc, _, _ := newTestTradingService(1000_00)

	_, err := svc.Sell("AAPL", 1)
	if !errors.Is(err, domain.ErrInsufficientShares) {
		t.Fatalf("expected ErrInsufficientShares, got %v", err)
	}
}

func TestTradingService_SetAlert(t *testing.T) {
	svc, market, _ := newTestTradingService(1000_00)

	if err := svc.SetAlert("GOOGL", 2900_00); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	inst, _ := market.Lookup("GOOGL")
	alertable := inst.(*domain.AlertStock)
	if alertable.AlertThreshold() != 2900_00 {
		t.Errorf("threshold = %d, want 290000", alertable.AlertThreshold())
	}

	if err := svc.ClearAlert("GOOGL"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if alertable.AlertThreshold() != 0 {
		t.Errorf("threshold = %d after clear, want 0", alertable.AlertThreshold())
	}
}

func TestTradingService_SetAlert_PlainInstrument(t *testing.T) {
	svc, _, _ := newTestTradingService(1000_00)

	err := svc.SetAlert("AAPL", 200_00)
	if !errors.Is(err, domain.ErrAlertNotSupported) {
		t.Fatalf("expected ErrAlertNotSupported, got %v", err)
	}
}

func TestTradingService_SetAlert_Validation(t *testing.T) {
	svc, _, _ := newTestTradingService(1000_00)

	var ve *domain.ValidationError
	if err := svc.SetAlert("GOOGL", 0); !errors.As(err, &ve) {
		t.Fatalf("zero threshold: expected ValidationError, got %v", err)
	}
	if err := svc.SetAlert("TSLA", 100_00); !errors.Is(err, domain.ErrSymbolNotFound) {
		t.Fatalf("unknown symbol: expected ErrSymbolNotFound, got %v", err)
	}
}
