package service

import (
	"log/slog"
	"regexp"

	"github.com/efreitasn/marketsim/internal/domain"
	"github.com/efreitasn/marketsim/internal/engine"
	"github.com/efreitasn/marketsim/internal/store"
)

var symbolRegex = regexp.MustCompile(`^[A-Z]{1,10}$`)

// TradingService executes buy and sell operations against the portfolio.
// The execution price is read from the live market at call time: trades
// execute instantly at the instrument's current quoted price, with no
// partial fills. Confirmations are appended to the trade journal.
type TradingService struct {
	market    *engine.Market
	portfolio *domain.Portfolio
	journal   *store.TradeJournal
}

// NewTradingService creates a TradingService with the given dependencies.
func NewTradingService(
	market *engine.Market,
	portfolio *domain.Portfolio,
	journal *store.TradeJournal,
) *TradingService {
	return &TradingService{
		market:    market,
		portfolio: portfolio,
		journal:   journal,
	}
}

// Buy purchases quantity shares of symbol at the instrument's current
// price. Returns domain.ErrSymbolNotFound for an unknown symbol and
// domain.ErrInsufficientFunds when the cost exceeds the balance.
func (s *TradingService) Buy(symbol string, quantity int64) (*domain.TradeConfirmation, error) {
	if !symbolRegex.MatchString(symbol) {
		return nil, &domain.ValidationError{Message: "symbol must match ^[A-Z]{1,10}$"}
	}

	inst, err := s.market.Lookup(symbol)
	if err != nil {
		return nil, err
	}

	conf, err := s.portfolio.Buy(symbol, inst.Price(), quantity)
	if err != nil {
		return nil, err
	}
	s.journal.Append(conf)

	slog.Info("trade executed",
		slog.String("side", string(conf.Side)),
		slog.String("symbol", conf.Symbol),
		slog.Int64("quantity", conf.Quantity),
		slog.Int64("total_cents", conf.TotalCents),
	)
	return conf, nil
}

// Sell liquidates quantity shares of symbol at the instrument's current
// price. Returns domain.ErrSymbolNotFound for an unknown symbol and
// domain.ErrInsufficientShares when the position is too small.
func (s *TradingService) Sell(symbol string, quantity int64) (*domain.TradeConfirmation, error) {
	if !symbolRegex.MatchString(symbol) {
		return nil, &domain.ValidationError{Message: "symbol must match ^[A-Z]{1,10}$"}
	}

	inst, err := s.market.Lookup(symbol)
	if err != nil {
		return nil, err
	}

	conf, err := s.portfolio.Sell(symbol, inst.Price(), quantity)
	if err != nil {
		return nil, err
	}
	s.journal.Append(conf)

	slog.Info("trade executed",
		slog.String("side", string(conf.Side)),
		slog.String("symbol", conf.Symbol),
		slog.Int64("quantity", conf.Quantity),
		slog.Int64("total_cents", conf.TotalCents),
		slog.Int64("profit_loss_cents", conf.ProfitLossCents),
	)
	return conf, nil
}

// SetAlert arms a one-shot price alert on symbol at the given threshold,
// overwriting any previously armed threshold. Returns
// domain.ErrAlertNotSupported when the instrument is not alert-bearing.
func (s *TradingService) SetAlert(symbol string, thresholdCents int64) error {
	if thresholdCents <= 0 {
		return &domain.ValidationError{Message: "alert threshold must be positive"}
	}

	inst, err := s.market.Lookup(symbol)
	if err != nil {
		return err
	}
	alertable, ok := inst.(*domain.AlertStock)
	if !ok {
		return domain.ErrAlertNotSupported
	}

	alertable.SetAlert(thresholdCents)
	slog.Info("alert armed",
		slog.String("symbol", symbol),
		slog.Int64("threshold_cents", thresholdCents),
	)
	return nil
}

// ClearAlert disarms any alert on symbol. Clearing an unarmed alert is not
// an error.
func (s *TradingService) ClearAlert(symbol string) error {
	inst, err := s.market.Lookup(symbol)
	if err != nil {
		return err
	}
	alertable, ok := inst.(*domain.AlertStock)
	if !ok {
		return domain.ErrAlertNotSupported
	}

	alertable.ResetAlert()
	return nil
}

// History returns every executed trade in execution order.
func (s *TradingService) History() []*domain.TradeConfirmation {
	return s.journal.List()
}

// HistoryBySymbol returns the symbol's trades in execution order.
func (s *TradingService) HistoryBySymbol(symbol string) []*domain.TradeConfirmation {
	return s.journal.ListBySymbol(symbol)
}
