package service

import (
	"math"
	"sort"

	"github.com/efreitasn/marketsim/internal/domain"
	"github.com/efreitasn/marketsim/internal/engine"
)

// mulSat multiplies non-negative cents values, saturating at MaxInt64 so a
// huge position renders as a capped figure instead of wrapping negative.
func mulSat(a, b int64) int64 {
	if a > 0 && b > math.MaxInt64/a {
		return math.MaxInt64
	}
	return a * b
}

// PositionRow is the read-only projection of one open position against the
// current market prices.
type PositionRow struct {
	Symbol               string
	Shares               int64
	CurrentPriceCents    int64
	TotalInvestmentCents int64 // cost basis × shares
	CurrentValueCents    int64 // current price × shares
	ProfitLossCents      int64 // unrealized, current value − investment
}

// ReportService projects the portfolio and the live instrument prices into
// per-position rows. It is purely read-only.
type ReportService struct {
	market    *engine.Market
	portfolio *domain.Portfolio
}

// NewReportService creates a ReportService over the given market and
// portfolio.
func NewReportService(market *engine.Market, portfolio *domain.Portfolio) *ReportService {
	return &ReportService{
		market:    market,
		portfolio: portfolio,
	}
}

// Snapshot returns one row per symbol with open holdings, sorted by symbol.
// Symbols with zero holdings are omitted. The current price is resolved by
// linear lookup against the live instrument collection; a symbol absent
// from the collection prices at 0, degrading current value and
// profit/loss to −investment.
func (s *ReportService) Snapshot() []PositionRow {
	holdings := s.portfolio.Holdings()

	symbols := make([]string, 0, len(holdings))
	for sym := range holdings {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	rows := make([]PositionRow, 0, len(symbols))
	for _, sym := range symbols {
		shares := holdings[sym]
		basis, _ := s.portfolio.CostBasis(sym)
		price := s.market.PriceOf(sym)

		investment := mulSat(basis, shares)
		value := mulSat(price, shares)
		rows = append(rows, PositionRow{
			Symbol:               sym,
			Shares:               shares,
			CurrentPriceCents:    price,
			TotalInvestmentCents: investment,
			CurrentValueCents:    value,
			ProfitLossCents:      value - investment,
		})
	}
	return rows
}

// Balance returns the portfolio's cash balance in cents.
func (s *ReportService) Balance() int64 {
	return s.portfolio.Balance()
}
