package domain

import "time"

// TradeSide indicates whether a trade was a buy or a sell.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
)

// TradeConfirmation records one executed buy or sell against the portfolio.
// ProfitLossCents and ProfitLossPct are realized values and only set on sells.
type TradeConfirmation struct {
	TradeID         string
	Side            TradeSide
	Symbol          string
	Quantity        int64
	PriceCents      int64 // execution price per share
	TotalCents      int64 // price × quantity
	ProfitLossCents int64
	ProfitLossPct   float64
	ExecutedAt      time.Time
}
