package ui

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/efreitasn/marketsim/internal/domain"
)

// ConsoleNotifier prints price alerts to the console and records them in
// the log. It satisfies engine.AlertNotifier.
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier creates a ConsoleNotifier writing to out.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

// NotifyPriceAlert reports a fired alert.
func (n *ConsoleNotifier) NotifyPriceAlert(a domain.PriceAlert) {
	fmt.Fprintf(n.out, "*** Price alert: %s reached %s (threshold %s)\n",
		a.Symbol, domain.FormatCents(a.PriceCents), domain.FormatCents(a.ThresholdCents))
	slog.Info("price alert reached",
		slog.String("symbol", a.Symbol),
		slog.Int64("threshold_cents", a.ThresholdCents),
		slog.Int64("price_cents", a.PriceCents),
	)
}
