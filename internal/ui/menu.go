package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/efreitasn/marketsim/internal/domain"
	"github.com/efreitasn/marketsim/internal/engine"
	"github.com/efreitasn/marketsim/internal/service"
)

// MenuOption is one numbered entry of the interactive menu.
type MenuOption struct {
	Number  int
	Title   string
	Handler func() error
}

// Menu is the interactive trading loop. It runs on the caller's goroutine
// after the simulation phase has joined; every operation executes
// synchronously against the core. Malformed input is re-prompted here and
// never reaches the core, which only fails on semantic preconditions.
type Menu struct {
	scanner *bufio.Scanner
	out     io.Writer
	trading *service.TradingService
	report  *service.ReportService
	prices  *engine.PriceEngine
	market  *engine.Market
	options []MenuOption
	done    bool
}

// NewMenu creates the menu over the given input/output streams and core
// services.
func NewMenu(
	in io.Reader,
	out io.Writer,
	trading *service.TradingService,
	report *service.ReportService,
	prices *engine.PriceEngine,
	market *engine.Market,
) *Menu {
	m := &Menu{
		scanner: bufio.NewScanner(in),
		out:     out,
		trading: trading,
		report:  report,
		prices:  prices,
		market:  market,
	}

	m.options = []MenuOption{
		{Number: 1, Title: "Buy shares", Handler: m.handleBuy},
		{Number: 2, Title: "Sell shares", Handler: m.handleSell},
		{Number: 3, Title: "Show portfolio", Handler: m.handlePortfolio},
		{Number: 4, Title: "Show prices", Handler: m.handlePrices},
		{Number: 5, Title: "Advance prices once", Handler: m.handleAdvance},
		{Number: 6, Title: "Set price alert", Handler: m.handleSetAlert},
		{Number: 7, Title: "Clear price alert", Handler: m.handleClearAlert},
		{Number: 8, Title: "Trade history", Handler: m.handleHistory},
		{Number: 9, Title: "Exit", Handler: m.handleExit},
	}
	return m
}

// Run prompts for menu choices until Exit is selected or input ends.
// Operation failures are reported and the loop continues.
func (m *Menu) Run() {
	for !m.done {
		m.printOptions()

		line, ok := m.readLine("Select an option: ")
		if !ok {
			return
		}
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(m.out, "Please enter a number.")
			continue
		}

		opt, found := m.optionFor(choice)
		if !found {
			fmt.Fprintln(m.out, "No such option.")
			continue
		}
		if err := opt.Handler(); err != nil {
			fmt.Fprintln(m.out, errorMessage(err))
		}
	}
}

func (m *Menu) printOptions() {
	fmt.Fprintln(m.out)
	for _, opt := range m.options {
		fmt.Fprintf(m.out, "%d. %s\n", opt.Number, opt.Title)
	}
}

func (m *Menu) optionFor(number int) (MenuOption, bool) {
	for _, opt := range m.options {
		if opt.Number == number {
			return opt, true
		}
	}
	return MenuOption{}, false
}

// readLine prompts and reads one line. Returns false when input ends, which
// also ends the menu loop.
func (m *Menu) readLine(prompt string) (string, bool) {
	fmt.Fprint(m.out, prompt)
	if !m.scanner.Scan() {
		m.done = true
		return "", false
	}
	return m.scanner.Text(), true
}

// readSymbol prompts for a symbol and normalizes it to upper case.
func (m *Menu) readSymbol() (string, bool) {
	line, ok := m.readLine("Symbol: ")
	if !ok {
		return "", false
	}
	return strings.ToUpper(strings.TrimSpace(line)), true
}

// readPositiveInt re-prompts until a positive integer is entered.
func (m *Menu) readPositiveInt(prompt string) (int64, bool) {
	for {
		line, ok := m.readLine(prompt)
		if !ok {
			return 0, false
		}
		n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil || n <= 0 {
			fmt.Fprintln(m.out, "Please enter a positive whole number.")
			continue
		}
		return n, true
	}
}

// readMoney re-prompts until a positive dollar amount with at most two
// decimal places is entered. Returns the amount in cents.
func (m *Menu) readMoney(prompt string) (int64, bool) {
	for {
		line, ok := m.readLine(prompt)
		if !ok {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil || f <= 0 {
			fmt.Fprintln(m.out, "Please enter a positive amount.")
			continue
		}
		cents, err := domain.DollarsToCents(f)
		if err != nil {
			fmt.Fprintln(m.out, err.Error())
			continue
		}
		return cents, true
	}
}

func (m *Menu) handleBuy() error {
	symbol, ok := m.readSymbol()
	if !ok {
		return nil
	}
	qty, ok := m.readPositiveInt("Quantity: ")
	if !ok {
		return nil
	}

	conf, err := m.trading.Buy(symbol, qty)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Bought %d %s at %s for %s\n",
		conf.Quantity, conf.Symbol,
		domain.FormatCents(conf.PriceCents), domain.FormatCents(conf.TotalCents))
	return nil
}

func (m *Menu) handleSell() error {
	symbol, ok := m.readSymbol()
	if !ok {
		return nil
	}
	qty, ok := m.readPositiveInt("Quantity: ")
	if !ok {
		return nil
	}

	conf, err := m.trading.Sell(symbol, qty)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Sold %d %s at %s for %s (P/L %s, %.2f%%)\n",
		conf.Quantity, conf.Symbol,
		domain.FormatCents(conf.PriceCents), domain.FormatCents(conf.TotalCents),
		domain.FormatCents(conf.ProfitLossCents), conf.ProfitLossPct)
	return nil
}

func (m *Menu) handlePortfolio() error {
	fmt.Fprintf(m.out, "Cash balance: %s\n", domain.FormatCents(m.report.Balance()))

	rows := m.report.Snapshot()
	if len(rows) == 0 {
		fmt.Fprintln(m.out, "No open positions.")
		return nil
	}

	fmt.Fprintf(m.out, "%-8s %8s %12s %14s %14s %12s\n",
		"SYMBOL", "SHARES", "PRICE", "INVESTED", "VALUE", "P/L")
	for _, r := range rows {
		fmt.Fprintf(m.out, "%-8s %8d %12s %14s %14s %12s\n",
			r.Symbol, r.Shares,
			domain.FormatCents(r.CurrentPriceCents),
			domain.FormatCents(r.TotalInvestmentCents),
			domain.FormatCents(r.CurrentValueCents),
			domain.FormatCents(r.ProfitLossCents))
	}
	return nil
}

func (m *Menu) handlePrices() error {
	for _, q := range m.market.Quotes() {
		fmt.Fprintf(m.out, "%-8s %12s\n", q.Symbol, domain.FormatCents(q.PriceCents))
	}
	return nil
}

func (m *Menu) handleAdvance() error {
	m.prices.AdvanceAll()
	fmt.Fprintln(m.out, "Prices updated.")
	return nil
}

func (m *Menu) handleSetAlert() error {
	symbol, ok := m.readSymbol()
	if !ok {
		return nil
	}
	threshold, ok := m.readMoney("Alert price: ")
	if !ok {
		return nil
	}

	if err := m.trading.SetAlert(symbol, threshold); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Alert set on %s at %s\n", symbol, domain.FormatCents(threshold))
	return nil
}

func (m *Menu) handleClearAlert() error {
	symbol, ok := m.readSymbol()
	if !ok {
		return nil
	}

	if err := m.trading.ClearAlert(symbol); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Alert cleared on %s\n", symbol)
	return nil
}

func (m *Menu) handleHistory() error {
	line, ok := m.readLine("Symbol (blank for all): ")
	if !ok {
		return nil
	}
	symbol := strings.ToUpper(strings.TrimSpace(line))

	var trades []*domain.TradeConfirmation
	if symbol == "" {
		trades = m.trading.History()
	} else {
		trades = m.trading.HistoryBySymbol(symbol)
	}
	if len(trades) == 0 {
		if symbol == "" {
			fmt.Fprintln(m.out, "No trades yet.")
		} else {
			fmt.Fprintf(m.out, "No trades for %s.\n", symbol)
		}
		return nil
	}
	for _, t := range trades {
		line := fmt.Sprintf("%s  %-4s %-8s %6d @ %s = %s",
			t.ExecutedAt.Format("15:04:05"), t.Side, t.Symbol,
			t.Quantity, domain.FormatCents(t.PriceCents), domain.FormatCents(t.TotalCents))
		if t.Side == domain.TradeSideSell {
			line += fmt.Sprintf("  (P/L %s)", domain.FormatCents(t.ProfitLossCents))
		}
		fmt.Fprintln(m.out, line)
	}
	return nil
}

func (m *Menu) handleExit() error {
	m.done = true
	fmt.Fprintln(m.out, "Goodbye.")
	return nil
}

// errorMessage maps core errors to user-facing messages.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "Not enough cash for that purchase."
	case errors.Is(err, domain.ErrInsufficientShares):
		return "Not enough shares to sell."
	case errors.Is(err, domain.ErrSymbolNotFound):
		return "Symbol not found."
	case errors.Is(err, domain.ErrAlertNotSupported):
		return "That instrument does not support price alerts."
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return fmt.Sprintf("Operation failed: %v", err)
}
