package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/efreitasn/marketsim/internal/config"
	"github.com/efreitasn/marketsim/internal/domain"
	"github.com/efreitasn/marketsim/internal/engine"
	"github.com/efreitasn/marketsim/internal/service"
	"github.com/efreitasn/marketsim/internal/store"
	"github.com/efreitasn/marketsim/internal/ui"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level. Logs go to stderr so the
	// interactive menu on stdout stays readable.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Instrument universe: built-in set unless a file is configured.
	entries := config.DefaultUniverse()
	if cfg.UniverseFile != "" {
		entries, err = config.LoadUniverse(cfg.UniverseFile)
		if err != nil {
			logger.Error("failed to load universe", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	instruments, err := buildInstruments(entries)
	if err != nil {
		logger.Error("invalid universe", slog.String("error", err.Error()))
		os.Exit(1)
	}

	market := engine.NewMarket(instruments)

	// Process-wide randomness: one explicit generator, seeded once from the
	// clock so runs differ.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	notifier := ui.NewConsoleNotifier(os.Stdout)
	prices := engine.NewPriceEngine(market, rng, notifier)

	portfolio := domain.NewPortfolio(cfg.InitialBalanceCents)
	journal := store.NewTradeJournal()
	trading := service.NewTradingService(market, portfolio, journal)
	report := service.NewReportService(market, portfolio)

	// Ctrl-C during the simulation phase cancels it and exits.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Phase 1: timed simulation on its own goroutine, joined before any
	// trading is possible.
	if cfg.SimTicks > 0 {
		fmt.Printf("Simulating %d ticks (%s each)...\n", cfg.SimTicks, cfg.TickInterval)
		done := make(chan struct{})
		go func() {
			defer close(done)
			prices.RunSimulation(ctx, cfg.SimTicks, cfg.TickInterval)
		}()
		<-done
	}
	if ctx.Err() != nil {
		logger.Info("interrupted during simulation")
		return
	}

	// Phase 2: interactive menu, single-threaded on the main goroutine.
	menu := ui.NewMenu(os.Stdin, os.Stdout, trading, report, prices, market)
	menu.Run()

	logger.Info("session ended",
		slog.Int64("final_balance_cents", portfolio.Balance()),
		slog.Int("trades", journal.Len()),
	)
}

// buildInstruments converts universe entries into the run's instrument
// collection, preserving entry order.
func buildInstruments(entries []config.UniverseEntry) ([]domain.Instrument, error) {
	out := make([]domain.Instrument, 0, len(entries))
	for _, e := range entries {
		cents, err := domain.DollarsToCents(e.InitialPrice)
		if err != nil {
			return nil, fmt.Errorf("symbol %s: %w", e.Symbol, err)
		}
		if e.Alertable {
			out = append(out, domain.NewAlertStock(e.Symbol, cents))
		} else {
			out = append(out, domain.NewStock(e.Symbol, cents))
		}
	}
	return out, nil
}
