package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/efreitasn/marketsim/internal/domain"
)

// Config holds all runtime configuration for the market simulator.
type Config struct {
	InitialBalanceCents int64
	SimTicks            int
	TickInterval        time.Duration
	LogLevel            string
	UniverseFile        string // empty = built-in default universe
}

// Load reads configuration from environment variables, applies defaults,
// and validates values. It returns an error for any invalid value.
func Load() (*Config, error) {
	balance, err := getMoney("INITIAL_BALANCE", 1000_00)
	if err != nil {
		return nil, fmt.Errorf("invalid INITIAL_BALANCE: %w", err)
	}
	if balance < 0 {
		return nil, fmt.Errorf("invalid INITIAL_BALANCE: must not be negative")
	}

	simTicks, err := getInt("SIM_TICKS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid SIM_TICKS: %w", err)
	}
	if simTicks < 0 {
		return nil, fmt.Errorf("invalid SIM_TICKS: must not be negative")
	}

	tickInterval, err := getDuration("TICK_INTERVAL", 1*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid TICK_INTERVAL: %w", err)
	}
	if tickInterval <= 0 {
		return nil, fmt.Errorf("invalid TICK_INTERVAL: must be positive")
	}

	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	return &Config{
		InitialBalanceCents: balance,
		SimTicks:            simTicks,
		TickInterval:        tickInterval,
		LogLevel:            logLevel,
		UniverseFile:        getStr("UNIVERSE_FILE", ""),
	}, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(v)
}

// getMoney parses a dollar amount (e.g. "1000" or "1000.50") into cents.
func getMoney(key string, defaultCents int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultCents, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	return domain.DollarsToCents(f)
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
