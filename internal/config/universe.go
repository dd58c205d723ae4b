package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// UniverseEntry describes one instrument in the startup universe. Symbols
// must be unique across the file; Alertable marks instruments that accept
// one-shot price alerts.
type UniverseEntry struct {
	Symbol       string  `yaml:"symbol"`
	InitialPrice float64 `yaml:"initial_price"` // dollars
	Alertable    bool    `yaml:"alertable"`
}

// universeFile is the YAML document shape for UNIVERSE_FILE.
type universeFile struct {
	Instruments []UniverseEntry `yaml:"instruments"`
}

// DefaultUniverse returns the built-in instrument set used when no
// universe file is configured.
func DefaultUniverse() []UniverseEntry {
	return []UniverseEntry{
		{Symbol: "AAPL", InitialPrice: 150.00, Alertable: true},
		{Symbol: "GOOGL", InitialPrice: 2800.00, Alertable: true},
		{Symbol: "MSFT", InitialPrice: 300.00, Alertable: true},
		{Symbol: "AMZN", InitialPrice: 3400.00, Alertable: false},
		{Symbol: "TSLA", InitialPrice: 700.00, Alertable: false},
	}
}

// LoadUniverse reads and validates an instrument universe from a YAML
// file. Order in the file is the advancement and listing order.
func LoadUniverse(path string) ([]UniverseEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read universe file: %w", err)
	}

	var f universeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse universe file: %w", err)
	}
	if len(f.Instruments) == 0 {
		return nil, fmt.Errorf("universe file %s defines no instruments", path)
	}

	seen := make(map[string]bool, len(f.Instruments))
	for i, e := range f.Instruments {
		if e.Symbol == "" {
			return nil, fmt.Errorf("universe entry %d has no symbol", i)
		}
		if seen[e.Symbol] {
			return nil, fmt.Errorf("duplicate symbol %q in universe file", e.Symbol)
		}
		seen[e.Symbol] = true
		if e.InitialPrice <= 0 {
			return nil, fmt.Errorf("symbol %q has non-positive initial price", e.Symbol)
		}
	}
	return f.Instruments, nil
}
