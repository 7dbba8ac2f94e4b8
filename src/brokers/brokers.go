// src/brokers/brokers.go
package brokers

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile describes one statement source's conventions. The Schema text is
// documentation for user-facing display only; parsing never depends on it.
type Profile struct {
	Name      string `yaml:"name" json:"name"`
	Label     string `yaml:"label" json:"label"`
	Schema    string `yaml:"schema" json:"schema"`
	SideStyle string `yaml:"side_style" json:"sideStyle"` // "buy_sell" or "long_short"
	// FillsOnly marks brokers whose exports carry individual fills without a
	// realized PnL column. Imports from these sources go through FIFO
	// reconciliation; trade-level sources pass through unchanged.
	FillsOnly bool `yaml:"fills_only" json:"fillsOnly"`
}

// Instrument is an extra multiplier-table entry contributed by configuration.
type Instrument struct {
	Symbol     string  `yaml:"symbol"`
	Multiplier float64 `yaml:"multiplier"`
}

// Config is the on-disk shape of config/brokers.yaml.
type Config struct {
	Brokers     []Profile    `yaml:"brokers"`
	Instruments []Instrument `yaml:"instruments"`
}

// defaultProfiles covers the sources the application ships support for.
// A YAML file extends or overrides this set without code changes.
var defaultProfiles = []Profile{
	{
		Name:      "tradovate",
		Label:     "Tradovate",
		Schema:    "Fill-level export: Fill Time, Contract, B/S, Qty, Price, Commission",
		SideStyle: "buy_sell",
		FillsOnly: true,
	},
	{
		Name:      "ninjatrader",
		Label:     "NinjaTrader",
		Schema:    "Fill-level export: Time, Instrument, Action, Quantity, Price, Commission",
		SideStyle: "buy_sell",
		FillsOnly: true,
	},
	{
		Name:      "tradingview",
		Label:     "TradingView",
		Schema:    "Trade-level export: Date/Time, Symbol, Side, Type, Qty, P&L",
		SideStyle: "long_short",
	},
	{
		Name:      "generic",
		Label:     "Generic CSV",
		Schema:    "Any CSV with recognizable date, symbol, side, qty and pnl columns",
		SideStyle: "buy_sell",
	},
}

type Registry struct {
	profiles    []Profile
	byName      map[string]Profile
	instruments []Instrument
}

// NewRegistry builds a registry from the built-in profiles merged with the
// optional YAML file at path. A missing file is not an error; a malformed one is.
func NewRegistry(path string) (*Registry, error) {
	r := &Registry{byName: make(map[string]Profile)}
	for _, p := range defaultProfiles {
		r.add(p)
	}
	if path == "" {
		return r, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("reading broker config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing broker config %s: %w", path, err)
	}
	for _, p := range cfg.Brokers {
		r.add(p)
	}
	r.instruments = cfg.Instruments
	return r, nil
}

func (r *Registry) add(p Profile) {
	key := strings.ToLower(strings.TrimSpace(p.Name))
	if key == "" {
		return
	}
	if _, exists := r.byName[key]; exists {
		for i := range r.profiles {
			if strings.EqualFold(r.profiles[i].Name, key) {
				r.profiles[i] = p
				break
			}
		}
	} else {
		r.profiles = append(r.profiles, p)
	}
	r.byName[key] = p
}

// Get returns the profile for a broker name. Unknown names fall back to the
// generic trade-level profile so arbitrary statements remain importable.
func (r *Registry) Get(name string) Profile {
	if p, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p
	}
	return r.byName["generic"]
}

// List returns all registered profiles, built-ins first, in registration order.
func (r *Registry) List() []Profile {
	out := make([]Profile, len(r.profiles))
	copy(out, r.profiles)
	return out
}

// Instruments returns multiplier-table entries contributed by configuration.
func (r *Registry) Instruments() []Instrument {
	return r.instruments
}
