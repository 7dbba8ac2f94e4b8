// src/parsers/instruments.go
package parsers

import (
	"sort"
	"strings"
)

// pointValues maps canonical futures roots to their per-point dollar value.
// Unknown instruments resolve to 1 so equities and anything unrecognized pass
// through unscaled. Additional instruments are registered from configuration
// at startup; the reconciler only ever sees the multiplier on RowMeta.
var pointValues = map[string]float64{
	"NQ":  20,
	"MNQ": 2,
	"ES":  50,
	"MES": 5,
	"YM":  5,
	"MYM": 0.5,
	"RTY": 50,
	"M2K": 5,
	"GC":  100,
	"MGC": 10,
	"CL":  1000,
	"MCL": 100,
}

// roots sorted longest-first so micro roots (MNQ) win over their full-size
// prefix (NQ). Rebuilt on registration; registration happens only at startup.
var sortedRoots = buildSortedRoots()

func buildSortedRoots() []string {
	roots := make([]string, 0, len(pointValues))
	for r := range pointValues {
		roots = append(roots, r)
	}
	sort.Slice(roots, func(i, j int) bool {
		if len(roots[i]) != len(roots[j]) {
			return len(roots[i]) > len(roots[j])
		}
		return roots[i] < roots[j]
	})
	return roots
}

// RegisterInstrument adds or overrides a multiplier-table entry. Called during
// startup for entries contributed by config/brokers.yaml; not safe for use
// after imports have begun.
func RegisterInstrument(symbol string, multiplier float64) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" || multiplier <= 0 {
		return
	}
	pointValues[symbol] = multiplier
	sortedRoots = buildSortedRoots()
}

// NormalizeTicker maps raw ticker text to a canonical symbol. An
// exchange-qualified continuous contract ("CME_MINI:NQ1!") collapses to its
// root, a symbol beginning with a known micro or full-size root collapses to
// that root, and anything else passes through as typed.
func NormalizeTicker(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return trimmed
	}
	candidate := strings.ToUpper(trimmed)
	if i := strings.LastIndex(candidate, ":"); i >= 0 {
		candidate = candidate[i+1:]
	}
	for _, root := range sortedRoots {
		if strings.HasPrefix(candidate, root) {
			return root
		}
	}
	return trimmed
}

// Multiplier returns the per-point dollar multiplier for a canonical symbol.
func Multiplier(symbol string) float64 {
	if m, ok := pointValues[strings.ToUpper(strings.TrimSpace(symbol))]; ok {
		return m
	}
	return 1
}

// IsFuturesRoot reports whether a canonical symbol is a known futures root.
// Used to decide whether a flat per-contract fee override applies to a row.
func IsFuturesRoot(symbol string) bool {
	_, ok := pointValues[strings.ToUpper(strings.TrimSpace(symbol))]
	return ok
}
