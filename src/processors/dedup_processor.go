// src/processors/dedup_processor.go
package processors

import (
	"strconv"
	"strings"
	"time"

	"github.com/ldallalio/TradeWise/src/models"
)

const keyDelimiter = "|"

// TradeKey computes the deterministic fingerprint used for duplicate
// detection: ISO instant (or empty), lower-cased ticker/side/type, quantity
// and PnL to 4 decimal places (or empty when absent), lower-cased change.
// Two trades are the same iff their keys are equal.
func TradeKey(t models.Trade) string {
	parts := []string{
		formatInstant(t.Timestamp),
		strings.ToLower(t.Ticker),
		strings.ToLower(t.Side),
		strings.ToLower(t.Type),
		formatAmount(t.Qty),
		formatAmount(t.PnL),
		strings.ToLower(t.Change),
	}
	return strings.Join(parts, keyDelimiter)
}

func formatInstant(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}

// DedupGate filters out trades already present, either in storage (the seed
// set) or earlier in the same batch. State is local to one import call.
type DedupGate struct {
	seen map[string]struct{}
}

// NewDedupGate seeds the gate with the keys of all currently stored trades
// for the target account.
func NewDedupGate(existing []models.Trade) *DedupGate {
	g := &DedupGate{seen: make(map[string]struct{}, len(existing))}
	for _, t := range existing {
		g.seen[TradeKey(t)] = struct{}{}
	}
	return g
}

// Admit reports whether the trade is new, recording its key when it is.
func (g *DedupGate) Admit(t models.Trade) bool {
	key := TradeKey(t)
	if _, dup := g.seen[key]; dup {
		return false
	}
	g.seen[key] = struct{}{}
	return true
}
