// src/processors/fee_processor.go
package processors

import (
	"math"
	"strings"

	"github.com/ldallalio/TradeWise/src/models"
	"github.com/ldallalio/TradeWise/src/parsers"
)

// FeeProcessor applies a caller-supplied flat per-contract fee to rows
// classified as futures. The override is independent of, and additive to, any
// commission already subtracted during FIFO reconciliation: a statement that
// exposes a commission column AND a manual override fee has both deducted.
type FeeProcessor struct{}

func NewFeeProcessor() *FeeProcessor { return &FeeProcessor{} }

// ApplyOverride subtracts feePerContract x |quantity| from every futures row's
// realized PnL. Rows without a quantity are untouched.
func (p *FeeProcessor) ApplyOverride(trades []models.Trade, feePerContract float64) {
	if feePerContract == 0 {
		return
	}
	for i := range trades {
		t := &trades[i]
		if t.Qty == nil || t.PnL == nil {
			continue
		}
		if !isFutures(*t) {
			continue
		}
		adjusted := *t.PnL - feePerContract*math.Abs(*t.Qty)
		t.PnL = &adjusted
	}
}

// isFutures classifies a row by its declared type, falling back to whether the
// canonical ticker is a known futures root.
func isFutures(t models.Trade) bool {
	if strings.Contains(strings.ToLower(t.Type), "futur") {
		return true
	}
	return parsers.IsFuturesRoot(t.Ticker)
}
