package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldallalio/TradeWise/src/models"
)

func feeRow(ticker, tradeType string, qty, pnl float64) models.Trade {
	q := qty
	p := pnl
	return models.Trade{Ticker: ticker, Type: tradeType, Qty: &q, PnL: &p}
}

func TestFeeProcessorApplyOverride(t *testing.T) {
	fees := NewFeeProcessor()

	t.Run("deducts per contract on futures rows", func(t *testing.T) {
		trades := []models.Trade{feeRow("NQ", "", 2, 200)}
		fees.ApplyOverride(trades, 2.5)
		assert.InDelta(t, 195.0, *trades[0].PnL, 1e-9)
	})

	t.Run("type column classifies unknown tickers", func(t *testing.T) {
		trades := []models.Trade{feeRow("ZB", "Futures", 1, 100)}
		fees.ApplyOverride(trades, 2)
		assert.InDelta(t, 98.0, *trades[0].PnL, 1e-9)
	})

	t.Run("equities are untouched", func(t *testing.T) {
		trades := []models.Trade{feeRow("AAPL", "Equity", 10, 50)}
		fees.ApplyOverride(trades, 2)
		assert.Equal(t, 50.0, *trades[0].PnL)
	})

	t.Run("rows missing qty or pnl are untouched", func(t *testing.T) {
		noQty := feeRow("NQ", "", 0, 100)
		noQty.Qty = nil
		noPnL := feeRow("NQ", "", 2, 0)
		noPnL.PnL = nil
		trades := []models.Trade{noQty, noPnL}
		fees.ApplyOverride(trades, 2)
		require.NotNil(t, trades[0].PnL)
		assert.Equal(t, 100.0, *trades[0].PnL)
		assert.Nil(t, trades[1].PnL)
	})

	t.Run("zero override is a no-op", func(t *testing.T) {
		trades := []models.Trade{feeRow("NQ", "", 2, 200)}
		fees.ApplyOverride(trades, 0)
		assert.Equal(t, 200.0, *trades[0].PnL)
	})
}
