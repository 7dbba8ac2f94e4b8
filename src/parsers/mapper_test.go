package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldallalio/TradeWise/src/models"
)

func TestParseStatement(t *testing.T) {
	t.Run("normalizes headers and trims values", func(t *testing.T) {
		csvData := "\uFEFFSymbol,B/S,Filled Qty,P&L ($)\r\nNQH4, Buy ,2,\r\n"
		records, err := ParseStatement(strings.NewReader(csvData))
		require.NoError(t, err)
		require.Len(t, records, 1)

		assert.Equal(t, []string{"symbol", "b_s", "filled_qty", "p_l"}, records[0].Columns)
		assert.Equal(t, "NQH4", records[0].Get("symbol"))
		assert.Equal(t, "Buy", records[0].Get("b_s"))
	})

	t.Run("empty statement yields no records and no error", func(t *testing.T) {
		records, err := ParseStatement(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, records)

		records, err = ParseStatement(strings.NewReader("Symbol,Qty\n"))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("fully empty rows are dropped", func(t *testing.T) {
		records, err := ParseStatement(strings.NewReader("Symbol,Qty\n,,\nNQ,2\n"))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "NQ", records[0].Get("symbol"))
	})

	t.Run("short rows tolerated", func(t *testing.T) {
		records, err := ParseStatement(strings.NewReader("Symbol,Qty,Price\nNQ,2\n"))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "", records[0].Get("price"))
	})

	t.Run("malformed quoting is an error", func(t *testing.T) {
		_, err := ParseStatement(strings.NewReader("Symbol,Qty\n\"NQ,2\n"))
		assert.Error(t, err)
	})
}

func TestMapRecords(t *testing.T) {
	t.Run("tradovate style fill row", func(t *testing.T) {
		rec := record(
			[]string{"fill_time", "symbol", "b_s", "filled_qty", "price", "commission"},
			map[string]string{
				"fill_time":  "2024-03-15 14:30:00",
				"symbol":     "NQH4",
				"b_s":        "Buy",
				"filled_qty": "2",
				"price":      "18000.25",
				"commission": "$4.20",
			},
		)
		trades, metas := MapRecords([]models.RawRecord{rec})
		require.Len(t, trades, 1)
		require.Len(t, metas, 1)

		trade, meta := trades[0], metas[0]
		require.NotNil(t, trade.Timestamp)
		assert.Equal(t, "2024-03-15", trade.Date)
		assert.Equal(t, "14:30:00", trade.Time)
		assert.Equal(t, "NQ", trade.Ticker)
		assert.Equal(t, models.SideLong, trade.Side)
		require.NotNil(t, trade.Qty)
		assert.Equal(t, 2.0, *trade.Qty)
		assert.Nil(t, trade.PnL)

		assert.True(t, meta.HasPrice)
		assert.Equal(t, 18000.25, meta.Price)
		assert.Equal(t, 20.0, meta.Multiplier)
		assert.Equal(t, 4.20, meta.TotalFee)
		assert.InDelta(t, 2.10, meta.FeePerUnit, 1e-9)
	})

	t.Run("tradingview style closed trade row", func(t *testing.T) {
		rec := record(
			[]string{"closing_time", "symbol", "side", "type", "qty", "p_l", "change"},
			map[string]string{
				"closing_time": "2024-03-15T21:00:00Z",
				"symbol":       "CME_MINI:MNQ1!",
				"side":         "short",
				"type":         "Exit",
				"qty":          "-3",
				"p_l":          "(125.50)",
				"change":       "-0.63%",
			},
		)
		trades, metas := MapRecords([]models.RawRecord{rec})
		require.Len(t, trades, 1)

		trade := trades[0]
		assert.Equal(t, "MNQ", trade.Ticker)
		assert.Equal(t, models.SideShort, trade.Side)
		assert.Equal(t, "Exit", trade.Type)
		assert.Equal(t, "-0.63%", trade.Change)
		require.NotNil(t, trade.Qty)
		assert.Equal(t, 3.0, *trade.Qty, "quantity is stored unsigned")
		require.NotNil(t, trade.PnL)
		assert.Equal(t, -125.50, *trade.PnL)
		assert.Equal(t, 2.0, metas[0].Multiplier)
	})

	t.Run("non numeric pnl column means absent pnl", func(t *testing.T) {
		rec := record(
			[]string{"symbol", "p_l"},
			map[string]string{"symbol": "NQ", "p_l": "Open"},
		)
		trades, _ := MapRecords([]models.RawRecord{rec})
		require.Len(t, trades, 1)
		assert.Nil(t, trades[0].PnL)
	})

	t.Run("unparseable timestamp passes raw date and time through", func(t *testing.T) {
		rec := record(
			[]string{"date", "time", "symbol"},
			map[string]string{"date": "15/03/2024", "time": "14:30", "symbol": "NQ"},
		)
		trades, _ := MapRecords([]models.RawRecord{rec})
		require.Len(t, trades, 1)
		assert.Nil(t, trades[0].Timestamp)
		assert.Equal(t, "15/03/2024", trades[0].Date)
		assert.Equal(t, "14:30", trades[0].Time)
	})

	t.Run("unrecognized side passes through", func(t *testing.T) {
		rec := record(
			[]string{"symbol", "side"},
			map[string]string{"symbol": "NQ", "side": "Flatten"},
		)
		trades, _ := MapRecords([]models.RawRecord{rec})
		require.Len(t, trades, 1)
		assert.Equal(t, "Flatten", trades[0].Side)
	})

	t.Run("rows with no usable data are dropped", func(t *testing.T) {
		rec := record(
			[]string{"order_id", "status"},
			map[string]string{"order_id": "12345", "status": ""},
		)
		trades, metas := MapRecords([]models.RawRecord{rec})
		assert.Empty(t, trades)
		assert.Empty(t, metas)
	})
}

func TestNormalizeSide(t *testing.T) {
	assert.Equal(t, models.SideLong, NormalizeSide("buy"))
	assert.Equal(t, models.SideLong, NormalizeSide(" LONG "))
	assert.Equal(t, models.SideShort, NormalizeSide("Sell"))
	assert.Equal(t, models.SideShort, NormalizeSide("short"))
	assert.Equal(t, "Scratch", NormalizeSide(" Scratch "))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1250", 1250},
		{"$1,250.75", 1250.75},
		{"(125.50)", -125.50},
		{"($1,000)", -1000},
		{"-3", -3},
	}
	for _, tc := range tests {
		got, err := parseNumber(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := parseNumber("Open")
	assert.Error(t, err)
	_, err = parseNumber("")
	assert.Error(t, err)
}
