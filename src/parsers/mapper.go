// src/parsers/mapper.go
package parsers

import (
	"math"
	"strconv"
	"strings"

	"github.com/ldallalio/TradeWise/src/models"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// MapRecords converts raw statement rows into partial trades plus the per-row
// metadata the FIFO reconciler needs. The two slices are index-aligned. Rows
// carrying no usable data are silently dropped.
func MapRecords(records []models.RawRecord) ([]models.Trade, []models.RowMeta) {
	var trades []models.Trade
	var metas []models.RowMeta
	for _, rec := range records {
		trade, meta, ok := mapRecord(rec)
		if !ok {
			continue
		}
		trades = append(trades, trade)
		metas = append(metas, meta)
	}
	return trades, metas
}

func mapRecord(rec models.RawRecord) (models.Trade, models.RowMeta, bool) {
	var trade models.Trade
	var meta models.RowMeta

	if ts, ok := ReconstructTimestamp(rec); ok {
		t := ts
		trade.Timestamp = &t
		trade.Date = t.Format(dateLayout)
		trade.Time = t.Format(timeLayout)
	} else {
		// No parseable instant: pass the raw date/time text through unchanged.
		trade.Date = rec.Get("date")
		trade.Time = rec.Get("time")
	}

	if text, ok := ResolveField(rec, quantityMatchers); ok {
		if q, err := parseNumber(text); err == nil {
			q = math.Abs(q)
			trade.Qty = &q
			meta.Qty = q
			meta.HasQty = true
		}
	}

	// The pnl column doubles as a status column on some exports; non-numeric
	// content means the realized PnL is simply absent.
	if text, ok := ResolveField(rec, pnlMatchers); ok {
		if v, err := parseNumber(text); err == nil {
			trade.PnL = &v
		}
	}

	if text, ok := ResolveField(rec, tickerMatchers); ok {
		trade.Ticker = NormalizeTicker(text)
	}
	if text, ok := ResolveField(rec, sideMatchers); ok {
		trade.Side = NormalizeSide(text)
	}
	if text, ok := ResolveField(rec, typeMatchers); ok {
		trade.Type = text
	}
	if text, ok := ResolveField(rec, changeMatchers); ok {
		trade.Change = text
	}

	if text, ok := ResolveField(rec, priceMatchers); ok {
		if p, err := parseNumber(text); err == nil {
			meta.Price = p
			meta.HasPrice = true
		}
	}

	var commission float64
	if text, ok := ResolveField(rec, commissionMatchers); ok {
		if c, err := parseNumber(text); err == nil {
			commission = math.Abs(c)
		}
	}
	meta.Side = trade.Side
	meta.TotalFee = commission
	if meta.HasQty && meta.Qty > 0 && commission > 0 {
		meta.FeePerUnit = commission / meta.Qty
	}
	meta.Multiplier = Multiplier(trade.Ticker)

	keep := trade.Timestamp != nil ||
		trade.Ticker != "" || trade.Side != "" || trade.Type != "" || trade.Change != "" ||
		trade.Qty != nil || trade.PnL != nil
	return trade, meta, keep
}

// NormalizeSide maps broker side vocabulary onto the canonical Long/Short
// pair. Unrecognized values pass through unchanged.
func NormalizeSide(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "buy", "long":
		return models.SideLong
	case "sell", "short":
		return models.SideShort
	}
	return strings.TrimSpace(raw)
}

// parseNumber parses statement numerics: currency symbols and thousands
// separators are tolerated, parenthesized values are negative.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if negative {
		v = -v
	}
	return v, nil
}
