// src/processors/fifo_processor.go
package processors

import (
	"sort"
	"time"

	"github.com/ldallalio/TradeWise/src/models"
	"github.com/ldallalio/TradeWise/src/utils"
)

// FifoProcessor reconstructs realized PnL for fill-level statements by
// matching closing fills against the oldest still-open lots first. Lot queues
// live only for the duration of one Process call; nothing carries over
// between imports.
type FifoProcessor struct{}

func NewFifoProcessor() *FifoProcessor { return &FifoProcessor{} }

// lot is an open, unmatched quantity at a price. It carries the per-unit fee
// of its opening fill so the fee is charged when the lot is closed.
type lot struct {
	qty        float64
	price      float64
	feePerUnit float64
}

// lotBook holds one ticker's open inventory, split by opening side.
type lotBook struct {
	long  []lot
	short []lot
}

const qtyEpsilon = 1e-9

// Process assigns a realized PnL to every row that still lacks one. Rows are
// matched in chronological order; rows without a timestamp sort as earliest.
// Rows missing ticker, quantity or fill price get PnL 0. trades and metas are
// index-aligned, as produced by the mapper.
func (p *FifoProcessor) Process(trades []models.Trade, metas []models.RowMeta) {
	var candidates []int
	for i := range trades {
		if trades[i].PnL == nil {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return fillTime(trades[candidates[a]]).Before(fillTime(trades[candidates[b]]))
	})

	books := make(map[string]*lotBook)
	for _, i := range candidates {
		meta := metas[i]
		pnl := 0.0
		if trades[i].Ticker != "" && meta.HasQty && meta.Qty > 0 && meta.HasPrice {
			book := books[trades[i].Ticker]
			if book == nil {
				book = &lotBook{}
				books[trades[i].Ticker] = book
			}
			pnl = book.apply(meta)
		}
		trades[i].PnL = &pnl
	}
}

func fillTime(t models.Trade) time.Time {
	if t.Timestamp == nil {
		return time.Time{}
	}
	return *t.Timestamp
}

// apply matches one fill against the opposite-side queue, realizing PnL per
// matched unit, and appends any unmatched remainder as a new lot on the fill's
// own side. The fill's total commission is charged proportionally to the
// quantity it closed; the remainder's share travels with the new lot.
func (b *lotBook) apply(meta models.RowMeta) float64 {
	var realized float64
	remaining := meta.Qty
	closed := 0.0

	opposite := &b.short
	same := &b.long
	if meta.Side == models.SideShort {
		opposite = &b.long
		same = &b.short
	} else if meta.Side != models.SideLong {
		// Unrecognized side: the fill cannot be matched either way.
		return 0
	}

	for remaining > qtyEpsilon && len(*opposite) > 0 {
		open := &(*opposite)[0]
		matched := remaining
		if open.qty < matched {
			matched = open.qty
		}

		var perPoint float64
		if meta.Side == models.SideLong {
			perPoint = open.price - meta.Price // buying back a short
		} else {
			perPoint = meta.Price - open.price // selling out of a long
		}
		realized += perPoint*meta.Multiplier*matched - open.feePerUnit*matched

		remaining -= matched
		closed += matched
		open.qty -= matched
		if open.qty <= qtyEpsilon {
			*opposite = (*opposite)[1:]
		}
	}

	if remaining > qtyEpsilon {
		*same = append(*same, lot{qty: remaining, price: meta.Price, feePerUnit: meta.FeePerUnit})
	}

	if closed > 0 && meta.Qty > 0 {
		realized -= meta.TotalFee * (closed / meta.Qty)
	}
	// Keep float noise out of stored amounts and dedup keys.
	return utils.RoundFloat(realized, 4)
}
