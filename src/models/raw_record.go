// src/models/raw_record.go
package models

import "strings"

// RawRecord holds the direct string values of a single statement row, keyed by
// normalized column name. Columns preserves the file's header order so that
// pattern matchers scan columns deterministically.
type RawRecord struct {
	Columns []string
	Values  map[string]string
}

// Get returns the trimmed value of a column, or "" when absent.
func (r RawRecord) Get(name string) string {
	return strings.TrimSpace(r.Values[name])
}

// RowMeta carries per-row facts needed only during FIFO reconciliation.
// It is produced by the mapper and discarded once PnL is assigned.
type RowMeta struct {
	Side       string
	Qty        float64
	HasQty     bool
	Price      float64
	HasPrice   bool
	FeePerUnit float64 // commission / quantity, 0 when either is missing
	TotalFee   float64
	Multiplier float64
}
