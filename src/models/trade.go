// src/models/trade.go
package models

import "time"

// Canonical side vocabulary. Unrecognized source values pass through unchanged.
const (
	SideLong  = "Long"
	SideShort = "Short"
)

// Trade is the canonical trade record reconstructed from one statement row.
// Optional source data is modelled with pointers: nil means the statement did
// not provide the field. After reconciliation PnL is always non-nil.
type Trade struct {
	ID        int64      `json:"id,omitempty"` // Database primary key
	UserID    int64      `json:"-"`
	Account   string     `json:"account"`
	Broker    string     `json:"broker"`
	Timestamp *time.Time `json:"timestamp,omitempty"` // UTC instant, when reconstructable
	Date      string     `json:"date"`                // derived from Timestamp, else raw statement text
	Time      string     `json:"time"`
	Side      string     `json:"side"`
	Type      string     `json:"type"`
	Ticker    string     `json:"ticker"`
	Qty       *float64   `json:"qty,omitempty"`
	PnL       *float64   `json:"pnl,omitempty"`
	Change    string     `json:"change"`
}
