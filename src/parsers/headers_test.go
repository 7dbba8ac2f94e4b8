package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Symbol", "symbol"},
		{"spaces become underscore", "Filled Qty", "filled_qty"},
		{"punctuation collapses", "P&L ($)", "p_l"},
		{"slash", "B/S", "b_s"},
		{"already normalized", "filled_qty", "filled_qty"},
		{"strips BOM", "\uFEFFDate", "date"},
		{"trims whitespace", "  Trade Time  ", "trade_time"},
		{"run of separators", "Avg -- Fill...Price", "avg_fill_price"},
		{"leading and trailing punctuation", "(Commission)", "commission"},
		{"empty", "", ""},
		{"only punctuation", "--", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeHeader(tc.in))
		})
	}
}
