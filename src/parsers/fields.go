// src/parsers/fields.go
package parsers

import (
	"regexp"

	"github.com/ldallalio/TradeWise/src/models"
)

// Matcher tests one normalized column name. Exactly one of the three forms is
// set: an exact name, a compiled pattern, or an arbitrary predicate.
type Matcher struct {
	Exact   string
	Pattern *regexp.Regexp
	Func    func(column string) bool
}

func (m Matcher) matches(column string) bool {
	switch {
	case m.Exact != "":
		return column == m.Exact
	case m.Pattern != nil:
		return m.Pattern.MatchString(column)
	case m.Func != nil:
		return m.Func(column)
	}
	return false
}

// ResolveField extracts one logical field from a record. Matchers are tested
// in order; for each matcher the record's columns are scanned in header order,
// and the first matcher that finds any non-empty matching column wins. Matcher
// priority outranks column order. Absence is reported, not an error.
func ResolveField(rec models.RawRecord, matchers []Matcher) (string, bool) {
	for _, m := range matchers {
		if m.Exact != "" {
			if v := rec.Get(m.Exact); v != "" {
				return v, true
			}
			continue
		}
		for _, col := range rec.Columns {
			if !m.matches(col) {
				continue
			}
			if v := rec.Get(col); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// Per-field matcher chains. Broker support is extended by editing these tables,
// not by adding conditionals. Order encodes priority: exact well-known names
// first, token patterns as a catch-all.
var (
	quantityMatchers = []Matcher{
		{Exact: "qty"},
		{Exact: "quantity"},
		{Exact: "contracts"},
		{Exact: "shares"},
		{Exact: "size"},
		{Exact: "filled_qty"},
		{Pattern: regexp.MustCompile(`(?:^|_)(qty|quantity|contracts?|shares?)(?:_|$)`)},
	}

	pnlMatchers = []Matcher{
		{Exact: "pnl"},
		{Exact: "p_l"},
		{Exact: "profit"},
		{Exact: "realized_pnl"},
		{Exact: "net_pnl"},
		{Exact: "profit_loss"},
		{Exact: "gain_loss"},
		{Pattern: regexp.MustCompile(`(?:^|_)(pnl|p_l|profit|gain)(?:_|$)`)},
	}

	changeMatchers = []Matcher{
		{Exact: "change"},
		{Exact: "notes"},
		{Exact: "note"},
		{Exact: "comment"},
		{Exact: "comments"},
		{Exact: "description"},
		{Pattern: regexp.MustCompile(`(?:^|_)(change|notes?|comments?)(?:_|$)`)},
	}

	sideMatchers = []Matcher{
		{Exact: "side"},
		{Exact: "action"},
		{Exact: "buy_sell"},
		{Exact: "b_s"},
		{Exact: "direction"},
		{Pattern: regexp.MustCompile(`(?:^|_)(side|action|direction)(?:_|$)`)},
	}

	typeMatchers = []Matcher{
		{Exact: "type"},
		{Exact: "asset_type"},
		{Exact: "instrument_type"},
		{Exact: "security_type"},
		{Exact: "product_type"},
		{Pattern: regexp.MustCompile(`(?:^|_)type$`)},
	}

	tickerMatchers = []Matcher{
		{Exact: "symbol"},
		{Exact: "ticker"},
		{Exact: "instrument"},
		{Exact: "contract"},
		{Exact: "product"},
		{Exact: "underlying"},
		{Pattern: regexp.MustCompile(`(?:^|_)(symbol|ticker|instrument|contract)(?:_|$)`)},
	}

	priceMatchers = []Matcher{
		{Exact: "price"},
		{Exact: "fill_price"},
		{Exact: "avg_price"},
		{Exact: "avg_fill_price"},
		{Exact: "execution_price"},
		{Exact: "entry_price"},
		{Pattern: regexp.MustCompile(`(?:^|_)price(?:_|$)`)},
	}

	commissionMatchers = []Matcher{
		{Exact: "commission"},
		{Exact: "commissions"},
		{Exact: "comm"},
		{Exact: "fee"},
		{Exact: "fees"},
		{Pattern: regexp.MustCompile(`(?:^|_)(commissions?|fees?)(?:_|$)`)},
	}
)
