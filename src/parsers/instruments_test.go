package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"exchange qualified continuous contract", "CME_MINI:NQ1!", "NQ"},
		{"dated contract code", "NQH2024", "NQ"},
		{"micro prefers longest root", "MNQM4", "MNQ"},
		{"micro gold over gold", "MGCZ5", "MGC"},
		{"bare root unchanged", "ES", "ES"},
		{"unknown symbol passes through", "AAPL", "AAPL"},
		{"unknown exchange-qualified symbol passes through", "NASDAQ:AAPL", "NASDAQ:AAPL"},
		{"surrounding whitespace trimmed", "  NQ1!  ", "NQ"},
		{"empty stays empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeTicker(tc.in))
		})
	}
}

func TestMultiplier(t *testing.T) {
	assert.Equal(t, 20.0, Multiplier("NQ"))
	assert.Equal(t, 2.0, Multiplier("MNQ"))
	assert.Equal(t, 50.0, Multiplier("ES"))
	assert.Equal(t, 0.5, Multiplier("MYM"))
	assert.Equal(t, 1000.0, Multiplier("CL"))

	// Unknown instruments settle at face value.
	assert.Equal(t, 1.0, Multiplier("AAPL"))
	assert.Equal(t, 1.0, Multiplier(""))
}

func TestRegisterInstrument(t *testing.T) {
	RegisterInstrument("ZZT", 7)
	defer func() {
		delete(pointValues, "ZZT")
		sortedRoots = buildSortedRoots()
	}()

	assert.Equal(t, 7.0, Multiplier("ZZT"))
	assert.Equal(t, "ZZT", NormalizeTicker("ZZTU4"))
	assert.True(t, IsFuturesRoot("ZZT"))
}

func TestIsFuturesRoot(t *testing.T) {
	assert.True(t, IsFuturesRoot("NQ"))
	assert.True(t, IsFuturesRoot("MGC"))
	assert.False(t, IsFuturesRoot("AAPL"))
}
