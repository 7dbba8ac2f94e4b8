package parsers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstructTimestamp(t *testing.T) {
	t.Run("full RFC3339 timestamp", func(t *testing.T) {
		rec := record([]string{"timestamp"}, map[string]string{"timestamp": "2024-03-15T14:30:00Z"})
		got, ok := ReconstructTimestamp(rec)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC), got)
	})

	t.Run("space separator and no zone treated as UTC", func(t *testing.T) {
		rec := record([]string{"fill_time"}, map[string]string{"fill_time": "2024-03-15 14:30:05"})
		got, ok := ReconstructTimestamp(rec)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 3, 15, 14, 30, 5, 0, time.UTC), got)
	})

	t.Run("explicit offset converts to UTC", func(t *testing.T) {
		rec := record([]string{"timestamp"}, map[string]string{"timestamp": "2024-03-15T09:30:00-05:00"})
		got, ok := ReconstructTimestamp(rec)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC), got)
	})

	t.Run("priority order prefers entry_timestamp", func(t *testing.T) {
		rec := record(
			[]string{"fill_time", "entry_timestamp"},
			map[string]string{
				"fill_time":       "2024-03-16T00:00:00Z",
				"entry_timestamp": "2024-03-15T00:00:00Z",
			},
		)
		got, ok := ReconstructTimestamp(rec)
		require.True(t, ok)
		assert.Equal(t, 15, got.Day())
	})

	t.Run("falls back to date plus time columns", func(t *testing.T) {
		rec := record(
			[]string{"date", "time"},
			map[string]string{"date": "2024-03-15", "time": "14:30:00"},
		)
		got, ok := ReconstructTimestamp(rec)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC), got)
	})

	t.Run("date alone", func(t *testing.T) {
		rec := record([]string{"date"}, map[string]string{"date": "2024-03-15"})
		got, ok := ReconstructTimestamp(rec)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("minute precision", func(t *testing.T) {
		rec := record([]string{"timestamp"}, map[string]string{"timestamp": "2024-03-15 14:30"})
		got, ok := ReconstructTimestamp(rec)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC), got)
	})

	t.Run("unparseable text is absent, not fatal", func(t *testing.T) {
		rec := record([]string{"date"}, map[string]string{"date": "15/03/2024"})
		_, ok := ReconstructTimestamp(rec)
		assert.False(t, ok)
	})

	t.Run("no timestamp columns at all", func(t *testing.T) {
		rec := record([]string{"symbol"}, map[string]string{"symbol": "NQ"})
		_, ok := ReconstructTimestamp(rec)
		assert.False(t, ok)
	})
}
