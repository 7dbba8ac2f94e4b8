// src/parsers/parser.go
package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ldallalio/TradeWise/src/models"
)

// ParseStatement reads a broker-exported CSV statement into raw records keyed
// by normalized column name. Handles UTF-8 BOM, \r\n line endings and quoted
// fields. A statement with no data rows yields an empty slice, not an error.
func ParseStatement(file io.Reader) ([]models.RawRecord, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields per record

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV records: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// Normalize the header once per statement. Duplicate normalized names keep
	// their first occurrence so resolution stays deterministic.
	var columns []string
	colIndex := make(map[string]int)
	for i, h := range rows[0] {
		name := NormalizeHeader(h)
		if name == "" {
			continue
		}
		if _, seen := colIndex[name]; seen {
			continue
		}
		colIndex[name] = i
		columns = append(columns, name)
	}

	var records []models.RawRecord
	for _, row := range rows[1:] {
		values := make(map[string]string, len(columns))
		empty := true
		for _, name := range columns {
			i := colIndex[name]
			if i >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[i])
			values[name] = v
			if v != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		records = append(records, models.RawRecord{Columns: columns, Values: values})
	}
	return records, nil
}
