// src/services/interfaces.go
package services

import (
	"errors"
	"io"
	"time"

	"github.com/ldallalio/TradeWise/src/models"
)

// Outcome distinguishes why an import did or did not insert anything.
type Outcome string

const (
	OutcomeImported       Outcome = "imported"
	OutcomeEmptyStatement Outcome = "empty_statement"
	OutcomeFilteredByDate Outcome = "all_filtered_by_date"
	OutcomeAllDuplicates  Outcome = "all_duplicates"
)

// ImportParams carries everything one import invocation needs besides the
// statement text itself.
type ImportParams struct {
	UserID   int64
	Broker   string
	Account  string
	Filename string
	FileSize int64
	// FeeOverride is a flat per-contract fee subtracted from futures rows,
	// additive to any commission the statement itself reported.
	FeeOverride *float64
	// EarliestDate drops rows whose timestamp falls before it. Rows without a
	// timestamp are kept.
	EarliestDate *time.Time
}

// ImportResult is what one import call reports back to the caller.
type ImportResult struct {
	Outcome        Outcome `json:"outcome"`
	InsertedCount  int     `json:"insertedCount"`
	ParsedCount    int     `json:"parsedCount"`
	FilteredCount  int     `json:"filteredCount"`
	DuplicateCount int     `json:"duplicateCount"`
}

// Define common service errors
var (
	ErrParsingFailed = errors.New("csv parsing failed")
)

// TradeStore is the storage collaborator the import pipeline depends on.
// Implemented by model.TradeStore; faked in tests.
type TradeStore interface {
	QueryExisting(userID int64, account string) ([]models.Trade, error)
	Insert(trades []models.Trade) (int, error)
	Delete(userID int64, account string) (int, error)
	RecordImport(userID int64, account, broker, filename string, fileSize int64, tradeCount int) error
}

// ImportService defines the statement-ingestion surface.
type ImportService interface {
	Import(fileReader io.Reader, params ImportParams) (*ImportResult, error)
	GetTrades(userID int64, account string) ([]models.Trade, error)
	DeleteTrades(userID int64, account string) (int, error)
	LatestImportResult(userID int64, account string) (*ImportResult, bool)
}
