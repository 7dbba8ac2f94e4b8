// src/model/trade_store.go
package model

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ldallalio/TradeWise/src/logger"
	"github.com/ldallalio/TradeWise/src/models"
	"github.com/ldallalio/TradeWise/src/processors"
)

// TradeStore persists canonical trade records per owner and account, backed
// by SQLite. The trades table carries a unique (user_id, account, trade_key)
// index so concurrent imports of the same statement cannot double-insert even
// when both seeded their dedup gate from the same snapshot.
type TradeStore struct {
	db *sql.DB
}

func NewTradeStore(db *sql.DB) *TradeStore {
	return &TradeStore{db: db}
}

// QueryExisting returns all stored trades for the owner and account, ordered
// chronologically. Used to seed duplicate detection before an import.
func (s *TradeStore) QueryExisting(userID int64, account string) ([]models.Trade, error) {
	query := `
		SELECT id, user_id, account, broker, timestamp, date, time, side, type, ticker, qty, pnl, change
		FROM trades
		WHERE user_id = ? AND account = ?
		ORDER BY timestamp ASC, id ASC`
	rows, err := s.db.Query(query, userID, account)
	if err != nil {
		return nil, fmt.Errorf("error querying trades for userID %d: %w", userID, err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		var t models.Trade
		var ts sql.NullString
		var qty, pnl sql.NullFloat64
		scanErr := rows.Scan(
			&t.ID, &t.UserID, &t.Account, &t.Broker, &ts,
			&t.Date, &t.Time, &t.Side, &t.Type, &t.Ticker, &qty, &pnl, &t.Change,
		)
		if scanErr != nil {
			return nil, fmt.Errorf("error scanning trade row for userID %d: %w", userID, scanErr)
		}
		if ts.Valid && ts.String != "" {
			if parsed, err := time.Parse(time.RFC3339, ts.String); err == nil {
				utc := parsed.UTC()
				t.Timestamp = &utc
			}
		}
		if qty.Valid {
			v := qty.Float64
			t.Qty = &v
		}
		if pnl.Valid {
			v := pnl.Float64
			t.PnL = &v
		}
		trades = append(trades, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over trade rows for userID %d: %w", userID, err)
	}
	return trades, nil
}

// Insert writes one batch of trades inside a single database transaction and
// returns the number actually inserted. Rows colliding with the unique
// trade-key index are skipped, not treated as failures. Any other error rolls
// the whole batch back.
func (s *TradeStore) Insert(trades []models.Trade) (int, error) {
	if len(trades) == 0 {
		return 0, nil
	}
	dbTx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare(`INSERT INTO trades
		(user_id, account, broker, timestamp, date, time, side, type, ticker, qty, pnl, change, trade_key)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("error preparing insert statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, t := range trades {
		var ts interface{}
		if t.Timestamp != nil {
			ts = t.Timestamp.UTC().Format(time.RFC3339)
		}
		var qty, pnl interface{}
		if t.Qty != nil {
			qty = *t.Qty
		}
		if t.PnL != nil {
			pnl = *t.PnL
		}
		_, err := stmt.Exec(
			t.UserID, t.Account, t.Broker, ts,
			t.Date, t.Time, t.Side, t.Type, t.Ticker, qty, pnl, t.Change,
			processors.TradeKey(t),
		)
		if err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") {
				logger.L.Debug("Skipping duplicate trade on insert", "userID", t.UserID, "ticker", t.Ticker)
				continue
			}
			return 0, fmt.Errorf("error inserting trade (ticker %s): %w", t.Ticker, err)
		}
		inserted++
	}
	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing trades: %w", err)
	}
	return inserted, nil
}

// Delete removes every trade for the owner and account, returning the count.
func (s *TradeStore) Delete(userID int64, account string) (int, error) {
	res, err := s.db.Exec("DELETE FROM trades WHERE user_id = ? AND account = ?", userID, account)
	if err != nil {
		return 0, fmt.Errorf("error deleting trades for userID %d: %w", userID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error counting deleted trades for userID %d: %w", userID, err)
	}
	return int(affected), nil
}

// RecordImport appends one row to the import history.
func (s *TradeStore) RecordImport(userID int64, account, broker, filename string, fileSize int64, tradeCount int) error {
	_, err := s.db.Exec(`
		INSERT INTO imports_history (user_id, account, broker, filename, file_size, trade_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, account, broker, filename, fileSize, tradeCount,
	)
	if err != nil {
		return fmt.Errorf("failed to record import in history: %w", err)
	}
	return nil
}
