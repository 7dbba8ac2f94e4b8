// src/services/import_service.go
package services

import (
	"fmt"
	"io"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/ldallalio/TradeWise/src/brokers"
	"github.com/ldallalio/TradeWise/src/logger"
	"github.com/ldallalio/TradeWise/src/models"
	"github.com/ldallalio/TradeWise/src/parsers"
	"github.com/ldallalio/TradeWise/src/processors"
	"github.com/ldallalio/TradeWise/src/security/validation"
)

const (
	ckAccountTrades        = "res_trades_user_%d_acct_%s"
	ckLatestImportResult   = "agg_latest_import_user_%d_acct_%s"
	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type importServiceImpl struct {
	registry    *brokers.Registry
	fifo        *processors.FifoProcessor
	fees        *processors.FeeProcessor
	store       TradeStore
	resultCache *cache.Cache
}

func NewImportService(registry *brokers.Registry, store TradeStore, resultCache *cache.Cache) ImportService {
	return &importServiceImpl{
		registry:    registry,
		fifo:        processors.NewFifoProcessor(),
		fees:        processors.NewFeeProcessor(),
		store:       store,
		resultCache: resultCache,
	}
}

// Import runs the full statement pipeline: parse, map, FIFO-reconcile, date
// filter, fee override, dedup, insert. Parsing-level anomalies are recovered
// row-locally with defaults; only storage failures and nothing-to-do outcomes
// reach the caller.
func (s *importServiceImpl) Import(fileReader io.Reader, params ImportParams) (*ImportResult, error) {
	start := time.Now()
	logger.L.Info("Import START", "userID", params.UserID, "account", params.Account, "broker", params.Broker)

	records, err := parsers.ParseStatement(fileReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	trades, metas := parsers.MapRecords(records)
	if len(trades) == 0 {
		logger.L.Info("Import END: statement contained no usable rows", "userID", params.UserID)
		return &ImportResult{Outcome: OutcomeEmptyStatement}, nil
	}
	parsedCount := len(trades)

	profile := s.registry.Get(params.Broker)
	if profile.FillsOnly {
		s.fifo.Process(trades, metas)
	}
	// Reconciliation invariant: every surviving row reports a PnL.
	for i := range trades {
		if trades[i].PnL == nil {
			zero := 0.0
			trades[i].PnL = &zero
		}
	}

	kept := trades
	if params.EarliestDate != nil {
		kept = kept[:0:0]
		for _, t := range trades {
			// Rows without a timestamp cannot be dated and are kept.
			if t.Timestamp != nil && t.Timestamp.Before(*params.EarliestDate) {
				continue
			}
			kept = append(kept, t)
		}
	}
	filteredCount := parsedCount - len(kept)
	if len(kept) == 0 {
		logger.L.Info("Import END: all rows before cutoff", "userID", params.UserID, "cutoff", *params.EarliestDate)
		return &ImportResult{Outcome: OutcomeFilteredByDate, ParsedCount: parsedCount, FilteredCount: filteredCount}, nil
	}

	if params.FeeOverride != nil {
		s.fees.ApplyOverride(kept, *params.FeeOverride)
	}

	// Sanitize before keying so a re-import fingerprints the same as its
	// stored counterpart. The formula guard runs last so its quote prefix is
	// not itself escaped away.
	for i := range kept {
		kept[i].Change = validation.SanitizeForFormulaInjection(
			validation.SanitizeText(validation.StripUnprintable(kept[i].Change)))
	}

	existing, err := s.store.QueryExisting(params.UserID, params.Account)
	if err != nil {
		return nil, fmt.Errorf("querying existing trades: %w", err)
	}
	gate := processors.NewDedupGate(existing)
	unique := kept[:0:0]
	for _, t := range kept {
		if gate.Admit(t) {
			unique = append(unique, t)
		}
	}
	duplicateCount := len(kept) - len(unique)
	if len(unique) == 0 {
		logger.L.Info("Import END: every row already stored", "userID", params.UserID, "duplicates", duplicateCount)
		return &ImportResult{
			Outcome:        OutcomeAllDuplicates,
			ParsedCount:    parsedCount,
			FilteredCount:  filteredCount,
			DuplicateCount: duplicateCount,
		}, nil
	}

	for i := range unique {
		unique[i].UserID = params.UserID
		unique[i].Account = params.Account
		unique[i].Broker = profile.Name
	}

	inserted, err := s.store.Insert(unique)
	if err != nil {
		return nil, fmt.Errorf("inserting trades: %w", err)
	}
	if err := s.store.RecordImport(params.UserID, params.Account, profile.Name, params.Filename, params.FileSize, inserted); err != nil {
		logger.L.Error("Failed to record import history", "userID", params.UserID, "error", err)
	}

	s.invalidateAccountCache(params.UserID, params.Account)
	result := &ImportResult{
		Outcome:        OutcomeImported,
		InsertedCount:  inserted,
		ParsedCount:    parsedCount,
		FilteredCount:  filteredCount,
		DuplicateCount: duplicateCount,
	}
	s.resultCache.Set(fmt.Sprintf(ckLatestImportResult, params.UserID, params.Account), result, DefaultCacheExpiration)

	logger.L.Info("Import END", "userID", params.UserID, "inserted", inserted, "duration", time.Since(start))
	return result, nil
}

func (s *importServiceImpl) GetTrades(userID int64, account string) ([]models.Trade, error) {
	cacheKey := fmt.Sprintf(ckAccountTrades, userID, account)
	if cached, found := s.resultCache.Get(cacheKey); found {
		return cached.([]models.Trade), nil
	}
	trades, err := s.store.QueryExisting(userID, account)
	if err != nil {
		return nil, err
	}
	s.resultCache.Set(cacheKey, trades, DefaultCacheExpiration)
	return trades, nil
}

func (s *importServiceImpl) DeleteTrades(userID int64, account string) (int, error) {
	deleted, err := s.store.Delete(userID, account)
	if err != nil {
		return 0, err
	}
	s.invalidateAccountCache(userID, account)
	return deleted, nil
}

func (s *importServiceImpl) LatestImportResult(userID int64, account string) (*ImportResult, bool) {
	if cached, found := s.resultCache.Get(fmt.Sprintf(ckLatestImportResult, userID, account)); found {
		return cached.(*ImportResult), true
	}
	return nil, false
}

func (s *importServiceImpl) invalidateAccountCache(userID int64, account string) {
	s.resultCache.Delete(fmt.Sprintf(ckAccountTrades, userID, account))
}
