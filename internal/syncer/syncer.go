// Package syncer runs the fetch-transform-replace pipeline that keeps the
// local issue store a read-replica of the remote worksheet.
package syncer

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/devrel-tools/issuedash/internal/logging"
	"github.com/devrel-tools/issuedash/internal/retry"
	"github.com/devrel-tools/issuedash/internal/storage"
	"github.com/devrel-tools/issuedash/internal/types"
)

// Fetcher retrieves the remote worksheet as field-mapped rows.
// sheets.Client satisfies this; tests substitute a fake.
type Fetcher interface {
	FetchRows(ctx context.Context) ([]types.RawRow, error)
}

// Syncer orchestrates one full sync: fetch (with retry), transform, atomic
// replace, ledger append. It is safe to invoke concurrently with read
// traffic; the storage layer's transaction keeps partial state invisible.
// Overlapping Run calls are not coordinated against each other.
type Syncer struct {
	store   storage.Storage
	fetcher Fetcher
	log     *logging.Logger
	policy  retry.Policy

	autoSync sync.Once
}

// New builds a Syncer. The retry policy applies to the remote fetch only;
// transform and storage writes are local and never retried.
func New(store storage.Storage, fetcher Fetcher, log *logging.Logger, policy retry.Policy) *Syncer {
	policy.Logf = log.Warnf
	return &Syncer{
		store:   store,
		fetcher: fetcher,
		log:     log,
		policy:  policy,
	}
}

// Run executes one sync and reports success. It never returns an error:
// any fault from fetch, transform or replace is recorded as a failed ledger
// entry and logged, so a caller serving concurrent read traffic cannot be
// crashed by a bad sync. A failed run leaves the previous dataset untouched.
func (s *Syncer) Run(ctx context.Context) bool {
	s.log.Infof("Sheets -> SQLite sync starting")

	s.log.Infof("[1/3] Fetching worksheet...")
	raw, err := retry.Do(ctx, s.policy, "worksheet fetch", func() ([]types.RawRow, error) {
		return s.fetcher.FetchRows(ctx)
	})
	if err != nil {
		return s.fail(ctx, err)
	}
	s.log.Infof("  Raw rows: %d", len(raw))

	s.log.Infof("[2/3] Transforming rows...")
	issues, skipped := Transform(raw)
	if skipped > 0 {
		s.log.Warnf("  Skipped %d rows with missing or invalid ID", skipped)
	}

	s.log.Infof("[3/3] Writing to database...")
	count, err := s.store.ReplaceAllIssues(ctx, issues)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.store.AppendSyncRecord(ctx, count, types.SyncSuccess, "Full sync completed"); err != nil {
		return s.fail(ctx, err)
	}

	s.log.Infof("Sync completed: %d records", count)
	return true
}

func (s *Syncer) fail(ctx context.Context, err error) bool {
	s.log.Errorf("Sync failed: %v", err)
	if logErr := s.store.AppendSyncRecord(ctx, 0, types.SyncFailed, err.Error()); logErr != nil {
		// The ledger write itself failed; nothing left to do but log it.
		s.log.Errorf("Failed to record sync failure: %v", logErr)
	}
	return false
}

// EnsureSynced triggers one sync if the issue table is empty. It runs at
// most once per Syncer lifetime regardless of how many readers call it, so
// a reporting process that starts against a fresh database populates itself
// without re-triggering on every read.
func (s *Syncer) EnsureSynced(ctx context.Context) {
	s.autoSync.Do(func() {
		count, err := s.store.CountIssues(ctx)
		if err != nil {
			s.log.Errorf("Auto-sync check failed: %v", err)
			return
		}
		if count > 0 {
			return
		}
		s.log.Infof("Issue table empty, running initial sync")
		s.Run(ctx)
	})
}

// Transform converts raw worksheet rows into issues. Rows whose ID cell is
// empty or not a positive integer are dropped and counted, never failing
// the batch. Retained rows keep their input order; every string field is
// trimmed of surrounding whitespace.
func Transform(raw []types.RawRow) ([]*types.Issue, int) {
	issues := make([]*types.Issue, 0, len(raw))
	skipped := 0

	for _, row := range raw {
		id, err := strconv.ParseInt(strings.TrimSpace(row.ID), 10, 64)
		if err != nil || id <= 0 {
			skipped++
			continue
		}

		issues = append(issues, &types.Issue{
			ID:              id,
			Date:            strings.TrimSpace(row.Date),
			Channel:         strings.TrimSpace(row.Channel),
			OriginalSource:  strings.TrimSpace(row.OriginalSource),
			Category:        strings.TrimSpace(row.Category),
			Issue:           strings.TrimSpace(row.Issue),
			Owner:           strings.TrimSpace(row.Owner),
			ReplyApproach:   strings.TrimSpace(row.ReplyApproach),
			Progress:        strings.TrimSpace(row.Progress),
			Result:          strings.TrimSpace(row.Result),
			ProblemCategory: strings.TrimSpace(row.ProblemCategory),
		})
	}

	return issues, skipped
}
