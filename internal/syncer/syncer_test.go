package syncer

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/devrel-tools/issuedash/internal/logging"
	"github.com/devrel-tools/issuedash/internal/normalize"
	"github.com/devrel-tools/issuedash/internal/retry"
	"github.com/devrel-tools/issuedash/internal/storage/sqlite"
	"github.com/devrel-tools/issuedash/internal/types"
)

type fakeFetcher struct {
	rows    []types.RawRow
	err     error
	calls   int
	failFor int // fail this many calls before succeeding
}

func (f *fakeFetcher) FetchRows(ctx context.Context) ([]types.RawRow, error) {
	f.calls++
	if f.err != nil && (f.failFor == 0 || f.calls <= f.failFor) {
		return nil, f.err
	}
	return f.rows, nil
}

func setupSyncer(t *testing.T, fetcher Fetcher) (*Syncer, *sqlite.SQLiteStorage) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	log := logging.New("")
	log.SetConsole(io.Discard)

	// No real sleeping in tests.
	policy := retry.Policy{MaxAttempts: 3, BaseDelay: time.Nanosecond}
	return New(store, fetcher, log, policy), store
}

func sheetRows() []types.RawRow {
	return []types.RawRow{
		{ID: "1", Date: "01/23/2026", Category: "Build fails", Owner: "alice", Progress: "done"},
		{ID: "", Date: "01/24/2026", Category: "no id, data entry miss"},
		{ID: "2", Date: "01/25/2026", Category: "Driver missing", Owner: "bob", Progress: "BLOCK"},
	}
}

func TestTransform(t *testing.T) {
	issues, skipped := Transform(sheetRows())

	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	if len(issues) != 2 {
		t.Fatalf("got %d issues, want 2", len(issues))
	}

	// Input order preserved for retained rows.
	if issues[0].ID != 1 || issues[1].ID != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", issues[0].ID, issues[1].ID)
	}
	if issues[0].Category != "Build fails" || issues[1].Owner != "bob" {
		t.Errorf("fields mapped wrong: %+v", issues)
	}
}

func TestTransformTrimsAndValidatesIDs(t *testing.T) {
	rows := []types.RawRow{
		{ID: " 7 ", Owner: "  alice  ", Category: "\ttabbed\t"},
		{ID: "abc"},
		{ID: "0"},
		{ID: "-3"},
	}

	issues, skipped := Transform(rows)
	if skipped != 3 {
		t.Errorf("skipped = %d, want 3 (non-numeric, zero, negative)", skipped)
	}
	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1", len(issues))
	}
	if issues[0].ID != 7 || issues[0].Owner != "alice" || issues[0].Category != "tabbed" {
		t.Errorf("trimming wrong: %+v", issues[0])
	}
}

func TestTransformEmpty(t *testing.T) {
	issues, skipped := Transform(nil)
	if len(issues) != 0 || skipped != 0 {
		t.Errorf("Transform(nil) = %d issues, %d skipped", len(issues), skipped)
	}
}

func TestRunSuccess(t *testing.T) {
	fetcher := &fakeFetcher{rows: sheetRows()}
	s, store := setupSyncer(t, fetcher)
	ctx := context.Background()

	if ok := s.Run(ctx); !ok {
		t.Fatal("Run returned failure")
	}

	count, err := store.CountIssues(ctx)
	if err != nil {
		t.Fatalf("CountIssues failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2 (empty-id row skipped)", count)
	}

	last, err := store.GetLastSync(ctx)
	if err != nil {
		t.Fatalf("GetLastSync failed: %v", err)
	}
	if last.Status != types.SyncSuccess {
		t.Errorf("Status = %q, want success", last.Status)
	}
	if last.RowsSynced != 2 {
		t.Errorf("RowsSynced = %d, want 2", last.RowsSynced)
	}

	// Stored progress values normalize as expected on read.
	issues, err := store.GetAllIssues(ctx)
	if err != nil {
		t.Fatalf("GetAllIssues failed: %v", err)
	}
	byID := make(map[int64]string)
	for _, issue := range issues {
		byID[issue.ID] = normalize.Progress(issue.Progress)
	}
	if byID[1] != normalize.ProgressDone {
		t.Errorf("issue 1 normalizes to %q, want Done", byID[1])
	}
	if byID[2] != normalize.ProgressBlocked {
		t.Errorf("issue 2 normalizes to %q, want Blocked", byID[2])
	}
}

func TestRunFetchFailureAfterRetries(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("rate limited")}
	s, store := setupSyncer(t, fetcher)
	ctx := context.Background()

	if ok := s.Run(ctx); ok {
		t.Fatal("Run returned success on fetch failure")
	}

	if fetcher.calls != 3 {
		t.Errorf("fetch attempted %d times, want 3", fetcher.calls)
	}

	last, err := store.GetLastSync(ctx)
	if err != nil {
		t.Fatalf("GetLastSync failed: %v", err)
	}
	if last.Status != types.SyncFailed {
		t.Errorf("Status = %q, want failed", last.Status)
	}
	if last.RowsSynced != 0 {
		t.Errorf("RowsSynced = %d, want 0", last.RowsSynced)
	}
	if last.Message != "rate limited" {
		t.Errorf("Message = %q, want the fetch error text", last.Message)
	}
}

func TestRunFetchRecoversWithinRetries(t *testing.T) {
	fetcher := &fakeFetcher{rows: sheetRows(), err: errors.New("flaky"), failFor: 2}
	s, store := setupSyncer(t, fetcher)
	ctx := context.Background()

	if ok := s.Run(ctx); !ok {
		t.Fatal("Run returned failure despite recovery on third attempt")
	}
	if fetcher.calls != 3 {
		t.Errorf("fetch attempted %d times, want 3", fetcher.calls)
	}

	last, err := store.GetLastSync(ctx)
	if err != nil {
		t.Fatalf("GetLastSync failed: %v", err)
	}
	if last.Status != types.SyncSuccess {
		t.Errorf("Status = %q, want success", last.Status)
	}
}

func TestRunFailurePreservesPreviousDataset(t *testing.T) {
	fetcher := &fakeFetcher{rows: sheetRows()}
	s, store := setupSyncer(t, fetcher)
	ctx := context.Background()

	if ok := s.Run(ctx); !ok {
		t.Fatal("seed sync failed")
	}

	fetcher.err = errors.New("remote gone")
	fetcher.failFor = 0
	if ok := s.Run(ctx); ok {
		t.Fatal("second sync unexpectedly succeeded")
	}

	// Previous dataset untouched.
	count, err := store.CountIssues(ctx)
	if err != nil {
		t.Fatalf("CountIssues failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want previous 2 rows intact", count)
	}
}

func TestEnsureSyncedRunsOnceOnEmpty(t *testing.T) {
	fetcher := &fakeFetcher{rows: sheetRows()}
	s, store := setupSyncer(t, fetcher)
	ctx := context.Background()

	s.EnsureSynced(ctx)
	s.EnsureSynced(ctx)
	s.EnsureSynced(ctx)

	if fetcher.calls != 1 {
		t.Errorf("fetch called %d times, want 1", fetcher.calls)
	}

	count, err := store.CountIssues(ctx)
	if err != nil {
		t.Fatalf("CountIssues failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestEnsureSyncedSkipsWhenPopulated(t *testing.T) {
	fetcher := &fakeFetcher{rows: sheetRows()}
	s, store := setupSyncer(t, fetcher)
	ctx := context.Background()

	if _, err := store.ReplaceAllIssues(ctx, []*types.Issue{{ID: 99}}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	s.EnsureSynced(ctx)
	if fetcher.calls != 0 {
		t.Errorf("fetch called %d times on a populated store, want 0", fetcher.calls)
	}
}
