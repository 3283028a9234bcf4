// Package storage defines the interface for the local issue store.
package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/devrel-tools/issuedash/internal/types"
)

// ErrNoSyncHistory is returned by GetLastSync when no sync has ever run.
var ErrNoSyncHistory = errors.New("no sync history")

// Storage is the full surface consumed by the sync pipeline and the
// reporting layer. Write operations either complete fully or return an
// error; partial state is never visible to readers.
type Storage interface {
	// ReplaceAllIssues deletes every existing issue and inserts the given
	// set in a single transaction, rolling back on any failure. An empty
	// input is a guarded no-op: it returns 0 without deleting anything.
	// Returns the number of rows written.
	ReplaceAllIssues(ctx context.Context, issues []*types.Issue) (int, error)

	// AppendSyncRecord inserts one ledger row. The ledger is append-only.
	AppendSyncRecord(ctx context.Context, rowsSynced int, status types.SyncStatus, message string) error

	// Reads (side-effect-free)
	GetAllIssues(ctx context.Context) ([]*types.Issue, error)
	CountIssues(ctx context.Context) (int, error)
	GetLastSync(ctx context.Context) (*types.SyncRecord, error)
	SearchIssues(ctx context.Context, keyword string) ([]*types.Issue, error)
	FilterIssues(ctx context.Context, filter types.IssueFilter) ([]*types.Issue, error)
	DistinctValues(ctx context.Context, column string) ([]string, error)
	GetStatistics(ctx context.Context) (*types.Statistics, error)

	// Lifecycle
	Close() error
	Path() string

	// UnderlyingDB exposes the *sql.DB for extensions that need their own
	// tables in the same database. Direct access bypasses the storage
	// layer's guarantees.
	UnderlyingDB() *sql.DB
}
