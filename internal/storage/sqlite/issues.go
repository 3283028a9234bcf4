package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/devrel-tools/issuedash/internal/storage"
	"github.com/devrel-tools/issuedash/internal/types"
)

const issueColumns = `id, date, channel, original_source, category, issue,
	owner, reply_approach, progress, result, problem_category,
	created_at, updated_at`

// ReplaceAllIssues deletes the current dataset and inserts the new one in a
// single transaction. A failure at any point rolls the whole operation back,
// leaving the previously committed rows untouched. INSERT OR REPLACE means a
// duplicate id within the batch is tolerated, last one wins.
//
// An empty batch is rejected as a guarded no-op rather than a wipe: a sync
// that fetched zero rows is far more likely an upstream accident than a real
// instruction to clear the dataset.
func (s *SQLiteStorage) ReplaceAllIssues(ctx context.Context, issues []*types.Issue) (int, error) {
	if len(issues) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	for _, issue := range issues {
		if issue.CreatedAt.IsZero() {
			issue.CreatedAt = now
		}
		if issue.UpdatedAt.IsZero() {
			issue.UpdatedAt = now
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM issues`); err != nil {
		return 0, fmt.Errorf("failed to clear issues: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO issues (`+issueColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, issue := range issues {
		_, err := stmt.ExecContext(ctx,
			issue.ID, issue.Date, issue.Channel, issue.OriginalSource,
			issue.Category, issue.Issue, issue.Owner, issue.ReplyApproach,
			issue.Progress, issue.Result, issue.ProblemCategory,
			issue.CreatedAt, issue.UpdatedAt,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert issue %d (id %d): %w", i, issue.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit replace: %w", err)
	}
	return len(issues), nil
}

// AppendSyncRecord inserts one ledger row with the current timestamp.
func (s *SQLiteStorage) AppendSyncRecord(ctx context.Context, rowsSynced int, status types.SyncStatus, message string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_log (rows_synced, status, message) VALUES (?, ?, ?)
	`, rowsSynced, string(status), message)
	if err != nil {
		return fmt.Errorf("failed to append sync record: %w", err)
	}
	return nil
}

// GetAllIssues returns every issue, most recent id first.
func (s *SQLiteStorage) GetAllIssues(ctx context.Context) ([]*types.Issue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+issueColumns+` FROM issues ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query issues: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanIssues(rows)
}

// CountIssues returns the number of issues currently stored.
func (s *SQLiteStorage) CountIssues(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM issues`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count issues: %w", err)
	}
	return count, nil
}

// GetLastSync returns the most recent ledger entry, or ErrNoSyncHistory when
// the ledger is empty.
func (s *SQLiteStorage) GetLastSync(ctx context.Context) (*types.SyncRecord, error) {
	var rec types.SyncRecord
	var status string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, sync_time, rows_synced, status, message
		FROM sync_log
		ORDER BY sync_time DESC, id DESC
		LIMIT 1
	`).Scan(&rec.ID, &rec.SyncTime, &rec.RowsSynced, &status, &rec.Message)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNoSyncHistory
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last sync: %w", err)
	}
	rec.Status = types.SyncStatus(status)
	return &rec, nil
}

// SearchIssues returns issues where the keyword appears in any of the
// searchable text fields. SQLite LIKE is case-insensitive for ASCII.
func (s *SQLiteStorage) SearchIssues(ctx context.Context, keyword string) ([]*types.Issue, error) {
	pattern := "%" + keyword + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+issueColumns+` FROM issues
		WHERE issue LIKE ?
		   OR category LIKE ?
		   OR channel LIKE ?
		   OR owner LIKE ?
		   OR reply_approach LIKE ?
		   OR problem_category LIKE ?
		ORDER BY id DESC
	`, pattern, pattern, pattern, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search issues: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanIssues(rows)
}

// FilterIssues returns issues matching every set predicate in the filter.
func (s *SQLiteStorage) FilterIssues(ctx context.Context, filter types.IssueFilter) ([]*types.Issue, error) {
	whereClauses := []string{}
	args := []interface{}{}

	if filter.Category != "" {
		whereClauses = append(whereClauses, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Progress != "" {
		whereClauses = append(whereClauses, "progress = ?")
		args = append(args, filter.Progress)
	}
	if filter.Owner != "" {
		whereClauses = append(whereClauses, "owner = ?")
		args = append(args, filter.Owner)
	}
	if filter.DateFrom != "" {
		whereClauses = append(whereClauses, "date >= ?")
		args = append(args, filter.DateFrom)
	}
	if filter.DateTo != "" {
		whereClauses = append(whereClauses, "date <= ?")
		args = append(args, filter.DateTo)
	}
	if filter.ProblemCategory != "" {
		whereClauses = append(whereClauses, "problem_category = ?")
		args = append(args, filter.ProblemCategory)
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	querySQL := fmt.Sprintf(`
		SELECT %s FROM issues
		%s
		ORDER BY id DESC
	`, issueColumns, whereSQL)

	rows, err := s.db.QueryContext(ctx, querySQL, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter issues: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanIssues(rows)
}

// distinctColumns is the allowlist for DistinctValues. The column name is
// interpolated into SQL, so anything outside this set is rejected.
var distinctColumns = map[string]bool{
	"date":             true,
	"channel":          true,
	"original_source":  true,
	"category":         true,
	"owner":            true,
	"progress":         true,
	"result":           true,
	"problem_category": true,
}

// DistinctValues returns the sorted distinct non-empty values of a column,
// for building filter menus.
func (s *SQLiteStorage) DistinctValues(ctx context.Context, column string) ([]string, error) {
	if !distinctColumns[column] {
		return nil, fmt.Errorf("unsupported column for distinct values: %q", column)
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT DISTINCT %s FROM issues
		WHERE %s IS NOT NULL AND %s != ''
		ORDER BY %s
	`, column, column, column, column))
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct values: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan value: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading values: %w", err)
	}
	return values, nil
}

// GetStatistics returns the aggregate bundle for the reporting layer.
func (s *SQLiteStorage) GetStatistics(ctx context.Context) (*types.Statistics, error) {
	stats := &types.Statistics{}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM issues`).Scan(&stats.Total); err != nil {
		return nil, fmt.Errorf("failed to count issues: %w", err)
	}

	var err error
	stats.ByProgress, err = s.groupCount(ctx, `
		SELECT progress, COUNT(*) FROM issues GROUP BY progress
	`)
	if err != nil {
		return nil, err
	}

	stats.ByCategory, err = s.groupCount(ctx, `
		SELECT category, COUNT(*) FROM issues GROUP BY category ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, err
	}

	stats.ByProblemCategory, err = s.groupCount(ctx, `
		SELECT problem_category, COUNT(*) FROM issues
		WHERE problem_category IS NOT NULL AND problem_category != ''
		GROUP BY problem_category ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, err
	}

	stats.ByOwner, err = s.groupCount(ctx, `
		SELECT owner, COUNT(*) FROM issues GROUP BY owner ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *SQLiteStorage) groupCount(ctx context.Context, query string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query group counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("failed to scan group count: %w", err)
		}
		counts[key] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading group counts: %w", err)
	}
	return counts, nil
}

func scanIssues(rows *sql.Rows) ([]*types.Issue, error) {
	var issues []*types.Issue
	for rows.Next() {
		var issue types.Issue
		err := rows.Scan(
			&issue.ID, &issue.Date, &issue.Channel, &issue.OriginalSource,
			&issue.Category, &issue.Issue, &issue.Owner, &issue.ReplyApproach,
			&issue.Progress, &issue.Result, &issue.ProblemCategory,
			&issue.CreatedAt, &issue.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan issue: %w", err)
		}
		issues = append(issues, &issue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading issues: %w", err)
	}
	return issues, nil
}
