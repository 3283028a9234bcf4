package sqlite

import (
	"database/sql"
	"fmt"
)

// migrateProblemCategoryColumn adds the problem_category column to databases
// created before the coarse-category field existed. Additive only; the
// column is left untouched when already present.
func migrateProblemCategoryColumn(db *sql.DB) error {
	exists, err := columnExists(db, "issues", "problem_category")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if _, err := db.Exec(`ALTER TABLE issues ADD COLUMN problem_category TEXT NOT NULL DEFAULT ''`); err != nil {
		return fmt.Errorf("failed to add problem_category column: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_issues_problem_category ON issues(problem_category)`); err != nil {
		return fmt.Errorf("failed to index problem_category column: %w", err)
	}
	return nil
}

func columnExists(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("failed to check schema: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var cid int
		var name, typ string
		var notnull, pk int
		var dflt *string
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			return false, fmt.Errorf("failed to scan column info: %w", err)
		}
		if name == column {
			return true, nil
		}
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("error reading column info: %w", err)
	}
	return false, nil
}
