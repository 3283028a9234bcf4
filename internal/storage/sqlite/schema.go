package sqlite

const schema = `
-- Issues table. The id is the external spreadsheet id, never generated
-- locally. The whole table is replaced on every successful sync.
CREATE TABLE IF NOT EXISTS issues (
    id INTEGER PRIMARY KEY CHECK(id > 0),
    date TEXT NOT NULL DEFAULT '',
    channel TEXT NOT NULL DEFAULT '',
    original_source TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    issue TEXT NOT NULL DEFAULT '',
    owner TEXT NOT NULL DEFAULT '',
    reply_approach TEXT NOT NULL DEFAULT '',
    progress TEXT NOT NULL DEFAULT '',
    result TEXT NOT NULL DEFAULT '',
    problem_category TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_issues_date ON issues(date);
CREATE INDEX IF NOT EXISTS idx_issues_category ON issues(category);
CREATE INDEX IF NOT EXISTS idx_issues_progress ON issues(progress);
CREATE INDEX IF NOT EXISTS idx_issues_owner ON issues(owner);
CREATE INDEX IF NOT EXISTS idx_issues_problem_category ON issues(problem_category);

-- Sync ledger (append-only audit log of pipeline runs)
CREATE TABLE IF NOT EXISTS sync_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    sync_time DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    rows_synced INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL,
    message TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_sync_log_sync_time ON sync_log(sync_time);
`
