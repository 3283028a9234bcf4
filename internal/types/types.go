// Package types defines the shared data structures for the issue sync pipeline
// and the reporting read API.
package types

import (
	"time"
)

// Issue is one row of the community issue log. The ID comes from the
// spreadsheet and is the source of truth; it is never generated locally.
type Issue struct {
	ID              int64     `json:"id"`
	Date            string    `json:"date"`
	Channel         string    `json:"channel"`
	OriginalSource  string    `json:"original_source"`
	Category        string    `json:"category"`
	Issue           string    `json:"issue"`
	Owner           string    `json:"owner"`
	ReplyApproach   string    `json:"reply_approach"`
	Progress        string    `json:"progress"`
	Result          string    `json:"result"`
	ProblemCategory string    `json:"problem_category"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RawRow is one worksheet row after header mapping but before any
// transformation. Every field is the raw cell text; cells absent from the
// sheet decode to the empty string.
type RawRow struct {
	ID              string
	Date            string
	Channel         string
	OriginalSource  string
	Category        string
	Issue           string
	Owner           string
	ReplyApproach   string
	Progress        string
	Result          string
	ProblemCategory string
}

// SyncStatus is the outcome recorded in the sync ledger.
type SyncStatus string

const (
	SyncSuccess SyncStatus = "success"
	SyncFailed  SyncStatus = "failed"
)

// SyncRecord is one append-only ledger entry. Rows are never mutated or
// deleted after insertion.
type SyncRecord struct {
	ID         int64      `json:"id"`
	SyncTime   time.Time  `json:"sync_time"`
	RowsSynced int        `json:"rows_synced"`
	Status     SyncStatus `json:"status"`
	Message    string     `json:"message"`
}

// IssueFilter narrows reads by equality and date-range predicates.
// Zero-valued fields are ignored; set fields are AND-combined.
type IssueFilter struct {
	Category        string `json:"category,omitempty"`
	Progress        string `json:"progress,omitempty"`
	Owner           string `json:"owner,omitempty"`
	DateFrom        string `json:"date_from,omitempty"`
	DateTo          string `json:"date_to,omitempty"`
	ProblemCategory string `json:"problem_category,omitempty"`
}

// Statistics is the aggregate bundle consumed by the reporting layer.
// ByProgress groups by the raw stored value; normalization happens on read
// in the consumer via normalize.Progress.
type Statistics struct {
	Total             int            `json:"total"`
	ByProgress        map[string]int `json:"by_progress"`
	ByCategory        map[string]int `json:"by_category"`
	ByProblemCategory map[string]int `json:"by_problem_category"`
	ByOwner           map[string]int `json:"by_owner"`
}
