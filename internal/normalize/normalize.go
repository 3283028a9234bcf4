// Package normalize holds the pure categorical and date normalization
// functions shared by the sync pipeline and the reporting layer.
package normalize

import (
	"strings"
	"time"
)

// Canonical progress values. ProgressUnknown is the catch-all for anything
// outside the known-variant table.
const (
	ProgressDone       = "Done"
	ProgressInProgress = "In Progress"
	ProgressPending    = "Pending"
	ProgressBlocked    = "Blocked"
	ProgressUnknown    = "Unknown"
)

// ProgressValues lists the canonical values in display order, without the
// Unknown bucket.
var ProgressValues = []string{ProgressDone, ProgressInProgress, ProgressPending, ProgressBlocked}

// progressMapping is the exact-variant table. The spreadsheet has accumulated
// these spellings over time; matching is deliberately exact (after trimming)
// rather than case-folded so the table stays the single record of what has
// actually appeared upstream.
var progressMapping = map[string]string{
	"done":        ProgressDone,
	"Done":        ProgressDone,
	"DONE":        ProgressDone,
	"in progress": ProgressInProgress,
	"In Progress": ProgressInProgress,
	"In progress": ProgressInProgress,
	"IN PROGRESS": ProgressInProgress,
	"pending":     ProgressPending,
	"Pending":     ProgressPending,
	"PENDING":     ProgressPending,
	"block":       ProgressBlocked,
	"Block":       ProgressBlocked,
	"blocked":     ProgressBlocked,
	"Blocked":     ProgressBlocked,
	"BLOCKED":     ProgressBlocked,
}

// Progress maps a raw progress cell to its canonical value. Surrounding
// whitespace is stripped before lookup; anything not in the variant table,
// including the empty string, yields ProgressUnknown. Never fails.
func Progress(raw string) string {
	val := strings.TrimSpace(raw)
	if canonical, ok := progressMapping[val]; ok {
		return canonical
	}
	return ProgressUnknown
}

// ProblemCategories is the fixed set of coarse labels used by the
// Problem_Category dropdown upstream. Stored values outside this set are kept
// as-is; the list exists for reporting menus.
var ProblemCategories = []string{
	"App Integration",
	"Developer Program",
	"Internal Process",
	"Library/Build",
	"Other",
	"Setup/Drivers",
}

// dateLayouts are tried in priority order: month/day/4-digit-year, ISO,
// month/day/2-digit-year, day/month/4-digit-year. Ambiguous strings like
// "01/02/2026" therefore always resolve as month/day; callers rely on this
// tie-break. Non-padded layouts accept both "1/5/2026" and "01/05/2026".
var dateLayouts = []string{
	"1/2/2006",
	"2006-1-2",
	"1/2/06",
	"2/1/2006",
}

// Date parses a raw date cell against the supported layouts. The second
// return value reports whether a date was recognized; empty and unparseable
// input return a zero time and false rather than an error.
func Date(raw string) (time.Time, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
