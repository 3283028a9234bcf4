package sheets

import (
	"testing"
)

func row(cells ...interface{}) []interface{} { return cells }

func TestDecodeRows(t *testing.T) {
	values := [][]interface{}{
		row("ID", "Date", "Channel / Chat", "Category", "Issue", "Owner", "Progress", "Problem_Category"),
		row("1", "01/23/2026", "#help", "Build fails on arm64", "long text", "alice", "Done", "Library/Build"),
		row(float64(2), "2026-01-24", "#general", "Driver missing", "more text", "bob", "BLOCK", "Setup/Drivers"),
	}

	rows := DecodeRows(values)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if rows[0].ID != "1" || rows[0].Date != "01/23/2026" || rows[0].Channel != "#help" {
		t.Errorf("row 0 decoded wrong: %+v", rows[0])
	}
	if rows[0].Category != "Build fails on arm64" || rows[0].Owner != "alice" || rows[0].Progress != "Done" {
		t.Errorf("row 0 decoded wrong: %+v", rows[0])
	}

	// Numeric cells render without a decimal point.
	if rows[1].ID != "2" {
		t.Errorf("numeric id decoded as %q, want %q", rows[1].ID, "2")
	}
	if rows[1].Progress != "BLOCK" || rows[1].ProblemCategory != "Setup/Drivers" {
		t.Errorf("row 1 decoded wrong: %+v", rows[1])
	}
}

func TestDecodeRowsUnknownColumnsIgnored(t *testing.T) {
	values := [][]interface{}{
		row("ID", "Internal Notes", "Owner"),
		row("7", "should not appear anywhere", "carol"),
	}

	rows := DecodeRows(values)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ID != "7" || rows[0].Owner != "carol" {
		t.Errorf("mapped columns decoded wrong: %+v", rows[0])
	}
	if rows[0].Issue != "" || rows[0].Category != "" {
		t.Errorf("unmapped column leaked into row: %+v", rows[0])
	}
}

func TestDecodeRowsShortRowsPadded(t *testing.T) {
	values := [][]interface{}{
		row("ID", "Date", "Owner"),
		row("3"),
	}

	rows := DecodeRows(values)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ID != "3" || rows[0].Date != "" || rows[0].Owner != "" {
		t.Errorf("short row decoded wrong: %+v", rows[0])
	}
}

func TestDecodeRowsHeaderWhitespaceTrimmed(t *testing.T) {
	// The sheet once shipped a "Progress " header with a trailing space.
	values := [][]interface{}{
		row("ID", "Progress "),
		row("4", "Pending"),
	}

	rows := DecodeRows(values)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Progress != "Pending" {
		t.Errorf("padded header not mapped: %+v", rows[0])
	}
}

func TestDecodeRowsEmptyAndHeaderOnly(t *testing.T) {
	if rows := DecodeRows(nil); rows != nil {
		t.Errorf("expected nil for empty grid, got %v", rows)
	}
	if rows := DecodeRows([][]interface{}{row("ID", "Date")}); rows != nil {
		t.Errorf("expected nil for header-only grid, got %v", rows)
	}
}

func TestCellString(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{"text", "text"},
		{float64(42), "42"},
		{float64(4.5), "4.5"},
		{true, "true"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := cellString(tt.in); got != tt.want {
			t.Errorf("cellString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
