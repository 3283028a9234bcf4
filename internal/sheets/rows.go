package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/devrel-tools/issuedash/internal/types"
)

// ColumnMapping maps worksheet header text to canonical field names.
// Headers not listed here are ignored; the sheet is free to grow columns
// the pipeline does not consume.
var ColumnMapping = map[string]string{
	"ID":               "id",
	"Date":             "date",
	"Channel / Chat":   "channel",
	"Original Source":  "original_source",
	"Category":         "category",
	"Issue":            "issue",
	"Owner":            "owner",
	"Reply / Approach": "reply_approach",
	"Progress":         "progress",
	"Result":           "result",
	"Problem_Category": "problem_category",
}

// DecodeRows converts a raw value grid (header row first) into field-mapped
// rows. Header cells are trimmed before lookup so trailing spaces in the
// sheet header, which have happened before, do not silently drop a column.
// Rows shorter than the header are padded with empty strings.
func DecodeRows(values [][]interface{}) []types.RawRow {
	if len(values) < 2 {
		return nil
	}

	// Map column index -> canonical field name.
	fields := make(map[int]string)
	for i, cell := range values[0] {
		header := strings.TrimSpace(cellString(cell))
		if name, ok := ColumnMapping[header]; ok {
			fields[i] = name
		}
	}

	rows := make([]types.RawRow, 0, len(values)-1)
	for _, cells := range values[1:] {
		var row types.RawRow
		for i, name := range fields {
			if i < len(cells) {
				setField(&row, name, cellString(cells[i]))
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func setField(row *types.RawRow, name, value string) {
	switch name {
	case "id":
		row.ID = value
	case "date":
		row.Date = value
	case "channel":
		row.Channel = value
	case "original_source":
		row.OriginalSource = value
	case "category":
		row.Category = value
	case "issue":
		row.Issue = value
	case "owner":
		row.Owner = value
	case "reply_approach":
		row.ReplyApproach = value
	case "progress":
		row.Progress = value
	case "result":
		row.Result = value
	case "problem_category":
		row.ProblemCategory = value
	}
}

// cellString renders a cell value as text. The Sheets API returns strings
// for formatted values, but unformatted reads and JSON round-trips can
// produce float64 or bool.
func cellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
