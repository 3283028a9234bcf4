// Package sheets fetches the remote issue log from a Google Sheets
// worksheet and maps its columns to canonical field names.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/devrel-tools/issuedash/internal/types"
)

// Client reads one worksheet of one spreadsheet with a read-only
// service-account credential.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewClient authenticates with the service-account JSON at credentialsPath
// and targets the given spreadsheet and worksheet.
func NewClient(ctx context.Context, credentialsPath, spreadsheetID, sheetName string) (*Client, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// FetchRows retrieves the whole worksheet and returns its data rows keyed by
// canonical field name. The first row is treated as the header.
func (c *Client) FetchRows(ctx context.Context) ([]types.RawRow, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.sheetName).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", c.sheetName, err)
	}
	return DecodeRows(resp.Values), nil
}
