package sheets

import (
	"context"
	"fmt"
	"juniorguru-sync/internal/components/telemetry"
	"slices"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const (
	report_sheets_replace = "sheets.replace"
	report_sheets_read    = "sheets.read"
)

// Table is a worksheet worth of data, the header becomes the first row.
type Table struct {
	Header []string
	Rows   [][]any
}

// Client reads and writes worksheets of a single Google Sheets document.
type Client struct {
	service *gsheets.Service
	docKey  string
	tel     telemetry.API
}

// NewClient creates a client for the document identified by docKey,
// credentials and endpoints are passed in as options.
func NewClient(ctx context.Context, docKey string, tel telemetry.API, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope)}, opts...)
	service, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{
		service: service,
		docKey:  docKey,
		tel:     telemetry.NewScopedAPI("sheets", tel),
	}, nil
}

// Replace overwrites the worksheet with the table in a single update. Cells
// of the previous content outside of the new table are blanked by padding,
// so a failed write leaves the old data in place instead of an empty sheet.
func (c *Client) Replace(ctx context.Context, worksheet string, table Table) error {
	current, err := c.service.Spreadsheets.Values.
		Get(c.docKey, worksheet).
		Context(ctx).
		Do()
	if err != nil {
		c.tel.ReportBroken(report_sheets_replace, err, worksheet)
		return fmt.Errorf("read worksheet %s: %w", worksheet, err)
	}

	header := make([]any, len(table.Header))
	for i, h := range table.Header {
		header[i] = h
	}
	values := padValues(append([][]any{header}, table.Rows...), current.Values)

	_, err = c.service.Spreadsheets.Values.
		Update(c.docKey, worksheet+"!A1", &gsheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		c.tel.ReportBroken(report_sheets_replace, err, worksheet)
		return fmt.Errorf("update worksheet %s: %w", worksheet, err)
	}
	c.tel.ReportDebug("replaced worksheet", worksheet, len(table.Rows))
	return nil
}

// padValues extends values with "" cells so that it covers every cell of old.
func padValues(values, old [][]any) [][]any {
	width := 0
	for _, row := range append(slices.Clone(values), old...) {
		width = max(width, len(row))
	}
	height := max(len(values), len(old))

	padded := make([][]any, height)
	for i := range padded {
		row := make([]any, width)
		if i < len(values) {
			copy(row, values[i])
		}
		for j := range row {
			if row[j] == nil {
				row[j] = ""
			}
		}
		padded[i] = row
	}
	return padded
}

// Records reads the worksheet and returns every row below the header as a
// map of header to cell text. Missing trailing cells become "".
func (c *Client) Records(ctx context.Context, worksheet string) ([]map[string]string, error) {
	res, err := c.service.Spreadsheets.Values.
		Get(c.docKey, worksheet).
		Context(ctx).
		Do()
	if err != nil {
		c.tel.ReportBroken(report_sheets_read, err, worksheet)
		return nil, fmt.Errorf("read worksheet %s: %w", worksheet, err)
	}
	if len(res.Values) == 0 {
		return nil, nil
	}

	header := make([]string, len(res.Values[0]))
	for i, cell := range res.Values[0] {
		header[i] = fmt.Sprint(cell)
	}
	records := make([]map[string]string, 0, len(res.Values)-1)
	for _, row := range res.Values[1:] {
		record := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(row) && row[i] != nil {
				record[key] = fmt.Sprint(row[i])
			} else {
				record[key] = ""
			}
		}
		records = append(records, record)
	}
	return records, nil
}
