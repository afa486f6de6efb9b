package spreadsheet

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"qrattend/internal/domain"
	"qrattend/internal/domain/entities"
	"qrattend/internal/ports/output"
)

const valueInputUserEntered = "USER_ENTERED"

var _ output.SheetClient = (*Client)(nil)

// Client implements output.SheetClient over the Google Sheets v4 API.
type Client struct {
	values        *gsheets.SpreadsheetsValuesService
	spreadsheetID string
	sheetName     string
	readRange     string
}

// NewClient builds a Sheets client for one sheet of one spreadsheet.
// readRange is in A1 notation without the sheet name (e.g. "A:F").
func NewClient(ctx context.Context, spreadsheetID, sheetName, readRange string, opts ...option.ClientOption) (*Client, error) {
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: create sheets service: %w", domain.ErrRemote, err)
	}
	return &Client{
		values:        svc.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		readRange:     readRange,
	}, nil
}

// Fetch reads the configured range. The first row holds the headers.
func (c *Client) Fetch(ctx context.Context) (*entities.Sheet, error) {
	rng := c.a1(c.readRange)
	resp, err := c.values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %w", domain.ErrRemote, rng, err)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("%w: range %s is empty", domain.ErrRemote, rng)
	}
	values := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		values[i] = make([]string, len(row))
		for j, cell := range row {
			values[i][j] = cellString(cell)
		}
	}
	return entities.NewSheet(values), nil
}

// Push writes the two last columns (Attendance, Time Stamp), header row
// included, as if typed by a user.
func (c *Client) Push(ctx context.Context, sheet *entities.Sheet) (int, error) {
	n := len(sheet.Headers)
	if n < 2 {
		return 0, fmt.Errorf("push: %w", domain.ErrSchema)
	}
	rng := c.a1(ColumnLetter(n-2) + ":" + ColumnLetter(n-1))

	cols := sheet.TailColumns(2)
	body := &gsheets.ValueRange{Values: make([][]interface{}, len(cols))}
	for i, row := range cols {
		body.Values[i] = []interface{}{row[0], row[1]}
	}

	resp, err := c.values.Update(c.spreadsheetID, rng, body).
		ValueInputOption(valueInputUserEntered).
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("%w: update %s: %w", domain.ErrRemote, rng, err)
	}
	return int(resp.UpdatedCells), nil
}

func (c *Client) a1(rng string) string {
	return quoteSheetName(c.sheetName) + "!" + rng
}

func quoteSheetName(name string) string {
	for _, r := range name {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_') {
			return "'" + strings.ReplaceAll(name, "'", "''") + "'"
		}
	}
	return name
}

// ColumnLetter converts a zero-based column index to its A1 letters.
func ColumnLetter(i int) string {
	s := ""
	for i++; i > 0; i = (i - 1) / 26 {
		s = string(rune('A'+(i-1)%26)) + s
	}
	return s
}

func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
