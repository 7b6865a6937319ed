package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/xuri/excelize/v2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"butchers-ledger/internal/storage"
)

// unknownRangeMessage is what the API answers with 400 when the sheet tab
// named in a range does not exist.
const unknownRangeMessage = "Unable to parse range"

// Table is a storage.Table over one tab of a Google spreadsheet. Every write
// is a synchronous API call.
type Table struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheet         string
	layout        storage.Layout
}

// New builds a Sheets backed table. opts are passed to the Sheets client,
// typically option.WithCredentialsFile.
func New(ctx context.Context, spreadsheetID, sheet string, layout storage.Layout, opts ...option.ClientOption) (*Table, error) {
	const op = "storage.sheets.New"

	if spreadsheetID == "" {
		return nil, fmt.Errorf("%s: spreadsheet id must not be empty", op)
	}

	opts = append([]option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsScope)}, opts...)
	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to initialize sheets client: %w", op, err)
	}

	return &Table{
		service:       service,
		spreadsheetID: spreadsheetID,
		sheet:         sheet,
		layout:        layout,
	}, nil
}

func (t *Table) ScanRows(ctx context.Context) ([]string, []storage.Row, error) {
	const op = "storage.sheets.ScanRows"

	raw, err := t.read(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(raw) < 2 {
		return nil, nil, fmt.Errorf("%s: %s: %w", op, t.sheet, storage.ErrEmptyTable)
	}

	header := make([]string, len(raw[0]))
	for i, v := range raw[0] {
		header[i] = fmt.Sprint(v)
	}

	rows := make([]storage.Row, 0, len(raw)-1)
	for i, values := range raw[1:] {
		cells := make([]storage.Cell, len(values))
		for j, v := range values {
			cells[j] = storage.ParseCell(fmt.Sprint(v))
		}
		rows = append(rows, storage.Row{Index: i + 2, Cells: cells})
	}

	return header, rows, nil
}

func (t *Table) LastRow(ctx context.Context) (int, error) {
	const op = "storage.sheets.LastRow"

	raw, err := t.read(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyTable) {
			return 0, nil
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return len(raw), nil
}

func (t *Table) AppendRow(ctx context.Context, id storage.Cell, label string, headers []string) (int, error) {
	const op = "storage.sheets.AppendRow"

	raw, err := t.read(ctx)
	if err != nil && !errors.Is(err, storage.ErrEmptyTable) {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var values [][]interface{}
	start := len(raw) + 1
	if len(raw) == 0 {
		header := t.layout.Header(headers)
		row := make([]interface{}, len(header))
		for i, h := range header {
			row[i] = h
		}
		values = append(values, row)
	}
	values = append(values, []interface{}{cellValue(id), label})

	rng := fmt.Sprintf("%s!A%d", t.sheet, start)
	if err := t.write(ctx, rng, values); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return start + len(values) - 1, nil
}

func (t *Table) UpdateCell(ctx context.Context, rowIndex int, column string, value storage.Cell) error {
	const op = "storage.sheets.UpdateCell"

	if rowIndex < 2 {
		return fmt.Errorf("%s: row %d is not a data row", op, rowIndex)
	}

	resp, err := t.service.Spreadsheets.Values.Get(t.spreadsheetID, t.sheet+"!1:1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: read header: %w", op, classify(err))
	}
	if len(resp.Values) == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrEmptyTable)
	}

	header := make([]string, len(resp.Values[0]))
	for i, v := range resp.Values[0] {
		header[i] = fmt.Sprint(v)
	}
	col := storage.ColumnIndex(header, column)
	if col < 0 {
		return fmt.Errorf("%s: %q: %w", op, column, storage.ErrColumnNotFound)
	}

	rng := fmt.Sprintf("%s!%s%d", t.sheet, columnName(col+1), rowIndex)
	if err := t.write(ctx, rng, [][]interface{}{{cellValue(value)}}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (t *Table) DeleteRow(ctx context.Context, rowIndex int) error {
	const op = "storage.sheets.DeleteRow"

	if rowIndex < 2 {
		return fmt.Errorf("%s: row %d is not a data row", op, rowIndex)
	}

	sheetID, err := t.sheetID(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			DeleteDimension: &sheetsapi.DeleteDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowIndex - 1),
					EndIndex:   int64(rowIndex),
				},
			},
		}},
	}

	if _, err := t.service.Spreadsheets.BatchUpdate(t.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%s: delete row %d: %w", op, rowIndex, classify(err))
	}
	return nil
}

func (t *Table) read(ctx context.Context) ([][]interface{}, error) {
	resp, err := t.service.Spreadsheets.Values.Get(t.spreadsheetID, t.sheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", t.sheet, classify(err))
	}
	return resp.Values, nil
}

func (t *Table) write(ctx context.Context, rng string, values [][]interface{}) error {
	payload := &sheetsapi.ValueRange{Values: values}

	_, err := t.service.Spreadsheets.Values.Update(t.spreadsheetID, rng, payload).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write range %s: %w", rng, classify(err))
	}
	return nil
}

func (t *Table) sheetID(ctx context.Context) (int64, error) {
	resp, err := t.service.Spreadsheets.Get(t.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("get spreadsheet: %w", classify(err))
	}
	for _, s := range resp.Sheets {
		if s.Properties != nil && s.Properties.Title == t.sheet {
			return s.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %s: %w", t.sheet, storage.ErrEmptyTable)
}

// classify maps "no such spreadsheet" and "no such sheet" API errors onto
// ErrEmptyTable. Other bad requests stay as they are.
func classify(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}
	switch {
	case gerr.Code == http.StatusNotFound,
		gerr.Code == http.StatusBadRequest && strings.Contains(gerr.Message, unknownRangeMessage):
		return fmt.Errorf("%w: %s", storage.ErrEmptyTable, gerr.Message)
	default:
		return err
	}
}

func cellValue(c storage.Cell) interface{} {
	switch c.Kind {
	case storage.CellNumber:
		if c.Number.IsInteger() {
			return c.Number.IntPart()
		}
		return c.Number.InexactFloat64()
	case storage.CellText:
		return c.Text
	default:
		return ""
	}
}

// columnName converts a 1-based column number to A1 letters.
func columnName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}
