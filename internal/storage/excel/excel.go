package excel

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"butchers-ledger/internal/storage"
)

// Table is a storage.Table over one sheet of an xlsx workbook. The workbook
// is opened and closed on every call.
type Table struct {
	path   string
	sheet  string
	layout storage.Layout
}

func New(path, sheet string, layout storage.Layout) *Table {
	return &Table{path: path, sheet: sheet, layout: layout}
}

func (t *Table) Path() string { return t.path }

func (t *Table) ScanRows(ctx context.Context) ([]string, []storage.Row, error) {
	const op = "storage.excel.ScanRows"

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	f, err := t.open()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%s: %s: %w", op, t.path, storage.ErrEmptyTable)
		}
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	raw, err := t.rows(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(raw) < 2 {
		return nil, nil, fmt.Errorf("%s: %s/%s: %w", op, t.path, t.sheet, storage.ErrEmptyTable)
	}

	header := raw[0]
	rows := make([]storage.Row, 0, len(raw)-1)
	for i, values := range raw[1:] {
		cells := make([]storage.Cell, len(values))
		for j, v := range values {
			cells[j] = storage.ParseCell(v)
		}
		rows = append(rows, storage.Row{Index: i + 2, Cells: cells})
	}

	return header, rows, nil
}

func (t *Table) LastRow(ctx context.Context) (int, error) {
	const op = "storage.excel.LastRow"

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	f, err := t.open()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	raw, err := t.rows(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return len(raw), nil
}

func (t *Table) AppendRow(ctx context.Context, id storage.Cell, label string, headers []string) (int, error) {
	const op = "storage.excel.AppendRow"

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	f, err := t.open()
	if errors.Is(err, fs.ErrNotExist) {
		f, err = t.create()
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(t.sheet); idx < 0 {
		if _, err := f.NewSheet(t.sheet); err != nil {
			return 0, fmt.Errorf("%s: new sheet %s: %w", op, t.sheet, err)
		}
	}

	raw, err := t.rows(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	last := len(raw)
	if last == 0 {
		// Новая таблица: сначала шапка
		header := t.layout.Header(headers)
		values := make([]interface{}, len(header))
		for i, h := range header {
			values[i] = h
		}
		if err := f.SetSheetRow(t.sheet, "A1", &values); err != nil {
			return 0, fmt.Errorf("%s: write header: %w", op, err)
		}
		last = 1
	}

	row := last + 1
	if err := t.setCell(f, 1, row, id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err := t.setCell(f, 2, row, storage.TextCell(label)); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := t.save(f); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return row, nil
}

func (t *Table) UpdateCell(ctx context.Context, rowIndex int, column string, value storage.Cell) error {
	const op = "storage.excel.UpdateCell"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowIndex < 2 {
		return fmt.Errorf("%s: row %d is not a data row", op, rowIndex)
	}

	f, err := t.open()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", op, storage.ErrEmptyTable)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	raw, err := t.rows(f)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(raw) == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrEmptyTable)
	}

	col := storage.ColumnIndex(raw[0], column)
	if col < 0 {
		return fmt.Errorf("%s: %q: %w", op, column, storage.ErrColumnNotFound)
	}

	if err := t.setCell(f, col+1, rowIndex, value); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := t.save(f); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (t *Table) DeleteRow(ctx context.Context, rowIndex int) error {
	const op = "storage.excel.DeleteRow"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowIndex < 2 {
		return fmt.Errorf("%s: row %d is not a data row", op, rowIndex)
	}

	f, err := t.open()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", op, storage.ErrEmptyTable)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	if err := f.RemoveRow(t.sheet, rowIndex); err != nil {
		return fmt.Errorf("%s: remove row %d: %w", op, rowIndex, err)
	}

	if err := t.save(f); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (t *Table) open() (*excelize.File, error) {
	if _, err := os.Stat(t.path); err != nil {
		return nil, err
	}
	return excelize.OpenFile(t.path)
}

func (t *Table) create() (*excelize.File, error) {
	if dir := filepath.Dir(t.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create dir %s: %w", dir, err)
		}
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), t.sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename default sheet: %w", err)
	}
	return f, nil
}

// rows returns the raw sheet text. A missing sheet reads as no rows.
func (t *Table) rows(f *excelize.File) ([][]string, error) {
	if idx, _ := f.GetSheetIndex(t.sheet); idx < 0 {
		return nil, nil
	}
	raw, err := f.GetRows(t.sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", t.sheet, err)
	}
	return raw, nil
}

func (t *Table) setCell(f *excelize.File, col, row int, value storage.Cell) error {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}

	switch value.Kind {
	case storage.CellNumber:
		if value.Number.IsInteger() {
			err = f.SetCellValue(t.sheet, axis, value.Number.IntPart())
		} else {
			err = f.SetCellValue(t.sheet, axis, value.Number.InexactFloat64())
		}
	case storage.CellText:
		err = f.SetCellStr(t.sheet, axis, value.Text)
	default:
		err = f.SetCellValue(t.sheet, axis, nil)
	}
	if err != nil {
		return fmt.Errorf("set %s: %w", axis, err)
	}
	return nil
}

// save flushes the workbook to disk before the call returns.
func (t *Table) save(f *excelize.File) error {
	if err := f.SaveAs(t.path); err != nil {
		return fmt.Errorf("save %s: %w", t.path, err)
	}
	return nil
}
