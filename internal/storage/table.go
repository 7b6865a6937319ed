package storage

import "context"

const (
	DefaultIDHeader    = "LP."
	DefaultLabelHeader = "Imię i nazwisko"
)

// Table is a row oriented record store with a header row. Row indexes are
// 1-based sheet rows, row 1 being the header.
//
// Every call opens the underlying resource, performs one operation and
// persists it before returning.
type Table interface {
	// ScanRows returns the header row and all data rows. ErrEmptyTable when the
	// resource is missing or has no data rows.
	ScanRows(ctx context.Context) ([]string, []Row, error)
	// LastRow is the index of the last used row, 0 for a missing table.
	LastRow(ctx context.Context) (int, error)
	// AppendRow writes id and label into the first row past LastRow. A missing
	// header row is synthesized from headers first.
	AppendRow(ctx context.Context, id Cell, label string, headers []string) (int, error)
	// UpdateCell writes value into the column whose header equals column.
	UpdateCell(ctx context.Context, rowIndex int, column string, value Cell) error
	// DeleteRow removes the row and shifts the following rows up by one.
	DeleteRow(ctx context.Context, rowIndex int) error
}

// Layout is the header synthesized for a table that has none yet.
type Layout struct {
	IDHeader    string   `yaml:"id_header" env-default:"LP."`
	LabelHeader string   `yaml:"label_header" env-default:"Imię i nazwisko"`
	Products    []string `yaml:"default_products" env-default:"Szynka,Kiełbasa,Boczek"`
}

// Header returns the header row for a new table. Non-empty columns replace
// the default product set.
func (l Layout) Header(columns []string) []string {
	id, label := l.IDHeader, l.LabelHeader
	if id == "" {
		id = DefaultIDHeader
	}
	if label == "" {
		label = DefaultLabelHeader
	}
	if len(columns) == 0 {
		columns = l.Products
	}
	header := make([]string, 0, len(columns)+2)
	header = append(header, id, label)
	return append(header, columns...)
}

// ColumnIndex finds the zero-based column whose header text equals name.
// The id column is never matched.
func ColumnIndex(header []string, name string) int {
	for i := 1; i < len(header); i++ {
		if header[i] == name {
			return i
		}
	}
	return -1
}

// ProductColumnIndex is ColumnIndex restricted to product columns, the ones
// after the id and label columns.
func ProductColumnIndex(header []string, name string) int {
	for i := 2; i < len(header); i++ {
		if header[i] == name {
			return i
		}
	}
	return -1
}
