package storage

import (
	"strings"

	"github.com/shopspring/decimal"
)

type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
)

// Cell is a ledger cell as seen by the table accessors. Only the order ledger
// and the factor loader give it a meaning.
type Cell struct {
	Kind   CellKind
	Number decimal.Decimal
	Text   string
}

func EmptyCell() Cell { return Cell{Kind: CellEmpty} }

func NumberCell(d decimal.Decimal) Cell { return Cell{Kind: CellNumber, Number: d} }

func IntCell(v int) Cell { return NumberCell(decimal.NewFromInt(int64(v))) }

func TextCell(s string) Cell {
	if s == "" {
		return EmptyCell()
	}
	return Cell{Kind: CellText, Text: s}
}

// ParseCell classifies raw cell text the way every backend reads it back.
func ParseCell(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return EmptyCell()
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return Cell{Kind: CellNumber, Number: d, Text: s}
	}
	return Cell{Kind: CellText, Text: raw}
}

// String returns the display text of the cell.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		if c.Text != "" {
			return c.Text
		}
		return c.Number.String()
	case CellText:
		return c.Text
	default:
		return ""
	}
}

func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }

type Row struct {
	Index int
	Cells []Cell
}

// Cell returns the cell at zero-based column col, Empty past the end of the row.
func (r Row) Cell(col int) Cell {
	if col < 0 || col >= len(r.Cells) {
		return EmptyCell()
	}
	return r.Cells[col]
}
