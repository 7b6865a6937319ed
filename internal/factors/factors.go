// Package factors loads the meat conversion matrix: one row per meat type,
// one column per product, each cell the amount of that meat used per unit of
// the product.
package factors

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"butchers-ledger/internal/storage"
)

// Table maps meat type to product name to factor. A missing pair means the
// product does not use that meat.
type Table map[string]map[string]decimal.Decimal

// Load reads the whole factor sheet. Empty and non-numeric cells are skipped,
// not stored as zero.
func Load(ctx context.Context, src storage.Table) (Table, error) {
	const op = "factors.Load"

	header, rows, err := src.ScanRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	table := make(Table, len(rows))
	for _, r := range rows {
		meat := strings.TrimSpace(r.Cell(0).String())
		if meat == "" {
			continue
		}

		for col := 1; col < len(header) && col < len(r.Cells); col++ {
			product := header[col]
			c := r.Cells[col]
			if product == "" || c.Kind != storage.CellNumber {
				continue
			}
			table.set(meat, product, c.Number)
		}
	}

	return table, nil
}

func (t Table) set(meat, product string, factor decimal.Decimal) {
	row, ok := t[meat]
	if !ok {
		row = make(map[string]decimal.Decimal)
		t[meat] = row
	}
	row[product] = factor
}

// Factor returns the factor for the pair, false when the pair is absent.
func (t Table) Factor(meat, product string) (decimal.Decimal, bool) {
	f, ok := t[meat][product]
	return f, ok
}

// Meats returns the meat types in name order.
func (t Table) Meats() []string {
	meats := make([]string, 0, len(t))
	for m := range t {
		meats = append(meats, m)
	}
	sort.Strings(meats)
	return meats
}

// Source loads the factor table from a fixed ledger on each call.
type Source struct {
	table storage.Table
}

func NewSource(table storage.Table) *Source {
	return &Source{table: table}
}

func (s *Source) Load(ctx context.Context) (Table, error) {
	return Load(ctx, s.table)
}
