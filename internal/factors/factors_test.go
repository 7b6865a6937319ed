package factors

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"butchers-ledger/internal/storage"
	"butchers-ledger/internal/storage/excel"
)

const sheet = "Przeliczniki"

func writeFactors(t *testing.T, rows [][]interface{}) *excel.Table {
	t.Helper()

	path := filepath.Join(t.TempDir(), "factors.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := r
		require.NoError(t, f.SetSheetRow(sheet, cell, &values))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	return excel.New(path, sheet, storage.Layout{})
}

func TestLoad(t *testing.T) {
	src := writeFactors(t, [][]interface{}{
		{"Mięso", "Szynka", "Kiełbasa", "Boczek"},
		{"Wieprzowina", 1.25, "0.8", "n/a"},
		{"Wołowina", "", 0.2},
		{"", 5, 5, 5},
	})

	table, err := Load(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, []string{"Wieprzowina", "Wołowina"}, table.Meats())

	f, ok := table.Factor("Wieprzowina", "Szynka")
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("1.25").Equal(f))

	f, ok = table.Factor("Wieprzowina", "Kiełbasa")
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("0.8").Equal(f))

	// нечисловые и пустые ячейки не попадают в таблицу
	_, ok = table.Factor("Wieprzowina", "Boczek")
	assert.False(t, ok)
	_, ok = table.Factor("Wołowina", "Szynka")
	assert.False(t, ok)
	assert.Len(t, table["Wołowina"], 1)
}

func TestLoad_Empty(t *testing.T) {
	src := writeFactors(t, [][]interface{}{{"Mięso", "Szynka"}})

	_, err := Load(context.Background(), src)
	assert.ErrorIs(t, err, storage.ErrEmptyTable)
}

func TestFactor_UnknownMeat(t *testing.T) {
	_, ok := Table{}.Factor("Baranina", "Szynka")
	assert.False(t, ok)
}
