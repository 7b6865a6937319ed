package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "env: local\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, BackendXLSX, cfg.Ledger.Backend)
	assert.Equal(t, "Zamówienia", cfg.Ledger.OrdersSheet)
	assert.Equal(t, "Przeliczniki", cfg.Ledger.FactorsSheet)
	assert.Equal(t, "LP.", cfg.Ledger.Layout.IDHeader)
	assert.Equal(t, []string{"Szynka", "Kiełbasa", "Boczek"}, cfg.Ledger.Layout.Products)
	assert.Equal(t, "localhost:4001", cfg.Address)
	assert.Empty(t, cfg.Report.CronSchedule)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
env: dev
ledger:
  backend: sheets
  orders_sheet: Orders
  layout:
    default_products: ["Salceson"]
sheets:
  spreadsheet_id: abc123
report:
  cron_schedule: "0 5 * * *"
http_server:
  address: ":8080"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendSheets, cfg.Ledger.Backend)
	assert.Equal(t, "Orders", cfg.Ledger.OrdersSheet)
	assert.Equal(t, []string{"Salceson"}, cfg.Ledger.Layout.Products)
	assert.Equal(t, "abc123", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, "0 5 * * *", cfg.Report.CronSchedule)
	assert.Equal(t, ":8080", cfg.Address)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown backend", body: "ledger:\n  backend: mysql\n"},
		{name: "sheets without id", body: "ledger:\n  backend: sheets\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
