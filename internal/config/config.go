package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"butchers-ledger/internal/storage"
)

const (
	BackendXLSX   = "xlsx"
	BackendSheets = "sheets"

	defaultConfigPath = "./config/local.yaml"
)

type Config struct {
	Env         string `yaml:"env" env:"ENV" env-default:"prod"`
	Ledger      Ledger `yaml:"ledger"`
	CatalogPath string `yaml:"catalog_path" env:"CATALOG_PATH" env-default:"./data/products.json"`
	Sheets      Sheets `yaml:"sheets"`
	Report      Report `yaml:"report"`
	HTTPServer  `yaml:"http_server"`
}

type Ledger struct {
	Backend      string         `yaml:"backend" env:"LEDGER_BACKEND" env-default:"xlsx"`
	OrdersPath   string         `yaml:"orders_path" env:"LEDGER_ORDERS_PATH" env-default:"./data/zamowienia.xlsx"`
	OrdersSheet  string         `yaml:"orders_sheet" env:"LEDGER_ORDERS_SHEET" env-default:"Zamówienia"`
	FactorsPath  string         `yaml:"factors_path" env:"LEDGER_FACTORS_PATH" env-default:"./data/przeliczniki.xlsx"`
	FactorsSheet string         `yaml:"factors_sheet" env:"LEDGER_FACTORS_SHEET" env-default:"Przeliczniki"`
	Layout       storage.Layout `yaml:"layout"`
}

// Sheets - настройки Google Sheets, используются при backend: sheets.
type Sheets struct {
	CredentialsPath string `yaml:"credentials_path" env:"GOOGLE_CREDENTIALS_PATH"`
	SpreadsheetID   string `yaml:"spreadsheet_id" env:"GOOGLE_SPREADSHEET_ID"`
}

type Report struct {
	Dir          string `yaml:"dir" env:"REPORT_DIR" env-default:"./reports"`
	CronSchedule string `yaml:"cron_schedule" env:"REPORT_CRON"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

func MustConfig() *Config {
	// .env необязателен
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	const op = "config.Load"

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Ledger.Backend {
	case BackendXLSX:
		if c.Ledger.OrdersPath == "" {
			return errors.New("ledger.orders_path is required for xlsx backend")
		}
	case BackendSheets:
		if c.Sheets.SpreadsheetID == "" {
			return errors.New("sheets.spreadsheet_id is required for sheets backend")
		}
	default:
		return fmt.Errorf("unknown ledger backend %q", c.Ledger.Backend)
	}
	return nil
}
