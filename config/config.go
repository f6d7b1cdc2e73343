// Package config loads the settings of the wealth tools.
//
// Settings are read from a YAML file, then overridden by the environment.
// A .env file in the working directory, if any, is loaded into the
// environment first.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/wealth"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the file.
const (
	EnvWorkbook    = "WEALTH_WORKBOOK"
	EnvCurrency    = "WEALTH_CURRENCY"
	EnvLogLevel    = "WEALTH_LOG_LEVEL"
	EnvFiscalStart = "WEALTH_FISCAL_START"
)

// Config holds all application configuration.
type Config struct {
	Workbook string `yaml:"workbook"` // path to the workbook JSON export
	Currency string `yaml:"currency"` // primary currency
	LogLevel string `yaml:"log_level"`

	// FiscalStart is the first month of the fiscal year (1-12).
	FiscalStart int `yaml:"fiscal_start"`

	// Rates is the value of one unit of each currency in the primary currency.
	Rates map[string]float64 `yaml:"rates"`

	Hierarchy struct {
		FloorShare     float64 `yaml:"floor_share"`     // in percent
		ShockThreshold float64 `yaml:"shock_threshold"` // in percent
	} `yaml:"hierarchy"`

	Merchants struct {
		Overrides  map[string]string `yaml:"overrides"`
		Identities map[string]string `yaml:"identities"`
	} `yaml:"merchants"`

	// Tables are the jsonpath selectors of each table in the workbook.
	Tables map[string]string `yaml:"tables"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	if v := os.Getenv(EnvWorkbook); v != "" {
		cfg.Workbook = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		cfg.Currency = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvFiscalStart); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvFiscalStart, err)
		}
		cfg.FiscalStart = month
	}

	// Defaults
	if cfg.Workbook == "" {
		cfg.Workbook = "workbook.json"
	}
	if cfg.Currency == "" {
		cfg.Currency = "EUR"
	}
	cfg.Currency = strings.ToUpper(cfg.Currency)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.FiscalStart == 0 {
		cfg.FiscalStart = int(time.January)
	}
	if cfg.Hierarchy.FloorShare == 0 {
		cfg.Hierarchy.FloorShare = wealth.DefaultFloorShare
	}
	if cfg.Hierarchy.ShockThreshold == 0 {
		cfg.Hierarchy.ShockThreshold = float64(wealth.DefaultShockThreshold)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("configuration loaded", "path", path, "workbook", cfg.Workbook, "currency", cfg.Currency)
	return cfg, nil
}

// Validate checks the consistency of the configuration.
func (c *Config) Validate() error {
	var errs []error
	if err := wealth.ValidateCurrency(c.Currency); err != nil {
		errs = append(errs, fmt.Errorf("currency: %w", err))
	}
	for cur, rate := range c.Rates {
		if err := wealth.ValidateCurrency(cur); err != nil {
			errs = append(errs, fmt.Errorf("rates: %w", err))
		}
		if rate <= 0 {
			errs = append(errs, fmt.Errorf("rates: %s rate must be positive, got %v", cur, rate))
		}
	}
	if c.FiscalStart < 1 || c.FiscalStart > 12 {
		errs = append(errs, fmt.Errorf("fiscal_start must be a month between 1 and 12, got %d", c.FiscalStart))
	}
	if c.Hierarchy.FloorShare < 0 || c.Hierarchy.FloorShare >= 100 {
		errs = append(errs, fmt.Errorf("hierarchy.floor_share must be in [0, 100), got %v", c.Hierarchy.FloorShare))
	}
	if c.Hierarchy.ShockThreshold < 0 {
		errs = append(errs, fmt.Errorf("hierarchy.shock_threshold must not be negative, got %v", c.Hierarchy.ShockThreshold))
	}
	return errors.Join(errs...)
}

// FiscalYearStart returns the first month of the fiscal year.
func (c *Config) FiscalYearStart() time.Month { return time.Month(c.FiscalStart) }

// ExchangeRates returns the rate table of the configuration.
func (c *Config) ExchangeRates() wealth.Rates {
	rates := make(wealth.Rates, len(c.Rates))
	for cur, rate := range c.Rates {
		rates[strings.ToUpper(cur)] = decimal.NewFromFloat(rate)
	}
	return rates
}

// MerchantResolver returns the merchant resolver of the configuration.
func (c *Config) MerchantResolver() wealth.MerchantResolver {
	identities := make(map[string]string, len(c.Merchants.Identities))
	for raw, name := range c.Merchants.Identities {
		identities[strings.ToUpper(strings.TrimSpace(raw))] = name
	}
	return wealth.MerchantResolver{Overrides: c.Merchants.Overrides, Identities: identities}
}

// HierarchyOptions returns the hierarchy options of the configuration for a window.
func (c *Config) HierarchyOptions(window wealth.Range) wealth.HierarchyOptions {
	return wealth.HierarchyOptions{
		Window:         window,
		Merchants:      c.MerchantResolver(),
		FloorShare:     c.Hierarchy.FloorShare,
		ShockThreshold: wealth.Percent(c.Hierarchy.ShockThreshold),
	}
}
