// Package config holds the settings of the pnl tool.
//
// Settings come from built-in defaults, overridden by an optional TOML file,
// overridden by FOLIO_* environment variables (a .env file is loaded first
// when present). Command line flags take precedence over all of them.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/folio"
)

// Config is the root configuration structure.
type Config struct {
	Transactions string      `toml:"transactions"`
	Output       string      `toml:"output"`
	Currency     string      `toml:"currency"`
	LogLevel     string      `toml:"log_level"`
	Quote        QuoteConfig `toml:"quote"`
}

// QuoteConfig configures price resolution.
type QuoteConfig struct {
	PrimaryURL       string   `toml:"primary_url"`
	FallbackURL      string   `toml:"fallback_url"`
	FallbackSelector string   `toml:"fallback_selector"`
	UserAgent        string   `toml:"user_agent"`
	Timeout          Duration `toml:"timeout"`
	RatePerSecond    float64  `toml:"rate_per_second"`
	Burst            int      `toml:"burst"`
	CacheTTL         Duration `toml:"cache_ttl"`
	DisableFallback  bool     `toml:"disable_fallback"`
}

// Duration is a time.Duration read from a string like "15s".
type Duration struct{ time.Duration }

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements the encoding.TextMarshaler interface.
func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Transactions: "transactions.json",
		Output:       "my_portfolio.csv",
		Currency:     "INR",
		LogLevel:     "info",
		Quote: QuoteConfig{
			PrimaryURL:       "https://query1.finance.yahoo.com",
			FallbackURL:      "https://www.google.com",
			FallbackSelector: "div.YMlKec.fxKbKc",
			Timeout:          Duration{20 * time.Second},
			RatePerSecond:    4,
			Burst:            1,
		},
	}
}

// Validate checks the configuration for values that cannot work.
func (c Config) Validate() error {
	var errs []string
	if c.Transactions == "" {
		errs = append(errs, "transactions file is empty")
	}
	if c.Output == "" {
		errs = append(errs, "output file is empty")
	}
	if len(c.Currency) != 3 {
		errs = append(errs, fmt.Sprintf("currency %q is not an ISO 4217 code", c.Currency))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Quote.PrimaryURL == "" {
		errs = append(errs, "quote.primary_url is empty")
	}
	if !c.Quote.DisableFallback && c.Quote.FallbackURL == "" {
		errs = append(errs, "quote.fallback_url is empty")
	}
	if c.Quote.Timeout.Duration < 0 || c.Quote.CacheTTL.Duration < 0 {
		errs = append(errs, "quote durations must not be negative")
	}
	if c.Quote.RatePerSecond < 0 {
		errs = append(errs, "quote.rate_per_second must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ExchangeOf parses an exchange name as found in flags and files.
func ExchangeOf(s string) (folio.Exchange, error) {
	e := folio.Exchange(strings.ToUpper(strings.TrimSpace(s)))
	if !e.Valid() {
		return "", fmt.Errorf("unknown exchange %q, want %s or %s", s, folio.NSE, folio.BSE)
	}
	return e, nil
}
