package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/etnz/folio"
	"github.com/google/go-cmp/cmp"
)

func TestLoad_MissingFile(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "folio.toml"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if diff := cmp.Diff(Defaults(), got); diff != "" {
		t.Errorf("Load() mismatch with defaults (-want +got):\n%s", diff)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Defaults().Validate() unexpected error: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.toml")
	content := `
transactions = "trades.json"
currency = "USD"
log_level = "debug"

[quote]
primary_url = "http://localhost:8080"
timeout = "3s"
cache_ttl = "1m"
rate_per_second = 0.5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	want := Defaults()
	want.Transactions = "trades.json"
	want.Currency = "USD"
	want.LogLevel = "debug"
	want.Quote.PrimaryURL = "http://localhost:8080"
	want.Quote.Timeout = Duration{3 * time.Second}
	want.Quote.CacheTTL = Duration{time.Minute}
	want.Quote.RatePerSecond = 0.5
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.toml")
	if err := os.WriteFile(path, []byte("[quote]\ntimeout = \"soon\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() expected an error for an invalid file")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_OUTPUT", "out.csv")
	t.Setenv("FOLIO_QUOTE_FALLBACK_URL", "http://localhost:9090")
	t.Setenv("FOLIO_QUOTE_TIMEOUT", "750ms")
	t.Setenv("FOLIO_QUOTE_BURST", "3")
	t.Setenv("FOLIO_QUOTE_DISABLE_FALLBACK", "true")
	t.Setenv("FOLIO_QUOTE_RATE_PER_SECOND", "fast") // ignored

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	want := Defaults()
	want.Output = "out.csv"
	want.Quote.FallbackURL = "http://localhost:9090"
	want.Quote.Timeout = Duration{750 * time.Millisecond}
	want.Quote.Burst = 3
	want.Quote.DisableFallback = true
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"empty transactions", func(c *Config) { c.Transactions = "" }, "transactions"},
		{"bad currency", func(c *Config) { c.Currency = "RUPEE" }, "ISO 4217"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "loud"},
		{"no fallback url", func(c *Config) { c.Quote.FallbackURL = "" }, "fallback_url"},
		{"negative rate", func(c *Config) { c.Quote.RatePerSecond = -1 }, "rate_per_second"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := Defaults()
			tc.modify(&c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tc.wantErr)
			}
		})
	}

	c := Defaults()
	c.Quote.FallbackURL = ""
	c.Quote.DisableFallback = true
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() unexpected error with the fallback disabled: %v", err)
	}
}

func TestExchangeOf(t *testing.T) {
	for in, want := range map[string]folio.Exchange{"NSE": folio.NSE, "bse": folio.BSE, " nse ": folio.NSE} {
		got, err := ExchangeOf(in)
		if err != nil || got != want {
			t.Errorf("ExchangeOf(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := ExchangeOf("NYSE"); err == nil {
		t.Error("ExchangeOf(NYSE) expected an error")
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"debug", "INFO", "warn", "error"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q) unexpected error: %v", s, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("ParseLevel(verbose) expected an error")
	}
}
