package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads the TOML configuration file at path on top of the defaults,
// then applies FOLIO_* environment variable overrides. A missing file is not
// an error. The returned Config has not been validated.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// applyEnvOverrides overwrites fields whose FOLIO_* variable is set.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Transactions, "FOLIO_TRANSACTIONS")
	setStr(&cfg.Output, "FOLIO_OUTPUT")
	setStr(&cfg.Currency, "FOLIO_CURRENCY")
	setStr(&cfg.LogLevel, "FOLIO_LOG_LEVEL")

	setStr(&cfg.Quote.PrimaryURL, "FOLIO_QUOTE_PRIMARY_URL")
	setStr(&cfg.Quote.FallbackURL, "FOLIO_QUOTE_FALLBACK_URL")
	setStr(&cfg.Quote.FallbackSelector, "FOLIO_QUOTE_FALLBACK_SELECTOR")
	setStr(&cfg.Quote.UserAgent, "FOLIO_QUOTE_USER_AGENT")
	setDuration(&cfg.Quote.Timeout, "FOLIO_QUOTE_TIMEOUT")
	setFloat(&cfg.Quote.RatePerSecond, "FOLIO_QUOTE_RATE_PER_SECOND")
	setInt(&cfg.Quote.Burst, "FOLIO_QUOTE_BURST")
	setDuration(&cfg.Quote.CacheTTL, "FOLIO_QUOTE_CACHE_TTL")
	setBool(&cfg.Quote.DisableFallback, "FOLIO_QUOTE_DISABLE_FALLBACK")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		} else {
			slog.Warn("ignoring invalid environment variable", "key", key, "value", v)
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		} else {
			slog.Warn("ignoring invalid environment variable", "key", key, "value", v)
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		} else {
			slog.Warn("ignoring invalid environment variable", "key", key, "value", v)
		}
	}
}

func setDuration(dst *Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		} else {
			slog.Warn("ignoring invalid environment variable", "key", key, "value", v)
		}
	}
}

// ParseLevel parses a log level name (debug, info, warn, error).
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.TrimSpace(s)))
	return level, err
}
