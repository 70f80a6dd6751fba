// Package cmd implements the CLI application to report on a portfolio.
package cmd

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/etnz/folio/config"
	"github.com/etnz/folio/quote"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")
	c.Register(&positionsCmd{}, "reports")
	c.Register(&quoteCmd{}, "prices")
	c.Register(&validateCmd{}, "transactions")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "folio.toml", "Path to the configuration file (TOML). A missing file is ignored.")
var logLevel = flag.String("log-level", "", "Log level (debug, info, warn, error). Overrides the configuration.")

// loadConfig loads and validates the configuration, and sets up logging
// accordingly.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return cfg, fmt.Errorf("cannot load configuration %q: %w", *configFile, err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	initLogger(cfg.LogLevel)
	return cfg, nil
}

// initLogger installs the default slog logger on stderr.
func initLogger(levelStr string) {
	level, err := config.ParseLevel(levelStr)
	if err != nil {
		level = slog.LevelInfo
		slog.Warn("invalid log level, defaulting to INFO", "configuredLevel", levelStr)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// newResolver returns a price resolver for a single run.
func newResolver(cfg config.Config) *quote.Resolver {
	client := quote.NewClient(quote.ClientOptions{
		Timeout:       cfg.Quote.Timeout.Duration,
		UserAgent:     cfg.Quote.UserAgent,
		RatePerSecond: cfg.Quote.RatePerSecond,
		Burst:         cfg.Quote.Burst,
	})
	yahoo := quote.NewYahoo(cfg.Quote.PrimaryURL, client)

	var fallback quote.Source
	if !cfg.Quote.DisableFallback {
		fallback = quote.NewGoogleFinance(cfg.Quote.FallbackURL, cfg.Quote.FallbackSelector, client)
	}
	return quote.NewResolver(yahoo, fallback, yahoo, cfg.Quote.CacheTTL.Duration)
}
