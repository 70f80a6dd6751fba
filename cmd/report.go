package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/folio"
	"github.com/etnz/folio/config"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	input    string
	output   string
	xlsx     string
	json     bool
	markdown bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "compute profit and loss and write the portfolio report" }
func (*reportCmd) Usage() string {
	return `pnl report [-i <transactions.json>] [-o <report.csv>] [-xlsx <report.xlsx>] [-json] [-md]

  Aggregates all transactions per security, fetches the current price of each
  security, and writes the profit and loss of each one plus an "Overall" row
  to a CSV file. Securities without any price are skipped.

  The overall profit/loss, cost and market value are printed on stdout.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Transactions file (JSON). Defaults to the configuration's 'transactions'.")
	f.StringVar(&c.output, "o", "", "Report file (CSV). Defaults to the configuration's 'output'.")
	f.StringVar(&c.xlsx, "xlsx", "", "Also write the report as a spreadsheet to this file.")
	f.BoolVar(&c.json, "json", false, "Print the report as JSON on stdout instead of the totals.")
	f.BoolVar(&c.markdown, "md", false, "Print the report as a formatted table on stdout instead of the totals.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.input != "" {
		cfg.Transactions = c.input
	}
	if c.output != "" {
		cfg.Output = c.output
	}

	slog.SetDefault(slog.Default().With("run", uuid.NewString()))

	if err := c.run(ctx, cfg, newResolver(cfg), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// run executes the whole report pipeline with the given resolver.
func (c *reportCmd) run(ctx context.Context, cfg config.Config, resolver folio.PriceResolver, stdout io.Writer) error {
	txs, err := folio.LoadTransactions(cfg.Transactions)
	if err != nil {
		return err
	}
	positions, err := folio.Aggregate(txs)
	if err != nil {
		return err
	}
	slog.Info("loaded transactions", "file", cfg.Transactions, "transactions", len(txs), "securities", positions.Len())

	report, err := folio.Evaluate(ctx, positions, resolver)
	if err != nil {
		return err
	}

	if err := writeCSVFile(cfg.Output, report); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Results have been written to %q.\n", cfg.Output)

	if c.xlsx != "" {
		if err := folio.WriteXLSX(c.xlsx, report.Results, report.Summary); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Results have been written to %q.\n", c.xlsx)
	}

	switch {
	case c.json:
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case c.markdown:
		md := renderer.RenderReport(renderer.NewReport(report, cfg.Currency))
		return printMarkdown(stdout, md)
	}

	fmt.Fprintf(stdout, "Overall Profit/Loss: %s\n", report.Summary.OverallProfitLoss.StringFixed(2))
	fmt.Fprintf(stdout, "Total Original Cost: %s\n", report.Summary.TotalCost.StringFixed(2))
	fmt.Fprintf(stdout, "Total Current Market Value: %s\n", report.Summary.TotalMarketValue.StringFixed(2))
	return nil
}

// writeCSVFile writes the csv report to filename, replacing it.
func writeCSVFile(filename string, report *folio.Report) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error opening report file %q for writing: %w", filename, err)
	}
	defer file.Close()

	if err := folio.WriteCSV(file, report.Results, report.Summary); err != nil {
		return fmt.Errorf("error writing report file %q: %w", filename, err)
	}
	return file.Close()
}

// printMarkdown renders md for the terminal.
func printMarkdown(w io.Writer, md string) error {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// raw markdown is still readable.
		slog.Debug("cannot render markdown", "error", err)
		out = md
	}
	_, err = io.WriteString(w, out)
	return err
}
