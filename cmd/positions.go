package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/etnz/folio"
	"github.com/google/subcommands"
)

type positionsCmd struct {
	input string
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "print the aggregated position of each security" }
func (*positionsCmd) Usage() string {
	return `pnl positions [-i <transactions.json>]

  Aggregates all transactions per security and prints the resulting positions.
  No price is fetched.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Transactions file (JSON). Defaults to the configuration's 'transactions'.")
}

func (c *positionsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.input != "" {
		cfg.Transactions = c.input
	}

	if err := printPositionsFile(os.Stdout, cfg.Transactions); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printPositionsFile aggregates the transactions in filename and prints the
// positions.
func printPositionsFile(w io.Writer, filename string) error {
	txs, err := folio.LoadTransactions(filename)
	if err != nil {
		return err
	}
	positions, err := folio.Aggregate(txs)
	if err != nil {
		return fmt.Errorf("cannot aggregate transactions: %w", err)
	}
	return printPositions(w, positions)
}

// printPositions writes one aligned line per position.
func printPositions(w io.Writer, positions *folio.Positions) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Security\tExchange\tUnits\tAmount\tExpenses\t")
	for pos := range positions.All() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t\n", pos.Security, pos.Exchange, pos.TotalUnits, pos.TotalAmount.StringFixed(2), pos.TotalExpenses.StringFixed(2))
	}
	return tw.Flush()
}
