package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio"
	"github.com/google/subcommands"
)

type validateCmd struct {
	input string
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check the transactions file" }
func (*validateCmd) Usage() string {
	return `pnl validate [-i <transactions.json>]

  Loads the transactions file and reports the first invalid transaction.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Transactions file (JSON). Defaults to the configuration's 'transactions'.")
}

func (c *validateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.input != "" {
		cfg.Transactions = c.input
	}

	txs, err := folio.LoadTransactions(cfg.Transactions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	positions, err := folio.Aggregate(txs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s: %d transactions, %d securities\n", cfg.Transactions, len(txs), positions.Len())
	return subcommands.ExitSuccess
}
