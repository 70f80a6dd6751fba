package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/folio"
	"github.com/etnz/folio/config"
	"github.com/google/subcommands"
)

type quoteCmd struct {
	exchange string
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "fetch the current price of a security" }
func (*quoteCmd) Usage() string {
	return `pnl quote [-x NSE|BSE] <SYMBOL>...

  Resolves the current price of each symbol, using the fallback source when
  the primary one has no data, and prints it with the source it came from.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.exchange, "x", string(folio.NSE), "Exchange of the symbols (NSE or BSE).")
}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: missing symbol")
		f.Usage()
		return subcommands.ExitUsageError
	}
	exchange, err := config.ExchangeOf(c.exchange)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	resolver := newResolver(cfg)

	for _, symbol := range f.Args() {
		q, err := resolver.Resolve(ctx, symbol, exchange)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		printQuote(os.Stdout, q)
	}
	return subcommands.ExitSuccess
}

func printQuote(w io.Writer, q folio.Quote) {
	name := q.Name
	if q.Degraded {
		name += " (name unavailable)"
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", q.Security, name, q.Price.String(), q.Source)
}
