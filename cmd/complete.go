package cmd

import (
	"github.com/etnz/folio"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete handles a shell completion request for the program name and
// exits when there is one. It returns immediately otherwise.
//
// Install with: COMP_INSTALL=1 pnl
func Complete(name string) {
	transactions := predict.Files("*.json")
	levels := predict.Set{"debug", "info", "warn", "error"}

	cmd := &complete.Command{
		Flags: map[string]complete.Predictor{
			"config":    predict.Files("*.toml"),
			"log-level": levels,
		},
		Sub: map[string]*complete.Command{
			"report": {
				Flags: map[string]complete.Predictor{
					"i":    transactions,
					"o":    predict.Files("*.csv"),
					"xlsx": predict.Files("*.xlsx"),
					"json": predict.Nothing,
					"md":   predict.Nothing,
				},
			},
			"positions": {Flags: map[string]complete.Predictor{"i": transactions}},
			"validate":  {Flags: map[string]complete.Predictor{"i": transactions}},
			"quote": {
				Flags: map[string]complete.Predictor{
					"x": predict.Set{string(folio.NSE), string(folio.BSE)},
				},
			},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
	}
	cmd.Complete(name)
}
