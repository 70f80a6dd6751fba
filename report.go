package folio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ReportHeader is the fixed column order of the tabular report.
var ReportHeader = []string{
	"Security Name",
	"Average Price",
	"Total Units",
	"Original Cost",
	"Current Market Value",
	"Profit/Loss",
	"Current Price",
	"Security Symbol",
}

// OverallLabel names the trailing summary row.
const OverallLabel = "Overall"

// amount renders a currency field with exactly two decimals.
func amount(d decimal.Decimal) string { return d.StringFixed(2) }

// rows returns the report table without its header: one row per result and a
// last row holding the summary.
func rows(results []PositionResult, summary Summary) [][]string {
	out := make([][]string, 0, len(results)+1)
	for _, r := range results {
		out = append(out, []string{
			r.Name,
			amount(r.AveragePrice),
			strconv.FormatInt(r.TotalUnits, 10),
			amount(r.OriginalCost),
			amount(r.CurrentMarketValue),
			amount(r.ProfitOrLoss),
			amount(r.CurrentPrice),
			r.Security,
		})
	}
	out = append(out, []string{
		OverallLabel,
		"",
		"",
		amount(summary.TotalCost),
		amount(summary.TotalMarketValue),
		amount(summary.OverallProfitLoss),
		"",
		"",
	})
	return out
}

// WriteCSV writes results and summary as comma separated values.
func WriteCSV(w io.Writer, results []PositionResult, summary Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ReportHeader); err != nil {
		return err
	}
	if err := cw.WriteAll(rows(results, summary)); err != nil {
		return fmt.Errorf("cannot write csv report: %w", err)
	}
	return nil
}

// ReportSheet is the name of the sheet written by WriteXLSX.
const ReportSheet = "Portfolio"

// WriteXLSX writes the same table as WriteCSV into a new spreadsheet file at
// path. Amounts are stored as numbers rounded to two decimals.
func WriteXLSX(path string, results []PositionResult, summary Summary) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", ReportSheet); err != nil {
		return err
	}

	setRow := func(row int, values []any) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		return f.SetSheetRow(ReportSheet, cell, &values)
	}

	header := make([]any, len(ReportHeader))
	for i, h := range ReportHeader {
		header[i] = h
	}
	if err := setRow(1, header); err != nil {
		return err
	}

	num := func(d decimal.Decimal) float64 { return d.Round(2).InexactFloat64() }
	for i, r := range results {
		values := []any{
			r.Name,
			num(r.AveragePrice),
			r.TotalUnits,
			num(r.OriginalCost),
			num(r.CurrentMarketValue),
			num(r.ProfitOrLoss),
			num(r.CurrentPrice),
			r.Security,
		}
		if err := setRow(i+2, values); err != nil {
			return err
		}
	}
	overall := []any{
		OverallLabel, "", "",
		num(summary.TotalCost),
		num(summary.TotalMarketValue),
		num(summary.OverallProfitLoss),
		"", "",
	}
	if err := setRow(len(results)+2, overall); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("cannot write xlsx report %q: %w", path, err)
	}
	return nil
}
