package folio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
)

// PositionResult is the valuation of a Position at its current price.
type PositionResult struct {
	Security           string
	Name               string
	AveragePrice       decimal.Decimal
	TotalUnits         int64
	OriginalCost       decimal.Decimal
	CurrentMarketValue decimal.Decimal
	ProfitOrLoss       decimal.Decimal
	CurrentPrice       decimal.Decimal
}

// Calculate values pos at the price in q.
//
// The average price is 0 when no units are held. Negative units (more sold
// than bought) are valued as they are.
func Calculate(pos Position, q Quote) PositionResult {
	units := decimal.NewFromInt(pos.TotalUnits)

	average := decimal.Zero
	if pos.TotalUnits > 0 {
		average = pos.TotalAmount.Div(units)
	}
	cost := pos.TotalAmount.Add(pos.TotalExpenses)
	value := units.Mul(q.Price)

	name := q.Name
	if name == "" {
		name = pos.Security
	}

	return PositionResult{
		Security:           pos.Security,
		Name:               name,
		AveragePrice:       average,
		TotalUnits:         pos.TotalUnits,
		OriginalCost:       cost,
		CurrentMarketValue: value,
		ProfitOrLoss:       value.Sub(cost),
		CurrentPrice:       q.Price,
	}
}

// MarshalJSON implements the json.Marshaler interface for PositionResult.
func (r PositionResult) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("security", r.Security)
	w.Optional("name", r.Name)
	w.Number("average_price", r.AveragePrice)
	w.Append("total_units", r.TotalUnits)
	w.Number("original_cost", r.OriginalCost)
	w.Number("current_market_value", r.CurrentMarketValue)
	w.Number("profit_or_loss", r.ProfitOrLoss)
	w.Number("current_price", r.CurrentPrice)
	return w.MarshalJSON()
}

// Summary holds the portfolio wide totals.
type Summary struct {
	TotalCost         decimal.Decimal
	TotalMarketValue  decimal.Decimal
	OverallProfitLoss decimal.Decimal
}

// Summarize adds up results.
func Summarize(results []PositionResult) Summary {
	var s Summary
	for _, r := range results {
		s.TotalCost = s.TotalCost.Add(r.OriginalCost)
		s.TotalMarketValue = s.TotalMarketValue.Add(r.CurrentMarketValue)
	}
	s.OverallProfitLoss = s.TotalMarketValue.Sub(s.TotalCost)
	return s
}

// MarshalJSON implements the json.Marshaler interface for Summary.
func (s Summary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Number("total_cost", s.TotalCost)
	w.Number("total_market_value", s.TotalMarketValue)
	w.Number("overall_profit_loss", s.OverallProfitLoss)
	return w.MarshalJSON()
}

// Report is the valuation of a whole portfolio.
type Report struct {
	Results []PositionResult
	Skipped []string // securities without a price, excluded from Results and Summary
	Summary Summary
}

// MarshalJSON implements the json.Marshaler interface for Report.
func (r Report) MarshalJSON() ([]byte, error) {
	results := r.Results
	if results == nil {
		results = []PositionResult{}
	}
	var w jsonObjectWriter
	w.Append("results", results)
	w.Optional("skipped", r.Skipped)
	w.Append("summary", r.Summary)
	return w.MarshalJSON()
}

// Evaluate resolves a quote for every position, in order, and values them.
//
// A security whose price is unavailable is logged and skipped. Any other
// resolution error stops the evaluation.
func Evaluate(ctx context.Context, positions *Positions, resolver PriceResolver) (*Report, error) {
	report := new(Report)
	for pos := range positions.All() {
		q, err := resolver.Resolve(ctx, pos.Security, pos.Exchange)
		if errors.Is(err, ErrPriceUnavailable) {
			slog.WarnContext(ctx, "skipping security", "security", pos.Security, "exchange", pos.Exchange, "error", err)
			report.Skipped = append(report.Skipped, pos.Security)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("cannot resolve price of %s: %w", pos.Security, err)
		}
		if q.Degraded {
			slog.WarnContext(ctx, "name unavailable, using symbol", "security", pos.Security, "error", q.NameErr)
		}
		if pos.TotalUnits < 0 {
			slog.WarnContext(ctx, "oversold position", "security", pos.Security, "units", pos.TotalUnits)
		}
		slog.DebugContext(ctx, "resolved", "security", pos.Security, "price", q.Price, "source", q.Source)
		report.Results = append(report.Results, Calculate(pos, q))
	}
	report.Summary = Summarize(report.Results)
	return report, nil
}
