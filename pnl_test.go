package folio

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestCalculate(t *testing.T) {
	testCases := []struct {
		name  string
		pos   Position
		price string
		want  PositionResult
	}{
		{
			name:  "partial sell",
			pos:   Position{Security: "X", TotalUnits: 6, TotalAmount: D("580"), TotalExpenses: D("15"), Exchange: NSE},
			price: "100",
			want: PositionResult{
				Security: "X", Name: "X",
				AveragePrice:       D("96.6666666666666667"),
				TotalUnits:         6,
				OriginalCost:       D("595"),
				CurrentMarketValue: D("600"),
				ProfitOrLoss:       D("5"),
				CurrentPrice:       D("100"),
			},
		},
		{
			name:  "full sell-off",
			pos:   Position{Security: "X", TotalUnits: 0, TotalAmount: D("-100"), TotalExpenses: D("22"), Exchange: NSE},
			price: "120",
			want: PositionResult{
				Security: "X", Name: "X",
				AveragePrice:       D("0"),
				TotalUnits:         0,
				OriginalCost:       D("-78"),
				CurrentMarketValue: D("0"),
				ProfitOrLoss:       D("78"),
				CurrentPrice:       D("120"),
			},
		},
		{
			name:  "oversold",
			pos:   Position{Security: "X", TotalUnits: -2, TotalAmount: D("-200"), TotalExpenses: D("4"), Exchange: NSE},
			price: "90",
			want: PositionResult{
				Security: "X", Name: "X",
				AveragePrice:       D("0"),
				TotalUnits:         -2,
				OriginalCost:       D("-196"),
				CurrentMarketValue: D("-180"),
				ProfitOrLoss:       D("16"),
				CurrentPrice:       D("90"),
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Calculate(tc.pos, Quote{Security: tc.pos.Security, Price: D(tc.price)})
			if diff := cmp.Diff(tc.want, got, decimalEqual); diff != "" {
				t.Errorf("Calculate() mismatch (-want +got):\n%s", diff)
			}
			if !got.OriginalCost.Equal(tc.pos.TotalAmount.Add(tc.pos.TotalExpenses)) {
				t.Errorf("OriginalCost = %s, want TotalAmount + TotalExpenses", got.OriginalCost)
			}
		})
	}
}

func TestCalculate_Scenario(t *testing.T) {
	ps, err := Aggregate([]Transaction{buy("X", 10, "1000", "10"), sell("X", 4, "420", "5")})
	if err != nil {
		t.Fatalf("Aggregate() unexpected error: %v", err)
	}
	p, _ := ps.Get("X")
	got := Calculate(p, Quote{Security: "X", Name: "Example Ltd", Price: D("100")})
	if got.Name != "Example Ltd" {
		t.Errorf("Name = %q, want %q", got.Name, "Example Ltd")
	}
	if !got.CurrentMarketValue.Equal(D("600")) || !got.OriginalCost.Equal(D("595")) || !got.ProfitOrLoss.Equal(D("5")) {
		t.Errorf("Calculate() = value %s cost %s pnl %s, want 600 595 5", got.CurrentMarketValue, got.OriginalCost, got.ProfitOrLoss)
	}
}

func TestCalculate_ZeroUnitsLoss(t *testing.T) {
	p := Position{Security: "X", TotalUnits: 0, TotalAmount: D("50"), TotalExpenses: D("5")}
	got := Calculate(p, Quote{Price: D("10")})
	if !got.AveragePrice.IsZero() || !got.CurrentMarketValue.IsZero() {
		t.Errorf("Calculate() average %s value %s, want 0 0", got.AveragePrice, got.CurrentMarketValue)
	}
	if !got.ProfitOrLoss.Equal(got.OriginalCost.Neg()) {
		t.Errorf("ProfitOrLoss = %s, want -OriginalCost = %s", got.ProfitOrLoss, got.OriginalCost.Neg())
	}
}

func TestSummarize(t *testing.T) {
	results := []PositionResult{
		{OriginalCost: D("595"), CurrentMarketValue: D("600"), ProfitOrLoss: D("5")},
		{OriginalCost: D("252"), CurrentMarketValue: D("240.50"), ProfitOrLoss: D("-11.50")},
	}
	got := Summarize(results)
	want := Summary{TotalCost: D("847"), TotalMarketValue: D("840.50"), OverallProfitLoss: D("-6.50")}
	if diff := cmp.Diff(want, got, decimalEqual); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}

	var sum decimal.Decimal
	for _, r := range results {
		sum = sum.Add(r.ProfitOrLoss)
	}
	if !got.OverallProfitLoss.Equal(sum) {
		t.Errorf("OverallProfitLoss = %s, want the sum of row profits %s", got.OverallProfitLoss, sum)
	}
}

// mapResolver resolves prices from a map; missing securities are unavailable.
type mapResolver struct {
	prices map[string]string
	errs   map[string]error
}

func (m mapResolver) Resolve(_ context.Context, security string, _ Exchange) (Quote, error) {
	if err, ok := m.errs[security]; ok {
		return Quote{}, err
	}
	p, ok := m.prices[security]
	if !ok {
		return Quote{}, fmt.Errorf("%s: %w", security, ErrPriceUnavailable)
	}
	return Quote{Security: security, Name: security + " Ltd", Price: D(p), Source: SourcePrimary}, nil
}

func TestEvaluate(t *testing.T) {
	ps, err := Aggregate([]Transaction{
		buy("X", 10, "1000", "10"),
		buy("Y", 3, "300", "3"),
		sell("X", 4, "420", "5"),
		buy("Z", 2, "500", "1"),
	})
	if err != nil {
		t.Fatalf("Aggregate() unexpected error: %v", err)
	}

	report, err := Evaluate(context.Background(), ps, mapResolver{prices: map[string]string{"X": "100", "Z": "260"}})
	if err != nil {
		t.Fatalf("Evaluate() unexpected error: %v", err)
	}

	if len(report.Results) != 2 || report.Results[0].Security != "X" || report.Results[1].Security != "Z" {
		t.Fatalf("Evaluate() results = %v, want X then Z", report.Results)
	}
	if diff := cmp.Diff([]string{"Y"}, report.Skipped); diff != "" {
		t.Errorf("Evaluate() skipped mismatch (-want +got):\n%s", diff)
	}
	// Y is absent from the totals.
	want := Summary{TotalCost: D("1096"), TotalMarketValue: D("1120"), OverallProfitLoss: D("24")}
	if diff := cmp.Diff(want, report.Summary, decimalEqual); diff != "" {
		t.Errorf("Evaluate() summary mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluate_FatalError(t *testing.T) {
	ps, _ := Aggregate([]Transaction{buy("X", 1, "10", "0")})
	boom := errors.New("malformed price")
	_, err := Evaluate(context.Background(), ps, mapResolver{errs: map[string]error{"X": boom}})
	if !errors.Is(err, boom) {
		t.Errorf("Evaluate() error = %v, want %v", err, boom)
	}
}
