package folio

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("field order is kept", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("b", 1)
		w.Append("a", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"b":1,"a":"hello"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("optional fields", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", 0) // a zero value is still added by Append.
		w.Optional("b", "")
		w.Optional("c", []string(nil))
		w.Optional("d", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"a":0,"d":"hello"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("decimal numbers", func(t *testing.T) {
		var w jsonObjectWriter
		w.Number("price", decimal.RequireFromString("96.6666666666666667"))
		w.Number("zero", decimal.Zero)
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"price":96.6666666666666667,"zero":0}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("error is sticky", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("nan", math.NaN())
		w.Append("b", 2)
		if _, err := w.MarshalJSON(); err == nil {
			t.Error("expected an error for a NaN value")
		}
	})
}

func TestSummary_MarshalJSON(t *testing.T) {
	s := Summary{
		TotalCost:         decimal.RequireFromString("595"),
		TotalMarketValue:  decimal.RequireFromString("600"),
		OverallProfitLoss: decimal.RequireFromString("5"),
	}
	got, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("json.Marshal() unexpected error: %v", err)
	}
	want := `{"total_cost":595,"total_market_value":600,"overall_profit_loss":5}`
	if string(got) != want {
		t.Errorf("json.Marshal() got %s, want %s", got, want)
	}
}
