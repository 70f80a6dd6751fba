package folio

import (
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// D is a helper for test to create a decimal from a const string.
func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// decimalEqual lets cmp compare decimals by value.
var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

// buy and sell are helpers for test to create transactions.
func buy(security string, units int64, amount, expense string) Transaction {
	return Transaction{Security: security, Type: Buy, Units: units, Amount: D(amount), TranExpense: D(expense), Exchange: NSE}
}

func sell(security string, units int64, amount, expense string) Transaction {
	return Transaction{Security: security, Type: Sell, Units: units, Amount: D(amount), TranExpense: D(expense), Exchange: NSE}
}
