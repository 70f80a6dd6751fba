package folio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// TxType is the kind of a transaction.
type TxType string

// Transaction types.
const (
	Buy  TxType = "BUY"
	Sell TxType = "SELL"
)

// Valid reports whether t is a known transaction type.
func (t TxType) Valid() bool { return t == Buy || t == Sell }

// Exchange is the stock exchange a security is traded on.
type Exchange string

// Supported exchanges.
const (
	NSE Exchange = "NSE"
	BSE Exchange = "BSE"
)

// Valid reports whether e is a known exchange.
func (e Exchange) Valid() bool { return e == NSE || e == BSE }

// Suffix returns the ticker suffix used by quote providers for this exchange,
// e.g. "NS" for NSE so that INFY is queried as "INFY.NS".
func (e Exchange) Suffix() string {
	switch e {
	case NSE:
		return "NS"
	case BSE:
		return "BO"
	}
	return ""
}

// ErrValidation is the error wrapped by every ValidationError.
var ErrValidation = errors.New("invalid transaction")

// ValidationError reports a malformed transaction.
type ValidationError struct {
	Index    int    // position in the input file, -1 if unknown
	Security string // may be empty when the security itself is missing
	Field    string
	Msg      string
}

func newValidationError(security, field, format string, args ...any) *ValidationError {
	return &ValidationError{Index: -1, Security: security, Field: field, Msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	var b bytes.Buffer
	b.WriteString("invalid transaction")
	if e.Index >= 0 {
		fmt.Fprintf(&b, " #%d", e.Index)
	}
	if e.Security != "" {
		fmt.Fprintf(&b, " (%s)", e.Security)
	}
	fmt.Fprintf(&b, ": %s: %s", e.Field, e.Msg)
	return b.String()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Transaction is a single buy or sell of a security.
//
// Amount is the total amount paid (BUY) or received (SELL) for Units, and
// TranExpense the fees charged on top of it.
type Transaction struct {
	Security    string
	Type        TxType
	Units       int64
	Amount      decimal.Decimal
	TranExpense decimal.Decimal
	Exchange    Exchange
}

// Validate checks that all the fields of t hold acceptable values.
func (t Transaction) Validate() error {
	if t.Security == "" {
		return newValidationError("", "security", "is missing")
	}
	if !t.Type.Valid() {
		return newValidationError(t.Security, "type", "unknown transaction type %q", t.Type)
	}
	if !t.Exchange.Valid() {
		return newValidationError(t.Security, "exchange", "unknown exchange %q", t.Exchange)
	}
	if t.Units < 0 {
		return newValidationError(t.Security, "units", "must not be negative, got %d", t.Units)
	}
	if t.Amount.IsNegative() {
		return newValidationError(t.Security, "amount", "must not be negative, got %s", t.Amount)
	}
	if t.TranExpense.IsNegative() {
		return newValidationError(t.Security, "tran_expense", "must not be negative, got %s", t.TranExpense)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("security", t.Security)
	w.Append("type", t.Type)
	w.Append("units", t.Units)
	w.Number("amount", t.Amount)
	w.Number("tran_expense", t.TranExpense)
	w.Append("exchange", t.Exchange)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
//
// All fields are required, unknown fields are rejected and the decoded
// transaction is validated.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		Security    *string          `json:"security"`
		Type        *TxType          `json:"type"`
		Units       *json.Number     `json:"units"`
		Amount      *decimal.Decimal `json:"amount"`
		TranExpense *decimal.Decimal `json:"tran_expense"`
		Exchange    *Exchange        `json:"exchange"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(&temp); err != nil {
		return newValidationError("", "record", "%v", err)
	}

	var security string
	if temp.Security != nil {
		security = *temp.Security
	}
	switch {
	case temp.Security == nil:
		return newValidationError("", "security", "is missing")
	case temp.Type == nil:
		return newValidationError(security, "type", "is missing")
	case temp.Units == nil:
		return newValidationError(security, "units", "is missing")
	case temp.Amount == nil:
		return newValidationError(security, "amount", "is missing")
	case temp.TranExpense == nil:
		return newValidationError(security, "tran_expense", "is missing")
	case temp.Exchange == nil:
		return newValidationError(security, "exchange", "is missing")
	}

	units, err := strconv.ParseInt(temp.Units.String(), 10, 64)
	if err != nil {
		return newValidationError(security, "units", "must be an integer, got %s", temp.Units.String())
	}

	tx := Transaction{
		Security:    security,
		Type:        *temp.Type,
		Units:       units,
		Amount:      *temp.Amount,
		TranExpense: *temp.TranExpense,
		Exchange:    *temp.Exchange,
	}
	if err := tx.Validate(); err != nil {
		return err
	}
	*t = tx
	return nil
}
