package folio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/shopspring/decimal"
)

// jsonObjectWriter builds a JSON object whose keys keep the order they were
// written in. Its zero value is an empty object.
//
// The first error is kept and returned by MarshalJSON, later writes are
// ignored.
type jsonObjectWriter struct {
	bytes.Buffer
	err error
}

// field writes key and its already encoded value.
func (w *jsonObjectWriter) field(key string, raw []byte) *jsonObjectWriter {
	if w.Len() > 0 {
		w.WriteByte(',')
	}
	fmt.Fprintf(w, "%q:", key)
	w.Write(raw)
	return w
}

// Append writes key with value encoded by json.Marshal.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot marshal %q: %w", key, err)
		return w
	}
	return w.field(key, raw)
}

// Optional writes key only when value is not the zero value of its type.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// Number writes key with d as a bare JSON number, with all its digits.
func (w *jsonObjectWriter) Number(key string, d decimal.Decimal) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	return w.field(key, []byte(d.String()))
}

// MarshalJSON implements the json.Marshaler interface.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	out := make([]byte, 0, w.Len()+2)
	out = append(out, '{')
	out = append(out, w.Bytes()...)
	return append(out, '}'), nil
}
