package folio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// DecodeTransactions reads a JSON array of transactions from r.
//
// Decoding stops at the first invalid transaction; the returned
// ValidationError carries its index in the array.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("cannot read transactions: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("cannot read transactions: expected a JSON array, got %v", tok)
	}

	var txs []Transaction
	for i := 0; dec.More(); i++ {
		var tx Transaction
		if err := dec.Decode(&tx); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				verr.Index = i
				return nil, verr
			}
			return nil, fmt.Errorf("cannot read transaction #%d: %w", i, err)
		}
		txs = append(txs, tx)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("cannot read transactions: %w", err)
	}
	return txs, nil
}

// LoadTransactions opens and decodes the transaction file at path.
func LoadTransactions(path string) ([]Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open transaction file %q: %w", path, err)
	}
	defer f.Close()

	txs, err := DecodeTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode transaction file %q: %w", path, err)
	}
	return txs, nil
}

// EncodeTransactions writes txs to w as an indented JSON array, in the format
// read by DecodeTransactions.
func EncodeTransactions(w io.Writer, txs []Transaction) error {
	if txs == nil {
		txs = []Transaction{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(txs)
}
