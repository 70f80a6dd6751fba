package folio

import (
	"iter"

	"github.com/shopspring/decimal"
)

// Position holds the running totals of all the transactions on a security.
//
// TotalUnits and TotalAmount are signed: buys add to them and sells subtract.
// TotalExpenses always grows.
type Position struct {
	Security      string
	TotalUnits    int64
	TotalAmount   decimal.Decimal
	TotalExpenses decimal.Decimal
	Exchange      Exchange // last seen
}

// apply folds tx into p.
func (p *Position) apply(tx Transaction) {
	switch tx.Type {
	case Buy:
		p.TotalUnits += tx.Units
		p.TotalAmount = p.TotalAmount.Add(tx.Amount)
	case Sell:
		p.TotalUnits -= tx.Units
		p.TotalAmount = p.TotalAmount.Sub(tx.Amount)
	}
	p.TotalExpenses = p.TotalExpenses.Add(tx.TranExpense)
	p.Exchange = tx.Exchange
}

// Positions is the set of positions resulting from a list of transactions.
// Its zero value is an empty set.
type Positions struct {
	order []string // securities in order of first appearance
	index map[string]*Position
}

// Aggregate folds txs into one Position per security.
//
// Every transaction is validated first: an unknown type or exchange is
// reported as a ValidationError and nothing is aggregated.
func Aggregate(txs []Transaction) (*Positions, error) {
	ps := &Positions{index: make(map[string]*Position)}
	for i, tx := range txs {
		if err := tx.Validate(); err != nil {
			if verr, ok := err.(*ValidationError); ok {
				verr.Index = i
			}
			return nil, err
		}
		p, ok := ps.index[tx.Security]
		if !ok {
			p = &Position{Security: tx.Security}
			ps.index[tx.Security] = p
			ps.order = append(ps.order, tx.Security)
		}
		p.apply(tx)
	}
	return ps, nil
}

// Len returns the number of securities.
func (ps *Positions) Len() int { return len(ps.order) }

// Get returns the position on security.
func (ps *Positions) Get(security string) (Position, bool) {
	p, ok := ps.index[security]
	if !ok {
		return Position{}, false
	}
	return *p, true
}

// All iterates over positions in the order their security first appeared in
// the transactions.
func (ps *Positions) All() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for _, s := range ps.order {
			if !yield(*ps.index[s]) {
				return
			}
		}
	}
}
