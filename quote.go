package folio

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// QuoteSource tells which provider a quote came from.
type QuoteSource string

// Quote sources.
const (
	SourcePrimary  QuoteSource = "primary"
	SourceFallback QuoteSource = "fallback"
)

// Quote is the current market price of a security.
//
// When the display name could not be resolved, Name is the security symbol,
// Degraded is set and NameErr holds the reason.
type Quote struct {
	Security string
	Name     string
	Price    decimal.Decimal
	Source   QuoteSource
	Degraded bool
	NameErr  error
}

// ErrPriceUnavailable is reported by a PriceResolver when no source could
// provide a price. Evaluate skips such securities.
var ErrPriceUnavailable = errors.New("price unavailable")

// PriceResolver resolves the current quote of a security.
type PriceResolver interface {
	Resolve(ctx context.Context, security string, exchange Exchange) (Quote, error)
}
