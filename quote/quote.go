// Package quote resolves current security prices.
//
// A Resolver asks a primary Source (end of day close from Yahoo's chart API)
// and falls back to a secondary one (the live quote scraped from a Google
// Finance page) when the primary has nothing to say.
package quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/folio"
	"github.com/shopspring/decimal"
)

var (
	// ErrNoData is returned by a Source that has no price for a security.
	ErrNoData = errors.New("no data")
	// ErrMalformedPrice is returned when a price was found but could not be parsed.
	ErrMalformedPrice = errors.New("malformed price")
	// ErrNameResolution is recorded in folio.Quote.NameErr when the display
	// name of a security could not be resolved.
	ErrNameResolution = errors.New("name resolution failed")
)

// Source provides the current price of a security.
type Source interface {
	Price(ctx context.Context, symbol string, exchange folio.Exchange) (decimal.Decimal, error)
}

// Namer provides the display name of a security.
type Namer interface {
	DisplayName(ctx context.Context, symbol string, exchange folio.Exchange) (string, error)
}

// PriceUnavailableError reports that neither the primary nor the fallback
// source could price a security.
type PriceUnavailableError struct {
	Security string
	Primary  error
	Fallback error
}

func (e *PriceUnavailableError) Error() string {
	return fmt.Sprintf("price of %s unavailable: primary: %v; fallback: %v", e.Security, e.Primary, e.Fallback)
}

// Unwrap makes the error match folio.ErrPriceUnavailable and both causes.
func (e *PriceUnavailableError) Unwrap() []error {
	return []error{folio.ErrPriceUnavailable, e.Primary, e.Fallback}
}
