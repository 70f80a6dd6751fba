package quote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/etnz/folio"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

// Resolver implements folio.PriceResolver on top of a primary and a fallback
// Source.
//
// Resolved quotes are kept in the resolver's own cache until they expire or
// Reset is called. A Resolver is meant to live for a single report run.
type Resolver struct {
	primary  Source
	fallback Source // may be nil
	namer    Namer  // may be nil
	cache    *cache.Cache
}

// NewResolver returns a Resolver. ttl is the lifetime of cached quotes, 0
// keeps them until Reset.
func NewResolver(primary, fallback Source, namer Namer, ttl time.Duration) *Resolver {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &Resolver{
		primary:  primary,
		fallback: fallback,
		namer:    namer,
		cache:    cache.New(ttl, 10*time.Minute),
	}
}

// Reset drops all cached quotes.
func (r *Resolver) Reset() { r.cache.Flush() }

// Cached returns the number of cached quotes.
func (r *Resolver) Cached() int { return r.cache.ItemCount() }

// Resolve implements the folio.PriceResolver interface.
//
// The primary source is asked first; on any failure the fallback is asked.
// When both fail the error is a *PriceUnavailableError, except when the
// fallback found a price it could not parse: that error is returned as is.
func (r *Resolver) Resolve(ctx context.Context, security string, exchange folio.Exchange) (folio.Quote, error) {
	key := Ticker(security, exchange)
	if v, ok := r.cache.Get(key); ok {
		return v.(folio.Quote), nil
	}

	price, source, err := r.price(ctx, security, exchange)
	if err != nil {
		return folio.Quote{}, err
	}

	q := folio.Quote{Security: security, Name: security, Price: price, Source: source}
	if name, err := r.name(ctx, security, exchange); err != nil {
		q.Degraded = true
		q.NameErr = err
	} else {
		q.Name = name
	}

	r.cache.Set(key, q, cache.DefaultExpiration)
	return q, nil
}

func (r *Resolver) price(ctx context.Context, security string, exchange folio.Exchange) (decimal.Decimal, folio.QuoteSource, error) {
	price, perr := r.primary.Price(ctx, security, exchange)
	if perr == nil {
		return price, folio.SourcePrimary, nil
	}
	if ctx.Err() != nil {
		return decimal.Zero, "", ctx.Err()
	}
	slog.DebugContext(ctx, "primary source failed", "security", security, "error", perr)

	if r.fallback == nil {
		return decimal.Zero, "", &PriceUnavailableError{Security: security, Primary: perr, Fallback: errors.New("no fallback source")}
	}
	price, ferr := r.fallback.Price(ctx, security, exchange)
	switch {
	case ferr == nil:
		return price, folio.SourceFallback, nil
	case errors.Is(ferr, ErrMalformedPrice):
		return decimal.Zero, "", fmt.Errorf("fallback price of %s: %w", security, ferr)
	case ctx.Err() != nil:
		return decimal.Zero, "", ctx.Err()
	}
	return decimal.Zero, "", &PriceUnavailableError{Security: security, Primary: perr, Fallback: ferr}
}

func (r *Resolver) name(ctx context.Context, security string, exchange folio.Exchange) (string, error) {
	if r.namer == nil {
		return "", fmt.Errorf("%w: no name provider", ErrNameResolution)
	}
	name, err := r.namer.DisplayName(ctx, security, exchange)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNameResolution, err)
	}
	return name, nil
}
