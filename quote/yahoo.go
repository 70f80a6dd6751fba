package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/folio"
	"github.com/shopspring/decimal"
)

// DefaultYahooURL is the base address of Yahoo's finance API.
const DefaultYahooURL = "https://query1.finance.yahoo.com"

/*
	{
	    "chart": {
	        "result": [
	            {
	                "meta": {
	                    "currency": "INR",
	                    "symbol": "INFY.NS",
	                    "longName": "Infosys Limited",
	                    "shortName": "INFOSYS LIMITED",
	                    "regularMarketPrice": 1493.2,
	                    ...
	                },
	                "timestamp": [1729237500],
	                "indicators": {
	                    "quote": [
	                        {
	                            "close": [1493.199951171875],
	                            ...
*/

// Yahoo reads the most recent daily close from Yahoo's chart API.
type Yahoo struct {
	BaseURL string
	Client  *http.Client
}

// NewYahoo returns a Yahoo source using client.
func NewYahoo(baseURL string, client *http.Client) *Yahoo {
	if baseURL == "" {
		baseURL = DefaultYahooURL
	}
	return &Yahoo{BaseURL: baseURL, Client: client}
}

// Ticker returns the Yahoo ticker of symbol on exchange, e.g. "INFY.NS".
func Ticker(symbol string, exchange folio.Exchange) string {
	if s := exchange.Suffix(); s != "" {
		return symbol + "." + s
	}
	return symbol
}

func (y *Yahoo) chart(ctx context.Context, symbol string, exchange folio.Exchange) (any, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d", y.BaseURL, url.PathEscape(Ticker(symbol, exchange)))
	return jwget(ctx, y.Client, addr)
}

// Price implements the Source interface. It returns ErrNoData when the chart
// holds no close price.
func (y *Yahoo) Price(ctx context.Context, symbol string, exchange folio.Exchange) (decimal.Decimal, error) {
	doc, err := y.chart(ctx, symbol, exchange)
	if err != nil {
		return decimal.Zero, err
	}

	path := "$.chart.result[0].indicators.quote[0].close"
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w: %q %v", Ticker(symbol, exchange), ErrNoData, path, err)
	}
	closes, ok := jval.([]any)
	if !ok {
		return decimal.Zero, fmt.Errorf("%s: %w: %q is not a list", Ticker(symbol, exchange), ErrNoData, path)
	}

	// the last bar may be null while the market is open, keep the last known close.
	for i := len(closes) - 1; i >= 0; i-- {
		n, ok := closes[i].(json.Number)
		if !ok {
			continue
		}
		price, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("%s: %w %q: %v", Ticker(symbol, exchange), ErrMalformedPrice, n, err)
		}
		return price, nil
	}
	return decimal.Zero, fmt.Errorf("%s: %w", Ticker(symbol, exchange), ErrNoData)
}

// DisplayName implements the Namer interface.
func (y *Yahoo) DisplayName(ctx context.Context, symbol string, exchange folio.Exchange) (string, error) {
	doc, err := y.chart(ctx, symbol, exchange)
	if err != nil {
		return "", err
	}
	for _, path := range []string{"$.chart.result[0].meta.shortName", "$.chart.result[0].meta.longName"} {
		jval, err := jsonpath.Get(path, doc)
		if err != nil {
			continue
		}
		if name, ok := jval.(string); ok && name != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("%s: no name in chart metadata", Ticker(symbol, exchange))
}
