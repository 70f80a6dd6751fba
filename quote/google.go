package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/folio"
	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
)

// DefaultGoogleURL is the base address of Google Finance.
const DefaultGoogleURL = "https://www.google.com"

// DefaultPriceSelector selects the element holding the live price on a
// Google Finance quote page.
const DefaultPriceSelector = "div.YMlKec.fxKbKc"

// GoogleFinance scrapes the live price out of a Google Finance quote page.
type GoogleFinance struct {
	BaseURL  string
	Selector string // "tag.class1.class2", the tag may be omitted
	Client   *http.Client
}

// NewGoogleFinance returns a GoogleFinance source using client.
func NewGoogleFinance(baseURL, selector string, client *http.Client) *GoogleFinance {
	if baseURL == "" {
		baseURL = DefaultGoogleURL
	}
	if selector == "" {
		selector = DefaultPriceSelector
	}
	return &GoogleFinance{BaseURL: baseURL, Selector: selector, Client: client}
}

// googleExchange returns the exchange code in Google Finance URLs.
func googleExchange(exchange folio.Exchange) string {
	if exchange == folio.BSE {
		return "BOM"
	}
	return string(exchange)
}

// Price implements the Source interface.
//
// It returns ErrNoData when the page has no price element, and
// ErrMalformedPrice when the element's text is not a number.
func (g *GoogleFinance) Price(ctx context.Context, symbol string, exchange folio.Exchange) (decimal.Decimal, error) {
	addr := fmt.Sprintf("%s/finance/quote/%s:%s", g.BaseURL, url.PathEscape(symbol), googleExchange(exchange))
	doc, err := hget(ctx, g.Client, addr)
	if err != nil {
		return decimal.Zero, err
	}

	tag, classes := parseSelector(g.Selector)
	node := findFirst(doc, func(n *html.Node) bool { return matches(n, tag, classes) })
	if node == nil {
		return decimal.Zero, fmt.Errorf("%s:%s: %w: no element %q", symbol, googleExchange(exchange), ErrNoData, g.Selector)
	}
	return ParsePrice(textContent(node))
}

// currencySymbols are removed from a price text. The last one is the rupee
// sign read as latin-1, as served by some pages.
var currencySymbols = []string{"₹", "$", "€", "£", "Rs.", "â‚¹"}

// ParsePrice parses a localized price like "₹1,493.20".
func ParsePrice(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	for _, sym := range currencySymbols {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.NewReplacer(",", "", " ", "", "\u00a0", "").Replace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty text %q", ErrMalformedPrice, text)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %v", ErrMalformedPrice, text, err)
	}
	return d, nil
}

// parseSelector splits a "tag.class1.class2" selector.
func parseSelector(sel string) (tag string, classes []string) {
	parts := strings.Split(strings.TrimSpace(sel), ".")
	tag = parts[0]
	for _, c := range parts[1:] {
		if c != "" {
			classes = append(classes, c)
		}
	}
	return tag, classes
}

// matches reports whether n is an element named tag (any tag if empty)
// carrying all classes.
func matches(n *html.Node, tag string, classes []string) bool {
	if n.Type != html.ElementNode || (tag != "" && n.Data != tag) {
		return false
	}
	var have []string
	for _, a := range n.Attr {
		if a.Key == "class" {
			have = strings.Fields(a.Val)
			break
		}
	}
	for _, c := range classes {
		found := false
		for _, h := range have {
			if h == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// findFirst walks the tree depth first and returns the first node accepted by match.
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

// textContent concatenates all the text under n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
