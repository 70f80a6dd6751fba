package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

// DefaultUserAgent is sent with every request; quote pages reject Go's default one.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// transport decorates every request with a user agent, waits for the rate
// limiter and logs the response status.
type transport struct {
	base      http.RoundTripper
	userAgent string
	limiter   *rate.Limiter // nil means unlimited
}

// RoundTrip implements the http.RoundTripper interface.
func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	// RoundTrip must not modify the request.
	req = req.Clone(req.Context())
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	slog.Debug("http", "method", req.Method, "url", req.URL.Host+req.URL.Path, "status", resp.Status)
	return resp, nil
}

// ClientOptions configures NewClient.
type ClientOptions struct {
	Timeout       time.Duration
	UserAgent     string
	RatePerSecond float64 // 0 disables the limiter
	Burst         int
}

// NewClient returns an http.Client suited to query quote providers politely.
func NewClient(opts ClientOptions) *http.Client {
	t := &transport{base: http.DefaultTransport, userAgent: opts.UserAgent}
	if t.userAgent == "" {
		t.userAgent = DefaultUserAgent
	}
	if opts.RatePerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), burst)
	}
	return &http.Client{Transport: t, Timeout: opts.Timeout}
}

// get performs an HTTP GET and returns the response if its status is 200.
// The caller must close the body.
func get(ctx context.Context, client *http.Client, addr string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return resp, nil
}

// jwget performs an HTTP GET request to addr and decodes the JSON response
// body into a generic document. Numbers are kept as json.Number.
func jwget(ctx context.Context, client *http.Client, addr string) (any, error) {
	resp, err := get(ctx, client, addr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var doc any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot decode %v%v: %w", resp.Request.URL.Host, resp.Request.URL.Path, err)
	}
	return doc, nil
}

// hget performs an HTTP GET request to addr and parses the HTML response.
func hget(ctx context.Context, client *http.Client, addr string) (*html.Node, error) {
	resp, err := get(ctx, client, addr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %v%v: %w", resp.Request.URL.Host, resp.Request.URL.Path, err)
	}
	return doc, nil
}
