package fetch

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
}

// FetchError classifies a failed request so callers can decide whether to
// skip an item or stop paginating.
type FetchError struct {
	URL    string
	Status int    // non-zero for HTTP status failures
	Kind   string // "status", "timeout" or "network"
	Err    error
}

func (e *FetchError) Error() string {
	if e.Kind == "status" {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client wraps an http.Client with browser-like headers and a fixed
// per-request timeout. Safe for concurrent use.
type Client struct {
	http *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
		ForceAttemptHTTP2:   true,
	}
	return &Client{
		http: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

// FetchText GETs a URL and returns the body as a string. Extra headers
// override the defaults.
func (c *Client) FetchText(ctx context.Context, url string, headers map[string]string) (string, error) {
	body, err := c.do(ctx, http.MethodGet, url, nil, headers)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchJSON issues a request with an optional JSON body and decodes the
// JSON response into out. A malformed response body is a network-kind error.
func (c *Client) FetchJSON(ctx context.Context, method, url string, payload any, headers map[string]string, out any) error {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}
	merged := map[string]string{"Accept": "application/json"}
	if payload != nil {
		merged["Content-Type"] = "application/json"
	}
	for k, v := range headers {
		merged[k] = v
	}
	body, err := c.do(ctx, method, url, reqBody, merged)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &FetchError{URL: url, Kind: "network", Err: fmt.Errorf("decode JSON: %w", err)}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &FetchError{URL: url, Kind: "network", Err: err}
	}
	req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9,en;q=0.8")
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Kind: classify(err), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Kind: "network", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, Status: resp.StatusCode, Kind: "status"}
	}
	return data, nil
}

func classify(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "network"
}
