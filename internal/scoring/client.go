// Package scoring talks to the readability scoring endpoint.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultPath is where the scoring endpoint listens.
	DefaultPath = "/flesh"

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 3000 * time.Millisecond

	contentType = "application/json; charset=utf-8"

	maxResponseBytes = 1 << 20
)

// ErrStatus is returned when the endpoint answers with a non-2xx status.
var ErrStatus = errors.New("unexpected status")

// Result is the payload returned by the endpoint.
type Result struct {
	Grade Value `json:"grade"`
	Score Value `json:"score"`
}

// request is the body posted to the endpoint.
type request struct {
	Text string `json:"text"`
}

// Client is a scoring endpoint client.
type Client struct {
	url        string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. Its Timeout is
// overwritten with the client timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a client posting to baseURL + path.
func NewClient(baseURL, path string, opts ...Option) *Client {
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	c := &Client{
		url:        strings.TrimRight(baseURL, "/") + path,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpClient.Timeout = c.timeout

	return c
}

// URL returns the full endpoint address.
func (c *Client) URL() string {
	return c.url
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Score posts text to the endpoint and decodes the grade and score.
func (c *Client) Score(ctx context.Context, text string) (Result, error) {
	body, err := EncodeRequest(text)
	if err != nil {
		return Result{}, fmt.Errorf("encoding request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", RequestID(ctx))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	var result Result
	if err := json.Unmarshal(respBody, &result); err != nil {
		return Result{}, fmt.Errorf("unmarshaling response: %w", err)
	}

	return result, nil
}

// EncodeRequest builds the request body. HTML characters are left as-is so
// the bytes match what a browser's JSON.stringify would send.
func EncodeRequest(text string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(request{Text: text}); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

type requestIDKey struct{}

// WithRequestID attaches a request ID to ctx so it can be logged alongside
// the outbound request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID carried by ctx, generating a fresh one
// when none is set.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.New().String()
}
