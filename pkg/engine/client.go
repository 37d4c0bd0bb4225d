// Package engine talks to the external packing and rate engine.
//
// The engine owns the authoritative packing algorithm and carrier selection;
// this package only moves requests and results over HTTP. It neither retries
// nor caches: a failed call returns a coded error and the caller keeps
// whatever it showed before.
//
// Callers that may fire overlapping requests use a [Tracker] to make sure
// only the most recent answer is applied:
//
//	seq := tracker.Begin()
//	res, err := client.Pack(ctx, items)
//	if !tracker.Accept(seq) {
//	    return // superseded
//	}
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/parcelview/pkg/catalog"
	"github.com/matzehuels/parcelview/pkg/errors"
	"github.com/matzehuels/parcelview/pkg/observability"
	"github.com/matzehuels/parcelview/pkg/parcel"
)

// Engine endpoints.
const (
	PathDimensions = "/api/shipping/calculate/dimensions"
	PathCart       = "/api/shipping/calculate/cart"
	PathManual     = "/api/shipping/calculate/manual"
)

// DefaultTimeout bounds a single engine call when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is kept for the message.
const maxErrorBody = 512

// Client calls the packing engine.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *log.Logger
	headers map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) Option { return func(c *Client) { c.logger = l } }

// WithHeader adds a header sent with every request.
func WithHeader(k, v string) Option {
	return func(c *Client) { c.headers[k] = v }
}

// NewClient creates a client for the engine at baseURL.
// A timeout <= 0 uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log.New(io.Discard),
		headers: map[string]string{"Content-Type": "application/json", "Accept": "application/json"},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the engine address.
func (c *Client) BaseURL() string { return c.baseURL }

// Pack asks the engine to pack items and returns the placements.
// An empty item list is answered locally with an empty result.
func (c *Client) Pack(ctx context.Context, items []catalog.Request) (*PackResult, error) {
	if len(items) == 0 {
		return &PackResult{}, nil
	}
	var res PackResult
	if err := c.post(ctx, PathDimensions, CartRequest{Items: items}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Rates asks the engine for carrier options for a cart.
func (c *Client) Rates(ctx context.Context, items []catalog.Request) (*RateResult, error) {
	var res RateResult
	if err := c.post(ctx, PathCart, CartRequest{Items: items}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ManualRates asks the engine for carrier options for a hand-measured box.
func (c *Client) ManualRates(ctx context.Context, e parcel.Estimate) (*RateResult, error) {
	req := ManualRequest{LengthCm: e.LengthCm, WidthCm: e.WidthCm, HeightCm: e.HeightCm, WeightG: e.WeightG}
	var res RateResult
	if err := c.post(ctx, PathManual, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) post(ctx context.Context, path string, body, v any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s request", path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "build %s request", path)
	}
	for k, val := range c.headers {
		req.Header.Set(k, val)
	}

	hooks := observability.Engine()
	hooks.OnRequest(ctx, path)
	c.logger.Debug("engine request", "path", path, "bytes", len(payload))
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, path, err)
		return classify(ctx, path, err)
	}
	defer resp.Body.Close()

	elapsed := time.Since(start)
	hooks.OnResponse(ctx, path, resp.StatusCode, elapsed)
	c.logger.Debug("engine response", "path", path, "status", resp.StatusCode, "elapsed", elapsed.Round(time.Millisecond))

	if err := checkStatus(path, resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s response", path)
	}
	return nil
}

func classify(ctx context.Context, path string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrCodeTimeout, err, "engine %s timed out", path)
	}
	var ne interface{ Timeout() bool }
	if stderrors.As(err, &ne) && ne.Timeout() {
		return errors.Wrap(errors.ErrCodeTimeout, err, "engine %s timed out", path)
	}
	if stderrors.Is(err, context.Canceled) {
		return err
	}
	return errors.Wrap(errors.ErrCodeNetwork, err, "engine %s unreachable", path)
}

func checkStatus(path string, resp *http.Response) error {
	code := resp.StatusCode
	if code >= 200 && code < 300 {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	detail := strings.TrimSpace(string(msg))
	if detail == "" {
		detail = http.StatusText(code)
	}
	switch {
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "engine %s: %s", path, detail)
	case code >= 400 && code < 500:
		return errors.New(errors.ErrCodeInvalidInput, "engine rejected %s: %s", path, detail)
	default:
		return errors.Wrap(errors.ErrCodeUnavailable, fmt.Errorf("status %d", code), "engine %s: %s", path, detail)
	}
}
