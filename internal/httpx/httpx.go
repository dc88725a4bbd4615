package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
)

const (
	contentTypeJSON = "application/json"
	acceptJSON      = contentTypeJSON
	acceptEncoding  = "br, gzip"

	// RequestIDHeader carries the per-request correlation id.
	RequestIDHeader = "X-Request-ID"
)

// Observer receives one notification per API call.
// status is 0 when no response was received.
type Observer interface {
	ObserveRequest(method, endpoint string, status int, elapsed time.Duration)
}

// Client is the single gateway to the enrollment REST API.
// Every failure is logged here, once, and returned to the caller unchanged.
// There is no retry: a retry is always a new user action.
type Client struct {
	BaseURL  string
	HTTP     *http.Client
	Logger   *zap.Logger
	Observer Observer
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.HTTP = hc
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.Logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) { c.Observer = o }
}

// WithTimeout sets a whole-request timeout. Zero means none.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.HTTP.Timeout = d }
}

func New(baseURL string, opts ...Option) *Client {
	tr := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		// we negotiate br/gzip ourselves
		DisableCompression: true,
	}
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Transport: tr},
		Logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, ep Endpoint, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, ep, query, nil, out)
}

func (c *Client) Post(ctx context.Context, ep Endpoint, in, out any) error {
	return c.Do(ctx, http.MethodPost, ep, nil, in, out)
}

func (c *Client) Put(ctx context.Context, ep Endpoint, in, out any) error {
	return c.Do(ctx, http.MethodPut, ep, nil, in, out)
}

func (c *Client) Delete(ctx context.Context, ep Endpoint, out any) error {
	return c.Do(ctx, http.MethodDelete, ep, nil, nil, out)
}

// Do issues one request against BaseURL+ep.Path and decodes a 2xx JSON body into out.
// out may be nil, in which case the body is drained and discarded.
// Non-2xx responses come back as *HTTPError.
func (c *Client) Do(ctx context.Context, method string, ep Endpoint, query url.Values, in, out any) error {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpx: encode %s %s: %w", method, ep.Path, err)
		}
		payload = b
	}

	u := c.BaseURL + ep.Path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("httpx: build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", acceptJSON)
	req.Header.Set("Accept-Encoding", acceptEncoding)
	req.Header.Set(RequestIDHeader, reqID)
	if payload != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.observe(method, ep, 0, start)
		c.logFailure(method, u, reqID, 0, nil, err)
		return err
	}

	raw, err := readAndClose(resp)
	c.observe(method, ep, resp.StatusCode, start)
	if err != nil {
		c.logFailure(method, u, reqID, resp.StatusCode, nil, err)
		return fmt.Errorf("httpx: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		herr := &HTTPError{
			Method:     method,
			URL:        u,
			StatusCode: resp.StatusCode,
			Header:     resp.Header.Clone(),
			Body:       raw,
			Message:    serverMessage(raw),
		}
		c.logFailure(method, u, reqID, resp.StatusCode, raw, herr)
		return herr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		perr := fmt.Errorf("json parse error: %w body=%s", err, snippet(raw, 900))
		c.logFailure(method, u, reqID, resp.StatusCode, raw, perr)
		return perr
	}
	return nil
}

func (c *Client) observe(method string, ep Endpoint, status int, start time.Time) {
	if c.Observer == nil {
		return
	}
	c.Observer.ObserveRequest(method, ep.Template, status, time.Since(start))
}

// logFailure logs the response body when there is one, else the raw error.
func (c *Client) logFailure(method, u, reqID string, status int, body []byte, err error) {
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("url", u),
		zap.String("request_id", reqID),
	}
	if status != 0 {
		fields = append(fields, zap.Int("status", status))
	}
	if len(bytes.TrimSpace(body)) > 0 {
		fields = append(fields, zap.String("body", snippet(body, 900)))
	} else {
		fields = append(fields, zap.Error(err))
	}
	c.Logger.Error("api error", fields...)
}

func readAndClose(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	var r io.Reader = resp.Body
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "br":
		r = brotli.NewReader(resp.Body)
	case "gzip":
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	}
	return io.ReadAll(r)
}
