package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chiquitav2/user-console/pkg/api"
	"github.com/chiquitav2/user-console/pkg/errors"
	"github.com/chiquitav2/user-console/pkg/logger"
)

const defaultTimeout = 30 * time.Second

// Header names the pipeline manages
const (
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderAuthorization = "Authorization"

	mimeJSON = "application/json"
)

// Doer is the transport the client issues requests through.
// *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RequestOptions are the per-call settings recognized by the pipeline.
// A nil *RequestOptions means a plain GET.
type RequestOptions struct {
	// Method is one of GET, POST, PUT or DELETE. Empty means GET.
	Method string
	// Headers are merged over the client defaults; per-call values win.
	Headers map[string]string
	// Body is sent as-is.
	Body []byte
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying transport
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.httpClient = d
		}
	}
}

// WithTimeout sets the timeout of the default *http.Client transport.
// It has no effect on a transport supplied with WithHTTPClient unless that
// transport is itself an *http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if hc, ok := c.httpClient.(*http.Client); ok && timeout > 0 {
			hc.Timeout = timeout
		}
	}
}

// WithHeader adds a default header sent on every request
func WithHeader(name, value string) Option {
	return func(c *Client) {
		c.defaultHeaders[http.CanonicalHeaderKey(name)] = value
	}
}

// Client is the request pipeline for the user management API.
// All network calls go through Request. The only mutable state is the
// default header map; it is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient Doer
	logger     *logger.Logger

	mu             sync.RWMutex
	defaultHeaders map[string]string
}

// NewClient creates a new API client.
func NewClient(baseURL string, log *logger.Logger, opts ...Option) *Client {
	if log == nil {
		log = logger.NewDevelopment("client")
	}

	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: log.WithComponent("client"),
		defaultHeaders: map[string]string{
			HeaderContentType: mimeJSON,
			HeaderAccept:      mimeJSON,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the URL prefix every endpoint is resolved against
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetAuthToken sends "Authorization: Bearer <token>" on all subsequent
// requests. An empty token removes the header. Requests already in flight
// are unaffected.
func (c *Client) SetAuthToken(token string) {
	if token == "" {
		c.ClearAuthToken()
		return
	}

	c.mu.Lock()
	c.defaultHeaders[HeaderAuthorization] = "Bearer " + token
	c.mu.Unlock()
}

// ClearAuthToken stops sending the Authorization header.
func (c *Client) ClearAuthToken() {
	c.mu.Lock()
	delete(c.defaultHeaders, HeaderAuthorization)
	c.mu.Unlock()
}

// DefaultHeaders returns a copy of the headers sent on every request.
func (c *Client) DefaultHeaders() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]string, len(c.defaultHeaders))
	for k, v := range c.defaultHeaders {
		out[k] = v
	}
	return out
}

// mergeHeaders snapshots the defaults and applies per-call overrides.
// Names are canonicalized so "content-type" overrides "Content-Type".
func (c *Client) mergeHeaders(overrides map[string]string) http.Header {
	c.mu.RLock()
	h := make(http.Header, len(c.defaultHeaders)+len(overrides))
	for k, v := range c.defaultHeaders {
		h.Set(k, v)
	}
	c.mu.RUnlock()

	for k, v := range overrides {
		h.Set(k, v)
	}
	return h
}

// Request issues one call through the pipeline and decodes the envelope.
//
// A 2xx response is returned unmodified, including success=false envelopes:
// surfacing the message of those is up to the caller (see api.Response.Result).
// Any other status fails with the envelope message, or "HTTP error: status N"
// when the body carries none. Transport failures and undecodable 2xx bodies
// fail with the underlying cause attached.
func Request[T any](ctx context.Context, c *Client, endpoint string, opts *RequestOptions) (*api.Response[T], error) {
	body, err := c.roundTrip(ctx, endpoint, opts)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.NewTransportError(errors.ErrCodeMalformedResponse, "empty response body", nil)
	}

	var resp api.Response[T]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.NewTransportError(errors.ErrCodeMalformedResponse, "failed to decode API response", err)
	}
	return &resp, nil
}

// roundTrip performs the HTTP exchange and returns the body of a 2xx response.
func (c *Client) roundTrip(ctx context.Context, endpoint string, opts *RequestOptions) ([]byte, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	method, err := normalizeMethod(opts.Method)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	ctx = logger.WithRequestID(ctx, requestID)
	ctx = logger.WithEndpoint(ctx, endpoint)

	url := c.baseURL + endpoint

	var reader io.Reader
	if opts.Body != nil {
		reader = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errors.NewTransportError(errors.ErrCodeRequestBuild, "failed to create request", err)
	}
	req.Header = c.mergeHeaders(opts.Headers)

	c.logger.WithContext(ctx).Debug("making API request", "method", method, "url", url)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.HTTPRequest(ctx, method, endpoint, 0, time.Since(start), "error", err.Error())
		return nil, errors.NewTransportError(errors.ErrCodeNetwork, "failed to make request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.logger.HTTPRequest(ctx, method, endpoint, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, errors.NewTransportError(errors.ErrCodeNetwork, "failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewHTTPError(resp.StatusCode, envelopeMessage(body))
	}
	return body, nil
}

// envelopeMessage extracts the message of an error envelope, if any.
func envelopeMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Message
}

func normalizeMethod(method string) (string, error) {
	switch m := strings.ToUpper(strings.TrimSpace(method)); m {
	case "":
		return http.MethodGet, nil
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return m, nil
	default:
		return "", errors.NewInputError("unsupported method "+method, nil)
	}
}

// jsonOptions marshals v into a request body for the given method
func jsonOptions(method string, v any) (*RequestOptions, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, errors.NewInputError("failed to marshal request body", err)
	}
	return &RequestOptions{Method: method, Body: body}, nil
}
