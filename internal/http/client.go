package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fivetwenty-io/hubspot-client/internal/constants"
	"github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"
)

// Client sends requests to one API host with one credential. It holds no
// mutable state after NewClient returns and is safe for concurrent use.
type Client struct {
	baseURL      string
	tokenSource  oauth2.TokenSource
	httpClient   *retryablehttp.Client
	baseClient   *http.Client
	logger       hubspot.Logger
	debug        bool
	userAgent    string
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output. When retries are on it
// also receives the retry messages.
func WithLogger(logger hubspot.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug logs every request and response when a logger is set.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithRetryConfig turns on retries for 429, 5xx and connection errors.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = maxRetries
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithHTTPClient sends requests through a caller configured client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.baseClient = httpClient
	}
}

// NewClient creates a client for baseURL. A nil tokenSource sends requests
// without an Authorization header.
func NewClient(baseURL string, tokenSource oauth2.TokenSource, opts ...Option) *Client {
	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		tokenSource:  tokenSource,
		userAgent:    constants.DefaultUserAgent,
		retryWaitMin: constants.DefaultRetryWaitMin,
		retryWaitMax: constants.DefaultRetryWaitMax,
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = client.retryMax
	retryClient.RetryWaitMin = client.retryWaitMin
	retryClient.RetryWaitMax = client.retryWaitMax
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	if client.logger != nil && client.retryMax > 0 {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	if client.baseClient != nil {
		retryClient.HTTPClient = client.baseClient
	}

	client.httpClient = retryClient

	return client
}

// BaseURL returns the scheme and host every path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request is a request that has not been sent yet.
type Request struct {
	Method  string
	Path    string
	URL     string
	Body    interface{}
	Headers map[string]string
}

// Response is a fully read response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Begin starts a request for method and path. path is relative to the base
// URL and may carry a raw query string. No I/O happens here.
func (c *Client) Begin(method, path string) *Request {
	return &Request{
		Method: method,
		Path:   path,
		URL:    c.baseURL + "/" + strings.TrimPrefix(path, "/"),
	}
}

// JSON sets the value encoded as the request body.
func (r *Request) JSON(body interface{}) *Request {
	r.Body = body

	return r
}

// Header sets an extra request header.
func (r *Request) Header(name, value string) *Request {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}

	r.Headers[name] = value

	return r
}

// Do sends req and reads the whole response. A non-2xx status returns the
// response together with a *hubspot.RemoteError; a body that is not UTF-8
// returns a *hubspot.EncodingError; a transport failure returns a
// *hubspot.HTTPError and no response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    req.URL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &hubspot.HTTPError{Method: req.Method, URL: req.URL, Err: err}
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &hubspot.HTTPError{Method: req.Method, URL: req.URL, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   httpResp.StatusCode,
			"duration": time.Since(start).String(),
			"bytes":    len(body),
		})
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}

	if !utf8.Valid(body) {
		return resp, &hubspot.EncodingError{StatusCode: resp.StatusCode, Body: body}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp, hubspot.NewRemoteError(resp.StatusCode, body)
	}

	return resp, nil
}

func (c *Client) buildRequest(ctx context.Context, req *Request) (*retryablehttp.Request, error) {
	var body []byte

	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &hubspot.JSONError{Err: fmt.Errorf("encoding request body: %w", err)}
		}

		body = encoded
	}

	var rawBody interface{}
	if body != nil {
		rawBody = bytes.NewReader(body)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, rawBody)
	if err != nil {
		return nil, &hubspot.HTTPError{Method: req.Method, URL: req.URL, Err: err}
	}

	httpReq.Header.Set("Accept", constants.ContentTypeJSON)
	httpReq.Header.Set("User-Agent", c.userAgent)

	if body != nil {
		httpReq.Header.Set("Content-Type", constants.ContentTypeJSON)
	}

	for name, value := range req.Headers {
		httpReq.Header.Set(name, value)
	}

	if c.tokenSource != nil {
		token, err := c.tokenSource.Token()
		if err != nil {
			return nil, &hubspot.HTTPError{Method: req.Method, URL: req.URL, Err: fmt.Errorf("getting access token: %w", err)}
		}

		token.SetAuthHeader(httpReq.Request)
	}

	return httpReq, nil
}

// Send performs req and decodes a successful body into out. An empty body
// decodes as JSON null, which leaves out untouched; out may be nil when the
// caller expects no payload.
func (c *Client) Send(ctx context.Context, req *Request, out interface{}) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}

	return Decode(resp.Body, out)
}

// Decode unmarshals a success body into out.
func Decode(body []byte, out interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("null")
	}

	if out == nil {
		return nil
	}

	err := json.Unmarshal(body, out)
	if err != nil {
		return &hubspot.JSONError{Body: body, Err: err}
	}

	return nil
}

// Get sends a GET request for path.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.Send(ctx, c.Begin(http.MethodGet, path), out)
}

// Post sends a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Send(ctx, c.Begin(http.MethodPost, path).JSON(body), out)
}

// Put sends a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Send(ctx, c.Begin(http.MethodPut, path).JSON(body), out)
}

// Patch sends a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.Send(ctx, c.Begin(http.MethodPatch, path).JSON(body), out)
}

// Delete sends a DELETE request. body may be nil.
func (c *Client) Delete(ctx context.Context, path string, body interface{}) error {
	req := c.Begin(http.MethodDelete, path)
	if body != nil {
		req.JSON(body)
	}

	return c.Send(ctx, req, nil)
}
