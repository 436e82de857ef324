package api

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	FormContentType = "application/x-www-form-urlencoded"
	JSONContentType = "application/json"

	RequestIDHeader = "X-Request-ID"

	authScheme = "Bearer"
)

// Client is the shared HTTP client for the Spectra API. It is created once
// per process and carries the bearer token applied to every request.
type Client struct {
	rest *resty.Client

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

// WithTransport replaces the underlying round tripper.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.rest.SetTransport(transport)
	}
}

// WithDebug dumps requests and responses through the logger.
func WithDebug(enabled bool) Option {
	return func(c *Client) {
		c.rest.SetDebug(enabled)
	}
}

// New creates a client rooted at baseURL. An empty base URL is accepted and
// left to fail at the network layer.
func New(baseURL string, opts ...Option) *Client {

	c := &Client{
		rest: resty.New(),
	}

	c.rest.
		SetBaseURL(baseURL).
		SetLogger(logrus.StandardLogger()).
		SetAuthScheme(authScheme)

	for _, opt := range opts {
		opt(c)
	}

	c.rest.OnBeforeRequest(c.applyAuthorization)
	c.rest.OnBeforeRequest(applyRequestID)

	// Debug output goes through logrus; credentials never do.
	c.rest.OnRequestLog(redactRequestLog)
	c.rest.OnResponseLog(redactResponseLog)

	return c
}

// SetAuthorizationToken sets the default bearer token. An empty token
// removes the Authorization header from subsequent requests.
func (c *Client) SetAuthorizationToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == token {
		return
	}

	logrus.WithFields(logrus.Fields{
		"present": len(token) > 0,
	}).Debugln("Updating API authorization header")

	c.token = token
}

// AuthorizationHeader returns the Authorization header value that will be
// attached to the next request, or an empty string when there is none.
func (c *Client) AuthorizationHeader() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.token) == 0 {
		return ""
	}
	return authScheme + " " + c.token
}

func (c *Client) BaseURL() string {
	return c.rest.BaseURL
}

// applyRequestID tags each request so it can be matched in server logs.
func applyRequestID(_ *resty.Client, r *resty.Request) error {
	if len(r.Header.Get(RequestIDHeader)) == 0 {
		r.SetHeader(RequestIDHeader, uuid.NewString())
	}
	return nil
}

func (c *Client) applyAuthorization(_ *resty.Client, r *resty.Request) error {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()

	if len(token) > 0 {
		r.SetAuthToken(token)
	}
	return nil
}

type RequestOption func(*resty.Request)

// WithHeader overrides a header on a single request.
func WithHeader(key, value string) RequestOption {
	return func(r *resty.Request) {
		r.SetHeader(key, value)
	}
}

// WithFormData sends values as a form-urlencoded body.
func WithFormData(values url.Values) RequestOption {
	return func(r *resty.Request) {
		r.SetFormDataFromValues(values).
			SetHeader("Content-Type", FormContentType)
	}
}

// WithResult decodes a successful JSON response into out.
func WithResult(out any) RequestOption {
	return func(r *resty.Request) {
		r.SetResult(out)
	}
}

// Post sends body to path relative to the base URL. Bodies are sent as JSON
// unless an option says otherwise.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...RequestOption) (*resty.Response, error) {
	req := c.newRequest(ctx)
	if body != nil {
		req.SetBody(body).
			SetHeader("Content-Type", JSONContentType)
	}
	// Options are applied last so they win over the default content type.
	for _, opt := range opts {
		opt(req)
	}
	return c.execute(req, http.MethodPost, path)
}

func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*resty.Response, error) {
	req := c.newRequest(ctx)
	for _, opt := range opts {
		opt(req)
	}
	return c.execute(req, http.MethodGet, path)
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	return c.rest.R().
		SetContext(ctx).
		SetError(&ErrorBody{})
}

func (c *Client) execute(req *resty.Request, method string, path string) (*resty.Response, error) {

	resp, err := req.Execute(method, path)

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).WithError(err).Debugln("API request failed")

		return nil, &NetworkError{
			Method: method,
			Path:   path,
			Err:    err,
		}
	}

	logrus.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"status": resp.StatusCode(),
	}).Debugln("API request completed")

	if !resp.IsSuccess() {
		return resp, newHTTPStatusError(resp)
	}

	return resp, nil
}
