// Package api implements the authenticated request pipeline. Every
// call attaches the stored access token, sends, and on a 401 refreshes
// the token and retries exactly once. All failures leave the pipeline
// as normalized apierr values.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/resio/resio-cli/internal/apierr"
	"github.com/resio/resio-cli/internal/endpoint"
)

// TokenStore is the credential persistence the pipeline depends on.
// *secure.Store satisfies it.
type TokenStore interface {
	SaveToken(token string) error
	GetToken() string
	SaveRefreshToken(token string) error
	GetRefreshToken() string
	ClearTokens()
}

// Hooks observes pipeline activity. Implementations must be safe for
// concurrent use.
type Hooks interface {
	OnRequest(method, url string)
	OnResponse(method, url string, status int, attempt int)
	OnRefresh(ok bool)
}

// nopHooks is used when no observer is configured.
type nopHooks struct{}

func (nopHooks) OnRequest(string, string)            {}
func (nopHooks) OnResponse(string, string, int, int) {}
func (nopHooks) OnRefresh(bool)                      {}

// Options configures a Client. HTTP, Hooks, and Log may be zero.
type Options struct {
	HTTP      *http.Client
	Resolver  *endpoint.Resolver
	Tokens    TokenStore
	Hooks     Hooks
	Log       zerolog.Logger
	UserAgent string
}

// Client is the authenticated HTTP pipeline. It is safe for concurrent
// use; concurrent 401s share a single refresh.
type Client struct {
	http       *http.Client
	resolver   *endpoint.Resolver
	tokens     TokenStore
	hooks      Hooks
	log        zerolog.Logger
	middleware []RequestMiddleware

	refreshGroup singleflight.Group
}

// NewClient builds a Client from options.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTP
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	hooks := opts.Hooks
	if hooks == nil {
		hooks = nopHooks{}
	}
	return &Client{
		http:     httpClient,
		resolver: opts.Resolver,
		tokens:   opts.Tokens,
		hooks:    hooks,
		log:      opts.Log,
		middleware: []RequestMiddleware{
			WithJSONHeaders(),
			WithUserAgent(opts.UserAgent),
			WithRequestID(),
		},
	}
}

// Resolver exposes the endpoint resolver for callers building endpoints.
func (c *Client) Resolver() *endpoint.Resolver {
	return c.resolver
}

// Tokens exposes the underlying token store.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

// Response is a successful (2xx) API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

// Get issues an authenticated GET.
func (c *Client) Get(ctx context.Context, ep endpoint.Endpoint) (*Response, error) {
	return c.Do(ctx, http.MethodGet, ep, nil)
}

// Post issues an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, ep endpoint.Endpoint, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, ep, body)
}

// Put issues an authenticated PUT with a JSON body.
func (c *Client) Put(ctx context.Context, ep endpoint.Endpoint, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPut, ep, body)
}

// Patch issues an authenticated PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, ep endpoint.Endpoint, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, ep, body)
}

// Delete issues an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, ep endpoint.Endpoint) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, ep, nil)
}

// Do runs one request through the pipeline: attach token, send, and on
// a 401 refresh and retry once. The retry's outcome is final.
func (c *Client) Do(ctx context.Context, method string, ep endpoint.Endpoint, body any) (*Response, error) {
	url, err := ep.URL()
	if err != nil {
		return nil, apierr.Unknown(err)
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, apierr.Unknown(err)
		}
	}

	token := c.tokens.GetToken()

	// A token that is demonstrably about to expire gets refreshed up
	// front, saving the round trip that would come back 401.
	if token != "" && tokenNearExpiry(token) && c.tokens.GetRefreshToken() != "" {
		if fresh, err := c.refresh(ctx); err == nil {
			token = fresh
		}
	}

	resp, status, body401, err := c.send(ctx, method, url, payload, token, 1)
	if err != nil {
		return nil, err
	}
	if resp != nil {
		return resp, nil
	}

	// First attempt came back 401. Refresh and retry exactly once;
	// whatever the retry returns stands.
	fresh, refreshErr := c.refresh(ctx)
	if refreshErr != nil {
		c.tokens.ClearTokens()
		return nil, apierr.FromResponse(status, body401)
	}

	resp, _, _, err = c.send(ctx, method, url, payload, fresh, 2)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// send performs one HTTP attempt. It returns (resp, 0, nil, nil) on
// success, (nil, 401, body, nil) when the caller may retry, a
// normalized error for other non-2xx statuses, and a network error
// when no response arrived. Attempt 2 treats 401 as final.
func (c *Client) send(ctx context.Context, method, url string, payload []byte, token string, attempt int) (*Response, int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, 0, nil, apierr.Unknown(err)
	}

	for _, mw := range c.middleware {
		if err := mw(req); err != nil {
			return nil, 0, nil, apierr.Unknown(err)
		}
	}
	if err := WithBearer(token)(req); err != nil {
		return nil, 0, nil, apierr.Unknown(err)
	}

	c.hooks.OnRequest(method, url)

	httpResp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Msg("request transport failure")
		return nil, 0, nil, apierr.Network(err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, 0, nil, apierr.Network(err)
	}

	c.hooks.OnResponse(method, url, httpResp.StatusCode, attempt)

	if httpResp.StatusCode == http.StatusUnauthorized && attempt == 1 {
		return nil, httpResp.StatusCode, respBody, nil
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, 0, nil, apierr.FromResponse(httpResp.StatusCode, respBody)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       respBody,
	}, 0, nil, nil
}
