package api

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestMiddleware mutates an outbound request before it is sent.
type RequestMiddleware func(*http.Request) error

// WithJSONHeaders sets the standard JSON content negotiation headers.
func WithJSONHeaders() RequestMiddleware {
	return func(req *http.Request) error {
		if req.Body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")
		return nil
	}
}

// WithUserAgent sets the User-Agent header when ua is non-empty.
func WithUserAgent(ua string) RequestMiddleware {
	return func(req *http.Request) error {
		if ua != "" {
			req.Header.Set("User-Agent", ua)
		}
		return nil
	}
}

// WithRequestID tags each request with a unique id for server-side
// correlation.
func WithRequestID() RequestMiddleware {
	return func(req *http.Request) error {
		req.Header.Set("X-Request-Id", uuid.NewString())
		return nil
	}
}

// WithBearer attaches the bearer token. An empty token leaves the
// request unauthenticated and lets the server decide.
func WithBearer(token string) RequestMiddleware {
	return func(req *http.Request) error {
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return nil
	}
}
