// Package middleware provides http.RoundTripper middleware for the
// passwords client. Install it with passwords.WithMiddleware.
package middleware

import (
	"net/http"
	"strings"
)

// Middleware wraps a transport.
type Middleware = func(http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Chain composes middleware into one. The first middleware is the
// outermost and sees the request first.
func Chain(mw ...Middleware) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		for i := len(mw) - 1; i >= 0; i-- {
			next = mw[i](next)
		}
		return next
	}
}

const apiMarker = "/apps/passwords/api/"

// Action returns the API action of a request path with identifiers cut
// off, e.g. "1.0/folder/list" or "1.0/service/favicon". Paths outside the
// API are returned as "other".
func Action(path string) string {
	_, rest, ok := strings.Cut(path, apiMarker)
	if !ok || rest == "" {
		return "other"
	}
	parts := strings.SplitN(rest, "/", 4)
	if len(parts) > 3 {
		parts = parts[:3]
	}
	if len(parts) == 3 && parts[0] == "1.0" && parts[1] == "token" {
		// 1.0/token/{provider}/request
		return "1.0/token/request"
	}
	return strings.Join(parts, "/")
}

func transport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		return http.DefaultTransport
	}
	return next
}
