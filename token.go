package passwords

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// TokenResponse is the answer to a token request. Data is provider specific.
type TokenResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// TokenAPI triggers second factor token delivery.
type TokenAPI struct {
	c *Client
}

// Tokens returns the token API of c.
func (c *Client) Tokens() *TokenAPI {
	return &TokenAPI{c: c}
}

// Request asks provider to deliver a token to the user, e.g. by mail.
// Only call it for the provider the user picked.
func (a *TokenAPI) Request(ctx context.Context, provider string) (*TokenResponse, error) {
	if provider == "" {
		return nil, Errorf(KindInvalidArgument, "token provider is required")
	}
	var out TokenResponse
	path := "1.0/token/" + url.PathEscape(provider) + "/request"
	if err := a.c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
