package passwords

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadServerURL(t *testing.T) {
	for _, raw := range []string{"", "cloud.example.com", "ftp://cloud.example.com", "https://", "://"} {
		t.Run(raw, func(t *testing.T) {
			_, err := New(raw)
			require.Error(t, err)
			assert.Equal(t, KindInvalidArgument, KindOf(err))
		})
	}
}

func TestAPIURL(t *testing.T) {
	tests := []struct {
		server string
		path   string
		query  url.Values
		want   string
	}{
		{"https://cloud.example.com", "1.0/folder/list", nil, "https://cloud.example.com/index.php/apps/passwords/api/1.0/folder/list"},
		{"https://cloud.example.com/", "1.0/folder/list", nil, "https://cloud.example.com/index.php/apps/passwords/api/1.0/folder/list"},
		{"https://example.com/nextcloud", "1.0/session/open", nil, "https://example.com/nextcloud/index.php/apps/passwords/api/1.0/session/open"},
		{"https://example.com", "1.0/share/partners", url.Values{"limit": {"10"}}, "https://example.com/index.php/apps/passwords/api/1.0/share/partners?limit=10"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			c, err := New(tt.server)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.apiURL(tt.path, tt.query))
		})
	}
}

func TestMiddlewareOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.RoundTripper) http.RoundTripper {
		return func(next http.RoundTripper) http.RoundTripper {
			return roundTripFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}

	env := newEnv(t, nil, WithMiddleware(mark("outer"), mark("inner")))
	_, err := env.client.send(context.Background(), &request{method: http.MethodGet, path: "1.0/session/request"})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	capture := func(next http.RoundTripper) http.RoundTripper {
		return roundTripFunc(func(r *http.Request) (*http.Response, error) {
			got = r.Header.Clone()
			return next.RoundTrip(r)
		})
	}
	env := newEnv(t, nil, WithMiddleware(capture), WithUserAgent("test-agent"))

	_, err := env.client.send(context.Background(), &request{
		method:   http.MethodPost,
		path:     "1.0/session/open",
		body:     struct{}{},
		username: "u",
		password: "p",
		token:    "tok",
	})
	require.NoError(t, err)

	assert.Equal(t, "test-agent", got.Get("User-Agent"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "tok", got.Get(sessionHeader))
	assert.Equal(t, "true", got.Get("OCS-APIRequest"))
	assert.Contains(t, got.Get("Authorization"), "Basic ")
}

func TestClientString(t *testing.T) {
	c, err := New("https://cloud.example.com/")
	require.NoError(t, err)
	assert.Equal(t, "passwords.Client(https://cloud.example.com)", c.String())
	assert.Equal(t, "https://cloud.example.com", c.ServerURL())
}
