package passwords

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/broady/passwords/passwordstest"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// roundTripFunc adapts a function to http.RoundTripper.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newStringResponse(r *http.Request, body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    r,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testEnv struct {
	srv    *passwordstest.Server
	clock  *fakeClock
	client *Client
}

// newEnv starts a fake server and returns an unauthenticated client for it.
func newEnv(t *testing.T, serverOpts []passwordstest.Option, opts ...Option) *testEnv {
	t.Helper()
	srv := passwordstest.New(t, serverOpts...)
	clock := newFakeClock()
	opts = append([]Option{WithClock(clock.Now), WithLogger(discardLogger())}, opts...)
	c, err := New(srv.URL, opts...)
	require.NoError(t, err)
	return &testEnv{srv: srv, clock: clock, client: c}
}

// loggedIn returns a client with an open session as the default user.
func loggedIn(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	env := newEnv(t, nil, opts...)
	require.NoError(t, env.client.Login(context.Background(), passwordstest.Username, passwordstest.Password))
	env.srv.ResetCalls()
	return env
}

func callPaths(calls []passwordstest.Call) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Method + " " + c.Path
	}
	return out
}
