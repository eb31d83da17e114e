package passwords

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/passwords/passwordstest"
)

func TestLogin(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()

	assert.Equal(t, StateUnauthenticated, env.client.Status())
	_, ok := env.client.Session()
	assert.False(t, ok)

	require.NoError(t, env.client.Login(ctx, passwordstest.Username, passwordstest.Password))

	assert.Equal(t, StateAuthenticated, env.client.Status())
	s, ok := env.client.Session()
	require.True(t, ok)
	assert.Equal(t, env.srv.URL, s.ServerURL)
	assert.Equal(t, passwordstest.Username, s.Username)
	assert.Equal(t, passwordstest.DefaultLifetime, s.KeepAlive)
	assert.Equal(t, env.clock.Now(), s.LastRefresh)
	assert.True(t, env.srv.HasSession(s.Token))

	assert.Equal(t, []string{
		"GET 1.0/session/request",
		"POST 1.0/session/open",
		"POST 1.0/settings/get",
	}, callPaths(env.srv.Calls()))
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name     string
		server   []passwordstest.Option
		password string
	}{
		{name: "wrong password", password: "nope"},
		{name: "challenge required", server: []passwordstest.Option{passwordstest.WithChallenge()}, password: passwordstest.Password},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t, tt.server)
			err := env.client.Login(context.Background(), passwordstest.Username, tt.password)
			require.Error(t, err)
			assert.Equal(t, KindConnectionFailed, KindOf(err))
			assert.Equal(t, StateUnauthenticated, env.client.Status())
			assert.Zero(t, env.srv.OpenSessions())
		})
	}
}

func TestLoginReplacesSession(t *testing.T) {
	env := loggedIn(t)
	first, _ := env.client.Session()

	require.NoError(t, env.client.Login(context.Background(), "bob", "hunter2"))

	second, ok := env.client.Session()
	require.True(t, ok)
	assert.Equal(t, "bob", second.Username)
	assert.NotEqual(t, first.Token, second.Token)
}

func TestRefreshWithinKeepAlive(t *testing.T) {
	env := loggedIn(t)
	before, _ := env.client.Session()

	env.clock.Advance(100 * time.Second)
	require.NoError(t, env.client.Refresh(context.Background()))

	after, _ := env.client.Session()
	assert.Equal(t, before.Token, after.Token)
	assert.Equal(t, env.clock.Now(), after.LastRefresh)
	assert.Equal(t, []string{"GET 1.0/session/keepalive"}, callPaths(env.srv.Calls()))
	assert.Equal(t, StateAuthenticated, env.client.Status())
}

func TestRefreshAfterExpiry(t *testing.T) {
	env := loggedIn(t)
	before, _ := env.client.Session()

	env.clock.Advance(time.Duration(passwordstest.DefaultLifetime+1) * time.Second)
	assert.Equal(t, StateExpired, env.client.Status())

	require.NoError(t, env.client.Refresh(context.Background()))

	after, _ := env.client.Session()
	assert.NotEqual(t, before.Token, after.Token)
	assert.Equal(t, StateAuthenticated, env.client.Status())
	assert.Equal(t, []string{
		"GET 1.0/session/request",
		"POST 1.0/session/open",
		"POST 1.0/settings/get",
	}, callPaths(env.srv.Calls()))
}

func TestKeepAliveRejectedDiscardsSession(t *testing.T) {
	env := loggedIn(t)
	env.srv.ExpireSessions()

	err := env.client.KeepAlive(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindUnauthenticated, KindOf(err))
	assert.Equal(t, StateUnauthenticated, env.client.Status())

	// No silent re-login.
	assert.Equal(t, []string{"GET 1.0/session/keepalive"}, callPaths(env.srv.Calls()))
}

func TestKeepAliveTransportFailureKeepsSession(t *testing.T) {
	broken := errors.New("connection reset")
	var fail bool
	mw := func(next http.RoundTripper) http.RoundTripper {
		return roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if fail {
				return nil, broken
			}
			return next.RoundTrip(r)
		})
	}
	env := loggedIn(t, WithMiddleware(mw))

	fail = true
	err := env.client.KeepAlive(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
	assert.ErrorIs(t, err, broken)
	assert.Equal(t, StateAuthenticated, env.client.Status())
}

func TestKeepAliveWithoutSession(t *testing.T) {
	env := newEnv(t, nil)
	err := env.client.KeepAlive(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Empty(t, env.srv.Calls())
}

func TestResume(t *testing.T) {
	env := loggedIn(t)
	saved, _ := env.client.Session()

	t.Run("within keepalive", func(t *testing.T) {
		c, err := New(env.srv.URL, WithClock(env.clock.Now), WithLogger(discardLogger()))
		require.NoError(t, err)
		env.srv.ResetCalls()
		env.clock.Advance(30 * time.Second)

		require.NoError(t, c.Resume(context.Background(), saved))

		s, _ := c.Session()
		assert.Equal(t, saved.Token, s.Token)
		assert.Equal(t, []string{"GET 1.0/session/keepalive"}, callPaths(env.srv.Calls()))
	})

	t.Run("expired", func(t *testing.T) {
		c, err := New(env.srv.URL, WithClock(env.clock.Now), WithLogger(discardLogger()))
		require.NoError(t, err)
		env.srv.ResetCalls()
		env.clock.Advance(time.Hour)

		require.NoError(t, c.Resume(context.Background(), saved))

		s, _ := c.Session()
		assert.NotEqual(t, saved.Token, s.Token)
		assert.Equal(t, 1, env.srv.CallCount("1.0/session/open"))
		assert.Zero(t, env.srv.CallCount("1.0/session/keepalive"))
	})
}

func TestResumeRejectsForeignState(t *testing.T) {
	env := newEnv(t, nil)
	tests := []struct {
		name  string
		state SessionState
	}{
		{name: "other server", state: SessionState{ServerURL: "https://other.example.com", Username: "a", KeepAlive: 60}},
		{name: "no user", state: SessionState{ServerURL: env.srv.URL, KeepAlive: 60}},
		{name: "no keepalive", state: SessionState{ServerURL: env.srv.URL, Username: "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.client.Resume(context.Background(), tt.state)
			assert.Equal(t, KindInvalidArgument, KindOf(err))
			assert.Equal(t, StateUnauthenticated, env.client.Status())
		})
	}
}

func TestDisconnect(t *testing.T) {
	env := loggedIn(t)
	s, _ := env.client.Session()

	require.NoError(t, env.client.Disconnect(context.Background()))

	assert.Equal(t, StateUnauthenticated, env.client.Status())
	assert.False(t, env.srv.HasSession(s.Token))

	_, err := env.client.Folders().List(context.Background(), FolderDetails{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, KindUnauthenticated, KindOf(err))

	// Disconnecting twice is a no-op.
	assert.NoError(t, env.client.Disconnect(context.Background()))
}

func TestDisconnectFailureStillDiscardsSession(t *testing.T) {
	env := loggedIn(t)
	env.srv.Fail("1.0/session/close", http.StatusInternalServerError, "database is locked")

	err := env.client.Disconnect(context.Background())
	require.Error(t, err)
	ee, ok := IsEndpointError(err)
	require.True(t, ok)
	assert.Equal(t, "database is locked", ee.Message)
	assert.Equal(t, StateUnauthenticated, env.client.Status())
}

func TestSessionTokenSentOnCalls(t *testing.T) {
	env := loggedIn(t)
	s, _ := env.client.Session()

	_, err := env.client.Tags().List(context.Background(), TagDetails{})
	require.NoError(t, err)

	calls := env.srv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, s.Token, calls[0].Token)
}

func TestSessionStateExpired(t *testing.T) {
	base := time.Unix(1_700_000_000, 0)
	s := SessionState{KeepAlive: 60, LastRefresh: base}

	assert.False(t, s.Expired(base.Add(60*time.Second)))
	assert.True(t, s.Expired(base.Add(61*time.Second)))
	assert.Equal(t, time.Minute, s.KeepAliveInterval())
}
