package passwords

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// State is the lifecycle state of a Client's session.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateExpired:
		return "expired"
	default:
		return "unauthenticated"
	}
}

// SessionState is everything needed to resume a session later without
// prompting for credentials again.
type SessionState struct {
	ServerURL   string    `json:"server_url"`
	Username    string    `json:"username"`
	Password    string    `json:"password"`
	Token       string    `json:"token"`
	KeepAlive   int64     `json:"keepalive"` // seconds
	LastRefresh time.Time `json:"last_refresh"`
}

// KeepAliveInterval returns the keepalive interval as a duration.
func (s SessionState) KeepAliveInterval() time.Duration {
	return time.Duration(s.KeepAlive) * time.Second
}

// Expired reports whether more than the keepalive interval has passed
// since the last refresh.
func (s SessionState) Expired(now time.Time) bool {
	return now.Sub(s.LastRefresh) > s.KeepAliveInterval()
}

const (
	pathSessionRequest   = "1.0/session/request"
	pathSessionOpen      = "1.0/session/open"
	pathSessionKeepAlive = "1.0/session/keepalive"
	pathSessionClose     = "1.0/session/close"

	settingSessionLifetime = "user.session.lifetime"
)

type successResponse struct {
	Success bool `json:"success"`
}

// snapshot returns the current session, or nil when unauthenticated.
// The returned value is never mutated; transitions replace it.
func (c *Client) snapshot() *SessionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *Client) setSession(s *SessionState) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
}

// Status reports the lifecycle state of the session.
func (c *Client) Status() State {
	s := c.snapshot()
	switch {
	case s == nil:
		return StateUnauthenticated
	case s.Expired(c.now()):
		return StateExpired
	default:
		return StateAuthenticated
	}
}

// Session returns a copy of the current session state for persistence.
func (c *Client) Session() (SessionState, bool) {
	s := c.snapshot()
	if s == nil {
		return SessionState{}, false
	}
	return *s, true
}

// Login opens a new session with the given credentials, replacing any
// existing one. On failure the client is left unauthenticated.
func (c *Client) Login(ctx context.Context, username, password string) error {
	c.transition.Lock()
	defer c.transition.Unlock()
	return c.login(ctx, username, password)
}

func (c *Client) login(ctx context.Context, username, password string) error {
	c.setSession(nil)

	s, err := c.open(ctx, username, password)
	if err != nil {
		c.logger.WarnContext(ctx, "login failed",
			slog.String("server", c.base.String()),
			slog.String("user", username),
			slog.Any("error", err),
		)
		return err
	}
	c.setSession(s)
	c.logger.InfoContext(ctx, "session opened",
		slog.String("server", c.base.String()),
		slog.String("user", username),
		slog.Int64("keepalive", s.KeepAlive),
	)
	return nil
}

// open runs the login handshake and returns the new session. Every failure
// is reported as a connection failure.
func (c *Client) open(ctx context.Context, username, password string) (*SessionState, error) {
	fail := func(err error) error {
		return &Error{Kind: KindConnectionFailed, Op: "login", Err: err}
	}

	var requirements map[string]json.RawMessage
	req := &request{method: http.MethodGet, path: pathSessionRequest, username: username, password: password}
	if _, err := c.do(ctx, req, &requirements); err != nil {
		return nil, fail(err)
	}
	for _, key := range []string{"challenge", "token"} {
		if raw, ok := requirements[key]; ok && string(raw) != "null" && string(raw) != "[]" {
			return nil, fail(Errorf(KindInvalidArgument, "server requires %s login, which is not supported", key))
		}
	}

	var opened successResponse
	req = &request{method: http.MethodPost, path: pathSessionOpen, body: struct{}{}, username: username, password: password}
	resp, err := c.do(ctx, req, &opened)
	if err != nil {
		return nil, fail(err)
	}
	if !opened.Success {
		return nil, fail(NewError(KindEndpoint, "server refused to open session"))
	}
	token := resp.header.Get(sessionHeader)
	if token == "" {
		return nil, fail(NewError(KindDecode, "no session token in response"))
	}

	var lifetime map[string]int64
	req = &request{
		method:   http.MethodPost,
		path:     pathSettingsGet,
		body:     []string{settingSessionLifetime},
		username: username,
		password: password,
		token:    token,
	}
	if _, err := c.do(ctx, req, &lifetime); err != nil {
		return nil, fail(err)
	}
	keepalive, ok := lifetime[settingSessionLifetime]
	if !ok || keepalive <= 0 {
		return nil, fail(NewError(KindDecode, "server did not report "+settingSessionLifetime))
	}

	return &SessionState{
		ServerURL:   c.base.String(),
		Username:    username,
		Password:    password,
		Token:       token,
		KeepAlive:   keepalive,
		LastRefresh: c.now(),
	}, nil
}

// Refresh keeps the session valid. Within the keepalive interval it sends a
// single keepalive call and keeps the token; past it, it logs in again with
// the stored credentials and obtains a new token.
func (c *Client) Refresh(ctx context.Context) error {
	c.transition.Lock()
	defer c.transition.Unlock()
	return c.refresh(ctx)
}

func (c *Client) refresh(ctx context.Context) error {
	s := c.snapshot()
	if s == nil {
		return &Error{Kind: KindUnauthenticated, Op: "refresh", Err: ErrNotAuthenticated}
	}
	if s.Expired(c.now()) {
		c.logger.InfoContext(ctx, "session expired, re-authenticating",
			slog.String("server", s.ServerURL),
			slog.String("user", s.Username),
		)
		return c.login(ctx, s.Username, s.Password)
	}
	return c.keepAlive(ctx, s)
}

// KeepAlive pings the server to extend the current session. A rejected
// keepalive ends the session locally; it is never retried.
func (c *Client) KeepAlive(ctx context.Context) error {
	c.transition.Lock()
	defer c.transition.Unlock()

	s := c.snapshot()
	if s == nil {
		return &Error{Kind: KindUnauthenticated, Op: pathSessionKeepAlive, Err: ErrNotAuthenticated}
	}
	return c.keepAlive(ctx, s)
}

func (c *Client) keepAlive(ctx context.Context, s *SessionState) error {
	var out successResponse
	req := (&request{method: http.MethodGet, path: pathSessionKeepAlive}).withSession(s)
	_, err := c.do(ctx, req, &out)
	if err == nil && !out.Success {
		err = &Error{Kind: KindUnauthenticated, Op: pathSessionKeepAlive, Message: "keepalive rejected"}
	}
	if err != nil {
		if k := KindOf(err); k == KindUnauthenticated || k == KindEndpoint {
			c.setSession(nil)
		}
		c.logger.WarnContext(ctx, "keepalive failed", slog.Any("error", err))
		return err
	}

	next := *s
	next.LastRefresh = c.now()
	c.setSession(&next)
	return nil
}

// Resume installs a previously persisted session and refreshes it.
func (c *Client) Resume(ctx context.Context, state SessionState) error {
	if state.ServerURL != c.base.String() {
		return Errorf(KindInvalidArgument, "session belongs to %q, client is for %q", state.ServerURL, c.base.String())
	}
	if state.Username == "" || state.KeepAlive <= 0 {
		return NewError(KindInvalidArgument, "incomplete session state")
	}

	c.transition.Lock()
	defer c.transition.Unlock()

	s := state
	c.setSession(&s)
	return c.refresh(ctx)
}

// Disconnect closes the session on the server. The local session is
// discarded even when closing fails; the failure is still returned.
func (c *Client) Disconnect(ctx context.Context) error {
	c.transition.Lock()
	defer c.transition.Unlock()

	s := c.snapshot()
	if s == nil {
		return nil
	}
	c.setSession(nil)

	var out successResponse
	req := (&request{method: http.MethodGet, path: pathSessionClose}).withSession(s)
	_, err := c.do(ctx, req, &out)
	if err == nil && !out.Success {
		err = &Error{Kind: KindEndpoint, Op: pathSessionClose, Message: "server refused to close session"}
	}
	if err != nil {
		c.logger.WarnContext(ctx, "session close failed", slog.Any("error", err))
		return err
	}
	c.logger.InfoContext(ctx, "session closed", slog.String("user", s.Username))
	return nil
}
