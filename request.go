package passwords

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	sessionHeader = "X-API-SESSION"
	maxBodySize   = 32 << 20
)

type request struct {
	method string
	path   string // relative to the api root, e.g. "1.0/folder/list"
	query  url.Values
	body   any

	username string
	password string
	token    string
}

func (r *request) withSession(s *SessionState) *request {
	r.username = s.Username
	r.password = s.Password
	r.token = s.Token
	return r
}

// response is the raw outcome of a request that reached the server.
type response struct {
	status int
	header http.Header
	body   []byte
}

// send performs one HTTP round trip. Errors are transport errors only.
func (c *Client) send(ctx context.Context, r *request) (*response, error) {
	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, &Error{Kind: KindInternal, Op: r.path, Message: "encode request", Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.apiURL(r.path, r.query), body)
	if err != nil {
		return nil, &Error{Kind: KindInternal, Op: r.path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("OCS-APIRequest", "true")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set(sessionHeader, r.token)
	}
	if r.username != "" {
		req.SetBasicAuth(r.username, r.password)
	}

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: r.path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: r.path, Message: "read response", Err: err}
	}

	c.logger.DebugContext(ctx, "passwords call",
		slog.String("method", r.method),
		slog.String("path", r.path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", c.now().Sub(start)),
	)

	return &response{status: resp.StatusCode, header: resp.Header, body: data}, nil
}

// do sends r and decodes the JSON success payload into out (if non-nil).
func (c *Client) do(ctx context.Context, r *request, out any) (*response, error) {
	resp, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	if err := checkResponse(r.path, resp); err != nil {
		return resp, err
	}
	if out == nil {
		return resp, nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return resp, &Error{Kind: KindDecode, Op: r.path, Err: err}
	}
	return resp, nil
}

// call issues an authenticated JSON call using the current session.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	s := c.snapshot()
	if s == nil {
		return &Error{Kind: KindUnauthenticated, Op: path, Err: ErrNotAuthenticated}
	}
	r := &request{method: method, path: path, body: body}
	_, err := c.do(ctx, r.withSession(s), out)
	return err
}

// callQuery is call for GET endpoints taking url query parameters.
func (c *Client) callQuery(ctx context.Context, path string, query url.Values, out any) error {
	s := c.snapshot()
	if s == nil {
		return &Error{Kind: KindUnauthenticated, Op: path, Err: ErrNotAuthenticated}
	}
	r := &request{method: http.MethodGet, path: path, query: query}
	_, err := c.do(ctx, r.withSession(s), out)
	return err
}

// callBytes issues an authenticated GET and returns the raw body.
func (c *Client) callBytes(ctx context.Context, path string) ([]byte, error) {
	s := c.snapshot()
	if s == nil {
		return nil, &Error{Kind: KindUnauthenticated, Op: path, Err: ErrNotAuthenticated}
	}
	r := &request{method: http.MethodGet, path: path}
	resp, err := c.do(ctx, r.withSession(s), nil)
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}

// checkResponse probes the body for the server error object before the
// caller treats it as a success payload.
func checkResponse(op string, resp *response) error {
	if ee := probeError(resp.body); ee != nil {
		ee.HTTPStatus = resp.status
		return wrapError(op, ee)
	}
	if resp.status >= 200 && resp.status < 300 {
		return nil
	}
	msg := strings.TrimSpace(string(resp.body))
	if msg == "" || len(msg) > 200 {
		msg = http.StatusText(resp.status)
	}
	return wrapError(op, &EndpointError{HTTPStatus: resp.status, Message: msg})
}

// probeError returns the error object if body has the {status, id, message} shape.
func probeError(body []byte) *EndpointError {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil
	}
	rawStatus, ok1 := fields["status"]
	rawID, ok2 := fields["id"]
	rawMessage, ok3 := fields["message"]
	if !ok1 || !ok2 || !ok3 {
		return nil
	}

	var ee EndpointError
	if json.Unmarshal(rawStatus, &ee.Status) != nil || json.Unmarshal(rawMessage, &ee.Message) != nil {
		return nil
	}
	id, err := decodeErrorID(rawID)
	if err != nil {
		return nil
	}
	ee.ID = id
	return &ee
}

func decodeErrorID(raw json.RawMessage) (int64, error) {
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.New("error id is not numeric")
	}
	return n, nil
}
