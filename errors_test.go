package passwords

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"kind only", &Error{Kind: KindInternal}, "internal"},
		{"with op", &Error{Kind: KindDecode, Op: "1.0/folder/list"}, "decode 1.0/folder/list"},
		{"with message", Errorf(KindInvalidArgument, "bad %s", "size"), "invalid_argument: bad size"},
		{"with cause", &Error{Kind: KindTransport, Op: "x", Err: errors.New("reset")}, "transport x: reset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWithDetailCopies(t *testing.T) {
	base := NewError(KindInvalidArgument, "bad")
	withA := base.WithDetail("a", 1)
	withB := withA.WithDetail("b", 2)

	assert.Nil(t, base.Details)
	assert.Equal(t, map[string]any{"a": 1}, withA.Details)
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, withB.Details)
}

func TestWrapError(t *testing.T) {
	type input struct {
		Size int `validate:"min=16"`
	}
	valErr := validator.New().Struct(input{Size: 3})
	require.Error(t, valErr)

	tests := []struct {
		name     string
		input    error
		wantKind ErrorKind
	}{
		{"nil", nil, ""},
		{"client error passthrough", NewError(KindDecode, "x"), KindDecode},
		{"endpoint error", &EndpointError{HTTPStatus: 400, Message: "bad"}, KindEndpoint},
		{"unauthorized endpoint error", &EndpointError{HTTPStatus: 401, Message: "auth"}, KindUnauthenticated},
		{"deadline", context.DeadlineExceeded, KindTransport},
		{"canceled", fmt.Errorf("wrapped: %w", context.Canceled), KindTransport},
		{"validation", valErr, KindInvalidArgument},
		{"other", errors.New("boom"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrapError("op", tt.input)
			if tt.input == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantKind, KindOf(err))
		})
	}
}

func TestWrapErrorValidationDetails(t *testing.T) {
	err := check("op", PartnerQuery{Limit: 1})
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, KindInvalidArgument, e.Kind)
	assert.Equal(t, "op", e.Op)
	assert.Equal(t, "must be at least 5", e.Details["Limit"])
}

func TestProbeError(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   *EndpointError
		absent bool
	}{
		{
			name: "numeric id",
			body: `{"status":"error","id":4711,"message":"Object not found"}`,
			want: &EndpointError{Status: "error", ID: 4711, Message: "Object not found"},
		},
		{
			name: "string id",
			body: `{"status":"error","id":"42","message":"Outdated revision id"}`,
			want: &EndpointError{Status: "error", ID: 42, Message: "Outdated revision id"},
		},
		{name: "missing id", body: `{"status":"error","message":"x"}`, absent: true},
		{name: "record with message field", body: `{"id":"a","label":"x"}`, absent: true},
		{name: "array", body: `[{"status":"error","id":1,"message":"x"}]`, absent: true},
		{name: "not json", body: `<html>`, absent: true},
		{name: "empty", body: ``, absent: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := probeError([]byte(tt.body))
			if tt.absent {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckResponse(t *testing.T) {
	t.Run("error object with 200", func(t *testing.T) {
		err := checkResponse("1.0/x", &response{status: 200, body: []byte(`{"status":"error","id":1,"message":"nope"}`)})
		ee, ok := IsEndpointError(err)
		require.True(t, ok)
		assert.Equal(t, 200, ee.HTTPStatus)
		assert.Equal(t, KindEndpoint, KindOf(err))
	})
	t.Run("plain 500", func(t *testing.T) {
		err := checkResponse("1.0/x", &response{status: 500, body: []byte("oops")})
		ee, ok := IsEndpointError(err)
		require.True(t, ok)
		assert.Equal(t, "oops", ee.Message)
		assert.Equal(t, http.StatusInternalServerError, ee.HTTPStatus)
	})
	t.Run("401", func(t *testing.T) {
		err := checkResponse("1.0/x", &response{status: 401, body: []byte(`{"status":"error","id":0,"message":"Authorization required"}`)})
		assert.Equal(t, KindUnauthenticated, KindOf(err))
	})
	t.Run("success", func(t *testing.T) {
		assert.NoError(t, checkResponse("1.0/x", &response{status: 200, body: []byte(`[]`)}))
	})
}

func TestDecodeFailure(t *testing.T) {
	env := loggedIn(t, WithMiddleware(func(next http.RoundTripper) http.RoundTripper {
		return roundTripFunc(func(r *http.Request) (*http.Response, error) {
			resp, err := next.RoundTrip(r)
			if err == nil && r.URL.Path == apiRoot+"1.0/folder/list" {
				resp.Body.Close()
				resp = newStringResponse(r, `{"not":"a list"}`)
			}
			return resp, err
		})
	}))

	_, err := env.client.Folders().List(context.Background(), FolderDetails{})
	assert.Equal(t, KindDecode, KindOf(err))
}
