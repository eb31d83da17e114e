package passwords

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorKind classifies a failed call.
type ErrorKind string

const (
	// KindTransport covers network, TLS, timeout and cancellation failures.
	KindTransport ErrorKind = "transport"
	// KindConnectionFailed is returned when a login or re-authentication fails.
	KindConnectionFailed ErrorKind = "connection_failed"
	// KindUnauthenticated is returned for calls made without a live session
	// and for requests the server rejects for lack of one.
	KindUnauthenticated ErrorKind = "unauthenticated"
	// KindEndpoint wraps an *EndpointError: the server rejected the request.
	KindEndpoint ErrorKind = "endpoint"
	// KindDecode means the server answered something we could not parse.
	KindDecode ErrorKind = "decode"
	// KindInvalidArgument is a client-side parameter check failure.
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindInternal        ErrorKind = "internal"
)

// ErrNotAuthenticated is wrapped by errors from calls issued without a session.
var ErrNotAuthenticated = errors.New("no active session")

// Error is the error type returned by every Client method.
type Error struct {
	Kind    ErrorKind
	Op      string // wire path or client operation, e.g. "1.0/folder/delete"
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Op != "" {
		b.WriteString(" ")
		b.WriteString(e.Op)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new client error.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Errorf creates a new client error with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	out := *e
	out.Details = details
	return &out
}

// EndpointError is the structured error object returned by the server.
type EndpointError struct {
	HTTPStatus int    `json:"-"`
	Status     string `json:"status"`
	ID         int64  `json:"id"`
	Message    string `json:"message"`
}

func (e *EndpointError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("server error %d: %s", e.ID, e.Message)
	}
	return "server error: " + e.Message
}

// KindOf returns the kind of err, or "" if err is not a client error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsEndpointError reports whether err carries an error object from the server,
// returning it when it does.
func IsEndpointError(err error) (*EndpointError, bool) {
	var ee *EndpointError
	if errors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}

// wrapError maps an arbitrary error raised while performing op to an *Error.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		if e.Op == "" {
			out := *e
			out.Op = op
			return &out
		}
		return e
	}

	var ee *EndpointError
	if errors.As(err, &ee) {
		kind := KindEndpoint
		if ee.HTTPStatus == http.StatusUnauthorized {
			kind = KindUnauthenticated
		}
		return &Error{Kind: kind, Op: op, Err: ee}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}

	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		details := make(map[string]any, len(valErrs))
		messages := make([]string, 0, len(valErrs))
		for _, ve := range valErrs {
			msg := formatValidationError(ve)
			details[ve.Field()] = msg
			messages = append(messages, ve.Field()+": "+msg)
		}
		return &Error{
			Kind:    KindInvalidArgument,
			Op:      op,
			Message: strings.Join(messages, "; "),
			Details: details,
		}
	}

	return &Error{Kind: KindInternal, Op: op, Err: err}
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", ve.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "url":
		return "must be a valid URL"
	case "hostname", "fqdn":
		return "must be a valid host name"
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
