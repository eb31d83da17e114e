// Package sessionstore persists passwords.SessionState between process runs
// so a CLI can resume a session instead of prompting for credentials.
package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/broady/passwords"
)

// ErrNotFound is returned by Load when nothing is stored under a key.
var ErrNotFound = errors.New("sessionstore: session not found")

// Store saves and restores session state by key.
type Store interface {
	Load(ctx context.Context, key string) (passwords.SessionState, error)
	Save(ctx context.Context, key string, state passwords.SessionState) error
	Delete(ctx context.Context, key string) error
}

// Key identifies the session of one user on one server.
func Key(serverURL, username string) string {
	return strings.TrimRight(serverURL, "/") + "#" + username
}

// KeyOf returns the key a session state is stored under.
func KeyOf(state passwords.SessionState) string {
	return Key(state.ServerURL, state.Username)
}

func checkKey(key string) error {
	if key == "" {
		return fmt.Errorf("sessionstore: empty key")
	}
	return nil
}
