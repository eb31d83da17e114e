package sessionstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/passwords"
)

func testState() passwords.SessionState {
	return passwords.SessionState{
		ServerURL:   "https://cloud.example.com",
		Username:    "alice",
		Password:    "correct horse battery staple",
		Token:       "tok-1",
		KeepAlive:   600,
		LastRefresh: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "https://cloud.example.com#alice", Key("https://cloud.example.com/", "alice"))
	assert.Equal(t, Key("https://cloud.example.com", "alice"), KeyOf(testState()))
	assert.NotEqual(t, Key("https://cloud.example.com", "alice"), Key("https://cloud.example.com", "bob"))
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sessions")
	s := NewFileStore(dir)
	ctx := context.Background()
	state := testState()
	key := KeyOf(state)

	_, err := s.Load(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, key, state))
	got, err := s.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, state, got)

	info, err := os.Stat(s.Path(key))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	state.Token = "tok-2"
	require.NoError(t, s.Save(ctx, key, state))
	got, err = s.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got.Token)

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Load(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.Delete(ctx, key))
}

func TestFileStoreFileName(t *testing.T) {
	s := NewFileStore(t.TempDir())
	key := Key("https://cloud.example.com/../../etc", "alice")
	assert.Equal(t, filepath.Dir(s.Path(key)), s.dir)
	assert.Len(t, filepath.Base(s.Path(key)), 64+len(".json"))
}

func TestFileStoreCorrupt(t *testing.T) {
	s := NewFileStore(t.TempDir())
	key := "k"
	require.NoError(t, os.WriteFile(s.Path(key), []byte("{"), 0o600))

	_, err := s.Load(context.Background(), key)
	require.Error(t, err)
	var syntax *json.SyntaxError
	assert.ErrorAs(t, err, &syntax)
}

func TestFileStoreEmptyKey(t *testing.T) {
	s := NewFileStore(t.TempDir())
	ctx := context.Background()
	_, err := s.Load(ctx, "")
	assert.Error(t, err)
	assert.Error(t, s.Save(ctx, "", testState()))
	assert.Error(t, s.Delete(ctx, ""))
}
