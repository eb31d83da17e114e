package sessionstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/broady/passwords"
	"github.com/broady/passwords/passwordsgen/sink"
)

// FileStore keeps one JSON file per key in a directory. Files are written
// atomically with mode 0600 because they hold the account password.
type FileStore struct {
	dir  string
	sink *sink.FilesystemSink
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store rooted at dir. The directory is created on
// first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:  dir,
		sink: &sink.FilesystemSink{Root: dir, Mode: 0o600, DirMode: 0o700, Overwrite: true},
	}
}

// DefaultDir returns the per-user directory sessions are kept in.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "passwords", "sessions"), nil
}

func fileName(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:]) + ".json"
}

// Path returns the file a key is stored in.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, fileName(key))
}

func (s *FileStore) Load(ctx context.Context, key string) (passwords.SessionState, error) {
	var state passwords.SessionState
	if err := checkKey(key); err != nil {
		return state, err
	}
	if err := ctx.Err(); err != nil {
		return state, err
	}
	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return state, ErrNotFound
	}
	if err != nil {
		return state, fmt.Errorf("sessionstore: read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return state, fmt.Errorf("sessionstore: decode %s: %w", key, err)
	}
	return state, nil
}

func (s *FileStore) Save(ctx context.Context, key string, state passwords.SessionState) error {
	if err := checkKey(key); err != nil {
		return err
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("sessionstore: encode %s: %w", key, err)
	}
	if err := s.sink.WriteFile(ctx, fileName(key), data); err != nil {
		return fmt.Errorf("sessionstore: write %s: %w", key, err)
	}
	return nil
}

// Delete removes the stored session. Deleting a missing key is not an error.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.sink.Remove(fileName(key))
}
