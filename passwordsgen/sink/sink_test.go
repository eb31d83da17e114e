package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		path   string
		errMsg string
	}{
		{"folder_gen.go", ""},
		{"a/b/c/file.go", ""},
		{"", "empty"},
		{"/abs/file.go", "absolute paths not allowed"},
		{"C:/file.go", "absolute paths not allowed"},
		{"foo/../bar.go", "path traversal not allowed"},
		{"../bar.go", "path traversal not allowed"},
		{"..", "path traversal not allowed"},
		{"./foo.go", "not clean"},
		{"foo//bar.go", "not clean"},
		{"foo/bar/", "not clean"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestFilesystemSinkWrite(t *testing.T) {
	root := t.TempDir()
	s := NewFilesystemSink(root)
	ctx := context.Background()

	require.NoError(t, s.WriteFile(ctx, "nested/dir/out.go", []byte("package x\n")))
	got, err := os.ReadFile(filepath.Join(root, "nested", "dir", "out.go"))
	require.NoError(t, err)
	assert.Equal(t, "package x\n", string(got))

	require.NoError(t, s.WriteFile(ctx, "nested/dir/out.go", []byte("package y\n")))
	got, err = os.ReadFile(filepath.Join(root, "nested", "dir", "out.go"))
	require.NoError(t, err)
	assert.Equal(t, "package y\n", string(got))

	entries, err := os.ReadDir(filepath.Join(root, "nested", "dir"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestFilesystemSinkMode(t *testing.T) {
	root := t.TempDir()
	s := &FilesystemSink{Root: root, Mode: 0o600, DirMode: 0o700, Overwrite: true}

	require.NoError(t, s.WriteFile(context.Background(), "sub/secret.json", []byte("{}")))
	info, err := os.Stat(filepath.Join(root, "sub", "secret.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	dir, err := os.Stat(filepath.Join(root, "sub"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dir.Mode().Perm())
}

func TestFilesystemSinkNoOverwrite(t *testing.T) {
	root := t.TempDir()
	s := &FilesystemSink{Root: root, Overwrite: false}
	ctx := context.Background()

	require.NoError(t, s.WriteFile(ctx, "once.go", []byte("a")))
	err := s.WriteFile(ctx, "once.go", []byte("b"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	got, err := os.ReadFile(filepath.Join(root, "once.go"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(got))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFilesystemSinkCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewFilesystemSink(t.TempDir()).WriteFile(ctx, "x.go", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFilesystemSinkRemove(t *testing.T) {
	root := t.TempDir()
	s := NewFilesystemSink(root)
	require.NoError(t, s.WriteFile(context.Background(), "gone.json", []byte("{}")))

	require.NoError(t, s.Remove("gone.json"))
	_, err := os.Stat(filepath.Join(root, "gone.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.NoError(t, s.Remove("gone.json"))
	assert.Error(t, s.Remove("../gone.json"))
}

func TestMemorySink(t *testing.T) {
	s := NewMemorySink()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.WriteFile(ctx, fmt.Sprintf("f%d.go", i), []byte{byte(i)}))
		}()
	}
	wg.Wait()

	assert.Len(t, s.Files(), 10)
	assert.Equal(t, "f0.go", s.Paths()[0])
	assert.Equal(t, []byte{3}, s.Get("f3.go"))
	assert.Nil(t, s.Get("missing.go"))

	content := s.Get("f3.go")
	content[0] = 99
	assert.Equal(t, []byte{3}, s.Get("f3.go"))

	assert.Error(t, s.WriteFile(ctx, "/abs.go", nil))
}
