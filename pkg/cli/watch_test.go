package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirsToWatch_FileResolvesToParent(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "main.py")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	dirs, err := dirsToWatch([]string{path})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Clean(tmp)}, dirs)
}

func TestDirsToWatch_DirectoryStaysAsIs(t *testing.T) {
	tmp := t.TempDir()

	dirs, err := dirsToWatch([]string{tmp})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Clean(tmp)}, dirs)
}

func TestDirsToWatch_DeduplicatesSharedParent(t *testing.T) {
	tmp := t.TempDir()
	a := filepath.Join(tmp, "a.py")
	b := filepath.Join(tmp, "b.py")
	require.NoError(t, os.WriteFile(a, []byte(""), 0644))
	require.NoError(t, os.WriteFile(b, []byte(""), 0644))

	dirs, err := dirsToWatch([]string{a, b})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Clean(tmp)}, dirs)
}

func TestDirsToWatch_MissingPathErrors(t *testing.T) {
	_, err := dirsToWatch([]string{"/nonexistent/path/here"})
	require.Error(t, err)
}
