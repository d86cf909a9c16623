package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverFiles_SingleFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "main.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0644))

	files, err := DiscoverFiles([]string{path})
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestDiscoverFiles_WalksDirectoriesRecursively(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "a.py"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "sub", "b.py"), []byte(""), 0644))

	files, err := DiscoverFiles([]string{tmp})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDiscoverFiles_SkipsVendorAndHiddenDirs(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "vendor"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, ".git"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "vendor", "dep.py"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".git", "config"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "main.py"), []byte(""), 0644))

	files, err := DiscoverFiles([]string{tmp})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(tmp, "main.py")}, files)
}

func TestDiscoverFiles_DeduplicatesRepeatedPaths(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "main.py")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	files, err := DiscoverFiles([]string{path, path})
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestDiscoverFiles_MissingPathErrors(t *testing.T) {
	_, err := DiscoverFiles([]string{"/nonexistent/path/here"})
	require.Error(t, err)
}
