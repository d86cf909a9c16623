package tty

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTerminal_RegularFileIsNotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "not-a-tty")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f))
}

func TestAccessible_RespectsEnvVar(t *testing.T) {
	t.Setenv("ACCESSIBLE", "")
	assert.False(t, Accessible())

	t.Setenv("ACCESSIBLE", "1")
	assert.True(t, Accessible())
}

func TestSize_FallsBackForNonTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "not-a-tty")
	require.NoError(t, err)
	defer f.Close()

	w, h := Size(f)
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)
}

func TestStdoutStderr_ReflectRedirection(t *testing.T) {
	// os.Stdout/os.Stderr are redirected to a file under "go test",
	// so these must report false rather than panicking.
	assert.False(t, Stdout())
	assert.False(t, Stderr())
}
