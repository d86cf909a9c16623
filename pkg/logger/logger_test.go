package logger

import (
	"bufio"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPattern(t *testing.T) {
	assert.True(t, matchPattern("validator:runner", "*"))
	assert.True(t, matchPattern("validator:runner", "validator:runner"))
	assert.True(t, matchPattern("validator:runner", "validator:*"))
	assert.True(t, matchPattern("validator:runner", "*:runner"))
	assert.True(t, matchPattern("validator:runner", "val*runner"))
	assert.False(t, matchPattern("validator:runner", "sidecar:*"))
	assert.False(t, matchPattern("validator:runner", "validator:exec"))
}

func TestComputeEnabled_RespectsExclusions(t *testing.T) {
	old := debugEnv
	defer func() { debugEnv = old }()

	debugEnv = "validator:*,-validator:skip"
	assert.True(t, computeEnabled("validator:runner"))
	assert.False(t, computeEnabled("validator:skip"))
	assert.False(t, computeEnabled("sidecar:client"))
}

func TestComputeEnabled_EmptyDisablesEverything(t *testing.T) {
	old := debugEnv
	defer func() { debugEnv = old }()

	debugEnv = ""
	assert.False(t, computeEnabled("anything"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500ns", formatDuration(500*time.Nanosecond))
	assert.Equal(t, "5ms", formatDuration(5*time.Millisecond))
	assert.Equal(t, "1.5s", formatDuration(1500*time.Millisecond))
}

func TestLogger_Enabled_FollowsNamespaceMatch(t *testing.T) {
	old := debugEnv
	defer func() { debugEnv = old }()

	debugEnv = "validator:*"
	l := New("validator:runner")
	assert.True(t, l.Enabled())

	l2 := New("sidecar:client")
	assert.False(t, l2.Enabled())
}

func TestLogger_Printf_WritesWhenEnabled(t *testing.T) {
	old := debugEnv
	defer func() { debugEnv = old }()
	debugEnv = "test:*"

	l := New("test:printf")

	r, w, err := os.Pipe()
	require.NoError(t, err)
	origStderr := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = origStderr }()

	l.Printf("hello %s", "world")
	w.Close()

	reader := bufio.NewReader(r)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, "test:printf")
	assert.Contains(t, line, "hello world")
}

func TestLogger_Printf_SilentWhenDisabled(t *testing.T) {
	old := debugEnv
	defer func() { debugEnv = old }()
	debugEnv = ""

	l := New("test:silent")
	assert.False(t, l.Enabled())

	r, w, err := os.Pipe()
	require.NoError(t, err)
	origStderr := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = origStderr }()

	l.Printf("should not appear")
	w.Close()

	buf := make([]byte, 1)
	n, _ := r.Read(buf)
	assert.Equal(t, 0, n)
}
