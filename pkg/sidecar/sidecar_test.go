package sidecar

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsGPLTool(t *testing.T) {
	assert.True(t, IsGPLTool("yamllint"))
	assert.True(t, IsGPLTool("hadolint"))
	assert.True(t, IsGPLTool("shellcheck"))
	assert.False(t, IsGPLTool("ruff"))
	assert.False(t, IsGPLTool("python-black"))
}

func TestClient_IsAvailable_NoListener(t *testing.T) {
	tmp := t.TempDir()
	c := New(filepath.Join(tmp, "nonexistent.sock"))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.False(t, c.IsAvailable(ctx))
}

func TestClient_IsAvailable_Memoized(t *testing.T) {
	tmp := t.TempDir()
	sockPath := filepath.Join(tmp, "sidecar.sock")

	listener, err := net.Listen("unix", sockPath)
	require.NoError(t, err)
	defer listener.Close()

	c := New(sockPath)
	ctx := context.Background()
	assert.True(t, c.IsAvailable(ctx))

	// Close the listener; a memoized Client must still report available
	// since IsAvailable probes only once per Client lifetime.
	listener.Close()
	assert.True(t, c.IsAvailable(ctx))
}

func TestClient_Run_RoundTrip(t *testing.T) {
	tmp := t.TempDir()
	sockPath := filepath.Join(tmp, "sidecar.sock")

	listener, err := net.Listen("unix", sockPath)
	require.NoError(t, err)
	defer listener.Close()

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		var req Request
		if err := json.NewDecoder(conn).Decode(&req); err != nil {
			return
		}
		resp := Response{ExitCode: 0, Stdout: "ok: " + req.Tool}
		_ = json.NewEncoder(conn).Encode(resp)
	}()

	c := New(sockPath)
	resp, err := c.Run(context.Background(), "yamllint", []string{"yamllint", "file.yaml"}, "", "")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.ExitCode)
	assert.Equal(t, "ok: yamllint", resp.Stdout)
}

func TestNew_UsesEnvVarWhenPathEmpty(t *testing.T) {
	t.Setenv("TOOLMESH_SIDECAR_SOCKET", "/tmp/custom.sock")
	c := New("")
	assert.Equal(t, "/tmp/custom.sock", c.socketPath)
}

func TestNew_FallsBackToDefault(t *testing.T) {
	t.Setenv("TOOLMESH_SIDECAR_SOCKET", "")
	c := New("")
	assert.Equal(t, DefaultSocketPath, c.socketPath)
}

func TestIsRunningInContainer_EnvVar(t *testing.T) {
	t.Setenv("container", "podman")
	assert.True(t, IsRunningInContainer())
}

func TestIsRunningInContainer_MatchesFilesystemMarkers(t *testing.T) {
	t.Setenv("container", "")
	_, dockerenvErr := os.Stat("/.dockerenv")
	_, containerenvErr := os.Stat("/run/.containerenv")
	want := dockerenvErr == nil || containerenvErr == nil
	assert.Equal(t, want, IsRunningInContainer())
}
