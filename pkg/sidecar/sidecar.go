// Package sidecar implements the GPL Sidecar client: a small IPC client
// that hands off invocation of GPL-licensed tools (yamllint, hadolint,
// shellcheck) to a separate long-running process over a local
// Unix-domain socket, so the GPL binary is never linked into this
// process. When the sidecar is unreachable, the validator runner
// invokes the tool as a direct subprocess instead.
package sidecar

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/toolmesh/toolmesh/pkg/logger"
)

var log = logger.New("sidecar")

// GPLTools is the fixed set of tools that must route through the
// sidecar when it is available, per spec.md's GPL isolation design.
var GPLTools = map[string]struct{}{
	"yamllint":   {},
	"hadolint":   {},
	"shellcheck": {},
}

// IsGPLTool reports whether name requires sidecar execution.
func IsGPLTool(name string) bool {
	_, ok := GPLTools[name]
	return ok
}

// DefaultSocketPath is where the sidecar listens unless overridden by
// TOOLMESH_SIDECAR_SOCKET.
const DefaultSocketPath = "/run/toolmesh/gpl-sidecar.sock"

// Request is the IPC envelope sent to the sidecar process.
type Request struct {
	Tool string   `json:"tool"`
	Argv []string `json:"argv"`
	Cwd  string   `json:"cwd"`
	Stdin string  `json:"stdin,omitempty"`
}

// Response is the IPC envelope returned by the sidecar process.
type Response struct {
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	Error    string `json:"error,omitempty"`
}

// Client talks to the GPL sidecar over a Unix domain socket.
type Client struct {
	socketPath string

	once      sync.Once
	available bool
}

// New returns a Client bound to socketPath, or DefaultSocketPath /
// TOOLMESH_SIDECAR_SOCKET when socketPath is empty.
func New(socketPath string) *Client {
	if socketPath == "" {
		socketPath = os.Getenv("TOOLMESH_SIDECAR_SOCKET")
	}
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	return &Client{socketPath: socketPath}
}

// IsAvailable probes the socket once per Client lifetime and memoizes
// the result, matching the original's get_gpl_sidecar() once-per-process
// caching.
func (c *Client) IsAvailable(ctx context.Context) bool {
	c.once.Do(func() {
		d := net.Dialer{Timeout: 500 * time.Millisecond}
		conn, err := d.DialContext(ctx, "unix", c.socketPath)
		if err != nil {
			log.Printf("sidecar not available at %s: %v", c.socketPath, err)
			c.available = false
			return
		}
		_ = conn.Close()
		log.Printf("sidecar available at %s", c.socketPath)
		c.available = true
	})
	return c.available
}

// Run sends one tool invocation to the sidecar and returns its result.
func (c *Client) Run(ctx context.Context, tool string, argv []string, cwd string, stdin string) (Response, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return Response{}, fmt.Errorf("sidecar dial: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	enc := json.NewEncoder(conn)
	if err := enc.Encode(Request{Tool: tool, Argv: argv, Cwd: cwd, Stdin: stdin}); err != nil {
		return Response{}, fmt.Errorf("sidecar encode request: %w", err)
	}

	reader := bufio.NewReader(conn)
	var resp Response
	if err := json.NewDecoder(reader).Decode(&resp); err != nil {
		return Response{}, fmt.Errorf("sidecar decode response: %w", err)
	}
	if resp.Error != "" {
		return resp, fmt.Errorf("sidecar: %s", resp.Error)
	}
	return resp, nil
}

// IsRunningInContainer detects whether the current process is inside
// Docker, Podman, or a similar container runtime.
func IsRunningInContainer() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	if os.Getenv("container") != "" {
		return true
	}
	if _, err := os.Stat("/run/.containerenv"); err == nil {
		return true
	}
	return false
}
