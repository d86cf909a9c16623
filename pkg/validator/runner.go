package validator

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/toolmesh/toolmesh/pkg/logger"
	"github.com/toolmesh/toolmesh/pkg/sidecar"
)

var runnerLog = logger.New("validator:runner")

// DefaultTimeout bounds every single tool invocation, matching spec.md
// §7's 30 second ceiling.
const DefaultTimeout = 30 * time.Second

// CommandOutcome is the raw result of invoking an external tool,
// before a concrete validator maps it into a ValidationResult.
type CommandOutcome struct {
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
	Err      error
}

// Runner executes one tool invocation, routing GPL tools through the
// sidecar when available, falling back to a direct subprocess
// otherwise. It is shared by all concrete validators.
type Runner struct {
	sidecar *sidecar.Client
	timeout time.Duration
}

// NewRunner constructs a Runner. sc may be nil, in which case every
// invocation goes straight to a subprocess.
func NewRunner(sc *sidecar.Client) *Runner {
	return &Runner{sidecar: sc, timeout: DefaultTimeout}
}

// Exec runs tool with argv in cwd, routing per spec.md §7: GPL tools
// use the sidecar when it is available; otherwise, or when the sidecar
// call fails, invocation proceeds as a direct subprocess. Container
// state is not consulted.
func (r *Runner) Exec(ctx context.Context, tool string, argv []string, cwd string) CommandOutcome {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if sidecar.IsGPLTool(tool) && r.sidecar != nil && r.sidecar.IsAvailable(ctx) {
		resp, err := r.sidecar.Run(ctx, tool, argv, cwd, "")
		if err != nil {
			runnerLog.Printf("%s: sidecar exec failed, falling back to subprocess: %v", tool, err)
		} else {
			return CommandOutcome{ExitCode: resp.ExitCode, Stdout: resp.Stdout, Stderr: resp.Stderr}
		}
	}

	return r.execSubprocess(ctx, argv, cwd)
}

func (r *Runner) execSubprocess(ctx context.Context, argv []string, cwd string) CommandOutcome {
	if len(argv) == 0 {
		return CommandOutcome{ExitCode: -1, Err: errEmptyArgv}
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = cwd

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	outcome := CommandOutcome{Stdout: stdout.String(), Stderr: stderr.String()}

	if ctx.Err() == context.DeadlineExceeded {
		outcome.TimedOut = true
		outcome.ExitCode = -1
		return outcome
	}

	if err == nil {
		outcome.ExitCode = 0
		return outcome
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		outcome.ExitCode = exitErr.ExitCode()
		return outcome
	}

	outcome.ExitCode = -1
	outcome.Err = err
	return outcome
}

// IsAvailableOnPath reports whether binary resolves on PATH.
func IsAvailableOnPath(binary string) bool {
	_, err := exec.LookPath(binary)
	return err == nil
}

var errEmptyArgv = &argvError{"empty argv"}

type argvError struct{ msg string }

func (e *argvError) Error() string { return e.msg }
