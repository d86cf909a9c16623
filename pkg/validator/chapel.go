package validator

import (
	"context"
	"time"
)

// chapelValidator formats Chapel source via an external `chapel-format`
// binary. The original wraps a bespoke in-process Python formatter;
// that formatter's internal rule logic is out of scope here (Non-goal:
// no tool's analysis logic is reimplemented), so this validator instead
// shells out to an external tool the same way every other validator
// does, rather than porting formatting rules into Go.
type chapelValidator struct {
	base
	command string
}

// NewChapel wraps an external `chapel-format` binary for .chpl files.
func NewChapel(runner *Runner, command string) Validator {
	if command == "" {
		command = "chapel-format"
	}
	return &chapelValidator{base: newBase("chapel", []string{".chpl"}, runner), command: command}
}

func (v *chapelValidator) CanHandle(filepath string) bool       { return v.canHandleExtension(filepath) }
func (v *chapelValidator) IsAvailable(ctx context.Context) bool { return IsAvailableOnPath(v.command) }

func (v *chapelValidator) Validate(ctx context.Context, filepath string, autoFix bool) ValidationResult {
	start := time.Now()
	argv := []string{v.command, "--check", filepath}
	if autoFix {
		argv = []string{v.command, "--write", filepath}
	}

	out := v.runner.Exec(ctx, v.name, argv, "")
	ms := elapsedMs(start)

	if out.TimedOut {
		return timeoutResult(v.name, filepath, ms)
	}
	if out.Err != nil {
		return errResult(v.name, filepath, out.Err, ms)
	}
	if out.ExitCode == 0 {
		return ValidationResult{Tool: v.name, Filepath: filepath, Success: true,
			Messages: []string{"Chapel code formatted"}, Fixed: autoFix, DurationMs: ms}
	}

	return ValidationResult{Tool: v.name, Filepath: filepath, Success: false,
		Errors: splitLines(out.Stdout), Messages: []string{"Chapel formatting issues found"}, DurationMs: ms}
}
