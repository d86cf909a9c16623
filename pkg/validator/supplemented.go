package validator

import (
	"context"
	"strings"
	"time"
)

// --- ansible-lint (supplemented; checkers-only, no fix mode) --------------

type ansibleLintValidator struct {
	base
	command string
}

// NewAnsibleLint wraps ansible-lint. Checkers-only: ansible-lint's own
// --fix mode is considerably more invasive than the other auto-fixers
// wired here (it can restructure playbooks), so auto_fix is accepted
// for interface symmetry but never changes the invocation.
func NewAnsibleLint(runner *Runner, command string) Validator {
	if command == "" {
		command = "ansible-lint"
	}
	return &ansibleLintValidator{base: newBase("ansible-lint", []string{".yml", ".yaml"}, runner), command: command}
}

func (v *ansibleLintValidator) CanHandle(filepath string) bool {
	if !v.canHandleExtension(filepath) {
		return false
	}
	name := strings.ToLower(baseOf(filepath))
	dir := strings.ToLower(dirOf(filepath))
	return strings.Contains(dir, "playbook") || strings.Contains(dir, "ansible") ||
		strings.Contains(name, "playbook")
}

func (v *ansibleLintValidator) IsAvailable(ctx context.Context) bool { return IsAvailableOnPath(v.command) }

func (v *ansibleLintValidator) Validate(ctx context.Context, filepath string, autoFix bool) ValidationResult {
	start := time.Now()
	argv := []string{v.command, filepath, "-p"}

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
			Messages: []string{"Playbook passed ansible-lint"}, DurationMs: ms}
	}

	var errs, warnings []string
	for _, line := range splitLines(out.Stdout) {
		if strings.Contains(line, "[E") {
			errs = append(errs, line)
		} else if strings.Contains(line, "[W") {
			warnings = append(warnings, line)
		}
	}
	if len(errs) == 0 && len(warnings) == 0 {
		errs = splitLines(out.Stdout)
	}

	return ValidationResult{Tool: v.name, Filepath: filepath, Success: false,
		Errors: errs, Warnings: warnings, DurationMs: ms}
}

// --- dockerfile-lint (supplemented; hadolint alternate) --------------------

type dockerfileLintValidator struct {
	base
	command string
}

// NewDockerfileLint wraps dockerfile_lint, a second Dockerfile checker.
// It runs alongside hadolint (GPL, sidecar-routed) on every Dockerfile
// it matches; it is not limited to environments where hadolint is
// unavailable.
func NewDockerfileLint(runner *Runner, command string) Validator {
	if command == "" {
		command = "dockerfile_lint"
	}
	return &dockerfileLintValidator{base: newBase("dockerfile-lint", []string{".dockerfile"}, runner), command: command}
}

func (v *dockerfileLintValidator) CanHandle(filepath string) bool {
	if v.canHandleExtension(filepath) {
		return true
	}
	name := baseOf(filepath)
	return name == "Dockerfile" || name == "ContainerFile"
}

func (v *dockerfileLintValidator) IsAvailable(ctx context.Context) bool { return IsAvailableOnPath(v.command) }

func (v *dockerfileLintValidator) Validate(ctx context.Context, filepath string, autoFix bool) ValidationResult {
	start := time.Now()
	argv := []string{v.command, "-f", filepath, "-j"}

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
			Messages: []string{"Dockerfile passed dockerfile_lint"}, DurationMs: ms}
	}

	var errs, warnings []string
	for _, line := range splitLines(out.Stdout) {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "\"level\":\"error\""), strings.Contains(lower, "error"):
			errs = append(errs, line)
		case strings.Contains(lower, "warn"):
			warnings = append(warnings, line)
		}
	}

	return ValidationResult{Tool: v.name, Filepath: filepath, Success: false,
		Errors: errs, Warnings: warnings, DurationMs: ms}
}

// --- go-vet (new; checkers-only) -------------------------------------------

type goVetValidator struct {
	base
	command string
}

// NewGoVet wraps `go vet` for .go files. New relative to the original
// huskycat roster (which has no Go-specific validator), added so the
// fleet is not purely non-Go. Checkers-only: go vet has no fix mode.
func NewGoVet(runner *Runner, command string) Validator {
	if command == "" {
		command = "go"
	}
	return &goVetValidator{base: newBase("go-vet", []string{".go"}, runner), command: command}
}

func (v *goVetValidator) CanHandle(filepath string) bool       { return v.canHandleExtension(filepath) }
func (v *goVetValidator) IsAvailable(ctx context.Context) bool { return IsAvailableOnPath(v.command) }

func (v *goVetValidator) Validate(ctx context.Context, filepath string, autoFix bool) ValidationResult {
	start := time.Now()
	argv := []string{v.command, "vet", filepath}

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
			Messages: []string{"go vet found no issues"}, DurationMs: ms}
	}

	errs := splitLines(out.Stderr)
	if len(errs) == 0 {
		errs = splitLines(out.Stdout)
	}

	return ValidationResult{Tool: v.name, Filepath: filepath, Success: false, Errors: errs, DurationMs: ms}
}
