package validator

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/toolmesh/toolmesh/pkg/logger"
)

var gplLog = logger.New("validator:gpl")

// --- yamllint (GPL-3.0) -----------------------------------------------

type yamllintValidator struct {
	base
	command string
}

// NewYamllint wraps yamllint. GPL-3.0 licensed; routed through the
// Sidecar when available (see Runner.Exec).
func NewYamllint(runner *Runner, command string) Validator {
	if command == "" {
		command = "yamllint"
	}
	return &yamllintValidator{base: newBase("yamllint", []string{".yaml", ".yml"}, runner), command: command}
}

func (v *yamllintValidator) CanHandle(filepath string) bool       { return v.canHandleExtension(filepath) }
func (v *yamllintValidator) IsAvailable(ctx context.Context) bool { return true }

// autoFixYAML strips trailing whitespace from every line and ensures a
// single trailing newline, writing back only if content changed.
func autoFixYAML(filepath string) bool {
	content, err := os.ReadFile(filepath)
	if err != nil {
		gplLog.Printf("failed to read %s for auto-fix: %v", filepath, err)
		return false
	}
	original := string(content)

	lines := strings.Split(original, "\n")
	hadTrailingNewline := strings.HasSuffix(original, "\n")
	if hadTrailingNewline && len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	fixed := strings.TrimRight(strings.Join(lines, "\n"), "\n")
	if fixed != "" {
		fixed += "\n"
	}

	if fixed == original {
		return false
	}
	if err := os.WriteFile(filepath, []byte(fixed), 0o644); err != nil {
		gplLog.Printf("failed to write auto-fixed %s: %v", filepath, err)
		return false
	}
	return true
}

func (v *yamllintValidator) Validate(ctx context.Context, filepath string, autoFix bool) ValidationResult {
	start := time.Now()

	fixed := false
	if autoFix {
		fixed = autoFixYAML(filepath)
	}

	argv := []string{v.command, "-f", "parsable", filepath}
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
			Messages: []string{"YAML is valid"}, Fixed: fixed, DurationMs: ms}
	}

	var errs, warnings []string
	for _, line := range splitLines(out.Stdout) {
		switch {
		case strings.Contains(line, "[error]"):
			errs = append(errs, line)
		case strings.Contains(line, "[warning]"):
			warnings = append(warnings, line)
		}
	}

	return ValidationResult{Tool: v.name, Filepath: filepath, Success: false,
		Errors: errs, Warnings: warnings, DurationMs: ms}
}

// --- shellcheck (GPL-3.0) -----------------------------------------------

type shellcheckValidator struct {
	base
	command string
}

// NewShellcheck wraps Shellcheck, GPL-3.0 licensed and sidecar-routed.
func NewShellcheck(runner *Runner, command string) Validator {
	if command == "" {
		command = "shellcheck"
	}
	return &shellcheckValidator{
		base:    newBase("shellcheck", []string{".sh", ".bash", ".zsh", ".ksh"}, runner),
		command: command,
	}
}

func (v *shellcheckValidator) CanHandle(filepath string) bool       { return v.canHandleExtension(filepath) }
func (v *shellcheckValidator) IsAvailable(ctx context.Context) bool { return true }

func (v *shellcheckValidator) Validate(ctx context.Context, filepath string, autoFix bool) ValidationResult {
	start := time.Now()
	argv := []string{v.command, "-f", "json", filepath}

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
			Messages: []string{"Shell script is valid"}, DurationMs: ms}
	}

	var errs, warnings []string
	if out.Stdout != "" {
		var issues []struct {
			Line    int    `json:"line"`
			Message string `json:"message"`
			Level   string `json:"level"`
		}
		if err := json.Unmarshal([]byte(out.Stdout), &issues); err == nil {
			for _, issue := range issues {
				msg := "Line " + strconv.Itoa(issue.Line) + ": " + issue.Message
				if issue.Level == "error" {
					errs = append(errs, msg)
				} else {
					warnings = append(warnings, msg)
				}
			}
		} else {
			errs = splitLines(out.Stdout)
		}
	}

	return ValidationResult{Tool: v.name, Filepath: filepath, Success: false,
		Errors: errs, Warnings: warnings, DurationMs: ms}
}

// --- hadolint (GPL-3.0) -----------------------------------------------

type hadolintValidator struct {
	base
	command string
}

// NewHadolint wraps Hadolint, the Dockerfile linter. GPL-3.0 licensed
// and sidecar-routed.
func NewHadolint(runner *Runner, command string) Validator {
	if command == "" {
		command = "hadolint"
	}
	return &hadolintValidator{base: newBase("hadolint", []string{".dockerfile"}, runner), command: command}
}

func (v *hadolintValidator) CanHandle(filepath string) bool {
	if v.canHandleExtension(filepath) {
		return true
	}
	name := baseOf(filepath)
	return name == "Dockerfile" || name == "ContainerFile"
}

func (v *hadolintValidator) IsAvailable(ctx context.Context) bool { return true }

func (v *hadolintValidator) Validate(ctx context.Context, filepath string, autoFix bool) ValidationResult {
	start := time.Now()
	argv := []string{v.command, filepath}

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
			Messages: []string{"Container file is valid"}, DurationMs: ms}
	}

	var errs, warnings []string
	for _, line := range splitLines(out.Stdout) {
		if !strings.Contains(line, "DL") {
			continue
		}
		if strings.Contains(strings.ToLower(line), "error") {
			errs = append(errs, line)
		} else {
			warnings = append(warnings, line)
		}
	}

	return ValidationResult{Tool: v.name, Filepath: filepath, Success: false,
		Errors: errs, Warnings: warnings, DurationMs: ms}
}
