package validator

import (
	"context"
	"strings"
	"time"
)

// fmtCheckThenFix implements the shared "fmt -check, then fmt" shape
// used by taplo and terraform: a dry-run check, then (if auto_fix) a
// real format pass, then reporting of the first few check-output
// lines when not fixing.
type fmtCheckThenFix struct {
	name        string
	checkArgv   func(command, filepath string) []string
	fixArgv     func(command, filepath string) []string
	okMessage   string
	fixMessage  string
	needsFixMsg string
}

func (s fmtCheckThenFix) run(ctx context.Context, runner *Runner, command, filepath string, autoFix bool) ValidationResult {
	start := time.Now()
	checkOut := runner.Exec(ctx, s.name, s.checkArgv(command, filepath), "")
	ms := elapsedMs(start)

	if checkOut.TimedOut {
		return timeoutResult(s.name, filepath, ms)
	}
	if checkOut.Err != nil {
		return errResult(s.name, filepath, checkOut.Err, ms)
	}
	if checkOut.ExitCode == 0 {
		return ValidationResult{Tool: s.name, Filepath: filepath, Success: true, Messages: []string{s.okMessage}, DurationMs: ms}
	}

	if autoFix {
		fixOut := runner.Exec(ctx, s.name, s.fixArgv(command, filepath), "")
		ms = elapsedMs(start)
		if fixOut.ExitCode == 0 {
			return ValidationResult{Tool: s.name, Filepath: filepath, Success: true, Messages: []string{s.fixMessage}, Fixed: true, DurationMs: ms}
		}
		errOutput := fixOut.Stderr
		if errOutput == "" {
			errOutput = fixOut.Stdout
		}
		var errs []string
		for _, line := range splitLines(errOutput) {
			if strings.TrimSpace(line) != "" {
				errs = append(errs, strings.TrimSpace(line))
			}
		}
		if len(errs) == 0 {
			errs = []string{"Failed to format file"}
		}
		if len(errs) > 10 {
			errs = errs[:10]
		}
		return ValidationResult{Tool: s.name, Filepath: filepath, Success: false, Errors: errs, Messages: []string{s.needsFixMsg}, DurationMs: ms}
	}

	output := checkOut.Stdout
	if output == "" {
		output = checkOut.Stderr
	}
	var messages []string
	for _, line := range splitLines(output) {
		if strings.TrimSpace(line) != "" {
			messages = append(messages, strings.TrimSpace(line))
		}
	}
	if len(messages) > 5 {
		messages = messages[:5]
	}
	if len(messages) == 0 {
		messages = []string{s.needsFixMsg}
	}
	return ValidationResult{Tool: s.name, Filepath: filepath, Success: false,
		Errors: []string{"file is not properly formatted"}, Messages: messages, DurationMs: ms}
}

// --- taplo -----------------------------------------------------------------

type taploValidator struct {
	base
	command string
}

// NewTaplo wraps Taplo, the TOML formatter.
func NewTaplo(runner *Runner, command string) Validator {
	if command == "" {
		command = "taplo"
	}
	return &taploValidator{base: newBase("taplo", []string{".toml"}, runner), command: command}
}

func (v *taploValidator) CanHandle(filepath string) bool       { return v.canHandleExtension(filepath) }
func (v *taploValidator) IsAvailable(ctx context.Context) bool { return IsAvailableOnPath(v.command) }

var taploShape = fmtCheckThenFix{
	name:        "taplo",
	checkArgv:   func(cmd, fp string) []string { return []string{cmd, "fmt", "--check", fp} },
	fixArgv:     func(cmd, fp string) []string { return []string{cmd, "fmt", fp} },
	okMessage:   "TOML file is properly formatted",
	fixMessage:  "Formatted TOML file",
	needsFixMsg: "TOML file needs formatting. Run with --fix to format.",
}

func (v *taploValidator) Validate(ctx context.Context, filepath string, autoFix bool) ValidationResult {
	return taploShape.run(ctx, v.runner, v.command, filepath, autoFix)
}

// --- terraform -----------------------------------------------------------

type terraformValidator struct {
	base
	command string
}

// NewTerraform wraps `terraform fmt`.
func NewTerraform(runner *Runner, command string) Validator {
	if command == "" {
		command = "terraform"
	}
	return &terraformValidator{base: newBase("terraform", []string{".tf", ".tfvars"}, runner), command: command}
}

func (v *terraformValidator) CanHandle(filepath string) bool       { return v.canHandleExtension(filepath) }
func (v *terraformValidator) IsAvailable(ctx context.Context) bool { return IsAvailableOnPath(v.command) }

var terraformShape = fmtCheckThenFix{
	name:        "terraform",
	checkArgv:   func(cmd, fp string) []string { return []string{cmd, "fmt", "-check", fp} },
	fixArgv:     func(cmd, fp string) []string { return []string{cmd, "fmt", fp} },
	okMessage:   "Terraform file is properly formatted",
	fixMessage:  "Formatted Terraform file",
	needsFixMsg: "Terraform file needs formatting. Run with --fix to format.",
}

func (v *terraformValidator) Validate(ctx context.Context, filepath string, autoFix bool) ValidationResult {
	return terraformShape.run(ctx, v.runner, v.command, filepath, autoFix)
}
