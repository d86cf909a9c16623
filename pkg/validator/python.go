package validator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// --- python-black ---------------------------------------------------

type blackValidator struct {
	base
	command string
}

// NewBlack wraps Black, the Python code formatter.
func NewBlack(runner *Runner, command string) Validator {
	if command == "" {
		command = "black"
	}
	return &blackValidator{base: newBase("python-black", []string{".py", ".pyi"}, runner), command: command}
}

func (v *blackValidator) CanHandle(filepath string) bool { return v.canHandleExtension(filepath) }

func (v *blackValidator) IsAvailable(ctx context.Context) bool { return IsAvailableOnPath(v.command) }

func (v *blackValidator) Validate(ctx context.Context, filepath string, autoFix bool) ValidationResult {
	start := time.Now()
	argv := []string{v.command, "--check", filepath}
	if autoFix {
		argv = removeArg(argv, "--check")
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
			Messages: []string{"File is properly formatted"}, Fixed: autoFix, DurationMs: ms}
	}
	return ValidationResult{Tool: v.name, Filepath: filepath, Success: false,
		Errors: []string{"File needs formatting"}, Messages: splitLines(out.Stdout), DurationMs: ms}
}

// --- ruff -------------------------------------------------------------

type ruffValidator struct {
	base
	command string
}

// NewRuff wraps Ruff, the fast Python linter.
func NewRuff(runner *Runner, command string) Validator {
	if command == "" {
		command = "ruff"
	}
	return &ruffValidator{base: newBase("ruff", []string{".py", ".pyi"}, runner), command: command}
}

func (v *ruffValidator) CanHandle(filepath string) bool         { return v.canHandleExtension(filepath) }
func (v *ruffValidator) IsAvailable(ctx context.Context) bool   { return IsAvailableOnPath(v.command) }

func (v *ruffValidator) Validate(ctx context.Context, filepath string, autoFix bool) ValidationResult {
	start := time.Now()
	argv := []string{v.command, "check", filepath, "--output-format=json"}
	if autoFix {
		argv = insertArg(argv, 2, "--fix")
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
		return ValidationResult{Tool: v.name, Filepath: filepath, Success: true, Fixed: autoFix, DurationMs: ms}
	}

	var messages, errs []string
	if out.Stdout != "" {
		var issues []struct {
			Location struct {
				Row int `json:"row"`
			} `json:"location"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal([]byte(out.Stdout), &issues); err == nil {
			for _, issue := range issues {
				msg := fmt.Sprintf("Line %d: %s", issue.Location.Row, issue.Message)
				messages = append(messages, msg)
				errs = append(errs, msg)
			}
		} else {
			trimmed := strings.TrimSpace(out.Stdout)
			messages = []string{trimmed}
			errs = []string{trimmed}
		}
	}

	return ValidationResult{Tool: v.name, Filepath: filepath, Success: false,
		Messages: messages, Errors: errs, Fixed: false, DurationMs: ms}
}

// --- autoflake (check-then-fix) ---------------------------------------

type autoflakeValidator struct {
	base
	command string
}

// NewAutoflake wraps Autoflake, which removes unused imports/variables.
func NewAutoflake(runner *Runner, command string) Validator {
	if command == "" {
		command = "autoflake"
	}
	return &autoflakeValidator{base: newBase("autoflake", []string{".py", ".pyi"}, runner), command: command}
}

func (v *autoflakeValidator) CanHandle(filepath string) bool       { return v.canHandleExtension(filepath) }
func (v *autoflakeValidator) IsAvailable(ctx context.Context) bool { return IsAvailableOnPath(v.command) }

func (v *autoflakeValidator) Validate(ctx context.Context, filepath string, autoFix bool) ValidationResult {
	start := time.Now()
	checkArgv := []string{v.command, "--check", "--remove-all-unused-imports", "--remove-unused-variables", filepath}

	checkOut := v.runner.Exec(ctx, v.name, checkArgv, "")
	ms := elapsedMs(start)

	if checkOut.TimedOut {
		return timeoutResult(v.name, filepath, ms)
	}
	if checkOut.Err != nil {
		return errResult(v.name, filepath, checkOut.Err, ms)
	}
	if checkOut.ExitCode == 0 {
		return ValidationResult{Tool: v.name, Filepath: filepath, Success: true,
			Messages: []string{"No unused imports or variables found"}, DurationMs: ms}
	}

	if !autoFix {
		return ValidationResult{Tool: v.name, Filepath: filepath, Success: false,
			Errors: []string{"File has unused imports or variables"},
			Messages: []string{"Run with --fix to automatically clean up"}, DurationMs: ms}
	}

	fixArgv := []string{v.command, "--in-place", "--remove-all-unused-imports", "--remove-unused-variables", filepath}
	fixOut := v.runner.Exec(ctx, v.name, fixArgv, "")
	ms = elapsedMs(start)
	if fixOut.ExitCode == 0 {
		return ValidationResult{Tool: v.name, Filepath: filepath, Success: true,
			Messages: []string{"Fixed unused imports and variables"}, Fixed: true, DurationMs: ms}
	}
	return ValidationResult{Tool: v.name, Filepath: filepath, Success: false,
		Errors: []string{"Failed to apply autoflake fixes"}, Messages: splitLines(fixOut.Stderr), DurationMs: ms}
}

// --- isort (check-then-fix) --------------------------------------------

type isortValidator struct {
	base
	command string
}

// NewIsort wraps isort, the Python import sorter.
func NewIsort(runner *Runner, command string) Validator {
	if command == "" {
		command = "isort"
	}
	return &isortValidator{base: newBase("isort", []string{".py", ".pyi"}, runner), command: command}
}

func (v *isortValidator) CanHandle(filepath string) bool       { return v.canHandleExtension(filepath) }
func (v *isortValidator) IsAvailable(ctx context.Context) bool { return IsAvailableOnPath(v.command) }

func (v *isortValidator) Validate(ctx context.Context, filepath string, autoFix bool) ValidationResult {
	start := time.Now()
	checkArgv := []string{v.command, "--check-only", "--diff", filepath}

	checkOut := v.runner.Exec(ctx, v.name, checkArgv, "")
	ms := elapsedMs(start)

	if checkOut.TimedOut {
		return timeoutResult(v.name, filepath, ms)
	}
	if checkOut.Err != nil {
		return errResult(v.name, filepath, checkOut.Err, ms)
	}
	if checkOut.ExitCode == 0 {
		return ValidationResult{Tool: v.name, Filepath: filepath, Success: true,
			Messages: []string{"Imports are properly sorted"}, DurationMs: ms}
	}

	if !autoFix {
		diffLines := splitLines(checkOut.Stdout)
		messages := diffLines
		if len(messages) > 10 {
			messages = messages[:10]
		}
		if len(messages) == 0 {
			messages = []string{"Run with --fix to sort imports"}
		}
		return ValidationResult{Tool: v.name, Filepath: filepath, Success: false,
			Errors: []string{"Imports are not properly sorted"}, Messages: messages, DurationMs: ms}
	}

	fixOut := v.runner.Exec(ctx, v.name, []string{v.command, filepath}, "")
	ms = elapsedMs(start)
	if fixOut.ExitCode == 0 {
		return ValidationResult{Tool: v.name, Filepath: filepath, Success: true,
			Messages: []string{"Sorted and organized imports"}, Fixed: true, DurationMs: ms}
	}
	return ValidationResult{Tool: v.name, Filepath: filepath, Success: false,
		Errors: []string{"Failed to sort imports"}, Messages: splitLines(fixOut.Stderr), DurationMs: ms}
}

// --- flake8 -------------------------------------------------------------

type flake8Validator struct {
	base
	command string
}

// NewFlake8 wraps Flake8. Despite requesting --format=json, Flake8's own
// JSON formatter plugin is not assumed installed, so output is parsed
// the same naive line-based way the original does: split on ":" and
// classify by substring, not by JSON-decoding the response.
func NewFlake8(runner *Runner, command string) Validator {
	if command == "" {
		command = "flake8"
	}
	return &flake8Validator{base: newBase("flake8", []string{".py", ".pyi"}, runner), command: command}
}

func (v *flake8Validator) CanHandle(filepath string) bool       { return v.canHandleExtension(filepath) }
func (v *flake8Validator) IsAvailable(ctx context.Context) bool { return IsAvailableOnPath(v.command) }

func (v *flake8Validator) Validate(ctx context.Context, filepath string, autoFix bool) ValidationResult {
	start := time.Now()
	argv := []string{v.command, filepath, "--format=json"}

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
			Messages: []string{"No issues found"}, DurationMs: ms}
	}

	var errs, warnings []string
	for _, line := range splitLines(out.Stdout) {
		if !strings.Contains(line, ":") {
			continue
		}
		parts := strings.SplitN(line, ":", 4)
		if len(parts) < 4 {
			continue
		}
		msg := strings.TrimSpace(parts[3])
		if strings.Contains(msg, "E") || strings.Contains(msg, "F") {
			errs = append(errs, msg)
		} else {
			warnings = append(warnings, msg)
		}
	}

	return ValidationResult{Tool: v.name, Filepath: filepath, Success: false,
		Errors: errs, Warnings: warnings, DurationMs: ms}
}

// --- mypy -----------------------------------------------------------------

type mypyValidator struct {
	base
	command string
}

// NewMypy wraps MyPy, the Python type checker.
func NewMypy(runner *Runner, command string) Validator {
	if command == "" {
		command = "mypy"
	}
	return &mypyValidator{base: newBase("mypy", []string{".py", ".pyi"}, runner), command: command}
}

func (v *mypyValidator) CanHandle(filepath string) bool       { return v.canHandleExtension(filepath) }
func (v *mypyValidator) IsAvailable(ctx context.Context) bool { return IsAvailableOnPath(v.command) }

func (v *mypyValidator) Validate(ctx context.Context, filepath string, autoFix bool) ValidationResult {
	start := time.Now()
	argv := []string{v.command, filepath, "--no-error-summary"}

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
			Messages: []string{"Type checking passed"}, DurationMs: ms}
	}

	var errs, warnings []string
	for _, line := range splitLines(out.Stdout) {
		switch {
		case strings.Contains(line, "error:"):
			errs = append(errs, line)
		case strings.Contains(line, "warning:") || strings.Contains(line, "note:"):
			warnings = append(warnings, line)
		}
	}

	return ValidationResult{Tool: v.name, Filepath: filepath, Success: false,
		Errors: errs, Warnings: warnings, DurationMs: ms}
}

// --- bandit -----------------------------------------------------------------

type banditValidator struct {
	base
	command string
}

// NewBandit wraps Bandit, the Python security scanner.
func NewBandit(runner *Runner, command string) Validator {
	if command == "" {
		command = "bandit"
	}
	return &banditValidator{base: newBase("bandit", []string{".py", ".pyi"}, runner), command: command}
}

func (v *banditValidator) CanHandle(filepath string) bool       { return v.canHandleExtension(filepath) }
func (v *banditValidator) IsAvailable(ctx context.Context) bool { return IsAvailableOnPath(v.command) }

func (v *banditValidator) Validate(ctx context.Context, filepath string, autoFix bool) ValidationResult {
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
		return ValidationResult{Tool: v.name, Filepath: filepath, Success: true, DurationMs: ms}
	}

	var messages, errs, warnings []string
	if out.Stdout != "" {
		var data struct {
			Results []struct {
				LineNumber    int    `json:"line_number"`
				TestName      string `json:"test_name"`
				IssueText     string `json:"issue_text"`
				IssueSeverity string `json:"issue_severity"`
			} `json:"results"`
		}
		if err := json.Unmarshal([]byte(out.Stdout), &data); err == nil {
			for _, issue := range data.Results {
				msg := fmt.Sprintf("Line %d: %s - %s", issue.LineNumber, issue.TestName, issue.IssueText)
				messages = append(messages, msg)
				if issue.IssueSeverity == "HIGH" || issue.IssueSeverity == "CRITICAL" {
					errs = append(errs, msg)
				} else {
					warnings = append(warnings, msg)
				}
			}
		} else {
			trimmed := strings.TrimSpace(out.Stdout)
			messages = []string{trimmed}
			errs = []string{trimmed}
		}
	}

	return ValidationResult{Tool: v.name, Filepath: filepath, Success: false,
		Messages: messages, Errors: errs, Warnings: warnings, DurationMs: ms}
}
