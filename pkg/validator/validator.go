// Package validator implements the uniform Validator abstraction: a
// registry of named checkers/fixers, each wrapping one external tool,
// normalized to a common ValidationResult shape regardless of the
// tool's native output format.
package validator

import (
	"context"
	"time"
)

// ValidationResult is the normalized outcome of running one tool
// against one file.
//
// Invariant: Success implies len(Errors) == 0. A tool that reports
// findings but exits non-zero is not "successful" even if nothing
// was written to Errors by the time the invariant is checked — every
// concrete validator must populate Errors before returning
// Success: false.
type ValidationResult struct {
	Tool       string   `json:"tool"`
	Filepath   string   `json:"filepath"`
	Success    bool     `json:"success"`
	Messages   []string `json:"messages,omitempty"`
	Errors     []string `json:"errors,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	Fixed      bool     `json:"fixed"`
	DurationMs int64    `json:"duration_ms"`
}

// Validator is implemented by every concrete tool wrapper.
type Validator interface {
	// Name is the stable identifier used in config, the dependency
	// graph, and CLI output (e.g. "python-black", "js-eslint").
	Name() string
	// Extensions lists the file extensions (with leading dot) this
	// validator claims by default. An empty set means CanHandle must
	// be relied on exclusively (e.g. gitlab-ci).
	Extensions() map[string]struct{}
	// CanHandle reports whether this validator applies to filepath.
	// The default implementation checks Extensions; validators with
	// filename-based matching (hadolint's Dockerfile, gitlab-ci's
	// .gitlab-ci.yml) override it.
	CanHandle(filepath string) bool
	// IsAvailable reports whether the underlying tool can currently be
	// invoked (binary on PATH, sidecar reachable, or container present).
	IsAvailable(ctx context.Context) bool
	// Validate runs the tool against filepath and returns a normalized
	// result. It must never return a non-nil error for a tool-reported
	// finding; errors are reserved for the validator itself being
	// unable to run at all, and even then the convention (per the
	// Non-goals on error semantics) is to fold that into
	// ValidationResult.Errors rather than return a Go error, so callers
	// can always treat ValidationResult as the sole outcome.
	Validate(ctx context.Context, filepath string, autoFix bool) ValidationResult
}

// base centralizes the small amount of shared state and behavior
// every concrete validator embeds: its name, extension set, and a
// Runner used to invoke the external tool.
type base struct {
	name       string
	extensions map[string]struct{}
	runner     *Runner
}

func newBase(name string, extensions []string, runner *Runner) base {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[ext] = struct{}{}
	}
	return base{name: name, extensions: set, runner: runner}
}

func (b base) Name() string                    { return b.name }
func (b base) Extensions() map[string]struct{}  { return b.extensions }

func (b base) canHandleExtension(filepath string) bool {
	if len(b.extensions) == 0 {
		return false
	}
	ext := extOf(filepath)
	_, ok := b.extensions[ext]
	return ok
}

func extOf(filepath string) string {
	dot := -1
	for i := len(filepath) - 1; i >= 0; i-- {
		if filepath[i] == '/' {
			break
		}
		if filepath[i] == '.' {
			dot = i
			break
		}
	}
	if dot < 0 {
		return ""
	}
	return filepath[dot:]
}

func baseOf(filepath string) string {
	slash := -1
	for i := len(filepath) - 1; i >= 0; i-- {
		if filepath[i] == '/' {
			slash = i
			break
		}
	}
	return filepath[slash+1:]
}

func elapsedMs(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
