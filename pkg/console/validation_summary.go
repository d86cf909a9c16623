package console

import (
	"fmt"
	"sort"
	"strings"

	"github.com/toolmesh/toolmesh/pkg/validator"
)

// RunSummary aggregates a full run's ValidationResults for display by
// the `validate`/`fix` commands.
type RunSummary struct {
	Results []validator.ValidationResult
}

// TotalErrors sums Errors across every result.
func (s RunSummary) TotalErrors() int {
	n := 0
	for _, r := range s.Results {
		n += len(r.Errors)
	}
	return n
}

// TotalWarnings sums Warnings across every result.
func (s RunSummary) TotalWarnings() int {
	n := 0
	for _, r := range s.Results {
		n += len(r.Warnings)
	}
	return n
}

// FailedTools returns the distinct tool names with at least one
// unsuccessful result, sorted alphabetically.
func (s RunSummary) FailedTools() []string {
	seen := make(map[string]struct{})
	for _, r := range s.Results {
		if !r.Success {
			seen[r.Tool] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatRunSummary renders a RunSummary the way the `validate` command
// reports outcome: a pass/fail headline, a per-tool error/warning
// breakdown, and, in verbose mode, every individual message.
func FormatRunSummary(summary RunSummary, verbose bool) string {
	if len(summary.Results) == 0 {
		return FormatInfoMessage("no files matched any validator")
	}

	var output strings.Builder

	totalErrors := summary.TotalErrors()
	totalWarnings := summary.TotalWarnings()

	if totalErrors > 0 {
		output.WriteString(FormatErrorMessage(fmt.Sprintf("validation failed with %d error(s), %d warning(s)", totalErrors, totalWarnings)))
	} else if totalWarnings > 0 {
		output.WriteString(FormatSuccessMessage(fmt.Sprintf("validation passed with %d warning(s)", totalWarnings)))
	} else {
		output.WriteString(FormatSuccessMessage("all validators passed"))
	}
	output.WriteString("\n\n")

	byTool := groupByTool(summary.Results)
	tools := make([]string, 0, len(byTool))
	for tool := range byTool {
		tools = append(tools, tool)
	}
	sort.Strings(tools)

	output.WriteString(FormatListHeader("By Tool:"))
	output.WriteString("\n")
	for _, tool := range tools {
		results := byTool[tool]
		errs, warns, fixed := 0, 0, 0
		for _, r := range results {
			errs += len(r.Errors)
			warns += len(r.Warnings)
			if r.Fixed {
				fixed++
			}
		}
		status := "✓"
		if errs > 0 {
			status = "✗"
		}
		line := fmt.Sprintf("  %s %-18s %d file(s), %d error(s), %d warning(s)", status, tool, len(results), errs, warns)
		if fixed > 0 {
			line += fmt.Sprintf(", %d fixed", fixed)
		}
		output.WriteString(line)
		output.WriteString("\n")
	}
	output.WriteString("\n")

	if verbose {
		output.WriteString(FormatListHeader("Messages:"))
		output.WriteString("\n\n")
		for _, r := range summary.Results {
			for _, msg := range r.Errors {
				output.WriteString(formatResultLine(r, msg, "error"))
			}
			for _, msg := range r.Warnings {
				output.WriteString(formatResultLine(r, msg, "warning"))
			}
		}
	} else if totalErrors > 0 || totalWarnings > 0 {
		output.WriteString(FormatInfoMessage("use --verbose to see individual messages"))
		output.WriteString("\n")
	}

	return output.String()
}

func formatResultLine(r validator.ValidationResult, message, kind string) string {
	location := r.Filepath
	if location == "" {
		location = r.Tool
	}
	err := ToolError{
		Position: ErrorPosition{File: location},
		Type:     kind,
		Message:  fmt.Sprintf("[%s] %s", r.Tool, message),
	}
	return FormatError(err)
}

func groupByTool(results []validator.ValidationResult) map[string][]validator.ValidationResult {
	groups := make(map[string][]validator.ValidationResult)
	for _, r := range results {
		groups[r.Tool] = append(groups[r.Tool], r)
	}
	return groups
}
