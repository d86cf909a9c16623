package console

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toolmesh/toolmesh/pkg/validator"
)

func TestRunSummary_Totals(t *testing.T) {
	summary := RunSummary{Results: []validator.ValidationResult{
		{Tool: "ruff", Errors: []string{"e1", "e2"}, Warnings: []string{"w1"}},
		{Tool: "mypy", Errors: []string{"e3"}},
	}}
	assert.Equal(t, 3, summary.TotalErrors())
	assert.Equal(t, 1, summary.TotalWarnings())
}

func TestRunSummary_FailedTools_SortedAndDeduplicated(t *testing.T) {
	summary := RunSummary{Results: []validator.ValidationResult{
		{Tool: "ruff", Success: false},
		{Tool: "ruff", Success: false},
		{Tool: "mypy", Success: true},
		{Tool: "black", Success: false},
	}}
	assert.Equal(t, []string{"black", "ruff"}, summary.FailedTools())
}

func TestFormatRunSummary_NoResults(t *testing.T) {
	out := FormatRunSummary(RunSummary{}, false)
	assert.Contains(t, out, "no files matched")
}

func TestFormatRunSummary_AllPassed(t *testing.T) {
	summary := RunSummary{Results: []validator.ValidationResult{
		{Tool: "ruff", Success: true, Filepath: "main.py"},
	}}
	out := FormatRunSummary(summary, false)
	assert.Contains(t, out, "all validators passed")
	assert.Contains(t, out, "ruff")
}

func TestFormatRunSummary_FailureShowsCounts(t *testing.T) {
	summary := RunSummary{Results: []validator.ValidationResult{
		{Tool: "ruff", Success: false, Errors: []string{"bad import"}, Filepath: "main.py"},
	}}
	out := FormatRunSummary(summary, false)
	assert.Contains(t, out, "1 error(s)")
	assert.Contains(t, out, "use --verbose")
}

func TestFormatRunSummary_VerboseListsMessages(t *testing.T) {
	summary := RunSummary{Results: []validator.ValidationResult{
		{Tool: "ruff", Success: false, Errors: []string{"bad import"}, Filepath: "main.py"},
	}}
	out := FormatRunSummary(summary, true)
	assert.Contains(t, out, "[ruff] bad import")
}

func TestGroupByTool(t *testing.T) {
	groups := groupByTool([]validator.ValidationResult{
		{Tool: "ruff"}, {Tool: "mypy"}, {Tool: "ruff"},
	})
	assert.Len(t, groups, 2)
	assert.Len(t, groups["ruff"], 2)
}
