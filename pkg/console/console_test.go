package console

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRelativePath_LeavesRelativePathsAlone(t *testing.T) {
	assert.Equal(t, "main.py", ToRelativePath("main.py"))
}

func TestToRelativePath_ConvertsAbsoluteUnderCwd(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	rel := ToRelativePath(wd + "/main.py")
	assert.Equal(t, "main.py", rel)
}

func TestFormatError_IncludesLocationAndMessage(t *testing.T) {
	out := FormatError(ToolError{
		Position: ErrorPosition{File: "main.py", Line: 3, Column: 5},
		Type:     "error",
		Message:  "undefined name 'x'",
	})
	assert.Contains(t, out, "main.py:3:5:")
	assert.Contains(t, out, "error:")
	assert.Contains(t, out, "undefined name 'x'")
}

func TestFormatError_WarningPrefix(t *testing.T) {
	out := FormatError(ToolError{Type: "warning", Message: "line too long"})
	assert.Contains(t, out, "warning:")
	assert.Contains(t, out, "line too long")
}

func TestFormatError_RendersContextWithPointer(t *testing.T) {
	out := FormatError(ToolError{
		Position: ErrorPosition{File: "main.py", Line: 2, Column: 5},
		Type:     "error",
		Message:  "bad token",
		Context:  []string{"def foo():", "    x = undefined", "    return x"},
	})
	assert.Contains(t, out, "undefined")
	assert.Contains(t, out, "^")
}

func TestFindWordEnd(t *testing.T) {
	assert.Equal(t, 9, findWordEnd("undefined + 1", 0))
	assert.Equal(t, 5, findWordEnd("hello", 20))
}

func TestFormatErrorWithSuggestions(t *testing.T) {
	out := FormatErrorWithSuggestions("missing import", []string{"add import os", "run --fix"})
	assert.Contains(t, out, "missing import")
	assert.Contains(t, out, "Suggestions:")
	assert.Contains(t, out, "add import os")
	assert.Contains(t, out, "run --fix")
}

func TestRenderTable_EmptyHeadersReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", RenderTable(TableConfig{}))
}

func TestRenderTable_RendersHeadersAndRows(t *testing.T) {
	out := RenderTable(TableConfig{
		Headers: []string{"Tool", "Errors"},
		Rows:    [][]string{{"ruff", "2"}, {"mypy", "0"}},
	})
	assert.Contains(t, out, "Tool")
	assert.Contains(t, out, "ruff")
	assert.Contains(t, out, "mypy")
}

func TestRenderTableAsJSON_EmptyHeaders(t *testing.T) {
	out, err := RenderTableAsJSON(TableConfig{})
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestRenderTableAsJSON_KeysAreNormalized(t *testing.T) {
	out, err := RenderTableAsJSON(TableConfig{
		Headers: []string{"Tool Name", "Error Count"},
		Rows:    [][]string{{"ruff", "2"}},
	})
	require.NoError(t, err)
	assert.Contains(t, out, `"tool_name":"ruff"`)
	assert.Contains(t, out, `"error_count":"2"`)
}

func TestRenderList_EmptyReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", RenderList(nil, "bullet"))
}

func TestRenderList_ContainsEveryItem(t *testing.T) {
	out := RenderList([]string{"ruff", "mypy"}, "dash")
	assert.Contains(t, out, "ruff")
	assert.Contains(t, out, "mypy")
}

func TestRenderNestedList_EmptyReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", RenderNestedList(nil))
}

func TestRenderNestedList_ContainsSectionsAndItems(t *testing.T) {
	out := RenderNestedList(map[string][]string{
		"Python": {"ruff", "mypy"},
	})
	assert.True(t, strings.Contains(out, "Python"))
	assert.True(t, strings.Contains(out, "ruff"))
}
