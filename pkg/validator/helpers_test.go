package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveArg(t *testing.T) {
	assert.Equal(t, []string{"black", "file.py"}, removeArg([]string{"black", "--check", "file.py"}, "--check"))
	assert.Equal(t, []string{"black", "file.py"}, removeArg([]string{"black", "file.py"}, "--missing"))
}

func TestInsertArg(t *testing.T) {
	got := insertArg([]string{"ruff", "check", "file.py"}, 2, "--fix")
	assert.Equal(t, []string{"ruff", "check", "--fix", "file.py"}, got)
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb"))
	assert.Nil(t, splitLines("\n"))
}

func TestTimeoutResult(t *testing.T) {
	r := timeoutResult("ruff", "file.py", 42)
	assert.False(t, r.Success)
	assert.Equal(t, "ruff", r.Tool)
	assert.Equal(t, int64(42), r.DurationMs)
	assert.Len(t, r.Errors, 1)
}

func TestExtAndBaseOf(t *testing.T) {
	assert.Equal(t, ".py", extOf("/a/b/main.py"))
	assert.Equal(t, "", extOf("/a/b/Dockerfile"))
	assert.Equal(t, "main.py", baseOf("/a/b/main.py"))
	assert.Equal(t, "Dockerfile", baseOf("Dockerfile"))
}
