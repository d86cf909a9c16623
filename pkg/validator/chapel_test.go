package validator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChapel_CanHandle(t *testing.T) {
	v := NewChapel(NewRunner(nil), "")
	assert.True(t, v.CanHandle("main.chpl"))
	assert.False(t, v.CanHandle("main.go"))
}

func TestChapel_Validate_Success(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "main.chpl")
	require.NoError(t, os.WriteFile(path, []byte("proc main() {}\n"), 0644))
	bin := writeFakeBinary(t, tmp, "fake-chapel-format", "", 0)

	v := NewChapel(NewRunner(nil), bin)
	result := v.Validate(context.Background(), path, false)
	assert.True(t, result.Success)
	assert.False(t, result.Fixed)
}

func TestChapel_Validate_AutoFixSetsFixedFlag(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "main.chpl")
	require.NoError(t, os.WriteFile(path, []byte("proc main() {}\n"), 0644))
	bin := writeFakeBinary(t, tmp, "fake-chapel-format", "", 0)

	v := NewChapel(NewRunner(nil), bin)
	result := v.Validate(context.Background(), path, true)
	assert.True(t, result.Success)
	assert.True(t, result.Fixed)
}

func TestChapel_Validate_FailureReportsOutput(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "main.chpl")
	require.NoError(t, os.WriteFile(path, []byte("proc main() {\n"), 0644))
	bin := writeFakeBinary(t, tmp, "fake-chapel-format", "main.chpl:1: unexpected EOF", 1)

	v := NewChapel(NewRunner(nil), bin)
	result := v.Validate(context.Background(), path, false)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "unexpected EOF")
}
