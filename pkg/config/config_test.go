package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_AbsentConfigIsNotAnError(t *testing.T) {
	tmp := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(old) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoad_ParsesToolOverrides(t *testing.T) {
	tmp := t.TempDir()
	path := writeConfig(t, tmp, "toolmesh.yaml", `
max_workers: 4
refresh_rate: 0.2
tools:
  python-black:
    command: /opt/venv/bin/black
    auto_fix: true
  mypy:
    enabled: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.MaxWorkers)
	assert.InDelta(t, 0.2, cfg.RefreshRate, 0.0001)
	assert.Equal(t, "/opt/venv/bin/black", cfg.Tools["python-black"].Command)
	assert.True(t, cfg.AutoFix("python-black"))
	assert.False(t, cfg.Tools["mypy"].IsEnabled())
}

func TestLoad_RejectsSchemaViolation(t *testing.T) {
	tmp := t.TempDir()
	path := writeConfig(t, tmp, "toolmesh.yaml", `
max_workers: "not-a-number"
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_DefaultPathsTriesDotfileSecond(t *testing.T) {
	tmp := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(old) })

	writeConfig(t, tmp, ".toolmesh.yaml", "max_workers: 2\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.MaxWorkers)
}

func TestToolConfig_IsEnabledDefaultsTrue(t *testing.T) {
	tc := ToolConfig{}
	assert.True(t, tc.IsEnabled())
}

func TestEnabledTools_ExcludesDisabled(t *testing.T) {
	disabled := false
	cfg := Config{Tools: map[string]ToolConfig{
		"mypy": {Enabled: &disabled},
	}}

	enabled := cfg.EnabledTools([]string{"mypy", "ruff"})
	assert.Equal(t, []string{"ruff"}, enabled)
}

func TestCommandOverrides_OnlyIncludesSetCommands(t *testing.T) {
	cfg := Config{Tools: map[string]ToolConfig{
		"ruff":         {Command: "/usr/bin/ruff"},
		"python-black": {},
	}}

	overrides := cfg.CommandOverrides()
	assert.Equal(t, map[string]string{"ruff": "/usr/bin/ruff"}, overrides)
}
