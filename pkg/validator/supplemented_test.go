package validator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnsibleLint_CanHandle_RequiresPlaybookContext(t *testing.T) {
	v := NewAnsibleLint(NewRunner(nil), "")
	assert.True(t, v.CanHandle("/repo/playbooks/site.yml"))
	assert.True(t, v.CanHandle("/repo/ansible/deploy.yaml"))
	assert.True(t, v.CanHandle("/repo/playbook.yml"))
	assert.False(t, v.CanHandle("/repo/config/values.yaml"))
	assert.False(t, v.CanHandle("/repo/playbooks/site.py"))
}

func TestAnsibleLint_Validate_ParsesSeverityMarkers(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "playbook.yml")
	require.NoError(t, os.WriteFile(path, []byte("- hosts: all\n"), 0644))

	script := `#!/bin/sh
echo 'playbook.yml:1 [E501] line too long'
echo 'playbook.yml:2 [W301] deprecated module'
exit 2
`
	bin := filepath.Join(tmp, "fake-ansible-lint")
	require.NoError(t, os.WriteFile(bin, []byte(script), 0755))

	v := NewAnsibleLint(NewRunner(nil), bin)
	result := v.Validate(context.Background(), path, false)
	assert.False(t, result.Success)
	assert.Len(t, result.Errors, 1)
	assert.Len(t, result.Warnings, 1)
}

func TestDockerfileLint_CanHandle(t *testing.T) {
	v := NewDockerfileLint(NewRunner(nil), "")
	assert.True(t, v.CanHandle("/repo/Dockerfile"))
	assert.False(t, v.CanHandle("/repo/main.go"))
}

func TestDockerfileLint_Validate_Success(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "Dockerfile")
	require.NoError(t, os.WriteFile(path, []byte("FROM scratch\n"), 0644))
	bin := writeFakeBinary(t, tmp, "fake-dockerfile-lint", "", 0)

	v := NewDockerfileLint(NewRunner(nil), bin)
	result := v.Validate(context.Background(), path, false)
	assert.True(t, result.Success)
}

func TestGoVet_CanHandle(t *testing.T) {
	v := NewGoVet(NewRunner(nil), "")
	assert.True(t, v.CanHandle("main.go"))
	assert.False(t, v.CanHandle("main.py"))
}

func TestGoVet_Validate_ReportsStderrOnFailure(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n"), 0644))

	script := `#!/bin/sh
echo 'main.go:3: unreachable code' >&2
exit 1
`
	bin := filepath.Join(tmp, "fake-go")
	require.NoError(t, os.WriteFile(bin, []byte(script), 0755))

	v := NewGoVet(NewRunner(nil), bin)
	result := v.Validate(context.Background(), path, false)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "unreachable code")
}
