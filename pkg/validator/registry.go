package validator

import (
	"context"
	"fmt"
	"sync"

	"github.com/toolmesh/toolmesh/pkg/sidecar"
)

// Registry maps tool name to its Validator instance and is the single
// lookup point the Executor and CLI use to resolve a requested tool
// set into concrete Validators.
type Registry struct {
	mu         sync.RWMutex
	validators map[string]Validator
}

// Options configures how NewRegistry builds the full roster: command
// overrides mirroring toolmesh.yaml's per-tool "command" field
// (pkg/config), the sidecar socket, and the GitLab-CI refresh flag.
type Options struct {
	// CommandOverrides maps tool name to an alternate binary name or
	// path, e.g. {"python-black": "/opt/venv/bin/black"}.
	CommandOverrides map[string]string
	// SidecarSocket overrides the GPL sidecar's Unix socket path; empty
	// uses sidecar.DefaultSocketPath / TOOLMESH_SIDECAR_SOCKET.
	SidecarSocket string
	// GitLabCIRefresh threads the --refresh flag through to the
	// GitLab-CI validator's construction, per SPEC_FULL.md's
	// supplemented --refresh plumbing.
	GitLabCIRefresh bool
}

func (o Options) commandFor(tool string) string {
	if o.CommandOverrides == nil {
		return ""
	}
	return o.CommandOverrides[tool]
}

// NewRegistry builds the full validator roster: the original roster's
// 16 tools plus the 3 supplemented ones (ansible-lint, dockerfile-lint,
// go-vet), per SPEC_FULL.md's "full validator roster" item.
func NewRegistry(opts Options) *Registry {
	sc := sidecar.New(opts.SidecarSocket)
	runner := NewRunner(sc)

	validators := []Validator{
		NewBlack(runner, opts.commandFor("python-black")),
		NewRuff(runner, opts.commandFor("ruff")),
		NewAutoflake(runner, opts.commandFor("autoflake")),
		NewIsort(runner, opts.commandFor("isort")),
		NewFlake8(runner, opts.commandFor("flake8")),
		NewMypy(runner, opts.commandFor("mypy")),
		NewBandit(runner, opts.commandFor("bandit")),
		NewESLint(runner, opts.commandFor("js-eslint")),
		NewPrettier(runner, opts.commandFor("js-prettier")),
		NewTaplo(runner, opts.commandFor("taplo")),
		NewTerraform(runner, opts.commandFor("terraform")),
		NewYamllint(runner, opts.commandFor("yamllint")),
		NewShellcheck(runner, opts.commandFor("shellcheck")),
		NewHadolint(runner, opts.commandFor("hadolint")),
		NewGitLabCI(opts.GitLabCIRefresh),
		NewChapel(runner, opts.commandFor("chapel")),
		NewAnsibleLint(runner, opts.commandFor("ansible-lint")),
		NewDockerfileLint(runner, opts.commandFor("dockerfile-lint")),
		NewGoVet(runner, opts.commandFor("go-vet")),
	}

	reg := &Registry{validators: make(map[string]Validator, len(validators))}
	for _, val := range validators {
		reg.validators[val.Name()] = val
	}
	return reg
}

// Get returns the validator registered under name, if any.
func (r *Registry) Get(name string) (Validator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.validators[name]
	return v, ok
}

// Names returns every registered validator name.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.validators))
	for name := range r.validators {
		names = append(names, name)
	}
	return names
}

// ForFile returns every validator that CanHandle filepath.
func (r *Registry) ForFile(filepath string) []Validator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Validator
	for _, v := range r.validators {
		if v.CanHandle(filepath) {
			out = append(out, v)
		}
	}
	return out
}

// Register adds or replaces a validator, letting callers extend the
// roster beyond the builtin set.
func (r *Registry) Register(v Validator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validators[v.Name()] = v
}

// RequireAvailable returns an error naming every tool in names that is
// not currently available, without invoking any of them.
func (r *Registry) RequireAvailable(ctx context.Context, names []string) error {
	var missing []string
	for _, name := range names {
		v, ok := r.Get(name)
		if !ok {
			missing = append(missing, name+" (unknown tool)")
			continue
		}
		if !v.IsAvailable(ctx) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("unavailable tools: %v", missing)
	}
	return nil
}
