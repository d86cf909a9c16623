// Package config loads and validates toolmesh.yaml / .toolmesh.yaml:
// which tools are enabled, their command overrides and auto-fix flags,
// and engine-wide settings like worker pool size and TUI refresh rate.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/toolmesh/toolmesh/pkg/logger"
	"gopkg.in/yaml.v3"
)

var log = logger.New("config")

//go:embed schema/toolmesh-config.schema.json
var configSchemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(configSchemaJSON), &doc); err != nil {
			schemaErr = fmt.Errorf("parse config schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		const url = "https://toolmesh.dev/schemas/toolmesh-config.json"
		if err := compiler.AddResource(url, doc); err != nil {
			schemaErr = fmt.Errorf("add config schema resource: %w", err)
			return
		}
		s, err := compiler.Compile(url)
		if err != nil {
			schemaErr = fmt.Errorf("compile config schema: %w", err)
			return
		}
		schema = s
	})
	return schema, schemaErr
}

// ToolConfig is one entry under the "tools" map.
type ToolConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Command string `yaml:"command,omitempty" json:"command,omitempty"`
	AutoFix bool   `yaml:"auto_fix,omitempty" json:"auto_fix,omitempty"`
}

// IsEnabled reports whether this tool is enabled, defaulting to true
// when unset (a tool present in the registry is opt-out, not opt-in).
func (t ToolConfig) IsEnabled() bool {
	return t.Enabled == nil || *t.Enabled
}

// Config is the parsed shape of toolmesh.yaml.
type Config struct {
	MaxWorkers    int                   `yaml:"max_workers,omitempty" json:"max_workers,omitempty"`
	RefreshRate   float64               `yaml:"refresh_rate,omitempty" json:"refresh_rate,omitempty"`
	SidecarSocket string                `yaml:"sidecar_socket,omitempty" json:"sidecar_socket,omitempty"`
	Tools         map[string]ToolConfig `yaml:"tools,omitempty" json:"tools,omitempty"`
}

// DefaultPaths are tried in order when no explicit path is given.
var DefaultPaths = []string{"toolmesh.yaml", ".toolmesh.yaml"}

// Load reads and validates the config at path. If path is empty,
// DefaultPaths are tried in order; if none exist, Load returns a zero
// Config and no error (an absent config file is not a failure —
// every tool simply runs with its own default command and no
// auto-fix).
func Load(path string) (Config, error) {
	if path == "" {
		for _, candidate := range DefaultPaths {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return Config{}, nil
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := validateSchema(doc); err != nil {
		return Config{}, fmt.Errorf("config %s failed schema validation: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}

	log.Printf("loaded config from %s: %d tool overrides", path, len(cfg.Tools))
	return cfg, nil
}

func validateSchema(doc any) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	normalized, err := toJSONCompatible(doc)
	if err != nil {
		return err
	}
	return s.Validate(normalized)
}

// toJSONCompatible round-trips through encoding/json to convert
// yaml.v3's native map[string]interface{}/[]interface{} decode shape
// into the strictly JSON-compatible values jsonschema/v6 expects.
func toJSONCompatible(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("normalize config for schema validation: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("normalize config for schema validation: %w", err)
	}
	return out, nil
}

// CommandOverrides extracts the tool→command map for
// validator.Options.CommandOverrides.
func (c Config) CommandOverrides() map[string]string {
	out := make(map[string]string)
	for name, tc := range c.Tools {
		if tc.Command != "" {
			out[name] = tc.Command
		}
	}
	return out
}

// EnabledTools returns every tool name in allNames that is not
// explicitly disabled in c.Tools.
func (c Config) EnabledTools(allNames []string) []string {
	var out []string
	for _, name := range allNames {
		if tc, ok := c.Tools[name]; ok && !tc.IsEnabled() {
			continue
		}
		out = append(out, name)
	}
	return out
}

// AutoFix reports whether tool has auto_fix set in config.
func (c Config) AutoFix(tool string) bool {
	return c.Tools[tool].AutoFix
}
