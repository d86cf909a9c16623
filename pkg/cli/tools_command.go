package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/toolmesh/toolmesh/pkg/console"
	"github.com/toolmesh/toolmesh/pkg/validator"
)

// toolGroups buckets the registry's fixed roster by language family
// for the `tools` command's nested-list display.
var toolGroups = map[string][]string{
	"Python":     {"python-black", "ruff", "autoflake", "isort", "flake8", "mypy", "bandit"},
	"JavaScript": {"js-prettier", "js-eslint"},
	"Config":     {"taplo", "terraform", "yamllint", "gitlab-ci"},
	"Shell":      {"shellcheck"},
	"Docker":     {"hadolint", "dockerfile-lint"},
	"Other":      {"chapel", "ansible-lint", "go-vet"},
}

// NewToolsCommand creates the tools command: list every registered
// validator and whether it is currently available on this machine.
func NewToolsCommand() *cobra.Command {
	var availableOnly bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List registered validators and their availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := validator.NewRegistry(validator.Options{})
			ctx := context.Background()

			groupNames := make([]string, 0, len(toolGroups))
			for g := range toolGroups {
				groupNames = append(groupNames, g)
			}
			sort.Strings(groupNames)

			for _, group := range groupNames {
				var lines []string
				for _, name := range toolGroups[group] {
					v, ok := reg.Get(name)
					if !ok {
						continue
					}
					available := v.IsAvailable(ctx)
					if availableOnly && !available {
						continue
					}
					status := "available"
					if !available {
						status = "not available"
					}
					lines = append(lines, fmt.Sprintf("%s (%s)", name, status))
				}
				if len(lines) == 0 {
					continue
				}
				fmt.Println(console.FormatListHeader(group + ":"))
				fmt.Println(console.RenderList(lines, "bullet"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&availableOnly, "available", false, "Only list currently available tools")
	return cmd
}
