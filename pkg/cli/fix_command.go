package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// NewFixCommand creates the fix command: the same pass as validate,
// but with auto_fix enabled for every tool that supports it.
func NewFixCommand() *cobra.Command {
	var jsonFlag, refreshFlag, watchFlag bool

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Validate and auto-fix files in place",
		Long: `Fix runs every applicable tool with auto-fix enabled. Tools without a
fix mode (linters like flake8, mypy, bandit, shellcheck) still run as
checks; formatters (black, isort, prettier, taplo, terraform fmt)
rewrite files in place.

Examples:
  toolmesh fix                 # Fix the current directory
  toolmesh fix src/ tools/     # Fix specific paths`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = []string{"."}
			}
			verbose, _ := cmd.Flags().GetBool("verbose")
			opts := RunOptions{
				Paths:           paths,
				AutoFix:         true,
				Verbose:         verbose,
				JSON:            jsonFlag,
				GitLabCIRefresh: refreshFlag,
			}

			if watchFlag {
				return Watch(cmd.Context(), paths, opts)
			}

			result, err := Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			PrintResult(result, opts)
			if !result.Success {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&refreshFlag, "refresh", false, "Force-refresh the GitLab-CI schema cache")
	cmd.Flags().BoolVar(&watchFlag, "watch", false, "Re-run on file change")

	return cmd
}
