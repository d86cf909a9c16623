package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command: run every
// applicable checker-only pass over the given paths (default ".").
func NewValidateCommand() *cobra.Command {
	var jsonFlag, refreshFlag bool
	var watchFlag bool

	cmd := &cobra.Command{
		Use:   "validate [paths...]",
		Short: "Validate files against their applicable tools",
		Long: `Validate runs every tool whose CanHandle matches a discovered file,
in dependency order, and reports a summary of errors and warnings.

Examples:
  toolmesh validate                 # Validate the current directory
  toolmesh validate src/ tools/     # Validate specific paths
  toolmesh validate --json          # Emit machine-readable JSON
  toolmesh validate --watch src/    # Re-validate on file change`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = []string{"."}
			}
			verbose, _ := cmd.Flags().GetBool("verbose")
			opts := RunOptions{
				Paths:           paths,
				AutoFix:         false,
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
	cmd.Flags().BoolVar(&watchFlag, "watch", false, "Re-run validation whenever a watched file changes")

	return cmd
}
