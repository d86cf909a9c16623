package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toolmesh/toolmesh/pkg/cli"
	"github.com/toolmesh/toolmesh/pkg/console"
)

// version is set by GoReleaser at build time.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "toolmesh",
	Short: "Dependency-aware parallel validator orchestration engine",
	Long: `toolmesh runs code-quality tools (formatters, linters, schema checkers)
against a file tree, scheduling them in dependency-respecting parallel
levels and reporting a unified pass/fail summary.

Common Tasks:
  toolmesh validate             # Check the current directory
  toolmesh fix                  # Check and auto-fix in place
  toolmesh plan src/             # Show the resolved execution plan
  toolmesh tools                 # List registered validators

For detailed help on any command, use:
  toolmesh [command] --help`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.AddGroup(&cobra.Group{ID: "run", Title: "Run Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "inspect", Title: "Inspection Commands:"})

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output showing detailed information")
	rootCmd.SetOut(os.Stderr)

	rootCmd.SetVersionTemplate(fmt.Sprintf("%s\n",
		console.FormatInfoMessage("toolmesh version {{.Version}}")))

	validateCmd := cli.NewValidateCommand()
	fixCmd := cli.NewFixCommand()
	planCmd := cli.NewPlanCommand()
	toolsCmd := cli.NewToolsCommand()
	versionCmd := cli.NewVersionCommand()

	validateCmd.GroupID = "run"
	fixCmd.GroupID = "run"
	planCmd.GroupID = "inspect"
	toolsCmd.GroupID = "inspect"

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	cli.SetVersionInfo(version)
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		os.Exit(1)
	}
}
