package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toolmesh/toolmesh/pkg/console"
)

// versionInfo is set by the main package via SetVersionInfo.
var versionInfo = "dev"

// SetVersionInfo records the build-time version string for the
// version command and the root command's version template.
func SetVersionInfo(version string) {
	versionInfo = version
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(console.FormatInfoMessage(fmt.Sprintf("toolmesh version %s", versionInfo)))
		},
	}
}
