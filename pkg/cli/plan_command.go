package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toolmesh/toolmesh/pkg/console"
	"github.com/toolmesh/toolmesh/pkg/depgraph"
	"github.com/toolmesh/toolmesh/pkg/validator"
)

// NewPlanCommand creates the plan command: resolve the execution plan
// for the tools that would run against the given paths (or an
// explicit --tools list) without running anything, mirroring
// demo_parallel_executor.py's visualize_dependencies output.
func NewPlanCommand() *cobra.Command {
	var toolsFlag []string
	var statsFlag bool

	cmd := &cobra.Command{
		Use:   "plan [paths...]",
		Short: "Show the dependency-resolved execution plan without running anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			var names []string
			if len(toolsFlag) > 0 {
				names = toolsFlag
			} else {
				paths := args
				if len(paths) == 0 {
					paths = []string{"."}
				}
				files, err := DiscoverFiles(paths)
				if err != nil {
					return err
				}
				reg := validator.NewRegistry(validator.Options{})
				seen := make(map[string]struct{})
				for _, f := range files {
					for _, v := range reg.ForFile(f) {
						seen[v.Name()] = struct{}{}
					}
				}
				for name := range seen {
					names = append(names, name)
				}
			}

			if len(names) == 0 {
				fmt.Fprintln(os.Stderr, console.FormatInfoMessage("no applicable tools found"))
				return nil
			}

			graph, err := depgraph.New(names)
			if err != nil {
				return err
			}
			plan := graph.TopologicalLevels()
			fmt.Print(graph.Visualize(plan))

			if statsFlag {
				stats := plan.GetStatistics(1.0)
				fmt.Println()
				fmt.Println(console.FormatInfoMessage(fmt.Sprintf(
					"%d tool(s), %d level(s), max parallelism %d, avg parallelism %.2f, estimated speedup %.2fx",
					stats.TotalTools, stats.TotalLevels, stats.MaxParallelism, stats.AvgParallelism, stats.SpeedupFactor)))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&toolsFlag, "tools", nil, "Comma-separated tool names instead of discovering from paths")
	cmd.Flags().BoolVar(&statsFlag, "stats", false, "Show execution plan statistics")

	return cmd
}
