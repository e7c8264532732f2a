package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/splitter/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [configs...]",
		Short: "Compile the given configs, or every discovered config",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := workingDir(cmd)
			if err != nil {
				return err
			}
			noCache, _ := cmd.Flags().GetBool("no-cache")
			jobs, _ := cmd.Flags().GetInt("jobs")
			driver, _ := cmd.Flags().GetString("driver")
			watch, _ := cmd.Flags().GetBool("watch")

			return c.app.Build(cmd.Context(), cwd, args, app.BuildOptions{
				NoCache: noCache,
				Jobs:    jobs,
				Driver:  strings.Fields(driver),
				Watch:   watch,
			})
		},
	}
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the build cache and force execution")
	cmd.Flags().IntP("jobs", "j", 0, "Maximum number of concurrent builds (default: number of CPUs)")
	cmd.Flags().String("driver", "", "Driver command line (default: fable-splitter)")
	cmd.Flags().BoolP("watch", "w", false, "Rebuild when project files change")
	return cmd
}
