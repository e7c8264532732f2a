package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/splitter/internal/app"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [configs...]",
		Short: "Print the resolved build configuration",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := workingDir(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("output")
			return c.app.Resolve(cwd, args, format, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringP("output", "o", app.FormatJSON, "Output format (json or yaml)")
	return cmd
}
