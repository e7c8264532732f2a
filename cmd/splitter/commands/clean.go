package commands

import "github.com/spf13/cobra"

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [configs...]",
		Short: "Remove build state",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := workingDir(cmd)
			if err != nil {
				return err
			}
			outputs, _ := cmd.Flags().GetBool("outputs")
			return c.app.Clean(cwd, args, outputs)
		},
	}
	cmd.Flags().Bool("outputs", false, "Also remove the output directory of every config")
	return cmd
}
