package commands

import "github.com/spf13/cobra"

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [root]",
		Short: "Rescan the tree whenever sources, headers or settings change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Watch(cmd.Context(), rootArg(args), scanOptions(cmd))
		},
	}
}
