package commands

import "github.com/spf13/cobra"

func (c *CLI) newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph [root]",
		Short: "Print the build task graph in execution order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Graph(cmd.Context(), rootArg(args), scanOptions(cmd))
		},
	}
}
