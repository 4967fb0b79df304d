package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/cxxgraph/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "cxxgraph version %s (commit: %s, date: %s)\n",
				build.Version, build.Commit, build.Date)
			return err
		},
	}
}
