package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [root]",
		Short: "Scan a source tree and refresh its cache",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := c.app.Scan(cmd.Context(), rootArg(args), scanOptions(cmd))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"%d files, %d projects, %d modules, %d tasks, %d unresolved dependencies, %d warnings\n",
				rep.Scan.Files,
				len(rep.Cache.Projects()),
				len(rep.Cache.Modules()),
				rep.Graph.Len(),
				rep.Unresolved,
				len(rep.Warnings),
			)
			return err
		},
	}
}
