package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the exported state table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			return c.app.Show(cmd.Context(), dir, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringP("dir", "C", "", "Discover the workspace from this directory")

	return cmd
}
