package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kindred/internal/app"
)

func (c *CLI) newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Compute the state table of the workspace and persist it",
		Long: `Resolve the dependency closure of every module that depends on the kindred runtime,
hash it into one state tag per module and write the table to .kindred/state.json.

Resolution failures do not fail the export. They are recorded in the table and
reported by the first "kindred gen" that reads it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printVars, _ := cmd.Flags().GetBool("print")
			dir, _ := cmd.Flags().GetString("dir")

			return c.app.Export(cmd.Context(), app.ExportOptions{
				Dir:   dir,
				Print: printVars,
				Out:   cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().BoolP("print", "p", false, "Also print KINDRED_* variables for shells and CI")
	cmd.Flags().StringP("dir", "C", "", "Discover the workspace from this directory")

	return cmd
}
