package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newGenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen [dir]",
		Short: "Write type tags for the opted-in types of a package",
		Long: `Scan the package in dir (default: the current directory) for type declarations
marked //kindred:unify and write their tags to kindred_gen.go.

Intended to run from a go:generate directive:

	//go:generate kindred gen`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return c.app.Generate(cmd.Context(), dir)
		},
	}
}
