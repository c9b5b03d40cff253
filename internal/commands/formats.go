package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFormatsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the available format names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := g.formats()
			if err != nil {
				return err
			}
			for _, name := range registry.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
