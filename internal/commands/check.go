package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(g *globals) *cobra.Command {
	var refs []string

	cmd := &cobra.Command{
		Use:   "check <schema>...",
		Short: "Compile schemas without validating documents",
		Long: `Compiles each schema and reports invalid keywords and unresolvable references.

Examples:
  jsonschema check person.yaml
  jsonschema check --ref common.json=schemas/common.yaml order.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if _, err := g.compileFile(path, refs); err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s\n  %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d schemas are invalid", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&refs, "ref", nil, "Register a referenced document as uri=path (repeatable)")

	return cmd
}
