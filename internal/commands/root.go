// Package commands implements the jsonschema command line tool.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// Version is the tool version reported by --version.
var Version = "0.1.0"

// globals holds the persistent flags and what is derived from them before
// a subcommand runs.
type globals struct {
	verbose    bool
	configPath string

	config *Config
	logger *slog.Logger
}

// RootCmd creates the jsonschema command with all subcommands.
func RootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   "jsonschema",
		Short: "Validate JSON and YAML documents against JSON Schemas",
		Long: `jsonschema compiles draft-7 JSON Schemas, including OpenAPI 3 schemas,
and validates JSON or YAML documents against them.

Examples:
  jsonschema validate --schema person.yaml alice.json bob.yaml
  jsonschema check openapi.yaml
  jsonschema formats`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if g.verbose {
				level = slog.LevelDebug
			}
			g.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			cfg, err := LoadConfig(g.configPath)
			if err != nil {
				return err
			}
			g.config = cfg
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file (default .jsonschema.yaml)")

	cmd.AddCommand(newValidateCmd(g))
	cmd.AddCommand(newCheckCmd(g))
	cmd.AddCommand(newFormatsCmd(g))

	return cmd
}
