package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zero-day-ai/jsonschema/loader"
	"github.com/zero-day-ai/jsonschema/schemaerr"
)

// errInvalid is returned when at least one document failed validation.
var errInvalid = errors.New("validation failed")

type validateOptions struct {
	schemaPath string
	refs       []string
	jobs       int
}

func newValidateCmd(g *globals) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate --schema <schema> <document>...",
		Short: "Validate JSON or YAML documents against a schema",
		Long: `Validates each document against the schema and prints every failure.
A document named "-" is read from standard input. Files ending in .jsonl
or .ndjson hold one document per line.

Examples:
  jsonschema validate --schema person.yaml alice.json bob.yaml
  cat order.json | jsonschema validate -s order.yaml -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, g, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.schemaPath, "schema", "s", "", "Schema file (JSON or YAML)")
	cmd.Flags().StringArrayVar(&opts.refs, "ref", nil, "Register a referenced document as uri=path (repeatable)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 4, "Number of documents validated in parallel")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runValidate(cmd *cobra.Command, g *globals, opts *validateOptions, files []string) error {
	v, err := g.compileFile(opts.schemaPath, opts.refs)
	if err != nil {
		return fmt.Errorf("compile %s: %w", opts.schemaPath, err)
	}
	g.logger.Debug("schema compiled", "schema", opts.schemaPath, "documents", len(files))

	var stdin []byte
	for _, f := range files {
		if f == "-" {
			if stdin, err = io.ReadAll(cmd.InOrStdin()); err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			break
		}
	}

	results := make([][]outcome, len(files))
	var grp errgroup.Group
	grp.SetLimit(max(opts.jobs, 1))
	for i, file := range files {
		grp.Go(func() error {
			docs, err := readDocuments(file, stdin)
			if err != nil {
				return err
			}
			for _, d := range docs {
				_, err := v.Validate(d.value)
				results[i] = append(results[i], outcome{name: d.name, err: err})
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed, total := 0, 0
	for _, outcomes := range results {
		for _, o := range outcomes {
			total++
			if o.err == nil {
				fmt.Fprintf(out, "ok   %s\n", o.name)
				continue
			}
			failed++
			fmt.Fprintf(out, "FAIL %s\n", o.name)
			writeFailures(out, o.err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d documents", errInvalid, failed, total)
	}
	return nil
}

type document struct {
	name  string
	value any
}

type outcome struct {
	name string
	err  error
}

// readDocuments decodes file, or stdin for "-". JSON Lines files yield one
// document per record, named file:line.
func readDocuments(file string, stdin []byte) ([]document, error) {
	if file == "-" {
		value, err := loader.Decode(stdin, "")
		if err != nil {
			return nil, fmt.Errorf("failed to parse stdin: %w", err)
		}
		return []document{{name: file, value: value}}, nil
	}
	if !loader.IsLines(filepath.Ext(file)) {
		value, err := loader.Load(file)
		if err != nil {
			return nil, err
		}
		return []document{{name: file, value: value}}, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	lines, err := loader.DecodeLines(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	docs := make([]document, len(lines))
	for i, l := range lines {
		docs[i] = document{name: fmt.Sprintf("%s:%d", file, l.Number), value: l.Value}
	}
	return docs, nil
}

// writeFailures prints one line per leaf failure: location, kind, message.
func writeFailures(w io.Writer, err error) {
	verr, ok := schemaerr.AsValidation(err)
	if !ok {
		fmt.Fprintf(w, "  %v\n", err)
		return
	}
	for _, leaf := range verr.Leaves() {
		location := leaf.Path.String()
		if location == "" {
			location = "(root)"
		}
		fmt.Fprintf(w, "  %s: %s [%s]\n", location, leaf.Message, leaf.Kind)
	}
}
