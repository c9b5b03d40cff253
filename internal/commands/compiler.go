package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zero-day-ai/jsonschema/format"
	"github.com/zero-day-ai/jsonschema/loader"
	"github.com/zero-day-ai/jsonschema/schema"
	"github.com/zero-day-ai/jsonschema/validator"
)

// formats returns a registry holding the built-in formats and the CEL
// formats of the config.
func (g *globals) formats() (*format.Registry, error) {
	registry := format.NewRegistry()
	for name, expr := range g.config.Formats {
		checker, err := format.CEL(expr)
		if err != nil {
			return nil, fmt.Errorf("format %s: %w", name, err)
		}
		registry.Register(name, checker)
		g.logger.Debug("registered CEL format", "name", name, "expr", expr)
	}
	return registry, nil
}

// compiler builds a compiler for schemas under dir. refs are extra
// documents given as uri=path.
func (g *globals) compiler(dir string, refs []string) (*validator.Compiler, error) {
	registry, err := g.formats()
	if err != nil {
		return nil, err
	}

	opts := []validator.Option{
		validator.WithLogger(g.logger),
		validator.WithFormats(registry),
		validator.WithLoader(loader.NewStore(dir)),
	}

	if g.config.Root != "" {
		root, err := loader.Load(g.config.Root)
		if err != nil {
			return nil, fmt.Errorf("root document: %w", err)
		}
		opts = append(opts, validator.WithRootDocument(root))
	}

	documents := append([]DocumentConfig(nil), g.config.Documents...)
	for _, r := range refs {
		uri, path, ok := strings.Cut(r, "=")
		if !ok || uri == "" || path == "" {
			return nil, fmt.Errorf("invalid --ref %q, want uri=path", r)
		}
		documents = append(documents, DocumentConfig{URI: uri, Path: path})
	}
	for _, d := range documents {
		raw, err := loader.Load(d.Path)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", d.URI, err)
		}
		opts = append(opts, validator.WithDocument(d.URI, raw))
	}

	return validator.NewCompiler(opts...)
}

// compileFile compiles the schema at path. Relative references resolve
// against the file's directory.
func (g *globals) compileFile(path string, refs []string) (*validator.Validator, error) {
	c, err := g.compiler(filepath.Dir(path), refs)
	if err != nil {
		return nil, err
	}
	raw, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	uri, err := loader.FileURI(path)
	if err != nil {
		return nil, err
	}
	doc, err := schema.NewDocument(uri, raw)
	if err != nil {
		return nil, err
	}
	return c.CompileNode(doc, doc.Root)
}
