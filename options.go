package jsonschema

import (
	"log/slog"

	"github.com/zero-day-ai/jsonschema/validator"
)

// DefaultCacheSize is the number of compiled raw schemas an Engine keeps.
const DefaultCacheSize = 256

// Option configures an Engine.
type Option func(*engineConfig)

// engineConfig holds configuration for an Engine.
type engineConfig struct {
	cacheSize    int
	logger       *slog.Logger
	compilerOpts []validator.Option
}

// WithCacheSize bounds the number of compiled raw schemas kept by the
// engine. Schemas given as *schema.Node are cached by identity and do not
// count. A size below 1 selects DefaultCacheSize.
func WithCacheSize(n int) Option {
	return func(c *engineConfig) {
		c.cacheSize = n
	}
}

// WithLogger sets the logger for the engine and its compiler.
func WithLogger(logger *slog.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithCompilerOptions passes options to the underlying compiler, e.g.
// validator.WithRootDocument or validator.WithFormats.
func WithCompilerOptions(opts ...validator.Option) Option {
	return func(c *engineConfig) {
		c.compilerOpts = append(c.compilerOpts, opts...)
	}
}
