package jsonschema

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/zero-day-ai/jsonschema/internal/jsonvalue"
	"github.com/zero-day-ai/jsonschema/schema"
	"github.com/zero-day-ai/jsonschema/validator"
)

// Engine compiles and caches schemas. It is safe for concurrent use.
type Engine struct {
	compiler *validator.Compiler
	cache    *lruCache
	group    singleflight.Group
	logger   *slog.Logger
}

// New creates an Engine.
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.cacheSize < 1 {
		cfg.cacheSize = DefaultCacheSize
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	compilerOpts := append([]validator.Option{validator.WithLogger(cfg.logger)}, cfg.compilerOpts...)
	compiler, err := validator.NewCompiler(compilerOpts...)
	if err != nil {
		return nil, fmt.Errorf("create compiler: %w", err)
	}

	return &Engine{
		compiler: compiler,
		cache:    newLRUCache(cfg.cacheSize),
		logger:   cfg.logger,
	}, nil
}

// Compiler returns the engine's compiler.
func (e *Engine) Compiler() *validator.Compiler {
	return e.compiler
}

// Compile returns the validator for s. Nodes and documents are cached by
// identity; other inputs by their canonical JSON text, so two maps with the
// same content share one validator.
func (e *Engine) Compile(s any) (*validator.Validator, error) {
	switch in := s.(type) {
	case *schema.Node, *schema.Document:
		return e.compiler.Compile(in)
	}

	decoded, err := decodeSchema(s)
	if err != nil {
		// Let the compiler report the unusable input.
		return e.compiler.Compile(s)
	}
	key := jsonvalue.Canonical(decoded)
	if v, ok := e.cache.get(key); ok {
		return v, nil
	}

	compiled, err, _ := e.group.Do(key, func() (any, error) {
		if v, ok := e.cache.get(key); ok {
			return v, nil
		}
		v, err := e.compiler.Compile(decoded)
		if err != nil {
			return nil, err
		}
		if evicted := e.cache.add(key, v); evicted != nil {
			e.compiler.Forget(evicted.Document())
			e.logger.Debug("schema evicted from cache", "uri", evicted.Document().URI)
		}
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return compiled.(*validator.Validator), nil
}

// Validate compiles s, or reuses its cached compilation, and validates
// value. It returns value unchanged on success.
func (e *Engine) Validate(value, s any) (any, error) {
	v, err := e.Compile(s)
	if err != nil {
		return nil, err
	}
	return v.Validate(value)
}

func decodeSchema(s any) (any, error) {
	switch raw := s.(type) {
	case []byte:
		return jsonvalue.Decode(raw)
	case json.RawMessage:
		return jsonvalue.Decode(raw)
	}
	return jsonvalue.Normalize(s)
}
