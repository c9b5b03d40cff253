package validator

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/jsonschema/format"
	"github.com/zero-day-ai/jsonschema/ref"
)

// Option configures a Compiler.
type Option func(*config)

type namedDocument struct {
	uri string
	raw any
}

type config struct {
	logger        *slog.Logger
	tracer        trace.Tracer
	meterProvider metric.MeterProvider
	formats       *format.Registry
	documents     []namedDocument
	root          any
	loader        ref.Loader
}

// WithLogger sets the logger used for compilation events. Validation never
// logs. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithTracer enables a span per compilation.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *config) {
		c.tracer = tracer
	}
}

// WithMeterProvider enables compilation metrics.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) {
		c.meterProvider = mp
	}
}

// WithFormats sets the registry consulted by "format". The default is
// format.Default(). Lookups happen at validation time, so checkers
// registered after compilation still apply.
func WithFormats(r *format.Registry) Option {
	return func(c *config) {
		c.formats = r
	}
}

// WithDocument makes raw available to references under uri, e.g.
// "common.json#/$defs/id".
func WithDocument(uri string, raw any) Option {
	return func(c *config) {
		c.documents = append(c.documents, namedDocument{uri: uri, raw: raw})
	}
}

// WithRootDocument sets the document that answers fragment pointers a
// schema's own document cannot address, such as an OpenAPI description
// whose schemas refer to "#/components/schemas/...".
func WithRootDocument(raw any) Option {
	return func(c *config) {
		c.root = raw
	}
}

// WithLoader sets the hook used to fetch documents that were not
// registered up front.
func WithLoader(l ref.Loader) Option {
	return func(c *config) {
		c.loader = l
	}
}
