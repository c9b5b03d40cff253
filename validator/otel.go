package validator

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/zero-day-ai/jsonschema/validator"

// compilerMetrics holds the instruments recorded by a Compiler. A nil
// *compilerMetrics records nothing.
type compilerMetrics struct {
	// compiles counts CompileNode calls that built a new validator.
	compiles metric.Int64Counter

	// cacheHits counts CompileNode calls answered from the cache.
	cacheHits metric.Int64Counter

	// deferred counts references compiled as deferred cycles.
	deferred metric.Int64Counter

	// duration records compile time in milliseconds.
	duration metric.Float64Histogram
}

func newCompilerMetrics(mp metric.MeterProvider) (*compilerMetrics, error) {
	if mp == nil {
		return nil, nil
	}
	meter := mp.Meter(instrumentationName)

	m := &compilerMetrics{}
	var err error

	m.compiles, err = meter.Int64Counter(
		"jsonschema.compile.count",
		metric.WithDescription("Number of schemas compiled"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create compile counter: %w", err)
	}

	m.cacheHits, err = meter.Int64Counter(
		"jsonschema.compile.cache_hits",
		metric.WithDescription("Number of compilations served from the validator cache"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create cache hit counter: %w", err)
	}

	m.deferred, err = meter.Int64Counter(
		"jsonschema.compile.deferred_refs",
		metric.WithDescription("Number of cyclic references compiled as deferred"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create deferred reference counter: %w", err)
	}

	m.duration, err = meter.Float64Histogram(
		"jsonschema.compile.duration",
		metric.WithDescription("Schema compile duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	return m, nil
}

func (m *compilerMetrics) cacheHit(ctx context.Context) {
	if m == nil {
		return
	}
	m.cacheHits.Add(ctx, 1)
}

func (m *compilerMetrics) deferredRef(ctx context.Context) {
	if m == nil {
		return
	}
	m.deferred.Add(ctx, 1)
}

func (m *compilerMetrics) compiled(ctx context.Context, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.Bool("success", err == nil))
	m.compiles.Add(ctx, 1, attrs)
	m.duration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
}
