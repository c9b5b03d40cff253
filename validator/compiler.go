package validator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/jsonschema/format"
	"github.com/zero-day-ai/jsonschema/ref"
	"github.com/zero-day-ai/jsonschema/schema"
	"github.com/zero-day-ai/jsonschema/schemaerr"
)

// ErrNoRoot is returned by CompileRef when no root document is configured.
var ErrNoRoot = errors.New("no root document configured")

// Compiler builds validators. It is safe for concurrent use.
type Compiler struct {
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  *compilerMetrics
	formats  *format.Registry
	resolver *ref.Resolver

	// cache maps *schema.Node to *Validator.
	cache sync.Map
}

// NewCompiler creates a Compiler. It fails when a configured document is
// not a schema or the meter provider rejects an instrument.
func NewCompiler(opts ...Option) (*Compiler, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	if cfg.formats == nil {
		cfg.formats = format.Default()
	}

	metrics, err := newCompilerMetrics(cfg.meterProvider)
	if err != nil {
		return nil, err
	}

	var ropts []ref.Option
	if cfg.root != nil {
		root, err := schema.NewDocument("", cfg.root)
		if err != nil {
			return nil, fmt.Errorf("root document: %w", err)
		}
		ropts = append(ropts, ref.WithRoot(root))
	}
	if cfg.loader != nil {
		ropts = append(ropts, ref.WithLoader(cfg.loader))
	}
	resolver := ref.NewResolver(ropts...)
	for _, d := range cfg.documents {
		if _, err := resolver.AddRaw(d.uri, d.raw); err != nil {
			return nil, fmt.Errorf("document %s: %w", d.uri, err)
		}
	}

	return &Compiler{
		logger:   cfg.logger,
		tracer:   cfg.tracer,
		metrics:  metrics,
		formats:  cfg.formats,
		resolver: resolver,
	}, nil
}

// Resolver returns the resolver holding the compiler's documents.
func (c *Compiler) Resolver() *ref.Resolver {
	return c.resolver
}

// Compile builds a validator for input, which may be a *schema.Node, a
// *schema.Document, a bool, a decoded JSON object, or JSON text as []byte
// or json.RawMessage.
func (c *Compiler) Compile(input any) (*Validator, error) {
	if n, ok := input.(*schema.Node); ok && n != nil {
		doc, err := schema.NewDocument("", n)
		if err != nil {
			return nil, err
		}
		return c.CompileNode(doc, n)
	}
	doc, err := schema.NewDocument("", input)
	if err != nil {
		return nil, err
	}
	return c.CompileNode(doc, doc.Root)
}

// CompileRef builds a validator for a reference into the root document,
// e.g. "#/components/schemas/Pet".
func (c *Compiler) CompileRef(reference string) (*Validator, error) {
	root := c.resolver.Root()
	if root == nil {
		return nil, fmt.Errorf("compile %s: %w", reference, ErrNoRoot)
	}
	node, doc, err := c.resolver.Resolve(root, reference)
	if err != nil {
		return nil, err
	}
	return c.CompileNode(doc, node)
}

// CompileNode builds the validator for node, which belongs to doc. The
// result is cached by node identity: every call for the same node returns
// the same *Validator.
func (c *Compiler) CompileNode(doc *schema.Document, node *schema.Node) (*Validator, error) {
	ctx := context.Background()
	if v, ok := c.cache.Load(node); ok {
		c.metrics.cacheHit(ctx)
		c.logger.Debug("validator cache hit", "uri", doc.URI, "pointer", node.Pointer)
		return v.(*Validator), nil
	}

	var span trace.Span
	if c.tracer != nil {
		ctx, span = c.tracer.Start(ctx, "jsonschema.compile")
		defer span.End()
		span.SetAttributes(
			attribute.String("schema.uri", doc.URI),
			attribute.String("schema.pointer", node.Pointer),
		)
	}

	start := time.Now()
	st := &compileState{
		ctx:     ctx,
		c:       c,
		session: ref.NewSession(),
		local:   make(map[*schema.Node]*Validator),
	}
	_, err := st.compile(doc, node, false)
	elapsed := time.Since(start)
	c.metrics.compiled(ctx, elapsed, err)

	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		c.logger.Debug("schema compilation failed", "uri", doc.URI, "pointer", node.Pointer, "error", err)
		return nil, err
	}

	// Publish only after the whole graph compiled, so a failed compilation
	// leaves nothing behind. A cycle target is always on the session stack
	// when deferred, so it is in local once compilation succeeds.
	for _, d := range st.deferred {
		d.target = st.local[d.node]
	}
	for n, v := range st.local {
		c.cache.LoadOrStore(n, v)
	}
	actual, _ := c.cache.Load(node)

	if span != nil {
		span.SetAttributes(attribute.Int("schema.validators", len(st.local)))
		span.SetStatus(codes.Ok, "")
	}
	c.logger.Debug("schema compiled",
		"uri", doc.URI,
		"pointer", node.Pointer,
		"validators", len(st.local),
		"duration", elapsed,
	)
	return actual.(*Validator), nil
}

// Forget drops the cached validators of every node in doc. Validators
// already handed out keep working.
func (c *Compiler) Forget(doc *schema.Document) {
	c.cache.Range(func(key, value any) bool {
		if value.(*Validator).doc == doc {
			c.cache.Delete(key)
		}
		return true
	})
}

// compileState is the state of one CompileNode call.
type compileState struct {
	ctx      context.Context
	c        *Compiler
	session  *ref.Session
	local    map[*schema.Node]*Validator
	deferred []*deferred
}

// compile returns the runner for node. descend reports whether node
// applies to a child of the value its parent applies to.
func (st *compileState) compile(doc *schema.Document, node *schema.Node, descend bool) (runner, error) {
	if v, ok := st.c.cache.Load(node); ok {
		return v.(*Validator), nil
	}
	if v, ok := st.local[node]; ok {
		return v, nil
	}
	if !st.session.Enter(node, descend) {
		if !descend && !st.session.Descends(node) {
			return nil, schemaerr.NewSchemaError(node.Pointer, "$ref",
				"reference cycle never descends into the value")
		}
		st.c.metrics.deferredRef(st.ctx)
		st.c.logger.Debug("deferred reference", "uri", doc.URI, "pointer", node.Pointer)
		d := &deferred{node: node}
		st.deferred = append(st.deferred, d)
		return d, nil
	}
	defer st.session.Leave(node)

	v, err := st.build(doc, node)
	if err != nil {
		return nil, err
	}
	st.local[node] = v
	return v, nil
}

// build attaches the checks of node in their fixed order.
func (st *compileState) build(doc *schema.Document, node *schema.Node) (*Validator, error) {
	v := &Validator{node: node, doc: doc}
	if node.IsFalse() {
		v.checks = append(v.checks, falseSchema)
		return v, nil
	}
	if node.IsTrue() {
		return v, nil
	}
	if err := checkFamilies(node); err != nil {
		return nil, err
	}

	steps := []func(*schema.Document, *schema.Node) ([]check, error){
		st.typeChecks,
		st.valueChecks,
		st.numberChecks,
		st.stringChecks,
		st.arrayChecks,
		st.objectChecks,
		st.combinatorChecks,
		st.refChecks,
	}
	for _, step := range steps {
		checks, err := step(doc, node)
		if err != nil {
			return nil, err
		}
		v.checks = append(v.checks, checks...)
	}
	return v, nil
}

// child compiles a subschema applied to the same value.
func (st *compileState) child(doc *schema.Document, node *schema.Node) (runner, error) {
	return st.compile(doc, node, false)
}

// descendant compiles a subschema applied to a property, item or name.
func (st *compileState) descendant(doc *schema.Document, node *schema.Node) (runner, error) {
	return st.compile(doc, node, true)
}

// checkFamilies rejects keywords whose type is excluded by an explicit
// "type". "format" is exempt: OpenAPI attaches formats such as "int32" to
// numbers.
func checkFamilies(n *schema.Node) error {
	if n.Types.Empty() {
		return nil
	}
	fail := func(keyword, family string) error {
		return schemaerr.NewSchemaError(n.Pointer, keyword,
			fmt.Sprintf("%s keyword cannot apply to type %s", family, n.Types))
	}
	if k := n.Numeric; k != nil && !n.Types.Has(schema.TypeNumber) && !n.Types.Has(schema.TypeInteger) {
		return fail(numericKeyword(k), "numeric")
	}
	if k := n.String; k != nil && !n.Types.Has(schema.TypeString) {
		return fail(stringKeyword(k), "string")
	}
	if k := n.Array; k != nil && !n.Types.Has(schema.TypeArray) {
		return fail(arrayKeyword(k), "array")
	}
	if k := n.Object; k != nil && !n.Types.Has(schema.TypeObject) {
		return fail(objectKeyword(k), "object")
	}
	return nil
}

func numericKeyword(k *schema.NumericKeywords) string {
	switch {
	case k.MultipleOf != nil:
		return "multipleOf"
	case k.Minimum != nil:
		return "minimum"
	case k.Maximum != nil:
		return "maximum"
	case k.ExclusiveMinimum != nil:
		return "exclusiveMinimum"
	default:
		return "exclusiveMaximum"
	}
}

func stringKeyword(k *schema.StringKeywords) string {
	switch {
	case k.MinLength != nil:
		return "minLength"
	case k.MaxLength != nil:
		return "maxLength"
	default:
		return "pattern"
	}
}

func arrayKeyword(k *schema.ArrayKeywords) string {
	switch {
	case k.Items != nil || k.TupleItems != nil:
		return "items"
	case k.AdditionalItems != nil:
		return "additionalItems"
	case k.Contains != nil:
		return "contains"
	case k.MinItems != nil:
		return "minItems"
	case k.MaxItems != nil:
		return "maxItems"
	default:
		return "uniqueItems"
	}
}

func objectKeyword(k *schema.ObjectKeywords) string {
	switch {
	case k.Properties != nil:
		return "properties"
	case k.PatternProperties != nil:
		return "patternProperties"
	case k.AdditionalProperties != nil:
		return "additionalProperties"
	case k.PropertyNames != nil:
		return "propertyNames"
	case k.Required != nil:
		return "required"
	case k.MinProperties != nil:
		return "minProperties"
	case k.MaxProperties != nil:
		return "maxProperties"
	case k.DependentRequired != nil:
		return "dependentRequired"
	default:
		return "dependentSchemas"
	}
}
