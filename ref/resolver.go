package ref

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/zero-day-ai/jsonschema/schema"
	"github.com/zero-day-ai/jsonschema/schemaerr"
)

// ErrUnknownDocument is returned when a reference names a document that is
// neither registered nor provided by the Loader.
var ErrUnknownDocument = errors.New("unknown document")

// Loader supplies documents the resolver has not seen. Implementations
// decide which URIs they serve; they must not fetch from the network
// unless explicitly configured to.
type Loader interface {
	Load(uri string) (any, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(uri string) (any, error)

// Load calls f(uri).
func (f LoaderFunc) Load(uri string) (any, error) {
	return f(uri)
}

// Resolver maps references to schema nodes. It is safe for concurrent use.
type Resolver struct {
	mu     sync.RWMutex
	docs   map[string]*schema.Document
	root   *schema.Document
	loader Loader
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRoot sets the root document. A fragment pointer ("#/...") that the
// document it appears in cannot address is looked up in the root, which is
// how OpenAPI component references behave. "#" and anchors always stay
// local.
func WithRoot(doc *schema.Document) Option {
	return func(r *Resolver) {
		r.root = doc
	}
}

// WithLoader sets the Loader consulted for unknown document URIs.
func WithLoader(l Loader) Option {
	return func(r *Resolver) {
		r.loader = l
	}
}

// NewResolver creates a resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{docs: make(map[string]*schema.Document)}
	for _, opt := range opts {
		opt(r)
	}
	if r.root != nil {
		r.docs[r.root.URI] = r.root
	}
	return r
}

// AddDocument registers doc under its URI, replacing any previous document
// with the same URI.
func (r *Resolver) AddDocument(doc *schema.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.URI] = doc
}

// AddRaw parses raw as the document identified by uri and registers it.
func (r *Resolver) AddRaw(uri string, raw any) (*schema.Document, error) {
	doc, err := schema.NewDocument(uri, raw)
	if err != nil {
		return nil, fmt.Errorf("add document %s: %w", uri, err)
	}
	r.AddDocument(doc)
	return doc, nil
}

// Document returns the registered document with the given URI.
func (r *Resolver) Document(uri string) (*schema.Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[strings.TrimSuffix(uri, "#")]
	return doc, ok
}

// Root returns the configured root document, or nil.
func (r *Resolver) Root() *schema.Document {
	return r.root
}

// Resolve returns the node that ref points to, together with the document
// that owns it. base is the document the reference appears in. Failures
// are reported as *schemaerr.ReferenceError.
func (r *Resolver) Resolve(base *schema.Document, ref string) (*schema.Node, *schema.Document, error) {
	node, doc, err := r.resolveIn(base, ref)
	if err != nil && r.root != nil && r.root != base && strings.HasPrefix(ref, "#/") {
		if node, doc, rootErr := r.resolveIn(r.root, ref); rootErr == nil {
			return node, doc, nil
		}
	}
	if err != nil {
		return nil, nil, schemaerr.NewReferenceError(ref, base.URI, err)
	}
	return node, doc, nil
}

func (r *Resolver) resolveIn(base *schema.Document, ref string) (*schema.Node, *schema.Document, error) {
	p, err := Parse(base.URI, ref)
	if err != nil {
		return nil, nil, err
	}

	doc, prefix, err := r.locate(base, p.URI)
	if err != nil {
		return nil, nil, err
	}

	if p.Anchor != "" {
		node, ok := doc.Anchor(p.Anchor)
		if !ok {
			return nil, nil, fmt.Errorf("anchor %q not found in %s", p.Anchor, doc.URI)
		}
		return node, doc, nil
	}
	node, err := doc.Lookup(prefix + p.Fragment)
	if err != nil {
		return nil, nil, err
	}
	return node, doc, nil
}

// locate finds the document for uri. When uri names a subschema that
// declared it as "$id", the returned prefix is that subschema's pointer.
func (r *Resolver) locate(base *schema.Document, uri string) (*schema.Document, string, error) {
	if uri == base.URI {
		return base, "", nil
	}
	if doc, ok := r.Document(uri); ok {
		return doc, "", nil
	}

	r.mu.RLock()
	candidates := make([]*schema.Document, 0, len(r.docs)+1)
	candidates = append(candidates, base)
	for _, doc := range r.docs {
		candidates = append(candidates, doc)
	}
	r.mu.RUnlock()
	for _, doc := range candidates {
		if node, ok := doc.Resource(uri); ok {
			return doc, strings.TrimPrefix(node.Pointer, "#"), nil
		}
	}

	if r.loader == nil {
		return nil, "", fmt.Errorf("%w: %s", ErrUnknownDocument, uri)
	}
	raw, err := r.loader.Load(uri)
	if err != nil {
		return nil, "", fmt.Errorf("load %s: %w", uri, err)
	}
	doc, err := schema.NewDocument(uri, raw)
	if err != nil {
		return nil, "", fmt.Errorf("load %s: %w", uri, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.docs[uri]; ok {
		return existing, "", nil
	}
	r.docs[uri] = doc
	return doc, "", nil
}
