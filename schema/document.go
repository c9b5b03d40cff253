package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/zero-day-ai/jsonschema/internal/jsonvalue"
	"github.com/zero-day-ai/jsonschema/schemaerr"
)

// Document owns a parsed schema tree together with the raw value it came
// from. It indexes every node by JSON pointer and every anchor by name, so
// references can be resolved without walking the tree.
//
// Locations outside the schema tree, such as OpenAPI "components/schemas"
// entries, are parsed the first time Lookup reaches them. The parsed node
// is memoized, so repeated lookups return the same *Node.
type Document struct {
	// URI identifies the document. It is the value passed to NewDocument,
	// else the root "$id", else a generated "urn:uuid:" URI.
	URI string

	// Raw is the decoded value the document was parsed from.
	Raw any

	// Root is the schema at the empty pointer.
	Root *Node

	mu        sync.Mutex
	nodes     map[string]*Node
	anchors   map[string]*Node
	resources map[string]*Node
}

// NewDocument parses raw and indexes the resulting tree.
//
// raw may be a decoded JSON or YAML value (map[string]any, map[any]any,
// bool), JSON text as []byte or json.RawMessage, or a *Node built in code.
func NewDocument(uri string, raw any) (*Document, error) {
	switch v := raw.(type) {
	case json.RawMessage:
		raw = []byte(v)
	case *Document:
		return v, nil
	case *Node:
		return adoptRoot(uri, v), nil
	}
	if data, ok := raw.([]byte); ok {
		decoded, err := jsonvalue.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("%w: decode JSON: %v", schemaerr.ErrUnsupportedInput, err)
		}
		raw = decoded
	}

	switch raw.(type) {
	case bool:
	default:
		if _, ok := asMap(raw); !ok {
			return nil, fmt.Errorf("%w: %T", schemaerr.ErrUnsupportedInput, raw)
		}
	}

	root, err := parseNode(raw, "")
	if err != nil {
		return nil, err
	}

	d := &Document{
		URI:       normalizeURI(uri),
		Raw:       raw,
		Root:      root,
		nodes:     make(map[string]*Node),
		anchors:   make(map[string]*Node),
		resources: make(map[string]*Node),
	}
	if d.URI == "" && root.ID != "" && !strings.HasPrefix(root.ID, "#") {
		d.URI = normalizeURI(root.ID)
	}
	if d.URI == "" {
		d.URI = "urn:uuid:" + uuid.NewString()
	}
	d.adopt(root, "", d.URI, make(map[*Node]*Node))
	return d, nil
}

// adoptMu serializes adoption of nodes built in code, which may be handed
// to several compilations at once.
var adoptMu sync.Mutex

// adoptRoot returns the document owning root, creating it on first use. A
// node belongs to at most one document.
func adoptRoot(uri string, root *Node) *Document {
	adoptMu.Lock()
	defer adoptMu.Unlock()
	if root.doc != nil {
		return root.doc
	}
	d := &Document{
		URI:       normalizeURI(uri),
		Raw:       root,
		Root:      root,
		nodes:     make(map[string]*Node),
		anchors:   make(map[string]*Node),
		resources: make(map[string]*Node),
	}
	if d.URI == "" && root.ID != "" && !strings.HasPrefix(root.ID, "#") {
		d.URI = normalizeURI(root.ID)
	}
	if d.URI == "" {
		d.URI = "urn:uuid:" + uuid.NewString()
	}
	d.adopt(root, "", d.URI, make(map[*Node]*Node))
	return d
}

// normalizeURI drops an empty trailing fragment, so "x.json#" and "x.json"
// name the same document.
func normalizeURI(uri string) string {
	return strings.TrimSuffix(uri, "#")
}

// adopt indexes n and its subschemas under pointer and returns the node
// that stands for n in d. Nodes built in code get their Pointer assigned
// here; parsed nodes keep theirs. A node that already belongs to another
// document is copied, so each node has exactly one owner. base is the URI
// that embedded "$id" values resolve against.
func (d *Document) adopt(n *Node, pointer, base string, seen map[*Node]*Node) *Node {
	if m, ok := seen[n]; ok {
		return m
	}
	orig := n
	if n.doc != nil && n.doc != d {
		n = n.clone()
	}
	seen[orig] = n

	if n.doc == nil {
		n.doc = d
	}
	if n.Pointer == "" {
		n.Pointer = "#" + pointer
	} else {
		pointer = strings.TrimPrefix(n.Pointer, "#")
	}
	if _, ok := d.nodes[pointer]; !ok {
		d.nodes[pointer] = n
	}
	if n.Anchor != "" {
		if _, ok := d.anchors[n.Anchor]; !ok {
			d.anchors[n.Anchor] = n
		}
	}
	if n.ID != "" && !strings.HasPrefix(n.ID, "#") {
		if id, err := ResolveURI(base, normalizeURI(n.ID)); err == nil {
			base = id
			if pointer != "" {
				d.resources[id] = n
			}
		}
	}

	n.mapChildren(func(c *Node, tokens ...string) *Node {
		return d.adopt(c, pointer+JoinPointer(tokens...), base, seen)
	})
	return n
}

// Lookup returns the schema at pointer, parsing it on first access when it
// lies outside the indexed tree.
func (d *Document) Lookup(pointer string) (*Node, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n, ok := d.nodes[pointer]; ok {
		return n, nil
	}
	raw, err := d.query(pointer)
	if err != nil {
		return nil, err
	}
	n, err := parseNode(raw, pointer)
	if err != nil {
		return nil, err
	}
	n = d.adopt(n, pointer, d.URI, make(map[*Node]*Node))
	return n, nil
}

// Anchor returns the node declaring the given "$anchor" (or draft-7
// fragment "$id").
func (d *Document) Anchor(name string) (*Node, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, ok := d.anchors[name]
	return n, ok
}

// Resource returns the subschema that declared uri as its "$id".
func (d *Document) Resource(uri string) (*Node, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, ok := d.resources[normalizeURI(uri)]
	return n, ok
}

// Query returns the raw value at pointer. Any location is addressable, not
// just schemas, which makes the document usable for OpenAPI-style lookups
// like "/components/schemas/Pet".
func (d *Document) Query(pointer string) (any, error) {
	return d.query(pointer)
}

func (d *Document) query(pointer string) (any, error) {
	tokens, err := SplitPointer(pointer)
	if err != nil {
		return nil, err
	}
	cur := d.Raw
	for i, token := range tokens {
		next, ok := step(cur, token)
		if !ok {
			return nil, fmt.Errorf("%w: %q stops at %q", ErrNotFound, pointer, JoinPointer(tokens[:i+1]...))
		}
		cur = next
	}
	return cur, nil
}

func step(cur any, token string) (any, bool) {
	if m, ok := asMap(cur); ok {
		v, found := m[token]
		return v, found
	}
	items, ok := asSlice(cur)
	if !ok {
		return nil, false
	}
	if token != "0" && strings.HasPrefix(token, "0") {
		return nil, false
	}
	i, err := strconv.Atoi(token)
	if err != nil || i < 0 || i >= len(items) {
		return nil, false
	}
	return items[i], true
}
