package schema

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAPIDocument(t *testing.T) *Document {
	t.Helper()
	doc, err := NewDocument("openapi.yaml", map[string]any{
		"openapi": "3.0.0",
		"info":    map[string]any{"title": "Pets"},
		"components": map[string]any{
			"schemas": map[string]any{
				"Pet": map[string]any{
					"type":       "object",
					"properties": map[string]any{"name": map[string]any{"type": "string"}},
				},
				"Pets": map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/Pet"}},
			},
		},
	})
	require.NoError(t, err)
	return doc
}

func TestDocumentURI(t *testing.T) {
	doc, err := NewDocument("", map[string]any{"$id": "https://example.com/s.json#"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/s.json", doc.URI)

	doc, err = NewDocument("", map[string]any{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc.URI, "urn:uuid:"), doc.URI)

	doc, err = NewDocument("file.json#", true)
	require.NoError(t, err)
	assert.Equal(t, "file.json", doc.URI)
}

func TestDocumentLookupIndexedNodes(t *testing.T) {
	doc, err := NewDocument("mem://s", map[string]any{
		"$defs": map[string]any{
			"node": map[string]any{
				"type":       "object",
				"properties": map[string]any{"children": map[string]any{"type": "array", "items": map[string]any{"$ref": "#/$defs/node"}}},
			},
		},
	})
	require.NoError(t, err)

	root, err := doc.Lookup("")
	require.NoError(t, err)
	assert.Same(t, doc.Root, root)

	node, err := doc.Lookup("/$defs/node")
	require.NoError(t, err)
	assert.Same(t, doc.Root.Defs["node"], node)
	assert.Same(t, doc, node.Document())

	items, err := doc.Lookup("/$defs/node/properties/children/items")
	require.NoError(t, err)
	assert.Equal(t, "#/$defs/node", items.Ref)
}

func TestDocumentLazyLookup(t *testing.T) {
	doc := openAPIDocument(t)

	pet, err := doc.Lookup("/components/schemas/Pet")
	require.NoError(t, err)
	assert.Equal(t, "#/components/schemas/Pet", pet.Pointer)
	assert.True(t, pet.Types.Has(TypeObject))
	assert.Same(t, doc, pet.Document())

	again, err := doc.Lookup("/components/schemas/Pet")
	require.NoError(t, err)
	assert.Same(t, pet, again, "lazily parsed nodes are memoized")

	// Subschemas of the lazily parsed node are indexed too.
	name, err := doc.Lookup("/components/schemas/Pet/properties/name")
	require.NoError(t, err)
	assert.Same(t, pet.Object.Properties["name"], name)
}

func TestDocumentLazyLookupConcurrent(t *testing.T) {
	doc := openAPIDocument(t)

	const workers = 16
	nodes := make([]*Node, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			n, err := doc.Lookup("/components/schemas/Pets")
			assert.NoError(t, err)
			nodes[i] = n
		}(i)
	}
	wg.Wait()

	for _, n := range nodes[1:] {
		assert.Same(t, nodes[0], n)
	}
}

func TestDocumentLookupErrors(t *testing.T) {
	doc := openAPIDocument(t)

	_, err := doc.Lookup("/components/schemas/Missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = doc.Lookup("components")
	assert.ErrorIs(t, err, ErrInvalidPointer)

	// "/info/title" exists but is not a schema.
	_, err = doc.Lookup("/info/title")
	assert.Error(t, err)
}

func TestDocumentQuery(t *testing.T) {
	doc := openAPIDocument(t)

	title, err := doc.Query("/info/title")
	require.NoError(t, err)
	assert.Equal(t, "Pets", title)

	whole, err := doc.Query("")
	require.NoError(t, err)
	assert.Equal(t, doc.Raw, whole)

	arr, err := NewDocument("", map[string]any{"enum": []any{"a", "b"}})
	require.NoError(t, err)
	v, err := arr.Query("/enum/1")
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	for _, bad := range []string{"/enum/2", "/enum/01", "/enum/-1", "/enum/x"} {
		_, err := arr.Query(bad)
		assert.ErrorIs(t, err, ErrNotFound, bad)
	}
}

func TestDocumentAnchorsAndResources(t *testing.T) {
	doc, err := NewDocument("mem://root", map[string]any{
		"definitions": map[string]any{
			"a": map[string]any{"$id": "#item", "type": "string"},
			"b": map[string]any{"$id": "https://example.com/b.json", "type": "integer"},
		},
	})
	require.NoError(t, err)

	item, ok := doc.Anchor("item")
	require.True(t, ok)
	assert.True(t, item.Types.Has(TypeString))

	_, ok = doc.Anchor("missing")
	assert.False(t, ok)

	b, ok := doc.Resource("https://example.com/b.json#")
	require.True(t, ok)
	assert.True(t, b.Types.Has(TypeInteger))
}

func TestDocumentResolvesEmbeddedIDs(t *testing.T) {
	doc, err := NewDocument("", map[string]any{
		"$id": "http://example.com/schemas/root.json",
		"$defs": map[string]any{
			"a": map[string]any{
				"$id": "a.json",
				"$defs": map[string]any{
					"b": map[string]any{"$id": "nested/b.json", "type": "string"},
				},
			},
			"c": map[string]any{"$id": "urn:example:c", "type": "integer"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/schemas/root.json", doc.URI)

	a, ok := doc.Resource("http://example.com/schemas/a.json")
	require.True(t, ok)
	assert.Equal(t, "#/$defs/a", a.Pointer)

	b, ok := doc.Resource("http://example.com/schemas/nested/b.json")
	require.True(t, ok)
	assert.True(t, b.Types.Has(TypeString))

	_, ok = doc.Resource("urn:example:c")
	assert.True(t, ok)

	_, ok = doc.Resource("a.json")
	assert.False(t, ok)
}

func TestSharedBuiltNodeIsCopied(t *testing.T) {
	shared := Ref("#/$defs/item")
	first := Array(shared).WithDefs(map[string]*Node{"item": String()})
	second := Object(map[string]*Node{"list": Array(shared)})

	d1, err := NewDocument("", first)
	require.NoError(t, err)
	d2, err := NewDocument("", second)
	require.NoError(t, err)

	assert.Same(t, shared, first.Array.Items)
	assert.Same(t, d1, shared.Document())
	assert.Equal(t, "#/items", shared.Pointer)

	copied := second.Object.Properties["list"].Array.Items
	assert.NotSame(t, shared, copied)
	assert.Same(t, d2, copied.Document())
	assert.Equal(t, "#/properties/list/items", copied.Pointer)
	assert.Equal(t, "#/$defs/item", copied.Ref)

	found, err := d2.Lookup("/properties/list/items")
	require.NoError(t, err)
	assert.Same(t, copied, found)
}

func TestDocumentAdoptsBuiltNodes(t *testing.T) {
	root := Object(map[string]*Node{"child": Ref("#/$defs/leaf")}).
		WithDefs(map[string]*Node{"leaf": String()})

	doc, err := NewDocument("", root)
	require.NoError(t, err)
	assert.Same(t, root, doc.Root)
	assert.Equal(t, "#", root.Pointer)

	leaf, err := doc.Lookup("/$defs/leaf")
	require.NoError(t, err)
	assert.Same(t, root.Defs["leaf"], leaf)
	assert.Equal(t, "#/$defs/leaf", leaf.Pointer)
	assert.Equal(t, "#/properties/child", root.Object.Properties["child"].Pointer)
}

func TestPointerTokens(t *testing.T) {
	tokens, err := SplitPointer("/a~1b/c~0d/0")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b", "c~d", "0"}, tokens)
	assert.Equal(t, "/a~1b/c~0d/0", JoinPointer(tokens...))

	tokens, err = SplitPointer("")
	require.NoError(t, err)
	assert.Empty(t, tokens)

	for _, bad := range []string{"a", "/~2", "/x~"} {
		_, err := SplitPointer(bad)
		assert.ErrorIs(t, err, ErrInvalidPointer, bad)
	}
}
