package ref

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/zero-day-ai/jsonschema/schema"
)

// Pointer is a parsed reference: the document it addresses plus either a
// JSON pointer or an anchor inside it.
type Pointer struct {
	// URI is the absolute (or base-relative) document URI without fragment.
	URI string

	// Fragment is the decoded JSON pointer, "" for the document root.
	Fragment string

	// Anchor is set instead of Fragment for "#name" references.
	Anchor string
}

// String renders the pointer in reference form, e.g. "doc.json#/a/b".
func (p Pointer) String() string {
	if p.Anchor != "" {
		return p.URI + "#" + p.Anchor
	}
	return p.URI + "#" + p.Fragment
}

// Parse parses ref relative to the document URI base. Fragments are
// percent-decoded before being interpreted as JSON pointers.
func Parse(base, ref string) (Pointer, error) {
	uriPart, fragment, _ := strings.Cut(ref, "#")

	uri, err := schema.ResolveURI(base, uriPart)
	if err != nil {
		return Pointer{}, err
	}

	decoded, err := url.PathUnescape(fragment)
	if err != nil {
		return Pointer{}, fmt.Errorf("decode fragment %q: %w", fragment, err)
	}
	if decoded == "" || strings.HasPrefix(decoded, "/") {
		return Pointer{URI: uri, Fragment: decoded}, nil
	}
	return Pointer{URI: uri, Anchor: decoded}, nil
}
