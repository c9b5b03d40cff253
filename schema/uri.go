package schema

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ResolveURI resolves the reference URI ref against base. Opaque bases
// such as "urn:uuid:..." leave ref unchanged, and relative file paths stay
// relative.
func ResolveURI(base, ref string) (string, error) {
	if ref == "" {
		return base, nil
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse reference URI %q: %w", ref, err)
	}
	if r.IsAbs() || base == "" {
		return r.String(), nil
	}
	b, err := url.Parse(base)
	if err != nil || b.Opaque != "" {
		return r.String(), nil
	}
	if !b.IsAbs() && !strings.HasPrefix(base, "/") {
		return path.Join(path.Dir(b.Path), r.Path), nil
	}
	return b.ResolveReference(r).String(), nil
}
