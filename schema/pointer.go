package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPointer is returned for strings that are not RFC 6901 JSON
	// pointers.
	ErrInvalidPointer = errors.New("invalid JSON pointer")

	// ErrNotFound is returned when a JSON pointer does not address a value.
	ErrNotFound = errors.New("JSON pointer not found")
)

var tokenEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// EscapeToken escapes one reference token ("a/b" becomes "a~1b").
func EscapeToken(token string) string {
	return tokenEscaper.Replace(token)
}

// JoinPointer builds a JSON pointer from unescaped tokens. No tokens yields
// the empty pointer, which addresses the whole document.
func JoinPointer(tokens ...string) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(EscapeToken(t))
	}
	return b.String()
}

// SplitPointer parses a JSON pointer into unescaped tokens.
func SplitPointer(pointer string) ([]string, error) {
	if pointer == "" {
		return nil, nil
	}
	if pointer[0] != '/' {
		return nil, fmt.Errorf("%w: %q must start with /", ErrInvalidPointer, pointer)
	}
	parts := strings.Split(pointer[1:], "/")
	for i, p := range parts {
		token, err := unescapeToken(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPointer, pointer, err)
		}
		parts[i] = token
	}
	return parts, nil
}

func unescapeToken(s string) (string, error) {
	if !strings.Contains(s, "~") {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '~' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 >= len(s) {
			return "", errors.New("dangling ~")
		}
		switch s[i+1] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", fmt.Errorf("bad escape ~%c", s[i+1])
		}
		i++
	}
	return b.String(), nil
}
