// Package loader reads schemas and instance documents from JSON and YAML
// files, and serves them to reference resolution.
package loader

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/jsonschema/internal/jsonvalue"
)

var (
	// ErrRemoteRef is returned for http and https URIs. Documents are only
	// read from the local file system.
	ErrRemoteRef = errors.New("remote references are not supported")

	// ErrUnsupportedScheme is returned for URIs that do not name a file.
	ErrUnsupportedScheme = errors.New("unsupported URI scheme")
)

// defaultNames are tried, in order, when Load is given a directory.
var defaultNames = []string{"schema.json", "schema.yaml", "schema.yml"}

// Load reads and decodes the document at path. The decoder is picked by
// extension: ".json" uses encoding/json with numbers kept as json.Number,
// anything else is read as YAML, which also accepts JSON. If path is a
// directory, Load reads schema.json, schema.yaml or schema.yml in it.
func Load(path string) (any, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	docPath := path
	if info.IsDir() {
		docPath = ""
		for _, name := range defaultNames {
			candidate := filepath.Join(path, name)
			if _, err := os.Stat(candidate); err == nil {
				docPath = candidate
				break
			}
		}
		if docPath == "" {
			return nil, fmt.Errorf("no %s found in %s", strings.Join(defaultNames, ", "), path)
		}
	}

	data, err := os.ReadFile(docPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	doc, err := Decode(data, filepath.Ext(docPath))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", docPath, err)
	}
	return doc, nil
}

// Decode decodes data as JSON when ext is ".json" and as YAML otherwise.
func Decode(data []byte, ext string) (any, error) {
	if strings.EqualFold(ext, ".json") {
		return jsonvalue.Decode(data)
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Store loads documents on demand and keeps them by absolute path. It
// implements ref.Loader, so a compiler can follow references to files that
// were not registered up front. It is safe for concurrent use.
type Store struct {
	base string

	mu   sync.Mutex
	docs map[string]any
}

// NewStore creates a Store resolving relative paths against base. An empty
// base means the working directory.
func NewStore(base string) *Store {
	return &Store{base: base, docs: make(map[string]any)}
}

// Get returns the document at path, loading it on first use.
func (s *Store) Get(path string) (any, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.base, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[abs]; ok {
		return doc, nil
	}
	doc, err := Load(abs)
	if err != nil {
		return nil, err
	}
	s.docs[abs] = doc
	return doc, nil
}

// Load resolves a document URI. It accepts file URIs and plain paths and
// rejects network URIs with ErrRemoteRef.
func (s *Store) Load(uri string) (any, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid document URI %q: %w", uri, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return nil, fmt.Errorf("%w: %s", ErrRemoteRef, uri)
	case "file", "":
		return s.Get(filepath.FromSlash(u.Path))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, uri)
	}
}

// Len returns the number of loaded documents.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

// FileURI returns the file URI of path, for use as a document URI so that
// relative references resolve against the file's directory.
func FileURI(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}
