package format

import (
	"fmt"
	"sort"
	"sync"
)

// Checker reports whether a string is in a format. It returns nil on
// success; the error message explains the mismatch.
type Checker func(value string) error

// Registry maps format names to checkers. The zero value is not usable;
// create registries with NewRegistry.
type Registry struct {
	mu       sync.RWMutex
	checkers map[string]Checker
}

// NewRegistry returns a registry holding the built-in formats.
func NewRegistry() *Registry {
	r := &Registry{checkers: make(map[string]Checker)}
	for name, c := range builtins() {
		r.checkers[name] = c
	}
	return r
}

// Register adds or replaces the checker for name.
func (r *Registry) Register(name string, c Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[name] = c
}

// Lookup returns the checker registered under name.
func (r *Registry) Lookup(name string) (Checker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.checkers[name]
	return c, ok
}

// Names returns the registered format names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.checkers))
	for name := range r.checkers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Check runs the checker for name against value. Unknown formats pass. A
// panicking checker is reported as an error instead of crashing the caller.
func (r *Registry) Check(name, value string) (err error) {
	c, ok := r.Lookup(name)
	if !ok || c == nil {
		return nil
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("checker panicked: %v", p)
		}
	}()
	return c(value)
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used when no registry is
// configured explicitly.
func Default() *Registry {
	return defaultRegistry
}

// Register adds or replaces a checker in the process-wide registry.
func Register(name string, c Checker) {
	defaultRegistry.Register(name, c)
}

// Lookup returns a checker from the process-wide registry.
func Lookup(name string) (Checker, bool) {
	return defaultRegistry.Lookup(name)
}

// Names lists the formats in the process-wide registry.
func Names() []string {
	return defaultRegistry.Names()
}
