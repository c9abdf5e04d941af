package registry

import (
	"errors"
	"sync"
)

// Sentinel errors for table operations.
var (
	// ErrDuplicate indicates a name that is already defined.
	ErrDuplicate = errors.New("name already defined")

	// ErrEmptyName indicates Define was called with an empty name.
	ErrEmptyName = errors.New("name is empty")
)

// Table is a thread-safe, define-once table of values indexed by name.
// It uses sync.RWMutex since lookups vastly outnumber definitions.
type Table[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
	order   []string
}

// New creates a new empty table.
func New[V any]() *Table[V] {
	return &Table[V]{
		entries: make(map[string]V),
	}
}

// Define adds a value under name.
// Returns ErrDuplicate if name is already defined; the existing value is kept.
func (t *Table[V]) Define(name string, value V) error {
	if name == "" {
		return ErrEmptyName
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.entries[name]; exists {
		return ErrDuplicate
	}
	t.entries[name] = value
	t.order = append(t.order, name)
	return nil
}

// Lookup returns the value for name and whether it is defined.
func (t *Table[V]) Lookup(name string) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.entries[name]
	return v, ok
}

// Has returns true if name is defined.
func (t *Table[V]) Has(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.entries[name]
	return ok
}

// Len returns the number of defined names.
func (t *Table[V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Range calls fn for each entry in definition order until fn returns false.
//
// Range iterates over a snapshot of the table, so it is safe to call
// Define during iteration without affecting the current iteration.
func (t *Table[V]) Range(fn func(name string, value V) bool) {
	t.mu.RLock()
	names := make([]string, len(t.order))
	copy(names, t.order)
	values := make([]V, len(names))
	for i, name := range names {
		values[i] = t.entries[name]
	}
	t.mu.RUnlock()

	for i, name := range names {
		if !fn(name, values[i]) {
			return
		}
	}
}

// LookupOrDefine returns the value for name, defining it with the factory
// if it is missing. The factory is called at most once per name, even under
// concurrent access. The boolean reports whether this call defined it.
func (t *Table[V]) LookupOrDefine(name string, factory func() V) (V, bool, error) {
	if name == "" {
		var zero V
		return zero, false, ErrEmptyName
	}

	// Fast path: already defined
	t.mu.RLock()
	v, ok := t.entries[name]
	t.mu.RUnlock()
	if ok {
		return v, false, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Double-check after acquiring write lock
	if v, ok := t.entries[name]; ok {
		return v, false, nil
	}

	v = factory()
	t.entries[name] = v
	t.order = append(t.order, name)
	return v, true, nil
}
