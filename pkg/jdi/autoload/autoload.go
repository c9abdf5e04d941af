// Package autoload holds the ordered resolver chain consulted when a class
// name is referenced before it has been defined.
//
// Resolvers are tried in registration order. After each one runs, the
// caller-supplied check reports whether the class now exists; the first
// resolver that makes it exist ends the search. Errors returned by a
// resolver stop the search and are handed back to the caller unchanged
// apart from ResolverError context.
package autoload

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrUnresolved indicates no registered resolver made the class available.
var ErrUnresolved = errors.New("no resolver defined the class")

// Resolver is given the name of an undefined class and may define it.
// It reports failure only through the returned error; defining the class
// is a side effect on whatever table the resolver closes over.
type Resolver func(ctx context.Context, name string) error

// ResolverError wraps an error returned by a resolver.
type ResolverError struct {
	// Index is the resolver's position in registration order.
	Index int
	// Name is the class name being resolved.
	Name string
	// Err is the error returned by the resolver.
	Err error
}

// Error implements the error interface.
func (e *ResolverError) Error() string {
	return fmt.Sprintf("resolver %d for %s: %v", e.Index, e.Name, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ResolverError) Unwrap() error {
	return e.Err
}

// Loader is an ordered list of resolvers.
// Register is expected before any resolution, but the list is guarded so
// a Loader may be shared between goroutines.
type Loader struct {
	mu        sync.RWMutex
	resolvers []Resolver
}

// NewLoader creates a loader with the given resolvers registered in order.
func NewLoader(resolvers ...Resolver) *Loader {
	l := &Loader{}
	for _, r := range resolvers {
		l.Register(r)
	}
	return l
}

// Register appends r to the chain. Nil resolvers are ignored.
func (l *Loader) Register(r Resolver) {
	if r == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resolvers = append(l.resolvers, r)
}

// Len returns the number of registered resolvers.
func (l *Loader) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.resolvers)
}

// Resolvers returns a snapshot of the chain in registration order.
func (l *Loader) Resolvers() []Resolver {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Resolver, len(l.resolvers))
	copy(out, l.resolvers)
	return out
}

// Resolve invokes resolvers in order until defined(name) reports true.
// It returns the number of resolvers invoked.
//
// Returns ErrUnresolved when the chain is exhausted without the class
// appearing, or a *ResolverError when a resolver fails.
func (l *Loader) Resolve(ctx context.Context, name string, defined func(string) bool) (int, error) {
	// Resolvers may register further resolvers; they apply to the next lookup.
	chain := l.Resolvers()

	invoked := 0
	for i, r := range chain {
		invoked++
		if err := r(ctx, name); err != nil {
			return invoked, &ResolverError{Index: i, Name: name, Err: err}
		}
		if defined(name) {
			return invoked, nil
		}
	}
	return invoked, ErrUnresolved
}
