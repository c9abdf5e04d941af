package jdi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/randalmurphal/jdi/pkg/jdi/autoload"
	"github.com/randalmurphal/jdi/pkg/jdi/diag"
	"github.com/randalmurphal/jdi/pkg/jdi/observability"
	"github.com/randalmurphal/jdi/pkg/jdi/registry"
)

// Object is anything producible as text. Every class constructor returns one.
type Object interface {
	String() string
}

// Constructor creates a new instance of a class. It takes no inputs.
type Constructor func() Object

// Resolver is invoked with the name of an undefined class and may define
// it on rt. It is registered with Runtime.Register.
type Resolver func(ctx context.Context, rt *Runtime, name string) error

// Runtime is a resolution context: a class table plus the ordered chain of
// resolvers consulted when a referenced class is missing.
//
// A Runtime is owned by its entry point (one CLI run, one HTTP request) and
// is not shared across runs, so classes never leak from one run to the next.
type Runtime struct {
	runID   string
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager

	classes *registry.Table[Constructor]
	loader  *autoload.Loader
}

// NewRuntime creates an empty Runtime.
func NewRuntime(opts ...Option) *Runtime {
	cfg := defaultRuntimeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.runID == "" {
		cfg.runID = uuid.NewString()
	}

	return &Runtime{
		runID:   cfg.runID,
		logger:  observability.EnrichLogger(cfg.logger, cfg.runID),
		metrics: cfg.metrics,
		spans:   cfg.spanManager,
		classes: registry.New[Constructor](),
		loader:  autoload.NewLoader(),
	}
}

// RunID returns the run identifier.
func (rt *Runtime) RunID() string {
	return rt.runID
}

// Logger returns the run-scoped logger. Never nil.
func (rt *Runtime) Logger() *slog.Logger {
	return rt.logger
}

// Register appends r to the resolver chain. Nil resolvers are ignored.
func (rt *Runtime) Register(r Resolver) {
	if r == nil {
		return
	}
	index := rt.loader.Len()
	rt.loader.Register(func(ctx context.Context, name string) (err error) {
		ctx, span := rt.spans.StartResolverSpan(ctx, index, name)
		defer func() {
			if p := recover(); p != nil {
				err = &PanicError{Name: name, Value: p, Stack: string(debug.Stack())}
			}
			rt.spans.EndSpanWithError(span, err)
		}()
		return r(ctx, rt, name)
	})
}

// Resolvers returns the number of registered resolvers.
func (rt *Runtime) Resolvers() int {
	return rt.loader.Len()
}

// Define makes a class available under name.
//
// Returns *RedefinitionError if the class already exists; the original
// definition is kept.
func (rt *Runtime) Define(ctx context.Context, name string, ctor Constructor) error {
	if ctor == nil {
		return fmt.Errorf("define %s: %w", name, ErrNilConstructor)
	}
	err := rt.classes.Define(name, ctor)
	switch {
	case errors.Is(err, registry.ErrEmptyName):
		return ErrEmptyClassName
	case errors.Is(err, registry.ErrDuplicate):
		observability.LogRedefinition(rt.logger, name)
		return &RedefinitionError{Name: name}
	case err != nil:
		return err
	}

	observability.LogClassDefined(rt.logger, name)
	rt.metrics.RecordDefinition(ctx, name)
	rt.spans.AddSpanEvent(ctx, "class.defined")
	return nil
}

// DefineOnce defines name with ctor unless a class of that name already
// exists. The check and the definition happen atomically, so concurrent
// callers define the class exactly once. It reports whether this call
// defined the class.
func (rt *Runtime) DefineOnce(ctx context.Context, name string, ctor Constructor) (bool, error) {
	if ctor == nil {
		return false, fmt.Errorf("define %s: %w", name, ErrNilConstructor)
	}
	_, defined, err := rt.classes.LookupOrDefine(name, func() Constructor { return ctor })
	if errors.Is(err, registry.ErrEmptyName) {
		return false, ErrEmptyClassName
	}
	if err != nil || !defined {
		return false, err
	}

	observability.LogClassDefined(rt.logger, name)
	rt.metrics.RecordDefinition(ctx, name)
	rt.spans.AddSpanEvent(ctx, "class.defined")
	return true, nil
}

// Defined reports whether a class named name exists.
func (rt *Runtime) Defined(name string) bool {
	return rt.classes.Has(name)
}

// Classes returns the defined class names in definition order.
func (rt *Runtime) Classes() []string {
	names := make([]string, 0, rt.classes.Len())
	rt.classes.Range(func(name string, _ Constructor) bool {
		names = append(names, name)
		return true
	})
	return names
}

// Resolve makes name available by running the resolver chain.
// It does nothing if the class is already defined.
//
// Returns *ClassNotFoundError if no resolver defined the class, or the
// resolver's error wrapped in *autoload.ResolverError.
func (rt *Runtime) Resolve(ctx context.Context, name string) error {
	if name == "" {
		return ErrEmptyClassName
	}
	if rt.Defined(name) {
		return nil
	}

	ctx = diag.WithRunID(ctx, rt.runID)
	ctx, span := rt.spans.StartResolveSpan(ctx, rt.runID, name)

	observability.LogResolveStart(rt.logger, name, rt.loader.Len())
	start := time.Now()
	done := observability.TimedOperation()

	invoked, err := rt.loader.Resolve(ctx, name, rt.Defined)
	if errors.Is(err, autoload.ErrUnresolved) {
		err = &ClassNotFoundError{Name: name, Resolvers: invoked}
	}

	rt.metrics.RecordResolution(ctx, name, invoked, time.Since(start), err)
	rt.spans.EndSpanWithError(span, err)
	if err != nil {
		observability.LogResolveError(rt.logger, name, err, invoked)
		return err
	}
	observability.LogResolveComplete(rt.logger, name, invoked, done())
	return nil
}

// New constructs an instance of class name, resolving the class first if
// it has not been defined yet.
func (rt *Runtime) New(ctx context.Context, name string) (obj Object, err error) {
	ctor, ok := rt.classes.Lookup(name)
	if !ok {
		if err := rt.Resolve(ctx, name); err != nil {
			return nil, err
		}
		if ctor, ok = rt.classes.Lookup(name); !ok {
			return nil, &ClassNotFoundError{Name: name, Resolvers: rt.loader.Len()}
		}
	}

	defer func() {
		if p := recover(); p != nil {
			obj = nil
			err = &PanicError{Name: name, Value: p, Stack: string(debug.Stack())}
		}
	}()
	obj = ctor()
	rt.metrics.RecordConstruction(ctx, name)
	return obj, nil
}
