package jdi

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/randalmurphal/jdi/pkg/jdi/diag"
)

const (
	// ClassName is the class the greeting resolver always defines.
	ClassName = "JDIMessage"

	// GreetingText is the text form of every Greeting.
	GreetingText = "hello!"

	// DiagPrefix starts every diagnostic line written during resolution.
	DiagPrefix = "DIAG: "
)

// Greeting is the JDIMessage class. It has no fields.
type Greeting struct{}

// String returns GreetingText.
func (Greeting) String() string {
	return GreetingText
}

// NewGreeting is the JDIMessage constructor.
func NewGreeting() Object {
	return Greeting{}
}

// GreetingResolver returns the resolver a page registers. For every
// unresolved name it writes the name and a newline to stdout, writes
// DiagPrefix+name to sink, then defines JDIMessage if it is not defined yet.
//
// The class defined does not depend on name. Write failures on stdout do
// not skip the diagnostic line; both are returned after the class is defined.
func GreetingResolver(stdout io.Writer, sink diag.Sink) Resolver {
	if stdout == nil {
		stdout = io.Discard
	}
	if sink == nil {
		sink = diag.Discard
	}

	return func(ctx context.Context, rt *Runtime, name string) error {
		var errs []error
		if _, err := io.WriteString(stdout, name+"\n"); err != nil {
			errs = append(errs, fmt.Errorf("write class name: %w", err))
		}
		if err := sink.Write(ctx, DiagPrefix+name); err != nil {
			errs = append(errs, fmt.Errorf("write diagnostic: %w", err))
		}

		// TODO: per-class source loading keyed by name, once a search path setting exists.
		if _, err := rt.DefineOnce(ctx, ClassName, NewGreeting); err != nil {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	}
}
