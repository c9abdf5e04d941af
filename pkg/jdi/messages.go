package jdi

import (
	"context"

	"github.com/randalmurphal/jdi/pkg/jdi/message"
)

// Message class names defined by MessageResolver.
const (
	RequestClassName  = "JDIRequest"
	ResponseClassName = "JDIResponse"
)

// messageClasses maps each message class to its constructor.
var messageClasses = map[string]Constructor{
	RequestClassName:  func() Object { return &message.Request{} },
	ResponseClassName: func() Object { return &message.Response{} },
}

// MessageResolver returns a resolver that defines the JDI message classes.
// Unlike GreetingResolver it only acts on names it knows, so it can sit in
// a chain ahead of or behind other resolvers.
func MessageResolver() Resolver {
	return func(ctx context.Context, rt *Runtime, name string) error {
		ctor, ok := messageClasses[name]
		if !ok {
			return nil
		}
		_, err := rt.DefineOnce(ctx, name, ctor)
		return err
	}
}
