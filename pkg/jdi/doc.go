// Package jdi resolves classes on demand for JDI pages.
//
// A Runtime holds a table of class constructors and an ordered chain of
// resolvers. Referencing a class that is not in the table runs the chain:
// each resolver is given the class name and may define it, and the first
// one after which the class exists ends the search. Construction then
// proceeds as if the class had been defined from the start.
//
// # Basic Usage
//
//	rt := jdi.NewRuntime(jdi.WithLogger(logger))
//	rt.Register(jdi.GreetingResolver(os.Stdout, diag.NewWriterSink(os.Stderr)))
//
//	msg, err := rt.New(ctx, jdi.ClassName) // prints "JDIMessage", logs "DIAG: JDIMessage"
//	if err != nil {
//	    return err
//	}
//	fmt.Print(msg) // hello!
//
// # Resolvers
//
// A Resolver receives the Runtime and the missing name. It defines classes
// with Runtime.Define; defining an existing class fails with
// *RedefinitionError. GreetingResolver always defines JDIMessage,
// whatever name triggered it. MessageResolver defines JDIRequest and
// JDIResponse and ignores every other name.
//
// # Errors
//
// Resolution performs no recovery. A name that stays undefined yields
// *ClassNotFoundError (errors.Is ErrClassNotFound). A resolver's own error
// is returned wrapped in *autoload.ResolverError, and a resolver panic
// becomes *PanicError.
//
// # Observability
//
// Resolution logs through slog and, when enabled with WithMetrics and
// WithTracing, records OpenTelemetry metrics and spans:
//
//	rt := jdi.NewRuntime(
//	    jdi.WithLogger(logger),
//	    jdi.WithMetrics(true),
//	    jdi.WithTracing(true),
//	)
//
// # Lifetime
//
// Classes and objects live as long as their Runtime. Nothing is cached
// across runtimes: each run starts with an empty class table.
package jdi
