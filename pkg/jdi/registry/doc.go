// Package registry provides a define-once table of values indexed by name.
//
// Table backs the class table of a jdi runtime: each class name maps to the
// constructor that produces its instances. A name can be defined exactly
// once; a second definition fails with ErrDuplicate and leaves the first
// value in place.
//
// # Basic Usage
//
//	classes := registry.New[func() fmt.Stringer]()
//	if err := classes.Define("JDIMessage", newGreeting); err != nil {
//	    return err
//	}
//
//	ctor, ok := classes.Lookup("JDIMessage")
//	if ok {
//	    fmt.Println(ctor())
//	}
//
// # Ordering
//
// Range visits entries in definition order, which makes the table usable for
// diagnostics that must be stable across runs.
//
// # Thread Safety
//
// All Table methods are safe for concurrent use. Range iterates over a
// snapshot, so Define may be called from inside the callback without
// affecting the current iteration.
package registry
