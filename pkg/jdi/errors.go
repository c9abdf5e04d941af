package jdi

import (
	"errors"
	"fmt"
)

// Sentinel errors for class definition and resolution.
var (
	// ErrClassNotFound indicates no resolver made a referenced class available.
	ErrClassNotFound = errors.New("class not found")

	// ErrClassRedefined indicates a definition for a class that already exists.
	ErrClassRedefined = errors.New("cannot redeclare class")

	// ErrEmptyClassName indicates an empty class name was defined or referenced.
	ErrEmptyClassName = errors.New("class name is empty")

	// ErrNilConstructor indicates Define was called without a constructor.
	ErrNilConstructor = errors.New("constructor is nil")
)

// ClassNotFoundError reports a class that stayed undefined after every
// registered resolver ran.
type ClassNotFoundError struct {
	// Name is the referenced class.
	Name string
	// Resolvers is the number of resolvers invoked.
	Resolvers int
}

// Error implements the error interface.
func (e *ClassNotFoundError) Error() string {
	return fmt.Sprintf("class %q not found after %d resolver(s)", e.Name, e.Resolvers)
}

// Unwrap returns ErrClassNotFound for errors.Is support.
func (e *ClassNotFoundError) Unwrap() error {
	return ErrClassNotFound
}

// RedefinitionError reports an attempt to define a class twice.
type RedefinitionError struct {
	// Name is the class that was already defined.
	Name string
}

// Error implements the error interface.
func (e *RedefinitionError) Error() string {
	return fmt.Sprintf("cannot redeclare class %s", e.Name)
}

// Unwrap returns ErrClassRedefined for errors.Is support.
func (e *RedefinitionError) Unwrap() error {
	return ErrClassRedefined
}

// PanicError captures a panic raised by a resolver or constructor.
type PanicError struct {
	// Name is the class being resolved or constructed.
	Name string
	// Value is the value passed to panic().
	Value any
	// Stack is the stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("class %s: panic: %v", e.Name, e.Value)
}
