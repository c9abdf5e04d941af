package jdi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassNotFoundError(t *testing.T) {
	err := &ClassNotFoundError{Name: "Widget", Resolvers: 2}
	assert.Equal(t, `class "Widget" not found after 2 resolver(s)`, err.Error())
	assert.ErrorIs(t, err, ErrClassNotFound)
	assert.False(t, errors.Is(err, ErrClassRedefined))
}

func TestRedefinitionError(t *testing.T) {
	err := &RedefinitionError{Name: "JDIMessage"}
	assert.Equal(t, "cannot redeclare class JDIMessage", err.Error())
	assert.ErrorIs(t, err, ErrClassRedefined)
}

func TestPanicError(t *testing.T) {
	err := &PanicError{Name: "JDIMessage", Value: 42, Stack: "goroutine 1 [running]:\n..."}
	assert.Equal(t, "class JDIMessage: panic: 42", err.Error())
}
