package event

import (
	"errors"
	"fmt"
)

var (
	// ErrDetached is returned by hosts that refuse to dispatch on a target
	// that is no longer part of a document.
	ErrDetached = errors.New("event target is not connected")

	// ErrNilEvent is returned when dispatching a nil event.
	ErrNilEvent = errors.New("event cannot be nil")
)

// PanicError wraps a value a listener panicked with.
type PanicError struct {
	Type  string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("listener for %q panicked: %v", e.Type, e.Value)
}
