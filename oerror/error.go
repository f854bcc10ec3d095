package oerror

import "fmt"

// Error is an error raised by movesync itself, as opposed to one passed up from a transport or
// another collaborator.
type Error struct {
	Err string
}

// New creates a new Error from the format and arguments given.
func New(format string, args ...interface{}) *Error {
	return &Error{Err: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Err
}

// PreconditionError is returned when an action was requested while one of its preconditions did
// not hold. No packet is written when it is returned.
type PreconditionError struct {
	// Action is the name of the action that was refused, e.g. "elytra fly".
	Action string
	// Reason describes the violated precondition.
	Reason string
}

// Precondition returns a PreconditionError for the action and reason passed.
func Precondition(action, reason string) *PreconditionError {
	return &PreconditionError{Action: action, Reason: reason}
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("unable to %s: %s", e.Action, e.Reason)
}
