// Package errs defines the error taxonomy shared by every core component.
// Callers branch on the Kind of an error, the HTTP layer maps kinds to
// status codes, and detail strings stay human-readable.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the recoverable categories the
// calling layer understands, plus Internal for invariant violations.
type Kind int

const (
	// NotFound covers unknown node, edge, shelter, sensor or request ids.
	NotFound Kind = iota + 1
	// Conflict covers duplicate ids, full shelters, and full or empty queues.
	Conflict
	// InvalidInput covers negative weights, non-positive capacities and
	// malformed coordinates.
	InvalidInput
	// Unreachable means no path exists, or no shelter is reachable.
	Unreachable
	// Internal marks a core invariant violation. It indicates a bug and is
	// always logged where it is raised.
	Internal
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case Conflict:
		return "conflict"
	case InvalidInput:
		return "invalid input"
	case Unreachable:
		return "unreachable"
	case Internal:
		return "internal inconsistency"
	default:
		return "unknown"
	}
}

// Error carries a Kind and a detail message. It supports errors.As and,
// through Unwrap, errors.Is on a wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an error of the given kind with a formatted detail message.
func New(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying cause.
func Wrap(kind Kind, err error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the Kind from err, or 0 if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
