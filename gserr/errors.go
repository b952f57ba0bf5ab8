// Package gserr defines the error taxonomy shared by every gspline
// component. Each component returns one of the sentinel errors declared
// here, optionally wrapped with call-site context via fmt.Errorf("%w", ...),
// so that callers can branch with errors.Is/errors.As instead of matching
// strings.
package gserr

import (
	"errors"
	"fmt"
)

// Kind tags a gspline error with the taxonomy class it belongs to.
type Kind int

const (
	// KindInvalidArgument covers shape mismatches, empty waypoints,
	// non-positive interval lengths, and odd basis dimension where an
	// even dimension is required.
	KindInvalidArgument Kind = iota
	// KindUnsupported covers a derivative order requested from a basis
	// that has no analytic expression for it.
	KindUnsupported
	// KindOutOfDomain covers a query point outside [t0, tf] beyond the
	// evaluation tolerance.
	KindOutOfDomain
	// KindSingular covers an interpolation matrix that is not invertible
	// to working tolerance.
	KindSingular
	// KindInvalidWeights covers a non-positive Sobolev weight or a
	// derivative order below 1 in a weighted-derivatives set.
	KindInvalidWeights
	// KindInternalInvariant covers a violated cache/counting invariant;
	// by convention this kind is never returned, only panicked with (see
	// MustInvariant below), because it indicates a bug in this module rather than
	// a caller mistake.
	KindInternalInvariant
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindUnsupported:
		return "Unsupported"
	case KindOutOfDomain:
		return "OutOfDomain"
	case KindSingular:
		return "Singular"
	case KindInvalidWeights:
		return "InvalidWeights"
	case KindInternalInvariant:
		return "InternalInvariant"
	default:
		return "Unknown"
	}
}

// sentinels, one per Kind, so callers can use errors.Is without reaching
// into this package's Error type.
var (
	ErrInvalidArgument   = errors.New("gsplines: invalid argument")
	ErrUnsupported       = errors.New("gsplines: unsupported operation")
	ErrOutOfDomain       = errors.New("gsplines: query outside domain")
	ErrSingular          = errors.New("gsplines: singular system")
	ErrInvalidWeights    = errors.New("gsplines: invalid weights")
	ErrInternalInvariant = errors.New("gsplines: internal invariant violated")
)

func sentinelFor(k Kind) error {
	switch k {
	case KindInvalidArgument:
		return ErrInvalidArgument
	case KindUnsupported:
		return ErrUnsupported
	case KindOutOfDomain:
		return ErrOutOfDomain
	case KindSingular:
		return ErrSingular
	case KindInvalidWeights:
		return ErrInvalidWeights
	case KindInternalInvariant:
		return ErrInternalInvariant
	default:
		return ErrInternalInvariant
	}
}

// Error is a gspline error carrying its taxonomy Kind alongside a
// human-readable message. It wraps the Kind's sentinel so that
// errors.Is(err, gserr.ErrSingular) works regardless of how much context
// has been layered on with fmt.Errorf("%w: ...", err).
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return sentinelFor(e.Kind).Error()
	}
	return fmt.Sprintf("%s: %s", sentinelFor(e.Kind).Error(), e.Msg)
}

// Unwrap lets errors.Is/errors.As see through to the Kind's sentinel.
func (e *Error) Unwrap() error {
	return sentinelFor(e.Kind)
}

// New builds an *Error of the given Kind with a formatted message.
func New(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// Is reports whether err carries the given Kind, looking through any
// wrapping via errors.As.
func Is(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return errors.Is(err, sentinelFor(k))
}

// MustInvariant panics with an InternalInvariant error. Reserved for
// cache/counting invariants that, if violated, indicate a bug in this
// module rather than caller misuse — the one Kind that aborts instead of
// being returned, per the error-handling design.
func MustInvariant(format string, args ...interface{}) {
	panic(New(KindInternalInvariant, format, args...))
}
