// Package simerr defines the typed error kinds the simulation engine
// returns at the top of every sim_* operation, and the warning type
// returned alongside (not instead of) a partial result.
package simerr

import "fmt"

// Kind classifies why a sim_* operation failed.
type Kind int

const (
	// InvalidInput covers shape mismatches, empty meshes, non-finite
	// floats, and unknown enum values (e.g. an unrecognised fidelity
	// level).
	InvalidInput Kind = iota
	// TierLimitExceeded fires when the free-tier advisory limit set via
	// simconfig is violated. Detected before any expensive work starts.
	TierLimitExceeded
	// GeometryDegenerate covers a required ray frame that could not be
	// built, e.g. an antenna pattern that is all-zero.
	GeometryDegenerate
	// RayBudgetExhausted means the ray tracer hit its hard per-snapshot
	// ray cap. Never returned as an error: always carried as a Warning
	// alongside a partial result.
	RayBudgetExhausted
	// Internal covers numerical or allocation failure. Fatal to the run.
	Internal
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case TierLimitExceeded:
		return "TierLimitExceeded"
	case GeometryDegenerate:
		return "GeometryDegenerate"
	case RayBudgetExhausted:
		return "RayBudgetExhausted"
	case Internal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Error is the error type returned from every sim_* operation. Op names
// the failing operation (e.g. "sim_radar", "sim_rcs") so a caller can log
// which entry point failed without re-deriving it from a stack trace.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error for op with the given kind, wrapping err.
func New(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Newf builds an *Error for op with the given kind from a formatted message.
func Newf(op string, kind Kind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Warning is a non-fatal condition returned alongside a result, never via
// the error return. RayBudgetExhausted is the only Kind that should ever
// appear here.
type Warning struct {
	Kind    Kind
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}
