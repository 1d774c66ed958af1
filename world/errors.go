package world

import "fmt"

// ErrorKind identifies one of the core's typed error conditions.
// Callers match on them with errors.Is against the sentinel values
// below, or by inspecting Error.Kind.
type ErrorKind string

const (
	// KindUnknownKind: AddEntity or registry lookup used a kind that
	// was never registered.
	KindUnknownKind ErrorKind = "unknown_kind"
	// KindOutOfBounds: a position falls outside [0,W) x [0,H).
	KindOutOfBounds ErrorKind = "out_of_bounds"
	// KindInvalidCoord: a position is not integer-valued.
	KindInvalidCoord ErrorKind = "invalid_coord"
	// KindInvalidDirection: a rotation is not one of N, E, S, W.
	KindInvalidDirection ErrorKind = "invalid_direction"
	// KindAlreadyRegistered: a kind was registered twice.
	KindAlreadyRegistered ErrorKind = "already_registered"
	// KindInvariantViolation: an internal assertion failed, e.g.
	// re-entrant Step or a panicking Update.
	KindInvariantViolation ErrorKind = "invariant_violation"
)

// Error is the typed error returned by every core operation that can
// fail. It is always synchronous and always carries enough context to
// locate the failure.
type Error struct {
	Kind ErrorKind
	// Pos is the offending position, if any applies.
	Pos GridCoord
	// HasPos reports whether Pos is meaningful for this error.
	HasPos bool
	// ID is the offending entity id, if any applies.
	ID string
	// Msg is a short human-readable explanation.
	Msg string
}

func (e *Error) Error() string {
	switch {
	case e.HasPos:
		return fmt.Sprintf("%s: %s at %s", e.Kind, e.Msg, e.Pos)
	case e.ID != "":
		return fmt.Sprintf("%s: %s (id=%s)", e.Kind, e.Msg, e.ID)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
}

// Is allows errors.Is(err, ErrUnknownKind) style matching against the
// error kind alone, ignoring position/id payload.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func errUnknownKind(kind EntityKind) error {
	return &Error{Kind: KindUnknownKind, Msg: fmt.Sprintf("kind %q is not registered", kind)}
}

func errOutOfBounds(pos GridCoord) error {
	return &Error{Kind: KindOutOfBounds, Pos: pos, HasPos: true, Msg: "position is outside the world bounds"}
}

func errInvalidCoord(pos GridCoord) error {
	return &Error{Kind: KindInvalidCoord, Pos: pos, HasPos: true, Msg: "position is not a valid integer grid coordinate"}
}

func errInvalidDirection() error {
	return &Error{Kind: KindInvalidDirection, Msg: "direction must be one of N, E, S, W"}
}

func errAlreadyRegistered(kind EntityKind) error {
	return &Error{Kind: KindAlreadyRegistered, Msg: fmt.Sprintf("kind %q is already registered", kind)}
}

func errInvariantViolation(msg string) error {
	return &Error{Kind: KindInvariantViolation, Msg: msg}
}

// Sentinel values usable with errors.Is(err, world.ErrUnknownKind) etc.
// without needing the position/id payload to match.
var (
	ErrUnknownKind        = &Error{Kind: KindUnknownKind}
	ErrOutOfBounds        = &Error{Kind: KindOutOfBounds}
	ErrInvalidCoord       = &Error{Kind: KindInvalidCoord}
	ErrInvalidDirection   = &Error{Kind: KindInvalidDirection}
	ErrAlreadyRegistered  = &Error{Kind: KindAlreadyRegistered}
	ErrInvariantViolation = &Error{Kind: KindInvariantViolation}
)
