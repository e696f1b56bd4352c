package unidate

import "errors"

// Sentinel errors returned by conversion operations. Callers match them
// with errors.Is; every return site wraps them with context via fmt.Errorf.
var (
	// ErrInvalidDate marks a malformed or out-of-range Gregorian or
	// Unified date (bad string, impossible day-of-year, leap day in a
	// non-leap year).
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidVariant marks an unrecognized regional variant.
	ErrInvalidVariant = errors.New("invalid variant")

	// ErrInvalidStyle marks an unrecognized rendering style at the parse
	// boundary. Style values that bypass parsing degrade to Long during
	// formatting instead of erroring.
	ErrInvalidStyle = errors.New("invalid style")

	// ErrPrehistoricDate marks a Unified year that maps before Gregorian
	// year 1. Those dates cannot be converted.
	ErrPrehistoricDate = errors.New("prehistoric date")

	// ErrNoDate is returned when formatting is requested before any
	// successful Unify call populated the instance.
	ErrNoDate = errors.New("no date unified")
)
