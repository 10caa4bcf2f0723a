package conversion

import (
	"errors"
	"fmt"
)

const (
	// KindMissingNumeral indicates the numeral slot was absent or held nothing usable.
	KindMissingNumeral ErrorKind = "missing-numeral"

	// KindMissingTargetRadix indicates the target radix slot was absent or not a number.
	KindMissingTargetRadix ErrorKind = "missing-target-radix"

	// KindSourceRadixOutOfRange indicates the source radix fell outside the accepted window.
	KindSourceRadixOutOfRange ErrorKind = "source-radix-out-of-range"

	// KindTargetRadixOutOfRange indicates the target radix fell outside the accepted window.
	KindTargetRadixOutOfRange ErrorKind = "target-radix-out-of-range"

	// KindInvalidNumeral indicates the numeral is not legal in its source radix.
	KindInvalidNumeral ErrorKind = "invalid-numeral"
)

// Sentinels for use with errors.Is; any *Error of the same kind matches.
var (
	ErrMissingNumeral        = &Error{Kind: KindMissingNumeral}
	ErrMissingTargetRadix    = &Error{Kind: KindMissingTargetRadix}
	ErrSourceRadixOutOfRange = &Error{Kind: KindSourceRadixOutOfRange}
	ErrTargetRadixOutOfRange = &Error{Kind: KindTargetRadixOutOfRange}
	ErrInvalidNumeral        = &Error{Kind: KindInvalidNumeral}
)

// ErrorKind classifies why a conversion could not be performed.
type ErrorKind string

// Error is a classified, recoverable conversion failure.
type Error struct {
	Kind ErrorKind

	// Numeral is the numeral as supplied, echoed verbatim in messages.
	Numeral string

	// Radix is the offending radix, when it parsed as an integer.
	Radix int

	// RadixRaw is the offending radix text as supplied.
	RadixRaw string

	// Window is the accepted radix range for range errors.
	Window Window

	cause error
}

// Error implements error.
func (e *Error) Error() string {
	switch e.Kind {
	case KindMissingNumeral:
		return "no number to convert"
	case KindMissingTargetRadix:
		return "no base to convert to"
	case KindSourceRadixOutOfRange:
		return fmt.Sprintf("source base %s is not between %d and %d", e.radixText(), e.Window.Min, e.Window.Max)
	case KindTargetRadixOutOfRange:
		return fmt.Sprintf("target base %s is not between %d and %d", e.radixText(), e.Window.Min, e.Window.Max)
	case KindInvalidNumeral:
		return fmt.Sprintf("'%s' is not a valid number in base %d", e.Numeral, e.Radix)
	default:
		return fmt.Sprintf("conversion failed (%s)", e.Kind)
	}
}

// Is matches any *Error with the same Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) radixText() string {
	if e.RadixRaw != "" {
		return e.RadixRaw
	}
	return fmt.Sprintf("%d", e.Radix)
}
