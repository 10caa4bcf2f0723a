// Package slots classifies the raw values a voice platform extracted from an utterance.
package slots

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const (
	// Numeral is the logical name of the slot carrying the number to convert.
	Numeral = "numeral"

	// SourceRadix is the logical name of the slot carrying the radix the numeral is written in.
	SourceRadix = "sourceRadix"

	// TargetRadix is the logical name of the slot carrying the radix to convert into.
	TargetRadix = "targetRadix"
)

// NoInput is the placeholder a speech recognizer supplies when it captured nothing for a slot.
const NoInput = "?"

// DefaultSourceRadix is assumed for spoken numbers when no source radix was given.
const DefaultSourceRadix = 10

const (
	KindAbsent Kind = iota
	KindNotANumber
	KindValue
)

// Kind classifies a slot.
type Kind int

// Slot is a classified slot: absent, present but unusable, or holding a value.
// Raw always carries the original text when one was supplied.
type Slot[T any] struct {
	Kind  Kind
	Raw   string
	Value T

	// Defaulted is true when Value was substituted rather than supplied.
	Defaulted bool
}

// RawSlots maps a logical slot name to the text captured for it.
// A missing key means the slot was absent from the request.
type RawSlots map[string]string

// ConversionInput is the normalized, request-scoped input to a conversion.
type ConversionInput struct {
	Numeral     Slot[string]
	SourceRadix Slot[int]
	TargetRadix Slot[int]
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNotANumber:
		return "not-a-number"
	case KindValue:
		return "value"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Present reports whether the slot holds a usable value.
func (s Slot[T]) Present() bool {
	return s.Kind == KindValue
}

// Absent returns a slot with no value.
func Absent[T any]() Slot[T] {
	return Slot[T]{Kind: KindAbsent}
}

// Value returns a slot holding v.
func Value[T any](raw string, v T) Slot[T] {
	return Slot[T]{Kind: KindValue, Raw: raw, Value: v}
}

// NotANumber returns a slot whose raw text could not be interpreted.
func NotANumber[T any](raw string) Slot[T] {
	return Slot[T]{Kind: KindNotANumber, Raw: raw}
}

// Normalize classifies each slot independently and applies DefaultSourceRadix when
// the source radix is absent. The target radix and numeral are never defaulted.
func Normalize(raw RawSlots) ConversionInput {
	in := ConversionInput{
		Numeral:     ClassifyNumeral(lookup(raw, Numeral)),
		SourceRadix: ClassifyInteger(lookup(raw, SourceRadix)),
		TargetRadix: ClassifyInteger(lookup(raw, TargetRadix)),
	}

	if in.SourceRadix.Kind == KindAbsent {
		in.SourceRadix = Slot[int]{
			Kind:      KindValue,
			Raw:       in.SourceRadix.Raw,
			Value:     DefaultSourceRadix,
			Defaulted: true,
		}
	}

	return in
}

// ClassifyInteger classifies a radix slot: absent or the no-input placeholder is absent,
// text that is not a base-10 integer is not-a-number, otherwise the parsed integer.
// Integers beyond the int range are kept as values at the nearest bound.
func ClassifyInteger(raw *string) Slot[int] {
	if isAbsent(raw) {
		return absentFrom[int](raw)
	}

	v, err := strconv.Atoi(strings.TrimSpace(*raw))
	switch {
	case errors.Is(err, strconv.ErrRange):
		// Atoi saturates at the int bounds, which lie outside every radix window.
		return Value(*raw, v)
	case err != nil:
		return NotANumber[int](*raw)
	}

	return Value(*raw, v)
}

// ClassifyNumeral classifies the numeral slot. Text with no alphanumeric symbol at all is not-a-number;
// anything else is kept (trimmed) for strict validation against its radix later.
// The raw text is preserved in every case so it can be echoed back.
func ClassifyNumeral(raw *string) Slot[string] {
	if isAbsent(raw) {
		return absentFrom[string](raw)
	}

	trimmed := strings.TrimSpace(*raw)
	if !strings.ContainsFunc(trimmed, isNumeralSymbol) {
		return NotANumber[string](*raw)
	}

	return Value(*raw, trimmed)
}

func lookup(raw RawSlots, name string) *string {
	v, ok := raw[name]
	if !ok {
		return nil
	}
	return &v
}

func isAbsent(raw *string) bool {
	if raw == nil {
		return true
	}
	v := strings.TrimSpace(*raw)
	return v == "" || v == NoInput
}

func absentFrom[T any](raw *string) Slot[T] {
	s := Absent[T]()
	if raw != nil {
		s.Raw = *raw
	}
	return s
}

func isNumeralSymbol(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsDigit(r) || unicode.IsLetter(r))
}
