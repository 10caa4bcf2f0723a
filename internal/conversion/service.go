// Package conversion turns normalized slot input into a converted numeral or a classified failure.
package conversion

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/radixd/radixd/internal/radix"
	"github.com/radixd/radixd/internal/slots"
)

// Window is an inclusive radix range.
type Window struct {
	Min int `json:"min" toml:"min" yaml:"min"`
	Max int `json:"max" toml:"max" yaml:"max"`
}

// Service validates conversion input against the configured radix windows and performs the conversion.
// It holds no mutable state and is safe for concurrent use.
// NewService should be used to create instances of Service.
type Service struct {
	converter    *radix.Converter
	sourceWindow Window
	targetWindow Window
}

// Outcome describes a successful conversion.
type Outcome struct {
	// Numeral is the numeral as it was validated.
	Numeral string

	SourceRadix int

	// SourceDefaulted is true when SourceRadix was assumed rather than supplied.
	SourceDefaulted bool

	TargetRadix int

	radix.Result
}

// Summary is the serializable form of an Outcome.
type Summary struct {
	Numeral     string `json:"numeral"     yaml:"numeral"`
	SourceRadix int    `json:"sourceRadix" yaml:"sourceRadix"`
	TargetRadix int    `json:"targetRadix" yaml:"targetRadix"`
	Value       string `json:"value"       yaml:"value"`
	Rendered    string `json:"rendered"    yaml:"rendered"`
	SpokenForm  string `json:"spokenForm"  yaml:"spokenForm"`
}

// Summary returns the outcome with the integer value in decimal text.
func (o Outcome) Summary() Summary {
	value := ""
	if o.Value != nil {
		value = o.Value.String()
	}

	return Summary{
		Numeral:     o.Numeral,
		SourceRadix: o.SourceRadix,
		TargetRadix: o.TargetRadix,
		Value:       value,
		Rendered:    o.Rendered,
		SpokenForm:  o.SpokenForm,
	}
}

// Contains reports whether r is within the window.
func (w Window) Contains(r int) bool {
	return r >= w.Min && r <= w.Max
}

// String implements fmt.Stringer.
func (w Window) String() string {
	return fmt.Sprintf("[%d, %d]", w.Min, w.Max)
}

// NewService creates a Service using converter for the arithmetic.
func NewService(converter *radix.Converter, opt ...Option) (*Service, error) {
	if converter == nil || reflect.ValueOf(converter).IsNil() {
		return nil, fmt.Errorf("converter cannot be nil")
	}

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	windows := []struct {
		name   string
		window Window
	}{
		{"source", opts.SourceWindow},
		{"target", opts.TargetWindow},
	}
	for _, w := range windows {
		if w.window.Min < radix.MinRadix || w.window.Max > converter.MaxRadix() {
			return nil, fmt.Errorf(
				"%s radix window %s must be within [%d, %d]",
				w.name, w.window, radix.MinRadix, converter.MaxRadix(),
			)
		}
	}

	return &Service{
		converter:    converter,
		sourceWindow: opts.SourceWindow,
		targetWindow: opts.TargetWindow,
	}, nil
}

// SourceWindow returns the accepted source radix range.
func (s *Service) SourceWindow() Window {
	return s.sourceWindow
}

// TargetWindow returns the accepted target radix range.
func (s *Service) TargetWindow() Window {
	return s.targetWindow
}

// ConvertRaw normalizes raw slot text and converts it.
func (s *Service) ConvertRaw(raw slots.RawSlots) (Outcome, error) {
	return s.Convert(slots.Normalize(raw))
}

// Convert checks the input in a fixed order (numeral, target radix, source range, target range,
// numeral validity) and returns the first failure as an *Error, or the converted result.
func (s *Service) Convert(in slots.ConversionInput) (Outcome, error) {
	if !in.Numeral.Present() {
		return Outcome{}, &Error{Kind: KindMissingNumeral, Numeral: in.Numeral.Raw}
	}

	if !in.TargetRadix.Present() {
		return Outcome{}, &Error{Kind: KindMissingTargetRadix, Numeral: in.Numeral.Raw, RadixRaw: in.TargetRadix.Raw}
	}

	switch {
	case in.SourceRadix.Kind == slots.KindNotANumber:
		return Outcome{}, &Error{
			Kind:     KindSourceRadixOutOfRange,
			Numeral:  in.Numeral.Raw,
			RadixRaw: in.SourceRadix.Raw,
			Window:   s.sourceWindow,
		}
	case !s.sourceWindow.Contains(in.SourceRadix.Value):
		return Outcome{}, &Error{
			Kind:     KindSourceRadixOutOfRange,
			Numeral:  in.Numeral.Raw,
			Radix:    in.SourceRadix.Value,
			RadixRaw: suppliedRadix(in.SourceRadix),
			Window:   s.sourceWindow,
		}
	}

	if !s.targetWindow.Contains(in.TargetRadix.Value) {
		return Outcome{}, &Error{
			Kind:     KindTargetRadixOutOfRange,
			Numeral:  in.Numeral.Raw,
			Radix:    in.TargetRadix.Value,
			RadixRaw: suppliedRadix(in.TargetRadix),
			Window:   s.targetWindow,
		}
	}

	numeral := in.Numeral.Value
	res, err := s.converter.Convert(numeral, in.SourceRadix.Value, in.TargetRadix.Value)
	if err != nil {
		return Outcome{}, &Error{
			Kind:    KindInvalidNumeral,
			Numeral: in.Numeral.Raw,
			Radix:   in.SourceRadix.Value,
			cause:   err,
		}
	}

	return Outcome{
		Numeral:         numeral,
		SourceRadix:     in.SourceRadix.Value,
		SourceDefaulted: in.SourceRadix.Defaulted,
		TargetRadix:     in.TargetRadix.Value,
		Result:          res,
	}, nil
}

// suppliedRadix returns the radix text as given, so values too large for an int are echoed intact.
// A defaulted radix has no text of its own.
func suppliedRadix(s slots.Slot[int]) string {
	if s.Defaulted {
		return ""
	}
	return strings.TrimSpace(s.Raw)
}
