// Package radix validates numerals and converts them between positional number systems.
package radix

import (
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/radixd/radixd/internal/alphabet"
)

// MinRadix is the smallest radix for which positional notation is meaningful.
const MinRadix = 2

// spokenSeparator is placed between symbols when a numeral may contain letters.
const spokenSeparator = " "

var (
	// ErrInvalidNumeral indicates a numeral that is empty, too long, or contains symbols not legal in its radix.
	ErrInvalidNumeral = errors.New("invalid numeral")

	// ErrInvalidRadix indicates a radix outside the range supported by the converter's alphabet.
	ErrInvalidRadix = errors.New("invalid radix")

	// ErrNegativeValue indicates an attempt to render a negative (or nil) integer.
	ErrNegativeValue = errors.New("value must be a non-negative integer")
)

// Converter validates numerals and converts them between radices.
// It holds no mutable state and is safe for concurrent use.
// NewConverter should be used to create instances of Converter.
type Converter struct {
	alphabet  alphabet.Alphabet
	maxLength int
}

// Result is the outcome of converting a numeral into a target radix.
type Result struct {
	// Value is the integer the numeral represents.
	Value *big.Int

	// Rendered is Value written in the target radix.
	Rendered string

	// SpokenForm is Rendered prepared for a speech synthesizer.
	SpokenForm string
}

// NewConverter creates a Converter with default options applied, overridden by any supplied options.
func NewConverter(opt ...Option) (*Converter, error) {
	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	return &Converter{
		alphabet:  opts.Alphabet,
		maxLength: opts.MaxNumeralLength,
	}, nil
}

// MaxRadix returns the largest radix the converter's alphabet can express.
func (c *Converter) MaxRadix() int {
	return c.alphabet.Size()
}

// MaxNumeralLength returns the longest numeral (in symbols) the converter accepts.
func (c *Converter) MaxNumeralLength() int {
	return c.maxLength
}

// ValidRadix reports whether radix is within [MinRadix, MaxRadix].
func (c *Converter) ValidRadix(radix int) bool {
	return radix >= MinRadix && radix <= c.MaxRadix()
}

// Validate reports whether numeral is a non-empty numeral of acceptable length
// whose every symbol is legal in radix. Radices outside the supported range yield false.
func (c *Converter) Validate(numeral string, radix int) bool {
	if !c.ValidRadix(radix) {
		return false
	}

	n := utf8.RuneCountInString(numeral)
	if n == 0 || n > c.maxLength {
		return false
	}

	for _, r := range numeral {
		if _, ok := c.alphabet.SymbolValue(r, radix); !ok {
			return false
		}
	}

	return true
}

// ParseToInteger returns the value of numeral, read most-significant symbol first, in radix.
func (c *Converter) ParseToInteger(numeral string, radix int) (*big.Int, error) {
	if !c.Validate(numeral, radix) {
		return nil, fmt.Errorf("%w: '%s' in radix %d", ErrInvalidNumeral, numeral, radix)
	}

	base := big.NewInt(int64(radix))
	digit := new(big.Int)
	value := new(big.Int)
	for _, r := range numeral {
		d, _ := c.alphabet.SymbolValue(r, radix)
		value.Mul(value, base)
		value.Add(value, digit.SetInt64(int64(d)))
	}

	return value, nil
}

// RenderFromInteger writes value in radix using repeated division.
// Zero renders as the single zero symbol.
func (c *Converter) RenderFromInteger(value *big.Int, radix int) (string, error) {
	if !c.ValidRadix(radix) {
		return "", fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidRadix, radix, MinRadix, c.MaxRadix())
	}
	if value == nil || value.Sign() < 0 {
		return "", ErrNegativeValue
	}

	if value.Sign() == 0 {
		zero, err := c.alphabet.DigitSymbol(0, radix)
		if err != nil {
			return "", err
		}
		return string(zero), nil
	}

	base := big.NewInt(int64(radix))
	quotient := new(big.Int).Set(value)
	remainder := new(big.Int)

	// Remainders arrive least-significant first.
	var symbols []rune
	for quotient.Sign() > 0 {
		quotient.QuoRem(quotient, base, remainder)
		sym, err := c.alphabet.DigitSymbol(int(remainder.Int64()), radix)
		if err != nil {
			return "", err
		}
		symbols = append(symbols, sym)
	}
	slices.Reverse(symbols)

	return string(symbols), nil
}

// ToSpokenForm separates each symbol with a space when radix can produce letters,
// so a speech synthesizer reads symbols individually rather than as words.
func (c *Converter) ToSpokenForm(numeral string, radix int) string {
	if radix <= 10 {
		return numeral
	}

	parts := make([]string, 0, utf8.RuneCountInString(numeral))
	for _, r := range numeral {
		parts = append(parts, string(r))
	}

	return strings.Join(parts, spokenSeparator)
}

// Convert reads numeral in radix from and renders it in radix to.
func (c *Converter) Convert(numeral string, from int, to int) (Result, error) {
	value, err := c.ParseToInteger(numeral, from)
	if err != nil {
		return Result{}, err
	}

	rendered, err := c.RenderFromInteger(value, to)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Value:      value,
		Rendered:   rendered,
		SpokenForm: c.ToSpokenForm(rendered, to),
	}, nil
}
