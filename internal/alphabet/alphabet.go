// Package alphabet provides the ordered symbol sets used to write numerals in positional notation.
package alphabet

import (
	"fmt"
	"unicode"
)

// Base36 is the default ordered symbol set: digits followed by the lowercase latin letters.
const Base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

var _ Alphabet = (*Symbols)(nil)

// Alphabet maps digit values to symbols and symbols back to digit values.
type Alphabet interface {
	// Size returns the number of symbols, which is also the largest radix the alphabet can express.
	Size() int

	// SymbolValue returns the digit value of r under radix.
	// The second return value is false when r is not a symbol of the alphabet,
	// or when its position is not less than radix.
	SymbolValue(r rune, radix int) (int, bool)

	// DigitSymbol returns the symbol used to write value under radix.
	DigitSymbol(value int, radix int) (rune, error)
}

// Symbols is an Alphabet backed by an ordered set of distinct symbols.
// Only the ASCII letters A-Z are case-insensitive; every other rune must match a symbol exactly.
// NewSymbols should be used to create instances of Symbols.
type Symbols struct {
	symbols []rune
	index   map[rune]int
}

var defaultSymbols = mustSymbols(Base36)

// Default returns the 0-9a-z alphabet.
func Default() *Symbols {
	return defaultSymbols
}

// NewSymbols creates an alphabet from the ordered symbols in s.
// ASCII letters are folded to lower case; duplicates (after folding) and whitespace are rejected.
func NewSymbols(s string) (*Symbols, error) {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = foldASCII(r)
	}
	if len(runes) < 2 {
		return nil, fmt.Errorf("alphabet requires at least 2 symbols, got %d", len(runes))
	}

	index := make(map[rune]int, len(runes))
	for i, r := range runes {
		if unicode.IsSpace(r) {
			return nil, fmt.Errorf("alphabet symbol at position %d is whitespace", i)
		}
		if prev, ok := index[r]; ok {
			return nil, fmt.Errorf("alphabet symbol '%c' repeated at positions %d and %d", r, prev, i)
		}
		index[r] = i
	}

	return &Symbols{
		symbols: runes,
		index:   index,
	}, nil
}

func mustSymbols(s string) *Symbols {
	a, err := NewSymbols(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Size implements Alphabet.
func (a *Symbols) Size() int {
	return len(a.symbols)
}

// SymbolValue implements Alphabet.
func (a *Symbols) SymbolValue(r rune, radix int) (int, bool) {
	v, ok := a.index[foldASCII(r)]
	if !ok || v >= radix {
		return 0, false
	}
	return v, true
}

// DigitSymbol implements Alphabet.
func (a *Symbols) DigitSymbol(value int, radix int) (rune, error) {
	if radix < 2 || radix > len(a.symbols) {
		return 0, fmt.Errorf("radix %d outside alphabet range [2, %d]", radix, len(a.symbols))
	}
	if value < 0 || value >= radix {
		return 0, fmt.Errorf("digit value %d outside radix %d", value, radix)
	}
	return a.symbols[value], nil
}

// foldASCII lowers A-Z only. Unicode case mapping would let runes such as
// the Kelvin sign (U+212A) or dotted capital I (U+0130) stand in for latin letters.
func foldASCII(r rune) rune {
	if 'A' <= r && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// String returns the ordered symbols.
func (a *Symbols) String() string {
	return string(a.symbols)
}
