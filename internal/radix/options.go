package radix

import (
	"fmt"
	"reflect"

	"github.com/radixd/radixd/internal/alphabet"
)

// DefaultMaxNumeralLength bounds the arbitrary-precision work done for a single numeral.
const DefaultMaxNumeralLength = 256

// Options contains optional configuration for a Converter.
// NewOptions should be used to create instances of Options.
type Options struct {
	// Alphabet maps symbols to digit values.
	Alphabet alphabet.Alphabet

	// MaxNumeralLength is the longest numeral, in symbols, that will be accepted.
	MaxNumeralLength int
}

// Option defines a functional option for configuring Options.
type Option func(*Options) error

// NewOptions creates Options starting from defaults, then applies options in order.
func NewOptions(opts ...Option) (Options, error) {
	options := Options{
		Alphabet:         alphabet.Default(),
		MaxNumeralLength: DefaultMaxNumeralLength,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return Options{}, err
		}
	}

	return options, nil
}

// WithAlphabet substitutes the symbol set used for validation and rendering.
func WithAlphabet(a alphabet.Alphabet) Option {
	return func(o *Options) error {
		if a == nil || reflect.ValueOf(a).IsNil() {
			return fmt.Errorf("alphabet cannot be nil")
		}
		if a.Size() < MinRadix {
			return fmt.Errorf("alphabet must have at least %d symbols, got %d", MinRadix, a.Size())
		}
		o.Alphabet = a
		return nil
	}
}

// WithMaxNumeralLength configures the longest numeral that will be accepted.
func WithMaxNumeralLength(n int) Option {
	return func(o *Options) error {
		if n <= 0 {
			return fmt.Errorf("max numeral length must be positive, got %d", n)
		}
		o.MaxNumeralLength = n
		return nil
	}
}
