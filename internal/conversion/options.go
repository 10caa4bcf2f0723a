package conversion

import "fmt"

// Options contains optional configuration for a Service.
// NewOptions should be used to create instances of Options.
type Options struct {
	// SourceWindow is the accepted range for the radix a numeral is spoken in.
	SourceWindow Window

	// TargetWindow is the accepted range for the radix to convert into.
	TargetWindow Window
}

// Option defines a functional option for configuring Options.
type Option func(*Options) error

// NewOptions creates Options starting from defaults, then applies options in order.
func NewOptions(opts ...Option) (Options, error) {
	options := Options{
		SourceWindow: DefaultSourceWindow(),
		TargetWindow: DefaultTargetWindow(),
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

// WithSourceWindow configures the accepted source radix range.
func WithSourceWindow(w Window) Option {
	return func(o *Options) error {
		if w.Min > w.Max {
			return fmt.Errorf("source radix window %s is empty", w)
		}
		o.SourceWindow = w
		return nil
	}
}

// WithTargetWindow configures the accepted target radix range.
func WithTargetWindow(w Window) Option {
	return func(o *Options) error {
		if w.Min > w.Max {
			return fmt.Errorf("target radix window %s is empty", w)
		}
		o.TargetWindow = w
		return nil
	}
}

// DefaultSourceWindow returns [2, 10]. Numerals are captured from speech as decimal digits only.
func DefaultSourceWindow() Window {
	return Window{Min: 2, Max: 10}
}

// DefaultTargetWindow returns [2, 36].
func DefaultTargetWindow() Window {
	return Window{Min: 2, Max: 36}
}
