package skill

import (
	"fmt"
	"strings"
	"time"
)

// DefaultConversionIntent is the name of the intent that carries a conversion request.
const DefaultConversionIntent = "BASECONVERTERINTENT"

// SlotNames maps the platform's slot names onto the logical conversion inputs.
type SlotNames struct {
	Numeral     string `json:"numeral"     toml:"numeral"      yaml:"numeral"`
	SourceRadix string `json:"sourceRadix" toml:"source_radix" yaml:"source_radix"`
	TargetRadix string `json:"targetRadix" toml:"target_radix" yaml:"target_radix"`
}

// Options contains optional configuration for a Handler.
// NewOptions should be used to create instances of Options.
type Options struct {
	// ApplicationID, when set, must match the application each request is addressed to.
	ApplicationID string

	// ConversionIntent is the intent name routed to the converter.
	ConversionIntent string

	// Slots names the intent slots carrying the conversion inputs.
	Slots SlotNames

	// MaxRequestAge is the tolerance for request timestamps. Zero disables the check;
	// otherwise requests without a timestamp are rejected.
	MaxRequestAge time.Duration

	// Clock supplies the current time for timestamp checks.
	Clock func() time.Time
}

// Option defines a functional option for configuring Options.
type Option func(*Options) error

// NewOptions creates Options starting from defaults, then applies options in order.
func NewOptions(opts ...Option) (Options, error) {
	options := Options{
		ConversionIntent: DefaultConversionIntent,
		Slots:            DefaultSlotNames(),
		MaxRequestAge:    DefaultMaxRequestAge(),
		Clock:            time.Now,
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

// WithApplicationID requires requests to be addressed to id. An empty id disables the check.
func WithApplicationID(id string) Option {
	return func(o *Options) error {
		o.ApplicationID = strings.TrimSpace(id)
		return nil
	}
}

// WithConversionIntent configures the intent name routed to the converter.
func WithConversionIntent(name string) Option {
	return func(o *Options) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("conversion intent name cannot be empty")
		}
		o.ConversionIntent = name
		return nil
	}
}

// WithSlotNames configures the intent slot names. Empty names keep their defaults.
func WithSlotNames(names SlotNames) Option {
	return func(o *Options) error {
		if n := strings.TrimSpace(names.Numeral); n != "" {
			o.Slots.Numeral = n
		}
		if n := strings.TrimSpace(names.SourceRadix); n != "" {
			o.Slots.SourceRadix = n
		}
		if n := strings.TrimSpace(names.TargetRadix); n != "" {
			o.Slots.TargetRadix = n
		}
		if o.Slots.Numeral == o.Slots.SourceRadix ||
			o.Slots.Numeral == o.Slots.TargetRadix ||
			o.Slots.SourceRadix == o.Slots.TargetRadix {
			return fmt.Errorf("slot names must be distinct, got %+v", o.Slots)
		}
		return nil
	}
}

// WithMaxRequestAge configures the tolerance for request timestamps. Zero disables the check;
// otherwise requests without a timestamp are rejected as stale.
func WithMaxRequestAge(age time.Duration) Option {
	return func(o *Options) error {
		if age < 0 {
			return fmt.Errorf("max request age cannot be negative, got %v", age)
		}
		o.MaxRequestAge = age
		return nil
	}
}

// WithClock replaces the time source used for timestamp checks.
func WithClock(clock func() time.Time) Option {
	return func(o *Options) error {
		if clock == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		o.Clock = clock
		return nil
	}
}

// DefaultSlotNames returns the slot names used by the conversion intent's interaction model.
func DefaultSlotNames() SlotNames {
	return SlotNames{
		Numeral:     "to_convert",
		SourceRadix: "init_base",
		TargetRadix: "final_base",
	}
}

// DefaultMaxRequestAge is the default tolerance for request timestamps.
func DefaultMaxRequestAge() time.Duration {
	return 150 * time.Second
}
