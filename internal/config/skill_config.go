package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/radixd/radixd/internal/conversion"
	"github.com/radixd/radixd/internal/radix"
	"github.com/radixd/radixd/internal/skill"
)

// SkillConfigSection contains settings for handling voice assistant requests.
//
// NOTE: if you add/remove fields you must review the associated Validate implementation,
// along with the template written by Init.
type SkillConfigSection struct {
	// Application ID requests must be addressed to, empty accepts any
	ApplicationID *string `json:"applicationId,omitempty" toml:"application_id,omitempty" yaml:"application_id,omitempty"`

	// Name of the conversion intent in the interaction model
	Intent *string `json:"intent,omitempty" toml:"intent,omitempty" yaml:"intent,omitempty"`

	// Maximum allowed skew between a request timestamp and now, zero disables the check
	MaxRequestAge *Duration `json:"maxRequestAge,omitempty" toml:"max_request_age,omitempty" yaml:"max_request_age,omitempty"`

	// Slot names used by the interaction model
	Slots *SlotsConfigSection `json:"slots,omitempty" toml:"slots,omitempty" yaml:"slots,omitempty"`
}

// SlotsConfigSection maps the interaction model's slot names to the conversion inputs.
type SlotsConfigSection struct {
	Numeral     *string `json:"numeral,omitempty" toml:"numeral,omitempty" yaml:"numeral,omitempty"`
	SourceRadix *string `json:"sourceRadix,omitempty" toml:"source_radix,omitempty" yaml:"source_radix,omitempty"`
	TargetRadix *string `json:"targetRadix,omitempty" toml:"target_radix,omitempty" yaml:"target_radix,omitempty"`
}

// ConversionConfigSection bounds the radices and numerals the service accepts.
type ConversionConfigSection struct {
	SourceMin        *int `json:"sourceMin,omitempty" toml:"source_min,omitempty" yaml:"source_min,omitempty"`
	SourceMax        *int `json:"sourceMax,omitempty" toml:"source_max,omitempty" yaml:"source_max,omitempty"`
	TargetMin        *int `json:"targetMin,omitempty" toml:"target_min,omitempty" yaml:"target_min,omitempty"`
	TargetMax        *int `json:"targetMax,omitempty" toml:"target_max,omitempty" yaml:"target_max,omitempty"`
	MaxNumeralLength *int `json:"maxNumeralLength,omitempty" toml:"max_numeral_length,omitempty" yaml:"max_numeral_length,omitempty"`
}

// ApplicationIDOrDefault returns the configured application ID, or an empty string if not set.
func (s *SkillConfigSection) ApplicationIDOrDefault() string {
	if s == nil || s.ApplicationID == nil {
		return ""
	}
	return *s.ApplicationID
}

// IntentOrDefault returns the configured conversion intent name.
func (s *SkillConfigSection) IntentOrDefault() string {
	if s == nil || s.Intent == nil {
		return skill.DefaultConversionIntent
	}
	return *s.Intent
}

// MaxRequestAgeOrDefault returns the configured request age tolerance.
func (s *SkillConfigSection) MaxRequestAgeOrDefault() time.Duration {
	if s == nil || s.MaxRequestAge == nil {
		return skill.DefaultMaxRequestAge()
	}
	return time.Duration(*s.MaxRequestAge)
}

// SlotNamesOrDefault returns the slot names, with unset names taken from the defaults.
func (s *SkillConfigSection) SlotNamesOrDefault() skill.SlotNames {
	names := skill.DefaultSlotNames()
	if s == nil || s.Slots == nil {
		return names
	}
	if s.Slots.Numeral != nil {
		names.Numeral = *s.Slots.Numeral
	}
	if s.Slots.SourceRadix != nil {
		names.SourceRadix = *s.Slots.SourceRadix
	}
	if s.Slots.TargetRadix != nil {
		names.TargetRadix = *s.Slots.TargetRadix
	}
	return names
}

// Options returns the skill handler options described by this section.
func (s *SkillConfigSection) Options() []skill.Option {
	return []skill.Option{
		skill.WithApplicationID(s.ApplicationIDOrDefault()),
		skill.WithConversionIntent(s.IntentOrDefault()),
		skill.WithSlotNames(s.SlotNamesOrDefault()),
		skill.WithMaxRequestAge(s.MaxRequestAgeOrDefault()),
	}
}

// Validate implements validation for SkillConfigSection.
func (s *SkillConfigSection) Validate() error {
	if s == nil {
		return nil
	}

	var validationErrors []error

	if s.Intent != nil && strings.TrimSpace(*s.Intent) == "" {
		validationErrors = append(validationErrors, fmt.Errorf("intent cannot be empty"))
	}
	if s.MaxRequestAge != nil && *s.MaxRequestAge < 0 {
		validationErrors = append(validationErrors, fmt.Errorf("max request age cannot be negative"))
	}
	if s.Slots != nil {
		if _, err := skill.NewOptions(skill.WithSlotNames(s.SlotNamesOrDefault())); err != nil {
			validationErrors = append(validationErrors, fmt.Errorf("slots configuration error: %w", err))
		}
	}

	return errors.Join(validationErrors...)
}

// SourceWindowOrDefault returns the accepted source radix window.
func (c *ConversionConfigSection) SourceWindowOrDefault() conversion.Window {
	w := conversion.DefaultSourceWindow()
	if c == nil {
		return w
	}
	if c.SourceMin != nil {
		w.Min = *c.SourceMin
	}
	if c.SourceMax != nil {
		w.Max = *c.SourceMax
	}
	return w
}

// TargetWindowOrDefault returns the accepted target radix window.
func (c *ConversionConfigSection) TargetWindowOrDefault() conversion.Window {
	w := conversion.DefaultTargetWindow()
	if c == nil {
		return w
	}
	if c.TargetMin != nil {
		w.Min = *c.TargetMin
	}
	if c.TargetMax != nil {
		w.Max = *c.TargetMax
	}
	return w
}

// MaxNumeralLengthOrDefault returns the longest numeral accepted.
func (c *ConversionConfigSection) MaxNumeralLengthOrDefault() int {
	if c == nil || c.MaxNumeralLength == nil {
		return radix.DefaultMaxNumeralLength
	}
	return *c.MaxNumeralLength
}

// NewService builds a conversion service from this section.
func (c *ConversionConfigSection) NewService() (*conversion.Service, error) {
	converter, err := radix.NewConverter(radix.WithMaxNumeralLength(c.MaxNumeralLengthOrDefault()))
	if err != nil {
		return nil, err
	}

	return conversion.NewService(
		converter,
		conversion.WithSourceWindow(c.SourceWindowOrDefault()),
		conversion.WithTargetWindow(c.TargetWindowOrDefault()),
	)
}

// Validate implements validation for ConversionConfigSection.
func (c *ConversionConfigSection) Validate() error {
	if c == nil {
		return nil
	}

	if _, err := c.NewService(); err != nil {
		return err
	}

	return nil
}
