package daemon

import (
	"github.com/radixd/radixd/internal/skill"
)

// Options contains optional configuration for the daemon.
// NewOptions should be used to create instances of Options.
type Options struct {
	// APIOptions contains functional options for the API server.
	APIOptions []APIOption

	// SkillOptions configure how voice assistant requests are verified and routed.
	SkillOptions []skill.Option

	// MCPEnabled serves the conversion tool over streamable HTTP alongside the API.
	MCPEnabled bool
}

// Option defines a functional option for configuring Options.
// Options are applied in order, with later options overriding earlier ones.
type Option func(*Options) error

// NewOptions creates Options with optional configurations applied.
// Starts with default values, then applies options in order with later options overriding earlier ones.
func NewOptions(opts ...Option) (Options, error) {
	options := defaultOptions()

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

// WithAPIOptions configures API server options.
// Replaces all previous API configuration including CORS settings.
func WithAPIOptions(apiOpts ...APIOption) Option {
	return func(o *Options) error {
		o.APIOptions = apiOpts
		return nil
	}
}

// WithSkillOptions configures the skill handler.
// Replaces all previous skill configuration.
func WithSkillOptions(skillOpts ...skill.Option) Option {
	return func(o *Options) error {
		o.SkillOptions = skillOpts
		return nil
	}
}

// WithMCPEnabled configures whether the MCP endpoint is served.
func WithMCPEnabled(enabled bool) Option {
	return func(o *Options) error {
		o.MCPEnabled = enabled
		return nil
	}
}

// DefaultMCPEnabled reports whether the MCP endpoint is served unless configured otherwise.
func DefaultMCPEnabled() bool {
	return true
}

// defaultOptions returns Options with default values.
func defaultOptions() Options {
	return Options{
		MCPEnabled: DefaultMCPEnabled(),
	}
}
