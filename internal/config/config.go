// Package config loads and validates the radixd configuration file (.radixd.toml).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/radixd/radixd/internal/perms"
)

var _ Provider = (*DefaultLoader)(nil)

type Loader interface {
	Load(path string) (*Config, error)
}

type Initializer interface {
	Init(path string) error
}

type Provider interface {
	Initializer
	Loader
}

type DefaultLoader struct{}

// Config represents the .radixd.toml file structure.
//
// NOTE: if you add/remove sections you must review the associated Validate implementations,
// along with the template written by Init.
type Config struct {
	// API configuration (address, timeouts, CORS and rate limiting).
	API *APIConfigSection `json:"api,omitempty" toml:"api,omitempty" yaml:"api,omitempty"`

	// Skill configuration (request verification and interaction model names).
	Skill *SkillConfigSection `json:"skill,omitempty" toml:"skill,omitempty" yaml:"skill,omitempty"`

	// Conversion configuration (accepted radix windows and numeral length).
	Conversion *ConversionConfigSection `json:"conversion,omitempty" toml:"conversion,omitempty" yaml:"conversion,omitempty"`

	// MCP configuration (the conversion tool served over MCP).
	MCP *MCPConfigSection `json:"mcp,omitempty" toml:"mcp,omitempty" yaml:"mcp,omitempty"`

	configFilePath string `toml:"-"`
}

// defaultTemplate is written by Init. Every setting is commented out so built-in defaults apply.
const defaultTemplate = `# radixd configuration.
# Every value below is the built-in default; uncomment to change it.

[api]
# addr = "0.0.0.0:8090"

[api.timeout]
# shutdown = "5s"

[api.cors]
# enable = false
# allow_origins = ["http://localhost:3000"]
# max_age = "5m"

[api.rate_limit]
# Requests per second across the API, 0 disables limiting.
# requests_per_second = 0.0
# burst = 1

[skill]
# Reject requests addressed to any other application when set.
# application_id = ""
# intent = "BASECONVERTERINTENT"
# Maximum difference between a request timestamp and now, "0s" disables the check.
# max_request_age = "150s"

[skill.slots]
# numeral = "to_convert"
# source_radix = "init_base"
# target_radix = "final_base"

[conversion]
# source_min = 2
# source_max = 10
# target_min = 2
# target_max = 36
# max_numeral_length = 256

[mcp]
# enable = true
# path = "/mcp"
`

// Init creates the base skeleton configuration file.
func (d *DefaultLoader) Init(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(defaultTemplate), perms.RegularFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Load decodes and validates the configuration file at path.
// A missing file is reported with ErrConfigNotFound so callers can fall back to defaults.
func (d *DefaultLoader) Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrConfigLoadFailed)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %w (%s), run: 'radixd init'", ErrConfigLoadFailed, ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: failed to stat config file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode config from file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%w: unknown keys in config file (%s): %s", ErrConfigLoadFailed, path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: failed to validate config (%s): %w", ErrConfigLoadFailed, path, err)
	}

	// Update the path that loaded this file to track it.
	cfg.configFilePath = path

	return &cfg, nil
}

// Default returns a configuration with no values set, so every accessor yields its default.
func Default() *Config {
	return &Config{}
}

// Path returns the file the configuration was loaded from, if any.
func (c *Config) Path() string {
	return c.configFilePath
}

// Validate checks every configured section.
func (c *Config) Validate() error {
	var validationErrors []error

	if err := c.API.Validate(); err != nil {
		validationErrors = append(validationErrors, fmt.Errorf("api configuration error: %w", err))
	}
	if err := c.Skill.Validate(); err != nil {
		validationErrors = append(validationErrors, fmt.Errorf("skill configuration error: %w", err))
	}
	if err := c.Conversion.Validate(); err != nil {
		validationErrors = append(validationErrors, fmt.Errorf("conversion configuration error: %w", err))
	}
	if err := c.MCP.Validate(); err != nil {
		validationErrors = append(validationErrors, fmt.Errorf("mcp configuration error: %w", err))
	}

	return errors.Join(validationErrors...)
}
