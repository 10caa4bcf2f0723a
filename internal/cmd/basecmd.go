// Package cmd holds helpers shared by the radixd cobra commands.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/radixd/radixd/internal/config"
	"github.com/radixd/radixd/internal/flags"
	"github.com/radixd/radixd/internal/perms"
)

// AppName is the name used for the binary, loggers and served MCP implementation.
const AppName = "radixd"

// version is set at build time using -ldflags.
var version = "dev"

// Version returns the build version of radixd.
func Version() string {
	return version
}

type BaseCmd struct {
	mu     sync.Mutex
	logger hclog.Logger
}

// SetLogger updates the command's logger.
func (c *BaseCmd) SetLogger(logger hclog.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger = logger
}

// Logger returns the logger for the command, creating it from the global flags on first use.
// Without a log path, log output is discarded so it does not mix with command output.
func (c *BaseCmd) Logger() (hclog.Logger, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.logger != nil {
		return c.logger, nil
	}

	logLevel, err := parseLogLevel(flags.LogLevel)
	if err != nil {
		return nil, err
	}

	var output io.Writer = io.Discard
	if logPath := strings.TrimSpace(flags.LogPath); logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, perms.RegularFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file (%s): %w", logPath, err)
		}
		output = f
	}

	c.logger = hclog.New(&hclog.LoggerOptions{
		Name:   AppName,
		Level:  logLevel,
		Output: output,
	})

	return c.logger, nil
}

// LoadConfig loads the configuration file named by the global flags.
// When the default file is absent the built-in defaults are used; an explicitly named file must exist.
func (c *BaseCmd) LoadConfig(loader config.Loader) (*config.Config, error) {
	cfg, err := loader.Load(flags.ConfigFile)
	if err == nil {
		return cfg, nil
	}

	if errors.Is(err, config.ErrConfigNotFound) && flags.ConfigFile == flags.DefaultConfigFile {
		if logger, logErr := c.Logger(); logErr == nil {
			logger.Debug("No config file found, using defaults", "path", flags.ConfigFile)
		}
		return config.Default(), nil
	}

	return nil, err
}

func parseLogLevel(lvl string) (hclog.Level, error) {
	lvl = strings.ToLower(strings.TrimSpace(lvl))
	switch lvl {
	case "":
		return hclog.LevelFromString(flags.DefaultLogLevel), nil
	case "trace", "debug", "info", "warn", "error", "off":
		return hclog.LevelFromString(lvl), nil
	default:
		return hclog.NoLevel, fmt.Errorf("invalid log level '%s', must be one of trace, debug, info, warn, error, off", lvl)
	}
}
