// Package flags holds the global command line flags shared by every radixd command.
package flags

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
)

const (
	EnvVarConfigFile = "RADIXD_CONFIG_FILE"
	EnvVarLogPath    = "RADIXD_LOG_PATH"
	EnvVarLogLevel   = "RADIXD_LOG_LEVEL"

	DefaultConfigFile = ".radixd.toml"
	DefaultLogPath    = ""
	DefaultLogLevel   = "info"

	FlagNameConfigFile = "config-file"
	FlagNameLogPath    = "log-path"
	FlagNameLogLevel   = "log-level"
)

var (
	ConfigFile string
	LogPath    string
	LogLevel   string
)

// InitFlags registers the global flags on fs.
// Values resolve as flag, then environment variable, then default.
func InitFlags(fs *pflag.FlagSet) {
	ConfigFile = fromEnv(ConfigFile, EnvVarConfigFile, DefaultConfigFile)
	fs.StringVar(&ConfigFile, FlagNameConfigFile, ConfigFile, "path to config file")

	LogPath = fromEnv(LogPath, EnvVarLogPath, DefaultLogPath)
	fs.StringVar(&LogPath, FlagNameLogPath, LogPath, "path to generated log file (logs are discarded when empty)")

	LogLevel = strings.ToLower(fromEnv(LogLevel, EnvVarLogLevel, DefaultLogLevel))
	fs.StringVar(&LogLevel, FlagNameLogLevel, LogLevel, "log level for radixd logs (trace, debug, info, warn, error, off)")
}

// fromEnv keeps current when already set, otherwise reads envVar, falling back to def.
func fromEnv(current string, envVar string, def string) string {
	if current != "" {
		return current
	}
	if env := strings.TrimSpace(os.Getenv(envVar)); env != "" {
		return env
	}
	return def
}
