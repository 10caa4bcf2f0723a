package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/radixd/radixd/internal/cmd"
	cmdopts "github.com/radixd/radixd/internal/cmd/options"
	"github.com/radixd/radixd/internal/config"
	"github.com/radixd/radixd/internal/flags"
)

type InitCmd struct {
	*cmd.BaseCmd
	cfgInitializer config.Initializer
}

func NewInitCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &InitCmd{
		BaseCmd:        baseCmd,
		cfgInitializer: opts.ConfigInitializer,
	}

	cobraCommand := &cobra.Command{
		Use:   "init",
		Short: "Creates a radixd configuration file with every setting at its default",
		Long:  c.longDescription(),
		RunE:  c.run,
		Args:  cobra.NoArgs,
	}

	return cobraCommand, nil
}

func (c *InitCmd) longDescription() string {
	return fmt.Sprintf(
		"Creates a %s configuration file listing every setting, commented out at its default value.\n\n"+
			"The configuration file path can be overridden using the `--%s` flag or the `%s` environment variable",
		flags.DefaultConfigFile,
		flags.FlagNameConfigFile,
		flags.EnvVarConfigFile,
	)
}

func (c *InitCmd) run(cobraCmd *cobra.Command, _ []string) error {
	logger, err := c.Logger()
	if err != nil {
		return err
	}

	path, err := c.initPath(cobraCmd.OutOrStdout())
	if err != nil {
		logger.Error("Failed to resolve config file path", "error", err)
		return err
	}

	if err := c.cfgInitializer.Init(path); err != nil {
		logger.Error("Config initialization failed", "path", path, "error", err)
		return fmt.Errorf("error initializing config file: %w", err)
	}
	logger.Info("Config file created", "path", path)

	_, err = fmt.Fprintf(
		cobraCmd.OutOrStdout(),
		"✅ Config file created: %s\n"+
			"   Edit it, then check it with 'radixd config validate' and serve it with 'radixd daemon --dev'.\n",
		path,
	)
	return err
}

// initPath returns where the file should be created.
// The default file name is created in the current working directory.
func (c *InitCmd) initPath(w io.Writer) (string, error) {
	if flags.ConfigFile != flags.DefaultConfigFile {
		return flags.ConfigFile, nil
	}

	_, _ = fmt.Fprintf(w, "📄 Using default config file: '%s' in the current directory\n", flags.DefaultConfigFile)

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("error getting current directory: %w", err)
	}

	return filepath.Join(cwd, flags.DefaultConfigFile), nil
}
