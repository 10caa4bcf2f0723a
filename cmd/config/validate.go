package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/radixd/radixd/internal/cmd"
	cmdopts "github.com/radixd/radixd/internal/cmd/options"
	"github.com/radixd/radixd/internal/config"
	"github.com/radixd/radixd/internal/flags"
)

type ValidateCmd struct {
	*cmd.BaseCmd
	cfgLoader config.Loader
}

func NewValidateCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ValidateCmd{
		BaseCmd:   baseCmd,
		cfgLoader: opts.ConfigLoader,
	}

	cobraCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		Long:  `Validate every section of the .radixd.toml file, reporting all problems found`,
		RunE:  c.run,
		Args:  cobra.NoArgs,
	}

	return cobraCmd, nil
}

func (c *ValidateCmd) run(cmd *cobra.Command, _ []string) error {
	// The file is loaded directly so a missing file is reported rather than replaced by defaults.
	cfg, err := c.cfgLoader.Load(flags.ConfigFile)
	if err != nil {
		_, _ = fmt.Fprintf(cmd.OutOrStderr(), "✗ Configuration validation failed: %v\n", err)
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Configuration is valid: %s\n", cfg.Path())
	return nil
}
