// Package config holds the commands that manage the radixd configuration file.
package config

import (
	"github.com/spf13/cobra"

	"github.com/radixd/radixd/internal/cmd"
	cmdopts "github.com/radixd/radixd/internal/cmd/options"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	cobraCmd := &cobra.Command{
		Use:   "config",
		Short: "Manages the radixd configuration file",
		Long:  "Manages the radixd configuration file (.radixd.toml)",
	}

	fns := []func(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error){
		NewValidateCmd,
	}

	for _, fn := range fns {
		tempCmd, err := fn(baseCmd, opt...)
		if err != nil {
			return nil, err
		}
		cobraCmd.AddCommand(tempCmd)
	}

	return cobraCmd, nil
}
