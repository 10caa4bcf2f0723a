// Package cmd defines the radixd command line interface.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/radixd/radixd/cmd/config"
	"github.com/radixd/radixd/internal/cmd"
	cmdopts "github.com/radixd/radixd/internal/cmd/options"
	"github.com/radixd/radixd/internal/flags"
)

type RootCmd struct {
	*cmd.BaseCmd
}

// Execute runs the radixd root command.
func Execute() error {
	rootCmd, err := NewRootCmd(&RootCmd{BaseCmd: &cmd.BaseCmd{}})
	if err != nil {
		return err
	}

	return rootCmd.Execute()
}

// NewRootCmd creates the root command with every radixd command attached.
func NewRootCmd(c *RootCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:           fmt.Sprintf("%s <command> [args]", cmd.AppName),
		Short:         "'radixd' converts numerals between bases for voice assistants, HTTP clients and MCP agents.",
		Long:          c.longDescription(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       cmd.Version(),
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	fns := []func(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error){
		NewInitCmd,
		NewDaemonCmd,
		NewConvertCmd,
		NewMCPCmd,
		config.NewConfigCmd,
	}

	for _, fn := range fns {
		tempCmd, err := fn(c.BaseCmd, opt...)
		if err != nil {
			return nil, err
		}
		rootCmd.AddCommand(tempCmd)
	}

	return rootCmd, nil
}

func (c *RootCmd) longDescription() string {
	return `The 'radixd' CLI converts non-negative integer numerals between bases 2 to 36.

It serves a voice assistant skill endpoint, a JSON conversion API and an MCP tool
from a single daemon, and converts numerals directly from the command line.`
}

