package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/radixd/radixd/internal/cmd"
	cmdopts "github.com/radixd/radixd/internal/cmd/options"
	"github.com/radixd/radixd/internal/config"
	"github.com/radixd/radixd/internal/flags"
	"github.com/radixd/radixd/internal/mcptool"
)

// MCPCmd serves the conversion tool to an MCP client over stdio.
type MCPCmd struct {
	*cmd.BaseCmd
	cfgLoader config.Loader
}

// NewMCPCmd creates the mcp command.
func NewMCPCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &MCPCmd{
		BaseCmd:   baseCmd,
		cfgLoader: opts.ConfigLoader,
	}

	cobraCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serves the conversion tool over MCP using stdio",
		Long: fmt.Sprintf(
			"Serves the '%s' tool to an MCP client over stdin/stdout until the client disconnects.\n\n"+
				"Nothing else is written to stdout; use --%s to capture logs.",
			mcptool.ToolName,
			flags.FlagNameLogPath,
		),
		RunE: c.run,
		Args: cobra.NoArgs,
	}

	return cobraCmd, nil
}

func (c *MCPCmd) run(_ *cobra.Command, _ []string) error {
	logger, err := c.Logger()
	if err != nil {
		return err
	}

	cfg, err := c.LoadConfig(c.cfgLoader)
	if err != nil {
		return err
	}

	service, err := cfg.Conversion.NewService()
	if err != nil {
		return fmt.Errorf("error configuring conversion service: %w", err)
	}

	server, err := mcptool.NewServer(logger, service, cmd.AppName, cmd.Version())
	if err != nil {
		return err
	}

	logger.Info("Serving MCP over stdio", "tool", mcptool.ToolName)
	if err := server.ServeStdio(); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}
