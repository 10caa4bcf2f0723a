package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/radixd/radixd/internal/cmd"
	cmdopts "github.com/radixd/radixd/internal/cmd/options"
	"github.com/radixd/radixd/internal/config"
	"github.com/radixd/radixd/internal/daemon"
	"github.com/radixd/radixd/internal/flags"
)

const (
	flagDev                = "dev"
	flagAddr               = "addr"
	flagMCP                = "mcp"
	flagRateLimit          = "rate-limit"
	flagRateLimitBurst     = "rate-limit-burst"
	flagTimeoutAPIShutdown = "timeout-api-shutdown"

	defaultAddr = "0.0.0.0:8090"
	devAddr     = "localhost:8090"
)

// DaemonCmd should be used to represent the 'daemon' command.
type DaemonCmd struct {
	*cmd.BaseCmd
	Dev             bool
	Addr            string
	MCP             bool
	RateLimit       float64
	RateLimitBurst  int
	ShutdownTimeout time.Duration
	cfgLoader       config.Loader
}

// NewDaemonCmd creates a newly configured (Cobra) command.
func NewDaemonCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &DaemonCmd{
		BaseCmd:   baseCmd,
		cfgLoader: opts.ConfigLoader,
	}

	cobraCommand := &cobra.Command{
		Use:   "daemon [--dev] [--addr]",
		Short: "Launches a `radixd` daemon instance",
		Long: "Launches a `radixd` daemon instance, which serves the voice skill endpoint, " +
			"the conversion API and the MCP conversion tool via HTTP.\n\n" +
			"Flags override the matching settings in the configuration file.",
		RunE: c.run,
		Args: cobra.NoArgs,
	}

	cobraCommand.Flags().BoolVar(
		&c.Dev,
		flagDev,
		false,
		"Run the daemon in development-focused mode",
	)

	cobraCommand.Flags().StringVar(
		&c.Addr,
		flagAddr,
		defaultAddr,
		"Address for the daemon to bind (not applicable in --dev mode)",
	)

	cobraCommand.Flags().BoolVar(
		&c.MCP,
		flagMCP,
		daemon.DefaultMCPEnabled(),
		"Serve the conversion tool over MCP alongside the API",
	)

	cobraCommand.Flags().Float64Var(
		&c.RateLimit,
		flagRateLimit,
		0,
		"Requests per second served across the API (0 disables rate limiting)",
	)

	cobraCommand.Flags().IntVar(
		&c.RateLimitBurst,
		flagRateLimitBurst,
		daemon.DefaultRateLimitBurst(),
		"Requests allowed above the sustained rate limit",
	)

	cobraCommand.Flags().DurationVar(
		&c.ShutdownTimeout,
		flagTimeoutAPIShutdown,
		daemon.DefaultAPIShutdownTimeout(),
		"Time to wait for in-flight requests when shutting down",
	)

	cobraCommand.MarkFlagsMutuallyExclusive(flagDev, flagAddr)

	return cobraCommand, nil
}

// run is configured (via NewDaemonCmd) to be called by the Cobra framework when the command is executed.
// It may return an error (or nil, when there is no error).
func (c *DaemonCmd) run(cobraCmd *cobra.Command, _ []string) error {
	logger, err := c.Logger()
	if err != nil {
		return err
	}

	cfg, err := c.LoadConfig(c.cfgLoader)
	if err != nil {
		return err
	}

	addr := c.addr(cobraCmd, cfg, logger)

	service, err := cfg.Conversion.NewService()
	if err != nil {
		return fmt.Errorf("error configuring conversion service: %w", err)
	}

	deps, err := daemon.NewDependencies(logger, addr, service)
	if err != nil {
		return fmt.Errorf("error configuring radixd daemon dependencies: %w", err)
	}

	mcpEnabled := c.mcpEnabled(cobraCmd, cfg)

	d, err := daemon.NewDaemon(
		deps,
		daemon.WithAPIOptions(c.apiOptions(cobraCmd, cfg)...),
		daemon.WithSkillOptions(cfg.Skill.Options()...),
		daemon.WithMCPEnabled(mcpEnabled),
	)
	if err != nil {
		return fmt.Errorf("failed to create radixd daemon instance: %w", err)
	}

	// Create the signal handling context for the application.
	daemonCtx, daemonCtxCancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGINT,
	)
	defer daemonCtxCancel()

	runErr := make(chan error, 1)
	go func() {
		if err := d.StartAndManage(daemonCtx); err != nil && !errors.Is(err, context.Canceled) {
			runErr <- err
		}
		close(runErr)
	}()

	// Print --dev mode banner if required.
	if c.Dev {
		logger.Info("Launching daemon in dev mode", "addr", addr)
		_, _ = fmt.Fprint(cobraCmd.OutOrStdout(), c.devBanner(addr, cfg, mcpEnabled))
	}

	select {
	case <-daemonCtx.Done():
		logger.Info("Shutting down daemon")
		err := <-runErr // Wait for cleanup and deferred logging.
		return err      // Graceful Ctrl+C / SIGTERM.
	case err := <-runErr:
		logger.Error("daemon exited with error", "error", err)
		return err // Propagate daemon failure.
	}
}

// addr resolves the bind address from the flags and configuration, with dev mode taking precedence.
func (c *DaemonCmd) addr(cobraCmd *cobra.Command, cfg *config.Config, logger hclog.Logger) string {
	addr := cfg.API.AddrOrDefault(defaultAddr)
	if cobraCmd.Flags().Changed(flagAddr) {
		addr = strings.TrimSpace(c.Addr)
	}

	// Override address for dev mode.
	if c.Dev {
		logger.Info("Development-focused mode", "addr", addr, "override", devAddr)
		addr = devAddr
	}

	return addr
}

// apiOptions builds the API server options from the configuration, overridden by any flags set.
func (c *DaemonCmd) apiOptions(cobraCmd *cobra.Command, cfg *config.Config) []daemon.APIOption {
	shutdown := cfg.API.ShutdownOrDefault(daemon.DefaultAPIShutdownTimeout())
	if cobraCmd.Flags().Changed(flagTimeoutAPIShutdown) {
		shutdown = c.ShutdownTimeout
	}

	var rateCfg *config.RateLimitConfigSection
	if cfg.API != nil {
		rateCfg = cfg.API.RateLimit
	}
	rps := rateCfg.RequestsPerSecondOrDefault(0)
	if cobraCmd.Flags().Changed(flagRateLimit) {
		rps = c.RateLimit
	}
	burst := rateCfg.BurstOrDefault(daemon.DefaultRateLimitBurst())
	if cobraCmd.Flags().Changed(flagRateLimitBurst) {
		burst = c.RateLimitBurst
	}

	opts := []daemon.APIOption{
		daemon.WithShutdownTimeout(shutdown),
		daemon.WithRateLimit(rps, burst),
		daemon.WithMCPPath(cfg.MCP.PathOrDefault(daemon.DefaultMCPPath())),
	}

	var cors *config.CORSConfigSection
	if cfg.API != nil {
		cors = cfg.API.CORS
	}
	if !cors.EnableOrDefault(false) {
		return opts
	}

	opts = append(opts,
		daemon.WithCORSEnabled(true),
		daemon.WithCORSAllowCredentials(cors.CredentialsOrDefault(daemon.DefaultCORSAllowCredentials())),
		daemon.WithCORSMaxAge(cors.MaxAgeOrDefault(daemon.DefaultCORSMaxAge())),
	)
	if len(cors.Origins) > 0 {
		opts = append(opts, daemon.WithCORSAllowOrigins(cors.Origins))
	}
	if len(cors.Methods) > 0 {
		opts = append(opts, daemon.WithCORSAllowMethods(cors.Methods))
	}
	if len(cors.Headers) > 0 {
		opts = append(opts, daemon.WithCORSAllowHeaders(cors.Headers))
	}
	if len(cors.ExposeHeaders) > 0 {
		opts = append(opts, daemon.WithCORSExposeHeaders(cors.ExposeHeaders))
	}

	return opts
}

func (c *DaemonCmd) mcpEnabled(cobraCmd *cobra.Command, cfg *config.Config) bool {
	if cobraCmd.Flags().Changed(flagMCP) {
		return c.MCP
	}
	return cfg.MCP.EnableOrDefault(daemon.DefaultMCPEnabled())
}

func (c *DaemonCmd) devBanner(addr string, cfg *config.Config, mcpEnabled bool) string {
	configFile := cfg.Path()
	if configFile == "" {
		configFile = "(defaults)"
	}

	banner := fmt.Sprintf("radixd daemon running in 'dev' mode.\n\n"+
		"  Local API:\thttp://%s/api/v1\n"+
		"  Skill:\thttp://%s/api/v1/skill\n"+
		"  OpenAPI UI:\thttp://%s/docs\n"+
		"  Config file:\t%s\n",
		addr, addr, addr, configFile)

	if mcpEnabled {
		banner += fmt.Sprintf("  MCP:\t\thttp://%s%s\n", addr, cfg.MCP.PathOrDefault(daemon.DefaultMCPPath()))
	}

	if flags.LogPath != "" {
		banner += fmt.Sprintf("  Log file:\t%s => (%s)\n", flags.LogPath, flags.LogLevel)
	}

	banner += "\nPress Ctrl+C to stop.\n\n"
	return banner
}
