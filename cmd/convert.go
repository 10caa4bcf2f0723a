package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/radixd/radixd/internal/cmd"
	cmdopts "github.com/radixd/radixd/internal/cmd/options"
	"github.com/radixd/radixd/internal/cmd/output"
	"github.com/radixd/radixd/internal/config"
	"github.com/radixd/radixd/internal/printer"
	"github.com/radixd/radixd/internal/slots"
)

const (
	flagFrom        = "from"
	flagTo          = "to"
	flagFormat      = "format"
	flagConcurrency = "concurrency"

	defaultConcurrency = 4
)

// ConvertCmd converts numerals given on the command line.
// NOTE: Use NewConvertCmd to create a ConvertCmd.
type ConvertCmd struct {
	*cmd.BaseCmd

	// From is the source radix as text, classified the same way as a spoken slot.
	From string

	// To is the target radix as text.
	To string

	// Concurrency bounds how many numerals are converted at once.
	Concurrency int

	// format stores the format flag when specified.
	format cmd.OutputFormat

	cfgLoader config.Loader
	printer   output.Printer[printer.ConversionEntry]
}

// NewConvertCmd creates the convert command.
func NewConvertCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ConvertCmd{
		BaseCmd:   baseCmd,
		cfgLoader: opts.ConfigLoader,
		printer:   opts.Printer,
		format:    cmd.FormatText, // Default to plain text
	}

	cobraCmd := &cobra.Command{
		Use:   "convert <numeral>... --to <base> [--from <base>]",
		Short: "Converts numerals between bases",
		Long: `Converts one or more numerals between bases using the same rules as the voice skill.

The source base defaults to 10 when --from is not given. Bases and numerals are
accepted as text, so '0xFF' and ' 255 ' are read the way the skill would hear them.
Every numeral is reported; the command fails if any could not be converted.`,
		Example: `  # Convert 255 to hexadecimal
  radixd convert 255 --to 16

  # Convert several binary numerals to decimal as JSON
  radixd convert 1010 1111 --from 2 --to 10 --format json`,
		RunE: c.run,
		Args: cobra.MinimumNArgs(1),
	}

	cobraCmd.Flags().StringVar(
		&c.From,
		flagFrom,
		"",
		"Base the numerals are written in (default: 10)",
	)

	cobraCmd.Flags().StringVar(
		&c.To,
		flagTo,
		"",
		"Base to convert the numerals into",
	)
	_ = cobraCmd.MarkFlagRequired(flagTo)

	cobraCmd.Flags().IntVar(
		&c.Concurrency,
		flagConcurrency,
		defaultConcurrency,
		"Maximum number of numerals converted at once",
	)

	allowedOutputFormats := cmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(
		&c.format,
		flagFormat,
		fmt.Sprintf("Specify the output format (one of: %s)", allowedOutputFormats.String()),
	)

	return cobraCmd, nil
}

func (c *ConvertCmd) run(cobraCmd *cobra.Command, args []string) error {
	if c.Concurrency < 1 {
		return fmt.Errorf("--%s must be at least 1, got %d", flagConcurrency, c.Concurrency)
	}

	handler, err := cmd.FormatHandler(cobraCmd.OutOrStdout(), c.format, c.printer)
	if err != nil {
		return err
	}

	logger, err := c.Logger()
	if err != nil {
		return handler.HandleError(err)
	}

	cfg, err := c.LoadConfig(c.cfgLoader)
	if err != nil {
		return handler.HandleError(err)
	}

	service, err := cfg.Conversion.NewService()
	if err != nil {
		return handler.HandleError(fmt.Errorf("error configuring conversion service: %w", err))
	}

	fromSet := cobraCmd.Flags().Changed(flagFrom)
	entries := make([]printer.ConversionEntry, len(args))

	var g errgroup.Group
	g.SetLimit(c.Concurrency)

	for i, numeral := range args {
		g.Go(func() error {
			raw := slots.RawSlots{
				slots.Numeral:     numeral,
				slots.TargetRadix: c.To,
			}
			if fromSet {
				raw[slots.SourceRadix] = c.From
			}

			out, err := service.ConvertRaw(raw)
			if err != nil {
				logger.Debug("Conversion not performed", "numeral", numeral, "error", err)
			}
			entries[i] = printer.NewConversionEntry(numeral, out, err)

			return nil
		})
	}
	_ = g.Wait()

	if err := handler.HandleResults(entries...); err != nil {
		return err
	}

	var failed []string
	for _, e := range entries {
		if e.Failed() {
			failed = append(failed, e.Input)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d numerals could not be converted: %s",
			len(failed), len(entries), strings.Join(failed, ", "))
	}

	return nil
}
