// Package options configures the dependencies shared by radixd commands.
package options

import (
	"fmt"
	"reflect"

	"github.com/radixd/radixd/internal/cmd/output"
	"github.com/radixd/radixd/internal/config"
	"github.com/radixd/radixd/internal/printer"
)

type CmdOption func(*CmdOptions) error

type CmdOptions struct {
	ConfigLoader      config.Loader
	ConfigInitializer config.Initializer
	Printer           output.Printer[printer.ConversionEntry]
}

func defaultOptions() CmdOptions {
	configLoader := &config.DefaultLoader{}
	return CmdOptions{
		ConfigLoader:      configLoader,
		ConfigInitializer: configLoader,
		Printer:           printer.NewConversionPrinter(),
	}
}

func NewOptions(opt ...CmdOption) (CmdOptions, error) {
	opts := defaultOptions()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return CmdOptions{}, err
		}
	}
	return opts, nil
}

func WithConfigLoader(l config.Loader) CmdOption {
	return func(o *CmdOptions) error {
		if isNil(l) {
			return fmt.Errorf("config loader cannot be nil")
		}
		o.ConfigLoader = l
		return nil
	}
}

func WithConfigInitializer(i config.Initializer) CmdOption {
	return func(o *CmdOptions) error {
		if isNil(i) {
			return fmt.Errorf("config initializer cannot be nil")
		}
		o.ConfigInitializer = i
		return nil
	}
}

func WithPrinter(p output.Printer[printer.ConversionEntry]) CmdOption {
	return func(o *CmdOptions) error {
		if isNil(p) {
			return fmt.Errorf("printer cannot be nil")
		}
		o.Printer = p
		return nil
	}
}

func isNil(v any) bool {
	return v == nil || (reflect.ValueOf(v).Kind() == reflect.Ptr && reflect.ValueOf(v).IsNil())
}
