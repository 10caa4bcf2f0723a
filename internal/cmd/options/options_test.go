package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radixd/radixd/internal/cmd/output"
	"github.com/radixd/radixd/internal/config"
	"github.com/radixd/radixd/internal/printer"
)

type fakeLoader struct {
	config.Loader
}

type fakeInitializer struct {
	config.Initializer
}

type fakePrinter struct {
	output.Printer[printer.ConversionEntry]
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := defaultOptions()

	require.NotNil(t, opts.ConfigLoader)
	require.NotNil(t, opts.ConfigInitializer)
	require.NotNil(t, opts.Printer)
}

func TestNewOptions_WithOverrides(t *testing.T) {
	t.Parallel()

	loader := &fakeLoader{}
	initializer := &fakeInitializer{}
	prn := &fakePrinter{}

	opts, err := NewOptions(
		WithConfigLoader(loader),
		WithConfigInitializer(initializer),
		WithPrinter(prn),
		nil,
	)
	require.NoError(t, err)

	require.Equal(t, loader, opts.ConfigLoader)
	require.Equal(t, initializer, opts.ConfigInitializer)
	require.Equal(t, prn, opts.Printer)
}

func TestNewOptions_ErrorPropagation(t *testing.T) {
	t.Parallel()

	failing := func(o *CmdOptions) error {
		return errors.New("option failed")
	}

	_, err := NewOptions(failing)
	require.EqualError(t, err, "option failed")
}

func TestNewOptions_NilDependencies(t *testing.T) {
	t.Parallel()

	_, err := NewOptions(WithConfigLoader(nil))
	require.EqualError(t, err, "config loader cannot be nil")

	_, err = NewOptions(WithConfigLoader((*fakeLoader)(nil)))
	require.EqualError(t, err, "config loader cannot be nil")

	_, err = NewOptions(WithConfigInitializer(nil))
	require.EqualError(t, err, "config initializer cannot be nil")

	_, err = NewOptions(WithPrinter((*fakePrinter)(nil)))
	require.EqualError(t, err, "printer cannot be nil")
}
