package cmd

import (
	"bytes"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/radixd/radixd/internal/cmd"
	"github.com/radixd/radixd/internal/config"
	"github.com/radixd/radixd/internal/flags"
)

// mockConfigLoader implements config.Loader for testing.
type mockConfigLoader struct {
	cfg *config.Config
	err error
}

func (m *mockConfigLoader) Load(_ string) (*config.Config, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.cfg == nil {
		return config.Default(), nil
	}
	return m.cfg, nil
}

// mockConfigInitializer implements config.Initializer for testing.
type mockConfigInitializer struct {
	path string
	err  error
}

func (m *mockConfigInitializer) Init(path string) error {
	m.path = path
	return m.err
}

func testBaseCmd(t *testing.T) *cmd.BaseCmd {
	t.Helper()

	c := &cmd.BaseCmd{}
	c.SetLogger(hclog.NewNullLogger())
	return c
}

// setConfigFile points the global config file flag at path for the duration of the test.
func setConfigFile(t *testing.T, path string) {
	t.Helper()

	orig := flags.ConfigFile
	t.Cleanup(func() {
		flags.ConfigFile = orig
	})
	flags.ConfigFile = path
}

func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	c.SilenceErrors = true
	c.SilenceUsage = true
	c.SetArgs(args)
	c.SetOut(&out)
	c.SetErr(&out)

	err := c.Execute()
	return out.String(), err
}
