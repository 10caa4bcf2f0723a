package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewYAMLHandler_Writer(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	h := NewYAMLHandler[attempt](buf, 3)
	require.Equal(t, buf, h.Writer())
}

func TestYAMLHandler_HandleResults(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	h := NewYAMLHandler[attempt](buf, 2)

	err := h.HandleResults(attempt{Numeral: "ff"}, attempt{Numeral: "9", Error: "invalid-numeral"})
	require.NoError(t, err)

	expected := "results:\n" +
		"  - numeral: ff\n" +
		"  - numeral: \"9\"\n" +
		"    error: invalid-numeral\n" +
		"succeeded: 1\n" +
		"failed: 1\n"
	require.Equal(t, expected, buf.String())
}

func TestYAMLHandler_HandleResults_Empty(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	h := NewYAMLHandler[attempt](buf, 2)

	require.NoError(t, h.HandleResults(nil...))
	require.Equal(t, "results: []\nsucceeded: 0\nfailed: 0\n", buf.String())
}

func TestYAMLHandler_HandleError(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	h := NewYAMLHandler[attempt](buf, 4)

	require.NoError(t, h.HandleError(errors.New("something went wrong")))
	require.Equal(t, "error: something went wrong\n", buf.String())
}

func TestYAMLHandler_HandleError_EmptyMessage(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	h := NewYAMLHandler[attempt](buf, 0)

	require.NoError(t, h.HandleError(errors.New("")))
	require.Equal(t, "error: \"\"\n", buf.String())
}
