package printer

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radixd/radixd/internal/cmd/output"
	"github.com/radixd/radixd/internal/conversion"
	"github.com/radixd/radixd/internal/radix"
	"github.com/radixd/radixd/internal/slots"
)

func convert(t *testing.T, raw slots.RawSlots) (conversion.Outcome, error) {
	t.Helper()

	c, err := radix.NewConverter()
	require.NoError(t, err)
	svc, err := conversion.NewService(c)
	require.NoError(t, err)

	return svc.ConvertRaw(raw)
}

func TestNewConversionEntry(t *testing.T) {
	t.Parallel()

	out, err := convert(t, slots.RawSlots{slots.Numeral: "255", slots.TargetRadix: "16"})
	entry := NewConversionEntry("255", out, err)
	require.False(t, entry.Failed())
	require.Equal(t, "ff", entry.Result.Rendered)
	require.Empty(t, entry.Error)

	out, err = convert(t, slots.RawSlots{slots.Numeral: "9", slots.SourceRadix: "2", slots.TargetRadix: "10"})
	entry = NewConversionEntry("9", out, err)
	require.True(t, entry.Failed())
	require.Equal(t, "'9' is not a valid number in base 2", entry.Error)
	require.Equal(t, string(conversion.KindInvalidNumeral), entry.ErrorKind)

	entry = NewConversionEntry("x", conversion.Outcome{}, errors.New("boom"))
	require.True(t, entry.Failed())
	require.Empty(t, entry.ErrorKind)
}

func TestConversionPrinter_TextHandler(t *testing.T) {
	t.Parallel()

	ok, err := convert(t, slots.RawSlots{slots.Numeral: "255", slots.TargetRadix: "16"})
	require.NoError(t, err)
	binary, err := convert(t, slots.RawSlots{slots.Numeral: "5", slots.TargetRadix: "2"})
	require.NoError(t, err)
	_, failed := convert(t, slots.RawSlots{slots.Numeral: "12", slots.SourceRadix: "1", slots.TargetRadix: "2"})
	require.Error(t, failed)

	buf := &bytes.Buffer{}
	h := output.NewTextHandler[ConversionEntry](buf, NewConversionPrinter())
	err = h.HandleResults(
		NewConversionEntry("255", ok, nil),
		NewConversionEntry("5", binary, nil),
		NewConversionEntry("12", conversion.Outcome{}, failed),
	)
	require.NoError(t, err)

	expected := "✅ 255 (base 10) => ff (base 16)\n" +
		"   spoken: f f\n" +
		"✅ 5 (base 10) => 101 (base 2)\n" +
		"❌ 12: source base 1 is not between 2 and 10\n" +
		"\n🔢 3 numerals\n"
	require.Equal(t, expected, buf.String())
}

func TestConversionPrinter_SingleItemHasNoFooter(t *testing.T) {
	t.Parallel()

	out, err := convert(t, slots.RawSlots{slots.Numeral: "7", slots.TargetRadix: "8"})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	p := NewConversionPrinter()
	p.SetHeader(func(w io.Writer, count int) {
		_, _ = w.Write([]byte("HEADER\n"))
	})
	h := output.NewTextHandler[ConversionEntry](buf, p)
	require.NoError(t, h.HandleResults(NewConversionEntry("7", out, nil)))
	require.Equal(t, "HEADER\n✅ 7 (base 10) => 7 (base 8)\n", buf.String())
}
