package conversion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radixd/radixd/internal/radix"
	"github.com/radixd/radixd/internal/slots"
)

func testService(t *testing.T, opt ...Option) *Service {
	t.Helper()

	c, err := radix.NewConverter()
	require.NoError(t, err)

	s, err := NewService(c, opt...)
	require.NoError(t, err)
	return s
}

func TestService_Convert_DefaultSourceRadix(t *testing.T) {
	t.Parallel()

	s := testService(t)

	out, err := s.ConvertRaw(slots.RawSlots{
		slots.Numeral:     "255",
		slots.TargetRadix: "16",
	})
	require.NoError(t, err)
	require.Equal(t, 10, out.SourceRadix)
	require.True(t, out.SourceDefaulted)
	require.Equal(t, 16, out.TargetRadix)
	require.Equal(t, int64(255), out.Value.Int64())
	require.Equal(t, "ff", out.Rendered)
	require.Equal(t, "f f", out.SpokenForm)
}

func TestService_Convert_ExplicitSourceRadix(t *testing.T) {
	t.Parallel()

	s := testService(t)

	out, err := s.ConvertRaw(slots.RawSlots{
		slots.Numeral:     "101",
		slots.SourceRadix: "2",
		slots.TargetRadix: "10",
	})
	require.NoError(t, err)
	require.False(t, out.SourceDefaulted)
	require.Equal(t, int64(5), out.Value.Int64())
	require.Equal(t, "5", out.Rendered)
	require.Equal(t, "5", out.SpokenForm)
}

func TestService_Convert_Errors(t *testing.T) {
	t.Parallel()

	s := testService(t)

	tests := []struct {
		name     string
		raw      slots.RawSlots
		sentinel error
		wantMsg  string
		check    func(t *testing.T, e *Error)
	}{
		{
			name:     "invalid numeral for radix",
			raw:      slots.RawSlots{slots.Numeral: "9", slots.SourceRadix: "2", slots.TargetRadix: "10"},
			sentinel: ErrInvalidNumeral,
			wantMsg:  "'9' is not a valid number in base 2",
			check: func(t *testing.T, e *Error) {
				require.Equal(t, "9", e.Numeral)
				require.Equal(t, 2, e.Radix)
				require.ErrorIs(t, e, radix.ErrInvalidNumeral)
			},
		},
		{
			name:     "target radix placeholder",
			raw:      slots.RawSlots{slots.Numeral: "255", slots.TargetRadix: slots.NoInput},
			sentinel: ErrMissingTargetRadix,
			wantMsg:  "no base to convert to",
		},
		{
			name:     "target radix missing",
			raw:      slots.RawSlots{slots.Numeral: "255"},
			sentinel: ErrMissingTargetRadix,
		},
		{
			name:     "target radix not a number",
			raw:      slots.RawSlots{slots.Numeral: "255", slots.TargetRadix: "hex"},
			sentinel: ErrMissingTargetRadix,
		},
		{
			name:     "numeral missing",
			raw:      slots.RawSlots{slots.TargetRadix: "2"},
			sentinel: ErrMissingNumeral,
			wantMsg:  "no number to convert",
		},
		{
			name:     "numeral placeholder wins over missing target",
			raw:      slots.RawSlots{slots.Numeral: slots.NoInput},
			sentinel: ErrMissingNumeral,
		},
		{
			name:     "numeral not a number",
			raw:      slots.RawSlots{slots.Numeral: "??!", slots.TargetRadix: "2"},
			sentinel: ErrMissingNumeral,
			check: func(t *testing.T, e *Error) {
				require.Equal(t, "??!", e.Numeral)
			},
		},
		{
			name:     "source radix too large",
			raw:      slots.RawSlots{slots.Numeral: "1", slots.SourceRadix: "16", slots.TargetRadix: "2"},
			sentinel: ErrSourceRadixOutOfRange,
			wantMsg:  "source base 16 is not between 2 and 10",
		},
		{
			name:     "source radix one",
			raw:      slots.RawSlots{slots.Numeral: "1", slots.SourceRadix: "1", slots.TargetRadix: "2"},
			sentinel: ErrSourceRadixOutOfRange,
		},
		{
			name:     "source radix not a number",
			raw:      slots.RawSlots{slots.Numeral: "1", slots.SourceRadix: "ten", slots.TargetRadix: "2"},
			sentinel: ErrSourceRadixOutOfRange,
			wantMsg:  "source base ten is not between 2 and 10",
		},
		{
			name:     "target radix too large",
			raw:      slots.RawSlots{slots.Numeral: "1", slots.TargetRadix: "37"},
			sentinel: ErrTargetRadixOutOfRange,
			wantMsg:  "target base 37 is not between 2 and 36",
		},
		{
			name:     "target radix beyond int range",
			raw:      slots.RawSlots{slots.Numeral: "255", slots.TargetRadix: "99999999999999999999"},
			sentinel: ErrTargetRadixOutOfRange,
			wantMsg:  "target base 99999999999999999999 is not between 2 and 36",
		},
		{
			name:     "source radix beyond int range",
			raw:      slots.RawSlots{slots.Numeral: "1", slots.SourceRadix: " 99999999999999999999 ", slots.TargetRadix: "2"},
			sentinel: ErrSourceRadixOutOfRange,
			wantMsg:  "source base 99999999999999999999 is not between 2 and 10",
		},
		{
			name:     "padded invalid numeral echoed as supplied",
			raw:      slots.RawSlots{slots.Numeral: " 12a ", slots.TargetRadix: "2"},
			sentinel: ErrInvalidNumeral,
			wantMsg:  "' 12a ' is not a valid number in base 10",
			check: func(t *testing.T, e *Error) {
				require.Equal(t, " 12a ", e.Numeral)
			},
		},
		{
			name:     "target radix zero",
			raw:      slots.RawSlots{slots.Numeral: "1", slots.TargetRadix: "0"},
			sentinel: ErrTargetRadixOutOfRange,
		},
		{
			name:     "signed numeral",
			raw:      slots.RawSlots{slots.Numeral: "-5", slots.TargetRadix: "2"},
			sentinel: ErrInvalidNumeral,
			wantMsg:  "'-5' is not a valid number in base 10",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := s.ConvertRaw(tc.raw)
			require.Error(t, err)
			require.ErrorIs(t, err, tc.sentinel)

			var convErr *Error
			require.True(t, errors.As(err, &convErr))
			if tc.wantMsg != "" {
				require.EqualError(t, err, tc.wantMsg)
			}
			if tc.check != nil {
				tc.check(t, convErr)
			}
		})
	}
}

func TestService_CustomWindows(t *testing.T) {
	t.Parallel()

	s := testService(t,
		WithSourceWindow(Window{Min: 2, Max: 16}),
		WithTargetWindow(Window{Min: 2, Max: 8}),
	)
	require.Equal(t, Window{Min: 2, Max: 16}, s.SourceWindow())
	require.Equal(t, Window{Min: 2, Max: 8}, s.TargetWindow())

	out, err := s.ConvertRaw(slots.RawSlots{
		slots.Numeral:     "ff",
		slots.SourceRadix: "16",
		slots.TargetRadix: "8",
	})
	require.NoError(t, err)
	require.Equal(t, "377", out.Rendered)

	_, err = s.ConvertRaw(slots.RawSlots{
		slots.Numeral:     "ff",
		slots.SourceRadix: "16",
		slots.TargetRadix: "16",
	})
	require.ErrorIs(t, err, ErrTargetRadixOutOfRange)

	octal := testService(t, WithSourceWindow(Window{Min: 2, Max: 8}))
	_, err = octal.ConvertRaw(slots.RawSlots{slots.Numeral: "7", slots.SourceRadix: slots.NoInput, slots.TargetRadix: "2"})
	require.EqualError(t, err, "source base 10 is not between 2 and 8")
}

func TestNewService_Errors(t *testing.T) {
	t.Parallel()

	c, err := radix.NewConverter()
	require.NoError(t, err)

	_, err = NewService(nil)
	require.EqualError(t, err, "converter cannot be nil")

	_, err = NewService(c, WithSourceWindow(Window{Min: 1, Max: 10}))
	require.EqualError(t, err, "source radix window [1, 10] must be within [2, 36]")

	_, err = NewService(c, WithTargetWindow(Window{Min: 2, Max: 40}))
	require.EqualError(t, err, "target radix window [2, 40] must be within [2, 36]")

	_, err = NewService(c, WithTargetWindow(Window{Min: 10, Max: 2}))
	require.EqualError(t, err, "target radix window [10, 2] is empty")
}

func TestError_IsMatchesKindOnly(t *testing.T) {
	t.Parallel()

	err := &Error{Kind: KindInvalidNumeral, Numeral: "z", Radix: 10}
	require.ErrorIs(t, err, ErrInvalidNumeral)
	require.NotErrorIs(t, err, ErrMissingNumeral)
	require.NotErrorIs(t, err, errors.New("invalid-numeral"))
}

func TestWindow(t *testing.T) {
	t.Parallel()

	w := Window{Min: 2, Max: 10}
	require.True(t, w.Contains(2))
	require.True(t, w.Contains(10))
	require.False(t, w.Contains(1))
	require.False(t, w.Contains(11))
	require.Equal(t, "[2, 10]", w.String())
}

func TestOutcome_Summary(t *testing.T) {
	t.Parallel()

	svc := testService(t)

	out, err := svc.ConvertRaw(slots.RawSlots{slots.Numeral: "255", slots.TargetRadix: "16"})
	require.NoError(t, err)
	require.Equal(t, Summary{
		Numeral:     "255",
		SourceRadix: 10,
		TargetRadix: 16,
		Value:       "255",
		Rendered:    "ff",
		SpokenForm:  "f f",
	}, out.Summary())

	require.Empty(t, Outcome{}.Summary().Value)
}
