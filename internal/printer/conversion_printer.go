// Package printer renders command results as human readable text.
package printer

import (
	"errors"
	"fmt"
	"io"

	"github.com/radixd/radixd/internal/cmd/output"
	"github.com/radixd/radixd/internal/conversion"
)

var _ output.Printer[ConversionEntry] = (*ConversionPrinter)(nil)

// ConversionEntry is one numeral converted from the command line, successful or not.
type ConversionEntry struct {
	Input  string              `json:"input"            yaml:"input"`
	Result *conversion.Summary `json:"result,omitempty" yaml:"result,omitempty"`

	Error     string `json:"error,omitempty"     yaml:"error,omitempty"`
	ErrorKind string `json:"errorKind,omitempty" yaml:"errorKind,omitempty"`
}

// NewConversionEntry builds the entry for input from the result of converting it.
func NewConversionEntry(input string, out conversion.Outcome, err error) ConversionEntry {
	entry := ConversionEntry{Input: input}

	if err != nil {
		entry.Error = err.Error()
		var convErr *conversion.Error
		if errors.As(err, &convErr) {
			entry.ErrorKind = string(convErr.Kind)
		}
		return entry
	}

	summary := out.Summary()
	entry.Result = &summary

	return entry
}

// Failed reports whether the conversion was not performed.
func (e ConversionEntry) Failed() bool {
	return e.Result == nil
}

type ConversionPrinter struct {
	headerFunc output.WriteFunc[ConversionEntry]
	footerFunc output.WriteFunc[ConversionEntry]
}

func NewConversionPrinter() *ConversionPrinter {
	return &ConversionPrinter{
		headerFunc: nil,
		footerFunc: DefaultConversionFooter(),
	}
}

func (p *ConversionPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *ConversionPrinter) SetHeader(fn output.WriteFunc[ConversionEntry]) {
	p.headerFunc = fn
}

// Item prints a single conversion on one line, or the reason it failed.
func (p *ConversionPrinter) Item(w io.Writer, entry ConversionEntry) error {
	if entry.Failed() {
		_, err := fmt.Fprintf(w, "❌ %s: %s\n", entry.Input, entry.Error)
		return err
	}

	s := entry.Result
	_, err := fmt.Fprintf(
		w,
		"✅ %s (base %d) => %s (base %d)\n",
		s.Numeral, s.SourceRadix, s.Rendered, s.TargetRadix,
	)
	if err != nil {
		return err
	}

	if s.SpokenForm != s.Rendered {
		_, err = fmt.Fprintf(w, "   spoken: %s\n", s.SpokenForm)
	}

	return err
}

func (p *ConversionPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *ConversionPrinter) SetFooter(fn output.WriteFunc[ConversionEntry]) {
	p.footerFunc = fn
}

// DefaultConversionFooter prints the number of conversions when there is more than one.
func DefaultConversionFooter() output.WriteFunc[ConversionEntry] {
	return func(w io.Writer, count int) {
		if count > 1 {
			_, _ = fmt.Fprintf(w, "\n🔢 %d numerals\n", count)
		}
	}
}
