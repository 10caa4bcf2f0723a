package output

import (
	"encoding/json"
	"io"
	"strings"
)

// JSONHandler writes the batch, or the error that stopped it, as JSON.
type JSONHandler[T Result] struct {
	out    io.Writer
	indent string
}

func NewJSONHandler[T Result](w io.Writer, indentSpaces int) *JSONHandler[T] {
	return &JSONHandler[T]{
		out:    w,
		indent: strings.Repeat(" ", indentSpaces),
	}
}

// Writer returns the underlying io.Writer where JSON will be written.
func (h *JSONHandler[T]) Writer() io.Writer {
	return h.out
}

// HandleResults writes a BatchPayload.
func (h *JSONHandler[T]) HandleResults(items ...T) error {
	return h.encode(NewBatchPayload(items))
}

// HandleError writes an ErrorPayload.
// The error has been reported once written, so nil is returned unless encoding fails.
func (h *JSONHandler[T]) HandleError(err error) error {
	return h.encode(ErrorPayload{Error: err.Error()})
}

func (h *JSONHandler[T]) encode(payload any) error {
	enc := json.NewEncoder(h.out)
	enc.SetIndent("", h.indent)
	return enc.Encode(payload)
}
