package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLHandler writes the batch, or the error that stopped it, as YAML.
type YAMLHandler[T Result] struct {
	out    io.Writer
	indent int
}

// NewYAMLHandler constructs a YAMLHandler; indentSpaces sets the indentation of nested nodes.
func NewYAMLHandler[T Result](w io.Writer, indentSpaces int) *YAMLHandler[T] {
	return &YAMLHandler[T]{
		out:    w,
		indent: indentSpaces,
	}
}

// Writer returns the underlying io.Writer where YAML will be written.
func (h *YAMLHandler[T]) Writer() io.Writer {
	return h.out
}

// HandleResults writes a BatchPayload.
func (h *YAMLHandler[T]) HandleResults(items ...T) error {
	return h.encode(NewBatchPayload(items))
}

// HandleError writes an ErrorPayload.
func (h *YAMLHandler[T]) HandleError(err error) error {
	return h.encode(ErrorPayload{Error: err.Error()})
}

func (h *YAMLHandler[T]) encode(payload any) error {
	enc := yaml.NewEncoder(h.out)
	enc.SetIndent(h.indent)
	if err := enc.Encode(payload); err != nil {
		_ = enc.Close()
		return err
	}

	// Close flushes buffered output.
	return enc.Close()
}
