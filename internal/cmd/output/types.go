// Package output renders a batch of command results as text, JSON or YAML.
package output

import "io"

// Result is a single outcome within a batch, which may have failed.
type Result interface {
	Failed() bool
}

type Handler[T Result] interface {
	// Writer returns the io.Writer this Handler will write to.
	Writer() io.Writer

	// HandleResults renders the whole batch, in the order given.
	HandleResults(items ...T) error

	// HandleError renders an error that prevented the batch from running.
	HandleError(err error) error
}

// WriteFunc writes output related to a batch as a whole, such as a header or footer.
// It receives the number of items in the batch, never the items themselves.
type WriteFunc[T any] func(w io.Writer, count int)

type Printer[T any] interface {
	// Header should be called once before the Item.
	Header(w io.Writer, count int)

	// SetHeader can be used to configure the Header function.
	SetHeader(fn WriteFunc[T])

	// Item prints one element.
	Item(w io.Writer, elem T) error

	// Footer should be called once after the Item.
	Footer(w io.Writer, count int)

	// SetFooter can be used to configure the Footer function.
	SetFooter(fn WriteFunc[T])
}

// BatchPayload is the structured form of a batch.
// Results keep their input order, Succeeded and Failed count them.
type BatchPayload[T Result] struct {
	Results   []T `json:"results"   yaml:"results"`
	Succeeded int `json:"succeeded" yaml:"succeeded"`
	Failed    int `json:"failed"    yaml:"failed"`
}

// ErrorPayload is the structured form of an error that stopped the batch.
type ErrorPayload struct {
	Error string `json:"error" yaml:"error"`
}

// NewBatchPayload counts the failures in items. A nil batch is encoded as an empty list.
func NewBatchPayload[T Result](items []T) BatchPayload[T] {
	if items == nil {
		items = []T{}
	}

	p := BatchPayload[T]{Results: items}
	for _, it := range items {
		if it.Failed() {
			p.Failed++
		}
	}
	p.Succeeded = len(items) - p.Failed

	return p
}
