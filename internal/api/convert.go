package api

import (
	"context"
	stdErrors "errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/radixd/radixd/internal/contracts"
	"github.com/radixd/radixd/internal/conversion"
	"github.com/radixd/radixd/internal/slots"
)

type Convertible[T any] interface {
	// ToAPIType can be used to convert a wrapped domain type to an API-safe type.
	// It should be responsible for any normalization required to ensure consistency
	// across the API boundary.
	ToAPIType() (T, error)
}

// domainOutcome wraps conversion.Outcome for conversion to ConversionResult via ToAPIType.
type domainOutcome conversion.Outcome

// ConvertRequest is the input for POST /convert.
// All fields are text, as they would be heard, and are classified by the service.
type ConvertRequest struct {
	Body struct {
		Numeral     *string `doc:"Numeral to convert"                   example:"255" json:"numeral,omitempty"`
		SourceRadix *string `doc:"Base the numeral is written in (10)" example:"10"  json:"sourceRadix,omitempty"`
		TargetRadix *string `doc:"Base to convert into"                 example:"16"  json:"targetRadix,omitempty"`
	}
}

// ConversionResult is a successful conversion.
type ConversionResult struct {
	Numeral         string `doc:"Numeral as validated"                     json:"numeral"`
	SourceRadix     int    `doc:"Base the numeral was read in"             json:"sourceRadix"`
	SourceDefaulted bool   `doc:"Whether the source base was assumed"      json:"sourceDefaulted"`
	TargetRadix     int    `doc:"Base the numeral was converted into"      json:"targetRadix"`
	Value           string `doc:"Decimal value of the numeral"             json:"value"`
	Rendered        string `doc:"Numeral in the target base"               json:"rendered"`
	SpokenForm      string `doc:"Rendered numeral as it should be spoken"  json:"spokenForm"`
}

// ConvertResponse represents the wrapped API response for a conversion.
type ConvertResponse struct {
	Body ConversionResult
}

// ToAPIType can be used to convert a wrapped domain type to an API-safe type.
func (d domainOutcome) ToAPIType() (ConversionResult, error) {
	s := conversion.Outcome(d).Summary()

	return ConversionResult{
		Numeral:         s.Numeral,
		SourceRadix:     s.SourceRadix,
		SourceDefaulted: d.SourceDefaulted,
		TargetRadix:     s.TargetRadix,
		Value:           s.Value,
		Rendered:        s.Rendered,
		SpokenForm:      s.SpokenForm,
	}, nil
}

// RegisterConvertRoutes sets up the direct conversion route.
func RegisterConvertRoutes(routerAPI huma.API, converter contracts.Converter, path string) {
	huma.Register(
		routerAPI,
		huma.Operation{
			OperationID: "convertNumeral",
			Method:      http.MethodPost,
			Path:        path,
			Summary:     "Convert a numeral between bases",
			Description: "Failures that the voice skill would explain are returned as 422 with the failure kind " +
				"in the error details.",
			Tags: []string{"Conversion"},
		},
		func(_ context.Context, input *ConvertRequest) (*ConvertResponse, error) {
			raw := slots.RawSlots{}
			for name, v := range map[string]*string{
				slots.Numeral:     input.Body.Numeral,
				slots.SourceRadix: input.Body.SourceRadix,
				slots.TargetRadix: input.Body.TargetRadix,
			} {
				if v != nil {
					raw[name] = *v
				}
			}

			return handleConvert(converter, raw)
		},
	)
}

// handleConvert converts raw and maps classified failures to 422 responses.
func handleConvert(converter contracts.Converter, raw slots.RawSlots) (*ConvertResponse, error) {
	out, err := converter.ConvertRaw(raw)
	if err != nil {
		var convErr *conversion.Error
		if stdErrors.As(err, &convErr) {
			return nil, ConversionError(convErr)
		}
		return nil, err
	}

	result, err := domainOutcome(out).ToAPIType()
	if err != nil {
		return nil, err
	}

	return &ConvertResponse{Body: result}, nil
}

// ConversionError returns the 422 response for a classified conversion failure.
// The single error detail carries the failure kind as its message and the offending field as its location.
func ConversionError(err *conversion.Error) huma.StatusError {
	detail := &huma.ErrorDetail{
		Message: string(err.Kind),
	}

	switch err.Kind {
	case conversion.KindMissingNumeral, conversion.KindInvalidNumeral:
		detail.Location = "body.numeral"
		detail.Value = err.Numeral
	case conversion.KindSourceRadixOutOfRange:
		detail.Location = "body.sourceRadix"
	case conversion.KindMissingTargetRadix, conversion.KindTargetRadixOutOfRange:
		detail.Location = "body.targetRadix"
	}

	return huma.Error422UnprocessableEntity(err.Error(), detail)
}
