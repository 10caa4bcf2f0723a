package skill

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/radixd/radixd/internal/errors"
)

//go:embed schema/request.json
var requestSchema []byte

// Validator checks raw request bodies against the request envelope JSON schema.
// NewValidator should be used to create instances of Validator.
type Validator struct {
	schema *gojsonschema.Schema
}

// NewValidator compiles the embedded request envelope schema.
func NewValidator() (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(requestSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile request schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// Validate reports every schema violation in raw as a single ErrBadRequest.
func (v *Validator) Validate(raw []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: malformed request body: %w", errors.ErrBadRequest, err)
	}

	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}

	return fmt.Errorf("%w: %s", errors.ErrBadRequest, strings.Join(problems, "; "))
}

// Decode validates raw and decodes it into a RequestEnvelope.
func (v *Validator) Decode(raw []byte) (RequestEnvelope, error) {
	if err := v.Validate(raw); err != nil {
		return RequestEnvelope{}, err
	}

	var env RequestEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return RequestEnvelope{}, fmt.Errorf("%w: %w", errors.ErrBadRequest, err)
	}

	return env, nil
}
