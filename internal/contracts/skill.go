// Package contracts defines the interfaces the API layer depends on.
package contracts

import (
	"context"

	"github.com/radixd/radixd/internal/conversion"
	"github.com/radixd/radixd/internal/skill"
	"github.com/radixd/radixd/internal/slots"
)

// SkillRequestHandler answers decoded voice assistant requests.
type SkillRequestHandler interface {
	// Handle returns the response envelope for env, or an error when the request is rejected.
	Handle(ctx context.Context, env skill.RequestEnvelope) (*skill.ResponseEnvelope, error)
}

// EnvelopeDecoder validates and decodes raw request bodies.
type EnvelopeDecoder interface {
	// Decode validates raw against the request schema and decodes it.
	Decode(raw []byte) (skill.RequestEnvelope, error)
}

// Converter converts numerals supplied as raw slot text.
type Converter interface {
	// ConvertRaw normalizes raw and converts it, returning a *conversion.Error on classified failures.
	ConvertRaw(raw slots.RawSlots) (conversion.Outcome, error)

	// SourceWindow returns the accepted source radix range.
	SourceWindow() conversion.Window

	// TargetWindow returns the accepted target radix range.
	TargetWindow() conversion.Window
}

var (
	_ SkillRequestHandler = (*skill.Handler)(nil)
	_ EnvelopeDecoder     = (*skill.Validator)(nil)
	_ Converter           = (*conversion.Service)(nil)
)
