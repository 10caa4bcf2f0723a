package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/radixd/radixd/internal/contracts"
	"github.com/radixd/radixd/internal/skill"
)

// SkillRequest carries the unparsed request envelope so it can be checked against the request schema.
type SkillRequest struct {
	RawBody []byte `contentType:"application/json"`
}

// SkillResponse is the response envelope returned to the voice platform.
type SkillResponse struct {
	Body *skill.ResponseEnvelope
}

// RegisterSkillRoutes sets up the voice assistant webhook route.
func RegisterSkillRoutes(
	routerAPI huma.API,
	decoder contracts.EnvelopeDecoder,
	handler contracts.SkillRequestHandler,
	path string,
) {
	huma.Register(
		routerAPI,
		huma.Operation{
			OperationID: "handleSkillRequest",
			Method:      http.MethodPost,
			Path:        path,
			Summary:     "Handle a voice assistant request envelope",
			Description: "Accepts launch, intent and session-ended requests and answers with speech and a card.",
			Tags:        []string{"Skill"},
		},
		func(ctx context.Context, input *SkillRequest) (*SkillResponse, error) {
			return handleSkill(ctx, decoder, handler, input.RawBody)
		},
	)
}

// handleSkill decodes the raw envelope and dispatches it to the skill handler.
func handleSkill(
	ctx context.Context,
	decoder contracts.EnvelopeDecoder,
	handler contracts.SkillRequestHandler,
	raw []byte,
) (*SkillResponse, error) {
	env, err := decoder.Decode(raw)
	if err != nil {
		return nil, err
	}

	resp, err := handler.Handle(ctx, env)
	if err != nil {
		return nil, err
	}

	return &SkillResponse{Body: resp}, nil
}
