// Package skill routes voice platform requests and builds their spoken responses.
package skill

import (
	"context"
	stdErrors "errors"
	"fmt"
	"reflect"

	"github.com/hashicorp/go-hclog"

	"github.com/radixd/radixd/internal/conversion"
	"github.com/radixd/radixd/internal/errors"
	"github.com/radixd/radixd/internal/slots"
)

// Handler dispatches request envelopes by event type and intent.
// It holds no per-request state and is safe for concurrent use.
// NewHandler should be used to create instances of Handler.
type Handler struct {
	logger    hclog.Logger
	service   *conversion.Service
	responder *Responder
	opts      Options
}

// NewHandler creates a Handler that performs conversions with service.
func NewHandler(logger hclog.Logger, service *conversion.Service, opt ...Option) (*Handler, error) {
	if logger == nil || reflect.ValueOf(logger).IsNil() {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if service == nil {
		return nil, fmt.Errorf("conversion service cannot be nil")
	}

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	return &Handler{
		logger:    logger.Named("skill"),
		service:   service,
		responder: NewResponder(service.SourceWindow(), service.TargetWindow()),
		opts:      opts,
	}, nil
}

// Handle routes env and returns the response to send back to the platform.
// Conversion failures are returned as reprompting responses, not errors.
// Errors are returned only for requests the skill refuses to serve.
func (h *Handler) Handle(ctx context.Context, env RequestEnvelope) (*ResponseEnvelope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := h.verify(env); err != nil {
		return nil, err
	}

	logger := h.logger.With("requestId", env.Request.RequestID, "sessionId", env.SessionID())

	if env.Session != nil && env.Session.New {
		logger.Info("Session started")
	}

	switch env.Request.Type {
	case RequestTypeLaunch:
		logger.Info("Launch")
		return h.responder.Welcome(), nil
	case RequestTypeIntent:
		return h.handleIntent(logger, env.Request.Intent)
	case RequestTypeSessionEnded:
		logger.Info("Session ended", "reason", env.Request.Reason)
		return h.responder.SessionEnded(), nil
	default:
		return nil, fmt.Errorf("%w: '%s'", errors.ErrUnsupportedRequestType, env.Request.Type)
	}
}

func (h *Handler) verify(env RequestEnvelope) error {
	if h.opts.ApplicationID != "" && env.ApplicationID() != h.opts.ApplicationID {
		return fmt.Errorf("%w: '%s'", errors.ErrInvalidApplicationID, env.ApplicationID())
	}

	if h.opts.MaxRequestAge > 0 {
		if env.Request.Timestamp.IsZero() {
			return fmt.Errorf("%w: request has no timestamp", errors.ErrStaleRequest)
		}
		skew := h.opts.Clock().Sub(env.Request.Timestamp)
		if skew < 0 {
			skew = -skew
		}
		if skew > h.opts.MaxRequestAge {
			return fmt.Errorf("%w: %s exceeds %s", errors.ErrStaleRequest, skew, h.opts.MaxRequestAge)
		}
	}

	return nil
}

func (h *Handler) handleIntent(logger hclog.Logger, intent *Intent) (*ResponseEnvelope, error) {
	if intent == nil {
		return nil, fmt.Errorf("%w: intent request without intent", errors.ErrBadRequest)
	}

	logger.Info("Intent", "name", intent.Name)

	switch intent.Name {
	case h.opts.ConversionIntent:
		return h.convert(logger, intent), nil
	case IntentHelp:
		return h.responder.Help(), nil
	case IntentCancel, IntentStop:
		return h.responder.Goodbye(), nil
	default:
		return nil, fmt.Errorf("%w: '%s'", errors.ErrUnknownIntent, intent.Name)
	}
}

func (h *Handler) convert(logger hclog.Logger, intent *Intent) *ResponseEnvelope {
	out, err := h.service.ConvertRaw(h.RawSlots(intent))
	if err != nil {
		var convErr *conversion.Error
		if stdErrors.As(err, &convErr) {
			logger.Debug("Conversion not performed", "kind", convErr.Kind, "numeral", convErr.Numeral, "error", err)
		} else {
			logger.Error("Unexpected conversion failure", "error", err)
		}
		return h.responder.Failed(err)
	}

	logger.Debug(
		"Converted",
		"numeral", out.Numeral,
		"from", out.SourceRadix,
		"defaulted", out.SourceDefaulted,
		"to", out.TargetRadix,
		"result", out.Rendered,
	)

	return h.responder.Converted(out)
}

// RawSlots extracts the conversion inputs from intent using the configured slot names.
// Slots that are missing, or present without a value, are left out.
func (h *Handler) RawSlots(intent *Intent) slots.RawSlots {
	raw := slots.RawSlots{}
	if intent == nil {
		return raw
	}

	names := map[string]string{
		slots.Numeral:     h.opts.Slots.Numeral,
		slots.SourceRadix: h.opts.Slots.SourceRadix,
		slots.TargetRadix: h.opts.Slots.TargetRadix,
	}
	for logical, platform := range names {
		s, ok := intent.Slots[platform]
		if !ok || s.Value == nil {
			continue
		}
		raw[logical] = *s.Value
	}

	return raw
}
