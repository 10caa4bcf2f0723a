package skill

import (
	stdErrors "errors"
	"fmt"

	"github.com/radixd/radixd/internal/conversion"
)

const (
	titleWelcome   = "Welcome"
	titleHelp      = "Help"
	titleGoodbye   = "Goodbye"
	titleEnded     = "Session Ended"
	titleConverted = "Base Converted"
	titleFailed    = "Failed to Convert Base"

	askNumber = "What number would you like to convert?"
)

// Responder builds response envelopes. It is stateless apart from the radix windows it describes to the user.
type Responder struct {
	source conversion.Window
	target conversion.Window
}

// NewResponder creates a Responder describing the given radix windows.
func NewResponder(source conversion.Window, target conversion.Window) *Responder {
	return &Responder{
		source: source,
		target: target,
	}
}

// Welcome greets a user who opened the skill without asking for anything.
func (r *Responder) Welcome() *ResponseEnvelope {
	return r.build(
		titleWelcome,
		fmt.Sprintf("Tell me a number, and I can convert it to any base up to %d.", r.target.Max),
		fmt.Sprintf("Please tell me a number, and a base between %d and %d, and I can convert it.", r.target.Min, r.target.Max),
		false,
	)
}

// Help explains how to phrase a conversion.
func (r *Responder) Help() *ResponseEnvelope {
	return r.build(
		titleHelp,
		fmt.Sprintf(
			"You can say, convert 255 to base 16, or, convert 101 from base 2 to base 10. "+
				"Numbers can start in any base from %d to %d, and be converted to any base from %d to %d. %s",
			r.source.Min, r.source.Max, r.target.Min, r.target.Max, askNumber,
		),
		askNumber,
		false,
	)
}

// Goodbye acknowledges a cancel or stop and ends the session.
func (r *Responder) Goodbye() *ResponseEnvelope {
	return r.build(titleGoodbye, "Goodbye.", "", true)
}

// SessionEnded is the (silent) reply to a session-ended event.
func (r *Responder) SessionEnded() *ResponseEnvelope {
	env := r.build(titleEnded, "", "", true)
	env.Response.OutputSpeech = nil
	env.Response.Card = nil
	return env
}

// Converted reports a successful conversion and ends the session.
func (r *Responder) Converted(out conversion.Outcome) *ResponseEnvelope {
	env := r.build(
		titleConverted,
		fmt.Sprintf("%s in base %d is %s in base %d.", out.Numeral, out.SourceRadix, out.SpokenForm, out.TargetRadix),
		"",
		true,
	)
	env.Response.Card.Content = fmt.Sprintf(
		"%s in base %d is %s in base %d.",
		out.Numeral, out.SourceRadix, out.Rendered, out.TargetRadix,
	)
	return env
}

// Failed explains a classified conversion failure and keeps the session open with a reprompt.
// Errors that are not *conversion.Error are reported generically.
func (r *Responder) Failed(err error) *ResponseEnvelope {
	var convErr *conversion.Error
	if !stdErrors.As(err, &convErr) {
		return r.build(titleFailed, "Sorry, I couldn't convert that number. "+askNumber, askNumber, false)
	}

	var speech, reprompt string
	switch convErr.Kind {
	case conversion.KindMissingNumeral:
		speech = "I didn't catch the number you want to convert. " + askNumber
		reprompt = askNumber
	case conversion.KindMissingTargetRadix:
		reprompt = fmt.Sprintf("Which base, between %d and %d, would you like to convert to?", r.target.Min, r.target.Max)
		speech = "I didn't catch which base to convert to. " + reprompt
	case conversion.KindSourceRadixOutOfRange:
		speech = fmt.Sprintf(
			"Failed to convert, because your initial base is not between %d and %d.",
			convErr.Window.Min, convErr.Window.Max,
		)
		reprompt = fmt.Sprintf(
			"Please tell me the number again, with a starting base between %d and %d.",
			convErr.Window.Min, convErr.Window.Max,
		)
	case conversion.KindTargetRadixOutOfRange:
		speech = fmt.Sprintf(
			"Failed to convert, because your final base is not between %d and %d.",
			convErr.Window.Min, convErr.Window.Max,
		)
		reprompt = fmt.Sprintf(
			"Please tell me the number again, with a final base between %d and %d.",
			convErr.Window.Min, convErr.Window.Max,
		)
	case conversion.KindInvalidNumeral:
		speech = fmt.Sprintf("%s is not a valid number in base %d. %s", convErr.Numeral, convErr.Radix, askNumber)
		reprompt = askNumber
	default:
		speech = "Sorry, I couldn't convert that number. " + askNumber
		reprompt = askNumber
	}

	return r.build(titleFailed, speech, reprompt, false)
}

func (r *Responder) build(title string, speech string, reprompt string, endSession bool) *ResponseEnvelope {
	resp := Response{
		OutputSpeech: &OutputSpeech{
			Type: SpeechTypePlainText,
			Text: speech,
		},
		Card: &Card{
			Type:    CardTypeSimple,
			Title:   title,
			Content: speech,
		},
		ShouldEndSession: endSession,
	}

	if reprompt != "" {
		resp.Reprompt = &Reprompt{
			OutputSpeech: OutputSpeech{
				Type: SpeechTypePlainText,
				Text: reprompt,
			},
		}
	}

	return &ResponseEnvelope{
		Version:           ResponseVersion,
		SessionAttributes: map[string]any{},
		Response:          resp,
	}
}
