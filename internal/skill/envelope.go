package skill

import "time"

// Request types routed by Handler.
const (
	RequestTypeLaunch       = "LaunchRequest"
	RequestTypeIntent       = "IntentRequest"
	RequestTypeSessionEnded = "SessionEndedRequest"
)

// Built-in intents handled alongside the conversion intent.
const (
	IntentHelp   = "AMAZON.HelpIntent"
	IntentCancel = "AMAZON.CancelIntent"
	IntentStop   = "AMAZON.StopIntent"
)

const (
	// ResponseVersion is the envelope version written on every response.
	ResponseVersion = "1.0"

	SpeechTypePlainText = "PlainText"
	CardTypeSimple      = "Simple"
)

// RequestEnvelope is the structured request delivered by the voice platform.
type RequestEnvelope struct {
	Version string   `json:"version"`
	Session *Session `json:"session,omitempty"`
	Request Request  `json:"request"`
}

// Session identifies the conversation the request belongs to.
type Session struct {
	New         bool           `json:"new"`
	SessionID   string         `json:"sessionId"`
	Application Application    `json:"application"`
	Attributes  map[string]any `json:"attributes,omitempty"`
	User        *User          `json:"user,omitempty"`
}

// Application identifies the skill the request was addressed to.
type Application struct {
	ApplicationID string `json:"applicationId"`
}

// User identifies the account speaking to the skill.
type User struct {
	UserID string `json:"userId"`
}

// Request is the event being delivered.
type Request struct {
	Type      string    `json:"type"`
	RequestID string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp,omitzero"`
	Locale    string    `json:"locale,omitempty"`
	Intent    *Intent   `json:"intent,omitempty"`

	// Reason is set on session-ended requests.
	Reason string `json:"reason,omitempty"`
}

// Intent is the action the platform recognized in the utterance, with its slots.
type Intent struct {
	Name  string                `json:"name"`
	Slots map[string]IntentSlot `json:"slots,omitempty"`
}

// IntentSlot is a slot as captured from speech. Value is nil when nothing was captured.
type IntentSlot struct {
	Name  string  `json:"name"`
	Value *string `json:"value,omitempty"`
}

// ResponseEnvelope is returned to the voice platform.
type ResponseEnvelope struct {
	Version           string         `json:"version"`
	SessionAttributes map[string]any `json:"sessionAttributes"`
	Response          Response       `json:"response"`
}

// Response is the spoken and visual reply.
type Response struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Card             *Card         `json:"card,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

// OutputSpeech is text for the speech synthesizer.
type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Card is shown in the companion app or on a screen.
type Card struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Reprompt is spoken if the user does not answer.
type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}

// SessionID returns the session identifier, or an empty string when the request has no session.
func (e RequestEnvelope) SessionID() string {
	if e.Session == nil {
		return ""
	}
	return e.Session.SessionID
}

// ApplicationID returns the addressed application identifier, or an empty string when the request has no session.
func (e RequestEnvelope) ApplicationID() string {
	if e.Session == nil {
		return ""
	}
	return e.Session.Application.ApplicationID
}
