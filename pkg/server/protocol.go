package server

import (
	"encoding/json"

	"github.com/vango-dev/signup/internal/errors"
	"github.com/vango-dev/signup/pkg/signup"
)

// Outbound message types.
const (
	TypeState     = "state"
	TypeFocus     = "focus"
	TypeSubmitted = "submitted"
	TypeError     = "error"
)

// inboundMessage is one client event.
type inboundMessage struct {
	Kind  string `json:"kind"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// StateMessage is sent after every handled event.
type StateMessage struct {
	Type string `json:"type"`

	// Errors maps each field with an error to its localized text.
	Errors map[signup.Field]string `json:"errors"`

	// Violations holds the untranslated keys.
	Violations signup.ErrorState `json:"violations"`

	Strength      signup.Strength `json:"strength"`
	StrengthLabel string          `json:"strengthLabel,omitempty"`
	Valid         bool            `json:"valid"`
}

// FocusMessage asks the client to focus an element.
type FocusMessage struct {
	Type   string `json:"type"`
	Target string `json:"target"`
}

// SubmittedMessage confirms a submission reached the sink.
type SubmittedMessage struct {
	Type string `json:"type"`
}

// ErrorMessage reports a rejected frame or a failed submission.
type ErrorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// decodeEvent parses a frame into an event. Errors are E300 (malformed),
// E301 (field) or E302 (kind).
func decodeEvent(data []byte) (signup.Event, error) {
	var in inboundMessage
	if err := json.Unmarshal(data, &in); err != nil {
		return signup.Event{}, errors.New("E300").Wrap(err)
	}

	kind, err := signup.ParseEventKind(in.Kind)
	if err != nil {
		return signup.Event{}, errors.New("E302").WithKey("kind").WithDetail("%q", in.Kind).Wrap(err)
	}
	if kind == signup.KindSubmit {
		return signup.Event{Kind: kind}, nil
	}

	field, err := signup.ParseField(in.Field)
	if err != nil {
		return signup.Event{}, errors.New("E301").WithKey("field").WithDetail("%q", in.Field).Wrap(err)
	}
	return signup.Event{Kind: kind, Field: field, Value: in.Value}, nil
}

// stateMessage builds the state message for s in cat's language.
func stateMessage(s signup.State, cat *signup.Catalog) StateMessage {
	msgs := make(map[signup.Field]string, len(signup.Fields))
	for _, f := range signup.Fields {
		if v := s.Errors.Get(f); v != signup.NoViolation {
			msgs[f] = cat.Message(v)
		}
	}
	return StateMessage{
		Type:          TypeState,
		Errors:        msgs,
		Violations:    s.Errors,
		Strength:      s.Strength,
		StrengthLabel: cat.StrengthLabel(s.Strength.Tier),
		Valid:         s.Valid(),
	}
}

func errorMessage(err error) ErrorMessage {
	e := errors.FromError(err, "E300")
	return ErrorMessage{Type: TypeError, Code: e.Code, Message: e.Error()}
}
