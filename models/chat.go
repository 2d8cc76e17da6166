package models

// ChatRequest is the transport-independent request contract. UserID is
// normally injected by the auth middleware; the body value is only honored
// for unauthenticated development traffic.
type ChatRequest struct {
	Message string        `json:"message" binding:"required"`
	UserID  string        `json:"user_id,omitempty"`
	History []HistoryTurn `json:"history,omitempty"`
}

// HistoryTurn is a caller-supplied prior turn used for disambiguation.
type HistoryTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatResponse is the engine's reply for one turn.
type ChatResponse struct {
	Response string        `json:"response"`
	State    DialogueState `json:"state"`
	Intent   Intent        `json:"intent,omitempty"`
	Action   *Action       `json:"action,omitempty"`
}

// ActionType tags the machine-readable side effects of a turn.
type ActionType string

const (
	ActionRecordSaved ActionType = "record_saved"
	ActionEmergency   ActionType = "emergency"
)

// Action signals the hosting system that a record was saved or that an
// emergency was detected and must be escalated.
type Action struct {
	Type       ActionType `json:"type"`
	RecordType RecordType `json:"record_type,omitempty"`
	RecordID   string     `json:"record_id,omitempty"`
	Category   string     `json:"category,omitempty"`
}

// NewTextResponse builds a plain reply carrying the session state.
func NewTextResponse(text string, state DialogueState, intent Intent) *ChatResponse {
	return &ChatResponse{Response: text, State: state, Intent: intent}
}
