package models

import "time"

// DialogueState is the engine's per-session state machine position.
type DialogueState string

const (
	StateIdle       DialogueState = "idle"
	StateGreeting   DialogueState = "greeting"
	StateCollecting DialogueState = "collecting"
	StateConfirming DialogueState = "confirming"
	StateCompleted  DialogueState = "completed"
	StateEmergency  DialogueState = "emergency"
)

// Exchange is one stored utterance/response pair.
type Exchange struct {
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
	Intent      Intent    `json:"intent"`
	Timestamp   time.Time `json:"timestamp"`
}

// Session holds one user's conversation state across turns. It is owned and
// mutated exclusively by the conversation engine while the session store's
// per-session lock is held.
type Session struct {
	SessionID    string        `json:"session_id"`
	UserID       string        `json:"user_id"`
	State        DialogueState `json:"state"`
	ActiveType   RecordType    `json:"active_type,omitempty"`
	Draft        *Draft        `json:"draft,omitempty"`
	AskedField   string        `json:"asked_field,omitempty"`
	LastFilled   string        `json:"last_filled,omitempty"`
	History      []Exchange    `json:"history"`
	UnclearCount int           `json:"unclear_count"`
	LastActivity time.Time     `json:"last_activity"`
	CreatedAt    time.Time     `json:"created_at"`
}

// HistoryWindow bounds how many exchanges a session retains.
const HistoryWindow = 10

// AddExchange appends a turn to the bounded history window.
func (s *Session) AddExchange(ex Exchange) {
	s.History = append(s.History, ex)
	if len(s.History) > HistoryWindow {
		s.History = s.History[len(s.History)-HistoryWindow:]
	}
}

// ResetDialogue drops any in-progress draft and returns the session to idle.
func (s *Session) ResetDialogue() {
	s.State = StateIdle
	s.ActiveType = ""
	s.Draft = nil
	s.AskedField = ""
	s.LastFilled = ""
	s.UnclearCount = 0
}

// BeginCollection installs a fresh draft for the given record type.
func (s *Session) BeginCollection(t RecordType) *Draft {
	s.State = StateCollecting
	s.ActiveType = t
	s.Draft = NewDraft(t)
	s.UnclearCount = 0
	return s.Draft
}
