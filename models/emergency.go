package models

// EmergencyTier grades how alarming the matched language is.
type EmergencyTier string

const (
	TierHigh   EmergencyTier = "high"
	TierMedium EmergencyTier = "medium"
)

// EmergencyEvent is the ephemeral signal raised when an utterance contains
// critical-symptom language. It is logged and escalated, never persisted.
type EmergencyEvent struct {
	Category string        `json:"category"`
	Matched  []string      `json:"matched"`
	Tier     EmergencyTier `json:"tier"`
	Text     string        `json:"-"`
}
