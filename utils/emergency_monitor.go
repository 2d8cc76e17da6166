package utils

import "health-tracker-backend/models"

// EmergencyMonitor scans every utterance for critical-symptom language.
// It runs before intent classification and ignores dialogue state entirely:
// a user mid-way through logging a mild symptom still gets the emergency
// path if their wording turns alarming.
type EmergencyMonitor struct{}

// NewEmergencyMonitor builds the monitor over the static lexicon.
func NewEmergencyMonitor() *EmergencyMonitor {
	return &EmergencyMonitor{}
}

// Scan returns an emergency event when the utterance matches the critical
// phrase library, nil otherwise. High-tier categories win over medium.
func (m *EmergencyMonitor) Scan(text string) *models.EmergencyEvent {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}

	var event *models.EmergencyEvent
	for _, pattern := range EmergencyPatterns() {
		var matched []string
		for _, phrase := range pattern.Phrases {
			if ContainsPhrase(normalized, phrase) {
				matched = append(matched, phrase)
			}
		}
		if len(matched) == 0 {
			continue
		}
		candidate := &models.EmergencyEvent{
			Category: pattern.Category,
			Matched:  matched,
			Tier:     pattern.Tier,
			Text:     text,
		}
		if event == nil || (event.Tier == models.TierMedium && candidate.Tier == models.TierHigh) {
			event = candidate
		}
	}
	return event
}
