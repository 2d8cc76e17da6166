package utils

import (
	"strings"

	"health-tracker-backend/models"
)

// IntentClassifier maps an utterance to an intent with a fixed confidence.
// Matching is deterministic phrase lookup, not a statistical model, so every
// classification is reproducible in tests.
type IntentClassifier struct {
	matchConfidence    float64
	fallbackConfidence float64
}

// NewIntentClassifier builds a classifier with the configured confidences
// for direct matches and for the question/unknown fallbacks.
func NewIntentClassifier(matchConfidence, fallbackConfidence float64) *IntentClassifier {
	return &IntentClassifier{
		matchConfidence:    matchConfidence,
		fallbackConfidence: fallbackConfidence,
	}
}

type intentMatch struct {
	intent  models.Intent
	longest int
	count   int
}

// Classify resolves the utterance to an intent. Among matched intents the
// one with the longest matched phrase wins, ties broken by total matches.
// Greeting is only honored when nothing else matched, so "hi, I have a
// headache" classifies as a symptom report.
func (ic *IntentClassifier) Classify(message string) models.ClassifiedIntent {
	normalized := Normalize(message)
	if normalized == "" {
		return models.ClassifiedIntent{Intent: models.IntentUnknown, Confidence: ic.fallbackConfidence}
	}

	var best *intentMatch
	var greeting *intentMatch
	for intent, phrases := range intentPhrases {
		m := intentMatch{intent: intent}
		for _, phrase := range phrases {
			if ContainsPhrase(normalized, phrase) {
				m.count++
				if len(phrase) > m.longest {
					m.longest = len(phrase)
				}
			}
		}
		if m.count == 0 {
			continue
		}
		if intent == models.IntentGreeting {
			greeting = &m
			continue
		}
		if best == nil || m.longest > best.longest ||
			(m.longest == best.longest && m.count > best.count) {
			b := m
			best = &b
		}
	}

	if best != nil {
		return models.ClassifiedIntent{Intent: best.intent, Confidence: ic.matchConfidence}
	}
	if greeting != nil {
		return models.ClassifiedIntent{Intent: models.IntentGreeting, Confidence: ic.matchConfidence}
	}
	if ic.looksLikeQuestion(message, normalized) {
		return models.ClassifiedIntent{Intent: models.IntentGeneralQuestion, Confidence: ic.fallbackConfidence}
	}
	return models.ClassifiedIntent{Intent: models.IntentUnknown, Confidence: ic.fallbackConfidence}
}

func (ic *IntentClassifier) looksLikeQuestion(raw, normalized string) bool {
	if strings.Contains(raw, "?") {
		return true
	}
	first := strings.SplitN(normalized, " ", 2)[0]
	for _, marker := range QuestionMarkers() {
		if first == marker {
			return true
		}
	}
	return false
}
