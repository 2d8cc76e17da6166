package utils

import (
	"strings"

	"health-tracker-backend/models"
)

// The lexicon is the static phrase library the classifier, extractor and
// emergency monitor match against. It is read-only at runtime; changing it
// is a deployment-time operation.

var intentPhrases = map[models.Intent][]string{
	models.IntentGreeting: {
		"hello", "hi", "hey", "good morning", "good afternoon",
		"good evening", "greetings", "how are you",
	},
	// Report-style phrasing only. Bare condition nouns ("migraine") live in
	// the extractor vocabulary instead, so asking "what's a migraine?" reads
	// as a question rather than a symptom report.
	models.IntentSymptom: {
		"symptom", "pain", "ache", "hurts", "hurting", "i have a",
		"i have been", "ive been having", "i feel", "im feeling",
		"feeling sick", "suffering from", "experiencing", "i have",
	},
	models.IntentTreatment: {
		"medication", "medicine", "taking", "started taking", "prescribed",
		"prescription", "dose", "dosage", "pill", "tablet", "treatment",
		"drug", "supplement", "log my medication",
	},
	models.IntentAppointment: {
		"appointment", "book", "schedule", "doctor visit", "see the doctor",
		"see a doctor", "checkup", "consultation", "follow up",
	},
	models.IntentGeneralQuestion: {
		"what is", "what are", "whats", "how do", "how does", "why",
		"should i", "can i", "tell me about", "is it normal", "is it safe",
	},
	models.IntentConfirmation: {
		"yes", "yeah", "yep", "no", "nope", "correct", "right", "sure",
		"ok", "okay", "confirm", "thats wrong", "not right",
	},
}

// IntentPhrases returns the trigger phrases for an intent.
func IntentPhrases(intent models.Intent) []string {
	return intentPhrases[intent]
}

// CollectionIntents are the intents that open a slot-filling dialogue.
var CollectionIntents = []models.Intent{
	models.IntentSymptom, models.IntentTreatment, models.IntentAppointment,
}

// EmergencyPattern groups critical phrases under a category and tier.
type EmergencyPattern struct {
	Category string
	Tier     models.EmergencyTier
	Phrases  []string
}

var emergencyPatterns = []EmergencyPattern{
	{
		Category: "cardiac",
		Tier:     models.TierHigh,
		Phrases:  []string{"chest pain", "heart attack", "chest tightness", "crushing chest"},
	},
	{
		Category: "breathing",
		Tier:     models.TierHigh,
		Phrases:  []string{"cant breathe", "cannot breathe", "can not breathe", "difficulty breathing", "choking", "struggling to breathe"},
	},
	{
		Category: "consciousness",
		Tier:     models.TierHigh,
		Phrases:  []string{"unconscious", "passed out", "fainted", "unresponsive", "seizure"},
	},
	{
		Category: "self_harm",
		Tier:     models.TierHigh,
		Phrases:  []string{"suicidal", "suicide", "kill myself", "end my life", "hurt myself", "overdose", "overdosed"},
	},
	{
		Category: "stroke",
		Tier:     models.TierHigh,
		Phrases:  []string{"stroke", "face drooping", "slurred speech", "numb on one side"},
	},
	{
		Category: "bleeding",
		Tier:     models.TierHigh,
		Phrases:  []string{"severe bleeding", "bleeding heavily", "wont stop bleeding", "vomiting blood", "coughing up blood"},
	},
	{
		Category: "acute_distress",
		Tier:     models.TierMedium,
		Phrases:  []string{"severe pain", "unbearable pain", "worst pain", "worst headache of my life", "extremely high fever"},
	},
}

// EmergencyPatterns returns the critical-symptom phrase library.
func EmergencyPatterns() []EmergencyPattern {
	return emergencyPatterns
}

// severityWords maps qualitative severity language to the 1-10 scale.
var severityWords = map[string]int{
	"mild":       3,
	"slight":     3,
	"moderate":   5,
	"bad":        6,
	"severe":     8,
	"terrible":   8,
	"unbearable": 9,
	"worst":      10,
}

// SeverityWord looks up a qualitative severity mapping.
func SeverityWord(word string) (int, bool) {
	n, ok := severityWords[word]
	return n, ok
}

// durationUnits maps unit words to hours.
var durationUnits = map[string]float64{
	"minute": 1.0 / 60, "minutes": 1.0 / 60, "min": 1.0 / 60, "mins": 1.0 / 60,
	"hour": 1, "hours": 1, "hr": 1, "hrs": 1,
	"day": 24, "days": 24,
	"week": 168, "weeks": 168,
}

// DurationUnit returns the hour multiplier for a unit word.
func DurationUnit(word string) (float64, bool) {
	m, ok := durationUnits[word]
	return m, ok
}

// symptomNames are conditions the extractor may lift from an opening
// utterance. This closed list is deliberate: free-text extraction outside
// an explicit prompt is how fabricated values happen.
var symptomNames = []string{
	"sore throat", "runny nose", "stomach ache", "back pain", "chest pain",
	"headache", "migraine", "nausea", "fever", "cough", "rash", "dizziness",
	"fatigue", "cramp", "swelling", "congestion", "insomnia", "heartburn",
}

// SymptomNames returns the known symptom vocabulary, longest phrases first.
func SymptomNames() []string {
	return symptomNames
}

var affirmativePhrases = []string{
	"yes", "yeah", "yep", "yup", "correct", "right", "sure", "ok", "okay",
	"confirm", "confirmed", "thats right", "sounds right", "looks good",
}

var negativePhrases = []string{
	"no", "nope", "nah", "wrong", "not right", "incorrect", "thats wrong",
	"cancel", "dont save", "do not save",
}

// AffirmativePhrases returns the yes vocabulary.
func AffirmativePhrases() []string { return affirmativePhrases }

// NegativePhrases returns the no vocabulary.
func NegativePhrases() []string { return negativePhrases }

// fillerWords are dropped from the edges of an answer to a free-text prompt.
var fillerWords = map[string]bool{
	"um": true, "uh": true, "well": true, "so": true, "please": true,
	"its": true, "it": true, "is": true, "the": true, "a": true, "an": true,
	"my": true, "i": true, "think": true, "maybe": true, "probably": true,
	"called": true, "named": true, "name": true, "was": true, "just": true,
}

// IsFiller reports whether a token is conversational filler.
func IsFiller(token string) bool {
	return fillerWords[strings.ToLower(token)]
}

// questionMarkers flag an utterance as a probable question when no intent
// phrase matched.
var questionMarkers = []string{"what", "when", "where", "which", "who", "how", "why", "is", "are", "can", "could", "should", "does", "do"}

// QuestionMarkers returns the leading words that mark a question.
func QuestionMarkers() []string {
	return questionMarkers
}
