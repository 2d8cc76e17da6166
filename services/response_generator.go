package services

import (
	"fmt"
	"strings"
	"time"

	"health-tracker-backend/models"
)

// ResponseGenerator turns engine decisions into short reply text. It is a
// pure template layer: it only ever renders fields actually present in the
// draft it is handed, so a summary can never mention a value the user did
// not provide.
type ResponseGenerator struct {
	now func() time.Time
}

// NewResponseGenerator builds the template layer using the wall clock.
func NewResponseGenerator() *ResponseGenerator {
	return &ResponseGenerator{now: time.Now}
}

var fieldLabels = map[string]string{
	models.FieldName:       "name",
	models.FieldSeverity:   "severity",
	models.FieldDuration:   "duration (hours)",
	models.FieldLocation:   "location",
	models.FieldTriggers:   "triggers",
	models.FieldDesc:       "description",
	models.FieldDosage:     "dosage",
	models.FieldFrequency:  "frequency",
	models.FieldStartDate:  "start date",
	models.FieldDoctorName: "doctor",
	models.FieldDateTime:   "date and time",
	models.FieldReason:     "reason",
}

var fieldPrompts = map[models.RecordType]map[string]string{
	models.RecordSymptom: {
		models.FieldName:     "What symptom are you experiencing?",
		models.FieldSeverity: "On a scale of 1 to 10, how severe is it?",
		models.FieldDuration: "How long have you had it?",
		models.FieldLocation: "Where on your body is it?",
	},
	models.RecordTreatment: {
		models.FieldName:      "What medication or treatment are you taking?",
		models.FieldDosage:    "What dosage are you taking (for example, 400 mg)?",
		models.FieldFrequency: "How often do you take it?",
		models.FieldStartDate: "When did you start taking it?",
	},
	models.RecordAppointment: {
		models.FieldDoctorName: "Which doctor is the appointment with?",
		models.FieldDateTime:   "When is the appointment? (for example, 2030-05-01 14:30)",
		models.FieldReason:     "What is the appointment for?",
	},
}

var fieldReprompts = map[string]string{
	models.FieldSeverity: "I need a number from 1 to 10 for severity. How severe is it?",
	models.FieldDuration: "Sorry, I didn't catch the duration. How many hours or days has it lasted?",
	models.FieldDateTime: "I couldn't read that as a future date and time. Could you give it like 2030-05-01 14:30?",
}

// Welcome is the canned greeting, time-of-day aware.
func (r *ResponseGenerator) Welcome() string {
	greeting := "Hello"
	switch hour := r.now().Hour(); {
	case hour < 12:
		greeting = "Good morning"
	case hour < 18:
		greeting = "Good afternoon"
	default:
		greeting = "Good evening"
	}
	return greeting + "! I can help you log symptoms, track treatments, " +
		"and note appointments. What would you like to do?"
}

// SafetyMessage is the fixed high-priority emergency reply. It never varies
// with dialogue state.
func (r *ResponseGenerator) SafetyMessage(category string) string {
	if category == "self_harm" {
		return "If you are thinking about harming yourself, please reach out right now: " +
			"call or text 988 (Suicide & Crisis Lifeline) or call 911. You are not alone."
	}
	return "🚨 This sounds like a medical emergency. Please call 911 or go to the " +
		"nearest emergency room immediately. Do not wait."
}

// FieldPrompt asks for a field for the first time.
func (r *ResponseGenerator) FieldPrompt(t models.RecordType, field string) string {
	if p, ok := fieldPrompts[t][field]; ok {
		return p
	}
	return fmt.Sprintf("Could you tell me the %s?", label(field))
}

// FieldReprompt re-asks after an unusable answer, with a format hint where
// one exists.
func (r *ResponseGenerator) FieldReprompt(t models.RecordType, field string) string {
	if p, ok := fieldReprompts[field]; ok {
		return p
	}
	return fmt.Sprintf("Sorry, I didn't catch that. %s", r.FieldPrompt(t, field))
}

// ConfirmationSummary renders the draft for explicit confirmation. Only
// fields present in the draft appear.
func (r *ResponseGenerator) ConfirmationSummary(draft *models.Draft) string {
	var parts []string
	for _, f := range append(models.RequiredFields(draft.Type), models.OptionalFields(draft.Type)...) {
		if v := draft.Get(f); v != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", label(f), v))
		}
	}
	return fmt.Sprintf("Here's your %s record — %s. Shall I save it? (yes/no)",
		draft.Type, strings.Join(parts, ", "))
}

// ConfirmReask re-asks the confirmation once after an unclear reply.
func (r *ResponseGenerator) ConfirmReask(draft *models.Draft) string {
	return fmt.Sprintf("Sorry, I need a yes or no. Should I save this %s record?", draft.Type)
}

// CorrectionRequest asks the user to restate a field after two unclear
// confirmation replies in a row.
func (r *ResponseGenerator) CorrectionRequest(t models.RecordType, field string) string {
	return fmt.Sprintf("Let's fix it directly instead of guessing. %s", r.FieldPrompt(t, field))
}

// SaveSuccess reports a persisted record with its stored identifier.
func (r *ResponseGenerator) SaveSuccess(t models.RecordType, recordID string) string {
	return fmt.Sprintf("✅ Your %s record has been saved (id %s). Anything else I can help with?", t, recordID)
}

// SaveFailure reports a transient persistence failure; the draft is kept so
// the user can just confirm again.
func (r *ResponseGenerator) SaveFailure() string {
	return "I couldn't save that just now, but I still have everything you told me. " +
		"Please say yes to try again."
}

// KnowledgeAnswer wraps retrieved snippets with the standing disclaimer.
func (r *ResponseGenerator) KnowledgeAnswer(snippets []string) string {
	return strings.Join(snippets, "\n\n") +
		"\n\n⚠️ This is general information, not medical advice. " +
		"Please consult a healthcare provider for personal guidance."
}

// KnowledgeFallback is the degraded reply when lookup is unavailable.
func (r *ResponseGenerator) KnowledgeFallback() string {
	return "I don't have that information right now. For medical questions it's " +
		"always best to check with a healthcare provider."
}

// Clarify handles utterances the classifier couldn't place.
func (r *ResponseGenerator) Clarify() string {
	return "I'm not sure I follow. You can tell me about a symptom, log a " +
		"treatment, or note an appointment."
}

// CompletedAck answers a stray confirmation when nothing is pending.
func (r *ResponseGenerator) CompletedAck() string {
	return "That record is already saved. Tell me if you'd like to log something else."
}

// Apology is the worst-case reply when a turn had to reset the session.
func (r *ResponseGenerator) Apology() string {
	return "Sorry, something went wrong on my end. Let's start over — what would you like to do?"
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}
