package models

// Intent is the classified purpose of a single user utterance.
type Intent string

const (
	IntentGreeting        Intent = "greeting"
	IntentSymptom         Intent = "symptom"
	IntentTreatment       Intent = "treatment"
	IntentAppointment     Intent = "appointment"
	IntentGeneralQuestion Intent = "general_question"
	IntentConfirmation    Intent = "confirmation"
	IntentUnknown         Intent = "unknown"
)

// RecordType returns the record type a collection intent maps to.
func (i Intent) RecordType() (RecordType, bool) {
	switch i {
	case IntentSymptom:
		return RecordSymptom, true
	case IntentTreatment:
		return RecordTreatment, true
	case IntentAppointment:
		return RecordAppointment, true
	default:
		return "", false
	}
}

// ClassifiedIntent pairs an intent with the classifier's confidence.
type ClassifiedIntent struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// ConfirmState is the outcome of parsing a yes/no reply.
type ConfirmState string

const (
	ConfirmYes     ConfirmState = "yes"
	ConfirmNo      ConfirmState = "no"
	ConfirmUnclear ConfirmState = "unclear"
)
