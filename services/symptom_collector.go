package services

import (
	"health-tracker-backend/models"
	"health-tracker-backend/utils"
)

// SymptomCollector fills symptom records: name and a 1-10 severity are
// required, duration, location, triggers and description are optional.
// The opening utterance usually names the symptom ("I have a headache"),
// so collection typically starts at severity.
type SymptomCollector struct {
	collectorCore
}

// NewSymptomCollector builds the symptom slot collector.
func NewSymptomCollector(extractor *utils.EntityExtractor, responses *ResponseGenerator) *SymptomCollector {
	return &SymptomCollector{collectorCore{
		recordType: models.RecordSymptom,
		extractor:  extractor,
		responses:  responses,
		followUp:   models.FieldDuration,
	}}
}
