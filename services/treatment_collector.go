package services

import (
	"health-tracker-backend/models"
	"health-tracker-backend/utils"
)

// TreatmentCollector fills medication records: name and dosage are required,
// frequency and start date are optional. Dosage is pattern-matched (amount
// plus unit) so "400 mg twice a day" fills it without a dedicated prompt.
type TreatmentCollector struct {
	collectorCore
}

// NewTreatmentCollector builds the treatment slot collector.
func NewTreatmentCollector(extractor *utils.EntityExtractor, responses *ResponseGenerator) *TreatmentCollector {
	return &TreatmentCollector{collectorCore{
		recordType: models.RecordTreatment,
		extractor:  extractor,
		responses:  responses,
		followUp:   models.FieldFrequency,
	}}
}
