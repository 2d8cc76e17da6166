package services

import (
	"health-tracker-backend/models"
	"health-tracker-backend/utils"
)

// AppointmentCollector fills appointment records: doctor name and a
// future-or-present date/time are required, reason and location optional.
// A past timestamp fails draft validation and triggers a re-prompt instead
// of being stored.
type AppointmentCollector struct {
	collectorCore
}

// NewAppointmentCollector builds the appointment slot collector.
func NewAppointmentCollector(extractor *utils.EntityExtractor, responses *ResponseGenerator) *AppointmentCollector {
	return &AppointmentCollector{collectorCore{
		recordType: models.RecordAppointment,
		extractor:  extractor,
		responses:  responses,
		followUp:   models.FieldReason,
	}}
}
