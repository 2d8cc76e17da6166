package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecordType identifies which kind of health record a draft builds.
type RecordType string

const (
	RecordSymptom     RecordType = "symptom"
	RecordTreatment   RecordType = "treatment"
	RecordAppointment RecordType = "appointment"
)

// Field names shared by extractor, collectors and templates.
const (
	FieldName       = "name"
	FieldSeverity   = "severity"
	FieldDuration   = "duration_hours"
	FieldLocation   = "location"
	FieldTriggers   = "triggers"
	FieldDesc       = "description"
	FieldDosage     = "dosage"
	FieldFrequency  = "frequency"
	FieldStartDate  = "start_date"
	FieldDoctorName = "doctor_name"
	FieldDateTime   = "date_time"
	FieldReason     = "reason"
)

// DateTimeLayout is the normalized form appointment times are stored in.
const DateTimeLayout = "2006-01-02 15:04"

// requiredFields lists required fields per record type in collection order.
var requiredFields = map[RecordType][]string{
	RecordSymptom:     {FieldName, FieldSeverity},
	RecordTreatment:   {FieldName, FieldDosage},
	RecordAppointment: {FieldDoctorName, FieldDateTime},
}

// optionalFields lists the optional fields a collector may also fill.
var optionalFields = map[RecordType][]string{
	RecordSymptom:     {FieldDuration, FieldLocation, FieldTriggers, FieldDesc},
	RecordTreatment:   {FieldFrequency, FieldStartDate},
	RecordAppointment: {FieldReason, FieldLocation},
}

// RequiredFields returns the required field names for a record type.
func RequiredFields(t RecordType) []string {
	return requiredFields[t]
}

// OptionalFields returns the optional field names for a record type.
func OptionalFields(t RecordType) []string {
	return optionalFields[t]
}

// KnownField reports whether a field belongs to the given record type.
func KnownField(t RecordType, field string) bool {
	for _, f := range requiredFields[t] {
		if f == field {
			return true
		}
	}
	for _, f := range optionalFields[t] {
		if f == field {
			return true
		}
	}
	return false
}

// Draft is a partially filled record under construction inside a session.
type Draft struct {
	Type   RecordType        `json:"type"`
	Fields map[string]string `json:"fields"`
}

// NewDraft creates an empty draft for the given record type.
func NewDraft(t RecordType) *Draft {
	return &Draft{Type: t, Fields: make(map[string]string)}
}

// Get returns the stored value for a field, empty string if unset.
func (d *Draft) Get(field string) string {
	return d.Fields[field]
}

// Set stores a validated value. Invalid values are rejected with an error
// so callers can re-prompt instead of persisting bad data.
func (d *Draft) Set(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%s: %w", field, ErrValidation)
	}
	if err := ValidateField(field, value); err != nil {
		return err
	}
	d.Fields[field] = value
	return nil
}

// Clear removes a field value, typically after the user rejects it.
func (d *Draft) Clear(field string) {
	delete(d.Fields, field)
}

// Missing returns required fields not yet filled, in collection order.
func (d *Draft) Missing() []string {
	var missing []string
	for _, f := range requiredFields[d.Type] {
		if d.Fields[f] == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Complete reports whether every required field is filled and valid.
func (d *Draft) Complete() bool {
	return len(d.Missing()) == 0
}

// ValidateField applies type and range rules for a single field value.
func ValidateField(field, value string) error {
	switch field {
	case FieldSeverity:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 10 {
			return fmt.Errorf("severity must be between 1 and 10: %w", ErrValidation)
		}
	case FieldDuration:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("duration must be a number of hours: %w", ErrValidation)
		}
	case FieldDateTime:
		ts, err := time.Parse(DateTimeLayout, value)
		if err != nil {
			return fmt.Errorf("date must look like %q: %w", DateTimeLayout, ErrValidation)
		}
		if ts.Before(time.Now().Add(-time.Minute)) {
			return fmt.Errorf("appointment time is in the past: %w", ErrValidation)
		}
	case FieldStartDate:
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return fmt.Errorf("date must look like 2006-01-02: %w", ErrValidation)
		}
	}
	return nil
}

// HealthRecord is a finalized record as stored in MongoDB. Immutable once
// inserted; the identifier is assigned by the persistence layer.
type HealthRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"user_id" json:"user_id"`
	RecordType RecordType         `bson:"record_type" json:"record_type"`
	Fields     map[string]string  `bson:"fields" json:"fields"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
