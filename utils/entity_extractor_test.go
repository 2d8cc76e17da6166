package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"health-tracker-backend/models"
	"health-tracker-backend/utils"
)

func TestExtractSymptomNameFromOpening(t *testing.T) {
	ex := utils.NewEntityExtractor()

	found := ex.Extract("I have a headache", "", models.RecordSymptom)
	assert.Equal(t, "headache", found[models.FieldName])
	assert.NotContains(t, found, models.FieldSeverity)
}

func TestExtractSeverityDigit(t *testing.T) {
	ex := utils.NewEntityExtractor()

	found := ex.Extract("7", models.FieldSeverity, models.RecordSymptom)
	assert.Equal(t, "7", found[models.FieldSeverity])

	found = ex.Extract("about 8 out of 10", models.FieldSeverity, models.RecordSymptom)
	assert.Equal(t, "8", found[models.FieldSeverity])
}

func TestExtractSeverityWord(t *testing.T) {
	ex := utils.NewEntityExtractor()

	found := ex.Extract("it's pretty severe", models.FieldSeverity, models.RecordSymptom)
	assert.Equal(t, "8", found[models.FieldSeverity])
}

func TestExtractDurationNormalizedToHours(t *testing.T) {
	ex := utils.NewEntityExtractor()

	found := ex.Extract("3 hours", models.FieldDuration, models.RecordSymptom)
	assert.Equal(t, "3", found[models.FieldDuration])

	found = ex.Extract("2 days", models.FieldDuration, models.RecordSymptom)
	assert.Equal(t, "48", found[models.FieldDuration])

	found = ex.Extract("30 minutes", models.FieldDuration, models.RecordSymptom)
	assert.Equal(t, "0.5", found[models.FieldDuration])
}

func TestExtractDurationNumberIsNotSeverity(t *testing.T) {
	ex := utils.NewEntityExtractor()

	// "3" belongs to the duration, not the 1-10 scale.
	found := ex.Extract("for 3 hours", "", models.RecordSymptom)
	assert.Equal(t, "3", found[models.FieldDuration])
	assert.NotContains(t, found, models.FieldSeverity)
}

func TestExtractFreeTextOnlyWhenAsked(t *testing.T) {
	ex := utils.NewEntityExtractor()

	found := ex.Extract("my lower back", models.FieldLocation, models.RecordSymptom)
	assert.Equal(t, "lower back", found[models.FieldLocation])

	found = ex.Extract("my lower back", "", models.RecordSymptom)
	assert.NotContains(t, found, models.FieldLocation)
}

func TestExtractDoctorNamePreservesWording(t *testing.T) {
	ex := utils.NewEntityExtractor()

	found := ex.Extract("Dr. Patel", models.FieldDoctorName, models.RecordAppointment)
	assert.Equal(t, "Dr. Patel", found[models.FieldDoctorName])

	// Unprompted mentions are never lifted into the draft.
	found = ex.Extract("I met Dr. Patel yesterday", "", models.RecordAppointment)
	assert.NotContains(t, found, models.FieldDoctorName)
}

func TestExtractDosage(t *testing.T) {
	ex := utils.NewEntityExtractor()

	found := ex.Extract("400 mg twice a day", "", models.RecordTreatment)
	assert.Equal(t, "400 mg", found[models.FieldDosage])
}

func TestExtractDateTime(t *testing.T) {
	ex := utils.NewEntityExtractor()

	found := ex.Extract("2030-05-01 at 14:30", "", models.RecordAppointment)
	assert.Equal(t, "2030-05-01 14:30", found[models.FieldDateTime])

	found = ex.Extract("tomorrow at 3pm", "", models.RecordAppointment)
	assert.True(t, strings.HasSuffix(found[models.FieldDateTime], " 15:00"),
		"got %q", found[models.FieldDateTime])
}

func TestConfirmation(t *testing.T) {
	ex := utils.NewEntityExtractor()

	assert.Equal(t, models.ConfirmYes, ex.Confirmation("yes"))
	assert.Equal(t, models.ConfirmYes, ex.Confirmation("yeah, looks good"))
	assert.Equal(t, models.ConfirmNo, ex.Confirmation("nope"))
	assert.Equal(t, models.ConfirmNo, ex.Confirmation("that's not right"))
	assert.Equal(t, models.ConfirmUnclear, ex.Confirmation("hmm maybe"))
}
