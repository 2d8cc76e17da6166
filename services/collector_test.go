package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health-tracker-backend/models"
	"health-tracker-backend/utils"
)

func newTestSession() *models.Session {
	return &models.Session{SessionID: "s1", UserID: "u1", State: models.StateIdle}
}

func newSymptomCollectorForTest() *SymptomCollector {
	return NewSymptomCollector(utils.NewEntityExtractor(), NewResponseGenerator())
}

func TestSymptomCollectorFlow(t *testing.T) {
	col := newSymptomCollectorForTest()
	session := newTestSession()

	reply, done := col.Start("I have a headache", session)
	assert.False(t, done)
	assert.Equal(t, models.StateCollecting, session.State)
	assert.Equal(t, "headache", session.Draft.Get(models.FieldName))
	assert.Equal(t, models.FieldSeverity, session.AskedField)
	assert.Contains(t, reply, "scale of 1 to 10")

	reply, done = col.Continue("7", session)
	assert.False(t, done)
	assert.Equal(t, "7", session.Draft.Get(models.FieldSeverity))
	// Required fields are in; the one optional follow-up gets asked once.
	assert.Equal(t, models.FieldDuration, session.AskedField)
	assert.Contains(t, reply, "How long")

	reply, done = col.Continue("3 hours", session)
	assert.True(t, done)
	assert.Equal(t, "3", session.Draft.Get(models.FieldDuration))
	assert.Contains(t, reply, "headache")
	assert.Contains(t, reply, "Shall I save it?")
}

func TestCollectorFollowUpNeverBlocks(t *testing.T) {
	col := newSymptomCollectorForTest()
	session := newTestSession()

	col.Start("I have a migraine", session)
	col.Continue("8", session)
	require.Equal(t, models.FieldDuration, session.AskedField)

	// An answer that doesn't parse as a duration still moves to confirmation.
	reply, done := col.Continue("not sure really", session)
	assert.True(t, done)
	assert.Empty(t, session.Draft.Get(models.FieldDuration))
	assert.Contains(t, reply, "Shall I save it?")
}

func TestCollectorNeverOverwritesRequiredField(t *testing.T) {
	col := newSymptomCollectorForTest()
	session := newTestSession()

	col.Start("I have a headache", session)
	col.Continue("7", session)

	col.Continue("9 hours", session)
	assert.Equal(t, "7", session.Draft.Get(models.FieldSeverity))
	assert.Equal(t, "9", session.Draft.Get(models.FieldDuration))
}

func TestCollectorRepromptsOnInvalidAnswer(t *testing.T) {
	col := newSymptomCollectorForTest()
	session := newTestSession()

	col.Start("I have a headache", session)
	require.Equal(t, models.FieldSeverity, session.AskedField)

	reply, done := col.Continue("banana", session)
	assert.False(t, done)
	assert.Empty(t, session.Draft.Get(models.FieldSeverity))
	assert.Equal(t, models.FieldSeverity, session.AskedField)
	assert.Contains(t, reply, "1 to 10")
}

func TestAppointmentCollectorRejectsPastDate(t *testing.T) {
	col := NewAppointmentCollector(utils.NewEntityExtractor(), NewResponseGenerator())
	session := newTestSession()

	reply, done := col.Start("I need to book an appointment", session)
	assert.False(t, done)
	assert.Contains(t, reply, "Which doctor")

	_, done = col.Continue("Dr. Lee", session)
	assert.False(t, done)
	assert.Equal(t, "Dr. Lee", session.Draft.Get(models.FieldDoctorName))
	assert.Equal(t, models.FieldDateTime, session.AskedField)

	reply, done = col.Continue("2020-01-01 at 10:00", session)
	assert.False(t, done)
	assert.Empty(t, session.Draft.Get(models.FieldDateTime))
	assert.Contains(t, reply, "future date")

	_, done = col.Continue("2030-05-01 at 14:30", session)
	assert.False(t, done)
	assert.Equal(t, "2030-05-01 14:30", session.Draft.Get(models.FieldDateTime))
	// Reason is the optional follow-up.
	assert.Equal(t, models.FieldReason, session.AskedField)
}

func TestTreatmentCollectorSeedsDosageFromOpening(t *testing.T) {
	col := NewTreatmentCollector(utils.NewEntityExtractor(), NewResponseGenerator())
	session := newTestSession()

	reply, done := col.Start("I started taking 400 mg twice a day", session)
	assert.False(t, done)
	assert.Equal(t, "400 mg", session.Draft.Get(models.FieldDosage))
	assert.Equal(t, models.FieldName, session.AskedField)
	assert.Contains(t, reply, "medication")

	_, done = col.Continue("ibuprofen", session)
	assert.False(t, done)
	assert.Equal(t, "ibuprofen", session.Draft.Get(models.FieldName))
	assert.Equal(t, models.FieldFrequency, session.AskedField)
}

func TestFinalizeOutcomes(t *testing.T) {
	col := newSymptomCollectorForTest()
	session := newTestSession()
	col.Start("I have a headache", session)
	col.Continue("7", session)
	col.Continue("3 hours", session)
	session.State = models.StateConfirming

	outcome, _ := col.Finalize("hmm", session)
	assert.Equal(t, FinalizeUnclear, outcome)

	outcome, reply := col.Finalize("no", session)
	assert.Equal(t, FinalizeRejected, outcome)
	// Rejection clears the most recently filled field and resumes there.
	assert.Empty(t, session.Draft.Get(models.FieldDuration))
	assert.Equal(t, models.FieldDuration, session.AskedField)
	assert.Equal(t, models.StateCollecting, session.State)
	assert.NotEmpty(t, reply)

	col.Continue("5 hours", session)
	session.State = models.StateConfirming
	outcome, _ = col.Finalize("yes", session)
	assert.Equal(t, FinalizeConfirmed, outcome)
}
