package services

import (
	"health-tracker-backend/models"
	"health-tracker-backend/utils"
)

// FinalizeOutcome is a collector's verdict on a confirmation reply.
type FinalizeOutcome int

const (
	FinalizeConfirmed FinalizeOutcome = iota
	FinalizeRejected
	FinalizeUnclear
)

// Collector is the per-record-type slot-filling state machine. Exactly three
// implementations exist, one per record type, selected through the engine's
// dispatch table. A collector never persists anything itself; it only fills
// the session's draft and reports when confirmation is due.
type Collector interface {
	RecordType() models.RecordType

	// Start seeds a fresh draft from the opening utterance and asks for the
	// first missing required field. done is true when the opening utterance
	// already filled every required field.
	Start(utterance string, session *models.Session) (reply string, done bool)

	// Continue merges newly extracted values and either asks for the next
	// missing field or returns the confirmation summary with done=true.
	Continue(utterance string, session *models.Session) (reply string, done bool)

	// Finalize interprets the user's reply to the confirmation summary.
	Finalize(utterance string, session *models.Session) (FinalizeOutcome, string)
}

// collectorCore carries the slot-filling mechanics shared by all three
// record types: merge-without-overwrite, advance to next missing field,
// confirmation parsing.
type collectorCore struct {
	recordType models.RecordType
	extractor  *utils.EntityExtractor
	responses  *ResponseGenerator

	// followUp is one optional field worth asking about once the required
	// fields are in. It is asked at most once and never blocks completion:
	// an answer that doesn't fill it moves straight to confirmation.
	followUp string
}

func (c *collectorCore) RecordType() models.RecordType {
	return c.recordType
}

func (c *collectorCore) Start(utterance string, session *models.Session) (string, bool) {
	session.BeginCollection(c.recordType)
	c.merge(utterance, session)
	return c.advance(session, "")
}

func (c *collectorCore) Continue(utterance string, session *models.Session) (string, bool) {
	invalid := c.merge(utterance, session)
	return c.advance(session, invalid)
}

func (c *collectorCore) Finalize(utterance string, session *models.Session) (FinalizeOutcome, string) {
	switch c.extractor.Confirmation(utterance) {
	case models.ConfirmYes:
		return FinalizeConfirmed, ""
	case models.ConfirmNo:
		// The most recently filled field is what the user is rejecting;
		// clear it and resume collection there.
		field := session.LastFilled
		if field == "" && len(models.RequiredFields(c.recordType)) > 0 {
			field = models.RequiredFields(c.recordType)[0]
		}
		session.Draft.Clear(field)
		session.AskedField = field
		session.State = models.StateCollecting
		return FinalizeRejected, c.responses.FieldReprompt(c.recordType, field)
	default:
		return FinalizeUnclear, c.responses.ConfirmReask(session.Draft)
	}
}

// merge folds extracted values into the draft. A filled required field is
// never overwritten by a later, lower-confidence guess. Returns the name of
// the asked field whose candidate value failed validation, if any.
func (c *collectorCore) merge(utterance string, session *models.Session) string {
	draft := session.Draft
	found := c.extractor.Extract(utterance, session.AskedField, c.recordType)

	invalid := ""
	for field, value := range found {
		if !models.KnownField(c.recordType, field) {
			continue
		}
		if draft.Get(field) != "" && isRequired(c.recordType, field) {
			continue
		}
		if err := draft.Set(field, value); err != nil {
			if field == session.AskedField {
				invalid = field
			}
			continue
		}
		session.LastFilled = field
	}
	return invalid
}

// advance picks the next missing required field, or emits the confirmation
// summary once the draft is complete.
func (c *collectorCore) advance(session *models.Session, invalid string) (string, bool) {
	draft := session.Draft
	missing := draft.Missing()
	if len(missing) == 0 {
		if c.followUp != "" && draft.Get(c.followUp) == "" && session.AskedField != c.followUp {
			session.AskedField = c.followUp
			return c.responses.FieldPrompt(c.recordType, c.followUp), false
		}
		session.AskedField = ""
		return c.responses.ConfirmationSummary(draft), true
	}

	next := missing[0]
	reasked := next == session.AskedField || invalid == next
	session.AskedField = next
	if reasked {
		return c.responses.FieldReprompt(c.recordType, next), false
	}
	return c.responses.FieldPrompt(c.recordType, next), false
}

func isRequired(t models.RecordType, field string) bool {
	for _, f := range models.RequiredFields(t) {
		if f == field {
			return true
		}
	}
	return false
}
