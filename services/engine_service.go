package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"health-tracker-backend/models"
	"health-tracker-backend/utils"
)

// EngineOptions carries the tunable dialogue thresholds. The source data
// never pinned these numerically, so they are configuration, not constants.
type EngineOptions struct {
	MatchConfidence    float64
	FallbackConfidence float64
	MinConfidence      float64
	LookupTimeout      time.Duration
}

// EngineService is the conversation orchestrator. Every utterance flows
// through one transition path: emergency scan first, then intent
// classification, then dispatch to the active or newly chosen collector.
// It is the only component that mutates sessions.
type EngineService struct {
	sessions   *SessionService
	classifier *utils.IntentClassifier
	monitor    *utils.EmergencyMonitor
	collectors map[models.RecordType]Collector
	responses  *ResponseGenerator
	records    RecordRepository
	knowledge  KnowledgeLookup
	opts       EngineOptions
	logger     zerolog.Logger
}

// NewEngineService wires the dialogue core. Records and knowledge are the
// engine's only network collaborators.
func NewEngineService(sessions *SessionService, records RecordRepository, knowledge KnowledgeLookup, opts EngineOptions, logger zerolog.Logger) *EngineService {
	extractor := utils.NewEntityExtractor()
	responses := NewResponseGenerator()
	return &EngineService{
		sessions:   sessions,
		classifier: utils.NewIntentClassifier(opts.MatchConfidence, opts.FallbackConfidence),
		monitor:    utils.NewEmergencyMonitor(),
		collectors: map[models.RecordType]Collector{
			models.RecordSymptom:     NewSymptomCollector(extractor, responses),
			models.RecordTreatment:   NewTreatmentCollector(extractor, responses),
			models.RecordAppointment: NewAppointmentCollector(extractor, responses),
		},
		responses: responses,
		records:   records,
		knowledge: knowledge,
		opts:      opts,
		logger:    logger.With().Str("component", "engine").Logger(),
	}
}

// ProcessMessage runs one conversational turn. Turns for the same user are
// serialized by the session store's per-session lock.
func (e *EngineService) ProcessMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	session := e.sessions.Acquire(req.UserID)
	defer e.sessions.Release(req.UserID)

	resp := e.processTurn(ctx, session, req.Message)

	session.AddExchange(models.Exchange{
		UserMessage: req.Message,
		BotResponse: resp.Response,
		Intent:      resp.Intent,
		Timestamp:   time.Now(),
	})
	return resp, nil
}

// processTurn is the single transition function of the state machine.
func (e *EngineService) processTurn(ctx context.Context, session *models.Session, message string) *models.ChatResponse {
	// Hard precondition, not a routing branch: every utterance is scanned
	// for emergency language regardless of state.
	if ev := e.monitor.Scan(message); ev != nil {
		e.logger.Warn().
			Str("session_id", session.SessionID).
			Str("state", string(session.State)).
			Str("category", ev.Category).
			Str("tier", string(ev.Tier)).
			Strs("matched", ev.Matched).
			Msg("emergency detected")
		session.ResetDialogue()
		resp := models.NewTextResponse(e.responses.SafetyMessage(ev.Category), models.StateIdle, "")
		resp.Action = &models.Action{Type: models.ActionEmergency, Category: ev.Category}
		return resp
	}

	ci := e.classifier.Classify(message)

	switch session.State {
	case models.StateCollecting:
		return e.routeCollecting(ctx, session, message, ci)
	case models.StateConfirming:
		return e.routeConfirming(ctx, session, message, ci)
	case models.StateCompleted:
		session.ResetDialogue()
		if ci.Intent == models.IntentConfirmation {
			// Confirming an already-saved record must not save it twice.
			return models.NewTextResponse(e.responses.CompletedAck(), session.State, ci.Intent)
		}
		return e.routeIdle(ctx, session, message, ci)
	default:
		return e.routeIdle(ctx, session, message, ci)
	}
}

func (e *EngineService) routeIdle(ctx context.Context, session *models.Session, message string, ci models.ClassifiedIntent) *models.ChatResponse {
	if t, ok := ci.Intent.RecordType(); ok && ci.Confidence >= e.opts.MinConfidence {
		reply, done := e.collectors[t].Start(message, session)
		if done {
			session.State = models.StateConfirming
		}
		return models.NewTextResponse(reply, session.State, ci.Intent)
	}

	switch ci.Intent {
	case models.IntentGreeting:
		return models.NewTextResponse(e.responses.Welcome(), models.StateGreeting, ci.Intent)
	case models.IntentGeneralQuestion:
		return e.answerQuestion(ctx, session, message, ci)
	case models.IntentConfirmation:
		return models.NewTextResponse(e.responses.CompletedAck(), session.State, ci.Intent)
	default:
		return models.NewTextResponse(e.responses.Clarify(), session.State, ci.Intent)
	}
}

func (e *EngineService) routeCollecting(ctx context.Context, session *models.Session, message string, ci models.ClassifiedIntent) *models.ChatResponse {
	if e.isAbandonment(session, ci) {
		e.logger.Info().
			Str("session_id", session.SessionID).
			Str("record_type", string(session.ActiveType)).
			Str("new_intent", string(ci.Intent)).
			Msg("collection abandoned by new intent")
		session.ResetDialogue()
		return e.routeIdle(ctx, session, message, ci)
	}

	reply, done := e.collectors[session.ActiveType].Continue(message, session)
	if done {
		session.State = models.StateConfirming
	}
	return models.NewTextResponse(reply, session.State, ci.Intent)
}

func (e *EngineService) routeConfirming(ctx context.Context, session *models.Session, message string, ci models.ClassifiedIntent) *models.ChatResponse {
	if e.isAbandonment(session, ci) {
		e.logger.Info().
			Str("session_id", session.SessionID).
			Str("record_type", string(session.ActiveType)).
			Str("new_intent", string(ci.Intent)).
			Msg("confirmation abandoned by new intent")
		session.ResetDialogue()
		return e.routeIdle(ctx, session, message, ci)
	}

	collector := e.collectors[session.ActiveType]
	outcome, reply := collector.Finalize(message, session)

	switch outcome {
	case FinalizeConfirmed:
		return e.persistDraft(ctx, session, ci)
	case FinalizeRejected:
		session.UnclearCount = 0
		return models.NewTextResponse(reply, session.State, ci.Intent)
	default:
		session.UnclearCount++
		if session.UnclearCount >= 2 {
			// Two unclear replies in a row: stop guessing, reset the field
			// most recently filled and collect it again explicitly.
			field := session.LastFilled
			if field == "" {
				field = models.RequiredFields(session.ActiveType)[0]
			}
			session.Draft.Clear(field)
			session.AskedField = field
			session.State = models.StateCollecting
			session.UnclearCount = 0
			return models.NewTextResponse(e.responses.CorrectionRequest(session.ActiveType, field), session.State, ci.Intent)
		}
		return models.NewTextResponse(reply, session.State, ci.Intent)
	}
}

// isAbandonment reports whether a confidently classified, unrelated intent
// should discard the in-progress draft rather than feed the collector.
func (e *EngineService) isAbandonment(session *models.Session, ci models.ClassifiedIntent) bool {
	if ci.Confidence < e.opts.MinConfidence {
		return false
	}
	switch ci.Intent {
	case models.IntentGreeting, models.IntentGeneralQuestion:
		return true
	}
	if t, ok := ci.Intent.RecordType(); ok && t != session.ActiveType {
		return true
	}
	return false
}

func (e *EngineService) answerQuestion(ctx context.Context, session *models.Session, message string, ci models.ClassifiedIntent) *models.ChatResponse {
	lctx, cancel := context.WithTimeout(ctx, e.opts.LookupTimeout)
	defer cancel()

	snippets, err := e.knowledge.Lookup(lctx, message, session.UserID)
	if err != nil {
		e.logger.Warn().Err(err).
			Str("session_id", session.SessionID).
			Str("state", string(session.State)).
			Msg("knowledge lookup degraded")
		return models.NewTextResponse(e.responses.KnowledgeFallback(), session.State, ci.Intent)
	}
	return models.NewTextResponse(e.responses.KnowledgeAnswer(snippets), session.State, ci.Intent)
}

// persistDraft is the only path that writes a record. It retries once on
// failure; a second failure keeps the session in confirming so the user can
// retry without re-entering anything.
func (e *EngineService) persistDraft(ctx context.Context, session *models.Session, ci models.ClassifiedIntent) *models.ChatResponse {
	record := &models.HealthRecord{
		UserID:     session.UserID,
		RecordType: session.ActiveType,
		Fields:     session.Draft.Fields,
		CreatedAt:  time.Now(),
	}

	id, err := e.records.Insert(ctx, record)
	if err != nil {
		e.logger.Warn().Err(err).
			Str("session_id", session.SessionID).
			Msg("record insert failed, retrying once")
		id, err = e.records.Insert(ctx, record)
	}
	if err != nil {
		e.logger.Error().Err(err).
			Str("session_id", session.SessionID).
			Str("state", string(session.State)).
			Msg("record insert failed")
		return models.NewTextResponse(e.responses.SaveFailure(), session.State, ci.Intent)
	}

	recordType := session.ActiveType
	session.ResetDialogue()
	session.State = models.StateCompleted

	resp := models.NewTextResponse(e.responses.SaveSuccess(recordType, id), session.State, ci.Intent)
	resp.Action = &models.Action{Type: models.ActionRecordSaved, RecordType: recordType, RecordID: id}
	return resp
}
