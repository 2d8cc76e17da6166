package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"health-tracker-backend/models"
)

// KnowledgeLookup is the read-only collaborator answering general health
// questions. The engine only calls it for the general_question intent and
// treats any failure as a degraded reply, never a crash.
type KnowledgeLookup interface {
	Lookup(ctx context.Context, query, userID string) ([]string, error)
}

// KnowledgeService answers general questions through the Gemini REST API.
type KnowledgeService struct {
	apiKey     string
	apiURL     string
	model      string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewKnowledgeService builds the lookup client with a bounded timeout.
func NewKnowledgeService(apiKey, model string, timeout time.Duration, logger zerolog.Logger) *KnowledgeService {
	return &KnowledgeService{
		apiKey: apiKey,
		apiURL: "https://generativelanguage.googleapis.com/v1beta/models/" + model + ":generateContent",
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With().Str("component", "knowledge").Logger(),
	}
}

type genPart struct {
	Text string `json:"text"`
}

type genContent struct {
	Parts []genPart `json:"parts"`
}

type genConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []genContent `json:"contents"`
	GenerationConfig genConfig    `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content genContent `json:"content"`
	} `json:"candidates"`
}

// Lookup fetches grounded snippets for a general health question. The
// prompt constrains the answer to general information with a consult-your-
// provider reminder; diagnosis is out of scope by instruction.
func (s *KnowledgeService) Lookup(ctx context.Context, query, userID string) ([]string, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("knowledge lookup unconfigured: %w", models.ErrCollaboratorTimeout)
	}

	prompt := fmt.Sprintf(
		"You are a health information assistant. Answer the question below with "+
			"short, general, factual information only. Do not diagnose. Always assume "+
			"the reader will consult a healthcare provider.\n\nQuestion: %s",
		query,
	)

	payload := generateRequest{
		Contents:         []genContent{{Parts: []genPart{{Text: prompt}}}},
		GenerationConfig: genConfig{Temperature: 0.3, MaxOutputTokens: 300},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal knowledge request: %w", err)
	}

	endpoint := fmt.Sprintf("%s?key=%s", s.apiURL, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("build knowledge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("knowledge lookup: %w", models.ErrCollaboratorTimeout)
		}
		return nil, fmt.Errorf("knowledge lookup: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read knowledge response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		s.logger.Warn().Int("status", resp.StatusCode).Str("user_id", userID).Msg("knowledge lookup failed")
		return nil, fmt.Errorf("knowledge lookup status %d: %w", resp.StatusCode, models.ErrCollaboratorTimeout)
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode knowledge response: %w", err)
	}

	var snippets []string
	for _, c := range parsed.Candidates {
		for _, p := range c.Content.Parts {
			if p.Text != "" {
				snippets = append(snippets, p.Text)
			}
		}
	}
	if len(snippets) == 0 {
		return nil, fmt.Errorf("knowledge lookup: empty answer")
	}
	return snippets, nil
}
