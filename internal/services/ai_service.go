package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/daybook-app/daybook-server/internal/config"
	"github.com/daybook-app/daybook-server/internal/dates"
	"github.com/daybook-app/daybook-server/internal/dto"
	"github.com/daybook-app/daybook-server/internal/models"
	"github.com/daybook-app/daybook-server/internal/store"
	"github.com/google/uuid"
)

var (
	ErrAIOverloaded   = errors.New("AI service is overloaded")
	ErrAIUnauthorized = errors.New("AI service rejected the API key")
	ErrAIRateLimited  = errors.New("AI provider rate limit exceeded")
	ErrAIUnavailable  = errors.New("AI service unavailable")
	ErrQuestionEmpty  = errors.New("question is required")
)

const (
	anthropicVersion = "2023-06-01"

	// queryEntryLimit caps how many entries go into a query prompt;
	// relevantEntryLimit caps how many come back as citations.
	queryEntryLimit    = 20
	relevantEntryLimit = 5

	// enhanceContextDays / enhanceContextLimit bound the recent-entry
	// context attached to an enhancement request.
	enhanceContextDays  = 30
	enhanceContextLimit = 10
	enhanceExcerptLen   = 200
)

const noEntriesAnswer = "You don't have any journal entries in this period yet. " +
	"Write a few entries and ask me again."

const keyMissingAnswer = "AI features are not configured on this server. " +
	"Set ANTHROPIC_API_KEY to enable journal questions and writing enhancement."

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// AIService answers questions about the user's journal and enhances
// draft entries by calling the Anthropic Messages API.
type AIService struct {
	cfg    *config.Config
	stores store.Stores
	client *http.Client
}

func NewAIService(cfg *config.Config, stores store.Stores) *AIService {
	return &AIService{
		cfg:    cfg,
		stores: stores,
		client: &http.Client{Timeout: cfg.AITimeout},
	}
}

// complete sends one request to the Messages API and returns the first
// text block of the reply.
func (s *AIService) complete(req anthropicRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode AI request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, s.cfg.AnthropicAPIURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build AI request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", s.cfg.AnthropicAPIKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case 529:
		return "", ErrAIOverloaded
	case http.StatusUnauthorized:
		return "", ErrAIUnauthorized
	case http.StatusTooManyRequests:
		return "", ErrAIRateLimited
	default:
		return "", fmt.Errorf("%w: status %d", ErrAIUnavailable, resp.StatusCode)
	}

	var parsed anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode AI response: %w", err)
	}
	for _, block := range parsed.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("%w: empty response", ErrAIUnavailable)
}

// Query answers a natural-language question about the user's journal.
// The newest entries in the optional date range become the prompt
// context, and the same entries come back as citations.
func (s *AIService) Query(userID uuid.UUID, req *dto.AIQueryRequest) (*dto.AIQueryResponse, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, ErrQuestionEmpty
	}

	var start, end *string
	if req.StartDate != "" {
		start = &req.StartDate
	}
	if req.EndDate != "" {
		end = &req.EndDate
	}
	entries, err := s.entriesInRange(userID, start, end)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return &dto.AIQueryResponse{Answer: noEntriesAnswer, RelevantEntries: []dto.RelevantEntry{}}, nil
	}
	if s.cfg.AnthropicAPIKey == "" {
		return &dto.AIQueryResponse{Answer: keyMissingAnswer, RelevantEntries: []dto.RelevantEntry{}}, nil
	}

	if len(entries) > queryEntryLimit {
		entries = entries[:queryEntryLimit]
	}

	blocks := make([]string, len(entries))
	for i, e := range entries {
		blocks[i] = fmt.Sprintf("Entry %d (%s) - Mood: %s\n%s",
			i+1, dates.Format(e.EntryDate), e.Mood, e.Content)
	}

	system := "You are a thoughtful assistant helping someone reflect on their personal journal. " +
		"Answer their question using only the journal entries provided. " +
		"Be warm and concise, and refer to specific dates when it helps. " +
		"If the entries don't contain the answer, say so honestly."

	prompt := fmt.Sprintf("Journal entries:\n\n%s\n\nQuestion: %s",
		strings.Join(blocks, "\n\n---\n\n"), req.Question)

	answer, err := s.complete(anthropicRequest{
		Model:     s.cfg.AnthropicModel,
		MaxTokens: 1024,
		System:    system,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, err
	}

	relevant := entries
	if len(relevant) > relevantEntryLimit {
		relevant = relevant[:relevantEntryLimit]
	}
	cited := make([]dto.RelevantEntry, len(relevant))
	for i, e := range relevant {
		cited[i] = dto.RelevantEntry{
			ID:      e.ID.String(),
			Date:    dates.Format(e.EntryDate),
			Content: e.Content,
			Mood:    e.Mood,
		}
	}

	return &dto.AIQueryResponse{Answer: answer, RelevantEntries: cited}, nil
}

// Enhance rewrites a draft entry into a fuller reflection, using short
// excerpts of the user's recent entries as stylistic context.
func (s *AIService) Enhance(userID uuid.UUID, req *dto.EnhanceRequest) (*dto.EnhanceResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrContentRequired
	}
	if s.cfg.AnthropicAPIKey == "" {
		return nil, ErrAIUnavailable
	}

	entryDate := dates.Today()
	if req.EntryDate != "" {
		parsed, err := dates.Parse(req.EntryDate)
		if err != nil {
			return nil, err
		}
		entryDate = parsed
	}

	recent, err := s.stores.Entries().FindSince(userID, dates.AddDays(entryDate, -enhanceContextDays))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent entries: %w", err)
	}

	var context []string
	for i := len(recent) - 1; i >= 0 && len(context) < enhanceContextLimit; i-- {
		e := recent[i]
		if dates.SameDay(e.EntryDate, entryDate) {
			continue
		}
		excerpt := e.Content
		if len(excerpt) > enhanceExcerptLen {
			excerpt = excerpt[:enhanceExcerptLen] + "..."
		}
		context = append(context, fmt.Sprintf("%s: %s",
			dates.Normalize(e.EntryDate).Format("Jan 2"), excerpt))
	}

	system := "You help people turn rough journal notes into fuller, more reflective entries. " +
		"Keep the writer's voice and facts exactly as given; expand on feelings and detail " +
		"without inventing events. Return only the enhanced entry text."

	var sb strings.Builder
	if len(context) > 0 {
		sb.WriteString("Recent entries for context:\n")
		sb.WriteString(strings.Join(context, "\n"))
		sb.WriteString("\n\n")
	}
	sb.WriteString("Today's draft:\n")
	sb.WriteString(req.Content)

	enhanced, err := s.complete(anthropicRequest{
		Model:     s.cfg.AnthropicModel,
		MaxTokens: 2048,
		System:    system,
		Messages:  []anthropicMessage{{Role: "user", Content: sb.String()}},
	})
	if err != nil {
		return nil, err
	}

	return &dto.EnhanceResponse{Enhanced: enhanced}, nil
}

// TestConnection reports whether AI features look usable without
// spending a real API call.
func (s *AIService) TestConnection() *dto.AIHealthResponse {
	if s.cfg.AnthropicAPIKey == "" {
		return &dto.AIHealthResponse{Status: "unconfigured", Message: "ANTHROPIC_API_KEY is not set"}
	}
	if !strings.HasPrefix(s.cfg.AnthropicAPIKey, "sk-ant-") {
		return &dto.AIHealthResponse{Status: "misconfigured", Message: "API key does not look like an Anthropic key"}
	}
	return &dto.AIHealthResponse{Status: "ok", Message: "AI features are configured"}
}

// entriesInRange returns the user's entries newest first, bounded by
// optional YYYY-MM-DD strings.
func (s *AIService) entriesInRange(userID uuid.UUID, startStr, endStr *string) ([]models.Entry, error) {
	var start, end *time.Time
	if startStr != nil {
		parsed, err := dates.Parse(*startStr)
		if err != nil {
			return nil, err
		}
		start = &parsed
	}
	if endStr != nil {
		parsed, err := dates.Parse(*endStr)
		if err != nil {
			return nil, err
		}
		end = &parsed
	}

	entries, err := s.stores.Entries().FindInRange(userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries: %w", err)
	}
	return entries, nil
}
