package services

import (
	"fmt"
	"time"

	"github.com/daybook-app/daybook-server/internal/models"
	"github.com/daybook-app/daybook-server/internal/store"
	"github.com/google/uuid"
)

// RateLimitStatus reports where a user stands against the hourly AI quota.
type RateLimitStatus struct {
	Allowed   bool
	Remaining int
	Limit     int
	ResetTime time.Time
}

// RateLimitService enforces a per-user cap on AI calls over the trailing
// hour. The check and the recording are separate steps; concurrent
// requests may briefly exceed the cap, which is acceptable for a quota
// that exists to bound spend rather than guarantee strict ordering.
type RateLimitService struct {
	stores store.Stores
	limit  int
}

func NewRateLimitService(stores store.Stores, limit int) *RateLimitService {
	if limit < 1 {
		limit = 5
	}
	return &RateLimitService{stores: stores, limit: limit}
}

// Check counts the user's AI calls in the last hour without recording one.
func (s *RateLimitService) Check(userID uuid.UUID, queryType string) (*RateLimitStatus, error) {
	now := time.Now()
	count, err := s.stores.AIUsage().CountSince(userID, queryType, now.Add(-time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to count AI usage: %w", err)
	}

	remaining := s.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return &RateLimitStatus{
		Allowed:   int(count) < s.limit,
		Remaining: remaining,
		Limit:     s.limit,
		ResetTime: now.Truncate(time.Hour).Add(time.Hour),
	}, nil
}

// Record logs one successful AI call against the user's quota.
func (s *RateLimitService) Record(userID uuid.UUID, queryType string) error {
	usage := &models.AiQueryUsage{
		ID:        uuid.New(),
		UserID:    userID,
		QueryType: queryType,
	}
	if err := s.stores.AIUsage().Record(usage); err != nil {
		return fmt.Errorf("failed to record AI usage: %w", err)
	}
	return nil
}
