package dto

import (
	"time"

	"github.com/daybook-app/daybook-server/internal/dates"
	"github.com/daybook-app/daybook-server/internal/models"
	"github.com/google/uuid"
)

type CreateEntryRequest struct {
	Content string `json:"content"`
	Mood    string `json:"mood"`
	// EntryDate is optional; defaults to today. YYYY-MM-DD.
	EntryDate string `json:"entry_date,omitempty"`
}

type UpdateEntryRequest struct {
	Content *string `json:"content"`
	Mood    *string `json:"mood"`
}

type EntryResponse struct {
	ID        uuid.UUID   `json:"id"`
	Content   string      `json:"content"`
	Mood      models.Mood `json:"mood"`
	EntryDate string      `json:"entry_date"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func NewEntryResponse(e *models.Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		Content:   e.Content,
		Mood:      e.Mood,
		EntryDate: dates.Format(e.EntryDate),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func NewEntryResponses(entries []models.Entry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i := range entries {
		out[i] = NewEntryResponse(&entries[i])
	}
	return out
}

type StreakResponse struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
	TotalEntries  int `json:"total_entries"`
}

// HeatMapPoint is one day in the dense activity window. Days without an
// entry carry count 0 and no mood.
type HeatMapPoint struct {
	Date  string       `json:"date"`
	Count int          `json:"count"`
	Mood  *models.Mood `json:"mood,omitempty"`
}

type MoodAverageResponse struct {
	Last7Days  float64 `json:"last_7_days"`
	Last30Days float64 `json:"last_30_days"`
	Last90Days float64 `json:"last_90_days"`
}
