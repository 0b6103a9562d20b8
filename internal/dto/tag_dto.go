package dto

import (
	"time"

	"github.com/daybook-app/daybook-server/internal/models"
	"github.com/google/uuid"
)

type TagResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	UsageCount int       `json:"usage_count"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewTagResponses(tags []models.Tag) []TagResponse {
	out := make([]TagResponse, len(tags))
	for i, t := range tags {
		out[i] = TagResponse{
			ID:         t.ID,
			Name:       t.Name,
			UsageCount: t.UsageCount,
			CreatedAt:  t.CreatedAt,
		}
	}
	return out
}
