package store

import (
	"time"

	"github.com/daybook-app/daybook-server/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AIUsageStore records AI calls for the advisory hourly rate limit.
type AIUsageStore interface {
	CountSince(userID uuid.UUID, queryType string, since time.Time) (int64, error)
	Record(u *models.AiQueryUsage) error
}

type gormAIUsageStore struct {
	db *gorm.DB
}

func (s *gormAIUsageStore) CountSince(userID uuid.UUID, queryType string, since time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&models.AiQueryUsage{}).
		Where("user_id = ? AND query_type = ? AND query_time > ?", userID, queryType, since).
		Count(&count).Error
	return count, err
}

func (s *gormAIUsageStore) Record(u *models.AiQueryUsage) error {
	return s.db.Create(u).Error
}
