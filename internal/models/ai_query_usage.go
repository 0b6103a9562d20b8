package models

import (
	"time"

	"github.com/google/uuid"
)

// AiQueryUsage records one AI query or enhancement call. The hourly rate
// limiter counts these rows; nothing else reads them except admin stats.
type AiQueryUsage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	QueryType string    `gorm:"size:50;not null" json:"query_type"`
	QueryTime time.Time `gorm:"not null;index;autoCreateTime" json:"query_time"`
}
