package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a hashtag extracted from entry content, scoped per user.
// UsageCount is derived from EntryTag rows and recomputed wholesale.
type Tag struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tags_user_name" json:"user_id"`
	Name       string    `gorm:"size:100;not null;uniqueIndex:idx_tags_user_name" json:"name"`
	UsageCount int       `gorm:"default:0" json:"usage_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// EntryTag links an entry to a tag. Rows are deleted and regenerated
// wholesale whenever the owning entry's content changes.
type EntryTag struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EntryID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_entry_tags_entry_tag" json:"entry_id"`
	TagID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_entry_tags_entry_tag" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}
