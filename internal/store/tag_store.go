package store

import (
	"errors"

	"github.com/daybook-app/daybook-server/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TagStore persists tags and their entry associations.
type TagStore interface {
	Create(t *models.Tag) error
	Save(t *models.Tag) error
	FindByName(userID uuid.UUID, name string) (*models.Tag, error)
	// ListByUser returns the user's tags ordered by usage count descending,
	// then name ascending.
	ListByUser(userID uuid.UUID) ([]models.Tag, error)
	DeleteEntryTags(entryID uuid.UUID) error
	CreateEntryTags(links []models.EntryTag) error
	// CountEntryTagRefs counts EntryTag rows for the tag whose entries
	// belong to the user.
	CountEntryTagRefs(tagID, userID uuid.UUID) (int64, error)
	// EntriesByTag returns all entries linked to the tag.
	EntriesByTag(tagID uuid.UUID) ([]models.Entry, error)
}

type gormTagStore struct {
	db *gorm.DB
}

func (s *gormTagStore) Create(t *models.Tag) error {
	return s.db.Create(t).Error
}

func (s *gormTagStore) Save(t *models.Tag) error {
	return s.db.Save(t).Error
}

func (s *gormTagStore) FindByName(userID uuid.UUID, name string) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.Where("user_id = ? AND name = ?", userID, name).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *gormTagStore) ListByUser(userID uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.Where("user_id = ?", userID).
		Order("usage_count DESC, name ASC").
		Find(&tags).Error
	return tags, err
}

func (s *gormTagStore) DeleteEntryTags(entryID uuid.UUID) error {
	return s.db.Where("entry_id = ?", entryID).Delete(&models.EntryTag{}).Error
}

func (s *gormTagStore) CreateEntryTags(links []models.EntryTag) error {
	if len(links) == 0 {
		return nil
	}
	return s.db.Create(&links).Error
}

func (s *gormTagStore) CountEntryTagRefs(tagID, userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.EntryTag{}).
		Joins("JOIN entries ON entries.id = entry_tags.entry_id").
		Where("entry_tags.tag_id = ? AND entries.user_id = ?", tagID, userID).
		Count(&count).Error
	return count, err
}

func (s *gormTagStore) EntriesByTag(tagID uuid.UUID) ([]models.Entry, error) {
	var entries []models.Entry
	err := s.db.Model(&models.Entry{}).
		Joins("JOIN entry_tags ON entry_tags.entry_id = entries.id").
		Where("entry_tags.tag_id = ?", tagID).
		Find(&entries).Error
	return entries, err
}
