package store

import (
	"errors"
	"time"

	"github.com/daybook-app/daybook-server/internal/dates"
	"github.com/daybook-app/daybook-server/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntryStore persists journal entries keyed by (user, calendar date).
// Lookups that find nothing return (nil, nil).
type EntryStore interface {
	Create(e *models.Entry) error
	Save(e *models.Entry) error
	Delete(e *models.Entry) error
	FindByID(userID, entryID uuid.UUID) (*models.Entry, error)
	FindByDate(userID uuid.UUID, date time.Time) (*models.Entry, error)
	// FindAllDesc returns every entry for the user, newest date first.
	FindAllDesc(userID uuid.UUID) ([]models.Entry, error)
	// FindInRange returns entries with start <= entry_date <= end (either
	// bound optional), newest date first.
	FindInRange(userID uuid.UUID, start, end *time.Time) ([]models.Entry, error)
	// FindSince returns entries with entry_date >= since, oldest first.
	FindSince(userID uuid.UUID, since time.Time) ([]models.Entry, error)
}

type gormEntryStore struct {
	db *gorm.DB
}

func (s *gormEntryStore) Create(e *models.Entry) error {
	return s.db.Create(e).Error
}

func (s *gormEntryStore) Save(e *models.Entry) error {
	return s.db.Save(e).Error
}

func (s *gormEntryStore) Delete(e *models.Entry) error {
	return s.db.Delete(e).Error
}

func (s *gormEntryStore) FindByID(userID, entryID uuid.UUID) (*models.Entry, error) {
	var entry models.Entry
	err := s.db.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *gormEntryStore) FindByDate(userID uuid.UUID, date time.Time) (*models.Entry, error) {
	var entry models.Entry
	// Dates cross the SQL boundary as YYYY-MM-DD strings so the date
	// column comparison never involves a timezone conversion.
	err := s.db.Where("user_id = ? AND entry_date = ?", userID, dates.Format(date)).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *gormEntryStore) FindAllDesc(userID uuid.UUID) ([]models.Entry, error) {
	var entries []models.Entry
	err := s.db.Where("user_id = ?", userID).
		Order("entry_date DESC").
		Find(&entries).Error
	return entries, err
}

func (s *gormEntryStore) FindInRange(userID uuid.UUID, start, end *time.Time) ([]models.Entry, error) {
	query := s.db.Where("user_id = ?", userID)
	if start != nil {
		query = query.Where("entry_date >= ?", dates.Format(*start))
	}
	if end != nil {
		query = query.Where("entry_date <= ?", dates.Format(*end))
	}

	var entries []models.Entry
	err := query.Order("entry_date DESC").Find(&entries).Error
	return entries, err
}

func (s *gormEntryStore) FindSince(userID uuid.UUID, since time.Time) ([]models.Entry, error) {
	var entries []models.Entry
	err := s.db.Where("user_id = ? AND entry_date >= ?", userID, dates.Format(since)).
		Order("entry_date ASC").
		Find(&entries).Error
	return entries, err
}
