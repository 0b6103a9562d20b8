package models

import (
	"time"

	"github.com/google/uuid"
)

// Mood is the fixed 5-level ordered mood scale.
type Mood string

const (
	MoodTerrible Mood = "terrible"
	MoodBad      Mood = "bad"
	MoodOkay     Mood = "okay"
	MoodGood     Mood = "good"
	MoodAmazing  Mood = "amazing"
)

var Moods = []Mood{MoodTerrible, MoodBad, MoodOkay, MoodGood, MoodAmazing}

// MoodScores maps each mood to its ordinal used for averaging.
var MoodScores = map[Mood]int{
	MoodTerrible: 1,
	MoodBad:      2,
	MoodOkay:     3,
	MoodGood:     4,
	MoodAmazing:  5,
}

func (m Mood) Valid() bool {
	_, ok := MoodScores[m]
	return ok
}

// Entry is a single journal entry. At most one per (user, entry_date).
type Entry struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_entries_user_date" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Mood      Mood      `gorm:"type:varchar(10);not null;default:'okay'" json:"mood"`
	EntryDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_entries_user_date" json:"entry_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
