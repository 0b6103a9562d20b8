package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/daybook-app/daybook-server/internal/dates"
	"github.com/daybook-app/daybook-server/internal/dto"
	"github.com/daybook-app/daybook-server/internal/models"
	"github.com/daybook-app/daybook-server/internal/store"
	"github.com/google/uuid"
)

// DefaultHeatMapDays is the trailing window used when no length is given.
const DefaultHeatMapDays = 365

var (
	ErrContentRequired = errors.New("content is required")
	ErrInvalidMood     = errors.New("invalid mood")
	ErrEntryExists     = errors.New("entry already exists for this date")
	ErrEntryNotFound   = errors.New("entry not found")
	ErrEntryImmutable  = errors.New("entries from past days cannot be edited or deleted")
)

// EntryService owns entry CRUD, the one-entry-per-day rules and the
// derived statistics (streak, heat-map, mood averages). Statistics are
// recomputed from storage on every call; nothing derived is persisted.
type EntryService struct {
	stores store.Stores
	tags   *TagService
}

func NewEntryService(stores store.Stores, tags *TagService) *EntryService {
	return &EntryService{stores: stores, tags: tags}
}

// Create writes the entry for its date and resyncs hashtags in one
// transaction. The date defaults to today and may be backdated, but a
// date that already has an entry is a conflict.
func (s *EntryService) Create(userID uuid.UUID, req *dto.CreateEntryRequest) (*models.Entry, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrContentRequired
	}
	mood := models.Mood(req.Mood)
	if !mood.Valid() {
		return nil, ErrInvalidMood
	}

	entryDate := dates.Today()
	if req.EntryDate != "" {
		parsed, err := dates.Parse(req.EntryDate)
		if err != nil {
			return nil, err
		}
		entryDate = parsed
	}

	existing, err := s.stores.Entries().FindByDate(userID, entryDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing entry: %w", err)
	}
	if existing != nil {
		return nil, ErrEntryExists
	}

	entry := &models.Entry{
		ID:        uuid.New(),
		UserID:    userID,
		Content:   req.Content,
		Mood:      mood,
		EntryDate: entryDate,
	}

	err = s.stores.Transaction(func(tx store.Stores) error {
		if err := tx.Entries().Create(entry); err != nil {
			return fmt.Errorf("failed to create entry: %w", err)
		}
		return s.tags.ResyncEntryTags(tx, entry.ID, userID, entry.Content)
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// Update edits content and/or mood. Only today's entry is mutable.
func (s *EntryService) Update(userID, entryID uuid.UUID, req *dto.UpdateEntryRequest) (*models.Entry, error) {
	entry, err := s.stores.Entries().FindByID(userID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entry: %w", err)
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}
	if !dates.SameDay(entry.EntryDate, dates.Today()) {
		return nil, ErrEntryImmutable
	}

	contentChanged := false
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, ErrContentRequired
		}
		contentChanged = *req.Content != entry.Content
		entry.Content = *req.Content
	}
	if req.Mood != nil {
		mood := models.Mood(*req.Mood)
		if !mood.Valid() {
			return nil, ErrInvalidMood
		}
		entry.Mood = mood
	}

	err = s.stores.Transaction(func(tx store.Stores) error {
		if err := tx.Entries().Save(entry); err != nil {
			return fmt.Errorf("failed to update entry: %w", err)
		}
		if contentChanged {
			return s.tags.ResyncEntryTags(tx, entry.ID, userID, entry.Content)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// Delete removes today's entry along with its tag links.
func (s *EntryService) Delete(userID, entryID uuid.UUID) error {
	entry, err := s.stores.Entries().FindByID(userID, entryID)
	if err != nil {
		return fmt.Errorf("failed to fetch entry: %w", err)
	}
	if entry == nil {
		return ErrEntryNotFound
	}
	if !dates.SameDay(entry.EntryDate, dates.Today()) {
		return ErrEntryImmutable
	}

	return s.stores.Transaction(func(tx store.Stores) error {
		if err := tx.Tags().DeleteEntryTags(entry.ID); err != nil {
			return fmt.Errorf("failed to delete entry tags: %w", err)
		}
		if err := tx.Entries().Delete(entry); err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}
		return s.tags.RecomputeUsageCounts(tx, userID)
	})
}

func (s *EntryService) Get(userID, entryID uuid.UUID) (*models.Entry, error) {
	entry, err := s.stores.Entries().FindByID(userID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entry: %w", err)
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}
	return entry, nil
}

func (s *EntryService) GetByDate(userID uuid.UUID, dateStr string) (*models.Entry, error) {
	date, err := dates.Parse(dateStr)
	if err != nil {
		return nil, err
	}
	entry, err := s.stores.Entries().FindByDate(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entry: %w", err)
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}
	return entry, nil
}

// List returns entries newest first, optionally bounded by start/end dates.
func (s *EntryService) List(userID uuid.UUID, startStr, endStr string) ([]models.Entry, error) {
	var start, end *time.Time
	if startStr != "" {
		parsed, err := dates.Parse(startStr)
		if err != nil {
			return nil, err
		}
		start = &parsed
	}
	if endStr != "" {
		parsed, err := dates.Parse(endStr)
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

// Streak computes the current and longest consecutive-day writing runs.
func (s *EntryService) Streak(userID uuid.UUID) (*dto.StreakResponse, error) {
	entries, err := s.stores.Entries().FindAllDesc(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries: %w", err)
	}
	if len(entries) == 0 {
		return &dto.StreakResponse{}, nil
	}

	today := dates.Today()
	mostRecent := dates.Normalize(entries[0].EntryDate)

	// A current streak needs the most recent entry to be today or
	// yesterday; otherwise only the historical best run remains.
	if dates.DaysBetween(today, mostRecent) > 1 {
		return &dto.StreakResponse{
			CurrentStreak: 0,
			LongestStreak: longestRun(entries),
			TotalEntries:  len(entries),
		}, nil
	}

	currentStreak := 1
	expected := mostRecent
	for i := 1; i < len(entries); i++ {
		entryDate := dates.Normalize(entries[i].EntryDate)
		if dates.DaysBetween(expected, entryDate) == 1 {
			currentStreak++
			expected = entryDate
		} else {
			break
		}
	}

	// The current streak can exceed any completed historical run.
	longestStreak := longestRun(entries)
	if currentStreak > longestStreak {
		longestStreak = currentStreak
	}

	return &dto.StreakResponse{
		CurrentStreak: currentStreak,
		LongestStreak: longestStreak,
		TotalEntries:  len(entries),
	}, nil
}

// longestRun scans date-descending entries and tracks the longest run of
// exactly-one-day gaps. Any other gap resets the run to 1: a lone entry
// is itself a streak of length 1, and a zero-day gap counts as a reset.
func longestRun(entries []models.Entry) int {
	if len(entries) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(entries); i++ {
		prev := dates.Normalize(entries[i-1].EntryDate)
		curr := dates.Normalize(entries[i].EntryDate)
		if dates.DaysBetween(prev, curr) == 1 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}

// HeatMap returns one point per calendar day in [today-days, today],
// oldest first, with no gaps. Days without an entry get count 0.
func (s *EntryService) HeatMap(userID uuid.UUID, days int) ([]dto.HeatMapPoint, error) {
	if days < 1 {
		days = DefaultHeatMapDays
	}

	end := dates.Today()
	start := dates.AddDays(end, -days)

	entries, err := s.stores.Entries().FindSince(userID, start)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries: %w", err)
	}

	byDate := make(map[string]*models.Entry, len(entries))
	for i := range entries {
		byDate[dates.Format(entries[i].EntryDate)] = &entries[i]
	}

	points := make([]dto.HeatMapPoint, 0, days+1)
	for i := 0; i <= days; i++ {
		key := dates.Format(dates.AddDays(start, i))
		if entry, ok := byDate[key]; ok {
			mood := entry.Mood
			points = append(points, dto.HeatMapPoint{Date: key, Count: 1, Mood: &mood})
		} else {
			points = append(points, dto.HeatMapPoint{Date: key, Count: 0})
		}
	}
	return points, nil
}

// AverageMood computes rolling mean mood ordinals over 7/30/90 days from
// a single 90-day fetch. 0 means "no entries in the window".
func (s *EntryService) AverageMood(userID uuid.UUID) (*dto.MoodAverageResponse, error) {
	today := dates.Today()
	entries, err := s.stores.Entries().FindSince(userID, dates.AddDays(today, -90))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries: %w", err)
	}

	return &dto.MoodAverageResponse{
		Last7Days:  meanMoodSince(entries, dates.AddDays(today, -7)),
		Last30Days: meanMoodSince(entries, dates.AddDays(today, -30)),
		Last90Days: meanMoodSince(entries, dates.AddDays(today, -90)),
	}, nil
}

func meanMoodSince(entries []models.Entry, cutoff time.Time) float64 {
	cutoffKey := dates.Format(cutoff)

	total, count := 0, 0
	for i := range entries {
		if dates.Format(entries[i].EntryDate) >= cutoffKey {
			total += models.MoodScores[entries[i].Mood]
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return math.Round(float64(total)/float64(count)*100) / 100
}
