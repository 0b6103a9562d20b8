package services

import (
	"testing"

	"github.com/daybook-app/daybook-server/internal/dates"
	"github.com/daybook-app/daybook-server/internal/dto"
	"github.com/daybook-app/daybook-server/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntryService(stores *fakeStores) *EntryService {
	return NewEntryService(stores, NewTagService(stores))
}

func seedEntry(t *testing.T, stores *fakeStores, userID uuid.UUID, daysAgo int, mood models.Mood) *models.Entry {
	t.Helper()
	entry := &models.Entry{
		ID:        uuid.New(),
		UserID:    userID,
		Content:   "seeded entry",
		Mood:      mood,
		EntryDate: dates.AddDays(dates.Today(), -daysAgo),
	}
	require.NoError(t, stores.entryStore.Create(entry))
	return entry
}

func TestCreateEntryDefaultsToToday(t *testing.T) {
	stores := newFakeStores()
	svc := newEntryService(stores)
	userID := uuid.New()

	entry, err := svc.Create(userID, &dto.CreateEntryRequest{Content: "first entry", Mood: "good"})
	require.NoError(t, err)
	assert.Equal(t, dates.Format(dates.Today()), dates.Format(entry.EntryDate))
	assert.Equal(t, models.MoodGood, entry.Mood)
}

func TestCreateEntryValidation(t *testing.T) {
	stores := newFakeStores()
	svc := newEntryService(stores)
	userID := uuid.New()

	_, err := svc.Create(userID, &dto.CreateEntryRequest{Content: "   ", Mood: "good"})
	assert.ErrorIs(t, err, ErrContentRequired)

	_, err = svc.Create(userID, &dto.CreateEntryRequest{Content: "hi", Mood: "ecstatic"})
	assert.ErrorIs(t, err, ErrInvalidMood)

	_, err = svc.Create(userID, &dto.CreateEntryRequest{Content: "hi", Mood: "good", EntryDate: "2026/01/01"})
	assert.ErrorIs(t, err, dates.ErrInvalidDate)
}

func TestCreateEntryConflictLeavesOriginal(t *testing.T) {
	stores := newFakeStores()
	svc := newEntryService(stores)
	userID := uuid.New()

	first, err := svc.Create(userID, &dto.CreateEntryRequest{Content: "original", Mood: "okay"})
	require.NoError(t, err)

	_, err = svc.Create(userID, &dto.CreateEntryRequest{Content: "duplicate", Mood: "good"})
	assert.ErrorIs(t, err, ErrEntryExists)

	stored, err := stores.entryStore.FindByID(userID, first.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "original", stored.Content)
}

func TestCreateEntrySyncsHashtags(t *testing.T) {
	stores := newFakeStores()
	svc := newEntryService(stores)
	userID := uuid.New()

	_, err := svc.Create(userID, &dto.CreateEntryRequest{
		Content: "worked on #goals and #Fitness today", Mood: "good",
	})
	require.NoError(t, err)

	tags, err := stores.tagStore.ListByUser(userID)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "fitness", tags[0].Name)
	assert.Equal(t, "goals", tags[1].Name)
	assert.Equal(t, 1, tags[0].UsageCount)
	assert.Equal(t, 1, tags[1].UsageCount)
}

func TestUpdateEntryImmutableAfterItsDay(t *testing.T) {
	stores := newFakeStores()
	svc := newEntryService(stores)
	userID := uuid.New()
	yesterday := seedEntry(t, stores, userID, 1, models.MoodOkay)

	content := "rewritten"
	_, err := svc.Update(userID, yesterday.ID, &dto.UpdateEntryRequest{Content: &content})
	assert.ErrorIs(t, err, ErrEntryImmutable)

	stored, err := stores.entryStore.FindByID(userID, yesterday.ID)
	require.NoError(t, err)
	assert.Equal(t, "seeded entry", stored.Content)
}

func TestUpdateEntryTodayChangesMood(t *testing.T) {
	stores := newFakeStores()
	svc := newEntryService(stores)
	userID := uuid.New()
	today := seedEntry(t, stores, userID, 0, models.MoodOkay)

	mood := "amazing"
	updated, err := svc.Update(userID, today.ID, &dto.UpdateEntryRequest{Mood: &mood})
	require.NoError(t, err)
	assert.Equal(t, models.MoodAmazing, updated.Mood)
	assert.Equal(t, "seeded entry", updated.Content)
}

func TestDeleteEntryImmutableAfterItsDay(t *testing.T) {
	stores := newFakeStores()
	svc := newEntryService(stores)
	userID := uuid.New()
	old := seedEntry(t, stores, userID, 5, models.MoodBad)

	err := svc.Delete(userID, old.ID)
	assert.ErrorIs(t, err, ErrEntryImmutable)

	stored, err := stores.entryStore.FindByID(userID, old.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestDeleteEntryRecomputesTagCounts(t *testing.T) {
	stores := newFakeStores()
	svc := newEntryService(stores)
	userID := uuid.New()

	entry, err := svc.Create(userID, &dto.CreateEntryRequest{Content: "a #travel day", Mood: "good"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(userID, entry.ID))

	tags, err := stores.tagStore.ListByUser(userID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "travel", tags[0].Name)
	assert.Equal(t, 0, tags[0].UsageCount)
}

func TestStreakEmpty(t *testing.T) {
	stores := newFakeStores()
	svc := newEntryService(stores)

	streak, err := svc.Streak(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, streak.CurrentStreak)
	assert.Equal(t, 0, streak.LongestStreak)
	assert.Equal(t, 0, streak.TotalEntries)
}

func TestStreakSingleEntryToday(t *testing.T) {
	stores := newFakeStores()
	svc := newEntryService(stores)
	userID := uuid.New()
	seedEntry(t, stores, userID, 0, models.MoodGood)

	streak, err := svc.Streak(userID)
	require.NoError(t, err)
	assert.Equal(t, 1, streak.CurrentStreak)
	assert.Equal(t, 1, streak.LongestStreak)
	assert.Equal(t, 1, streak.TotalEntries)
}

func TestStreakConsecutiveDays(t *testing.T) {
	stores := newFakeStores()
	svc := newEntryService(stores)
	userID := uuid.New()
	for daysAgo := 0; daysAgo < 3; daysAgo++ {
		seedEntry(t, stores, userID, daysAgo, models.MoodGood)
	}

	streak, err := svc.Streak(userID)
	require.NoError(t, err)
	assert.Equal(t, 3, streak.CurrentStreak)
	assert.Equal(t, 3, streak.LongestStreak)
	assert.Equal(t, 3, streak.TotalEntries)
}

func TestStreakGapStopsCurrentRun(t *testing.T) {
	stores := newFakeStores()
	svc := newEntryService(stores)
	userID := uuid.New()
	// Today and yesterday, then a gap, then a longer historical run.
	seedEntry(t, stores, userID, 0, models.MoodGood)
	seedEntry(t, stores, userID, 1, models.MoodGood)
	for daysAgo := 4; daysAgo <= 7; daysAgo++ {
		seedEntry(t, stores, userID, daysAgo, models.MoodOkay)
	}

	streak, err := svc.Streak(userID)
	require.NoError(t, err)
	assert.Equal(t, 2, streak.CurrentStreak)
	assert.Equal(t, 4, streak.LongestStreak)
	assert.Equal(t, 6, streak.TotalEntries)
}

func TestStreakBrokenWhenLastEntryIsOld(t *testing.T) {
	stores := newFakeStores()
	svc := newEntryService(stores)
	userID := uuid.New()
	for daysAgo := 3; daysAgo <= 5; daysAgo++ {
		seedEntry(t, stores, userID, daysAgo, models.MoodGood)
	}

	streak, err := svc.Streak(userID)
	require.NoError(t, err)
	assert.Equal(t, 0, streak.CurrentStreak)
	assert.Equal(t, 3, streak.LongestStreak)
	assert.Equal(t, 3, streak.TotalEntries)
}

func TestStreakLongestNeverBelowCurrent(t *testing.T) {
	stores := newFakeStores()
	svc := newEntryService(stores)
	userID := uuid.New()
	// 5-day current run, 2-day historical run.
	for daysAgo := 0; daysAgo < 5; daysAgo++ {
		seedEntry(t, stores, userID, daysAgo, models.MoodGood)
	}
	seedEntry(t, stores, userID, 10, models.MoodOkay)
	seedEntry(t, stores, userID, 11, models.MoodOkay)

	streak, err := svc.Streak(userID)
	require.NoError(t, err)
	assert.Equal(t, 5, streak.CurrentStreak)
	assert.GreaterOrEqual(t, streak.LongestStreak, streak.CurrentStreak)
	assert.Equal(t, 5, streak.LongestStreak)
}

func TestHeatMapDenseWindow(t *testing.T) {
	stores := newFakeStores()
	svc := newEntryService(stores)
	userID := uuid.New()
	seedEntry(t, stores, userID, 0, models.MoodAmazing)
	seedEntry(t, stores, userID, 3, models.MoodBad)

	points, err := svc.HeatMap(userID, 7)
	require.NoError(t, err)
	require.Len(t, points, 8)

	// Ascending dates with no gaps.
	for i := 1; i < len(points); i++ {
		prev, err := dates.Parse(points[i-1].Date)
		require.NoError(t, err)
		curr, err := dates.Parse(points[i].Date)
		require.NoError(t, err)
		assert.Equal(t, 1, dates.DaysBetween(curr, prev))
	}

	last := points[len(points)-1]
	assert.Equal(t, dates.Format(dates.Today()), last.Date)
	assert.Equal(t, 1, last.Count)
	require.NotNil(t, last.Mood)
	assert.Equal(t, models.MoodAmazing, *last.Mood)

	threeDaysAgo := points[len(points)-4]
	assert.Equal(t, 1, threeDaysAgo.Count)
	require.NotNil(t, threeDaysAgo.Mood)
	assert.Equal(t, models.MoodBad, *threeDaysAgo.Mood)

	empty := points[len(points)-2]
	assert.Equal(t, 0, empty.Count)
	assert.Nil(t, empty.Mood)
}

func TestAverageMoodNoEntries(t *testing.T) {
	stores := newFakeStores()
	svc := newEntryService(stores)

	averages, err := svc.AverageMood(uuid.New())
	require.NoError(t, err)
	assert.Zero(t, averages.Last7Days)
	assert.Zero(t, averages.Last30Days)
	assert.Zero(t, averages.Last90Days)
}

func TestAverageMoodWindows(t *testing.T) {
	stores := newFakeStores()
	svc := newEntryService(stores)
	userID := uuid.New()
	// In the 7-day window: amazing (5) and terrible (1) -> 3.0.
	seedEntry(t, stores, userID, 1, models.MoodAmazing)
	seedEntry(t, stores, userID, 2, models.MoodTerrible)
	// Only in the 30/90-day windows: good (4).
	seedEntry(t, stores, userID, 20, models.MoodGood)

	averages, err := svc.AverageMood(userID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, averages.Last7Days, 0.001)
	assert.InDelta(t, 3.33, averages.Last30Days, 0.001)
	assert.InDelta(t, 3.33, averages.Last90Days, 0.001)
}

func TestAverageMoodWithinBounds(t *testing.T) {
	stores := newFakeStores()
	svc := newEntryService(stores)
	userID := uuid.New()
	moods := []models.Mood{models.MoodTerrible, models.MoodBad, models.MoodOkay, models.MoodGood, models.MoodAmazing}
	for i, mood := range moods {
		seedEntry(t, stores, userID, i, mood)
	}

	averages, err := svc.AverageMood(userID)
	require.NoError(t, err)
	for _, avg := range []float64{averages.Last7Days, averages.Last30Days, averages.Last90Days} {
		assert.GreaterOrEqual(t, avg, 1.0)
		assert.LessOrEqual(t, avg, 5.0)
	}
}
