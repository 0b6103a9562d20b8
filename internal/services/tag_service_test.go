package services

import (
	"testing"

	"github.com/daybook-app/daybook-server/internal/dto"
	"github.com/daybook-app/daybook-server/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"single tag", "made progress on #goals", []string{"goals"}},
		{"tag at start", "#monday thoughts", []string{"monday"}},
		{"multiple tags", "ran with #fitness then cooked #dinner", []string{"fitness", "dinner"}},
		{"markdown headings are not tags", "# Not a tag\n## Also not", nil},
		{"double hash rejected", "this ##nope is not a tag", nil},
		{"case-insensitive dedupe", "#Work then more #work and #WORK", []string{"work"}},
		{"underscores and digits", "day 3 of #project_2026", []string{"project_2026"}},
		{"no tags", "a plain entry about nothing", nil},
		{"punctuation boundary", "felt great (#happy) all day", []string{"happy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractHashtags(tt.content))
		})
	}
}

func TestResyncReusesTagsCaseInsensitively(t *testing.T) {
	stores := newFakeStores()
	svc := newEntryService(stores)
	userID := uuid.New()

	first, err := svc.Create(userID, &dto.CreateEntryRequest{Content: "#Work day one", Mood: "okay"})
	require.NoError(t, err)

	content := "#WORK day one, revised"
	_, err = svc.Update(userID, first.ID, &dto.UpdateEntryRequest{Content: &content})
	require.NoError(t, err)

	tags, err := stores.tagStore.ListByUser(userID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "work", tags[0].Name)
	assert.Equal(t, 1, tags[0].UsageCount)
}

func TestResyncDropsRemovedTagsWithoutDeletingThem(t *testing.T) {
	stores := newFakeStores()
	svc := newEntryService(stores)
	userID := uuid.New()

	entry, err := svc.Create(userID, &dto.CreateEntryRequest{Content: "#health and #work", Mood: "okay"})
	require.NoError(t, err)

	content := "only #work now"
	_, err = svc.Update(userID, entry.ID, &dto.UpdateEntryRequest{Content: &content})
	require.NoError(t, err)

	tags, err := stores.tagStore.ListByUser(userID)
	require.NoError(t, err)
	require.Len(t, tags, 2)

	byName := map[string]models.Tag{}
	for _, tag := range tags {
		byName[tag.Name] = tag
	}
	assert.Equal(t, 1, byName["work"].UsageCount)
	assert.Equal(t, 0, byName["health"].UsageCount)
}

func TestEntriesByTagUnknownName(t *testing.T) {
	stores := newFakeStores()
	svc := NewTagService(stores)

	entries, err := svc.EntriesByTag(uuid.New(), "nonexistent")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntriesByTagNewestFirst(t *testing.T) {
	stores := newFakeStores()
	entrySvc := newEntryService(stores)
	tagSvc := NewTagService(stores)
	userID := uuid.New()

	_, err := entrySvc.Create(userID, &dto.CreateEntryRequest{
		Content: "older #trip note", Mood: "okay", EntryDate: "2026-08-25",
	})
	require.NoError(t, err)
	_, err = entrySvc.Create(userID, &dto.CreateEntryRequest{
		Content: "newer #Trip note", Mood: "good", EntryDate: "2026-08-28",
	})
	require.NoError(t, err)

	entries, err := tagSvc.EntriesByTag(userID, "TRIP")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "newer #Trip note", entries[0].Content)
	assert.Equal(t, "older #trip note", entries[1].Content)
}

func TestEntriesByTagScopedToUser(t *testing.T) {
	stores := newFakeStores()
	entrySvc := newEntryService(stores)
	tagSvc := NewTagService(stores)
	owner := uuid.New()
	other := uuid.New()

	_, err := entrySvc.Create(owner, &dto.CreateEntryRequest{Content: "my #secret", Mood: "okay"})
	require.NoError(t, err)

	entries, err := tagSvc.EntriesByTag(other, "secret")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
