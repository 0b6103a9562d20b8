package services

import (
	"sort"
	"strings"
	"time"

	"github.com/daybook-app/daybook-server/internal/dates"
	"github.com/daybook-app/daybook-server/internal/models"
	"github.com/daybook-app/daybook-server/internal/store"
	"github.com/google/uuid"
)

// fakeStores is an in-memory store.Stores for exercising services
// without a database. Transaction runs the callback against the same
// state; rollback semantics are not simulated.
type fakeStores struct {
	entryStore *fakeEntryStore
	tagStore   *fakeTagStore
	usageStore *fakeAIUsageStore
}

func newFakeStores() *fakeStores {
	entries := &fakeEntryStore{}
	return &fakeStores{
		entryStore: entries,
		tagStore:   &fakeTagStore{entries: entries},
		usageStore: &fakeAIUsageStore{},
	}
}

func (f *fakeStores) Entries() store.EntryStore   { return f.entryStore }
func (f *fakeStores) Tags() store.TagStore        { return f.tagStore }
func (f *fakeStores) AIUsage() store.AIUsageStore { return f.usageStore }

func (f *fakeStores) Transaction(fn func(tx store.Stores) error) error {
	return fn(f)
}

type fakeEntryStore struct {
	entries []models.Entry
}

func (s *fakeEntryStore) Create(e *models.Entry) error {
	e.CreatedAt = time.Now()
	e.UpdatedAt = time.Now()
	s.entries = append(s.entries, *e)
	return nil
}

func (s *fakeEntryStore) Save(e *models.Entry) error {
	for i := range s.entries {
		if s.entries[i].ID == e.ID {
			e.UpdatedAt = time.Now()
			s.entries[i] = *e
			return nil
		}
	}
	s.entries = append(s.entries, *e)
	return nil
}

func (s *fakeEntryStore) Delete(e *models.Entry) error {
	for i := range s.entries {
		if s.entries[i].ID == e.ID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *fakeEntryStore) FindByID(userID, entryID uuid.UUID) (*models.Entry, error) {
	for i := range s.entries {
		if s.entries[i].ID == entryID && s.entries[i].UserID == userID {
			e := s.entries[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (s *fakeEntryStore) FindByDate(userID uuid.UUID, date time.Time) (*models.Entry, error) {
	key := dates.Format(date)
	for i := range s.entries {
		if s.entries[i].UserID == userID && dates.Format(s.entries[i].EntryDate) == key {
			e := s.entries[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (s *fakeEntryStore) FindAllDesc(userID uuid.UUID) ([]models.Entry, error) {
	out := s.forUser(userID)
	sort.Slice(out, func(i, j int) bool {
		return dates.Format(out[i].EntryDate) > dates.Format(out[j].EntryDate)
	})
	return out, nil
}

func (s *fakeEntryStore) FindInRange(userID uuid.UUID, start, end *time.Time) ([]models.Entry, error) {
	var out []models.Entry
	for _, e := range s.forUser(userID) {
		key := dates.Format(e.EntryDate)
		if start != nil && key < dates.Format(*start) {
			continue
		}
		if end != nil && key > dates.Format(*end) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return dates.Format(out[i].EntryDate) > dates.Format(out[j].EntryDate)
	})
	return out, nil
}

func (s *fakeEntryStore) FindSince(userID uuid.UUID, since time.Time) ([]models.Entry, error) {
	sinceKey := dates.Format(since)
	var out []models.Entry
	for _, e := range s.forUser(userID) {
		if dates.Format(e.EntryDate) >= sinceKey {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return dates.Format(out[i].EntryDate) < dates.Format(out[j].EntryDate)
	})
	return out, nil
}

func (s *fakeEntryStore) forUser(userID uuid.UUID) []models.Entry {
	var out []models.Entry
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

type fakeTagStore struct {
	entries   *fakeEntryStore
	tags      []models.Tag
	entryTags []models.EntryTag
}

func (s *fakeTagStore) Create(t *models.Tag) error {
	t.CreatedAt = time.Now()
	s.tags = append(s.tags, *t)
	return nil
}

func (s *fakeTagStore) Save(t *models.Tag) error {
	for i := range s.tags {
		if s.tags[i].ID == t.ID {
			s.tags[i] = *t
			return nil
		}
	}
	s.tags = append(s.tags, *t)
	return nil
}

func (s *fakeTagStore) FindByName(userID uuid.UUID, name string) (*models.Tag, error) {
	for i := range s.tags {
		if s.tags[i].UserID == userID && strings.EqualFold(s.tags[i].Name, name) {
			t := s.tags[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (s *fakeTagStore) ListByUser(userID uuid.UUID) ([]models.Tag, error) {
	var out []models.Tag
	for _, t := range s.tags {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UsageCount != out[j].UsageCount {
			return out[i].UsageCount > out[j].UsageCount
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *fakeTagStore) DeleteEntryTags(entryID uuid.UUID) error {
	kept := s.entryTags[:0]
	for _, et := range s.entryTags {
		if et.EntryID != entryID {
			kept = append(kept, et)
		}
	}
	s.entryTags = kept
	return nil
}

func (s *fakeTagStore) CreateEntryTags(links []models.EntryTag) error {
	s.entryTags = append(s.entryTags, links...)
	return nil
}

func (s *fakeTagStore) CountEntryTagRefs(tagID, userID uuid.UUID) (int64, error) {
	var count int64
	for _, et := range s.entryTags {
		if et.TagID != tagID {
			continue
		}
		for _, e := range s.entries.entries {
			if e.ID == et.EntryID && e.UserID == userID {
				count++
				break
			}
		}
	}
	return count, nil
}

func (s *fakeTagStore) EntriesByTag(tagID uuid.UUID) ([]models.Entry, error) {
	var out []models.Entry
	for _, et := range s.entryTags {
		if et.TagID != tagID {
			continue
		}
		for _, e := range s.entries.entries {
			if e.ID == et.EntryID {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

type fakeAIUsageStore struct {
	records []models.AiQueryUsage
}

func (s *fakeAIUsageStore) CountSince(userID uuid.UUID, queryType string, since time.Time) (int64, error) {
	var count int64
	for _, r := range s.records {
		if r.UserID == userID && r.QueryType == queryType && r.QueryTime.After(since) {
			count++
		}
	}
	return count, nil
}

func (s *fakeAIUsageStore) Record(u *models.AiQueryUsage) error {
	if u.QueryTime.IsZero() {
		u.QueryTime = time.Now()
	}
	s.records = append(s.records, *u)
	return nil
}
