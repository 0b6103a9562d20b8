package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/daybook-app/daybook-server/internal/models"
	"github.com/daybook-app/daybook-server/internal/store"
	"github.com/google/uuid"
)

// hashtagPattern matches #word tokens at the start of the content or
// after a character that is neither '#' nor a word character, so "##x"
// and markdown headings like "# Title" are not tags.
var hashtagPattern = regexp.MustCompile(`(?:^|[^#\w])#(\w+)`)

// TagService extracts hashtags from entry content and keeps the tag
// table and entry-tag links in sync with what entries actually contain.
type TagService struct {
	stores store.Stores
}

func NewTagService(stores store.Stores) *TagService {
	return &TagService{stores: stores}
}

// ExtractHashtags returns the lowercase hashtag names found in content,
// deduplicated, in order of first appearance.
func ExtractHashtags(content string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.ToLower(m[1])
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// ResyncEntryTags replaces the entry's tag links with the hashtags in
// its current content, creating tags that don't exist yet, then
// recomputes usage counts for the user's whole tag set. Runs inside the
// caller's transaction.
func (s *TagService) ResyncEntryTags(tx store.Stores, entryID, userID uuid.UUID, content string) error {
	if err := tx.Tags().DeleteEntryTags(entryID); err != nil {
		return fmt.Errorf("failed to clear entry tags: %w", err)
	}

	names := ExtractHashtags(content)
	if len(names) == 0 {
		return nil
	}

	links := make([]models.EntryTag, 0, len(names))
	for _, name := range names {
		tag, err := tx.Tags().FindByName(userID, name)
		if err != nil {
			return fmt.Errorf("failed to look up tag %q: %w", name, err)
		}
		if tag == nil {
			tag = &models.Tag{ID: uuid.New(), UserID: userID, Name: name}
			if err := tx.Tags().Create(tag); err != nil {
				return fmt.Errorf("failed to create tag %q: %w", name, err)
			}
		}
		links = append(links, models.EntryTag{ID: uuid.New(), EntryID: entryID, TagID: tag.ID})
	}

	if err := tx.Tags().CreateEntryTags(links); err != nil {
		return fmt.Errorf("failed to link entry tags: %w", err)
	}
	return s.RecomputeUsageCounts(tx, userID)
}

// RecomputeUsageCounts refreshes every tag's usage count from the live
// entry-tag links. Tags that drop to zero references are kept so their
// names survive for reuse.
func (s *TagService) RecomputeUsageCounts(tx store.Stores, userID uuid.UUID) error {
	tags, err := tx.Tags().ListByUser(userID)
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}

	for i := range tags {
		count, err := tx.Tags().CountEntryTagRefs(tags[i].ID, userID)
		if err != nil {
			return fmt.Errorf("failed to count tag refs: %w", err)
		}
		if tags[i].UsageCount != int(count) {
			tags[i].UsageCount = int(count)
			if err := tx.Tags().Save(&tags[i]); err != nil {
				return fmt.Errorf("failed to save tag: %w", err)
			}
		}
	}
	return nil
}

// ListUserTags returns the user's tags, most used first.
func (s *TagService) ListUserTags(userID uuid.UUID) ([]models.Tag, error) {
	tags, err := s.stores.Tags().ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// EntriesByTag returns the user's entries carrying the named tag,
// newest first. An unknown tag name yields an empty list.
func (s *TagService) EntriesByTag(userID uuid.UUID, name string) ([]models.Entry, error) {
	name = strings.ToLower(name)

	tag, err := s.stores.Tags().FindByName(userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up tag: %w", err)
	}
	if tag == nil {
		return []models.Entry{}, nil
	}

	linked, err := s.stores.Tags().EntriesByTag(tag.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries: %w", err)
	}

	entries := make([]models.Entry, 0, len(linked))
	for _, e := range linked {
		if e.UserID == userID {
			entries = append(entries, e)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].EntryDate.After(entries[j].EntryDate)
	})
	return entries, nil
}
