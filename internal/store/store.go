// Package store wraps all database access behind narrow interfaces so
// services can be exercised against in-memory fakes.
package store

import "gorm.io/gorm"

// Stores aggregates every store over one database handle.
type Stores interface {
	Entries() EntryStore
	Tags() TagStore
	AIUsage() AIUsageStore

	// Transaction runs fn against stores bound to a single database
	// transaction. Entry writes and tag resyncs go through here so a
	// failure partway never leaves an entry with stale tags.
	Transaction(fn func(tx Stores) error) error
}

type gormStores struct {
	db      *gorm.DB
	entries EntryStore
	tags    TagStore
	aiUsage AIUsageStore
}

func New(db *gorm.DB) Stores {
	return &gormStores{
		db:      db,
		entries: &gormEntryStore{db: db},
		tags:    &gormTagStore{db: db},
		aiUsage: &gormAIUsageStore{db: db},
	}
}

func (s *gormStores) Entries() EntryStore   { return s.entries }
func (s *gormStores) Tags() TagStore        { return s.tags }
func (s *gormStores) AIUsage() AIUsageStore { return s.aiUsage }

func (s *gormStores) Transaction(fn func(tx Stores) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
