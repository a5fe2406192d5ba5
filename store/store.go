// Package store is the console's durable key/value state. It replaces the
// ambient browser-local-storage access of the old UI with an explicit
// interface handed to whatever needs counter or session state.
package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"p9e.in/vms/models"
)

// Store is the minimal contract the rest of the console depends on.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Clear() error
}

// GormStore keeps entries in the kv_entries table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(key string) (string, bool) {
	var entry models.KVEntry
	if err := s.db.First(&entry, "key = ?", key).Error; err != nil {
		return "", false
	}
	return entry.Value, true
}

func (s *GormStore) Set(key, value string) error {
	entry := models.KVEntry{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *GormStore) Clear() error {
	err := s.db.Where("1 = 1").Delete(&models.KVEntry{}).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	entries map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[string]string)}
}

func (s *MemStore) Get(key string) (string, bool) {
	v, ok := s.entries[key]
	return v, ok
}

func (s *MemStore) Set(key, value string) error {
	s.entries[key] = value
	return nil
}

func (s *MemStore) Clear() error {
	s.entries = make(map[string]string)
	return nil
}
