package repository

import (
	"errors"

	"github.com/yukikurage/taskflow/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormKVStore is a GORM implementation of KVStore
type GormKVStore struct {
	db *gorm.DB
}

// NewGormKVStore creates a new KVStore backed by the kv_entries table
func NewGormKVStore(db *gorm.DB) *GormKVStore {
	return &GormKVStore{db: db}
}

// Get returns the value stored under key
func (s *GormKVStore) Get(key string) ([]byte, error) {
	var entry models.KVEntry
	if err := s.db.Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return []byte(entry.Value), nil
}

// Put upserts the value stored under key
func (s *GormKVStore) Put(key string, value []byte) error {
	entry := models.KVEntry{
		Key:   key,
		Value: string(value),
	}

	return s.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}
