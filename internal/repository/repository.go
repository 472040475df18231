package repository

import (
	"errors"

	"github.com/yukikurage/taskflow/internal/models"
)

// ErrKeyNotFound is returned by KVStore.Get when the key has never been written.
var ErrKeyNotFound = errors.New("key not found")

// KVStore defines a durable key-value slot store
type KVStore interface {
	// Get returns the value stored under key, or ErrKeyNotFound
	Get(key string) ([]byte, error)

	// Put replaces the value stored under key
	Put(key string, value []byte) error
}

// TaskRepository defines the interface for persisting the task collection
type TaskRepository interface {
	// Load returns the persisted collection, empty when nothing has been saved yet
	Load() ([]models.Task, error)

	// Save replaces the persisted collection
	Save(tasks []models.Task) error
}
