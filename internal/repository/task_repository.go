package repository

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yukikurage/taskflow/internal/models"
)

// KVTaskRepository stores the whole task collection as a JSON array under a single key
type KVTaskRepository struct {
	kv  KVStore
	key string
}

// NewTaskRepository creates a new TaskRepository on top of kv
func NewTaskRepository(kv KVStore, key string) TaskRepository {
	return &KVTaskRepository{kv: kv, key: key}
}

// Load decodes the stored collection
func (r *KVTaskRepository) Load() ([]models.Task, error) {
	data, err := r.kv.Get(r.key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return []models.Task{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", r.key, err)
	}

	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", r.key, err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// Save encodes and writes the full collection
func (r *KVTaskRepository) Save(tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}

	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}

	if err := r.kv.Put(r.key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", r.key, err)
	}
	return nil
}
