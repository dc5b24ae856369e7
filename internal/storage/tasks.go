package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/taskwall/internal/model"
)

// TaskStore persists the whole task collection as one JSON array under KeyTasks.
type TaskStore struct {
	kv  KV
	log *log.Logger
}

func NewTaskStore(kv KV, logger *log.Logger) *TaskStore {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &TaskStore{kv: kv, log: logger}
}

// Load returns tasks in insertion order. A missing key or an undecodable value yields an
// empty collection; only backend failures are returned as errors.
func (s *TaskStore) Load(ctx context.Context) ([]model.Task, error) {
	raw, err := s.kv.Get(ctx, KeyTasks)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return []model.Task{}, nil
	}
	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		s.log.WithError(err).WithField("key", KeyTasks).Warn("discarding malformed task data")
		return []model.Task{}, nil
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// Save overwrites the persisted collection.
func (s *TaskStore) Save(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	payload, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.kv.Set(ctx, KeyTasks, string(payload)); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
