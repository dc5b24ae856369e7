package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"
)

// IDSet is a set of task ids.
type IDSet map[int64]struct{}

func NewIDSet(ids ...int64) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Add(id int64) {
	s[id] = struct{}{}
}

func (s IDSet) Sorted() []int64 {
	out := make([]int64, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// NotifiedStore persists the ids of tasks that already produced a due alert.
type NotifiedStore struct {
	kv  KV
	log *log.Logger
}

func NewNotifiedStore(kv KV, logger *log.Logger) *NotifiedStore {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &NotifiedStore{kv: kv, log: logger}
}

// Load fails open the same way TaskStore.Load does.
func (s *NotifiedStore) Load(ctx context.Context) (IDSet, error) {
	raw, err := s.kv.Get(ctx, KeyNotifiedTaskIDs)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return NewIDSet(), nil
		}
		return nil, fmt.Errorf("load notified ids: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return NewIDSet(), nil
	}
	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.log.WithError(err).WithField("key", KeyNotifiedTaskIDs).Warn("discarding malformed notified ids")
		return NewIDSet(), nil
	}
	return NewIDSet(ids...), nil
}

func (s *NotifiedStore) Save(ctx context.Context, set IDSet) error {
	payload, err := json.Marshal(set.Sorted())
	if err != nil {
		return fmt.Errorf("encode notified ids: %w", err)
	}
	if err := s.kv.Set(ctx, KeyNotifiedTaskIDs, string(payload)); err != nil {
		return fmt.Errorf("save notified ids: %w", err)
	}
	return nil
}
