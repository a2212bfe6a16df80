// Package storage defines the flat key/value persistence collaborator.
package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
)

const (
	KeyTasks    = "taskflow-tasks-v9"
	KeyHistory  = "taskflow-history-v9"
	KeySettings = "taskflow-settings-v9"
)

type Storage interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// LoadJSON decodes the value stored under key into dst. Absent keys return
// found=false with no error; unreadable or corrupt values return found=false
// with the cause so callers can log it and fall back to defaults.
func LoadJSON(ctx context.Context, s Storage, key string, dst interface{}) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, errors.Wrapf(err, "read %s", key)
	}
	if !ok || len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, errors.Wrapf(err, "decode %s", key)
	}
	return true, nil
}

func SaveJSON(ctx context.Context, s Storage, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return errors.Wrapf(err, "write %s", key)
	}
	return nil
}

// Memory is an in-process Storage, used in tests and as a fallback when the
// database cannot be opened.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.values[key] = v
	return nil
}
