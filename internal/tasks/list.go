// Package tasks is the to-do list kept next to the timer. It has no
// interaction with the timer engine.
package tasks

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/model"
	"taskflow/internal/storage"
)

type List struct {
	mu      sync.RWMutex
	storage storage.Storage
	tasks   []model.Task
	now     func() time.Time
	newID   func() string
}

// Load restores the list from storage, starting empty when the stored value
// is absent or corrupt.
func Load(ctx context.Context, s storage.Storage) *List {
	l := &List{
		storage: s,
		tasks:   make([]model.Task, 0),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	if s == nil {
		return l
	}

	var stored []model.Task
	found, err := storage.LoadJSON(ctx, s, storage.KeyTasks, &stored)
	if err != nil {
		log.Printf("task list unreadable, starting empty: %v", err)
	}
	if found {
		l.tasks = stored
	}
	return l
}

// Add appends a task. Empty or whitespace-only text is ignored and returns
// a nil task.
func (l *List) Add(ctx context.Context, text string) (*model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	task := model.Task{
		ID:        l.newID(),
		Text:      text,
		CreatedAt: l.now(),
	}
	l.tasks = append(l.tasks, task)
	return &task, l.persistLocked(ctx)
}

// Toggle flips completion, stamping or clearing CompletedAt. ok is false when
// no task has the id.
func (l *List) Toggle(ctx context.Context, id string) (task *model.Task, ok bool, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexLocked(id)
	if i < 0 {
		return nil, false, nil
	}
	t := &l.tasks[i]
	t.Completed = !t.Completed
	if t.Completed {
		at := l.now()
		t.CompletedAt = &at
	} else {
		t.CompletedAt = nil
	}
	out := *t
	return &out, true, l.persistLocked(ctx)
}

func (l *List) Delete(ctx context.Context, id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexLocked(id)
	if i < 0 {
		return false, nil
	}
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return true, l.persistLocked(ctx)
}

// ClearCompleted removes every completed task and reports how many went.
func (l *List) ClearCompleted(ctx context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := make([]model.Task, 0, len(l.tasks))
	for _, t := range l.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(l.tasks) - len(kept)
	l.tasks = kept
	return removed, l.persistLocked(ctx)
}

// List returns the tasks in insertion order.
func (l *List) List() []model.Task {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

func (l *List) Get(id string) (model.Task, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := l.indexLocked(id); i >= 0 {
		return l.tasks[i], true
	}
	return model.Task{}, false
}

func (l *List) indexLocked(id string) int {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *List) persistLocked(ctx context.Context) error {
	if l.storage == nil {
		return nil
	}
	return storage.SaveJSON(ctx, l.storage, storage.KeyTasks, l.tasks)
}
