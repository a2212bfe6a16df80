package service

import (
	"context"
	"log"
	"sync"
	"time"

	"taskflow/internal/clock"
	"taskflow/internal/model"
	"taskflow/internal/notify"
	"taskflow/internal/session"
	"taskflow/internal/storage"
	"taskflow/internal/tasks"
	"taskflow/internal/timer"
)

// Workspace owns the single timer, its history ledger, the task list and the
// persisted settings for one user.
type Workspace struct {
	Engine   *timer.Engine
	History  *session.Store
	Tasks    *tasks.List
	Settings *SettingsStore
}

type Options struct {
	Storage              storage.Storage
	Clock                clock.Clock
	TickInterval         time.Duration
	Notifier             notify.Notifier
	DefaultCustomMinutes int
}

func NewWorkspace(ctx context.Context, opts Options) *Workspace {
	if opts.Storage == nil {
		opts.Storage = storage.NewMemory()
	}
	history := session.Load(ctx, opts.Storage)
	return &Workspace{
		Engine: timer.New(timer.Options{
			Clock:    opts.Clock,
			Interval: opts.TickInterval,
			Recorder: history,
			Notifier: opts.Notifier,
			Initial:  model.PresetConfig(model.KindPomodoro),
		}),
		History:  history,
		Tasks:    tasks.Load(ctx, opts.Storage),
		Settings: LoadSettings(ctx, opts.Storage, opts.DefaultCustomMinutes),
	}
}

func (w *Workspace) Close() {
	w.Engine.Close()
}

type Settings struct {
	CustomMinutes int `json:"customMinutes"`
}

// SettingsStore persists user preferences under the settings key.
type SettingsStore struct {
	mu       sync.RWMutex
	storage  storage.Storage
	settings Settings
}

func LoadSettings(ctx context.Context, s storage.Storage, defaultCustomMinutes int) *SettingsStore {
	if defaultCustomMinutes == 0 {
		defaultCustomMinutes = model.DefaultCustomMinutes
	}
	store := &SettingsStore{
		storage:  s,
		settings: Settings{CustomMinutes: model.ClampCustomMinutes(defaultCustomMinutes)},
	}
	if s == nil {
		return store
	}

	var stored Settings
	found, err := storage.LoadJSON(ctx, s, storage.KeySettings, &stored)
	if err != nil {
		log.Printf("settings unreadable, using defaults: %v", err)
	}
	if found && stored.CustomMinutes > 0 {
		store.settings.CustomMinutes = model.ClampCustomMinutes(stored.CustomMinutes)
	}
	return store
}

func (s *SettingsStore) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetCustomMinutes clamps and stores the custom duration. Persistence
// failures are logged; the new value is kept in memory.
func (s *SettingsStore) SetCustomMinutes(ctx context.Context, minutes int) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.CustomMinutes = model.ClampCustomMinutes(minutes)
	if s.storage != nil {
		if err := storage.SaveJSON(ctx, s.storage, storage.KeySettings, s.settings); err != nil {
			log.Printf("persist settings: %v", err)
		}
	}
	return s.settings
}

// SetDefaultCustomMinutes replaces the in-memory value only, used when the
// configured default changes at runtime.
func (s *SettingsStore) SetDefaultCustomMinutes(minutes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.CustomMinutes = model.ClampCustomMinutes(minutes)
}

func (w *Workspace) SetCustomMinutes(ctx context.Context, minutes int) Settings {
	return w.Settings.SetCustomMinutes(ctx, minutes)
}
