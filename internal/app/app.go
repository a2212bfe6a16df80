// Package app wires configuration, storage and the workspace for the
// binaries under cmd/.
package app

import (
	"context"
	"database/sql"
	"log"

	"taskflow/internal/clock"
	"taskflow/internal/config"
	"taskflow/internal/db"
	"taskflow/internal/handler"
	"taskflow/internal/notify"
	"taskflow/internal/repository"
	"taskflow/internal/service"
	"taskflow/internal/storage"
)

type App struct {
	Config    config.Config
	Workspace *service.Workspace

	Timer    *service.TimerService
	Tasks    *service.TaskService
	History  *service.HistoryService
	Settings *service.SettingsStore

	database *sql.DB
}

// Open builds the workspace on top of the SQLite store at cfg.DBPath. When
// the database cannot be opened the app keeps running on in-memory storage.
func Open(ctx context.Context, cfg config.Config) *App {
	a := &App{Config: cfg}

	var store storage.Storage
	database, err := openDatabase(cfg.DBPath)
	if err != nil {
		log.Printf("storage unavailable, state will not persist: %v", err)
		store = storage.NewMemory()
	} else {
		a.database = database
		store = repository.NewKVRepository(database)
	}

	a.Workspace = service.NewWorkspace(ctx, service.Options{
		Storage:              store,
		Clock:                clock.Real{},
		TickInterval:         cfg.TickInterval,
		Notifier:             notify.FromName(cfg.Notify),
		DefaultCustomMinutes: cfg.CustomMinutes,
	})
	a.Timer = service.NewTimerService(a.Workspace.Engine, a.Workspace.Settings)
	a.Tasks = service.NewTaskService(a.Workspace.Tasks)
	a.History = service.NewHistoryService(a.Workspace.History)
	a.Settings = a.Workspace.Settings
	return a
}

func openDatabase(path string) (*sql.DB, error) {
	database, err := db.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(database, db.Migrations); err != nil {
		_ = database.Close()
		return nil, err
	}
	return database, nil
}

// Handlers returns the HTTP handlers over the app's services.
func (a *App) Handlers() (*handler.TimerHandler, *handler.TaskHandler, *handler.HistoryHandler, *handler.SettingsHandler) {
	return handler.NewTimerHandler(a.Timer),
		handler.NewTaskHandler(a.Tasks),
		handler.NewHistoryHandler(a.History),
		handler.NewSettingsHandler(a.Settings)
}

// ApplyConfig picks up settings that can change without a restart.
func (a *App) ApplyConfig(cfg config.Config) {
	if cfg.CustomMinutes != a.Config.CustomMinutes {
		log.Printf("default custom duration now %d min", cfg.CustomMinutes)
		a.Settings.SetDefaultCustomMinutes(cfg.CustomMinutes)
	}
	a.Config = cfg
}

func (a *App) Close() {
	a.Workspace.Close()
	if a.database != nil {
		if err := a.database.Close(); err != nil {
			log.Printf("close database: %v", err)
		}
	}
}
