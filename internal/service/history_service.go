package service

import (
	"context"
	"log"

	"taskflow/internal/model"
	"taskflow/internal/session"
)

type Stats struct {
	CompletedCount int `json:"completedCount"`
	FocusedSeconds int `json:"focusedSeconds"`
	TotalSessions  int `json:"totalSessions"`
}

// Summarize counts sessions. Only completed sessions contribute to the
// completed count and to focused time.
func Summarize(records []model.SessionRecord) Stats {
	stats := Stats{TotalSessions: len(records)}
	for _, rec := range records {
		if !rec.Completed {
			continue
		}
		stats.CompletedCount++
		stats.FocusedSeconds += rec.DurationSeconds
	}
	return stats
}

type HistoryView struct {
	Sessions []model.SessionRecord `json:"sessions"`
	Stats    Stats                 `json:"stats"`
}

type HistoryService struct {
	store *session.Store
}

func NewHistoryService(store *session.Store) *HistoryService {
	return &HistoryService{store: store}
}

// Get returns the ledger newest first along with its summary.
func (s *HistoryService) Get() HistoryView {
	records := s.store.List()
	return HistoryView{Sessions: records, Stats: Summarize(records)}
}

func (s *HistoryService) Clear(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		log.Printf("persist history: %v", err)
	}
}
