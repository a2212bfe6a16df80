package service

import (
	"context"
	"time"

	apperrors "taskflow/internal/errors"
	"taskflow/internal/model"
	"taskflow/internal/timer"
)

type TimerService struct {
	engine   *timer.Engine
	settings *SettingsStore
	now      func() time.Time
}

type StateView struct {
	Type            model.PresetKind `json:"type"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Status          string           `json:"status"`
	Label           string           `json:"label"`
	TimeLeftSeconds int              `json:"timeLeft"`
	OriginalSeconds int              `json:"originalTime"`
	IsActive        bool             `json:"isActive"`
	Display         string           `json:"display"`
	Progress        int              `json:"progress"`
	ServerTime      time.Time        `json:"serverTime"`
}

type ActivateInput struct {
	Type    string
	Minutes *int
}

type StopResult struct {
	State   StateView            `json:"state"`
	Session *model.SessionRecord `json:"session,omitempty"`
}

func NewTimerService(engine *timer.Engine, settings *SettingsStore) *TimerService {
	return &TimerService{engine: engine, settings: settings, now: time.Now}
}

func (s *TimerService) GetState() StateView {
	return s.toStateView(s.engine.Snapshot())
}

// Activate switches to a preset or custom timer. Custom minutes default to
// the stored setting and are clamped to [1, 300].
func (s *TimerService) Activate(ctx context.Context, input ActivateInput) (*StateView, *apperrors.APIError) {
	kind := model.PresetKind(input.Type)
	if !model.IsValidKind(kind) {
		return nil, apperrors.BadRequest("invalid_timer_type", "unknown timer type").
			WithDetails(map[string]interface{}{"allowed": presetKinds()})
	}

	cfg := model.PresetConfig(kind)
	if kind == model.KindCustom {
		minutes := s.settings.Get().CustomMinutes
		if input.Minutes != nil {
			minutes = s.settings.SetCustomMinutes(ctx, *input.Minutes).CustomMinutes
		}
		cfg = model.CustomConfig(minutes)
	}

	s.engine.Activate(ctx, cfg)
	view := s.GetState()
	return &view, nil
}

func (s *TimerService) Start() StateView {
	s.engine.Start()
	return s.GetState()
}

func (s *TimerService) Pause() StateView {
	s.engine.Pause()
	return s.GetState()
}

func (s *TimerService) Stop(ctx context.Context) StopResult {
	rec := s.engine.Stop(ctx)
	return StopResult{State: s.GetState(), Session: rec}
}

func (s *TimerService) Reset() StateView {
	s.engine.Reset()
	return s.GetState()
}

// Toggle starts a stopped timer or pauses a running one.
func (s *TimerService) Toggle() StateView {
	if s.engine.State().IsActive {
		return s.Pause()
	}
	return s.Start()
}

// Watch streams state views until ctx is done or the engine closes.
func (s *TimerService) Watch(ctx context.Context) <-chan StateView {
	updates, cancel := s.engine.Subscribe()
	out := make(chan StateView, 1)
	go func() {
		defer close(out)
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case snap, ok := <-updates:
				if !ok {
					return
				}
				select {
				case out <- s.toStateView(snap):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

func (s *TimerService) Presets() []model.Preset {
	presets := model.Presets()
	custom := s.settings.Get().CustomMinutes
	for i := range presets {
		if presets[i].Kind == model.KindCustom {
			presets[i].DurationSeconds = custom * 60
		}
	}
	return presets
}

func presetKinds() []model.PresetKind {
	presets := model.Presets()
	kinds := make([]model.PresetKind, len(presets))
	for i, p := range presets {
		kinds[i] = p.Kind
	}
	return kinds
}

func (s *TimerService) toStateView(snap timer.Snapshot) StateView {
	preset, _ := model.LookupPreset(snap.Type)
	return StateView{
		Type:            snap.Type,
		Name:            preset.Name,
		Description:     preset.Description,
		Status:          snap.Status,
		Label:           model.StatusLabel(snap.TimerState),
		TimeLeftSeconds: snap.TimeLeftSeconds,
		OriginalSeconds: snap.OriginalSeconds,
		IsActive:        snap.IsActive,
		Display:         model.FormatClock(snap.TimeLeftSeconds),
		Progress:        model.Progress(snap.TimeLeftSeconds, snap.OriginalSeconds),
		ServerTime:      s.now().UTC(),
	}
}
