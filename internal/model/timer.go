package model

import "time"

type PresetKind string

const (
	KindPomodoro   PresetKind = "pomodoro"
	KindFocus30    PresetKind = "focus30"
	KindFocus60    PresetKind = "focus60"
	KindDeepWork   PresetKind = "deepWork"
	KindShortBreak PresetKind = "shortBreak"
	KindLongBreak  PresetKind = "longBreak"
	KindCustom     PresetKind = "custom"
)

const (
	StatusIdle      = "idle"
	StatusRunning   = "running"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
)

const (
	MinCustomMinutes     = 1
	MaxCustomMinutes     = 300
	DefaultCustomMinutes = 10

	// MinRecordedSeconds is the elapsed time a stopped session needs before
	// it is written to history.
	MinRecordedSeconds = 60
)

type Preset struct {
	Kind            PresetKind `json:"type"`
	Name            string     `json:"name"`
	DurationSeconds int        `json:"durationSeconds"`
	Description     string     `json:"description"`
}

var presets = []Preset{
	{KindPomodoro, "Pomodoro", 25 * 60, "Classic 25-minute focus session"},
	{KindFocus30, "Focus 30", 30 * 60, "30-minute focus session"},
	{KindFocus60, "Focus 60", 60 * 60, "1-hour deep focus session"},
	{KindDeepWork, "Deep Work", 120 * 60, "2-hour deep work session"},
	{KindShortBreak, "Short Break", 5 * 60, "5-minute break"},
	{KindLongBreak, "Long Break", 15 * 60, "15-minute break"},
	{KindCustom, "Custom", DefaultCustomMinutes * 60, "Custom duration timer"},
}

// Presets returns the preset table in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// LookupPreset returns the preset for kind. Unknown kinds resolve to the
// custom preset with ok=false.
func LookupPreset(kind PresetKind) (Preset, bool) {
	for _, p := range presets {
		if p.Kind == kind {
			return p, true
		}
	}
	return presets[len(presets)-1], false
}

func IsValidKind(kind PresetKind) bool {
	_, ok := LookupPreset(kind)
	return ok
}

// ClampCustomMinutes bounds a user-chosen duration to [1, 300] minutes.
func ClampCustomMinutes(minutes int) int {
	if minutes < MinCustomMinutes {
		return MinCustomMinutes
	}
	if minutes > MaxCustomMinutes {
		return MaxCustomMinutes
	}
	return minutes
}

type TimerConfig struct {
	Type            PresetKind `json:"type"`
	DurationSeconds int        `json:"durationSeconds"`
}

// PresetConfig builds the configuration for a fixed preset. Custom and
// unknown kinds fall back to the default custom duration.
func PresetConfig(kind PresetKind) TimerConfig {
	if kind == KindCustom || !IsValidKind(kind) {
		return CustomConfig(DefaultCustomMinutes)
	}
	p, _ := LookupPreset(kind)
	return TimerConfig{Type: p.Kind, DurationSeconds: p.DurationSeconds}
}

func CustomConfig(minutes int) TimerConfig {
	return TimerConfig{Type: KindCustom, DurationSeconds: ClampCustomMinutes(minutes) * 60}
}

// Normalize makes a config safe for activation: preset kinds get their fixed
// duration, everything else is treated as custom and clamped to [60, 18000]
// seconds.
func (c TimerConfig) Normalize() TimerConfig {
	if c.Type != KindCustom && IsValidKind(c.Type) {
		return PresetConfig(c.Type)
	}
	seconds := c.DurationSeconds
	if seconds < MinCustomMinutes*60 {
		seconds = MinCustomMinutes * 60
	}
	if seconds > MaxCustomMinutes*60 {
		seconds = MaxCustomMinutes * 60
	}
	return TimerConfig{Type: KindCustom, DurationSeconds: seconds}
}

type TimerState struct {
	Type            PresetKind `json:"type"`
	TimeLeftSeconds int        `json:"timeLeft"`
	OriginalSeconds int        `json:"originalTime"`
	IsActive        bool       `json:"isActive"`
}

// Elapsed is the time consumed since activation.
func (s TimerState) Elapsed() int {
	return s.OriginalSeconds - s.TimeLeftSeconds
}

type SessionRecord struct {
	ID              int64      `json:"id"`
	Type            PresetKind `json:"type"`
	DurationSeconds int        `json:"duration"`
	Completed       bool       `json:"completed"`
	Timestamp       string     `json:"timestamp"`
	Date            string     `json:"date"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// NewSessionRecord stamps a record with display-formatted time of day and
// calendar date. The id is assigned by the session store.
func NewSessionRecord(kind PresetKind, durationSeconds int, completed bool, now time.Time) SessionRecord {
	return SessionRecord{
		Type:            kind,
		DurationSeconds: durationSeconds,
		Completed:       completed,
		Timestamp:       FormatTimestamp(now),
		Date:            FormatDate(now),
		CreatedAt:       now,
	}
}

type Task struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
}
