// Package timer implements the countdown state machine.
//
// An Engine owns one TimerState and serializes every operation on it. While
// running it holds a repeating schedule from the clock; the schedule is
// cancelled whenever the timer leaves the running state and every scheduled
// tick carries a generation number so a tick that was already in flight when
// the schedule was cancelled is discarded.
package timer

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"taskflow/internal/clock"
	"taskflow/internal/model"
	"taskflow/internal/notify"
)

// Recorder receives finished sessions. session.Store implements it.
type Recorder interface {
	Append(ctx context.Context, rec model.SessionRecord) (model.SessionRecord, error)
}

type Options struct {
	Clock    clock.Clock
	Interval time.Duration
	Recorder Recorder
	Notifier notify.Notifier
	Initial  model.TimerConfig
}

// Snapshot is the read-only view handed to display consumers.
type Snapshot struct {
	model.TimerState
	Status string `json:"status"`
}

type Engine struct {
	mu       sync.Mutex
	clock    clock.Clock
	interval time.Duration
	recorder Recorder
	notifier notify.Notifier

	state     model.TimerState
	completed bool
	handle    clock.Handle
	gen       uint64

	subsMu  sync.Mutex
	subs    map[int]chan Snapshot
	nextSub int
}

func New(opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}
	initial := opts.Initial
	if initial.Type == "" {
		initial = model.PresetConfig(model.KindPomodoro)
	}
	initial = initial.Normalize()

	return &Engine{
		clock:    opts.Clock,
		interval: opts.Interval,
		recorder: opts.Recorder,
		notifier: opts.Notifier,
		state: model.TimerState{
			Type:            initial.Type,
			TimeLeftSeconds: initial.DurationSeconds,
			OriginalSeconds: initial.DurationSeconds,
		},
		subs: make(map[int]chan Snapshot),
	}
}

func (e *Engine) State() model.TimerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Activate switches configuration. A running timer is stopped first, which
// may record a partial session. The new timer is idle with its full duration.
func (e *Engine) Activate(ctx context.Context, cfg model.TimerConfig) {
	cfg = cfg.Normalize()

	e.mu.Lock()
	defer e.mu.Unlock()

	wasActive := e.state.IsActive
	e.cancelLocked()
	if wasActive {
		e.stopLocked(ctx)
	}
	e.state = model.TimerState{
		Type:            cfg.Type,
		TimeLeftSeconds: cfg.DurationSeconds,
		OriginalSeconds: cfg.DurationSeconds,
	}
	e.completed = false
	e.publishLocked()
}

// Start moves an idle or paused timer to running. It is a no-op when already
// running or when no time is left.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.IsActive || e.state.TimeLeftSeconds == 0 {
		return
	}
	e.cancelLocked()
	e.state.IsActive = true
	gen := e.gen
	e.handle = e.clock.Every(e.interval, func() {
		e.tick(context.Background(), gen, true)
	})
	e.publishLocked()
}

func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.IsActive {
		return
	}
	e.cancelLocked()
	e.state.IsActive = false
	e.publishLocked()
}

// Tick advances a running timer by one second. Reaching zero records a
// completed session and fires the notifier.
func (e *Engine) Tick(ctx context.Context) {
	e.tick(ctx, 0, false)
}

// Stop ends the current activation. A run of at least a minute is recorded as
// an incomplete session; the timer always returns to its full duration. The
// written record, if any, is returned.
func (e *Engine) Stop(ctx context.Context) *model.SessionRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelLocked()
	rec := e.stopLocked(ctx)
	e.publishLocked()
	return rec
}

// Reset restores the full duration without touching history.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelLocked()
	e.state.TimeLeftSeconds = e.state.OriginalSeconds
	e.state.IsActive = false
	e.completed = false
	e.publishLocked()
}

// Close cancels any pending tick schedule and closes all subscriptions.
func (e *Engine) Close() {
	e.mu.Lock()
	e.cancelLocked()
	e.mu.Unlock()

	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	for id, ch := range e.subs {
		close(ch)
		delete(e.subs, id)
	}
}

// Subscribe returns a channel receiving a snapshot after every state change.
// Slow consumers only see the latest snapshot. The returned func cancels the
// subscription.
func (e *Engine) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	e.subsMu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = ch
	e.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			e.subsMu.Lock()
			defer e.subsMu.Unlock()
			if sub, ok := e.subs[id]; ok {
				close(sub)
				delete(e.subs, id)
			}
		})
	}
}

func (e *Engine) tick(ctx context.Context, gen uint64, scheduled bool) {
	e.mu.Lock()
	if scheduled && gen != e.gen {
		e.mu.Unlock()
		return
	}
	if !e.state.IsActive || e.state.TimeLeftSeconds <= 0 {
		e.mu.Unlock()
		return
	}

	e.state.TimeLeftSeconds--
	finished := e.state.TimeLeftSeconds == 0
	var kind model.PresetKind
	if finished {
		e.cancelLocked()
		e.state.IsActive = false
		e.completed = true
		kind = e.state.Type
		e.record(ctx, model.NewSessionRecord(kind, e.state.OriginalSeconds, true, e.clock.Now()))
	}
	e.publishLocked()
	e.mu.Unlock()

	if finished {
		preset, _ := model.LookupPreset(kind)
		title := "Timer Complete!"
		body := fmt.Sprintf("%s session completed!", preset.Name)
		if err := e.notifier.Notify(title, body); err != nil {
			log.Printf("notify completion: %v", err)
		}
	}
}

// stopLocked records a partial session when eligible and resets the
// countdown. A completed activation was already recorded and is only reset.
func (e *Engine) stopLocked(ctx context.Context) *model.SessionRecord {
	var written *model.SessionRecord
	started := e.state.IsActive || e.state.TimeLeftSeconds != e.state.OriginalSeconds
	if started && !e.completed {
		elapsed := e.state.Elapsed()
		if elapsed >= model.MinRecordedSeconds {
			rec := e.record(ctx, model.NewSessionRecord(e.state.Type, elapsed, false, e.clock.Now()))
			written = &rec
		}
	}
	e.state.TimeLeftSeconds = e.state.OriginalSeconds
	e.state.IsActive = false
	e.completed = false
	return written
}

func (e *Engine) record(ctx context.Context, rec model.SessionRecord) model.SessionRecord {
	if e.recorder == nil {
		return rec
	}
	saved, err := e.recorder.Append(ctx, rec)
	if err != nil {
		log.Printf("persist session history: %v", err)
	}
	return saved
}

// cancelLocked stops the tick schedule and invalidates ticks already queued.
func (e *Engine) cancelLocked() {
	if e.handle != nil {
		e.handle.Stop()
		e.handle = nil
	}
	e.gen++
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{TimerState: e.state, Status: e.statusLocked()}
}

func (e *Engine) statusLocked() string {
	switch {
	case e.completed:
		return model.StatusCompleted
	case e.state.IsActive:
		return model.StatusRunning
	case e.state.TimeLeftSeconds == e.state.OriginalSeconds:
		return model.StatusIdle
	default:
		return model.StatusPaused
	}
}

func (e *Engine) publishLocked() {
	snap := e.snapshotLocked()
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	for _, ch := range e.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
