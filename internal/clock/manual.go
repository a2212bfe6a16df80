package clock

import (
	"sync"
	"time"
)

// Manual is a deterministic Clock whose time only moves on Advance.
type Manual struct {
	mu        sync.Mutex
	now       time.Time
	schedules []*manualHandle
}

func NewManual(now time.Time) *Manual {
	return &Manual{now: now}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		interval = time.Second
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	h := &manualHandle{
		clock:    m,
		interval: interval,
		next:     m.now.Add(interval),
		fn:       fn,
	}
	m.schedules = append(m.schedules, h)
	return h
}

// Advance moves time forward by d, firing every due callback in order.
// Callbacks run without the clock lock held so they may stop or create
// schedules.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		var due *manualHandle
		for _, h := range m.schedules {
			if h.next.After(target) {
				continue
			}
			if due == nil || h.next.Before(due.next) {
				due = h
			}
		}
		if due == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = due.next
		due.next = due.next.Add(due.interval)
		fn := due.fn
		m.mu.Unlock()

		fn()
	}
}

// Active reports how many schedules are still live.
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.schedules)
}

func (m *Manual) remove(target *manualHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, h := range m.schedules {
		if h == target {
			m.schedules = append(m.schedules[:i], m.schedules[i+1:]...)
			return
		}
	}
}

type manualHandle struct {
	clock    *Manual
	interval time.Duration
	next     time.Time
	fn       func()
}

func (h *manualHandle) Stop() {
	h.clock.remove(h)
}
