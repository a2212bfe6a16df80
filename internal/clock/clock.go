// Package clock supplies the repeating tick schedule that drives the timer.
package clock

import (
	"sync"
	"time"
)

// Handle cancels a schedule created by Every. Stop is idempotent and never
// blocks on an in-flight callback.
type Handle interface {
	Stop()
}

type Clock interface {
	Now() time.Time
	Every(interval time.Duration, fn func()) Handle
}

type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

func (Real) Every(interval time.Duration, fn func()) Handle {
	h := &tickerHandle{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go h.run(fn)
	return h
}

type tickerHandle struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (h *tickerHandle) run(fn func()) {
	defer h.ticker.Stop()
	for {
		select {
		case <-h.done:
			return
		case <-h.ticker.C:
			// Stop may race with a tick that was already delivered.
			select {
			case <-h.done:
				return
			default:
			}
			fn()
		}
	}
}

func (h *tickerHandle) Stop() {
	h.once.Do(func() {
		close(h.done)
	})
}
