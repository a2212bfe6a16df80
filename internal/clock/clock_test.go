package clock

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualFiresOncePerInterval(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	count := 0
	h := m.Every(time.Second, func() { count++ })

	m.Advance(500 * time.Millisecond)
	assert.Equal(t, 0, count)

	m.Advance(3 * time.Second)
	assert.Equal(t, 3, count)

	h.Stop()
	h.Stop()
	m.Advance(5 * time.Second)
	assert.Equal(t, 3, count)
	assert.Equal(t, 0, m.Active())
}

func TestManualCallbackMayStopItself(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	count := 0
	var h Handle
	h = m.Every(time.Second, func() {
		count++
		if count == 2 {
			h.Stop()
		}
	})

	m.Advance(10 * time.Second)
	assert.Equal(t, 2, count)
	assert.Equal(t, time.Unix(10, 0), m.Now())
}

func TestRealEveryStops(t *testing.T) {
	var count atomic.Int32
	h := Real{}.Every(5*time.Millisecond, func() { count.Add(1) })

	require.Eventually(t, func() bool { return count.Load() >= 2 }, time.Second, time.Millisecond)
	h.Stop()
	time.Sleep(20 * time.Millisecond)
	stopped := count.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, count.Load())
}
