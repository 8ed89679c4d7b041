package render

import (
	"time"

	"github.com/loov/hrtime"
)

// FrameMeter reports the frame rate once per interval.
type FrameMeter struct {
	interval time.Duration
	now      func() time.Duration

	start  time.Duration
	frames int
}

func NewFrameMeter(interval time.Duration) *FrameMeter {
	return newFrameMeter(interval, hrtime.Now)
}

func newFrameMeter(interval time.Duration, now func() time.Duration) *FrameMeter {
	return &FrameMeter{interval: interval, now: now, start: now()}
}

// Tick records one frame. Once an interval has passed it returns the frame
// rate over that interval and starts a new one.
func (m *FrameMeter) Tick() (fps float64, ok bool) {
	m.frames++

	elapsed := m.now() - m.start
	if elapsed < m.interval {
		return 0, false
	}

	fps = float64(m.frames) / elapsed.Seconds()
	m.frames = 0
	m.start += elapsed
	return fps, true
}
