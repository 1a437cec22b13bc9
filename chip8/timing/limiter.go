package timing

import "time"

// TargetFPS is the frame rate the host drives the core at. Timers tick once
// per frame, so this doubles as the timer frequency.
const TargetFPS = 60

// FrameDuration returns the target duration of a single frame.
func FrameDuration() time.Duration {
	return time.Second / TargetFPS
}

// Limiter controls frame rate timing for emulation.
type Limiter interface {
	// WaitForNextFrame blocks until it's time for the next frame.
	// Returns immediately if timing is behind schedule.
	WaitForNextFrame()

	// Reset resets the timing state, useful after pauses.
	Reset()
}

// NewNoOpLimiter returns a limiter that doesn't limit (for headless mode).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// NewFrameLimiter returns a limiter pacing frames at TargetFPS.
func NewFrameLimiter() Limiter {
	return &frameLimiter{interval: FrameDuration()}
}

type frameLimiter struct {
	interval time.Duration
	next     time.Time
}

func (f *frameLimiter) WaitForNextFrame() {
	now := time.Now()
	if f.next.IsZero() || now.After(f.next.Add(f.interval)) {
		// First frame, or we fell behind: don't try to catch up.
		f.next = now.Add(f.interval)
		return
	}

	time.Sleep(f.next.Sub(now))
	f.next = f.next.Add(f.interval)
}

func (f *frameLimiter) Reset() {
	f.next = time.Time{}
}
