package animator

import (
	"sync"
	"time"
)

// DefaultFrameInterval approximates a 60 Hz rendering callback.
const DefaultFrameInterval = 16 * time.Millisecond

// FrameFunc receives the displayed state on every animation frame.
type FrameFunc func(AnimatedPosition)

// Marker drives one Animator with a frame loop. Exactly one loop runs per
// marker: a new telemetry update preempts the current animation in place, and
// Stop cancels the pending frames so no callback fires after unmount.
type Marker struct {
	mu       sync.Mutex
	animator *Animator
	interval time.Duration
	onFrame  FrameFunc
	now      func() time.Time

	loopStop chan struct{}
	stopped  bool
}

// NewMarker wraps an animator with a frame loop delivering displayed states
// to onFrame.
func NewMarker(a *Animator, onFrame FrameFunc) *Marker {
	return &Marker{
		animator: a,
		interval: DefaultFrameInterval,
		onFrame:  onFrame,
		now:      time.Now,
	}
}

// Update feeds a new telemetry target to the marker and (re)starts the frame
// loop. Returns false when the position was rejected as non-finite.
func (m *Marker) Update(pos AnimatedPosition) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return false
	}
	if !m.animator.OnTelemetryUpdate(pos.Current, pos.Heading, m.now()) {
		return false
	}
	if m.loopStop == nil {
		m.loopStop = make(chan struct{})
		go m.run(m.loopStop)
	}
	return true
}

// Displayed returns the marker's current displayed state.
func (m *Marker) Displayed() AnimatedPosition {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.animator.Displayed()
}

// Stop cancels any pending animation frames. The marker accepts no further
// updates; stale-callback writes after unmount are impossible once Stop
// returns and the loop channel is drained.
func (m *Marker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	if m.loopStop != nil {
		close(m.loopStop)
		m.loopStop = nil
	}
}

func (m *Marker) run(stop chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.mu.Lock()
			if m.stopped {
				m.mu.Unlock()
				return
			}
			pos, done := m.animator.Step(m.now())
			if done && !m.animator.Animating() {
				// Self-cancel; a later Update restarts the loop.
				if m.loopStop != nil {
					close(m.loopStop)
					m.loopStop = nil
				}
				cb := m.onFrame
				m.mu.Unlock()
				if cb != nil {
					cb(pos)
				}
				return
			}
			cb := m.onFrame
			m.mu.Unlock()
			if cb != nil {
				cb(pos)
			}
		}
	}
}
