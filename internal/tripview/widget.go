package tripview

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tripwatch.villagelink.org/internal/animator"
	"tripwatch.villagelink.org/internal/estimator"
	"tripwatch.villagelink.org/internal/feed"
	"tripwatch.villagelink.org/internal/models"
)

// Options configure one tracking widget.
type Options struct {
	DesiredPath []string
	Layout      Layout
	ShowHeader  bool
}

// Widget maintains a live composed view for one desired path. A single
// event-loop goroutine reacts to two independent timers: telemetry pushes
// (recompute everything) and a one-minute clock tick (refresh ETA strings
// only; stored telemetry and stop indices are never touched by the clock).
//
// Telemetry delivery has no backpressure: a pending update is replaced, not
// queued, when a newer one arrives.
type Widget struct {
	opts     Options
	composer *Composer
	renderer animator.MapRenderer
	logger   *slog.Logger

	updates chan []models.VehicleTelemetry
	stop    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
	sub     *feed.Subscription

	mu       sync.RWMutex
	view     View
	vehicles []models.VehicleTelemetry
	anim     *animator.Animator
	marker   *animator.Marker
	markedID string
}

// NewWidget creates a widget; renderer may be nil when no map substrate is
// attached.
func NewWidget(opts Options, composer *Composer, renderer animator.MapRenderer, logger *slog.Logger) *Widget {
	w := &Widget{
		opts:     opts,
		composer: composer,
		renderer: renderer,
		logger:   logger,
		updates:  make(chan []models.VehicleTelemetry, 1),
		stop:     make(chan struct{}),
	}
	w.view = composer.Compose(opts.DesiredPath, opts.Layout, opts.ShowHeader, nil, nil, time.Now())
	return w
}

// Start subscribes the widget to the feed and launches the event loop.
func (w *Widget) Start(ctx context.Context, manager *feed.Manager) {
	w.sub = manager.Subscribe(nil, w.offerUpdate)

	w.wg.Add(1)
	go w.run(ctx)
}

// offerUpdate replaces any pending update with the newest vehicle list.
func (w *Widget) offerUpdate(vehicles []models.VehicleTelemetry) {
	for {
		select {
		case w.updates <- vehicles:
			return
		case <-w.updates:
			// drop the stale pending update and retry
		}
	}
}

func (w *Widget) run(ctx context.Context) {
	defer w.wg.Done()

	// ETA strings refresh on wall-clock minute boundaries, not a minute
	// after widget start.
	first := time.NewTimer(nextMinuteDelay(time.Now()))
	defer first.Stop()
	firstC := first.C

	var clock *time.Ticker
	var clockC <-chan time.Time
	defer func() {
		if clock != nil {
			clock.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case vehicles := <-w.updates:
			w.onTelemetry(vehicles)
		case <-firstC:
			firstC = nil
			clock = time.NewTicker(time.Minute)
			clockC = clock.C
			w.refreshClock()
		case <-clockC:
			w.refreshClock()
		}
	}
}

// nextMinuteDelay is the wait until the next wall-clock minute boundary.
func nextMinuteDelay(now time.Time) time.Duration {
	return now.Truncate(time.Minute).Add(time.Minute).Sub(now)
}

// Stop tears the widget down, cancelling the marker's pending animation
// frames so nothing writes to the view after unmount.
func (w *Widget) Stop() {
	w.once.Do(func() { close(w.stop) })
	w.wg.Wait()

	if w.sub != nil {
		w.sub.Cancel()
	}

	w.mu.Lock()
	if w.marker != nil {
		w.marker.Stop()
		w.marker = nil
	}
	markedID := w.markedID
	w.mu.Unlock()

	if w.renderer != nil && markedID != "" {
		w.renderer.RemoveMarker(markedID)
	}
}

// Refresh recomputes the view from the given vehicle list and returns it.
// Pull-style callers use it to get a current view without waiting for the
// next feed push; it is safe alongside the event loop.
func (w *Widget) Refresh(vehicles []models.VehicleTelemetry) View {
	w.onTelemetry(vehicles)
	return w.View()
}

// View returns the current composed view.
func (w *Widget) View() View {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.view
}

func (w *Widget) onTelemetry(vehicles []models.VehicleTelemetry) {
	now := time.Now()

	w.mu.Lock()
	w.vehicles = vehicles
	displayed := w.animateMarker(vehicles)
	w.view = w.composer.Compose(w.opts.DesiredPath, w.opts.Layout, w.opts.ShowHeader, vehicles, displayed, now)
	view := w.view
	w.mu.Unlock()

	w.push(view)
}

// refreshClock recomputes the view from the stored telemetry so ETA strings
// track the wall clock. It reads, and never writes, telemetry state.
func (w *Widget) refreshClock() {
	now := time.Now()

	w.mu.Lock()
	var displayed *animator.AnimatedPosition
	if w.anim != nil {
		pos := w.anim.Displayed()
		displayed = &pos
	}
	w.view = w.composer.Compose(w.opts.DesiredPath, w.opts.Layout, w.opts.ShowHeader, w.vehicles, displayed, now)
	view := w.view
	w.mu.Unlock()

	w.push(view)
}

// animateMarker feeds the matched vehicle's position into the per-widget
// animator. Call with w.mu held.
func (w *Widget) animateMarker(vehicles []models.VehicleTelemetry) *animator.AnimatedPosition {
	var tracked *models.VehicleTelemetry
	for i := range vehicles {
		if estimator.MatchesRoute(vehicles[i].Path, w.opts.DesiredPath) {
			tracked = &vehicles[i]
			break
		}
	}
	if tracked == nil {
		return nil
	}

	// Without a renderer no frame loop samples the interpolation, so an
	// animator would stay frozen at its first position. Serve the raw
	// report instead.
	if w.renderer == nil {
		w.markedID = tracked.VehicleID
		return nil
	}

	if w.anim == nil || w.markedID != tracked.VehicleID {
		if w.marker != nil {
			w.marker.Stop()
		}
		w.anim = animator.NewAnimator(tracked.Position, tracked.Heading)
		w.markedID = tracked.VehicleID
		w.marker = animator.NewMarker(w.anim, w.renderFrame)
	}

	w.marker.Update(animator.AnimatedPosition{Current: tracked.Position, Heading: tracked.Heading})

	pos := w.anim.Displayed()
	return &pos
}

// renderFrame pushes one animation frame to the attached map renderer.
func (w *Widget) renderFrame(pos animator.AnimatedPosition) {
	w.mu.RLock()
	id := w.markedID
	view := w.view
	w.mu.RUnlock()

	icon := "bus"
	if view.Marker != nil {
		icon = view.Marker.Icon
	}
	w.renderer.RenderMarker(animator.MarkerPrimitive{
		ID:       id,
		Position: pos.Current,
		Heading:  pos.Heading,
		Icon:     icon,
	})
}

// push republishes the full view to the renderer after a recompute.
func (w *Widget) push(view View) {
	if w.renderer == nil {
		return
	}
	if view.Marker != nil {
		w.renderer.RenderMarker(*view.Marker)
	}
	if len(view.Polylines) > 0 {
		w.renderer.RenderPolylines(view.Polylines)
	}
}
