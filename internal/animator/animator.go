// Package animator smooths discrete vehicle position reports, arriving at
// irregular intervals, into continuous marker motion with correct heading,
// and builds the traffic-colored path primitives handed to the map renderer.
package animator

import (
	"time"

	"tripwatch.villagelink.org/internal/models"
	"tripwatch.villagelink.org/internal/utils"
)

// DefaultDuration is the fixed interpolation window for one telemetry update.
const DefaultDuration = 500 * time.Millisecond

// AnimatedPosition is the view-local displayed state of one marker. It is
// owned exclusively by the Animator rendering that marker and is never shared.
type AnimatedPosition struct {
	Current models.Coordinate `json:"current"`
	Heading float64           `json:"heading"`
}

// Animator interpolates a single marker between telemetry updates. Each new
// update restarts the interpolation from the currently displayed position,
// not from the previous target, so updates arriving faster than the window
// truncate the running animation without a visual jump.
//
// Animator is not safe for concurrent use; the Marker frame loop serializes
// access to it.
type Animator struct {
	duration time.Duration

	displayed AnimatedPosition
	start     AnimatedPosition
	target    AnimatedPosition
	startedAt time.Time
	animating bool
}

// NewAnimator creates an animator showing the given initial state.
func NewAnimator(initial models.Coordinate, heading float64) *Animator {
	return NewAnimatorWithDuration(initial, heading, DefaultDuration)
}

func NewAnimatorWithDuration(initial models.Coordinate, heading float64, duration time.Duration) *Animator {
	if duration <= 0 {
		duration = DefaultDuration
	}
	pos := AnimatedPosition{Current: initial, Heading: heading}
	return &Animator{
		duration:  duration,
		displayed: pos,
		start:     pos,
		target:    pos,
	}
}

// OnTelemetryUpdate begins interpolating toward a new target. Non-finite
// coordinates are rejected without disturbing a running animation. Duplicate
// and stale updates are accepted; last write wins.
func (a *Animator) OnTelemetryUpdate(position models.Coordinate, heading float64, now time.Time) bool {
	if !position.IsFinite() {
		return false
	}

	a.start = a.displayed
	a.target = AnimatedPosition{Current: position, Heading: heading}
	a.startedAt = now
	a.animating = true
	return true
}

// Step advances the animation to the given instant and returns the displayed
// state. done is true once the target has been reached; the animation
// self-cancels at that point.
func (a *Animator) Step(now time.Time) (pos AnimatedPosition, done bool) {
	if !a.animating {
		return a.displayed, true
	}

	progress := float64(now.Sub(a.startedAt)) / float64(a.duration)
	if progress >= 1 {
		a.displayed = a.target
		a.animating = false
		return a.displayed, true
	}
	if progress < 0 {
		progress = 0
	}

	eased := easeOutCubic(progress)
	a.displayed = AnimatedPosition{
		Current: models.Coordinate{
			Lat: a.start.Current.Lat + (a.target.Current.Lat-a.start.Current.Lat)*eased,
			Lon: a.start.Current.Lon + (a.target.Current.Lon-a.start.Current.Lon)*eased,
		},
		Heading: interpolateHeading(a.start.Heading, a.target.Heading, eased),
	}
	return a.displayed, false
}

// Displayed returns the current displayed state without advancing time.
func (a *Animator) Displayed() AnimatedPosition {
	return a.displayed
}

// Animating reports whether an interpolation is in flight.
func (a *Animator) Animating() bool {
	return a.animating
}

// easeOutCubic starts fast and decelerates toward the target.
func easeOutCubic(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv*inv
}

// interpolateHeading sweeps along the shortest angular path, so a turn from
// 350° to 10° passes through 0° rather than turning 340° the long way round.
func interpolateHeading(from, to, factor float64) float64 {
	delta := utils.NormalizeHeadingDelta(from, to)
	heading := from + delta*factor
	for heading < 0 {
		heading += 360
	}
	for heading >= 360 {
		heading -= 360
	}
	return heading
}
