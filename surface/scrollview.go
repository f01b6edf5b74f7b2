// ABOUTME: Scroll physics for one vertically scrollable content surface
// ABOUTME: Turns wheel drags and flings into drag, deceleration and bounce lifecycle callbacks

// Package surface simulates a touch-style scroll view on top of discrete
// terminal input: drags, release velocity, momentum and rubber-band bounce.
package surface

import (
	"math"
	"time"

	"accordion-pager/gesture"
)

// Velocity and distance thresholds
const (
	stopVelocity    = 5.0 // Points/second below which momentum ends
	velocityWindow  = 100 * time.Millisecond
	springFactor    = 0.35 // Fraction of overscroll recovered per frame while bouncing back
	springSnap      = 0.5  // Overscroll below this snaps to the bound
	overscrollDecay = 0.6  // Velocity kept per frame while coasting past a bound
)

// Phase is the gesture phase of a scroll view
type Phase int

const (
	Idle Phase = iota
	Dragging
	Decelerating
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Decelerating:
		return "decelerating"
	default:
		return "unknown"
	}
}

// Observer receives the lifecycle callbacks of a scroll view
type Observer interface {
	WillBeginDragging(s gesture.Surface)
	WillEndDragging(s gesture.Surface, velocity, target gesture.Point)
	DidEndDragging(s gesture.Surface, decelerate bool)
	DidEndDecelerating(s gesture.Surface)
	DidScroll(s gesture.Surface)
}

// Physics holds the tunable scroll physics
type Physics struct {
	DecelerationRate float64       // Velocity kept per millisecond of momentum
	MinFlingVelocity float64       // Release velocity (points/second) that starts momentum
	BounceResistance float64       // Fraction of a drag applied past a bound
	Frame            time.Duration // Momentum frame interval
}

// DefaultPhysics mirrors a normal-rate touch scroll view
func DefaultPhysics() Physics {
	return Physics{
		DecelerationRate: 0.998,
		MinFlingVelocity: 50,
		BounceResistance: 0.5,
		Frame:            16 * time.Millisecond,
	}
}

// dragSample is the accumulated finger travel at a point in time
type dragSample struct {
	at     time.Time
	travel float64
}

// ScrollView is a single scrollable surface. It is not safe for concurrent use.
type ScrollView struct {
	physics  Physics
	observer Observer

	offset         gesture.Point
	contentHeight  float64
	viewportHeight float64

	phase      Phase
	velocity   float64 // Points/second while decelerating
	travel     float64 // Finger travel of the current drag
	samples    []dragSample
	generation int // Bumped on every gesture change so stale ticks can be ignored

	notifying bool
}

var _ gesture.Surface = (*ScrollView)(nil)

// NewScrollView creates a scroll view reporting to observer (which may be nil)
func NewScrollView(physics Physics, observer Observer) *ScrollView {
	return &ScrollView{
		physics:  physics,
		observer: observer,
	}
}

// SetPhysics replaces the scroll physics
func (v *ScrollView) SetPhysics(p Physics) {
	v.physics = p
}

// Physics returns the current scroll physics
func (v *ScrollView) Physics() Physics { return v.physics }

// ContentOffset returns the current offset
func (v *ScrollView) ContentOffset() gesture.Point { return v.offset }

// SetContentOffset moves the surface and notifies the observer.
// Calls made from inside a scroll notification do not notify again.
func (v *ScrollView) SetContentOffset(p gesture.Point, _ bool) {
	v.offset = p
	v.notifyScroll()
}

// Phase returns the current gesture phase
func (v *ScrollView) Phase() Phase { return v.phase }

// Generation identifies the current gesture; it changes whenever a pending
// release or momentum frame becomes stale.
func (v *ScrollView) Generation() int { return v.generation }

// Velocity returns the momentum velocity in points/second
func (v *ScrollView) Velocity() float64 { return v.velocity }

// ContentHeight returns the total content height
func (v *ScrollView) ContentHeight() float64 { return v.contentHeight }

// ViewportHeight returns the visible height
func (v *ScrollView) ViewportHeight() float64 { return v.viewportHeight }

// SetContentHeight updates the total content height
func (v *ScrollView) SetContentHeight(h float64) {
	v.contentHeight = math.Max(0, h)
	v.settleIntoBounds()
}

// SetViewportHeight updates the visible height
func (v *ScrollView) SetViewportHeight(h float64) {
	v.viewportHeight = math.Max(0, h)
	v.settleIntoBounds()
}

// MaxOffset is the largest in-bounds vertical offset
func (v *ScrollView) MaxOffset() float64 {
	return math.Max(0, v.contentHeight-v.viewportHeight)
}

// Overscroll returns how far the offset is past a bound: negative above the
// top, positive below the bottom, zero when in bounds.
func (v *ScrollView) Overscroll() float64 {
	switch {
	case v.offset.Y < 0:
		return v.offset.Y
	case v.offset.Y > v.MaxOffset():
		return v.offset.Y - v.MaxOffset()
	default:
		return 0
	}
}

// Drag moves the content by dy points as part of a drag gesture.
// Positive dy scrolls toward the end of the content.
func (v *ScrollView) Drag(dy float64, at time.Time) {
	if v.phase != Dragging {
		v.beginDrag()
	}

	v.travel += dy
	v.samples = append(v.samples, dragSample{at: at, travel: v.travel})
	v.trimSamples()

	if (v.offset.Y <= 0 && dy < 0) || (v.offset.Y >= v.MaxOffset() && dy > 0) {
		dy *= v.physics.BounceResistance
	}

	v.offset.Y += dy
	v.generation++
	v.notifyScroll()
}

// Release ends the current drag, starting momentum when the release velocity
// is high enough or the content is past a bound. Returns true when the view
// is decelerating afterwards.
func (v *ScrollView) Release() bool {
	if v.phase != Dragging {
		return v.phase == Decelerating
	}

	velocity := v.releaseVelocity()
	if math.Abs(velocity) < v.physics.MinFlingVelocity {
		velocity = 0
	}

	v.endDrag(velocity)

	return v.phase == Decelerating
}

// Fling starts momentum directly, as a swipe that releases immediately
func (v *ScrollView) Fling(velocity float64) bool {
	if v.phase != Dragging {
		v.beginDrag()
	}

	v.endDrag(velocity)

	return v.phase == Decelerating
}

// Nudge drags by dy and releases without momentum
func (v *ScrollView) Nudge(dy float64, at time.Time) bool {
	v.Drag(dy, at)
	v.samples = nil

	return v.Release()
}

// Step advances momentum by one frame. Returns true while more frames are needed.
func (v *ScrollView) Step(dt time.Duration) bool {
	if v.phase != Decelerating {
		return false
	}

	seconds := dt.Seconds()
	frames := float64(dt) / float64(v.frame())

	if over := v.Overscroll(); over != 0 {
		if v.velocity*over > 0 {
			// Coasting further out: damp hard, then spring back next frames.
			v.offset.Y += v.velocity * seconds
			v.velocity *= math.Pow(overscrollDecay, frames)
			if math.Abs(v.velocity) < stopVelocity {
				v.velocity = 0
			}
		} else {
			v.velocity = 0
			bound := 0.0
			if over > 0 {
				bound = v.MaxOffset()
			}
			v.offset.Y -= over * springFactor
			if math.Abs(v.offset.Y-bound) < springSnap {
				v.offset.Y = bound
			}
		}
	} else {
		v.offset.Y += v.velocity * seconds
		v.velocity *= math.Pow(v.physics.DecelerationRate, dt.Seconds()*1000)
		if math.Abs(v.velocity) < stopVelocity {
			v.velocity = 0
		}
	}

	v.notifyScroll()

	if v.velocity == 0 && v.Overscroll() == 0 {
		v.endDeceleration()
		return false
	}

	return true
}

// Halt stops any gesture in progress, as a finger resting on the content
func (v *ScrollView) Halt() {
	switch v.phase {
	case Dragging:
		v.samples = nil
		v.endDrag(0)
		if v.phase == Decelerating {
			v.velocity = 0
			v.snapIntoBounds()
			v.endDeceleration()
		}
	case Decelerating:
		v.velocity = 0
		v.snapIntoBounds()
		v.endDeceleration()
	}
}

// ProjectTarget predicts where momentum with the given velocity comes to rest
func (v *ScrollView) ProjectTarget(velocity float64) gesture.Point {
	rate := v.physics.DecelerationRate
	distance := 0.0
	if rate > 0 && rate < 1 {
		distance = velocity / 1000 * rate / (1 - rate)
	}

	y := math.Max(0, math.Min(v.offset.Y+distance, v.MaxOffset()))

	return gesture.Point{X: 0, Y: y}
}

func (v *ScrollView) beginDrag() {
	if v.phase == Decelerating {
		v.velocity = 0
		v.endDeceleration()
	}

	v.phase = Dragging
	v.generation++
	v.travel = 0
	v.samples = v.samples[:0]

	if v.observer != nil {
		v.observer.WillBeginDragging(v)
	}
}

func (v *ScrollView) endDrag(velocity float64) {
	target := v.ProjectTarget(velocity)
	if v.observer != nil {
		v.observer.WillEndDragging(v, gesture.Point{X: 0, Y: velocity}, target)
	}

	decelerate := velocity != 0 || v.Overscroll() != 0

	v.generation++
	v.velocity = velocity
	v.samples = nil

	if decelerate {
		v.phase = Decelerating
	} else {
		v.phase = Idle
	}

	if v.observer != nil {
		v.observer.DidEndDragging(v, decelerate)
	}
}

func (v *ScrollView) endDeceleration() {
	v.phase = Idle
	v.generation++

	if v.observer != nil {
		v.observer.DidEndDecelerating(v)
	}
}

// releaseVelocity estimates finger velocity from the recent drag samples
func (v *ScrollView) releaseVelocity() float64 {
	if len(v.samples) < 2 {
		return 0
	}

	first := v.samples[0]
	last := v.samples[len(v.samples)-1]

	span := last.at.Sub(first.at)
	if span < v.frame() {
		span = v.frame()
	}

	return (last.travel - first.travel) / span.Seconds()
}

// trimSamples keeps only samples inside the velocity window
func (v *ScrollView) trimSamples() {
	last := v.samples[len(v.samples)-1].at

	i := 0
	for i < len(v.samples)-1 && last.Sub(v.samples[i].at) > velocityWindow {
		i++
	}

	v.samples = v.samples[i:]
}

// settleIntoBounds pulls an idle view back inside its content after a resize
func (v *ScrollView) settleIntoBounds() {
	if v.phase != Idle || v.offset.Y <= v.MaxOffset() {
		return
	}

	v.offset.Y = v.MaxOffset()
	v.notifyScroll()
}

func (v *ScrollView) snapIntoBounds() {
	switch over := v.Overscroll(); {
	case over < 0:
		v.offset.Y = 0
	case over > 0:
		v.offset.Y = v.MaxOffset()
	default:
		return
	}

	v.notifyScroll()
}

func (v *ScrollView) notifyScroll() {
	if v.observer == nil || v.notifying {
		return
	}

	v.notifying = true
	defer func() { v.notifying = false }()

	v.observer.DidScroll(v)
}

func (v *ScrollView) frame() time.Duration {
	if v.physics.Frame <= 0 {
		return DefaultPhysics().Frame
	}

	return v.physics.Frame
}
