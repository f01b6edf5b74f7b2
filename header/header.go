// ABOUTME: Accordion header state machine that arbitrates scroll deltas
// ABOUTME: Clamps the header height to its bounds and schedules deceleration transitions

// Package header owns the collapsible accordion header's height and decides,
// for every scroll delta, whether the header or the content absorbs it.
package header

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"time"
)

// Default tuning values
const (
	DefaultMinHeight      = 40.0
	DefaultMaxHeight      = 150.0
	DefaultSnapThreshold  = 2.0  // Predicted travel above this snaps the header fully open
	DefaultDurationFactor = 0.05 // Seconds per unit of relative height change
)

// ErrInvalidBounds is returned when the minimum height exceeds the maximum
var ErrInvalidBounds = errors.New("header: min height exceeds max height")

// Direction is the vertical direction a content surface is moving in
type Direction int

const (
	Downward Direction = iota // Content pulled down, header expands
	Upward                    // Content pushed up, header collapses
)

func (d Direction) String() string {
	switch d {
	case Downward:
		return "down"
	case Upward:
		return "up"
	default:
		return "unknown"
	}
}

// Request carries one arbitration query from a content surface
type Request struct {
	OffsetY                   float64   // Offset change since the last settled offset
	Direction                 Direction // Classified scroll direction
	IsDecelerating            bool      // True during the momentum phase
	PredictedRemainingOffsetY float64   // Predicted target minus current offset
}

// Delegate is the capability every page consults before letting its content scroll
type Delegate interface {
	Decide(req Request) bool
}

// Arbitrate asks the delegate whether the content may scroll.
// Without a delegate the content always scrolls; a nil pointer stored in the
// interface counts as no delegate.
func Arbitrate(d Delegate, req Request) bool {
	if d == nil {
		return true
	}
	if v := reflect.ValueOf(d); v.Kind() == reflect.Pointer && v.IsNil() {
		return true
	}

	return d.Decide(req)
}

// Sink receives every header height change (e.g. a layout constraint)
type Sink interface {
	SetHeight(height float64)
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(height float64)

// SetHeight calls f(height)
func (f SinkFunc) SetHeight(height float64) {
	f(height)
}

// Transition is an animated height change that commits when completed
type Transition struct {
	ID       uint64
	From     float64
	To       float64
	Duration time.Duration
}

// Scheduler runs transitions and reports back through State.Complete
type Scheduler interface {
	Schedule(t Transition)
}

// Config holds construction parameters for a State
type Config struct {
	MinHeight      float64
	MaxHeight      float64
	InitialHeight  float64 // Clamped into [MinHeight, MaxHeight]; zero means MaxHeight
	SnapThreshold  float64
	DurationFactor float64
	Policy         Policy
}

// DefaultConfig returns the header configuration used by the demo screen
func DefaultConfig() Config {
	return Config{
		MinHeight:      DefaultMinHeight,
		MaxHeight:      DefaultMaxHeight,
		InitialHeight:  DefaultMaxHeight,
		SnapThreshold:  DefaultSnapThreshold,
		DurationFactor: DefaultDurationFactor,
		Policy:         PolicyCancel,
	}
}

// State is the header state machine. It is not safe for concurrent use;
// all calls are expected from the UI goroutine.
type State struct {
	minHeight      float64
	maxHeight      float64
	current        float64
	snapThreshold  float64
	durationFactor float64
	policy         Policy

	sink      Sink
	scheduler Scheduler
	debugf    func(string, ...interface{})

	nextID   uint64
	inFlight map[uint64]Transition
}

// New creates a header state. A nil scheduler commits transitions immediately.
func New(cfg Config, sink Sink, scheduler Scheduler) (*State, error) {
	if cfg.MinHeight > cfg.MaxHeight {
		return nil, fmt.Errorf("%w: min=%.2f max=%.2f", ErrInvalidBounds, cfg.MinHeight, cfg.MaxHeight)
	}

	initial := cfg.InitialHeight
	if initial == 0 {
		initial = cfg.MaxHeight
	}

	s := &State{
		minHeight:      cfg.MinHeight,
		maxHeight:      cfg.MaxHeight,
		current:        clamp(initial, cfg.MinHeight, cfg.MaxHeight),
		snapThreshold:  cfg.SnapThreshold,
		durationFactor: cfg.DurationFactor,
		policy:         cfg.Policy,
		sink:           sink,
		scheduler:      scheduler,
		debugf:         func(string, ...interface{}) {},
		inFlight:       make(map[uint64]Transition),
	}

	if s.sink != nil {
		s.sink.SetHeight(s.current)
	}

	return s, nil
}

// SetDebugf installs a debug logger
func (s *State) SetDebugf(debugf func(string, ...interface{})) {
	if debugf != nil {
		s.debugf = debugf
	}
}

// Height returns the committed header height
func (s *State) Height() float64 { return s.current }

// MinHeight returns the lower height bound
func (s *State) MinHeight() float64 { return s.minHeight }

// MaxHeight returns the upper height bound
func (s *State) MaxHeight() float64 { return s.maxHeight }

// Policy returns the in-flight transition policy
func (s *State) Policy() Policy { return s.policy }

// Pending returns the number of transitions that have not completed yet
func (s *State) Pending() int { return len(s.inFlight) }

// Decide reports whether the content surface may scroll by req.OffsetY.
// When it returns false the header has absorbed the delta.
func (s *State) Decide(req Request) bool {
	proposed := s.current - req.OffsetY

	if proposed <= s.minHeight {
		s.setCurrent(s.minHeight)
		return true
	}

	if proposed >= s.maxHeight {
		s.setCurrent(s.maxHeight)
		return true
	}

	if !req.IsDecelerating {
		s.setCurrent(proposed)
		return false
	}

	if req.Direction == Downward {
		s.beginTransition(req.PredictedRemainingOffsetY)
	}

	// Upward momentum inside the elastic range is consumed without moving the header.
	return false
}

// Complete commits the transition with the given id.
// Returns false for cancelled or unknown transitions.
func (s *State) Complete(id uint64) bool {
	t, ok := s.inFlight[id]
	if !ok {
		s.debugf("[HEADER] Ignoring completion of transition %d (cancelled or unknown)", id)
		return false
	}

	delete(s.inFlight, id)

	s.current = clamp(t.To, s.minHeight, s.maxHeight)
	s.writeSink(s.current)
	s.debugf("[HEADER] Transition %d committed height %.2f", id, s.current)

	return true
}

// Cancel drops every in-flight transition and restores the sink to the committed height
func (s *State) Cancel() {
	if len(s.inFlight) == 0 {
		return
	}

	s.debugf("[HEADER] Cancelling %d in-flight transition(s)", len(s.inFlight))
	clear(s.inFlight)
	s.writeSink(s.current)
}

// setCurrent applies an immediate height change
func (s *State) setCurrent(height float64) {
	if s.policy == PolicyCancel && len(s.inFlight) > 0 {
		s.debugf("[HEADER] Immediate height change cancels %d transition(s)", len(s.inFlight))
		clear(s.inFlight)
	}

	s.current = height
	s.writeSink(height)
}

// beginTransition animates toward the predicted resting height
func (s *State) beginTransition(predicted float64) {
	target := math.Min(s.current+predicted, s.maxHeight)
	if predicted > s.snapThreshold {
		target = s.maxHeight
	}

	// A negative prediction must not push the header below its minimum.
	target = math.Max(target, s.minHeight)

	if s.policy == PolicyCancel {
		for id, t := range s.inFlight {
			if t.To == target {
				// Already heading there; keep the running transition.
				return
			}

			delete(s.inFlight, id)
		}
	}

	s.nextID++
	t := Transition{
		ID:       s.nextID,
		From:     s.current,
		To:       target,
		Duration: s.transitionDuration(target),
	}

	s.writeSink(target)
	s.debugf("[HEADER] Transition %d: %.2f -> %.2f over %v (predicted %.2f)", t.ID, t.From, t.To, t.Duration, predicted)

	s.inFlight[t.ID] = t
	if s.scheduler == nil {
		s.Complete(t.ID)
		return
	}

	s.scheduler.Schedule(t)
}

// transitionDuration scales with the relative height change
func (s *State) transitionDuration(target float64) time.Duration {
	if s.current <= 0 {
		return 0
	}

	seconds := s.durationFactor * (target - s.current) / s.current
	if seconds <= 0 {
		return 0
	}

	return time.Duration(seconds * float64(time.Second))
}

func (s *State) writeSink(height float64) {
	if s.sink != nil {
		s.sink.SetHeight(height)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
