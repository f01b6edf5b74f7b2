// ABOUTME: Tests for the accordion header state machine
// ABOUTME: Covers clamping, drag absorption, deceleration snapping and transition policies

package header

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// recordingSink remembers every height written to it
type recordingSink struct {
	writes []float64
}

func (r *recordingSink) SetHeight(h float64) {
	r.writes = append(r.writes, h)
}

func (r *recordingSink) last() float64 {
	return r.writes[len(r.writes)-1]
}

// queueScheduler holds transitions until the test completes them
type queueScheduler struct {
	queue []Transition
}

func (q *queueScheduler) Schedule(t Transition) {
	q.queue = append(q.queue, t)
}

func newTestState(t *testing.T, current float64, policy Policy) (*State, *recordingSink, *queueScheduler) {
	t.Helper()

	sink := &recordingSink{}
	sched := &queueScheduler{}
	cfg := DefaultConfig()
	cfg.InitialHeight = current
	cfg.Policy = policy

	s, err := New(cfg, sink, sched)
	require.NoError(t, err)

	return s, sink, sched
}

func TestNew_InvalidBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinHeight = 200

	s, err := New(cfg, nil, nil)
	require.Nil(t, s)
	require.True(t, errors.Is(err, ErrInvalidBounds), "expected ErrInvalidBounds, got %v", err)
}

func TestNew_InitialHeight(t *testing.T) {
	tests := []struct {
		name    string
		initial float64
		want    float64
	}{
		{"zero defaults to max", 0, 150},
		{"inside range", 90, 90},
		{"below min clamps", 10, 40},
		{"above max clamps", 500, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			cfg := DefaultConfig()
			cfg.InitialHeight = tt.initial

			s, err := New(cfg, sink, nil)
			require.NoError(t, err)
			require.Equal(t, tt.want, s.Height())
			require.Equal(t, tt.want, sink.last(), "sink should receive the initial height")
		})
	}
}

func TestSinkFunc(t *testing.T) {
	var got []float64
	sink := SinkFunc(func(h float64) { got = append(got, h) })

	s, err := New(DefaultConfig(), sink, nil)
	require.NoError(t, err)

	s.Decide(Request{OffsetY: 20, Direction: Upward})

	require.Equal(t, []float64{150, 130}, got)
	require.Equal(t, 130.0, s.Height())
}

func TestDecide_CollapseBoundary(t *testing.T) {
	s, sink, _ := newTestState(t, 45, PolicyCancel)

	ok := s.Decide(Request{OffsetY: 10, Direction: Upward})

	require.True(t, ok, "fully collapsed header lets content scroll")
	require.Equal(t, 40.0, s.Height())
	require.Equal(t, 40.0, sink.last())
}

func TestDecide_ExpandBoundary(t *testing.T) {
	s, sink, _ := newTestState(t, 145, PolicyCancel)

	ok := s.Decide(Request{OffsetY: -10, Direction: Downward})

	require.True(t, ok, "fully expanded header lets content scroll")
	require.Equal(t, 150.0, s.Height())
	require.Equal(t, 150.0, sink.last())
}

func TestDecide_ManualDragAbsorbed(t *testing.T) {
	s, sink, sched := newTestState(t, 100, PolicyCancel)

	ok := s.Decide(Request{OffsetY: 5, Direction: Upward})

	require.False(t, ok, "header absorbs an active drag")
	require.Equal(t, 95.0, s.Height())
	require.Equal(t, 95.0, sink.last())
	require.Empty(t, sched.queue, "manual drag must not animate")
}

func TestDecide_DecelerationSnapsToMax(t *testing.T) {
	s, sink, sched := newTestState(t, 100, PolicyCancel)

	ok := s.Decide(Request{
		OffsetY:                   -1,
		Direction:                 Downward,
		IsDecelerating:            true,
		PredictedRemainingOffsetY: 5,
	})

	require.False(t, ok)
	require.Equal(t, 100.0, s.Height(), "height commits only when the transition completes")
	require.Equal(t, 150.0, sink.last(), "sink receives the target immediately")
	require.Len(t, sched.queue, 1)

	tr := sched.queue[0]
	require.Equal(t, 100.0, tr.From)
	require.Equal(t, 150.0, tr.To)
	require.Equal(t, 25*time.Millisecond, tr.Duration.Round(time.Millisecond))

	require.True(t, s.Complete(tr.ID))
	require.Equal(t, 150.0, s.Height(), "snap commits max, not 105")
}

func TestDecide_DecelerationFollowsSmallPrediction(t *testing.T) {
	s, sink, sched := newTestState(t, 100, PolicyCancel)

	s.Decide(Request{
		OffsetY:                   -1,
		Direction:                 Downward,
		IsDecelerating:            true,
		PredictedRemainingOffsetY: 1.5,
	})

	require.Len(t, sched.queue, 1)
	require.Equal(t, 101.5, sched.queue[0].To)
	require.Equal(t, 101.5, sink.last())

	s.Complete(sched.queue[0].ID)
	require.Equal(t, 101.5, s.Height())
}

func TestDecide_NegativePredictionStaysAboveMin(t *testing.T) {
	s, _, sched := newTestState(t, 50, PolicyCancel)

	s.Decide(Request{
		OffsetY:                   -1,
		Direction:                 Downward,
		IsDecelerating:            true,
		PredictedRemainingOffsetY: -30,
	})

	require.Len(t, sched.queue, 1)
	require.Equal(t, 40.0, sched.queue[0].To)
	require.Zero(t, sched.queue[0].Duration, "shrinking transitions have no duration")

	s.Complete(sched.queue[0].ID)
	require.Equal(t, 40.0, s.Height())
}

func TestDecide_UpwardDecelerationIsConsumed(t *testing.T) {
	s, sink, sched := newTestState(t, 100, PolicyCancel)
	writes := len(sink.writes)

	ok := s.Decide(Request{
		OffsetY:                   5,
		Direction:                 Upward,
		IsDecelerating:            true,
		PredictedRemainingOffsetY: 50,
	})

	require.False(t, ok)
	require.Equal(t, 100.0, s.Height())
	require.Len(t, sink.writes, writes, "no sink write for upward momentum")
	require.Empty(t, sched.queue)
}

func TestDecide_ZeroOffsetIsIdempotent(t *testing.T) {
	for _, start := range []float64{40, 75, 150} {
		s, _, _ := newTestState(t, start, PolicyCancel)

		s.Decide(Request{OffsetY: 0})
		s.Decide(Request{OffsetY: 0})

		require.Equal(t, start, s.Height())
	}
}

func TestDecide_NilSchedulerCommitsImmediately(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialHeight = 100

	s, err := New(cfg, nil, nil)
	require.NoError(t, err)

	s.Decide(Request{OffsetY: -1, Direction: Downward, IsDecelerating: true, PredictedRemainingOffsetY: 10})

	require.Equal(t, 150.0, s.Height())
	require.Zero(t, s.Pending())
}

func TestPolicyCancel_ManualDragCancelsTransition(t *testing.T) {
	s, sink, sched := newTestState(t, 100, PolicyCancel)

	s.Decide(Request{OffsetY: -1, Direction: Downward, IsDecelerating: true, PredictedRemainingOffsetY: 10})
	require.Equal(t, 1, s.Pending())

	s.Decide(Request{OffsetY: 10, Direction: Upward})
	require.Equal(t, 90.0, s.Height())
	require.Zero(t, s.Pending())

	require.False(t, s.Complete(sched.queue[0].ID), "late completion must be ignored")
	require.Equal(t, 90.0, s.Height())
	require.Equal(t, 90.0, sink.last())
}

func TestPolicyCancel_SameTargetReusesTransition(t *testing.T) {
	s, _, sched := newTestState(t, 100, PolicyCancel)
	req := Request{OffsetY: -1, Direction: Downward, IsDecelerating: true, PredictedRemainingOffsetY: 10}

	s.Decide(req)
	s.Decide(req)
	s.Decide(req)

	require.Len(t, sched.queue, 1)
	require.Equal(t, 1, s.Pending())
}

func TestPolicyCancel_NewTargetReplacesTransition(t *testing.T) {
	s, _, sched := newTestState(t, 100, PolicyCancel)

	s.Decide(Request{OffsetY: -1, Direction: Downward, IsDecelerating: true, PredictedRemainingOffsetY: 1})
	s.Decide(Request{OffsetY: -1, Direction: Downward, IsDecelerating: true, PredictedRemainingOffsetY: 2})

	require.Len(t, sched.queue, 2)
	require.Equal(t, 1, s.Pending())
	require.False(t, s.Complete(sched.queue[0].ID))
	require.True(t, s.Complete(sched.queue[1].ID))
	require.Equal(t, 102.0, s.Height())
}

func TestPolicyOverlap_EveryCompletionCommits(t *testing.T) {
	s, _, sched := newTestState(t, 100, PolicyOverlap)

	s.Decide(Request{OffsetY: -1, Direction: Downward, IsDecelerating: true, PredictedRemainingOffsetY: 1})
	s.Decide(Request{OffsetY: 10, Direction: Upward})
	require.Equal(t, 90.0, s.Height())
	require.Equal(t, 1, s.Pending())

	// The stale transition still lands, reproducing the unguarded race.
	require.True(t, s.Complete(sched.queue[0].ID))
	require.Equal(t, 101.0, s.Height())
}

func TestCancel_RestoresSink(t *testing.T) {
	s, sink, _ := newTestState(t, 100, PolicyCancel)

	s.Decide(Request{OffsetY: -1, Direction: Downward, IsDecelerating: true, PredictedRemainingOffsetY: 10})
	require.Equal(t, 150.0, sink.last())

	s.Cancel()
	require.Zero(t, s.Pending())
	require.Equal(t, 100.0, sink.last())
}

func TestArbitrate_NilDelegateLetsContentScroll(t *testing.T) {
	require.True(t, Arbitrate(nil, Request{OffsetY: 5}))

	var missing *State
	require.True(t, Arbitrate(missing, Request{OffsetY: 5}), "nil *State counts as no delegate")

	s, _, _ := newTestState(t, 100, PolicyCancel)
	require.False(t, Arbitrate(s, Request{OffsetY: 5}))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	require.Equal(t, PolicyCancel, p)

	p, err = ParsePolicy("overlap")
	require.NoError(t, err)
	require.Equal(t, PolicyOverlap, p)

	_, err = ParsePolicy("serialize")
	require.Error(t, err)
}

func TestDecide_ClampingInvariant(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		policy := rapid.SampledFrom([]Policy{PolicyCancel, PolicyOverlap}).Draw(rt, "policy")
		cfg := DefaultConfig()
		cfg.InitialHeight = rapid.Float64Range(40, 150).Draw(rt, "initial")
		cfg.Policy = policy

		sched := &queueScheduler{}
		s, err := New(cfg, nil, sched)
		require.NoError(rt, err)

		steps := rapid.IntRange(1, 50).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			if len(sched.queue) > 0 && rapid.Bool().Draw(rt, "complete") {
				s.Complete(sched.queue[0].ID)
				sched.queue = sched.queue[1:]
			} else {
				s.Decide(Request{
					OffsetY:                   rapid.Float64Range(-200, 200).Draw(rt, "offset"),
					Direction:                 rapid.SampledFrom([]Direction{Upward, Downward}).Draw(rt, "direction"),
					IsDecelerating:            rapid.Bool().Draw(rt, "decelerating"),
					PredictedRemainingOffsetY: rapid.Float64Range(-500, 500).Draw(rt, "predicted"),
				})
			}

			require.GreaterOrEqual(rt, s.Height(), s.MinHeight())
			require.LessOrEqual(rt, s.Height(), s.MaxHeight())
		}
	})
}
