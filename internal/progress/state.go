package progress

import "math"

// settleTolerance absorbs float drift from repeated stepping so a step size
// that divides 1 settles on exactly 1/step ticks.
const settleTolerance = 1e-9

// State is the progress of one animated object. Scale moves from the settled
// endpoint Prev towards the other endpoint in fixed steps while Dir is
// non-zero.
type State struct {
	Scale float64
	Dir   int
	Prev  float64

	step float64
}

// New returns an idle State at 0 that advances by step per tick.
func New(step float64) *State {
	return &State{step: step}
}

// Step is the per-tick increment.
func (s *State) Step() float64 { return s.step }

// Idle reports whether no motion is in progress.
func (s *State) Idle() bool { return s.Dir == 0 }

// Update advances Scale by one step. Once the distance from Prev reaches 1 it
// snaps Scale onto the endpoint, halts and reports true. Calling Update on an
// idle State does nothing.
func (s *State) Update() bool {
	if s.Dir == 0 {
		return false
	}
	s.Scale += float64(s.Dir) * s.step
	if math.Abs(s.Scale-s.Prev) < 1-settleTolerance {
		return false
	}
	s.Scale = s.Prev + float64(s.Dir)
	s.Dir = 0
	s.Prev = s.Scale
	return true
}

// Halt abandons a motion in progress, returning Scale to the settled
// endpoint.
func (s *State) Halt() {
	s.Scale = s.Prev
	s.Dir = 0
}

// StartUpdating starts motion away from the settled endpoint: forward from 0,
// backward from 1. It reports false and changes nothing while already moving.
func (s *State) StartUpdating() bool {
	if s.Dir != 0 {
		return false
	}
	s.Dir = 1 - 2*int(s.Prev)
	return true
}
