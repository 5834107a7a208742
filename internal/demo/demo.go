package demo

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-glyphloop/internal/app"
	"github.com/coreman2200/funtimes-glyphloop/internal/sequence"
)

type Kind string

const (
	None  Kind = ""
	Sweep Kind = "sweep"
	Loop  Kind = "loop"
)

// Kinds lists the runnable demos.
func Kinds() []Kind { return []Kind{Sweep, Loop} }

type Plan struct {
	Kind     Kind
	Interval time.Duration
}

// Target is what a demo taps on; the conductor satisfies it.
type Target interface {
	Trigger() bool
	Snapshot() app.Snapshot
}

// Runner taps the target whenever it is idle. A Sweep ends after one full
// round trip (two bounces); a Loop never ends.
type Runner struct {
	plan    Plan
	started bool
	bounces int
	bursts  int
}

func NewRunner(plan Plan) *Runner {
	if plan.Interval <= 0 {
		plan.Interval = 250 * time.Millisecond
	}
	return &Runner{plan: plan}
}

func (r *Runner) Kind() Kind { return r.plan.Kind }

// Bursts counts the triggers this runner issued.
func (r *Runner) Bursts() int { return r.bursts }

// Step triggers t if it is idle; returns false when complete.
func (r *Runner) Step(t Target) bool {
	s := t.Snapshot()
	if !r.started {
		r.started = true
		r.bounces = s.Bounces
	}
	switch r.plan.Kind {
	case Sweep:
		if s.Bounces-r.bounces >= 2 {
			return false
		}
	case Loop:
	default:
		return false
	}
	if s.Phase == sequence.Idle && t.Trigger() {
		r.bursts++
	}
	return true
}

// Run steps every interval until the plan completes or ctx is done.
func (r *Runner) Run(ctx context.Context, t Target) error {
	tick := time.NewTicker(r.plan.Interval)
	defer tick.Stop()
	log.Debug().Str("kind", string(r.plan.Kind)).Dur("interval", r.plan.Interval).Msg("demo start")
	for {
		if !r.Step(t) {
			log.Debug().Str("kind", string(r.plan.Kind)).Int("bursts", r.bursts).Msg("demo done")
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}
}
