package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-glyphloop/internal/loop"
	"github.com/coreman2200/funtimes-glyphloop/internal/sequence"
)

// Hooks observe the conductor. They run with the conductor locked and must
// not call back into it.
type Hooks struct {
	// Render follows every draw of the active glyph.
	Render func(s Snapshot)
	// OnSettle fires once per burst, after the final draw.
	OnSettle func(o sequence.Outcome, s Snapshot)
	// OnIgnored fires for a trigger that arrived mid burst.
	OnIgnored func(s Snapshot)
}

// Snapshot is a consistent copy of the animation state.
type Snapshot struct {
	Active    int            `json:"active"`
	Scale     float64        `json:"scale"`
	Dir       int            `json:"dir"`
	Direction int            `json:"direction"`
	Phase     sequence.Phase `json:"phase"`
	Bursts    int            `json:"bursts"`
	Bounces   int            `json:"bounces"`
	Ignored   int            `json:"ignored"`
}

// Draw paints the snapshot's glyph on s.
func (s Snapshot) Draw(surface sequence.Surface) {
	surface.DrawGlyph(s.Active, s.Scale)
}

// Conductor ties triggers, the tick loop and the surface together. Triggers
// and ticks arrive on different goroutines; each runs to completion under
// the conductor's lock.
type Conductor struct {
	mu      sync.Mutex
	ctl     *sequence.Controller
	loop    *loop.Looper
	surface sequence.Surface
	hooks   Hooks

	bursts  int
	bounces int
	ignored int
}

func NewConductor(ctl *sequence.Controller, l *loop.Looper, surface sequence.Surface, hooks Hooks) *Conductor {
	return &Conductor{ctl: ctl, loop: l, surface: surface, hooks: hooks}
}

// Trigger starts a burst on the active glyph. A trigger during a burst is
// ignored and reports false.
func (c *Conductor) Trigger() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ctl.BeginMotion() {
		c.ignored++
		log.Debug().Int("active", c.ctl.ActiveIndex()).Msg("trigger ignored mid burst")
		if c.hooks.OnIgnored != nil {
			c.hooks.OnIgnored(c.snapshot())
		}
		return false
	}
	c.loop.Start(c.Tick)
	return true
}

// Tick draws the active glyph then advances it. On settle the loop stops
// and the settled glyph is drawn once more.
func (c *Conductor) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctl.Phase() == sequence.Idle {
		return
	}
	c.render()
	o := c.ctl.Advance()
	if !o.Settled {
		return
	}
	c.loop.Stop()
	c.bursts++
	if o.Bounced {
		c.bounces++
	}
	log.Debug().
		Int("from", o.From).
		Int("active", o.Active).
		Int("direction", o.Direction).
		Bool("bounced", o.Bounced).
		Msg("settled")
	c.render()
	if c.hooks.OnSettle != nil {
		c.hooks.OnSettle(o, c.snapshot())
	}
}

// Render draws the current state without advancing it.
func (c *Conductor) Render() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.render()
}

func (c *Conductor) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Running reports whether a burst is ticking.
func (c *Conductor) Running() bool { return c.loop.Running() }

// Close stops the loop and settles the active node back where its burst
// began. The Conductor stays usable; the next Trigger starts a fresh burst.
func (c *Conductor) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loop.Stop()
	c.ctl.Halt()
}

func (c *Conductor) render() {
	if c.surface != nil {
		c.ctl.Draw(c.surface)
	}
	if c.hooks.Render != nil {
		c.hooks.Render(c.snapshot())
	}
}

func (c *Conductor) snapshot() Snapshot {
	n := c.ctl.Active()
	return Snapshot{
		Active:    c.ctl.ActiveIndex(),
		Scale:     n.Progress.Scale,
		Dir:       n.Progress.Dir,
		Direction: c.ctl.Direction(),
		Phase:     c.ctl.Phase(),
		Bursts:    c.bursts,
		Bounces:   c.bounces,
		Ignored:   c.ignored,
	}
}
