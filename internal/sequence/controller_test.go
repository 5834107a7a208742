package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// burst begins motion and advances until the active node settles.
func burst(t *testing.T, c *Controller) Outcome {
	t.Helper()
	require.True(t, c.BeginMotion())
	for i := 0; i < 10000; i++ {
		if o := c.Advance(); o.Settled {
			return o
		}
	}
	t.Fatal("burst never settled")
	return Outcome{}
}

func newController(t *testing.T, n int) *Controller {
	t.Helper()
	ch, err := NewChain(n, 0.02/4)
	require.NoError(t, err)
	return NewController(ch)
}

func TestControllerInitialState(t *testing.T) {
	c := newController(t, 5)
	assert.Equal(t, 0, c.ActiveIndex())
	assert.Equal(t, Forward, c.Direction())
	assert.Equal(t, Idle, c.Phase())
}

func TestControllerScenarioFiveNodes(t *testing.T) {
	c := newController(t, 5)

	type step struct{ active, direction int }
	want := []step{
		{1, Forward}, {2, Forward}, {3, Forward}, {4, Forward},
		{4, Backward},
		{3, Backward}, {2, Backward}, {1, Backward}, {0, Backward},
		{0, Forward},
		{1, Forward},
	}
	for i, w := range want {
		o := burst(t, c)
		assert.Equal(t, w.active, c.ActiveIndex(), "burst %d", i)
		assert.Equal(t, w.direction, c.Direction(), "burst %d", i)
		assert.Equal(t, w.active, o.Active)
		assert.Equal(t, w.direction, o.Direction)
		assert.Equal(t, Idle, c.Phase())
	}
}

func TestControllerBounceFlags(t *testing.T) {
	c := newController(t, 2)
	o := burst(t, c)
	assert.False(t, o.Bounced)
	assert.Equal(t, 0, o.From)

	o = burst(t, c)
	assert.True(t, o.Bounced)
	assert.Equal(t, 1, o.From)
	assert.Equal(t, 1, o.Active)
	assert.Equal(t, Backward, o.Direction)
}

func TestControllerBounceAtFirstNode(t *testing.T) {
	c := newController(t, 4)
	c.direction = Backward

	o := burst(t, c)
	assert.True(t, o.Bounced)
	assert.Equal(t, 0, c.ActiveIndex())
	assert.Equal(t, Forward, c.Direction())
}

func TestControllerBounceAtLastNode(t *testing.T) {
	c := newController(t, 4)
	c.active = 3

	o := burst(t, c)
	assert.True(t, o.Bounced)
	assert.Equal(t, 3, c.ActiveIndex())
	assert.Equal(t, Backward, c.Direction())
}

func TestControllerBeginMotionIdempotent(t *testing.T) {
	c := newController(t, 3)
	require.True(t, c.BeginMotion())
	c.Advance()
	p := *c.Active().Progress
	assert.False(t, c.BeginMotion())
	assert.Equal(t, p, *c.Active().Progress)
	assert.Equal(t, Moving, c.Phase())
}

func TestControllerAdvanceKeepsActiveMidBurst(t *testing.T) {
	c := newController(t, 3)
	c.BeginMotion()
	o := c.Advance()
	assert.False(t, o.Settled)
	assert.Equal(t, 0, o.Active)
	assert.InDelta(t, 0.005, c.Active().Progress.Scale, 1e-12)
}

func TestControllerNodesReverseOnReturn(t *testing.T) {
	c := newController(t, 2)
	burst(t, c) // node 0 -> 1
	burst(t, c) // node 1 -> 1, bounce
	assert.Equal(t, 1.0, c.Chain().Node(0).Progress.Scale)
	assert.Equal(t, 1.0, c.Chain().Node(1).Progress.Scale)

	burst(t, c) // node 1 back to 0
	assert.Equal(t, 0.0, c.Chain().Node(1).Progress.Scale)
	assert.Equal(t, 0, c.ActiveIndex())
}

func TestControllerDraw(t *testing.T) {
	c := newController(t, 3)
	burst(t, c)
	s := &recordSurface{}
	c.Draw(s)
	assert.Equal(t, 1, s.index)
	assert.Equal(t, 0.0, s.scale)
}
