package sequence

import (
	"errors"

	"github.com/coreman2200/funtimes-glyphloop/internal/progress"
)

// Traversal directions across the chain.
const (
	Backward = -1
	Forward  = 1
)

// none marks an absent neighbor.
const none = -1

var (
	ErrEmptyChain  = errors.New("chain needs at least one node")
	ErrInvalidStep = errors.New("step size must be positive")
)

// Surface paints one glyph: its color index and overall progress.
type Surface interface {
	DrawGlyph(index int, scale float64)
}

// Node is one glyph of the chain. Prev and Next index its neighbors in the
// owning Chain, or -1 at either end.
type Node struct {
	Index    int
	Prev     int
	Next     int
	Progress *progress.State
}

// Draw hands the node's color index and progress to the surface.
func (n *Node) Draw(s Surface) {
	s.DrawGlyph(n.Index, n.Progress.Scale)
}

// Phase enumerates controller states.
type Phase string

const (
	Idle   Phase = "idle"
	Moving Phase = "moving"
)

// Outcome describes what one Advance did.
type Outcome struct {
	// Settled is set on the tick the active node reached its endpoint.
	Settled bool
	// Bounced is set when the settle hit a chain end and flipped Direction.
	Bounced bool
	// From is the node that was active before the tick.
	From      int
	Active    int
	Direction int
}
