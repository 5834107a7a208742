package sequence

import "github.com/coreman2200/funtimes-glyphloop/internal/progress"

// Chain is a fixed-length, doubly linked run of nodes stored in one slice.
type Chain struct {
	nodes []Node
}

// NewChain builds n nodes first and then links adjacent pairs. Every node
// starts idle at progress 0.
func NewChain(n int, step float64) (*Chain, error) {
	if n < 1 {
		return nil, ErrEmptyChain
	}
	if step <= 0 {
		return nil, ErrInvalidStep
	}
	c := &Chain{nodes: make([]Node, n)}
	for i := range c.nodes {
		c.nodes[i] = Node{Index: i, Prev: none, Next: none, Progress: progress.New(step)}
	}
	for i := 0; i+1 < n; i++ {
		c.nodes[i].Next = i + 1
		c.nodes[i+1].Prev = i
	}
	return c, nil
}

// Len is the number of nodes.
func (c *Chain) Len() int { return len(c.nodes) }

// Node returns node i.
func (c *Chain) Node(i int) *Node { return &c.nodes[i] }

// Neighbor follows Next for a forward dir and Prev otherwise. At a chain end
// it stays on i and reports the bounce.
func (c *Chain) Neighbor(i, dir int) (int, bool) {
	n := &c.nodes[i]
	j := n.Prev
	if dir > 0 {
		j = n.Next
	}
	if j == none {
		return i, true
	}
	return j, false
}
