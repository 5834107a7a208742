package sequence

// Controller owns the active node and the traversal direction across the
// chain. The zero state is Idle on node 0 moving Forward.
type Controller struct {
	chain     *Chain
	active    int
	direction int
}

// NewController starts on the first node of c.
func NewController(c *Chain) *Controller {
	return &Controller{chain: c, direction: Forward}
}

func (c *Controller) Chain() *Chain    { return c.chain }
func (c *Controller) Active() *Node    { return c.chain.Node(c.active) }
func (c *Controller) ActiveIndex() int { return c.active }
func (c *Controller) Direction() int   { return c.direction }

// Phase is Moving while the active node's progress is in motion.
func (c *Controller) Phase() Phase {
	if c.Active().Progress.Idle() {
		return Idle
	}
	return Moving
}

// BeginMotion starts the active node. It reports false when a motion is
// already running.
func (c *Controller) BeginMotion() bool {
	return c.Active().Progress.StartUpdating()
}

// Advance steps the active node once. When the node settles the controller
// moves to its neighbor in the current direction, or stays put and reverses
// direction at either end of the chain.
func (c *Controller) Advance() Outcome {
	o := Outcome{From: c.active}
	if c.Active().Progress.Update() {
		o.Settled = true
		next, bounced := c.chain.Neighbor(c.active, c.direction)
		if bounced {
			c.direction = -c.direction
		}
		c.active = next
		o.Bounced = bounced
	}
	o.Active = c.active
	o.Direction = c.direction
	return o
}

// Halt stops the active node where its last motion began. Active node and
// direction are kept.
func (c *Controller) Halt() {
	c.Active().Progress.Halt()
}

// Draw paints the active node.
func (c *Controller) Draw(s Surface) {
	c.Active().Draw(s)
}
