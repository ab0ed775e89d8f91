package dash

// Checkpoint is a saved practice-mode position.
type Checkpoint struct {
	X, Y     float64
	DY       float64
	Angle    float64
	Grounded bool
	CameraX  float64
}

// checkpointOf captures the player and camera.
func checkpointOf(p Player, cameraX float64) Checkpoint {
	return Checkpoint{
		X:        p.X,
		Y:        p.Y,
		DY:       p.DY,
		Angle:    p.Angle,
		Grounded: p.Grounded,
		CameraX:  cameraX,
	}
}

// Apply moves the player back to the checkpoint. Vertical velocity is kept,
// so a checkpoint saved mid-jump resumes its arc.
func (c Checkpoint) Apply(p *Player) {
	p.X = c.X
	p.Y = c.Y
	p.DY = c.DY
	p.Angle = c.Angle
	p.Grounded = c.Grounded
	p.Dead = false
}

// Checkpoints is a stack of practice checkpoints, newest last.
type Checkpoints struct {
	stack []Checkpoint
}

// Push saves a checkpoint.
func (c *Checkpoints) Push(cp Checkpoint) {
	c.stack = append(c.stack, cp)
}

// Pop removes the newest checkpoint. It is a no-op on an empty stack.
func (c *Checkpoints) Pop() (Checkpoint, bool) {
	if len(c.stack) == 0 {
		return Checkpoint{}, false
	}
	cp := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return cp, true
}

// Top returns the newest checkpoint without removing it.
func (c *Checkpoints) Top() (Checkpoint, bool) {
	if len(c.stack) == 0 {
		return Checkpoint{}, false
	}
	return c.stack[len(c.stack)-1], true
}

// Clear removes all checkpoints.
func (c *Checkpoints) Clear() {
	c.stack = c.stack[:0]
}

// Len returns the number of checkpoints.
func (c *Checkpoints) Len() int {
	return len(c.stack)
}

// All returns the checkpoints, oldest first. The slice must not be modified.
func (c *Checkpoints) All() []Checkpoint {
	return c.stack
}
