package dash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointStack(t *testing.T) {
	var cps Checkpoints

	_, ok := cps.Pop()
	assert.False(t, ok)
	_, ok = cps.Top()
	assert.False(t, ok)

	cps.Push(Checkpoint{X: 1})
	cps.Push(Checkpoint{X: 2})
	top, ok := cps.Top()
	require.True(t, ok)
	assert.Equal(t, 2.0, top.X)
	assert.Equal(t, 2, cps.Len(), "Top does not pop")

	popped, ok := cps.Pop()
	require.True(t, ok)
	assert.Equal(t, 2.0, popped.X)
	assert.Equal(t, 1, cps.Len())

	cps.Clear()
	assert.Zero(t, cps.Len())
}

func TestCheckpointApply(t *testing.T) {
	p := Player{X: 10, Y: 20, DY: -3.5, Angle: 1.2, Grounded: false}
	cp := checkpointOf(p, 55)
	assert.Equal(t, 55.0, cp.CameraX)

	other := Player{X: 999, Y: 1, DY: 4, Dead: true, Grounded: true}
	cp.Apply(&other)
	assert.Equal(t, p, other)
}
