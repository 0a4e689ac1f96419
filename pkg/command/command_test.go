package command_test

import (
	"testing"

	"github.com/gantrychess/core/pkg/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFOOrder(t *testing.T) {
	q := command.NewQueue()
	q.Push(command.MagnetOn())
	q.Push(command.MoveX(1.5))
	q.Push(command.MoveBoth(2, 3))

	require.True(t, q.HasNext())
	assert.Equal(t, command.MagnetToggle, q.Peek().Kind)
	q.Advance()

	assert.Equal(t, command.XAxis, q.Peek().Kind)
	assert.Equal(t, 1.5, q.Peek().DeltaA)
	q.Advance()

	assert.Equal(t, command.BothAxes, q.Peek().Kind)
	assert.Equal(t, 2.0, q.Peek().DeltaA)
	assert.Equal(t, 3.0, q.Peek().DeltaB)
	q.Advance()

	assert.False(t, q.HasNext())
}

func TestQueueDropsWhenFull(t *testing.T) {
	q := command.NewQueue()
	for i := 0; i < command.Capacity+5; i++ {
		q.Push(command.MagnetOn())
	}
	assert.Equal(t, command.Capacity, q.Len())
}

func TestAdvanceOnEmptyIsNoop(t *testing.T) {
	q := command.NewQueue()
	q.Advance()
	assert.False(t, q.HasNext())
}

func TestMagnetHelpers(t *testing.T) {
	assert.Equal(t, 1, command.MagnetOn().IntArg)
	assert.Equal(t, 0, command.MagnetOff().IntArg)
}
