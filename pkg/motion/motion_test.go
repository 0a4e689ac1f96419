package motion_test

import (
	"testing"

	"github.com/gantrychess/core/pkg/board"
	"github.com/gantrychess/core/pkg/board/fen"
	"github.com/gantrychess/core/pkg/command"
	"github.com/gantrychess/core/pkg/motion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnightDirectTransitShape(t *testing.T) {
	_, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	q := command.NewQueue()
	p := motion.NewPlanner()
	from, to := board.NewPlaySquare(0, 1), board.NewPlaySquare(2, 2)
	p.Direct(q, from, to)

	var magnets, moves int
	for q.HasNext() {
		switch q.Peek().Kind {
		case command.MagnetToggle:
			magnets++
		case command.BothAxes:
			moves++
		}
		q.Advance()
	}
	assert.Equal(t, 2, magnets)
	assert.Equal(t, 2, moves)
}

func TestIndirectClearPathRestoresClone(t *testing.T) {
	// Rook a1 to a3 with a pawn on a2 blocking a straight path but free
	// cells available to evacuate it sideways.
	pos, _, _, err := fen.Decode("4k3/8/8/8/8/8/P7/R3K3 w - - 0 1")
	require.NoError(t, err)

	q := command.NewQueue()
	p := motion.NewPlanner()
	from, to := board.NewPlaySquare(0, 0), board.NewPlaySquare(2, 0)

	clone := pos.Clone()
	p.Indirect(q, clone, from, to)

	// Indirect only emits commands for the moving piece; the clone keeps
	// its original occupancy.
	assert.Equal(t, board.Rook, clone.At(from).Kind)
	assert.True(t, clone.At(to).IsNone())
	// The pawn is on its original square afterwards.
	assert.Equal(t, board.Pawn, clone.At(board.NewPlaySquare(1, 0)).Kind)

	assert.True(t, q.HasNext())
}

func TestPlannerPoseTracksMoves(t *testing.T) {
	q := command.NewQueue()
	p := motion.NewPlanner()
	p.Direct(q, board.NewPlaySquare(0, 0), board.NewPlaySquare(1, 1))

	assert.Equal(t, float64(board.NewPlaySquare(1, 1).Rank), p.Row)
	assert.Equal(t, float64(board.NewPlaySquare(1, 1).File), p.Col)
}
