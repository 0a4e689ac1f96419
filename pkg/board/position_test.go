package board_test

import (
	"testing"

	"github.com/gantrychess/core/pkg/board"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialPositionKings(t *testing.T) {
	b := board.InitBoard()
	pos := b.Position()

	assert.Equal(t, board.NewPlaySquare(0, 4), pos.King(board.White))
	assert.Equal(t, board.NewPlaySquare(7, 4), pos.King(board.Black))
}

func TestSetClearUpdatesKingCache(t *testing.T) {
	b := board.InitBoard()
	pos := b.Position()

	from, to := board.NewPlaySquare(0, 4), board.NewPlaySquare(1, 4)
	pos.Clear(from)
	pos.Set(to, board.Piece{Kind: board.King, Color: board.White})

	assert.Equal(t, to, pos.King(board.White))
}

func TestFirstEmptyPerimeterSquareExcludesPlayArea(t *testing.T) {
	b := board.InitBoard()
	pos := b.Position()

	sq, ok := pos.FirstEmptyPerimeterSquare(board.White)
	require.True(t, ok)
	assert.False(t, sq.InPlayArea())
	assert.Equal(t, 0, sq.Rank)
}

func TestFirstEmptyPerimeterSquareStartsFromMoverEdge(t *testing.T) {
	b := board.InitBoard()
	pos := b.Position()

	white, ok := pos.FirstEmptyPerimeterSquare(board.White)
	require.True(t, ok)
	black, ok := pos.FirstEmptyPerimeterSquare(board.Black)
	require.True(t, ok)

	assert.Equal(t, 0, white.Rank)
	assert.Equal(t, board.GridSize-1, black.Rank)
}

func TestCloneIsIndependent(t *testing.T) {
	b := board.InitBoard()
	clone := b.Position().Clone()

	from, to := board.NewPlaySquare(1, 0), board.NewPlaySquare(3, 0)
	clone.Set(to, clone.Clear(from))

	assert.False(t, b.Position().At(from).IsNone())
	assert.True(t, b.Position().At(to).IsNone())
}

func TestEnPassantFile(t *testing.T) {
	pos := board.InitBoard().Position()

	_, ok := pos.EnPassantFile()
	assert.False(t, ok)

	pos.SetEnPassantFile(4, true)
	f, ok := pos.EnPassantFile()
	assert.True(t, ok)
	assert.Equal(t, 4, f)

	pos.SetEnPassantFile(0, false)
	_, ok = pos.EnPassantFile()
	assert.False(t, ok)
}

func TestNewPositionRejectsMissingKing(t *testing.T) {
	placements := []board.Placement{
		{Square: board.NewPlaySquare(0, 4), Piece: board.Piece{Kind: board.King, Color: board.White}},
	}
	_, err := board.NewPosition(placements, [board.NumColors]board.CastlingRights{}, lang.Optional[int]{})
	assert.Error(t, err)
}
