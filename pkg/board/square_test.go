package board_test

import (
	"testing"

	"github.com/gantrychess/core/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestSquareInPlayArea(t *testing.T) {
	assert.True(t, board.NewPlaySquare(0, 0).InPlayArea())
	assert.True(t, board.NewPlaySquare(7, 7).InPlayArea())
	assert.False(t, board.NewSquare(0, 0).InPlayArea())
	assert.False(t, board.NewSquare(9, 9).InPlayArea())
}

func TestSquareValid(t *testing.T) {
	assert.True(t, board.NewSquare(0, 0).IsValid())
	assert.True(t, board.NewSquare(9, 9).IsValid())
	assert.False(t, board.NewSquare(-1, 0).IsValid())
	assert.False(t, board.NewSquare(10, 0).IsValid())
}

func TestSquareString(t *testing.T) {
	assert.Equal(t, "a1", board.NewPlaySquare(0, 0).String())
	assert.Equal(t, "h8", board.NewPlaySquare(7, 7).String())
	assert.Equal(t, "e4", board.NewPlaySquare(3, 4).String())
}

func TestParsePlayFileRank(t *testing.T) {
	assert.Equal(t, 0, board.ParsePlayFile('a'))
	assert.Equal(t, 7, board.ParsePlayFile('h'))
	assert.Equal(t, -1, board.ParsePlayFile('$'))
	assert.Equal(t, -1, board.ParsePlayFile('i'))

	assert.Equal(t, 0, board.ParsePlayRank('1'))
	assert.Equal(t, 7, board.ParsePlayRank('8'))
	assert.Equal(t, -1, board.ParsePlayRank('$'))
	assert.Equal(t, -1, board.ParsePlayRank('9'))
}
