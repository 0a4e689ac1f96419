package board_test

import (
	"testing"

	"github.com/gantrychess/core/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestMoveEqualsIgnoresTypeAndCaptured(t *testing.T) {
	a := board.Move{Type: board.Normal, From: board.NewPlaySquare(1, 4), To: board.NewPlaySquare(3, 4)}
	b := board.Move{Type: board.DoublePush, From: a.From, To: a.To, Captured: board.Piece{Kind: board.Pawn, Color: board.Black}}
	assert.True(t, a.Equals(b))
}

func TestMoveStringIncludesPromotion(t *testing.T) {
	m := board.Move{From: board.NewPlaySquare(6, 0), To: board.NewPlaySquare(7, 0), Promotion: board.Queen}
	assert.Equal(t, "a7a8q", m.String())
}

func TestMoveStringWithoutPromotion(t *testing.T) {
	m := board.Move{From: board.NewPlaySquare(1, 4), To: board.NewPlaySquare(3, 4)}
	assert.Equal(t, "e2e4", m.String())
}
