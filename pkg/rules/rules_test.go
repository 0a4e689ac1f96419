package rules_test

import (
	"testing"

	"github.com/gantrychess/core/pkg/board"
	"github.com/gantrychess/core/pkg/board/fen"
	"github.com/gantrychess/core/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, f string) *board.Position {
	t.Helper()
	pos, _, _, err := fen.Decode(f)
	require.NoError(t, err)
	return pos
}

func TestPseudoLegalPawnDoublePush(t *testing.T) {
	pos := mustDecode(t, fen.Initial)
	from, to := board.NewPlaySquare(1, 4), board.NewPlaySquare(3, 4)
	assert.True(t, rules.PseudoLegalMove(pos, from, to))
}

func TestPseudoLegalPawnDoublePushBlocked(t *testing.T) {
	pos := mustDecode(t, "8/8/8/8/4p3/8/4P3/4K2k w - - 0 1")
	from, to := board.NewPlaySquare(1, 4), board.NewPlaySquare(3, 4)
	assert.False(t, rules.PseudoLegalMove(pos, from, to))
}

func TestEnPassantPseudoLegal(t *testing.T) {
	// White pawn e5, black just double-pushed d7-d5: en passant file d (3).
	pos := mustDecode(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	from, to := board.NewPlaySquare(4, 4), board.NewPlaySquare(5, 3)
	assert.True(t, rules.PseudoLegalMove(pos, from, to))
}

func TestKnightIgnoresBlocking(t *testing.T) {
	pos := mustDecode(t, fen.Initial)
	from, to := board.NewPlaySquare(0, 1), board.NewPlaySquare(2, 2)
	assert.True(t, rules.PseudoLegalMove(pos, from, to))
}

func TestBishopBlockedByIntervening(t *testing.T) {
	pos := mustDecode(t, fen.Initial)
	from, to := board.NewPlaySquare(0, 2), board.NewPlaySquare(3, 5)
	assert.False(t, rules.PseudoLegalMove(pos, from, to))
}

func TestCastleKingSideLegal(t *testing.T) {
	pos := mustDecode(t, "4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	assert.True(t, rules.CanCastleKingSide(pos, board.White))
}

func TestCastleKingSideBlockedByAttack(t *testing.T) {
	// Black rook on f8 attacks f1, the king's transit square.
	pos := mustDecode(t, "5r1k/8/8/8/8/8/8/4K2R w K - 0 1")
	assert.False(t, rules.CanCastleKingSide(pos, board.White))
}

func TestCastleRequiresUnmoved(t *testing.T) {
	pos := mustDecode(t, "4k3/8/8/8/8/8/8/4K2R w - - 0 1")
	assert.False(t, rules.CanCastleKingSide(pos, board.White))
}

func TestIsCheckedDetectsRookAttack(t *testing.T) {
	pos := mustDecode(t, "k3r3/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.True(t, rules.IsChecked(pos, board.White))
}

func TestHasAnyLegalMoveFalseWhenCheckmated(t *testing.T) {
	// Classic back-rank mate: white king h1 boxed by own pawns, black rook a1.
	pos := mustDecode(t, "k7/8/8/8/8/8/5PPP/r6K w - - 0 1")
	assert.False(t, rules.HasAnyLegalMove(pos, board.White))
}

func TestAnalyzeCheckmate(t *testing.T) {
	pos := mustDecode(t, "k7/8/8/8/8/8/5PPP/r6K w - - 0 1")
	assert.Equal(t, rules.Checkmate, rules.Analyze(pos, board.Black))
}

func TestAnalyzeStalemate(t *testing.T) {
	// White king a1 to move, not in check, no legal move: classic stalemate.
	pos := mustDecode(t, "8/8/8/8/8/1k6/2q5/K7 w - - 0 1")
	assert.Equal(t, rules.Stalemate, rules.Analyze(pos, board.Black))
}

func TestResolveMoveWithWildcards(t *testing.T) {
	pos := mustDecode(t, fen.Initial)
	// Only the b1 knight can reach c3, so the fully wildcarded source
	// resolves to it.
	mv, ok := rules.ResolveMove(pos, board.White, "n$$c3", board.NoKind)
	assert.True(t, ok)
	assert.Equal(t, board.Knight, pos.At(mv.From).Kind)
	assert.Equal(t, board.NewPlaySquare(2, 2), mv.To)
	assert.Equal(t, board.Normal, mv.Type)
}

func TestResolveMoveNoMatch(t *testing.T) {
	pos := mustDecode(t, fen.Initial)
	_, ok := rules.ResolveMove(pos, board.White, "qa1a8", board.NoKind)
	assert.False(t, ok)
}
