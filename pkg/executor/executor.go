// Package executor applies a validated canonical move or castling token to
// the authoritative Board: it mutates position state, rejects moves that
// leave the mover in self-check by restoring the exact prior state,
// deposits captured pieces on the perimeter, updates castling rights and
// en-passant state, handles promotion, and drives the Motion Planner and
// Command Queue for the physical transit.
package executor

import (
	"fmt"

	"github.com/gantrychess/core/pkg/board"
	"github.com/gantrychess/core/pkg/command"
	"github.com/gantrychess/core/pkg/motion"
	"github.com/gantrychess/core/pkg/narration"
	"github.com/gantrychess/core/pkg/rules"
)

// Outcome reports what a successful executor call did, for the Turn
// Controller's bookkeeping.
type Outcome struct {
	Applied  bool
	Progress bool // true if the fifty-move counter should reset
}

// Move applies a regular (non-castling) move already deemed pseudo-legal
// and classified by the Rule Engine (rules.ResolveMove). It does not
// itself check legality beyond the self-check filter, which it enforces
// by rolling back to an exact prior snapshot on failure.
func Move(b *board.Board, mv board.Move, p *motion.Planner, q *command.Queue, narrate *narration.Channel) Outcome {
	color := b.Turn()
	pos := b.Position()
	backup := *pos
	clone := pos.Clone()

	from, to := mv.From, mv.To
	src := pos.At(from)

	isEnPassant := mv.Type == board.EnPassant
	var epVictimSq board.Square
	if isEnPassant {
		epVictimSq = board.NewSquare(from.Rank, to.File)
	}

	pos.Set(to, src)
	pos.Clear(from)
	if isEnPassant {
		pos.Clear(epVictimSq)
	}

	if err := pos.RefreshKings(); err != nil || rules.IsChecked(pos, color) {
		*pos = backup
		narrate.Set(fmt.Sprintf("%v will be under check, illegal", color))
		return Outcome{}
	}

	switch mv.Type {
	case board.EnPassant:
		depositCaptured(pos, color, mv.Captured, epVictimSq, clone, p, q)
	case board.Capture, board.CapturePromotion:
		depositCaptured(pos, color, mv.Captured, to, clone, p, q)
	}

	if mv.Type == board.DoublePush {
		pos.SetEnPassantFile(to.PlayFile(), true)
	} else {
		pos.SetEnPassantFile(0, false)
	}

	promoted := board.NoKind
	if mv.Type == board.Promotion || mv.Type == board.CapturePromotion {
		target := mv.Promotion
		if target == board.NoKind {
			target = board.Queen
		}
		pos.Set(to, board.Piece{Kind: target, Color: color})
		promoted = target
	}

	if src.Kind == board.Knight {
		p.Direct(q, from, to)
	} else {
		p.Indirect(q, clone, from, to)
	}

	refreshCastlingRights(pos)

	if promoted != board.NoKind {
		narrate.Set(fmt.Sprintf("Promotion for %v, to %v", color, promoted.Name()))
	}

	return Outcome{
		Applied:  true,
		Progress: src.Kind == board.Pawn || mv.Type == board.Capture || mv.Type == board.CapturePromotion || isEnPassant,
	}
}

// Castle applies a castling token already deemed legal by the Rule Engine:
// king and rook are repositioned atomically, then motion is emitted rook
// first along its guaranteed-empty rank, then the king via the general
// evacuation pathway.
func Castle(b *board.Board, kingSide bool, p *motion.Planner, q *command.Queue, narrate *narration.Channel) Outcome {
	color := b.Turn()
	pos := b.Position()
	rank := backRank(color)

	kingFrom := board.NewPlaySquare(rank, 4)
	rookFile, kingToFile, rookToFile := 7, 6, 5
	if !kingSide {
		rookFile, kingToFile, rookToFile = 0, 2, 3
	}
	rookFrom := board.NewPlaySquare(rank, rookFile)
	kingTo := board.NewPlaySquare(rank, kingToFile)
	rookTo := board.NewPlaySquare(rank, rookToFile)

	clone := pos.Clone()

	king := pos.Clear(kingFrom)
	rook := pos.Clear(rookFrom)
	pos.Set(kingTo, king)
	pos.Set(rookTo, rook)

	rights := pos.Castling(color)
	rights.KingMoved = true
	if kingSide {
		rights.HRookMoved = true
	} else {
		rights.ARookMoved = true
	}
	pos.SetCastling(color, rights)
	pos.SetEnPassantFile(0, false)

	p.Castle(q, clone, rookFrom, rookTo, kingFrom, kingTo)

	side := "kingside"
	if !kingSide {
		side = "queenside"
	}
	narrate.Set(fmt.Sprintf("%v castles %v", color, side))

	return Outcome{Applied: true, Progress: false}
}

func depositCaptured(pos *board.Position, mover board.Color, captured board.Piece, capturedSq board.Square, clone *board.Position, p *motion.Planner, q *command.Queue) {
	dst, ok := pos.FirstEmptyPerimeterSquare(mover)
	if !ok {
		// The perimeter is entirely full. The board model still loses the
		// piece faithfully; there is simply nowhere physical to park it.
		return
	}
	pos.Set(dst, captured)
	p.Indirect(q, clone, capturedSq, dst)
	piece := clone.Clear(capturedSq)
	clone.Set(dst, piece)
}

// refreshCastlingRights checks, for both colors, whether the king and
// rook home squares still hold their original piece -- catching both the
// mover's own king/rook moves and a rook captured on its home square.
func refreshCastlingRights(pos *board.Position) {
	for _, color := range []board.Color{board.White, board.Black} {
		rank := backRank(color)
		rights := pos.Castling(color)

		king := pos.At(board.NewPlaySquare(rank, 4))
		if king.Kind != board.King || king.Color != color {
			rights.KingMoved = true
		}
		aRook := pos.At(board.NewPlaySquare(rank, 0))
		if aRook.Kind != board.Rook || aRook.Color != color {
			rights.ARookMoved = true
		}
		hRook := pos.At(board.NewPlaySquare(rank, 7))
		if hRook.Kind != board.Rook || hRook.Color != color {
			rights.HRookMoved = true
		}
		pos.SetCastling(color, rights)
	}
}

func backRank(c board.Color) int {
	if c == board.White {
		return 0
	}
	return 7
}
