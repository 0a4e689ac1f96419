package board

import (
	"fmt"
	"strings"

	"github.com/seekerror/stdlib/pkg/lang"
)

// Placement defines a piece placement, used to seed a Position.
type Placement struct {
	Square Square
	Piece  Piece
}

func (p Placement) String() string {
	return fmt.Sprintf("%c@%v", p.Piece.Letter(), p.Square)
}

// Position represents the placement state of the grid: piece occupancy,
// castling rights and the en-passant target, along with a king-square cache
// used to make check detection cheap. It does not carry the game-level
// metadata (whose turn it is, the 50-move counter) -- see Board.
type Position struct {
	grid     [GridSize][GridSize]Piece
	castling [NumColors]CastlingRights

	// enpassant is the file of a pawn that just played a double push, valid
	// only for the opponent's immediately following move. Absent otherwise.
	enpassant lang.Optional[int]

	kings [NumColors]Square
}

// NewPosition builds a Position from an explicit set of placements. Squares
// not listed default to the empty sentinel. Fails if either side does not
// have exactly one king.
func NewPosition(placements []Placement, castling [NumColors]CastlingRights, enpassant lang.Optional[int]) (*Position, error) {
	p := &Position{castling: castling, enpassant: enpassant}

	for _, pl := range placements {
		if !pl.Square.InPlayArea() {
			return nil, fmt.Errorf("placement outside play area: %v", pl)
		}
		if !p.At(pl.Square).IsNone() {
			return nil, fmt.Errorf("duplicate placement: %v", pl)
		}
		p.Set(pl.Square, pl.Piece)
	}

	if err := p.RefreshKings(); err != nil {
		return nil, err
	}
	return p, nil
}

// At returns the piece occupying sq, or None if empty or out of range.
func (p *Position) At(sq Square) Piece {
	if !sq.IsValid() {
		return None
	}
	return p.grid[sq.Rank][sq.File]
}

// Set places (or clears, with None) a piece at sq.
func (p *Position) Set(sq Square, pc Piece) {
	p.grid[sq.Rank][sq.File] = pc
	if pc.Kind == King {
		p.kings[pc.Color] = sq
	}
}

// Clear empties sq, returning what had been there.
func (p *Position) Clear(sq Square) Piece {
	pc := p.At(sq)
	p.grid[sq.Rank][sq.File] = None
	return pc
}

// King returns the square of the given color's king.
func (p *Position) King(c Color) Square {
	return p.kings[c]
}

// RefreshKings rescans the grid to relocate both kings. Used after bulk
// placement; normal moves keep the cache current via Set.
func (p *Position) RefreshKings() error {
	var found [NumColors]bool
	for _, sq := range p.PlayAreaSquares() {
		pc := p.At(sq)
		if pc.Kind != King {
			continue
		}
		if found[pc.Color] {
			return fmt.Errorf("more than one %v king", pc.Color)
		}
		p.kings[pc.Color] = sq
		found[pc.Color] = true
	}
	if !found[White] || !found[Black] {
		return fmt.Errorf("missing a king")
	}
	return nil
}

// Castling returns the castling-right preconditions for c.
func (p *Position) Castling(c Color) CastlingRights {
	return p.castling[c]
}

// SetCastling updates the castling-right preconditions for c.
func (p *Position) SetCastling(c Color, r CastlingRights) {
	p.castling[c] = r
}

// EnPassantFile returns the file of the pawn eligible for en-passant
// capture this move, if any.
func (p *Position) EnPassantFile() (int, bool) {
	return p.enpassant.V()
}

// SetEnPassantFile records a file as en-passant eligible, or clears it.
func (p *Position) SetEnPassantFile(file int, ok bool) {
	if !ok {
		p.enpassant = lang.Optional[int]{}
		return
	}
	p.enpassant = lang.Some(file)
}

// PlayAreaSquares returns every square in the inner 8x8 play area, in
// rank-major order.
func (p *Position) PlayAreaSquares() []Square {
	squares := make([]Square, 0, 64)
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			squares = append(squares, NewPlaySquare(r, f))
		}
	}
	return squares
}

// FirstEmptyPerimeterSquare scans the 36 true perimeter cells (outside the
// play area) for the first empty one, used to park a piece captured by
// mover. The scan starts from mover's own edge of the grid -- rank 0
// upward for White, rank GridSize-1 downward for Black -- and skips the
// play area entirely so an inner square can never be (mis-)returned.
func (p *Position) FirstEmptyPerimeterSquare(mover Color) (Square, bool) {
	for i := 0; i < GridSize; i++ {
		r := i
		if mover == Black {
			r = GridSize - 1 - i
		}
		for f := 0; f < GridSize; f++ {
			sq := NewSquare(r, f)
			if sq.InPlayArea() {
				continue
			}
			if p.At(sq).IsNone() {
				return sq, true
			}
		}
	}
	return Square{}, false
}

// Clone returns an independent deep copy. Go's array value semantics make
// this a cheap struct copy: the grid, castling and king-cache arrays are
// copied by value, with no aliasing to the original.
func (p *Position) Clone() *Position {
	c := *p
	return &c
}

func (p *Position) String() string {
	var sb strings.Builder
	for r := GridSize - 1; r >= 0; r-- {
		for f := 0; f < GridSize; f++ {
			sb.WriteByte(p.At(NewSquare(r, f)).Letter())
		}
		if r > 0 {
			sb.WriteRune('/')
		}
	}

	ep := "-"
	if f, ok := p.EnPassantFile(); ok {
		ep = string(FileLetter(f))
	}

	return fmt.Sprintf("%v %v/%v(%v)", sb.String(), p.castling[White], p.castling[Black], ep)
}
