package board

import "github.com/seekerror/stdlib/pkg/lang"

// backRank lists the non-pawn kinds in starting file order, a through h.
var backRank = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// initialPosition builds the standard chess starting arrangement on the
// inner 8x8 play area, full castling rights, no en-passant target.
func initialPosition() (*Position, error) {
	var placements []Placement

	for f := 0; f < 8; f++ {
		placements = append(placements,
			Placement{Square: NewPlaySquare(0, f), Piece: Piece{Kind: backRank[f], Color: White}},
			Placement{Square: NewPlaySquare(1, f), Piece: Piece{Kind: Pawn, Color: White}},
			Placement{Square: NewPlaySquare(6, f), Piece: Piece{Kind: Pawn, Color: Black}},
			Placement{Square: NewPlaySquare(7, f), Piece: Piece{Kind: backRank[f], Color: Black}},
		)
	}

	castling := [NumColors]CastlingRights{White: FullCastlingRights, Black: FullCastlingRights}
	return NewPosition(placements, castling, lang.Optional[int]{})
}
