// Package fen reads and writes board positions in Forsyth-Edwards
// Notation, adapted to place pieces onto the inner 8x8 play area of the
// physical 10x10 grid.
package fen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gantrychess/core/pkg/board"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Initial is the FEN for the standard starting arrangement.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN record into a Position, active color and halfmove
// (stale) clock.
func Decode(fen string) (*board.Position, board.Color, int, error) {
	parts := strings.Split(strings.TrimSpace(fen), " ")
	if len(parts) != 6 {
		return nil, 0, 0, fmt.Errorf("invalid number of sections in FEN: %q", fen)
	}

	placements, err := decodePlacement(parts[0])
	if err != nil {
		return nil, 0, 0, err
	}

	active, ok := decodeColor(parts[1])
	if !ok {
		return nil, 0, 0, fmt.Errorf("invalid active color in FEN: %q", fen)
	}

	castling, ok := decodeCastling(parts[2])
	if !ok {
		return nil, 0, 0, fmt.Errorf("invalid castling in FEN: %q", fen)
	}

	ep := lang.Optional[int]{}
	if parts[3] != "-" {
		if len(parts[3]) != 2 {
			return nil, 0, 0, fmt.Errorf("invalid en passant in FEN: %q", fen)
		}
		f := board.ParsePlayFile(parts[3][0])
		if f < 0 {
			return nil, 0, 0, fmt.Errorf("invalid en passant file in FEN: %q", fen)
		}
		ep = lang.Some(f)
	}

	stale, err := strconv.Atoi(parts[4])
	if err != nil || stale < 0 {
		return nil, 0, 0, fmt.Errorf("invalid halfmove clock in FEN: %q", fen)
	}

	pos, err := board.NewPosition(placements, castling, ep)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("invalid position in FEN: %q: %w", fen, err)
	}
	return pos, active, stale, nil
}

// Encode renders a position, active color and halfmove clock as a FEN
// record. The fullmove number is always emitted as 1, since this domain
// does not track it.
func Encode(pos *board.Position, turn board.Color, stale int) string {
	var sb strings.Builder
	for playRank := 7; playRank >= 0; playRank-- {
		blanks := 0
		for playFile := 0; playFile < 8; playFile++ {
			pc := pos.At(board.NewPlaySquare(playRank, playFile))
			if pc.IsNone() {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			l := pc.Kind.Letter()
			if pc.Color == board.White {
				l -= 32 // FEN writes white pieces in uppercase
			}
			sb.WriteByte(l)
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if playRank > 0 {
			sb.WriteRune('/')
		}
	}

	turnLetter := "w"
	if turn == board.Black {
		turnLetter = "b"
	}

	castling := encodeCastling(pos)

	ep := "-"
	if f, ok := pos.EnPassantFile(); ok {
		// The target square is behind the pawn that just double-pushed:
		// rank 6 if Black pushed (White to move), rank 3 otherwise.
		rank := byte('6')
		if turn == board.Black {
			rank = '3'
		}
		ep = string([]byte{board.FileLetter(f), rank})
	}

	return fmt.Sprintf("%v %v %v %v %v 1", sb.String(), turnLetter, castling, ep, stale)
}

func decodePlacement(field string) ([]board.Placement, error) {
	var placements []board.Placement

	playRank, playFile := 7, 0
	for _, r := range field {
		switch {
		case r == '/':
			if playFile != 8 {
				return nil, fmt.Errorf("invalid rank length in FEN placement: %q", field)
			}
			playRank--
			playFile = 0

		case r >= '1' && r <= '8':
			playFile += int(r - '0')

		default:
			kind, ok := board.ParseKind(byte(toLower(r)))
			if !ok {
				return nil, fmt.Errorf("invalid piece %q in FEN placement: %q", r, field)
			}
			color := board.Black
			if isUpper(r) {
				color = board.White
			}
			if playRank < 0 || playFile > 7 {
				return nil, fmt.Errorf("placement out of range in FEN: %q", field)
			}
			placements = append(placements, board.Placement{
				Square: board.NewPlaySquare(playRank, playFile),
				Piece:  board.Piece{Kind: kind, Color: color},
			})
			playFile++
		}
	}
	if playRank != 0 || playFile != 8 {
		return nil, fmt.Errorf("invalid number of ranks in FEN placement: %q", field)
	}
	return placements, nil
}

func decodeColor(field string) (board.Color, bool) {
	switch field {
	case "w":
		return board.White, true
	case "b":
		return board.Black, true
	default:
		return 0, false
	}
}

func decodeCastling(field string) ([board.NumColors]board.CastlingRights, bool) {
	var rights [board.NumColors]board.CastlingRights
	// Start with everything moved, then clear flags for letters present.
	rights[board.White] = board.CastlingRights{KingMoved: true, ARookMoved: true, HRookMoved: true}
	rights[board.Black] = rights[board.White]

	if field == "-" {
		return rights, true
	}
	for _, r := range field {
		switch r {
		case 'K':
			rights[board.White].KingMoved = false
			rights[board.White].HRookMoved = false
		case 'Q':
			rights[board.White].KingMoved = false
			rights[board.White].ARookMoved = false
		case 'k':
			rights[board.Black].KingMoved = false
			rights[board.Black].HRookMoved = false
		case 'q':
			rights[board.Black].KingMoved = false
			rights[board.Black].ARookMoved = false
		default:
			return rights, false
		}
	}
	return rights, true
}

func encodeCastling(pos *board.Position) string {
	out := ""
	if pos.Castling(board.White).CanCastleKingSide() {
		out += "K"
	}
	if pos.Castling(board.White).CanCastleQueenSide() {
		out += "Q"
	}
	if pos.Castling(board.Black).CanCastleKingSide() {
		out += "k"
	}
	if pos.Castling(board.Black).CanCastleQueenSide() {
		out += "q"
	}
	if out == "" {
		return "-"
	}
	return out
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + 32
	}
	return r
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}
