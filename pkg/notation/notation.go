// Package notation turns a free-form spoken utterance into the canonical
// move notation consumed by the rest of the system: a 5-character move
// (piece letter, source file, source rank, destination file, destination
// rank) or a castling token, tolerating homophone variants and partial
// disambiguation.
package notation

import (
	"strings"

	"github.com/gantrychess/core/pkg/board"
)

// Result is the outcome of parsing one utterance.
type Result struct {
	// Move is the 5-char canonical move, "o-o", "o-o-o", or "" if the
	// utterance was not understood.
	Move string
	// Promotion is the promotion target kind, if the utterance named one.
	// NoKind means unspecified (the caller defaults to Queen).
	Promotion board.Kind
}

type pieceWord struct {
	word   string
	letter byte
}

// pieceWords lists every recognised spelling, in the scan priority used to
// resolve "earliest occurrence wins" ties: this mirrors the fixed
// left-to-right keyword checks of the source parser.
var pieceWords = []pieceWord{
	{"pawn", 'p'}, {"pond", 'p'}, {"pine", 'p'}, {"pain", 'p'}, {"paun", 'p'},
	{"night", 'n'}, {"horse", 'n'},
	{"bishop", 'b'}, {"rook", 'r'}, {"queen", 'q'}, {"king", 'k'},
}

var fileWords = []string{"apple", "banana", "cash", "donut", "eggplant", "falafel", "garlic", "hazelnut"}

type rankWord struct {
	word string
	rank byte // '1'..'8'
}

var rankWords = []rankWord{
	{"1", '1'}, {"one", '1'}, {"won", '1'},
	{"2", '2'}, {"two", '2'}, {"too", '2'}, {"to", '2'},
	{"3", '3'}, {"three", '3'},
	{"4", '4'}, {"four", '4'}, {"for", '4'},
	{"5", '5'}, {"five", '5'},
	{"6", '6'}, {"six", '6'}, {"stick", '6'},
	{"7", '7'}, {"seven", '7'},
	{"8", '8'}, {"eight", '8'}, {"ate", '8'},
}

// Parse converts an arbitrary utterance into a Result. Recognition
// tolerates homophone variants of piece names, file letters and rank
// digits, and partial disambiguation via the "$" wildcard.
func Parse(utterance string) Result {
	input := strings.ToLower(utterance)

	pieceLetter, pieceWordStart, found := earliestPieceWord(input)
	if !found {
		return Result{}
	}

	if strings.Contains(input, "castle") {
		rest := input[pieceWordStart:]
		switch {
		case strings.HasPrefix(rest, "queen"):
			return Result{Move: "o-o-o"}
		case strings.HasPrefix(rest, "king"):
			return Result{Move: "o-o"}
		default:
			return Result{}
		}
	}

	files, ranks := scanFilesAndRanks(input)
	if len(files) == 0 || len(ranks) == 0 {
		return Result{}
	}

	srcFile, srcRank := byte('$'), byte('$')
	if len(files) > 1 {
		srcFile = files[0]
	}
	if len(ranks) > 1 {
		srcRank = ranks[0]
	}
	dstFile := files[len(files)-1]
	dstRank := ranks[len(ranks)-1]

	move := string([]byte{pieceLetter, srcFile, srcRank, dstFile, dstRank})

	result := Result{Move: move}
	if pieceLetter == 'p' {
		result.Promotion = promotionTarget(input)
	}
	return result
}

func earliestPieceWord(input string) (byte, int, bool) {
	best := -1
	var letter byte
	for _, pw := range pieceWords {
		if idx := strings.Index(input, pw.word); idx >= 0 && (best == -1 || idx < best) {
			best = idx
			letter = pw.letter
		}
	}
	return letter, best, best >= 0
}

// scanFilesAndRanks walks the utterance once, recording up to two file-word
// and two rank-word occurrences in the order they appear. At each position,
// a file-word match takes priority over a rank-word match, matching the
// source's fixed if/else-if check order.
func scanFilesAndRanks(input string) ([]byte, []byte) {
	var files, ranks []byte

	for i := 0; i < len(input); i++ {
		if len(files) < 2 {
			if f := matchFileWord(input[i:]); f >= 0 {
				files = append(files, byte('a'+f))
				continue
			}
		}
		if len(ranks) < 2 {
			if r, ok := matchRankWord(input[i:]); ok {
				ranks = append(ranks, r)
			}
		}
	}
	return files, ranks
}

func matchFileWord(tail string) int {
	for i, w := range fileWords {
		if strings.HasPrefix(tail, w) {
			return i
		}
	}
	return -1
}

func matchRankWord(tail string) (byte, bool) {
	for _, rw := range rankWords {
		if strings.HasPrefix(tail, rw.word) {
			return rw.rank, true
		}
	}
	return 0, false
}

func promotionTarget(input string) board.Kind {
	switch {
	case strings.Contains(input, "queen"):
		return board.Queen
	case strings.Contains(input, "rook"):
		return board.Rook
	case strings.Contains(input, "bishop"):
		return board.Bishop
	case strings.Contains(input, "night"), strings.Contains(input, "horse"):
		return board.Knight
	default:
		return board.NoKind
	}
}

// ValidateSyntax checks that a canonical move (not a castling token) has
// the right shape: 5 characters, a recognised piece letter, file in
// {a..h,$}, rank in {1..8,$}, in source/destination order.
func ValidateSyntax(move string) bool {
	if move == "o-o" || move == "o-o-o" {
		return true
	}
	if len(move) != 5 {
		return false
	}
	b := []byte(move)
	if _, ok := board.ParseKind(b[0]); !ok {
		return false
	}
	return isFileOrWildcard(b[1]) && isRankOrWildcard(b[2]) && isFileOrWildcard(b[3]) && isRankOrWildcard(b[4])
}

func isFileOrWildcard(b byte) bool {
	return b == '$' || (b >= 'a' && b <= 'h')
}

func isRankOrWildcard(b byte) bool {
	return b == '$' || (b >= '1' && b <= '8')
}
