package motion

import "github.com/gantrychess/core/pkg/board"

// costMap[r][f] = k means k-1 obstacles must be moved aside to reach (r,f)
// from the transit's source. Zero means unreached.
type costMap [board.GridSize][board.GridSize]int

func inBounds(r, f int) bool {
	return r >= 0 && f >= 0 && r < board.GridSize && f < board.GridSize
}

// computeCost floods outward from from, labelling the source and every
// cell reachable through empty cells with 1, then each further ring of
// cells that must cross one more occupied cell with an incrementing
// label, until every cell on the grid is labelled.
func computeCost(pos *board.Position, from board.Square) *costMap {
	var cost costMap
	floodFill(pos, &cost, from.Rank, from.File, 1)
	for n := 2; hasUnlabeled(&cost); n++ {
		spreadFrom(pos, &cost, n)
	}
	return &cost
}

func floodFill(pos *board.Position, cost *costMap, r, f, n int) {
	if !inBounds(r, f) || cost[r][f] != 0 {
		return
	}
	cost[r][f] = n
	for _, d := range deltas4 {
		nr, nf := r+d[0], f+d[1]
		if inBounds(nr, nf) && pos.At(board.NewSquare(nr, nf)).IsNone() {
			floodFill(pos, cost, nr, nf, n)
		}
	}
}

func spreadFrom(pos *board.Position, cost *costMap, n int) {
	for r := 0; r < board.GridSize; r++ {
		for f := 0; f < board.GridSize; f++ {
			if cost[r][f] != 0 {
				continue
			}
			if adjacentToCost(cost, r, f, n-1) {
				floodFill(pos, cost, r, f, n)
			}
		}
	}
}

func adjacentToCost(cost *costMap, r, f, want int) bool {
	for _, d := range deltas4 {
		nr, nf := r+d[0], f+d[1]
		if inBounds(nr, nf) && cost[nr][nf] == want {
			return true
		}
	}
	return false
}

func hasUnlabeled(cost *costMap) bool {
	for r := 0; r < board.GridSize; r++ {
		for f := 0; f < board.GridSize; f++ {
			if cost[r][f] == 0 {
				return true
			}
		}
	}
	return false
}

// buildPath computes the shortest admissible-edge corridor between src and
// dst, by running the search from dst back to src (a step from u to v is
// admissible iff cost[v] < cost[u], or cost[v] == cost[u] and u is empty)
// and following parent pointers back. The returned slice has path[0] ==
// src and path[len-1] == dst: index 0 is excluded from exit-census and
// evacuation-index bookkeeping as the cell already holding the piece that
// is about to move.
func buildPath(pos *board.Position, cost *costMap, src, dst board.Square) []board.Square {
	type coord struct{ r, f int }
	unset := coord{-1, -1}

	var visited [board.GridSize][board.GridSize]bool
	var ref [board.GridSize][board.GridSize]coord
	for r := 0; r < board.GridSize; r++ {
		for f := 0; f < board.GridSize; f++ {
			ref[r][f] = unset
		}
	}

	queue := []coord{{dst.Rank, dst.File}}
	visited[dst.Rank][dst.File] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curIsPiece := !pos.At(board.NewSquare(cur.r, cur.f)).IsNone()

		for _, d := range deltas4 {
			nr, nf := cur.r+d[0], cur.f+d[1]
			if !inBounds(nr, nf) || visited[nr][nf] {
				continue
			}
			if cost[nr][nf] < cost[cur.r][cur.f] || (!curIsPiece && cost[nr][nf] == cost[cur.r][cur.f]) {
				visited[nr][nf] = true
				ref[nr][nf] = cur
				queue = append(queue, coord{nr, nf})
			}
		}
	}

	var path []board.Square
	cur := coord{src.Rank, src.File}
	for ref[cur.r][cur.f] != unset {
		path = append(path, board.NewSquare(cur.r, cur.f))
		cur = ref[cur.r][cur.f]
	}
	path = append(path, board.NewSquare(dst.Rank, dst.File))
	return path
}

// exitCounts counts, for every path cell except index 0, how many
// 4-connected neighbours are both off-path and empty on pos.
func exitCounts(pos *board.Position, path []board.Square) []int {
	onPath := onPathSet(path)
	exits := make([]int, len(path))
	for i := 1; i < len(path); i++ {
		sq := path[i]
		count := 0
		for _, d := range deltas4 {
			n := board.NewSquare(sq.Rank+d[0], sq.File+d[1])
			if !n.IsValid() || onPath[n] {
				continue
			}
			if pos.At(n).IsNone() {
				count++
			}
		}
		exits[i] = count
	}
	return exits
}

// nearestExits assigns every path index (except 0) the index of the
// nearest cell with a nonzero exit count. It resolves indices in rounds:
// in each round an unresolved index copies the value its lower-index
// neighbour held after the previous round, or failing that its
// higher-index neighbour's, so a tie goes to the lower-index exit. The
// result does not depend on iteration order.
func nearestExits(exits []int) []int {
	n := len(exits)
	nearest := make([]int, n)
	for i := range nearest {
		nearest[i] = -1
	}
	for i := 1; i < n; i++ {
		if exits[i] != 0 {
			nearest[i] = i
		}
	}

	for unresolved(nearest) {
		prev := append([]int(nil), nearest...)
		for i := 1; i < n; i++ {
			if prev[i] != -1 {
				continue
			}
			if i > 1 && prev[i-1] != -1 {
				nearest[i] = prev[i-1]
			} else if i+1 < n && prev[i+1] != -1 {
				nearest[i] = prev[i+1]
			}
		}
	}
	return nearest
}

func unresolved(nearest []int) bool {
	for i := 1; i < len(nearest); i++ {
		if nearest[i] == -1 {
			return true
		}
	}
	return false
}
