// Package motion plans the physical transit of a piece across the gantry
// board: straight-line motion for knights and castling rooks, and for
// everything else a min-disruption path that temporarily evacuates
// blockers to an adjacent free cell, moves the target piece, then restores
// each blocker in reverse order. It reads a Board Clone (never authoritative
// state) and writes only to a command.Queue.
package motion

import (
	"context"

	"github.com/gantrychess/core/pkg/board"
	"github.com/gantrychess/core/pkg/command"
	"github.com/seekerror/logw"
)

// MotorOverflow compensates for magnet drag on every step of a transit
// after the initial move-to-position: the gantry overshoots slightly in
// the direction of travel so the dragged piece settles on-centre.
const MotorOverflow = 0.45

// deltas4 is the fixed 4-connected neighbour scan order: up, down, left,
// right.
var deltas4 = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Planner tracks the gantry's simulated pose across the commands it has
// emitted so each move is encoded as a delta from wherever the gantry last
// was. Coordinates are integer cell centres; there is no half-cell offset.
type Planner struct {
	Row, Col float64
}

// NewPlanner returns a Planner positioned at the origin.
func NewPlanner() *Planner {
	return &Planner{}
}

// Home emits the startup homing pulse that drives the gantry into its
// physical corner regardless of where the hardware last left off, then
// zeroes the tracked pose to match.
func (p *Planner) Home(q *command.Queue) {
	q.Push(command.MoveBoth(-50, -50))
	p.Row, p.Col = 0, 0
}

// Recalibrate returns the gantry to the origin if it has drifted, called
// at the end of a command chain between turns.
func (p *Planner) Recalibrate(q *command.Queue) {
	if p.Row != 0 || p.Col != 0 {
		p.moveBoth(q, -p.Row, -p.Col, false)
	}
}

// Direct emits a straight-line transit with no pathfinding: move to
// source, magnet on, move to destination, magnet off. Used for knight
// moves and the rook leg of a castle, where the path is already known to
// be clear.
func (p *Planner) Direct(q *command.Queue, from, to board.Square) {
	p.moveTo(q, from)
	p.toggleMagnet(q, true)
	p.stepTo(q, to)
	p.toggleMagnet(q, false)
}

// Castle moves the rook along its straight, already-verified-empty rank,
// then routes the king with the general evacuation pathway. clone must
// reflect the position immediately before the castle; it is mutated in
// place to track the rook's relocation before the king is routed.
func (p *Planner) Castle(q *command.Queue, clone *board.Position, rookFrom, rookTo, kingFrom, kingTo board.Square) {
	p.Direct(q, rookFrom, rookTo)
	clone.Set(rookTo, clone.Clear(rookFrom))
	p.Indirect(q, clone, kingFrom, kingTo)
}

// Indirect routes a non-leaping piece from from to to on a possibly
// crowded board: it computes a min-disruption path, evacuates blockers as
// needed, moves the piece, then restores each blocker. clone is mutated
// during evacuation and restored to its original occupancy by the time
// Indirect returns.
func (p *Planner) Indirect(q *command.Queue, clone *board.Position, from, to board.Square) {
	cost := computeCost(clone, from)
	path := buildPath(clone, cost, from, to)
	exits := exitCounts(clone, path)
	p.clearPath(q, clone, path, exits, 0)
}

// clearPath is the recursive evacuation scheduler. path[0] is the square
// holding the piece to be moved; path[len(path)-1] is its destination.
// d is the evacuation distance currently being tried.
func (p *Planner) clearPath(q *command.Queue, clone *board.Position, path []board.Square, exits []int, d int) {
	nearest := nearestExits(exits)

	anyOccupied := false
	for i := 1; i < len(path); i++ {
		if clone.At(path[i]).IsNone() {
			continue
		}
		anyOccupied = true
		if absInt(nearest[i]-i) != d {
			continue
		}
		p.evacuateAndRecurse(q, clone, path, exits, d, i, nearest[i])
		return
	}

	if anyOccupied {
		p.clearPath(q, clone, path, exits, d+1)
		return
	}

	// Base case: nothing left blocking the path. Move the target piece
	// from source to destination, one path cell at a time.
	p.moveTo(q, path[0])
	p.toggleMagnet(q, true)
	for i := 1; i < len(path); i++ {
		p.stepTo(q, path[i])
	}
	p.toggleMagnet(q, false)
}

// evacuateAndRecurse walks the blocker at path[i] along the path to its
// nearest exit cell, sidesteps it onto an off-path empty neighbour, and
// recurses at the same distance d. On return it restores the blocker by
// the exact inverse motion.
func (p *Planner) evacuateAndRecurse(q *command.Queue, clone *board.Position, path []board.Square, exits []int, d, i, exitIdx int) {
	p.moveTo(q, path[i])
	p.toggleMagnet(q, true)

	cur := i
	for cur != exitIdx {
		cur = step(cur, exitIdx)
		p.stepTo(q, path[cur])
	}

	exitSq, ok := firstOffPathEmptyNeighbor(clone, path, path[cur])
	if !ok {
		// No off-path escape for this blocker: an extremely crowded board
		// corner case (spec §4.E/§7/§9). Leave the commands emitted so far
		// as-is; the model stays consistent, just not physically realized
		// beyond what was already queued.
		logw.Warnf(context.Background(), "motion: no evacuation exit for blocker at %v, transit abandoned", path[i])
		p.toggleMagnet(q, false)
		return
	}

	p.stepTo(q, exitSq)
	p.toggleMagnet(q, false)
	exits[cur]--

	piece := clone.Clear(path[i])
	clone.Set(exitSq, piece)

	p.clearPath(q, clone, path, exits, d)

	p.moveTo(q, exitSq)
	p.toggleMagnet(q, true)
	p.stepTo(q, path[cur])
	back := cur
	for back != i {
		back = step(back, i)
		p.stepTo(q, path[back])
	}
	p.toggleMagnet(q, false)

	clone.Set(path[i], clone.Clear(exitSq))
}

func step(from, to int) int {
	if from > to {
		return from - 1
	}
	return from + 1
}

func firstOffPathEmptyNeighbor(clone *board.Position, path []board.Square, sq board.Square) (board.Square, bool) {
	onPath := onPathSet(path)
	for _, d := range deltas4 {
		n := board.NewSquare(sq.Rank+d[0], sq.File+d[1])
		if !n.IsValid() || onPath[n] {
			continue
		}
		if clone.At(n).IsNone() {
			return n, true
		}
	}
	return board.Square{}, false
}

func onPathSet(path []board.Square) map[board.Square]bool {
	set := make(map[board.Square]bool, len(path))
	for _, sq := range path {
		set[sq] = true
	}
	return set
}

// moveTo positions the gantry directly over sq with no overflow
// compensation, as the first move of a transit.
func (p *Planner) moveTo(q *command.Queue, sq board.Square) {
	p.moveBoth(q, float64(sq.Rank)-p.Row, float64(sq.File)-p.Col, false)
}

// stepTo advances the gantry to sq with overflow compensation, as a
// subsequent step of a transit already under way.
func (p *Planner) stepTo(q *command.Queue, sq board.Square) {
	p.moveBoth(q, float64(sq.Rank)-p.Row, float64(sq.File)-p.Col, true)
}

func (p *Planner) moveBoth(q *command.Queue, deltaRow, deltaCol float64, overflow bool) {
	p.Row += deltaRow
	p.Col += deltaCol
	if overflow {
		deltaRow = withOverflow(deltaRow)
		deltaCol = withOverflow(deltaCol)
	}
	q.Push(command.MoveBoth(deltaRow, deltaCol))
}

func withOverflow(delta float64) float64 {
	switch {
	case delta > 0:
		return delta + MotorOverflow
	case delta < 0:
		return delta - MotorOverflow
	default:
		return 0
	}
}

func (p *Planner) toggleMagnet(q *command.Queue, on bool) {
	if on {
		q.Push(command.MagnetOn())
	} else {
		q.Push(command.MagnetOff())
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
