// Package turn implements the per-turn pipeline (component H): parse an
// utterance, validate it syntactically and against the rules, execute it
// against the authoritative Board, analyze the resulting position,
// narrate, and swap the side to move. It also exposes the external-driver
// entry points (spec §6) consumed by the speech-to-text / motor-driver /
// text-to-speech collaborators, which live outside this module.
package turn

import (
	"context"
	"fmt"

	"github.com/gantrychess/core/pkg/board"
	"github.com/gantrychess/core/pkg/command"
	"github.com/gantrychess/core/pkg/executor"
	"github.com/gantrychess/core/pkg/motion"
	"github.com/gantrychess/core/pkg/narration"
	"github.com/gantrychess/core/pkg/notation"
	"github.com/gantrychess/core/pkg/rules"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(1, 0, 0)

// State names the controller's position in the state machine of §4.H.
type State uint8

const (
	IdleWhiteToMove State = iota
	IdleBlackToMove
	TerminatedCheckmateWhite
	TerminatedCheckmateBlack
	TerminatedStalemate
	Terminated50Move
)

func (s State) String() string {
	switch s {
	case IdleWhiteToMove:
		return "idle-white-to-move"
	case IdleBlackToMove:
		return "idle-black-to-move"
	case TerminatedCheckmateWhite:
		return "terminated-checkmate-white"
	case TerminatedCheckmateBlack:
		return "terminated-checkmate-black"
	case TerminatedStalemate:
		return "terminated-stalemate"
	case Terminated50Move:
		return "terminated-50-move"
	default:
		return "?"
	}
}

// Controller owns the authoritative Board together with the command queue,
// narration channel and motion planner a turn drives. It is the sole
// mutator of authoritative state (spec §3 Ownership); the external driver
// only reads through the accessor methods below.
type Controller struct {
	b       *board.Board
	queue   *command.Queue
	narrate narration.Channel
	planner *motion.Planner
}

// New returns a Controller with a freshly initialized board.
func New() *Controller {
	c := &Controller{}
	c.InitBoard()
	return c
}

// Name returns the controller's name and version, in the teacher's
// `<name> <version>` convention.
func (c *Controller) Name() string {
	return fmt.Sprintf("gantrychess %v", version)
}

// InitBoard resets to the standard starting position with a fresh command
// queue and planner pose, then emits the startup homing pulse -- the
// `init_board()` external entry point.
func (c *Controller) InitBoard() {
	c.b = board.InitBoard()
	c.queue = command.NewQueue()
	c.planner = motion.NewPlanner()
	c.narrate = narration.Channel{}
	c.planner.Home(c.queue)
}

// IsRunning is the `is_running()` external entry point.
func (c *Controller) IsRunning() bool { return c.b.Running() }

// GetTurn is the `get_turn()` external entry point.
func (c *Controller) GetTurn() board.Color { return c.b.Turn() }

// Board exposes the authoritative board for read-only inspection (tests,
// console driver rendering).
func (c *Controller) Board() *board.Board { return c.b }

// State derives the controller's state-machine position from the board.
func (c *Controller) State() State {
	if !c.b.Running() {
		switch c.b.Result().Reason {
		case board.Checkmate:
			if c.b.Result().Outcome == board.WhiteWins {
				return TerminatedCheckmateWhite
			}
			return TerminatedCheckmateBlack
		case board.FiftyMoveRule:
			return Terminated50Move
		default:
			return TerminatedStalemate
		}
	}
	if c.b.Turn() == board.White {
		return IdleWhiteToMove
	}
	return IdleBlackToMove
}

// RunTurn is the `run_turn(utterance)` external entry point: parse ->
// validate -> execute -> analyze -> narrate -> swap side. A terminated
// game or an unrecognized utterance leaves all state unchanged and the
// turn is not consumed, per spec §7's error policy.
func (c *Controller) RunTurn(ctx context.Context, utterance string) {
	if !c.b.Running() {
		logw.Debugf(ctx, "run_turn ignored: game already terminated (%v)", c.b.Result())
		return
	}

	res := notation.Parse(utterance)
	if res.Move == "" {
		logw.Debugf(ctx, "unrecognized utterance: %q", utterance)
		return
	}
	if !notation.ValidateSyntax(res.Move) {
		c.narrate.Set("Invalid input")
		return
	}

	color := c.b.Turn()
	outcome, ok := c.apply(color, res)
	if !ok {
		return
	}
	if !outcome.Applied {
		// Self-check rollback: the executor already latched a narration.
		logw.Infof(ctx, "%v move %v rejected: self-check", color, res.Move)
		return
	}

	c.planner.Recalibrate(c.queue)
	c.b.SwapTurn(outcome.Progress)
	logw.Infof(ctx, "%v played %v; turn now %v", color, res.Move, c.b.Turn())

	if !c.b.Running() {
		// SwapTurn already adjudicated the fifty-move draw.
		c.narrate.Set(fmt.Sprintf("Draw by %v", c.b.Result().Reason))
		return
	}

	switch rules.Analyze(c.b.Position(), color) {
	case rules.Checkmate:
		result := c.b.AdjudicateNoLegalMove(true)
		c.narrate.Set(fmt.Sprintf("Checkmate, %v wins!", winnerColor(result)))
	case rules.Stalemate:
		c.b.AdjudicateNoLegalMove(false)
		c.narrate.Set("Stalemate, draw!")
	case rules.Check:
		c.narrate.Set(fmt.Sprintf("%v is in check", c.b.Turn()))
	}
}

// apply validates the parsed move against the rules (resolving castling or
// wildcard squares) and, if legal, executes it. ok is false when the move
// was rejected before execution, in which case a narration has already
// been latched.
func (c *Controller) apply(color board.Color, res notation.Result) (executor.Outcome, bool) {
	if res.Move == "o-o" || res.Move == "o-o-o" {
		kingSide := res.Move == "o-o"
		legal := rules.CanCastleKingSide(c.b.Position(), color)
		if !kingSide {
			legal = rules.CanCastleQueenSide(c.b.Position(), color)
		}
		if !legal {
			c.narrate.Set("Can't castle now")
			return executor.Outcome{}, false
		}
		return executor.Castle(c.b, kingSide, c.planner, c.queue, &c.narrate), true
	}

	mv, ok := rules.ResolveMove(c.b.Position(), color, res.Move, res.Promotion)
	if !ok {
		c.narrate.Set("Not a legal move")
		return executor.Outcome{}, false
	}
	return executor.Move(c.b, mv, c.planner, c.queue, &c.narrate), true
}

func winnerColor(result board.Result) board.Color {
	if result.Outcome == board.BlackWins {
		return board.Black
	}
	return board.White
}

// HasCommands is the `has_commands()` external entry point.
func (c *Controller) HasCommands() bool { return c.queue.HasNext() }

// GetCommandKind is the `get_command_kind()` external entry point. Call
// only after HasCommands reports true.
func (c *Controller) GetCommandKind() command.Kind { return c.queue.Peek().Kind }

// GetIntCommand is the `get_int_command()` external entry point: reads the
// magnet state of a magnet-toggle command and pops it.
func (c *Controller) GetIntCommand() int {
	cmd := c.queue.Peek()
	c.queue.Advance()
	return cmd.IntArg
}

// GetFloatCommandA is the `get_float_command_a()` external entry point.
// For a single-axis command this is its only parameter and pops the
// command; for a both-axes command it is the row delta and does not pop,
// since GetFloatCommandB still needs to read the column delta first.
func (c *Controller) GetFloatCommandA() float64 {
	cmd := c.queue.Peek()
	if cmd.Kind != command.BothAxes {
		c.queue.Advance()
	}
	return cmd.DeltaA
}

// GetFloatCommandB is the `get_float_command_b()` external entry point:
// reads the column delta of a both-axes command and pops it.
func (c *Controller) GetFloatCommandB() float64 {
	cmd := c.queue.Peek()
	c.queue.Advance()
	return cmd.DeltaB
}

// GetNarration is the `get_narration()` external entry point: returns and
// clears the latched narration string, or "" if none is pending.
func (c *Controller) GetNarration() string {
	msg, _ := c.narrate.Consume()
	return msg
}
