// Package console is a reference driver standing in for the external
// speech-to-text, motor/magnet hardware controller and text-to-speech
// collaborators described in spec.md §6: it reads utterance lines from
// stdin, feeds them to a turn.Controller, drains and prints the emitted
// command stream the way the motor driver would consume it, and prints any
// latched narration the way the TTS layer would speak it.
package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/gantrychess/core/pkg/board"
	"github.com/gantrychess/core/pkg/command"
	"github.com/gantrychess/core/pkg/turn"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

const ProtocolName = "console"

// Driver reads utterances from in and writes board/command/narration
// transcripts to its out channel.
type Driver struct {
	iox.AsyncCloser

	c   *turn.Controller
	out chan<- string
}

// NewDriver starts processing utterances from in against c, in a
// background goroutine. The returned channel carries transcript lines
// until the driver closes.
func NewDriver(ctx context.Context, c *turn.Controller, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		c:           c,
		out:         out,
	}
	go d.process(ctx, in)
	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized: %v", d.c.Name())
	d.printBoard()

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			cmd := strings.ToLower(strings.TrimSpace(line))
			switch cmd {
			case "":
				// ignore empty line

			case "reset", "r":
				d.c.InitBoard()
				d.printBoard()

			case "print", "p":
				d.printBoard()

			case "quit", "exit", "q":
				return

			default:
				d.c.RunTurn(ctx, line)
				d.drainCommands()
				if msg := d.c.GetNarration(); msg != "" {
					d.out <- fmt.Sprintf("tts: %v", msg)
				}
				d.printBoard()
			}

		case <-d.Closed():
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

// drainCommands consumes the entire command queue using the same
// peek-then-pop protocol an external motor driver would follow (spec §6).
func (d *Driver) drainCommands() {
	for d.c.HasCommands() {
		switch kind := d.c.GetCommandKind(); kind {
		case command.MagnetToggle:
			d.out <- fmt.Sprintf("cmd: magnet %v", d.c.GetIntCommand())
		case command.XAxis:
			d.out <- fmt.Sprintf("cmd: x %.2f", d.c.GetFloatCommandA())
		case command.YAxis:
			d.out <- fmt.Sprintf("cmd: y %.2f", d.c.GetFloatCommandA())
		case command.BothAxes:
			a := d.c.GetFloatCommandA()
			b := d.c.GetFloatCommandB()
			d.out <- fmt.Sprintf("cmd: move %.2f,%.2f", a, b)
		default:
			d.out <- fmt.Sprintf("cmd: unknown kind %v", kind)
		}
	}
}

const (
	files      = "    a   b   c   d   e   f   g   h"
	horizontal = "  ---------------------------------"
	vertical   = " | "
)

func (d *Driver) printBoard() {
	b := d.c.Board()
	pos := b.Position()

	d.out <- ""
	d.out <- files
	d.out <- horizontal
	for playRank := 7; playRank >= 0; playRank-- {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%d", playRank+1))
		sb.WriteString(vertical)
		for playFile := 0; playFile < 8; playFile++ {
			pc := pos.At(board.NewPlaySquare(playRank, playFile))
			sb.WriteByte(pc.Letter())
			sb.WriteString(vertical)
		}
		d.out <- sb.String()
		d.out <- horizontal
	}
	d.out <- files
	d.out <- ""
	d.out <- fmt.Sprintf("turn: %v, state: %v, result: %v", b.Turn(), d.c.State(), b.Result())
	d.out <- ""
}
