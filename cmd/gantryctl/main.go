// gantryctl is a console reference driver for the gantry-chess core: it
// stands in for the external speech-to-text front-end, motor/magnet
// hardware controller, and text-to-speech backend described in spec.md
// §6, so the core can be exercised from a terminal.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gantrychess/core/pkg/turn"
	"github.com/gantrychess/core/pkg/turn/console"
	"github.com/seekerror/logw"
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: gantryctl [options]

gantryctl is a console driver for the gantry-chess core, standing in for
the speech-to-text, motor-driver and text-to-speech collaborators.
Type moves as free-form utterances, e.g. "pawn eggplant too eggplant for".
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	c := turn.New()
	logw.Infof(ctx, "Initialized %v", c.Name())

	in := readUtteranceLines(ctx)
	driver, out := console.NewDriver(ctx, c, in)
	go speakLines(ctx, out)

	<-driver.Closed()
}

// readUtteranceLines reads stdin lines into a channel, standing in for the
// speech-to-text front-end's utterance delivery.
func readUtteranceLines(ctx context.Context) <-chan string {
	ret := make(chan string, 1)
	go func() {
		defer close(ret)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			logw.Debugf(ctx, "utterance: %v", scanner.Text())
			ret <- scanner.Text()
		}
	}()
	return ret
}

// speakLines writes the driver's transcript lines to stdout, standing in
// for the text-to-speech backend.
func speakLines(ctx context.Context, out <-chan string) {
	for line := range out {
		logw.Debugf(ctx, "spoken: %v", line)
		_, _ = fmt.Fprintln(os.Stdout, line)
	}
}
