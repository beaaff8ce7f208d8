// termines is a terminal minesweeper. One of three mutually exclusive
// flags picks the board preset; with no flag the game starts in
// beginner mode.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"termines/game"
	"termines/scores"
	"termines/tui"
)

type preset struct {
	Name   string
	Height int
	Width  int
	Mines  int
}

var presets = []preset{
	{Name: "Beginner", Height: 8, Width: 8, Mines: 10},
	{Name: "Intermediate", Height: 16, Width: 16, Mines: 40},
	{Name: "Expert", Height: 16, Width: 30, Mines: 99},
}

type options struct {
	preset preset
	debug  bool
}

var errUsage = errors.New("usage error")

// parseArgs resolves the command line into a board preset. More than
// one preset flag, an unknown flag, or stray arguments are usage
// errors; no flag selects beginner.
func parseArgs(args []string) (options, error) {
	fs := flag.NewFlagSet("termines", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	beginner := fs.Bool("b", false, "beginner mode")
	intermediate := fs.Bool("i", false, "intermediate mode")
	expert := fs.Bool("e", false, "expert mode")
	debug := fs.Bool("debug", false, "write a debug log file")
	if err := fs.Parse(args); err != nil {
		return options{}, errUsage
	}
	if fs.NArg() > 0 {
		return options{}, errUsage
	}

	selected := 0
	opts := options{preset: presets[0], debug: *debug}
	if *beginner {
		selected++
		opts.preset = presets[0]
	}
	if *intermediate {
		selected++
		opts.preset = presets[1]
	}
	if *expert {
		selected++
		opts.preset = presets[2]
	}
	if selected > 1 {
		return options{}, errUsage
	}
	return opts, nil
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: termines [-b|-i|-e] [-debug]")
	fmt.Fprintln(w, "    -b    Beginner       8 x 8  grid with 10 mines")
	fmt.Fprintln(w, "    -i    Intermediate  16 x 16 grid with 40 mines")
	fmt.Fprintln(w, "    -e    Expert        16 x 30 grid with 99 mines")
}

func newLogger(debug bool) (*logrus.Logger, func()) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	if !debug {
		return log, func() {}
	}
	f, err := os.OpenFile("termines.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return log, func() {}
	}
	log.SetOutput(f)
	log.SetLevel(logrus.DebugLevel)
	return log, func() { _ = f.Close() }
}

func run() error {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		usage(os.Stderr)
		os.Exit(2)
	}

	log, closeLog := newLogger(opts.debug)
	defer closeLog()

	p := opts.preset
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	b, err := game.New(p.Height, p.Width, p.Mines, rng)
	if err != nil {
		return err
	}

	if err := tui.Run(b, log); err != nil {
		return err
	}

	fmt.Printf("Status: %s\n", b.Status())
	if b.Outcome() == game.Won {
		elapsed := b.ElapsedMilliseconds()
		fmt.Printf("Cleared %s in %d ms\n", p.Name, elapsed)
		rec := scores.Load()
		key := scores.Key(p.Name, p.Height, p.Width, p.Mines)
		if rec.Update(key, elapsed) {
			if err := scores.Save(rec); err != nil {
				log.WithError(err).Warn("could not save best time")
			} else {
				fmt.Println("New best time!")
			}
		}
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
