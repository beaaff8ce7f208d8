package tui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"termines/game"
)

// refreshInterval bounds how long the clock display can go stale while
// the player is idle.
const refreshInterval = time.Second

// Run owns the terminal for the lifetime of one game: it initializes a
// tcell screen, feeds mapped key events to the board, and repaints
// after every command or refresh tick. It returns once the game is
// decided or aborted.
func Run(b *game.Board, log *logrus.Logger) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer s.Fini()
	s.HideCursor()
	s.Clear()

	log.WithFields(logrus.Fields{
		"height": b.Height(),
		"width":  b.Width(),
		"mines":  b.Mines(),
	}).Info("game started")

	events := make(chan tcell.Event, 8)
	quit := make(chan struct{})
	go s.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	draw(s, b)
	for !b.Done() {
		select {
		case ev, ok := <-events:
			if !ok {
				b.Quit()
				break
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				apply(b, mapKey(ev), log)
			case *tcell.EventResize:
				s.Sync()
			}
		case <-ticker.C:
			// Repaint only, so the time display advances without input.
		}
		draw(s, b)
	}

	log.WithField("status", b.Status()).Info("game over")
	return nil
}

func apply(b *game.Board, c command, log *logrus.Logger) {
	switch c {
	case cmdMoveUp:
		b.Move(-1, 0)
	case cmdMoveDown:
		b.Move(1, 0)
	case cmdMoveLeft:
		b.Move(0, -1)
	case cmdMoveRight:
		b.Move(0, 1)
	case cmdReveal:
		row, col := b.Cursor()
		b.Reveal()
		log.WithFields(logrus.Fields{
			"row":      row,
			"col":      col,
			"revealed": b.Revealed(),
			"status":   b.Status(),
		}).Debug("reveal")
	case cmdFlag:
		b.Flag()
		log.WithField("flags", b.FlagCount()).Debug("flag toggled")
	case cmdQuit:
		b.Quit()
	}
}
