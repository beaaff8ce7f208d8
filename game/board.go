// Package game implements the minesweeper board engine: mine layout,
// player visibility, cursor, flood-fill reveal and the game outcome
// state machine. It performs no I/O; rendering and input mapping live
// in the tui package.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// MaxDim is the largest supported board dimension on either axis.
const MaxDim = 127

var (
	ErrDimensions = errors.New("board dimensions out of range")
	ErrMineCount  = errors.New("mine count out of range")
)

// Outcome is the game result classification. Transitions out of Playing
// are one-way; once the game is decided the board no longer mutates.
type Outcome int

const (
	Playing Outcome = iota
	Won
	Lost
	Aborted
)

// String returns the player-facing status label.
func (o Outcome) String() string {
	switch o {
	case Won:
		return "Win"
	case Lost:
		return "Lose"
	case Aborted:
		return "Aborted"
	default:
		return "Playing"
	}
}

type cellState uint8

const (
	hidden cellState = iota
	revealed
	flagged
)

// cell carries both layers of one grid position: the immutable mine
// layer (mine, adjacent) fixed at placement time, and the visibility
// layer (state) mutated only by player actions.
type cell struct {
	mine     bool
	adjacent int
	state    cellState
}

type coord struct {
	row, col int
}

// Board is the engine state for a single game. Not safe for concurrent
// use; the whole game is a single synchronous command loop.
type Board struct {
	height, width int
	mines         int

	cells [][]cell

	curRow, curCol int
	outcome        Outcome
	revealedCnt    int
	flagsCnt       int

	rng     *rand.Rand
	now     func() time.Time
	started time.Time
}

// New validates the configuration and returns a freshly mined board
// with the cursor at (0,0). A nil rng falls back to a wall-clock seed.
// mines must be strictly less than height*width: mine placement is
// rejection sampling and a full board could never finish placing.
func New(height, width, mines int, rng *rand.Rand) (*Board, error) {
	if height < 1 || height > MaxDim || width < 1 || width > MaxDim {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensions, height, width)
	}
	if mines < 0 || mines >= height*width {
		return nil, fmt.Errorf("%w: %d mines on %d cells", ErrMineCount, mines, height*width)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	b := &Board{
		height: height,
		width:  width,
		mines:  mines,
		rng:    rng,
		now:    time.Now,
	}
	b.reseed()
	return b, nil
}

// reseed rebuilds the mine layout and resets the game state. The cursor
// is deliberately left alone: a restart only happens inside Reveal when
// the opening move would have hit a mine, and the player keeps their
// position.
func (b *Board) reseed() {
	b.cells = make([][]cell, b.height)
	for row := range b.cells {
		b.cells[row] = make([]cell, b.width)
	}

	placed := 0
	for placed < b.mines {
		row := b.rng.Intn(b.height)
		col := b.rng.Intn(b.width)
		if !b.cells[row][col].mine {
			b.cells[row][col].mine = true
			placed++
		}
	}
	b.computeAdjacency()

	b.outcome = Playing
	b.revealedCnt = 0
	b.flagsCnt = 0
	b.started = b.now()
}

// computeAdjacency stores the Moore-neighborhood mine count on every
// non-mine cell. Done once per layout, never recomputed.
func (b *Board) computeAdjacency() {
	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			if b.cells[row][col].mine {
				continue
			}
			count := 0
			b.around(row, col, func(nr, nc int) {
				if b.cells[nr][nc].mine {
					count++
				}
			})
			b.cells[row][col].adjacent = count
		}
	}
}

func (b *Board) in(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

// at is the checked accessor: every lookup with caller-supplied
// coordinates goes through here rather than raw indexing.
func (b *Board) at(row, col int) (*cell, bool) {
	if !b.in(row, col) {
		return nil, false
	}
	return &b.cells[row][col], true
}

func (b *Board) around(row, col int, fn func(nr, nc int)) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nr, nc := row+dr, col+dc
			if b.in(nr, nc) {
				fn(nr, nc)
			}
		}
	}
}

// Move shifts the cursor by the given delta if the result stays in
// bounds; otherwise the move is silently ignored (no clamping). No-op
// once the game is decided.
func (b *Board) Move(dRow, dCol int) {
	if b.outcome != Playing {
		return
	}
	nr, nc := b.curRow+dRow, b.curCol+dCol
	if b.in(nr, nc) {
		b.curRow, b.curCol = nr, nc
	}
}

// Flag toggles the cursor cell between hidden and flagged. Revealed
// cells are untouched. There is no cap against the mine count; the
// player may over-flag.
func (b *Board) Flag() {
	if b.outcome != Playing {
		return
	}
	c := &b.cells[b.curRow][b.curCol]
	switch c.state {
	case hidden:
		c.state = flagged
		b.flagsCnt++
	case flagged:
		c.state = hidden
		b.flagsCnt--
	}
}

// Reveal opens the cursor cell and flood-fills from it. The very first
// reveal of a game never hits a mine: the board is silently reseeded
// until the cursor cell is safe. With mines == cells-1 that loop is
// expected to retrigger often; it still terminates with probability 1
// and the up-front mine-count validation keeps it from being hopeless.
func (b *Board) Reveal() {
	if b.outcome != Playing {
		return
	}
	for b.revealedCnt == 0 && b.cells[b.curRow][b.curCol].mine {
		b.reseed()
	}
	// Re-arm the clock on the first successful reveal so elapsed time
	// excludes pre-game dithering.
	if b.revealedCnt == 0 {
		b.started = b.now()
	}
	b.fill(b.curRow, b.curCol)
}

// fill is the reveal propagation: an explicit depth-first stack over
// the 8-connected neighborhood. Neighbors are pushed in reverse
// row-major order so they pop in row-major order, matching the
// recursive reference traversal. Flagged cells stop propagation and
// stay untouched; a decided outcome aborts the whole fill.
func (b *Board) fill(row, col int) {
	stack := []coord{{row, col}}
	for len(stack) > 0 {
		if b.outcome != Playing {
			return
		}
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		c := &b.cells[p.row][p.col]
		if c.state == flagged {
			continue
		}
		if c.state != revealed {
			c.state = revealed
			b.revealedCnt++
		}
		if c.mine {
			b.outcome = Lost
			return
		}
		if b.revealedCnt >= b.height*b.width-b.mines {
			b.outcome = Won
			return
		}
		if c.adjacent != 0 {
			continue
		}
		for dr := 1; dr >= -1; dr-- {
			for dc := 1; dc >= -1; dc-- {
				if dr == 0 && dc == 0 {
					continue
				}
				nr, nc := p.row+dr, p.col+dc
				if !b.in(nr, nc) || b.cells[nr][nc].state == revealed {
					continue
				}
				stack = append(stack, coord{nr, nc})
			}
		}
	}
}

// Quit aborts a game still in progress. A decided outcome is never
// overwritten, so quitting after a win still reports the win.
func (b *Board) Quit() {
	if b.outcome == Playing {
		b.outcome = Aborted
	}
}

// Height reports the number of rows.
func (b *Board) Height() int { return b.height }

// Width reports the number of columns.
func (b *Board) Width() int { return b.width }

// Mines reports the configured mine count.
func (b *Board) Mines() int { return b.mines }

// FlagCount reports how many cells are currently flagged.
func (b *Board) FlagCount() int { return b.flagsCnt }

// Revealed reports how many cells are currently revealed.
func (b *Board) Revealed() int { return b.revealedCnt }

// Cursor reports the current cursor position.
func (b *Board) Cursor() (row, col int) { return b.curRow, b.curCol }

// Outcome reports the current game result classification.
func (b *Board) Outcome() Outcome { return b.outcome }

// Done reports whether the game has ended for any reason.
func (b *Board) Done() bool { return b.outcome != Playing }

// Status returns the human-readable status string.
func (b *Board) Status() string { return b.outcome.String() }

// ElapsedMilliseconds reports the time since the clock was (re)armed.
// It stays zero until the first successful reveal.
func (b *Board) ElapsedMilliseconds() int64 {
	if b.revealedCnt == 0 {
		return 0
	}
	return b.now().Sub(b.started).Milliseconds()
}
