package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boardFrom builds a board from a layout where '*' is a mine and any
// other rune is empty, then computes adjacency the same way reseed does.
func boardFrom(t *testing.T, rows []string) *Board {
	t.Helper()
	require.NotEmpty(t, rows)
	b := &Board{
		height: len(rows),
		width:  len(rows[0]),
		now:    time.Now,
	}
	b.cells = make([][]cell, b.height)
	for r, row := range rows {
		require.Len(t, row, b.width)
		b.cells[r] = make([]cell, b.width)
		for c, ch := range row {
			if ch == '*' {
				b.cells[r][c].mine = true
				b.mines++
			}
		}
	}
	b.computeAdjacency()
	return b
}

func (b *Board) moveTo(row, col int) {
	b.curRow, b.curCol = row, col
}

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name        string
		h, w, mines int
		wantErr     error
	}{
		{"zero height", 0, 8, 1, ErrDimensions},
		{"zero width", 8, 0, 1, ErrDimensions},
		{"height too large", MaxDim + 1, 8, 1, ErrDimensions},
		{"width too large", 8, MaxDim + 1, 1, ErrDimensions},
		{"negative mines", 8, 8, -1, ErrMineCount},
		{"mines equal cells", 8, 8, 64, ErrMineCount},
		{"mines exceed cells", 8, 8, 65, ErrMineCount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.h, tc.w, tc.mines, nil)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	b, err := New(1, 1, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, Playing, b.Outcome())
}

func TestMinePlacementAndAdjacency(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		b, err := New(9, 7, 12, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		mines := 0
		for row := 0; row < b.Height(); row++ {
			for col := 0; col < b.Width(); col++ {
				if b.cells[row][col].mine {
					mines++
					continue
				}
				want := 0
				for dr := -1; dr <= 1; dr++ {
					for dc := -1; dc <= 1; dc++ {
						if dr == 0 && dc == 0 {
							continue
						}
						nr, nc := row+dr, col+dc
						if b.in(nr, nc) && b.cells[nr][nc].mine {
							want++
						}
					}
				}
				assert.Equal(t, want, b.cells[row][col].adjacent,
					"seed %d cell (%d,%d)", seed, row, col)
			}
		}
		assert.Equal(t, 12, mines, "seed %d", seed)
	}
}

func TestFirstRevealNeverLoses(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		b, err := New(5, 5, 20, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		b.moveTo(int(seed)%5, int(seed/5)%5)
		b.Reveal()
		assert.NotEqual(t, Lost, b.Outcome(), "seed %d", seed)
		assert.Greater(t, b.Revealed(), 0, "seed %d", seed)
	}
}

func TestSingleSafeCellWinsImmediately(t *testing.T) {
	// 3x3 with 8 mines: the opening reveal must land on the lone safe
	// cell, reseeding as often as the layout demands, and win at once.
	for seed := int64(0); seed < 25; seed++ {
		b, err := New(3, 3, 8, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		b.moveTo(1, 1)
		b.Reveal()
		assert.Equal(t, Won, b.Outcome(), "seed %d", seed)
		assert.Equal(t, 1, b.Revealed(), "seed %d", seed)
	}
}

func TestTinyBoardRevealWins(t *testing.T) {
	// 1x2 with no mines: a single reveal floods both cells and wins.
	b, err := New(1, 2, 0, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	b.Reveal()
	assert.Equal(t, Won, b.Outcome())
	assert.Equal(t, 2, b.Revealed())
}

func TestFloodFillZeroRegion(t *testing.T) {
	// The left 3 columns are a connected zero region; column 3 is its
	// non-zero border; nothing beyond the mines column opens.
	b := boardFrom(t, []string{
		"....*.",
		"....*.",
		"....*.",
		"....*.",
	})
	b.moveTo(0, 0)
	b.Reveal()

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			v, ok := b.View(row, col)
			require.True(t, ok)
			assert.Equal(t, ViewNumber, v.Kind, "cell (%d,%d)", row, col)
		}
		for col := 4; col < 6; col++ {
			v, ok := b.View(row, col)
			require.True(t, ok)
			assert.Equal(t, ViewHidden, v.Kind, "cell (%d,%d)", row, col)
		}
	}
	assert.Equal(t, 16, b.Revealed())
	assert.Equal(t, Playing, b.Outcome())
}

func TestFloodFillStopsAtFlag(t *testing.T) {
	b := boardFrom(t, []string{
		".....",
		".....",
		"....*",
	})
	b.moveTo(1, 2)
	b.Flag()
	require.Equal(t, 1, b.FlagCount())

	b.moveTo(0, 0)
	b.Reveal()

	v, ok := b.View(1, 2)
	require.True(t, ok)
	assert.Equal(t, ViewFlagged, v.Kind, "flag must block propagation")
	// Every other cell is reachable around the flag.
	assert.Equal(t, 13, b.Revealed())
	assert.Equal(t, Playing, b.Outcome(), "the flagged cell is still owed")
}

func TestWinOnLastSafeCell(t *testing.T) {
	b := boardFrom(t, []string{
		"*.",
		"..",
	})
	b.moveTo(1, 1)
	b.Reveal()
	require.Equal(t, Playing, b.Outcome())
	b.moveTo(0, 1)
	b.Reveal()
	require.Equal(t, Playing, b.Outcome())
	b.moveTo(1, 0)
	b.Reveal()
	assert.Equal(t, Won, b.Outcome())
	assert.Equal(t, "Win", b.Status())
}

func TestLoseOnMineAfterFirstMove(t *testing.T) {
	b := boardFrom(t, []string{
		"*.",
		"..",
	})
	b.moveTo(1, 1)
	b.Reveal()
	b.moveTo(0, 0)
	b.Reveal()
	assert.Equal(t, Lost, b.Outcome())
	assert.Equal(t, "Lose", b.Status())
}

func TestTerminalOutcomeFreezesBoard(t *testing.T) {
	b := boardFrom(t, []string{
		"*.",
		"..",
	})
	b.moveTo(1, 1)
	b.Reveal()
	b.moveTo(0, 0)
	b.Reveal()
	require.Equal(t, Lost, b.Outcome())

	revealed, flags := b.Revealed(), b.FlagCount()
	row, col := b.Cursor()

	b.Reveal()
	b.Flag()
	b.Move(1, 1)

	assert.Equal(t, revealed, b.Revealed())
	assert.Equal(t, flags, b.FlagCount())
	gotRow, gotCol := b.Cursor()
	assert.Equal(t, row, gotRow)
	assert.Equal(t, col, gotCol)
	assert.Equal(t, Lost, b.Outcome())
}

func TestFlagToggle(t *testing.T) {
	b := boardFrom(t, []string{
		"..",
		".*",
	})
	b.Flag()
	assert.Equal(t, 1, b.FlagCount())
	b.Flag()
	assert.Equal(t, 0, b.FlagCount())
	v, _ := b.View(0, 0)
	assert.Equal(t, ViewHidden, v.Kind)

	// Over-flagging is allowed: more flags than mines.
	b.Flag()
	b.moveTo(0, 1)
	b.Flag()
	b.moveTo(1, 0)
	b.Flag()
	assert.Equal(t, 3, b.FlagCount())
}

func TestFlagOnRevealedCellIsNoop(t *testing.T) {
	b := boardFrom(t, []string{
		".*",
		"..",
	})
	b.Reveal()
	require.Equal(t, 1, b.Revealed())
	b.Flag()
	assert.Equal(t, 0, b.FlagCount())
	v, _ := b.View(0, 0)
	assert.Equal(t, ViewNumber, v.Kind)
}

func TestMoveBoundsChecking(t *testing.T) {
	b := boardFrom(t, []string{
		"...",
		"..*",
		"...",
	})
	deltas := [][2]int{
		{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {-100, -100}, {127, 127},
	}
	for _, d := range deltas {
		b.Move(d[0], d[1])
		row, col := b.Cursor()
		assert.Equal(t, 0, row, "delta %v", d)
		assert.Equal(t, 0, col, "delta %v", d)
	}

	b.Move(2, 2)
	row, col := b.Cursor()
	assert.Equal(t, 2, row)
	assert.Equal(t, 2, col)
	b.Move(0, 1)
	row, col = b.Cursor()
	assert.Equal(t, 2, row)
	assert.Equal(t, 2, col, "out-of-bounds move must not clamp")
}

func TestCountersMatchGridScan(t *testing.T) {
	b, err := New(8, 8, 10, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	b.Reveal()
	b.Move(3, 3)
	b.Flag()
	b.Move(1, 0)
	b.Flag()
	b.Move(0, 2)
	b.Reveal()

	scanRevealed, scanFlagged := 0, 0
	for row := 0; row < b.Height(); row++ {
		for col := 0; col < b.Width(); col++ {
			switch b.cells[row][col].state {
			case revealed:
				scanRevealed++
			case flagged:
				scanFlagged++
			}
		}
	}
	assert.Equal(t, scanRevealed, b.Revealed())
	assert.Equal(t, scanFlagged, b.FlagCount())
}

func TestQuit(t *testing.T) {
	b := boardFrom(t, []string{"*."})
	b.Quit()
	assert.Equal(t, Aborted, b.Outcome())
	assert.Equal(t, "Aborted", b.Status())
	assert.True(t, b.Done())

	// A decided game is never demoted to Aborted.
	won := boardFrom(t, []string{".."})
	won.Reveal()
	require.Equal(t, Won, won.Outcome())
	won.Quit()
	assert.Equal(t, Won, won.Outcome())
}

func TestClockArming(t *testing.T) {
	b := boardFrom(t, []string{
		"...",
		"..*",
	})
	current := time.Unix(1000, 0)
	b.now = func() time.Time { return current }
	b.started = current

	current = current.Add(5 * time.Second)
	assert.EqualValues(t, 0, b.ElapsedMilliseconds(), "zero until the first reveal")

	b.Reveal()
	assert.EqualValues(t, 0, b.ElapsedMilliseconds(), "re-armed at the first reveal")

	current = current.Add(1500 * time.Millisecond)
	assert.EqualValues(t, 1500, b.ElapsedMilliseconds())
}

func TestCheckedAccessor(t *testing.T) {
	b := boardFrom(t, []string{".*"})
	_, ok := b.at(0, 2)
	assert.False(t, ok)
	_, ok = b.at(-1, 0)
	assert.False(t, ok)
	_, ok = b.View(5, 5)
	assert.False(t, ok)
	c, ok := b.at(0, 1)
	require.True(t, ok)
	assert.True(t, c.mine)
}
