package game

// ViewKind classifies a cell for the rendering layer.
type ViewKind int

const (
	ViewHidden ViewKind = iota
	ViewFlagged
	ViewNumber // revealed non-mine; Adjacent carries 0..8
	ViewMine   // undisclosed mine shown after a loss
	ViewExploded
	ViewWrongFlag // flag on a non-mine, disclosed after a loss
)

// View is the display class of one cell.
type View struct {
	Kind     ViewKind
	Adjacent int
}

// View returns the display class at (row, col), or ok=false for an
// out-of-bounds lookup. While the game is undecided it reflects only
// the visibility layer; after a loss it additionally discloses every
// unflagged mine and marks flags sitting on non-mines as wrong. Flags
// that were correctly placed keep their flag marker.
func (b *Board) View(row, col int) (View, bool) {
	c, ok := b.at(row, col)
	if !ok {
		return View{}, false
	}
	lost := b.outcome == Lost
	switch c.state {
	case flagged:
		if lost && !c.mine {
			return View{Kind: ViewWrongFlag}, true
		}
		return View{Kind: ViewFlagged}, true
	case revealed:
		if c.mine {
			// Only the mine that ended the game is ever revealed.
			return View{Kind: ViewExploded}, true
		}
		return View{Kind: ViewNumber, Adjacent: c.adjacent}, true
	default:
		if lost && c.mine {
			return View{Kind: ViewMine}, true
		}
		return View{Kind: ViewHidden}, true
	}
}
