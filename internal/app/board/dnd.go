package board

// ArrayMove returns a copy of s with the element at from moved to index to.
// Indices are positions in the original slice; out of range input returns an
// unchanged copy.
func ArrayMove[T any](s []T, from, to int) []T {
	out := append([]T(nil), s...)
	if from < 0 || from >= len(s) || to < 0 || to >= len(s) || from == to {
		return out
	}
	item := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]T{item}, out[to:]...)...)
	return out
}

func insertAt[T any](s []T, i int, item T) []T {
	if i < 0 {
		i = 0
	}
	if i > len(s) {
		i = len(s)
	}
	s = append(s, item)
	copy(s[i+1:], s[i:])
	s[i] = item
	return s
}

func cardIndex(col *Column, cardID string) int {
	for i, c := range col.Cards {
		if c.ID == cardID {
			return i
		}
	}
	return -1
}

// locateCard finds the column holding cardID and the card's index in it.
func locateCard(board *Board, cardID string) (*Column, int) {
	for _, col := range board.Columns {
		if i := cardIndex(col, cardID); i >= 0 {
			return col, i
		}
	}
	return nil, -1
}

// MoveCard computes the committed result of dropping activeCardID on overID,
// which is either a column id (append to that column) or a card id (take that
// card's position). The input board is never modified. The bool is false for
// every no-op: drop on self, unknown source, unknown target.
func MoveCard(board *Board, activeCardID, overID string) (*Board, bool) {
	if board == nil || activeCardID == "" || overID == "" || activeCardID == overID {
		return board, false
	}

	out := board.Clone()

	srcCol, srcIdx := locateCard(out, activeCardID)
	if srcCol == nil {
		return board, false
	}

	var dstCol *Column
	dstIdx := -1
	if col, ok := FindColumn(out, overID); ok {
		dstCol = col
		dstIdx = len(col.Cards)
	} else {
		dstCol, dstIdx = locateCard(out, overID)
	}
	if dstCol == nil {
		return board, false
	}

	card := srcCol.Cards[srcIdx]
	srcCol.Cards = append(srcCol.Cards[:srcIdx], srcCol.Cards[srcIdx+1:]...)

	// Removing the card shifted everything after it one slot left.
	if srcCol == dstCol && srcIdx < dstIdx {
		dstIdx--
	}
	dstCol.Cards = insertAt(dstCol.Cards, dstIdx, card)

	return out, true
}

// PreviewMove is the live reorder shown while dragging: it only applies when
// both cards sit in the same column, and never moves a card across columns.
func PreviewMove(board *Board, activeCardID, overID string) (*Board, bool) {
	if board == nil || activeCardID == overID {
		return board, false
	}
	activeCol, from := locateCard(board, activeCardID)
	overCol, to := locateCard(board, overID)
	if activeCol == nil || overCol == nil || activeCol.ID != overCol.ID || from == to {
		return board, false
	}

	out := board.Clone()
	col, _ := FindColumn(out, activeCol.ID)
	col.Cards = ArrayMove(col.Cards, from, to)
	return out, true
}

// DragSession tracks one gesture: a start, any number of Over previews, then
// exactly one Drop or Cancel. The base board is what was persisted when the
// gesture started; previews are never committed.
type DragSession struct {
	base     *Board
	preview  *Board
	activeID string
	done     bool
}

// StartDrag returns false when cardID is not on the board.
func StartDrag(board *Board, cardID string) (*DragSession, bool) {
	if _, _, ok := FindCard(board, cardID); !ok {
		return nil, false
	}
	return &DragSession{
		base:     board.Clone(),
		preview:  board.Clone(),
		activeID: cardID,
	}, true
}

func (d *DragSession) ActiveCardID() string {
	return d.activeID
}

func (d *DragSession) BoardID() string {
	return d.base.ID
}

// Over applies a preview reorder and returns the provisional board.
func (d *DragSession) Over(overID string) (*Board, bool) {
	if d.done {
		return d.preview, false
	}
	next, changed := PreviewMove(d.preview, d.activeID, overID)
	if changed {
		d.preview = next
	}
	return d.preview, changed
}

func (d *DragSession) Preview() *Board {
	return d.preview
}

// Cancel ends the gesture and returns the board as it was at drag start.
func (d *DragSession) Cancel() *Board {
	d.done = true
	d.preview = d.base.Clone()
	return d.base
}

// Drop ends the gesture against the board captured at drag start. An empty
// overID means the card was released outside any target and is treated as
// Cancel.
func (d *DragSession) Drop(overID string) (*Board, bool) {
	return d.DropOnto(d.base, overID)
}

// DropOnto ends the gesture by applying the move to current, the board as it
// is stored now, so changes saved while the card was held are kept. A card
// that no longer exists on current makes the drop a no-op.
func (d *DragSession) DropOnto(current *Board, overID string) (*Board, bool) {
	if d.done {
		return current, false
	}
	if overID == "" {
		d.Cancel()
		return current, false
	}
	d.done = true
	result, moved := MoveCard(current, d.activeID, overID)
	if !moved {
		d.preview = current.Clone()
		return current, false
	}
	d.preview = result
	return result, true
}

func (d *DragSession) Done() bool {
	return d.done
}
