package wintree

import "strings"

// CoordCell records what a renderer placed on one row of a window, so
// mouse/focus queries can map back to the source line without re-rendering.
type CoordCell struct {
	Present bool

	LineID     int64
	DataOffset int // byte offset into the line's message where this row starts

	TimeStart, TimeEnd     int
	BufferStart, BufferEnd int
	PrefixStart, PrefixEnd int
}

// SetCoords replaces the coordinate map, sized to the window's chat height.
func (w *Window) SetCoords(cells []CoordCell) { w.Coords = cells }

// InvalidateLine clears every coords entry referencing lineID, used when
// that line is freed or edited.
func (w *Window) InvalidateLine(lineID int64) {
	for i := range w.Coords {
		if w.Coords[i].Present && w.Coords[i].LineID == lineID {
			w.Coords[i] = CoordCell{}
		}
	}
}

// Context is the result of a mouse/focus hit test.
type Context struct {
	InChat      bool
	LineID      int64
	LineX       int
	Word        string
	FocusedLine int64
	LineBefore  int64
	LineAfter   int64
	WordBefore  string
	WordAfter   string
}

// GetContextAt resolves a (x,y) hit within w's rectangle against the
// coordinate map and the row's message text, splitting on whitespace
// around the hit position to find the word under the cursor and its
// neighbours.
func (w *Window) GetContextAt(x, y, row int, message string) Context {
	ctx := Context{}
	if row < 0 || row >= len(w.Coords) || !w.Coords[row].Present {
		return ctx
	}
	cell := w.Coords[row]
	ctx.InChat = x >= w.ChatRect.X && x < w.ChatRect.X+w.ChatRect.Width
	ctx.LineID = cell.LineID
	ctx.FocusedLine = cell.LineID
	lineX := x - cell.DataOffset
	ctx.LineX = lineX

	words := strings.Fields(message)
	idx := wordIndexAt(message, lineX)
	ctx.Word = wordAt(words, idx)
	ctx.WordBefore = wordAt(words, idx-1)
	ctx.WordAfter = wordAt(words, idx+1)

	if row > 0 && w.Coords[row-1].Present {
		ctx.LineBefore = w.Coords[row-1].LineID
	}
	if row+1 < len(w.Coords) && w.Coords[row+1].Present {
		ctx.LineAfter = w.Coords[row+1].LineID
	}
	return ctx
}

func wordAt(words []string, idx int) string {
	if idx < 0 || idx >= len(words) {
		return ""
	}
	return words[idx]
}

// wordIndexAt maps a byte offset into message to the index of the
// whitespace-delimited word containing it.
func wordIndexAt(message string, offset int) int {
	if offset < 0 {
		offset = 0
	}
	word := -1
	inWord := false
	for i, r := range message {
		if i > offset {
			break
		}
		if r == ' ' || r == '\t' || r == '\n' {
			inWord = false
			continue
		}
		if !inWord {
			word++
			inWord = true
		}
	}
	return word
}
