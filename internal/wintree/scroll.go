package wintree

import (
	"strconv"
	"strings"
)

// ScrollState is the per-(window,buffer) scroll position.
type ScrollState struct {
	StartLine          int
	StartLinePos       int
	FirstLineDisplayed bool
	Scrolling          bool
	StartCol           int
	LinesAfter         int
	TextSearchAnchor   int

	modified bool
}

type scrollEntry struct {
	bufferID int64
	state    ScrollState
}

// DisplayBuffer switches w to bufferID, moving an existing scroll_list
// entry to the front or prepending a fresh one, and garbage-collecting any
// non-front entry whose scroll state was never touched.
func (w *Window) DisplayBuffer(bufferID int64) {
	w.BufferID = bufferID

	for i, e := range w.scrollList {
		if e.bufferID == bufferID {
			w.scrollList = append(w.scrollList[:i], w.scrollList[i+1:]...)
			w.scrollList = append([]*scrollEntry{e}, w.scrollList...)
			w.gcScrollList()
			return
		}
	}
	w.scrollList = append([]*scrollEntry{{bufferID: bufferID}}, w.scrollList...)
	w.gcScrollList()
}

func (w *Window) gcScrollList() {
	if len(w.scrollList) == 0 {
		return
	}
	kept := w.scrollList[:1]
	for _, e := range w.scrollList[1:] {
		if e.state.modified {
			kept = append(kept, e)
		}
	}
	w.scrollList = kept
}

// Scroll returns the live scroll state for w's current buffer.
func (w *Window) Scroll() *ScrollState {
	if len(w.scrollList) == 0 {
		w.scrollList = []*scrollEntry{{bufferID: w.BufferID}}
	}
	return &w.scrollList[0].state
}

func (s *ScrollState) touch() { s.modified = true }

// ScrollTop moves to the very first line.
func (w *Window) ScrollTop() {
	s := w.Scroll()
	s.StartLine = 0
	s.StartLinePos = 0
	s.touch()
}

// ScrollBottom clears scroll, returning to the live tail.
func (w *Window) ScrollBottom() {
	s := w.Scroll()
	*s = ScrollState{}
}

// ScrollUnread moves to the first unread line (caller supplies the index
// since wintree has no notion of per-buffer read state).
func (w *Window) ScrollUnread(firstUnreadLine int) {
	s := w.Scroll()
	s.StartLine = firstUnreadLine
	s.StartLinePos = 0
	s.touch()
}

// RelativeScrollUnit is the unit suffix of a relative scroll command.
type RelativeScrollUnit byte

const (
	UnitLines      RelativeScrollUnit = 0
	UnitSeconds    RelativeScrollUnit = 's'
	UnitMinutes    RelativeScrollUnit = 'm'
	UnitHours      RelativeScrollUnit = 'h'
	UnitDays       RelativeScrollUnit = 'd'
	UnitMonths     RelativeScrollUnit = 'M'
	UnitYears      RelativeScrollUnit = 'y'
)

// ParseRelativeScroll parses a "[+|-][N][unit]" scroll command: no unit
// means N displayed lines, a unit switches to timestamp-delta or
// calendar-boundary scrolling (N==0 means "until the next calendar
// boundary").
func ParseRelativeScroll(cmd string) (delta int, unit RelativeScrollUnit, err error) {
	if cmd == "" {
		return 0, UnitLines, strconv.ErrSyntax
	}
	sign := 1
	i := 0
	if cmd[0] == '+' || cmd[0] == '-' {
		if cmd[0] == '-' {
			sign = -1
		}
		i++
	}
	start := i
	for i < len(cmd) && cmd[i] >= '0' && cmd[i] <= '9' {
		i++
	}
	numStr := cmd[start:i]
	n := 0
	if numStr != "" {
		n, err = strconv.Atoi(numStr)
		if err != nil {
			return 0, UnitLines, err
		}
	}
	rest := strings.TrimSpace(cmd[i:])
	u := UnitLines
	if rest != "" {
		u = RelativeScrollUnit(rest[0])
	}
	return sign * n, u, nil
}

// ScrollHorizontal scrolls start_col by n cells, or by a percentage of the
// chat width when pct is true.
func (w *Window) ScrollHorizontal(n int, pct bool) {
	s := w.Scroll()
	if pct {
		n = w.ChatRect.Width * n / 100
	}
	s.StartCol += n
	if s.StartCol < 0 {
		s.StartCol = 0
	}
	s.touch()
}
