package bufstore

import (
	"sort"
	"time"
)

// Hide sets hidden=1; affects jump-next-visible behaviour in the window
// tree, not enforced here.
func (s *Store) Hide(b *Buffer) {
	b.Hidden = true
	s.emit(b, "buffer_hidden")
}

// Show clears hidden.
func (s *Store) Show(b *Buffer) {
	b.Hidden = false
	s.emit(b, "buffer_visible")
}

// VisitedAdd appends b to the capped "jump previous/next visited" ring,
// moving it to the front if already present, and dropping the oldest entry
// once over VisitedCapacity.
func (s *Store) VisitedAdd(b *Buffer) {
	for i, v := range s.visited {
		if v == b {
			s.visited = append(s.visited[:i], s.visited[i+1:]...)
			break
		}
	}
	s.visited = append([]*Buffer{b}, s.visited...)
	if s.VisitedCapacity > 0 && len(s.visited) > s.VisitedCapacity {
		s.visited = s.visited[:s.VisitedCapacity]
	}
}

// VisitedPrevious returns the visited entry after cur in the ring (older),
// or false if cur is the last or not present.
func (s *Store) VisitedPrevious(cur *Buffer) (*Buffer, bool) {
	for i, v := range s.visited {
		if v == cur && i+1 < len(s.visited) {
			return s.visited[i+1], true
		}
	}
	return nil, false
}

// VisitedNext returns the visited entry before cur in the ring (newer).
func (s *Store) VisitedNext(cur *Buffer) (*Buffer, bool) {
	for i, v := range s.visited {
		if v == cur && i > 0 {
			return s.visited[i-1], true
		}
	}
	return nil, false
}

// HotlistAdd records activity on b at the given priority, idempotently: a
// buffer already in the hotlist at the same or a higher priority is left as
// it is, one at a lower priority has its priority raised, and a buffer not
// in the hotlist is appended once. No creation time is kept for the entry.
func (s *Store) HotlistAdd(b *Buffer, priority HotlistPriority) {
	if priority <= b.HotlistPriority && b.inHotlist {
		return
	}
	if !b.inHotlist {
		b.hotlistRemovedAt = time.Time{}
		s.hotlist = append(s.hotlist, b)
	}
	b.inHotlist = true
	b.HotlistPriority = priority
	s.sortHotlist()
	s.emit(b, "hotlist_changed")
}

// HotlistRemove clears b's hotlist membership, called when the user
// switches to b.
func (s *Store) HotlistRemove(b *Buffer) {
	if !b.inHotlist {
		return
	}
	b.inHotlist = false
	b.hotlistRemovedAt = time.Now()
	for i, h := range s.hotlist {
		if h == b {
			s.hotlist = append(s.hotlist[:i], s.hotlist[i+1:]...)
			break
		}
	}
	s.emit(b, "hotlist_changed")
}

// Hotlist returns the current hotlist, sorted priority desc, creation asc.
func (s *Store) Hotlist() []*Buffer {
	out := make([]*Buffer, len(s.hotlist))
	copy(out, s.hotlist)
	return out
}

func (s *Store) sortHotlist() {
	sort.SliceStable(s.hotlist, func(i, j int) bool {
		return s.hotlist[i].HotlistPriority > s.hotlist[j].HotlistPriority
	})
}

// Clear empties b's lines and emits buffer_cleared. On a time_for_each_line
// buffer the next appended line establishes a fresh print_timestamp
// baseline rather than inheriting one from a line that no longer exists.
func (s *Store) Clear(b *Buffer) {
	b.Lines = NewLineList()
	if b.TimeForEachLine {
		b.Lines.awaitingPrintBaseline = true
	}
	s.emit(b, "buffer_cleared")
}

// Close runs the close callback, emits buffer_closing, unmerges if merged,
// picks a replacement for windows (the caller supplies the current
// replacement-selection strategy via chooseReplacement since it needs
// window-tree state this package doesn't own), frees lines, emits
// buffer_closed, unlinks.
func (s *Store) Close(b *Buffer, chooseReplacement func(closing *Buffer) *Buffer) {
	if b.CloseCB != nil {
		b.CloseCB(b)
	}
	b.Closing = true
	s.emit(b, "buffer_closing")

	if b.IsMerged() {
		_ = s.Unmerge(b, 0)
	}

	if chooseReplacement != nil {
		_ = chooseReplacement(b)
	}

	b.Lines = NewLineList()
	s.emit(b, "buffer_closed")

	s.unlink(b)
	delete(s.byID, b.ID)
	for i, v := range s.visited {
		if v == b {
			s.visited = append(s.visited[:i], s.visited[i+1:]...)
			break
		}
	}
	s.HotlistRemove(b)
}
