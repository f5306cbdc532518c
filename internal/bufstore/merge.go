package bufstore

// mergeGroup tracks the chronological mixed-lines view shared by every
// peer at one number, plus which peer currently owns it.
type mergeGroup struct {
	mixed *LineList
}

// Merge joins a into b's number: both must be formatted, not already
// sharing a number, and there must be at least two buffers in the store;
// a's run is detached and reinserted after b's run, every member takes
// b's number, and the mixed chronological view is (re)built.
func (s *Store) Merge(a, b *Buffer) error {
	if a.Kind != Formatted || b.Kind != Formatted {
		return errNotMergeable("only formatted buffers can merge")
	}
	if a.Number == b.Number {
		return errNotMergeable("already merged together")
	}
	if s.head == s.tail {
		return errNotMergeable("only one buffer exists")
	}

	aRun := s.runAt(a.Number)
	for _, peer := range aRun {
		s.unlink(peer)
	}

	bRun := s.runAt(b.Number)
	insertAfter := bRun[len(bRun)-1]
	mark := insertAfter.next
	for _, peer := range aRun {
		peer.Number = b.Number
		s.insertBefore(peer, mark)
		mark = peer.next
	}

	group := b.mergedWith
	if group == nil {
		group = &mergeGroup{mixed: NewLineList()}
		b.mergedWith = group
		rebuildMixedView(group, bRun)
	}
	for _, peer := range aRun {
		peer.mergedWith = group
	}
	rebuildMixedView(group, s.runAt(b.Number))

	for _, peer := range s.runAt(b.Number) {
		if peer == a {
			peer.Active = ActiveShown
		} else {
			peer.Active = ActiveHidden
		}
		peer.Zoomed = false
	}

	s.emit(a, "buffer_merged")
	return nil
}

// rebuildMixedView recomputes the chronological interleave of every peer's
// own lines. Lines keep their OwnerBufferID so the renderer can still
// attribute prefix/buffer-name per row.
func rebuildMixedView(group *mergeGroup, peers []*Buffer) {
	group.mixed = NewLineList()
	type cursor struct {
		b    *Buffer
		line *Line
	}
	cursors := make([]cursor, 0, len(peers))
	for _, p := range peers {
		cursors = append(cursors, cursor{b: p, line: p.Lines.First})
	}
	for {
		best := -1
		for i, c := range cursors {
			if c.line == nil {
				continue
			}
			if best == -1 || c.line.Timestamp < cursors[best].line.Timestamp ||
				(c.line.Timestamp == cursors[best].line.Timestamp && c.line.TimestampUs < cursors[best].line.TimestampUs) {
				best = i
			}
		}
		if best == -1 {
			break
		}
		src := cursors[best].line
		group.mixed.Append(&Line{
			IDWithinBuffer:   src.IDWithinBuffer,
			Timestamp:        src.Timestamp,
			TimestampUs:      src.TimestampUs,
			PrintTimestamp:   src.PrintTimestamp,
			PrintTimestampUs: src.PrintTimestampUs,
			Prefix:           src.Prefix,
			Message:          src.Message,
			Tags:             src.Tags,
			Displayed:        src.Displayed,
			Highlight:        src.Highlight,
			OwnerBufferID:    cursors[best].b.ID,
		})
		cursors[best].line = src.next
	}
}

// MixedLines returns the merged group's chronological view, or b's own
// lines if it is not merged.
func (b *Buffer) MixedLines() *LineList {
	if b.mergedWith != nil && b.Active != ActiveZoomed {
		return b.mergedWith.mixed
	}
	return b.Lines
}

// IsMerged reports whether b currently shares a number with any peer.
func (b *Buffer) IsMerged() bool { return b.mergedWith != nil }

// Unmerge pulls b out of its merged group and reinserts it at n (default
// b.Number+1): b must have at least one peer. With exactly two peers left,
// the mixed view is discarded and both revert to their own lines.
// Otherwise the next (or previous) active peer is promoted and b is
// removed from the mixed view.
func (s *Store) Unmerge(b *Buffer, n int) error {
	run := s.runAt(b.Number)
	if len(run) < 2 {
		return errNotEnoughPeers()
	}

	if n == 0 {
		n = b.Number + 1
	}

	remaining := make([]*Buffer, 0, len(run)-1)
	for _, peer := range run {
		if peer != b {
			remaining = append(remaining, peer)
		}
	}

	if len(remaining) == 1 {
		solo := remaining[0]
		solo.mergedWith = nil
		solo.Active = ActiveShown
		solo.Zoomed = false
	} else {
		promoteNextActive(b, remaining)
		for _, peer := range remaining {
			peer.mergedWith = b.mergedWith
		}
		rebuildMixedView(b.mergedWith, remaining)
	}

	b.mergedWith = nil
	b.Active = ActiveShown
	b.Zoomed = false

	s.unlink(b)
	b.Number = n
	if s.AutoRenumber && s.bufferAtNumber(n) != nil {
		s.shiftUpFrom(n)
	}
	mark := s.head
	for mark != nil && mark.Number < n {
		mark = mark.next
	}
	s.insertBefore(b, mark)

	s.emit(b, "buffer_unmerged")
	return nil
}

func promoteNextActive(leaving *Buffer, remaining []*Buffer) {
	if leaving.Active != ActiveShown {
		return
	}
	remaining[0].Active = ActiveShown
	for _, p := range remaining[1:] {
		p.Active = ActiveHidden
	}
}

// Zoom toggles between showing the mixed view (Active=Shown) and b's own
// lines solo (Active=Zoomed), setting Zoomed on every peer for
// consistency.
func (s *Store) Zoom(b *Buffer) {
	if b.mergedWith == nil {
		return
	}
	run := s.runAt(b.Number)

	if b.Active == ActiveZoomed {
		for _, peer := range run {
			peer.Zoomed = false
			if peer == b {
				peer.Active = ActiveShown
			} else {
				peer.Active = ActiveHidden
			}
		}
		s.emit(b, "buffer_unzoomed")
		return
	}

	for _, peer := range run {
		peer.Zoomed = true
		if peer == b {
			peer.Active = ActiveZoomed
		} else {
			peer.Active = ActiveHidden
		}
	}
	s.emit(b, "buffer_zoomed")
}
