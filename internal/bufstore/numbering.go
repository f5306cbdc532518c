package bufstore

import "sort"

// BufferOptions configures a newly created buffer.
type BufferOptions struct {
	PluginOwner string
	Name        string
	ShortName   string
	Kind        Kind

	// LayoutNumber, if non-zero, is a fixed position from the persisted
	// layout file; it bypasses Position policy.
	LayoutNumber int
	// LayoutMergeWith, if non-zero, forces a merge with the existing
	// buffer at that number immediately after insertion.
	LayoutMergeWith int

	InputCB InputCallback
	CloseCB CloseCallback
}

// NewBuffer creates, numbers, links, and opens a buffer according to the
// store's numbering policy.
func (s *Store) NewBuffer(opts BufferOptions) (*Buffer, error) {
	fullName := opts.PluginOwner + "." + opts.Name
	if s.reservedNames[fullName] {
		for b := s.head; b != nil; b = b.next {
			if b.FullName() == fullName {
				return nil, errAlreadyExists(fullName)
			}
		}
	}
	if len(s.byID) >= s.MaxBuffers {
		return nil, errTooManyBuffers(s.MaxBuffers)
	}

	b := &Buffer{
		ID:             s.GenerateID(),
		PluginOwner:    opts.PluginOwner,
		Name:           opts.Name,
		ShortName:      opts.ShortName,
		Kind:           opts.Kind,
		Lines:          NewLineList(),
		LocalVars:      make(map[string]string),
		InputCB:        opts.InputCB,
		CloseCB:        opts.CloseCB,
		Opening:          true,
		SignalsEnabled:   true,
		Clearable:        true,
		DayChangeEnabled: true,
		Active:           ActiveShown,
		NicklistEnabled:  true,
		HotlistMaxLevelNicks: make(map[string]int),
		KeyBindings:          make(map[string]string),
	}
	s.byID[b.ID] = b

	num := s.resolveInsertNumber(opts.LayoutNumber)
	s.insertNumbered(b, num)

	if opts.LayoutMergeWith != 0 {
		if target := s.bufferAtNumber(opts.LayoutMergeWith); target != nil && target != b {
			s.Merge(b, target)
		}
	}

	b.Opening = false
	s.emit(b, "buffer_opened")
	return b, nil
}

// resolveInsertNumber picks the number a new buffer lands on before
// link-in: the layout number if one was supplied, else the configured
// Position policy.
func (s *Store) resolveInsertNumber(layoutNumber int) int {
	if layoutNumber != 0 {
		return layoutNumber
	}
	switch s.Position {
	case PositionFirstGap:
		return s.firstGapNumber()
	default:
		if s.tail == nil {
			return 1
		}
		return s.tail.Number + 1
	}
}

func (s *Store) firstGapNumber() int {
	used := make(map[int]bool)
	for b := s.head; b != nil; b = b.next {
		used[b.Number] = true
	}
	for n := 1; ; n++ {
		if !used[n] {
			return n
		}
	}
}

// insertNumbered links b at number n, shifting any buffer (and its
// contiguous successors) already occupying n upward by one when
// AutoRenumber is on; when it is off the layout number is honoured even if
// it creates a hole or a collision run.
func (s *Store) insertNumbered(b *Buffer, n int) {
	b.Number = n

	existing := s.bufferAtNumber(n)
	if existing == nil {
		mark := s.head
		for mark != nil && mark.Number < n {
			mark = mark.next
		}
		s.insertBefore(b, mark)
		s.renumberFromTailIfNeeded()
		return
	}

	if s.AutoRenumber {
		s.shiftUpFrom(n)
	}

	// insert immediately before the first peer at number n
	mark := existing
	for mark.prev != nil && mark.prev.Number == n {
		mark = mark.prev
	}
	s.insertBefore(b, mark)
}

// shiftUpFrom increments the Number of every buffer at number n or higher
// by one, starting from the run at n: that buffer and all consecutive
// higher peers shift up by one until a gap is reached.
func (s *Store) shiftUpFrom(n int) {
	nums := s.numbersFrom(n)
	boundary := n
	for i, v := range nums {
		if i == 0 || v == boundary {
			boundary = v + 1
			continue
		}
		break
	}
	for b := s.tail; b != nil && b.Number >= n; b = b.prev {
		if b.Number < boundary {
			b.Number++
		}
	}
}

func (s *Store) numbersFrom(n int) []int {
	set := make(map[int]bool)
	for b := s.head; b != nil; b = b.next {
		if b.Number >= n {
			set[b.Number] = true
		}
	}
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func (s *Store) renumberFromTailIfNeeded() {
	// Inserting into a free number never needs a shift; present for
	// symmetry with insertNumbered's collision branch.
}

// bufferAtNumber returns the first buffer whose Number == n, or nil.
func (s *Store) bufferAtNumber(n int) *Buffer {
	for b := s.head; b != nil; b = b.next {
		if b.Number == n {
			return b
		}
	}
	return nil
}

// runAt returns every buffer sharing number n, in list order (a merged
// group occupies a contiguous run by invariant).
func (s *Store) runAt(n int) []*Buffer {
	var run []*Buffer
	for b := s.head; b != nil; b = b.next {
		if b.Number == n {
			run = append(run, b)
		}
	}
	return run
}

// ToNumber moves b's entire merged run to number n.
func (s *Store) ToNumber(b *Buffer, n int) {
	run := s.runAt(b.Number)
	oldNum := b.Number

	for _, peer := range run {
		s.unlink(peer)
	}
	if s.AutoRenumber {
		for walk := s.head; walk != nil; walk = walk.next {
			if walk.Number > oldNum {
				walk.Number--
			}
		}
	}

	if s.AutoRenumber && s.bufferAtNumber(n) != nil {
		s.shiftUpFrom(n)
	}

	mark := s.head
	for mark != nil && mark.Number < n {
		mark = mark.next
	}
	for _, peer := range run {
		peer.Number = n
		s.insertBefore(peer, mark)
	}
}

// Renumber relabels the contiguous number range [from, to] starting the new
// sequence at start, preserving merged groupings, emitting buffer_moved
// once per moved group.
func (s *Store) Renumber(from, to, start int) {
	numsInRange := []int{}
	seen := make(map[int]bool)
	for b := s.head; b != nil; b = b.next {
		if b.Number >= from && b.Number <= to && !seen[b.Number] {
			seen[b.Number] = true
			numsInRange = append(numsInRange, b.Number)
		}
	}
	sort.Ints(numsInRange)

	next := start
	for _, oldNum := range numsInRange {
		run := s.runAt(oldNum)
		if len(run) == 0 || oldNum == next {
			if len(run) > 0 {
				next++
			}
			continue
		}
		for _, peer := range run {
			peer.Number = next
		}
		s.emit(run[0], "buffer_moved")
		next++
	}
}

// Swap exchanges the numbers (and list positions) of the merged runs at n1
// and n2, preserving each run's internal adjacency.
func (s *Store) Swap(n1, n2 int) {
	if n1 == n2 {
		return
	}
	run1 := s.runAt(n1)
	run2 := s.runAt(n2)
	if len(run1) == 0 || len(run2) == 0 {
		return
	}

	for _, b := range run1 {
		b.Number = n2
	}
	for _, b := range run2 {
		b.Number = n1
	}

	anchor1 := run1[0].prev
	anchor2 := run2[0].prev
	for _, b := range run1 {
		s.unlink(b)
	}
	for _, b := range run2 {
		s.unlink(b)
	}
	insertRun(s, run2, anchor1)
	insertRun(s, run1, anchor2)

	s.emit(run1[0], "buffer_moved")
	s.emit(run2[0], "buffer_moved")
}

func insertRun(s *Store, run []*Buffer, after *Buffer) {
	mark := after
	var before *Buffer
	if mark == nil {
		before = s.head
	} else {
		before = mark.next
	}
	for _, b := range run {
		s.insertBefore(b, before)
	}
}
