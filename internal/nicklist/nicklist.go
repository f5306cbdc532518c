// Package nicklist implements the per-buffer nick list: a flat group+nick
// model with a parent index, rather than separate doubly-linked group and
// nick trees. Plugins own the meaning of group membership and nick
// ordering; the core just stores and renders the flat structure, treating
// its contents as opaque.
package nicklist

import (
	"sort"
	"sync"

	lcUtils "github.com/jesseduffield/lazycore/pkg/utils"
)

// Entry is either a group header or a nick, distinguished by IsGroup.
// ParentIndex points at the owning group's index in the flat slice, or -1
// for a root-level entry.
type Entry struct {
	IsGroup     bool
	Name        string
	Prefix      string // e.g. "@", "+"; empty for groups
	Color       string
	ParentIndex int
	Visible     bool
}

// List is one buffer's nicklist: a flat, filterable, sortable entry slice
// plus a clamped selection cursor.
type List struct {
	mu       sync.RWMutex
	allItems []*Entry
	indices  []int

	SelectedIdx int

	lastAssignedID int64
}

// New returns an empty nicklist.
func New() *List { return &List{} }

// AddGroup appends a group entry under parentIndex (-1 for root) and
// returns its index in the flat slice.
func (l *List) AddGroup(name string, parentIndex int) int {
	return l.add(&Entry{IsGroup: true, Name: name, ParentIndex: parentIndex, Visible: true})
}

// AddNick appends a nick entry under parentIndex and returns its index.
func (l *List) AddNick(name, prefix, color string, parentIndex int) int {
	return l.add(&Entry{Name: name, Prefix: prefix, Color: color, ParentIndex: parentIndex, Visible: true})
}

func (l *List) add(e *Entry) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.allItems = append(l.allItems, e)
	idx := len(l.allItems) - 1
	l.indices = append(l.indices, idx)
	return idx
}

// Remove deletes the entry at index and every descendant nick that lists
// it (directly or transitively) as an ancestor group.
func (l *List) Remove(index int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 || index >= len(l.allItems) {
		return
	}

	drop := map[int]bool{index: true}
	changed := true
	for changed {
		changed = false
		for i, e := range l.allItems {
			if drop[i] {
				continue
			}
			if drop[e.ParentIndex] {
				drop[i] = true
				changed = true
			}
		}
	}

	kept := l.allItems[:0:0]
	remap := make(map[int]int, len(l.allItems))
	for i, e := range l.allItems {
		if drop[i] {
			continue
		}
		remap[i] = len(kept)
		kept = append(kept, e)
	}
	for _, e := range kept {
		if e.ParentIndex >= 0 {
			if newParent, ok := remap[e.ParentIndex]; ok {
				e.ParentIndex = newParent
			} else {
				e.ParentIndex = -1
			}
		}
	}
	l.allItems = kept
	l.indices = make([]int, len(kept))
	for i := range l.indices {
		l.indices[i] = i
	}
}

// Len returns the number of entries currently passing the active filter.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.indices)
}

// Get returns the i-th filtered entry.
func (l *List) Get(i int) *Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.allItems[l.indices[i]]
}

// Filter re-derives the visible index set from pred over every entry
// (adapted from panels.FilteredList.Filter).
func (l *List) Filter(pred func(*Entry) bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.indices = l.indices[:0]
	for i, e := range l.allItems {
		if pred(e) {
			l.indices = append(l.indices, i)
		}
	}
}

// Sort reorders the filtered view by less (adapted from
// panels.FilteredList.Sort): groups typically sort before their nicks by
// comparing ParentIndex chains, left to the caller's less function.
func (l *List) Sort(less func(a, b *Entry) bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if less == nil {
		return
	}
	sort.SliceStable(l.indices, func(i, j int) bool {
		return less(l.allItems[l.indices[i]], l.allItems[l.indices[j]])
	})
}

// SetSelectedIdx clamps value into [0, Len()-1] (adapted from
// panels.ListPanel.SetSelectedLineIdx).
func (l *List) SetSelectedIdx(value int) {
	clamped := 0
	if l.Len() > 0 {
		clamped = lcUtils.Clamp(value, 0, l.Len()-1)
	}
	l.SelectedIdx = clamped
}

// SelectNext moves the cursor one visible entry down.
func (l *List) SelectNext() { l.SetSelectedIdx(l.SelectedIdx + 1) }

// SelectPrev moves the cursor one visible entry up.
func (l *List) SelectPrev() { l.SetSelectedIdx(l.SelectedIdx - 1) }

// Selected returns the entry under the cursor.
func (l *List) Selected() (*Entry, bool) {
	if l.Len() == 0 {
		return nil, false
	}
	return l.Get(l.SelectedIdx), true
}
