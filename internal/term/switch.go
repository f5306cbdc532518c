package term

import (
	"github.com/termchat/termchat-core/internal/bufstore"
	"github.com/termchat/termchat-core/internal/refresh"
	"github.com/termchat/termchat-core/internal/wintree"
)

// SwitchToBuffer displays target in w: the scroll position is restored or
// started fresh via w.DisplayBuffer, target's hotlist entry is cleared since
// the user just looked at it, and target is pushed onto the visited ring so
// jump_previously_visited_buffer/jump_next_visited_buffer can find it again.
func (r *Renderer) SwitchToBuffer(w *wintree.Window, target *bufstore.Buffer) {
	if w == nil || target == nil {
		return
	}
	w.DisplayBuffer(target.ID)
	r.Buffers.HotlistRemove(target)
	r.Buffers.VisitedAdd(target)
	w.Refresh.Ask(refresh.Full)
}

// CycleBuffer switches w to the next (delta>0) or previous (delta<0) buffer
// in the store's number order, wrapping, and relays through SwitchToBuffer.
func (r *Renderer) CycleBuffer(w *wintree.Window, delta int) {
	if w == nil {
		return
	}
	all := r.Buffers.All()
	if len(all) == 0 {
		return
	}
	idx := 0
	for i, b := range all {
		if b.ID == w.BufferID {
			idx = i
			break
		}
	}
	n := len(all)
	next := ((idx+delta)%n + n) % n
	r.SwitchToBuffer(w, all[next])
}
