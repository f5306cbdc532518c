// Package layout persists and restores buffer numbering and per-window
// buffer bindings across restarts. The on-disk format is a flat TOML
// document of `[[buffer]]` and `[[window]]` tables, the same shape the
// engine's own config loader reaches for a structured settings file
// over hand-rolled line parsing.
package layout

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/termchat/termchat-core/internal/bufstore"
	"github.com/termchat/termchat-core/internal/wintree"
)

// BufferEntry records one buffer's persisted number and, if it was part
// of a merged group, its position within that group.
type BufferEntry struct {
	FullName   string `toml:"full_name"`
	Number     int    `toml:"number"`
	MergeOrder int    `toml:"merge_order,omitempty"`
}

// WindowEntry records which buffer a window last displayed, keyed by the
// window's number, trimmed to the fields wintree.Window already exposes
// for rebinding: SavedLayoutPlugin/SavedLayoutBuffer.
type WindowEntry struct {
	ID          int    `toml:"id"`
	SavedPlugin string `toml:"plugin"`
	SavedBuffer string `toml:"buffer"`
}

// Layout is the whole persisted document.
type Layout struct {
	Buffers []BufferEntry `toml:"buffer"`
	Windows []WindowEntry `toml:"window"`
}

// Load reads and decodes path. A missing file is not an error; it yields
// an empty Layout so first-run startup proceeds with config defaults.
func Load(path string) (*Layout, error) {
	l := &Layout{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return l, nil
	}
	if _, err := toml.DecodeFile(path, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Save encodes l to path, creating or truncating it.
func Save(path string, l *Layout) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(l)
}

// BuildFromState snapshots the current buffer numbering and per-window
// buffer bindings into a Layout ready to Save.
func BuildFromState(buffers *bufstore.Store, tree *wintree.Tree) *Layout {
	l := &Layout{}
	for _, b := range buffers.All() {
		entry := BufferEntry{FullName: b.FullName(), Number: b.Number}
		if b.IsMerged() {
			entry.MergeOrder = mergeOrderOf(b, buffers)
		}
		l.Buffers = append(l.Buffers, entry)
	}
	for _, w := range tree.Windows() {
		entry := WindowEntry{ID: w.Number}
		if buf, ok := buffers.ByID(w.BufferID); ok {
			entry.SavedPlugin = buf.PluginOwner
			entry.SavedBuffer = buf.Name
		}
		l.Windows = append(l.Windows, entry)
	}
	return l
}

// mergeOrderOf ranks b among its own-number run, used only to break ties
// when restoring a merged group's relative order.
func mergeOrderOf(b *bufstore.Buffer, buffers *bufstore.Store) int {
	order := 0
	for _, other := range buffers.All() {
		if other.Number != b.Number {
			continue
		}
		if other == b {
			return order
		}
		order++
	}
	return order
}

// NumberFor returns the persisted number for fullName, if any — feed the
// result into bufstore.BufferOptions.LayoutNumber so a restored buffer
// bypasses the numbering policy.
func (l *Layout) NumberFor(fullName string) (int, bool) {
	for _, e := range l.Buffers {
		if e.FullName == fullName {
			return e.Number, true
		}
	}
	return 0, false
}

// ApplyWindowHints stamps every window's SavedLayoutPlugin/SavedLayoutBuffer
// from the persisted document so a later DisplayBuffer call can rebind the
// pane to the buffer it used to show, once that buffer exists again.
func ApplyWindowHints(l *Layout, tree *wintree.Tree) {
	byID := make(map[int]WindowEntry, len(l.Windows))
	for _, e := range l.Windows {
		byID[e.ID] = e
	}
	for _, w := range tree.Windows() {
		if e, ok := byID[w.Number]; ok {
			w.SavedLayoutPlugin = e.SavedPlugin
			w.SavedLayoutBuffer = e.SavedBuffer
		}
	}
}
