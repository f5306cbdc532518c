// Package bufstore implements the buffer store: the process-wide ordered
// list of buffers, their lines, numbering/merge/zoom policy, hotlist, and
// the plugin-facing typed property surface.
package bufstore

import (
	"strings"
	"time"

	"github.com/termchat/termchat-core/internal/history"
	"github.com/termchat/termchat-core/internal/inputline"
	"github.com/termchat/termchat-core/internal/refresh"
	"github.com/termchat/termchat-core/internal/search"
)

// Kind distinguishes formatted (mergeable, timestamped) buffers from free
// (explicit y-coordinate) buffers.
type Kind int

const (
	Formatted Kind = iota
	Free
)

// Active is a peer's visibility state within a merged group.
type Active int

const (
	ActiveHidden Active = iota // 0: hidden peer in a merged group
	ActiveShown                // 1: selected peer, mixed view shown
	ActiveZoomed                // 2: zoomed solo
)

// NotifyLevel controls hotlist/highlight sensitivity.
type NotifyLevel int

const (
	NotifyNone NotifyLevel = iota
	NotifyHighlight
	NotifyMessage
	NotifyAll
)

// CloseCallback is invoked during Close, before any teardown happens.
type CloseCallback func(b *Buffer)

// InputCallback is invoked on Submit; OK_EAT equivalent is signalled by
// returning eat=true.
type InputCallback func(b *Buffer, text string) (eat bool)

// Buffer is a single append-only line stream plus its editable input line
// and metadata.
type Buffer struct {
	ID            int64
	Number        int
	PluginOwner   string
	Name          string
	ShortName     string
	OldFullName   string
	Kind          Kind
	NotifyLevel   NotifyLevel
	VisibleCount  int

	Active           Active
	Hidden           bool
	Zoomed           bool
	Closing          bool
	Opening          bool
	DayChangeEnabled bool
	Clearable        bool
	FilterEnabled    bool
	TimeForEachLine  bool
	PrintHooksEnabled bool
	SignalsEnabled   bool

	Lines *LineList

	Input       *inputline.Editor
	InputPrompt string
	InputCB     InputCallback

	History *history.Ring

	Search search.State

	HighlightWords        []string
	HighlightRegex        string
	HighlightDisableRegex string
	HighlightTags         []string
	HighlightTagsRestrict []string

	HotlistPriority      HotlistPriority
	HotlistMaxLevelNicks map[string]int
	hotlistRemovedAt     time.Time
	inHotlist            bool

	NicklistEnabled       bool
	NicklistCaseSensitive bool
	NicklistDisplayGroups bool

	KeyBindings map[string]string

	// DisplayRequested mirrors the last value set via the "display"
	// property ("auto" or any other string). Store has no window-tree
	// context to act on it; the renderer consults it when deciding whether
	// to switch focus here.
	DisplayRequested string

	LocalVars map[string]string

	ChatRefresh refresh.Flag

	CloseCB CloseCallback

	title   string
	modes   string

	mergedWith *mergeGroup // nil unless part of a merged group

	prev, next *Buffer
}

// FullName is plugin_owner "." name, rebuilt on every rename.
func (b *Buffer) FullName() string {
	return b.PluginOwner + "." + b.Name
}

// Rename changes b's name (the part of the full name after the plugin
// prefix; ShortName is left as it is), stamping old_full_name with the prior
// full name (visible only until the next rename or the buffer's close) and
// emitting buffer_renamed. A second rename to a name already taken by
// another live buffer of the same plugin fails without side effects, same
// as a reserved-name collision at creation.
func (s *Store) Rename(b *Buffer, newName string) error {
	newFullName := b.PluginOwner + "." + newName
	for peer := s.head; peer != nil; peer = peer.next {
		if peer != b && peer.FullName() == newFullName {
			return errAlreadyExists(newFullName)
		}
	}
	b.OldFullName = b.FullName()
	b.Name = newName
	s.emit(b, "buffer_renamed")
	return nil
}

// Title returns the buffer's display title.
func (b *Buffer) Title() string { return b.title }

// SetTitle sets the title and emits buffer_title_changed.
func (s *Store) SetTitle(b *Buffer, title string) {
	b.title = title
	s.emit(b, "buffer_title_changed")
}

// Modes returns the short flags string (e.g. IRC channel modes); core is
// agnostic to its meaning, it is opaque plugin-set text.
func (b *Buffer) Modes() string { return b.modes }

// SetModes sets the modes string and emits buffer_modes_changed.
func (s *Store) SetModes(b *Buffer, modes string) {
	b.modes = modes
	s.emit(b, "buffer_modes_changed")
}

// LocalVar looks up a local variable by name.
func (b *Buffer) LocalVar(name string) (string, bool) {
	v, ok := b.LocalVars[name]
	return v, ok
}

// SetLocalVar sets a local variable and emits buffer_localvar_added (or
// _changed if it already existed).
func (s *Store) SetLocalVar(b *Buffer, name, value string) {
	if b.LocalVars == nil {
		b.LocalVars = make(map[string]string)
	}
	_, existed := b.LocalVars[name]
	b.LocalVars[name] = value
	if existed {
		s.emit(b, "buffer_localvar_changed")
	} else {
		s.emit(b, "buffer_localvar_added")
	}
}

// RemoveLocalVar deletes a local variable and emits buffer_localvar_removed.
func (s *Store) RemoveLocalVar(b *Buffer, name string) {
	if _, ok := b.LocalVars[name]; !ok {
		return
	}
	delete(b.LocalVars, name)
	s.emit(b, "buffer_localvar_removed")
}

// ReplaceLocalVars scans text for unescaped "$identifier" references and
// substitutes b's local variables, leaving unresolved or escaped
// references literal.
func ReplaceLocalVars(b *Buffer, text string) string {
	var out strings.Builder
	i := 0
	for i < len(text) {
		c := text[i]
		if c == '\\' && i+1 < len(text) && text[i+1] == '$' {
			out.WriteByte('$')
			i += 2
			continue
		}
		if c != '$' {
			out.WriteByte(c)
			i++
			continue
		}
		j := i + 1
		for j < len(text) && isLocalVarIdentByte(text[j]) {
			j++
		}
		if j == i+1 {
			out.WriteByte(c)
			i++
			continue
		}
		name := text[i+1 : j]
		if val, ok := b.LocalVars[name]; ok {
			out.WriteString(val)
		} else {
			out.WriteString(text[i:j])
		}
		i = j
	}
	return out.String()
}

func isLocalVarIdentByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
