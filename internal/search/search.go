// Package search implements the in-buffer search engine: literal/regex,
// case-sensitive/insensitive, over message text, prefix, or history,
// directional with restart.
package search

import (
	"strings"

	"github.com/termchat/termchat-core/internal/strutil"
)

// Mode selects what a search walks over.
type Mode int

const (
	Off Mode = iota
	Lines
	History
)

// Direction of the walk.
type Direction int

const (
	Backward Direction = iota
	Forward
)

// Scope is a bitmask of which sub-fields of a line participate in matching.
type Scope int

const (
	ScopeMessage Scope = 1 << iota
	ScopePrefix
)

// Line is the minimal shape the search engine needs from a displayed line;
// callers (bufstore) adapt their real line type to this.
type Line struct {
	Prefix  string
	Message string
}

// HistorySource selects which history ring a History-mode search walks.
type HistorySource int

const (
	HistoryNone HistorySource = iota
	HistoryLocal
	HistoryGlobal
)

// State is one buffer's search state.
type State struct {
	Mode      Mode
	Direction Direction
	Exact     bool
	Regex     bool
	Scope     Scope
	History   HistorySource

	Input    string
	compiled *strutil.CompiledRegex

	Found       bool
	SavedInput  string
	AnchorIndex int // index into the line/history list the search started from
	current     int
}

// Start begins a search session. Formatted-line search defaults to
// Backward; free-buffer search (kind passed by the caller) defaults to
// Forward.
func (s *State) Start(mode Mode, anchorIndex int, defaultDirection Direction, savedInput string) {
	s.Mode = mode
	s.Direction = defaultDirection
	s.AnchorIndex = anchorIndex
	s.current = anchorIndex
	s.Found = false
	s.SavedInput = savedInput
	s.Input = ""
	s.compiled = nil
}

// SetInput updates the query text and recompiles the regex (if enabled) on
// every change.
func (s *State) SetInput(input string) error {
	s.Input = input
	s.compiled = nil
	if !s.Regex || input == "" {
		return nil
	}
	re, err := strutil.RegexCompile(input, !s.Exact)
	if err != nil {
		return err
	}
	s.compiled = re
	return nil
}

// MatchLine reports whether line matches the current query per the active
// mode (regex vs literal) and scope mask.
func (s *State) MatchLine(line Line) bool {
	if s.Input == "" {
		return false
	}
	if s.Regex {
		if s.compiled == nil {
			return false
		}
		if s.Scope&ScopeMessage != 0 && s.compiled.MatchString(line.Message) {
			return true
		}
		if s.Scope&ScopePrefix != 0 && s.compiled.MatchString(line.Prefix) {
			return true
		}
		return false
	}

	if s.Scope&ScopeMessage != 0 && containsLiteral(line.Message, s.Input, s.Exact) {
		return true
	}
	if s.Scope&ScopePrefix != 0 && containsLiteral(line.Prefix, s.Input, s.Exact) {
		return true
	}
	return false
}

func containsLiteral(hay, needle string, exact bool) bool {
	if !exact {
		hay = strings.ToLower(hay)
		needle = strings.ToLower(needle)
	}
	return strings.Contains(hay, needle)
}

// LineSearcher is implemented by whatever holds the displayed line stream
// (bufstore), so the search engine never needs to know about arenas.
type LineSearcher interface {
	Len() int
	LineAt(i int) Line
}

// Previous walks from the current position toward older lines, returning the
// matched index and whether a match was found. A failed search with a
// non-empty query signals the caller should ring a bell.
func (s *State) Previous(ls LineSearcher) (int, bool) {
	return s.walk(ls, Backward)
}

// Next walks toward newer lines.
func (s *State) Next(ls LineSearcher) (int, bool) {
	return s.walk(ls, Forward)
}

func (s *State) walk(ls LineSearcher, dir Direction) (int, bool) {
	n := ls.Len()
	if n == 0 {
		s.Found = false
		return -1, false
	}

	i := s.current
	if dir == Backward {
		i--
	} else {
		i++
	}

	for i >= 0 && i < n {
		if s.MatchLine(ls.LineAt(i)) {
			s.current = i
			s.Found = true
			return i, true
		}
		if dir == Backward {
			i--
		} else {
			i++
		}
	}
	s.Found = false
	return -1, false
}

// Restart re-anchors at AnchorIndex, clears the found flag, and re-runs in
// the configured direction. Used after input edits or toggling
// exact/regex/scope.
func (s *State) Restart(ls LineSearcher) (int, bool) {
	s.current = s.AnchorIndex
	s.Found = false
	if s.Direction == Backward {
		return s.Previous(ls)
	}
	return s.Next(ls)
}

// Stop ends the search session. If stopHere, the scroll position stays on
// the matched line (and in History mode the matched entry is promoted into
// the input line — the caller does that promotion using CurrentIndex/Input
// since it owns the editor). If !stopHere, the caller should restore the
// anchor and reinsert SavedInput. Either way the compiled regex and saved
// input are cleared.
func (s *State) Stop(stopHere bool) (restoreInput string, shouldRestore bool) {
	defer func() {
		s.compiled = nil
		s.SavedInput = ""
		s.Mode = Off
	}()

	if stopHere {
		return "", false
	}
	return s.SavedInput, true
}

// CurrentIndex returns the current walk position.
func (s *State) CurrentIndex() int { return s.current }
