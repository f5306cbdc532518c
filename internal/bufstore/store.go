package bufstore

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sasha-s/go-deadlock"

	"github.com/termchat/termchat-core/internal/hook"
	"github.com/termchat/termchat-core/internal/strutil"
)

// PositionPolicy selects where a newly inserted buffer without a layout
// slot lands.
type PositionPolicy int

const (
	PositionEnd PositionPolicy = iota
	PositionFirstGap
)

// HotlistPriority ranks a buffer's unread activity.
type HotlistPriority int

const (
	HotlistNone HotlistPriority = iota
	HotlistLow
	HotlistMessage
	HotlistPrivate
	HotlistHighlight
)

// Store owns the process-wide, number-ordered buffer list plus the visited
// ring and hotlist. All mutation happens on the main loop's goroutine; the
// mutex exists to make accidental concurrent access from a hook callback
// fail loudly in debug builds rather than corrupt state silently.
type Store struct {
	mu deadlock.Mutex

	head, tail     *Buffer
	byID           map[int64]*Buffer
	lastAssignedID int64

	hooks *hook.Registry

	MaxBuffers      int
	AutoRenumber    bool
	Position        PositionPolicy
	VisitedCapacity int

	visited []*Buffer
	hotlist []*Buffer

	reservedNames map[string]bool
}

// New returns an empty store wired to hooks for signal emission.
func New(hooks *hook.Registry) *Store {
	return &Store{
		byID:            make(map[int64]*Buffer),
		hooks:           hooks,
		MaxBuffers:      10000,
		AutoRenumber:    true,
		Position:        PositionEnd,
		VisitedCapacity: 50,
		reservedNames:   make(map[string]bool),
	}
}

// ReserveName marks a full name as single-instance, e.g. the main core
// buffer name, a secure buffer name, or a color buffer name.
func (s *Store) ReserveName(fullName string) { s.reservedNames[fullName] = true }

// GenerateID returns max(last_assigned+1, now_microseconds), strictly
// monotonic even across a system clock that runs backwards briefly.
func (s *Store) GenerateID() int64 {
	now := time.Now().UnixMicro()
	next := s.lastAssignedID + 1
	if now > next {
		next = now
	}
	s.lastAssignedID = next
	return next
}

func (s *Store) emit(b *Buffer, signal string) {
	if s.hooks == nil || b == nil {
		return
	}
	if b.Opening || !b.SignalsEnabled {
		return
	}
	s.hooks.ForEach(hook.KindSignal, func(h *hook.Hook) {
		if strutil.MatchList(signal, []string{h.SignalPattern}, true) {
			_ = h.SignalCB(signal, b)
		}
	})
}

// All returns every buffer, in list order.
func (s *Store) All() []*Buffer {
	out := make([]*Buffer, 0, len(s.byID))
	for b := s.head; b != nil; b = b.next {
		out = append(out, b)
	}
	return out
}

// ByID looks up a buffer by its immutable id.
func (s *Store) ByID(id int64) (*Buffer, bool) {
	b, ok := s.byID[id]
	return b, ok
}

// insertAtTail links b at the very end of the list, independent of
// numbering (numbering.go positions it afterward).
func (s *Store) insertAtTail(b *Buffer) {
	b.prev = s.tail
	if s.tail != nil {
		s.tail.next = b
	} else {
		s.head = b
	}
	s.tail = b
}

func (s *Store) unlink(b *Buffer) {
	if b.prev != nil {
		b.prev.next = b.next
	} else {
		s.head = b.next
	}
	if b.next != nil {
		b.next.prev = b.prev
	} else {
		s.tail = b.prev
	}
	b.prev, b.next = nil, nil
}

// insertBefore relinks b into the list immediately before mark (mark may be
// nil to mean "at the tail").
func (s *Store) insertBefore(b, mark *Buffer) {
	if mark == nil {
		s.insertAtTail(b)
		return
	}
	b.prev = mark.prev
	b.next = mark
	if mark.prev != nil {
		mark.prev.next = b
	} else {
		s.head = b
	}
	mark.prev = b
}

// Search finds a buffer by plugin/name: plugin == "==" means full-name
// lookup, "==id" means numeric id lookup; a "(?i)" prefix on name toggles
// case-insensitivity; otherwise ranks exact > prefix > suffix > substring,
// ties broken round-robin from currentWindowBuffer.
func (s *Store) Search(plugin, name string, currentWindowBuffer *Buffer) *Buffer {
	caseInsensitive := false
	if strings.HasPrefix(name, "(?i)") {
		caseInsensitive = true
		name = name[len("(?i)"):]
	}

	if plugin == "==id" {
		id, err := strconv.ParseInt(name, 10, 64)
		if err != nil {
			return nil
		}
		b, _ := s.byID[id]
		return b
	}
	if plugin == "==" {
		for b := s.head; b != nil; b = b.next {
			if matchName(b.FullName(), name, caseInsensitive, true) {
				return b
			}
		}
		return nil
	}

	type scored struct {
		b     *Buffer
		score int
	}
	var candidates []scored
	for b := s.head; b != nil; b = b.next {
		if plugin != "" && b.PluginOwner != plugin {
			continue
		}
		if sc, ok := rankMatch(b.Name, name, caseInsensitive); ok {
			candidates = append(candidates, scored{b, sc})
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score < candidates[j].score })
	best := candidates[0].score
	var tied []*Buffer
	for _, c := range candidates {
		if c.score == best {
			tied = append(tied, c.b)
		}
	}
	if len(tied) == 1 || currentWindowBuffer == nil {
		return tied[0]
	}
	for i, b := range tied {
		if b == currentWindowBuffer {
			return tied[(i+1)%len(tied)]
		}
	}
	return tied[0]
}

func matchName(hay, needle string, caseInsensitive, exact bool) bool {
	if caseInsensitive {
		hay, needle = strings.ToLower(hay), strings.ToLower(needle)
	}
	if exact {
		return hay == needle
	}
	return strings.Contains(hay, needle)
}

// rankMatch scores lower = better: 0 exact, 1 prefix, 2 suffix, 3 substring.
func rankMatch(hay, needle string, caseInsensitive bool) (int, bool) {
	h, n := hay, needle
	if caseInsensitive {
		h, n = strings.ToLower(h), strings.ToLower(n)
	}
	switch {
	case h == n:
		return 0, true
	case strings.HasPrefix(h, n):
		return 1, true
	case strings.HasSuffix(h, n):
		return 2, true
	case strings.Contains(h, n):
		return 3, true
	default:
		return 0, false
	}
}
