// Package hook implements the tagged-union hook registry consumed by the
// main loop: timers, fds, forked processes, signals, modifiers, line
// filters, commands, completion providers, and print hooks. All kinds
// share one registry so priority/insertion ordering and deferred removal
// during iteration are implemented once.
package hook

import (
	"os"
	"sort"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// Kind tags which payload fields of a Hook are meaningful.
type Kind int

const (
	KindTimer Kind = iota
	KindFD
	KindProcess
	KindSignal
	KindModifier
	KindLine
	KindCommand
	KindCompletion
	KindPrint
)

type (
	TimerCallback      func() error
	FDCallback         func(readReady, writeReady, errReady bool) error
	ProcessCallback    func(exited bool, stdout, stderr string) error
	SignalCallback     func(sigType string, data any) error
	ModifierCallback   func(text string) string
	LineCallback       func(payload any) any
	CommandCallback    func(args []string) error
	CompletionCallback func(partial string) []any
	PrintCallback      func(payload any) error
)

// FDFlags selects which readiness conditions an fd hook cares about.
type FDFlags struct {
	Read  bool
	Write bool
	Error bool
}

// Hook is a single registered callback. Only the fields relevant to Kind
// are populated, the same tagged-union shape as a discriminated hook_*_exec
// record.
type Hook struct {
	ID       uuid.UUID
	Kind     Kind
	Owner    string
	UserData any
	Priority int
	Disabled bool

	seq int

	// timer
	Interval time.Duration
	MaxCalls int // 0 = unlimited
	calls    int
	NextFire time.Time
	TimerCB  TimerCallback

	// fd
	FD      int
	FDFlags FDFlags
	FDCB    FDCallback

	// process
	ChildPID   int
	ProcessCB  ProcessCallback

	// signal
	SignalPattern string
	SignalCB      SignalCallback

	// modifier
	ModifierName string
	ModifierCB   ModifierCallback

	// line / print
	BufferMask []string
	TagFilter  []string
	LineCB     LineCallback
	PrintCB    PrintCallback

	// command
	Verb       string
	CommandCB  CommandCallback

	// completion
	CompletionName string
	CompletionCB   CompletionCallback
}

// Registry holds every live hook, regardless of kind.
type Registry struct {
	hooks     []*Hook
	nextSeq   int
	iterating int
	pending   []*Hook // hooks unhooked mid-iteration, swept after
}

// New returns an empty hook registry.
func New() *Registry {
	return &Registry{}
}

func (r *Registry) add(h *Hook) *Hook {
	h.ID = uuid.New()
	h.seq = r.nextSeq
	r.nextSeq++
	r.hooks = append(r.hooks, h)
	return h
}

// HookTimer registers a timer firing every interval; maxCalls == 0 means
// unlimited. The hook is auto-removed once maxCalls fires have happened.
func (r *Registry) HookTimer(owner string, interval time.Duration, maxCalls int, priority int, cb TimerCallback) *Hook {
	return r.add(&Hook{
		Kind:     KindTimer,
		Owner:    owner,
		Priority: priority,
		Interval: interval,
		MaxCalls: maxCalls,
		NextFire: time.Time{}, // caller/engine stamps this using its own clock source
		TimerCB:  cb,
	})
}

func (r *Registry) HookFD(owner string, fd int, flags FDFlags, priority int, cb FDCallback) *Hook {
	return r.add(&Hook{Kind: KindFD, Owner: owner, Priority: priority, FD: fd, FDFlags: flags, FDCB: cb})
}

func (r *Registry) HookProcess(owner string, pid int, priority int, cb ProcessCallback) *Hook {
	return r.add(&Hook{Kind: KindProcess, Owner: owner, Priority: priority, ChildPID: pid, ProcessCB: cb})
}

func (r *Registry) HookSignal(owner, pattern string, priority int, cb SignalCallback) *Hook {
	return r.add(&Hook{Kind: KindSignal, Owner: owner, Priority: priority, SignalPattern: pattern, SignalCB: cb})
}

func (r *Registry) HookModifier(owner, name string, priority int, cb ModifierCallback) *Hook {
	return r.add(&Hook{Kind: KindModifier, Owner: owner, Priority: priority, ModifierName: name, ModifierCB: cb})
}

func (r *Registry) HookLine(owner string, bufferMask, tagFilter []string, priority int, cb LineCallback) *Hook {
	return r.add(&Hook{Kind: KindLine, Owner: owner, Priority: priority, BufferMask: bufferMask, TagFilter: tagFilter, LineCB: cb})
}

func (r *Registry) HookCommand(owner, verb string, priority int, cb CommandCallback) *Hook {
	return r.add(&Hook{Kind: KindCommand, Owner: owner, Priority: priority, Verb: verb, CommandCB: cb})
}

func (r *Registry) HookCompletion(owner, name string, priority int, cb CompletionCallback) *Hook {
	return r.add(&Hook{Kind: KindCompletion, Owner: owner, Priority: priority, CompletionName: name, CompletionCB: cb})
}

func (r *Registry) HookPrint(owner string, bufferMask []string, priority int, cb PrintCallback) *Hook {
	return r.add(&Hook{Kind: KindPrint, Owner: owner, Priority: priority, BufferMask: bufferMask, PrintCB: cb})
}

// Unhook disables h immediately and removes it from the registry. If called
// while an iteration over h's kind is in progress, physical removal is
// deferred until that iteration completes: a hook removed during its own
// iteration is flagged disabled and freed after the walk. Unhooking a
// process hook whose child is still running sends it SIGTERM; reaping a
// child that has already exited and calling Unhook on its hook afterwards
// is harmless, signalling a dead pid is a no-op.
func (r *Registry) Unhook(h *Hook) {
	if h == nil || h.Disabled {
		return
	}
	if h.Kind == KindProcess && h.ChildPID > 0 {
		terminateChild(h.ChildPID)
	}
	h.Disabled = true
	if r.iterating > 0 {
		r.pending = append(r.pending, h)
		return
	}
	r.remove(h)
}

// terminateChild sends SIGTERM to pid, swallowing the error: the process may
// already have exited and been reaped by the time cancellation runs.
func terminateChild(pid int) {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return
	}
	_ = proc.Signal(syscall.SIGTERM)
}

func (r *Registry) remove(h *Hook) {
	for i, existing := range r.hooks {
		if existing == h {
			r.hooks = append(r.hooks[:i], r.hooks[i+1:]...)
			return
		}
	}
}

// ForEach walks every non-disabled hook of kind in priority-desc,
// insertion-order order, calling fn for each. fn may call Unhook on any
// hook (including the one it was passed) safely.
func (r *Registry) ForEach(kind Kind, fn func(*Hook)) {
	r.iterating++
	defer func() {
		r.iterating--
		if r.iterating == 0 && len(r.pending) > 0 {
			for _, h := range r.pending {
				r.remove(h)
			}
			r.pending = r.pending[:0]
		}
	}()

	snapshot := make([]*Hook, 0, len(r.hooks))
	for _, h := range r.hooks {
		if h.Kind == kind {
			snapshot = append(snapshot, h)
		}
	}
	sort.SliceStable(snapshot, func(i, j int) bool {
		if snapshot[i].Priority != snapshot[j].Priority {
			return snapshot[i].Priority > snapshot[j].Priority
		}
		return snapshot[i].seq < snapshot[j].seq
	})

	for _, h := range snapshot {
		if h.Disabled {
			continue
		}
		fn(h)
	}
}

// TickTimer increments a fired timer's call count and reports whether it
// should now be removed (maxCalls reached).
func (h *Hook) TickTimer() (expired bool) {
	h.calls++
	return h.MaxCalls > 0 && h.calls >= h.MaxCalls
}

// Count returns the number of live hooks of kind.
func (r *Registry) Count(kind Kind) int {
	n := 0
	for _, h := range r.hooks {
		if h.Kind == kind && !h.Disabled {
			n++
		}
	}
	return n
}

// All returns every live hook, for infolist dumps.
func (r *Registry) All() []*Hook {
	out := make([]*Hook, 0, len(r.hooks))
	for _, h := range r.hooks {
		if !h.Disabled {
			out = append(out, h)
		}
	}
	return out
}
