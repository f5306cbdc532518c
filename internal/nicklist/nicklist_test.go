package nicklist

import "testing"

func buildSample() *List {
	l := New()
	ops := l.AddGroup("ops", -1)
	voice := l.AddGroup("voice", -1)
	l.AddNick("alice", "@", "lightgreen", ops)
	l.AddNick("bob", "", "default", ops)
	l.AddNick("carol", "+", "yellow", voice)
	return l
}

func TestAddAndFlatLayout(t *testing.T) {
	l := buildSample()
	if l.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", l.Len())
	}
	alice := l.Get(2)
	if alice.Name != "alice" || alice.Prefix != "@" {
		t.Fatalf("Get(2) = %+v, want alice/@", alice)
	}
	if l.allItems[alice.ParentIndex].Name != "ops" {
		t.Fatalf("alice's parent = %q, want ops", l.allItems[alice.ParentIndex].Name)
	}
}

func TestRemoveGroupDropsDescendantNicks(t *testing.T) {
	l := buildSample()
	// "ops" is index 0; removing it must also drop alice and bob.
	l.Remove(0)
	if l.Len() != 2 {
		t.Fatalf("Len() after removing ops = %d, want 2 (voice + carol)", l.Len())
	}
	for i := 0; i < l.Len(); i++ {
		e := l.Get(i)
		if e.Name == "alice" || e.Name == "bob" {
			t.Fatalf("descendant %q survived group removal", e.Name)
		}
	}
}

func TestFilterHidesNonMatching(t *testing.T) {
	l := buildSample()
	l.Filter(func(e *Entry) bool { return e.IsGroup || e.Prefix != "" })
	// groups (2) + alice (@) + carol (+) = 4, bob (no prefix) excluded.
	if l.Len() != 4 {
		t.Fatalf("Len() after filter = %d, want 4", l.Len())
	}
	for i := 0; i < l.Len(); i++ {
		if e := l.Get(i); !e.IsGroup && e.Prefix == "" {
			t.Fatalf("unfiltered non-prefixed nick %q leaked through", e.Name)
		}
	}
}

func TestSortByName(t *testing.T) {
	l := buildSample()
	l.Sort(func(a, b *Entry) bool { return a.Name < b.Name })
	for i := 1; i < l.Len(); i++ {
		if l.Get(i-1).Name > l.Get(i).Name {
			t.Fatalf("entries not sorted: %q before %q", l.Get(i-1).Name, l.Get(i).Name)
		}
	}
}

func TestSelectionClampsToBounds(t *testing.T) {
	l := buildSample()
	l.SetSelectedIdx(100)
	if l.SelectedIdx != l.Len()-1 {
		t.Fatalf("SelectedIdx = %d, want clamped to %d", l.SelectedIdx, l.Len()-1)
	}
	l.SetSelectedIdx(-5)
	if l.SelectedIdx != 0 {
		t.Fatalf("SelectedIdx = %d, want clamped to 0", l.SelectedIdx)
	}
}

func TestSelectNextPrevWraplessClamp(t *testing.T) {
	l := buildSample()
	l.SelectedIdx = l.Len() - 1
	l.SelectNext()
	if l.SelectedIdx != l.Len()-1 {
		t.Fatalf("SelectNext past end = %d, want stay at %d", l.SelectedIdx, l.Len()-1)
	}
	l.SelectedIdx = 0
	l.SelectPrev()
	if l.SelectedIdx != 0 {
		t.Fatalf("SelectPrev before start = %d, want stay at 0", l.SelectedIdx)
	}
}

func TestSelectionOnEmptyList(t *testing.T) {
	l := New()
	if _, ok := l.Selected(); ok {
		t.Fatal("Selected() on empty list should report false")
	}
	l.SetSelectedIdx(5)
	if l.SelectedIdx != 0 {
		t.Fatalf("SelectedIdx on empty list = %d, want 0", l.SelectedIdx)
	}
}
