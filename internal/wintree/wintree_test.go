package wintree

import "testing"

// TestSplitHorizontalAndResize splits a window and then resizes the tree.
func TestSplitHorizontalAndResize(t *testing.T) {
	tree := New(1, 80, 24)
	root := tree.Current()

	bottom, err := tree.SplitHorizontal(root, 50)
	if err != nil {
		t.Fatalf("SplitHorizontal: %v", err)
	}
	if root.Rect != (Rect{0, 0, 80, 12}) {
		t.Fatalf("top rect = %+v, want 80x12 at origin", root.Rect)
	}
	if bottom.Rect != (Rect{0, 12, 80, 12}) {
		t.Fatalf("bottom rect = %+v, want 80x12 at y=12", bottom.Rect)
	}
	if bottom.BufferID != root.BufferID {
		t.Fatalf("bottom.BufferID = %d, want %d (same buffer)", bottom.BufferID, root.BufferID)
	}

	resized := tree.Resize(80, 30)
	if len(resized) != 2 {
		t.Fatalf("Resize reported %d changed windows, want 2", len(resized))
	}
	if root.Rect != (Rect{0, 0, 80, 15}) {
		t.Fatalf("top rect after resize = %+v, want 80x15", root.Rect)
	}
	if bottom.Rect != (Rect{0, 15, 80, 15}) {
		t.Fatalf("bottom rect after resize = %+v, want 80x15 at y=15", bottom.Rect)
	}
	if root.Refresh.Level() == 0 {
		t.Fatal("root window should have a pending refresh after resize")
	}
}

func TestSplitRefusesBelowMinimum(t *testing.T) {
	tree := New(1, 80, 3)
	root := tree.Current()
	if _, err := tree.SplitHorizontal(root, 10); err != ErrMinimumSize {
		t.Fatalf("SplitHorizontal with tiny pct = %v, want ErrMinimumSize", err)
	}
}

func TestMergeRestoresSingleLeaf(t *testing.T) {
	tree := New(1, 80, 24)
	root := tree.Current()
	bottom, _ := tree.SplitHorizontal(root, 50)

	if err := tree.Merge(root); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(tree.Windows()) != 1 {
		t.Fatalf("Windows() = %d, want 1 after merge", len(tree.Windows()))
	}
	if tree.Current() != root {
		t.Fatalf("Current() = %v, want root restored", tree.Current())
	}
	_ = bottom
}

func TestMergeAllClosesEveryOtherWindow(t *testing.T) {
	tree := New(1, 80, 24)
	root := tree.Current()
	right, _ := tree.SplitVertical(root, 50)
	_, _ = tree.SplitHorizontal(right, 50)

	if len(tree.Windows()) != 3 {
		t.Fatalf("setup: Windows() = %d, want 3", len(tree.Windows()))
	}
	tree.MergeAll(root)
	if len(tree.Windows()) != 1 {
		t.Fatalf("Windows() = %d, want 1 after MergeAll", len(tree.Windows()))
	}
	if tree.Windows()[0] != root {
		t.Fatal("MergeAll must keep the requested window")
	}
}

func TestSwitchNextPrevWraps(t *testing.T) {
	tree := New(1, 80, 24)
	root := tree.Current()
	bottom, _ := tree.SplitHorizontal(root, 50)

	if got := tree.SwitchNext(); got != bottom {
		t.Fatalf("SwitchNext() = %v, want bottom", got)
	}
	if got := tree.SwitchNext(); got != root {
		t.Fatalf("SwitchNext() wrap = %v, want root", got)
	}
	if got := tree.SwitchPrev(); got != bottom {
		t.Fatalf("SwitchPrev() wrap = %v, want bottom", got)
	}
}

func TestSwitchDirectional(t *testing.T) {
	tree := New(1, 80, 24)
	top := tree.Current()
	bottom, _ := tree.SplitHorizontal(top, 50)

	tree.current = top
	if got := tree.SwitchDirectional(Down); got != bottom {
		t.Fatalf("SwitchDirectional(Down) = %v, want bottom", got)
	}
	if got := tree.SwitchDirectional(Up); got != top {
		t.Fatalf("SwitchDirectional(Up) = %v, want top", got)
	}
}

func TestDisplayBufferScrollListGC(t *testing.T) {
	tree := New(1, 80, 24)
	w := tree.Current()

	w.DisplayBuffer(2)
	w.Scroll().StartLine = 5
	w.Scroll().touch()

	w.DisplayBuffer(3) // untouched entry for buffer 2 stays (it's modified)
	w.DisplayBuffer(1) // fresh buffer, no scroll touched on 3 yet

	if len(w.scrollList) > 3 {
		t.Fatalf("scrollList grew unexpectedly: %d entries", len(w.scrollList))
	}

	w.DisplayBuffer(2)
	if w.Scroll().StartLine != 5 {
		t.Fatalf("StartLine = %d, want 5 (restored modified entry)", w.Scroll().StartLine)
	}
}

func TestBalanceResetsEveryInternalNodeToEvenSplit(t *testing.T) {
	tree := New(1, 80, 24)
	top := tree.Current()
	bottom, _ := tree.SplitHorizontal(top, 75)
	right, _ := tree.SplitVertical(bottom, 25)

	tree.Balance()

	if top.Rect != (Rect{0, 0, 80, 12}) {
		t.Fatalf("top rect after Balance = %+v, want 80x12 (even top-level split)", top.Rect)
	}
	if bottom.Rect != (Rect{0, 12, 40, 12}) {
		t.Fatalf("bottom rect after Balance = %+v, want 40x12 (even nested split)", bottom.Rect)
	}
	if right.Rect != (Rect{40, 12, 40, 12}) {
		t.Fatalf("right rect after Balance = %+v, want 40x12 (even nested split)", right.Rect)
	}
}

func TestParseRelativeScroll(t *testing.T) {
	delta, unit, err := ParseRelativeScroll("-10")
	if err != nil || delta != -10 || unit != UnitLines {
		t.Fatalf("ParseRelativeScroll(-10) = %d,%v,%v", delta, unit, err)
	}
	delta, unit, err = ParseRelativeScroll("+2d")
	if err != nil || delta != 2 || unit != UnitDays {
		t.Fatalf("ParseRelativeScroll(+2d) = %d,%v,%v", delta, unit, err)
	}
}
