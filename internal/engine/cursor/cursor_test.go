package cursor

import (
	"testing"
)

// Selection Tests

func TestSelectionBounds(t *testing.T) {
	tests := []struct {
		name       string
		sel        Selection
		start, end Offset
		empty      bool
	}{
		{"cursor", NewCursorSelection(4), 4, 4, true},
		{"forward", NewSelection(2, 9), 2, 9, false},
		{"backward", NewSelection(9, 2), 2, 9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.sel.Start() != tt.start || tt.sel.End() != tt.end {
				t.Errorf("bounds = [%d, %d], want [%d, %d]", tt.sel.Start(), tt.sel.End(), tt.start, tt.end)
			}
			if tt.sel.IsEmpty() != tt.empty {
				t.Errorf("IsEmpty = %v, want %v", tt.sel.IsEmpty(), tt.empty)
			}
			r := tt.sel.Range()
			if r.Start != tt.start || r.End != tt.end {
				t.Errorf("Range = %+v", r)
			}
		})
	}
}

func TestSelectionExtendKeepsAnchor(t *testing.T) {
	sel := NewSelection(3, 5).Extend(10)
	if sel.Anchor != 3 || sel.Head != 10 {
		t.Errorf("Extend = %s, want Selection(3→10)", sel)
	}
}

func TestSelectionMoveToCollapses(t *testing.T) {
	sel := NewSelection(3, 5).MoveTo(10)
	if !sel.IsEmpty() || sel.Head != 10 {
		t.Errorf("MoveTo = %s, want Cursor(10)", sel)
	}
}

func TestSelectionClamp(t *testing.T) {
	sel := NewSelection(-4, 40).Clamp(10)
	if sel.Anchor != 0 || sel.Head != 10 {
		t.Errorf("Clamp = %s, want Selection(0→10)", sel)
	}
}

func TestSelectionString(t *testing.T) {
	tests := []struct {
		sel  Selection
		want string
	}{
		{NewCursorSelection(7), "Cursor(7)"},
		{NewSelection(1, 4), "Selection(1→4)"},
		{NewSelection(4, 1), "Selection(4←1)"},
	}
	for _, tt := range tests {
		if got := tt.sel.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

// CursorSet Tests

func TestNewCursorSetFromSliceEmpty(t *testing.T) {
	cs := NewCursorSetFromSlice(nil)
	if cs.Count() != 1 || cs.Primary() != NewCursorSelection(0) {
		t.Errorf("expected single cursor at 0, got %v", cs.All())
	}
}

func TestCursorSetSortsSelections(t *testing.T) {
	cs := NewCursorSetFromSlice([]Selection{
		NewCursorSelection(20),
		NewCursorSelection(5),
		NewCursorSelection(12),
	})

	all := cs.All()
	want := []Offset{5, 12, 20}
	if len(all) != len(want) {
		t.Fatalf("expected %d cursors, got %d", len(want), len(all))
	}
	for i, w := range want {
		if all[i].Head != w {
			t.Errorf("cursor %d at %d, want %d", i, all[i].Head, w)
		}
	}
	if cs.Primary().Head != 5 {
		t.Errorf("primary should be the first cursor")
	}
	if !cs.IsMulti() {
		t.Error("expected multi-cursor set")
	}
}

func TestCursorSetMergesCoincidentCursors(t *testing.T) {
	cs := NewCursorSetFromSlice([]Selection{
		NewCursorSelection(3),
		NewCursorSelection(8),
	})

	cs.MapInPlace(func(sel Selection) Selection {
		return sel.MoveTo(10)
	})

	if cs.Count() != 1 {
		t.Fatalf("expected cursors to merge, got %v", cs.All())
	}
	if cs.Primary().Head != 10 {
		t.Errorf("merged cursor at %d, want 10", cs.Primary().Head)
	}
}

func TestCursorSetMergesOverlappingSelections(t *testing.T) {
	cs := NewCursorSetFromSlice([]Selection{
		NewSelection(0, 6),
		NewSelection(4, 9),
		NewSelection(12, 14),
	})

	if cs.Count() != 2 {
		t.Fatalf("expected 2 selections, got %v", cs.All())
	}
	if got := cs.All()[0]; got.Start() != 0 || got.End() != 9 {
		t.Errorf("merged selection = %s, want [0, 9]", got)
	}
}

func TestCursorSetKeepsTouchingCursorAndSelection(t *testing.T) {
	cs := NewCursorSetFromSlice([]Selection{
		NewSelection(2, 5),
		NewCursorSelection(5),
	})
	if cs.Count() != 2 {
		t.Errorf("expected 2 selections, got %v", cs.All())
	}
}

func TestCursorSetHasSelection(t *testing.T) {
	cs := NewCursorSetAt(1)
	if cs.HasSelection() {
		t.Error("cursor-only set should not report a selection")
	}
	cs.SetAll([]Selection{NewCursorSelection(1), NewSelection(5, 8)})
	if !cs.HasSelection() {
		t.Error("expected HasSelection to be true")
	}
}

func TestCursorSetClampAndClone(t *testing.T) {
	cs := NewCursorSetFromSlice([]Selection{NewCursorSelection(50), NewCursorSelection(2)})
	clone := cs.Clone()

	cs.Clamp(10)

	if cs.All()[1].Head != 10 {
		t.Errorf("clamped cursor at %d, want 10", cs.All()[1].Head)
	}
	if clone.All()[1].Head != 50 {
		t.Error("clone should be independent of the original")
	}
}
