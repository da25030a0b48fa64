package delim

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/pairjump/internal/engine/buffer"
)

func pt(line, col uint32) buffer.Point {
	return buffer.Point{Line: line, Column: col}
}

func TestExitSelections(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		cursors []buffer.Point
		want    []buffer.Point
	}{
		{
			name:    "no match leaves cursor unchanged",
			text:    "hello world",
			cursors: []buffer.Point{pt(0, 5)},
			want:    []buffer.Point{pt(0, 5)},
		},
		{
			name:    "exit lands one past the boundary",
			text:    "foo(hello)",
			cursors: []buffer.Point{pt(0, 8)},
			want:    []buffer.Point{pt(0, 10)},
		},
		{
			name:    "nesting skip",
			text:    "foo(bar[baz])",
			cursors: []buffer.Point{pt(0, 10)},
			want:    []buffer.Point{pt(0, 12)},
		},
		{
			name:    "escape awareness",
			text:    "str\"hel\\\"lo\"",
			cursors: []buffer.Point{pt(0, 5)},
			want:    []buffer.Point{pt(0, 12)},
		},
		{
			name:    "multi-selection independence",
			text:    "foo(a) bar(b)",
			cursors: []buffer.Point{pt(0, 4), pt(0, 11)},
			want:    []buffer.Point{pt(0, 6), pt(0, 13)},
		},
		{
			name:    "closer on a later line",
			text:    "call(\n  x,\n  y\n)",
			cursors: []buffer.Point{pt(1, 2)},
			want:    []buffer.Point{pt(3, 1)},
		},
		{
			name:    "order and duplicates preserved",
			text:    "(a)(b)",
			cursors: []buffer.Point{pt(0, 4), pt(0, 1), pt(0, 1)},
			want:    []buffer.Point{pt(0, 6), pt(0, 3), pt(0, 3)},
		},
		{
			name:    "empty cursor list",
			text:    "(a)",
			cursors: nil,
			want:    []buffer.Point{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExitSelections(buffer.NewSnapshot(tt.text), tt.cursors)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExitSelections mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEnterSelections(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		cursors []buffer.Point
		want    []buffer.Point
	}{
		{
			name:    "enter lands on the closer",
			text:    "foo(hello)",
			cursors: []buffer.Point{pt(0, 10)},
			want:    []buffer.Point{pt(0, 9)},
		},
		{
			name:    "document start is unchanged",
			text:    "foo(hello)",
			cursors: []buffer.Point{pt(0, 0)},
			want:    []buffer.Point{pt(0, 0)},
		},
		{
			name:    "closer on an earlier line",
			text:    "f(\n  x\n)\nnext",
			cursors: []buffer.Point{pt(3, 2)},
			want:    []buffer.Point{pt(2, 0)},
		},
		{
			name:    "each cursor independent",
			text:    "(a) b (c) d",
			cursors: []buffer.Point{pt(0, 5), pt(0, 11)},
			want:    []buffer.Point{pt(0, 2), pt(0, 8)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnterSelections(buffer.NewSnapshot(tt.text), tt.cursors)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("EnterSelections mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBackwardAndForwardSelections(t *testing.T) {
	s := buffer.NewSnapshot("run(job[1])\nok")

	got := ExitBackwardSelections(s, []buffer.Point{pt(0, 9), pt(1, 1)})
	want := []buffer.Point{pt(0, 7), pt(1, 1)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExitBackwardSelections mismatch (-want +got):\n%s", diff)
	}

	got = EnterForwardSelections(s, []buffer.Point{pt(0, 0), pt(0, 10)})
	want = []buffer.Point{pt(0, 4), pt(0, 10)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EnterForwardSelections mismatch (-want +got):\n%s", diff)
	}
}

func TestUnchangedCursorKeepsOriginalPoint(t *testing.T) {
	// Column past the line end clamps for scanning, but an unmoved cursor
	// is handed back exactly as given.
	s := buffer.NewSnapshot("abc")
	in := []buffer.Point{pt(0, 40)}

	got := ExitSelections(s, in)
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
