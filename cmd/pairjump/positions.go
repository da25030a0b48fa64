package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/dshills/pairjump/internal/engine/buffer"
)

// parsePosition parses a 1-based LINE:COL and checks it against snap.
// COL may point just past the last character of its line.
func parsePosition(snap *buffer.Snapshot, arg string) (buffer.Point, error) {
	lineText, colText, ok := strings.Cut(arg, ":")
	if !ok {
		return buffer.Point{}, fmt.Errorf("invalid position %q: want LINE:COL", arg)
	}
	line, err := strconv.Atoi(lineText)
	if err != nil || line < 1 {
		return buffer.Point{}, fmt.Errorf("invalid position %q: line must be a positive number", arg)
	}
	col, err := strconv.Atoi(colText)
	if err != nil || col < 1 {
		return buffer.Point{}, fmt.Errorf("invalid position %q: column must be a positive number", arg)
	}

	if uint32(line) > snap.LineCount() {
		return buffer.Point{}, fmt.Errorf("position %q is past the last line (%d)", arg, snap.LineCount())
	}
	p := buffer.Point{Line: uint32(line - 1), Column: uint32(col - 1)}
	if p.Column > snap.LineLen(p.Line) {
		return buffer.Point{}, fmt.Errorf("position %q is past the end of line %d (%d characters)", arg, line, snap.LineLen(p.Line))
	}
	return p, nil
}

func parsePositions(snap *buffer.Snapshot, args []string) ([]buffer.Point, error) {
	points := make([]buffer.Point, len(args))
	for i, arg := range args {
		p, err := parsePosition(snap, arg)
		if err != nil {
			return nil, err
		}
		points[i] = p
	}
	return points, nil
}

func formatPoint(p buffer.Point) string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

type positionResult struct {
	Line   int   `json:"line"`
	Column int   `json:"column"`
	Moved  *bool `json:"moved,omitempty"`
}

func validateFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be text or json)", format)
	}
}

// writeMoves prints one result per input position. Positions that did not
// move are dimmed.
func writeMoves(out io.Writer, format string, before, after []buffer.Point) error {
	if format == "json" {
		results := make([]positionResult, len(after))
		for i, p := range after {
			moved := p != before[i]
			results[i] = positionResult{Line: int(p.Line) + 1, Column: int(p.Column) + 1, Moved: &moved}
		}
		return writeJSON(out, results)
	}

	dim := color.New(color.Faint)
	for i, p := range after {
		if p == before[i] {
			if _, err := dim.Fprintln(out, formatPoint(p)); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintln(out, formatPoint(p)); err != nil {
			return err
		}
	}
	return nil
}

// writePoints prints a cursor list.
func writePoints(out io.Writer, format string, points []buffer.Point) error {
	if format == "json" {
		results := make([]positionResult, len(points))
		for i, p := range points {
			results[i] = positionResult{Line: int(p.Line) + 1, Column: int(p.Column) + 1}
		}
		return writeJSON(out, results)
	}
	for _, p := range points {
		if _, err := fmt.Fprintln(out, formatPoint(p)); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
