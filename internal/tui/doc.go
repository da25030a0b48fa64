// Package tui is a small tcell viewer for trying pair motions.
//
// The viewer shows one document with line numbers and its cursors. Arrow
// keys and hjkl dispatch cursor moves, space collapses to one cursor, and
// keys bound in the config keymap dispatch their actions. A count can be
// typed as digits first. The
// status line shows the primary cursor as 1-based line:col and the result
// of the last action.
package tui
