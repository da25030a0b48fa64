// Package lua runs user scripts that extend pairjump.
//
// Scripts run in a gopher-lua state with only the base, table, string and
// math libraries; io, os, debug and module loading are unavailable, and
// print() goes to the log. The global pair table offers:
//
//	pair.exit(text, offset)          -- offset past the enclosing closer, or nil
//	pair.enter(text, offset)         -- offset of the previous closer, or nil
//	pair.exit_backward(text, offset) -- offset of the enclosing opener, or nil
//	pair.enter_forward(text, offset) -- offset past the next opener, or nil
//	pair.register(name, fn)          -- adds dispatcher action "user.<name>"
//
// Offsets, lines and columns are 0-based and count characters.
//
// A registered function receives a doc table:
//
//	pair.register("out2", function(doc)
//	  doc.dispatch("pair.exit", 2)
//	end)
//
// doc.text(), doc.cursors(), doc.set_cursors(list) and
// doc.dispatch(action [, count]) operate on the document the action was
// dispatched against. A function that returns false reports no-op.
//
// All script execution goes through one state guarded by a mutex. Actions
// dispatched from inside a running script are marked with ArgNested so
// that a user action called that way runs without retaking the lock.
package lua
