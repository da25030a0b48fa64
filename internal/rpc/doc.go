// Package rpc serves pairjump over a line-delimited JSON protocol, one
// request per line on the input and one response per line on the output.
//
// Request:
//
//	{"id": 1, "method": "pair.exit", "text": "f(a, b)",
//	 "cursors": [{"line": 0, "character": 3}], "encoding": "utf-16", "count": 1}
//
// text may be omitted after the first request to reuse the last document.
// cursors may be omitted to reuse the cursors the previous request left.
// encoding selects whether character counts code points ("utf-8", the
// default) or UTF-16 code units ("utf-16").
//
// Methods:
//
//   - pair.exit, pair.enter, pair.exitBackward, pair.enterForward: one
//     result cursor per request cursor, in request order
//   - any other dispatcher action, including user.* actions from Lua
//     plugins: the document's cursors after the action, sorted and merged
//   - ping: session id
//   - actions: the names of all dispatchable actions
//   - metrics: dispatch counters, when metrics are enabled
//
// Response:
//
//	{"id": 1, "status": "ok", "cursors": [{"line": 0, "character": 7}]}
//	{"id": 1, "error": {"message": "..."}}
//
// A line that is not valid JSON gets an error response with "id": null.
package rpc
