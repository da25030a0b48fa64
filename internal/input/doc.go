// Package input defines the values that carry a user request to the
// dispatcher.
//
// An Action names a command ("pair.exit", "user.jumpOut") together with its
// arguments, where it came from, and a repeat count. A Context describes the
// state the request was made in: the file, the primary cursor, and any count
// prefix typed before the key that produced the action.
//
// Front ends build these values differently. The terminal viewer maps key
// names through the configured keymap and accumulates digit prefixes into
// the Context; the protocol server builds an Action per request; Lua
// plugins build one per doc.dispatch call.
package input
