// Package dispatcher routes named actions to handlers and coordinates
// execution.
//
// Every front end (the CLI, the protocol server, the terminal viewer, Lua
// plugins) turns a request into an input.Action and hands it to a
// Dispatcher, which finds a handler, runs it against the current engine
// and cursors, and returns a handler.Result.
//
// # Routing
//
//  1. Namespace Router: "pair.exit" goes to the handler registered for the
//     "pair" namespace, if that handler accepts the name.
//  2. Handler Registry: exact action names, used for plugin actions such
//     as "user.wrapOut". Several handlers may share a name; the highest
//     priority wins.
//
// An action no handler accepts yields an error result wrapping
// ErrNoHandler.
//
// # Handler Execution
//
//  1. An ExecutionContext is built from the engine, the cursors, and the
//     optional input context; the action's Count overrides the context's
//  2. Pre-dispatch hooks run and may change the count or cancel
//  3. The handler runs, with panics turned into error results when
//     RecoverFromPanic is set
//  4. Post-dispatch hooks run
//  5. Metrics are recorded when EnableMetrics is set
//
// New always installs an audit hook that logs each dispatch at debug level,
// and a count-limit hook when MaxRepeatCount is positive.
//
// # Usage
//
//	d := dispatcher.New(dispatcher.DefaultConfig(), dispatcher.WithLogger(logger))
//	d.SetEngine(e)
//	d.SetCursors(e.Cursors())
//	d.RegisterNamespace("pair", pair.NewHandler())
//
//	result := d.Dispatch(input.NewAction("pair.exit", input.SourceCLI).WithCount(2))
//
// # Concurrency
//
// Registration and metrics are safe for concurrent use. The engine's cursor
// set is not, so a front end dispatches from one goroutine at a time.
package dispatcher
