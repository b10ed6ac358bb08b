// Package stratagem implements the Command pattern with linear undo. State
// changes are expressed as Commands that can be applied to a context value
// and later reversed, and a TimeMachine records executed Commands so they can
// be undone one at a time, most recent first.
//
// Typical usage looks like:
//   - Define a context type and give it Execute and Undo methods, either by
//     hand (delegating to Apply and embedding NoUndo) or with commandergen
//   - Define Commands that mutate the context, capturing whatever they need
//     to reverse themselves
//   - Run Commands directly against the context, or wrap the context in a
//     TimeMachine to have them recorded and undoable
//
// Nothing in this package is safe for concurrent use. A TimeMachine assumes
// it is the only writer of its context; callers that share one across
// goroutines must serialize access themselves.
//
// The examples/ directory contains runnable programs for both styles.
package stratagem
