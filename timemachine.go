package stratagem

import (
	"reflect"

	"go.uber.org/zap"
)

type (
	// History is a read-only view of the applied Commands, oldest first
	History[T any] []Entry[T]

	// Entry identifies a recorded Command without exposing it. Only the
	// TimeMachine may Execute or Undo what it has recorded
	Entry[T any] struct {
		cmd Command[T]
	}

	// TimeMachine owns a context and the History of Commands applied to it.
	// Executing through a TimeMachine records the Command; Undo pops the most
	// recent one and reverses it. Undone Commands are discarded, there is no
	// redo. It is not safe for concurrent use, and the context must not be
	// mutated except through Execute and Undo
	TimeMachine[T any] struct {
		machine T
		history []Command[T]
		logger  *zap.Logger
	}
)

var _ Commander[struct{}] = (*TimeMachine[struct{}])(nil)

// New creates a TimeMachine around an existing context with an empty History
func New[T any](machine T) *TimeMachine[T] {
	return NewWithConfig(machine, DefaultConfig())
}

// Default creates a TimeMachine around the zero value of T
func Default[T any]() *TimeMachine[T] {
	var zero T
	return New(zero)
}

// NewWithConfig creates a TimeMachine around an existing context, using the
// collaborators in cfg
func NewWithConfig[T any](machine T, cfg Config) *TimeMachine[T] {
	cfg = cfg.withDefaults()
	return &TimeMachine[T]{
		machine: machine,
		history: []Command[T]{},
		logger:  cfg.Logger,
	}
}

// Execute applies cmd to the context and appends it to the History
func (tm *TimeMachine[T]) Execute(cmd Command[T]) {
	cmd.Execute(&tm.machine)
	tm.history = append(tm.history, cmd)

	tm.logger.Debug("Command executed",
		zap.String("command", Describe(cmd)),
		zap.Int("depth", len(tm.history)),
	)
}

// Undo reverses and discards the most recently executed Command. With an
// empty History it does nothing
func (tm *TimeMachine[T]) Undo() {
	last := len(tm.history) - 1
	if last < 0 {
		tm.logger.Debug("Nothing to undo")
		return
	}

	cmd := tm.history[last]
	tm.history[last] = nil
	tm.history = tm.history[:last]
	cmd.Undo(&tm.machine)

	tm.logger.Debug("Command undone",
		zap.String("command", Describe(cmd)),
		zap.Int("depth", last),
	)
}

// Value returns the current state of the context
func (tm *TimeMachine[T]) Value() T {
	return tm.machine
}

// History returns the applied Commands, oldest first. The result is a
// snapshot; later Execute and Undo calls don't affect it
func (tm *TimeMachine[T]) History() History[T] {
	res := make(History[T], len(tm.history))
	for i, cmd := range tm.history {
		res[i] = Entry[T]{cmd: cmd}
	}
	return res
}

// Len returns the number of Commands that can still be undone
func (tm *TimeMachine[_]) Len() int {
	return len(tm.history)
}

// CanUndo reports whether the History holds anything to undo
func (tm *TimeMachine[_]) CanUndo() bool {
	return len(tm.history) > 0
}

// String describes the recorded Command
func (e Entry[_]) String() string {
	return Describe(e.cmd)
}

// Is reports whether the Entry records cmd. Commands whose type can't be
// compared with == never match
func (e Entry[_]) Is(cmd any) bool {
	if e.cmd == nil || cmd == nil {
		return false
	}
	typ := reflect.TypeOf(e.cmd)
	if typ != reflect.TypeOf(cmd) || !typ.Comparable() {
		return false
	}
	return any(e.cmd) == cmd
}
