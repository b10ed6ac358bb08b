package stratagem

import (
	"fmt"
	"slices"
)

type (
	// Command is a reversible mutation of a context of type T. Execute may
	// capture whatever state Undo needs. Undo reverses the most recent
	// Execute and must be a no-op when there is nothing to reverse
	Command[T any] interface {
		Execute(ctx *T)
		Undo(ctx *T)
	}

	// funcCommand adapts a pair of functions into a Command
	funcCommand[T any] struct {
		exec    func(*T)
		undo    func(*T)
		pending int
	}

	// sequence runs a fixed list of Commands as a single undo unit
	sequence[T any] struct {
		cmds    []Command[T]
		pending int
	}
)

// Func returns a Command that calls exec on Execute and undo on Undo. Undo
// only calls undo for executions that have not already been reversed. A nil
// undo makes the Command irreversible, though still safe to Undo
func Func[T any](exec, undo func(*T)) Command[T] {
	return &funcCommand[T]{
		exec: exec,
		undo: undo,
	}
}

func (c *funcCommand[T]) Execute(ctx *T) {
	if c.exec != nil {
		c.exec(ctx)
	}
	c.pending++
}

func (c *funcCommand[T]) Undo(ctx *T) {
	if c.pending == 0 {
		return
	}
	c.pending--
	if c.undo != nil {
		c.undo(ctx)
	}
}

// Sequence returns a Command that executes cmds in order and undoes them in
// reverse order. The sequence occupies a single history entry
func Sequence[T any](cmds ...Command[T]) Command[T] {
	return &sequence[T]{
		cmds: slices.Clone(cmds),
	}
}

func (s *sequence[T]) Execute(ctx *T) {
	for _, cmd := range s.cmds {
		cmd.Execute(ctx)
	}
	s.pending++
}

func (s *sequence[T]) Undo(ctx *T) {
	if s.pending == 0 {
		return
	}
	s.pending--
	for i := len(s.cmds) - 1; i >= 0; i-- {
		s.cmds[i].Undo(ctx)
	}
}

func (s *sequence[T]) String() string {
	names := make([]string, len(s.cmds))
	for i, cmd := range s.cmds {
		names[i] = Describe(cmd)
	}
	return fmt.Sprintf("Sequence%v", names)
}

// Describe returns a short label for a Command: its String method when it
// has one, otherwise its dynamic type
func Describe(cmd any) string {
	if s, ok := cmd.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", cmd)
}
