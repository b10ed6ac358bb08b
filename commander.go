package stratagem

type (
	// Commander accepts Commands and runs them against a context of type T.
	// A bare context is usually its own Commander, with an Undo that does
	// nothing; a TimeMachine is a Commander whose Undo reverses history
	Commander[T any] interface {
		Execute(cmd Command[T])
		Undo()
	}

	// NoUndo supplies the default Commander Undo. Embed it in a context type
	// that keeps no history of its own
	NoUndo struct{}
)

// Apply runs cmd against ctx. It is the entire body of a bare context's
// Execute method
func Apply[T any](ctx *T, cmd Command[T]) {
	cmd.Execute(ctx)
}

// Undo does nothing. Reversing a Command applied to a bare context is the
// caller's job, through the Command itself
func (NoUndo) Undo() {}
