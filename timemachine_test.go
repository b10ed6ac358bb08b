package stratagem_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kode4food/stratagem"
)

// namedSteps is a Command whose type can't be compared with ==
type namedSteps []string

func (namedSteps) Execute(*State) {}

func (namedSteps) Undo(*State) {}

// recorder appends its name to the shared log on every Execute and Undo
type recorder struct {
	name string
	log  *[]string
}

func (r *recorder) Execute(ctx *State) {
	*r.log = append(*r.log, "exec "+r.name)
}

func (r *recorder) Undo(ctx *State) {
	*r.log = append(*r.log, "undo "+r.name)
}

func TestCanTimeTravel(t *testing.T) {
	tm := stratagem.Default[State]()
	assert.Equal(t, int32(0), tm.Value().Value())

	tm.Execute(Translate(5))
	assert.Equal(t, int32(5), tm.Value().Value())

	tm.Execute(Translate(10))
	assert.Equal(t, int32(15), tm.Value().Value())

	tm.Execute(NewScale(0))
	assert.Equal(t, int32(0), tm.Value().Value())

	tm.Undo()
	assert.Equal(t, int32(15), tm.Value().Value())

	tm.Undo()
	assert.Equal(t, int32(5), tm.Value().Value())

	tm.Undo()
	assert.Equal(t, int32(0), tm.Value().Value())

	tm.Undo()
	tm.Undo()
	assert.Equal(t, int32(0), tm.Value().Value())
	assert.Len(t, tm.History(), 0)
	assert.False(t, tm.CanUndo())
}

func TestNewFromContext(t *testing.T) {
	tm := stratagem.New(State{value: 7})
	assert.Equal(t, int32(7), tm.Value().Value())
	assert.Equal(t, 0, tm.Len())

	tm.Execute(NewScale(2))
	assert.Equal(t, int32(14), tm.Value().Value())
	tm.Undo()
	assert.Equal(t, int32(7), tm.Value().Value())
}

func TestSaturatingTranslate(t *testing.T) {
	tm := stratagem.New(State{value: math.MaxInt32})

	tm.Execute(Translate(1))
	assert.Equal(t, int32(math.MaxInt32), tm.Value().Value())
	assert.Equal(t, 1, tm.Len())

	low := stratagem.New(State{value: math.MinInt32})
	low.Execute(Translate(-1))
	assert.Equal(t, int32(math.MinInt32), low.Value().Value())
}

func TestUndoIsLIFO(t *testing.T) {
	var log []string
	a := &recorder{name: "A", log: &log}
	b := &recorder{name: "B", log: &log}
	c := &recorder{name: "C", log: &log}

	tm := stratagem.Default[State]()
	tm.Execute(a)
	tm.Execute(b)
	tm.Execute(c)

	tm.Undo()
	tm.Undo()
	tm.Undo()
	tm.Undo()

	assert.Equal(t, []string{
		"exec A", "exec B", "exec C",
		"undo C", "undo B", "undo A",
	}, log)
}

func TestHistoryOrder(t *testing.T) {
	tm := stratagem.Default[State]()
	s := NewScale(3)
	tm.Execute(Translate(1))
	tm.Execute(s)
	tm.Execute(Translate(2))

	hist := tm.History()
	require.Len(t, hist, 3)
	assert.True(t, hist[0].Is(Translate(1)))
	assert.True(t, hist[1].Is(s))
	assert.True(t, hist[2].Is(Translate(2)))
	assert.False(t, hist[1].Is(NewScale(3)))
	assert.False(t, hist[0].Is(Translate(2)))
	assert.False(t, hist[0].Is(nil))
	assert.Equal(t, "Translate(1)", hist[0].String())
	assert.Equal(t, "*stratagem_test.Scale", hist[1].String())

	tm.Undo()
	hist = tm.History()
	require.Len(t, hist, 2)
	assert.True(t, hist[0].Is(Translate(1)))
	assert.True(t, hist[1].Is(s))
}

func TestHistoryIsACopy(t *testing.T) {
	tm := stratagem.Default[State]()
	tm.Execute(Translate(1))
	tm.Execute(Translate(2))

	hist := tm.History()
	hist[0], hist[1] = hist[1], hist[0]
	hist = hist[:1]
	assert.Len(t, hist, 1)

	fresh := tm.History()
	require.Len(t, fresh, 2)
	assert.True(t, fresh[0].Is(Translate(1)))
	assert.True(t, fresh[1].Is(Translate(2)))

	tm.Undo()
	tm.Undo()
	assert.Equal(t, int32(0), tm.Value().Value())
}

func TestHistoryEntriesCannotRunCommands(t *testing.T) {
	tm := stratagem.New(State{value: 5})
	tm.Execute(NewScale(0))
	assert.Equal(t, int32(0), tm.Value().Value())

	hist := tm.History()
	require.Len(t, hist, 1)
	_, ok := any(hist[0]).(stratagem.Command[State])
	assert.False(t, ok)

	// The recorded Scale still holds its saved value for the real Undo
	tm.Undo()
	assert.Equal(t, int32(5), tm.Value().Value())
}

func TestHistoryEntryWithIncomparableCommand(t *testing.T) {
	var log []string
	seq := stratagem.Sequence[State](&recorder{name: "A", log: &log})
	tm := stratagem.Default[State]()
	tm.Execute(seq)
	tm.Execute(namedSteps{"x", "y"})

	hist := tm.History()
	require.Len(t, hist, 2)
	assert.True(t, hist[0].Is(seq))
	assert.NotPanics(t, func() {
		assert.False(t, hist[1].Is(namedSteps{"x", "y"}))
	})
}

func TestValueIsACopy(t *testing.T) {
	tm := stratagem.New(State{value: 3})
	v := tm.Value()
	v.Execute(Translate(10))
	assert.Equal(t, int32(13), v.Value())
	assert.Equal(t, int32(3), tm.Value().Value())
}

func TestTimeMachineIsCommander(t *testing.T) {
	var c stratagem.Commander[State] = stratagem.Default[State]()
	c.Execute(Translate(4))
	c.Execute(Translate(6))
	c.Undo()

	tm := c.(*stratagem.TimeMachine[State])
	assert.Equal(t, int32(4), tm.Value().Value())
	assert.Equal(t, 1, tm.Len())
}

func TestSequenceIsOneHistoryEntry(t *testing.T) {
	tm := stratagem.Default[State]()
	tm.Execute(Translate(1))
	tm.Execute(stratagem.Sequence[State](
		Translate(4), NewScale(3), Translate(-2),
	))
	assert.Equal(t, int32(13), tm.Value().Value())
	assert.Equal(t, 2, tm.Len())

	tm.Undo()
	assert.Equal(t, int32(1), tm.Value().Value())
	assert.Equal(t, 1, tm.Len())
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := stratagem.DefaultConfig()
	cfg.Logger = zap.New(core)

	tm := stratagem.NewWithConfig(State{}, cfg)
	tm.Execute(Translate(5))
	tm.Execute(NewScale(2))
	tm.Undo()
	tm.Undo()
	tm.Undo()

	executed := logs.FilterMessage("Command executed").All()
	require.Len(t, executed, 2)
	assert.Equal(t, "Translate(5)", executed[0].ContextMap()["command"])
	assert.Equal(t, int64(1), executed[0].ContextMap()["depth"])
	assert.Equal(t, "*stratagem_test.Scale", executed[1].ContextMap()["command"])
	assert.Equal(t, int64(2), executed[1].ContextMap()["depth"])

	undone := logs.FilterMessage("Command undone").All()
	require.Len(t, undone, 2)
	assert.Equal(t, int64(1), undone[0].ContextMap()["depth"])
	assert.Equal(t, int64(0), undone[1].ContextMap()["depth"])

	assert.Equal(t, 1, logs.FilterMessage("Nothing to undo").Len())
}

func TestNilLoggerFallsBack(t *testing.T) {
	tm := stratagem.NewWithConfig(State{}, stratagem.Config{})
	assert.NotPanics(t, func() {
		tm.Execute(Translate(1))
		tm.Undo()
		tm.Undo()
	})
	assert.Equal(t, int32(0), tm.Value().Value())
}
