package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type node struct{ name string }

func TestAddIgnoresDuplicates(t *testing.T) {
	r := NewRegistry(nil)
	target := &node{"a"}
	calls := 0
	l := NewListener(func(*Event) { calls++ })

	r.Add(target, "input", l)
	r.Add(target, "input", l)
	assert.Equal(t, 1, r.Count(target, "input"))

	require.NoError(t, r.Dispatch(New("input"), []any{target}))
	assert.Equal(t, 1, calls)
}

func TestRemoveByIdentity(t *testing.T) {
	r := NewRegistry(nil)
	target := &node{"a"}
	same := func(*Event) {}
	l1, l2 := NewListener(same), NewListener(same)
	r.Add(target, "input", l1)
	r.Add(target, "input", l2)

	assert.True(t, r.Remove(target, "input", l1))
	assert.False(t, r.Remove(target, "input", l1))
	assert.False(t, r.Remove(target, "keyup", l2))
	assert.Equal(t, 1, r.Count(target, "input"))

	assert.True(t, r.Remove(target, "input", l2))
	assert.Equal(t, 0, r.Total(target))
}

func TestDispatchBubbles(t *testing.T) {
	r := NewRegistry(nil)
	child, parent, window := &node{"child"}, &node{"parent"}, &node{"window"}
	var seen []string
	for _, n := range []*node{child, parent, window} {
		n := n
		r.Add(n, "ping", NewListener(func(e *Event) {
			assert.Same(t, child, e.Target)
			assert.Same(t, n, e.CurrentTarget)
			seen = append(seen, n.name)
		}))
	}
	path := []any{child, parent, window}

	require.NoError(t, r.Dispatch(NewBubbling("ping"), path))
	assert.Equal(t, []string{"child", "parent", "window"}, seen)

	seen = nil
	require.NoError(t, r.Dispatch(New("ping"), path))
	assert.Equal(t, []string{"child"}, seen)
}

func TestStopPropagation(t *testing.T) {
	r := NewRegistry(nil)
	child, parent := &node{"child"}, &node{"parent"}
	reached := false
	r.Add(child, "ping", NewListener(func(e *Event) { e.StopPropagation() }))
	r.Add(parent, "ping", NewListener(func(*Event) { reached = true }))

	e := NewBubbling("ping")
	require.NoError(t, r.Dispatch(e, []any{child, parent}))
	assert.False(t, reached)
	assert.True(t, e.Stopped())
}

func TestListenerRemovedDuringDispatchIsSkipped(t *testing.T) {
	r := NewRegistry(nil)
	target := &node{"a"}
	var second *Listener
	called := false
	first := NewListener(func(*Event) { r.Remove(target, "x", second) })
	second = NewListener(func(*Event) { called = true })
	r.Add(target, "x", first)
	r.Add(target, "x", second)

	require.NoError(t, r.Dispatch(New("x"), []any{target}))
	assert.False(t, called)
}

func TestPanickingListenerIsContained(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := NewRegistry(zap.New(core))
	target := &node{"a"}
	after := false
	r.Add(target, "x", NewListener(func(*Event) { panic("boom") }))
	r.Add(target, "x", NewListener(func(*Event) { after = true }))

	err := r.Dispatch(New("x"), []any{target})
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "boom", pe.Value)
	assert.True(t, after)
	assert.Equal(t, 1, logs.FilterMessage("event listener panicked").Len())
}

func TestDispatchNil(t *testing.T) {
	r := NewRegistry(nil)
	assert.ErrorIs(t, r.Dispatch(nil, nil), ErrNilEvent)
	assert.NoError(t, r.Dispatch(New("x"), nil))
}
