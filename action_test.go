package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

func TestActionQueue_MoveTo(t *testing.T) {
	a := NewActor("a", 0, 0, 1, 1)
	a.Actions.MoveTo(100, 40, 1, ease.Linear)

	a.Actions.Update(500)
	assert.InDelta(t, 50, a.Pos().X, 1e-4)
	assert.InDelta(t, 20, a.Pos().Y, 1e-4)
	assert.Equal(t, 1, a.Actions.Len())

	a.Actions.Update(500)
	assert.InDelta(t, 100, a.Pos().X, 1e-4)
	assert.InDelta(t, 40, a.Pos().Y, 1e-4)
	assert.False(t, a.Actions.HasNext())
}

func TestActionQueue_RunsInOrder(t *testing.T) {
	a := NewActor("a", 0, 0, 1, 1)
	var got []string
	a.Actions.
		CallMethod(func() { got = append(got, "first") }).
		Delay(300).
		CallMethod(func() { got = append(got, "second") })

	a.Actions.Update(16)
	assert.Equal(t, []string{"first"}, got)

	a.Actions.Update(100)
	a.Actions.Update(100)
	assert.Equal(t, []string{"first"}, got, "delay finished early")

	a.Actions.Update(100)
	a.Actions.Update(16)
	assert.Equal(t, []string{"first", "second"}, got)
	assert.Equal(t, 0, a.Actions.Len())
}

func TestActionQueue_FadeAndScale(t *testing.T) {
	a := NewActor("a", 0, 0, 1, 1)
	a.Actions.FadeTo(0, 0.5, ease.Linear).ScaleTo(2, 3, 0.5, ease.Linear)

	a.Actions.Update(500)
	assert.InDelta(t, 0, a.Opacity, 1e-4)
	a.Actions.Update(500)
	assert.InDelta(t, 2, a.Transform.Scale.X, 1e-4)
	assert.InDelta(t, 3, a.Transform.Scale.Y, 1e-4)
}

func TestActionQueue_Repeat(t *testing.T) {
	a := NewActor("a", 0, 0, 1, 1)
	a.Actions.Repeat(2, func(q *ActionQueue) {
		q.MoveBy(10, 0, 0.1, ease.Linear)
	})

	a.Actions.Update(100)
	assert.InDelta(t, 10, a.Pos().X, 1e-4)
	require.Equal(t, 1, a.Actions.Len(), "repeat finished after one pass")

	a.Actions.Update(100)
	assert.InDelta(t, 20, a.Pos().X, 1e-4)
	assert.Equal(t, 0, a.Actions.Len())
}

func TestActionQueue_Die(t *testing.T) {
	s := NewScene()
	a := NewActor("a", 0, 0, 1, 1)
	s.Add(a)
	ran := false
	a.Actions.Die().CallMethod(func() { ran = true })

	a.Actions.Update(16)
	assert.True(t, a.IsKilled())
	assert.Nil(t, a.Scene())
	assert.Equal(t, 0, a.Actions.Len(), "die left actions queued")

	a.Actions.Update(16)
	assert.False(t, ran)
}

func TestActionQueue_Clear(t *testing.T) {
	a := NewActor("a", 0, 0, 1, 1)
	a.Actions.Delay(100).Delay(100)
	a.Actions.Clear()
	assert.False(t, a.Actions.HasNext())
	a.Actions.Update(16)
}
