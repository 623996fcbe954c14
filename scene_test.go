package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	events []Event
}

func (s *recordingStore) Publish(evt Event) { s.events = append(s.events, evt) }

func TestScene_AddAndLookup(t *testing.T) {
	s := NewScene()
	a := NewActor("a", 0, 0, 1, 1)
	b := NewActor("b", 0, 0, 1, 1)
	s.Add(a)
	s.Add(b)
	s.Add(a)
	s.Add(nil)

	require.Equal(t, 2, s.Len())
	assert.Equal(t, []*Actor{a, b}, s.Actors())
	assert.Same(t, s, a.Scene())

	got, ok := s.ActorByID(b.ID)
	require.True(t, ok)
	assert.Same(t, b, got)

	s.Remove(a)
	_, ok = s.ActorByID(a.ID)
	assert.False(t, ok)
	assert.Nil(t, a.Scene())
	assert.Equal(t, 1, s.Len())
}

func TestScene_AddChildRejected(t *testing.T) {
	rec := &recordLogger{}
	s := NewScene()
	s.SetLogger(rec)
	root := NewActor("root", 0, 0, 1, 1)
	child := NewActor("child", 0, 0, 1, 1)
	root.AddChild(child)

	s.Add(child)

	assert.Equal(t, 0, s.Len())
	assert.Nil(t, child.Scene())
	assert.Equal(t, 1, rec.count("warning"))
}

func TestScene_MoveBetweenScenes(t *testing.T) {
	s1, s2 := NewScene(), NewScene()
	a := NewActor("a", 0, 0, 1, 1)
	s1.Add(a)
	s2.Add(a)

	assert.Equal(t, 0, s1.Len())
	assert.Equal(t, 1, s2.Len())
	assert.Same(t, s2, a.Scene())
}

func TestScene_DeferredDuringUpdate(t *testing.T) {
	s := NewScene()
	spawner := NewActor("spawner", 0, 0, 1, 1)
	victim := NewActor("victim", 0, 0, 1, 1)
	spawned := NewActor("spawned", 0, 0, 1, 1)
	s.Add(spawner)
	s.Add(victim)

	victimUpdates := 0
	victim.OnPreUpdate = func(*Engine, float64) { victimUpdates++ }
	spawner.OnPreUpdate = func(*Engine, float64) {
		if spawned.Scene() != nil {
			return
		}
		s.Add(spawned)
		victim.Kill()
		assert.Nil(t, victim.Scene(), "scene reference not cleared at once")
		assert.Equal(t, 2, s.Len(), "live list changed mid-frame")
	}

	s.Update(nil, 16)

	assert.Equal(t, 0, victimUpdates, "actor removed earlier in the frame was updated")
	assert.False(t, spawned.IsInitialized(), "actor added mid-frame was updated in the same frame")
	assert.Equal(t, []*Actor{spawner, spawned}, s.Actors())

	s.Update(nil, 16)
	assert.True(t, spawned.IsInitialized())
}

func TestScene_RemoveThenAddSameFrame(t *testing.T) {
	s := NewScene()
	a := NewActor("a", 0, 0, 1, 1)
	b := NewActor("b", 0, 0, 1, 1)
	s.Add(a)
	s.Add(b)
	a.OnPreUpdate = func(*Engine, float64) {
		s.Remove(b)
		s.Add(b)
	}

	s.Update(nil, 16)

	assert.Equal(t, []*Actor{a, b}, s.Actors())
	assert.Same(t, s, b.Scene())
	assert.True(t, b.IsInitialized(), "re-added actor skipped this frame")
}

func TestScene_AddThenRemoveSameFrame(t *testing.T) {
	s := NewScene()
	a := NewActor("a", 0, 0, 1, 1)
	b := NewActor("b", 0, 0, 1, 1)
	s.Add(a)
	a.OnPreUpdate = func(*Engine, float64) {
		s.Add(b)
		s.Remove(b)
	}

	s.Update(nil, 16)

	assert.Equal(t, []*Actor{a}, s.Actors())
	assert.Nil(t, b.Scene())
}

func TestScene_UpdateIsolatesPanics(t *testing.T) {
	rec := &recordLogger{}
	s := NewScene()
	s.SetLogger(rec)
	bad := NewActor("bad", 0, 0, 1, 1)
	bad.OnPreUpdate = func(*Engine, float64) { panic("boom") }
	good := NewActor("good", 0, 0, 1, 1)
	ran := false
	good.OnPreUpdate = func(*Engine, float64) { ran = true }
	s.Add(bad)
	s.Add(good)

	s.Update(nil, 16)

	assert.True(t, ran, "actor after a panicking actor was not updated")
	assert.Equal(t, 1, rec.count("error"))
}

func TestScene_UpdatesCamera(t *testing.T) {
	s := NewScene()
	s.Camera = NewCamera(BoxFromSize(0, 0, 100, 100))
	a := NewActor("a", 300, 200, 1, 1)
	s.Add(a)
	s.Camera.Follow(a, Vec2{}, 1)

	s.Update(nil, 16)

	assert.InDelta(t, 300, s.Camera.X, 1e-9)
	assert.InDelta(t, 200, s.Camera.Y, 1e-9)
}

func TestScene_TileMaps(t *testing.T) {
	s := NewScene()
	tm := NewTileMap(0, 0, 1, 1, 1, 1)
	s.AddTileMap(tm)
	s.AddTileMap(tm)
	s.AddTileMap(nil)
	assert.Len(t, s.TileMaps(), 1)

	s.RemoveTileMap(tm)
	assert.Empty(t, s.TileMaps())
}

func TestScene_ForwardsBoundActorEvents(t *testing.T) {
	store := &recordingStore{}
	s := NewScene()
	s.SetEntityStore(store)

	bound := NewActor("bound", 0, 0, 1, 1)
	bound.EntityID = 7
	unbound := NewActor("unbound", 0, 0, 1, 1)
	s.Add(bound)
	s.Add(unbound)

	var handlerFirst bool
	bound.On(EventInitialize, func(Event) { handlerFirst = len(store.events) == 0 })

	s.Update(nil, 16)

	require.NotEmpty(t, store.events)
	assert.True(t, handlerFirst, "store saw the event before the actor's handlers")
	for _, e := range store.events {
		assert.Same(t, bound, e.Target)
	}

	store.events = nil
	bound.Kill()
	names := make([]EventName, 0, len(store.events))
	for _, e := range store.events {
		names = append(names, e.Name)
	}
	assert.Equal(t, []EventName{EventPreKill, EventKill, EventPostKill}, names)
}

func TestScene_ChildEventsForwardThroughRoot(t *testing.T) {
	store := &recordingStore{}
	s := NewScene()
	s.SetEntityStore(store)
	root := NewActor("root", 0, 0, 1, 1)
	child := NewActor("child", 0, 0, 1, 1)
	child.EntityID = 3
	root.AddChild(child)
	s.Add(root)

	s.Update(nil, 16)

	require.NotEmpty(t, store.events)
	for _, e := range store.events {
		assert.Same(t, child, e.Target)
	}
}

func TestScene_DebugChecksTree(t *testing.T) {
	rec := &recordLogger{}
	s := NewScene()
	s.SetLogger(rec)
	s.SetDebug(true)

	root := NewActor("root", 0, 0, 1, 1)
	p := root
	for i := 0; i < debugMaxTreeDepth+2; i++ {
		c := NewActor("deep", 0, 0, 1, 1)
		p.AddChild(c)
		p = c
	}
	s.Add(root)

	assert.Equal(t, 1, rec.count("warning"))
}

func TestScene_DebugLogsStats(t *testing.T) {
	rec := &recordLogger{}
	s := NewScene()
	s.SetLogger(rec)
	s.SetDebug(true)
	s.Add(NewColoredActor("a", 0, 0, 1, 1, ColorRed))

	s.Update(nil, 16)
	s.Draw(newRecordingContext(), 16)

	assert.Equal(t, 2, rec.count("debug"))
	assert.Equal(t, 1, s.stats.actorCount)
	assert.Equal(t, 1, s.stats.drawnCount)
}

func TestScene_LoggerFallback(t *testing.T) {
	rec := captureDefaultLogger(t)
	s := NewScene()
	assert.Same(t, rec, s.Logger())

	own := &recordLogger{}
	s.SetLogger(own)
	assert.Same(t, own, s.Logger())
}
