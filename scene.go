package stage

import (
	"math"
	"slices"
	"time"

	"github.com/kamstrup/intmap"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, notifications emitted by actors with a non-zero
// EntityID are forwarded to the store after the actor's own handlers ran.
type EntityStore interface {
	Publish(evt Event)
}

// pointerForgetter is implemented by trackers that hold per-actor state.
type pointerForgetter interface {
	Forget(a *Actor)
}

const defaultActorCap = 256

// Scene owns the live actor set, the tile maps actors collide with, the
// camera, and the render pass.
//
// Add and Remove called while the scene is updating are deferred to the end
// of the frame. Remove always clears the actor's scene reference at once.
type Scene struct {
	// Camera applies to every actor in the world plane. May be nil.
	Camera *Camera

	actors   []*Actor
	byID     *intmap.Map[uint32, *Actor]
	toAdd    []*Actor
	toRemove []*Actor
	updating bool

	tileMaps  []*TileMap
	graphics  *GraphicsSystem
	drawables []*Actor

	store    EntityStore
	pointers PointerTracker
	logger   Logger
	debug    bool
	stats    debugStats
}

// NewScene creates an empty scene without a camera. The engine gives the
// scene a camera covering the screen when it has none.
func NewScene() *Scene {
	return &Scene{
		actors:    make([]*Actor, 0, defaultActorCap),
		byID:      intmap.New[uint32, *Actor](defaultActorCap),
		drawables: make([]*Actor, 0, defaultActorCap),
	}
}

// Add makes the actor live in the scene. An actor live in another scene is moved.
// Child actors are live through their root and cannot be added on their own.
func (s *Scene) Add(a *Actor) {
	if a == nil {
		return
	}
	if a.parent != nil {
		s.Logger().Warnf("actor %q has a parent, add its root to the scene instead", a.Name)
		return
	}
	if a.scene == s {
		return
	}
	if a.scene != nil {
		a.scene.Remove(a)
	}
	a.scene = s

	// Removed and re-added within the same frame: it never left the list.
	if i := slices.Index(s.toRemove, a); i >= 0 {
		s.toRemove = slices.Delete(s.toRemove, i, i+1)
		return
	}
	if s.updating {
		s.toAdd = append(s.toAdd, a)
		return
	}
	s.insert(a)
}

// Remove detaches a from the scene. The actor's scene reference is cleared
// immediately; while the scene is updating, the actor stays in the live list
// until the end of the frame but is no longer updated.
func (s *Scene) Remove(a *Actor) {
	if a == nil || a.scene != s {
		return
	}
	a.scene = nil

	if i := slices.Index(s.toAdd, a); i >= 0 {
		s.toAdd = slices.Delete(s.toAdd, i, i+1)
		return
	}
	if s.updating {
		s.toRemove = append(s.toRemove, a)
		return
	}
	s.drop(a)
}

func (s *Scene) insert(a *Actor) {
	s.actors = append(s.actors, a)
	s.byID.Put(a.ID, a)
	if s.debug {
		debugCheckTree(s.Logger(), a, 1)
	}
}

func (s *Scene) drop(a *Actor) {
	if i := slices.Index(s.actors, a); i >= 0 {
		s.actors = slices.Delete(s.actors, i, i+1)
	}
	s.byID.Del(a.ID)
	if f, ok := s.pointers.(pointerForgetter); ok {
		forgetTree(f, a)
	}
}

func forgetTree(f pointerForgetter, a *Actor) {
	f.Forget(a)
	for _, c := range a.children {
		forgetTree(f, c)
	}
}

// flushPending applies removals then additions deferred during update.
func (s *Scene) flushPending() {
	for _, a := range s.toRemove {
		s.drop(a)
	}
	clear(s.toRemove)
	s.toRemove = s.toRemove[:0]

	for _, a := range s.toAdd {
		s.insert(a)
	}
	clear(s.toAdd)
	s.toAdd = s.toAdd[:0]
}

// Actors returns the live root actors in insertion order. The returned slice
// MUST NOT be mutated.
func (s *Scene) Actors() []*Actor {
	return s.actors
}

// Len returns the number of live root actors.
func (s *Scene) Len() int {
	return len(s.actors)
}

// ActorByID returns the live root actor with the given ID.
func (s *Scene) ActorByID(id uint32) (*Actor, bool) {
	return s.byID.Get(id)
}

// Update advances the camera, then every live actor by delta milliseconds in
// insertion order, then applies deferred adds and removes.
func (s *Scene) Update(e *Engine, delta float64) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	// The camera moves first so culling sees the view the frame renders with.
	if s.Camera != nil {
		s.Camera.Update(delta)
	}

	s.updating = true
	for _, a := range s.actors {
		if a.scene != s || a.killed {
			continue
		}
		updateIsolated(a, e, delta)
	}
	s.updating = false
	s.flushPending()

	if s.debug {
		s.stats.updateTime = time.Since(t0)
		s.stats.actorCount = len(s.actors)
	}
}

// Draw renders tile maps and then every actor with a graphics component,
// children included, into ctx.
func (s *Scene) Draw(ctx Context, delta float64) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.graphics == nil || s.graphics.ctx != ctx {
		s.graphics = NewGraphicsSystem(ctx, s)
		s.graphics.BeforeDraw = s.drawTileMaps
	}

	s.drawables = s.drawables[:0]
	for _, a := range s.actors {
		if a.scene == s && !a.killed {
			s.drawables = appendDrawable(s.drawables, a)
		}
	}
	s.graphics.Update(s.drawables, delta)
	clear(s.drawables)

	if s.debug {
		s.stats.drawTime = time.Since(t0)
		s.stats.drawnCount = s.graphics.Drawn()
		if ec, ok := ctx.(*EbitenContext); ok {
			s.stats.drawCalls = ec.DrawCalls
		}
		s.debugLog()
	}
}

// appendDrawable appends a and its descendants, parents first, when they
// carry a graphics component.
func appendDrawable(dst []*Actor, a *Actor) []*Actor {
	if a.Graphics != nil {
		dst = append(dst, a)
	}
	for _, c := range a.children {
		if !c.killed {
			dst = appendDrawable(dst, c)
		}
	}
	return dst
}

func (s *Scene) drawTileMaps(ctx Context) {
	if len(s.tileMaps) == 0 {
		return
	}
	ctx.Save()
	view := BoundingBox{Left: math.Inf(-1), Top: math.Inf(-1), Right: math.Inf(1), Bottom: math.Inf(1)}
	if s.Camera != nil {
		s.Camera.Draw(ctx)
		view = s.Camera.VisibleBounds()
	}
	for _, tm := range s.tileMaps {
		tm.Draw(ctx, view)
	}
	ctx.Restore()
}

// AddTileMap registers a tile map for drawing and actor collision.
func (s *Scene) AddTileMap(tm *TileMap) {
	if tm == nil || slices.Contains(s.tileMaps, tm) {
		return
	}
	s.tileMaps = append(s.tileMaps, tm)
}

// RemoveTileMap unregisters a tile map.
func (s *Scene) RemoveTileMap(tm *TileMap) {
	if i := slices.Index(s.tileMaps, tm); i >= 0 {
		s.tileMaps = slices.Delete(s.tileMaps, i, i+1)
	}
}

// TileMaps returns the registered tile maps. The returned slice MUST NOT be
// mutated.
func (s *Scene) TileMaps() []*TileMap {
	return s.tileMaps
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetLogger sets the logger used by actors in this scene. A nil logger
// restores the package default.
func (s *Scene) SetLogger(l Logger) {
	s.logger = l
}

// Logger returns the scene logger, or the package default.
func (s *Scene) Logger() Logger {
	if s.logger == nil {
		return defaultLogger
	}
	return s.logger
}

// SetDebug enables or disables debug mode. Debug mode draws a marker at each
// actor's world position and logs per-frame timing stats at debug level.
// Oversized actor trees are reported when added.
func (s *Scene) SetDebug(enabled bool) {
	s.debug = enabled
}

// Debug reports whether debug mode is on.
func (s *Scene) Debug() bool {
	return s.debug
}
