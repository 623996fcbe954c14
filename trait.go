package stage

// Trait is one stage of an actor's per-frame pipeline. Traits run in the
// order of Actor.Traits after integration and before children update. A
// trait must not add or remove actors directly; removals go through the
// scene, which defers them to the end of the frame.
type Trait interface {
	Update(a *Actor, e *Engine, delta float64)
}

// TraitFunc adapts a function to the Trait interface.
type TraitFunc func(a *Actor, e *Engine, delta float64)

// Update calls f.
func (f TraitFunc) Update(a *Actor, e *Engine, delta float64) {
	f(a, e, delta)
}

// DefaultTraits returns the default pipeline: tile map collision, pointer
// capture, then off screen culling.
func DefaultTraits() []Trait {
	return []Trait{
		TileMapCollisionDetection{},
		CapturePointer{},
		&OffscreenCulling{},
	}
}

// FindTrait returns the first trait of type T in the actor's pipeline.
func FindTrait[T Trait](a *Actor) (T, bool) {
	for _, t := range a.Traits {
		if v, ok := t.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// activeScene returns the nearest scene in the ancestor chain, falling back
// to the engine's current scene.
func (a *Actor) activeScene(e *Engine) *Scene {
	for p := a; p != nil; p = p.parent {
		if p.scene != nil {
			return p.scene
		}
	}
	if e != nil {
		return e.scene
	}
	return nil
}

// --- TileMapCollisionDetection ---

// maxTileMapPasses bounds the resolution loop per tile map per frame.
const maxTileMapPasses = 3

// TileMapCollisionDetection resolves an actor against every tile map in its
// scene. Each pass emits precollision; Active actors are then pushed out by
// the intersection vector and postcollision is emitted.
type TileMapCollisionDetection struct{}

func (TileMapCollisionDetection) Update(a *Actor, e *Engine, _ float64) {
	c := a.Collider()
	if c == nil || c.Type == CollisionPreventCollision {
		return
	}
	s := a.activeScene(e)
	if s == nil {
		return
	}
	for _, tm := range s.TileMaps() {
		for pass := 0; pass < maxTileMapPasses; pass++ {
			v, ok := tm.Collides(a)
			if !ok {
				break
			}
			side := SideFromIntersection(v, ok)
			a.emit(Event{Name: EventPreCollision, Engine: e, Side: side, Intersection: v})
			if c.Type == CollisionActive {
				a.Body.SetPos(a.Transform.Pos.Add(v))
				a.emit(Event{Name: EventPostCollision, Engine: e, Side: side, Intersection: v})
			}
		}
	}
}

// --- CapturePointer ---

// CapturePointer hands the actor to the engine's pointer tracker when
// pointer capture is enabled and the actor is alive.
type CapturePointer struct{}

func (CapturePointer) Update(a *Actor, e *Engine, _ float64) {
	if !a.PointerCaptureEnabled() || a.IsKilled() {
		return
	}
	if e == nil || e.Pointers == nil {
		return
	}
	e.Pointers.UpdateActorUnderPointer(a, a.capture)
}

// --- OffscreenCulling ---

// OffscreenCulling marks the actor off screen when its world bounds do not
// overlap the visible area: the camera's visible bounds for world plane
// actors, the screen for screen plane actors. Transitions emit
// exitviewport and enterviewport.
type OffscreenCulling struct {
	// Margin grows the visible area on every side before testing.
	Margin float64
}

func (o *OffscreenCulling) Update(a *Actor, e *Engine, _ float64) {
	if e == nil {
		return
	}
	view, ok := visibleArea(a, e)
	if !ok {
		return
	}
	view = BoundingBox{
		Left:   view.Left - o.Margin,
		Top:    view.Top - o.Margin,
		Right:  view.Right + o.Margin,
		Bottom: view.Bottom + o.Margin,
	}

	off := !drawBounds(a).Overlaps(view)
	switch {
	case off && !a.offscreen:
		a.offscreen = true
		a.emit(Event{Name: EventExitViewport, Engine: e})
	case !off && a.offscreen:
		a.offscreen = false
		a.emit(Event{Name: EventEnterViewport, Engine: e})
	}
}

// visibleArea returns the area an actor must overlap to be on screen.
func visibleArea(a *Actor, e *Engine) (BoundingBox, bool) {
	screen := e.ScreenBounds()
	if a.Transform.Plane == CoordPlaneScreen {
		return screen, true
	}
	if s := a.activeScene(e); s != nil && s.Camera != nil {
		return s.Camera.VisibleBounds(), true
	}
	return screen, screen.Width() > 0 || screen.Height() > 0
}

// drawBounds is the actor's rotated world box grown to cover the current
// graphic, which may be larger than the actor.
func drawBounds(a *Actor) BoundingBox {
	bb := a.Bounds(true)
	g := a.currentGraphic()
	if g == nil {
		return bb
	}
	pos := a.WorldPos()
	scale := a.WorldScale()
	gw, gh := g.Width()*scale.X, g.Height()*scale.Y
	gb := BoundingBox{
		Left:   pos.X - gw*a.Anchor.X,
		Top:    pos.Y - gh*a.Anchor.Y,
		Right:  pos.X + gw*(1-a.Anchor.X),
		Bottom: pos.Y + gh*(1-a.Anchor.Y),
	}
	return bb.Combine(gb.Rotate(a.WorldRotation(), pos))
}
