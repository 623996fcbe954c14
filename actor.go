package stage

import "math"

// --- ID counter ---

// actorIDCounter is a plain counter (no atomic; stage is single-threaded).
var actorIDCounter uint32

func nextActorID() uint32 {
	actorIDCounter++
	return actorIDCounter
}

// --- Actor ---

// Actor is the scene graph entity. It owns an optional Body, an optional
// graphics component, an ordered trait pipeline, an action queue, and its
// children. The parent field is a plain back-reference and never owns.
type Actor struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	parent   *Actor
	children []*Actor

	// Pose and physics
	Transform Transform
	Body      *Body

	// Drawing
	Graphics *GraphicsComponent
	Width    float64
	Height   float64
	Anchor   Vec2 // fraction of Width/Height the position refers to
	Color    *Color
	Opacity  float64

	// Behavior
	Traits  []Trait
	Actions *ActionQueue

	// Lifecycle callbacks (nil by default)
	OnInitialize func(e *Engine)
	OnPreUpdate  func(e *Engine, delta float64)
	OnPostUpdate func(e *Engine, delta float64)
	OnPreKill    func()
	OnPostKill   func()

	// Metadata
	UserData any
	// EntityID links the actor to an ECS entity. Zero means unbound; only
	// bound actors have their notifications forwarded to the scene's
	// EntityStore.
	EntityID uint32

	events          Emitter
	scene           *Scene
	initialized     bool
	killed          bool
	offscreen       bool
	previousOpacity float64

	capture      CaptureConfig
	captureCount int
}

// NewActor creates an actor at (x, y) with a Passive box collider sized
// width×height around the default anchor (0.5, 0.5) and the default trait
// pipeline.
func NewActor(name string, x, y, width, height float64) *Actor {
	a := &Actor{
		ID:              nextActorID(),
		Name:            name,
		Transform:       newTransform(),
		Width:           width,
		Height:          height,
		Anchor:          VecHalf,
		Opacity:         1,
		previousOpacity: 1,
	}
	a.Transform.Pos = Vec2{x, y}
	a.Body = newBody(a, NewCollider(BoxShape(width, height, a.Anchor)))
	a.Traits = DefaultTraits()
	a.Actions = newActionQueue(a)
	return a
}

// NewColoredActor is NewActor with a solid color. The actor's opacity starts
// at the color's alpha and a rectangle graphic of the actor's size is shown.
func NewColoredActor(name string, x, y, width, height float64, c Color) *Actor {
	a := NewActor(name, x, y, width, height)
	a.Color = &c
	a.Opacity = c.A
	a.previousOpacity = c.A
	NewGraphicsComponent(a).Use("color", NewRect(width, height, Color{c.R, c.G, c.B, 1}))
	return a
}

// Scene returns the scene the actor is live in, or nil.
func (a *Actor) Scene() *Scene {
	return a.scene
}

// Events returns the actor's event emitter.
func (a *Actor) Events() *Emitter {
	return &a.events
}

// On registers fn for events named name on this actor. Registering a pointer
// event handler does not enable pointer capture; see EnablePointerCapture.
func (a *Actor) On(name EventName, fn func(Event)) Handle {
	return a.events.On(name, fn)
}

// Once registers fn for the next event named name on this actor.
func (a *Actor) Once(name EventName, fn func(Event)) Handle {
	return a.events.Once(name, fn)
}

// emit dispatches evt to the actor's handlers and, for actors bound to an
// entity, forwards it to the entity store of the nearest scene in the
// ancestor chain.
func (a *Actor) emit(evt Event) {
	a.emitVia(a.activeScene(nil), evt)
}

func (a *Actor) emitVia(s *Scene, evt Event) {
	if evt.Target == nil {
		evt.Target = a
	}
	a.events.Emit(evt)
	if s != nil && s.store != nil && a.EntityID != 0 {
		s.store.Publish(evt)
	}
}

// SetAnchor changes the anchor and rebuilds a box collider to match.
func (a *Actor) SetAnchor(anchor Vec2) {
	a.Anchor = anchor
	a.resizeBox()
}

// SetWidth changes the width and rebuilds a box collider to match.
func (a *Actor) SetWidth(w float64) {
	a.Width = w
	a.resizeBox()
}

// SetHeight changes the height and rebuilds a box collider to match.
func (a *Actor) SetHeight(h float64) {
	a.Height = h
	a.resizeBox()
}

func (a *Actor) resizeBox() {
	if a.Body == nil || a.Body.Collider == nil || a.Body.Collider.Shape.Kind != ShapeBox {
		return
	}
	a.Body.Collider.SetShape(BoxShape(a.Width, a.Height, a.Anchor))
}

// Center returns the center of the actor's box in local coordinates,
// accounting for the anchor.
func (a *Actor) Center() Vec2 {
	p := a.Transform.Pos
	return Vec2{
		p.X + a.Width/2 - a.Anchor.X*a.Width,
		p.Y + a.Height/2 - a.Anchor.Y*a.Height,
	}
}

// --- Tree manipulation ---

// AddChild appends child to this actor's children. Child movement is then
// relative to this actor, and the child's collider stops taking part in
// collision resolution. If child already has a parent, it is removed from
// that parent first. Panics if child is nil or is an ancestor of a.
func (a *Actor) AddChild(child *Actor) {
	if child == nil {
		panic("stage: cannot add nil child")
	}
	if isAncestor(child, a) {
		panic("stage: adding child would create a cycle")
	}
	if child.parent != nil {
		child.parent.removeChildByPtr(child)
	}
	if child.Body != nil && child.Body.Collider != nil {
		child.Body.Collider.Type = CollisionPreventCollision
	}
	child.parent = a
	a.children = append(a.children, child)
	child.markBoundsDirty()
}

// RemoveChild detaches child from this actor. No-op if child is not a child
// of a.
func (a *Actor) RemoveChild(child *Actor) {
	if child == nil || child.parent != a {
		return
	}
	a.removeChildByPtr(child)
	child.parent = nil
	child.markBoundsDirty()
}

// RemoveFromParent detaches this actor from its parent.
func (a *Actor) RemoveFromParent() {
	if a.parent != nil {
		a.parent.RemoveChild(a)
	}
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (a *Actor) Children() []*Actor {
	return a.children
}

// Parent returns the parent actor, or nil.
func (a *Actor) Parent() *Actor {
	return a.parent
}

// Ancestors returns the chain from the root down to and including a.
func (a *Actor) Ancestors() []*Actor {
	var chain []*Actor
	for p := a; p != nil; p = p.parent {
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Root returns the topmost ancestor. A detached actor is its own root.
func (a *Actor) Root() *Actor {
	r := a
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// isAncestor reports whether candidate is an ancestor of (or equal to) a.
func isAncestor(candidate, a *Actor) bool {
	for p := a; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from a.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (a *Actor) removeChildByPtr(child *Actor) {
	for i, c := range a.children {
		if c == child {
			copy(a.children[i:], a.children[i+1:])
			a.children[len(a.children)-1] = nil
			a.children = a.children[:len(a.children)-1]
			return
		}
	}
}

// --- Geometry ---

// Collider returns the actor's collider, or nil when it has no body.
func (a *Actor) Collider() *Collider {
	if a.Body == nil {
		return nil
	}
	return a.Body.Collider
}

// Bounds returns the actor's box in world coordinates derived from its size
// and anchor. When rotated is true the envelope of the box rotated about the
// world position is returned.
func (a *Actor) Bounds(rotated bool) BoundingBox {
	pos := a.WorldPos()
	ax, ay := a.Width*a.Anchor.X, a.Height*a.Anchor.Y
	bb := BoundingBox{
		Left:   pos.X - ax,
		Top:    pos.Y - ay,
		Right:  pos.X + a.Width - ax,
		Bottom: pos.Y + a.Height - ay,
	}
	if rotated {
		return bb.Rotate(a.Transform.Rotation, pos)
	}
	return bb
}

// RelativeBounds is Bounds relative to the actor's position. Rotation is
// about the actor's position.
func (a *Actor) RelativeBounds(rotated bool) BoundingBox {
	ax, ay := a.Width*a.Anchor.X, a.Height*a.Anchor.Y
	bb := BoundingBox{Left: -ax, Top: -ay, Right: a.Width - ax, Bottom: a.Height - ay}
	if rotated {
		return bb.Rotate(a.Transform.Rotation, Vec2{})
	}
	return bb
}

// worldColliderBounds returns the collider bounds shifted by the difference
// between the world and local position. The two differ only for children.
func (a *Actor) worldColliderBounds() BoundingBox {
	c := a.Collider()
	if c == nil {
		return a.Bounds(true)
	}
	shift := a.WorldPos().Sub(a.Transform.Pos)
	return c.Bounds().Translate(shift)
}

// Contains reports whether the world point (x, y) lies inside the actor's
// collider bounds. With recurse set, children are tested too and the result
// is true if any actor in the subtree contains the point.
func (a *Actor) Contains(x, y float64, recurse bool) bool {
	if a.worldColliderBounds().Contains(Vec2{x, y}) {
		return true
	}
	if recurse {
		for _, child := range a.children {
			if child.Contains(x, y, true) {
				return true
			}
		}
	}
	return false
}

// Collides returns the intersection vector between the two actors' collider
// bounds, or ok == false when they do not overlap.
func (a *Actor) Collides(other *Actor) (Vec2, bool) {
	if other == nil {
		return Vec2{}, false
	}
	return a.worldColliderBounds().Intersect(other.worldColliderBounds())
}

// CollidesWithSide returns the side of a that touches other, or SideNone.
// The side is chosen from the relative positions along the dominant axis of
// the intersection.
func (a *Actor) CollidesWithSide(other *Actor) Side {
	v, ok := a.Collides(other)
	if !ok {
		return SideNone
	}
	ap, op := a.Transform.Pos, other.Transform.Pos
	if math.Abs(v.X) > math.Abs(v.Y) {
		if ap.X < op.X {
			return SideRight
		}
		return SideLeft
	}
	if ap.Y < op.Y {
		return SideBottom
	}
	return SideTop
}

// Within reports whether the surfaces of the two actors' shapes are at most
// distance apart.
func (a *Actor) Within(other *Actor, distance float64) bool {
	ca, cb := a.Collider(), other.Collider()
	if ca == nil || cb == nil {
		return false
	}
	if _, hit := ca.Shape.Intersect(ca.pose(), &cb.Shape, cb.pose()); hit {
		return true
	}
	return ca.ClosestLineBetween(cb).Length() <= distance
}

// IsOffScreen reports whether the culling trait last found the actor outside
// the visible area.
func (a *Actor) IsOffScreen() bool {
	return a.offscreen
}
