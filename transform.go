package stage

// Transform is an actor's local pose plus draw ordering.
//
// Pos and Rotation are the single source of the actor's position and
// rotation; the actor's Body integrates them in place.
type Transform struct {
	Pos      Vec2
	Rotation float64 // radians, clockwise in screen space
	Scale    Vec2
	Z        float64
	Plane    CoordPlane
}

// newTransform returns a transform with unit scale in the world plane.
func newTransform() Transform {
	return Transform{Scale: VecOne, Plane: CoordPlaneWorld}
}

// WorldRotation returns the sum of local rotations from this actor up to the
// root.
func (a *Actor) WorldRotation() float64 {
	r := a.Transform.Rotation
	for p := a.parent; p != nil; p = p.parent {
		r += p.Transform.Rotation
	}
	return r
}

// WorldPos returns the actor's position after composing through its
// ancestors: the local positions from the root down to this actor are summed,
// then the sum is rotated by this actor's world rotation about the root's
// position. An actor with no parent returns its local position.
func (a *Actor) WorldPos() Vec2 {
	if a.parent == nil {
		return a.Transform.Pos
	}
	sum := a.Transform.Pos
	root := a
	for p := a.parent; p != nil; p = p.parent {
		sum = sum.Add(p.Transform.Pos)
		root = p
	}
	return sum.Rotate(a.WorldRotation(), root.Transform.Pos)
}

// WorldScale returns the product of local scales from this actor to the root.
func (a *Actor) WorldScale() Vec2 {
	s := a.Transform.Scale
	for p := a.parent; p != nil; p = p.parent {
		s = Vec2{s.X * p.Transform.Scale.X, s.Y * p.Transform.Scale.Y}
	}
	return s
}

// SetPos sets the local position and marks collider bounds dirty.
func (a *Actor) SetPos(x, y float64) {
	a.Transform.Pos = Vec2{x, y}
	a.markBoundsDirty()
}

// Pos returns the local position.
func (a *Actor) Pos() Vec2 {
	return a.Transform.Pos
}

// SetRotation sets the local rotation (radians) and marks bounds dirty.
func (a *Actor) SetRotation(r float64) {
	a.Transform.Rotation = r
	a.markBoundsDirty()
}

// SetScale sets the local scale.
func (a *Actor) SetScale(sx, sy float64) {
	a.Transform.Scale = Vec2{sx, sy}
}

// SetZ sets the draw order. Lower Z draws first.
func (a *Actor) SetZ(z float64) {
	a.Transform.Z = z
}

// Z returns the draw order.
func (a *Actor) Z() float64 {
	return a.Transform.Z
}

func (a *Actor) markBoundsDirty() {
	if a.Body != nil && a.Body.Collider != nil {
		a.Body.Collider.MarkDirty()
	}
}
