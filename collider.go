package stage

// Collider holds a body's collision shape and material properties.
//
// Bounds are derived from the shape and the owning body's current pose. The
// result is cached and recomputed when the collider is marked dirty or when
// the pose it was computed at no longer matches the body's pose, so the cache
// never diverges from the pose even if Transform fields are written directly.
type Collider struct {
	Shape Shape

	Mass       float64
	Inertia    float64
	Friction   float64
	Bounciness float64

	Type CollisionType
	// Group optionally names the collision group. Colliders in the same
	// non-empty group never collide with each other.
	Group string

	body *Body

	bounds      BoundingBox
	boundsPose  Pose
	boundsDirty bool
}

// NewCollider returns a Passive collider with unit mass and inertia derived
// from the shape.
func NewCollider(shape Shape) *Collider {
	c := &Collider{
		Shape:       shape,
		Mass:        1,
		Friction:    0.99,
		Bounciness:  0.2,
		Type:        CollisionPassive,
		boundsDirty: true,
	}
	c.Inertia = shape.Inertia(c.Mass)
	return c
}

// Body returns the body that owns this collider, or nil.
func (c *Collider) Body() *Body {
	return c.body
}

// SetShape replaces the shape and invalidates cached bounds.
func (c *Collider) SetShape(s Shape) {
	c.Shape = s
	c.boundsDirty = true
}

// MarkDirty forces bounds recomputation on the next access.
func (c *Collider) MarkDirty() {
	c.boundsDirty = true
}

// pose returns the pose the shape is evaluated at: the body's local position
// and rotation. Child actors correct for the parent offset separately.
func (c *Collider) pose() Pose {
	if c.body == nil || c.body.transform == nil {
		return Pose{}
	}
	return Pose{Pos: c.body.transform.Pos, Rotation: c.body.transform.Rotation}
}

// Bounds returns the world-space axis-aligned bounds of the shape at the
// body's current pose.
func (c *Collider) Bounds() BoundingBox {
	p := c.pose()
	if c.boundsDirty || p != c.boundsPose {
		c.bounds = c.Shape.Bounds(p)
		c.boundsPose = p
		c.boundsDirty = false
	}
	return c.bounds
}

// LocalBounds returns the shape bounds relative to the body position.
func (c *Collider) LocalBounds() BoundingBox {
	return c.Shape.Bounds(Pose{Rotation: c.pose().Rotation})
}

// Center returns the world-space center of the shape.
func (c *Collider) Center() Vec2 {
	return c.Shape.Center(c.pose())
}

// CanCollide reports whether resolution between c and other may happen.
func (c *Collider) CanCollide(other *Collider) bool {
	if c == other || other == nil {
		return false
	}
	if c.Type == CollisionPreventCollision || other.Type == CollisionPreventCollision {
		return false
	}
	if c.Group != "" && c.Group == other.Group {
		return false
	}
	// Two immovable colliders have nothing to resolve.
	if c.Type == CollisionFixed && other.Type == CollisionFixed {
		return false
	}
	return true
}

// Collide returns the minimum translation vector moving c out of other.
func (c *Collider) Collide(other *Collider) (Vec2, bool) {
	if !c.CanCollide(other) {
		return Vec2{}, false
	}
	if !c.Bounds().Overlaps(other.Bounds()) {
		return Vec2{}, false
	}
	return c.Shape.Intersect(c.pose(), &other.Shape, other.pose())
}

// ClosestLineBetween returns the shortest segment from c's shape to other's.
func (c *Collider) ClosestLineBetween(other *Collider) Line {
	return c.Shape.ClosestLineBetween(c.pose(), &other.Shape, other.pose())
}
