package stage

// Body is the physical state of an actor: velocity, acceleration, angular
// motion, and the previous frame's values. Position and rotation live in the
// owning actor's Transform.
//
// OldPos, OldVel, OldAcc, and OldRotation hold the values immediately before
// the current frame's integration step. They are written only by
// CaptureOldTransform.
type Body struct {
	Vel             Vec2
	Acc             Vec2
	AngularVelocity float64 // radians per second
	Torque          float64

	OldPos      Vec2
	OldVel      Vec2
	OldAcc      Vec2
	OldRotation float64

	Collider *Collider

	actor     *Actor
	transform *Transform
}

// newBody creates a body bound to the actor's transform and owning collider.
func newBody(a *Actor, collider *Collider) *Body {
	b := &Body{actor: a, transform: &a.Transform}
	b.SetCollider(collider)
	return b
}

// Actor returns the owning actor.
func (b *Body) Actor() *Actor {
	return b.actor
}

// SetCollider replaces the collider and takes ownership of it.
func (b *Body) SetCollider(c *Collider) {
	if c == nil {
		c = NewCollider(BoxShape(0, 0, VecHalf))
	}
	c.body = b
	c.MarkDirty()
	b.Collider = c
}

// Pos returns the current position.
func (b *Body) Pos() Vec2 {
	return b.transform.Pos
}

// SetPos sets the current position and invalidates collider bounds.
func (b *Body) SetPos(p Vec2) {
	b.transform.Pos = p
	b.Collider.MarkDirty()
}

// Rotation returns the current rotation in radians.
func (b *Body) Rotation() float64 {
	return b.transform.Rotation
}

// SetRotation sets the current rotation and invalidates collider bounds.
func (b *Body) SetRotation(r float64) {
	b.transform.Rotation = r
	b.Collider.MarkDirty()
}

// CaptureOldTransform copies the current position, velocity, acceleration,
// and rotation into the Old fields. Call once per frame before Integrate.
func (b *Body) CaptureOldTransform() {
	b.OldPos = b.transform.Pos
	b.OldVel = b.Vel
	b.OldAcc = b.Acc
	b.OldRotation = b.transform.Rotation
}

// Integrate advances the body by delta milliseconds using semi-implicit
// Euler: velocity first, then position from the new velocity. Torque adds
// angular acceleration when the collider has a positive inertia.
func (b *Body) Integrate(delta float64) {
	s := delta / 1000

	b.Vel = b.Vel.Add(b.Acc.Scale(s))
	b.transform.Pos = b.transform.Pos.Add(b.Vel.Scale(s))

	if b.Collider != nil && b.Collider.Inertia > 0 && b.Torque != 0 {
		b.AngularVelocity += b.Torque / b.Collider.Inertia * s
	}
	b.transform.Rotation += b.AngularVelocity * s

	if b.Collider != nil {
		b.Collider.MarkDirty()
	}
}

// ApplyImpulse changes velocity by impulse / mass. Bodies with no mass or a
// Fixed collider are unaffected.
func (b *Body) ApplyImpulse(impulse Vec2) {
	if b.Collider == nil || b.Collider.Mass <= 0 || b.Collider.Type == CollisionFixed {
		return
	}
	b.Vel = b.Vel.Add(impulse.Scale(1 / b.Collider.Mass))
}
