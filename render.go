package stage

// debugMarkerRadius is the radius of the marker drawn at each actor's world
// position in debug mode.
const debugMarkerRadius = 5

// GraphicsSystem draws actors that carry a graphics component, in z order,
// into a Context.
type GraphicsSystem struct {
	// BeforeDraw, when set, runs after the clear and before any actor is
	// drawn. The scene uses it to draw tile maps under the actors.
	BeforeDraw func(ctx Context)

	ctx   Context
	scene *Scene

	sorted []*Actor // reused buffer
	token  uint64
	drawn  int
	debug  *Circle
}

// NewGraphicsSystem creates a render pass drawing into ctx. The scene
// supplies the camera and the debug flag and may be nil.
func NewGraphicsSystem(ctx Context, scene *Scene) *GraphicsSystem {
	return &GraphicsSystem{
		ctx:   ctx,
		scene: scene,
		debug: NewCircle(debugMarkerRadius, ColorRed),
	}
}

// Context returns the context the system draws into.
func (g *GraphicsSystem) Context() Context {
	return g.ctx
}

// Drawn returns the number of actors drawn by the last pass.
func (g *GraphicsSystem) Drawn() int {
	return g.drawn
}

// Update runs one render pass: clear, stable sort by Z, draw every actor
// that is on screen, then flush once.
func (g *GraphicsSystem) Update(actors []*Actor, delta float64) {
	g.ctx.Clear()
	g.token++
	if g.BeforeDraw != nil {
		g.BeforeDraw(g.ctx)
	}

	g.sorted = append(g.sorted[:0], actors...)
	sortByZ(g.sorted)

	var cam *Camera
	debug := false
	if g.scene != nil {
		cam = g.scene.Camera
		debug = g.scene.Debug()
	}

	g.drawn = 0
	for _, a := range g.sorted {
		if a.Graphics == nil || a.IsOffScreen() {
			continue
		}
		g.drawActor(a, cam, delta, debug)
		g.drawn++
	}
	clear(g.sorted)
	g.ctx.Flush()
}

// drawActor draws one actor inside its own save scopes. A panic while
// drawing is logged and the scopes opened so far are restored, so the rest
// of the pass is unaffected.
func (g *GraphicsSystem) drawActor(a *Actor, cam *Camera, delta float64, debug bool) {
	ctx := g.ctx
	saves := 0
	defer func() {
		if r := recover(); r != nil {
			for ; saves > 0; saves-- {
				ctx.Restore()
			}
			a.logger().Errorf("actor %q (id %d) draw panicked: %v", a.Name, a.ID, r)
		}
	}()

	world := a.Transform.Plane == CoordPlaneWorld
	if world {
		ctx.Save()
		saves++
		if cam != nil {
			cam.Draw(ctx)
		}
	}

	ctx.Save()
	saves++
	gc := a.Graphics
	gc.Update(delta, g.token)
	applyActorTransform(ctx, a)
	x, y := applyActorAnchor(ctx, a)
	ctx.SetZ(a.Transform.Z)
	ctx.SetOpacity(gc.Opacity() * a.Opacity)
	gc.Draw(ctx, x, y)
	ctx.Restore()
	saves--

	if debug {
		wp := a.WorldPos()
		g.debug.Draw(ctx, wp.X-g.debug.Radius, wp.Y-g.debug.Radius)
	}

	if world {
		ctx.Restore()
		saves--
	}
}

// applyActorTransform moves the context into the actor's world space.
func applyActorTransform(ctx Context, a *Actor) {
	pos := a.WorldPos()
	scale := a.WorldScale()
	ctx.Translate(pos.X, pos.Y)
	ctx.Rotate(a.WorldRotation())
	ctx.Scale(scale.X, scale.Y)
}

// applyActorAnchor shifts the context to the actor's top-left corner and
// returns the offset that aligns the current graphic with the anchor. The
// offset is zero when no graphic is shown.
func applyActorAnchor(ctx Context, a *Actor) (float64, float64) {
	ctx.Translate(-(a.Width * a.Anchor.X), -(a.Height * a.Anchor.Y))
	gfx := a.currentGraphic()
	if gfx == nil {
		return 0, 0
	}
	return (a.Width - gfx.Width()) * a.Anchor.X, (a.Height - gfx.Height()) * a.Anchor.Y
}

// sortByZ is a stable insertion sort by ascending Transform.Z.
func sortByZ(actors []*Actor) {
	for i := 1; i < len(actors); i++ {
		key := actors[i]
		j := i - 1
		for j >= 0 && actors[j].Transform.Z > key.Transform.Z {
			actors[j+1] = actors[j]
			j--
		}
		actors[j+1] = key
	}
}
