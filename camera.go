package stage

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera controls the view into the world: the world point it centers on,
// zoom, rotation, and the screen viewport it renders into.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the camera rotation in radians (clockwise).
	Rotation float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport BoundingBox

	followTarget *Actor
	followOffset Vec2
	followLerp   float64

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	Bounds        BoundingBox

	scrollTween *scrollAnim
}

// NewCamera creates a camera centered on the viewport.
func NewCamera(viewport BoundingBox) *Camera {
	c := &Camera{Zoom: 1, Viewport: viewport}
	center := viewport.Center()
	c.X, c.Y = center.X, center.Y
	return c
}

// Pos returns the world point the camera centers on.
func (c *Camera) Pos() Vec2 {
	return Vec2{c.X, c.Y}
}

// Follow makes the camera track an actor with the given offset and lerp
// factor. A lerp of 1.0 snaps immediately; lower values give smoother
// following.
func (c *Camera) Follow(a *Actor, offset Vec2, lerp float64) {
	c.followTarget = a
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking the current target.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// ScrollTo animates the camera to the given world position over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is running.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds BoundingBox) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// Update advances follow, scroll, and bounds clamping by delta milliseconds.
func (c *Camera) Update(delta float64) {
	if t := c.followTarget; t != nil {
		if t.IsKilled() {
			c.followTarget = nil
		} else {
			target := t.WorldPos().Add(c.followOffset)
			c.X += (target.X - c.X) * c.followLerp
			c.Y += (target.Y - c.Y) * c.followLerp
		}
	}

	if c.scrollTween != nil {
		dt := float32(delta / 1000)
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// clampToBounds restricts camera position so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	z := c.zoom()
	halfW := c.Viewport.Width() / (2 * z)
	halfH := c.Viewport.Height() / (2 * z)

	minX := c.Bounds.Left + halfW
	maxX := c.Bounds.Right - halfW
	minY := c.Bounds.Top + halfH
	maxY := c.Bounds.Bottom - halfH

	// If bounds are smaller than visible area, center the camera.
	if minX > maxX {
		c.X = c.Bounds.Center().X
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Center().Y
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

// Draw applies the camera offset to ctx: world point (X, Y) maps to the
// viewport center, scaled by Zoom and rotated by -Rotation. A zero Zoom
// draws at scale 1, as the coordinate conversions assume.
func (c *Camera) Draw(ctx Context) {
	center := c.Viewport.Center()
	ctx.Translate(center.X, center.Y)
	z := c.zoom()
	ctx.Scale(z, z)
	if c.Rotation != 0 {
		ctx.Rotate(-c.Rotation)
	}
	ctx.Translate(-c.X, -c.Y)
}

// WorldToScreen converts a world point to screen coordinates.
func (c *Camera) WorldToScreen(w Vec2) Vec2 {
	p := w.Sub(c.Pos()).Rotate(-c.Rotation, Vec2{}).Scale(c.zoom())
	return p.Add(c.Viewport.Center())
}

// ScreenToWorld converts a screen point to world coordinates.
func (c *Camera) ScreenToWorld(s Vec2) Vec2 {
	p := s.Sub(c.Viewport.Center()).Scale(1 / c.zoom()).Rotate(c.Rotation, Vec2{})
	return p.Add(c.Pos())
}

func (c *Camera) zoom() float64 {
	if c.Zoom == 0 {
		return 1
	}
	return c.Zoom
}

// VisibleBounds returns the axis-aligned bounds of the camera's visible
// area in world space.
func (c *Camera) VisibleBounds() BoundingBox {
	v := c.Viewport
	return BoxFromPoints([]Vec2{
		c.ScreenToWorld(Vec2{v.Left, v.Top}),
		c.ScreenToWorld(Vec2{v.Right, v.Top}),
		c.ScreenToWorld(Vec2{v.Right, v.Bottom}),
		c.ScreenToWorld(Vec2{v.Left, v.Bottom}),
	})
}
