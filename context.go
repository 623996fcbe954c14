package stage

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Context is the drawing surface the render pass writes to. Transform calls
// compose onto the current state; Save and Restore push and pop the state
// (transform, z and opacity). Draw calls may be batched until Flush.
type Context interface {
	Save()
	Restore()
	Translate(x, y float64)
	Rotate(angle float64)
	Scale(x, y float64)

	// DrawImage draws img at (x, y) at its natural size.
	DrawImage(img *ebiten.Image, x, y float64)
	// DrawImageRegion draws the source rect (sx, sy, sw, sh) of img into the
	// destination rect (dx, dy, dw, dh).
	DrawImageRegion(img *ebiten.Image, sx, sy, sw, sh, dx, dy, dw, dh float64)
	DrawRect(x, y, w, h float64, c Color)
	DrawCircle(cx, cy, radius float64, c Color)
	DrawLine(from, to Vec2, width float64, c Color)

	// Clear fills the target with the background color and drops pending
	// draws.
	Clear()
	// Flush submits pending draws.
	Flush()

	Z() float64
	SetZ(z float64)
	Opacity() float64
	SetOpacity(o float64)
}

type contextState struct {
	geo     ebiten.GeoM
	z       float64
	opacity float64
}

type commandKind uint8

const (
	commandImage commandKind = iota
	commandCircle
	commandLine
)

// drawCommand is one batched draw. Geometry is captured at call time; the
// image is submitted in Flush.
type drawCommand struct {
	kind  commandKind
	img   *ebiten.Image
	geo   ebiten.GeoM
	color Color
	z     float64

	// circle and line
	p0, p1 Vec2
	size   float64
}

// EbitenContext implements Context over an *ebiten.Image render target.
// Draw calls are queued in call order and submitted by Flush.
type EbitenContext struct {
	Background Color

	target *ebiten.Image
	state  contextState
	stack  []contextState

	commands []drawCommand
	op       ebiten.DrawImageOptions

	// Stats for the last flush.
	DrawCalls int
}

// NewEbitenContext creates a context with an identity transform and full
// opacity. Call SetTarget each frame before drawing.
func NewEbitenContext(background Color) *EbitenContext {
	return &EbitenContext{
		Background: background,
		state:      contextState{opacity: 1},
	}
}

// SetTarget sets the image subsequent draws are submitted to.
func (c *EbitenContext) SetTarget(target *ebiten.Image) {
	c.target = target
}

func (c *EbitenContext) Save() {
	c.stack = append(c.stack, c.state)
}

// Restore pops the last saved state. Restoring with an empty stack resets
// to the identity state.
func (c *EbitenContext) Restore() {
	if len(c.stack) == 0 {
		c.state = contextState{opacity: 1}
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Depth returns the number of saved states.
func (c *EbitenContext) Depth() int {
	return len(c.stack)
}

// Translate, Rotate, and Scale prepend to the current transform so later
// calls apply in the local space of earlier ones.

func (c *EbitenContext) Translate(x, y float64) {
	var m ebiten.GeoM
	m.Translate(x, y)
	m.Concat(c.state.geo)
	c.state.geo = m
}

func (c *EbitenContext) Rotate(angle float64) {
	var m ebiten.GeoM
	m.Rotate(angle)
	m.Concat(c.state.geo)
	c.state.geo = m
}

func (c *EbitenContext) Scale(x, y float64) {
	var m ebiten.GeoM
	m.Scale(x, y)
	m.Concat(c.state.geo)
	c.state.geo = m
}

func (c *EbitenContext) Z() float64           { return c.state.z }
func (c *EbitenContext) SetZ(z float64)       { c.state.z = z }
func (c *EbitenContext) Opacity() float64     { return c.state.opacity }
func (c *EbitenContext) SetOpacity(o float64) { c.state.opacity = clamp01(o) }

func (c *EbitenContext) DrawImage(img *ebiten.Image, x, y float64) {
	if img == nil {
		return
	}
	b := img.Bounds()
	c.DrawImageRegion(img, float64(b.Min.X), float64(b.Min.Y), float64(b.Dx()), float64(b.Dy()),
		x, y, float64(b.Dx()), float64(b.Dy()))
}

func (c *EbitenContext) DrawImageRegion(img *ebiten.Image, sx, sy, sw, sh, dx, dy, dw, dh float64) {
	if img == nil || sw <= 0 || sh <= 0 {
		return
	}
	sub := img
	rect := image.Rect(int(sx), int(sy), int(sx+sw), int(sy+sh))
	if rect != img.Bounds() {
		sub = img.SubImage(rect).(*ebiten.Image)
	}
	var m ebiten.GeoM
	m.Scale(dw/sw, dh/sh)
	m.Translate(dx, dy)
	m.Concat(c.state.geo)
	c.push(drawCommand{kind: commandImage, img: sub, geo: m, color: ColorWhite})
}

// DrawRect fills a rectangle by stretching a white pixel.
func (c *EbitenContext) DrawRect(x, y, w, h float64, col Color) {
	if w <= 0 || h <= 0 {
		return
	}
	var m ebiten.GeoM
	m.Scale(w, h)
	m.Translate(x, y)
	m.Concat(c.state.geo)
	c.push(drawCommand{kind: commandImage, img: ensureWhitePixel(), geo: m, color: col})
}

func (c *EbitenContext) DrawCircle(cx, cy, radius float64, col Color) {
	c.push(drawCommand{kind: commandCircle, geo: c.state.geo, color: col, p0: Vec2{cx, cy}, size: radius})
}

func (c *EbitenContext) DrawLine(from, to Vec2, width float64, col Color) {
	c.push(drawCommand{kind: commandLine, geo: c.state.geo, color: col, p0: from, p1: to, size: width})
}

func (c *EbitenContext) push(cmd drawCommand) {
	cmd.z = c.state.z
	cmd.color.A *= c.state.opacity
	c.commands = append(c.commands, cmd)
}

// Pending returns the number of queued draws.
func (c *EbitenContext) Pending() int {
	return len(c.commands)
}

func (c *EbitenContext) Clear() {
	clear(c.commands)
	c.commands = c.commands[:0]
	c.stack = c.stack[:0]
	c.state = contextState{opacity: 1}
	if c.target != nil {
		c.target.Fill(c.Background.RGBA())
	}
}

// Flush submits queued draws in call order to the target.
func (c *EbitenContext) Flush() {
	c.DrawCalls = 0
	if c.target == nil {
		clear(c.commands)
		c.commands = c.commands[:0]
		return
	}
	op := &c.op
	for i := range c.commands {
		cmd := &c.commands[i]
		switch cmd.kind {
		case commandImage:
			op.GeoM = cmd.geo
			op.ColorScale.Reset()
			a := float32(cmd.color.A)
			op.ColorScale.Scale(float32(cmd.color.R)*a, float32(cmd.color.G)*a, float32(cmd.color.B)*a, a)
			c.target.DrawImage(cmd.img, op)
		case commandCircle:
			x, y := cmd.geo.Apply(cmd.p0.X, cmd.p0.Y)
			r := cmd.size * geoScale(cmd.geo)
			vector.DrawFilledCircle(c.target, float32(x), float32(y), float32(r), cmd.color.RGBA(), true)
		case commandLine:
			x0, y0 := cmd.geo.Apply(cmd.p0.X, cmd.p0.Y)
			x1, y1 := cmd.geo.Apply(cmd.p1.X, cmd.p1.Y)
			w := cmd.size * geoScale(cmd.geo)
			vector.StrokeLine(c.target, float32(x0), float32(y0), float32(x1), float32(y1), float32(w), cmd.color.RGBA(), true)
		}
		c.DrawCalls++
	}
	clear(c.commands)
	c.commands = c.commands[:0]
}

// geoScale returns the uniform scale factor of a transform.
func geoScale(g ebiten.GeoM) float64 {
	a, b := g.Element(0, 0), g.Element(0, 1)
	cc, d := g.Element(1, 0), g.Element(1, 1)
	return math.Sqrt(math.Abs(a*d - b*cc))
}
