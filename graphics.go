package stage

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Graphic is anything that can be drawn by the render pass at an offset in
// the current context space.
type Graphic interface {
	Draw(ctx Context, x, y float64)
	Width() float64
	Height() float64
	Opacity() float64
}

// Ticker is implemented by graphics that animate. Tick is called at most
// once per frame by the graphics component that shows the graphic.
type Ticker interface {
	Tick(delta float64)
}

// --- Sprite ---

// Sprite draws a region of an image, optionally stretched to DestWidth ×
// DestHeight.
type Sprite struct {
	Image *ebiten.Image
	// Source region inside Image. A zero size means the whole image.
	SX, SY, SW, SH float64
	// Destination size. Zero means the source size.
	DestWidth, DestHeight float64
	Alpha                 float64
}

// NewSprite returns a sprite covering the whole image.
func NewSprite(img *ebiten.Image) *Sprite {
	s := &Sprite{Image: img, Alpha: 1}
	if img != nil {
		b := img.Bounds()
		s.SX, s.SY = float64(b.Min.X), float64(b.Min.Y)
		s.SW, s.SH = float64(b.Dx()), float64(b.Dy())
	}
	return s
}

// NewSpriteRegion returns a sprite drawing the given region of img.
func NewSpriteRegion(img *ebiten.Image, sx, sy, sw, sh float64) *Sprite {
	return &Sprite{Image: img, SX: sx, SY: sy, SW: sw, SH: sh, Alpha: 1}
}

func (s *Sprite) Width() float64 {
	if s.DestWidth > 0 {
		return s.DestWidth
	}
	return s.SW
}

func (s *Sprite) Height() float64 {
	if s.DestHeight > 0 {
		return s.DestHeight
	}
	return s.SH
}

func (s *Sprite) Opacity() float64 { return s.Alpha }

func (s *Sprite) Draw(ctx Context, x, y float64) {
	if s.Image == nil {
		return
	}
	ctx.DrawImageRegion(s.Image, s.SX, s.SY, s.SW, s.SH, x, y, s.Width(), s.Height())
}

// --- Solid shapes ---

// Rect is a solid rectangle graphic.
type Rect struct {
	W, H  float64
	Color Color
	Alpha float64
}

// NewRect returns an opaque rectangle of the given size and color.
func NewRect(w, h float64, c Color) *Rect {
	return &Rect{W: w, H: h, Color: c, Alpha: 1}
}

func (r *Rect) Width() float64   { return r.W }
func (r *Rect) Height() float64  { return r.H }
func (r *Rect) Opacity() float64 { return r.Alpha }

func (r *Rect) Draw(ctx Context, x, y float64) {
	ctx.DrawRect(x, y, r.W, r.H, r.Color)
}

// Circle is a solid circle graphic. Its box is 2r × 2r and (x, y) is the
// top-left corner of that box.
type Circle struct {
	Radius float64
	Color  Color
	Alpha  float64
}

// NewCircle returns an opaque circle.
func NewCircle(radius float64, c Color) *Circle {
	return &Circle{Radius: radius, Color: c, Alpha: 1}
}

func (c *Circle) Width() float64   { return c.Radius * 2 }
func (c *Circle) Height() float64  { return c.Radius * 2 }
func (c *Circle) Opacity() float64 { return c.Alpha }

func (c *Circle) Draw(ctx Context, x, y float64) {
	ctx.DrawCircle(x+c.Radius, y+c.Radius, c.Radius, c.Color)
}

// --- Animation ---

// Animation cycles through frames, showing each for FrameDuration
// milliseconds.
type Animation struct {
	Frames        []Graphic
	FrameDuration float64
	Loop          bool
	Alpha         float64

	index   int
	elapsed float64
}

// NewAnimation returns a looping animation.
func NewAnimation(frameDuration float64, frames ...Graphic) *Animation {
	return &Animation{Frames: frames, FrameDuration: frameDuration, Loop: true, Alpha: 1}
}

// Tick advances the animation clock.
func (an *Animation) Tick(delta float64) {
	if len(an.Frames) == 0 || an.FrameDuration <= 0 {
		return
	}
	an.elapsed += delta
	for an.elapsed >= an.FrameDuration {
		an.elapsed -= an.FrameDuration
		if an.index < len(an.Frames)-1 {
			an.index++
		} else if an.Loop {
			an.index = 0
		} else {
			an.elapsed = 0
			return
		}
	}
}

// Frame returns the index of the current frame.
func (an *Animation) Frame() int { return an.index }

// Reset rewinds to the first frame.
func (an *Animation) Reset() {
	an.index, an.elapsed = 0, 0
}

func (an *Animation) current() Graphic {
	if len(an.Frames) == 0 {
		return nil
	}
	return an.Frames[an.index]
}

func (an *Animation) Width() float64 {
	if g := an.current(); g != nil {
		return g.Width()
	}
	return 0
}

func (an *Animation) Height() float64 {
	if g := an.current(); g != nil {
		return g.Height()
	}
	return 0
}

func (an *Animation) Opacity() float64 { return an.Alpha }

func (an *Animation) Draw(ctx Context, x, y float64) {
	g := an.current()
	if g == nil {
		return
	}
	ctx.Save()
	ctx.SetOpacity(ctx.Opacity() * g.Opacity())
	g.Draw(ctx, x, y)
	ctx.Restore()
}

// --- GraphicsComponent ---

// GraphicsComponent holds an actor's keyed graphics and the one currently
// shown.
type GraphicsComponent struct {
	// Alpha multiplies the current graphic's own opacity.
	Alpha   float64
	Visible bool

	actor    *Actor
	graphics map[string]Graphic
	current  Graphic
	key      string
	token    uint64
}

// NewGraphicsComponent creates an empty, visible component for the actor and
// attaches it.
func NewGraphicsComponent(a *Actor) *GraphicsComponent {
	gc := &GraphicsComponent{Alpha: 1, Visible: true, actor: a, graphics: make(map[string]Graphic)}
	if a != nil {
		a.Graphics = gc
	}
	return gc
}

// Add registers g under key. The first graphic added becomes current.
func (gc *GraphicsComponent) Add(key string, g Graphic) {
	gc.graphics[key] = g
	if gc.current == nil {
		gc.current = g
		gc.key = key
	}
}

// Use registers g under key and shows it.
func (gc *GraphicsComponent) Use(key string, g Graphic) {
	gc.graphics[key] = g
	gc.current = g
	gc.key = key
}

// Show makes the graphic registered under key current. An unknown key logs
// a warning and falls back to a solid rectangle of the actor's size in the
// actor's color (magenta when the actor has none).
func (gc *GraphicsComponent) Show(key string) {
	if g, ok := gc.graphics[key]; ok {
		gc.current = g
		gc.key = key
		return
	}

	var name string
	var w, h float64
	c := ColorMagenta
	if gc.actor != nil {
		name = gc.actor.Name
		w, h = gc.actor.Width, gc.actor.Height
		if gc.actor.Color != nil {
			c = *gc.actor.Color
		}
		gc.actor.logger().Warnf("actor %q has no graphic %q, drawing a rectangle", name, key)
	} else {
		defaultLogger.Warnf("no graphic %q, drawing a rectangle", key)
	}
	gc.current = NewRect(w, h, c)
	gc.key = key
}

// Get returns the graphic registered under key.
func (gc *GraphicsComponent) Get(key string) (Graphic, bool) {
	g, ok := gc.graphics[key]
	return g, ok
}

// Current returns the graphic being shown, or nil.
func (gc *GraphicsComponent) Current() Graphic {
	return gc.current
}

// CurrentKey returns the key passed to the last Show or Use.
func (gc *GraphicsComponent) CurrentKey() string {
	return gc.key
}

// Opacity returns the component alpha times the current graphic's opacity.
func (gc *GraphicsComponent) Opacity() float64 {
	if gc.current == nil {
		return gc.Alpha
	}
	return gc.Alpha * gc.current.Opacity()
}

// Width returns the width of the current graphic, or 0.
func (gc *GraphicsComponent) Width() float64 {
	if gc.current == nil {
		return 0
	}
	return gc.current.Width()
}

// Height returns the height of the current graphic, or 0.
func (gc *GraphicsComponent) Height() float64 {
	if gc.current == nil {
		return 0
	}
	return gc.current.Height()
}

// Update ticks the current graphic. Repeated calls with the same frame token
// are ignored.
func (gc *GraphicsComponent) Update(delta float64, token uint64) {
	if gc.token == token {
		return
	}
	gc.token = token
	if t, ok := gc.current.(Ticker); ok {
		t.Tick(delta)
	}
}

// Draw draws the current graphic at (x, y).
func (gc *GraphicsComponent) Draw(ctx Context, x, y float64) {
	if gc.current == nil || !gc.Visible {
		return
	}
	gc.current.Draw(ctx, x, y)
}

// currentGraphic returns the actor's shown graphic, or nil.
func (a *Actor) currentGraphic() Graphic {
	if a.Graphics == nil || !a.Graphics.Visible {
		return nil
	}
	return a.Graphics.current
}
