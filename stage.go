package stage

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

// Predefined colors.
var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorRed         = Color{1, 0, 0, 1}
	ColorMagenta     = Color{1, 0, 1, 1}
	ColorTransparent = Color{}
)

// RGBA converts c to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// whitePixel is a 1x1 white image used for solid color graphics.
// No sync.Once: stage is single-threaded.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// CoordPlane selects whether an actor is drawn relative to the camera or
// fixed to the screen.
type CoordPlane uint8

const (
	CoordPlaneWorld  CoordPlane = iota // camera offset applies
	CoordPlaneScreen                   // fixed to the screen (HUD)
)

// Side identifies which side of a bounding box a collision occurred on.
type Side uint8

const (
	SideNone Side = iota
	SideTop
	SideBottom
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "Top"
	case SideBottom:
		return "Bottom"
	case SideLeft:
		return "Left"
	case SideRight:
		return "Right"
	default:
		return "None"
	}
}

// Opposite returns the side opposite s. SideNone maps to SideNone.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return SideNone
	}
}

// CollisionType governs whether collision resolution occurs for a collider
// and which participant is moved.
type CollisionType uint8

const (
	// CollisionPreventCollision never participates in collision detection.
	CollisionPreventCollision CollisionType = iota
	// CollisionPassive raises collision events but is never moved.
	CollisionPassive
	// CollisionActive raises events and is pushed out of what it hits.
	CollisionActive
	// CollisionFixed raises events and pushes Active colliders, but never moves.
	CollisionFixed
)

func (t CollisionType) String() string {
	switch t {
	case CollisionPreventCollision:
		return "PreventCollision"
	case CollisionPassive:
		return "Passive"
	case CollisionActive:
		return "Active"
	case CollisionFixed:
		return "Fixed"
	default:
		return "Unknown"
	}
}
