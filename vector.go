package stage

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vec2 is a 2D vector used for positions, velocities, sizes, and directions
// throughout the API. The coordinate system has its origin at the top-left,
// with Y increasing downward.
//
// Vec2 shares its layout with cp.Vector, so converting between the two is
// free and the arithmetic is the physics library's.
type Vec2 cp.Vector

// Common vectors.
var (
	VecZero = Vec2{0, 0}
	VecOne  = Vec2{1, 1}
	VecHalf = Vec2{0.5, 0.5}
)

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) vect() cp.Vector { return cp.Vector(v) }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2(v.vect().Add(o.vect()))
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2(v.vect().Sub(o.vect()))
}

// Scale returns v multiplied by f.
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2(v.vect().Mult(f))
}

// Negate returns -v.
func (v Vec2) Negate() Vec2 {
	return Vec2(v.vect().Neg())
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.vect().Dot(o.vect())
}

// Cross returns the z component of the 3D cross product of v and o.
func (v Vec2) Cross(o Vec2) float64 {
	return v.vect().Cross(o.vect())
}

func (v Vec2) Magnitude() float64 {
	return v.vect().Length()
}

func (v Vec2) MagnitudeSquared() float64 {
	return v.vect().LengthSq()
}

// Normalize returns the unit vector in the direction of v, or the zero vector
// if v has zero length.
func (v Vec2) Normalize() Vec2 {
	if v.X == 0 && v.Y == 0 {
		return Vec2{}
	}
	return Vec2(v.vect().Normalize())
}

// Normal returns the unit normal (perpendicular rotated counter-clockwise in
// screen space) of v.
func (v Vec2) Normal() Vec2 {
	return Vec2(v.vect().ReversePerp()).Normalize()
}

func (v Vec2) Distance(o Vec2) float64 {
	return v.vect().Distance(o.vect())
}

// Rotate returns v rotated by angle radians about origin.
func (v Vec2) Rotate(angle float64, origin Vec2) Vec2 {
	if angle == 0 {
		return v
	}
	return Vec2(v.Sub(origin).vect().Rotate(cp.ForAngle(angle)).Add(origin.vect()))
}

// Equals reports whether v and o are equal within tolerance on each axis.
func (v Vec2) Equals(o Vec2, tolerance float64) bool {
	return math.Abs(v.X-o.X) <= tolerance && math.Abs(v.Y-o.Y) <= tolerance
}

// Line is a segment between two points.
type Line struct {
	Begin, End Vec2
}

// Length returns the length of the segment.
func (l Line) Length() float64 {
	return l.Begin.Distance(l.End)
}

// Direction returns the unnormalized vector from Begin to End.
func (l Line) Direction() Vec2 {
	return l.End.Sub(l.Begin)
}

// ClosestPoint returns the point on the segment nearest to p.
func (l Line) ClosestPoint(p Vec2) Vec2 {
	d := l.Direction()
	lenSq := d.MagnitudeSquared()
	if lenSq == 0 {
		return l.Begin
	}
	t := cp.Clamp01(p.Sub(l.Begin).Dot(d) / lenSq)
	return l.Begin.Add(d.Scale(t))
}
