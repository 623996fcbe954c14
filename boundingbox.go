package stage

import (
	"math"

	"github.com/jakecoffman/cp"
)

// BoundingBox is an axis-aligned box described by its edges. Left <= Right and
// Top <= Bottom for a well-formed box.
//
// Overlap, containment and merging are answered by cp.BB. Screen space has Y
// pointing down, so Top maps to the BB's bottom edge and Bottom to its top.
type BoundingBox struct {
	Left, Top, Right, Bottom float64
}

func (b BoundingBox) bb() cp.BB {
	return cp.BB{L: b.Left, B: b.Top, R: b.Right, T: b.Bottom}
}

func boxFromBB(bb cp.BB) BoundingBox {
	return BoundingBox{Left: bb.L, Top: bb.B, Right: bb.R, Bottom: bb.T}
}

// BoxFromSize returns a box with its top-left corner at (x, y).
func BoxFromSize(x, y, width, height float64) BoundingBox {
	return BoundingBox{Left: x, Top: y, Right: x + width, Bottom: y + height}
}

// BoxFromPoints returns the envelope of the given points. An empty slice yields
// the zero box.
func BoxFromPoints(points []Vec2) BoundingBox {
	if len(points) == 0 {
		return BoundingBox{}
	}
	p0 := points[0]
	bb := cp.BB{L: p0.X, B: p0.Y, R: p0.X, T: p0.Y}
	for _, p := range points[1:] {
		bb = bb.Expand(p.vect())
	}
	return boxFromBB(bb)
}

func (b BoundingBox) Width() float64  { return b.Right - b.Left }
func (b BoundingBox) Height() float64 { return b.Bottom - b.Top }

// Pos returns the top-left corner.
func (b BoundingBox) Pos() Vec2 {
	return Vec2{b.Left, b.Top}
}

func (b BoundingBox) Center() Vec2 {
	return Vec2(b.bb().Center())
}

// Translate returns the box moved by v.
func (b BoundingBox) Translate(v Vec2) BoundingBox {
	return BoundingBox{
		Left: b.Left + v.X, Top: b.Top + v.Y,
		Right: b.Right + v.X, Bottom: b.Bottom + v.Y,
	}
}

// Points returns the four corners clockwise from the top-left.
func (b BoundingBox) Points() []Vec2 {
	return []Vec2{
		{b.Left, b.Top},
		{b.Right, b.Top},
		{b.Right, b.Bottom},
		{b.Left, b.Bottom},
	}
}

// Rotate rotates the corners about origin and returns the axis-aligned
// envelope of the result.
func (b BoundingBox) Rotate(angle float64, origin Vec2) BoundingBox {
	if angle == 0 {
		return b
	}
	pts := b.Points()
	for i := range pts {
		pts[i] = pts[i].Rotate(angle, origin)
	}
	return BoxFromPoints(pts)
}

// Contains reports whether p lies inside the box. Edges are inside.
func (b BoundingBox) Contains(p Vec2) bool {
	return b.bb().ContainsVect(p.vect())
}

// ContainsBox reports whether other lies entirely within b.
func (b BoundingBox) ContainsBox(other BoundingBox) bool {
	return b.bb().Contains(other.bb())
}

// Overlaps reports whether b and other share any area or edge.
func (b BoundingBox) Overlaps(other BoundingBox) bool {
	return b.bb().Intersects(other.bb())
}

// Combine returns the smallest box containing both b and other.
func (b BoundingBox) Combine(other BoundingBox) BoundingBox {
	return boxFromBB(b.bb().Merge(other.bb()))
}

// Intersect returns the minimum translation vector that moves b out of
// other along a single axis. ok is false when the boxes do not overlap by a
// positive amount; touching edges are not an intersection.
func (b BoundingBox) Intersect(other BoundingBox) (mtv Vec2, ok bool) {
	total := b.Combine(other)
	if total.Width() >= b.Width()+other.Width() || total.Height() >= b.Height()+other.Height() {
		return Vec2{}, false
	}

	var overlapX float64
	if b.Right >= other.Left && b.Right <= other.Right {
		overlapX = other.Left - b.Right
	} else {
		overlapX = other.Right - b.Left
	}

	var overlapY float64
	if b.Top <= other.Bottom && b.Top >= other.Top {
		overlapY = other.Bottom - b.Top
	} else {
		overlapY = other.Top - b.Bottom
	}

	if math.Abs(overlapX) < math.Abs(overlapY) {
		return Vec2{overlapX, 0}, true
	}
	return Vec2{0, overlapY}, true
}

// IntersectWithSide returns the side of b that other was hit on.
func (b BoundingBox) IntersectWithSide(other BoundingBox) Side {
	return SideFromIntersection(b.Intersect(other))
}

// SideFromIntersection classifies an intersection vector. When |x| > |y| the
// side is Right for negative x and Left otherwise; else Bottom for negative
// y and Top otherwise. Equal magnitudes take the vertical branch. A missing
// intersection (ok == false) is SideNone.
func SideFromIntersection(v Vec2, ok bool) Side {
	if !ok {
		return SideNone
	}
	if math.Abs(v.X) > math.Abs(v.Y) {
		if v.X < 0 {
			return SideRight
		}
		return SideLeft
	}
	if v.Y < 0 {
		return SideBottom
	}
	return SideTop
}
