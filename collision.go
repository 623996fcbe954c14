package stage

import (
	"math"

	"github.com/jakecoffman/cp"
)

// contactSlop is the penetration below which shapes count as touching rather
// than overlapping.
const contactSlop = 1e-9

// Intersect tests s at pose p against other at pose op. When they overlap it
// returns the minimum translation vector that moves s out of other, with
// ok == true. Touching or separated shapes are reported as (Vec2{}, false).
func (s *Shape) Intersect(p Pose, other *Shape, op Pose) (mtv Vec2, ok bool) {
	a, b := s.physics(p), other.physics(op)
	if a == nil || b == nil {
		return Vec2{}, false
	}
	set := cp.ShapesCollide(a, b)
	if set.Count == 0 {
		return Vec2{}, false
	}
	// The normal points from s into other; depth is negative while
	// penetrating.
	depth := math.Inf(1)
	for i := 0; i < set.Count; i++ {
		pt := set.Points[i]
		depth = math.Min(depth, pt.PointB.Sub(pt.PointA).Dot(set.Normal))
	}
	if depth > -contactSlop {
		return Vec2{}, false
	}
	return Vec2(set.Normal.Mult(depth)), true
}

// ClosestLineBetween returns the shortest segment from the surface of s at
// pose p to the surface of other at pose op. Begin lies on s.
func (s *Shape) ClosestLineBetween(p Pose, other *Shape, op Pose) Line {
	switch s.Kind {
	case ShapeCircle:
		switch other.Kind {
		case ShapeCircle:
			ca, cb := s.Center(p), other.Center(op)
			dir := cb.Sub(ca).Normalize()
			return Line{ca.Add(dir.Scale(s.Radius)), cb.Sub(dir.Scale(other.Radius))}
		case ShapeBox, ShapePolygon, ShapeEdge:
			return circleToSurface(s.Center(p), s.Radius, other.physics(op))
		}
	case ShapeBox, ShapePolygon, ShapeEdge:
		switch other.Kind {
		case ShapeCircle:
			l := circleToSurface(other.Center(op), other.Radius, s.physics(p))
			return Line{l.End, l.Begin}
		case ShapeBox, ShapePolygon, ShapeEdge:
			return vertexToSurface(s.Points(p), s.physics(p), other.Points(op), other.physics(op))
		}
	}
	return Line{p.Pos, op.Pos}
}

// circleToSurface runs from the circle's surface to the nearest point of sh.
func circleToSurface(c Vec2, r float64, sh *cp.Shape) Line {
	if sh == nil {
		return Line{c, c}
	}
	q := Vec2(sh.PointQuery(c.vect()).Point)
	dir := q.Sub(c).Normalize()
	return Line{c.Add(dir.Scale(r)), q}
}

// vertexToSurface is the shortest of the lines from each vertex of one shape
// to the surface of the other. For convex shapes the closest pair always
// includes a vertex of one of them.
func vertexToSurface(aPts []Vec2, a *cp.Shape, bPts []Vec2, b *cp.Shape) Line {
	if a == nil || b == nil {
		if len(aPts) > 0 && len(bPts) > 0 {
			return Line{aPts[0], bPts[0]}
		}
		return Line{}
	}
	best := math.Inf(1)
	var line Line
	for _, pa := range aPts {
		info := b.PointQuery(pa.vect())
		if info.Distance < best {
			best = info.Distance
			line = Line{pa, Vec2(info.Point)}
		}
	}
	for _, pb := range bPts {
		info := a.PointQuery(pb.vect())
		if info.Distance < best {
			best = info.Distance
			line = Line{Vec2(info.Point), pb}
		}
	}
	return line
}
