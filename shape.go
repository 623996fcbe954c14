package stage

import (
	"math"

	"github.com/jakecoffman/cp"
)

// ShapeKind tags the variant held by a Shape.
type ShapeKind uint8

const (
	ShapeBox     ShapeKind = iota // width x height rectangle positioned by an anchor
	ShapeCircle                   // radius around the shape center
	ShapePolygon                  // convex polygon given by local points
	ShapeEdge                     // line segment between two local points
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "Box"
	case ShapeCircle:
		return "Circle"
	case ShapePolygon:
		return "Polygon"
	case ShapeEdge:
		return "Edge"
	default:
		return "Unknown"
	}
}

// Pose is the position and rotation a shape is evaluated at.
type Pose struct {
	Pos      Vec2
	Rotation float64
}

// Shape is a collision shape. A single flat struct is used for every variant;
// Kind selects which fields are meaningful and every geometric operation
// switches on it exhaustively. Queries are answered by an equivalent cp shape
// built at the requested pose.
type Shape struct {
	Kind ShapeKind

	// Offset moves the shape relative to its pose position, in local space.
	Offset Vec2

	// Box
	Width, Height float64
	Anchor        Vec2

	// Circle
	Radius float64

	// Polygon vertices (convex, either winding) or the two Edge endpoints,
	// in local space.
	Vertices []Vec2
}

// BoxShape returns a width x height box. Anchor (0.5, 0.5) centers the box on
// the pose position; (0, 0) places its top-left corner there.
func BoxShape(width, height float64, anchor Vec2) Shape {
	return Shape{Kind: ShapeBox, Width: width, Height: height, Anchor: anchor}
}

// CircleShape returns a circle of the given radius centered on the pose.
func CircleShape(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// PolygonShape returns a convex polygon. The slice is copied.
func PolygonShape(vertices []Vec2) Shape {
	vs := make([]Vec2, len(vertices))
	copy(vs, vertices)
	return Shape{Kind: ShapePolygon, Vertices: vs}
}

// EdgeShape returns a segment from begin to end.
func EdgeShape(begin, end Vec2) Shape {
	return Shape{Kind: ShapeEdge, Vertices: []Vec2{begin, end}}
}

// localPoints returns the untransformed vertices of a convex variant.
// Circles have no vertices.
func (s *Shape) localPoints() []Vec2 {
	switch s.Kind {
	case ShapeBox:
		left := -s.Anchor.X * s.Width
		top := -s.Anchor.Y * s.Height
		return []Vec2{
			{left, top},
			{left + s.Width, top},
			{left + s.Width, top + s.Height},
			{left, top + s.Height},
		}
	case ShapePolygon, ShapeEdge:
		return s.Vertices
	case ShapeCircle:
		return nil
	default:
		return nil
	}
}

// Points returns the world-space vertices at the given pose. Box and polygon
// vertices rotate about the pose position. Circles return nil.
func (s *Shape) Points(p Pose) []Vec2 {
	local := s.localPoints()
	if local == nil {
		return nil
	}
	out := make([]Vec2, len(local))
	for i, lp := range local {
		out[i] = lp.Add(s.Offset).Rotate(p.Rotation, VecZero).Add(p.Pos)
	}
	return out
}

// Center returns the world-space center of the shape at the given pose.
func (s *Shape) Center(p Pose) Vec2 {
	switch s.Kind {
	case ShapeCircle:
		return s.Offset.Rotate(p.Rotation, VecZero).Add(p.Pos)
	case ShapeBox, ShapePolygon, ShapeEdge:
		pts := s.Points(p)
		var c Vec2
		for _, pt := range pts {
			c = c.Add(pt)
		}
		if len(pts) > 0 {
			c = c.Scale(1 / float64(len(pts)))
		}
		return c
	default:
		return p.Pos
	}
}

// Bounds returns the world-space axis-aligned bounds at the given pose.
func (s *Shape) Bounds(p Pose) BoundingBox {
	switch s.Kind {
	case ShapeCircle:
		return boxFromBB(cp.NewBBForCircle(s.Center(p).vect(), s.Radius))
	case ShapeBox, ShapePolygon, ShapeEdge:
		return BoxFromPoints(s.Points(p))
	default:
		return BoundingBox{Left: p.Pos.X, Top: p.Pos.Y, Right: p.Pos.X, Bottom: p.Pos.Y}
	}
}

// LocalBounds returns the bounds at the origin with no rotation.
func (s *Shape) LocalBounds() BoundingBox {
	return s.Bounds(Pose{})
}

// onEdge is how far from a segment a point may be and still be on it.
const onEdge = 1e-9

// Contains reports whether the world point q lies inside the shape at pose p.
// Edges contain only points on the segment.
func (s *Shape) Contains(p Pose, q Vec2) bool {
	sh := s.physics(p)
	if sh == nil {
		return false
	}
	info := sh.PointQuery(q.vect())
	switch s.Kind {
	case ShapeEdge:
		return math.Abs(info.Distance) < onEdge
	case ShapeBox, ShapePolygon, ShapeCircle:
		return info.Distance <= 0
	default:
		return false
	}
}

// Area returns the surface area. Edges have zero area.
func (s *Shape) Area() float64 {
	switch s.Kind {
	case ShapeBox:
		return s.Width * s.Height
	case ShapeCircle:
		return cp.AreaForCircle(0, s.Radius)
	case ShapePolygon:
		if len(s.Vertices) < 3 {
			return 0
		}
		return math.Abs(cp.AreaForPoly(len(s.Vertices), vects(s.Vertices), 0))
	case ShapeEdge:
		return 0
	default:
		return 0
	}
}

// Inertia returns the moment of inertia about the local origin for the given
// mass.
func (s *Shape) Inertia(mass float64) float64 {
	switch s.Kind {
	case ShapeBox:
		return cp.MomentForBox(mass, s.Width, s.Height)
	case ShapeCircle:
		return cp.MomentForCircle(mass, 0, s.Radius, cp.Vector{})
	case ShapePolygon:
		if len(s.Vertices) < 3 {
			return 0
		}
		return math.Abs(cp.MomentForPoly(mass, len(s.Vertices), vects(s.Vertices), cp.Vector{}, 0))
	case ShapeEdge:
		if len(s.Vertices) < 2 {
			return 0
		}
		return cp.MomentForSegment(mass, s.Vertices[0].vect(), s.Vertices[1].vect(), 0)
	default:
		return 0
	}
}

// queryBody owns the throwaway cp shapes built for geometric queries. It is
// never added to a space.
var queryBody = cp.NewStaticBody()

// physics builds the cp equivalent of s at pose p, with its world geometry
// cached. Degenerate shapes (too few vertices, a zero length edge) yield nil.
func (s *Shape) physics(p Pose) *cp.Shape {
	var sh *cp.Shape
	switch s.Kind {
	case ShapeCircle:
		sh = cp.NewCircle(queryBody, s.Radius, s.Center(p).vect())
	case ShapeEdge:
		pts := s.Points(p)
		if len(pts) < 2 || pts[0] == pts[1] {
			return nil
		}
		sh = cp.NewSegment(queryBody, pts[0].vect(), pts[1].vect(), 0)
	case ShapeBox, ShapePolygon:
		pts := s.Points(p)
		if len(pts) < 3 {
			return nil
		}
		area := windingArea(pts)
		if area == 0 {
			return nil
		}
		vs := vects(pts)
		if area < 0 {
			for i, j := 0, len(vs)-1; i < j; i, j = i+1, j-1 {
				vs[i], vs[j] = vs[j], vs[i]
			}
		}
		sh = cp.NewPolyShapeRaw(queryBody, len(vs), vs, 0)
	default:
		return nil
	}
	sh.Update(cp.NewTransformIdentity())
	return sh
}

// windingArea is twice the signed area of a point loop; positive when the
// loop winds the way cp expects.
func windingArea(pts []Vec2) float64 {
	var sum float64
	for i := range pts {
		sum += pts[i].Cross(pts[(i+1)%len(pts)])
	}
	return sum
}

func vects(pts []Vec2) []cp.Vector {
	out := make([]cp.Vector, len(pts))
	for i, p := range pts {
		out[i] = p.vect()
	}
	return out
}
