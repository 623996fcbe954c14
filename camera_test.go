package stage

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestNewCamera_CentersOnViewport(t *testing.T) {
	c := NewCamera(BoxFromSize(0, 0, 640, 480))
	assertVec(t, "Pos", c.Pos(), V(320, 240))
	assertNear(t, "Zoom", c.Zoom, 1)
	assertVec(t, "identity", c.WorldToScreen(V(17, 33)), V(17, 33))
}

func TestCamera_ScreenWorldRoundTrip(t *testing.T) {
	c := NewCamera(BoxFromSize(0, 0, 200, 100))
	c.X, c.Y = 500, -40
	c.Zoom = 2
	c.Rotation = math.Pi / 6

	for _, w := range []Vec2{{0, 0}, {500, -40}, {512.5, 3}, {-80, 900}} {
		s := c.WorldToScreen(w)
		assertVec(t, "round trip", c.ScreenToWorld(s), w)
	}
	assertVec(t, "center", c.WorldToScreen(V(500, -40)), V(100, 50))
}

func TestCamera_ZoomedVisibleBounds(t *testing.T) {
	c := NewCamera(BoxFromSize(0, 0, 200, 100))
	c.Zoom = 2
	b := c.VisibleBounds()
	assertNear(t, "width", b.Width(), 100)
	assertNear(t, "height", b.Height(), 50)
	assertVec(t, "center", b.Center(), V(100, 50))
}

func TestCamera_ZeroZoomTreatedAsOne(t *testing.T) {
	c := NewCamera(BoxFromSize(0, 0, 10, 10))
	c.Zoom = 0
	assertVec(t, "ScreenToWorld", c.ScreenToWorld(V(2, 3)), V(2, 3))
}

func TestCamera_Follow(t *testing.T) {
	c := NewCamera(BoxFromSize(0, 0, 100, 100))
	a := NewActor("a", 150, 50, 1, 1)
	c.Follow(a, V(10, 0), 0.5)

	c.Update(16)
	assertVec(t, "half way", c.Pos(), V(105, 50))

	c.Unfollow()
	c.Update(16)
	assertVec(t, "unfollowed", c.Pos(), V(105, 50))
}

func TestCamera_FollowDropsKilledTarget(t *testing.T) {
	s := NewScene()
	a := NewActor("a", 150, 50, 1, 1)
	s.Add(a)
	c := NewCamera(BoxFromSize(0, 0, 100, 100))
	c.Follow(a, Vec2{}, 1)
	a.Kill()

	c.Update(16)
	assertVec(t, "Pos", c.Pos(), V(50, 50))
	if c.followTarget != nil {
		t.Error("killed target still followed")
	}
}

func TestCamera_ScrollTo(t *testing.T) {
	c := NewCamera(BoxFromSize(0, 0, 100, 100))
	c.ScrollTo(150, 250, 1, ease.Linear)
	if !c.Scrolling() {
		t.Fatal("Scrolling = false after ScrollTo")
	}

	c.Update(500)
	if math.Abs(c.X-100) > 1e-3 || math.Abs(c.Y-150) > 1e-3 {
		t.Errorf("midway = (%v, %v), want (100, 150)", c.X, c.Y)
	}
	c.Update(500)
	if c.Scrolling() {
		t.Error("still scrolling after the duration")
	}
	if math.Abs(c.X-150) > 1e-3 || math.Abs(c.Y-250) > 1e-3 {
		t.Errorf("end = (%v, %v), want (150, 250)", c.X, c.Y)
	}
}

func TestCamera_Bounds(t *testing.T) {
	c := NewCamera(BoxFromSize(0, 0, 100, 100))
	c.SetBounds(BoxFromSize(0, 0, 1000, 500))

	c.X, c.Y = -300, 9000
	c.Update(16)
	assertVec(t, "clamped", c.Pos(), V(50, 450))

	c.SetBounds(BoxFromSize(0, 0, 40, 40))
	c.Update(16)
	assertVec(t, "small bounds centered", c.Pos(), V(20, 20))

	c.ClearBounds()
	c.X = -300
	c.Update(16)
	assertNear(t, "unclamped X", c.X, -300)
}

func TestCamera_DrawTransform(t *testing.T) {
	ctx := newRecordingContext()
	c := NewCamera(BoxFromSize(0, 0, 100, 60))
	c.X, c.Y = 10, 20
	c.Zoom = 2
	c.Rotation = 0.5
	c.Draw(ctx)

	want := []ctxCall{
		{op: "translate", args: []float64{50, 30}},
		{op: "scale", args: []float64{2, 2}},
		{op: "rotate", args: []float64{-0.5}},
		{op: "translate", args: []float64{-10, -20}},
	}
	if len(ctx.calls) != len(want) {
		t.Fatalf("calls = %v", ctx.calls)
	}
	for i, w := range want {
		got := ctx.calls[i]
		if got.op != w.op || len(got.args) != len(w.args) {
			t.Fatalf("call %d = %v, want %v", i, got, w)
		}
		for j := range w.args {
			assertNear(t, w.op, got.args[j], w.args[j])
		}
	}
}

func TestCamera_ZeroZoomDrawsAndClampsAtOne(t *testing.T) {
	ctx := newRecordingContext()
	c := NewCamera(BoxFromSize(0, 0, 100, 60))
	c.Zoom = 0
	c.Draw(ctx)
	scales := ctx.filter("scale")
	if len(scales) != 1 {
		t.Fatalf("scale calls = %v", scales)
	}
	assertNear(t, "scale x", scales[0].args[0], 1)
	assertNear(t, "scale y", scales[0].args[1], 1)

	c.SetBounds(BoxFromSize(0, 0, 400, 400))
	c.X, c.Y = 0, 0
	c.Update(16)
	assertVec(t, "clamped", c.Pos(), V(50, 30))
}
