package stage

import (
	"reflect"
	"testing"
)

// pointerRig builds a 640x480 engine whose camera maps screen to world
// one to one, with a 20x20 box centered at (100, 100).
func pointerRig(t *testing.T) (*Engine, *EbitenPointerTracker, *Actor) {
	t.Helper()
	e := NewEngine(DefaultRunConfig())
	tracker, ok := e.Pointers.(*EbitenPointerTracker)
	if !ok {
		t.Fatalf("Pointers = %T, want *EbitenPointerTracker", e.Pointers)
	}
	s := NewScene()
	e.SetScene(s)
	box := NewActor("box", 100, 100, 20, 20)
	s.Add(box)
	return e, tracker, box
}

// drain runs engine updates until every injected event is consumed.
func drain(e *Engine, tr *EbitenPointerTracker) {
	for tr.PendingInjected() > 0 {
		_ = e.Update()
	}
}

var allPointerEvents = []EventName{
	EventPointerDown, EventPointerUp, EventPointerMove,
	EventPointerEnter, EventPointerLeave,
	EventDragStart, EventDragMove, EventDragEnd,
}

func TestCaptureConfigFor(t *testing.T) {
	tests := []struct {
		names []EventName
		want  CaptureConfig
	}{
		{nil, CaptureConfig{}},
		{[]EventName{EventPointerDown, EventPointerUp}, CaptureConfig{}},
		{[]EventName{EventPointerEnter}, CaptureConfig{Move: true}},
		{[]EventName{EventDragEnd}, CaptureConfig{Drag: true}},
		{[]EventName{EventDragMove}, CaptureConfig{Move: true, Drag: true}},
		{[]EventName{EventKill}, CaptureConfig{}},
	}
	for _, tt := range tests {
		if got := CaptureConfigFor(tt.names...); got != tt.want {
			t.Errorf("CaptureConfigFor(%v) = %+v, want %+v", tt.names, got, tt.want)
		}
	}
}

func TestPointerCapture_OptIn(t *testing.T) {
	e, tr, box := pointerRig(t)
	got := recordEvents(box, allPointerEvents...)

	tr.InjectClick(100, 100)
	drain(e, tr)
	if len(*got) != 0 {
		t.Fatalf("handlers alone enabled capture: %v", *got)
	}

	h := box.EnablePointerCapture(CaptureConfig{})
	tr.InjectClick(100, 100)
	drain(e, tr)
	want := []EventName{EventPointerDown, EventPointerUp}
	if !reflect.DeepEqual(*got, want) {
		t.Errorf("events = %v, want %v", *got, want)
	}

	h.Release()
	if box.PointerCaptureEnabled() {
		t.Error("capture still enabled after release")
	}
}

func TestPointerCapture_HandlesMerge(t *testing.T) {
	a := NewActor("a", 0, 0, 1, 1)
	h1 := a.EnablePointerCapture(CaptureConfig{Move: true})
	h2 := a.EnablePointerCapture(CaptureConfig{Drag: true})
	if got := a.PointerCapture(); got != (CaptureConfig{Move: true, Drag: true}) {
		t.Errorf("merged config = %+v", got)
	}

	h1.Release()
	h1.Release()
	if !a.PointerCaptureEnabled() {
		t.Error("capture disabled while a handle is live")
	}
	h2.Release()
	if a.PointerCaptureEnabled() {
		t.Error("capture enabled after every handle released")
	}
	if a.PointerCapture() != (CaptureConfig{}) {
		t.Error("config not reset")
	}
}

func TestPointerCapture_Drag(t *testing.T) {
	e, tr, box := pointerRig(t)
	box.EnablePointerCapture(CaptureConfigFor(EventDragMove))
	got := recordEvents(box, allPointerEvents...)

	tr.InjectDrag(100, 100, 200, 100, 5)
	drain(e, tr)

	want := []EventName{
		EventPointerEnter, EventPointerDown,
		EventPointerLeave, EventDragStart, EventDragMove,
		EventDragMove,
		EventDragMove,
		EventDragEnd,
	}
	if !reflect.DeepEqual(*got, want) {
		t.Errorf("events =\n%v\nwant\n%v", *got, want)
	}
}

func TestPointerCapture_Hover(t *testing.T) {
	e, tr, box := pointerRig(t)
	box.EnablePointerCapture(CaptureConfigFor(EventPointerMove))
	got := recordEvents(box, allPointerEvents...)

	tr.InjectHover(300, 300)
	tr.InjectHover(100, 100)
	tr.InjectHover(102, 100)
	tr.InjectHover(300, 300)
	drain(e, tr)

	want := []EventName{
		EventPointerEnter, EventPointerMove,
		EventPointerMove,
		EventPointerLeave,
	}
	if !reflect.DeepEqual(*got, want) {
		t.Errorf("events = %v, want %v", *got, want)
	}
}

func TestPointerCapture_EventFields(t *testing.T) {
	e, tr, box := pointerRig(t)
	e.Scene().Camera.X += 10
	box.EnablePointerCapture(CaptureConfig{})
	var down Event
	box.On(EventPointerDown, func(ev Event) { down = ev })

	// Screen (90, 100) is world (100, 100) with the camera shifted.
	tr.InjectClick(90, 100)
	drain(e, tr)

	if down.Target != box || down.Engine != e {
		t.Errorf("down = %+v", down)
	}
	assertVec(t, "WorldPos", down.WorldPos, V(100, 100))
	assertVec(t, "ScreenPos", down.ScreenPos, V(90, 100))
	if down.Button != MouseButtonLeft {
		t.Errorf("Button = %v", down.Button)
	}
}

func TestPointerCapture_KilledActorIgnored(t *testing.T) {
	e, tr, box := pointerRig(t)
	box.EnablePointerCapture(CaptureConfig{})
	got := recordEvents(box, allPointerEvents...)
	box.Kill()

	tr.InjectClick(100, 100)
	drain(e, tr)
	if len(*got) != 0 {
		t.Errorf("killed actor got %v", *got)
	}
}

func TestPointerTracker_ForgetOnRemove(t *testing.T) {
	e, tr, box := pointerRig(t)
	box.EnablePointerCapture(CaptureConfig{})

	tr.InjectPress(100, 100)
	drain(e, tr)
	if len(tr.states) == 0 {
		t.Fatal("no state held for a pressed actor")
	}

	box.Kill()
	if len(tr.states) != 0 {
		t.Errorf("states = %v after the actor left the scene", tr.states)
	}
}

func TestInjectDrag_FrameCount(t *testing.T) {
	tr := NewEbitenPointerTracker()
	tr.InjectDrag(0, 0, 10, 0, 1)
	if tr.PendingInjected() != 2 {
		t.Errorf("PendingInjected = %d, want 2", tr.PendingInjected())
	}
	tr.InjectDrag(0, 0, 10, 0, 6)
	if tr.PendingInjected() != 8 {
		t.Errorf("PendingInjected = %d, want 8", tr.PendingInjected())
	}
}

func TestDragPath(t *testing.T) {
	got := dragPath(V(0, 0), V(30, 60), 4)
	want := []Vec2{V(0, 0), V(10, 20), V(20, 40), V(30, 60)}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		assertVec(t, "point", got[i], want[i])
	}

	short := dragPath(V(1, 1), V(5, 5), 0)
	if !reflect.DeepEqual(short, []Vec2{V(1, 1), V(5, 5)}) {
		t.Errorf("short path = %v", short)
	}
}

func TestInjectDrag_QueueOrder(t *testing.T) {
	tr := NewEbitenPointerTracker()
	tr.InjectDrag(0, 0, 20, 0, 3)
	tr.InjectHover(7, 7)

	want := []queuedPointer{
		{V(0, 0), true},
		{V(10, 0), true},
		{V(20, 0), false},
		{V(7, 7), false},
	}
	for i, w := range want {
		got, ok := tr.queue.pop()
		if !ok {
			t.Fatalf("queue empty at %d", i)
		}
		if got != w {
			t.Errorf("frame %d = %+v, want %+v", i, got, w)
		}
	}
	if _, ok := tr.queue.pop(); ok || tr.PendingInjected() != 0 {
		t.Errorf("queue not drained: %d left", tr.PendingInjected())
	}
}
