package stage

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels
)

// --- Capture registration ---

// CaptureConfig selects which pointer notifications an actor receives once
// capture is enabled. Down and up are always delivered.
type CaptureConfig struct {
	Move bool // pointermove, pointerenter, pointerleave
	Drag bool // pointerdragstart, pointerdragmove, pointerdragend
}

func (c CaptureConfig) merge(o CaptureConfig) CaptureConfig {
	return CaptureConfig{Move: c.Move || o.Move, Drag: c.Drag || o.Drag}
}

// CaptureConfigFor returns the capture config needed to receive every named
// event. Names that are not pointer events are ignored.
func CaptureConfigFor(names ...EventName) CaptureConfig {
	var cfg CaptureConfig
	for _, n := range names {
		switch n {
		case EventPointerMove, EventPointerEnter, EventPointerLeave:
			cfg.Move = true
		case EventDragMove:
			cfg.Move = true
			cfg.Drag = true
		case EventDragStart, EventDragEnd:
			cfg.Drag = true
		}
	}
	return cfg
}

// CaptureHandle keeps pointer capture enabled on an actor until released.
type CaptureHandle struct {
	actor    *Actor
	released bool
}

// Release drops this registration. Capture turns off when the last handle
// of the actor is released. Releasing twice is a no-op.
func (h *CaptureHandle) Release() {
	if h == nil || h.released || h.actor == nil {
		return
	}
	h.released = true
	a := h.actor
	a.captureCount--
	if a.captureCount <= 0 {
		a.captureCount = 0
		a.capture = CaptureConfig{}
	}
}

// EnablePointerCapture turns on pointer capture for the actor so the
// CapturePointer trait routes pointer notifications to it. Configs from
// concurrent registrations are merged.
func (a *Actor) EnablePointerCapture(cfg CaptureConfig) *CaptureHandle {
	a.captureCount++
	a.capture = a.capture.merge(cfg)
	return &CaptureHandle{actor: a}
}

// PointerCaptureEnabled reports whether any capture registration is live.
func (a *Actor) PointerCaptureEnabled() bool {
	return a.captureCount > 0
}

// PointerCapture returns the merged capture config.
func (a *Actor) PointerCapture() CaptureConfig {
	return a.capture
}

// --- Tracker ---

// PointerTracker updates per-actor pointer state and emits pointer
// notifications. It is called by the CapturePointer trait.
type PointerTracker interface {
	UpdateActorUnderPointer(a *Actor, cfg CaptureConfig)
}

// pointerSample is one pointer's state for the current frame.
type pointerSample struct {
	active       bool
	screen       Vec2
	world        Vec2
	pressed      bool
	justPressed  bool
	justReleased bool
	moved        bool
	button       MouseButton
}

type actorPointerKey struct {
	actor   uint32
	pointer int
}

// actorPointerState tracks one actor against one pointer across frames.
type actorPointerState struct {
	under    bool
	pressed  bool // pressed while over the actor
	start    Vec2
	dragging bool
}

// queuedPointer is one frame of scripted left-button input in screen space.
type queuedPointer struct {
	pos     Vec2
	pressed bool
}

// pointerQueue is a FIFO of scripted pointer frames. It replaces real mouse
// input while non-empty.
type pointerQueue []queuedPointer

func (q *pointerQueue) push(pos Vec2, pressed bool) {
	*q = append(*q, queuedPointer{pos, pressed})
}

func (q *pointerQueue) pop() (queuedPointer, bool) {
	if len(*q) == 0 {
		return queuedPointer{}, false
	}
	head := (*q)[0]
	*q = (*q)[1:]
	if len(*q) == 0 {
		*q = nil
	}
	return head, true
}

// dragPath returns frames points from from to to inclusive, evenly spaced.
// At least the two endpoints are returned.
func dragPath(from, to Vec2, frames int) []Vec2 {
	if frames < 2 {
		frames = 2
	}
	d := to.Sub(from)
	path := make([]Vec2, frames)
	for i := range path {
		path[i] = from.Add(d.Scale(float64(i) / float64(frames-1)))
	}
	path[frames-1] = to
	return path
}

// EbitenPointerTracker samples the ebiten mouse and touch state once per
// frame and hit tests captured actors against it.
type EbitenPointerTracker struct {
	// DragDeadZone is the distance in pixels the pointer must travel while
	// pressed before a drag starts.
	DragDeadZone float64

	engine  *Engine
	samples [maxPointers]pointerSample
	states  map[actorPointerKey]actorPointerState

	touchIDs  []ebiten.TouchID
	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool

	queue pointerQueue
}

// NewEbitenPointerTracker returns a tracker with the default drag dead zone.
func NewEbitenPointerTracker() *EbitenPointerTracker {
	return &EbitenPointerTracker{
		DragDeadZone: defaultDragDeadZone,
		states:       make(map[actorPointerKey]actorPointerState),
	}
}

// BeginFrame samples pointer input for this frame. Injected events take
// precedence over real mouse input, one per frame, and always use the left
// button.
func (t *EbitenPointerTracker) BeginFrame(e *Engine) {
	t.engine = e
	var cam *Camera
	if e != nil && e.scene != nil {
		cam = e.scene.Camera
	}

	if q, ok := t.queue.pop(); ok {
		t.sample(0, cam, q.pos, q.pressed, MouseButtonLeft)
		return
	}

	mx, my := ebiten.CursorPosition()
	var pressed bool
	var button MouseButton
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, MouseButtonMiddle
	}
	t.sample(0, cam, Vec2{float64(mx), float64(my)}, pressed, button)
	t.sampleTouches(cam)
}

// sampleTouches handles touch input (pointers 1-9).
func (t *EbitenPointerTracker) sampleTouches(cam *Camera) {
	t.touchIDs = ebiten.AppendTouchIDs(t.touchIDs[:0])

	var activeSlots [maxPointers]bool
	for _, tid := range t.touchIDs {
		slot := t.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		t.sample(slot, cam, Vec2{float64(tx), float64(ty)}, true, MouseButtonLeft)
	}

	for i := 1; i < maxPointers; i++ {
		if t.touchUsed[i] && !activeSlots[i] {
			last := t.samples[i].screen
			t.sample(i, cam, last, false, MouseButtonLeft)
			t.touchUsed[i] = false
			t.touchMap[i] = 0
		} else if !t.touchUsed[i] {
			t.samples[i] = pointerSample{}
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (t *EbitenPointerTracker) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if t.touchUsed[i] && t.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !t.touchUsed[i] {
			t.touchUsed[i] = true
			t.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// sample records a pointer reading and derives the edge flags from the
// previous reading of the same pointer.
func (t *EbitenPointerTracker) sample(id int, cam *Camera, screen Vec2, pressed bool, button MouseButton) {
	prev := t.samples[id]
	world := screen
	if cam != nil {
		world = cam.ScreenToWorld(screen)
	}
	if prev.pressed {
		button = prev.button
	}
	t.samples[id] = pointerSample{
		active:       true,
		screen:       screen,
		world:        world,
		pressed:      pressed,
		justPressed:  pressed && !prev.pressed,
		justReleased: !pressed && prev.pressed,
		moved:        prev.active && screen != prev.screen,
		button:       button,
	}
}

// UpdateActorUnderPointer runs the per-actor pointer state machine for every
// active pointer and emits the notifications cfg selects.
func (t *EbitenPointerTracker) UpdateActorUnderPointer(a *Actor, cfg CaptureConfig) {
	for id := range t.samples {
		p := &t.samples[id]
		if !p.active {
			continue
		}
		key := actorPointerKey{actor: a.ID, pointer: id}
		st := t.states[key]
		hit := a.Contains(p.world.X, p.world.Y, true)

		evt := Event{
			Target:    a,
			Engine:    t.engine,
			PointerID: id,
			WorldPos:  p.world,
			ScreenPos: p.screen,
			Button:    p.button,
		}
		fire := func(name EventName) {
			evt.Name = name
			a.emit(evt)
		}

		if cfg.Move {
			if hit && !st.under {
				fire(EventPointerEnter)
			} else if !hit && st.under {
				fire(EventPointerLeave)
			}
		}
		st.under = hit

		if hit && p.justPressed {
			st.pressed = true
			st.start = p.world
			fire(EventPointerDown)
		}
		if hit && p.moved && cfg.Move {
			fire(EventPointerMove)
		}

		if cfg.Drag && st.pressed && p.pressed && p.moved {
			if !st.dragging && p.world.Distance(st.start) > t.DragDeadZone {
				st.dragging = true
				fire(EventDragStart)
			}
			if st.dragging {
				fire(EventDragMove)
			}
		}

		if p.justReleased {
			if st.dragging {
				fire(EventDragEnd)
			}
			if hit {
				fire(EventPointerUp)
			}
			st.pressed = false
			st.dragging = false
		}

		if st == (actorPointerState{}) {
			delete(t.states, key)
		} else {
			t.states[key] = st
		}
	}
}

// Forget drops all pointer state held for the actor.
func (t *EbitenPointerTracker) Forget(a *Actor) {
	for id := 0; id < maxPointers; id++ {
		delete(t.states, actorPointerKey{actor: a.ID, pointer: id})
	}
}

// InjectPress queues a left-button press at screen point (x, y) for the next
// BeginFrame.
func (t *EbitenPointerTracker) InjectPress(x, y float64) { t.queue.push(V(x, y), true) }

// InjectMove queues a move with the button held, for building drags by hand.
func (t *EbitenPointerTracker) InjectMove(x, y float64) { t.queue.push(V(x, y), true) }

// InjectHover queues a move with no button held.
func (t *EbitenPointerTracker) InjectHover(x, y float64) { t.queue.push(V(x, y), false) }

// InjectRelease queues a release at (x, y).
func (t *EbitenPointerTracker) InjectRelease(x, y float64) { t.queue.push(V(x, y), false) }

// InjectClick queues a press and a release at the same point, taking two
// frames.
func (t *EbitenPointerTracker) InjectClick(x, y float64) {
	t.InjectPress(x, y)
	t.InjectRelease(x, y)
}

// InjectDrag spreads a drag from (fromX, fromY) to (toX, toY) over frames
// frames: a press, held moves along the straight line, and a release at the
// end. Fewer than two frames still queue the press and the release.
func (t *EbitenPointerTracker) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	path := dragPath(V(fromX, fromY), V(toX, toY), frames)
	last := len(path) - 1
	for i, p := range path {
		t.queue.push(p, i != last)
	}
}

// PendingInjected returns the number of queued frames of scripted input.
func (t *EbitenPointerTracker) PendingInjected() int { return len(t.queue) }
