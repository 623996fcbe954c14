package stage

// EventName identifies a notification emitted by an actor.
type EventName string

const (
	EventInitialize EventName = "initialize"
	EventPreUpdate  EventName = "preupdate"
	EventPostUpdate EventName = "postupdate"

	EventPreKill  EventName = "prekill"
	EventKill     EventName = "kill"
	EventPostKill EventName = "postkill"

	EventPreCollision  EventName = "precollision"
	EventPostCollision EventName = "postcollision"

	EventEnterViewport EventName = "enterviewport"
	EventExitViewport  EventName = "exitviewport"

	EventPointerDown  EventName = "pointerdown"
	EventPointerUp    EventName = "pointerup"
	EventPointerMove  EventName = "pointermove"
	EventPointerEnter EventName = "pointerenter"
	EventPointerLeave EventName = "pointerleave"
	EventDragStart    EventName = "pointerdragstart"
	EventDragMove     EventName = "pointerdragmove"
	EventDragEnd      EventName = "pointerdragend"
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// Event carries notification data. Fields beyond Name and Target are only
// meaningful for the event kinds noted.
type Event struct {
	Name   EventName
	Target *Actor
	Engine *Engine
	Delta  float64 // preupdate, postupdate

	// Collision fields (precollision, postcollision). Other is nil when the
	// actor collided with a tile map.
	Other        *Actor
	Side         Side
	Intersection Vec2

	// Pointer fields (pointer*)
	PointerID int
	WorldPos  Vec2
	ScreenPos Vec2
	Button    MouseButton
}

type eventHandler struct {
	id   uint32
	fn   func(Event)
	once bool
}

// Emitter dispatches named events to registered handlers in registration
// order. The zero value is ready to use.
type Emitter struct {
	handlers map[EventName][]eventHandler
	nextID   uint32
}

// Handle allows removing a registered handler.
type Handle struct {
	id   uint32
	em   *Emitter
	name EventName
}

// Remove unregisters the handler. Removing twice is a no-op.
func (h Handle) Remove() {
	if h.em == nil {
		return
	}
	h.em.remove(h.name, h.id)
}

// On registers fn for events named name.
func (e *Emitter) On(name EventName, fn func(Event)) Handle {
	return e.add(name, fn, false)
}

// Once registers fn to run for the next event named name only.
func (e *Emitter) Once(name EventName, fn func(Event)) Handle {
	return e.add(name, fn, true)
}

// Off removes every handler for name.
func (e *Emitter) Off(name EventName) {
	delete(e.handlers, name)
}

// HandlerCount returns the number of handlers registered for name.
func (e *Emitter) HandlerCount(name EventName) int {
	return len(e.handlers[name])
}

// Emit calls every handler registered for evt.Name. Handlers registered or
// removed while dispatching take effect on the next Emit.
func (e *Emitter) Emit(evt Event) {
	list := e.handlers[evt.Name]
	if len(list) == 0 {
		return
	}
	snapshot := make([]eventHandler, len(list))
	copy(snapshot, list)
	for _, h := range snapshot {
		if h.once {
			e.remove(evt.Name, h.id)
		}
		h.fn(evt)
	}
}

func (e *Emitter) add(name EventName, fn func(Event), once bool) Handle {
	if e.handlers == nil {
		e.handlers = make(map[EventName][]eventHandler)
	}
	e.nextID++
	id := e.nextID
	e.handlers[name] = append(e.handlers[name], eventHandler{id: id, fn: fn, once: once})
	return Handle{id: id, em: e, name: name}
}

// remove deletes the handler with the given id, using copy+zero to avoid
// retaining the closure in the backing array.
func (e *Emitter) remove(name EventName, id uint32) {
	s := e.handlers[name]
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			e.handlers[name] = s[:len(s)-1]
			return
		}
	}
}
