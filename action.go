package stage

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Action is one step of an actor's action queue.
type Action interface {
	// Update advances the action by delta milliseconds and reports whether
	// it has completed.
	Update(a *Actor, delta float64) bool
	// Reset returns the action to its initial state so it can run again.
	Reset()
}

// ActionQueue runs actions one after another. The actor advances it once
// per frame during Update, after preupdate and before integration.
//
// Builder methods append and return the queue, so calls can be chained:
//
//	a.Actions.MoveTo(100, 0, 1, ease.Linear).Delay(500).Die()
type ActionQueue struct {
	actor   *Actor
	actions []Action
}

func newActionQueue(a *Actor) *ActionQueue {
	return &ActionQueue{actor: a}
}

// Add appends an action.
func (q *ActionQueue) Add(act Action) *ActionQueue {
	q.actions = append(q.actions, act)
	return q
}

// Len returns the number of pending actions, including the running one.
func (q *ActionQueue) Len() int {
	return len(q.actions)
}

// HasNext reports whether any action is pending.
func (q *ActionQueue) HasNext() bool {
	return len(q.actions) > 0
}

// Clear drops every pending action.
func (q *ActionQueue) Clear() {
	clear(q.actions)
	q.actions = q.actions[:0]
}

// Update advances the running action and pops it once complete.
func (q *ActionQueue) Update(delta float64) {
	if len(q.actions) == 0 {
		return
	}
	current := q.actions[0]
	if current.Update(q.actor, delta) {
		// The action may have cleared the queue.
		if len(q.actions) > 0 && q.actions[0] == current {
			copy(q.actions, q.actions[1:])
			q.actions[len(q.actions)-1] = nil
			q.actions = q.actions[:len(q.actions)-1]
		}
	}
}

// --- Builders ---

// MoveTo tweens the local position to (x, y) over duration seconds.
func (q *ActionQueue) MoveTo(x, y float64, duration float32, fn ease.TweenFunc) *ActionQueue {
	return q.Add(&tweenAction{duration: duration, fn: fn, to: []float64{x, y}, fields: posFields})
}

// MoveBy tweens the local position by (dx, dy) over duration seconds.
func (q *ActionQueue) MoveBy(dx, dy float64, duration float32, fn ease.TweenFunc) *ActionQueue {
	return q.Add(&tweenAction{duration: duration, fn: fn, to: []float64{dx, dy}, fields: posFields, relative: true})
}

// RotateTo tweens the local rotation to angle (radians) over duration seconds.
func (q *ActionQueue) RotateTo(angle float64, duration float32, fn ease.TweenFunc) *ActionQueue {
	return q.Add(&tweenAction{duration: duration, fn: fn, to: []float64{angle}, fields: func(a *Actor) []*float64 {
		return []*float64{&a.Transform.Rotation}
	}})
}

// ScaleTo tweens the local scale to (sx, sy) over duration seconds.
func (q *ActionQueue) ScaleTo(sx, sy float64, duration float32, fn ease.TweenFunc) *ActionQueue {
	return q.Add(&tweenAction{duration: duration, fn: fn, to: []float64{sx, sy}, fields: func(a *Actor) []*float64 {
		return []*float64{&a.Transform.Scale.X, &a.Transform.Scale.Y}
	}})
}

// FadeTo tweens the actor opacity to opacity over duration seconds.
func (q *ActionQueue) FadeTo(opacity float64, duration float32, fn ease.TweenFunc) *ActionQueue {
	return q.Add(&tweenAction{duration: duration, fn: fn, to: []float64{opacity}, fields: func(a *Actor) []*float64 {
		return []*float64{&a.Opacity}
	}})
}

// Delay waits ms milliseconds.
func (q *ActionQueue) Delay(ms float64) *ActionQueue {
	return q.Add(&delayAction{duration: ms})
}

// CallMethod runs fn once.
func (q *ActionQueue) CallMethod(fn func()) *ActionQueue {
	return q.Add(&callAction{fn: fn})
}

// Die kills the actor.
func (q *ActionQueue) Die() *ActionQueue {
	return q.Add(dieAction{})
}

// Repeat queues an action that runs the actions added by build times times.
// A negative times repeats forever.
func (q *ActionQueue) Repeat(times int, build func(q *ActionQueue)) *ActionQueue {
	inner := &ActionQueue{actor: q.actor}
	build(inner)
	return q.Add(&repeatAction{times: times, actions: inner.actions})
}

// --- Implementations ---

func posFields(a *Actor) []*float64 {
	return []*float64{&a.Transform.Pos.X, &a.Transform.Pos.Y}
}

// tweenAction drives one gween tween per field. Start values are read when
// the action first runs, not when it is queued.
type tweenAction struct {
	duration float32
	fn       ease.TweenFunc
	to       []float64
	fields   func(a *Actor) []*float64
	relative bool

	ptrs   []*float64
	tweens []*gween.Tween
}

func (t *tweenAction) Update(a *Actor, delta float64) bool {
	if t.tweens == nil {
		t.ptrs = t.fields(a)
		t.tweens = make([]*gween.Tween, len(t.ptrs))
		for i, p := range t.ptrs {
			target := t.to[i]
			if t.relative {
				target += *p
			}
			t.tweens[i] = gween.New(float32(*p), float32(target), t.duration, t.fn)
		}
	}

	allDone := true
	for i, tw := range t.tweens {
		val, finished := tw.Update(float32(delta / 1000))
		*t.ptrs[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	a.markBoundsDirty()
	return allDone
}

func (t *tweenAction) Reset() {
	t.ptrs = nil
	t.tweens = nil
}

type delayAction struct {
	duration float64
	elapsed  float64
}

func (d *delayAction) Update(_ *Actor, delta float64) bool {
	d.elapsed += delta
	return d.elapsed >= d.duration
}

func (d *delayAction) Reset() { d.elapsed = 0 }

type callAction struct {
	fn func()
}

func (c *callAction) Update(*Actor, float64) bool {
	if c.fn != nil {
		c.fn()
	}
	return true
}

func (c *callAction) Reset() {}

type dieAction struct{}

func (dieAction) Update(a *Actor, _ float64) bool {
	if a.Actions != nil {
		a.Actions.Clear()
	}
	a.Kill()
	return true
}

func (dieAction) Reset() {}

type repeatAction struct {
	times   int
	actions []Action
	index   int
	done    int
}

func (r *repeatAction) Update(a *Actor, delta float64) bool {
	if len(r.actions) == 0 || r.times == 0 {
		return true
	}
	if r.actions[r.index].Update(a, delta) {
		r.index++
		if r.index == len(r.actions) {
			r.index = 0
			r.done++
			if r.times > 0 && r.done >= r.times {
				return true
			}
			for _, act := range r.actions {
				act.Reset()
			}
		}
	}
	return false
}

func (r *repeatAction) Reset() {
	r.index, r.done = 0, 0
	for _, act := range r.actions {
		act.Reset()
	}
}
