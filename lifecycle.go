package stage

// Update advances the actor by delta milliseconds. The order is fixed:
// initialize (first call only), preupdate, actions, opacity bookkeeping,
// capture old transform, integrate, traits, children, postupdate.
func (a *Actor) Update(e *Engine, delta float64) {
	a.initialize(e)

	a.emit(Event{Name: EventPreUpdate, Engine: e, Delta: delta})
	if a.OnPreUpdate != nil {
		a.OnPreUpdate(e, delta)
	}

	if a.Actions != nil {
		a.Actions.Update(delta)
	}

	if a.Color != nil {
		a.Color.A = a.Opacity
	}
	if a.previousOpacity != a.Opacity {
		a.previousOpacity = a.Opacity
	}

	if a.Body != nil {
		a.Body.CaptureOldTransform()
		a.Body.Integrate(delta)
	}

	for _, t := range a.Traits {
		t.Update(a, e, delta)
	}

	// Index loop: the child list drives iteration even if a child is
	// detached while updating.
	for i := 0; i < len(a.children); i++ {
		updateIsolated(a.children[i], e, delta)
	}

	a.emit(Event{Name: EventPostUpdate, Engine: e, Delta: delta})
	if a.OnPostUpdate != nil {
		a.OnPostUpdate(e, delta)
	}
}

// updateIsolated runs a.Update and converts a panic into a logged error so
// one malformed actor cannot halt the frame.
func updateIsolated(a *Actor, e *Engine, delta float64) {
	defer func() {
		if r := recover(); r != nil {
			a.logger().Errorf("actor %q (id %d) update panicked: %v", a.Name, a.ID, r)
		}
	}()
	a.Update(e, delta)
}

// initialize runs the one-time hook and notification, then initializes
// children. Children added later are initialized on their first update.
func (a *Actor) initialize(e *Engine) {
	if !a.initialized {
		if a.OnInitialize != nil {
			a.OnInitialize(e)
		}
		a.emit(Event{Name: EventInitialize, Engine: e})
		a.initialized = true
	}
	for _, child := range a.children {
		child.initialize(e)
	}
}

// IsInitialized reports whether the initialize step has run.
func (a *Actor) IsInitialized() bool {
	return a.initialized
}

// Kill removes the actor from its scene. The scene reference is cleared at
// once; the scene drops the actor from its live list at the end of the
// frame. Killing an actor that is not in a scene logs a warning and changes
// nothing.
func (a *Actor) Kill() {
	s := a.scene
	if s == nil {
		a.logger().Warnf("Cannot kill actor, it was never added to the Scene")
		return
	}

	a.emitVia(s, Event{Name: EventPreKill})
	if a.OnPreKill != nil {
		a.OnPreKill()
	}

	a.emitVia(s, Event{Name: EventKill})
	a.killed = true
	s.Remove(a)

	a.emitVia(s, Event{Name: EventPostKill})
	if a.OnPostKill != nil {
		a.OnPostKill()
	}
}

// Unkill clears the killed flag. It does not re-add the actor to a scene or
// re-run initialization.
func (a *Actor) Unkill() {
	a.killed = false
}

// IsKilled reports whether the actor has been killed.
func (a *Actor) IsKilled() bool {
	return a.killed
}

// logger returns the logger of the nearest scene in the ancestor chain, or
// the package default.
func (a *Actor) logger() Logger {
	for p := a; p != nil; p = p.parent {
		if p.scene != nil {
			return p.scene.Logger()
		}
	}
	return defaultLogger
}
