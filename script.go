package stage

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptDoc is the top-level JSON structure for an input script.
type scriptDoc struct {
	Steps []scriptStep `json:"steps"`
}

// PointerInjector queues synthetic pointer input. EbitenPointerTracker
// implements it.
type PointerInjector interface {
	InjectClick(x, y float64)
	InjectHover(x, y float64)
	InjectDrag(fromX, fromY, toX, toY float64, frames int)
	PendingInjected() int
}

// Script sequences injected pointer input across frames, for demos and
// automated play-throughs. Attach to an Engine via SetScript.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script. Supported actions are click,
// hover, drag, wait and log.
func LoadScript(jsonData []byte) (*Script, error) {
	var doc scriptDoc
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range doc.Steps {
		switch st.Action {
		case "click", "hover", "drag", "wait", "log":
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: doc.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *Script) Done() bool {
	return r.done
}

// step advances the script by one frame. Called from Engine.Update before
// pointer sampling.
func (r *Script) step(e *Engine) {
	if r.done {
		return
	}
	inj, _ := e.Pointers.(PointerInjector)
	// Wait for pending injections to drain before advancing.
	if inj != nil && inj.PendingInjected() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "click":
		if inj != nil {
			inj.InjectClick(st.X, st.Y)
		}
	case "hover":
		if inj != nil {
			inj.InjectHover(st.X, st.Y)
		}
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		if inj != nil {
			inj.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "log":
		e.Logger().Debugf("script: %s (frame %d)", st.Label, e.frames)
	}

	pending := 0
	if inj != nil {
		pending = inj.PendingInjected()
	}
	if r.cursor >= len(r.steps) && r.waitCount == 0 && pending == 0 {
		r.done = true
	}
}
