package stage

import (
	"fmt"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if !got.Equals(want, 1e-6) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// --- recordingContext ---

// ctxCall is one call made on a recordingContext. Draw calls also capture
// the z and opacity in effect.
type ctxCall struct {
	op      string
	args    []float64
	z       float64
	opacity float64
}

type recState struct {
	z, opacity float64
}

// recordingContext implements Context by logging every call. It never
// touches the GPU.
type recordingContext struct {
	calls []ctxCall
	state recState
	stack []recState
	// maxDepth is the deepest save stack seen.
	maxDepth int
}

func newRecordingContext() *recordingContext {
	return &recordingContext{state: recState{opacity: 1}}
}

func (c *recordingContext) record(op string, args ...float64) {
	c.calls = append(c.calls, ctxCall{op: op, args: args, z: c.state.z, opacity: c.state.opacity})
}

func (c *recordingContext) Save() {
	c.stack = append(c.stack, c.state)
	c.maxDepth = max(c.maxDepth, len(c.stack))
	c.record("save")
}

func (c *recordingContext) Restore() {
	if n := len(c.stack); n > 0 {
		c.state = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
	c.record("restore")
}

func (c *recordingContext) Translate(x, y float64) { c.record("translate", x, y) }
func (c *recordingContext) Rotate(angle float64)   { c.record("rotate", angle) }
func (c *recordingContext) Scale(x, y float64)     { c.record("scale", x, y) }

func (c *recordingContext) DrawImage(_ *ebiten.Image, x, y float64) {
	c.record("image", x, y)
}

func (c *recordingContext) DrawImageRegion(_ *ebiten.Image, sx, sy, sw, sh, dx, dy, dw, dh float64) {
	c.record("region", sx, sy, sw, sh, dx, dy, dw, dh)
}

func (c *recordingContext) DrawRect(x, y, w, h float64, _ Color) {
	c.record("rect", x, y, w, h)
}

func (c *recordingContext) DrawCircle(cx, cy, radius float64, _ Color) {
	c.record("circle", cx, cy, radius)
}

func (c *recordingContext) DrawLine(from, to Vec2, width float64, _ Color) {
	c.record("line", from.X, from.Y, to.X, to.Y, width)
}

func (c *recordingContext) Clear() {
	c.stack = c.stack[:0]
	c.state = recState{opacity: 1}
	c.record("clear")
}

func (c *recordingContext) Flush() { c.record("flush") }

func (c *recordingContext) Z() float64           { return c.state.z }
func (c *recordingContext) SetZ(z float64)       { c.state.z = z }
func (c *recordingContext) Opacity() float64     { return c.state.opacity }
func (c *recordingContext) SetOpacity(o float64) { c.state.opacity = o }

func (c *recordingContext) depth() int { return len(c.stack) }

// ops returns the names of the recorded calls in order.
func (c *recordingContext) ops() []string {
	out := make([]string, len(c.calls))
	for i, call := range c.calls {
		out[i] = call.op
	}
	return out
}

// filter returns the recorded calls named op.
func (c *recordingContext) filter(op string) []ctxCall {
	var out []ctxCall
	for _, call := range c.calls {
		if call.op == op {
			out = append(out, call)
		}
	}
	return out
}

// --- recordLogger ---

type logLine struct {
	level string
	msg   string
}

type recordLogger struct {
	lines []logLine
}

func (l *recordLogger) Debugf(format string, args ...any) { l.add("debug", format, args) }
func (l *recordLogger) Warnf(format string, args ...any)  { l.add("warning", format, args) }
func (l *recordLogger) Errorf(format string, args ...any) { l.add("error", format, args) }

func (l *recordLogger) add(level, format string, args []any) {
	l.lines = append(l.lines, logLine{level, fmt.Sprintf(format, args...)})
}

func (l *recordLogger) count(level string) int {
	n := 0
	for _, line := range l.lines {
		if line.level == level {
			n++
		}
	}
	return n
}

// captureDefaultLogger swaps the package fallback logger for the duration
// of the test.
func captureDefaultLogger(t *testing.T) *recordLogger {
	t.Helper()
	prev := defaultLogger
	rec := &recordLogger{}
	defaultLogger = rec
	t.Cleanup(func() { defaultLogger = prev })
	return rec
}

// recordEvents subscribes to every name on a and appends the names it
// receives.
func recordEvents(a *Actor, names ...EventName) *[]EventName {
	var got []EventName
	for _, n := range names {
		a.On(n, func(e Event) { got = append(got, e.Name) })
	}
	return &got
}
