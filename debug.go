package stage

import (
	"time"
)

// debugStats holds per-frame timing and draw metrics.
// Only populated when the scene is in debug mode.
type debugStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	actorCount int
	drawnCount int
	drawCalls  int
}

// debugLog reports the last frame's stats through the scene logger.
func (s *Scene) debugLog() {
	if !s.debug {
		return
	}
	st := s.stats
	l := s.Logger()
	l.Debugf("update: %v | draw: %v | total: %v", st.updateTime, st.drawTime, st.updateTime+st.drawTime)
	l.Debugf("actors: %d | drawn: %d | draw calls: %d", st.actorCount, st.drawnCount, st.drawCalls)
}

// debugMaxTreeDepth is the actor tree depth above which debug mode warns.
const debugMaxTreeDepth = 32

// debugMaxChildCount is the child count above which debug mode warns.
const debugMaxChildCount = 1000

// debugCheckTree walks the subtree rooted at a and warns about actors nested
// deeper than debugMaxTreeDepth or holding more than debugMaxChildCount
// children.
func debugCheckTree(l Logger, a *Actor, depth int) {
	if depth > debugMaxTreeDepth {
		l.Warnf("tree depth %d exceeds %d (actor %q)", depth, debugMaxTreeDepth, a.Name)
		return
	}
	if len(a.children) > debugMaxChildCount {
		l.Warnf("actor %q has %d children (threshold %d)", a.Name, len(a.children), debugMaxChildCount)
	}
	for _, c := range a.children {
		debugCheckTree(l, c, depth+1)
	}
}
