package desktop

import "time"

// gestureTracker infers interactive resize drags from a burst of size
// changes, glfw does not report when a drag starts or ends.
type gestureTracker struct {
	settle time.Duration
	active bool
	last   time.Time
}

// resized records a size change and reports whether it starts a gesture.
func (g *gestureTracker) resized(now time.Time) bool {
	if g.settle <= 0 {
		return false
	}
	g.last = now
	if g.active {
		return false
	}
	g.active = true
	return true
}

// settled reports, once per gesture, that the size stopped changing.
func (g *gestureTracker) settled(now time.Time) bool {
	if !g.active || now.Sub(g.last) < g.settle {
		return false
	}
	g.active = false
	return true
}

// remaining is how long until an active gesture settles.
func (g *gestureTracker) remaining(now time.Time) time.Duration {
	if !g.active {
		return 0
	}
	return max(g.settle-now.Sub(g.last), 0)
}
