package fold

import "math"

// GestureEvent is a pointer gesture reduced to the scalars the fold engine
// needs.
type GestureEvent struct {
	Kind GestureKind
	// Time is the event timestamp in milliseconds. An event with the same
	// timestamp as the previous one is treated as a duplicate delivery.
	Time int64
	// Distance is the vertical drag distance from the press point, positive
	// when the pointer moved up (startY - currentY).
	Distance float64
	// Velocity is the vertical pointer velocity in pixels per second,
	// positive when moving down. Used by GestureRelease and GestureFling.
	Velocity float64
}

// gestureState is the drag session plus duplicate-delivery bookkeeping.
type gestureState struct {
	hasLast    bool
	lastTime   int64
	lastResult bool

	scrollDetected bool
	startRotation  float64
	startDistance  float64
}

// HandleGesture feeds one gesture event to the fold. It returns true when
// the event was consumed as a fold drag or fling.
//
// A drag becomes a fold once it travels more than Config.TouchSlop; from
// then on a drag of half the pane height turns one full page (180 degrees).
// Releasing an open drag settles to the nearest page; a fast release or an
// explicit fling settles to the adjacent page in the fling direction.
func (f *Foldable) HandleGesture(ev GestureEvent) bool {
	g := &f.gesture
	if g.hasLast && g.lastTime == ev.Time {
		return g.lastResult
	}
	g.hasLast = true
	g.lastTime = ev.Time

	if ev.Kind == GestureRelease && g.scrollDetected {
		g.scrollDetected = false
		f.ScrollToNearestPosition()
	}

	if f.count == 0 {
		g.lastResult = false
		return false
	}

	var result bool
	switch ev.Kind {
	case GestureScroll:
		result = f.scroll(ev.Distance)
	case GestureRelease:
		if math.Abs(ev.Velocity) >= f.cfg.MinFlingVelocity {
			result = f.fling(ev.Velocity)
		}
	case GestureFling:
		result = f.fling(ev.Velocity)
	}
	g.lastResult = result
	return result
}

// IsDragging reports whether a fold drag session is open.
func (f *Foldable) IsDragging() bool { return f.gesture.scrollDetected }

func (f *Foldable) scroll(distance float64) bool {
	g := &f.gesture
	if !g.scrollDetected && math.Abs(distance) > f.cfg.TouchSlop {
		g.scrollDetected = true
		g.startRotation = f.rotation
		g.startDistance = distance
		f.debugf("gesture: drag started at rotation %.2f", f.rotation)
	}

	if g.scrollDetected && f.h > 0 {
		delta := 2 * (distance - g.startDistance) / float64(f.h) * 180
		f.UpdateRotation(g.startRotation+delta, true)
	}
	return g.scrollDetected
}

func (f *Foldable) fling(velocity float64) bool {
	if math.Mod(f.rotation, 180) == 0 {
		return false
	}
	page := int(f.rotation / 180)
	if velocity > 0 {
		f.ScrollToPosition(page)
	} else {
		f.ScrollToPosition(page + 1)
	}
	return true
}
