package fold

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// velocitySmoothing weights the newest per-frame velocity sample against
// the running estimate.
const velocitySmoothing = 0.6

// pointerState tracks the single pointer (mouse or first touch) that drives
// fold gestures.
type pointerState struct {
	down     bool
	startY   float64
	lastY    float64
	velocity float64 // pixels per second, positive downward
	lastTime int64

	touchBuf []ebiten.TouchID
	touchID  ebiten.TouchID
	touching bool
}

// InputEnabled gates reading the mouse and touch screen in Update. Injected
// pointer events are processed regardless.
var InputEnabled = true

// processInput turns this frame's pointer state into gesture events.
// Injected events take priority over real input. The first touch to go down
// is followed until it lifts; otherwise the left mouse button drives.
func (f *Foldable) processInput(dt float32) {
	if f.processInjectedInput(dt) {
		return
	}
	if !InputEnabled {
		return
	}

	ps := &f.pointer
	if ps.touching {
		if inpututil.TouchPressDuration(ps.touchID) == 0 {
			ps.touching = false
			_, y := inpututil.TouchPositionInPreviousTick(ps.touchID)
			f.processPointer(float64(y), false, dt)
			return
		}
		_, y := ebiten.TouchPosition(ps.touchID)
		f.processPointer(float64(y), true, dt)
		return
	}

	ps.touchBuf = inpututil.AppendJustPressedTouchIDs(ps.touchBuf[:0])
	if len(ps.touchBuf) > 0 && !ps.down {
		ps.touchID = ps.touchBuf[0]
		ps.touching = true
		_, y := ebiten.TouchPosition(ps.touchID)
		f.processPointer(float64(y), true, dt)
		return
	}

	_, y := ebiten.CursorPosition()
	f.processPointer(float64(y), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), dt)
}

// processPointer emits Down on press, Scroll on movement while pressed and
// Release (with the smoothed velocity) on release.
func (f *Foldable) processPointer(y float64, pressed bool, dt float32) {
	ps := &f.pointer
	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.startY = y
		ps.lastY = y
		ps.velocity = 0
		f.HandleGesture(GestureEvent{Kind: GestureDown, Time: f.nextEventTime()})

	case pressed && ps.down:
		f.trackVelocity(y, dt)
		if y != ps.lastY {
			ps.lastY = y
			f.HandleGesture(GestureEvent{
				Kind:     GestureScroll,
				Time:     f.nextEventTime(),
				Distance: ps.startY - y,
			})
		}

	case !pressed && ps.down:
		f.trackVelocity(y, dt)
		ps.down = false
		if y != ps.lastY {
			ps.lastY = y
			f.HandleGesture(GestureEvent{
				Kind:     GestureScroll,
				Time:     f.nextEventTime(),
				Distance: ps.startY - y,
			})
		}
		f.HandleGesture(GestureEvent{
			Kind:     GestureRelease,
			Time:     f.nextEventTime(),
			Velocity: ps.velocity,
		})
	}
}

func (f *Foldable) trackVelocity(y float64, dt float32) {
	if dt <= 0 {
		return
	}
	ps := &f.pointer
	sample := (y - ps.lastY) / float64(dt)
	ps.velocity = ps.velocity*(1-velocitySmoothing) + sample*velocitySmoothing
}

// nextEventTime returns a strictly increasing millisecond timestamp derived
// from the Update clock, so adapter-generated events are never mistaken for
// duplicate deliveries.
func (f *Foldable) nextEventTime() int64 {
	ps := &f.pointer
	now := int64(f.clock * 1000)
	if now <= ps.lastTime {
		now = ps.lastTime + 1
	}
	ps.lastTime = now
	return now
}
