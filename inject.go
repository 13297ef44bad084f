package fold

// syntheticPointerEvent is a single injected pointer sample. Only the
// vertical coordinate matters to the fold.
type syntheticPointerEvent struct {
	y       float64
	pressed bool
}

// InjectPress queues a pointer press at screen row y. The event is consumed
// on the next Update.
func (f *Foldable) InjectPress(y float64) {
	f.injectQueue = append(f.injectQueue, syntheticPointerEvent{y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (f *Foldable) InjectMove(y float64) {
	f.injectQueue = append(f.injectQueue, syntheticPointerEvent{y: y, pressed: true})
}

// InjectRelease queues a pointer release at screen row y.
func (f *Foldable) InjectRelease(y float64) {
	f.injectQueue = append(f.injectQueue, syntheticPointerEvent{y: y, pressed: false})
}

// InjectDrag queues a full drag: press at fromY, frames-2 linearly
// interpolated moves, and release at toY. The sequence consumes `frames`
// Updates; the minimum is 2.
func (f *Foldable) InjectDrag(fromY, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	f.InjectPress(fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		f.InjectMove(fromY + (toY-fromY)*t)
	}
	f.InjectRelease(toY)
}

// PendingInjections returns the number of queued synthetic events.
func (f *Foldable) PendingInjections() int { return len(f.injectQueue) }

// processInjectedInput pops one queued event and feeds it through
// processPointer. Returns true if an event was consumed, in which case real
// input is skipped this frame.
func (f *Foldable) processInjectedInput(dt float32) bool {
	if len(f.injectQueue) == 0 {
		return false
	}
	evt := f.injectQueue[0]
	copy(f.injectQueue, f.injectQueue[1:])
	f.injectQueue = f.injectQueue[:len(f.injectQueue)-1]

	f.processPointer(evt.y, evt.pressed, dt)
	return true
}
