package fold

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// settleAnim is a programmatic rotation animation toward a page boundary.
// There are no timers: Foldable.Update advances it.
type settleAnim struct {
	tween  *gween.Tween
	target float64
}

// SettleDuration returns how long a settle from one rotation to another
// takes: perItem for every 180 degrees of distance.
func SettleDuration(perItem float64, from, to float64) float64 {
	return math.Abs(perItem * (to - from) / 180)
}

// ScrollToPosition animates to page index, clamped into the valid range.
// Any running settle animation is replaced.
func (f *Foldable) ScrollToPosition(index int) {
	index = max(0, min(index, f.count-1))

	target := float64(index) * 180
	current := f.rotation
	duration := SettleDuration(f.cfg.PerItemDuration.Seconds(), current, target)

	f.settle = &settleAnim{
		tween:  gween.New(float32(current), float32(target), float32(duration), ease.Linear),
		target: target,
	}
	f.debugf("settle: %.2f -> %.0f over %.3fs", current, target, duration)
}

// ScrollToNearestPosition settles to whichever page boundary the current
// rotation is closer to.
func (f *Foldable) ScrollToNearestPosition() {
	f.ScrollToPosition(int((f.rotation + 90) / 180))
}

// IsSettling reports whether a settle animation is running.
func (f *Foldable) IsSettling() bool { return f.settle != nil }

// SettleTarget returns the rotation the running settle animation ends at.
func (f *Foldable) SettleTarget() (float64, bool) {
	if f.settle == nil {
		return 0, false
	}
	return f.settle.target, true
}

func (f *Foldable) cancelSettle() {
	if f.settle != nil {
		f.debugf("settle: cancelled at %.2f", f.rotation)
		f.settle = nil
	}
}

// advanceSettle moves the settle animation forward by dt seconds.
func (f *Foldable) advanceSettle(dt float32) {
	if f.settle == nil {
		return
	}
	s := f.settle
	val, done := s.tween.Update(dt)
	v := float64(val)
	if done {
		// Cleared before applying so hooks may start a new settle.
		v = s.target
		f.settle = nil
	}
	f.UpdateRotation(v, false)
}
