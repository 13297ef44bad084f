package fold

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// testView is a View with a fixed screen rectangle.
type testView struct {
	testSurface
	bounds Rect
}

func (v *testView) Bounds() Rect { return v.bounds }

func newTestView(x, y, w, h float64) *testView {
	return &testView{
		testSurface: testSurface{w: int(w), h: int(h)},
		bounds:      Rect{X: x, Y: y, Width: w, Height: h},
	}
}

// recordingListener records every callback in order.
type recordingListener struct {
	events []string
	stages []float64
}

func (l *recordingListener) OnUnfolding(u *Unfoldable)   { l.events = append(l.events, "unfolding") }
func (l *recordingListener) OnUnfolded(u *Unfoldable)    { l.events = append(l.events, "unfolded") }
func (l *recordingListener) OnFoldingBack(u *Unfoldable) { l.events = append(l.events, "folding-back") }
func (l *recordingListener) OnFoldedBack(u *Unfoldable)  { l.events = append(l.events, "folded-back") }
func (l *recordingListener) OnFoldProgress(u *Unfoldable, stage float64) {
	l.stages = append(l.stages, stage)
}

func newTestUnfoldable() (*Unfoldable, *recordingListener) {
	u := NewUnfoldable(DefaultConfig())
	u.SetSize(300, 400)
	l := &recordingListener{}
	u.SetFoldingListener(l)
	return u, l
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestUnfoldStartsSettle(t *testing.T) {
	u, _ := newTestUnfoldable()
	cover := newTestView(50, 500, 100, 60)
	details := newTestView(0, 0, 300, 400)

	u.Unfold(cover, details)
	if u.Count() != 2 || u.MaxRotation() != 180 {
		t.Fatalf("count %d max %v", u.Count(), u.MaxRotation())
	}
	target, ok := u.SettleTarget()
	if !ok || target != 180 {
		t.Errorf("target = %v (ok=%v), want 180", target, ok)
	}
	if u.Cover() != cover || u.Details() != details {
		t.Error("views not recorded")
	}
}

func TestUnfoldStateSequence(t *testing.T) {
	u, l := newTestUnfoldable()
	u.Unfold(newTestView(50, 500, 100, 60), newTestView(0, 0, 300, 400))

	for _, r := range []float64{0, 90, 180, 90, 0} {
		u.UpdateRotation(r, true)
	}

	want := []string{"unfolding", "unfolded", "folding-back", "folded-back"}
	if !equalStrings(l.events, want) {
		t.Errorf("events = %v, want %v", l.events, want)
	}
	if u.State() != StateFoldedBack {
		t.Errorf("state = %v, want folded-back", u.State())
	}
	if u.Cover() != nil || u.Details() != nil {
		t.Error("fold-back should release both views")
	}
	if u.Count() != 0 {
		t.Errorf("count after fold-back = %d, want 0", u.Count())
	}
	if u.Translation() != (Vec2{}) || u.Stage() != 0 {
		t.Errorf("translation %v stage %v after fold-back", u.Translation(), u.Stage())
	}
}

func TestUnfoldStateFlags(t *testing.T) {
	u, _ := newTestUnfoldable()
	u.Unfold(newTestView(50, 500, 100, 60), newTestView(0, 0, 300, 400))

	u.UpdateRotation(45, true)
	if !u.IsUnfolding() || u.IsUnfolded() || u.IsFoldingBack() {
		t.Errorf("at 45: state %v", u.State())
	}
	u.UpdateRotation(180, true)
	if !u.IsUnfolded() || u.IsUnfolding() {
		t.Errorf("at 180: state %v", u.State())
	}
	u.UpdateRotation(170, true)
	if !u.IsFoldingBack() || u.IsUnfolded() {
		t.Errorf("at 170: state %v", u.State())
	}
	u.UpdateRotation(175, true)
	if !u.IsUnfolding() {
		t.Errorf("reversing at 175: state %v", u.State())
	}
}

func TestUnfoldProgressStages(t *testing.T) {
	u, l := newTestUnfoldable()
	u.Unfold(newTestView(50, 500, 100, 60), newTestView(0, 0, 300, 400))
	l.stages = nil

	u.UpdateRotation(45, true)
	u.UpdateRotation(135, true)
	if len(l.stages) != 2 || l.stages[0] != 0.25 || l.stages[1] != 0.75 {
		t.Errorf("stages = %v, want [0.25 0.75]", l.stages)
	}
}

func TestUnfoldTranslation(t *testing.T) {
	u, _ := newTestUnfoldable()
	cover := newTestView(50, 500, 100, 60)  // center x 100, top 500
	details := newTestView(0, 0, 300, 400) // center (150, 200)
	u.Unfold(cover, details)

	u.SetRotation(0)
	if got := u.Translation(); got != (Vec2{X: -50, Y: 300}) {
		t.Errorf("translation at 0 = %v, want (-50, 300)", got)
	}
	u.SetRotation(90)
	if got := u.Translation(); got != (Vec2{X: -25, Y: 150}) {
		t.Errorf("translation at 90 = %v, want (-25, 150)", got)
	}
	u.SetRotation(180)
	if got := u.Translation(); got != (Vec2{}) {
		t.Errorf("translation at 180 = %v, want zero", got)
	}
}

func TestUnfoldPaneScales(t *testing.T) {
	u, _ := newTestUnfoldable()
	u.Unfold(newTestView(50, 500, 100, 60), newTestView(0, 0, 300, 400))

	u.SetRotation(90) // stage 0.5
	cover, _ := u.Pane(0)
	details, _ := u.Pane(1)

	// Cover: 1 -> 300/100 as stage -> 1.
	if !approxEqual(cover.Scale(), 2, epsilon) {
		t.Errorf("cover scale = %v, want 2", cover.Scale())
	}
	// Details: 100/300 -> 1 as stage -> 1.
	if !approxEqual(details.Scale(), 1-(1-1.0/3)*0.5, epsilon) {
		t.Errorf("details scale = %v", details.Scale())
	}
	// The hinge offset has decayed to zero by stage 0.5.
	if details.RollingDistance() != 0 {
		t.Errorf("details rolling = %v, want 0", details.RollingDistance())
	}

	u.SetRotation(0)
	cover, _ = u.Pane(0)
	details, _ = u.Pane(1)
	if cover.Scale() != 1 {
		t.Errorf("cover scale at 0 = %v, want 1", cover.Scale())
	}
	if !approxEqual(details.Scale(), 1.0/3, epsilon) {
		t.Errorf("details scale at 0 = %v, want 1/3", details.Scale())
	}
	// dH = 400/2 - 60*300/100 = 20; rolling = -dH at stage 0.
	if !approxEqual(details.RollingDistance(), -20, epsilon) {
		t.Errorf("details rolling at 0 = %v, want -20", details.RollingDistance())
	}

	u.SetRotation(45) // stage 0.25: half of the way to zero
	details, _ = u.Pane(1)
	if !approxEqual(details.RollingDistance(), -10, epsilon) {
		t.Errorf("details rolling at 45 = %v, want -10", details.RollingDistance())
	}
}

func TestUnfoldZeroWidthScalesToIdentity(t *testing.T) {
	u, _ := newTestUnfoldable()
	u.Unfold(newTestView(0, 0, 0, 0), newTestView(0, 0, 0, 0))
	u.SetRotation(90)
	cover, _ := u.Pane(0)
	details, _ := u.Pane(1)
	if cover.Scale() != 1 || details.Scale() != 1 {
		t.Errorf("scales = %v, %v; want identity", cover.Scale(), details.Scale())
	}
}

func TestUnfoldCoverBounds(t *testing.T) {
	u, _ := newTestUnfoldable()
	u.Unfold(newTestView(50, 500, 100, 60), newTestView(0, 0, 300, 400))
	u.SetRotation(30)

	cover, _ := u.Pane(0)
	b := cover.VisibleBounds()
	want := image.Rect(100, 200, 200, 260)
	if b == nil || *b != want {
		t.Fatalf("cover visible bounds = %v, want %v", b, want)
	}
	if !cover.Top().Clip().Empty() {
		t.Error("cover lies below the hinge; top half should clip away")
	}
	if cover.Bottom().Clip() != want {
		t.Errorf("bottom clip = %v, want %v", cover.Bottom().Clip(), want)
	}
}

func TestUnfoldSamePairIsNoop(t *testing.T) {
	u, _ := newTestUnfoldable()
	cover := newTestView(50, 500, 100, 60)
	details := newTestView(0, 0, 300, 400)
	u.Unfold(cover, details)
	u.UpdateRotation(60, true)

	u.Unfold(cover, details)
	if u.IsSettling() {
		t.Error("unfolding the same pair again should not restart the animation")
	}
}

func TestUnfoldQueuedPair(t *testing.T) {
	u, l := newTestUnfoldable()
	cover1 := newTestView(50, 500, 100, 60)
	details1 := newTestView(0, 0, 300, 400)
	cover2 := newTestView(10, 20, 80, 40)
	details2 := newTestView(0, 0, 300, 400)

	u.Unfold(cover1, details1)
	u.UpdateRotation(180, true)

	u.Unfold(cover2, details2)
	if u.Cover() != cover1 {
		t.Fatal("current pair should stay until fold-back completes")
	}
	target, _ := u.SettleTarget()
	if target != 0 {
		t.Fatalf("expected fold-back toward 0, target %v", target)
	}

	const dt = 1.0 / 60
	for i := 0; i < 120 && u.Cover() == cover1; i++ {
		u.Update(dt)
	}
	if u.Cover() != cover2 || u.Details() != details2 {
		t.Fatal("queued pair should start unfolding after fold-back")
	}
	if target, _ = u.SettleTarget(); target != 180 {
		t.Errorf("queued unfold target = %v, want 180", target)
	}

	for i := 0; i < 120 && u.IsSettling(); i++ {
		u.Update(dt)
	}
	if !u.IsUnfolded() {
		t.Errorf("state = %v, want unfolded", u.State())
	}

	want := []string{"unfolding", "unfolded", "folding-back", "folded-back", "unfolding", "unfolded"}
	if !equalStrings(l.events, want) {
		t.Errorf("events = %v, want %v", l.events, want)
	}
}

func TestUnfoldNilViewPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil view")
		}
	}()
	u, _ := newTestUnfoldable()
	u.Unfold(nil, newTestView(0, 0, 10, 10))
}

func TestChangeCover(t *testing.T) {
	u, _ := newTestUnfoldable()
	u.ChangeCover(newTestView(0, 0, 10, 10))
	if u.Cover() != nil {
		t.Error("ChangeCover without an unfold should do nothing")
	}

	u.Unfold(newTestView(50, 500, 100, 60), newTestView(0, 0, 300, 400))
	next := newTestView(20, 600, 150, 60)
	u.ChangeCover(next)
	if u.Cover() != next {
		t.Fatal("cover not replaced")
	}
	u.SetRotation(0)
	// Cover center x 95, top 600; details center (150, 200).
	if got := u.Translation(); got != (Vec2{X: -55, Y: 400}) {
		t.Errorf("translation = %v, want (-55, 400)", got)
	}
}

func TestFoldingFuncsNilSafe(t *testing.T) {
	var called int
	u, _ := newTestUnfoldable()
	u.SetFoldingListener(FoldingFuncs{Unfolded: func(*Unfoldable) { called++ }})
	u.Unfold(newTestView(50, 500, 100, 60), newTestView(0, 0, 300, 400))
	u.UpdateRotation(90, true)
	u.UpdateRotation(180, true)
	if called != 1 {
		t.Errorf("Unfolded called %d times, want 1", called)
	}
}

func TestUnfoldDraw(t *testing.T) {
	u, _ := newTestUnfoldable()
	cover := newTestView(50, 500, 100, 60)
	details := newTestView(0, 0, 300, 400)
	u.Unfold(cover, details)
	u.SetRotation(120)

	dst := ebiten.NewImage(300, 400)
	u.Draw(dst)
	if cover.draws != 1 || details.draws != 1 {
		t.Errorf("draws: cover %d details %d, want 1 each", cover.draws, details.draws)
	}
	if u.pool.Outstanding() != 0 {
		t.Errorf("pooled canvases leaked: %d", u.pool.Outstanding())
	}
}
