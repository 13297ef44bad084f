package fold

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// View is an on-screen element that can take part in an unfold. Views are
// compared by identity, so implementations should be pointer types.
type View interface {
	Surface
	// Bounds returns the view's current screen rectangle.
	Bounds() Rect
}

// FoldingListener observes an Unfoldable's transitions.
type FoldingListener interface {
	OnUnfolding(u *Unfoldable)
	OnUnfolded(u *Unfoldable)
	OnFoldingBack(u *Unfoldable)
	OnFoldedBack(u *Unfoldable)
	OnFoldProgress(u *Unfoldable, stage float64)
}

// FoldingFuncs adapts plain functions to FoldingListener. Nil fields are
// skipped.
type FoldingFuncs struct {
	Unfolding   func(u *Unfoldable)
	Unfolded    func(u *Unfoldable)
	FoldingBack func(u *Unfoldable)
	FoldedBack  func(u *Unfoldable)
	Progress    func(u *Unfoldable, stage float64)
}

func (l FoldingFuncs) OnUnfolding(u *Unfoldable) {
	if l.Unfolding != nil {
		l.Unfolding(u)
	}
}

func (l FoldingFuncs) OnUnfolded(u *Unfoldable) {
	if l.Unfolded != nil {
		l.Unfolded(u)
	}
}

func (l FoldingFuncs) OnFoldingBack(u *Unfoldable) {
	if l.FoldingBack != nil {
		l.FoldingBack(u)
	}
}

func (l FoldingFuncs) OnFoldedBack(u *Unfoldable) {
	if l.FoldedBack != nil {
		l.FoldedBack(u)
	}
}

func (l FoldingFuncs) OnFoldProgress(u *Unfoldable, stage float64) {
	if l.Progress != nil {
		l.Progress(u, stage)
	}
}

// Unfoldable morphs between a cover view and a details view with a single
// fold. It is a two-page Foldable: page 0 shows the cover (centered in the
// bottom half of the pane), page 1 the details. While the fold plays, the
// whole pane travels from the cover's screen position to the details'
// position and each page scales between the two widths.
type Unfoldable struct {
	*Foldable

	cover, details       View
	coverPos, detailsPos Rect

	scheduledCover, scheduledDetails View

	state        TransitionState
	lastRotation float64
	stage        float64
	translation  Vec2

	listener FoldingListener
}

// NewUnfoldable creates an idle Unfoldable.
func NewUnfoldable(cfg Config) *Unfoldable {
	u := &Unfoldable{Foldable: New(cfg)}
	u.paneHook = u.onPaneRotation
	u.rotationHook = u.onRotation
	return u
}

// SetFoldingListener sets the transition listener. Nil removes it.
func (u *Unfoldable) SetFoldingListener(l FoldingListener) {
	u.listener = l
}

// State returns the current transition state.
func (u *Unfoldable) State() TransitionState { return u.state }

// IsUnfolding reports whether the rotation last moved toward the details.
func (u *Unfoldable) IsUnfolding() bool { return u.state == StateUnfolding }

// IsFoldingBack reports whether the rotation last moved toward the cover.
func (u *Unfoldable) IsFoldingBack() bool { return u.state == StateFoldingBack }

// IsUnfolded reports whether the details are fully shown.
func (u *Unfoldable) IsUnfolded() bool { return u.state == StateUnfolded }

// Stage returns the transition progress: 0 shows only the cover, 1 only the
// details.
func (u *Unfoldable) Stage() float64 { return u.stage }

// Translation returns the offset applied to the whole fold this frame.
func (u *Unfoldable) Translation() Vec2 { return u.translation }

// Cover returns the cover view taking part in the transition, or nil.
func (u *Unfoldable) Cover() View { return u.cover }

// Details returns the details view taking part in the transition, or nil.
func (u *Unfoldable) Details() View { return u.details }

// Unfold starts unfolding from cover to details. If a different pair is
// currently shown, the current pair folds back first and the new pair
// unfolds once that completes.
func (u *Unfoldable) Unfold(cover, details View) {
	if cover == nil || details == nil {
		panic("fold: Unfold requires a cover and a details view")
	}
	if u.cover == cover && u.details == details {
		return
	}
	if (u.cover != nil && u.cover != cover) || (u.details != nil && u.details != details) {
		u.scheduledCover = cover
		u.scheduledDetails = details
		u.debugf("unfold: new views queued until fold-back completes")
		u.FoldBack()
		return
	}

	u.cover = cover
	u.coverPos = cover.Bounds()
	u.details = details
	u.detailsPos = details.Bounds()

	u.SetProvider(unfoldProvider{u})
	u.ScrollToPosition(1)
}

// FoldBack animates back to the cover.
func (u *Unfoldable) FoldBack() {
	u.ScrollToPosition(0)
}

// ChangeCover swaps the cover view in the middle of a transition. No-op
// when nothing is unfolded or the cover is unchanged.
func (u *Unfoldable) ChangeCover(cover View) {
	if u.cover == nil || u.cover == cover || cover == nil {
		return
	}
	u.cover = cover
	u.coverPos = cover.Bounds()
	u.Invalidate()
}

// onRotation runs after every rotation update: it moves the fold between
// the two screen positions and advances the transition state.
func (u *Unfoldable) onRotation() {
	if u.cover == nil || u.details == nil {
		return
	}

	rotation := u.FoldRotation()
	stage := rotation / 180
	u.stage = stage

	fromX := u.coverPos.CenterX()
	toX := u.detailsPos.CenterX()
	fromY := u.coverPos.Y
	toY := u.detailsPos.CenterY()

	// Anchored at the details position: the offset back toward the cover
	// fades out as stage goes to 1.
	u.translation = Vec2{
		X: (fromX - toX) * (1 - stage),
		Y: (fromY - toY) * (1 - stage),
	}

	last := u.lastRotation
	u.lastRotation = rotation

	if u.listener != nil {
		u.listener.OnFoldProgress(u, stage)
	}

	if rotation > last && u.state != StateUnfolding {
		u.setState(StateUnfolding)
		if u.listener != nil {
			u.listener.OnUnfolding(u)
		}
	}

	if rotation < last && u.state != StateFoldingBack {
		u.setState(StateFoldingBack)
		if u.listener != nil {
			u.listener.OnFoldingBack(u)
		}
	}

	if rotation == 180 && u.state != StateUnfolded {
		u.setState(StateUnfolded)
		if u.listener != nil {
			u.listener.OnUnfolded(u)
		}
	}

	if rotation == 0 && u.state == StateFoldingBack {
		u.setState(StateFoldedBack)
		u.onFoldedBack()
		if u.listener != nil {
			u.listener.OnFoldedBack(u)
		}
	}
}

func (u *Unfoldable) setState(s TransitionState) {
	u.debugf("unfold: %s -> %s", u.state, s)
	u.state = s
}

// onFoldedBack releases both views and clears the transition offset. A pair
// queued while folding back starts unfolding immediately.
func (u *Unfoldable) onFoldedBack() {
	u.cover = nil
	u.details = nil
	u.coverPos = Rect{}
	u.detailsPos = Rect{}
	u.translation = Vec2{}
	u.stage = 0

	u.SetProvider(nil)

	if u.scheduledCover != nil && u.scheduledDetails != nil {
		cover, details := u.scheduledCover, u.scheduledDetails
		u.scheduledCover, u.scheduledDetails = nil, nil
		u.Unfold(cover, details)
	}
}

// onPaneRotation scales each page between the cover and details widths and
// slides the details hinge while the first half of the fold plays.
func (u *Unfoldable) onPaneRotation(p *Pane, index int) {
	if u.cover == nil || u.details == nil {
		return
	}

	stage := u.FoldRotation() / 180
	coverW := u.coverPos.Width
	detailsW := u.detailsPos.Width

	if index == 0 {
		r := u.coverRect()
		p.SetVisibleBounds(&r)
		p.SetScale(1 - (1-ratio(detailsW, coverW))*stage)
		return
	}

	p.SetScale(1 - (1-ratio(coverW, detailsW))*(1-stage))

	dH := u.detailsPos.Height/2 - u.coverPos.Height*ratio(detailsW, coverW)
	distance := 0.0
	if stage < 0.5 {
		distance = -dH * (1 - 2*stage)
	}
	p.SetRollingDistance(distance)
}

// coverRect is where the cover sits inside page 0: horizontally centered,
// top edge on the hinge.
func (u *Unfoldable) coverRect() image.Rectangle {
	w, h := u.Size()
	cw := int(u.coverPos.Width)
	ch := int(u.coverPos.Height)
	x := (w - cw) / 2
	y := h / 2
	return image.Rect(x, y, x+cw, y+ch)
}

// ratio returns a/b, or 1 (identity scale) when b is zero.
func ratio(a, b float64) float64 {
	if b == 0 {
		return 1
	}
	return a / b
}

// Draw composites the fold at its current transition offset.
func (u *Unfoldable) Draw(dst *ebiten.Image) {
	u.draw(dst, u.translation)
}

// DrawAt composites the fold with its transition offset added to (x, y).
func (u *Unfoldable) DrawAt(dst *ebiten.Image, x, y float64) {
	u.draw(dst, Vec2{X: x + u.translation.X, Y: y + u.translation.Y})
}

// unfoldProvider serves the cover holder as page 0 and the details as page 1.
type unfoldProvider struct {
	u *Unfoldable
}

func (p unfoldProvider) Count() int { return 2 }

func (p unfoldProvider) Bind(index int) Surface {
	if index == 0 {
		return coverHolder{u: p.u}
	}
	return p.u.details
}

// coverHolder is a pane-sized surface with the cover drawn at coverRect.
type coverHolder struct {
	u *Unfoldable
}

func (h coverHolder) Size() (w, hh int) { return h.u.Size() }

func (h coverHolder) Draw(dst *ebiten.Image) {
	cover := h.u.cover
	if cover == nil {
		return
	}
	r := h.u.coverRect()
	if r.Empty() {
		return
	}
	canvas := h.u.pool.Acquire(r.Dx(), r.Dy())
	cover.Draw(canvas)
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	dst.DrawImage(canvas.SubImage(image.Rect(0, 0, r.Dx(), r.Dy())).(*ebiten.Image), &op)
	h.u.pool.Release(canvas)
}
