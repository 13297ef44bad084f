package fold

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Surface is externally owned pane content. The engine only asks for its
// natural size and, when compositing, for it to draw itself.
type Surface interface {
	Size() (w, h int)
	Draw(dst *ebiten.Image)
}

// Detacher is implemented by surfaces that want to know when a pane unbinds
// them (eviction or cache invalidation).
type Detacher interface {
	Detach()
}

// Provider supplies pane content by page index.
type Provider interface {
	Count() int
	Bind(index int) Surface
}

// autoScaleFactor approximates how much a half grows toward the viewer at
// a given rotation (camera distance 48, magic factor 8/48).
const autoScaleFactor = 8.0 / 48.0

// Half is one hinge half of a pane. Halves are owned by exactly one Pane.
type Half struct {
	gravity  Gravity
	factor   float64
	rotation float64 // normalized local rotation
	applied  float64 // hinge rotation actually applied
	visible  bool
	offset   int // translation along the hinge normal, in pixels
	scale    float64

	w, h   int
	bounds *image.Rectangle
	clip   image.Rectangle
}

func newHalf(g Gravity) *Half {
	return &Half{gravity: g, factor: 0.5, visible: true, scale: 1}
}

// Gravity returns which half this is.
func (h *Half) Gravity() Gravity { return h.gravity }

// ClippingFactor returns the fraction of the pane height split off for this half.
func (h *Half) ClippingFactor() float64 { return h.factor }

// Rotation returns the normalized local rotation last applied, in (-180, 180].
func (h *Half) Rotation() float64 { return h.rotation }

// AppliedRotation returns the hinge rotation in degrees; zero when flat.
func (h *Half) AppliedRotation() float64 { return h.applied }

// Visible reports whether the half is drawn at its current rotation.
func (h *Half) Visible() bool { return h.visible }

// Offset returns the translation along the hinge normal in pixels.
func (h *Half) Offset() int { return h.offset }

// Scale returns the uniform scale applied to the half.
func (h *Half) Scale() float64 { return h.scale }

// Clip returns the surface rows drawn for this half.
func (h *Half) Clip() image.Rectangle { return h.clip }

func (h *Half) applyRotation(rotation float64) {
	h.rotation = NormalizeRotation(rotation)
	h.applied = HalfRotation(h.rotation, h.gravity)
	h.visible = HalfVisible(h.rotation, h.gravity)
}

func (h *Half) applyRollingDistance(distance, scale float64) {
	h.offset = hingeOffset(distance, scale)
	h.factor = ClippingFactor(h.gravity, h.h, distance)
	h.updateClip()
}

func (h *Half) setSize(w, hh int) {
	h.w, h.h = w, hh
	h.updateClip()
}

func (h *Half) setVisibleBounds(r *image.Rectangle) {
	h.bounds = r
	h.updateClip()
}

func (h *Half) updateClip() {
	h.clip = ClipRect(h.gravity, h.w, h.h, h.factor, h.bounds)
}

// Pane is the visual state of one content item: uniform scale, hinge
// translation, and the two hinge halves. A pane's identity is its page index
// while it is bound.
type Pane struct {
	index    int
	surface  Surface
	rotation float64
	scale    float64
	rolling  float64

	w, h             int
	autoScale        bool
	inTransformation bool
	bounds           *image.Rectangle

	top, bottom *Half
}

// paneDefaults sets the default field values shared by all constructors.
func paneDefaults(p *Pane) {
	p.index = -1
	p.scale = 1
	p.top = newHalf(GravityTop)
	p.bottom = newHalf(GravityBottom)
}

// NewPane creates an unbound pane of the given size.
func NewPane(w, h int) *Pane {
	p := &Pane{}
	paneDefaults(p)
	p.SetSize(w, h)
	return p
}

// Index returns the bound page index, or -1 when unbound.
func (p *Pane) Index() int { return p.index }

// Surface returns the bound content, or nil.
func (p *Pane) Surface() Surface { return p.surface }

// Top returns the top half.
func (p *Pane) Top() *Half { return p.top }

// Bottom returns the bottom half.
func (p *Pane) Bottom() *Half { return p.bottom }

// FoldRotation returns the pane's local rotation as last set.
func (p *Pane) FoldRotation() float64 { return p.rotation }

// Scale returns the pane's uniform scale.
func (p *Pane) Scale() float64 { return p.scale }

// RollingDistance returns the hinge-normal translation.
func (p *Pane) RollingDistance() float64 { return p.rolling }

// InTransformation reports whether the pane is drawn from its halves
// (rotation != 0) rather than flat.
func (p *Pane) InTransformation() bool { return p.inTransformation }

// Size returns the pane size in pixels.
func (p *Pane) Size() (w, h int) { return p.w, p.h }

// VisibleBounds returns the visible-bounds restriction, or nil.
func (p *Pane) VisibleBounds() *image.Rectangle { return p.bounds }

// SetFoldRotation applies a local rotation to both halves. With auto-scale
// enabled the pane shrinks as the halves rotate toward the viewer.
func (p *Pane) SetFoldRotation(rotation float64) {
	p.rotation = rotation
	p.top.applyRotation(rotation)
	p.bottom.applyRotation(rotation)
	p.inTransformation = rotation != 0

	if p.autoScale {
		scale := 1.0
		if p.w > 0 {
			dw := float64(p.h) * math.Abs(math.Sin(rotation*math.Pi/180)) * autoScaleFactor
			scale = float64(p.w) / (float64(p.w) + dw)
		}
		p.SetScale(scale)
	}
}

// SetScale sets the uniform scale of the pane and both halves.
func (p *Pane) SetScale(scale float64) {
	p.scale = scale
	p.top.scale = scale
	p.bottom.scale = scale
}

// SetRollingDistance translates the hinge along its normal and moves the
// half seam with it.
func (p *Pane) SetRollingDistance(distance float64) {
	p.rolling = distance
	p.top.applyRollingDistance(distance, p.scale)
	p.bottom.applyRollingDistance(distance, p.scale)
}

// SetVisibleBounds restricts both halves to r. Nil removes the restriction.
func (p *Pane) SetVisibleBounds(r *image.Rectangle) {
	if r != nil {
		c := *r
		r = &c
	}
	p.bounds = r
	p.top.setVisibleBounds(r)
	p.bottom.setVisibleBounds(r)
}

// SetAutoScale enables scaling the pane down while it rotates.
func (p *Pane) SetAutoScale(enabled bool) {
	p.autoScale = enabled
}

// SetSize resizes the pane and recomputes both clip rectangles.
func (p *Pane) SetSize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	p.w, p.h = w, h
	p.top.setSize(w, h)
	p.bottom.setSize(w, h)
}

// bind attaches content for a page index. A recycled pane starts from the
// default scale, hinge position and bounds.
func (p *Pane) bind(index int, s Surface) {
	p.index = index
	p.surface = s
	p.SetScale(1)
	p.SetRollingDistance(0)
	p.SetVisibleBounds(nil)
}

// unbind detaches the current content, notifying it when it cares.
func (p *Pane) unbind() {
	if d, ok := p.surface.(Detacher); ok {
		d.Detach()
	}
	p.surface = nil
	p.index = -1
}
