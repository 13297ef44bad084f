package fold

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Shading draws effects on a pane half while it rotates. PreDraw runs
// before the half's content is drawn into dst and PostDraw after it; bounds
// is the half's clip rectangle and rotation its normalized local rotation.
// Implementations must not mutate the Foldable.
type Shading interface {
	PreDraw(dst *ebiten.Image, bounds image.Rectangle, rotation float64, g Gravity)
	PostDraw(dst *ebiten.Image, bounds image.Rectangle, rotation float64, g Gravity)
}

// SimpleShading darkens a half in proportion to how far it has rotated.
type SimpleShading struct {
	// Color of the overlay at full intensity; its alpha is scaled by
	// MaxAlpha and the rotation.
	Color Color
	// MaxAlpha is the overlay opacity when a half is edge-on.
	MaxAlpha float64
}

// NewSimpleShading returns a black overlay that reaches maxAlpha when a
// half is edge-on.
func NewSimpleShading(maxAlpha float64) *SimpleShading {
	return &SimpleShading{Color: ColorBlack, MaxAlpha: clamp01(maxAlpha)}
}

// PreDraw is a no-op.
func (s *SimpleShading) PreDraw(dst *ebiten.Image, bounds image.Rectangle, rotation float64, g Gravity) {
}

// PostDraw fills bounds with the overlay color.
func (s *SimpleShading) PostDraw(dst *ebiten.Image, bounds image.Rectangle, rotation float64, g Gravity) {
	alpha := s.Alpha(rotation, g)
	if alpha <= 0 || bounds.Empty() {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(bounds.Dx()), float64(bounds.Dy()))
	op.GeoM.Translate(float64(bounds.Min.X), float64(bounds.Min.Y))
	a := float32(alpha)
	op.ColorScale.Scale(float32(s.Color.R)*a, float32(s.Color.G)*a, float32(s.Color.B)*a, a)
	dst.DrawImage(WhitePixel, &op)
}

// Alpha returns the overlay opacity for a half at the given rotation.
func (s *SimpleShading) Alpha(rotation float64, g Gravity) float64 {
	return s.MaxAlpha * ShadingIntensity(rotation, g)
}
