package fold

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// ImageSurface is a Surface backed by a fixed image, stretched to the pane
// size it is drawn into. It optionally carries a screen rectangle so it can
// serve as an unfold View.
type ImageSurface struct {
	image  *ebiten.Image
	w, h   int
	bounds Rect

	// Background, when its alpha is non-zero, fills the surface before the
	// image is drawn.
	Background Color

	detached int
}

// NewImageSurface wraps img. The surface reports the image's size.
func NewImageSurface(img *ebiten.Image) *ImageSurface {
	b := img.Bounds()
	return &ImageSurface{
		image:  img,
		w:      b.Dx(),
		h:      b.Dy(),
		bounds: Rect{Width: float64(b.Dx()), Height: float64(b.Dy())},
	}
}

// Image returns the underlying image.
func (s *ImageSurface) Image() *ebiten.Image { return s.image }

// Size returns the surface size in pixels.
func (s *ImageSurface) Size() (w, h int) { return s.w, s.h }

// SetSize overrides the reported size. The image is stretched to fit.
func (s *ImageSurface) SetSize(w, h int) {
	s.w, s.h = max(w, 0), max(h, 0)
}

// Bounds returns the surface's screen rectangle.
func (s *ImageSurface) Bounds() Rect { return s.bounds }

// SetBounds sets the screen rectangle reported to an Unfoldable.
func (s *ImageSurface) SetBounds(r Rect) { s.bounds = r }

// Detach counts unbinds; used to observe cache recycling.
func (s *ImageSurface) Detach() { s.detached++ }

// Detached returns how many times a pane has unbound this surface.
func (s *ImageSurface) Detached() int { return s.detached }

// Draw draws the image scaled to the surface size at dst's origin.
func (s *ImageSurface) Draw(dst *ebiten.Image) {
	if s.w <= 0 || s.h <= 0 {
		return
	}
	if s.Background.A > 0 {
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(float64(s.w), float64(s.h))
		op.ColorScale.ScaleWithColor(s.Background.toRGBA())
		dst.DrawImage(WhitePixel, &op)
	}
	if s.image == nil {
		return
	}
	ib := s.image.Bounds()
	if ib.Empty() {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(s.w)/float64(ib.Dx()), float64(s.h)/float64(ib.Dy()))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(s.image, &op)
}

// FillSurface is a solid-color Surface, useful as a placeholder page.
type FillSurface struct {
	Color Color
	W, H  int
}

// Size returns the surface size in pixels.
func (s *FillSurface) Size() (w, h int) { return s.W, s.H }

// Draw fills the surface rectangle.
func (s *FillSurface) Draw(dst *ebiten.Image) {
	r := image.Rect(0, 0, s.W, s.H).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	dst.SubImage(r).(*ebiten.Image).Fill(s.Color.toRGBA())
}

// toRGBA converts a Color to premultiplied 8-bit RGBA.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
