package fold

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Overlay prints fold diagnostics (rotation, page, settle target, pane
// cache and FPS) in the top-left corner. The text is refreshed about twice a
// second.
type Overlay struct {
	img        *ebiten.Image
	text       string
	lastUpdate float64
}

// NewOverlay creates a debug overlay.
func NewOverlay() *Overlay {
	// 200x80 fits six lines of the debug font.
	return &Overlay{img: ebiten.NewImage(200, 80)}
}

// Text returns the last rendered overlay text.
func (o *Overlay) Text() string { return o.text }

// Update refreshes the overlay text from f and, when u is non-nil, its
// transition state.
func (o *Overlay) Update(dt float64, f *Foldable, u *Unfoldable) {
	o.lastUpdate += dt
	if o.text != "" && o.lastUpdate < 0.5 {
		return
	}
	o.lastUpdate = 0
	o.text = overlayText(f, u)

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
}

// Draw draws the overlay at the top-left corner of dst.
func (o *Overlay) Draw(dst *ebiten.Image) {
	dst.DrawImage(o.img, nil)
}

func overlayText(f *Foldable, u *Unfoldable) string {
	target := "-"
	if t, ok := f.SettleTarget(); ok {
		target = fmt.Sprintf("%.0f", t)
	}
	s := fmt.Sprintf("rot: %.1f page: %d/%d\nsettle: %s drag: %t\npanes: %d pooled: %d\nFPS: %.1f",
		f.FoldRotation(), f.PageIndex(), f.Count(),
		target, f.IsDragging(),
		f.cache.Len(), f.cache.Pooled(),
		ebiten.ActualFPS())
	if u != nil {
		s += fmt.Sprintf("\nstate: %s stage: %.2f", u.State(), u.Stage())
	}
	return s
}
