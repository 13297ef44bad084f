package fold

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestSimpleShadingAlpha(t *testing.T) {
	s := NewSimpleShading(0.8)
	tests := []struct {
		rotation float64
		g        Gravity
		want     float64
	}{
		{0, GravityTop, 0},
		{0, GravityBottom, 0},
		{45, GravityBottom, 0.4},
		{45, GravityTop, 0},
		{-45, GravityTop, 0.4},
		{-45, GravityBottom, 0},
		{90, GravityBottom, 0},
		{-135, GravityBottom, 0},
	}
	for _, tt := range tests {
		got := s.Alpha(tt.rotation, tt.g)
		if !approxEqual(got, tt.want, epsilon) {
			t.Errorf("Alpha(%v, %v) = %v, want %v", tt.rotation, tt.g, got, tt.want)
		}
	}
}

func TestNewSimpleShadingClamps(t *testing.T) {
	if s := NewSimpleShading(2); s.MaxAlpha != 1 {
		t.Errorf("MaxAlpha = %v, want 1", s.MaxAlpha)
	}
	if s := NewSimpleShading(-1); s.MaxAlpha != 0 {
		t.Errorf("MaxAlpha = %v, want 0", s.MaxAlpha)
	}
	if s := NewSimpleShading(0.5); s.Color != ColorBlack {
		t.Errorf("Color = %v, want black", s.Color)
	}
}

func TestSimpleShadingPostDraw(t *testing.T) {
	s := NewSimpleShading(1)
	dst := ebiten.NewImage(10, 10)
	// Flat, empty and edge-on inputs must all be safe no-ops or plain fills.
	s.PreDraw(dst, image.Rect(0, 0, 10, 10), 45, GravityBottom)
	s.PostDraw(dst, image.Rect(0, 0, 10, 10), 0, GravityBottom)
	s.PostDraw(dst, image.Rectangle{}, 45, GravityBottom)
	s.PostDraw(dst, image.Rect(0, 5, 10, 10), 45, GravityBottom)
}

func TestSetShadingNilDisables(t *testing.T) {
	f, _ := newTestFoldable(2)
	f.SetShading(nil)
	f.SetRotation(45)
	f.Draw(ebiten.NewImage(100, 200))
	if f.pool.Outstanding() != 0 {
		t.Errorf("outstanding canvases = %d", f.pool.Outstanding())
	}
}
