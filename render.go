package fold

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// hingeStrips is the number of horizontal strips a rotated half is split
// into. Perspective only varies along y, so strips keep the affine texture
// mapping of each triangle close to the projected surface.
const hingeStrips = 16

// meshBuffers holds vertex and index scratch reused across frames.
type meshBuffers struct {
	verts []ebiten.Vertex
	inds  []uint16
}

// Draw composites the current pages into dst with the pane's top-left at
// the origin.
func (f *Foldable) Draw(dst *ebiten.Image) {
	f.draw(dst, Vec2{})
}

// DrawAt composites the current pages with the pane's top-left at (x, y).
func (f *Foldable) DrawAt(dst *ebiten.Image, x, y float64) {
	f.draw(dst, Vec2{X: x, Y: y})
}

func (f *Foldable) draw(dst *ebiten.Image, origin Vec2) {
	var stats debugStats
	var start time.Time
	if f.debug {
		start = time.Now()
	}

	for _, p := range [2]*Pane{f.first, f.second} {
		if p == nil || p.surface == nil {
			continue
		}
		f.drawPane(dst, p, origin, &stats)
	}

	if f.debug {
		stats.drawTime = time.Since(start)
		f.debugLog(stats)
	}

	f.flushSnapshots(dst)
}

// drawPane captures the pane's surface into a pooled canvas and composites
// it: flat when at rest, half by half while rotating.
func (f *Foldable) drawPane(dst *ebiten.Image, p *Pane, origin Vec2, stats *debugStats) {
	w, h := p.Size()
	if w <= 0 || h <= 0 {
		return
	}
	if p.inTransformation && !p.top.visible && !p.bottom.visible {
		return
	}

	var captureStart time.Time
	if f.debug {
		captureStart = time.Now()
	}
	canvas := f.pool.Acquire(w, h)
	p.surface.Draw(canvas)
	if f.debug {
		stats.captureTime += time.Since(captureStart)
	}
	stats.panes++

	if !p.inTransformation {
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(origin.X, origin.Y)
		dst.DrawImage(canvasRegion(canvas, w, h), &op)
	} else {
		for _, half := range [2]*Half{p.top, p.bottom} {
			if f.drawHalf(dst, canvas, w, h, half, origin) {
				stats.halves++
			}
		}
	}

	f.pool.Release(canvas)
}

// drawHalf renders one half with shading into a layer and projects the
// layer onto dst. Returns false when the half is hidden or clipped away.
func (f *Foldable) drawHalf(dst, content *ebiten.Image, w, h int, half *Half, origin Vec2) bool {
	clip := half.clip
	if !half.visible || clip.Empty() {
		return false
	}

	layer := f.pool.Acquire(w, h)
	if f.shading != nil {
		f.shading.PreDraw(layer, clip, half.rotation, half.gravity)
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(clip.Min.X), float64(clip.Min.Y))
	layer.DrawImage(content.SubImage(clip).(*ebiten.Image), &op)
	if f.shading != nil {
		f.shading.PostDraw(layer, clip, half.rotation, half.gravity)
	}

	proj := newHingeProjection(w, h, half.applied, f.cfg.CameraDistance, half.scale, origin, half.offset)
	f.mesh.verts, f.mesh.inds = appendHalfMesh(f.mesh.verts[:0], f.mesh.inds[:0], clip, proj)

	var top ebiten.DrawTrianglesOptions
	top.Filter = ebiten.FilterLinear
	dst.DrawTriangles(f.mesh.verts, f.mesh.inds, layer, &top)

	f.pool.Release(layer)
	return true
}

// appendHalfMesh appends a strip mesh covering clip, with source
// coordinates in pane space and destination coordinates from proj.
func appendHalfMesh(verts []ebiten.Vertex, inds []uint16, clip image.Rectangle, proj hingeProjection) ([]ebiten.Vertex, []uint16) {
	x0 := float64(clip.Min.X)
	x1 := float64(clip.Max.X)
	y0 := float64(clip.Min.Y)
	dy := float64(clip.Dy()) / hingeStrips

	base := uint16(len(verts))
	for i := 0; i <= hingeStrips; i++ {
		y := y0 + dy*float64(i)
		if i == hingeStrips {
			y = float64(clip.Max.Y)
		}
		lx, ly := proj.project(x0, y)
		rx, ry := proj.project(x1, y)
		verts = append(verts,
			ebiten.Vertex{
				DstX: float32(lx), DstY: float32(ly),
				SrcX: float32(x0), SrcY: float32(y),
				ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
			},
			ebiten.Vertex{
				DstX: float32(rx), DstY: float32(ry),
				SrcX: float32(x1), SrcY: float32(y),
				ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
			},
		)
	}
	for i := 0; i < hingeStrips; i++ {
		b := base + uint16(i*2)
		inds = append(inds, b, b+1, b+2, b+1, b+3, b+2)
	}
	return verts, inds
}
