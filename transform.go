package fold

import "math"

// hingeProjection maps pane-space points of a half rotated about the
// horizontal line through the pane center onto the destination.
//
// A rotated half swings toward the viewer: a point dy pixels from the hinge
// ends up dy*cos(θ) from it and |dy|*sin(θ) closer to the camera, and the
// perspective divide widens it by camera/(camera - z). The pane scale is
// applied about the pane center, then the hinge offset and origin.
type hingeProjection struct {
	pivotX, pivotY float64
	sin, cos       float64
	camera         float64 // pixels
	scale          float64
	tx, ty         float64
}

// newHingeProjection builds the projection for a w×h pane half rotated by
// rotation degrees. cameraDistance is measured in pane heights.
func newHingeProjection(w, h int, rotation, cameraDistance, scale float64, origin Vec2, offset int) hingeProjection {
	sin, cos := math.Sincos(rotation * math.Pi / 180)
	return hingeProjection{
		pivotX: float64(w) / 2,
		pivotY: float64(h) / 2,
		sin:    math.Abs(sin),
		cos:    cos,
		camera: cameraDistance * float64(h),
		scale:  scale,
		tx:     origin.X,
		ty:     origin.Y + float64(offset),
	}
}

// project maps pane-space (x, y) to destination coordinates.
func (p hingeProjection) project(x, y float64) (float64, float64) {
	dx := x - p.pivotX
	dy := y - p.pivotY

	k := 1.0
	if z := math.Abs(dy) * p.sin; z != 0 {
		if d := p.camera - z; d > 0 {
			k = p.camera / d
		}
	}

	sx := p.pivotX + dx*k*p.scale + p.tx
	sy := p.pivotY + dy*p.cos*k*p.scale + p.ty
	return sx, sy
}
