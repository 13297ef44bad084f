package fold

import (
	"image"
	"math"
)

// Fold geometry is pure: every function here depends only on its arguments.

// NormalizeRotation maps any angle in degrees into (-180, 180].
func NormalizeRotation(rotation float64) float64 {
	p := math.Mod(rotation, 360)
	if p < 0 {
		p += 360
	}
	if p > 180 {
		p -= 360
	}
	return p
}

// HalfVisible reports whether a pane half is visible at the given local
// rotation. A top half is hidden on (-180, -90] and at 180; a bottom half is
// hidden on [90, 180].
func HalfVisible(rotation float64, g Gravity) bool {
	p := NormalizeRotation(rotation)
	if g == GravityTop {
		return !(p <= -90 || p == 180)
	}
	return p < 90
}

// HalfRotation returns the hinge rotation applied to a pane half. The top
// half rotates only inside (-90, 0), the bottom half only inside (0, 90);
// outside those windows the half lies flat.
func HalfRotation(rotation float64, g Gravity) float64 {
	p := NormalizeRotation(rotation)
	if g == GravityTop {
		if p > -90 && p < 0 {
			return p
		}
		return 0
	}
	if p > 0 && p < 90 {
		return p
	}
	return 0
}

// ShadingIntensity returns the darkening intensity in [0, 1) for a half at
// the given local rotation: |rotation|/90 inside the half's rotation window,
// zero otherwise.
func ShadingIntensity(rotation float64, g Gravity) float64 {
	return math.Abs(HalfRotation(rotation, g)) / 90
}

// ClipRect returns the rows of a w×h pane surface that belong to the half,
// given its clipping factor. When visible is non-nil the result is
// intersected with it; an empty intersection yields the zero rectangle.
func ClipRect(g Gravity, w, h int, factor float64, visible *image.Rectangle) image.Rectangle {
	if w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	var top, bottom int
	if g == GravityTop {
		top = 0
		bottom = int(float64(h)*factor + 0.5)
	} else {
		top = int(float64(h)*(1-factor) - 0.5)
		bottom = h
	}
	r := image.Rect(0, top, w, bottom)
	if visible != nil {
		r = r.Intersect(*visible)
		if r.Empty() {
			return image.Rectangle{}
		}
	}
	return r
}

// ClippingFactor returns the half's clipping factor for a hinge translated by
// distance along the hinge normal. height is the full pane height. The
// top factor is (h2-distance)/h2/2 with h2 = height/2 (0.5 when h2 is zero);
// the bottom factor is its complement, so the seam tracks the hinge.
func ClippingFactor(g Gravity, height int, distance float64) float64 {
	h2 := height / 2
	top := 0.5
	if h2 != 0 {
		top = (float64(h2) - distance) / float64(h2) / 2
	}
	if g == GravityTop {
		return top
	}
	return 1 - top
}

// hingeOffset is the pixel translation applied to a half along the hinge
// normal for the given rolling distance and pane scale.
func hingeOffset(distance, scale float64) int {
	return int(distance*scale + 0.5)
}
