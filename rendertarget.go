package fold

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// canvasPool manages reusable offscreen images keyed by power-of-two
// dimensions. Pane content and half captures are drawn into these every
// frame while a fold is in motion; after warmup Acquire/Release do not
// allocate.
type canvasPool struct {
	buckets  map[uint64][]*ebiten.Image
	acquired int
}

// poolKey packs power-of-two width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// Acquire returns a cleared offscreen image with at least (w, h) pixels.
// Only the top-left (w, h) region should be sampled; use canvasRegion.
func (p *canvasPool) Acquire(w, h int) *ebiten.Image {
	pw := nextPowerOfTwo(w)
	ph := nextPowerOfTwo(h)
	key := poolKey(pw, ph)
	p.acquired++

	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}

	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, pw, ph),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// Release returns an image to the pool. It is cleared on the next Acquire.
func (p *canvasPool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())

	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
	p.acquired--
}

// Idle returns the number of pooled images waiting for reuse.
func (p *canvasPool) Idle() int {
	n := 0
	for _, stack := range p.buckets {
		n += len(stack)
	}
	return n
}

// Outstanding returns the number of acquired images not yet released.
func (p *canvasPool) Outstanding() int { return p.acquired }

// canvasRegion returns the (w, h) sub-image of a pooled canvas.
func canvasRegion(img *ebiten.Image, w, h int) *ebiten.Image {
	return img.SubImage(image.Rect(0, 0, w, h)).(*ebiten.Image)
}

// nextPowerOfTwo returns the smallest power of two >= n (minimum 1).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}
