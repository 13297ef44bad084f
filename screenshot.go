package fold

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/hajimehoshi/ebiten/v2"
)

// SnapshotFormat selects the encoding of snapshot files.
type SnapshotFormat uint8

const (
	SnapshotPNG  SnapshotFormat = iota // lossless PNG
	SnapshotWebP                       // lossless WebP
)

// Ext returns the file extension for the format, including the dot.
func (f SnapshotFormat) Ext() string {
	if f == SnapshotWebP {
		return ".webp"
	}
	return ".png"
}

// Snapshot queues a labeled capture of the destination image at the end of
// the next Draw. Files are written to SnapshotDir with a timestamped name.
// Safe to call from Update or Draw.
func (f *Foldable) Snapshot(label string) {
	f.snapshotQueue = append(f.snapshotQueue, label)
}

// PendingSnapshots returns the number of queued snapshot labels.
func (f *Foldable) PendingSnapshots() int { return len(f.snapshotQueue) }

// flushSnapshots captures dst for every queued label. Write failures are
// reported on stderr and the snapshot is dropped.
func (f *Foldable) flushSnapshots(dst *ebiten.Image) {
	if len(f.snapshotQueue) == 0 {
		return
	}

	if err := os.MkdirAll(f.SnapshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[fold] snapshot: mkdir %s: %v\n", f.SnapshotDir, err)
		f.snapshotQueue = f.snapshotQueue[:0]
		return
	}

	bounds := dst.Bounds()
	pixels := make([]byte, 4*bounds.Dx()*bounds.Dy())
	dst.ReadPixels(pixels)
	img := unpremultiply(pixels, bounds.Dx(), bounds.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, label := range f.snapshotQueue {
		name := stamp + "_" + sanitizeLabel(label) + f.SnapshotFormat.Ext()
		path := filepath.Join(f.SnapshotDir, name)
		if err := writeSnapshot(path, img, f.SnapshotFormat); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[fold] snapshot: %v\n", err)
			continue
		}
		f.debugf("snapshot: wrote %s", path)
	}

	f.snapshotQueue = f.snapshotQueue[:0]
}

// unpremultiply converts premultiplied RGBA pixels read back from the GPU to
// straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

func writeSnapshot(path string, img image.Image, format SnapshotFormat) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := encodeSnapshot(out, img, format); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}

// encodeSnapshot writes img to w in the given format.
func encodeSnapshot(w io.Writer, img image.Image, format SnapshotFormat) error {
	if format == SnapshotWebP {
		return nativewebp.Encode(w, img, nil)
	}
	return png.Encode(w, img)
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
