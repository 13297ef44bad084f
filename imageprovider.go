package fold

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"io/fs"
	"os"

	_ "github.com/ftrvxmtrx/tga" // register TGA decoder
	"github.com/hajimehoshi/ebiten/v2"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// placeholderColor marks a page whose image failed to load.
var placeholderColor = Color{1, 0, 1, 1}

// ImageProvider serves one image file per page from a file system. Images
// are decoded on first bind, resampled to the target size and kept for the
// provider's lifetime.
type ImageProvider struct {
	fsys  fs.FS
	paths []string
	w, h  int

	images map[int]*ebiten.Image
	errs   map[int]error
}

// NewImageProvider returns a provider over paths in fsys. PNG, JPEG, WebP
// and TGA files are supported.
func NewImageProvider(fsys fs.FS, paths ...string) *ImageProvider {
	return &ImageProvider{
		fsys:   fsys,
		paths:  paths,
		images: make(map[int]*ebiten.Image),
		errs:   make(map[int]error),
	}
}

// GlobImageProvider returns a provider over every file in fsys matching
// pattern, in lexical order.
func GlobImageProvider(fsys fs.FS, pattern string) (*ImageProvider, error) {
	paths, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	return NewImageProvider(fsys, paths...), nil
}

// SetTargetSize sets the size images are resampled to. Zero keeps each
// image's natural size. Already decoded images are dropped.
func (p *ImageProvider) SetTargetSize(w, h int) {
	if w == p.w && h == p.h {
		return
	}
	p.w, p.h = w, h
	for i, img := range p.images {
		img.Deallocate()
		delete(p.images, i)
	}
	clear(p.errs)
}

// Count returns the number of image paths.
func (p *ImageProvider) Count() int { return len(p.paths) }

// Err returns the load error for a page, if its last bind failed.
func (p *ImageProvider) Err(index int) error { return p.errs[index] }

// Bind returns a surface showing page index. A page that cannot be loaded
// binds a placeholder and the error is reported on stderr and by Err.
func (p *ImageProvider) Bind(index int) Surface {
	if img, ok := p.images[index]; ok {
		return p.surface(img)
	}
	img, err := LoadImage(p.fsys, p.paths[index], p.w, p.h)
	if err != nil {
		p.errs[index] = err
		_, _ = fmt.Fprintf(os.Stderr, "[fold] image provider: %v\n", err)
		return &FillSurface{Color: placeholderColor, W: max(p.w, 1), H: max(p.h, 1)}
	}
	delete(p.errs, index)
	p.images[index] = img
	return p.surface(img)
}

func (p *ImageProvider) surface(img *ebiten.Image) Surface {
	s := NewImageSurface(img)
	if p.w > 0 && p.h > 0 {
		s.SetSize(p.w, p.h)
	}
	return s
}

// LoadImage decodes the image at path and, when w and h are positive,
// resamples it to w×h with Catmull-Rom filtering.
func LoadImage(fsys fs.FS, path string, w, h int) (*ebiten.Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	src, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if w > 0 && h > 0 {
		src = ResampleImage(src, w, h)
	}
	return ebiten.NewImageFromImage(src), nil
}

// DecodeImage decodes any registered format.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// ResampleImage scales src to w×h with Catmull-Rom filtering. src is
// returned unchanged when it already has that size.
func ResampleImage(src image.Image, w, h int) image.Image {
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}
