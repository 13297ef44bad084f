package fold

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func testPages(t *testing.T) fstest.MapFS {
	t.Helper()
	return fstest.MapFS{
		"pages/01.png":    {Data: encodePNG(t, 8, 16)},
		"pages/02.png":    {Data: encodePNG(t, 8, 16)},
		"pages/03.png":    {Data: encodePNG(t, 4, 4)},
		"pages/notes.txt": {Data: []byte("not an image")},
	}
}

func TestResampleImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 20))
	if got := ResampleImage(src, 10, 20); got != image.Image(src) {
		t.Error("same size should return src unchanged")
	}
	got := ResampleImage(src, 5, 7)
	if b := got.Bounds(); b.Dx() != 5 || b.Dy() != 7 {
		t.Errorf("resampled bounds = %v, want 5x7", b)
	}
}

func TestDecodeImagePNG(t *testing.T) {
	img, err := DecodeImage(bytes.NewReader(encodePNG(t, 3, 2)))
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v", b)
	}
	if _, err := DecodeImage(bytes.NewReader([]byte("garbage"))); err == nil {
		t.Error("expected a decode error")
	}
}

func TestLoadImageResamples(t *testing.T) {
	img, err := LoadImage(testPages(t), "pages/03.png", 20, 40)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 40 {
		t.Errorf("bounds = %v, want 20x40", b)
	}

	img, err = LoadImage(testPages(t), "pages/03.png", 0, 0)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("natural bounds = %v, want 4x4", b)
	}
}

func TestLoadImageErrors(t *testing.T) {
	fsys := testPages(t)
	if _, err := LoadImage(fsys, "pages/missing.png", 0, 0); err == nil {
		t.Error("expected an open error")
	}
	if _, err := LoadImage(fsys, "pages/notes.txt", 0, 0); err == nil {
		t.Error("expected a decode error")
	}
}

func TestGlobImageProvider(t *testing.T) {
	p, err := GlobImageProvider(testPages(t), "pages/*.png")
	if err != nil {
		t.Fatalf("GlobImageProvider: %v", err)
	}
	if p.Count() != 3 {
		t.Fatalf("Count = %d, want 3", p.Count())
	}

	if _, err := GlobImageProvider(testPages(t), "[bad"); err == nil {
		t.Error("expected a pattern error")
	}
}

func TestImageProviderBind(t *testing.T) {
	p := NewImageProvider(testPages(t), "pages/01.png", "pages/03.png")
	p.SetTargetSize(100, 200)

	s := p.Bind(1)
	if w, h := s.Size(); w != 100 || h != 200 {
		t.Errorf("bound size = %d x %d, want 100 x 200", w, h)
	}
	is, ok := s.(*ImageSurface)
	if !ok {
		t.Fatalf("Bind returned %T, want *ImageSurface", s)
	}
	// The decoded image is cached across binds.
	again := p.Bind(1).(*ImageSurface)
	if again.Image() != is.Image() {
		t.Error("second bind should reuse the decoded image")
	}

	// Changing the target size drops the cache.
	p.SetTargetSize(50, 100)
	resized := p.Bind(1)
	if w, h := resized.Size(); w != 50 || h != 100 {
		t.Errorf("resized bind = %d x %d, want 50 x 100", w, h)
	}
}

func TestImageProviderPlaceholder(t *testing.T) {
	p := NewImageProvider(testPages(t), "pages/missing.png")
	p.SetTargetSize(30, 40)

	s := p.Bind(0)
	fill, ok := s.(*FillSurface)
	if !ok {
		t.Fatalf("Bind returned %T, want placeholder *FillSurface", s)
	}
	if fill.Color != placeholderColor || fill.W != 30 || fill.H != 40 {
		t.Errorf("placeholder = %+v", fill)
	}
	if p.Err(0) == nil {
		t.Error("Err should report the load failure")
	}
}

func TestImageProviderDrivesFoldable(t *testing.T) {
	p, err := GlobImageProvider(testPages(t), "pages/*.png")
	if err != nil {
		t.Fatal(err)
	}
	p.SetTargetSize(100, 200)

	f := New(DefaultConfig())
	f.SetSize(100, 200)
	f.SetProvider(p)
	f.ScrollToPosition(2)
	for i := 0; i < 200 && f.IsSettling(); i++ {
		f.Update(1.0 / 60)
	}
	if f.PageIndex() != 2 {
		t.Errorf("PageIndex = %d, want 2", f.PageIndex())
	}
	for i := 0; i < 3; i++ {
		if p.Err(i) != nil {
			t.Errorf("page %d: %v", i, p.Err(i))
		}
	}
}
