package media

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"gapsync-go/internal/gapsync"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
}

func decodeDims(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open(%s) error = %v", path, err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("DecodeConfig(%s) error = %v", path, err)
	}
	return cfg.Width, cfg.Height
}

func TestResizeCoverArt(t *testing.T) {
	t.Run("resizes landscape and portrait images to exact target", func(t *testing.T) {
		dir := t.TempDir()
		writeTestPNG(t, filepath.Join(dir, "wide.png"), 120, 40)
		writeTestPNG(t, filepath.Join(dir, "tall.png"), 30, 90)

		saved, err := ResizeCoverArt(dir, 44, 35, gapsync.NewNopLogger())
		if err != nil {
			t.Fatalf("ResizeCoverArt() error = %v", err)
		}
		if len(saved) != 2 {
			t.Fatalf("len(saved) = %d, want 2", len(saved))
		}

		for _, name := range []string{"wide.png", "tall.png"} {
			out := filepath.Join(dir, "resized", name)
			w, h := decodeDims(t, out)
			if w != 44 || h != 35 {
				t.Errorf("%s = %dx%d, want 44x35", name, w, h)
			}
		}
	})

	t.Run("skips files that fail to decode", func(t *testing.T) {
		dir := t.TempDir()
		writeTestPNG(t, filepath.Join(dir, "good.png"), 50, 50)
		if err := os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte("not an image"), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		saved, err := ResizeCoverArt(dir, 40, 40, gapsync.NewNopLogger())
		if err != nil {
			t.Fatalf("ResizeCoverArt() error = %v", err)
		}
		if len(saved) != 1 {
			t.Errorf("len(saved) = %d, want 1", len(saved))
		}
		if _, err := os.Stat(filepath.Join(dir, "resized", "broken.png")); !os.IsNotExist(err) {
			t.Error("broken image produced an output file")
		}
	})

	t.Run("ignores non-image files", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("text"), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		saved, err := ResizeCoverArt(dir, 40, 40, gapsync.NewNopLogger())
		if err != nil {
			t.Fatalf("ResizeCoverArt() error = %v", err)
		}
		if len(saved) != 0 {
			t.Errorf("len(saved) = %d, want 0", len(saved))
		}
	})

	t.Run("rejects non-positive dimensions", func(t *testing.T) {
		if _, err := ResizeCoverArt(t.TempDir(), 0, 35, gapsync.NewNopLogger()); err == nil {
			t.Error("ResizeCoverArt() expected error for zero width")
		}
	})
}

func TestTransposeForOrientation(t *testing.T) {
	// 3x2 source with a marker pixel at (0,0); each orientation value
	// must move the marker to a known position.
	marker := color.RGBA{R: 255, A: 255}
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.Set(0, 0, marker)

	cases := []struct {
		name        string
		orientation int
		w, h        int
		markerX     int
		markerY     int
	}{
		{"identity", 1, 3, 2, 0, 0},
		{"flip horizontal", 2, 3, 2, 2, 0},
		{"rotate 180", 3, 3, 2, 2, 1},
		{"flip vertical", 4, 3, 2, 0, 1},
		{"transpose", 5, 2, 3, 0, 0},
		{"rotate 90 cw", 6, 2, 3, 1, 0},
		{"transverse", 7, 2, 3, 1, 2},
		{"rotate 270 cw", 8, 2, 3, 0, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out := transposeForOrientation(src, c.orientation)
			b := out.Bounds()
			if b.Dx() != c.w || b.Dy() != c.h {
				t.Fatalf("bounds = %dx%d, want %dx%d", b.Dx(), b.Dy(), c.w, c.h)
			}
			if out.At(c.markerX, c.markerY) != marker {
				t.Errorf("marker not at (%d,%d)", c.markerX, c.markerY)
			}
		})
	}
}

func TestExifTranspose_NoExifData(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if got := exifTranspose(img, []byte("not a jpeg")); got != image.Image(img) {
		t.Error("image without EXIF data should pass through unchanged")
	}
}

func TestScaleCoverCenterCrop(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))
	out := scaleCoverCenterCrop(src, 40, 30)

	b := out.Bounds()
	if b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("bounds = %dx%d, want 40x30", b.Dx(), b.Dy())
	}
}
