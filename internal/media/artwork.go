package media

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"

	// Decoders for the artwork formats handled by ResizeCoverArt.
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"gapsync-go/internal/gapsync"
)

// artworkExtensions are the image formats accepted by ResizeCoverArt.
var artworkExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".bmp":  true,
	".tiff": true,
}

// ResizeCoverArt processes every image directly under dir into a "resized"
// subdirectory, scaled to cover width x height and center-cropped to the
// exact target size, saved as PNG. Images that fail to decode are logged
// and skipped rather than failing the run. Returns the saved output paths.
func ResizeCoverArt(dir string, width, height int, logger gapsync.Logger) ([]string, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("target dimensions must be positive: %dx%d", width, height)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	outDir := filepath.Join(dir, "resized")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var saved []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		if !artworkExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		base := strings.TrimSuffix(name, filepath.Ext(name))
		outPath := filepath.Join(outDir, base+".png")

		if err := resizeOne(filepath.Join(dir, name), outPath, width, height); err != nil {
			logger.Warn("skipping image", "file", name, "error", err)
			continue
		}

		logger.Info("cover art saved", "path", outPath)
		saved = append(saved, outPath)
	}

	return saved, nil
}

// resizeOne decodes src, orients it upright, applies the cover +
// center-crop transform, and encodes the result as PNG at dst.
func resizeOne(src, dst string, width, height int) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decoding image: %w", err)
	}
	img = exifTranspose(img, data)

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	if err := png.Encode(out, scaleCoverCenterCrop(img, width, height)); err != nil {
		out.Close()
		return fmt.Errorf("encoding png: %w", err)
	}
	return out.Close()
}

// exifTranspose orients img upright per its EXIF Orientation tag, so
// rotated camera photos are scaled and cropped on the correct axis.
// Images without usable EXIF data pass through unchanged.
func exifTranspose(img image.Image, data []byte) image.Image {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return img
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return img
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return img
	}
	return transposeForOrientation(img, orientation)
}

// transposeForOrientation maps the eight EXIF orientation values onto
// their upright transform.
func transposeForOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return flipH(img)
	case 3:
		return rotate180(img)
	case 4:
		return flipV(img)
	case 5:
		return flipH(rotate90(img))
	case 6:
		return rotate90(img)
	case 7:
		return flipH(rotate270(img))
	case 8:
		return rotate270(img)
	}
	return img
}

// rotate90 rotates 90 degrees clockwise.
func rotate90(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(h-1-y, x, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}

func rotate180(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(w-1-x, h-1-y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}

// rotate270 rotates 90 degrees counter-clockwise.
func rotate270(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(y, w-1-x, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}

func flipH(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(w-1-x, y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}

func flipV(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(x, h-1-y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}

// scaleCoverCenterCrop scales img so it covers tw x th without letterboxing,
// maintaining aspect ratio, then center-crops to exactly tw x th.
func scaleCoverCenterCrop(img image.Image, tw, th int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	scale := math.Max(float64(tw)/float64(w), float64(th)/float64(h))
	newW := int(math.Round(float64(w) * scale))
	newH := int(math.Round(float64(h) * scale))
	// Rounding may undershoot by a pixel; the crop below needs full coverage.
	if newW < tw {
		newW = tw
	}
	if newH < th {
		newH = th
	}

	scaled := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)

	left := (newW - tw) / 2
	top := (newH - th) / 2
	out := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.Draw(out, out.Bounds(), scaled, image.Pt(left, top), draw.Src)
	return out
}
