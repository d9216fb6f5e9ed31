package img

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Load opens and decodes an image file. A decode failure is reported to
// the caller; the pipeline treats it as a per-file error.
func Load(path string) (image.Image, error) {
	im, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return im, nil
}

// PadResize scales im to fit within (w, h) preserving aspect ratio, then
// centers it on an opaque canvas of exactly (w, h) filled with bg. The
// source is never cropped or stretched; images smaller than the target
// are not upscaled.
func PadResize(im image.Image, w, h int, bg color.Color) *image.NRGBA {
	fitted := imaging.Fit(im, w, h, imaging.Lanczos)
	canvas := imaging.New(w, h, bg)
	// composite rather than paste so transparent sources flatten onto
	// the background and the result is always opaque
	return imaging.OverlayCenter(canvas, fitted, 1.0)
}

// SaveJPEG writes im to path as a JPEG at the given quality.
func SaveJPEG(im image.Image, path string, quality int) error {
	if err := imaging.Save(im, path, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// ParseHexColor parses a #rrggbb or #rgb string into an opaque color.
func ParseHexColor(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	switch len(s) {
	case 7:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
			return c, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		return c, nil
	case 4:
		if _, err := fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B); err != nil {
			return c, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		c.R *= 17
		c.G *= 17
		c.B *= 17
		return c, nil
	}
	return c, fmt.Errorf("invalid hex color %q", s)
}
