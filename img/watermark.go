package img

import (
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	"github.com/michaelhaslim/printshop-pipeline/config"
)

// Watermarker overlays a semi-transparent mark onto generated images.
// When watermarking is disabled or the asset is missing, Apply is a
// no-op; the asset is loaded once at construction.
type Watermarker struct {
	mark     image.Image
	opacity  float64
	scale    float64
	position string
	margin   float64
}

// NewWatermarker loads the watermark asset. A missing file silently
// disables watermarking; an unreadable one is logged as a warning and
// disables it too.
func NewWatermarker(cfg config.WatermarkConfig) *Watermarker {
	w := &Watermarker{
		opacity:  cfg.Opacity,
		scale:    cfg.Scale,
		position: cfg.Position,
		margin:   cfg.Margin,
	}
	if !cfg.Enabled {
		return w
	}
	if _, err := os.Stat(cfg.Path); err != nil {
		return w
	}
	mark, err := imaging.Open(cfg.Path)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.Path).Msg("could not load watermark, continuing without")
		return w
	}
	w.mark = mark
	return w
}

// Enabled reports whether Apply will composite a mark.
func (w *Watermarker) Enabled() bool {
	return w.mark != nil
}

// Apply composites the watermark onto base. The mark is scaled to the
// configured fraction of the base's shorter dimension and placed at the
// configured corner (or center) with a margin of 2% of that dimension.
func (w *Watermarker) Apply(base *image.NRGBA) *image.NRGBA {
	if w.mark == nil {
		return base
	}

	bw, bh := base.Bounds().Dx(), base.Bounds().Dy()
	minDim := bw
	if bh < minDim {
		minDim = bh
	}
	target := int(float64(minDim) * w.scale)
	if target < 1 {
		log.Warn().Int("width", bw).Int("height", bh).Msg("image too small to watermark")
		return base
	}

	mark := imaging.Resize(w.mark, target, 0, imaging.Lanczos)
	mw, mh := mark.Bounds().Dx(), mark.Bounds().Dy()
	margin := int(w.margin * float64(minDim))

	var pos image.Point
	switch w.position {
	case "bottom_left":
		pos = image.Pt(margin, bh-mh-margin)
	case "top_right":
		pos = image.Pt(bw-mw-margin, margin)
	case "top_left":
		pos = image.Pt(margin, margin)
	case "center":
		pos = image.Pt((bw-mw)/2, (bh-mh)/2)
	default: // bottom_right
		pos = image.Pt(bw-mw-margin, bh-mh-margin)
	}

	return imaging.Overlay(base, mark, pos, w.opacity)
}
