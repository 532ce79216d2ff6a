package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/threndash/talentmap/internal/classify"
	"github.com/threndash/talentmap/internal/config"
	"github.com/threndash/talentmap/internal/geo"
	"github.com/threndash/talentmap/internal/reconcile"

	"github.com/chai2010/webp"
	"github.com/rs/zerolog/log"
	xdraw "golang.org/x/image/draw"
)

// Preview raster geometry. The canvas is a plain equirectangular world,
// rendered at double size and downscaled for smooth dots.
const (
	previewWidth     = 1600
	previewHeight    = 800
	previewScale     = 2
	backgroundRadius = 3.0
	participantBase  = 6.0
)

// WritePreview renders a shareable WebP snapshot of the classified map:
// tier-colored dots for participants, faint dots for background countries.
func WritePreview(path string, res *reconcile.Result, cfg config.Render) error {
	w := previewWidth * previewScale
	h := previewHeight * previewScale

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(parseHexColor(cfg.BackgroundColor, color.RGBA{248, 250, 252, 255})), image.Point{}, draw.Src)

	faint := color.RGBA{226, 232, 240, 255}
	for _, b := range res.Background {
		x, y := project(b.Centroid, w, h)
		fillCircle(img, x, y, backgroundRadius*previewScale, faint)
	}

	for _, p := range res.Participants {
		if p.Centroid == nil {
			continue
		}
		x, y := project(*p.Centroid, w, h)
		radius := (participantBase + float64(p.ProgramCount)) * previewScale
		fillCircle(img, x, y, radius, tierFill(p.Tier, cfg))
	}

	// CatmullRom keeps the dot edges clean through the downscale.
	out := image.NewRGBA(image.Rect(0, 0, previewWidth, previewHeight))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Over, nil)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := webp.Encode(f, out, &webp.Options{Lossless: false, Quality: 85}); err != nil {
		return fmt.Errorf("encode webp: %w", err)
	}

	log.Info().Str("path", path).Msg("Preview image written")
	return nil
}

func tierFill(tier classify.Tier, cfg config.Render) color.RGBA {
	fallback := color.RGBA{71, 85, 105, 255}
	switch tier {
	case classify.TierTriplePlus:
		return parseHexColor(cfg.TierColors.TriplePlus, fallback)
	case classify.TierDouble:
		return parseHexColor(cfg.TierColors.Double, fallback)
	default:
		return parseHexColor(cfg.TierColors.Single, fallback)
	}
}

func project(p geo.Point, w, h int) (float64, float64) {
	x := (p.Lng + 180.0) / 360.0 * float64(w)
	y := (90.0 - p.Lat) / 180.0 * float64(h)
	return x, y
}

func fillCircle(img *image.RGBA, cx, cy, r float64, c color.RGBA) {
	minX := int(cx - r)
	maxX := int(cx + r)
	minY := int(cy - r)
	maxY := int(cy + r)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy <= r*r {
				if image.Pt(x, y).In(img.Bounds()) {
					img.SetRGBA(x, y, c)
				}
			}
		}
	}
}

// parseHexColor parses #rgb and #rrggbb, falling back on invalid input.
func parseHexColor(s string, fallback color.RGBA) color.RGBA {
	if len(s) == 0 || s[0] != '#' {
		return fallback
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return fallback
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(hex[i*2])
		lo, ok2 := hexDigit(hex[i*2+1])
		if !ok1 || !ok2 {
			return fallback
		}
		rgb[i] = hi<<4 | lo
	}

	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}

func hexDigit(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}
