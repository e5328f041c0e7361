// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package effect applies the randomized scan-look transform to one raster
// page: brightness jitter, askew rotation, and the optional photocopy
// adjustments. See docs/ARCHITECTURE § Scan Effects.
package effect

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"

	"github.com/disintegration/imaging"

	"github.com/pdiddy/scandoc/internal/source"
	"github.com/pdiddy/scandoc/pkg/types"
)

// Effect bounds. These are the stable contract: subtle enough that the
// result reads as an imperfect scan, not a stylistic filter.
const (
	// maxSkewDegrees bounds the askew rotation, drawn uniformly from
	// [-maxSkewDegrees, +maxSkewDegrees] per page.
	maxSkewDegrees = 0.55

	// jitterMin/jitterMax bound the multiplicative brightness factor
	// simulating scanner light fluctuation.
	jitterMin = 1.01
	jitterMax = 1.02

	// photocopyContrastMin/Max bound the random contrast boost applied in
	// black-and-white mode.
	photocopyContrastMin = 1.2
	photocopyContrastMax = 1.5

	// blurSigmaMin/Max bound the gaussian sigma in blur mode.
	blurSigmaMin = 1.1
	blurSigmaMax = 1.4
)

// TransformedPage is a raster page after the scan effects, with the actual
// random draws recorded. The metadata is for callers and tests; it is never
// persisted.
type TransformedPage struct {
	Image  image.Image
	Width  int
	Height int

	// Angle is the rotation applied, in degrees. Exactly 0 when askew is
	// disabled.
	Angle float64

	// BrightnessFactor is the multiplicative jitter applied.
	BrightnessFactor float64
}

// Apply transforms one page according to cfg. Each call draws fresh random
// parameters; there is no shared generator state between pages or documents.
// The output dimensions always equal the input dimensions.
func Apply(p *source.RasterPage, cfg types.EffectConfig) (*TransformedPage, error) {
	if p == nil || p.Image == nil || p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("%w: zero-dimension bitmap", types.ErrInvalidPage)
	}

	img := imaging.Clone(p.Image)

	// Brightness jitter is always on, independent of askew.
	factor := uniform(jitterMin, jitterMax)
	img = scaleBrightness(img, factor)

	var angle float64
	if cfg.Askew {
		angle = uniform(-maxSkewDegrees, maxSkewDegrees)
		// Rotate over the page's own background color so no black wedge
		// appears, then crop the expanded canvas back to the original
		// dimensions.
		rotated := imaging.Rotate(img, angle, edgeColor(p.Image))
		img = imaging.CropCenter(rotated, p.Width, p.Height)
	}

	if cfg.BlackAndWhite {
		img = imaging.Grayscale(img)
		img = imaging.AdjustContrast(img, factorToPercent(uniform(photocopyContrastMin, photocopyContrastMax)))
	}

	if cfg.Blur {
		img = imaging.Blur(img, uniform(blurSigmaMin, blurSigmaMax))
	}

	// User adjustments come last, mirroring the CLI contract: 1.0 is a no-op.
	if cfg.Contrast != 1.0 {
		img = imaging.AdjustContrast(img, factorToPercent(cfg.Contrast))
	}
	if cfg.Sharpness != 1.0 {
		img = adjustSharpness(img, cfg.Sharpness)
	}
	if cfg.Brightness != 1.0 {
		img = scaleBrightness(img, cfg.Brightness)
	}

	return &TransformedPage{
		Image:            img,
		Width:            p.Width,
		Height:           p.Height,
		Angle:            angle,
		BrightnessFactor: factor,
	}, nil
}

// uniform draws from [lo, hi).
func uniform(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

// factorToPercent maps a multiplicative enhancement factor (1.0 = unchanged)
// to the percentage scale the imaging package uses (0 = unchanged).
func factorToPercent(f float64) float64 {
	return (f - 1.0) * 100
}

// scaleBrightness multiplies every channel by f, clamping to the byte range.
// Brightness factors are multiplicative, so a dark pixel moves less than a
// bright one; imaging.AdjustBrightness is additive and cannot express that.
func scaleBrightness(img image.Image, f float64) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		c.R = clampChannel(float64(c.R) * f)
		c.G = clampChannel(float64(c.G) * f)
		c.B = clampChannel(float64(c.B) * f)
		return c
	})
}

func clampChannel(v float64) uint8 {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v + 0.5)
}

// adjustSharpness sharpens for factors above 1 and blurs for factors below,
// so the flag behaves symmetrically around the identity.
func adjustSharpness(img *image.NRGBA, f float64) *image.NRGBA {
	switch {
	case f > 1.0:
		return imaging.Sharpen(img, f-1.0)
	case f < 1.0 && f >= 0:
		return imaging.Blur(img, 1.0-f)
	default:
		return img
	}
}

// edgeColor samples the page border and returns the mean color. Scans have
// paper-colored margins, so the border is the best guess for the background
// revealed by rotation.
func edgeColor(img image.Image) color.Color {
	b := img.Bounds()
	var r, g, bl, n uint64

	sample := func(x, y int) {
		cr, cg, cb, _ := img.At(x, y).RGBA()
		r += uint64(cr >> 8)
		g += uint64(cg >> 8)
		bl += uint64(cb >> 8)
		n++
	}

	for x := b.Min.X; x < b.Max.X; x++ {
		sample(x, b.Min.Y)
		sample(x, b.Max.Y-1)
	}
	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		sample(b.Min.X, y)
		sample(b.Max.X-1, y)
	}

	if n == 0 {
		return color.White
	}
	return color.NRGBA{
		R: uint8(r / n),
		G: uint8(g / n),
		B: uint8(bl / n),
		A: 255,
	}
}
