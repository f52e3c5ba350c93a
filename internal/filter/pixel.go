package filter

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// AdjustBrightness scales every channel by factor.
//
// Values above 1 brighten, values below 1 darken. Results are truncated and
// clamped to [0,255], so a factor of exactly 1 is the identity.
func AdjustBrightness(img *Raster, factor float64) (*Raster, error) {
	if err := checkRaster(img); err != nil {
		return nil, err
	}
	if err := checkFinite("brightness", factor); err != nil {
		return nil, err
	}

	return mapPixels(img, func(c color.NRGBA) color.NRGBA {
		c.R = clampChannel(float64(c.R) * factor)
		c.G = clampChannel(float64(c.G) * factor)
		c.B = clampChannel(float64(c.B) * factor)
		return c
	}), nil
}

// AdjustContrast stretches every channel away from mid-gray (128) by factor.
//
// 128 is a fixed point for any factor; a factor of 0 flattens the image to
// mid-gray and a factor of 1 is the identity.
func AdjustContrast(img *Raster, factor float64) (*Raster, error) {
	if err := checkRaster(img); err != nil {
		return nil, err
	}
	if err := checkFinite("contrast", factor); err != nil {
		return nil, err
	}

	return mapPixels(img, func(c color.NRGBA) color.NRGBA {
		c.R = clampChannel((float64(c.R)-128)*factor + 128)
		c.G = clampChannel((float64(c.G)-128)*factor + 128)
		c.B = clampChannel((float64(c.B)-128)*factor + 128)
		return c
	}), nil
}

// AdjustSaturation multiplies the HSV saturation of every pixel by factor.
//
// The scaled saturation is kept within [0,1]; hue and value are untouched.
// Gray pixels have no saturation and pass through unchanged.
func AdjustSaturation(img *Raster, factor float64) (*Raster, error) {
	if err := checkRaster(img); err != nil {
		return nil, err
	}
	if err := checkFinite("saturation", factor); err != nil {
		return nil, err
	}

	return mapPixels(img, func(c color.NRGBA) color.NRGBA {
		h, s, v := colorful.Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
		}.Hsv()
		s = math.Max(0, math.Min(1, s*factor))
		c.R, c.G, c.B = colorful.Hsv(h, s, v).Clamped().RGB255()
		return c
	}), nil
}

// AdjustWarmth shifts the color balance toward red (factor > 1) or blue
// (factor < 1).
//
// Red is multiplied by factor, blue is divided by it and green is kept.
// Both shifted channels are clamped to [0,255]. The factor must be > 0.
func AdjustWarmth(img *Raster, factor float64) (*Raster, error) {
	if err := checkRaster(img); err != nil {
		return nil, err
	}
	if err := checkFinite("warmth", factor); err != nil {
		return nil, err
	}
	if factor <= 0 {
		return nil, fmt.Errorf("%w: warmth factor must be > 0, got %v", ErrInvalidParameter, factor)
	}

	return mapPixels(img, func(c color.NRGBA) color.NRGBA {
		c.R = clampChannel(float64(c.R) * factor)
		c.B = clampChannel(float64(c.B) / factor)
		return c
	}), nil
}
