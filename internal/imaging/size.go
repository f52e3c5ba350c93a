package imaging

import (
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// Named output sizes.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

var sizes = map[string]Dimensions{
	SizeSmall:  {Width: 300, Height: 200},
	SizeMedium: {Width: 600, Height: 400},
	SizeLarge:  {Width: 900, Height: 600},
}

// DimensionsForSize maps a size name to its output dimensions.
// Names are matched case-insensitively; anything unrecognized is medium.
func DimensionsForSize(size string) Dimensions {
	if d, ok := sizes[strings.ToLower(strings.TrimSpace(size))]; ok {
		return d
	}
	return sizes[SizeMedium]
}

// SupportedSizes lists the named sizes from smallest to largest.
func SupportedSizes() []string {
	return []string{SizeSmall, SizeMedium, SizeLarge}
}

// Fit scales and center-crops img to exactly fill the named size.
//
// Fill keeps the aspect ratio, so the output never looks stretched; the
// overflowing edges are cropped away. The result always starts at (0,0).
func Fit(img image.Image, size string) *image.NRGBA {
	d := DimensionsForSize(size)
	b := img.Bounds()
	if b.Dx() == d.Width && b.Dy() == d.Height {
		return imaging.Clone(img)
	}
	return imaging.Fill(img, d.Width, d.Height, imaging.Center, imaging.Lanczos)
}
