package filter

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// ErrInvalidParameter is returned when an operation receives a factor, radius
// or kernel it cannot work with.
var ErrInvalidParameter = errors.New("invalid parameter")

// RGB is a pixel with 8-bit red, green and blue channels.
type RGB struct {
	R, G, B uint8
}

// Raster is a fixed-size grid of pixels backed by an NRGBA buffer whose
// bounds always start at (0,0).
//
// Only the RGB channels are adjusted by filters; alpha is carried through.
type Raster struct {
	*image.NRGBA
}

// NewRaster creates an opaque black raster of the given size.
func NewRaster(width, height int) *Raster {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return &Raster{NRGBA: img}
}

// FromImage copies any image.Image into a new Raster. The copy is rebased so
// that its bounds start at (0,0).
func FromImage(img image.Image) *Raster {
	return &Raster{NRGBA: imaging.Clone(img)}
}

// wrap adopts an NRGBA produced by imaging helpers without copying.
func wrap(img *image.NRGBA) *Raster {
	return &Raster{NRGBA: img}
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int {
	return r.Rect.Dx()
}

// Height returns the raster height in pixels.
func (r *Raster) Height() int {
	return r.Rect.Dy()
}

// RGBAt returns the RGB channels of the pixel at (x, y).
func (r *Raster) RGBAt(x, y int) RGB {
	i := r.PixOffset(x, y)
	return RGB{R: r.Pix[i], G: r.Pix[i+1], B: r.Pix[i+2]}
}

// SetRGB sets the RGB channels of the pixel at (x, y), leaving alpha as is.
func (r *Raster) SetRGB(x, y int, c RGB) {
	i := r.PixOffset(x, y)
	r.Pix[i] = c.R
	r.Pix[i+1] = c.G
	r.Pix[i+2] = c.B
}

// Clone returns a deep copy of the raster. Row padding in the source buffer
// is not carried over.
func (r *Raster) Clone() *Raster {
	return wrap(imaging.Clone(r.NRGBA))
}

// Equal reports whether both rasters have the same size and identical pixels,
// alpha included.
func (r *Raster) Equal(other *Raster) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.Width() != other.Width() || r.Height() != other.Height() {
		return false
	}
	for y := 0; y < r.Height(); y++ {
		a := r.Pix[y*r.Stride : y*r.Stride+r.Width()*4]
		b := other.Pix[y*other.Stride : y*other.Stride+other.Width()*4]
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}

// String describes the raster size, e.g. "Raster(600x400)".
func (r *Raster) String() string {
	return fmt.Sprintf("Raster(%dx%d)", r.Width(), r.Height())
}

// mapPixels runs fn over every pixel of src and returns the result as a new
// raster. Work is spread over rows by imaging.AdjustFunc.
func mapPixels(src *Raster, fn func(c color.NRGBA) color.NRGBA) *Raster {
	return wrap(imaging.AdjustFunc(src.NRGBA, fn))
}

// clampChannel truncates v toward zero and constrains it to [0,255].
// NaN maps to 0.
func clampChannel(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// roundChannel rounds v to the nearest integer and constrains it to [0,255].
// NaN maps to 0.
func roundChannel(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

func checkFinite(op string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s factor must be finite, got %v", ErrInvalidParameter, op, v)
	}
	return nil
}

func checkRaster(img *Raster) error {
	if img == nil || img.NRGBA == nil {
		return fmt.Errorf("%w: nil raster", ErrInvalidParameter)
	}
	return nil
}
