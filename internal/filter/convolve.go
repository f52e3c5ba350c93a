package filter

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/parallel"
)

// Kernel is a square convolution matrix with an odd side length.
// Weights are stored row-major, so Weights[y*Size+x] is row y, column x.
type Kernel struct {
	Size    int
	Weights []float64
}

// NewKernel builds a size×size kernel from row-major weights.
//
// The size must be a positive odd number (so the kernel has a center pixel)
// and exactly size*size weights must be given.
func NewKernel(size int, weights []float64) (*Kernel, error) {
	if size <= 0 || size%2 == 0 {
		return nil, fmt.Errorf("%w: kernel size must be positive and odd, got %d", ErrInvalidParameter, size)
	}
	if len(weights) != size*size {
		return nil, fmt.Errorf("%w: kernel of size %d needs %d weights, got %d",
			ErrInvalidParameter, size, size*size, len(weights))
	}
	w := make([]float64, len(weights))
	copy(w, weights)
	return &Kernel{Size: size, Weights: w}, nil
}

// BoxKernel returns a radius×radius kernel that averages its neighborhood.
func BoxKernel(radius int) (*Kernel, error) {
	if radius <= 0 || radius%2 == 0 {
		return nil, fmt.Errorf("%w: blur radius must be positive and odd, got %d", ErrInvalidParameter, radius)
	}
	weights := make([]float64, radius*radius)
	for i := range weights {
		weights[i] = 1 / float64(len(weights))
	}
	return NewKernel(radius, weights)
}

// SharpenKernel returns the 3x3 unsharp kernel
//
//	 0   -f     0
//	-f   1+4f  -f
//	 0   -f     0
//
// whose weights always sum to 1, so flat regions are left as they are.
func SharpenKernel(factor float64) *Kernel {
	f := factor
	return &Kernel{
		Size: 3,
		Weights: []float64{
			0, -f, 0,
			-f, 1 + 4*f, -f,
			0, -f, 0,
		},
	}
}

// Convolve applies kernel k to every pixel of img and returns a new raster.
//
// Accumulation is done in float64 and each channel is rounded and clamped to
// [0,255] at the end. Pixels whose neighborhood would reach past the image
// border are copied from the input unchanged; an image smaller than the kernel
// therefore comes back as an exact copy.
func Convolve(img *Raster, k *Kernel) (*Raster, error) {
	if err := checkRaster(img); err != nil {
		return nil, err
	}
	if k == nil || k.Size <= 0 || k.Size%2 == 0 || len(k.Weights) != k.Size*k.Size {
		return nil, fmt.Errorf("%w: malformed kernel", ErrInvalidParameter)
	}

	width, height := img.Width(), img.Height()
	dst := img.Clone()
	half := k.Size / 2

	// Rows with a full neighborhood; everything else keeps the copied pixels.
	minY, maxY := half, height-half
	if maxY <= minY {
		return dst, nil
	}

	src := img.NRGBA
	parallel.Line(maxY-minY, func(start, end int) {
		for y := minY + start; y < minY+end; y++ {
			for x := half; x < width-half; x++ {
				dst.setConvolved(src, k, x, y)
			}
		}
	})

	return dst, nil
}

// setConvolved computes the kernel response at (x, y) and stores it in r.
// The caller guarantees the whole neighborhood lies inside src.
func (r *Raster) setConvolved(src *image.NRGBA, k *Kernel, x, y int) {
	half := k.Size / 2
	var sumR, sumG, sumB float64

	for ky := 0; ky < k.Size; ky++ {
		row := src.PixOffset(x-half, y+ky-half)
		for kx := 0; kx < k.Size; kx++ {
			w := k.Weights[ky*k.Size+kx]
			i := row + kx*4
			sumR += float64(src.Pix[i]) * w
			sumG += float64(src.Pix[i+1]) * w
			sumB += float64(src.Pix[i+2]) * w
		}
	}

	r.SetRGB(x, y, RGB{
		R: roundChannel(sumR),
		G: roundChannel(sumG),
		B: roundChannel(sumB),
	})
}

// ApplyBlur averages each pixel with its radius×radius neighborhood.
// The radius must be a positive odd number. A radius wider or taller than img
// leaves no pixel with a full neighborhood, so img comes back as a copy.
func ApplyBlur(img *Raster, radius int) (*Raster, error) {
	if radius <= 0 || radius%2 == 0 {
		return nil, fmt.Errorf("%w: blur radius must be positive and odd, got %d", ErrInvalidParameter, radius)
	}
	if err := checkRaster(img); err != nil {
		return nil, err
	}
	if radius > img.Width() || radius > img.Height() {
		return img.Clone(), nil
	}

	k, err := BoxKernel(radius)
	if err != nil {
		return nil, err
	}
	return Convolve(img, k)
}

// AdjustSharpness sharpens img with SharpenKernel(factor).
func AdjustSharpness(img *Raster, factor float64) (*Raster, error) {
	if err := checkFinite("sharpness", factor); err != nil {
		return nil, err
	}
	return Convolve(img, SharpenKernel(factor))
}
