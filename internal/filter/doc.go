// Package filter implements the expression-styling pipeline for frog photos.
//
// A styled image is produced by running a named preset (happy, sad, surprised,
// excited, determined) over a Raster. Presets are ordered chains of pixel
// operations (brightness, contrast, saturation, warmth) and convolutions
// (sharpness, blur). Results are memoized per expression and image size.
//
// # Ownership
//
// Every operation is pure: it reads its input and returns a freshly allocated
// Raster of the same dimensions. Inputs are never modified, so one source
// image can be styled concurrently by many callers. Rasters returned from
// Pipeline.Apply are shared through the cache and must not be mutated.
//
// # Cache Semantics
//
// The cache key is (expression, width, height). Pixel content is not part of
// the key: once an expression has been computed for a given size, every later
// image of that size receives the first result. This is intended behavior.
// The cache is unbounded and lives as long as the process.
//
// # Errors
//
// ErrInvalidParameter is the only error kind produced here. It covers
// non-finite factors, a warmth factor <= 0, a blur radius that is not a
// positive odd number and malformed kernels. Unknown expression names are not
// an error; they resolve to the identity preset.
package filter
