// Package imaging is the file-facing side of photofrog.
//
// It decodes source photos from disk, maps size names to output dimensions,
// resizes photos to those dimensions and encodes styled results as PNG or
// JPEG. The styling itself lives in package filter; this package only moves
// pixels in and out of it.
//
// # Sizes
//
// Three named sizes are known: small (300x200), medium (600x400) and large
// (900x600). Any other name falls back to medium.
//
// # Formats
//
// Sources may be PNG, JPEG, GIF, BMP, TIFF or WebP. Output is PNG or JPEG
// ("jpg" is accepted as an alias).
//
// # Thread Safety
//
// SourceCache is safe for concurrent use. All other functions are stateless.
//
// # Memory
//
// Decoded sources stay in SourceCache for the lifetime of the process. The
// set of frog templates is small and fixed, so no eviction is provided.
package imaging
