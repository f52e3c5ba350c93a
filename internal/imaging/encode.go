package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// jpegQuality is the quality used for JPEG output.
const jpegQuality = 90

// EncodedImage is an encoded output image ready to be returned to a client.
type EncodedImage struct {
	// Width of the image in pixels.
	Width int `json:"width"`

	// Height of the image in pixels.
	Height int `json:"height"`

	// ImageBase64 holds the encoded file, base64 (standard encoding).
	ImageBase64 string `json:"image_base64"`

	// MimeType is "image/png" or "image/jpeg".
	MimeType string `json:"mime_type"`
}

// SupportedFormats lists the accepted output format names.
func SupportedFormats() []string {
	return []string{"jpeg", "jpg", "png"}
}

// IsValidFormat reports whether format is an accepted output format.
func IsValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case "jpeg", "jpg", "png":
		return true
	}
	return false
}

// MimeType returns the MIME type for an output format. Anything that is not
// PNG is served as JPEG.
func MimeType(format string) string {
	if strings.EqualFold(format, "png") {
		return "image/png"
	}
	return "image/jpeg"
}

// Encode writes img in the given output format and returns the bytes.
func Encode(img image.Image, format string) ([]byte, error) {
	if !IsValidFormat(format) {
		return nil, fmt.Errorf("unsupported output format: %q", format)
	}

	f := imaging.JPEG
	if strings.EqualFold(format, "png") {
		f = imaging.PNG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode %s image: %w", format, err)
	}
	return buf.Bytes(), nil
}

// EncodeBase64 encodes img and wraps the result for JSON transport.
func EncodeBase64(img image.Image, format string) (*EncodedImage, error) {
	data, err := Encode(img, format)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	return &EncodedImage{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    MimeType(format),
	}, nil
}
