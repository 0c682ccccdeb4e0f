package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrInvalidImage is returned for uploads that cannot be decoded.
var ErrInvalidImage = errors.New("vision: invalid image")

const (
	// MaxUploadBytes caps the size of an uploaded room photo.
	MaxUploadBytes = 10 * 1024 * 1024
	// DefaultSize is the square edge the model works at.
	DefaultSize = 512
)

// Prepare decodes an uploaded photo, flattens it onto an opaque background
// and scales it to a size x size PNG.
func Prepare(data []byte, size int) (Image, error) {
	if len(data) == 0 {
		return Image{}, fmt.Errorf("%w: empty upload", ErrInvalidImage)
	}
	if size <= 0 {
		size = DefaultSize
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	return EncodePNG(dst)
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) (Image, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Image{}, fmt.Errorf("vision: encode png: %w", err)
	}
	b := img.Bounds()
	return Image{
		Data:   buf.Bytes(),
		MIME:   "image/png",
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// Normalize re-encodes model output as PNG so every backend returns the same
// format. Undecodable output is an error.
func Normalize(data []byte) (Image, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("vision: decode model output: %w", err)
	}
	return EncodePNG(src)
}
