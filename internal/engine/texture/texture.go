// Package texture provides image decoding for material textures.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strings"

	// Register decoders for the formats MTL files commonly reference.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// Decode decodes texture data into an RGBA image. TGA files are handled
// by the built-in decoder; everything else goes through image.Decode, so
// PNG, JPEG and BMP work out of the box.
func Decode(data []byte, path string) (*image.RGBA, error) {
	var img image.Image
	var err error

	if strings.HasSuffix(strings.ToLower(path), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return ToRGBA(img), nil
}

// ToRGBA converts any image.Image to *image.RGBA.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			rgba.SetRGBA(x, y, color.RGBA{
				R: uint8(r16 >> 8),
				G: uint8(g16 >> 8),
				B: uint8(b16 >> 8),
				A: uint8(a16 >> 8),
			})
		}
	}
	return rgba
}
