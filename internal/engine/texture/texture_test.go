package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// tgaHeader builds an 18-byte TGA header for a true-color image stored
// bottom-to-top.
func tgaHeader(imageType byte, width, height, bpp int) []byte {
	h := make([]byte, 18)
	h[2] = imageType
	h[12] = byte(width)
	h[13] = byte(width >> 8)
	h[14] = byte(height)
	h[15] = byte(height >> 8)
	h[16] = byte(bpp)
	return h
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 1x2 bottom-to-top: first stored row is the bottom of the image.
	data := tgaHeader(2, 1, 2, 24)
	data = append(data,
		255, 0, 0, // BGR blue, bottom row
		0, 0, 255, // BGR red, top row
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}

	rgba := ToRGBA(img)
	if got := rgba.RGBAAt(0, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("top pixel = %v, want red", got)
	}
	if got := rgba.RGBAAt(0, 1); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("bottom pixel = %v, want blue", got)
	}
}

func TestDecodeTGARLE(t *testing.T) {
	// 2x1, one RLE packet repeating a single green pixel twice.
	data := tgaHeader(10, 2, 1, 24)
	data = append(data,
		0x81,      // RLE packet, count 2
		0, 255, 0, // BGR green
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}

	rgba := ToRGBA(img)
	want := color.RGBA{G: 255, A: 255}
	if got := rgba.RGBAAt(0, 0); got != want {
		t.Errorf("pixel (0,0) = %v, want %v", got, want)
	}
	if got := rgba.RGBAAt(1, 0); got != want {
		t.Errorf("pixel (1,0) = %v, want %v", got, want)
	}
}

func TestDecodeTGAAlpha(t *testing.T) {
	data := tgaHeader(2, 1, 1, 32)
	data = append(data, 10, 20, 30, 128) // BGRA

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}

	got := ToRGBA(img).RGBAAt(0, 0)
	want := color.RGBA{R: 30, G: 20, B: 10, A: 128}
	if got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestDecodeTGARejectsUnsupported(t *testing.T) {
	if _, err := DecodeTGA([]byte{0, 0}); err == nil {
		t.Error("expected error for truncated header")
	}

	paletted := tgaHeader(1, 1, 1, 24)
	paletted[1] = 1
	if _, err := DecodeTGA(paletted); err == nil {
		t.Error("expected error for color-mapped TGA")
	}
}

func TestDecodeRoutesByExtension(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 7, G: 8, B: 9, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	img, err := Decode(buf.Bytes(), "textures/wall.PNG")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 7, G: 8, B: 9, A: 255}) {
		t.Errorf("pixel = %v, want {7 8 9 255}", got)
	}

	if _, err := Decode([]byte("not an image"), "broken.png"); err == nil {
		t.Error("expected error for undecodable data")
	}
}
