package capture

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSavePixelsFlipsRows(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, "shot")

	// 1x2 image: bottom row red, top row blue, in GL readback order
	// (bottom row first).
	pixels := []byte{
		255, 0, 0, 255, // row 0 (bottom)
		0, 0, 255, 255, // row 1 (top)
	}

	path, err := c.SavePixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("SavePixels: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("screenshot written to %s, want directory %s", path, dir)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "shot_") || !strings.HasSuffix(base, ".png") {
		t.Errorf("unexpected screenshot name %q", base)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open screenshot: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode screenshot: %v", err)
	}

	r, _, b, _ := img.At(0, 0).RGBA()
	if r != 0 || b != 0xffff {
		t.Errorf("top pixel = (%d, %d), want blue after flip", r, b)
	}
	r, _, b, _ = img.At(0, 1).RGBA()
	if r != 0xffff || b != 0 {
		t.Errorf("bottom pixel = (%d, %d), want red after flip", r, b)
	}
}

func TestSavePixelsRejectsShortBuffer(t *testing.T) {
	c := New(t.TempDir(), "shot")

	if _, err := c.SavePixels(make([]byte, 7), 2, 2); err == nil {
		t.Error("expected error for truncated pixel buffer")
	}
}

func TestSavePixelsCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "screenshots")
	c := New(dir, "shot")

	pixels := make([]byte, 4)
	if _, err := c.SavePixels(pixels, 1, 1); err != nil {
		t.Fatalf("SavePixels: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output directory not created: %v", err)
	}
}
