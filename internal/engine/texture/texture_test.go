package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

// makeTGA builds an uncompressed 32-bit bottom-up TGA.
func makeTGA(width, height int, fill color.RGBA) []byte {
	buf := new(bytes.Buffer)
	header := make([]byte, tgaHeaderSize)
	header[2] = TGATypeUncompressed
	header[12], header[13] = byte(width), byte(width>>8)
	header[14], header[15] = byte(height), byte(height>>8)
	header[16] = 32
	buf.Write(header)
	for i := 0; i < width*height; i++ {
		buf.Write([]byte{fill.B, fill.G, fill.R, fill.A})
	}
	return buf.Bytes()
}

func TestDecodeTGA(t *testing.T) {
	data := makeTGA(4, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("expected 4x2, got %dx%d", b.Dx(), b.Dy())
	}
	r, g, b, _ := img.At(3, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("unexpected pixel (%d, %d, %d)", r>>8, g>>8, b>>8)
	}
}

func TestDecodeTGARLE(t *testing.T) {
	header := make([]byte, tgaHeaderSize)
	header[2] = TGATypeRLE
	header[12] = 3
	header[14] = 1
	header[16] = 24
	// One run packet of 3 identical pixels.
	data := append(header, 0x82, 0x00, 0x00, 0xFF)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	for x := 0; x < 3; x++ {
		r, _, _, a := img.At(x, 0).RGBA()
		if r>>8 != 255 || a>>8 != 255 {
			t.Errorf("pixel %d: expected opaque red", x)
		}
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{name: "short header", data: []byte{0, 0, 2}, want: ErrTGATruncated},
		{name: "truncated pixels", data: makeTGA(4, 4, color.RGBA{})[:30], want: ErrTGATruncated},
		{name: "color mapped", data: func() []byte { d := makeTGA(1, 1, color.RGBA{}); d[1] = 1; return d }(), want: ErrTGAUnsupported},
		{name: "16 bit", data: func() []byte { d := makeTGA(1, 1, color.RGBA{}); d[16] = 16; return d }(), want: ErrTGAUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSize(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 96, 64))

	pngPath := filepath.Join(dir, "atlas.png")
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, src); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	if err := os.WriteFile(pngPath, pngBuf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	bmpPath := filepath.Join(dir, "atlas.bmp")
	var bmpBuf bytes.Buffer
	if err := bmp.Encode(&bmpBuf, src); err != nil {
		t.Fatalf("bmp encode: %v", err)
	}
	if err := os.WriteFile(bmpPath, bmpBuf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	tgaPath := filepath.Join(dir, "atlas.TGA")
	if err := os.WriteFile(tgaPath, makeTGA(96, 64, color.RGBA{A: 255}), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{pngPath, bmpPath, tgaPath} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			w, h, err := Size(path)
			if err != nil {
				t.Fatalf("Size failed: %v", err)
			}
			if w != 96 || h != 64 {
				t.Errorf("expected 96x64, got %dx%d", w, h)
			}

			img, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if img.Bounds().Dx() != 96 || img.Bounds().Dy() != 64 {
				t.Errorf("loaded image has bounds %v", img.Bounds())
			}
		})
	}
}
