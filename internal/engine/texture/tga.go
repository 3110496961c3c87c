// Package texture decodes tileset atlas images and reports their dimensions.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// TGA errors.
var (
	ErrTGATruncated   = errors.New("TGA data truncated")
	ErrTGAUnsupported = errors.New("unsupported TGA format")
)

type tgaHeader struct {
	idLength    int
	imageType   byte
	width       int
	height      int
	bpp         int
	topToBottom bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, ErrTGATruncated
	}
	h := tgaHeader{
		idLength:    int(data[0]),
		imageType:   data[2],
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		bpp:         int(data[16]),
		topToBottom: data[17]&0x20 != 0,
	}
	if data[1] != 0 {
		return h, fmt.Errorf("%w: color-mapped", ErrTGAUnsupported)
	}
	if h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE {
		return h, fmt.Errorf("%w: type %d", ErrTGAUnsupported, h.imageType)
	}
	if h.bpp != 24 && h.bpp != 32 {
		return h, fmt.Errorf("%w: %d bits per pixel", ErrTGAUnsupported, h.bpp)
	}
	return h, nil
}

// DecodeTGAConfig returns the dimensions of a TGA image without decoding pixels.
func DecodeTGAConfig(data []byte) (image.Config, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: h.width, Height: h.height}, nil
}

// DecodeTGA decodes uncompressed (type 2) and RLE (type 10) true-color TGA images.
func DecodeTGA(data []byte) (image.Image, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, ErrTGATruncated
	}
	pixels := data[offset:]
	bytesPerPixel := h.bpp / 8

	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	put := func(idx int, c color.RGBA) {
		x := idx % h.width
		y := idx / h.width
		if !h.topToBottom {
			y = h.height - 1 - y
		}
		img.SetRGBA(x, y, c)
	}

	count := h.width * h.height
	if h.imageType == TGATypeUncompressed {
		if len(pixels) < count*bytesPerPixel {
			return nil, ErrTGATruncated
		}
		for i := 0; i < count; i++ {
			put(i, readBGRA(pixels[i*bytesPerPixel:], bytesPerPixel))
		}
		return img, nil
	}

	idx, pos := 0, 0
	for idx < count && pos < len(pixels) {
		packet := pixels[pos]
		pos++
		run := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if pos+bytesPerPixel > len(pixels) {
				return nil, ErrTGATruncated
			}
			c := readBGRA(pixels[pos:], bytesPerPixel)
			pos += bytesPerPixel
			for i := 0; i < run && idx < count; i++ {
				put(idx, c)
				idx++
			}
			continue
		}

		for i := 0; i < run && idx < count; i++ {
			if pos+bytesPerPixel > len(pixels) {
				return nil, ErrTGATruncated
			}
			put(idx, readBGRA(pixels[pos:], bytesPerPixel))
			pos += bytesPerPixel
			idx++
		}
	}
	return img, nil
}

func readBGRA(p []byte, bytesPerPixel int) color.RGBA {
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if bytesPerPixel == 4 {
		c.A = p[3]
	}
	return c
}
