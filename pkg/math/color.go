package math

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Common colors.
var (
	White = Color{1, 1, 1, 1}
	Clear = Color{0, 0, 0, 0}
)

// RGBA8 returns the color as 8-bit channels.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}

// Hex formats the color as "#RRGGBBAA".
func (c Color) Hex() string {
	r, g, b, a := c.RGBA8()
	return fmt.Sprintf("#%02X%02X%02X%02X", r, g, b, a)
}

// ParseHex parses "#RRGGBB" or "#RRGGBBAA" (leading '#' optional).
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return Color{}, fmt.Errorf("invalid color %q: expected 6 or 8 hex digits", s)
	}
	if len(s) == 6 {
		s += "FF"
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{
		R: float32((v>>24)&0xFF) / 255,
		G: float32((v>>16)&0xFF) / 255,
		B: float32((v>>8)&0xFF) / 255,
		A: float32(v&0xFF) / 255,
	}, nil
}

// MarshalYAML writes the color as a hex string.
func (c Color) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

// UnmarshalYAML reads a hex string.
func (c *Color) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseHex(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func to8(f float32) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}
