package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Terrain colors for the generated tiles.
var (
	ColorGround = color.RGBA{96, 148, 72, 255}
	ColorPath   = color.RGBA{178, 152, 104, 255}
	ColorWall   = color.RGBA{120, 120, 128, 255}
	ColorWater  = color.RGBA{64, 112, 196, 255}
	ColorTree   = color.RGBA{40, 96, 48, 255}

	ColorNametag    = color.RGBA{240, 240, 240, 255}
	ColorHover      = color.RGBA{255, 220, 96, 255}
	ColorMessage    = color.RGBA{20, 20, 20, 255}
	ColorMessageBox = color.RGBA{250, 250, 250, 220}
)

// ParseRoleColor parses "#rgb" or "#rrggbb". The empty string is white, which
// leaves the sheet untinted.
func ParseRoleColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{255, 255, 255, 255}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid role color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid role color %q: %w", s, err)
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
}

// TintScale is the per-channel multiplier that lays c over a sprite with the
// given strength. Strength 0 leaves the sprite as is.
func TintScale(c color.RGBA, strength float64) (r, g, b float32) {
	strength = min(max(strength, 0), 1)
	mix := func(v uint8) float32 {
		return float32(1 - strength + strength*float64(v)/255)
	}
	return mix(c.R), mix(c.G), mix(c.B)
}

// Shade darkens c by f in [0,1].
func Shade(c color.RGBA, f float64) color.RGBA {
	f = min(max(f, 0), 1)
	k := 1 - f
	return color.RGBA{uint8(float64(c.R) * k), uint8(float64(c.G) * k), uint8(float64(c.B) * k), c.A}
}
