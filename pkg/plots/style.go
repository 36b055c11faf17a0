package plots

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Marker selects the glyph drawn at each data point. The codes follow
// the usual plotting shorthand: "o" circle, "s" square, "^" triangle,
// "d" diamond, "x" cross, "+" plus, "." point, "ring" open circle.
type Marker string

// LineKind selects the stroke pattern of a line: "-" solid, "--"
// dashed, ":" dotted, "-." dash-dot, "none" for no connecting line.
type LineKind string

var namedColors = map[string]color.NRGBA{
	"black":   {0x00, 0x00, 0x00, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"red":     {0xd6, 0x27, 0x28, 0xff},
	"green":   {0x2c, 0xa0, 0x2c, 0xff},
	"blue":    {0x1f, 0x77, 0xb4, 0xff},
	"orange":  {0xff, 0x7f, 0x0e, 0xff},
	"purple":  {0x94, 0x67, 0xbd, 0xff},
	"brown":   {0x8c, 0x56, 0x4b, 0xff},
	"pink":    {0xe3, 0x77, 0xc2, 0xff},
	"gray":    {0x7f, 0x7f, 0x7f, 0xff},
	"grey":    {0x7f, 0x7f, 0x7f, 0xff},
	"olive":   {0xbc, 0xbd, 0x22, 0xff},
	"cyan":    {0x17, 0xbe, 0xcf, 0xff},
	"magenta": {0xd6, 0x27, 0x9e, 0xff},
	"yellow":  {0xe6, 0xc8, 0x00, 0xff},
	"navy":    {0x00, 0x00, 0x80, 0xff},
	"teal":    {0x00, 0x80, 0x80, 0xff},
	"gold":    {0xff, 0xd7, 0x00, 0xff},
	"crimson": {0xdc, 0x14, 0x3c, 0xff},
}

// parseColor resolves a named color or a #rrggbb / #rrggbbaa hex code.
func parseColor(s string) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[name]; ok {
		return c, nil
	}
	if strings.HasPrefix(name, "#") {
		hex := name[1:]
		if len(hex) != 6 && len(hex) != 8 {
			return nil, fmt.Errorf("invalid hex color %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid hex color %q", s)
		}
		c := color.NRGBA{A: 0xff}
		if len(hex) == 8 {
			c.A = uint8(v)
			v >>= 8
		}
		c.B = uint8(v)
		c.G = uint8(v >> 8)
		c.R = uint8(v >> 16)
		return c, nil
	}
	return nil, fmt.Errorf("unknown color %q", s)
}

// withAlpha scales the alpha channel of c by a (clamped to [0, 1]).
func withAlpha(c color.Color, a float64) color.Color {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	r, g, b, _ := c.RGBA()
	return color.NRGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(a * 0xff),
	}
}

func glyphShape(m Marker) (draw.GlyphDrawer, error) {
	switch m {
	case "", "o":
		return draw.CircleGlyph{}, nil
	case "s":
		return draw.SquareGlyph{}, nil
	case "^":
		return draw.TriangleGlyph{}, nil
	case "d":
		return draw.PyramidGlyph{}, nil
	case "x":
		return draw.CrossGlyph{}, nil
	case "+":
		return draw.PlusGlyph{}, nil
	case ".":
		return draw.CircleGlyph{}, nil
	case "ring":
		return draw.RingGlyph{}, nil
	case "box":
		return draw.BoxGlyph{}, nil
	default:
		return nil, fmt.Errorf("unknown marker %q", m)
	}
}

func dashPattern(k LineKind, width vg.Length) ([]vg.Length, error) {
	switch k {
	case "", "-":
		return nil, nil
	case "--":
		return []vg.Length{3 * width, 2 * width}, nil
	case ":":
		return []vg.Length{width, 1.5 * width}, nil
	case "-.":
		return []vg.Length{3 * width, 1.5 * width, width, 1.5 * width}, nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown line style %q", k)
	}
}
