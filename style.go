package godeck

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// Color is an RGB color with components normalized to 0..1.
type Color struct {
	R, G, B float64
}

// Predefined colors.
var (
	ColorBlack = Color{0, 0, 0}
	ColorWhite = Color{1, 1, 1}
)

// NewColor parses a "#RRGGBB" or "RRGGBB" hex string. Invalid input yields black.
func NewColor(hex string) Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return ColorBlack
	}
	var v [3]int
	for i := 0; i < 3; i++ {
		h := hexVal(hex[i*2])
		l := hexVal(hex[i*2+1])
		if h < 0 || l < 0 {
			return ColorBlack
		}
		v[i] = h<<4 | l
	}
	return Color{R: float64(v[0]) / 255, G: float64(v[1]) / 255, B: float64(v[2]) / 255}
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return -1
	}
}

// Hex returns the color as an upper-case 6-character hex string without "#".
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", channel(c.R), channel(c.G), channel(c.B))
}

// NRGBA converts the color to a non-premultiplied color with the given opacity.
func (c Color) NRGBA(opacity float64) color.NRGBA {
	return color.NRGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(opacity)}
}

func channel(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// PaintType represents the kind of paint applied to a fill or stroke.
type PaintType int

const (
	PaintSolid PaintType = iota
	PaintLinearGradient
	PaintRadialGradient
)

// GradientStop is one color stop of a gradient. Position runs from 0 to 1.
type GradientStop struct {
	Position float64
	Color    Color
	Opacity  float64
}

// Paint describes a solid color or gradient used for fills, strokes and frame backgrounds.
type Paint struct {
	Type    PaintType
	Color   Color
	Opacity float64
	Stops   []GradientStop
	// Angle is the linear gradient direction in degrees; 0 runs left to right,
	// 90 runs top to bottom.
	Angle float64
	// CenterX, CenterY and Radius position a radial gradient as fractions of the
	// node bounds.
	CenterX float64
	CenterY float64
	Radius  float64
}

// SolidPaint returns a solid paint.
func SolidPaint(c Color, opacity float64) Paint {
	return Paint{Type: PaintSolid, Color: c, Opacity: clampUnit(opacity)}
}

// LinearGradientPaint returns a linear gradient. The angle is normalized to 0–359.
func LinearGradientPaint(angle float64, stops ...GradientStop) Paint {
	return Paint{
		Type:    PaintLinearGradient,
		Opacity: 1,
		Stops:   stops,
		Angle:   math.Mod(math.Mod(angle, 360)+360, 360),
	}
}

// RadialGradientPaint returns a radial gradient centered at (cx, cy) with the given radius,
// all expressed as fractions of the painted node's bounds.
func RadialGradientPaint(cx, cy, radius float64, stops ...GradientStop) Paint {
	return Paint{
		Type:    PaintRadialGradient,
		Opacity: 1,
		Stops:   stops,
		CenterX: cx,
		CenterY: cy,
		Radius:  radius,
	}
}

// Colors returns every color referenced by the paint.
func (p Paint) Colors() []Color {
	if p.Type == PaintSolid {
		return []Color{p.Color}
	}
	out := make([]Color, 0, len(p.Stops))
	for _, s := range p.Stops {
		out = append(out, s.Color)
	}
	return out
}

// DropShadow is an outer shadow effect.
type DropShadow struct {
	Color   Color
	Alpha   float64 // 0..1
	OffsetX float64 // in px
	OffsetY float64
	Radius  float64 // blur radius in px
}

// NewDropShadow creates a soft shadow offset downwards.
func NewDropShadow() *DropShadow {
	return &DropShadow{
		Color:   ColorBlack,
		Alpha:   0.25,
		OffsetY: 8,
		Radius:  24,
	}
}

// FontName identifies a font family and style ("Regular", "Bold", ...).
type FontName struct {
	Family string
	Style  string
}

// IsBold reports whether the style names a bold weight.
func (f FontName) IsBold() bool {
	s := strings.ToLower(f.Style)
	return strings.Contains(s, "bold") || strings.Contains(s, "black") || strings.Contains(s, "heavy")
}

// IsItalic reports whether the style names an italic cut.
func (f FontName) IsItalic() bool {
	s := strings.ToLower(f.Style)
	return strings.Contains(s, "italic") || strings.Contains(s, "oblique")
}

// TextAlign represents horizontal text alignment.
type TextAlign string

const (
	AlignLeft   TextAlign = "l"
	AlignCenter TextAlign = "ctr"
	AlignRight  TextAlign = "r"
)

// ScaleMode controls how image bytes map onto an image node's bounds.
type ScaleMode int

const (
	// ScaleFill covers the node, cropping the overflow around the center.
	ScaleFill ScaleMode = iota
	// ScaleFit letterboxes the image inside the node.
	ScaleFit
	// ScaleStretch ignores the aspect ratio.
	ScaleStretch
)

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
