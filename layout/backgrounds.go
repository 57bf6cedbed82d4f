package layout

import (
	godeck "github.com/VantageDataChat/GoDeck"
)

// SolidBackground paints the frame background one color.
func SolidBackground(frame *godeck.Frame, hex string) {
	frame.SetBackground(SolidPaint(hex, 1))
}

// GradientBackground paints the frame background with evenly spaced stops.
// Fewer than two colors fall back to a solid background.
func GradientBackground(frame *godeck.Frame, angle float64, hexes ...string) {
	switch len(hexes) {
	case 0:
		return
	case 1:
		SolidBackground(frame, hexes[0])
		return
	}
	stops := make([]godeck.GradientStop, len(hexes))
	for i, h := range hexes {
		stops[i] = godeck.GradientStop{
			Position: float64(i) / float64(len(hexes)-1),
			Color:    HexToRGB(h),
			Opacity:  1,
		}
	}
	frame.SetBackground(godeck.LinearGradientPaint(angle, stops...))
}

// GlowOptions places a soft radial glow centered on (CX, CY).
type GlowOptions struct {
	CX, CY  float64
	Radius  float64
	Color   string
	Opacity float64
}

// RadialGlow appends an ellipse filled with a radial gradient that fades from
// Color at Opacity to fully transparent at the rim.
func RadialGlow(frame *godeck.Frame, o GlowOptions) *godeck.RectNode {
	c := HexToRGB(o.Color)
	e := godeck.NewEllipse()
	e.SetName("glow").SetPosition(o.CX-o.Radius, o.CY-o.Radius).SetSize(2*o.Radius, 2*o.Radius)
	e.SetFills(godeck.RadialGradientPaint(0.5, 0.5, 0.5,
		godeck.GradientStop{Position: 0, Color: c, Opacity: opaque(o.Opacity)},
		godeck.GradientStop{Position: 1, Color: c, Opacity: 0},
	))
	frame.AppendChild(e)
	return e
}

// DarkOverlay covers the whole canvas with a translucent rectangle.
func DarkOverlay(frame *godeck.Frame, canvas Canvas, hex string, opacity float64) *godeck.RectNode {
	r := godeck.NewRect()
	r.SetName("overlay").SetPosition(0, 0).SetSize(canvas.Width, canvas.Height)
	ApplyFill(r, hex, opacity)
	frame.AppendChild(r)
	return r
}
