package layout

import (
	godeck "github.com/VantageDataChat/GoDeck"
)

// AccentLineOptions places a short horizontal bar. Width defaults to 120,
// Thickness to 4 and Color to the theme accent.
type AccentLineOptions struct {
	X, Y      float64
	Width     float64
	Thickness float64
	Color     string
}

func AccentLine(frame *godeck.Frame, env *Env, o AccentLineOptions) *godeck.RectNode {
	if o.Width <= 0 {
		o.Width = 120
	}
	if o.Thickness <= 0 {
		o.Thickness = 4
	}
	r := godeck.NewRect()
	r.SetName("accent-line").SetPosition(o.X, o.Y).SetSize(o.Width, o.Thickness)
	r.SetCornerRadius(o.Thickness / 2)
	ApplyFill(r, orDefault(o.Color, env.Theme.Accent), 1)
	frame.AppendChild(r)
	return r
}

// CardOptions describes a rounded panel. Fill defaults to the theme surface
// and Radius to 16 (negative for square corners); an empty Stroke draws no
// border.
type CardOptions struct {
	X, Y          float64
	Width, Height float64
	Radius        float64
	Fill          string
	Opacity       float64
	Stroke        string
	StrokeWeight  float64
	Shadow        bool
	Name          string
}

func Card(frame *godeck.Frame, env *Env, o CardOptions) *godeck.RectNode {
	if o.Radius < 0 {
		o.Radius = 0
	} else if o.Radius == 0 {
		o.Radius = 16
	}
	r := godeck.NewRect()
	r.SetName(orDefault(o.Name, "card")).SetPosition(o.X, o.Y).SetSize(o.Width, o.Height)
	r.SetCornerRadius(o.Radius)
	ApplyFill(r, orDefault(o.Fill, env.Theme.Surface), opaque(o.Opacity))
	if o.Stroke != "" {
		w := o.StrokeWeight
		if w <= 0 {
			w = 1
		}
		ApplyStroke(r, o.Stroke, w)
	}
	if o.Shadow {
		r.SetShadow(&godeck.DropShadow{Color: godeck.ColorBlack, Alpha: 0.18, OffsetY: 8, Radius: 24})
	}
	frame.AppendChild(r)
	return r
}

// CircleOptions centers an ellipse of equal radii on (CX, CY).
type CircleOptions struct {
	CX, CY  float64
	Radius  float64
	Fill    string
	Opacity float64
	Stroke  string
}

func Circle(frame *godeck.Frame, env *Env, o CircleOptions) *godeck.RectNode {
	e := godeck.NewEllipse()
	e.SetName("circle").SetPosition(o.CX-o.Radius, o.CY-o.Radius).SetSize(2*o.Radius, 2*o.Radius)
	ApplyFill(e, orDefault(o.Fill, env.Theme.Primary), opaque(o.Opacity))
	if o.Stroke != "" {
		ApplyStroke(e, o.Stroke, 2)
	}
	frame.AppendChild(e)
	return e
}

// ConnectorOptions joins two points. Color defaults to the theme border and
// Weight to 2.
type ConnectorOptions struct {
	X1, Y1, X2, Y2 float64
	Weight         float64
	Color          string
	Opacity        float64
}

func Connector(frame *godeck.Frame, env *Env, o ConnectorOptions) *godeck.LineNode {
	if o.Weight <= 0 {
		o.Weight = 2
	}
	l := godeck.NewLine()
	l.SetName("connector").SetPosition(o.X1, o.Y1).SetSize(o.X2-o.X1, o.Y2-o.Y1)
	ApplyStroke(l, orDefault(o.Color, env.Theme.Border), o.Weight)
	l.SetOpacity(opaque(o.Opacity))
	frame.AppendChild(l)
	return l
}

// DividerOptions draws a 1px horizontal rule.
type DividerOptions struct {
	X, Y    float64
	Width   float64
	Color   string
	Opacity float64
}

func Divider(frame *godeck.Frame, env *Env, o DividerOptions) *godeck.LineNode {
	l := Connector(frame, env, ConnectorOptions{
		X1: o.X, Y1: o.Y, X2: o.X + o.Width, Y2: o.Y,
		Weight: 1, Color: o.Color, Opacity: o.Opacity,
	})
	l.SetName("divider")
	return l
}

// BadgeOptions draws a filled circle with a centered label, used for step
// numbers and initials.
type BadgeOptions struct {
	CX, CY    float64
	Radius    float64
	Label     string
	Fill      string
	TextColor string
	Size      float64
}

// NumberBadge appends the circle and then its label.
func NumberBadge(frame *godeck.Frame, env *Env, o BadgeOptions) (*godeck.RectNode, *godeck.TextNode) {
	if o.Radius <= 0 {
		o.Radius = 32
	}
	if o.Size <= 0 {
		o.Size = o.Radius * 0.8
	}
	c := Circle(frame, env, CircleOptions{CX: o.CX, CY: o.CY, Radius: o.Radius, Fill: orDefault(o.Fill, env.Theme.Primary)})
	c.SetName("badge")
	t := CreateStyledText(frame, env, o.Label, TextOptions{
		X:     o.CX - o.Radius,
		Width: 2 * o.Radius,
		Font:  env.Fonts.HeadingBold,
		Size:  o.Size,
		Color: orDefault(o.TextColor, env.Theme.Background),
		Align: godeck.AlignCenter,
	})
	t.SetPosition(o.CX-o.Radius, o.CY-t.GetHeight()/2)
	return c, t
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func opaque(o float64) float64 {
	if o <= 0 {
		return 1
	}
	return o
}
