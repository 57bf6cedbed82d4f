package layout

import (
	"context"
	"fmt"
	"math"

	godeck "github.com/VantageDataChat/GoDeck"
)

const maxCTAButtons = 3

// CTA closes a deck: centered title and subtitle over a gradient, then up to
// three pill buttons from the remaining lines.
func CTA(_ context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	c, th := env.Canvas, env.Theme
	GradientBackground(frame, 135, th.Background, th.Surface)
	RadialGlow(frame, GlowOptions{CX: c.CenterX(), CY: c.Height * 0.35, Radius: 600, Color: th.Primary, Opacity: 0.3})
	RadialGlow(frame, GlowOptions{CX: c.Width * 0.15, CY: c.Height * 0.9, Radius: 380, Color: th.Accent, Opacity: 0.18})

	cy := c.CenterY()
	if doc.SectionLabel != "" {
		eyebrow(frame, env, doc.SectionLabel, c.Padding, cy-250, c.ContentWidth(), godeck.AlignCenter, th.Accent)
	}
	AccentLine(frame, env, AccentLineOptions{X: (c.Width - 120) / 2, Y: cy - 200})
	title := CreateStyledText(frame, env, doc.Title, TextOptions{
		X: c.Padding, Y: cy - 160, Width: c.ContentWidth(),
		Font: env.Fonts.HeadingBold, Size: 80, Color: th.Text, LineHeight: 90, Align: godeck.AlignCenter,
		Name: "title",
	})
	y := title.GetY() + title.GetHeight() + 28
	if sub := leadText(doc); sub != "" {
		t := CreateStyledText(frame, env, sub, TextOptions{
			X: c.Padding, Y: y, Width: c.ContentWidth(),
			Font: env.Fonts.Body, Size: 30, Color: th.Text, Opacity: 0.8, Align: godeck.AlignCenter,
			Name: "subtitle",
		})
		y = t.GetY() + t.GetHeight()
	}
	buttons := restLines(doc)
	if len(buttons) > maxCTAButtons {
		buttons = buttons[:maxCTAButtons]
	}
	ctaButtons(frame, env, buttons, y+56)
}

func ctaButtons(frame *godeck.Frame, env *Env, labels []string, y float64) {
	if len(labels) == 0 {
		return
	}
	const (
		height = 72.0
		gap    = 32.0
		size   = 24.0
	)
	th := env.Theme
	widths := make([]float64, len(labels))
	total := gap * float64(len(labels)-1)
	for i, l := range labels {
		labels[i] = stripDash(stripNumber(l))
		widths[i] = math.Max(280, env.measurer().MeasureString(env.Fonts.HeadingBold, size, labels[i])+96)
		total += widths[i]
	}
	x := (env.Canvas.Width - total) / 2
	for i, l := range labels {
		fill, stroke, color := th.Accent, "", th.Background
		if i > 0 {
			fill, stroke, color = th.Surface, th.Accent, th.Accent
		}
		Card(frame, env, CardOptions{
			X: x, Y: y, Width: widths[i], Height: height, Radius: height / 2,
			Fill: fill, Stroke: stroke, StrokeWeight: 2, Name: "button",
		})
		t := CreateStyledText(frame, env, l, TextOptions{
			X: x, Width: widths[i],
			Font: env.Fonts.HeadingBold, Size: size, Color: color, Align: godeck.AlignCenter,
		})
		t.SetPosition(x, y+(height-t.GetHeight())/2)
		x += widths[i] + gap
	}
}

// Quote sets the title as a large pull quote with the first body line as
// attribution.
func Quote(_ context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	c, th := env.Canvas, env.Theme
	SolidBackground(frame, th.Background)
	RadialGlow(frame, GlowOptions{CX: c.Width * 0.85, CY: c.Height * 0.2, Radius: 480, Color: th.Primary, Opacity: 0.18})

	y := c.Padding
	if doc.SectionLabel != "" {
		e := eyebrow(frame, env, doc.SectionLabel, c.Padding, y, c.ContentWidth(), godeck.AlignLeft, th.Accent)
		y += e.GetHeight() + 16
	}
	CreateStyledText(frame, env, "“", TextOptions{
		X: c.Padding, Y: y, Width: 200,
		Font: env.Fonts.HeadingBold, Size: 240, Color: th.Accent, Opacity: 0.35, LineHeight: 240,
		Name: "quote-mark",
	})
	y += 170
	q := CreateStyledText(frame, env, doc.Title, TextOptions{
		X: c.Padding + 40, Y: y, Width: c.ContentWidth() - 80,
		Font: env.Fonts.Heading, Size: 56, Color: th.Text, LineHeight: 72,
		Name: "title",
	})
	if who := leadText(doc); who != "" {
		y = q.GetY() + q.GetHeight() + 48
		AccentLine(frame, env, AccentLineOptions{X: c.Padding + 40, Y: y, Width: 48})
		textWithin(frame, env, "— "+stripDash(who), TextOptions{
			X: c.Padding + 40, Y: y + 24, Width: c.ContentWidth() - 80,
			Font: env.Fonts.Body, Size: 28, Color: th.Accent,
			Name: "attribution",
		}, c.Bottom())
	}
}

// SectionDivider shows a faded slide number behind a centered section title.
func SectionDivider(_ context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	c, th := env.Canvas, env.Theme
	GradientBackground(frame, 90, th.Background, th.Surface)
	RadialGlow(frame, GlowOptions{CX: c.CenterX(), CY: c.CenterY(), Radius: 560, Color: th.Accent, Opacity: 0.15})

	CreateStyledText(frame, env, fmt.Sprintf("%02d", max(doc.SlideNumber, 1)), TextOptions{
		X: c.Padding, Y: c.Padding, Width: c.ContentWidth(),
		Font: env.Fonts.HeadingBold, Size: 280, Color: th.Primary, Opacity: 0.15, LineHeight: 300,
		Align: godeck.AlignCenter, Name: "section-number",
	})
	cy := c.CenterY()
	if doc.SectionLabel != "" {
		eyebrow(frame, env, doc.SectionLabel, c.Padding, cy-80, c.ContentWidth(), godeck.AlignCenter, th.Accent)
	}
	AccentLine(frame, env, AccentLineOptions{X: (c.Width - 120) / 2, Y: cy - 20})
	title := CreateStyledText(frame, env, doc.Title, TextOptions{
		X: c.Padding, Y: cy + 12, Width: c.ContentWidth(),
		Font: env.Fonts.HeadingBold, Size: 80, Color: th.Text, LineHeight: 90, Align: godeck.AlignCenter,
		Name: "title",
	})
	if sub := leadText(doc); sub != "" {
		CreateStyledText(frame, env, sub, TextOptions{
			X: c.Padding, Y: title.GetY() + title.GetHeight() + 24, Width: c.ContentWidth(),
			Font: env.Fonts.Body, Size: 28, Color: th.Text, Opacity: 0.7, Align: godeck.AlignCenter,
			Name: "subtitle",
		})
	}
}

// SplitStatement puts the title on a primary-colored left half and the body
// on the right.
func SplitStatement(_ context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	c, th := env.Canvas, env.Theme
	SolidBackground(frame, th.Background)
	half := c.Width / 2
	Card(frame, env, CardOptions{Width: half, Height: c.Height, Radius: -1, Fill: th.Primary, Name: "panel"})

	colW := half - 2*c.Padding
	title := CreateStyledText(frame, env, doc.Title, TextOptions{
		X: c.Padding, Width: colW,
		Font: env.Fonts.HeadingBold, Size: 64, Color: th.Background, LineHeight: 76,
		Name: "title",
	})
	title.SetPosition(c.Padding, (c.Height-title.GetHeight())/2)
	if doc.SectionLabel != "" {
		eyebrow(frame, env, doc.SectionLabel, c.Padding, title.GetY()-48, colW, godeck.AlignLeft, th.Background)
	}
	AccentLine(frame, env, AccentLineOptions{X: c.Padding, Y: title.GetY() + title.GetHeight() + 32})

	x := half + c.Padding
	if len(doc.StructuredBody) > 0 {
		RenderStructuredBody(frame, doc.StructuredBody, env, c.CenterY()-120, colW, x)
		return
	}
	// Lines start just above center and move up as far as the top padding
	// edge when there are many. Whatever still does not fit is dropped.
	const gap = 24.0
	var lines []*godeck.TextNode
	total := 0.0
	for _, l := range nonEmpty(doc.BodyLines) {
		t := styledText(env, stripDash(l), TextOptions{
			X: x, Width: colW,
			Font: env.Fonts.Body, Size: 32, Color: th.Text, LineHeight: 44,
		})
		lines = append(lines, t)
		total += t.GetHeight() + gap
	}
	y := math.Max(c.Padding, math.Min(c.CenterY()-120, c.Bottom()-total+gap))
	for _, t := range lines {
		if y+t.GetHeight() > c.Bottom() {
			break
		}
		t.SetPosition(x, y)
		frame.AppendChild(t)
		y += t.GetHeight() + gap
	}
}

// VisualHumor is a full-bleed image under a dark overlay with white text.
// It is the one layout allowed to use black and white outside the theme.
func VisualHumor(ctx context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	const (
		white = "#FFFFFF"
		black = "#000000"
	)
	c, th := env.Canvas, env.Theme
	SolidBackground(frame, th.Background)
	if doc.ImageURL != "" {
		PlaceBackgroundImage(ctx, frame, doc.ImageURL, env, 1)
	}
	DarkOverlay(frame, c, black, 0.45)

	title := CreateStyledText(frame, env, doc.Title, TextOptions{
		X: c.Padding, Width: c.ContentWidth(),
		Font: env.Fonts.HeadingBold, Size: 72, Color: white, LineHeight: 84, Align: godeck.AlignCenter,
		Name: "title",
	})
	title.SetPosition(c.Padding, c.Bottom()-160-title.GetHeight())
	if punch := leadText(doc); punch != "" {
		CreateStyledText(frame, env, punch, TextOptions{
			X: c.Padding, Y: title.GetY() + title.GetHeight() + 24, Width: c.ContentWidth(),
			Font: env.Fonts.Body, Size: 32, Color: white, Opacity: 0.9, Align: godeck.AlignCenter,
			Name: "subtitle",
		})
	}
}

// Outline lists the agenda as numbered rows, in two columns past five items.
func Outline(_ context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	c, th := env.Canvas, env.Theme
	SolidBackground(frame, th.Background)
	y := header(frame, env, doc, c.Padding, c.ContentWidth(), th.Accent)

	items := itemLines(doc)
	if len(items) == 0 {
		RenderStructuredBody(frame, doc.StructuredBody, env, y, c.ContentWidth(), c.Padding)
		return
	}
	cols := 1
	if len(items) > 5 {
		cols = 2
	}
	const (
		colGap  = 80.0
		rowMin  = 48.0
		rowPref = 88.0
	)
	avail := c.Bottom() - y
	items = capItems(env, "outline items", items, cols*max(1, int(avail/rowMin)))
	perCol := (len(items) + cols - 1) / cols
	colW := gridColumns(c.ContentWidth(), colGap, cols)
	rowH := math.Min(rowPref, avail/float64(perCol))
	for i, it := range items {
		x := c.Padding + float64(i/perCol)*(colW+colGap)
		ry := y + float64(i%perCol)*rowH
		CreateStyledText(frame, env, fmt.Sprintf("%02d", i+1), TextOptions{
			X: x, Y: ry, Width: 80,
			Font: env.Fonts.HeadingBold, Size: 36, Color: th.Accent,
		})
		CreateStyledText(frame, env, stripDash(stripNumber(it)), TextOptions{
			X: x + 90, Y: ry + 4, Width: colW - 90,
			Font: env.Fonts.Body, Size: 30, Color: th.Text,
		})
		Divider(frame, env, DividerOptions{X: x, Y: ry + rowH - 16, Width: colW, Opacity: 0.6})
	}
}
