package layout

import (
	"context"

	godeck "github.com/VantageDataChat/GoDeck"
)

// eyebrow draws an upper-cased, letter-spaced label above a title.
func eyebrow(frame *godeck.Frame, env *Env, label string, x, y, width float64, align godeck.TextAlign, color string) *godeck.TextNode {
	return CreateStyledText(frame, env, upper(label), TextOptions{
		X: x, Y: y, Width: width,
		Font: env.Fonts.HeadingBold, Size: 20, Color: color, LetterSpacing: 3, Align: align,
		Name: "eyebrow",
	})
}

// header draws the eyebrow, title and accent line at the top of a column and
// returns the y where the body starts.
func header(frame *godeck.Frame, env *Env, doc *SlideDocument, x, width float64, accent string) float64 {
	y := env.Canvas.Padding
	if doc.SectionLabel != "" {
		e := eyebrow(frame, env, doc.SectionLabel, x, y, width, godeck.AlignLeft, accent)
		y += e.GetHeight() + 16
	}
	t := CreateStyledText(frame, env, doc.Title, TextOptions{
		X: x, Y: y, Width: width,
		Font: env.Fonts.HeadingBold, Size: 56, Color: env.Theme.Text, LineHeight: 64,
		Name: "title",
	})
	y += t.GetHeight() + 24
	AccentLine(frame, env, AccentLineOptions{X: x, Y: y, Width: 120, Color: accent})
	return y + 4 + 40
}

// body draws the structured body, or the legacy lines as prefixed rows,
// stopping at the bottom padding edge.
func body(frame *godeck.Frame, env *Env, doc *SlideDocument, x, y, width float64, prefix, prefixColor string) float64 {
	if len(doc.StructuredBody) > 0 {
		return RenderStructuredBody(frame, doc.StructuredBody, env, y, width, x)
	}
	for _, l := range nonEmpty(doc.BodyLines) {
		next, ok := listRow(frame, env, prefix, prefixColor, stripDash(l), env.Fonts.Body, x, y, width, env.bottom())
		if !ok {
			break
		}
		y = next
	}
	return y
}

// Title is the opening slide: centered title over a gradient with an accent
// line above it and the first body line as subtitle.
func Title(_ context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	c, th := env.Canvas, env.Theme
	GradientBackground(frame, 135, th.Background, th.Surface)
	RadialGlow(frame, GlowOptions{CX: c.Width * 0.2, CY: c.Height * 0.25, Radius: 520, Color: th.Primary, Opacity: 0.25})
	RadialGlow(frame, GlowOptions{CX: c.Width * 0.8, CY: c.Height * 0.75, Radius: 460, Color: th.Secondary, Opacity: 0.2})

	cy := c.CenterY()
	if doc.SectionLabel != "" {
		eyebrow(frame, env, doc.SectionLabel, c.Padding, cy-200, c.ContentWidth(), godeck.AlignCenter, th.Accent)
	}
	AccentLine(frame, env, AccentLineOptions{X: (c.Width - 160) / 2, Y: cy - 140, Width: 160})
	title := CreateStyledText(frame, env, doc.Title, TextOptions{
		X: c.Padding, Y: cy - 100, Width: c.ContentWidth(),
		Font: env.Fonts.HeadingBold, Size: 96, Color: th.Text, LineHeight: 104, Align: godeck.AlignCenter,
		Name: "title",
	})
	if sub := leadText(doc); sub != "" {
		CreateStyledText(frame, env, sub, TextOptions{
			X: c.Padding, Y: title.GetY() + title.GetHeight() + 32, Width: c.ContentWidth(),
			Font: env.Fonts.Body, Size: 32, Color: th.Text, Opacity: 0.8, Align: godeck.AlignCenter,
			Name: "subtitle",
		})
	}
}

// splitStyle varies the text/image split between CONTENT, PROBLEM and
// SOLUTION.
type splitStyle struct {
	accent      string
	prefix      string
	prefixColor string
	fallback    string
}

// contentImageRect is the right-hand image region of the split layouts.
func contentImageRect(c Canvas) Rect {
	return Rect{X: c.Padding + c.ContentWidth()*0.58, Y: c.Padding, W: c.ContentWidth() * 0.42, H: c.ContentHeight()}
}

func textImageSplit(ctx context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env, s splitStyle) {
	c := env.Canvas
	textW := c.ContentWidth() * 0.55
	y := header(frame, env, doc, c.Padding, textW, s.accent)
	body(frame, env, doc, c.Padding, y, textW, s.prefix, s.prefixColor)
	if doc.ImageURL != "" {
		PlaceImageWithShadow(ctx, frame, doc.ImageURL, contentImageRect(c), s.fallback, env)
	}
}

// Content is the default layout: text on the left, optional image on the
// right.
func Content(ctx context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	c, th := env.Canvas, env.Theme
	SolidBackground(frame, th.Background)
	RadialGlow(frame, GlowOptions{CX: c.Width * 0.95, CY: c.Height * 0.05, Radius: 420, Color: th.Primary, Opacity: 0.12})
	textImageSplit(ctx, frame, doc, env, splitStyle{
		accent: th.Accent, prefix: "•", prefixColor: th.Accent, fallback: th.Surface,
	})
}

// Problem marks the slide with an error-colored edge and ✕ bullets.
func Problem(ctx context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	c, th := env.Canvas, env.Theme
	SolidBackground(frame, th.Background)
	Card(frame, env, CardOptions{Width: 12, Height: c.Height, Radius: -1, Fill: th.Error, Name: "problem-bar"})
	RadialGlow(frame, GlowOptions{CX: c.Width * 0.9, CY: c.Height * 0.1, Radius: 420, Color: th.Error, Opacity: 0.12})
	textImageSplit(ctx, frame, doc, env, splitStyle{
		accent: th.Error, prefix: "✕", prefixColor: th.Error, fallback: th.Error,
	})
}

// Solution mirrors Problem with a success glow and ✓ bullets.
func Solution(ctx context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	c, th := env.Canvas, env.Theme
	SolidBackground(frame, th.Background)
	RadialGlow(frame, GlowOptions{CX: c.Width * 0.85, CY: c.Height * 0.2, Radius: 520, Color: th.Success, Opacity: 0.16})
	textImageSplit(ctx, frame, doc, env, splitStyle{
		accent: th.Success, prefix: "✓", prefixColor: th.Success, fallback: th.Success,
	})
}
