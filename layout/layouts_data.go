package layout

import (
	"context"
	"math"

	godeck "github.com/VantageDataChat/GoDeck"
)

// DataMetrics renders metric cards across the full content width. Legacy
// "label: value" lines become one metrics grid; other lines follow it as
// paragraphs.
func DataMetrics(_ context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	c, th := env.Canvas, env.Theme
	SolidBackground(frame, th.Background)
	RadialGlow(frame, GlowOptions{CX: c.Width * 0.9, CY: c.Height * 0.1, Radius: 420, Color: th.Primary, Opacity: 0.12})
	y := header(frame, env, doc, c.Padding, c.ContentWidth(), th.Accent)

	blocks := []Block(doc.StructuredBody)
	if len(blocks) == 0 {
		blocks = legacyMetricBlocks(doc.BodyLines)
	}
	RenderStructuredBody(frame, blocks, env, y, c.Width-2*c.Padding, c.Padding)
}

func legacyMetricBlocks(lines []string) []Block {
	var grid MetricGrid
	var rest []Block
	for _, l := range nonEmpty(lines) {
		if m, ok := parseMetricLine(l); ok {
			grid.Items = append(grid.Items, m)
			continue
		}
		rest = append(rest, Paragraph{Text: stripDash(l)})
	}
	if len(grid.Items) == 0 {
		return rest
	}
	return append([]Block{grid}, rest...)
}

// MetricsHighlight puts the first metric center stage at hero size and the
// rest in a grid below it.
func MetricsHighlight(_ context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	c, th := env.Canvas, env.Theme
	SolidBackground(frame, th.Background)
	RadialGlow(frame, GlowOptions{CX: c.CenterX(), CY: c.Height * 0.45, Radius: 600, Color: th.Accent, Opacity: 0.18})

	y := c.Padding
	if doc.SectionLabel != "" {
		e := eyebrow(frame, env, doc.SectionLabel, c.Padding, y, c.ContentWidth(), godeck.AlignCenter, th.Accent)
		y += e.GetHeight() + 16
	}
	title := CreateStyledText(frame, env, doc.Title, TextOptions{
		X: c.Padding, Y: y, Width: c.ContentWidth(),
		Font: env.Fonts.HeadingBold, Size: 48, Color: th.Text, Align: godeck.AlignCenter,
		Name: "title",
	})
	y = title.GetY() + title.GetHeight() + 40

	metrics := metricsOf(doc)
	if len(metrics) == 0 {
		if len(doc.StructuredBody) > 0 {
			RenderStructuredBody(frame, doc.StructuredBody, env, y, c.ContentWidth(), c.Padding)
			return
		}
		lead := leadText(doc)
		if lead == "" {
			return
		}
		metrics = []Metric{{Value: lead}}
	}
	hero := metrics[0]
	v := CreateStyledText(frame, env, hero.Value, TextOptions{
		X: c.Padding, Y: y, Width: c.ContentWidth(),
		Font: env.Fonts.HeadingBold, Size: 160, Color: th.Accent, LineHeight: 176, Align: godeck.AlignCenter,
		Name: "hero-value",
	})
	y = v.GetY() + v.GetHeight() + 8
	if hero.Label != "" {
		l := CreateStyledText(frame, env, hero.Label, TextOptions{
			X: c.Padding, Y: y, Width: c.ContentWidth(),
			Font: env.Fonts.Body, Size: 32, Color: th.Text, Opacity: 0.8, Align: godeck.AlignCenter,
			Name: "hero-label",
		})
		y = l.GetY() + l.GetHeight()
	}
	AccentLine(frame, env, AccentLineOptions{X: (c.Width - 120) / 2, Y: y + 32})
	if rest := metrics[1:]; len(rest) > 0 {
		RenderStructuredBody(frame, []Block{MetricGrid{Items: rest}}, env, y+80, c.ContentWidth(), c.Padding)
	}
}

// MarketSizing draws up to three concentric circles (TAM, SAM, SOM) with a
// legend of their values to the right.
func MarketSizing(_ context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	c, th := env.Canvas, env.Theme
	SolidBackground(frame, th.Background)
	y := header(frame, env, doc, c.Padding, c.ContentWidth(), th.Accent)

	markets := metricsOf(doc)
	if len(markets) == 0 {
		RenderStructuredBody(frame, doc.StructuredBody, env, y, c.ContentWidth(), c.Padding)
		return
	}
	if len(markets) > 3 {
		markets = markets[:3]
	}
	colors := []string{th.Primary, th.Secondary, th.Accent}
	opacity := []float64{0.25, 0.4, 0.85}
	scale := []float64{1, 0.68, 0.38}

	avail := c.Bottom() - y
	maxR := math.Min(avail/2, c.ContentWidth()*0.25)
	cx := c.Padding + c.ContentWidth()*0.28
	cy := y + avail/2
	for i := range markets {
		Circle(frame, env, CircleOptions{CX: cx, CY: cy, Radius: maxR * scale[i], Fill: colors[i], Opacity: opacity[i]})
	}

	lx := c.Padding + c.ContentWidth()*0.6
	lw := c.Right() - lx
	ly := cy - float64(len(markets))*130/2
	for i, m := range markets {
		Circle(frame, env, CircleOptions{CX: lx + 14, CY: ly + 26, Radius: 14, Fill: colors[i]})
		CreateStyledText(frame, env, upper(m.Label), TextOptions{
			X: lx + 48, Y: ly, Width: lw - 48,
			Font: env.Fonts.HeadingBold, Size: 22, Color: th.Text, Opacity: 0.7, LetterSpacing: 2,
		})
		CreateStyledText(frame, env, m.Value, TextOptions{
			X: lx + 48, Y: ly + 34, Width: lw - 48,
			Font: env.Fonts.HeadingBold, Size: 48, Color: th.Text,
		})
		ly += 130
	}
}

// Architecture shows a diagram image across the full width, or stacked layer
// cards joined by connectors when there is no image.
func Architecture(ctx context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	c, th := env.Canvas, env.Theme
	SolidBackground(frame, th.Background)
	y := header(frame, env, doc, c.Padding, c.ContentWidth(), th.Accent)
	region := Rect{X: c.Padding, Y: y, W: c.ContentWidth(), H: c.Bottom() - y}

	if doc.ImageURL != "" {
		PlaceImageWithShadow(ctx, frame, doc.ImageURL, region, th.Surface, env)
		return
	}
	layers := itemLines(doc)
	if len(layers) == 0 {
		RenderStructuredBody(frame, doc.StructuredBody, env, y, c.ContentWidth(), c.Padding)
		return
	}
	const (
		gap       = 24.0
		layerPref = 120.0
		layerMin  = 56.0
	)
	layers = capItems(env, "layers", layers, gridRows(region.H, layerMin, gap))
	layerH := fitHeight(layerPref, region.H, gap, len(layers))
	for i, l := range layers {
		ly := y + float64(i)*(layerH+gap)
		if i > 0 {
			Connector(frame, env, ConnectorOptions{X1: c.CenterX(), Y1: ly - gap, X2: c.CenterX(), Y2: ly})
		}
		Card(frame, env, CardOptions{X: c.Padding, Y: ly, Width: c.ContentWidth(), Height: layerH, Radius: 16, Stroke: th.Border, Name: "layer"})
		label, desc := splitLabel(stripDash(stripNumber(l)))
		lt := CreateStyledText(frame, env, label, TextOptions{
			X: c.Padding + 32, Width: c.ContentWidth() * 0.3,
			Font: env.Fonts.HeadingBold, Size: 28, Color: th.Primary,
		})
		lt.SetPosition(c.Padding+32, ly+(layerH-lt.GetHeight())/2)
		if desc != "" {
			dt := CreateStyledText(frame, env, desc, TextOptions{
				X: c.Padding + c.ContentWidth()*0.35, Width: c.ContentWidth() * 0.62,
				Font: env.Fonts.Body, Size: 22, Color: th.Text, Opacity: 0.8,
			})
			dt.SetPosition(c.Padding+c.ContentWidth()*0.35, ly+(layerH-dt.GetHeight())/2)
		}
	}
}

// ProductShowcase gives the image most of the slide with a narrow text
// column on the left.
func ProductShowcase(ctx context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	c, th := env.Canvas, env.Theme
	SolidBackground(frame, th.Background)
	RadialGlow(frame, GlowOptions{CX: c.Width * 0.7, CY: c.CenterY(), Radius: 620, Color: th.Primary, Opacity: 0.15})

	textW := c.ContentWidth() * 0.35
	y := header(frame, env, doc, c.Padding, textW, th.Accent)
	body(frame, env, doc, c.Padding, y, textW, "•", th.Accent)
	if doc.ImageURL != "" {
		PlaceImageWithShadow(ctx, frame, doc.ImageURL, Rect{
			X: c.Padding + c.ContentWidth()*0.40, Y: c.Padding,
			W: c.ContentWidth() * 0.60, H: c.ContentHeight(),
		}, th.Primary, env)
	}
}
