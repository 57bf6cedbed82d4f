package layout

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	godeck "github.com/VantageDataChat/GoDeck"
)

func TestHexToRGB(t *testing.T) {
	c := HexToRGB("#FF8000")
	assert.InDelta(t, 1.0, c.R, 1e-9)
	assert.InDelta(t, 128.0/255, c.G, 1e-9)
	assert.InDelta(t, 0.0, c.B, 1e-9)

	assert.Equal(t, c, HexToRGB("ff8000"))
	assert.Equal(t, 0.0, HexToRGB("#GG0000").R, "bad digits count as zero")
	short := HexToRGB("#FF")
	assert.InDelta(t, 1.0, short.R, 1e-9)
	assert.Equal(t, 0.0, short.G)
}

func TestLoadFontsFallback(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	fonts := LoadFonts(godeck.NewEmbeddedFontCache(), Theme{HeadingFont: "No Such Font 123", BodyFont: "Go"}, log)

	assert.Equal(t, godeck.FontName{Family: "Go", Style: "Regular"}, fonts.Heading)
	assert.Equal(t, godeck.FontName{Family: "Go", Style: "Bold"}, fonts.HeadingBold)
	assert.Equal(t, "Go", fonts.Body.Family)
	assert.Contains(t, buf.String(), "font family unavailable")
	assert.Contains(t, buf.String(), "No Such Font 123")
}

func TestCreateStyledText(t *testing.T) {
	env := testEnv(nil)
	f := newFrame(env)
	txt := CreateStyledText(f, env, "one two three four five six seven", TextOptions{
		X: 10, Y: 20, Width: 120,
		Font: env.Fonts.Body, Size: 24, Color: env.Theme.Text, LineHeight: 30, Opacity: 0.5,
		Align: godeck.AlignCenter,
	})
	require.Equal(t, 1, f.GetChildCount())
	assert.Equal(t, 10.0, txt.GetX())
	assert.Equal(t, 120.0, txt.GetWidth())
	assert.Equal(t, godeck.AlignCenter, txt.GetAlign())
	lines := godeck.WrapText(env.Measurer, env.Fonts.Body, 24, 0, txt.GetCharacters(), 120)
	assert.Greater(t, len(lines), 1)
	assert.Equal(t, float64(len(lines))*30, txt.GetHeight())
	assert.InDelta(t, 0.5, txt.GetFills()[0].Opacity, 1e-9)
}

func TestBuilders(t *testing.T) {
	env := testEnv(nil)
	f := newFrame(env)

	line := AccentLine(f, env, AccentLineOptions{X: 5, Y: 6})
	assert.Equal(t, 120.0, line.GetWidth())
	assert.Equal(t, 4.0, line.GetHeight())
	assert.Equal(t, HexToRGB(env.Theme.Accent), line.GetFills()[0].Color)

	card := Card(f, env, CardOptions{Width: 100, Height: 50, Stroke: env.Theme.Border, Shadow: true})
	assert.Equal(t, 16.0, card.GetCornerRadius())
	assert.Equal(t, HexToRGB(env.Theme.Surface), card.GetFills()[0].Color)
	assert.Equal(t, 1.0, card.GetStrokeWeight())
	assert.NotNil(t, card.GetShadow())

	square := Card(f, env, CardOptions{Width: 10, Height: 10, Radius: -1})
	assert.Equal(t, 0.0, square.GetCornerRadius())

	circle := Circle(f, env, CircleOptions{CX: 50, CY: 60, Radius: 10})
	assert.True(t, circle.IsEllipse())
	assert.Equal(t, 40.0, circle.GetX())
	assert.Equal(t, 20.0, circle.GetWidth())

	conn := Connector(f, env, ConnectorOptions{X1: 0, Y1: 0, X2: 30, Y2: 40})
	x1, y1, x2, y2 := conn.Endpoints()
	assert.Equal(t, []float64{0, 0, 30, 40}, []float64{x1, y1, x2, y2})
	assert.Equal(t, 2.0, conn.GetStrokeWeight())

	div := Divider(f, env, DividerOptions{X: 10, Y: 20, Width: 300})
	assert.Equal(t, "divider", div.GetName())
	assert.Equal(t, 0.0, div.GetHeight())

	c, label := NumberBadge(f, env, BadgeOptions{CX: 100, CY: 100, Radius: 30, Label: "7"})
	assert.Equal(t, 60.0, c.GetWidth())
	assert.Equal(t, "7", label.GetCharacters())
	assert.InDelta(t, 100, label.GetY()+label.GetHeight()/2, 1e-9)
}

func TestBackgrounds(t *testing.T) {
	env := testEnv(nil)
	f := newFrame(env)

	GradientBackground(f, 135, "#000000", "#FFFFFF")
	bg := f.GetBackground()
	require.NotNil(t, bg)
	assert.Equal(t, godeck.PaintLinearGradient, bg.Type)
	require.Len(t, bg.Stops, 2)
	assert.Equal(t, 1.0, bg.Stops[1].Position)

	GradientBackground(f, 0, "#102030")
	assert.Equal(t, godeck.PaintSolid, f.GetBackground().Type)

	glow := RadialGlow(f, GlowOptions{CX: 100, CY: 100, Radius: 50, Color: "#FF0000", Opacity: 0.4})
	p := glow.GetFills()[0]
	assert.Equal(t, godeck.PaintRadialGradient, p.Type)
	assert.Equal(t, 0.4, p.Stops[0].Opacity)
	assert.Equal(t, 0.0, p.Stops[1].Opacity)

	ov := DarkOverlay(f, env.Canvas, "#000000", 0.45)
	assert.Equal(t, 1920.0, ov.GetWidth())
	assert.Equal(t, 0.45, ov.GetFills()[0].Opacity)
}
