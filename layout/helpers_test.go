package layout

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	godeck "github.com/VantageDataChat/GoDeck"
)

func testEnv(images ImageFetcher) *Env {
	return NewEnv(DefaultTheme(), nil, images, nil)
}

func debugEnv(images ImageFetcher) (*Env, *bytes.Buffer) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	env := NewEnv(DefaultTheme(), nil, images, log)
	return env, &buf
}

func newFrame(env *Env) *godeck.Frame {
	return godeck.NewFrame(env.Canvas.Width, env.Canvas.Height)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// stubFetcher serves one PNG for every URL.
func stubFetcher(t *testing.T) ImageFetcher {
	data := pngBytes(t, 64, 48)
	return ImageFetcherFunc(func(context.Context, string) (Image, error) {
		return Image{Data: data, MIME: "image/png", Width: 64, Height: 48}, nil
	})
}

var errUnreachable = errors.New("host unreachable")

func failingFetcher() ImageFetcher {
	return ImageFetcherFunc(func(context.Context, string) (Image, error) {
		return Image{}, errUnreachable
	})
}

func textNodes(f *godeck.Frame) []*godeck.TextNode {
	var out []*godeck.TextNode
	for _, n := range f.GetChildren() {
		if t, ok := n.(*godeck.TextNode); ok {
			out = append(out, t)
		}
	}
	return out
}

func textsEqual(f *godeck.Frame, s string) []*godeck.TextNode {
	var out []*godeck.TextNode
	for _, t := range textNodes(f) {
		if t.GetCharacters() == s {
			out = append(out, t)
		}
	}
	return out
}

func findText(t *testing.T, f *godeck.Frame, s string) *godeck.TextNode {
	t.Helper()
	found := textsEqual(f, s)
	require.NotEmpty(t, found, "no text node %q", s)
	return found[0]
}

func named(f *godeck.Frame, name string) []godeck.Node {
	var out []godeck.Node
	for _, n := range f.GetChildren() {
		if n.GetName() == name {
			out = append(out, n)
		}
	}
	return out
}

type painted interface {
	GetFills() []godeck.Paint
	GetStrokes() []godeck.Paint
}

func fillOf(t *testing.T, n godeck.Node) godeck.Paint {
	t.Helper()
	p, ok := n.(painted)
	require.True(t, ok)
	require.NotEmpty(t, p.GetFills())
	return p.GetFills()[0]
}

// paletteHex is the set of hex values a theme allows.
func paletteHex(th Theme, extra ...string) map[string]bool {
	out := map[string]bool{}
	for _, h := range th.Palette() {
		out[HexToRGB(h).Hex()] = true
	}
	for _, h := range extra {
		out[HexToRGB(h).Hex()] = true
	}
	return out
}

// frameColors lists every fill, stroke and background color of a frame.
func frameColors(f *godeck.Frame) []godeck.Color {
	var out []godeck.Color
	if bg := f.GetBackground(); bg != nil {
		out = append(out, bg.Colors()...)
	}
	for _, n := range f.GetChildren() {
		p, ok := n.(painted)
		if !ok {
			continue
		}
		for _, fill := range p.GetFills() {
			out = append(out, fill.Colors()...)
		}
		for _, s := range p.GetStrokes() {
			out = append(out, s.Colors()...)
		}
	}
	return out
}
