package layout

import (
	"strings"

	godeck "github.com/VantageDataChat/GoDeck"
)

// HexToRGB converts "#RRGGBB" or "RRGGBB" into normalized channels. Input is
// not validated: digits that do not parse, or are missing, count as zero.
func HexToRGB(hex string) godeck.Color {
	hex = strings.TrimPrefix(hex, "#")
	var ch [3]float64
	for i := range ch {
		if 2*i+2 > len(hex) {
			break
		}
		ch[i] = float64(hexDigit(hex[2*i])<<4|hexDigit(hex[2*i+1])) / 255
	}
	return godeck.Color{R: ch[0], G: ch[1], B: ch[2]}
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 0
}

// SolidPaint returns a solid paint of a hex color.
func SolidPaint(hex string, opacity float64) godeck.Paint {
	return godeck.SolidPaint(HexToRGB(hex), opacity)
}

type fillable interface {
	SetFills(p ...godeck.Paint) *godeck.BaseNode
}

type strokable interface {
	SetStrokes(p ...godeck.Paint) *godeck.BaseNode
	SetStrokeWeight(w float64) *godeck.BaseNode
}

// ApplyFill replaces the node fills with one solid hex color.
func ApplyFill(n fillable, hex string, opacity float64) {
	n.SetFills(SolidPaint(hex, opacity))
}

// ApplyStroke replaces the node strokes with one solid hex color.
func ApplyStroke(n strokable, hex string, weight float64) {
	n.SetStrokes(SolidPaint(hex, 1))
	n.SetStrokeWeight(weight)
}

// TextOptions styles one text node. Zero Opacity means fully opaque and zero
// LineHeight means automatic.
type TextOptions struct {
	X, Y          float64
	Width         float64
	Font          godeck.FontName
	Size          float64
	Color         string
	Opacity       float64
	LineHeight    float64
	LetterSpacing float64
	Align         godeck.TextAlign
	Name          string
}

// CreateStyledText is the only place layouts create text. The node height
// is computed from the wrapped line count before it is appended.
func CreateStyledText(frame *godeck.Frame, env *Env, text string, o TextOptions) *godeck.TextNode {
	t := styledText(env, text, o)
	frame.AppendChild(t)
	return t
}

// styledText builds and fits a text node without appending it.
func styledText(env *Env, text string, o TextOptions) *godeck.TextNode {
	t := godeck.NewText(text)
	t.SetFont(o.Font).SetFontSize(o.Size).SetLineHeight(o.LineHeight).SetLetterSpacing(o.LetterSpacing)
	if o.Align != "" {
		t.SetAlign(o.Align)
	}
	opacity := o.Opacity
	if opacity <= 0 {
		opacity = 1
	}
	t.SetFills(SolidPaint(o.Color, opacity))
	t.SetPosition(o.X, o.Y)
	t.SetSize(o.Width, 0)
	if o.Name != "" {
		t.SetName(o.Name)
	}
	t.Fit(env.measurer())
	return t
}

// textWithin appends the text only if it ends at or above bottom.
func textWithin(frame *godeck.Frame, env *Env, text string, o TextOptions, bottom float64) (*godeck.TextNode, bool) {
	t := styledText(env, text, o)
	if t.GetY()+t.GetHeight() > bottom {
		return t, false
	}
	frame.AppendChild(t)
	return t, true
}
