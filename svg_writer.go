package godeck

import (
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo/float"
)

// SVGWriter writes each frame as a standalone SVG document. Save writes one
// file per frame; the path must contain a %d verb for the 1-based frame number.
type SVGWriter struct {
	deck *Deck
	// Measurer wraps text the same way the layout engine did. Nil uses an
	// embedded font cache.
	Measurer TextMeasurer
}

// Save writes every frame to fmt.Sprintf(pattern, n).
func (w *SVGWriter) Save(pattern string) error {
	if w.deck == nil {
		return fmt.Errorf("deck is nil")
	}
	if !strings.Contains(pattern, "%") {
		return fmt.Errorf("svg path pattern %q has no frame number verb", pattern)
	}
	for i, f := range w.deck.frames {
		frame := f
		if err := saveWith(fmt.Sprintf(pattern, i+1), func(out io.Writer) error {
			return WriteFrameSVG(out, frame, w.Measurer)
		}); err != nil {
			return fmt.Errorf("frame %d: %w", i+1, err)
		}
	}
	return nil
}

// WriteTo writes the first frame. Decks with several frames should use Save.
func (w *SVGWriter) WriteTo(out io.Writer) error {
	if w.deck == nil || len(w.deck.frames) == 0 {
		return fmt.Errorf("deck has no frames")
	}
	return WriteFrameSVG(out, w.deck.frames[0], w.Measurer)
}

// WriteFrameSVG renders one frame as SVG. Gradients and shadows are emitted as
// defs; images are embedded as data URIs.
func WriteFrameSVG(out io.Writer, f *Frame, m TextMeasurer) error {
	if f == nil {
		return fmt.Errorf("frame is nil")
	}
	if m == nil {
		m = NewEmbeddedFontCache()
	}
	cw := &countingWriter{w: out}
	doc := svg.New(cw)
	doc.Start(f.width, f.height)

	sw := &svgFrameWriter{doc: doc, measurer: m}
	if f.background != nil {
		doc.Rect(0, 0, f.width, f.height, sw.fillStyle(*f.background, 1))
	}
	for _, n := range f.children {
		switch nd := n.(type) {
		case *RectNode:
			sw.rect(nd)
		case *LineNode:
			sw.line(nd)
		case *TextNode:
			sw.text(nd)
		case *ImageNode:
			sw.image(nd)
		}
	}
	doc.End()
	return cw.err
}

// countingWriter remembers the first write error; svgo discards them.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}

type svgFrameWriter struct {
	doc      *svg.SVG
	measurer TextMeasurer
	nextID   int
}

func (s *svgFrameWriter) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s%d", prefix, s.nextID)
}

func svgColor(c Color) string { return "#" + c.Hex() }

// gradientStops converts stops to svgo offset colors (offset in percent).
func gradientStops(p Paint, opacity float64) []svg.Offcolor {
	out := make([]svg.Offcolor, 0, len(p.Stops))
	for _, st := range p.Stops {
		out = append(out, svg.Offcolor{
			Offset:  uint8(math.Round(clampUnit(st.Position) * 100)),
			Color:   svgColor(st.Color),
			Opacity: clampUnit(st.Opacity * p.Opacity * opacity),
		})
	}
	return out
}

// fillStyle returns a style attribute for the paint, defining a gradient first
// when needed.
func (s *svgFrameWriter) fillStyle(p Paint, opacity float64) string {
	switch p.Type {
	case PaintLinearGradient:
		id := s.id("lg")
		x1, y1, x2, y2 := linearEndpoints(p.Angle, 0, 0, 100, 100)
		pct := func(v float64) uint8 { return uint8(math.Round(math.Max(0, math.Min(100, v)))) }
		s.doc.Def()
		s.doc.LinearGradient(id, pct(x1), pct(y1), pct(x2), pct(y2), gradientStops(p, opacity))
		s.doc.DefEnd()
		return fmt.Sprintf("fill:url(#%s)", id)
	case PaintRadialGradient:
		id := s.id("rg")
		pct := func(v float64) uint8 { return uint8(math.Round(math.Max(0, math.Min(100, v*100)))) }
		s.doc.Def()
		s.doc.RadialGradient(id, pct(p.CenterX), pct(p.CenterY), pct(p.Radius), pct(p.CenterX), pct(p.CenterY), gradientStops(p, opacity))
		s.doc.DefEnd()
		return fmt.Sprintf("fill:url(#%s)", id)
	default:
		return fmt.Sprintf("fill:%s;fill-opacity:%.3f", svgColor(p.Color), clampUnit(p.Opacity*opacity))
	}
}

func (s *svgFrameWriter) strokeStyle(b *BaseNode) string {
	if len(b.strokes) == 0 || b.strokeWeight <= 0 {
		return ""
	}
	p := b.strokes[len(b.strokes)-1]
	return fmt.Sprintf(";stroke:%s;stroke-opacity:%.3f;stroke-width:%.2f", svgColor(p.Color), clampUnit(p.Opacity*b.opacity), b.strokeWeight)
}

// shadowFilter defines a blurred drop shadow filter and returns its reference.
func (s *svgFrameWriter) shadowFilter(sh *DropShadow) string {
	if sh == nil {
		return ""
	}
	id := s.id("sh")
	s.doc.Def()
	s.doc.Filter(id, `x="-50%" y="-50%" width="200%" height="200%"`)
	s.doc.FeGaussianBlur(svg.Filterspec{In: "SourceAlpha", Result: "blur"}, sh.Radius/2, sh.Radius/2)
	s.doc.FeOffset(svg.Filterspec{In: "blur", Result: "offset"}, int(math.Round(sh.OffsetX)), int(math.Round(sh.OffsetY)))
	s.doc.FeFlood(svg.Filterspec{Result: "color"}, svgColor(sh.Color), sh.Alpha)
	s.doc.FeComposite(svg.Filterspec{In: "color", In2: "offset", Result: "shadow"}, "in", 0, 0, 0, 0)
	s.doc.FeMerge([]string{"shadow", "SourceGraphic"})
	s.doc.Fend()
	s.doc.DefEnd()
	return fmt.Sprintf(`filter="url(#%s)"`, id)
}

func (s *svgFrameWriter) rect(n *RectNode) {
	style := "fill:none"
	if len(n.fills) > 0 {
		style = s.fillStyle(n.fills[len(n.fills)-1], n.opacity)
	}
	style += s.strokeStyle(&n.BaseNode)
	attrs := []string{style}
	if f := s.shadowFilter(n.shadow); f != "" {
		attrs = append(attrs, f)
	}
	switch {
	case n.ellipse:
		s.doc.Ellipse(n.x+n.width/2, n.y+n.height/2, n.width/2, n.height/2, attrs...)
	case n.cornerRadius > 0:
		r := math.Min(n.cornerRadius, math.Min(n.width, n.height)/2)
		s.doc.Roundrect(n.x, n.y, n.width, n.height, r, r, attrs...)
	default:
		s.doc.Rect(n.x, n.y, n.width, n.height, attrs...)
	}
}

func (s *svgFrameWriter) line(n *LineNode) {
	if len(n.strokes) == 0 {
		return
	}
	x1, y1, x2, y2 := n.Endpoints()
	s.doc.Line(x1, y1, x2, y2, "fill:none"+s.strokeStyle(&n.BaseNode))
}

func (s *svgFrameWriter) text(n *TextNode) {
	if strings.TrimSpace(n.characters) == "" || len(n.fills) == 0 {
		return
	}
	fill := n.fills[0]
	anchor := "start"
	x := n.x
	switch n.align {
	case AlignCenter:
		anchor = "middle"
		x = n.x + n.width/2
	case AlignRight:
		anchor = "end"
		x = n.x + n.width
	}
	weight := "normal"
	if n.font.IsBold() {
		weight = "bold"
	}
	style := fmt.Sprintf("fill:%s;fill-opacity:%.3f;font-family:'%s',sans-serif;font-size:%.2fpx;font-weight:%s;text-anchor:%s;dominant-baseline:central",
		svgColor(fill.Color), clampUnit(fill.Opacity*n.opacity), n.font.Family, n.fontSize, weight, anchor)
	if n.letterSpacing != 0 {
		style += fmt.Sprintf(";letter-spacing:%.2fpx", n.letterSpacing)
	}

	lineH := n.GetLineHeight()
	s.doc.Gstyle(style)
	for i, line := range WrapText(s.measurer, n.font, n.fontSize, n.letterSpacing, n.characters, n.width) {
		if line == "" {
			continue
		}
		s.doc.Text(x, n.y+float64(i)*lineH+lineH/2, line, `xml:space="preserve"`)
	}
	s.doc.Gend()
}

func (s *svgFrameWriter) image(n *ImageNode) {
	if len(n.data) == 0 {
		return
	}
	mime := n.mimeType
	if mime == "" {
		mime = "image/png"
	}
	href := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(n.data)

	aspect := `preserveAspectRatio="xMidYMid slice"`
	switch n.scaleMode {
	case ScaleFit:
		aspect = `preserveAspectRatio="xMidYMid meet"`
	case ScaleStretch:
		aspect = `preserveAspectRatio="none"`
	}
	attrs := []string{aspect}
	if n.opacity < 1 {
		attrs = append(attrs, fmt.Sprintf(`opacity="%.3f"`, n.opacity))
	}

	if n.shadow != nil {
		// The shadow is cast by a hidden silhouette so the clip does not cut it off.
		f := s.shadowFilter(n.shadow)
		r := math.Min(n.cornerRadius, math.Min(n.width, n.height)/2)
		s.doc.Roundrect(n.x, n.y, n.width, n.height, r, r, "fill:"+svgColor(ColorBlack)+";fill-opacity:0.001", f)
	}

	w := int(math.Round(n.width))
	h := int(math.Round(n.height))
	if n.cornerRadius > 0 {
		id := s.id("clip")
		r := math.Min(n.cornerRadius, math.Min(n.width, n.height)/2)
		s.doc.ClipPath(fmt.Sprintf(`id="%s"`, id))
		s.doc.Roundrect(n.x, n.y, n.width, n.height, r, r)
		s.doc.ClipEnd()
		s.doc.Group(fmt.Sprintf(`clip-path="url(#%s)"`, id))
		s.doc.Image(n.x, n.y, w, h, href, attrs...)
		s.doc.Gend()
		return
	}
	s.doc.Image(n.x, n.y, w, h, href, attrs...)
}
