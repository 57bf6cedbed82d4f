package godeck

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ImageFormat represents the output image format.
type ImageFormat int

const (
	ImageFormatPNG ImageFormat = iota
	ImageFormatJPEG
)

// RenderOptions configures frame-to-image rendering.
type RenderOptions struct {
	// Width is the output image width in pixels. Height is calculated from the frame aspect ratio.
	// Default: the frame width (1:1 with canvas pixels).
	Width int
	// Format is the output image format (PNG or JPEG).
	Format ImageFormat
	// JPEGQuality is the JPEG quality (1-100). Default: 90.
	JPEGQuality int
	// BackgroundColor is painted below the frame background. Nil means white.
	BackgroundColor *color.NRGBA
	// FontDirs specifies additional directories to search for TrueType/OpenType fonts.
	FontDirs []string
	// FontCache allows sharing a pre-configured FontCache across renders.
	// If nil, a new FontCache is created using FontDirs.
	FontCache *FontCache
}

// DefaultRenderOptions returns default rendering options.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Format:      ImageFormatPNG,
		JPEGQuality: 90,
	}
}

// RenderFrame rasterizes a frame. Nodes are painted in z-order.
func RenderFrame(f *Frame, opts *RenderOptions) (image.Image, error) {
	if f == nil {
		return nil, fmt.Errorf("frame is nil")
	}
	if f.width <= 0 || f.height <= 0 {
		return nil, fmt.Errorf("frame size %gx%g is not positive", f.width, f.height)
	}
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	imgW := opts.Width
	if imgW <= 0 {
		imgW = int(math.Round(f.width))
	}
	imgH := int(math.Round(float64(imgW) * f.height / f.width))
	if imgH <= 0 {
		imgH = 1
	}

	dc := gg.NewContext(imgW, imgH)
	bg := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if opts.BackgroundColor != nil {
		bg = *opts.BackgroundColor
	}
	dc.SetColor(bg)
	dc.Clear()

	r := &renderer{
		dc:        dc,
		scale:     float64(imgW) / f.width,
		fontCache: opts.FontCache,
	}
	if r.fontCache == nil {
		r.fontCache = NewFontCache(opts.FontDirs...)
	}

	if f.background != nil {
		r.fillPath(*f.background, 0, 0, f.width, f.height, 1, func() {
			dc.DrawRectangle(0, 0, float64(imgW), float64(imgH))
		})
	}
	for _, n := range f.children {
		r.renderNode(n)
	}
	return dc.Image(), nil
}

// FrameToImage renders the frame at index.
func (d *Deck) FrameToImage(index int, opts *RenderOptions) (image.Image, error) {
	if index < 0 || index >= len(d.frames) {
		return nil, fmt.Errorf("frame index %d out of range (0-%d)", index, len(d.frames)-1)
	}
	return RenderFrame(d.frames[index], opts)
}

// SaveFrameAsImage renders a frame and saves it to a file.
func (d *Deck) SaveFrameAsImage(index int, path string, opts *RenderOptions) error {
	img, err := d.FrameToImage(index, opts)
	if err != nil {
		return err
	}
	return saveImage(img, path, opts)
}

// SaveFramesAsImages renders all frames and saves them to files.
// The pattern should contain %d for the frame number (1-based), e.g. "slide_%02d.png".
func (d *Deck) SaveFramesAsImages(pattern string, opts *RenderOptions) error {
	if opts == nil || opts.FontCache == nil {
		o := DefaultRenderOptions()
		if opts != nil {
			*o = *opts
		}
		o.FontCache = NewFontCache(o.FontDirs...)
		opts = o
	}
	for i := range d.frames {
		path := fmt.Sprintf(pattern, i+1)
		if err := d.SaveFrameAsImage(i, path, opts); err != nil {
			return fmt.Errorf("frame %d: %w", i+1, err)
		}
	}
	return nil
}

// EncodeImage writes img to w in the format selected by opts.
func EncodeImage(w interface{ Write([]byte) (int, error) }, img image.Image, opts *RenderOptions) error {
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	switch opts.Format {
	case ImageFormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	default:
		return png.Encode(w, img)
	}
}

func saveImage(img image.Image, path string, opts *RenderOptions) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()
	return EncodeImage(f, img, opts)
}

// --- renderer ---

type renderer struct {
	dc        *gg.Context
	scale     float64
	fontCache *FontCache
}

func (r *renderer) px(v float64) float64 { return v * r.scale }

func (r *renderer) renderNode(n Node) {
	switch nd := n.(type) {
	case *RectNode:
		r.renderRect(nd)
	case *LineNode:
		r.renderLine(nd)
	case *TextNode:
		r.renderText(nd)
	case *ImageNode:
		r.renderImage(nd)
	}
}

// --- Shape rendering ---

func (r *renderer) shapePath(n *RectNode, dc *gg.Context, ox, oy float64) {
	x, y := r.px(n.x)-ox, r.px(n.y)-oy
	w, h := r.px(n.width), r.px(n.height)
	switch {
	case n.ellipse:
		dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
	case n.cornerRadius > 0:
		dc.DrawRoundedRectangle(x, y, w, h, math.Min(r.px(n.cornerRadius), math.Min(w, h)/2))
	default:
		dc.DrawRectangle(x, y, w, h)
	}
}

func (r *renderer) renderRect(n *RectNode) {
	if n.shadow != nil {
		r.drawShadow(n.shadow, n.x, n.y, n.width, n.height, func(dc *gg.Context, ox, oy float64) {
			r.shapePath(n, dc, ox, oy)
		})
	}
	for _, p := range n.fills {
		r.fillPath(p, n.x, n.y, n.width, n.height, n.opacity, func() { r.shapePath(n, r.dc, 0, 0) })
	}
	if n.strokeWeight > 0 {
		for _, p := range n.strokes {
			r.shapePath(n, r.dc, 0, 0)
			r.dc.SetStrokeStyle(gg.NewSolidPattern(p.Color.NRGBA(p.Opacity * n.opacity)))
			r.dc.SetLineWidth(math.Max(r.px(n.strokeWeight), 1))
			r.dc.Stroke()
		}
	}
}

func (r *renderer) renderLine(n *LineNode) {
	x1, y1, x2, y2 := n.Endpoints()
	for _, p := range n.strokes {
		r.dc.DrawLine(r.px(x1), r.px(y1), r.px(x2), r.px(y2))
		r.dc.SetStrokeStyle(gg.NewSolidPattern(p.Color.NRGBA(p.Opacity * n.opacity)))
		r.dc.SetLineWidth(math.Max(r.px(n.strokeWeight), 1))
		r.dc.Stroke()
	}
}

// fillPath fills the path built by path with paint p. Gradient geometry is
// resolved against the node bounds (x, y, w, h in canvas pixels).
func (r *renderer) fillPath(p Paint, x, y, w, h, opacity float64, path func()) {
	path()
	switch p.Type {
	case PaintLinearGradient:
		x0, y0, x1, y1 := linearEndpoints(p.Angle, r.px(x), r.px(y), r.px(w), r.px(h))
		g := gg.NewLinearGradient(x0, y0, x1, y1)
		for _, s := range p.Stops {
			g.AddColorStop(s.Position, s.Color.NRGBA(s.Opacity*p.Opacity*opacity))
		}
		r.dc.SetFillStyle(g)
	case PaintRadialGradient:
		cx := r.px(x + w*p.CenterX)
		cy := r.px(y + h*p.CenterY)
		radius := r.px(math.Max(w, h) * p.Radius)
		g := gg.NewRadialGradient(cx, cy, 0, cx, cy, radius)
		for _, s := range p.Stops {
			g.AddColorStop(s.Position, s.Color.NRGBA(s.Opacity*p.Opacity*opacity))
		}
		r.dc.SetFillStyle(g)
	default:
		r.dc.SetFillStyle(gg.NewSolidPattern(p.Color.NRGBA(p.Opacity * opacity)))
	}
	r.dc.Fill()
}

// linearEndpoints maps a gradient angle onto a segment crossing the box so the
// first stop sits on one edge and the last stop on the opposite edge.
func linearEndpoints(angle, x, y, w, h float64) (x0, y0, x1, y1 float64) {
	rad := angle * math.Pi / 180
	dx, dy := math.Cos(rad), math.Sin(rad)
	half := (math.Abs(dx)*w + math.Abs(dy)*h) / 2
	cx, cy := x+w/2, y+h/2
	return cx - dx*half, cy - dy*half, cx + dx*half, cy + dy*half
}

// drawShadow paints a blurred silhouette below the node. The silhouette is
// rendered into a padded scratch context so the blur never clips.
func (r *renderer) drawShadow(s *DropShadow, x, y, w, h float64, path func(dc *gg.Context, ox, oy float64)) {
	pad := math.Ceil(r.px(s.Radius)) + 2
	ox := r.px(x) - pad
	oy := r.px(y) - pad
	sw := int(math.Ceil(r.px(w) + 2*pad))
	sh := int(math.Ceil(r.px(h) + 2*pad))
	if sw <= 0 || sh <= 0 {
		return
	}
	sc := gg.NewContext(sw, sh)
	path(sc, ox, oy)
	sc.SetColor(s.Color.NRGBA(s.Alpha))
	sc.Fill()

	var shadow image.Image = sc.Image()
	if s.Radius > 0 {
		shadow = blur.Gaussian(shadow, r.px(s.Radius)/2)
	}
	r.dc.DrawImage(shadow, int(math.Round(ox+r.px(s.OffsetX))), int(math.Round(oy+r.px(s.OffsetY))))
}

// --- Image rendering ---

func (r *renderer) renderImage(n *ImageNode) {
	if len(n.data) == 0 {
		return
	}
	w := int(math.Round(r.px(n.width)))
	h := int(math.Round(r.px(n.height)))
	if w <= 0 || h <= 0 {
		return
	}
	src, _, err := image.Decode(bytes.NewReader(n.data))
	if err != nil {
		// Undecodable bytes render as an outlined box rather than failing the frame.
		r.dc.DrawRectangle(r.px(n.x), r.px(n.y), float64(w), float64(h))
		r.dc.SetColor(color.NRGBA{R: 200, G: 200, B: 200, A: 255})
		r.dc.SetLineWidth(1)
		r.dc.Stroke()
		return
	}

	var scaled image.Image
	switch n.scaleMode {
	case ScaleFit:
		scaled = imaging.Fit(src, w, h, imaging.Lanczos)
	case ScaleStretch:
		scaled = imaging.Resize(src, w, h, imaging.Lanczos)
	default:
		scaled = imaging.Fill(src, w, h, imaging.Center, imaging.Lanczos)
	}
	if n.opacity < 1 {
		scaled = fadeImage(scaled, n.opacity)
	}

	x := r.px(n.x)
	y := r.px(n.y)
	if n.shadow != nil {
		r.drawShadow(n.shadow, n.x, n.y, n.width, n.height, func(dc *gg.Context, ox, oy float64) {
			dc.DrawRoundedRectangle(x-ox, y-oy, float64(w), float64(h), r.px(n.cornerRadius))
		})
	}
	offX := int(math.Round(x)) + (w-scaled.Bounds().Dx())/2
	offY := int(math.Round(y)) + (h-scaled.Bounds().Dy())/2
	if n.cornerRadius > 0 {
		r.dc.Push()
		r.dc.DrawRoundedRectangle(x, y, float64(w), float64(h), r.px(n.cornerRadius))
		r.dc.Clip()
		r.dc.DrawImage(scaled, offX, offY)
		r.dc.ResetClip()
		r.dc.Pop()
		return
	}
	r.dc.DrawImage(scaled, offX, offY)
}

// fadeImage multiplies the image alpha by opacity.
func fadeImage(src image.Image, opacity float64) image.Image {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	mask := image.NewUniform(color.Alpha{A: channel(opacity)})
	draw.DrawMask(dst, dst.Bounds(), src, b.Min, mask, image.Point{}, draw.Over)
	return dst
}

// --- Text rendering ---

func (r *renderer) renderText(n *TextNode) {
	if strings.TrimSpace(n.characters) == "" || len(n.fills) == 0 {
		return
	}
	face := r.fontCache.Face(n.font, r.px(n.fontSize))
	r.dc.SetFontFace(face)

	// Wrap in canvas units with the measure face so that line breaks match the
	// layout engine and the other exporters.
	lines := WrapText(r.fontCache, n.font, n.fontSize, n.letterSpacing, n.characters, n.width)
	lineH := n.GetLineHeight()
	ascent := float64(face.Metrics().Ascent) / 64
	faceH := float64(face.Metrics().Height) / 64
	fill := n.fills[0]
	r.dc.SetColor(fill.Color.NRGBA(fill.Opacity * n.opacity))

	for i, line := range lines {
		if line == "" {
			continue
		}
		lineW := measureSpaced(r.fontCache, n.font, n.fontSize, n.letterSpacing, line)
		x := n.x
		switch n.align {
		case AlignCenter:
			x = n.x + (n.width-lineW)/2
		case AlignRight:
			x = n.x + n.width - lineW
		}
		// Center the glyph box inside the line box, as design tools do.
		top := r.px(n.y + float64(i)*lineH)
		baseline := top + (r.px(lineH)-faceH)/2 + ascent
		if n.letterSpacing == 0 {
			r.dc.DrawString(line, r.px(x), baseline)
			continue
		}
		cx := r.px(x)
		for _, ch := range line {
			s := string(ch)
			r.dc.DrawString(s, cx, baseline)
			cx += r.px(r.fontCache.MeasureString(n.font, n.fontSize, s) + n.letterSpacing)
		}
	}
}
