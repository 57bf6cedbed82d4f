package godeck

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"strings"
)

// Node is the interface that all visual primitives implement.
type Node interface {
	GetType() NodeType
	GetName() string
	GetX() float64
	GetY() float64
	GetWidth() float64
	GetHeight() float64
	GetOpacity() float64
	// base returns the underlying BaseNode (unexported, internal use only).
	base() *BaseNode
}

// NodeType represents the type of node.
type NodeType int

const (
	NodeTypeRectangle NodeType = iota
	NodeTypeEllipse
	NodeTypeLine
	NodeTypeText
	NodeTypeImage
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeRectangle:
		return "rectangle"
	case NodeTypeEllipse:
		return "ellipse"
	case NodeTypeLine:
		return "line"
	case NodeTypeText:
		return "text"
	case NodeTypeImage:
		return "image"
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

// BaseNode contains common node properties. Coordinates are canvas pixels.
type BaseNode struct {
	name         string
	x            float64
	y            float64
	width        float64
	height       float64
	opacity      float64
	rotation     float64 // in degrees
	fills        []Paint
	strokes      []Paint
	strokeWeight float64
	shadow       *DropShadow
}

func newBaseNode() BaseNode {
	return BaseNode{opacity: 1}
}

func (b *BaseNode) GetName() string       { return b.name }
func (b *BaseNode) GetX() float64         { return b.x }
func (b *BaseNode) GetY() float64         { return b.y }
func (b *BaseNode) GetWidth() float64     { return b.width }
func (b *BaseNode) GetHeight() float64    { return b.height }
func (b *BaseNode) GetOpacity() float64   { return b.opacity }
func (b *BaseNode) GetRotation() float64  { return b.rotation }
func (b *BaseNode) GetFills() []Paint     { return b.fills }
func (b *BaseNode) GetStrokes() []Paint   { return b.strokes }
func (b *BaseNode) GetStrokeWeight() float64 { return b.strokeWeight }
func (b *BaseNode) GetShadow() *DropShadow { return b.shadow }
func (b *BaseNode) base() *BaseNode       { return b }

func (b *BaseNode) SetName(n string) *BaseNode { b.name = n; return b }

// SetPosition sets the top-left corner in pixels.
func (b *BaseNode) SetPosition(x, y float64) *BaseNode {
	b.x = x
	b.y = y
	return b
}

// SetSize sets width and height in pixels. Negative values are kept so that
// Validate can report them.
func (b *BaseNode) SetSize(w, h float64) *BaseNode {
	b.width = w
	b.height = h
	return b
}

// SetOpacity sets the node opacity (clamped to 0–1).
func (b *BaseNode) SetOpacity(o float64) *BaseNode {
	b.opacity = clampUnit(o)
	return b
}

// SetRotation sets the rotation in degrees (normalized to 0–359).
func (b *BaseNode) SetRotation(deg float64) *BaseNode {
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	b.rotation = deg
	return b
}

// SetFills replaces the fill paints.
func (b *BaseNode) SetFills(p ...Paint) *BaseNode {
	b.fills = append([]Paint(nil), p...)
	return b
}

// SetStrokes replaces the stroke paints.
func (b *BaseNode) SetStrokes(p ...Paint) *BaseNode {
	b.strokes = append([]Paint(nil), p...)
	return b
}

// SetStrokeWeight sets the stroke width in pixels (clamped to >= 0).
func (b *BaseNode) SetStrokeWeight(w float64) *BaseNode {
	if w < 0 {
		w = 0
	}
	b.strokeWeight = w
	return b
}

// SetShadow sets the drop shadow effect; nil removes it.
func (b *BaseNode) SetShadow(s *DropShadow) *BaseNode {
	b.shadow = s
	return b
}

// Bounds returns the node's bounding box as x, y, right, bottom.
func (b *BaseNode) Bounds() (x0, y0, x1, y1 float64) {
	x0, x1 = b.x, b.x+b.width
	y0, y1 = b.y, b.y+b.height
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return x0, y0, x1, y1
}

// RectNode represents a rectangle (optionally rounded) or an ellipse.
type RectNode struct {
	BaseNode
	ellipse      bool
	cornerRadius float64
}

// NewRect creates a new rectangle.
func NewRect() *RectNode {
	return &RectNode{BaseNode: newBaseNode()}
}

// NewEllipse creates a new ellipse.
func NewEllipse() *RectNode {
	return &RectNode{BaseNode: newBaseNode(), ellipse: true}
}

func (r *RectNode) GetType() NodeType {
	if r.ellipse {
		return NodeTypeEllipse
	}
	return NodeTypeRectangle
}

// IsEllipse reports whether the node is an ellipse.
func (r *RectNode) IsEllipse() bool { return r.ellipse }

// SetCornerRadius sets the corner radius in pixels (ignored for ellipses).
func (r *RectNode) SetCornerRadius(radius float64) *RectNode {
	if radius < 0 {
		radius = 0
	}
	r.cornerRadius = radius
	return r
}

// GetCornerRadius returns the corner radius in pixels.
func (r *RectNode) GetCornerRadius() float64 { return r.cornerRadius }

// LineNode represents a straight line from (x, y) to (x+width, y+height).
type LineNode struct {
	BaseNode
}

// NewLine creates a new line with a 1px stroke weight.
func NewLine() *LineNode {
	l := &LineNode{BaseNode: newBaseNode()}
	l.strokeWeight = 1
	return l
}

func (l *LineNode) GetType() NodeType { return NodeTypeLine }

// Endpoints returns the start and end points of the line.
func (l *LineNode) Endpoints() (x1, y1, x2, y2 float64) {
	return l.x, l.y, l.x + l.width, l.y + l.height
}

// TextNode represents a single styled run of text inside a fixed-width box.
type TextNode struct {
	BaseNode
	characters    string
	font          FontName
	fontSize      float64 // in px
	lineHeight    float64 // in px; 0 means automatic
	letterSpacing float64 // in px
	align         TextAlign
	autoHeight    bool
}

// NewText creates a new text node with the given characters.
func NewText(characters string) *TextNode {
	return &TextNode{
		BaseNode:   newBaseNode(),
		characters: characters,
		font:       FontName{Family: "Go", Style: "Regular"},
		fontSize:   24,
		align:      AlignLeft,
		autoHeight: true,
	}
}

func (t *TextNode) GetType() NodeType { return NodeTypeText }

func (t *TextNode) GetCharacters() string     { return t.characters }
func (t *TextNode) GetFont() FontName         { return t.font }
func (t *TextNode) GetFontSize() float64      { return t.fontSize }
func (t *TextNode) GetLetterSpacing() float64 { return t.letterSpacing }
func (t *TextNode) GetAlign() TextAlign       { return t.align }
func (t *TextNode) IsAutoHeight() bool        { return t.autoHeight }

// SetCharacters replaces the text content.
func (t *TextNode) SetCharacters(s string) *TextNode { t.characters = s; return t }

// SetFont sets the font family and style.
func (t *TextNode) SetFont(f FontName) *TextNode { t.font = f; return t }

// SetFontSize sets the font size in pixels (clamped to 1–4000).
func (t *TextNode) SetFontSize(size float64) *TextNode {
	if size < 1 {
		size = 1
	}
	if size > 4000 {
		size = 4000
	}
	t.fontSize = size
	return t
}

// SetLineHeight sets the line height in pixels; 0 restores automatic line height.
func (t *TextNode) SetLineHeight(h float64) *TextNode {
	if h < 0 {
		h = 0
	}
	t.lineHeight = h
	return t
}

// GetLineHeight returns the effective line height in pixels.
func (t *TextNode) GetLineHeight() float64 {
	if t.lineHeight > 0 {
		return t.lineHeight
	}
	return t.fontSize * autoLineHeight
}

// HasExplicitLineHeight reports whether SetLineHeight was given a positive value.
func (t *TextNode) HasExplicitLineHeight() bool { return t.lineHeight > 0 }

// SetLetterSpacing sets extra spacing between characters in pixels.
func (t *TextNode) SetLetterSpacing(px float64) *TextNode { t.letterSpacing = px; return t }

// SetAlign sets the horizontal alignment.
func (t *TextNode) SetAlign(a TextAlign) *TextNode { t.align = a; return t }

// SetAutoHeight controls whether the box grows to fit its lines.
func (t *TextNode) SetAutoHeight(v bool) *TextNode { t.autoHeight = v; return t }

// Fit recomputes the node height from the wrapped line count. Width is kept
// unless it is zero, in which case it becomes the widest line.
func (t *TextNode) Fit(m TextMeasurer) *TextNode {
	if m == nil {
		return t
	}
	if t.width <= 0 {
		widest := 0.0
		for _, line := range strings.Split(t.characters, "\n") {
			if w := measureSpaced(m, t.font, t.fontSize, t.letterSpacing, line); w > widest {
				widest = w
			}
		}
		t.width = widest
	}
	if t.autoHeight {
		lines := WrapText(m, t.font, t.fontSize, t.letterSpacing, t.characters, t.width)
		t.height = float64(len(lines)) * t.GetLineHeight()
	}
	return t
}

// autoLineHeight is the line height multiplier applied when none is set.
const autoLineHeight = 1.2

// ImageNode represents an embedded raster image.
type ImageNode struct {
	BaseNode
	data         []byte
	mimeType     string
	pixelWidth   int
	pixelHeight  int
	scaleMode    ScaleMode
	cornerRadius float64
}

// NewImage creates a new image node.
func NewImage() *ImageNode {
	return &ImageNode{BaseNode: newBaseNode(), scaleMode: ScaleFill}
}

func (i *ImageNode) GetType() NodeType { return NodeTypeImage }

// SetImageData sets the encoded image bytes. The pixel dimensions are read from
// the image header when the format is registered with the image package.
func (i *ImageNode) SetImageData(data []byte, mimeType string) *ImageNode {
	i.data = data
	i.mimeType = mimeType
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		i.pixelWidth = cfg.Width
		i.pixelHeight = cfg.Height
	}
	return i
}

// GetImageData returns the encoded image bytes.
func (i *ImageNode) GetImageData() []byte { return i.data }

// GetMimeType returns the image MIME type.
func (i *ImageNode) GetMimeType() string { return i.mimeType }

// GetPixelSize returns the intrinsic pixel size of the image, or zeros if unknown.
func (i *ImageNode) GetPixelSize() (int, int) { return i.pixelWidth, i.pixelHeight }

// SetScaleMode sets how the image maps onto the node bounds.
func (i *ImageNode) SetScaleMode(m ScaleMode) *ImageNode { i.scaleMode = m; return i }

// GetScaleMode returns the scale mode.
func (i *ImageNode) GetScaleMode() ScaleMode { return i.scaleMode }

// SetCornerRadius sets the corner radius in pixels.
func (i *ImageNode) SetCornerRadius(r float64) *ImageNode {
	if r < 0 {
		r = 0
	}
	i.cornerRadius = r
	return i
}

// GetCornerRadius returns the corner radius in pixels.
func (i *ImageNode) GetCornerRadius() float64 { return i.cornerRadius }

// maxImageFileSize is the maximum allowed size for an image file loaded from disk.
const maxImageFileSize = 50 << 20 // 50 MB

// SetImageFromFile loads an image from a file path and sets the data and MIME type.
// Returns an error if the file exceeds maxImageFileSize or cannot be read.
func (i *ImageNode) SetImageFromFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.Size() > maxImageFileSize {
		return fmt.Errorf("image file too large: %d bytes (max %d)", info.Size(), maxImageFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image file: %w", err)
	}
	i.SetImageData(data, guessMimeFromPath(path))
	return nil
}

// guessMimeFromPath guesses the MIME type from a file extension.
func guessMimeFromPath(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".gif"):
		return "image/gif"
	case strings.HasSuffix(lower, ".bmp"):
		return "image/bmp"
	default:
		return "image/png"
	}
}
