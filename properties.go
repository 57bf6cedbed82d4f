package godeck

import "time"

// DocumentProperties holds standard document metadata written to docProps/core.xml.
type DocumentProperties struct {
	Creator        string
	LastModifiedBy string
	Created        time.Time
	Modified       time.Time
	Title          string
	Description    string
	Subject        string
	Keywords       string
	Category       string
	Company        string
	Revision       string
}

// NewDocumentProperties creates new document properties with defaults.
func NewDocumentProperties() *DocumentProperties {
	now := time.Now()
	return &DocumentProperties{
		Creator:        "GoDeck",
		LastModifiedBy: "GoDeck",
		Created:        now,
		Modified:       now,
	}
}

// CanvasSize represents the pixel dimensions of every frame in a deck.
type CanvasSize struct {
	Width  float64
	Height float64
	Name   string
}

// Standard canvas size names.
const (
	SizeWidescreen = "widescreen" // 1920x1080, 16:9
	SizeStandard   = "standard"   // 1440x1080, 4:3
	SizeSquare     = "square"     // 1080x1080
	SizeCustom     = "custom"
)

// NewCanvasSize creates the default 1920x1080 widescreen size.
func NewCanvasSize() *CanvasSize {
	return &CanvasSize{Width: 1920, Height: 1080, Name: SizeWidescreen}
}

// SetSize sets a predefined size by name. Unknown names leave the size unchanged.
func (cs *CanvasSize) SetSize(name string) {
	switch name {
	case SizeWidescreen:
		cs.Width, cs.Height = 1920, 1080
	case SizeStandard:
		cs.Width, cs.Height = 1440, 1080
	case SizeSquare:
		cs.Width, cs.Height = 1080, 1080
	default:
		return
	}
	cs.Name = name
}

// SetCustomSize sets custom dimensions in pixels. Non-positive values fall back to 1920x1080.
func (cs *CanvasSize) SetCustomSize(w, h float64) {
	if w <= 0 {
		w = 1920
	}
	if h <= 0 {
		h = 1080
	}
	cs.Width = w
	cs.Height = h
	cs.Name = SizeCustom
}

// EMU returns the size converted to EMU for the PPTX presentation part.
func (cs *CanvasSize) EMU() (cx, cy int64) {
	return PixelToEMU(cs.Width), PixelToEMU(cs.Height)
}
