// Package godeck provides a pure Go canvas model for slide decks: fixed-size
// frames holding absolutely positioned rectangles, ellipses, lines, text and
// images, plus exporters that write the frames as PowerPoint (.pptx), PNG/JPEG
// and SVG.
//
// The layout engine in the layout subpackage fills frames from slide documents;
// this package knows nothing about slide types.
//
// See the Version variable for the current library version.
package godeck

import "errors"

// Deck represents an in-memory slide deck.
type Deck struct {
	properties *DocumentProperties
	size       *CanvasSize
	frames     []*Frame
}

// NewDeck creates a new empty Deck with a 1920x1080 canvas.
func NewDeck() *Deck {
	return &Deck{
		properties: NewDocumentProperties(),
		size:       NewCanvasSize(),
		frames:     make([]*Frame, 0),
	}
}

// GetDocumentProperties returns the document properties.
func (d *Deck) GetDocumentProperties() *DocumentProperties {
	return d.properties
}

// SetDocumentProperties sets the document properties.
func (d *Deck) SetDocumentProperties(props *DocumentProperties) {
	d.properties = props
}

// GetCanvasSize returns the canvas size shared by all frames.
func (d *Deck) GetCanvasSize() *CanvasSize {
	return d.size
}

// SetCanvasSize sets the canvas size.
func (d *Deck) SetCanvasSize(size *CanvasSize) {
	d.size = size
}

// CreateFrame creates a new frame with the deck's canvas size and appends it.
func (d *Deck) CreateFrame() *Frame {
	f := NewFrame(d.size.Width, d.size.Height)
	d.frames = append(d.frames, f)
	return f
}

// AddFrame appends an existing frame.
func (d *Deck) AddFrame(f *Frame) *Frame {
	d.frames = append(d.frames, f)
	return f
}

// GetFrame returns a frame by index.
func (d *Deck) GetFrame(index int) (*Frame, error) {
	if index < 0 || index >= len(d.frames) {
		return nil, errors.New("frame index out of range")
	}
	return d.frames[index], nil
}

// GetAllFrames returns all frames.
func (d *Deck) GetAllFrames() []*Frame {
	return d.frames
}

// GetFrameCount returns the number of frames.
func (d *Deck) GetFrameCount() int {
	return len(d.frames)
}

// RemoveFrameByIndex removes a frame by index.
func (d *Deck) RemoveFrameByIndex(index int) error {
	if index < 0 || index >= len(d.frames) {
		return errors.New("frame index out of range")
	}
	d.frames = append(d.frames[:index], d.frames[index+1:]...)
	return nil
}

// MoveFrame moves a frame from one index to another.
func (d *Deck) MoveFrame(fromIndex, toIndex int) error {
	if fromIndex < 0 || fromIndex >= len(d.frames) {
		return errors.New("fromIndex out of range")
	}
	if toIndex < 0 || toIndex >= len(d.frames) {
		return errors.New("toIndex out of range")
	}
	if fromIndex == toIndex {
		return nil
	}
	f := d.frames[fromIndex]
	d.frames = append(d.frames[:fromIndex], d.frames[fromIndex+1:]...)
	d.frames = append(d.frames, nil)
	copy(d.frames[toIndex+1:], d.frames[toIndex:])
	d.frames[toIndex] = f
	return nil
}
