package godeck

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Writer is the interface for deck writers.
type Writer interface {
	Save(path string) error
	WriteTo(w io.Writer) error
}

// WriterType represents the output format.
type WriterType string

const (
	WriterPowerPoint2007 WriterType = "PowerPoint2007"
	WriterSVG            WriterType = "SVG"
)

// NewWriter creates a writer for the given format.
func NewWriter(d *Deck, format WriterType) (Writer, error) {
	switch format {
	case WriterPowerPoint2007:
		return &PPTXWriter{deck: d}, nil
	case WriterSVG:
		return &SVGWriter{deck: d}, nil
	default:
		return nil, fmt.Errorf("unsupported writer format: %s", format)
	}
}

// PPTXWriter writes decks in PPTX format. Every frame becomes one slide on a
// blank layout; every node becomes one shape.
type PPTXWriter struct {
	deck  *Deck
	media []mediaPart
}

// mediaPart is one embedded image. Parts are numbered across the whole deck.
type mediaPart struct {
	frame int
	node  *ImageNode
	index int
	ext   string
}

// Save writes the deck to a file.
func (w *PPTXWriter) Save(path string) error {
	return saveWith(path, w.WriteTo)
}

// saveWith creates path and streams into it, removing the file if writing fails.
func saveWith(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	writeErr := write(f)
	closeErr := f.Close()

	if writeErr != nil {
		// Attempt cleanup on write failure
		os.Remove(path)
		return writeErr
	}
	return closeErr
}

// WriteTo writes the deck to a writer.
func (w *PPTXWriter) WriteTo(writer io.Writer) error {
	if w.deck == nil {
		return fmt.Errorf("deck is nil")
	}
	if w.deck.size == nil {
		return fmt.Errorf("deck has no canvas size")
	}

	zw := zip.NewWriter(writer)
	w.collectMedia()

	if err := w.writeContentTypes(zw); err != nil {
		return err
	}
	if err := w.writeRootRels(zw); err != nil {
		return err
	}
	if err := w.writeAppProperties(zw); err != nil {
		return err
	}
	if err := w.writeCoreProperties(zw); err != nil {
		return err
	}
	if err := w.writePresentation(zw); err != nil {
		return err
	}
	if err := w.writePresentationRels(zw); err != nil {
		return err
	}
	if err := w.writePresProps(zw); err != nil {
		return err
	}
	if err := w.writeViewProps(zw); err != nil {
		return err
	}
	if err := w.writeTableStyles(zw); err != nil {
		return err
	}

	// Slide master and layout
	if err := w.writeSlideMaster(zw); err != nil {
		return err
	}
	if err := w.writeSlideLayout(zw); err != nil {
		return err
	}
	if err := w.writeTheme(zw); err != nil {
		return err
	}

	for i, f := range w.deck.frames {
		if err := w.writeSlide(zw, f, i+1); err != nil {
			return err
		}
		if err := w.writeSlideRels(zw, f, i+1); err != nil {
			return err
		}
	}

	if err := w.writeMedia(zw); err != nil {
		return err
	}

	for i, f := range w.deck.frames {
		if f.notes != "" {
			if err := w.writeNotesSlide(zw, f, i+1); err != nil {
				return err
			}
		}
	}

	return zw.Close()
}

// collectMedia numbers every image node that carries data.
func (w *PPTXWriter) collectMedia() {
	w.media = w.media[:0]
	idx := 1
	for fi, f := range w.deck.frames {
		for _, n := range f.children {
			img, ok := n.(*ImageNode)
			if !ok || len(img.data) == 0 {
				continue
			}
			w.media = append(w.media, mediaPart{frame: fi, node: img, index: idx, ext: imageExtension(img.mimeType)})
			idx++
		}
	}
}

// frameMedia returns the media parts of one frame in z-order.
func (w *PPTXWriter) frameMedia(frameIdx int) []mediaPart {
	var out []mediaPart
	for _, m := range w.media {
		if m.frame == frameIdx {
			out = append(out, m)
		}
	}
	return out
}

// Save writes the deck as PPTX.
func (d *Deck) Save(path string) error {
	return (&PPTXWriter{deck: d}).Save(path)
}

// WritePPTX writes the deck as PPTX to w.
func (d *Deck) WritePPTX(w io.Writer) error {
	return (&PPTXWriter{deck: d}).WriteTo(w)
}
