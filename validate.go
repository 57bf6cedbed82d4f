package godeck

import (
	"fmt"
	"strings"
)

// Validate checks the deck for structural issues and returns an error
// describing all problems found, or nil if the deck is valid.
func (d *Deck) Validate() error {
	var errs []string

	if d.properties == nil {
		errs = append(errs, "document properties are nil")
	}
	if d.size == nil {
		errs = append(errs, "canvas size is nil")
	} else {
		if d.size.Width <= 0 {
			errs = append(errs, "canvas width must be positive")
		}
		if d.size.Height <= 0 {
			errs = append(errs, "canvas height must be positive")
		}
	}
	if len(d.frames) == 0 {
		errs = append(errs, "deck must have at least one frame")
	}

	for i, f := range d.frames {
		prefix := fmt.Sprintf("frame %d", i+1)
		if f == nil {
			errs = append(errs, prefix+": frame is nil")
			continue
		}
		for _, e := range validateFrame(f) {
			errs = append(errs, prefix+": "+e)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(errs, "\n  "))
}

func validateFrame(f *Frame) []string {
	var errs []string
	if f.width <= 0 || f.height <= 0 {
		errs = append(errs, "frame size must be positive")
	}
	if f.background != nil {
		errs = append(errs, validatePaint(*f.background, "background")...)
	}
	for j, n := range f.children {
		prefix := fmt.Sprintf("node %d", j+1)
		if n == nil {
			errs = append(errs, prefix+": node is nil")
			continue
		}
		b := n.base()
		if b.width < 0 && n.GetType() != NodeTypeLine {
			errs = append(errs, prefix+": width is negative")
		}
		if b.height < 0 && n.GetType() != NodeTypeLine {
			errs = append(errs, prefix+": height is negative")
		}
		for _, p := range b.fills {
			errs = append(errs, validatePaint(p, prefix+": fill")...)
		}
		for _, p := range b.strokes {
			errs = append(errs, validatePaint(p, prefix+": stroke")...)
		}

		switch nd := n.(type) {
		case *TextNode:
			if nd.font.Family == "" {
				errs = append(errs, prefix+": text node has no font family")
			}
			if nd.fontSize <= 0 {
				errs = append(errs, prefix+": text node font size must be positive")
			}
		case *ImageNode:
			if len(nd.data) == 0 {
				errs = append(errs, prefix+": image node has no image data")
			}
			if nd.mimeType != "" && !isValidImageMime(nd.mimeType) {
				errs = append(errs, prefix+": unsupported image MIME type: "+nd.mimeType)
			}
		case *LineNode:
			if len(nd.strokes) == 0 {
				errs = append(errs, prefix+": line has no stroke")
			}
		}
	}
	return errs
}

func validatePaint(p Paint, prefix string) []string {
	switch p.Type {
	case PaintLinearGradient, PaintRadialGradient:
		if len(p.Stops) < 2 {
			return []string{prefix + ": gradient needs at least 2 stops"}
		}
	}
	return nil
}

// isValidImageMime checks if a MIME type is a supported image format.
func isValidImageMime(mime string) bool {
	switch mime {
	case "image/png", "image/jpeg", "image/gif", "image/bmp":
		return true
	}
	return false
}
