// Package pipeline turns deck files into exported presentations: it loads a
// deck, renders every slide onto its own frame and writes the requested
// formats.
package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/VantageDataChat/GoDeck/layout"
	"github.com/VantageDataChat/GoDeck/markdown"
)

// DeckFile is the on-disk description of a deck.
type DeckFile struct {
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	// Theme names a built-in or configured theme.
	Theme string `json:"theme,omitempty" yaml:"theme,omitempty"`
	// Palette overrides individual colors of the chosen theme.
	Palette *layout.Theme          `json:"palette,omitempty" yaml:"palette,omitempty"`
	Slides  []layout.SlideDocument `json:"slides" yaml:"slides"`
}

var ErrUnknownFormat = errors.New("pipeline: unknown deck file format")

// LoadDeck reads a deck by extension: .json, .yaml/.yml or .md.
func LoadDeck(path string) (*DeckFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := DecodeDeck(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// DecodeDeck parses data in the format named by ext (with or without the
// leading dot).
func DecodeDeck(data []byte, ext string) (*DeckFile, error) {
	var d DeckFile
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case "md", "markdown":
		slides, err := markdown.Parse(data)
		if err != nil {
			return nil, err
		}
		d.Slides = slides
		d.Title = slides[0].Title
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if len(d.Slides) == 0 {
		return nil, errors.New("deck has no slides")
	}
	return &d, nil
}

// EncodeJSON writes the deck as indented JSON.
func (d *DeckFile) EncodeJSON() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// numbered returns a copy of the slides with zero slide numbers replaced by
// their 1-based position.
func (d *DeckFile) numbered() []layout.SlideDocument {
	out := make([]layout.SlideDocument, len(d.Slides))
	copy(out, d.Slides)
	for i := range out {
		if out[i].SlideNumber == 0 {
			out[i].SlideNumber = i + 1
		}
	}
	return out
}
