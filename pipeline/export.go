package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	godeck "github.com/VantageDataChat/GoDeck"
	"github.com/VantageDataChat/GoDeck/fetch"
	"github.com/VantageDataChat/GoDeck/internal/atomicfile"
	"github.com/VantageDataChat/GoDeck/layout"
)

// ThemeResolver maps a theme name to a palette.
type ThemeResolver func(name string) (layout.Theme, error)

// Exporter renders deck files. The zero value renders on the default canvas
// with embedded fonts, no images and one worker per slide.
type Exporter struct {
	Canvas layout.Canvas
	// Themes resolves DeckFile.Theme; nil uses the built-in themes.
	Themes ThemeResolver
	// DefaultTheme applies when the deck names none.
	DefaultTheme string
	Fonts        *godeck.FontCache
	Images       layout.ImageFetcher
	// Workers bounds concurrent slide renders; 0 means unbounded.
	Workers int
	// ImageTimeout bounds each image fetch.
	ImageTimeout time.Duration
	// PNGWidth scales raster output; 0 keeps canvas pixels.
	PNGWidth int
	Logger   *slog.Logger
}

func (e *Exporter) log() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

func (e *Exporter) fonts() *godeck.FontCache {
	if e.Fonts == nil {
		e.Fonts = godeck.NewEmbeddedFontCache()
	}
	return e.Fonts
}

func (e *Exporter) theme(d *DeckFile) (layout.Theme, error) {
	name := d.Theme
	if name == "" {
		name = e.DefaultTheme
	}
	var t layout.Theme
	switch {
	case name == "":
		t = layout.DefaultTheme()
	case e.Themes != nil:
		var err error
		if t, err = e.Themes(name); err != nil {
			return layout.Theme{}, err
		}
	default:
		var ok bool
		if t, ok = layout.ThemeByName(name); !ok {
			return layout.Theme{}, fmt.Errorf("unknown theme %q", name)
		}
	}
	if d.Palette != nil {
		t = t.Merge(*d.Palette)
	}
	return t, nil
}

// Env builds the layout environment for d.
func (e *Exporter) Env(d *DeckFile) (*layout.Env, error) {
	t, err := e.theme(d)
	if err != nil {
		return nil, err
	}
	var images layout.ImageFetcher
	if e.Images != nil {
		images = fetch.WithTimeout(e.Images, e.ImageTimeout)
	}
	env := layout.NewEnv(t, e.fonts(), images, e.log())
	if e.Canvas.Width > 0 && e.Canvas.Height > 0 {
		env.Canvas = e.Canvas
	}
	return env, nil
}

// Build renders every slide of d onto its own frame. Slides render
// concurrently; frames keep slide order.
func (e *Exporter) Build(ctx context.Context, d *DeckFile) (*godeck.Deck, error) {
	env, err := e.Env(d)
	if err != nil {
		return nil, err
	}
	slides := d.numbered()
	frames := make([]*godeck.Frame, len(slides))

	g, gctx := errgroup.WithContext(ctx)
	if e.Workers > 0 {
		g.SetLimit(e.Workers)
	}
	for i := range slides {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			f := godeck.NewFrame(env.Canvas.Width, env.Canvas.Height)
			layout.Render(gctx, f, &slides[i], env)
			frames[i] = f
			e.log().Debug("slide rendered", "slide", slides[i].SlideNumber,
				"type", slides[i].SlideType, "nodes", f.GetChildCount(), "took", time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	deck := godeck.NewDeck()
	deck.SetCanvasSize(&godeck.CanvasSize{Width: env.Canvas.Width, Height: env.Canvas.Height, Name: godeck.SizeCustom})
	deck.GetDocumentProperties().Title = d.Title
	for _, f := range frames {
		deck.AddFrame(f)
	}
	if err := deck.Validate(); err != nil {
		return nil, fmt.Errorf("rendered deck is invalid: %w", err)
	}
	return deck, nil
}

// Export builds d and writes each format into outDir: deck.pptx,
// slide-NN.png and slide-NN.svg. It returns the written paths.
func (e *Exporter) Export(ctx context.Context, d *DeckFile, outDir string, formats []string) ([]string, error) {
	deck, err := e.Build(ctx, d)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	var written []string
	for _, format := range formats {
		var paths []string
		switch strings.ToLower(format) {
		case "pptx":
			path := filepath.Join(outDir, "deck.pptx")
			if err := atomicfile.WriteFunc(path, 0o644, deck.WritePPTX); err != nil {
				return written, fmt.Errorf("write %s: %w", path, err)
			}
			paths = []string{path}
		case "png":
			opts := &godeck.RenderOptions{Width: e.PNGWidth, FontCache: e.fonts()}
			paths, err = e.perFrame(ctx, deck, outDir, "png", func(w io.Writer, f *godeck.Frame) error {
				img, err := godeck.RenderFrame(f, opts)
				if err != nil {
					return err
				}
				return godeck.EncodeImage(w, img, opts)
			})
		case "svg":
			paths, err = e.perFrame(ctx, deck, outDir, "svg", func(w io.Writer, f *godeck.Frame) error {
				return godeck.WriteFrameSVG(w, f, e.fonts())
			})
		default:
			return written, fmt.Errorf("unknown export format %q", format)
		}
		if err != nil {
			return written, err
		}
		written = append(written, paths...)
		e.log().Info("exported", "format", format, "files", len(paths), "dir", outDir)
	}
	return written, nil
}

// perFrame writes one slide-NN.<ext> per frame, concurrently.
func (e *Exporter) perFrame(ctx context.Context, deck *godeck.Deck, outDir, ext string, write func(io.Writer, *godeck.Frame) error) ([]string, error) {
	frames := deck.GetAllFrames()
	paths := make([]string, len(frames))
	g, gctx := errgroup.WithContext(ctx)
	if e.Workers > 0 {
		g.SetLimit(e.Workers)
	}
	for i, f := range frames {
		paths[i] = filepath.Join(outDir, fmt.Sprintf("slide-%02d.%s", i+1, ext))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			err := atomicfile.WriteFunc(paths[i], 0o644, func(w io.Writer) error {
				return write(w, f)
			})
			if err != nil {
				return fmt.Errorf("write %s: %w", paths[i], err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
