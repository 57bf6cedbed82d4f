package main

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	godeck "github.com/VantageDataChat/GoDeck"
	"github.com/VantageDataChat/GoDeck/fetch"
	"github.com/VantageDataChat/GoDeck/internal/logger"
	"github.com/VantageDataChat/GoDeck/layout"
	"github.com/VantageDataChat/GoDeck/pipeline"
)

type renderFlags struct {
	out     string
	formats []string
	theme   string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output directory (overrides config)")
	cmd.Flags().StringSliceVarP(&f.formats, "format", "f", nil, "pptx, png and/or svg (overrides config)")
	cmd.Flags().StringVarP(&f.theme, "theme", "t", "", "theme name (overrides the deck and config)")
}

func newRenderCmd(a *app) *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:   "render <glob>...",
		Short: "Render every deck file matching the patterns",
		Example: `  godeck render pitch.json
  godeck render 'decks/**/*.{json,yaml,md}' --format pptx,png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandInputs(args, a.cfg.Export.Ignore)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no deck files match %s", strings.Join(args, " "))
			}
			var failed int
			for _, p := range paths {
				if err := a.renderFile(cmd.Context(), p, flags, len(paths) > 1); err != nil {
					logger.Fail(cmd.Context(), a.log, "export failed", "path", p, "error", err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d decks failed", failed, len(paths))
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// expandInputs resolves doublestar patterns to deck files, dropping
// duplicates and anything matching an ignore pattern. Plain paths pass
// through even when they do not exist so the load error names them.
func expandInputs(patterns, ignore []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, pat := range patterns {
		matches := []string{pat}
		if strings.ContainsAny(pat, "*?[{") {
			var err error
			if matches, err = doublestar.FilepathGlob(pat, doublestar.WithFilesOnly()); err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", pat, err)
			}
		}
		for _, m := range matches {
			if seen[m] || ignored(m, ignore) {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	return out, nil
}

func ignored(path string, patterns []string) bool {
	slashed := filepath.ToSlash(path)
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, slashed); err == nil && ok {
			return true
		}
	}
	return false
}

// renderFile exports one deck. With several inputs each deck gets its own
// subdirectory named after the file.
func (a *app) renderFile(ctx context.Context, path string, flags renderFlags, nested bool) error {
	deck, err := pipeline.LoadDeck(path)
	if err != nil {
		return err
	}
	if flags.theme != "" {
		deck.Theme = flags.theme
	}
	out := flags.out
	if out == "" {
		out = a.cfg.Export.OutDir
	}
	if nested {
		out = filepath.Join(out, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	}
	formats := flags.formats
	if len(formats) == 0 {
		formats = a.cfg.Export.Formats
	}

	e, err := a.exporter(ctx, deck, filepath.Dir(path))
	if err != nil {
		return err
	}
	written, err := e.Export(ctx, deck, out, formats)
	if err != nil {
		return err
	}
	a.log.Info("deck exported", "path", path, "slides", len(deck.Slides), "files", len(written), "out", out)
	return nil
}

// exporter wires the configured fonts, fetchers and theme resolver. Local
// image paths resolve against the assets dir, else the deck's directory.
func (a *app) exporter(ctx context.Context, deck *pipeline.DeckFile, deckDir string) (*pipeline.Exporter, error) {
	cfg := a.cfg
	theme, err := cfg.ThemeFor(deck.Theme)
	if err != nil {
		return nil, err
	}
	fonts := godeck.NewFontCache(cfg.Fonts.Dirs...)
	if cfg.Fonts.Google {
		a.fetchGoogleFonts(ctx, fonts, theme)
	}

	root := cfg.Fetch.AssetsDir
	if root == "" {
		root = deckDir
	}
	images := fetch.NewCache(fetch.Multi{
		Remote: fetch.NewHTTPFetcher(fetch.Options{
			Timeout:   cfg.Fetch.Timeout(),
			Retries:   cfg.Fetch.Retries,
			MaxBytes:  cfg.Fetch.MaxBytes,
			UserAgent: cfg.Fetch.UserAgent,
		}),
		Local: fetch.FileFetcher{Root: root, MaxBytes: cfg.Fetch.MaxBytes},
	})
	images.Timeout = cfg.Fetch.Timeout()

	return &pipeline.Exporter{
		Canvas:       cfg.Canvas,
		Themes:       cfg.ThemeFor,
		DefaultTheme: cfg.Theme,
		Fonts:        fonts,
		Images:       images,
		Workers:      cfg.Export.Workers,
		ImageTimeout: cfg.Fetch.Timeout(),
		PNGWidth:     cfg.Export.PNGWidth,
		Logger:       a.log,
	}, nil
}

func (a *app) fetchGoogleFonts(ctx context.Context, fonts *godeck.FontCache, theme layout.Theme) {
	client := &http.Client{Timeout: a.cfg.Fetch.Timeout()}
	for _, family := range []string{theme.HeadingFont, theme.BodyFont} {
		if family == "" || fonts.HasFamily(family) {
			continue
		}
		for _, weight := range []string{"400", "700"} {
			if err := fonts.FetchGoogleFamily(ctx, client, family, weight, a.cfg.Fonts.CacheDir); err != nil {
				a.log.Warn("google font download failed", "family", family, "weight", weight, "error", err)
			}
		}
	}
}
