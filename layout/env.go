package layout

import (
	"log/slog"
	"math"
	"sync"

	godeck "github.com/VantageDataChat/GoDeck"
)

// LoadedFonts holds the resolved font handles layouts draw with.
type LoadedFonts struct {
	Heading     godeck.FontName
	HeadingBold godeck.FontName
	Body        godeck.FontName
}

// Env is the per-render configuration handed to every layout. Layouts treat
// it as read-only, so one Env may serve concurrent renders.
type Env struct {
	Canvas   Canvas
	Theme    Theme
	Fonts    LoadedFonts
	Images   ImageFetcher
	Measurer godeck.TextMeasurer
	Logger   *slog.Logger
}

var embeddedFonts = sync.OnceValue(godeck.NewEmbeddedFontCache)

// NewEnv builds an Env on the default canvas. A nil cache uses the embedded
// Go fonts; a nil logger discards.
func NewEnv(theme Theme, cache *godeck.FontCache, images ImageFetcher, log *slog.Logger) *Env {
	if cache == nil {
		cache = embeddedFonts()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Env{
		Canvas:   DefaultCanvas(),
		Theme:    theme,
		Fonts:    LoadFonts(cache, theme, log),
		Images:   images,
		Measurer: cache,
		Logger:   log,
	}
}

func (e *Env) log() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

// bottom is the lowest y content may reach. A zero canvas is unbounded.
func (e *Env) bottom() float64 {
	if e.Canvas.Height <= 0 {
		return math.Inf(1)
	}
	return e.Canvas.Bottom()
}

func (e *Env) measurer() godeck.TextMeasurer {
	if e.Measurer == nil {
		return embeddedFonts()
	}
	return e.Measurer
}

// LoadFonts resolves the theme's heading and body families against cache.
// A family the cache cannot provide is replaced by the embedded Go family and
// a warning is logged.
func LoadFonts(cache *godeck.FontCache, theme Theme, log *slog.Logger) LoadedFonts {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	resolve := func(role, family string) string {
		if family != "" && cache != nil && cache.HasFamily(family) {
			return family
		}
		log.Warn("font family unavailable, using fallback",
			"role", role, "family", family, "fallback", godeck.FallbackFamily)
		return godeck.FallbackFamily
	}
	heading := resolve("heading", theme.HeadingFont)
	body := heading
	if theme.BodyFont != theme.HeadingFont {
		body = resolve("body", theme.BodyFont)
	}
	return LoadedFonts{
		Heading:     godeck.FontName{Family: heading, Style: "Regular"},
		HeadingBold: godeck.FontName{Family: heading, Style: "Bold"},
		Body:        godeck.FontName{Family: body, Style: "Regular"},
	}
}
