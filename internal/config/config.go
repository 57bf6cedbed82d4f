// Package config loads the godeck CLI configuration from a TOML file.
//
// A missing file yields DefaultConfig. Values present in the file override
// the defaults field by field; custom palettes under [themes.<name>] are
// merged over the built-in theme of the same name, or over the default
// theme when the name is new.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/VantageDataChat/GoDeck/internal/atomicfile"
	"github.com/VantageDataChat/GoDeck/internal/logger"
	"github.com/VantageDataChat/GoDeck/layout"
)

// FileName is the config file looked up in the working directory when no
// --config flag is given.
const FileName = "godeck.toml"

// Export formats.
const (
	FormatPPTX = "pptx"
	FormatPNG  = "png"
	FormatSVG  = "svg"
)

var knownFormats = []string{FormatPPTX, FormatPNG, FormatSVG}

// Config is the top-level CLI configuration.
type Config struct {
	// Theme names the palette used when a deck does not pick one.
	Theme  string                  `toml:"theme"`
	Canvas layout.Canvas           `toml:"canvas"`
	Fonts  FontsConfig             `toml:"fonts"`
	Fetch  FetchConfig             `toml:"fetch"`
	Export ExportConfig            `toml:"export"`
	Log    LogConfig               `toml:"log"`
	Themes map[string]layout.Theme `toml:"themes,omitempty"`
}

type FontsConfig struct {
	// Dirs are scanned for TrueType/OpenType files in addition to the
	// system font directories.
	Dirs []string `toml:"dirs"`
	// Google downloads theme fonts missing locally from Google Fonts.
	Google bool `toml:"google"`
	// CacheDir keeps downloaded Google fonts between runs.
	CacheDir string `toml:"cache_dir"`
}

type FetchConfig struct {
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Retries        int    `toml:"retries"`
	MaxBytes       int64  `toml:"max_bytes"`
	UserAgent      string `toml:"user_agent"`
	// AssetsDir resolves relative image paths in deck files.
	AssetsDir string `toml:"assets_dir"`
}

// Timeout is the per-image fetch bound.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

type ExportConfig struct {
	Formats []string `toml:"formats"`
	OutDir  string   `toml:"out_dir"`
	Workers int      `toml:"workers"`
	// PNGWidth scales raster output; 0 keeps canvas pixels.
	PNGWidth int `toml:"png_width"`
	// Ignore holds doublestar patterns excluded from `render` globs.
	Ignore []string `toml:"ignore"`
}

type LogConfig struct {
	Level     string `toml:"level"`
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
}

// Options converts the section for logger.New.
func (l LogConfig) Options() logger.Options {
	return logger.Options{Level: l.Level, File: l.File, MaxSizeMB: l.MaxSizeMB}
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		Theme:  layout.DefaultThemeName,
		Canvas: layout.DefaultCanvas(),
		Fonts: FontsConfig{
			Dirs: []string{},
		},
		Fetch: FetchConfig{
			TimeoutSeconds: 15,
			Retries:        2,
			MaxBytes:       20 << 20,
			UserAgent:      "godeck",
		},
		Export: ExportConfig{
			Formats: []string{FormatPPTX},
			OutDir:  "out",
			Workers: 4,
			Ignore:  []string{},
		},
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 10,
		},
	}
}

// Load reads path. A missing file returns DefaultConfig.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("parse config: unknown keys %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Save writes the config as TOML atomically.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return atomicfile.Write(path, buf.Bytes(), 0o644)
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas: width and height must be > 0, got %gx%g", c.Canvas.Width, c.Canvas.Height))
	} else if c.Canvas.Padding < 0 || 2*c.Canvas.Padding >= min(c.Canvas.Width, c.Canvas.Height) {
		errs = append(errs, fmt.Errorf("canvas: padding %g leaves no content area", c.Canvas.Padding))
	}

	if _, err := c.ThemeFor(c.Theme); err != nil {
		errs = append(errs, err)
	}
	for _, name := range sortedKeys(c.Themes) {
		palette := c.Themes[name].Palette()
		for _, role := range sortedKeys(palette) {
			hex := palette[role]
			if hex == "" {
				continue
			}
			if _, err := colorful.Hex(hex); err != nil {
				errs = append(errs, fmt.Errorf("themes.%s.%s: invalid color %q", name, role, hex))
			}
		}
	}

	if len(c.Export.Formats) == 0 {
		errs = append(errs, errors.New("export.formats must not be empty"))
	}
	for _, f := range c.Export.Formats {
		if !slices.Contains(knownFormats, strings.ToLower(f)) {
			errs = append(errs, fmt.Errorf("export.formats: unknown format %q: must be pptx, png, or svg", f))
		}
	}
	if c.Export.Workers < 1 {
		errs = append(errs, fmt.Errorf("export.workers must be >= 1, got %d", c.Export.Workers))
	}
	if c.Export.PNGWidth < 0 {
		errs = append(errs, fmt.Errorf("export.png_width must be >= 0, got %d", c.Export.PNGWidth))
	}

	if c.Fetch.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("fetch.timeout_seconds must be > 0, got %d", c.Fetch.TimeoutSeconds))
	}
	if c.Fetch.Retries < 0 {
		errs = append(errs, fmt.Errorf("fetch.retries must be >= 0, got %d", c.Fetch.Retries))
	}
	if c.Fetch.MaxBytes <= 0 {
		errs = append(errs, fmt.Errorf("fetch.max_bytes must be > 0, got %d", c.Fetch.MaxBytes))
	}

	if !logger.ValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("invalid log.level %q: must be trace, debug, info, warn, error, or fail", c.Log.Level))
	}

	return errors.Join(errs...)
}

// ThemeFor resolves name against the custom and built-in themes. Names are
// case-insensitive; an empty name means the configured default.
func (c *Config) ThemeFor(name string) (layout.Theme, error) {
	if name == "" {
		name = c.Theme
	}
	for key, custom := range c.Themes {
		if !strings.EqualFold(key, name) {
			continue
		}
		base, ok := layout.ThemeByName(key)
		if !ok {
			base = layout.DefaultTheme()
		}
		t := base.Merge(custom)
		t.Name = strings.ToLower(key)
		return t, nil
	}
	if t, ok := layout.ThemeByName(name); ok {
		return t, nil
	}
	return layout.Theme{}, fmt.Errorf("unknown theme %q", name)
}

// ThemeNames lists built-in and custom theme names, sorted.
func (c *Config) ThemeNames() []string {
	names := layout.ThemeNames()
	for key := range c.Themes {
		key = strings.ToLower(key)
		if !slices.Contains(names, key) {
			names = append(names, key)
		}
	}
	sort.Strings(names)
	return names
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
