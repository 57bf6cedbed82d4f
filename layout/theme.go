package layout

import (
	"sort"
	"strings"
)

// Theme is the palette and typography a deck is drawn with. Colors are hex
// strings ("#RRGGBB"); layouts never use a color outside this set.
type Theme struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Primary     string `json:"primary" yaml:"primary" toml:"primary"`
	Secondary   string `json:"secondary" yaml:"secondary" toml:"secondary"`
	Accent      string `json:"accent" yaml:"accent" toml:"accent"`
	Background  string `json:"background" yaml:"background" toml:"background"`
	Text        string `json:"text" yaml:"text" toml:"text"`
	Surface     string `json:"surface" yaml:"surface" toml:"surface"`
	Border      string `json:"border" yaml:"border" toml:"border"`
	Success     string `json:"success" yaml:"success" toml:"success"`
	Warning     string `json:"warning" yaml:"warning" toml:"warning"`
	Error       string `json:"error" yaml:"error" toml:"error"`
	HeadingFont string `json:"headingFont" yaml:"headingFont" toml:"heading_font"`
	BodyFont    string `json:"bodyFont" yaml:"bodyFont" toml:"body_font"`
}

// Palette returns the ten theme colors keyed by role name.
func (t Theme) Palette() map[string]string {
	return map[string]string{
		"primary":    t.Primary,
		"secondary":  t.Secondary,
		"accent":     t.Accent,
		"background": t.Background,
		"text":       t.Text,
		"surface":    t.Surface,
		"border":     t.Border,
		"success":    t.Success,
		"warning":    t.Warning,
		"error":      t.Error,
	}
}

// Merge returns t with every non-empty field of o applied on top.
func (t Theme) Merge(o Theme) Theme {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&t.Name, o.Name)
	set(&t.Primary, o.Primary)
	set(&t.Secondary, o.Secondary)
	set(&t.Accent, o.Accent)
	set(&t.Background, o.Background)
	set(&t.Text, o.Text)
	set(&t.Surface, o.Surface)
	set(&t.Border, o.Border)
	set(&t.Success, o.Success)
	set(&t.Warning, o.Warning)
	set(&t.Error, o.Error)
	set(&t.HeadingFont, o.HeadingFont)
	set(&t.BodyFont, o.BodyFont)
	return t
}

var builtinThemes = map[string]Theme{
	"midnight": {
		Name:        "midnight",
		Primary:     "#6366F1",
		Secondary:   "#8B5CF6",
		Accent:      "#22D3EE",
		Background:  "#0F172A",
		Text:        "#F8FAFC",
		Surface:     "#1E293B",
		Border:      "#334155",
		Success:     "#22C55E",
		Warning:     "#F59E0B",
		Error:       "#EF4444",
		HeadingFont: "Inter",
		BodyFont:    "Inter",
	},
	"daylight": {
		Name:        "daylight",
		Primary:     "#2563EB",
		Secondary:   "#7C3AED",
		Accent:      "#F97316",
		Background:  "#FFFFFF",
		Text:        "#0F172A",
		Surface:     "#F1F5F9",
		Border:      "#CBD5E1",
		Success:     "#16A34A",
		Warning:     "#D97706",
		Error:       "#DC2626",
		HeadingFont: "Poppins",
		BodyFont:    "Inter",
	},
	"forest": {
		Name:        "forest",
		Primary:     "#2F855A",
		Secondary:   "#276749",
		Accent:      "#D69E2E",
		Background:  "#F7FAF5",
		Text:        "#1A202C",
		Surface:     "#E6F0E3",
		Border:      "#C6D8C0",
		Success:     "#38A169",
		Warning:     "#DD6B20",
		Error:       "#C53030",
		HeadingFont: "Merriweather",
		BodyFont:    "Source Sans Pro",
	},
}

// DefaultThemeName is used when a deck names no theme.
const DefaultThemeName = "midnight"

// DefaultTheme returns the midnight theme.
func DefaultTheme() Theme { return builtinThemes[DefaultThemeName] }

// ThemeByName looks up a built-in theme case-insensitively.
func ThemeByName(name string) (Theme, bool) {
	t, ok := builtinThemes[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// ThemeNames lists the built-in themes alphabetically.
func ThemeNames() []string {
	names := make([]string, 0, len(builtinThemes))
	for n := range builtinThemes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
