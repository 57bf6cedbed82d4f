package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/GoDeck/layout"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
theme = "daylight"

[canvas]
width = 1280
height = 720
padding = 64

[fetch]
timeout_seconds = 5

[export]
formats = ["pptx", "png"]
workers = 8

[log]
level = "debug"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "daylight", cfg.Theme)
	assert.Equal(t, layout.Canvas{Width: 1280, Height: 720, Padding: 64}, cfg.Canvas)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout())
	assert.Equal(t, 2, cfg.Fetch.Retries, "unset keys keep defaults")
	assert.Equal(t, []string{"pptx", "png"}, cfg.Export.Formats)
	assert.Equal(t, 8, cfg.Export.Workers)
	assert.Equal(t, "debug", cfg.Log.Options().Level)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"malformed":       "theme = ",
		"unknown key":     "colour = \"red\"",
		"zero canvas":     "[canvas]\nwidth = 0",
		"padding too big": "[canvas]\npadding = 600",
		"unknown theme":   "theme = \"neon\"",
		"bad format":      "[export]\nformats = [\"gif\"]",
		"no workers":      "[export]\nworkers = 0",
		"bad level":       "[log]\nlevel = \"loud\"",
		"bad color":       "[themes.brand]\nprimary = \"not-a-color\"",
		"negative retry":  "[fetch]\nretries = -1",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Export.Workers = 0
	cfg.Log.Level = "loud"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export.workers")
	assert.Contains(t, err.Error(), "log.level")
}

func TestThemeFor_CustomPalettes(t *testing.T) {
	cfg, err := Parse([]byte(`
theme = "Brand"

[themes.brand]
primary = "#FF5500"
heading_font = "Poppins"

[themes.forest]
accent = "#00FF00"
`))
	require.NoError(t, err)

	brand, err := cfg.ThemeFor("")
	require.NoError(t, err)
	assert.Equal(t, "brand", brand.Name)
	assert.Equal(t, "#FF5500", brand.Primary)
	assert.Equal(t, "Poppins", brand.HeadingFont)
	assert.Equal(t, layout.DefaultTheme().Background, brand.Background, "new themes start from the default")

	forest, err := cfg.ThemeFor("FOREST")
	require.NoError(t, err)
	builtin, _ := layout.ThemeByName("forest")
	assert.Equal(t, "#00FF00", forest.Accent)
	assert.Equal(t, builtin.Primary, forest.Primary)

	_, err = cfg.ThemeFor("missing")
	assert.Error(t, err)

	assert.Equal(t, []string{"brand", "daylight", "forest", "midnight"}, cfg.ThemeNames())
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := DefaultConfig()
	cfg.Theme = "forest"
	cfg.Export.Formats = []string{"svg"}
	cfg.Themes = map[string]layout.Theme{"brand": {Primary: "#123456"}}
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "forest", got.Theme)
	assert.Equal(t, []string{"svg"}, got.Export.Formats)
	assert.Equal(t, "#123456", got.Themes["brand"].Primary)
}
