package godeck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	sfntconv "github.com/tdewolff/font"
)

// googleFontURLRe extracts the font file URL from a Google Fonts CSS response.
// Matches: url(https://fonts.gstatic.com/s/inter/v18/xxx.woff2)
var googleFontURLRe = regexp.MustCompile(`url\((https://fonts\.gstatic\.com/[^)]+)\)`)

// googleFontsCSSURL is the CSS2 API endpoint.
var googleFontsCSSURL = "https://fonts.googleapis.com/css2"

// FetchGoogleFamily downloads family at the given weight (e.g. "400", "700")
// from Google Fonts, converts WOFF2 to SFNT and registers it in the cache.
// Downloads are cached in cacheDir as "<family>-<weight>.ttf". Weight 700 and
// above registers under "<family> bold" so bold lookups find it.
func (fc *FontCache) FetchGoogleFamily(ctx context.Context, client *http.Client, family, weight, cacheDir string) error {
	if client == nil {
		client = http.DefaultClient
	}
	data, err := fetchGoogleFont(ctx, client, family, weight, cacheDir)
	if err != nil {
		return err
	}
	name := family
	if w, err := strconv.Atoi(weight); err == nil && w >= 700 {
		name = family + " bold"
	}
	return fc.LoadFontData(name, data)
}

func fetchGoogleFont(ctx context.Context, client *http.Client, family, weight, cacheDir string) ([]byte, error) {
	cacheFile := ""
	if cacheDir != "" {
		cacheFile = filepath.Join(cacheDir, fmt.Sprintf("%s-%s.ttf", strings.ReplaceAll(family, " ", "_"), weight))
		if data, err := os.ReadFile(cacheFile); err == nil {
			return data, nil
		}
	}

	cssURL := fmt.Sprintf("%s?family=%s:wght@%s", googleFontsCSSURL, url.QueryEscape(family), weight)
	cssBody, err := httpGetLimited(ctx, client, cssURL, 1<<20, true)
	if err != nil {
		return nil, fmt.Errorf("fetching CSS from Google Fonts: %w", err)
	}

	matches := googleFontURLRe.FindSubmatch(cssBody)
	if matches == nil {
		return nil, fmt.Errorf("no font URL found in Google Fonts CSS response for %s wght@%s", family, weight)
	}
	fontURL := string(matches[1])

	fontData, err := httpGetLimited(ctx, client, fontURL, 10<<20, false)
	if err != nil {
		return nil, fmt.Errorf("downloading font file: %w", err)
	}

	if isWOFF2Data(fontURL, fontData) {
		converted, err := sfntconv.ToSFNT(fontData)
		if err != nil {
			return nil, fmt.Errorf("converting WOFF2 to SFNT: %w", err)
		}
		fontData = converted
	}

	if cacheFile != "" {
		if err := os.MkdirAll(cacheDir, 0o755); err == nil {
			// A failed cache write only costs a re-download next time.
			_ = os.WriteFile(cacheFile, fontData, 0o644)
		}
	}
	return fontData, nil
}

func httpGetLimited(ctx context.Context, client *http.Client, rawURL string, limit int64, browserUA bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if browserUA {
		// A modern User-Agent makes the CSS API answer with WOFF2 URLs.
		req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, rawURL)
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

// isWOFF2Data checks whether font data is WOFF2 by URL extension or magic bytes.
func isWOFF2Data(url string, data []byte) bool {
	if strings.HasSuffix(strings.ToLower(url), ".woff2") {
		return true
	}
	return len(data) >= 4 && string(data[:4]) == "wOF2"
}
