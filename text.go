package godeck

import (
	"strings"
	"unicode/utf8"
)

// TextMeasurer reports the advance width, in pixels, of s set in the given font.
// FontCache implements it.
type TextMeasurer interface {
	MeasureString(f FontName, sizePx float64, s string) float64
}

// measureSpaced measures s and adds letter spacing after every rune but the last.
func measureSpaced(m TextMeasurer, f FontName, size, spacing float64, s string) float64 {
	w := m.MeasureString(f, size, s)
	if n := utf8.RuneCountInString(s); spacing != 0 && n > 1 {
		w += spacing * float64(n-1)
	}
	return w
}

// WrapText breaks text into lines no wider than maxWidth. Explicit newlines
// always break; a single word wider than maxWidth is kept on its own line.
// Empty text yields one empty line so that a text node is never zero lines tall.
func WrapText(m TextMeasurer, f FontName, size, spacing float64, text string, maxWidth float64) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		out = append(out, wrapParagraph(m, f, size, spacing, para, maxWidth)...)
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out
}

func wrapParagraph(m TextMeasurer, f FontName, size, spacing float64, para string, maxWidth float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}
	if maxWidth <= 0 || m == nil {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		candidate := cur + " " + w
		if measureSpaced(m, f, size, spacing, candidate) > maxWidth {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur = candidate
	}
	return append(lines, cur)
}
