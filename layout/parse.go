package layout

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var numberPrefix = regexp.MustCompile(`^\d+\.\s+`)

// stripNumber removes a leading "N. " ordinal.
func stripNumber(s string) string {
	return numberPrefix.ReplaceAllString(strings.TrimSpace(s), "")
}

// stripDash removes a leading "- " list marker.
func stripDash(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimPrefix(s, "- "))
}

// splitLabel splits "label: description" at the first colon.
func splitLabel(s string) (label, desc string) {
	label, desc, _ = strings.Cut(s, ":")
	return strings.TrimSpace(label), strings.TrimSpace(desc)
}

// splitNameRole splits "name - role" at the first spaced dash.
func splitNameRole(s string) (name, role string) {
	name, role, _ = strings.Cut(s, " - ")
	return strings.TrimSpace(name), strings.TrimSpace(role)
}

// upper is language-aware upper-casing for eyebrows and section labels.
func upper(s string) string {
	return cases.Upper(language.English).String(s)
}

// initials returns the upper-cased first letters of the name's first and last
// words. Words that do not start with a letter or digit are skipped.
func initials(name string) string {
	var letters []rune
	for _, w := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(w)
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			letters = append(letters, unicode.ToUpper(r))
		}
	}
	if len(letters) > 2 {
		letters = []rune{letters[0], letters[len(letters)-1]}
	}
	return string(letters)
}

func nonEmpty(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// itemLines returns the entries item-based layouts lay out: list items of the
// structured body when it has any, otherwise the legacy body lines. A
// structured body without lists yields nil so the caller can fall back to the
// structured-body renderer.
func itemLines(doc *SlideDocument) []string {
	if len(doc.StructuredBody) == 0 {
		return nonEmpty(doc.BodyLines)
	}
	var out []string
	for _, b := range doc.StructuredBody {
		switch v := b.(type) {
		case BulletList:
			out = appendItems(out, v.Items)
		case NumberedList:
			out = appendItems(out, v.Items)
		}
	}
	return out
}

func appendItems(out []string, items []ListItem) []string {
	for _, it := range items {
		if t := strings.TrimSpace(it.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// leadText is the first body line, or the first paragraph or subheading of
// the structured body.
func leadText(doc *SlideDocument) string {
	if lines := nonEmpty(doc.BodyLines); len(lines) > 0 {
		return lines[0]
	}
	for _, b := range doc.StructuredBody {
		switch v := b.(type) {
		case Paragraph:
			return v.Text
		case Subheading:
			return v.Text
		}
	}
	return ""
}

// restLines returns the item lines after the lead line. For a structured body
// the lead comes from a paragraph, so every list item remains.
func restLines(doc *SlideDocument) []string {
	if len(doc.StructuredBody) > 0 {
		return itemLines(doc)
	}
	lines := nonEmpty(doc.BodyLines)
	if len(lines) <= 1 {
		return nil
	}
	return lines[1:]
}

// metricsOf collects metric blocks, or parses "label: value" body lines.
func metricsOf(doc *SlideDocument) []Metric {
	var out []Metric
	for _, b := range doc.StructuredBody {
		if g, ok := b.(MetricGrid); ok {
			out = append(out, g.Items...)
		}
	}
	if len(out) > 0 || len(doc.StructuredBody) > 0 {
		return out
	}
	for _, l := range nonEmpty(doc.BodyLines) {
		if m, ok := parseMetricLine(l); ok {
			out = append(out, m)
		}
	}
	return out
}

func parseMetricLine(s string) (Metric, bool) {
	label, value, ok := strings.Cut(stripDash(stripNumber(s)), ":")
	if !ok {
		return Metric{}, false
	}
	return Metric{Value: strings.TrimSpace(value), Label: strings.TrimSpace(label)}, true
}

// comparison is a two-column split of body content.
type comparison struct {
	LeftTitle, RightTitle string
	Left, Right           []string
}

func isVersus(s string) bool {
	s = strings.TrimSpace(s)
	return strings.EqualFold(s, "vs") || strings.EqualFold(s, "vs.")
}

// splitComparison divides lines at a "vs" line, taking the first line of each
// side as its title. Without a separator it splits at the midpoint (rounded
// up) and leaves the titles empty.
func splitComparison(lines []string) comparison {
	lines = nonEmpty(lines)
	for i, l := range lines {
		if !isVersus(l) {
			continue
		}
		var c comparison
		c.LeftTitle, c.Left = titled(lines[:i])
		c.RightTitle, c.Right = titled(lines[i+1:])
		return c
	}
	mid := (len(lines) + 1) / 2
	return comparison{Left: dashless(lines[:mid]), Right: dashless(lines[mid:])}
}

func titled(lines []string) (string, []string) {
	if len(lines) == 0 {
		return "", nil
	}
	return stripDash(lines[0]), dashless(lines[1:])
}

func dashless(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, stripDash(l))
	}
	return out
}

// comparisonOf reads two columns from the structured body when it holds at
// least two lists (each titled by the subheading before it); otherwise the
// flattened content goes through splitComparison.
func comparisonOf(doc *SlideDocument) comparison {
	if len(doc.StructuredBody) == 0 {
		return splitComparison(doc.BodyLines)
	}
	type column struct {
		title string
		items []string
	}
	var cols []column
	var heading string
	var flat []string
	for _, b := range doc.StructuredBody {
		switch v := b.(type) {
		case Subheading:
			heading = v.Text
			flat = append(flat, v.Text)
		case Paragraph:
			flat = append(flat, v.Text)
		case BulletList:
			cols = append(cols, column{heading, appendItems(nil, v.Items)})
			flat = appendItems(flat, v.Items)
			heading = ""
		case NumberedList:
			cols = append(cols, column{heading, appendItems(nil, v.Items)})
			flat = appendItems(flat, v.Items)
			heading = ""
		}
	}
	if len(cols) >= 2 {
		return comparison{
			LeftTitle: cols[0].title, Left: dashless(cols[0].items),
			RightTitle: cols[1].title, Right: dashless(cols[1].items),
		}
	}
	return splitComparison(flat)
}
