package layout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func itemBody(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("Item %d: detail", i+1)
	}
	return lines
}

func structuredItems(n int) Blocks {
	items := make([]ListItem, n)
	for i := range items {
		items[i] = ListItem{Text: fmt.Sprintf("Item %d: detail", i+1)}
	}
	metrics := make([]Metric, n/2)
	for i := range metrics {
		metrics[i] = Metric{Value: fmt.Sprintf("%d%%", 10*i), Label: fmt.Sprintf("Metric %d", i+1)}
	}
	rows := make([][]string, n/2)
	for i := range rows {
		rows[i] = []string{fmt.Sprintf("Row %d", i+1), "value"}
	}
	return Blocks{
		Subheading{Text: "Overview"},
		Paragraph{Text: "A paragraph ahead of a long list."},
		BulletList{Items: items},
		MetricGrid{Items: metrics},
		Table{Headers: []string{"Name", "Value"}, Rows: rows},
	}
}

func TestTextStaysInsidePadding(t *testing.T) {
	docs := map[string]func(SlideType) *SlideDocument{
		"rich":   richDoc,
		"legacy": legacyDoc,
	}
	for _, n := range []int{12, 16, 24, 40} {
		docs[fmt.Sprintf("%d lines", n)] = func(st SlideType) *SlideDocument {
			return &SlideDocument{SlideNumber: 3, SlideType: st, Title: "Stress", SectionLabel: "Load", BodyLines: itemBody(n)}
		}
		docs[fmt.Sprintf("%d blocks", n)] = func(st SlideType) *SlideDocument {
			return &SlideDocument{SlideNumber: 3, SlideType: st, Title: "Stress", StructuredBody: structuredItems(n)}
		}
	}
	for _, st := range AllSlideTypes() {
		for name, mk := range docs {
			t.Run(string(st)+"/"+name, func(t *testing.T) {
				env := testEnv(failingFetcher())
				c := env.Canvas
				f := render(t, env, mk(st))
				for _, txt := range textNodes(f) {
					label := fmt.Sprintf("%q at (%.1f, %.1f) size %.1fx%.1f", txt.GetCharacters(), txt.GetX(), txt.GetY(), txt.GetWidth(), txt.GetHeight())
					assert.GreaterOrEqual(t, txt.GetX(), c.Padding-1e-6, label)
					assert.LessOrEqual(t, txt.GetX()+txt.GetWidth(), c.Right()+1e-6, label)
					assert.GreaterOrEqual(t, txt.GetY(), c.Padding-1e-6, label)
					assert.LessOrEqual(t, txt.GetY()+txt.GetHeight(), c.Bottom()+1e-6, label)
				}
			})
		}
	}
}

func TestTeamCardTextStaysInCard(t *testing.T) {
	env := testEnv(nil)
	lines := make([]string, 16)
	for i := range lines {
		lines[i] = fmt.Sprintf("Person %d - Engineer", i+1)
	}
	f := render(t, env, &SlideDocument{SlideType: SlideTeam, Title: "Team", BodyLines: lines})
	cards := named(f, "member")
	assert.Len(t, cards, 16)
	card := cards[len(cards)-1]
	role := textsEqual(f, "Engineer")
	assert.Len(t, role, 16)
	last := role[len(role)-1]
	assert.LessOrEqual(t, last.GetY()+last.GetHeight(), card.GetY()+card.GetHeight())
	assert.Less(t, card.GetHeight(), 300.0, "cards shrink to fit three rows")
}

func TestSplitStatementMovesLinesUp(t *testing.T) {
	env := testEnv(nil)
	f := render(t, env, &SlideDocument{SlideType: SlideSplitStatement, Title: "Focus", BodyLines: itemBody(12)})
	first := findText(t, f, "Item 1: detail")
	assert.Less(t, first.GetY(), env.Canvas.CenterY()-120)
	findText(t, f, "Item 12: detail")

	f = render(t, env, &SlideDocument{SlideType: SlideSplitStatement, Title: "Focus", BodyLines: itemBody(14)})
	assert.Equal(t, env.Canvas.Padding, findText(t, f, "Item 1: detail").GetY())
	findText(t, f, "Item 13: detail")
	assert.Empty(t, textsEqual(f, "Item 14: detail"), "lines past the bottom edge are dropped")
}

func TestOverflowingItemsAreDropped(t *testing.T) {
	env, logs := debugEnv(nil)
	f := render(t, env, &SlideDocument{SlideType: SlideArchitecture, Title: "Stack", BodyLines: itemBody(24)})
	layers := named(f, "layer")
	assert.NotEmpty(t, layers)
	assert.Less(t, len(layers), 24)
	assert.Contains(t, logs.String(), "dropping the rest")

	f = render(t, env, &SlideDocument{SlideType: SlideContent, Title: "Long", BodyLines: itemBody(24)})
	assert.NotEmpty(t, textsEqual(f, "Item 1: detail"))
	assert.Empty(t, textsEqual(f, "Item 24: detail"))
}
