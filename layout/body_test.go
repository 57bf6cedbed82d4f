package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	godeck "github.com/VantageDataChat/GoDeck"
)

func TestRenderStructuredBody_Empty(t *testing.T) {
	env := testEnv(nil)
	f := newFrame(env)
	assert.Equal(t, 300.0, RenderStructuredBody(f, nil, env, 300, 1000, 100))
	assert.Equal(t, 0, f.GetChildCount())
}

func TestRenderStructuredBody_Advances(t *testing.T) {
	cases := []struct {
		name  string
		block Block
		want  float64
	}{
		{"subheading", Subheading{Text: "Context"}, 50},
		{"paragraph", Paragraph{Text: "Short line."}, 80},
		{"bullets", BulletList{Items: []ListItem{{Text: "a"}, {Text: "b"}, {Text: "c"}}}, 3*44 + 16},
		{"numbered", NumberedList{Items: []ListItem{{Text: "a"}, {Text: "b"}}}, 2*44 + 16},
		{"empty list", BulletList{}, 16},
		{"metrics", MetricGrid{Items: []Metric{{"1", "a"}, {"2", "b"}, {"3", "c"}, {"4", "d"}, {"5", "e"}}}, 2 * 150},
		{"table", Table{Headers: []string{"A", "B"}, Rows: [][]string{{"1", "2"}, {"3", "4"}}}, 50 + 2*44 + 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := testEnv(nil)
			f := newFrame(env)
			got := RenderStructuredBody(f, []Block{tc.block}, env, 200, 1720, 100)
			assert.Equal(t, 200+tc.want, got)
		})
	}
}

func TestRenderStructuredBody_WrappedParagraphPushesCursor(t *testing.T) {
	env := testEnv(nil)
	f := newFrame(env)
	long := "Lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod tempor incididunt ut labore"
	y := RenderStructuredBody(f, []Block{Paragraph{Text: long}}, env, 0, 300, 0)
	txt := textNodes(f)[0]
	assert.Greater(t, txt.GetHeight(), 34.0)
	assert.Equal(t, txt.GetHeight()+paragraphGap, y)
}

func TestRenderStructuredBody_Lists(t *testing.T) {
	env := testEnv(nil)
	f := newFrame(env)
	RenderStructuredBody(f, []Block{
		BulletList{Items: []ListItem{{Text: "plain"}, {Text: "loud", Bold: true}}},
		NumberedList{Items: []ListItem{{Text: "first"}, {Text: "second"}}},
	}, env, 0, 800, 40)

	assert.Len(t, textsEqual(f, "•"), 2)
	assert.Len(t, textsEqual(f, "1."), 1)
	assert.Len(t, textsEqual(f, "2."), 1)

	plain := findText(t, f, "plain")
	assert.Equal(t, 40.0+listTextIndent, plain.GetX())
	assert.Equal(t, env.Fonts.Body, plain.GetFont())
	assert.Equal(t, env.Fonts.HeadingBold, findText(t, f, "loud").GetFont())
	assert.Equal(t, HexToRGB(env.Theme.Accent), textsEqual(f, "•")[0].GetFills()[0].Color)
}

func TestRenderStructuredBody_MetricGrid(t *testing.T) {
	env := testEnv(nil)
	f := newFrame(env)
	items := []Metric{{"1", "a"}, {"2", "b"}, {"3", "c"}, {"4", "d"}, {"5", "e"}}
	RenderStructuredBody(f, []Block{MetricGrid{Items: items}}, env, 300, 1720, 100)

	cards := named(f, "metric-card")
	require.Len(t, cards, 5)
	want := (1720.0 - 3*24) / 4
	for i, c := range cards {
		assert.InDelta(t, want, c.GetWidth(), 1e-9)
		assert.Equal(t, 126.0, c.GetHeight())
		if i < 4 {
			assert.Equal(t, 300.0, c.GetY())
			assert.InDelta(t, 100+float64(i)*(want+24), c.GetX(), 1e-9)
		}
	}
	assert.Equal(t, 450.0, cards[4].GetY())
	assert.Equal(t, 100.0, cards[4].GetX())

	value := findText(t, f, "3")
	assert.Equal(t, 48.0, value.GetFontSize())
	assert.Equal(t, HexToRGB(env.Theme.Accent), value.GetFills()[0].Color)
	assert.Equal(t, 18.0, findText(t, f, "c").GetFontSize())
}

func TestRenderStructuredBody_Table(t *testing.T) {
	env := testEnv(nil)
	f := newFrame(env)
	RenderStructuredBody(f, []Block{Table{Headers: []string{"Plan", "Price"}, Rows: [][]string{{"Pro", "$9"}}}}, env, 0, 1000, 0)

	head := findText(t, f, "Price")
	assert.Equal(t, 500.0, head.GetX())
	assert.Equal(t, env.Fonts.HeadingBold, head.GetFont())
	assert.Equal(t, HexToRGB(env.Theme.Primary), head.GetFills()[0].Color)
	cell := findText(t, f, "$9")
	assert.Equal(t, 50.0, cell.GetY())
	assert.Equal(t, 18.0, cell.GetFontSize())
	assert.Len(t, named(f, "divider"), 1)
}

func TestRenderStructuredBody_SkipsUnknownBlocks(t *testing.T) {
	env, logs := debugEnv(nil)
	f := newFrame(env)
	y := RenderStructuredBody(f, []Block{UnknownBlock{Type: "chart"}}, env, 120, 1000, 0)
	assert.Equal(t, 120.0, y)
	assert.Equal(t, 0, f.GetChildCount())
	assert.Contains(t, logs.String(), "skipping unknown block")
	assert.Contains(t, logs.String(), "chart")
}

func TestRenderStructuredBody_SkipsNilBlocks(t *testing.T) {
	env := testEnv(nil)
	f := newFrame(env)
	y := RenderStructuredBody(f, []Block{nil, Paragraph{Text: "after nil"}, nil}, env, 200, 1000, 100)
	assert.Equal(t, 280.0, y)
	require.Len(t, textNodes(f), 1)
	assert.Equal(t, 200.0, findText(t, f, "after nil").GetY())
}

func TestRenderStructuredBody_StopsAtBottomEdge(t *testing.T) {
	env := testEnv(nil)
	f := newFrame(env)
	items := make([]ListItem, 40)
	for i := range items {
		items[i] = ListItem{Text: "row"}
	}
	y := RenderStructuredBody(f, []Block{
		BulletList{Items: items},
		Paragraph{Text: "never drawn"},
	}, env, 200, 1000, 100)

	assert.Equal(t, 200.0+18*44, y)
	assert.Empty(t, textsEqual(f, "never drawn"))
	rows := textsEqual(f, "row")
	assert.Len(t, rows, 18, "rows 44px apart from y=200 up to the 980 edge")
	for _, r := range rows {
		assert.LessOrEqual(t, r.GetY()+r.GetHeight(), env.Canvas.Bottom())
	}
	assert.Len(t, textsEqual(f, "•"), len(rows), "a cut row drops its bullet too")
}

func TestRenderStructuredBody_CutsMetricRows(t *testing.T) {
	env := testEnv(nil)
	f := newFrame(env)
	metrics := make([]Metric, 12)
	for i := range metrics {
		metrics[i] = Metric{Value: "1", Label: "m"}
	}
	y := RenderStructuredBody(f, []Block{MetricGrid{Items: metrics}}, env, 600, 1720, 100)
	// Rows start at 600 and 750; the third at 900 would end at 1026.
	assert.Len(t, named(f, "metric-card"), 8)
	assert.Equal(t, 900.0, y)
}

func TestRenderStructuredBody_Monotonic(t *testing.T) {
	env := testEnv(nil)
	blocks := []Block{
		Subheading{Text: "s"},
		Paragraph{Text: "p"},
		BulletList{Items: []ListItem{{Text: "b"}}},
		NumberedList{},
		MetricGrid{},
		MetricGrid{Items: []Metric{{"1", "x"}}},
		Table{},
	}
	y := 0.0
	for i := range blocks {
		f := newFrame(env)
		next := RenderStructuredBody(f, blocks[:i+1], env, 0, 1000, 0)
		assert.Greater(t, next, y, "block %d", i)
		y = next
	}
}

func TestRenderStructuredBody_Deterministic(t *testing.T) {
	env := testEnv(nil)
	blocks := []Block{
		Subheading{Text: "Heading"},
		BulletList{Items: []ListItem{{Text: "alpha beta gamma"}}},
		MetricGrid{Items: []Metric{{"9", "nine"}}},
	}
	render := func() []godeck.Node {
		f := newFrame(env)
		RenderStructuredBody(f, blocks, env, 10, 900, 20)
		return f.GetChildren()
	}
	a, b := render(), render()
	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].GetType(), b[i].GetType())
		assert.Equal(t, a[i].GetX(), b[i].GetX())
		assert.Equal(t, a[i].GetY(), b[i].GetY())
		assert.Equal(t, a[i].GetHeight(), b[i].GetHeight())
	}
}
