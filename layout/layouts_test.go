package layout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	godeck "github.com/VantageDataChat/GoDeck"
)

func render(t *testing.T, env *Env, doc *SlideDocument) *godeck.Frame {
	t.Helper()
	f := newFrame(env)
	Render(context.Background(), f, doc, env)
	return f
}

// richDoc exercises every block kind plus an image.
func richDoc(st SlideType) *SlideDocument {
	return &SlideDocument{
		SlideNumber:  4,
		SlideType:    st,
		Title:        "Quarterly results",
		SectionLabel: "Finance",
		ImageURL:     "https://img.example/chart.png",
		SpeakerNotes: "Pause here.",
		StructuredBody: Blocks{
			Subheading{Text: "Highlights"},
			Paragraph{Text: "Strong quarter across regions."},
			BulletList{Items: []ListItem{{Text: "Revenue: up 40%"}, {Text: "Churn: down", Bold: true}}},
			NumberedList{Items: []ListItem{{Text: "Hire"}, {Text: "Expand"}}},
			MetricGrid{Items: []Metric{{Value: "$12M", Label: "ARR"}, {Value: "130%", Label: "NRR"}}},
			Table{Headers: []string{"Region", "Growth"}, Rows: [][]string{{"EU", "30%"}}},
		},
	}
}

func legacyDoc(st SlideType) *SlideDocument {
	return &SlideDocument{
		SlideNumber: 2,
		SlideType:   st,
		Title:       "Plan",
		ImageURL:    "https://img.example/plan.png",
		BodyLines: []string{
			"1. Discover: talk to users",
			"2. Build: ship weekly",
			"Ada Lovelace - CEO",
			"vs",
			"TAM: $50B",
			"- Launch",
		},
	}
}

func TestLayoutForIsTotal(t *testing.T) {
	for _, st := range AllSlideTypes() {
		assert.NotNil(t, LayoutFor(st), st)
	}
	assert.NotNil(t, LayoutFor("NOPE"))
	assert.NotNil(t, GetLayoutForType(""))
	assert.NotNil(t, GetLayoutForType("quote"))
}

func TestEveryLayoutRendersAnyDocument(t *testing.T) {
	docs := map[string]func(SlideType) *SlideDocument{
		"empty":      func(st SlideType) *SlideDocument { return &SlideDocument{SlideType: st} },
		"rich":       richDoc,
		"legacy":     legacyDoc,
		"title only": func(st SlideType) *SlideDocument { return &SlideDocument{SlideType: st, Title: "Only"} },
	}
	fetchers := map[string]ImageFetcher{"nil": nil, "failing": failingFetcher(), "ok": stubFetcher(t)}
	for _, st := range AllSlideTypes() {
		for dn, mk := range docs {
			for fn, fetcher := range fetchers {
				t.Run(string(st)+"/"+dn+"/"+fn, func(t *testing.T) {
					env := testEnv(fetcher)
					f := render(t, env, mk(st))
					require.NotNil(t, f.GetBackground(), "every layout paints a background")
					for _, n := range f.GetChildren() {
						if n.GetType() == godeck.NodeTypeLine {
							continue
						}
						assert.GreaterOrEqual(t, n.GetWidth(), 0.0, n.GetName())
						assert.GreaterOrEqual(t, n.GetHeight(), 0.0, n.GetName())
					}
				})
			}
		}
	}
}

func TestPaletteClosure(t *testing.T) {
	for _, name := range ThemeNames() {
		th, _ := ThemeByName(name)
		for _, st := range AllSlideTypes() {
			for _, doc := range []*SlideDocument{richDoc(st), legacyDoc(st)} {
				env := NewEnv(th, nil, failingFetcher(), nil)
				f := render(t, env, doc)
				allowed := paletteHex(th)
				if st == SlideVisualHumor {
					allowed = paletteHex(th, "#FFFFFF", "#000000")
				}
				for _, c := range frameColors(f) {
					assert.True(t, allowed[c.Hex()], "%s/%s uses off-palette color #%s", name, st, c.Hex())
				}
			}
		}
	}
}

func TestRenderCopiesNotesAndName(t *testing.T) {
	f := render(t, testEnv(nil), richDoc(SlideContent))
	assert.Equal(t, "Pause here.", f.GetNotes())
	assert.Equal(t, "Quarterly results", f.GetName())
}

func TestUnknownTypeUsesContentLayout(t *testing.T) {
	env, logs := debugEnv(failingFetcher())
	doc := legacyDoc("HOLOGRAM")
	got := render(t, env, doc)
	assert.Contains(t, logs.String(), "unknown slide type")

	doc.SlideType = SlideContent
	want := render(t, env, doc)
	require.Equal(t, want.GetChildCount(), got.GetChildCount())
	for i, n := range want.GetChildren() {
		g := got.GetChildren()[i]
		assert.Equal(t, n.GetType(), g.GetType())
		assert.Equal(t, n.GetX(), g.GetX())
		assert.Equal(t, n.GetY(), g.GetY())
		assert.Equal(t, n.GetWidth(), g.GetWidth())
	}

	ph := named(got, "image-placeholder")
	require.Len(t, ph, 1)
	region := contentImageRect(env.Canvas)
	assert.InDelta(t, 100+1720*0.58, ph[0].GetX(), 1e-9)
	assert.Equal(t, region.W, ph[0].GetWidth())
	assert.Equal(t, 880.0, ph[0].GetHeight())
	assert.Less(t, findText(t, got, "Plan").GetX()+findText(t, got, "Plan").GetWidth(), ph[0].GetX())
}

func TestLowerCaseTypeUsesContentLayout(t *testing.T) {
	env := testEnv(nil)
	doc := &SlideDocument{SlideType: "title", Title: "Welcome", BodyLines: []string{"Tagline"}}

	f := render(t, env, doc)
	assert.Len(t, named(f, "glow"), 1, "CONTENT draws a single corner glow")
	assert.Empty(t, named(f, "subtitle"))
	assert.Equal(t, 56.0, findText(t, f, "Welcome").GetFontSize())

	byName := newFrame(env)
	GetLayoutForType("title")(context.Background(), byName, doc, env)
	content := newFrame(env)
	Content(context.Background(), content, doc, env)
	require.Equal(t, content.GetChildCount(), byName.GetChildCount())
	for i, n := range content.GetChildren() {
		assert.Equal(t, n.GetName(), byName.GetChildren()[i].GetName())
	}

	exact := newFrame(env)
	GetLayoutForType("TITLE")(context.Background(), exact, doc, env)
	assert.Len(t, named(exact, "glow"), 2)
	assert.Len(t, named(exact, "subtitle"), 1)
}

func TestTitleSlide(t *testing.T) {
	env := testEnv(nil)
	f := render(t, env, &SlideDocument{
		SlideType: SlideTitle,
		Title:     "GoDeck",
		BodyLines: []string{"Slides from structure", "ignored second line"},
	})

	title := findText(t, f, "GoDeck")
	assert.Equal(t, godeck.AlignCenter, title.GetAlign())
	assert.Equal(t, 96.0, title.GetFontSize())
	assert.Equal(t, 100.0, title.GetX())
	assert.Equal(t, 1720.0, title.GetWidth())

	accent := named(f, "accent-line")
	require.Len(t, accent, 1)
	assert.Less(t, accent[0].GetY(), title.GetY())
	assert.InDelta(t, 960, accent[0].GetX()+accent[0].GetWidth()/2, 1e-9)

	sub := findText(t, f, "Slides from structure")
	assert.Greater(t, sub.GetY(), title.GetY())
	assert.Empty(t, textsEqual(f, "ignored second line"))
	assert.Empty(t, textsEqual(f, "•"))
	assert.Empty(t, named(f, "divider"))
}

func TestComparisonWithSeparator(t *testing.T) {
	env := testEnv(nil)
	f := render(t, env, &SlideDocument{
		SlideType: SlideComparison,
		Title:     "Then and now",
		BodyLines: []string{"Old Way", "- slow", "- manual", "vs", "New Way", "- fast", "- automated"},
	})

	left := findText(t, f, "Old Way")
	right := findText(t, f, "New Way")
	assert.Less(t, left.GetX(), 960.0)
	assert.Greater(t, right.GetX(), 960.0)
	assert.Len(t, named(f, "column-title"), 2)

	bullets := textsEqual(f, "•")
	checks := textsEqual(f, "✓")
	require.Len(t, bullets, 2)
	require.Len(t, checks, 2)
	for _, b := range bullets {
		assert.Less(t, b.GetX(), 960.0)
	}
	for _, c := range checks {
		assert.Greater(t, c.GetX(), 960.0)
	}
	for _, s := range []string{"slow", "manual", "fast", "automated"} {
		findText(t, f, s)
	}
	assert.Empty(t, textsEqual(f, "- slow"))
	assert.Empty(t, textsEqual(f, "vs"))
	findText(t, f, "VS")
}

func TestComparisonWithoutSeparator(t *testing.T) {
	env := testEnv(nil)
	f := render(t, env, &SlideDocument{
		SlideType: SlideComparison,
		Title:     "Split",
		BodyLines: []string{"a", "b", "c", "d", "e"},
	})
	assert.Empty(t, named(f, "column-title"))
	assert.Len(t, textsEqual(f, "•"), 3)
	assert.Len(t, textsEqual(f, "✓"), 2)
	assert.Greater(t, findText(t, f, "d").GetX(), 960.0)
}

func TestDataMetricsGrid(t *testing.T) {
	env := testEnv(nil)
	f := render(t, env, &SlideDocument{
		SlideType: SlideDataMetrics,
		Title:     "Traction",
		StructuredBody: Blocks{MetricGrid{Items: []Metric{
			{"1", "a"}, {"2", "b"}, {"3", "c"}, {"4", "d"}, {"5", "e"},
		}}},
	})
	cards := named(f, "metric-card")
	require.Len(t, cards, 5)
	want := (1920.0 - 2*100 - 3*24) / 4
	for _, c := range cards {
		assert.InDelta(t, want, c.GetWidth(), 1e-9)
	}
	for i := 1; i < 4; i++ {
		assert.Equal(t, cards[0].GetY(), cards[i].GetY())
	}
	assert.Equal(t, cards[0].GetY()+150, cards[4].GetY())
	assert.Equal(t, 100.0, cards[0].GetX())
}

func TestDataMetricsLegacyLines(t *testing.T) {
	env := testEnv(nil)
	f := render(t, env, &SlideDocument{
		SlideType: SlideDataMetrics,
		Title:     "Traction",
		BodyLines: []string{"Users: 10k", "Revenue: $1M", "Growing fast"},
	})
	assert.Len(t, named(f, "metric-card"), 2)
	assert.Equal(t, 48.0, findText(t, f, "10k").GetFontSize())
	findText(t, f, "Growing fast")
}

func TestContentImageSuccess(t *testing.T) {
	env := testEnv(stubFetcher(t))
	f := render(t, env, legacyDoc(SlideContent))
	imgs := f.ChildrenOfType(godeck.NodeTypeImage)
	require.Len(t, imgs, 1)
	assert.Equal(t, contentImageRect(env.Canvas).X, imgs[0].GetX())
	last := f.GetChildren()[f.GetChildCount()-1]
	assert.Equal(t, godeck.NodeTypeImage, last.GetType(), "image is drawn after the text")
}

func TestVisualHumorOrder(t *testing.T) {
	env := testEnv(stubFetcher(t))
	f := render(t, env, &SlideDocument{
		SlideType: SlideVisualHumor,
		Title:     "When the demo works",
		BodyLines: []string{"first try"},
		ImageURL:  "https://img.example/cat.png",
	})
	require.NotNil(t, f.GetBackground())
	assert.Equal(t, HexToRGB(env.Theme.Background), f.GetBackground().Color)

	kids := f.GetChildren()
	require.GreaterOrEqual(t, len(kids), 4)
	assert.Equal(t, "background-image", kids[0].GetName())
	assert.Equal(t, "overlay", kids[1].GetName())
	ov := fillOf(t, kids[1])
	assert.Equal(t, godeck.ColorBlack, ov.Color)
	assert.Equal(t, 0.45, ov.Opacity)
	for _, txt := range textNodes(f) {
		assert.Equal(t, godeck.ColorWhite, txt.GetFills()[0].Color)
	}
}

func TestVisualHumorWithoutImage(t *testing.T) {
	env := testEnv(failingFetcher())
	f := render(t, env, &SlideDocument{SlideType: SlideVisualHumor, Title: "x", ImageURL: "u"})
	assert.Equal(t, "overlay", f.GetChildren()[0].GetName())
}

func TestProcessSteps(t *testing.T) {
	env := testEnv(nil)
	f := render(t, env, &SlideDocument{
		SlideType: SlideProcess,
		Title:     "How it works",
		BodyLines: []string{"1. Upload: drop a file", "2. Review: check it", "3. Ship: done"},
	})
	badges := named(f, "badge")
	require.Len(t, badges, 3)
	assert.Len(t, named(f, "connector"), 2)
	findText(t, f, "Upload")
	findText(t, f, "drop a file")
	for i, n := range []string{"1", "2", "3"} {
		assert.Equal(t, n, textsEqual(f, n)[0].GetCharacters())
		if i > 0 {
			assert.Greater(t, badges[i].GetX(), badges[i-1].GetX())
		}
	}
	// The short row is centered.
	first, last := badges[0], badges[2]
	assert.InDelta(t, 960, (first.GetX()+last.GetX()+last.GetWidth())/2, 1e-6)
}

func TestProcessWrapsAfterFiveSteps(t *testing.T) {
	env := testEnv(nil)
	f := render(t, env, &SlideDocument{
		SlideType: SlideProcess,
		BodyLines: []string{"a", "b", "c", "d", "e", "f", "g"},
	})
	badges := named(f, "badge")
	require.Len(t, badges, 7)
	assert.Equal(t, badges[0].GetY(), badges[4].GetY())
	assert.Greater(t, badges[5].GetY(), badges[4].GetY())
	assert.Len(t, named(f, "connector"), 4+1)
}

func TestTeamCards(t *testing.T) {
	env := testEnv(nil)
	f := render(t, env, &SlideDocument{
		SlideType: SlideTeam,
		Title:     "Team",
		BodyLines: []string{"Ada Lovelace - CEO", "Alan Turing - CTO"},
	})
	assert.Len(t, named(f, "member"), 2)
	findText(t, f, "AL")
	findText(t, f, "AT")
	assert.Equal(t, HexToRGB(env.Theme.Accent), findText(t, f, "CTO").GetFills()[0].Color)
}

func TestFeatureGridColumns(t *testing.T) {
	env := testEnv(nil)
	four := render(t, env, &SlideDocument{SlideType: SlideFeatureGrid, BodyLines: []string{"a", "b", "c", "d"}})
	cards := named(four, "feature")
	require.Len(t, cards, 4)
	assert.Equal(t, cards[0].GetY(), cards[1].GetY())
	assert.Greater(t, cards[2].GetY(), cards[1].GetY())

	five := render(t, env, &SlideDocument{SlideType: SlideFeatureGrid, BodyLines: []string{"a", "b", "c", "d", "e"}})
	cards = named(five, "feature")
	require.Len(t, cards, 5)
	assert.Equal(t, cards[0].GetY(), cards[2].GetY())
	assert.Greater(t, cards[3].GetY(), cards[2].GetY())
}

func TestOutlineTwoColumns(t *testing.T) {
	env := testEnv(nil)
	f := render(t, env, &SlideDocument{
		SlideType: SlideOutline,
		Title:     "Agenda",
		BodyLines: []string{"1. Intro", "2. Problem", "3. Solution", "4. Market", "5. Team", "6. Ask"},
	})
	one := findText(t, f, "01")
	four := findText(t, f, "04")
	assert.Greater(t, four.GetX(), one.GetX())
	assert.Equal(t, one.GetY(), four.GetY())
	findText(t, f, "Intro")
	assert.Empty(t, textsEqual(f, "1. Intro"))
}

func TestQuoteAttribution(t *testing.T) {
	env := testEnv(nil)
	f := render(t, env, &SlideDocument{
		SlideType: SlideQuote,
		Title:     "Simplicity is prerequisite for reliability.",
		BodyLines: []string{"Edsger Dijkstra"},
	})
	findText(t, f, "“")
	findText(t, f, "— Edsger Dijkstra")
}

func TestSectionDividerNumber(t *testing.T) {
	env := testEnv(nil)
	f := render(t, env, &SlideDocument{SlideType: SlideSectionDivider, SlideNumber: 7, Title: "Market"})
	n := findText(t, f, "07")
	assert.Equal(t, 0.15, n.GetFills()[0].Opacity)
}

func TestMetricsHighlightHero(t *testing.T) {
	env := testEnv(nil)
	f := render(t, env, &SlideDocument{
		SlideType: SlideMetricsHighlight,
		Title:     "North star",
		BodyLines: []string{"Weekly active teams: 12,400", "Retention: 94%"},
	})
	hero := findText(t, f, "12,400")
	assert.Equal(t, 160.0, hero.GetFontSize())
	assert.Len(t, named(f, "metric-card"), 1)
}

func TestMarketSizingCircles(t *testing.T) {
	env := testEnv(nil)
	f := render(t, env, &SlideDocument{
		SlideType: SlideMarketSizing,
		Title:     "Market",
		BodyLines: []string{"TAM: $50B", "SAM: $8B", "SOM: $400M", "Extra: ignored"},
	})
	findText(t, f, "TAM")
	findText(t, f, "$400M")
	assert.Empty(t, textsEqual(f, "ignored"))
	// Three nested circles plus three legend swatches.
	assert.Len(t, f.ChildrenOfType(godeck.NodeTypeEllipse), 6)
}

func TestArchitectureFallbackLayers(t *testing.T) {
	env := testEnv(nil)
	f := render(t, env, &SlideDocument{
		SlideType: SlideArchitecture,
		Title:     "System",
		BodyLines: []string{"Edge: CDN", "API: Go services", "Data: Postgres"},
	})
	assert.Len(t, named(f, "layer"), 3)
	assert.Len(t, named(f, "connector"), 2)

	withImage := render(t, env, &SlideDocument{SlideType: SlideArchitecture, Title: "System", ImageURL: "u"})
	ph := named(withImage, "image-placeholder")
	require.Len(t, ph, 1)
	assert.Equal(t, 1720.0, ph[0].GetWidth())
}

func TestCTAButtons(t *testing.T) {
	env := testEnv(nil)
	f := render(t, env, &SlideDocument{
		SlideType: SlideCTA,
		Title:     "Get started",
		BodyLines: []string{"Free for teams", "Sign up", "Book demo", "Read docs", "Too many"},
	})
	findText(t, f, "Free for teams")
	assert.Len(t, named(f, "button"), 3)
	assert.Empty(t, textsEqual(f, "Too many"))
	assert.Equal(t, 80.0, findText(t, f, "Get started").GetFontSize())
}

func TestSplitStatementPanel(t *testing.T) {
	env := testEnv(nil)
	f := render(t, env, &SlideDocument{SlideType: SlideSplitStatement, Title: "Less is more", BodyLines: []string{"Because focus wins."}})
	panel := named(f, "panel")
	require.Len(t, panel, 1)
	assert.Equal(t, 960.0, panel[0].GetWidth())
	assert.Greater(t, findText(t, f, "Because focus wins.").GetX(), 960.0)
}

func TestTimelineAndLogoWall(t *testing.T) {
	env := testEnv(nil)
	tl := render(t, env, &SlideDocument{SlideType: SlideTimeline, BodyLines: []string{"2023: Seed", "2024: Series A"}})
	assert.Len(t, tl.ChildrenOfType(godeck.NodeTypeEllipse), 2)
	assert.Less(t, findText(t, tl, "2023").GetX(), findText(t, tl, "2024").GetX())

	lw := render(t, env, &SlideDocument{SlideType: SlideLogoWall, BodyLines: []string{"Acme", "Globex", "Initech", "Umbrella", "Hooli"}})
	logos := named(lw, "logo")
	require.Len(t, logos, 5)
	assert.InDelta(t, 960, logos[4].GetX()+logos[4].GetWidth()/2, 1e-6)
}
