// Package layout turns slide documents into positioned nodes on a godeck
// frame. Each slide type has one layout function; all of them draw in the
// same order (background, decoration, title, accent line, body, image) and
// read only the document and the Env they are given.
//
// Rendering never fails. Missing content is left out, unknown slide types
// use the CONTENT layout, unknown blocks are skipped and images that cannot
// be fetched become placeholders.
package layout

import (
	"context"

	godeck "github.com/VantageDataChat/GoDeck"
)

// LayoutFunc draws one slide onto frame.
type LayoutFunc func(ctx context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env)

// LayoutFor returns the layout of t. Types outside the known set get the
// CONTENT layout.
func LayoutFor(t SlideType) LayoutFunc {
	switch t {
	case SlideTitle:
		return Title
	case SlideContent:
		return Content
	case SlideProblem:
		return Problem
	case SlideSolution:
		return Solution
	case SlideComparison:
		return Comparison
	case SlideProcess:
		return Process
	case SlideDataMetrics:
		return DataMetrics
	case SlideCTA:
		return CTA
	case SlideQuote:
		return Quote
	case SlideArchitecture:
		return Architecture
	case SlideTeam:
		return Team
	case SlideTimeline:
		return Timeline
	case SlideSectionDivider:
		return SectionDivider
	case SlideMetricsHighlight:
		return MetricsHighlight
	case SlideFeatureGrid:
		return FeatureGrid
	case SlideProductShowcase:
		return ProductShowcase
	case SlideLogoWall:
		return LogoWall
	case SlideMarketSizing:
		return MarketSizing
	case SlideSplitStatement:
		return SplitStatement
	case SlideVisualHumor:
		return VisualHumor
	case SlideOutline:
		return Outline
	default:
		return Content
	}
}

// GetLayoutForType resolves a type name. Matching is exact, so "title" gets
// the CONTENT layout. It never returns nil.
func GetLayoutForType(name string) LayoutFunc {
	return LayoutFor(SlideType(name))
}

// Render draws doc onto frame with the layout for its slide type and copies
// the speaker notes onto the frame.
func Render(ctx context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	t := doc.SlideType
	if _, known := ParseSlideType(string(t)); !known {
		env.log().Debug("unknown slide type, using CONTENT", "slide", doc.SlideNumber, "type", doc.SlideType)
	}
	frame.SetName(slideName(doc))
	LayoutFor(t)(ctx, frame, doc, env)
	if doc.SpeakerNotes != "" {
		frame.SetNotes(doc.SpeakerNotes)
	}
	env.log().Log(ctx, levelTrace, "slide rendered", "slide", doc.SlideNumber, "type", t, "nodes", frame.GetChildCount())
}

// levelTrace matches the TRACE level of the CLI logger.
const levelTrace = -8

func slideName(doc *SlideDocument) string {
	if doc.Title != "" {
		return doc.Title
	}
	return string(doc.SlideType)
}
