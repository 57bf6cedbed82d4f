package layout

import (
	"fmt"
	"math"

	godeck "github.com/VantageDataChat/GoDeck"
)

const (
	subheadingAdvance = 50
	paragraphAdvance  = 80
	paragraphGap      = 24
	listItemAdvance   = 44
	listTrailingGap   = 16
	listTextIndent    = 36
	metricColumns     = 4
	metricGap         = 24
	metricCardHeight  = 126
	metricRowAdvance  = 150
	tableHeaderHeight = 50
	tableRowHeight    = 44
	tableTrailingGap  = 20
)

// RenderStructuredBody draws blocks top to bottom starting at (startX,
// startY) within maxWidth and returns the y coordinate below the last block.
// Unknown and nil blocks are skipped without moving the cursor. Nothing is
// drawn below the canvas's bottom padding edge: the first row that would
// cross it ends the body.
func RenderStructuredBody(frame *godeck.Frame, blocks []Block, env *Env, startY, maxWidth, startX float64) float64 {
	return renderBody(frame, blocks, env, startX, startY, maxWidth, env.bottom())
}

func renderBody(frame *godeck.Frame, blocks []Block, env *Env, x, y, w, bottom float64) float64 {
	for i, b := range blocks {
		if b == nil {
			continue
		}
		var ok bool
		switch v := b.(type) {
		case Subheading:
			y, ok = renderSubheading(frame, env, v, x, y, w, bottom)
		case Paragraph:
			y, ok = renderParagraph(frame, env, v, x, y, w, bottom)
		case BulletList:
			y, ok = renderList(frame, env, v.Items, false, x, y, w, bottom)
		case NumberedList:
			y, ok = renderList(frame, env, v.Items, true, x, y, w, bottom)
		case MetricGrid:
			y, ok = renderMetrics(frame, env, v.Items, x, y, w, bottom)
		case Table:
			y, ok = renderTable(frame, env, v, x, y, w, bottom)
		default:
			env.log().Debug("skipping unknown block", "type", b.BlockType())
			continue
		}
		if !ok {
			env.log().Debug("body cut at bottom edge", "block", i, "blocks", len(blocks))
			break
		}
	}
	return y
}

func renderSubheading(frame *godeck.Frame, env *Env, b Subheading, x, y, w, bottom float64) (float64, bool) {
	if _, ok := textWithin(frame, env, b.Text, TextOptions{
		X: x, Y: y, Width: w,
		Font: env.Fonts.HeadingBold, Size: 32, Color: env.Theme.Primary,
	}, bottom); !ok {
		return y, false
	}
	return y + subheadingAdvance, true
}

// renderParagraph advances by at least paragraphAdvance; wrapped paragraphs
// push the cursor further so the next block never overlaps.
func renderParagraph(frame *godeck.Frame, env *Env, b Paragraph, x, y, w, bottom float64) (float64, bool) {
	t, ok := textWithin(frame, env, b.Text, TextOptions{
		X: x, Y: y, Width: w,
		Font: env.Fonts.Body, Size: 24, Color: env.Theme.Text, Opacity: 0.8, LineHeight: 34,
	}, bottom)
	if !ok {
		return y, false
	}
	return y + math.Max(paragraphAdvance, t.GetHeight()+paragraphGap), true
}

func renderList(frame *godeck.Frame, env *Env, items []ListItem, numbered bool, x, y, w, bottom float64) (float64, bool) {
	for i, it := range items {
		prefix := "•"
		if numbered {
			prefix = fmt.Sprintf("%d.", i+1)
		}
		font := env.Fonts.Body
		if it.Bold {
			font = env.Fonts.HeadingBold
		}
		next, ok := listRow(frame, env, prefix, env.Theme.Accent, it.Text, font, x, y, w, bottom)
		if !ok {
			return y, false
		}
		y = next
	}
	return y + listTrailingGap, true
}

// listRow draws a prefixed line of body text and returns the next row's y.
// A row whose text would end below bottom is not drawn.
func listRow(frame *godeck.Frame, env *Env, prefix, prefixColor, text string, font godeck.FontName, x, y, w, bottom float64) (float64, bool) {
	t := styledText(env, text, TextOptions{
		X: x + listTextIndent, Y: y, Width: w - listTextIndent,
		Font: font, Size: 24, Color: env.Theme.Text, LineHeight: 32,
	})
	if y+t.GetHeight() > bottom {
		return y, false
	}
	CreateStyledText(frame, env, prefix, TextOptions{
		X: x, Y: y, Width: listTextIndent,
		Font: env.Fonts.HeadingBold, Size: 24, Color: prefixColor,
	})
	frame.AppendChild(t)
	return y + math.Max(listItemAdvance, t.GetHeight()+12), true
}

// gridColumns splits width into cols equal cells separated by gap.
func gridColumns(width, gap float64, cols int) float64 {
	if cols <= 0 {
		return width
	}
	return (width - float64(cols-1)*gap) / float64(cols)
}

func renderMetrics(frame *godeck.Frame, env *Env, items []Metric, x, y, w, bottom float64) (float64, bool) {
	if len(items) == 0 {
		return y + metricGap, true
	}
	cols := min(len(items), metricColumns)
	cardW := gridColumns(w, metricGap, cols)
	for i, m := range items {
		cx := x + float64(i%cols)*(cardW+metricGap)
		cy := y + float64(i/cols)*metricRowAdvance
		if cy+metricCardHeight > bottom {
			return cy, false
		}
		Card(frame, env, CardOptions{X: cx, Y: cy, Width: cardW, Height: metricCardHeight, Radius: 16, Name: "metric-card"})
		CreateStyledText(frame, env, m.Value, TextOptions{
			X: cx + 24, Y: cy + 16, Width: cardW - 48,
			Font: env.Fonts.HeadingBold, Size: 48, Color: env.Theme.Accent, LineHeight: 58,
		})
		textWithin(frame, env, m.Label, TextOptions{
			X: cx + 24, Y: cy + 80, Width: cardW - 48,
			Font: env.Fonts.Body, Size: 18, Color: env.Theme.Text, Opacity: 0.7,
		}, cy+metricCardHeight)
	}
	rows := (len(items) + cols - 1) / cols
	return y + float64(rows)*metricRowAdvance, true
}

func renderTable(frame *godeck.Frame, env *Env, t Table, x, y, w, bottom float64) (float64, bool) {
	if y+tableHeaderHeight > bottom {
		return y, false
	}
	cols := len(t.Headers)
	for _, r := range t.Rows {
		cols = max(cols, len(r))
	}
	colW := w
	if cols > 0 {
		colW = w / float64(cols)
	}
	for i, h := range t.Headers {
		CreateStyledText(frame, env, h, TextOptions{
			X: x + float64(i)*colW, Y: y, Width: colW - 16,
			Font: env.Fonts.HeadingBold, Size: 20, Color: env.Theme.Primary,
		})
	}
	Divider(frame, env, DividerOptions{X: x, Y: y + 40, Width: w, Color: env.Theme.Border})
	for r, row := range t.Rows {
		ry := y + tableHeaderHeight + float64(r)*tableRowHeight
		cells := make([]*godeck.TextNode, len(row))
		low := ry
		for c, cell := range row {
			cells[c] = styledText(env, cell, TextOptions{
				X: x + float64(c)*colW, Y: ry, Width: colW - 16,
				Font: env.Fonts.Body, Size: 18, Color: env.Theme.Text,
			})
			low = math.Max(low, ry+cells[c].GetHeight())
		}
		if low > bottom {
			return ry, false
		}
		for _, c := range cells {
			frame.AppendChild(c)
		}
	}
	return y + tableHeaderHeight + float64(len(t.Rows))*tableRowHeight + tableTrailingGap, true
}
