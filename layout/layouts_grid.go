package layout

import (
	"context"
	"math"
	"strconv"

	godeck "github.com/VantageDataChat/GoDeck"
)

// gridCells places n cells of cellW x cellH in rows of cols, starting at
// (x, y). Each row, including a short last row, is centered within width.
func gridCells(n, cols int, x, y, width, cellW, cellH, gap float64) []Rect {
	if n <= 0 || cols <= 0 {
		return nil
	}
	cells := make([]Rect, 0, n)
	for i := 0; i < n; i++ {
		row, col := i/cols, i%cols
		inRow := min(cols, n-row*cols)
		rowW := float64(inRow)*cellW + float64(inRow-1)*gap
		left := x + (width-rowW)/2
		cells = append(cells, Rect{
			X: left + float64(col)*(cellW+gap),
			Y: y + float64(row)*(cellH+gap),
			W: cellW,
			H: cellH,
		})
	}
	return cells
}

// fitHeight shrinks a preferred cell height so rows of it fit in avail.
func fitHeight(preferred, avail, gap float64, rows int) float64 {
	if rows <= 0 {
		return preferred
	}
	return math.Min(preferred, (avail-float64(rows-1)*gap)/float64(rows))
}

// gridRows is how many rows of cells at least minH tall fit in avail.
func gridRows(avail, minH, gap float64) int {
	return max(1, int((avail+gap)/(minH+gap)))
}

// capItems keeps the first n items and logs what it drops.
func capItems(env *Env, kind string, items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	env.log().Debug("slide has more items than fit, dropping the rest", "kind", kind, "kept", n, "dropped", len(items)-n)
	return items[:n]
}

// cellScale returns the factor for offsets inside a cell shrunk from
// preferred to h, and the gentler factor used for font sizes.
func cellScale(h, preferred float64) (offset, font float64) {
	offset = math.Min(1, h/preferred)
	return offset, math.Max(offset, 0.75)
}

// Comparison draws two columns split by a VS badge. Left items get •, right
// items ✓.
func Comparison(_ context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	c, th := env.Canvas, env.Theme
	SolidBackground(frame, th.Background)
	y := header(frame, env, doc, c.Padding, c.ContentWidth(), th.Accent)

	cmp := comparisonOf(doc)
	const gap = 120.0
	colW := (c.ContentWidth() - gap) / 2
	cardH := c.Bottom() - y
	left := Rect{X: c.Padding, Y: y, W: colW, H: cardH}
	right := Rect{X: c.Padding + colW + gap, Y: y, W: colW, H: cardH}

	Card(frame, env, CardOptions{X: left.X, Y: left.Y, Width: left.W, Height: left.H, Radius: 24, Stroke: th.Border, Name: "column-left"})
	comparisonColumn(frame, env, left, cmp.LeftTitle, th.Text, cmp.Left, "•", th.Border)
	Card(frame, env, CardOptions{X: right.X, Y: right.Y, Width: right.W, Height: right.H, Radius: 24, Stroke: th.Primary, StrokeWeight: 2, Name: "column-right"})
	comparisonColumn(frame, env, right, cmp.RightTitle, th.Primary, cmp.Right, "✓", th.Success)

	NumberBadge(frame, env, BadgeOptions{
		CX: c.CenterX(), CY: y + cardH/2, Radius: 44,
		Label: "VS", Fill: th.Accent, TextColor: th.Background, Size: 28,
	})
}

func comparisonColumn(frame *godeck.Frame, env *Env, r Rect, title, titleColor string, items []string, prefix, prefixColor string) {
	x, y, w := r.X+40, r.Y+40, r.W-80
	if title != "" {
		t := CreateStyledText(frame, env, title, TextOptions{
			X: x, Y: y, Width: w,
			Font: env.Fonts.HeadingBold, Size: 36, Color: titleColor,
			Name: "column-title",
		})
		y += t.GetHeight() + 24
	}
	bottom := r.Y + r.H - 40
	for _, it := range items {
		next, ok := listRow(frame, env, prefix, prefixColor, it, env.Fonts.Body, x, y, w, bottom)
		if !ok {
			return
		}
		y = next
	}
}

// Process lays steps out as numbered badges joined by connectors, at most
// five per row.
func Process(_ context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	c, th := env.Canvas, env.Theme
	SolidBackground(frame, th.Background)
	y := header(frame, env, doc, c.Padding, c.ContentWidth(), th.Accent)

	steps := itemLines(doc)
	if len(steps) == 0 {
		RenderStructuredBody(frame, doc.StructuredBody, env, y, c.ContentWidth(), c.Padding)
		return
	}
	const (
		gap      = 40.0
		perRow   = 5
		cellPref = 240.0
		cellMin  = 150.0
	)
	avail := c.Bottom() - y
	steps = capItems(env, "process steps", steps, perRow*gridRows(avail, cellMin, gap))
	cols := min(len(steps), perRow)
	rows := (len(steps) + cols - 1) / cols
	cellW := gridColumns(c.ContentWidth(), gap, cols)
	cellH := fitHeight(cellPref, avail, gap, rows)
	cells := gridCells(len(steps), cols, c.Padding, y, c.ContentWidth(), cellW, cellH, gap)
	k, fk := cellScale(cellH, cellPref)
	radius := 40 * k

	// Connectors go first so the badges cover their ends.
	for i := 1; i < len(cells); i++ {
		if i%cols == 0 {
			continue
		}
		prev, cur := cells[i-1], cells[i]
		Connector(frame, env, ConnectorOptions{
			X1: prev.X + prev.W/2 + radius, Y1: prev.Y + radius,
			X2: cur.X + cur.W/2 - radius, Y2: cur.Y + radius,
		})
	}
	for i, cell := range cells {
		label, desc := splitLabel(stripDash(stripNumber(steps[i])))
		NumberBadge(frame, env, BadgeOptions{
			CX: cell.X + cell.W/2, CY: cell.Y + radius, Radius: radius,
			Label: strconv.Itoa(i + 1), Fill: th.Primary, TextColor: th.Background,
		})
		bottom := cell.Y + cell.H
		t, ok := textWithin(frame, env, label, TextOptions{
			X: cell.X, Y: cell.Y + 2*radius + 20*k, Width: cell.W,
			Font: env.Fonts.HeadingBold, Size: 26 * fk, Color: th.Text, Align: godeck.AlignCenter,
		}, bottom)
		if ok && desc != "" {
			textWithin(frame, env, desc, TextOptions{
				X: cell.X, Y: t.GetY() + t.GetHeight() + 12*k, Width: cell.W,
				Font: env.Fonts.Body, Size: 20 * fk, Color: th.Text, Opacity: 0.75, Align: godeck.AlignCenter,
			}, bottom)
		}
	}
}

// Team shows one card per "Name - Role" line with an initials avatar.
func Team(_ context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	c, th := env.Canvas, env.Theme
	SolidBackground(frame, th.Background)
	y := header(frame, env, doc, c.Padding, c.ContentWidth(), th.Accent)

	members := itemLines(doc)
	if len(members) == 0 {
		RenderStructuredBody(frame, doc.StructuredBody, env, y, c.ContentWidth(), c.Padding)
		return
	}
	const (
		gap      = 40.0
		minCols  = 4
		maxCols  = 6
		cardPref = 300.0
		cardMin  = 160.0
	)
	avail := c.Bottom() - y
	maxRows := gridRows(avail, cardMin, gap)
	// Widen the rows before dropping anyone.
	cols := min(len(members), max(minCols, (len(members)+maxRows-1)/maxRows), maxCols)
	members = capItems(env, "team members", members, cols*maxRows)
	rows := (len(members) + cols - 1) / cols
	cellW := gridColumns(c.ContentWidth(), gap, cols)
	cellH := fitHeight(cardPref, avail, gap, rows)
	k, fk := cellScale(cellH, cardPref)
	for i, cell := range gridCells(len(members), cols, c.Padding, y, c.ContentWidth(), cellW, cellH, gap) {
		name, role := splitNameRole(stripDash(stripNumber(members[i])))
		Card(frame, env, CardOptions{X: cell.X, Y: cell.Y, Width: cell.W, Height: cell.H, Radius: 24, Stroke: th.Border, Name: "member"})
		NumberBadge(frame, env, BadgeOptions{
			CX: cell.X + cell.W/2, CY: cell.Y + 90*k, Radius: 60 * k,
			Label: initials(name), Fill: th.Primary, TextColor: th.Background, Size: 40 * k,
		})
		bottom := cell.Y + cell.H - 8
		n, ok := textWithin(frame, env, name, TextOptions{
			X: cell.X + 16, Y: cell.Y + 170*k, Width: cell.W - 32,
			Font: env.Fonts.HeadingBold, Size: 28 * fk, Color: th.Text, Align: godeck.AlignCenter,
		}, bottom)
		if ok && role != "" {
			textWithin(frame, env, role, TextOptions{
				X: cell.X + 16, Y: n.GetY() + n.GetHeight() + 8*k, Width: cell.W - 32,
				Font: env.Fonts.Body, Size: 20 * fk, Color: th.Accent, Align: godeck.AlignCenter,
			}, bottom)
		}
	}
}

// Timeline spreads milestones evenly along a horizontal line, labels above
// and descriptions below.
func Timeline(_ context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	c, th := env.Canvas, env.Theme
	SolidBackground(frame, th.Background)
	y := header(frame, env, doc, c.Padding, c.ContentWidth(), th.Accent)

	events := itemLines(doc)
	if len(events) == 0 {
		RenderStructuredBody(frame, doc.StructuredBody, env, y, c.ContentWidth(), c.Padding)
		return
	}
	const minSpacing = 140.0
	events = capItems(env, "timeline events", events, max(1, int(c.ContentWidth()/minSpacing)))
	lineY := y + 160
	Connector(frame, env, ConnectorOptions{X1: c.Padding, Y1: lineY, X2: c.Right(), Y2: lineY, Weight: 3})
	spacing := c.ContentWidth() / float64(len(events))
	for i, ev := range events {
		cx := c.Padding + spacing*(float64(i)+0.5)
		label, desc := splitLabel(stripDash(stripNumber(ev)))
		Circle(frame, env, CircleOptions{CX: cx, CY: lineY, Radius: 14, Fill: th.Accent, Stroke: th.Background})
		CreateStyledText(frame, env, label, TextOptions{
			X: cx - spacing/2 + 12, Y: lineY - 100, Width: spacing - 24,
			Font: env.Fonts.HeadingBold, Size: 28, Color: th.Primary, Align: godeck.AlignCenter,
		})
		if desc != "" {
			textWithin(frame, env, desc, TextOptions{
				X: cx - spacing/2 + 12, Y: lineY + 40, Width: spacing - 24,
				Font: env.Fonts.Body, Size: 20, Color: th.Text, Opacity: 0.8, Align: godeck.AlignCenter,
			}, c.Bottom())
		}
	}
}

// FeatureGrid shows features as cards, three per row (two for exactly four).
func FeatureGrid(_ context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	c, th := env.Canvas, env.Theme
	SolidBackground(frame, th.Background)
	y := header(frame, env, doc, c.Padding, c.ContentWidth(), th.Accent)

	features := itemLines(doc)
	if len(features) == 0 {
		RenderStructuredBody(frame, doc.StructuredBody, env, y, c.ContentWidth(), c.Padding)
		return
	}
	const (
		gap      = 32.0
		cellPref = 220.0
		cellMin  = 130.0
	)
	cols := 3
	if len(features) == 4 {
		cols = 2
	}
	avail := c.Bottom() - y
	features = capItems(env, "features", features, cols*gridRows(avail, cellMin, gap))
	cols = min(cols, len(features))
	rows := (len(features) + cols - 1) / cols
	cellW := gridColumns(c.ContentWidth(), gap, cols)
	cellH := fitHeight(cellPref, avail, gap, rows)
	k, fk := cellScale(cellH, cellPref)
	for i, cell := range gridCells(len(features), cols, c.Padding, y, c.ContentWidth(), cellW, cellH, gap) {
		label, desc := splitLabel(stripDash(stripNumber(features[i])))
		Card(frame, env, CardOptions{X: cell.X, Y: cell.Y, Width: cell.W, Height: cell.H, Radius: 20, Stroke: th.Border, Name: "feature"})
		Circle(frame, env, CircleOptions{CX: cell.X + 48, CY: cell.Y + 52*k, Radius: 18 * k, Fill: th.Accent, Opacity: 0.9})
		bottom := cell.Y + cell.H - 8
		t, ok := textWithin(frame, env, label, TextOptions{
			X: cell.X + 32, Y: cell.Y + 92*k, Width: cell.W - 64,
			Font: env.Fonts.HeadingBold, Size: 28 * fk, Color: th.Text,
		}, bottom)
		if ok && desc != "" {
			textWithin(frame, env, desc, TextOptions{
				X: cell.X + 32, Y: t.GetY() + t.GetHeight() + 8*k, Width: cell.W - 64,
				Font: env.Fonts.Body, Size: 20 * fk, Color: th.Text, Opacity: 0.75,
			}, bottom)
		}
	}
}

// LogoWall shows names as pills, four per row.
func LogoWall(_ context.Context, frame *godeck.Frame, doc *SlideDocument, env *Env) {
	c, th := env.Canvas, env.Theme
	SolidBackground(frame, th.Background)
	y := header(frame, env, doc, c.Padding, c.ContentWidth(), th.Accent)

	logos := itemLines(doc)
	if len(logos) == 0 {
		RenderStructuredBody(frame, doc.StructuredBody, env, y, c.ContentWidth(), c.Padding)
		return
	}
	const (
		gap    = 32.0
		height = 96.0
	)
	cols := min(len(logos), 4)
	logos = capItems(env, "logos", logos, cols*gridRows(c.Bottom()-y, height, gap))
	cellW := gridColumns(c.ContentWidth(), gap, cols)
	for i, cell := range gridCells(len(logos), cols, c.Padding, y, c.ContentWidth(), cellW, height, gap) {
		Card(frame, env, CardOptions{X: cell.X, Y: cell.Y, Width: cell.W, Height: cell.H, Radius: height / 2, Stroke: th.Border, Name: "logo"})
		t := CreateStyledText(frame, env, stripDash(stripNumber(logos[i])), TextOptions{
			X: cell.X + 24, Width: cell.W - 48,
			Font: env.Fonts.HeadingBold, Size: 26, Color: th.Text, Opacity: 0.85, Align: godeck.AlignCenter,
		})
		t.SetPosition(cell.X+24, cell.Y+(height-t.GetHeight())/2)
	}
}
