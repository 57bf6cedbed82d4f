// Package markdown imports a Markdown outline as slide documents.
//
// Each level-one heading opens a slide and becomes its title. Everything up
// to the next level-one heading fills the slide's structured body:
//
//	# Why now
//	<!-- type: PROBLEM -->
//	<!-- label: Market -->
//
//	## Pain points
//
//	- **Slow onboarding**
//	- Manual review
//
//	| Value | Label |
//	|---|---|
//	| 42% | churn |
//
//	![team](https://example.com/team.png)
//
//	> Speaker notes go in block quotes.
//
// A "Type: X" paragraph directly after the heading also selects the slide
// type. Without one the first slide is TITLE and the rest are CONTENT.
package markdown

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/VantageDataChat/GoDeck/layout"
)

// ErrNoSlides is returned when the source has no content at all.
var ErrNoSlides = errors.New("markdown: no slides found")

var (
	directiveRe = regexp.MustCompile(`(?s)<!--\s*([A-Za-z]+)\s*:\s*(.*?)\s*-->`)
	typeLineRe  = regexp.MustCompile(`(?i)^type\s*:\s*(\S+)\s*$`)
)

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// Parse converts src into slide documents numbered from 1.
func Parse(src []byte) ([]layout.SlideDocument, error) {
	doc := md.Parser().Parse(text.NewReader(src))
	b := &builder{src: src}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if err := b.node(n); err != nil {
			return nil, err
		}
	}
	slides := b.finish()
	if len(slides) == 0 {
		return nil, ErrNoSlides
	}
	return slides, nil
}

type builder struct {
	src    []byte
	slides []layout.SlideDocument
	cur    *layout.SlideDocument
	notes  []string
	// typed is set once the current slide's type came from a directive.
	typed bool
}

func (b *builder) open(title string) {
	b.flush()
	b.slides = append(b.slides, layout.SlideDocument{Title: title})
	b.cur = &b.slides[len(b.slides)-1]
	b.typed = false
}

// current returns the slide being filled, opening an untitled one for
// content that precedes the first heading.
func (b *builder) current() *layout.SlideDocument {
	if b.cur == nil {
		b.open("")
	}
	return b.cur
}

func blank(s *layout.SlideDocument) bool {
	return s.Title == "" && len(s.StructuredBody) == 0 && s.ImageURL == ""
}

func (b *builder) flush() {
	if b.cur != nil && len(b.notes) > 0 {
		b.cur.SpeakerNotes = strings.Join(b.notes, "\n\n")
	}
	b.notes = nil
}

func (b *builder) add(blk layout.Block) {
	s := b.current()
	s.StructuredBody = append(s.StructuredBody, blk)
}

func (b *builder) node(n ast.Node) error {
	switch v := n.(type) {
	case *ast.Heading:
		title := b.inline(v)
		if v.Level == 1 {
			if b.cur != nil && blank(b.cur) {
				// directives written above the heading
				b.cur.Title = title
				return nil
			}
			b.open(title)
			return nil
		}
		b.add(layout.Subheading{Text: title})
	case *ast.HTMLBlock:
		b.directive(b.lines(v))
	case *ast.Paragraph:
		b.paragraph(v)
	case *ast.List:
		items := b.listItems(v)
		if v.IsOrdered() {
			b.add(layout.NumberedList{Items: items})
		} else {
			b.add(layout.BulletList{Items: items})
		}
	case *extast.Table:
		b.add(b.table(v))
	case *ast.Blockquote:
		b.current()
		if note := b.blockText(v); note != "" {
			b.notes = append(b.notes, note)
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if code := strings.TrimRight(b.lines(v), "\n"); code != "" {
			b.add(layout.Paragraph{Text: code})
		}
	case *ast.ThematicBreak:
	default:
		return fmt.Errorf("markdown: unsupported %s block at offset %d", n.Kind(), offset(n))
	}
	return nil
}

func offset(n ast.Node) int {
	if l := n.Lines(); l != nil && l.Len() > 0 {
		return l.At(0).Start
	}
	return -1
}

func (b *builder) directive(raw string) {
	for _, m := range directiveRe.FindAllStringSubmatch(raw, -1) {
		s := b.current()
		switch strings.ToLower(m[1]) {
		case "type":
			s.SlideType = slideType(m[2])
			b.typed = true
		case "label":
			s.SectionLabel = m[2]
		case "notes":
			b.notes = append(b.notes, m[2])
		}
	}
}

// slideType upper-cases a directive value. The layout registry matches
// exactly, so "quote" in an outline must become QUOTE here. Unknown names
// are kept and render as CONTENT.
func slideType(raw string) layout.SlideType {
	t, _ := layout.ParseSlideType(strings.ToUpper(strings.TrimSpace(raw)))
	return t
}

func (b *builder) paragraph(p *ast.Paragraph) {
	s := b.current()
	if url, ok := soleImage(p); ok {
		s.ImageURL = url
		return
	}
	txt := b.inline(p)
	if m := typeLineRe.FindStringSubmatch(txt); m != nil && !b.typed && len(s.StructuredBody) == 0 {
		s.SlideType = slideType(m[1])
		b.typed = true
		return
	}
	if url := firstImage(p); url != "" && s.ImageURL == "" {
		s.ImageURL = url
	}
	if txt != "" {
		b.add(layout.Paragraph{Text: txt})
	}
}

// soleImage reports whether p holds nothing but one image.
func soleImage(p ast.Node) (string, bool) {
	img, ok := p.FirstChild().(*ast.Image)
	if !ok || img.NextSibling() != nil {
		return "", false
	}
	return string(img.Destination), true
}

func firstImage(n ast.Node) string {
	var url string
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if img, ok := c.(*ast.Image); ok && entering {
			url = string(img.Destination)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return url
}

func (b *builder) listItems(l *ast.List) []layout.ListItem {
	var items []layout.ListItem
	for li := l.FirstChild(); li != nil; li = li.NextSibling() {
		item := layout.ListItem{Text: b.blockText(li), Bold: allStrong(li)}
		if item.Text != "" {
			items = append(items, item)
		}
	}
	return items
}

// allStrong reports whether the item's only content is one strong span.
func allStrong(li ast.Node) bool {
	blk := li.FirstChild()
	if blk == nil || blk.NextSibling() != nil {
		return false
	}
	em, ok := blk.FirstChild().(*ast.Emphasis)
	return ok && em.Level == 2 && em.NextSibling() == nil
}

func (b *builder) table(t *extast.Table) layout.Block {
	var headers []string
	var rows [][]string
	for n := t.FirstChild(); n != nil; n = n.NextSibling() {
		switch r := n.(type) {
		case *extast.TableHeader:
			headers = b.cells(r)
		case *extast.TableRow:
			rows = append(rows, b.cells(r))
		}
	}
	if len(headers) == 2 && strings.EqualFold(headers[0], "value") && strings.EqualFold(headers[1], "label") {
		g := layout.MetricGrid{}
		for _, r := range rows {
			m := layout.Metric{}
			if len(r) > 0 {
				m.Value = r[0]
			}
			if len(r) > 1 {
				m.Label = r[1]
			}
			g.Items = append(g.Items, m)
		}
		return g
	}
	return layout.Table{Headers: headers, Rows: rows}
}

func (b *builder) cells(row ast.Node) []string {
	var out []string
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		if _, ok := c.(*extast.TableCell); ok {
			out = append(out, b.inline(c))
		}
	}
	return out
}

// blockText joins the inline text of each child block with newlines.
func (b *builder) blockText(n ast.Node) string {
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		var s string
		switch c.(type) {
		case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
			s = b.inline(c)
		case *ast.List:
			var lines []string
			for _, it := range b.listItems(c.(*ast.List)) {
				lines = append(lines, it.Text)
			}
			s = strings.Join(lines, "\n")
		default:
			s = b.blockText(c)
		}
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

func (b *builder) inline(n ast.Node) string {
	var sb strings.Builder
	b.collect(n, &sb)
	return strings.TrimSpace(sb.String())
}

func (b *builder) collect(n ast.Node, sb *strings.Builder) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(b.src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(v.Value)
		case *ast.CodeSpan:
			b.collect(v, sb)
		case *ast.Image:
			// carried by ImageURL
		case *ast.AutoLink:
			sb.Write(v.Label(b.src))
		case *ast.RawHTML:
		default:
			b.collect(c, sb)
		}
	}
}

func (b *builder) lines(n ast.Node) string {
	var sb strings.Builder
	l := n.Lines()
	for i := 0; i < l.Len(); i++ {
		seg := l.At(i)
		sb.Write(seg.Value(b.src))
	}
	if h, ok := n.(*ast.HTMLBlock); ok && h.HasClosure() {
		sb.Write(h.ClosureLine.Value(b.src))
	}
	return sb.String()
}

func (b *builder) finish() []layout.SlideDocument {
	b.flush()
	out := b.slides[:0]
	for _, s := range b.slides {
		if blank(&s) && s.SpeakerNotes == "" {
			continue
		}
		out = append(out, s)
	}
	for i := range out {
		s := &out[i]
		s.SlideNumber = i + 1
		if s.SlideType == "" {
			s.SlideType = layout.SlideContent
			if i == 0 {
				s.SlideType = layout.SlideTitle
			}
		}
		s.BodyLines = bodyLines(s.StructuredBody)
	}
	return out
}

// bodyLines renders blocks in the plain-line form older producers send.
func bodyLines(blocks []layout.Block) []string {
	var out []string
	for _, blk := range blocks {
		switch v := blk.(type) {
		case layout.Paragraph:
			out = append(out, v.Text)
		case layout.Subheading:
			out = append(out, v.Text)
		case layout.BulletList:
			for _, it := range v.Items {
				out = append(out, "- "+it.Text)
			}
		case layout.NumberedList:
			for i, it := range v.Items {
				out = append(out, strconv.Itoa(i+1)+". "+it.Text)
			}
		case layout.MetricGrid:
			for _, m := range v.Items {
				out = append(out, m.Label+": "+m.Value)
			}
		case layout.Table:
			for _, r := range v.Rows {
				out = append(out, strings.Join(r, " | "))
			}
		}
	}
	return out
}
