package layout

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// SlideType selects the layout function for a slide.
type SlideType string

const (
	SlideTitle            SlideType = "TITLE"
	SlideContent          SlideType = "CONTENT"
	SlideProblem          SlideType = "PROBLEM"
	SlideSolution         SlideType = "SOLUTION"
	SlideComparison       SlideType = "COMPARISON"
	SlideProcess          SlideType = "PROCESS"
	SlideDataMetrics      SlideType = "DATA_METRICS"
	SlideCTA              SlideType = "CTA"
	SlideQuote            SlideType = "QUOTE"
	SlideArchitecture     SlideType = "ARCHITECTURE"
	SlideTeam             SlideType = "TEAM"
	SlideTimeline         SlideType = "TIMELINE"
	SlideSectionDivider   SlideType = "SECTION_DIVIDER"
	SlideMetricsHighlight SlideType = "METRICS_HIGHLIGHT"
	SlideFeatureGrid      SlideType = "FEATURE_GRID"
	SlideProductShowcase  SlideType = "PRODUCT_SHOWCASE"
	SlideLogoWall         SlideType = "LOGO_WALL"
	SlideMarketSizing     SlideType = "MARKET_SIZING"
	SlideSplitStatement   SlideType = "SPLIT_STATEMENT"
	SlideVisualHumor      SlideType = "VISUAL_HUMOR"
	SlideOutline          SlideType = "OUTLINE"
)

var allSlideTypes = []SlideType{
	SlideTitle, SlideContent, SlideProblem, SlideSolution, SlideComparison, SlideProcess,
	SlideDataMetrics, SlideCTA, SlideQuote, SlideArchitecture, SlideTeam, SlideTimeline,
	SlideSectionDivider, SlideMetricsHighlight, SlideFeatureGrid, SlideProductShowcase,
	SlideLogoWall, SlideMarketSizing, SlideSplitStatement, SlideVisualHumor, SlideOutline,
}

// AllSlideTypes returns every known slide type in declaration order.
func AllSlideTypes() []SlideType {
	return append([]SlideType(nil), allSlideTypes...)
}

// ParseSlideType matches s exactly against the known types. Unknown names,
// including lower-case spellings of known ones, return false.
func ParseSlideType(s string) (SlideType, bool) {
	t := SlideType(s)
	for _, known := range allSlideTypes {
		if t == known {
			return t, true
		}
	}
	return t, false
}

// SlideDocument is the renderer-facing representation of one slide. The
// engine only reads it.
type SlideDocument struct {
	SlideNumber    int       `json:"slideNumber" yaml:"slideNumber"`
	SlideType      SlideType `json:"slideType" yaml:"slideType"`
	Title          string    `json:"title" yaml:"title"`
	BodyLines      []string  `json:"bodyLines,omitempty" yaml:"bodyLines,omitempty"`
	StructuredBody Blocks    `json:"structuredBody,omitempty" yaml:"structuredBody,omitempty"`
	ImageURL       string    `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	SectionLabel   string    `json:"sectionLabel,omitempty" yaml:"sectionLabel,omitempty"`
	SpeakerNotes   string    `json:"speakerNotes,omitempty" yaml:"speakerNotes,omitempty"`
}

// Block is one tagged unit of structured slide content.
type Block interface {
	// BlockType returns the wire tag ("paragraph", "bullets", ...).
	BlockType() string
	block()
}

// Block wire tags.
const (
	BlockParagraph  = "paragraph"
	BlockSubheading = "subheading"
	BlockBullets    = "bullets"
	BlockNumbered   = "numbered"
	BlockMetrics    = "metrics"
	BlockTable      = "table"
)

type Paragraph struct{ Text string }
type Subheading struct{ Text string }

// ListItem is one bullet or numbered entry.
type ListItem struct {
	Text string
	Bold bool
}

type BulletList struct{ Items []ListItem }
type NumberedList struct{ Items []ListItem }

// Metric is one value/label pair of a metrics grid.
type Metric struct {
	Value string
	Label string
}

type MetricGrid struct{ Items []Metric }

type Table struct {
	Headers []string
	Rows    [][]string
}

// UnknownBlock carries a block whose tag this version does not understand.
// Renderers skip it.
type UnknownBlock struct{ Type string }

func (Paragraph) BlockType() string      { return BlockParagraph }
func (Subheading) BlockType() string     { return BlockSubheading }
func (BulletList) BlockType() string     { return BlockBullets }
func (NumberedList) BlockType() string   { return BlockNumbered }
func (MetricGrid) BlockType() string     { return BlockMetrics }
func (Table) BlockType() string          { return BlockTable }
func (b UnknownBlock) BlockType() string { return b.Type }

func (Paragraph) block()    {}
func (Subheading) block()   {}
func (BulletList) block()   {}
func (NumberedList) block() {}
func (MetricGrid) block()   {}
func (Table) block()        {}
func (UnknownBlock) block() {}

// Blocks is an ordered structured body. It decodes from and encodes to the
// tagged JSON/YAML form:
//
//	{"type": "bullets", "items": ["one", {"text": "two", "bold": true}]}
type Blocks []Block

// rawBlock is the union of every block's wire fields.
type rawBlock struct {
	Type    string     `json:"type" yaml:"type"`
	Text    string     `json:"text,omitempty" yaml:"text,omitempty"`
	Items   []rawItem  `json:"items,omitempty" yaml:"items,omitempty"`
	Headers []string   `json:"headers,omitempty" yaml:"headers,omitempty"`
	Rows    [][]string `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// rawItem accepts a bare string or an object for list and metric items.
type rawItem struct {
	Text  string `json:"text,omitempty" yaml:"text,omitempty"`
	Bold  bool   `json:"bold,omitempty" yaml:"bold,omitempty"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

func (it *rawItem) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		it.Text = s
		return nil
	}
	type plain rawItem
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("block item: %w", err)
	}
	*it = rawItem(p)
	return nil
}

func (it *rawItem) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		it.Text = n.Value
		return nil
	}
	type plain rawItem
	var p plain
	if err := n.Decode(&p); err != nil {
		return fmt.Errorf("block item: %w", err)
	}
	*it = rawItem(p)
	return nil
}

func (r rawBlock) toBlock() Block {
	switch strings.ToLower(r.Type) {
	case BlockParagraph:
		return Paragraph{Text: r.Text}
	case BlockSubheading:
		return Subheading{Text: r.Text}
	case BlockBullets:
		return BulletList{Items: r.listItems()}
	case BlockNumbered:
		return NumberedList{Items: r.listItems()}
	case BlockMetrics:
		items := make([]Metric, 0, len(r.Items))
		for _, it := range r.Items {
			items = append(items, Metric{Value: it.Value, Label: it.Label})
		}
		return MetricGrid{Items: items}
	case BlockTable:
		return Table{Headers: r.Headers, Rows: r.Rows}
	default:
		return UnknownBlock{Type: r.Type}
	}
}

func (r rawBlock) listItems() []ListItem {
	items := make([]ListItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, ListItem{Text: it.Text, Bold: it.Bold})
	}
	return items
}

func fromBlock(b Block) rawBlock {
	r := rawBlock{Type: b.BlockType()}
	switch v := b.(type) {
	case Paragraph:
		r.Text = v.Text
	case Subheading:
		r.Text = v.Text
	case BulletList:
		r.Items = toRawItems(v.Items)
	case NumberedList:
		r.Items = toRawItems(v.Items)
	case MetricGrid:
		for _, m := range v.Items {
			r.Items = append(r.Items, rawItem{Value: m.Value, Label: m.Label})
		}
	case Table:
		r.Headers, r.Rows = v.Headers, v.Rows
	}
	return r
}

func toRawItems(items []ListItem) []rawItem {
	out := make([]rawItem, 0, len(items))
	for _, it := range items {
		out = append(out, rawItem{Text: it.Text, Bold: it.Bold})
	}
	return out
}

func (bs *Blocks) UnmarshalJSON(data []byte) error {
	var raw []rawBlock
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("structured body: %w", err)
	}
	*bs = make(Blocks, 0, len(raw))
	for _, r := range raw {
		*bs = append(*bs, r.toBlock())
	}
	return nil
}

func (bs Blocks) MarshalJSON() ([]byte, error) {
	raw := make([]rawBlock, 0, len(bs))
	for _, b := range bs {
		raw = append(raw, fromBlock(b))
	}
	return json.Marshal(raw)
}

func (bs *Blocks) UnmarshalYAML(n *yaml.Node) error {
	var raw []rawBlock
	if err := n.Decode(&raw); err != nil {
		return fmt.Errorf("structured body: %w", err)
	}
	*bs = make(Blocks, 0, len(raw))
	for _, r := range raw {
		*bs = append(*bs, r.toBlock())
	}
	return nil
}

func (bs Blocks) MarshalYAML() (interface{}, error) {
	raw := make([]rawBlock, 0, len(bs))
	for _, b := range bs {
		raw = append(raw, fromBlock(b))
	}
	return raw, nil
}
