package godeck

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// helper: write deck to buffer and return the zip parts by name
func writeParts(t *testing.T, d *Deck) map[string]string {
	t.Helper()
	var buf bytes.Buffer
	if err := d.WritePPTX(&buf); err != nil {
		t.Fatalf("WritePPTX failed: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("zip.NewReader failed: %v", err)
	}
	parts := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		parts[f.Name] = string(data)
	}
	return parts
}

// helper: create a w x h PNG filled with c
func testPNG(w, h int, c color.Color) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// fixedMeasurer treats every rune as 10px wide regardless of font.
type fixedMeasurer struct{}

func (fixedMeasurer) MeasureString(_ FontName, _ float64, s string) float64 {
	return float64(len([]rune(s))) * 10
}

func sampleDeck() *Deck {
	d := NewDeck()
	f := d.CreateFrame()
	f.SetName("Intro")
	f.SetBackground(LinearGradientPaint(90,
		GradientStop{Position: 0, Color: NewColor("#0F172A"), Opacity: 1},
		GradientStop{Position: 1, Color: NewColor("#1E293B"), Opacity: 1},
	))

	card := NewRect()
	card.SetPosition(100, 100).SetSize(400, 200).SetFills(SolidPaint(NewColor("1E293B"), 1))
	card.SetCornerRadius(16)
	card.SetShadow(NewDropShadow())
	f.AppendChild(card)

	dot := NewEllipse()
	dot.SetPosition(600, 100).SetSize(80, 80).SetFills(SolidPaint(NewColor("6366F1"), 0.5))
	f.AppendChild(dot)

	line := NewLine()
	line.SetPosition(100, 400).SetSize(600, 0).SetStrokes(SolidPaint(NewColor("334155"), 1))
	f.AppendChild(line)

	txt := NewText("Hello & welcome")
	txt.SetFont(FontName{Family: "Inter", Style: "Bold"}).SetFontSize(56)
	txt.SetPosition(100, 500).SetSize(800, 0).SetFills(SolidPaint(NewColor("F8FAFC"), 1))
	f.AppendChild(txt)

	img := NewImage()
	img.SetImageData(testPNG(200, 100, color.White), "image/png")
	img.SetPosition(1000, 100).SetSize(400, 400)
	img.SetCornerRadius(24)
	f.AppendChild(img)

	f.SetNotes("Say hello\nthen move on")
	return d
}

func TestWritePPTXParts(t *testing.T) {
	parts := writeParts(t, sampleDeck())

	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/app.xml",
		"docProps/core.xml",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/presProps.xml",
		"ppt/viewProps.xml",
		"ppt/tableStyles.xml",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideMasters/_rels/slideMaster1.xml.rels",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/slideLayouts/_rels/slideLayout1.xml.rels",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/_rels/slide1.xml.rels",
		"ppt/media/image1.png",
		"ppt/notesSlides/notesSlide1.xml",
		"ppt/notesSlides/_rels/notesSlide1.xml.rels",
	} {
		if _, ok := parts[name]; !ok {
			t.Errorf("missing part %s", name)
		}
	}

	if !strings.Contains(parts["ppt/presentation.xml"], `<p:sldSz cx="12192000" cy="6858000"/>`) {
		t.Errorf("unexpected slide size in presentation.xml:\n%s", parts["ppt/presentation.xml"])
	}
	if !strings.Contains(parts["[Content_Types].xml"], `Extension="png"`) {
		t.Error("content types should declare png")
	}
}

func TestWritePPTXSlideContent(t *testing.T) {
	slide := writeParts(t, sampleDeck())["ppt/slides/slide1.xml"]

	checks := []string{
		`<p:cSld name="Intro">`,
		`<a:lin ang="5400000" scaled="0"/>`,
		`prst="roundRect"`,
		`<a:gd name="adj" fmla="val 8000"/>`,
		`prst="ellipse"`,
		`<a:alpha val="50000"/>`,
		`<a:outerShdw`,
		`<p:cxnSp>`,
		`<a:t>Hello &amp; welcome</a:t>`,
		`sz="2800"`,
		`b="1"`,
		`<a:latin typeface="Inter"/>`,
		`<a:blip r:embed="rId2">`,
		`<a:srcRect l="25000" r="25000"/>`,
	}
	for _, c := range checks {
		if !strings.Contains(slide, c) {
			t.Errorf("slide1.xml missing %q", c)
		}
	}

	rels := writeParts(t, sampleDeck())["ppt/slides/_rels/slide1.xml.rels"]
	if !strings.Contains(rels, `Id="rId2"`) || !strings.Contains(rels, "../media/image1.png") {
		t.Errorf("image relationship missing:\n%s", rels)
	}
	if !strings.Contains(rels, `Id="rId3"`) || !strings.Contains(rels, "notesSlide1.xml") {
		t.Errorf("notes relationship missing:\n%s", rels)
	}
}

func TestWritePPTXNotesLines(t *testing.T) {
	notes := writeParts(t, sampleDeck())["ppt/notesSlides/notesSlide1.xml"]
	if !strings.Contains(notes, "<a:t>Say hello</a:t>") || !strings.Contains(notes, "<a:t>then move on</a:t>") {
		t.Errorf("notes lines not written as paragraphs:\n%s", notes)
	}
}

func TestWritePPTXMediaNumbering(t *testing.T) {
	d := NewDeck()
	for i := 0; i < 3; i++ {
		f := d.CreateFrame()
		img := NewImage()
		img.SetImageData(testPNG(4, 4, color.Black), "image/png")
		img.SetSize(100, 100)
		f.AppendChild(img)
	}
	parts := writeParts(t, d)
	for i := 1; i <= 3; i++ {
		name := "ppt/media/image" + string(rune('0'+i)) + ".png"
		if _, ok := parts[name]; !ok {
			t.Errorf("missing %s", name)
		}
	}
	if !strings.Contains(parts["ppt/slides/_rels/slide3.xml.rels"], "../media/image3.png") {
		t.Error("slide 3 should reference image3")
	}
}

func TestRoundRectAdjustCapped(t *testing.T) {
	if got := prstGeomXML(false, 100, 40, 40); !strings.Contains(got, "val 50000") {
		t.Errorf("expected adj capped at 50000, got %s", got)
	}
	if got := prstGeomXML(false, 0, 40, 40); !strings.Contains(got, `prst="rect"`) {
		t.Errorf("expected plain rect, got %s", got)
	}
}

func TestImageCropModes(t *testing.T) {
	img := NewImage()
	img.SetImageData(testPNG(100, 200, color.White), "image/png")
	img.SetSize(100, 100)

	if got := imageCropXML(img); !strings.Contains(got, `<a:srcRect t="25000" b="25000"/>`) {
		t.Errorf("fill crop: %s", got)
	}
	img.SetScaleMode(ScaleFit)
	if got := imageCropXML(img); !strings.Contains(got, `<a:fillRect l="25000" r="25000"/>`) {
		t.Errorf("fit inset: %s", got)
	}
	img.SetScaleMode(ScaleStretch)
	if got := imageCropXML(img); strings.Contains(got, "srcRect") {
		t.Errorf("stretch should not crop: %s", got)
	}
}

func TestLineFlip(t *testing.T) {
	l := NewLine()
	l.SetPosition(200, 100).SetSize(-100, 50)
	got := xfrmXML(&l.BaseNode)
	if !strings.Contains(got, `flipH="1"`) {
		t.Errorf("expected flipH: %s", got)
	}
	if !strings.Contains(got, `<a:off x="635000" y="635000"/>`) {
		t.Errorf("unexpected offset: %s", got)
	}
}

func TestSaveCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deck.pptx")
	if err := sampleDeck().Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("saved file is empty")
	}
}

func TestWriteNilDeck(t *testing.T) {
	w := &PPTXWriter{}
	if err := w.WriteTo(io.Discard); err == nil {
		t.Error("expected error for nil deck")
	}
	if _, err := NewWriter(NewDeck(), WriterType("Keynote")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestDeckFrameOperations(t *testing.T) {
	d := NewDeck()
	a := d.CreateFrame().SetName("a")
	b := d.CreateFrame().SetName("b")
	c := d.CreateFrame().SetName("c")

	if err := d.MoveFrame(2, 0); err != nil {
		t.Fatalf("MoveFrame: %v", err)
	}
	got := d.GetAllFrames()
	if got[0] != c || got[1] != a || got[2] != b {
		t.Errorf("unexpected order after move: %s %s %s", got[0].GetName(), got[1].GetName(), got[2].GetName())
	}
	if err := d.RemoveFrameByIndex(1); err != nil {
		t.Fatalf("RemoveFrameByIndex: %v", err)
	}
	if d.GetFrameCount() != 2 {
		t.Errorf("expected 2 frames, got %d", d.GetFrameCount())
	}
	if _, err := d.GetFrame(5); err == nil {
		t.Error("expected out of range error")
	}
	if err := d.MoveFrame(0, 9); err == nil {
		t.Error("expected out of range error")
	}
}

func TestFrameChildren(t *testing.T) {
	f := NewFrame(1920, 1080)
	if f.AppendChild(nil) != nil {
		t.Error("nil child should be ignored")
	}
	f.AppendChild(NewRect())
	f.AppendChild(NewText("one"))
	f.AppendChild(NewText("two"))
	if f.GetChildCount() != 3 {
		t.Fatalf("expected 3 children, got %d", f.GetChildCount())
	}
	if n := len(f.ChildrenOfType(NodeTypeText)); n != 2 {
		t.Errorf("expected 2 text nodes, got %d", n)
	}
	if got := strings.Join(f.ExtractText(), ","); got != "one,two" {
		t.Errorf("ExtractText = %q", got)
	}
	if err := f.RemoveChild(0); err != nil {
		t.Fatalf("RemoveChild: %v", err)
	}
	if err := f.RemoveChild(7); err == nil {
		t.Error("expected out of range error")
	}
}

func TestValidation(t *testing.T) {
	if err := sampleDeck().Validate(); err != nil {
		t.Errorf("sample deck should be valid: %v", err)
	}

	if err := NewDeck().Validate(); err == nil {
		t.Error("empty deck should fail validation")
	}

	d := NewDeck()
	f := d.CreateFrame()
	r := NewRect()
	r.SetSize(-10, 10)
	f.AppendChild(r)
	f.AppendChild(NewImage())
	f.SetBackground(LinearGradientPaint(0, GradientStop{Color: ColorWhite, Opacity: 1}))
	err := d.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"width is negative", "no image data", "at least 2 stops"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("validation error missing %q: %v", want, err)
		}
	}
}

func TestColors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#FF6600", "FF6600"},
		{"ff6600", "FF6600"},
		{"#abc", "000000"},
		{"zzzzzz", "000000"},
	}
	for _, tt := range tests {
		if got := NewColor(tt.in).Hex(); got != tt.want {
			t.Errorf("NewColor(%q).Hex() = %s, want %s", tt.in, got, tt.want)
		}
	}
	c := NewColor("#FFFFFF").NRGBA(0.5)
	if c.A != 128 || c.R != 255 {
		t.Errorf("unexpected NRGBA %+v", c)
	}
}

func TestMeasurements(t *testing.T) {
	if got := PixelToEMU(1920); got != 12192000 {
		t.Errorf("PixelToEMU(1920) = %d", got)
	}
	if got := EMUToPixel(6350); got != 1 {
		t.Errorf("EMUToPixel(6350) = %v", got)
	}
	if got := PixelToPoint(48); got != 24 {
		t.Errorf("PixelToPoint(48) = %v", got)
	}
	cx, cy := NewCanvasSize().EMU()
	if cx != 12192000 || cy != 6858000 {
		t.Errorf("widescreen EMU = %d x %d", cx, cy)
	}
}

func TestWrapText(t *testing.T) {
	m := fixedMeasurer{}
	f := FontName{Family: "Go"}

	lines := WrapText(m, f, 24, 0, "aaa bbb ccc", 75)
	if len(lines) != 2 || lines[0] != "aaa bbb" || lines[1] != "ccc" {
		t.Errorf("unexpected wrap: %q", lines)
	}

	lines = WrapText(m, f, 24, 0, "one\ntwo", 1000)
	if len(lines) != 2 {
		t.Errorf("explicit newline should break: %q", lines)
	}

	lines = WrapText(m, f, 24, 0, "", 100)
	if len(lines) != 1 || lines[0] != "" {
		t.Errorf("empty text should yield one empty line: %q", lines)
	}

	lines = WrapText(m, f, 24, 0, "supercalifragilistic", 50)
	if len(lines) != 1 {
		t.Errorf("long word should stay on one line: %q", lines)
	}
}

func TestTextFit(t *testing.T) {
	txt := NewText("aaa bbb ccc")
	txt.SetFontSize(20)
	txt.SetSize(75, 0)
	txt.Fit(fixedMeasurer{})
	if got, want := txt.GetHeight(), 2*20*1.2; got != want {
		t.Errorf("height = %v, want %v", got, want)
	}

	auto := NewText("abcd")
	auto.Fit(fixedMeasurer{})
	if auto.GetWidth() != 40 {
		t.Errorf("zero width should become widest line, got %v", auto.GetWidth())
	}

	explicit := NewText("a\nb\nc")
	explicit.SetLineHeight(30).SetSize(100, 0)
	explicit.Fit(fixedMeasurer{})
	if explicit.GetHeight() != 90 {
		t.Errorf("height = %v, want 90", explicit.GetHeight())
	}
}

func TestWriteFrameSVG(t *testing.T) {
	d := sampleDeck()
	var buf bytes.Buffer
	if err := WriteFrameSVG(&buf, d.GetAllFrames()[0], fixedMeasurer{}); err != nil {
		t.Fatalf("WriteFrameSVG: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"<svg",
		"linearGradient",
		"feGaussianBlur",
		"clipPath",
		"data:image/png;base64,",
		`preserveAspectRatio="xMidYMid slice"`,
		"Hello &amp; welcome",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("svg output missing %q", want)
		}
	}
}

func TestWriteFrameSVGShadowOffset(t *testing.T) {
	f := NewFrame(800, 600)
	card := NewRect()
	card.SetPosition(10, 10).SetSize(200, 100).SetFills(SolidPaint(ColorWhite, 1))
	sh := NewDropShadow()
	sh.OffsetX, sh.OffsetY = 2.6, -7.4
	card.SetShadow(sh)
	f.AppendChild(card)

	var buf bytes.Buffer
	if err := WriteFrameSVG(&buf, f, fixedMeasurer{}); err != nil {
		t.Fatalf("WriteFrameSVG: %v", err)
	}
	if want := `dx="3" dy="-7"`; !strings.Contains(buf.String(), want) {
		t.Errorf("feOffset should round to whole pixels, want %s in:\n%s", want, buf.String())
	}
}

func TestSVGWriterSave(t *testing.T) {
	d := sampleDeck()
	d.CreateFrame()
	dir := t.TempDir()
	w, err := NewWriter(d, WriterSVG)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Save(filepath.Join(dir, "frame-%02d.svg")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	for _, name := range []string{"frame-01.svg", "frame-02.svg"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	if err := w.Save(filepath.Join(dir, "frame.svg")); err == nil {
		t.Error("expected error for pattern without frame number")
	}
}
