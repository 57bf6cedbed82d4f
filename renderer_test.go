package godeck

import (
	"bytes"
	"context"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

func TestRenderFrame_Blank(t *testing.T) {
	img, err := RenderFrame(NewFrame(1920, 1080), &RenderOptions{Width: 960, FontCache: NewEmbeddedFontCache()})
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 960 || bounds.Dy() != 540 {
		t.Errorf("expected 960x540, got %dx%d", bounds.Dx(), bounds.Dy())
	}
	r, g, b, _ := img.At(10, 10).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("blank frame should be white, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestRenderFrame_Background(t *testing.T) {
	f := NewFrame(200, 100)
	f.SetBackground(SolidPaint(NewColor("#FF0000"), 1))
	img, err := RenderFrame(f, &RenderOptions{FontCache: NewEmbeddedFontCache()})
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	r, g, b, _ := img.At(50, 50).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("expected red background, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestRenderFrame_ShapesAndImage(t *testing.T) {
	f := NewFrame(400, 200)
	f.SetBackground(SolidPaint(ColorWhite, 1))

	rect := NewRect()
	rect.SetPosition(10, 10).SetSize(80, 80).SetFills(SolidPaint(NewColor("0000FF"), 1))
	f.AppendChild(rect)

	img := NewImage()
	img.SetImageData(testPNG(10, 20, color.NRGBA{G: 255, A: 255}), "image/png")
	img.SetPosition(200, 10).SetSize(100, 100)
	img.SetCornerRadius(8)
	img.SetShadow(NewDropShadow())
	f.AppendChild(img)

	out, err := RenderFrame(f, &RenderOptions{FontCache: NewEmbeddedFontCache()})
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	r, g, b, _ := out.At(50, 50).RGBA()
	if b>>8 != 255 || r>>8 != 0 || g>>8 != 0 {
		t.Errorf("expected blue rect, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
	// Cover-cropped image fills the whole box.
	_, g, _, _ = out.At(250, 60).RGBA()
	if g>>8 < 200 {
		t.Errorf("expected green image pixel, got g=%d", g>>8)
	}
}

func TestRenderFrame_Text(t *testing.T) {
	f := NewFrame(400, 100)
	f.SetBackground(SolidPaint(ColorWhite, 1))
	txt := NewText("WWWW")
	txt.SetFontSize(48).SetSize(400, 60)
	txt.SetFills(SolidPaint(ColorBlack, 1))
	f.AppendChild(txt)

	img, err := RenderFrame(f, &RenderOptions{FontCache: NewEmbeddedFontCache()})
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	dark := 0
	for y := 0; y < 60; y++ {
		for x := 0; x < 200; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r>>8 < 128 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("expected glyph pixels to be drawn")
	}
}

func TestRenderFrame_Errors(t *testing.T) {
	if _, err := RenderFrame(nil, nil); err == nil {
		t.Error("expected error for nil frame")
	}
	if _, err := RenderFrame(NewFrame(0, 100), nil); err == nil {
		t.Error("expected error for zero-width frame")
	}
	if _, err := NewDeck().FrameToImage(3, nil); err == nil {
		t.Error("expected error for out-of-range frame index")
	}
}

func TestSaveFramesAsImages(t *testing.T) {
	d := NewDeck()
	d.CreateFrame()
	d.CreateFrame()
	dir := t.TempDir()
	opts := &RenderOptions{Width: 320, Format: ImageFormatJPEG, JPEGQuality: 80, FontCache: NewEmbeddedFontCache()}
	if err := d.SaveFramesAsImages(filepath.Join(dir, "slide_%02d.jpg"), opts); err != nil {
		t.Fatalf("SaveFramesAsImages: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "slide_02.jpg"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode jpeg: %v", err)
	}
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 180 {
		t.Errorf("unexpected size %v", img.Bounds())
	}
}

func TestLinearEndpoints(t *testing.T) {
	near := func(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
	x0, y0, x1, y1 := linearEndpoints(90, 0, 0, 100, 50)
	if !near(x0, 50) || !near(x1, 50) {
		t.Errorf("vertical gradient should keep x centered, got %v %v", x0, x1)
	}
	if !near(y0, 0) || !near(y1, 50) {
		t.Errorf("vertical gradient should span the height, got %v %v", y0, y1)
	}
}

func TestFontCache_EmbeddedFallback(t *testing.T) {
	fc := NewEmbeddedFontCache()
	if !fc.HasFamily("go") {
		t.Fatal("embedded Go font should be registered")
	}
	face := fc.Face(FontName{Family: "nonexistent-font-xyz-12345"}, 24)
	if face == nil {
		t.Fatal("Face must never return nil")
	}
	if w := font.MeasureString(face, "Hello"); w <= 0 {
		t.Error("expected positive width from fallback face")
	}
	regular := fc.MeasureString(FontName{Family: "Go"}, 24, "Hello World")
	bold := fc.MeasureString(FontName{Family: "Go", Style: "Bold"}, 24, "Hello World")
	if regular <= 0 || bold <= regular {
		t.Errorf("expected bold wider than regular: %v vs %v", bold, regular)
	}
	if double := fc.MeasureString(FontName{Family: "Go"}, 48, "Hello World"); double < regular*1.9 {
		t.Errorf("measure should scale with size: %v vs %v", double, regular)
	}
}

func TestFontCache_LoadFontData(t *testing.T) {
	fc := NewEmbeddedFontCache()
	if err := fc.LoadFontData("test", []byte("not a font")); err == nil {
		t.Error("expected error for invalid font data")
	}
	if err := fc.LoadFontData("Custom Sans", goregular.TTF); err != nil {
		t.Fatalf("LoadFontData: %v", err)
	}
	if !fc.HasFamily("custom sans") {
		t.Error("loaded family should be found case-insensitively")
	}
}

func TestFetchGoogleFamily_UsesCache(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Display_Sans-700.ttf"), goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	fc := NewEmbeddedFontCache()
	// A cache hit never touches the network, so no client is needed.
	if err := fc.FetchGoogleFamily(context.Background(), nil, "Display Sans", "700", dir); err != nil {
		t.Fatalf("FetchGoogleFamily: %v", err)
	}
	if !fc.HasFamily("display sans bold") {
		t.Error("weight 700 should register the bold variant")
	}
}

func TestIsWOFF2Data(t *testing.T) {
	if !isWOFF2Data("https://fonts.gstatic.com/s/x.woff2", nil) {
		t.Error("woff2 extension should be detected")
	}
	if !isWOFF2Data("https://example.com/font", []byte("wOF2rest")) {
		t.Error("woff2 magic should be detected")
	}
	if isWOFF2Data("https://example.com/font.ttf", goregular.TTF) {
		t.Error("ttf should not be detected as woff2")
	}
}
