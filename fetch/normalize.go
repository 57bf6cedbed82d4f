package fetch

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoding
	_ "image/jpeg"
	"image/png"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	isSvg "github.com/h2non/go-is-svg"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"  // register BMP decoding
	_ "golang.org/x/image/webp" // register WebP decoding

	"github.com/VantageDataChat/GoDeck/layout"
)

const (
	defaultSVGSize = 512
	maxSVGSize     = 4096
)

// Normalize sniffs data and returns it as an embeddable image. PNG and JPEG
// pass through unchanged; SVG is rasterized and GIF, WebP and BMP are
// re-encoded, all to PNG.
func Normalize(data []byte) (layout.Image, error) {
	if isSvg.Is(data) {
		out, err := rasterizeSVG(data)
		if err != nil {
			return layout.Image{}, fmt.Errorf("rasterize svg: %w", err)
		}
		return withSize(out, "image/png")
	}
	kind, _ := filetype.Match(data)
	switch kind {
	case matchers.TypePng:
		return withSize(data, "image/png")
	case matchers.TypeJpeg:
		return withSize(data, "image/jpeg")
	case matchers.TypeGif, matchers.TypeWebp, matchers.TypeBmp:
		out, err := reencodePNG(data)
		if err != nil {
			return layout.Image{}, fmt.Errorf("convert %s: %w", kind.Extension, err)
		}
		return withSize(out, "image/png")
	}
	if kind == filetype.Unknown {
		return layout.Image{}, ErrUnsupported
	}
	return layout.Image{}, fmt.Errorf("%w: %s", ErrUnsupported, kind.MIME.Value)
}

func withSize(data []byte, mime string) (layout.Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return layout.Image{}, fmt.Errorf("decode %s header: %w", mime, err)
	}
	return layout.Image{Data: data, MIME: mime, Width: cfg.Width, Height: cfg.Height}, nil
}

func reencodePNG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rasterizeSVG(data []byte) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	// Prefer the explicit viewbox, else fall back to a reasonable default.
	w := clampSVG(icon.ViewBox.W)
	h := clampSVG(icon.ViewBox.H)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.SetTarget(0, 0, float64(w), float64(h))
	icon.Draw(raster, 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clampSVG(v float64) int {
	n := int(v)
	if n <= 0 {
		return defaultSVGSize
	}
	return min(n, maxSVGSize)
}
