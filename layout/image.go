package layout

import (
	"context"
	"errors"
	"fmt"

	godeck "github.com/VantageDataChat/GoDeck"
)

// Image is a fetched, embeddable picture.
type Image struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// ImageFetcher resolves an image URL to bytes. Implementations own retries
// and timeouts; the engine calls Fetch once per placement.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (Image, error)
}

// ImageFetcherFunc adapts a function to ImageFetcher.
type ImageFetcherFunc func(ctx context.Context, url string) (Image, error)

func (f ImageFetcherFunc) Fetch(ctx context.Context, url string) (Image, error) { return f(ctx, url) }

var (
	ErrNoFetcher  = errors.New("layout: no image fetcher configured")
	ErrEmptyImage = errors.New("layout: image has no data")
)

const imageCornerRadius = 24

func fetchImage(ctx context.Context, env *Env, url string) (Image, error) {
	if env.Images == nil {
		return Image{}, ErrNoFetcher
	}
	if url == "" {
		return Image{}, errors.New("layout: empty image url")
	}
	img, err := env.Images.Fetch(ctx, url)
	if err != nil {
		return Image{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	if len(img.Data) == 0 {
		return Image{}, ErrEmptyImage
	}
	if img.MIME == "" {
		img.MIME = "image/png"
	}
	return img, nil
}

// PlaceImageWithShadow appends exactly one node covering r: the fetched image
// with rounded corners and a drop shadow, or, when the image cannot be
// fetched, a translucent placeholder of the fallback color.
func PlaceImageWithShadow(ctx context.Context, frame *godeck.Frame, url string, r Rect, fallback string, env *Env) godeck.Node {
	img, err := fetchImage(ctx, env, url)
	if err != nil {
		env.log().Debug("image placeholder", "url", url, "error", err)
		ph := godeck.NewRect()
		ph.SetName("image-placeholder").SetPosition(r.X, r.Y).SetSize(r.W, r.H)
		ph.SetCornerRadius(imageCornerRadius)
		ApplyFill(ph, fallback, 0.3)
		return frame.AppendChild(ph)
	}
	n := godeck.NewImage()
	n.SetImageData(img.Data, img.MIME)
	n.SetName("image").SetPosition(r.X, r.Y).SetSize(r.W, r.H)
	n.SetScaleMode(godeck.ScaleFill).SetCornerRadius(imageCornerRadius)
	n.SetShadow(&godeck.DropShadow{Color: godeck.ColorBlack, Alpha: 0.3, OffsetY: 16, Radius: 40})
	return frame.AppendChild(n)
}

// PlaceBackgroundImage appends a full-bleed image. Nothing is appended when
// the image cannot be fetched.
func PlaceBackgroundImage(ctx context.Context, frame *godeck.Frame, url string, env *Env, opacity float64) godeck.Node {
	img, err := fetchImage(ctx, env, url)
	if err != nil {
		env.log().Debug("background image skipped", "url", url, "error", err)
		return nil
	}
	n := godeck.NewImage()
	n.SetImageData(img.Data, img.MIME)
	n.SetName("background-image").SetPosition(0, 0).SetSize(env.Canvas.Width, env.Canvas.Height)
	n.SetScaleMode(godeck.ScaleFill)
	n.SetOpacity(opaque(opacity))
	return frame.AppendChild(n)
}
