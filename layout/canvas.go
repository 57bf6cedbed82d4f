package layout

// Canvas is the fixed drawing area every layout positions against.
type Canvas struct {
	Width   float64 `json:"width" yaml:"width" toml:"width"`
	Height  float64 `json:"height" yaml:"height" toml:"height"`
	Padding float64 `json:"padding" yaml:"padding" toml:"padding"`
}

// DefaultCanvas is 1920x1080 with 100px padding.
func DefaultCanvas() Canvas {
	return Canvas{Width: 1920, Height: 1080, Padding: 100}
}

func (c Canvas) ContentWidth() float64  { return c.Width - 2*c.Padding }
func (c Canvas) ContentHeight() float64 { return c.Height - 2*c.Padding }

// Right is the x coordinate of the right padding edge.
func (c Canvas) Right() float64 { return c.Width - c.Padding }

// Bottom is the y coordinate of the bottom padding edge.
func (c Canvas) Bottom() float64 { return c.Height - c.Padding }

func (c Canvas) CenterX() float64 { return c.Width / 2 }
func (c Canvas) CenterY() float64 { return c.Height / 2 }

// Rect is an axis-aligned region on the canvas.
type Rect struct {
	X, Y, W, H float64
}
