package godeck

import "math"

// Unit conversion helpers.
//
// Frames are laid out in pixels. The PPTX writer maps pixels onto EMU so that a
// 1920x1080 frame fills the 13.333in x 7.5in widescreen slide exactly
// (1 px = 6350 EMU, 144 px per inch, 2 px per point).

const (
	emuPerInch  = 914400
	emuPerPoint = 12700
	// PixelEMU is the number of EMU per canvas pixel.
	PixelEMU = 6350
	// maxEMU is the maximum safe EMU value to prevent overflow.
	maxEMU = math.MaxInt64 / 2
)

// PixelToEMU converts canvas pixels to EMU. Clamps to safe range.
func PixelToEMU(px float64) int64 {
	return clampEMU(math.Round(px * PixelEMU))
}

// EMUToPixel converts EMU to canvas pixels.
func EMUToPixel(emu int64) float64 {
	return float64(emu) / PixelEMU
}

// PixelToPoint converts canvas pixels to typographic points.
func PixelToPoint(px float64) float64 {
	return px * PixelEMU / emuPerPoint
}

// PointToPixel converts typographic points to canvas pixels.
func PointToPixel(pt float64) float64 {
	return pt * emuPerPoint / PixelEMU
}

// Inch converts inches to canvas pixels.
func Inch(n float64) float64 {
	return n * emuPerInch / PixelEMU
}

// clampEMU converts a float64 to int64, clamping to prevent overflow.
func clampEMU(v float64) int64 {
	if v > float64(maxEMU) {
		return maxEMU
	}
	if v < -float64(maxEMU) {
		return -maxEMU
	}
	return int64(v)
}
