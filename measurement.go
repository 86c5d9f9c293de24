package extractor

import "math"

// EMU (English Metric Units) conversion helpers.
// 1 inch = 914400 EMU, 1 point = 12700 EMU, 1 cm = 360000 EMU,
// 1 CSS pixel at 96 DPI = 9525 EMU.

const (
	emuPerInch  = 914400
	emuPerPoint = 12700
	emuPerPixel = 9525
	// maxEMU is the maximum safe EMU value to prevent overflow.
	maxEMU = math.MaxInt64 / 2
)

// Inch converts inches to EMU. Clamps to safe range.
func Inch(n float64) float64 {
	return clampEMU(n * emuPerInch)
}

// EMUToPoint converts EMU to points.
func EMUToPoint(emu float64) float64 {
	return emu / emuPerPoint
}

// EMUToPixel converts EMU to CSS pixels at 96 DPI.
func EMUToPixel(emu float64) float64 {
	return emu / emuPerPixel
}

// clampEMU clamps an EMU value to prevent overflow.
func clampEMU(v float64) float64 {
	if v > float64(maxEMU) {
		return maxEMU
	}
	if v < -float64(maxEMU) {
		return -maxEMU
	}
	return v
}
