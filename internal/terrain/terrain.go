package terrain

import (
	"image"
	"image/color"
)

// Label is the terrain tag assigned to an extracted tile.
type Label string

// Classifier labels. The empty Label means "none": the pixel is too
// transparent to classify and the hex is skipped.
const (
	None         Label = ""
	Grass        Label = "grass"
	Forest       Label = "forest"
	Water        Label = "water"
	IceWater     Label = "ice_water"
	ColdWater    Label = "cold_water"
	DeepSea      Label = "deep_sea"
	Sand         Label = "sand"
	Hills        Label = "hills"
	Stone        Label = "stone"
	SnowPeak     Label = "snow_peak"
	Mountains    Label = "mountains"
	DryGrassland Label = "dry_grassland"
	RockyPeak    Label = "rocky_peak"
)

// Labels lists every label Classify can return, in rule order.
var Labels = []Label{
	Grass, Forest,
	IceWater, Water, ColdWater, DeepSea,
	Sand, Hills,
	SnowPeak, Mountains, Stone,
	DryGrassland, RockyPeak,
}

// AlphaThreshold is the highest alpha still treated as transparent.
const AlphaThreshold = 128

// Valid reports whether l is one of the classifier labels.
func (l Label) Valid() bool {
	for _, known := range Labels {
		if l == known {
			return true
		}
	}
	return false
}

func (l Label) String() string {
	if l == None {
		return "none"
	}
	return string(l)
}

// Classify maps a non-premultiplied pixel to a terrain label. It returns
// None only for pixels with alpha <= AlphaThreshold; every opaque color
// lands on some label, with RockyPeak as the catch-all.
//
// Rules are evaluated in order and the first match wins. They overlap in
// color space, so reordering them changes results.
func Classify(c color.NRGBA) Label {
	if c.A <= AlphaThreshold {
		return None
	}
	r, g, b := int(c.R), int(c.G), int(c.B)

	// Bright green.
	if g > 150 && float64(g) > float64(r)*1.3 && float64(g) > float64(b)*1.3 {
		return Grass
	}

	// Medium to dark green.
	if g > 20 && g < 160 && g >= r && g >= b && b < 100 {
		return Forest
	}

	if b > r && b > g {
		switch {
		case b > 200 && r > 180:
			return IceWater
		case b > 150:
			return Water
		case b > 100:
			return ColdWater
		default:
			return DeepSea
		}
	}

	// Orange/yellow.
	if r > 200 && g > 100 && g < 200 && b < 50 {
		return Sand
	}

	// Brown.
	if r > 50 && r < 150 && g < 80 && b < 50 {
		return Hills
	}

	if abs(r-g) < 30 && abs(g-b) < 30 {
		switch {
		case r > 180:
			return SnowPeak
		case r > 100:
			return Mountains
		default:
			return Stone
		}
	}

	// Yellowish green.
	if r > 100 && g > 100 && b < 80 && abs(r-g) < 50 {
		return DryGrassland
	}

	return RockyPeak
}

// ClassifyAt classifies the pixel of img at (x, y). Coordinates outside
// the image bounds yield None.
func ClassifyAt(img *image.NRGBA, x, y int) Label {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return None
	}
	return Classify(img.NRGBAAt(x, y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
