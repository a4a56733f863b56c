package grid

import (
	"image"
	"image/color"
)

// Probe is one pixel read taken while inspecting a sheet.
type Probe struct {
	X, Y  int
	Color color.NRGBA
}

// Sample reads pixels on a step x step lattice starting at (0, 0),
// limited to the top-left extent x extent region of img.
func Sample(img *image.NRGBA, step, extent int) []Probe {
	if step <= 0 {
		return nil
	}
	b := img.Bounds()
	maxX := min(b.Dx(), extent)
	maxY := min(b.Dy(), extent)

	var probes []Probe
	for y := 0; y < maxY; y += step {
		for x := 0; x < maxX; x += step {
			probes = append(probes, Probe{
				X:     x,
				Y:     y,
				Color: img.NRGBAAt(b.Min.X+x, b.Min.Y+y),
			})
		}
	}
	return probes
}
