//go:build ignore

// gen_fixtures creates synthetic sprite sheets for the E2E smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

// One color per terrain label, cycled across hexes.
var palette = []color.NRGBA{
	{R: 105, G: 193, B: 39, A: 255},  // grass
	{R: 39, G: 130, B: 25, A: 255},   // forest
	{R: 24, G: 174, B: 228, A: 255},  // water
	{R: 246, G: 157, B: 2, A: 255},   // sand
	{R: 135, G: 130, B: 128, A: 255}, // mountains
	{R: 120, G: 60, B: 30, A: 255},   // hills
	{R: 170, G: 160, B: 60, A: 255},  // dry_grassland
	{R: 200, G: 80, B: 200, A: 255},  // rocky_peak
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(dir, 0o755)

	// Hex sheet at the fixed fantasy spacing (340x520, 10x10 hexes).
	writeImage(filepath.Join(dir, "hex_sheet.png"), honeycomb(340, 520, 31, 51))

	// Tileset laid out on the 32px split grid.
	writeImage(filepath.Join(dir, "tileset.png"), squares(256, 288, 32))

	// Blank sheet: extraction finds no hexes.
	writeImage(filepath.Join(dir, "blank.png"), image.NewNRGBA(image.Rect(0, 0, 64, 64)))

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 3 fixtures in %s\n", dir)
}

// honeycomb paints a filled ellipse around every hex center of the
// staggered grid with origin (16, 24).
func honeycomb(w, h, hs, vs int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	i := 0
	for row := 0; row < 10; row++ {
		cy := 24 + row*vs
		for col := 0; col < 10; col++ {
			cx := 16 + col*hs
			if row%2 == 1 {
				cx += hs / 2
			}
			fillEllipse(img, cx, cy, 13, 22, palette[i%len(palette)])
			i++
		}
	}
	return img
}

func fillEllipse(img *image.NRGBA, cx, cy, rx, ry int, c color.NRGBA) {
	for y := cy - ry; y <= cy+ry; y++ {
		for x := cx - rx; x <= cx+rx; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx*ry*ry+dy*dy*rx*rx <= rx*rx*ry*ry {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

func squares(w, h, size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, palette[(y/size*(w/size)+x/size)%len(palette)])
		}
	}
	return img
}

func writeImage(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}
