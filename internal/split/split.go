// Package split cuts a sheet on a fixed square grid and names each cell
// from a hand-made terrain table. It is the fallback for sheets whose
// hexes are too irregular for grid search.
package split

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/AnyUserName/hextile-cli/internal/encoder"
	"github.com/AnyUserName/hextile-cli/internal/terrain"
	"github.com/disintegration/imaging"
)

// Cell is a (row, col) position on the square grid.
type Cell struct {
	Row, Col int
}

// Layout is a square grid plus the label of every cell worth keeping.
type Layout struct {
	TileSize int
	PerRow   int
	Table    map[Cell]terrain.Label
}

// Jungle appears in the hand-made table but is never produced by the
// color classifier.
const Jungle terrain.Label = "jungle"

// FantasyV3 is the 32px layout of the fantasy hex sheet, 8 tiles per row.
var FantasyV3 = Layout{
	TileSize: 32,
	PerRow:   8,
	Table: map[Cell]terrain.Label{
		// Row 0: grass, forest, mountains, water.
		{0, 0}: terrain.Grass, {0, 1}: terrain.Grass, {0, 2}: terrain.Grass, {0, 3}: terrain.Grass,
		{0, 4}: terrain.Forest, {0, 5}: terrain.Forest, {0, 6}: terrain.Mountains, {0, 7}: terrain.Water,

		// Row 1: settlements.
		{1, 0}: terrain.Hills, {1, 1}: terrain.Hills, {1, 2}: terrain.Stone, {1, 3}: terrain.Sand,
		{1, 4}: terrain.Forest, {1, 5}: terrain.Grass, {1, 6}: terrain.Grass, {1, 7}: terrain.Forest,

		// Row 2: ice, snow, water.
		{2, 0}: terrain.IceWater, {2, 1}: terrain.ColdWater, {2, 2}: terrain.ColdWater, {2, 3}: terrain.SnowPeak,
		{2, 4}: terrain.SnowPeak, {2, 5}: terrain.Water, {2, 6}: terrain.Water, {2, 7}: terrain.DeepSea,

		// Row 3: desert and tropics.
		{3, 0}: terrain.Sand, {3, 1}: terrain.Sand, {3, 2}: terrain.Sand, {3, 3}: terrain.DryGrassland,
		{3, 4}: Jungle, {3, 5}: terrain.Sand, {3, 6}: terrain.Sand, {3, 7}: terrain.Sand,

		// Row 4: small objects.
		{4, 0}: terrain.Forest, {4, 1}: terrain.Forest, {4, 2}: terrain.Water, {4, 3}: terrain.Stone,
		{4, 4}: terrain.Water, {4, 5}: terrain.Water, {4, 6}: terrain.Grass, {4, 7}: terrain.Forest,

		{5, 0}: terrain.RockyPeak,
	},
}

// Piece is one cut tile.
type Piece struct {
	Cell  Cell
	Label terrain.Label
	Name  string
	Image *image.NRGBA
}

// Cut walks the grid row by row and returns a piece for every in-bounds
// cell present in the table. Names follow the same variant scheme as
// extracted tiles.
func (l Layout) Cut(img image.Image) []Piece {
	b := img.Bounds()
	if l.TileSize <= 0 {
		return nil
	}
	rows := b.Dy() / l.TileSize

	counter := terrain.NewVariantCounter()
	var pieces []Piece
	for row := 0; row < rows; row++ {
		for col := 0; col < l.PerRow; col++ {
			x := b.Min.X + col*l.TileSize
			y := b.Min.Y + row*l.TileSize
			if x+l.TileSize > b.Max.X || y+l.TileSize > b.Max.Y {
				continue
			}
			label, ok := l.Table[Cell{row, col}]
			if !ok {
				continue
			}
			rect := image.Rect(x, y, x+l.TileSize, y+l.TileSize)
			pieces = append(pieces, Piece{
				Cell:  Cell{row, col},
				Label: label,
				Name:  terrain.TileName(label, counter.Next(label)),
				Image: imaging.Crop(img, rect),
			})
		}
	}
	return pieces
}

// Write encodes every piece as PNG into dir, creating it if needed.
func Write(dir string, pieces []Piece) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	enc := encoder.NewPNG()
	for _, p := range pieces {
		data, err := enc.Encode(p.Image)
		if err != nil {
			return fmt.Errorf("encode %s: %w", p.Name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, p.Name), data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", p.Name, err)
		}
	}
	return nil
}
