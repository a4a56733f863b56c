package pipeline

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/AnyUserName/hextile-cli/internal/encoder"
	"github.com/AnyUserName/hextile-cli/internal/grid"
	"github.com/AnyUserName/hextile-cli/internal/hasher"
	"github.com/AnyUserName/hextile-cli/internal/manifest"
	"github.com/AnyUserName/hextile-cli/internal/profile"
	"github.com/AnyUserName/hextile-cli/internal/terrain"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LoadSheet decodes the image at path and normalizes it to an NRGBA
// buffer with its origin at (0, 0).
func LoadSheet(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return imaging.Clone(img), nil
}

// CropWindow returns the w x h rectangle centered on (x, y), clamped to
// bounds.
func CropWindow(bounds image.Rectangle, x, y, w, h int) image.Rectangle {
	r := image.Rect(x-w/2, y-h/2, x+w/2, y+h/2)
	return r.Intersect(bounds)
}

// sheetResult holds the outcome of extracting one sheet.
type sheetResult struct {
	grid     grid.Result
	found    bool
	manifest *manifest.Manifest
	counts   map[terrain.Label]int
}

// extractor emits the tiles of one sheet into one directory.
type extractor struct {
	prof   profile.Profile
	filter imaging.ResampleFilter
	enc    encoder.Encoder
	outDir string
	log    *logger
}

// extractSheet runs grid search over img and writes one tile per kept
// center. The first write error aborts; tiles already written stay.
func (e *extractor) extractSheet(img *image.NRGBA, src string) (sheetResult, error) {
	res := sheetResult{manifest: manifest.New(e.prof.Name, src)}
	b := img.Bounds()
	res.manifest.SourceSize = [2]int{b.Dx(), b.Dy()}

	res.grid, res.found = grid.Search(img, e.prof.Grid())
	if !res.found {
		e.log.verbosef("no opaque hex centers in %s (%d candidates tried)", src, res.grid.Evaluated)
		res.counts = map[terrain.Label]int{}
		return res, nil
	}
	res.manifest.Grid = res.grid.Candidate
	e.log.verbosef("grid h=%d v=%d: %d centers", res.grid.Candidate.H, res.grid.Candidate.V, len(res.grid.Centers))

	if err := os.MkdirAll(e.outDir, 0o755); err != nil {
		return res, fmt.Errorf("create output dir: %w", err)
	}

	counter := terrain.NewVariantCounter()
	for _, c := range res.grid.Centers {
		tile, ok, err := e.emit(img, c, counter)
		if err != nil {
			return res, err
		}
		if !ok {
			continue
		}
		res.manifest.Tiles = append(res.manifest.Tiles, tile)
		e.log.progressf("  [%2d] (%d, %d): %-25s RGB(%3d,%3d,%3d)",
			len(res.manifest.Tiles), c.Row, c.Col, tile.File, tile.Color[0], tile.Color[1], tile.Color[2])
	}
	res.counts = counter.Counts()
	return res, nil
}

// emit classifies, crops, resizes and writes the tile for one center. ok
// is false when the center pixel has no label.
func (e *extractor) emit(img *image.NRGBA, c grid.Center, counter *terrain.VariantCounter) (manifest.Tile, bool, error) {
	b := img.Bounds()
	px := img.NRGBAAt(b.Min.X+c.X, b.Min.Y+c.Y)
	label := terrain.Classify(px)
	if label == terrain.None {
		return manifest.Tile{}, false, nil
	}

	rect := CropWindow(b, b.Min.X+c.X, b.Min.Y+c.Y, e.prof.CropW, e.prof.CropH)
	cropped := imaging.Crop(img, rect)
	resized := imaging.Resize(cropped, e.prof.OutputSize, e.prof.OutputSize, e.filter)

	data, err := e.enc.Encode(resized)
	if err != nil {
		return manifest.Tile{}, false, fmt.Errorf("encode tile (%d, %d): %w", c.Row, c.Col, err)
	}

	variant := counter.Next(label)
	name := terrain.TileName(label, variant)
	if err := os.WriteFile(filepath.Join(e.outDir, name), data, 0o644); err != nil {
		return manifest.Tile{}, false, fmt.Errorf("write %s: %w", name, err)
	}

	return manifest.Tile{
		File:    name,
		Label:   string(label),
		Variant: variant,
		Row:     c.Row,
		Col:     c.Col,
		X:       c.X,
		Y:       c.Y,
		Color:   [4]uint8{px.R, px.G, px.B, px.A},
		Width:   resized.Bounds().Dx(),
		Height:  resized.Bounds().Dy(),
		Size:    int64(len(data)),
		Hash:    hasher.ContentHash(data),
	}, true, nil
}
