package pipeline

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/AnyUserName/hextile-cli/internal/encoder"
	"github.com/AnyUserName/hextile-cli/internal/grid"
	"github.com/AnyUserName/hextile-cli/internal/manifest"
	"github.com/AnyUserName/hextile-cli/internal/profile"
	"github.com/AnyUserName/hextile-cli/internal/terrain"
	"github.com/disintegration/imaging"
)

// Config holds all parameters for an extraction run.
type Config struct {
	Sources []Source
	Profile profile.Profile
	Verbose bool

	// Progress receives one line per emitted tile. Defaults to os.Stdout.
	Progress io.Writer
	// Log receives warnings and verbose diagnostics. Defaults to os.Stderr.
	Log io.Writer
}

// SheetReport summarizes one source.
type SheetReport struct {
	Source       Source
	Skipped      bool  // input missing or undecodable
	Err          error // why it was skipped
	Found        bool  // grid search kept at least one center
	Grid         grid.Candidate
	Centers      int
	Tiles        []manifest.Tile
	LabelCounts  map[terrain.Label]int
	ManifestPath string
}

// Report is the result of a run.
type Report struct {
	Sheets []SheetReport
}

// Extracted returns the number of tiles written across all sheets.
func (r *Report) Extracted() int {
	n := 0
	for _, s := range r.Sheets {
		n += len(s.Tiles)
	}
	return n
}

// Pipeline orchestrates tile extraction. Sheets are processed one after
// another in Sources order.
type Pipeline struct {
	cfg Config
	enc encoder.Encoder
	log *logger
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Progress == nil {
		cfg.Progress = os.Stdout
	}
	if cfg.Log == nil {
		cfg.Log = os.Stderr
	}
	return &Pipeline{
		cfg: cfg,
		enc: encoder.NewPNG(),
		log: &logger{progress: cfg.Progress, log: cfg.Log, verbose: cfg.Verbose},
	}
}

// Run clears every output directory, then extracts each source in turn.
// Missing or undecodable sources are reported and skipped; write errors
// abort the run.
func (p *Pipeline) Run() (*Report, error) {
	if err := p.cfg.Profile.Validate(); err != nil {
		return nil, err
	}
	filter, err := p.cfg.Profile.ResampleFilter()
	if err != nil {
		return nil, err
	}
	if len(p.cfg.Sources) == 0 {
		return nil, errors.New("no sources configured")
	}

	// Step 1: Clear old tiles.
	for _, src := range p.cfg.Sources {
		n, err := ClearTiles(src.Output)
		if err != nil {
			return nil, fmt.Errorf("clear: %w", err)
		}
		if n > 0 {
			p.log.progressf("Cleared %d old tiles from %s", n, src.Output)
		}
	}

	// Step 2: Extract each sheet.
	report := &Report{}
	for _, src := range p.cfg.Sources {
		sheet, err := p.runSource(src, filter)
		report.Sheets = append(report.Sheets, sheet)
		if err != nil {
			return report, err
		}
	}
	return report, nil
}

func (p *Pipeline) runSource(src Source, filter imaging.ResampleFilter) (SheetReport, error) {
	sheet := SheetReport{Source: src}

	if err := checkSource(src); err != nil {
		p.log.warnf("skip %s: %v", src.Input, err)
		sheet.Skipped, sheet.Err = true, err
		return sheet, nil
	}

	p.log.progressf("\nExtracting hex tiles from: %s", src.Input)
	img, err := LoadSheet(src.Input)
	if err != nil {
		p.log.warnf("skip %s: %v", src.Input, err)
		sheet.Skipped, sheet.Err = true, err
		return sheet, nil
	}
	p.log.verbosef("%s: %dx%d", src.Input, img.Bounds().Dx(), img.Bounds().Dy())

	ex := &extractor{
		prof:   p.cfg.Profile,
		filter: filter,
		enc:    p.enc,
		outDir: src.Output,
		log:    p.log,
	}
	res, err := ex.extractSheet(img, src.Input)
	sheet.Found = res.found
	sheet.Grid = res.grid.Candidate
	sheet.Centers = len(res.grid.Centers)
	sheet.Tiles = res.manifest.Tiles
	sheet.LabelCounts = res.counts
	if err != nil {
		return sheet, fmt.Errorf("extract %s: %w", src.Input, err)
	}

	p.log.progressf("\nExtraction complete: %d tiles", len(sheet.Tiles))

	// Step 3: Write manifest next to the tiles.
	manifestPath := filepath.Join(src.Output, manifest.FileName)
	if !res.found {
		// The old tiles are gone; so is the manifest that listed them.
		if err := os.Remove(manifestPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return sheet, fmt.Errorf("remove stale manifest: %w", err)
		}
		return sheet, nil
	}
	sheet.ManifestPath = manifestPath
	if err := manifest.WriteJSON(res.manifest, sheet.ManifestPath); err != nil {
		return sheet, fmt.Errorf("write manifest: %w", err)
	}
	return sheet, nil
}
