package manifest

import "github.com/AnyUserName/hextile-cli/internal/grid"

// Manifest records every tile emitted into one output directory.
type Manifest struct {
	Version     int            `json:"version"`
	GeneratedAt string         `json:"generated_at"`
	Profile     string         `json:"profile"`
	Source      string         `json:"source"`
	SourceSize  [2]int         `json:"source_size"` // [width, height]
	Grid        grid.Candidate `json:"grid"`
	Tiles       []Tile         `json:"tiles"`
	Stats       Stats          `json:"stats"`
}

// Tile is one emitted tile file.
type Tile struct {
	File    string   `json:"file"` // relative to the manifest directory
	Label   string   `json:"label"`
	Variant int      `json:"variant"` // 0 for the bare filename
	Row     int      `json:"row"`
	Col     int      `json:"col"`
	X       int      `json:"x"`
	Y       int      `json:"y"`
	Color   [4]uint8 `json:"color"` // center pixel RGBA
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Size    int64    `json:"size"` // bytes on disk
	Hash    string   `json:"hash"` // xxhash64, 16 hex chars
}

// Stats aggregates per-label counts.
type Stats struct {
	TotalTiles  int            `json:"total_tiles"`
	TotalBytes  int64          `json:"total_bytes"`
	LabelCounts map[string]int `json:"label_counts"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// FileName is the manifest file written into each output directory.
const FileName = "hextile.manifest.json"
