package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// New creates an empty manifest with defaults.
func New(profileName, source string) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:     profileName,
		Source:      source,
		Tiles:       []Tile{},
	}
}

// ComputeStats recalculates aggregate statistics from tiles.
func (m *Manifest) ComputeStats() {
	s := Stats{LabelCounts: make(map[string]int)}
	s.TotalTiles = len(m.Tiles)
	for _, t := range m.Tiles {
		s.TotalBytes += t.Size
		s.LabelCounts[t.Label]++
	}
	m.Stats = s
}

// WriteJSON serializes the manifest to a JSON file. Tiles keep their
// emission order; encoding/json sorts the label_counts keys.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a manifest from path.
func ReadJSON(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
