package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrSourceMissing is reported for a sheet path that does not exist. The
// sheet is skipped and the run continues.
var ErrSourceMissing = errors.New("source sheet not found")

// Source pairs a sprite sheet with the directory its tiles go to.
type Source struct {
	Input  string `mapstructure:"input"`
	Output string `mapstructure:"output"`
}

// DefaultSources are the bordered and borderless fantasy sheets of the
// Godot project, relative to the project root.
var DefaultSources = []Source{
	{
		Input:  "godot_project/assets/fantasyhextiles_v3.png",
		Output: "godot_project/assets/tile_art/fantasy_bordered",
	},
	{
		Input:  "godot_project/assets/fantasyhextiles_v3_borderless.png",
		Output: "godot_project/assets/tile_art/fantasy_borderless",
	},
}

// ParseSource parses "input=output".
func ParseSource(s string) (Source, error) {
	in, out, ok := strings.Cut(s, "=")
	in, out = strings.TrimSpace(in), strings.TrimSpace(out)
	if !ok || in == "" || out == "" {
		return Source{}, fmt.Errorf("source %q: want <input>=<output_dir>", s)
	}
	return Source{Input: in, Output: out}, nil
}

// checkSource returns ErrSourceMissing (wrapped) when the input is absent
// or is a directory.
func checkSource(src Source) error {
	info, err := os.Stat(src.Input)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", src.Input, ErrSourceMissing)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", src.Input, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory: %w", src.Input, ErrSourceMissing)
	}
	return nil
}

// ClearTiles removes every *.png file directly inside dir and returns how
// many were removed. A missing dir is not an error. Subdirectories and
// non-PNG files are left alone.
func ClearTiles(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", dir, err)
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".png") {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return removed, fmt.Errorf("remove %s: %w", e.Name(), err)
		}
		removed++
	}
	return removed, nil
}
