package cmd

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/AnyUserName/hextile-cli/internal/hasher"
	"github.com/AnyUserName/hextile-cli/internal/manifest"
	"github.com/AnyUserName/hextile-cli/internal/terrain"
	"github.com/spf13/cobra"

	_ "image/png"
)

var validateCmd = &cobra.Command{
	Use:   "validate <out_dir_or_manifest>",
	Short: "Validate a tile manifest and check the tile files on disk",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path, err := manifestPath(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	errs := validateManifest(m, filepath.Dir(path))
	if len(errs) == 0 {
		fmt.Fprintln(out, "  ✓ Manifest is valid")
		fmt.Fprintf(out, "  ✓ %d tiles, all files present and matching\n", m.Stats.TotalTiles)
		return nil
	}

	fmt.Fprintf(out, "  ✗ Manifest has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(out, "    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}
	if len(m.Tiles) > 0 && (m.Grid.H <= 0 || m.Grid.V <= 0) {
		errs = append(errs, fmt.Sprintf("invalid grid spacing h=%d v=%d", m.Grid.H, m.Grid.V))
	}

	seenFiles := map[string]bool{}
	nextVariant := map[string]int{}
	for i, t := range m.Tiles {
		if !terrain.Label(t.Label).Valid() {
			errs = append(errs, fmt.Sprintf("tile[%d]: unknown label %q", i, t.Label))
		}

		// Variants are dense per label, in emission order.
		if t.Variant != nextVariant[t.Label] {
			errs = append(errs, fmt.Sprintf("tile[%d]: %s variant %d, want %d",
				i, t.Label, t.Variant, nextVariant[t.Label]))
		}
		nextVariant[t.Label] = t.Variant + 1

		if want := terrain.TileName(terrain.Label(t.Label), t.Variant); t.File != want {
			errs = append(errs, fmt.Sprintf("tile[%d]: file %q, want %q", i, t.File, want))
		}
		if seenFiles[t.File] {
			errs = append(errs, fmt.Sprintf("tile[%d]: duplicate file %q", i, t.File))
		}
		seenFiles[t.File] = true

		errs = append(errs, checkTileFile(i, t, baseDir)...)
	}

	counts := map[string]int{}
	for _, t := range m.Tiles {
		counts[t.Label]++
	}
	if m.Stats.TotalTiles != len(m.Tiles) {
		errs = append(errs, fmt.Sprintf("stats.total_tiles mismatch: %d != %d", m.Stats.TotalTiles, len(m.Tiles)))
	}
	for l, n := range counts {
		if m.Stats.LabelCounts[l] != n {
			errs = append(errs, fmt.Sprintf("stats.label_counts[%s] mismatch: %d != %d", l, m.Stats.LabelCounts[l], n))
		}
	}

	return errs
}

func checkTileFile(i int, t manifest.Tile, baseDir string) []string {
	fullPath := filepath.Join(baseDir, t.File)
	info, err := os.Stat(fullPath)
	if err != nil {
		return []string{fmt.Sprintf("tile[%d]: file not found: %s", i, t.File)}
	}

	var errs []string
	if info.Size() != t.Size {
		errs = append(errs, fmt.Sprintf("tile[%d]: size mismatch: manifest=%d, disk=%d", i, t.Size, info.Size()))
	}
	sum, err := hasher.FileHash(fullPath)
	if err != nil {
		return append(errs, fmt.Sprintf("tile[%d]: %v", i, err))
	}
	if sum != t.Hash {
		errs = append(errs, fmt.Sprintf("tile[%d]: hash mismatch: manifest=%s, disk=%s", i, t.Hash, sum))
	}

	f, err := os.Open(fullPath)
	if err != nil {
		return append(errs, fmt.Sprintf("tile[%d]: %v", i, err))
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return append(errs, fmt.Sprintf("tile[%d]: decode %s: %v", i, t.File, err))
	}
	if cfg.Width != t.Width || cfg.Height != t.Height {
		errs = append(errs, fmt.Sprintf("tile[%d]: dimensions %dx%d, manifest says %dx%d",
			i, cfg.Width, cfg.Height, t.Width, t.Height))
	}
	return errs
}
