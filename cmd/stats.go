package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/hextile-cli/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for an extracted tile directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	path, err := manifestPath(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}
	printStats(cmd, m)
	return nil
}

// manifestPath accepts a manifest file or the directory holding one.
func manifestPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, manifest.FileName)
	}
	return path, nil
}

func printStats(cmd *cobra.Command, m *manifest.Manifest) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Manifest version: %d\n", m.Version)
	fmt.Fprintf(out, "  Generated:        %s\n", m.GeneratedAt)
	fmt.Fprintf(out, "  Profile:          %s\n", m.Profile)
	fmt.Fprintf(out, "  Source:           %s (%dx%d)\n", m.Source, m.SourceSize[0], m.SourceSize[1])
	fmt.Fprintf(out, "  Grid spacing:     h=%d v=%d\n", m.Grid.H, m.Grid.V)
	fmt.Fprintln(out)

	s := m.Stats
	fmt.Fprintf(out, "  Total tiles:      %d\n", s.TotalTiles)
	fmt.Fprintf(out, "  Total size:       %s\n", formatBytes(s.TotalBytes))
	fmt.Fprintln(out)

	// Per-label breakdown, most frequent first.
	type labelCount struct {
		label string
		n     int
	}
	var counts []labelCount
	for l, n := range s.LabelCounts {
		counts = append(counts, labelCount{l, n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].n != counts[j].n {
			return counts[i].n > counts[j].n
		}
		return counts[i].label < counts[j].label
	})
	fmt.Fprintln(out, "  Terrain breakdown:")
	for _, c := range counts {
		fmt.Fprintf(out, "    %-14s %4d tiles\n", c.label, c.n)
	}

	// Per-row breakdown.
	rows := map[int]int{}
	for _, t := range m.Tiles {
		rows[t.Row]++
	}
	var rowIdx []int
	for r := range rows {
		rowIdx = append(rowIdx, r)
	}
	sort.Ints(rowIdx)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Row breakdown:")
	for _, r := range rowIdx {
		fmt.Fprintf(out, "    row %2d  %4d tiles\n", r, rows[r])
	}
	fmt.Fprintln(out)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
