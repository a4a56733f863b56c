package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/AnyUserName/hextile-cli/internal/pipeline"
	"github.com/AnyUserName/hextile-cli/internal/terrain"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [input=output_dir ...]",
	Short: "Extract terrain tiles from hex sprite sheets",
	Long: `Clears old *.png tiles from every output directory, then for each sheet:
finds the hex grid, classifies each hex by its center pixel, crops and
resizes it, and writes <label>.png, <label>_1.png, ... plus
hextile.manifest.json.

Sources come from arguments, --source flags, the "sources" list in the
config file, or the built-in fantasy sheet paths, in that order.
Missing sheets are reported and skipped.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringArrayP("source", "s", nil, "sheet and output dir as input=output_dir (repeatable)")
	addProfileFlags(extractCmd)
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	start := time.Now()

	prof, err := resolveProfile(cmd)
	if err != nil {
		return err
	}
	sources, err := resolveSources(cmd, args)
	if err != nil {
		return err
	}

	logVerbose("profile: %s (h=%d-%d, v=%d-%d, crop=%dx%d, size=%d, filter=%s)",
		prof.Name, prof.HMin, prof.HMax, prof.VMin, prof.VMax,
		prof.CropW, prof.CropH, prof.OutputSize, prof.Filter)
	for _, s := range sources {
		logVerbose("source: %s -> %s", s.Input, s.Output)
	}

	out := cmd.OutOrStdout()
	rule := strings.Repeat("=", 70)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "FANTASY HEX TILE EXTRACTOR WITH COLOR DETECTION")
	fmt.Fprintln(out, rule)

	p := pipeline.New(pipeline.Config{
		Sources:  sources,
		Profile:  prof,
		Verbose:  verbose,
		Progress: out,
		Log:      cmd.ErrOrStderr(),
	})
	report, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	printExtractReport(out, report, prof.OutputSize, time.Since(start))
	return nil
}

func printExtractReport(w io.Writer, r *pipeline.Report, size int, elapsed time.Duration) {
	rule := strings.Repeat("=", 70)
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	for _, s := range r.Sheets {
		switch {
		case s.Skipped:
			fmt.Fprintf(w, "  %s: skipped (%v)\n", s.Source.Input, s.Err)
		case !s.Found:
			fmt.Fprintf(w, "  %s: no hexes found\n", s.Source.Input)
		default:
			fmt.Fprintf(w, "  %s: %d tiles, grid h=%d v=%d -> %s\n",
				s.Source.Input, len(s.Tiles), s.Grid.H, s.Grid.V, s.Source.Output)
			fmt.Fprintf(w, "    terrain: %s\n", formatCounts(s))
		}
	}
	fmt.Fprintf(w, "All tiles extracted and resized to %dx%d! (%d tiles, %s)\n",
		size, size, r.Extracted(), elapsed.Round(time.Millisecond))
	fmt.Fprintln(w, rule)
}

func formatCounts(s pipeline.SheetReport) string {
	labels := make([]string, 0, len(s.LabelCounts))
	for l := range s.LabelCounts {
		labels = append(labels, string(l))
	}
	sort.Strings(labels)
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = fmt.Sprintf("%s=%d", l, s.LabelCounts[terrain.Label(l)])
	}
	return strings.Join(parts, ", ")
}
