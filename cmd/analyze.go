package cmd

import (
	"fmt"
	"strings"

	"github.com/AnyUserName/hextile-cli/internal/grid"
	"github.com/AnyUserName/hextile-cli/internal/pipeline"
	"github.com/AnyUserName/hextile-cli/internal/terrain"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <sheet>",
	Short: "Sample a sheet and report the detected hex grid",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().Int("step", 32, "pixel sampling step")
	analyzeCmd.Flags().Int("extent", 128, "sample only the top-left extent x extent region")
	analyzeCmd.Flags().Int("show", 15, "number of hex centers to list")
	addProfileFlags(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	prof, err := resolveProfile(cmd)
	if err != nil {
		return err
	}
	step, _ := cmd.Flags().GetInt("step")
	extent, _ := cmd.Flags().GetInt("extent")
	show, _ := cmd.Flags().GetInt("show")

	img, err := pipeline.LoadSheet(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	b := img.Bounds()
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintf(out, "Image: %s\n", path)
	fmt.Fprintf(out, "Dimensions: %dx%d\n", b.Dx(), b.Dy())

	fmt.Fprintln(out, "\nSampling pixel colors at different positions:")
	for _, p := range grid.Sample(img, step, extent) {
		c := p.Color
		fmt.Fprintf(out, "  Position (%3d, %3d): RGBA(%d, %d, %d, %d)\n", p.X, p.Y, c.R, c.G, c.B, c.A)
	}

	res, ok := grid.Search(img, prof.Grid())
	if !ok {
		fmt.Fprintf(out, "\nNo opaque hex centers found (%d spacings tried)\n", res.Evaluated)
		return nil
	}

	fmt.Fprintf(out, "\nOptimal spacing found: h=%d, v=%d\n", res.Candidate.H, res.Candidate.V)
	fmt.Fprintf(out, "Detected %d hexes\n", len(res.Centers))

	n := min(show, len(res.Centers))
	fmt.Fprintf(out, "\nFirst %d hex centers:\n", n)
	for i, c := range res.Centers[:n] {
		px := img.NRGBAAt(c.X, c.Y)
		fmt.Fprintf(out, "  Hex %d: center at (%3d, %3d), grid (row=%d, col=%d), color=RGBA(%d, %d, %d, %d) -> %s\n",
			i, c.X, c.Y, c.Row, c.Col, px.R, px.G, px.B, px.A, terrain.Classify(px))
	}
	return nil
}
