package cmd

import (
	"fmt"

	"github.com/AnyUserName/hextile-cli/internal/pipeline"
	"github.com/AnyUserName/hextile-cli/internal/split"
	"github.com/spf13/cobra"
)

var splitOutDir string

var splitCmd = &cobra.Command{
	Use:   "split <sheet>",
	Short: "Cut a sheet on the fixed 32px grid using the built-in terrain table",
	Long: `Cuts the sheet into 32x32 squares, 8 per row, and keeps the cells
listed in the fantasy sheet's terrain table. Unlike extract, labels come
from the table rather than pixel colors, and tiles are not resized.`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().StringVarP(&splitOutDir, "out", "o", "./hextile_split", "output directory")
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	img, err := pipeline.LoadSheet(args[0])
	if err != nil {
		return err
	}

	pieces := split.FantasyV3.Cut(img)
	if err := split.Write(splitOutDir, pieces); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range pieces {
		logVerbose("saved %s (row %d, col %d)", p.Name, p.Cell.Row, p.Cell.Col)
	}
	fmt.Fprintf(out, "  Extracted %d tiles to %s\n", len(pieces), splitOutDir)
	return nil
}
