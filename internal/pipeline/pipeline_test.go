package pipeline

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/hextile-cli/internal/grid"
	"github.com/AnyUserName/hextile-cli/internal/hasher"
	"github.com/AnyUserName/hextile-cli/internal/manifest"
	"github.com/AnyUserName/hextile-cli/internal/profile"
	"github.com/AnyUserName/hextile-cli/internal/terrain"
)

var grassColor = color.NRGBA{50, 200, 60, 255}

func writeSheet(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

// paletteSheet fills the crop window of every center of a 31x51 honeycomb
// with a color cycling through several terrains.
func paletteSheet() *image.NRGBA {
	palette := []color.NRGBA{
		{105, 193, 39, 255},  // grass
		{39, 130, 25, 255},   // forest
		{24, 174, 228, 255},  // water
		{246, 157, 2, 255},   // sand
		{135, 130, 128, 255}, // mountains
	}
	img := image.NewNRGBA(image.Rect(0, 0, 340, 520))
	i := 0
	for row := 0; row < 10; row++ {
		offset := 0
		if row%2 == 1 {
			offset = 15
		}
		for col := 0; col < 10; col++ {
			cx, cy := 16+col*31+offset, 24+row*51
			c := palette[i%len(palette)]
			i++
			for y := cy - 6; y <= cy+6; y++ {
				for x := cx - 4; x <= cx+4; x++ {
					img.SetNRGBA(x, y, c)
				}
			}
		}
	}
	return img
}

func run(t *testing.T, sources ...Source) (*Report, string, string) {
	t.Helper()
	var progress, log bytes.Buffer
	p := New(Config{
		Sources:  sources,
		Profile:  profile.Get(profile.DefaultName),
		Progress: &progress,
		Log:      &log,
	})
	report, err := p.Run()
	if err != nil {
		t.Fatalf("run: %v\nlog: %s", err, log.String())
	}
	return report, progress.String(), log.String()
}

func pngFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".png") {
			names = append(names, e.Name())
		}
	}
	return names
}

func TestRun_TransparentSheet(t *testing.T) {
	dir := t.TempDir()
	in := writeSheet(t, dir, "empty.png", image.NewNRGBA(image.Rect(0, 0, 64, 64)))
	out := filepath.Join(dir, "out")

	report, _, _ := run(t, Source{Input: in, Output: out})

	if report.Extracted() != 0 {
		t.Errorf("extracted %d tiles, want 0", report.Extracted())
	}
	s := report.Sheets[0]
	if s.Skipped || s.Found {
		t.Errorf("sheet: skipped=%v found=%v", s.Skipped, s.Found)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output dir should not be created, stat err=%v", err)
	}
}

func TestRun_SingleGrassHex(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	img.SetNRGBA(16, 24, grassColor)
	in := writeSheet(t, dir, "one.png", img)
	out := filepath.Join(dir, "out")

	report, progress, _ := run(t, Source{Input: in, Output: out})

	s := report.Sheets[0]
	if s.Grid != (grid.Candidate{H: 28, V: 44}) {
		t.Errorf("grid: %+v", s.Grid)
	}
	if len(s.Tiles) != 1 {
		t.Fatalf("tiles: %+v", s.Tiles)
	}
	tile := s.Tiles[0]
	if tile.File != "grass.png" || tile.Label != "grass" || tile.Row != 0 || tile.Col != 0 {
		t.Errorf("tile: %+v", tile)
	}
	if s.LabelCounts[terrain.Grass] != 1 {
		t.Errorf("label counts: %v", s.LabelCounts)
	}
	if files := pngFiles(t, out); len(files) != 1 || files[0] != "grass.png" {
		t.Errorf("files: %v", files)
	}
	if !strings.Contains(progress, "grass.png") {
		t.Errorf("progress missing tile line:\n%s", progress)
	}
}

func TestRun_OutputTileIs16x16(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	img.SetNRGBA(16, 24, grassColor)
	in := writeSheet(t, dir, "one.png", img)
	out := filepath.Join(dir, "out")

	run(t, Source{Input: in, Output: out})

	f, err := os.Open(filepath.Join(out, "grass.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	tile, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode tile: %v", err)
	}
	if b := tile.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Errorf("tile bounds: %v", b)
	}
}

func TestRun_VariantNaming(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	img.SetNRGBA(16, 24, grassColor)
	img.SetNRGBA(44, 24, grassColor)
	in := writeSheet(t, dir, "two.png", img)
	out := filepath.Join(dir, "out")

	report, _, _ := run(t, Source{Input: in, Output: out})

	tiles := report.Sheets[0].Tiles
	if len(tiles) != 2 {
		t.Fatalf("tiles: %+v", tiles)
	}
	if tiles[0].File != "grass.png" || tiles[0].Col != 0 || tiles[0].Variant != 0 {
		t.Errorf("first: %+v", tiles[0])
	}
	if tiles[1].File != "grass_1.png" || tiles[1].Col != 1 || tiles[1].Variant != 1 {
		t.Errorf("second: %+v", tiles[1])
	}
}

func TestRun_Reproducible(t *testing.T) {
	dir := t.TempDir()
	in := writeSheet(t, dir, "sheet.png", paletteSheet())
	out := filepath.Join(dir, "out")

	first, _, _ := run(t, Source{Input: in, Output: out})
	second, _, _ := run(t, Source{Input: in, Output: out})

	a, b := first.Sheets[0], second.Sheets[0]
	if a.Grid != (grid.Candidate{H: 31, V: 51}) {
		t.Errorf("grid: %+v", a.Grid)
	}
	if len(a.Tiles) != 100 || len(b.Tiles) != len(a.Tiles) {
		t.Fatalf("tile counts: %d vs %d", len(a.Tiles), len(b.Tiles))
	}
	seen := map[string]bool{}
	for i := range a.Tiles {
		if a.Tiles[i].File != b.Tiles[i].File || a.Tiles[i].Hash != b.Tiles[i].Hash {
			t.Errorf("tile %d differs: %+v vs %+v", i, a.Tiles[i], b.Tiles[i])
		}
		if seen[a.Tiles[i].File] {
			t.Errorf("duplicate file name %s", a.Tiles[i].File)
		}
		seen[a.Tiles[i].File] = true
	}
	if n := len(pngFiles(t, out)); n != 100 {
		t.Errorf("files on disk: %d", n)
	}

	// The manifest hashes match the files.
	m, err := manifest.ReadJSON(filepath.Join(out, manifest.FileName))
	if err != nil {
		t.Fatal(err)
	}
	for _, tile := range m.Tiles {
		sum, err := hasher.FileHash(filepath.Join(out, tile.File))
		if err != nil {
			t.Fatal(err)
		}
		if sum != tile.Hash {
			t.Errorf("%s: disk hash %s, manifest %s", tile.File, sum, tile.Hash)
		}
	}
	if m.Stats.LabelCounts["grass"] != 20 || m.Stats.LabelCounts["mountains"] != 20 {
		t.Errorf("label counts: %v", m.Stats.LabelCounts)
	}
}

func TestRun_MissingSourceSkipped(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	img.SetNRGBA(16, 24, grassColor)
	in := writeSheet(t, dir, "one.png", img)

	report, _, log := run(t,
		Source{Input: filepath.Join(dir, "missing.png"), Output: filepath.Join(dir, "a")},
		Source{Input: in, Output: filepath.Join(dir, "b")},
	)

	if len(report.Sheets) != 2 {
		t.Fatalf("sheets: %d", len(report.Sheets))
	}
	if !report.Sheets[0].Skipped || !errors.Is(report.Sheets[0].Err, ErrSourceMissing) {
		t.Errorf("first sheet: %+v", report.Sheets[0])
	}
	if len(report.Sheets[1].Tiles) != 1 {
		t.Errorf("second sheet tiles: %d", len(report.Sheets[1].Tiles))
	}
	if !strings.Contains(log, "missing.png") {
		t.Errorf("log should mention the missing sheet:\n%s", log)
	}
}

func TestRun_UndecodableSourceSkipped(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(in, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	report, _, _ := run(t, Source{Input: in, Output: filepath.Join(dir, "out")})
	if !report.Sheets[0].Skipped || report.Sheets[0].Err == nil {
		t.Errorf("sheet: %+v", report.Sheets[0])
	}
}

func TestRun_ClearsOldTiles(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	if err := os.MkdirAll(out, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"old.png", "grass_7.png", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(out, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	img.SetNRGBA(16, 24, grassColor)
	in := writeSheet(t, dir, "one.png", img)

	run(t, Source{Input: in, Output: out})

	files := pngFiles(t, out)
	if len(files) != 1 || files[0] != "grass.png" {
		t.Errorf("png files after run: %v", files)
	}
	if _, err := os.Stat(filepath.Join(out, "notes.txt")); err != nil {
		t.Errorf("non-png file removed: %v", err)
	}
}

func TestRun_WriteFailureAborts(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	// A directory squatting on the tile name makes the write fail.
	if err := os.MkdirAll(filepath.Join(out, "grass.png"), 0o755); err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	img.SetNRGBA(16, 24, grassColor)
	in := writeSheet(t, dir, "one.png", img)
	second := writeSheet(t, dir, "two.png", img)

	var progress, log bytes.Buffer
	p := New(Config{
		Sources: []Source{
			{Input: in, Output: out},
			{Input: second, Output: filepath.Join(dir, "out2")},
		},
		Profile:  profile.Get(profile.DefaultName),
		Progress: &progress,
		Log:      &log,
	})
	report, err := p.Run()
	if err == nil {
		t.Fatal("expected write error")
	}
	if len(report.Sheets) != 1 {
		t.Errorf("run should stop at the failing sheet, got %d sheets", len(report.Sheets))
	}
	if _, err := os.Stat(filepath.Join(dir, "out2")); !os.IsNotExist(err) {
		t.Error("second sheet should not have been extracted")
	}
}

func TestRun_RejectsBadProfile(t *testing.T) {
	prof := profile.Get(profile.DefaultName)
	prof.OutputSize = 0
	p := New(Config{
		Sources:  []Source{{Input: "a.png", Output: "b"}},
		Profile:  prof,
		Progress: &bytes.Buffer{},
		Log:      &bytes.Buffer{},
	})
	if _, err := p.Run(); err == nil {
		t.Error("expected profile error")
	}
}

func TestCropWindow(t *testing.T) {
	b := image.Rect(0, 0, 64, 64)
	cases := []struct {
		x, y int
		want image.Rectangle
	}{
		{32, 32, image.Rect(17, 6, 47, 58)},
		{16, 24, image.Rect(1, 0, 31, 50)},
		{60, 60, image.Rect(45, 34, 64, 64)},
	}
	for _, tc := range cases {
		if got := CropWindow(b, tc.x, tc.y, 30, 52); got != tc.want {
			t.Errorf("CropWindow(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}
