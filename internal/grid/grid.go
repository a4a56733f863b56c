// Package grid locates hex centers in a honeycomb sprite sheet by trying
// a bounded range of row/column spacings and keeping the one that lands
// on the most opaque pixels.
package grid

import (
	"image"

	"github.com/AnyUserName/hextile-cli/internal/terrain"
)

// Params describes the candidate layout and the spacing search range.
// All ranges are inclusive.
type Params struct {
	HMin, HMax int // horizontal spacing range
	VMin, VMax int // vertical spacing range

	OriginX, OriginY int // center of hex (row 0, col 0)
	Rows, Cols       int

	// A center must lie at least this far from the right and bottom edges.
	MarginX, MarginY int
}

// Candidate is one (horizontal, vertical) spacing pair.
type Candidate struct {
	H int `json:"h_spacing"`
	V int `json:"v_spacing"`
}

// Center is a kept hex center: pixel position plus logical grid indices.
type Center struct {
	X   int `json:"x"`
	Y   int `json:"y"`
	Row int `json:"row"`
	Col int `json:"col"`
}

// Result is the outcome of a grid search.
type Result struct {
	Candidate Candidate
	Centers   []Center
	Evaluated int // number of candidates tried
}

// Candidates returns every spacing pair in p's range, ascending by
// horizontal spacing, then vertical spacing.
func (p Params) Candidates() []Candidate {
	var out []Candidate
	for h := p.HMin; h <= p.HMax; h++ {
		for v := p.VMin; v <= p.VMax; v++ {
			if h <= 0 || v <= 0 {
				continue
			}
			out = append(out, Candidate{H: h, V: v})
		}
	}
	return out
}

// Layout lays out up to Rows x Cols centers for c over img and keeps the
// ones that fall inside the margins on a pixel with alpha above
// terrain.AlphaThreshold. Odd rows are shifted right by half the
// horizontal spacing.
//
// Traversal is row-major, so the returned slice is in extraction order.
func Layout(img *image.NRGBA, p Params, c Candidate) []Center {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	var centers []Center
	for row := 0; row < p.Rows; row++ {
		y := p.OriginY + row*c.V
		if y >= h-p.MarginY {
			break
		}
		if y < 0 {
			continue
		}

		offset := 0
		if row%2 == 1 {
			offset = c.H / 2
		}
		for col := 0; col < p.Cols; col++ {
			x := p.OriginX + col*c.H + offset
			if x < 0 || x >= w-p.MarginX {
				continue
			}
			if img.NRGBAAt(b.Min.X+x, b.Min.Y+y).A <= terrain.AlphaThreshold {
				continue
			}
			centers = append(centers, Center{X: x, Y: y, Row: row, Col: col})
		}
	}
	return centers
}

// Search evaluates every candidate in p's range and returns the one with
// the most kept centers. Ties go to the candidate evaluated first. ok is
// false when no candidate keeps any center.
func Search(img *image.NRGBA, p Params) (res Result, ok bool) {
	for _, c := range p.Candidates() {
		res.Evaluated++
		centers := Layout(img, p, c)
		if len(centers) > len(res.Centers) {
			res.Candidate = c
			res.Centers = centers
		}
	}
	return res, len(res.Centers) > 0
}
