package terrain

import "fmt"

// VariantCounter counts tiles emitted per label within one sheet. Counts
// only grow.
type VariantCounter struct {
	counts map[Label]int
}

// NewVariantCounter returns an empty counter.
func NewVariantCounter() *VariantCounter {
	return &VariantCounter{counts: make(map[Label]int)}
}

// Next returns the variant number for the next tile of label and
// increments the count.
func (c *VariantCounter) Next(label Label) int {
	v := c.counts[label]
	c.counts[label] = v + 1
	return v
}

// Count returns how many tiles of label have been emitted.
func (c *VariantCounter) Count(label Label) int {
	return c.counts[label]
}

// Counts returns a copy of the per-label counts.
func (c *VariantCounter) Counts() map[Label]int {
	out := make(map[Label]int, len(c.counts))
	for l, n := range c.counts {
		out[l] = n
	}
	return out
}

// TileName returns "label.png" for variant 0 and "label_N.png" otherwise.
func TileName(label Label, variant int) string {
	if variant == 0 {
		return string(label) + ".png"
	}
	return fmt.Sprintf("%s_%d.png", label, variant)
}
