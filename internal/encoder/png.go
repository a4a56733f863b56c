package encoder

import (
	"bytes"
	"image"
	"image/png"
)

// PNGEncoder encodes tiles to PNG using Go's standard library.
// Output is deterministic for identical pixels, which keeps tile hashes
// stable across runs.
type PNGEncoder struct {
	// Level is the zlib compression level; the zero value is png.DefaultCompression.
	Level png.CompressionLevel
}

// NewPNG returns a PNG encoder tuned for small tiles.
func NewPNG() *PNGEncoder {
	return &PNGEncoder{Level: png.BestCompression}
}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }

func (e *PNGEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(2 * 1024) // 16x16 tiles stay well under this

	enc := &png.Encoder{CompressionLevel: e.Level}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
