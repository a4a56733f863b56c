package encoder

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestPNGEncoder_RoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 16), uint8(y * 16), 40, uint8(255 - x)})
		}
	}

	enc := NewPNG()
	data, err := enc.Encode(img)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	back, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := back.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Errorf("bounds: %v", b)
	}
	got := color.NRGBAModel.Convert(back.At(3, 5)).(color.NRGBA)
	if got != img.NRGBAAt(3, 5) {
		t.Errorf("pixel (3,5): got %v, want %v", got, img.NRGBAAt(3, 5))
	}
}

func TestPNGEncoder_Deterministic(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	img.SetNRGBA(7, 7, color.NRGBA{50, 200, 60, 255})

	enc := NewPNG()
	a, err := enc.Encode(img)
	if err != nil {
		t.Fatal(err)
	}
	b, err := enc.Encode(img)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical images encoded differently")
	}
	if enc.Format() != "png" || enc.Extension() != "png" {
		t.Errorf("format/extension: %s/%s", enc.Format(), enc.Extension())
	}
}
