package swatch

import (
	"image"
	"image/draw"
	"math/rand"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Overlay paints the simulated "AI attention" layer over a query image: a
// soft scan ring plus a few highlighted regions. Seeded the same way as the
// renderer, so repeated calls reproduce the same overlay.
func Overlay(img image.Image, seed uint64) image.Image {
	rng := rand.New(rand.NewSource(int64(seed)))

	out := imaging.Clone(img)
	b := out.Bounds()
	w, h := b.Dx(), b.Dy()

	// Scan ring.
	ring := gg.NewContext(w, h)
	ring.SetRGBA255(29, 78, 216, 160)
	ring.SetLineWidth(10)
	r := float64(min(w, h)) * 0.38
	ring.DrawCircle(float64(w)/2, float64(h)/2, r)
	ring.Stroke()
	composite(out, imaging.Blur(ring.Image(), 1.6))

	// Highlight regions.
	boxes := gg.NewContext(w, h)
	n := 3 + rng.Intn(3)
	for i := 0; i < n; i++ {
		x0 := float64(rng.Intn(int(float64(w)*0.55) + 1))
		y0 := float64(rng.Intn(int(float64(h)*0.55) + 1))
		bw := float64(w)*0.22 + float64(rng.Intn(int(float64(w)*0.30)+1))
		bh := float64(h)*0.22 + float64(rng.Intn(int(float64(h)*0.30)+1))

		boxes.SetRGBA255(29, 78, 216, 220)
		boxes.SetLineWidth(6)
		boxes.DrawRoundedRectangle(x0, y0, bw, bh, 22)
		boxes.Stroke()

		boxes.SetRGBA255(29, 78, 216, 34)
		boxes.DrawRoundedRectangle(x0+6, y0+6, bw-12, bh-12, 18)
		boxes.Fill()
	}
	composite(out, imaging.Blur(boxes.Image(), 1.1))

	return out
}

// Signature produces the simulated pattern-signature vector shown in the
// insights panel: n values drawn from a seeded normal(0.55, 0.18), clamped
// to [0,1].
func Signature(seed uint64, n int) []float64 {
	rng := rand.New(rand.NewSource(int64(seed)))
	sig := make([]float64, n)
	for i := range sig {
		v := 0.55 + rng.NormFloat64()*0.18
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		sig[i] = v
	}
	return sig
}

func composite(dst *image.NRGBA, layer image.Image) {
	draw.Draw(dst, dst.Bounds(), layer, layer.Bounds().Min, draw.Over)
}
