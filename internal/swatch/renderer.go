// Package swatch procedurally renders textile pattern images from a seed.
// Every draw is taken from a stream seeded by the caller, so the same seed,
// style, and size reproduce the same image byte for byte.
package swatch

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/your-org/weavescope/internal/models"
)

// Palettes aligned with the product theme: ink, cobalt, parchment, gold/silver.
var palettes = [][4]color.RGBA{
	{
		{R: 17, G: 24, B: 39, A: 255},
		{R: 29, G: 78, B: 216, A: 255},
		{R: 251, G: 247, B: 239, A: 255},
		{R: 176, G: 138, B: 42, A: 255},
	},
	{
		{R: 17, G: 24, B: 39, A: 255},
		{R: 96, G: 165, B: 250, A: 255},
		{R: 244, G: 239, B: 227, A: 255},
		{R: 154, G: 163, B: 173, A: 255},
	},
	{
		{R: 17, G: 24, B: 39, A: 255},
		{R: 29, G: 78, B: 216, A: 255},
		{R: 244, G: 239, B: 227, A: 255},
		{R: 154, G: 163, B: 173, A: 255},
	},
}

const grainAlpha = 0.10

// Render draws a textile swatch for the given seed. An empty style is chosen
// from the stream, so seed alone still fully determines the output. Style,
// palette, and stride parameters all come from the same stream in a fixed
// order.
func Render(seed uint64, style models.SwatchStyle, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid swatch size %dx%d", width, height)
	}

	rng := rand.New(rand.NewSource(int64(seed)))
	if style == "" {
		style = models.SwatchStyles[rng.Intn(len(models.SwatchStyles))]
	}
	p := palettes[rng.Intn(len(palettes))]
	c0, c1, c2, c3 := p[0], p[1], p[2], p[3]

	dc := gg.NewContext(width, height)
	dc.SetColor(c2)
	dc.Clear()

	// Subtle textile grain under the pattern. Separate stream instance so the
	// grain does not shift the parameter draws below.
	base := dc.Image().(*image.RGBA)
	grain(base.Pix, base.Stride, width, height, rand.New(rand.NewSource(int64(seed))), grainAlpha, 20)

	var blurSigma float64

	switch style {
	case models.StyleWeave:
		step := pick(rng, 6, 8, 10)
		dc.SetLineWidth(1)
		for x := 0; x < width; x += step {
			col := c1
			if (x/step)%2 != 0 {
				col = c3
			}
			dc.SetColor(col)
			dc.DrawLine(float64(x), 0, float64(x), float64(height))
			dc.Stroke()
		}
		for y := 0; y < height; y += step {
			col := c0
			if (y/step)%2 != 0 {
				col = c3
			}
			dc.SetColor(col)
			dc.DrawLine(0, float64(y), float64(width), float64(y))
			dc.Stroke()
		}
		blurSigma = 0.5

	case models.StyleStripes:
		stripe := pick(rng, 18, 24, 32)
		cycle := []color.RGBA{c0, c1, c3, c2}
		for i, x := 0, 0; x < width; i, x = i+1, x+stripe {
			dc.SetColor(cycle[i%4])
			dc.DrawRectangle(float64(x), 0, float64(stripe-2), float64(height))
			dc.Fill()
		}
		blurSigma = 0.6

	case models.StylePlaid:
		step := pick(rng, 22, 28, 34)
		for x := 0; x < width; x += step {
			col := c1
			if (x/step)%2 != 0 {
				col = c3
			}
			dc.SetColor(col)
			dc.DrawRectangle(float64(x), 0, 6, float64(height))
			dc.Fill()
		}
		for y := 0; y < height; y += step {
			col := c0
			if (y/step)%2 != 0 {
				col = c3
			}
			dc.SetColor(col)
			dc.DrawRectangle(0, float64(y), float64(width), 6)
			dc.Fill()
		}
		dc.SetColor(color.White)
		dc.SetLineWidth(1)
		for x := 0; x < width; x += step / 2 {
			dc.DrawLine(float64(x), 0, float64(x), float64(height))
			dc.Stroke()
		}
		blurSigma = 0.55

	case models.StyleHerringbone:
		step := pick(rng, 14, 16, 18)
		fs := float64(step)
		for y := 0; y < height; y += step {
			for x := 0; x < width; x += step {
				fx, fy := float64(x), float64(y)
				col := c1
				if ((x/step)+(y/step))%2 != 0 {
					col = c0
				}
				dc.SetColor(col)
				dc.MoveTo(fx, fy)
				dc.LineTo(fx+fs, fy+fs/2)
				dc.LineTo(fx, fy+fs)
				dc.ClosePath()
				dc.Fill()

				dc.SetColor(c3)
				dc.MoveTo(fx+fs, fy)
				dc.LineTo(fx+fs, fy+fs)
				dc.LineTo(fx, fy+fs/2)
				dc.ClosePath()
				dc.Fill()
			}
		}
		blurSigma = 0.65

	case models.StyleIkat:
		band := pick(rng, 40, 56, 72)
		for x := 0; x < width; x += band {
			col := c1
			if (x/band)%2 != 0 {
				col = c0
			}
			dc.SetColor(col)
			dc.DrawRectangle(float64(x), 0, float64(band), float64(height))
			dc.Fill()
		}
		blurSigma = 3.0

	default:
		return nil, fmt.Errorf("unknown swatch style %q", style)
	}

	blurred := imaging.Blur(dc.Image(), blurSigma)

	if style == models.StyleIkat {
		// Second softer grain pass gives the ikat bleed its texture.
		grain(blurred.Pix, blurred.Stride, width, height, rand.New(rand.NewSource(int64(seed+9))), 0.08, 24)
	}

	return blurred, nil
}

// grain blends a low-amplitude gray noise layer into pixel data in place.
// Works for both RGBA and NRGBA buffers since alpha stays 255 throughout.
func grain(pix []uint8, stride, width, height int, rng *rand.Rand, alpha float64, max int) {
	for y := 0; y < height; y++ {
		row := y * stride
		for x := 0; x < width; x++ {
			v := float64(rng.Intn(max))
			i := row + x*4
			for c := 0; c < 3; c++ {
				pix[i+c] = uint8(float64(pix[i+c])*(1-alpha) + v*alpha)
			}
		}
	}
}

func pick(rng *rand.Rand, options ...int) int {
	return options[rng.Intn(len(options))]
}

// EncodePNG renders an image to PNG bytes. The stdlib encoder is
// deterministic for identical pixel data, which keeps swatch responses
// byte-reproducible.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode swatch png: %w", err)
	}
	return buf.Bytes(), nil
}
