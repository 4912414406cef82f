package canvas

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/teeforge/pkg/core/seed"
	"github.com/matzehuels/teeforge/pkg/errors"
)

// Style names a base fill.
type Style string

const (
	Solid           Style = "solid"
	VerticalStripes Style = "vertical_stripes"
	RadialGradient  Style = "radial_gradient"
	LinearGradient  Style = "linear_gradient"
	Noise           Style = "noise"
)

// Styles lists every base style in display order.
var Styles = []Style{Solid, VerticalStripes, RadialGradient, LinearGradient, Noise}

const (
	// RadialExponent shapes the falloff of the radial gradient.
	RadialExponent = 1.2

	// NoiseSigma is the Gaussian blur applied to the noise style, in pixels.
	NoiseSigma = 1.2
)

// ParseStyle validates a base style name.
func ParseStyle(name string) (Style, error) {
	for _, s := range Styles {
		if string(s) == name {
			return s, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidStyle,
		"invalid base style: %q (must be one of: solid, vertical_stripes, radial_gradient, linear_gradient, noise)", name)
}

// Base builds the starting canvas. Gradient and stripe colors come from the
// general stream, the noise field from the array stream.
func Base(width, height int, style Style, transparent bool, streams *seed.Streams) *Canvas {
	c := New(width, height, transparent)

	switch style {
	case RadialGradient:
		fillRadial(c.img, randomColor(streams.General), randomColor(streams.General))
	case LinearGradient:
		fillLinear(c.img, randomColor(streams.General), randomColor(streams.General))
	case VerticalStripes:
		fillStripes(c.img, streams.General)
	case Noise:
		fillNoise(c.img, streams.Array)
	default:
		return c
	}

	c.SetOpaque()
	return c
}

// randomColor draws three channels in [0, 255].
func randomColor(rng *rand.Rand) [3]float64 {
	return [3]float64{
		float64(seed.IntRange(rng, 0, 255)),
		float64(seed.IntRange(rng, 0, 255)),
		float64(seed.IntRange(rng, 0, 255)),
	}
}

func clamp01(x float64) float64 {
	return max(0, min(x, 1))
}

// mix interpolates c1 toward c2 by t and writes the truncated result.
func mix(pix []uint8, c1, c2 [3]float64, t float64) {
	for k := 0; k < 3; k++ {
		pix[k] = uint8(c1[k]*(1-t) + c2[k]*t)
	}
}

func fillRadial(img *image.NRGBA, c1, c2 [3]float64) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	cx, cy := float64(w)/2, float64(h)/2
	norm := math.Sqrt(cx*cx + cy*cy)
	for y := 0; y < h; y++ {
		dy := float64(y) - cy
		for x := 0; x < w; x++ {
			dx := float64(x) - cx
			dist := math.Sqrt(dx*dx+dy*dy) / norm
			t := math.Pow(1-clamp01(dist), RadialExponent)
			i := img.PixOffset(x, y)
			mix(img.Pix[i:i+3], c1, c2, t)
		}
	}
}

func fillLinear(img *image.NRGBA, c1, c2 [3]float64) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for x := 0; x < w; x++ {
		t := clamp01(float64(x) / float64(w))
		var px [3]uint8
		mix(px[:], c1, c2, t)
		for y := 0; y < h; y++ {
			i := img.PixOffset(x, y)
			copy(img.Pix[i:i+3], px[:])
		}
	}
}

func fillStripes(img *image.NRGBA, rng *rand.Rand) {
	c1, c2 := randomColor(rng), randomColor(rng)
	count := seed.IntRange(rng, 6, 24)
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for x := 0; x < w; x++ {
		c := c1
		if (x*count/w)%2 == 1 {
			c = c2
		}
		for y := 0; y < h; y++ {
			i := img.PixOffset(x, y)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = uint8(c[0]), uint8(c[1]), uint8(c[2])
		}
	}
}

// fillNoise writes uniform random channels row by row, then blurs them.
func fillNoise(img *image.NRGBA, rng *rand.Rand) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	noise := image.NewNRGBA(img.Rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			noise.SetNRGBA(x, y, color.NRGBA{
				R: uint8(rng.Float64() * 255),
				G: uint8(rng.Float64() * 255),
				B: uint8(rng.Float64() * 255),
				A: 0xff,
			})
		}
	}
	blurred := imaging.Blur(noise, NoiseSigma)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := blurred.PixOffset(x, y)
			dst := img.PixOffset(x, y)
			copy(img.Pix[dst:dst+3], blurred.Pix[src:src+3])
		}
	}
}
